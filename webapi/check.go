// CheckRoutes registers the fraud check workflow endpoints.
//
// Routes:
//   - POST  /credits/:credit_id/check : Screen a pending credit and create its check.
//   - GET   /checks/:id               : Retrieve a check.
//   - POST  /checks/:id/accept        : Record a manual acceptance.
//   - POST  /checks/:id/reject        : Record a rejection with structured reasons.
//   - PATCH /checks/:id               : Claim or unclaim the check.

package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	securitydomain "github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/service/security"
)

type AcceptCheckRequest struct {
	ActionedBy     uuid.UUID `json:"actioned_by" validate:"required"`
	DecisionReason string    `json:"decision_reason"`
	// RejectionReasons are invalid on an acceptance; the service refuses
	// them rather than silently dropping them.
	RejectionReasons []securitydomain.RejectionReason `json:"rejection_reasons"`
}

type RejectCheckRequest struct {
	ActionedBy       uuid.UUID                        `json:"actioned_by" validate:"required"`
	DecisionReason   string                           `json:"decision_reason"`
	RejectionReasons []securitydomain.RejectionReason `json:"rejection_reasons" validate:"required,min=1,dive"`
}

type AssignCheckRequest struct {
	// AssignedTo unclaims the check when null.
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

// CheckDTO is the API response representation of a check.
type CheckDTO struct {
	ID          string   `json:"id"`
	CreditID    string   `json:"credit_id"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`

	ActionedAt       *string                          `json:"actioned_at,omitempty"`
	ActionedBy       *string                          `json:"actioned_by,omitempty"`
	AssignedTo       *string                          `json:"assigned_to,omitempty"`
	DecisionReason   string                           `json:"decision_reason,omitempty"`
	RejectionReasons []securitydomain.RejectionReason `json:"rejection_reasons,omitempty"`

	AutoAcceptRuleState *string `json:"auto_accept_rule_state,omitempty"`
	CreatedAt           string  `json:"created_at"`
}

// ToCheckDTO maps a domain check to its API representation.
func ToCheckDTO(check *securitydomain.Check) *CheckDTO {
	if check == nil {
		return nil
	}
	dto := &CheckDTO{
		ID:               check.ID.String(),
		CreditID:         check.CreditID.String(),
		Status:           string(check.Status),
		Description:      check.Description,
		Rules:            check.Rules,
		DecisionReason:   check.DecisionReason,
		RejectionReasons: check.RejectionReasons,
		CreatedAt:        check.CreatedAt.Format(time.RFC3339),
	}
	if check.ActionedAt != nil {
		actionedAt := check.ActionedAt.Format(time.RFC3339)
		dto.ActionedAt = &actionedAt
	}
	dto.ActionedBy = uuidString(check.ActionedByID)
	dto.AssignedTo = uuidString(check.AssignedToID)
	dto.AutoAcceptRuleState = uuidString(check.AutoAcceptRuleStateID)
	return dto
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// CheckRoutes registers check endpoints on the app.
func CheckRoutes(app *fiber.App, svc *security.Service) {
	app.Post("/credits/:credit_id/check", func(c *fiber.Ctx) error {
		creditID, ok := parseUUIDParam(c, "credit_id")
		if !ok {
			return nil
		}
		check, err := svc.CreateCheckForCredit(c.Context(), creditID)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Check created",
			Data:    ToCheckDTO(check),
		})
	})

	app.Get("/checks/:id", func(c *fiber.Ctx) error {
		checkID, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		check, err := svc.GetCheck(c.Context(), checkID)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Check retrieved",
			Data:    ToCheckDTO(check),
		})
	})

	app.Post("/checks/:id/accept", func(c *fiber.Ctx) error {
		checkID, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		input, err := BindAndValidate[AcceptCheckRequest](c)
		if err != nil {
			return nil
		}
		if err := svc.AcceptCheck(c.Context(), checkID, input.ActionedBy, input.DecisionReason, input.RejectionReasons); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Check accepted"})
	})

	app.Post("/checks/:id/reject", func(c *fiber.Ctx) error {
		checkID, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		input, err := BindAndValidate[RejectCheckRequest](c)
		if err != nil {
			return nil
		}
		err = svc.RejectCheck(c.Context(), checkID, input.ActionedBy, input.DecisionReason, input.RejectionReasons)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Check rejected"})
	})

	app.Patch("/checks/:id", func(c *fiber.Ctx) error {
		checkID, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		input, err := BindAndValidate[AssignCheckRequest](c)
		if err != nil {
			return nil
		}
		if err := svc.AssignCheck(c.Context(), checkID, input.AssignedTo); err != nil {
			return DomainErrorResponse(c, err)
		}
		message := "Check assigned"
		if input.AssignedTo == nil {
			message = "Check unassigned"
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: message})
	})
}
