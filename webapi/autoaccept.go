// AutoAcceptRoutes registers the auto-accept rule endpoints.
//
// Routes:
//   - POST  /security/checks/auto-accept-rules     : Create a rule with its initial state.
//   - GET   /security/checks/auto-accept-rules/:id : Retrieve a rule with its state history.
//   - PATCH /security/checks/auto-accept-rules/:id : Append a state to the audit trail.

package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	securitydomain "github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/service/security"
)

type AutoAcceptStateRequest struct {
	Active  bool      `json:"active"`
	Reason  string    `json:"reason" validate:"required"`
	AddedBy uuid.UUID `json:"added_by" validate:"required"`
}

type CreateAutoAcceptRuleRequest struct {
	DebitCardSenderDetailsID uuid.UUID `json:"debit_card_sender_details_id" validate:"required"`
	PrisonerProfileID        uuid.UUID `json:"prisoner_profile_id" validate:"required"`
	// States must carry exactly the initial state.
	States []AutoAcceptStateRequest `json:"states" validate:"required,len=1,dive"`
}

type AppendAutoAcceptStateRequest struct {
	States []AutoAcceptStateRequest `json:"states" validate:"required,len=1,dive"`
}

type AutoAcceptRuleStateDTO struct {
	ID        string `json:"id"`
	Active    bool   `json:"active"`
	Reason    string `json:"reason"`
	AddedBy   string `json:"added_by"`
	CreatedAt string `json:"created_at"`
}

type AutoAcceptRuleDTO struct {
	ID                       string                   `json:"id"`
	DebitCardSenderDetailsID string                   `json:"debit_card_sender_details_id"`
	PrisonerProfileID        string                   `json:"prisoner_profile_id"`
	States                   []AutoAcceptRuleStateDTO `json:"states"`
	CreatedAt                string                   `json:"created_at"`
}

// ToAutoAcceptRuleDTO maps a domain rule to its API representation.
func ToAutoAcceptRuleDTO(rule *securitydomain.CheckAutoAcceptRule) *AutoAcceptRuleDTO {
	if rule == nil {
		return nil
	}
	dto := &AutoAcceptRuleDTO{
		ID:                       rule.ID.String(),
		DebitCardSenderDetailsID: rule.DebitCardSenderDetailsID.String(),
		PrisonerProfileID:        rule.PrisonerProfileID.String(),
		CreatedAt:                rule.CreatedAt.Format(time.RFC3339),
	}
	for _, state := range rule.States {
		dto.States = append(dto.States, AutoAcceptRuleStateDTO{
			ID:        state.ID.String(),
			Active:    state.Active,
			Reason:    state.Reason,
			AddedBy:   state.AddedByID.String(),
			CreatedAt: state.CreatedAt.Format(time.RFC3339),
		})
	}
	return dto
}

// AutoAcceptRoutes registers auto-accept rule endpoints on the app.
func AutoAcceptRoutes(app *fiber.App, svc *security.Service) {
	app.Post("/security/checks/auto-accept-rules", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateAutoAcceptRuleRequest](c)
		if err != nil {
			return nil
		}
		initial := security.AutoAcceptState{
			Active:  input.States[0].Active,
			Reason:  input.States[0].Reason,
			AddedBy: input.States[0].AddedBy,
		}
		rule, err := svc.CreateAutoAcceptRule(c.Context(),
			input.DebitCardSenderDetailsID, input.PrisonerProfileID, initial)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Auto-accept rule created",
			Data:    ToAutoAcceptRuleDTO(rule),
		})
	})

	app.Get("/security/checks/auto-accept-rules/:id", func(c *fiber.Ctx) error {
		ruleID, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		rule, err := svc.GetAutoAcceptRule(c.Context(), ruleID)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Auto-accept rule retrieved",
			Data:    ToAutoAcceptRuleDTO(rule),
		})
	})

	app.Patch("/security/checks/auto-accept-rules/:id", func(c *fiber.Ctx) error {
		ruleID, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		input, err := BindAndValidate[AppendAutoAcceptStateRequest](c)
		if err != nil {
			return nil
		}
		next := security.AutoAcceptState{
			Active:  input.States[0].Active,
			Reason:  input.States[0].Reason,
			AddedBy: input.States[0].AddedBy,
		}
		rule, err := svc.AppendAutoAcceptState(c.Context(), ruleID, next)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Auto-accept rule updated",
			Data:    ToAutoAcceptRuleDTO(rule),
		})
	})
}
