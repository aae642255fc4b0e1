// ProfileRoutes registers profile retrieval and maintenance endpoints.
//
// Routes:
//   - GET  /senders/:id                      : Retrieve a sender profile.
//   - GET  /prisoners/:id                    : Retrieve a prisoner profile.
//   - GET  /recipients/:id                   : Retrieve a recipient profile.
//   - POST /security/aggregates/recalculate  : Recompute profile counters.
//   - POST /security/prisoner-profiles/update-current-prisons

package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	securitydomain "github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/service/security"
)

type RecalculateAggregatesRequest struct {
	// Empty slices recompute every profile of that kind.
	SenderIDs    []uuid.UUID `json:"sender_ids"`
	PrisonerIDs  []uuid.UUID `json:"prisoner_ids"`
	RecipientIDs []uuid.UUID `json:"recipient_ids"`
}

// SenderProfileDTO is the API representation of a sender profile.
type SenderProfileDTO struct {
	ID          string `json:"id"`
	CreditCount int64  `json:"credit_count"`
	CreditTotal int64  `json:"credit_total"`

	BankTransferDetails *BankTransferSenderDetailsDTO `json:"bank_transfer_details,omitempty"`
	DebitCardDetails    *DebitCardSenderDetailsDTO    `json:"debit_card_details,omitempty"`
	Prisons             []string                      `json:"prisons"`
	CreatedAt           string                        `json:"created_at"`
}

type BankTransferSenderDetailsDTO struct {
	SenderName    string `json:"sender_name"`
	SortCode      string `json:"sort_code"`
	AccountNumber string `json:"account_number"`
	RollNumber    string `json:"roll_number"`
}

type DebitCardSenderDetailsDTO struct {
	ID                   string   `json:"id"`
	CardNumberLastDigits string   `json:"card_number_last_digits"`
	CardExpiryDate       string   `json:"card_expiry_date"`
	Postcode             *string  `json:"postcode"`
	CardholderNames      []string `json:"cardholder_names"`
	SenderEmails         []string `json:"sender_emails"`
}

// PrisonerProfileDTO is the API representation of a prisoner profile.
type PrisonerProfileDTO struct {
	ID               string  `json:"id"`
	PrisonerNumber   string  `json:"prisoner_number"`
	PrisonerName     string  `json:"prisoner_name"`
	SingleOffenderID *string `json:"single_offender_id"`

	CreditCount       int64 `json:"credit_count"`
	CreditTotal       int64 `json:"credit_total"`
	DisbursementCount int64 `json:"disbursement_count"`
	DisbursementTotal int64 `json:"disbursement_total"`

	CurrentPrison *string  `json:"current_prison"`
	Prisons       []string `json:"prisons"`
	ProvidedNames []string `json:"provided_names"`
	CreatedAt     string   `json:"created_at"`
}

// RecipientProfileDTO is the API representation of a recipient profile.
type RecipientProfileDTO struct {
	ID                string `json:"id"`
	DisbursementCount int64  `json:"disbursement_count"`
	DisbursementTotal int64  `json:"disbursement_total"`

	BankTransferDetails *BankTransferRecipientDetailsDTO `json:"bank_transfer_details,omitempty"`
	Prisons             []string                         `json:"prisons"`
	CreatedAt           string                           `json:"created_at"`
}

type BankTransferRecipientDetailsDTO struct {
	SortCode      string `json:"sort_code"`
	AccountNumber string `json:"account_number"`
	RollNumber    string `json:"roll_number"`
}

// ToSenderProfileDTO maps a domain sender profile to its API representation.
func ToSenderProfileDTO(p *securitydomain.SenderProfile) *SenderProfileDTO {
	if p == nil {
		return nil
	}
	dto := &SenderProfileDTO{
		ID:          p.ID.String(),
		CreditCount: p.CreditCount,
		CreditTotal: p.CreditTotal,
		Prisons:     p.Prisons,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	if t := p.BankTransferDetails; t != nil {
		dto.BankTransferDetails = &BankTransferSenderDetailsDTO{
			SenderName:    t.SenderName,
			SortCode:      t.BankAccount.SortCode,
			AccountNumber: t.BankAccount.AccountNumber,
			RollNumber:    t.BankAccount.RollNumber,
		}
	}
	if d := p.DebitCardDetails; d != nil {
		dto.DebitCardDetails = &DebitCardSenderDetailsDTO{
			ID:                   d.ID.String(),
			CardNumberLastDigits: d.CardNumberLastDigits,
			CardExpiryDate:       d.CardExpiryDate,
			Postcode:             d.Postcode,
			CardholderNames:      d.CardholderNames,
			SenderEmails:         d.SenderEmails,
		}
	}
	return dto
}

// ToPrisonerProfileDTO maps a domain prisoner profile to its API
// representation.
func ToPrisonerProfileDTO(p *securitydomain.PrisonerProfile) *PrisonerProfileDTO {
	if p == nil {
		return nil
	}
	return &PrisonerProfileDTO{
		ID:                p.ID.String(),
		PrisonerNumber:    p.PrisonerNumber,
		PrisonerName:      p.PrisonerName,
		SingleOffenderID:  p.SingleOffenderID,
		CreditCount:       p.CreditCount,
		CreditTotal:       p.CreditTotal,
		DisbursementCount: p.DisbursementCount,
		DisbursementTotal: p.DisbursementTotal,
		CurrentPrison:     p.CurrentPrisonID,
		Prisons:           p.Prisons,
		ProvidedNames:     p.ProvidedNames,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
}

// ToRecipientProfileDTO maps a domain recipient profile to its API
// representation.
func ToRecipientProfileDTO(p *securitydomain.RecipientProfile) *RecipientProfileDTO {
	if p == nil {
		return nil
	}
	dto := &RecipientProfileDTO{
		ID:                p.ID.String(),
		DisbursementCount: p.DisbursementCount,
		DisbursementTotal: p.DisbursementTotal,
		Prisons:           p.Prisons,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
	}
	if t := p.BankTransferDetails; t != nil {
		dto.BankTransferDetails = &BankTransferRecipientDetailsDTO{
			SortCode:      t.BankAccount.SortCode,
			AccountNumber: t.BankAccount.AccountNumber,
			RollNumber:    t.BankAccount.RollNumber,
		}
	}
	return dto
}

// ProfileRoutes registers profile endpoints on the app.
func ProfileRoutes(app *fiber.App, svc *security.Service) {
	app.Get("/senders/:id", func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		profile, err := svc.GetSenderProfile(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Sender profile retrieved",
			Data:    ToSenderProfileDTO(profile),
		})
	})

	app.Get("/prisoners/:id", func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		profile, err := svc.GetPrisonerProfile(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Prisoner profile retrieved",
			Data:    ToPrisonerProfileDTO(profile),
		})
	})

	app.Get("/recipients/:id", func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		profile, err := svc.GetRecipientProfile(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Recipient profile retrieved",
			Data:    ToRecipientProfileDTO(profile),
		})
	})

	app.Post("/security/aggregates/recalculate", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RecalculateAggregatesRequest](c)
		if err != nil {
			return nil
		}
		scope := security.AggregateScope{
			SenderIDs:    input.SenderIDs,
			PrisonerIDs:  input.PrisonerIDs,
			RecipientIDs: input.RecipientIDs,
		}
		if err := svc.RecalculateAggregates(c.Context(), scope); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Aggregates recalculated"})
	})

	app.Post("/security/prisoner-profiles/update-current-prisons", func(c *fiber.Ctx) error {
		if err := svc.UpdateCurrentPrisons(c.Context()); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Current prisons updated"})
	})
}
