package security

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/internal/fixtures/mocks"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/config"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/credit"
)

func newServiceWithMocks() (*Service, *mocks.UnitOfWork) {
	uow := mocks.NewUnitOfWork()
	svc := NewService(config.Deps{
		Uow:    uow,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return svc, uow
}

func cardCredit() *credit.Credit {
	prisonID := "IXB"
	return &credit.Credit{
		ID:             uuid.New(),
		Amount:         3500,
		PrisonerNumber: "A1409AE",
		PrisonerName:   "JAMES HALLS",
		PrisonID:       &prisonID,
		Resolution:     credit.ResolutionInitial,
		ReceivedAt:     time.Now(),
		Payment: &credit.Payment{
			ID:                    uuid.New(),
			Status:                credit.PaymentPending,
			Email:                 "sender@example.com",
			CardholderName:        "Jo Sender",
			CardNumberFirstDigits: "123456",
			CardNumberLastDigits:  "9876",
			CardExpiryDate:        "10/28",
			RecipientName:         "Jim Halls",
			BillingAddress: &credit.BillingAddress{
				ID:       uuid.New(),
				Line1:    "102 Petty France",
				City:     "London",
				Postcode: "sw1a 1aa",
			},
		},
	}
}

func bankTransferCredit() *credit.Credit {
	prisonID := "IXB"
	return &credit.Credit{
		ID:             uuid.New(),
		Amount:         2000,
		PrisonerNumber: "A1409AE",
		PrisonerName:   "JAMES HALLS",
		PrisonID:       &prisonID,
		Resolution:     credit.ResolutionPending,
		ReceivedAt:     time.Now(),
		BankTransfer: &credit.BankTransfer{
			ID:            uuid.New(),
			SenderName:    "MRS J SENDER",
			SortCode:      "601613",
			AccountNumber: "12312345",
			RollNumber:    "",
		},
	}
}
