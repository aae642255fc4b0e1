package security

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRecalculateAggregates_ScopedIDs(t *testing.T) {
	svc, uow := newServiceWithMocks()
	senderID, prisonerID := uuid.New(), uuid.New()
	scope := AggregateScope{
		SenderIDs:   []uuid.UUID{senderID},
		PrisonerIDs: []uuid.UUID{prisonerID},
	}

	uow.SenderProfileRepo.On("RecalculateCreditTotals", mock.Anything, []uuid.UUID{senderID}).Return(nil)
	uow.PrisonerProfileRepo.On("RecalculateCreditTotals", mock.Anything, []uuid.UUID{prisonerID}).Return(nil)
	uow.PrisonerProfileRepo.On("RecalculateDisbursementTotals", mock.Anything, []uuid.UUID{prisonerID}).Return(nil)
	uow.RecipientProfileRepo.On("RecalculateDisbursementTotals", mock.Anything, []uuid.UUID(nil)).Return(nil)

	assert.NoError(t, svc.RecalculateAggregates(context.Background(), scope))
	uow.SenderProfileRepo.AssertExpectations(t)
	uow.PrisonerProfileRepo.AssertExpectations(t)
	uow.RecipientProfileRepo.AssertExpectations(t)
}

func TestUpdateCurrentPrisons(t *testing.T) {
	svc, uow := newServiceWithMocks()
	uow.PrisonerProfileRepo.On("UpdateCurrentPrisons", mock.Anything).Return(nil)

	assert.NoError(t, svc.UpdateCurrentPrisons(context.Background()))
	uow.PrisonerProfileRepo.AssertExpectations(t)
}
