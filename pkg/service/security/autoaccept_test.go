package security

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateAutoAcceptRule(t *testing.T) {
	svc, uow := newServiceWithMocks()
	detailsID, prisonerID, addedBy := uuid.New(), uuid.New(), uuid.New()
	created := &security.CheckAutoAcceptRule{
		ID:                       uuid.New(),
		DebitCardSenderDetailsID: detailsID,
		PrisonerProfileID:        prisonerID,
	}
	state := &security.CheckAutoAcceptRuleState{
		ID:               uuid.New(),
		AutoAcceptRuleID: created.ID,
		Active:           true,
		Reason:           "known good sender",
		AddedByID:        addedBy,
	}

	uow.AutoAcceptRuleRepo.On("FindByPair", mock.Anything, detailsID, prisonerID).
		Return(nil, domain.ErrNotFound)
	uow.AutoAcceptRuleRepo.On("Create", mock.Anything, detailsID, prisonerID).Return(created, nil)
	uow.AutoAcceptRuleRepo.On("AppendState", mock.Anything, created.ID, true, "known good sender", addedBy).
		Return(state, nil)

	rule, err := svc.CreateAutoAcceptRule(context.Background(), detailsID, prisonerID,
		AutoAcceptState{Active: true, Reason: "known good sender", AddedBy: addedBy})
	require.NoError(t, err)
	assert.True(t, rule.IsActive())
	assert.Len(t, rule.States, 1)
}

func TestCreateAutoAcceptRule_InitialStateAlwaysActive(t *testing.T) {
	svc, uow := newServiceWithMocks()
	detailsID, prisonerID, addedBy := uuid.New(), uuid.New(), uuid.New()
	created := &security.CheckAutoAcceptRule{
		ID:                       uuid.New(),
		DebitCardSenderDetailsID: detailsID,
		PrisonerProfileID:        prisonerID,
	}
	state := &security.CheckAutoAcceptRuleState{
		ID:               uuid.New(),
		AutoAcceptRuleID: created.ID,
		Active:           true,
		Reason:           "trusted sender",
		AddedByID:        addedBy,
	}

	uow.AutoAcceptRuleRepo.On("FindByPair", mock.Anything, detailsID, prisonerID).
		Return(nil, domain.ErrNotFound)
	uow.AutoAcceptRuleRepo.On("Create", mock.Anything, detailsID, prisonerID).Return(created, nil)
	uow.AutoAcceptRuleRepo.On("AppendState", mock.Anything, created.ID, true, "trusted sender", addedBy).
		Return(state, nil)

	// an inactive initial state in the payload is overridden
	rule, err := svc.CreateAutoAcceptRule(context.Background(), detailsID, prisonerID,
		AutoAcceptState{Active: false, Reason: "trusted sender", AddedBy: addedBy})
	require.NoError(t, err)
	assert.True(t, rule.IsActive())
	uow.AutoAcceptRuleRepo.AssertNotCalled(t, "AppendState",
		mock.Anything, created.ID, false, mock.Anything, mock.Anything)
}

func TestCreateAutoAcceptRule_DuplicatePair(t *testing.T) {
	svc, uow := newServiceWithMocks()
	detailsID, prisonerID := uuid.New(), uuid.New()
	existing := &security.CheckAutoAcceptRule{ID: uuid.New()}

	uow.AutoAcceptRuleRepo.On("FindByPair", mock.Anything, detailsID, prisonerID).Return(existing, nil)

	rule, err := svc.CreateAutoAcceptRule(context.Background(), detailsID, prisonerID,
		AutoAcceptState{Active: true, Reason: "x", AddedBy: uuid.New()})
	assert.ErrorIs(t, err, security.ErrAutoAcceptRuleExists)
	assert.EqualError(t, err,
		"An existing AutoAcceptRule is present for this DebitCardSenderDetails/PrisonerProfile pair")
	assert.Nil(t, rule)
	uow.AutoAcceptRuleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppendAutoAcceptState(t *testing.T) {
	svc, uow := newServiceWithMocks()
	addedBy := uuid.New()
	existing := &security.CheckAutoAcceptRule{
		ID:     uuid.New(),
		States: []security.CheckAutoAcceptRuleState{{ID: uuid.New(), Active: true}},
	}
	deactivation := &security.CheckAutoAcceptRuleState{
		ID:               uuid.New(),
		AutoAcceptRuleID: existing.ID,
		Active:           false,
		Reason:           "sender now under investigation",
		AddedByID:        addedBy,
	}

	uow.AutoAcceptRuleRepo.On("Get", mock.Anything, existing.ID).Return(existing, nil)
	uow.AutoAcceptRuleRepo.On("AppendState", mock.Anything, existing.ID, false,
		"sender now under investigation", addedBy).
		Return(deactivation, nil)

	rule, err := svc.AppendAutoAcceptState(context.Background(), existing.ID,
		AutoAcceptState{Active: false, Reason: "sender now under investigation", AddedBy: addedBy})
	require.NoError(t, err)
	assert.Len(t, rule.States, 2)
}
