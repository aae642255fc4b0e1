package security

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/disbursement"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/prison"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveSender_AlreadyLinkedIsNoOp(t *testing.T) {
	svc, uow := newServiceWithMocks()
	c := bankTransferCredit()
	linked := uuid.New()
	c.SenderProfileID = &linked
	existing := &security.SenderProfile{ID: linked}

	uow.CreditRepo.On("Get", mock.Anything, c.ID).Return(c, nil)
	uow.SenderProfileRepo.On("Get", mock.Anything, linked).Return(existing, nil)

	profile, err := svc.ResolveSender(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, profile)
	uow.CreditRepo.AssertNotCalled(t, "LinkSenderProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveSender_BankTransferMatchesExisting(t *testing.T) {
	svc, uow := newServiceWithMocks()
	c := bankTransferCredit()
	existing := &security.SenderProfile{ID: uuid.New()}

	uow.CreditRepo.On("Get", mock.Anything, c.ID).Return(c, nil)
	uow.SenderProfileRepo.
		On("FindByBankTransfer", mock.Anything, "MRS J SENDER", "601613", "12312345", "").
		Return(existing, nil)
	uow.SenderProfileRepo.On("AddPrison", mock.Anything, existing.ID, "IXB").Return(nil)
	uow.CreditRepo.On("LinkSenderProfile", mock.Anything, c.ID, existing.ID).Return(nil)

	profile, err := svc.ResolveSender(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, profile.ID)
	uow.SenderProfileRepo.AssertNotCalled(t, "CreateWithBankTransferDetails",
		mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveSender_BankTransferCreatesProfile(t *testing.T) {
	svc, uow := newServiceWithMocks()
	c := bankTransferCredit()
	account := &security.BankAccount{ID: uuid.New()}
	created := &security.SenderProfile{ID: uuid.New()}

	uow.CreditRepo.On("Get", mock.Anything, c.ID).Return(c, nil)
	uow.SenderProfileRepo.
		On("FindByBankTransfer", mock.Anything, "MRS J SENDER", "601613", "12312345", "").
		Return(nil, domain.ErrNotFound)
	uow.BankAccountRepo.On("GetOrCreate", mock.Anything, "601613", "12312345", "").Return(account, nil)
	uow.SenderProfileRepo.
		On("CreateWithBankTransferDetails", mock.Anything, "MRS J SENDER", account.ID).
		Return(created, nil)
	uow.SenderProfileRepo.On("AddPrison", mock.Anything, created.ID, "IXB").Return(nil)
	uow.CreditRepo.On("LinkSenderProfile", mock.Anything, c.ID, created.ID).Return(nil)

	profile, err := svc.ResolveSender(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)
}

func TestResolveSender_DebitCardCreatesProfileAndHistories(t *testing.T) {
	svc, uow := newServiceWithMocks()
	c := cardCredit()
	detailsID := uuid.New()
	created := &security.SenderProfile{
		ID: uuid.New(),
		DebitCardDetails: &security.DebitCardSenderDetails{
			ID:                   detailsID,
			CardNumberLastDigits: "9876",
			CardExpiryDate:       "10/28",
		},
	}
	normalised := func(p *string) bool { return p != nil && *p == "SW1A1AA" }

	uow.CreditRepo.On("Get", mock.Anything, c.ID).Return(c, nil)
	uow.SenderProfileRepo.
		On("FindByDebitCard", mock.Anything, "9876", "10/28", mock.MatchedBy(normalised)).
		Return(nil, domain.ErrNotFound)
	uow.SenderProfileRepo.
		On("CreateWithDebitCardDetails", mock.Anything, "9876", "10/28", mock.MatchedBy(normalised)).
		Return(created, nil)
	uow.SenderProfileRepo.On("AddCardholderName", mock.Anything, detailsID, "Jo Sender").Return(nil)
	uow.SenderProfileRepo.On("AddSenderEmail", mock.Anything, detailsID, "sender@example.com").Return(nil)
	uow.SenderProfileRepo.
		On("AttachBillingAddress", mock.Anything, c.Payment.BillingAddress.ID, detailsID).
		Return(nil)
	uow.SenderProfileRepo.On("AddPrison", mock.Anything, created.ID, "IXB").Return(nil)
	uow.CreditRepo.On("LinkSenderProfile", mock.Anything, c.ID, created.ID).Return(nil)

	profile, err := svc.ResolveSender(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)
	uow.SenderProfileRepo.AssertExpectations(t)
}

func TestResolveSender_NoChannelFallsBackToAnonymous(t *testing.T) {
	svc, uow := newServiceWithMocks()
	c := bankTransferCredit()
	c.BankTransfer = nil
	anonymous := &security.SenderProfile{ID: uuid.New()}

	uow.CreditRepo.On("Get", mock.Anything, c.ID).Return(c, nil)
	uow.SenderProfileRepo.On("GetOrCreateAnonymous", mock.Anything).Return(anonymous, nil)
	uow.SenderProfileRepo.On("AddPrison", mock.Anything, anonymous.ID, "IXB").Return(nil)
	uow.CreditRepo.On("LinkSenderProfile", mock.Anything, c.ID, anonymous.ID).Return(nil)

	profile, err := svc.ResolveSender(context.Background(), c.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsAnonymous())
}

func TestResolvePrisonerForCredit(t *testing.T) {
	svc, uow := newServiceWithMocks()
	c := cardCredit()
	profile := &security.PrisonerProfile{ID: uuid.New(), PrisonerNumber: "A1409AE"}

	uow.CreditRepo.On("Get", mock.Anything, c.ID).Return(c, nil)
	uow.PrisonerProfileRepo.
		On("Upsert", mock.Anything, "A1409AE", security.PrisonerSeed{PrisonerName: "JAMES HALLS"}).
		Return(profile, nil)
	uow.PrisonerProfileRepo.On("AddProvidedName", mock.Anything, profile.ID, "Jim Halls").Return(nil)
	uow.PrisonerProfileRepo.On("AddPrison", mock.Anything, profile.ID, "IXB").Return(nil)
	uow.CreditRepo.On("LinkPrisonerProfile", mock.Anything, c.ID, profile.ID).Return(nil)

	resolved, err := svc.ResolvePrisonerForCredit(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, resolved.ID)
	uow.PrisonerProfileRepo.AssertExpectations(t)
}

func TestResolvePrisonerForCredit_NoPrisonIsIntegrityError(t *testing.T) {
	svc, uow := newServiceWithMocks()
	c := cardCredit()
	c.PrisonID = nil

	uow.CreditRepo.On("Get", mock.Anything, c.ID).Return(c, nil)

	profile, err := svc.ResolvePrisonerForCredit(context.Background(), c.ID)
	assert.ErrorIs(t, err, domain.ErrIntegrity)
	assert.Nil(t, profile)
}

func TestResolvePrisonerForDisbursement_BackfillsFromLocation(t *testing.T) {
	svc, uow := newServiceWithMocks()
	d := &disbursement.Disbursement{
		ID:             uuid.New(),
		Method:         disbursement.MethodBankTransfer,
		PrisonerNumber: "A1409AE",
		PrisonerName:   "JAMES HALLS",
		PrisonID:       "IXB",
	}
	singleOffenderID := "a1a1a1a1-1234-1234-1234-123412341234"
	location := &prison.PrisonerLocation{
		PrisonerNumber:   "A1409AE",
		PrisonID:         "IXB",
		SingleOffenderID: &singleOffenderID,
		Active:           true,
	}
	profile := &security.PrisonerProfile{ID: uuid.New(), PrisonerNumber: "A1409AE"}

	uow.DisbursementRepo.On("Get", mock.Anything, d.ID).Return(d, nil)
	uow.PrisonerLocationRepo.On("GetActive", mock.Anything, "A1409AE").Return(location, nil)
	uow.PrisonerProfileRepo.
		On("Upsert", mock.Anything, "A1409AE", security.PrisonerSeed{
			PrisonerName:     "JAMES HALLS",
			SingleOffenderID: &singleOffenderID,
		}).
		Return(profile, nil)
	uow.PrisonerProfileRepo.On("AddPrison", mock.Anything, profile.ID, "IXB").Return(nil)
	uow.DisbursementRepo.On("LinkPrisonerProfile", mock.Anything, d.ID, profile.ID).Return(nil)

	resolved, err := svc.ResolvePrisonerForDisbursement(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, resolved.ID)
}

func TestResolveRecipient_ChequeUsesSharedProfile(t *testing.T) {
	svc, uow := newServiceWithMocks()
	d := &disbursement.Disbursement{
		ID:             uuid.New(),
		Method:         disbursement.MethodCheque,
		PrisonerNumber: "A1409AE",
		PrisonID:       "IXB",
	}
	cheque := &security.RecipientProfile{ID: uuid.New()}

	uow.DisbursementRepo.On("Get", mock.Anything, d.ID).Return(d, nil)
	uow.RecipientProfileRepo.On("GetOrCreateChequeRecipient", mock.Anything).Return(cheque, nil)
	uow.RecipientProfileRepo.On("AddPrison", mock.Anything, cheque.ID, "IXB").Return(nil)
	uow.DisbursementRepo.On("LinkRecipientProfile", mock.Anything, d.ID, cheque.ID).Return(nil)

	profile, err := svc.ResolveRecipient(context.Background(), d.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsChequeRecipient())
	uow.RecipientProfileRepo.AssertNotCalled(t, "FindByBankAccount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveRecipient_BankTransferCreatesProfile(t *testing.T) {
	svc, uow := newServiceWithMocks()
	d := &disbursement.Disbursement{
		ID:             uuid.New(),
		Method:         disbursement.MethodBankTransfer,
		PrisonerNumber: "A1409AE",
		PrisonID:       "IXB",
		SortCode:       "601613",
		AccountNumber:  "12312345",
	}
	account := &security.BankAccount{ID: uuid.New()}
	created := &security.RecipientProfile{
		ID:                  uuid.New(),
		BankTransferDetails: &security.BankTransferRecipientDetails{ID: uuid.New()},
	}

	uow.DisbursementRepo.On("Get", mock.Anything, d.ID).Return(d, nil)
	uow.RecipientProfileRepo.
		On("FindByBankAccount", mock.Anything, "601613", "12312345", "").
		Return(nil, domain.ErrNotFound)
	uow.BankAccountRepo.On("GetOrCreate", mock.Anything, "601613", "12312345", "").Return(account, nil)
	uow.RecipientProfileRepo.On("CreateWithBankTransferDetails", mock.Anything, account.ID).Return(created, nil)
	uow.RecipientProfileRepo.On("AddPrison", mock.Anything, created.ID, "IXB").Return(nil)
	uow.DisbursementRepo.On("LinkRecipientProfile", mock.Anything, d.ID, created.ID).Return(nil)

	profile, err := svc.ResolveRecipient(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)
}
