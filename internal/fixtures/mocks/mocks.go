// Package mocks provides testify mocks for the repository contracts and a
// pass-through unit of work for service tests.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/credit"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/disbursement"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/prison"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/user"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
	"github.com/stretchr/testify/mock"
)

// UnitOfWork is a fixture implementing repository.UnitOfWork without a
// database. Do invokes fn with the fixture itself, so everything a test
// stubs on the repository fields is visible inside the "transaction".
type UnitOfWork struct {
	CreditRepo           *CreditRepository
	DisbursementRepo     *DisbursementRepository
	SenderProfileRepo    *SenderProfileRepository
	PrisonerProfileRepo  *PrisonerProfileRepository
	RecipientProfileRepo *RecipientProfileRepository
	BankAccountRepo      *BankAccountRepository
	CheckRepo            *CheckRepository
	AutoAcceptRuleRepo   *AutoAcceptRuleRepository
	PrisonerLocationRepo *PrisonerLocationRepository
	UserRepo             *UserRepository
}

// NewUnitOfWork builds a fixture with every repository mock initialised.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		CreditRepo:           &CreditRepository{},
		DisbursementRepo:     &DisbursementRepository{},
		SenderProfileRepo:    &SenderProfileRepository{},
		PrisonerProfileRepo:  &PrisonerProfileRepository{},
		RecipientProfileRepo: &RecipientProfileRepository{},
		BankAccountRepo:      &BankAccountRepository{},
		CheckRepo:            &CheckRepository{},
		AutoAcceptRuleRepo:   &AutoAcceptRuleRepository{},
		PrisonerLocationRepo: &PrisonerLocationRepository{},
		UserRepo:             &UserRepository{},
	}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

func (u *UnitOfWork) Credits() (repository.CreditRepository, error) {
	return u.CreditRepo, nil
}

func (u *UnitOfWork) Disbursements() (repository.DisbursementRepository, error) {
	return u.DisbursementRepo, nil
}

func (u *UnitOfWork) SenderProfiles() (repository.SenderProfileRepository, error) {
	return u.SenderProfileRepo, nil
}

func (u *UnitOfWork) PrisonerProfiles() (repository.PrisonerProfileRepository, error) {
	return u.PrisonerProfileRepo, nil
}

func (u *UnitOfWork) RecipientProfiles() (repository.RecipientProfileRepository, error) {
	return u.RecipientProfileRepo, nil
}

func (u *UnitOfWork) BankAccounts() (repository.BankAccountRepository, error) {
	return u.BankAccountRepo, nil
}

func (u *UnitOfWork) Checks() (repository.CheckRepository, error) {
	return u.CheckRepo, nil
}

func (u *UnitOfWork) AutoAcceptRules() (repository.AutoAcceptRuleRepository, error) {
	return u.AutoAcceptRuleRepo, nil
}

func (u *UnitOfWork) PrisonerLocations() (repository.PrisonerLocationRepository, error) {
	return u.PrisonerLocationRepo, nil
}

func (u *UnitOfWork) Users() (repository.UserRepository, error) {
	return u.UserRepo, nil
}

// CreditRepository mocks repository.CreditRepository.
type CreditRepository struct {
	mock.Mock
}

func (m *CreditRepository) Get(ctx context.Context, id uuid.UUID) (*credit.Credit, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*credit.Credit)
	return c, args.Error(1)
}

func (m *CreditRepository) LinkSenderProfile(ctx context.Context, creditID, profileID uuid.UUID) error {
	return m.Called(ctx, creditID, profileID).Error(0)
}

func (m *CreditRepository) LinkPrisonerProfile(ctx context.Context, creditID, profileID uuid.UUID) error {
	return m.Called(ctx, creditID, profileID).Error(0)
}

func (m *CreditRepository) CountForSenderSince(ctx context.Context, senderProfileID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, senderProfileID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CreditRepository) CountForPrisonerSince(ctx context.Context, prisonerProfileID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, prisonerProfileID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CreditRepository) CountPrisonersForSender(ctx context.Context, senderProfileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, senderProfileID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CreditRepository) CountSendersForPrisoner(ctx context.Context, prisonerProfileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, prisonerProfileID)
	return args.Get(0).(int64), args.Error(1)
}

// DisbursementRepository mocks repository.DisbursementRepository.
type DisbursementRepository struct {
	mock.Mock
}

func (m *DisbursementRepository) Get(ctx context.Context, id uuid.UUID) (*disbursement.Disbursement, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*disbursement.Disbursement)
	return d, args.Error(1)
}

func (m *DisbursementRepository) LinkRecipientProfile(ctx context.Context, disbursementID, profileID uuid.UUID) error {
	return m.Called(ctx, disbursementID, profileID).Error(0)
}

func (m *DisbursementRepository) LinkPrisonerProfile(ctx context.Context, disbursementID, profileID uuid.UUID) error {
	return m.Called(ctx, disbursementID, profileID).Error(0)
}

// SenderProfileRepository mocks repository.SenderProfileRepository.
type SenderProfileRepository struct {
	mock.Mock
}

func (m *SenderProfileRepository) Get(ctx context.Context, id uuid.UUID) (*security.SenderProfile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*security.SenderProfile)
	return p, args.Error(1)
}

func (m *SenderProfileRepository) FindByBankTransfer(ctx context.Context, senderName, sortCode, accountNumber, rollNumber string) (*security.SenderProfile, error) {
	args := m.Called(ctx, senderName, sortCode, accountNumber, rollNumber)
	p, _ := args.Get(0).(*security.SenderProfile)
	return p, args.Error(1)
}

func (m *SenderProfileRepository) FindByDebitCard(ctx context.Context, cardLastDigits, cardExpiryDate string, normalisedPostcode *string) (*security.SenderProfile, error) {
	args := m.Called(ctx, cardLastDigits, cardExpiryDate, normalisedPostcode)
	p, _ := args.Get(0).(*security.SenderProfile)
	return p, args.Error(1)
}

func (m *SenderProfileRepository) GetOrCreateAnonymous(ctx context.Context) (*security.SenderProfile, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*security.SenderProfile)
	return p, args.Error(1)
}

func (m *SenderProfileRepository) CreateWithBankTransferDetails(ctx context.Context, senderName string, bankAccountID uuid.UUID) (*security.SenderProfile, error) {
	args := m.Called(ctx, senderName, bankAccountID)
	p, _ := args.Get(0).(*security.SenderProfile)
	return p, args.Error(1)
}

func (m *SenderProfileRepository) CreateWithDebitCardDetails(ctx context.Context, cardLastDigits, cardExpiryDate string, normalisedPostcode *string) (*security.SenderProfile, error) {
	args := m.Called(ctx, cardLastDigits, cardExpiryDate, normalisedPostcode)
	p, _ := args.Get(0).(*security.SenderProfile)
	return p, args.Error(1)
}

func (m *SenderProfileRepository) AddCardholderName(ctx context.Context, debitCardDetailsID uuid.UUID, name string) error {
	return m.Called(ctx, debitCardDetailsID, name).Error(0)
}

func (m *SenderProfileRepository) AddSenderEmail(ctx context.Context, debitCardDetailsID uuid.UUID, email string) error {
	return m.Called(ctx, debitCardDetailsID, email).Error(0)
}

func (m *SenderProfileRepository) AttachBillingAddress(ctx context.Context, billingAddressID, debitCardDetailsID uuid.UUID) error {
	return m.Called(ctx, billingAddressID, debitCardDetailsID).Error(0)
}

func (m *SenderProfileRepository) AddPrison(ctx context.Context, profileID uuid.UUID, prisonID string) error {
	return m.Called(ctx, profileID, prisonID).Error(0)
}

func (m *SenderProfileRepository) RecalculateCreditTotals(ctx context.Context, ids ...uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *SenderProfileRepository) IsMonitored(ctx context.Context, profileID uuid.UUID) (bool, error) {
	args := m.Called(ctx, profileID)
	return args.Bool(0), args.Error(1)
}

// PrisonerProfileRepository mocks repository.PrisonerProfileRepository.
type PrisonerProfileRepository struct {
	mock.Mock
}

func (m *PrisonerProfileRepository) Get(ctx context.Context, id uuid.UUID) (*security.PrisonerProfile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*security.PrisonerProfile)
	return p, args.Error(1)
}

func (m *PrisonerProfileRepository) GetByNumber(ctx context.Context, prisonerNumber string) (*security.PrisonerProfile, error) {
	args := m.Called(ctx, prisonerNumber)
	p, _ := args.Get(0).(*security.PrisonerProfile)
	return p, args.Error(1)
}

func (m *PrisonerProfileRepository) Upsert(ctx context.Context, prisonerNumber string, seed security.PrisonerSeed) (*security.PrisonerProfile, error) {
	args := m.Called(ctx, prisonerNumber, seed)
	p, _ := args.Get(0).(*security.PrisonerProfile)
	return p, args.Error(1)
}

func (m *PrisonerProfileRepository) AddPrison(ctx context.Context, profileID uuid.UUID, prisonID string) error {
	return m.Called(ctx, profileID, prisonID).Error(0)
}

func (m *PrisonerProfileRepository) AddProvidedName(ctx context.Context, profileID uuid.UUID, name string) error {
	return m.Called(ctx, profileID, name).Error(0)
}

func (m *PrisonerProfileRepository) RecalculateCreditTotals(ctx context.Context, ids ...uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *PrisonerProfileRepository) RecalculateDisbursementTotals(ctx context.Context, ids ...uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *PrisonerProfileRepository) UpdateCurrentPrisons(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *PrisonerProfileRepository) IsMonitored(ctx context.Context, profileID uuid.UUID) (bool, error) {
	args := m.Called(ctx, profileID)
	return args.Bool(0), args.Error(1)
}

// RecipientProfileRepository mocks repository.RecipientProfileRepository.
type RecipientProfileRepository struct {
	mock.Mock
}

func (m *RecipientProfileRepository) Get(ctx context.Context, id uuid.UUID) (*security.RecipientProfile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*security.RecipientProfile)
	return p, args.Error(1)
}

func (m *RecipientProfileRepository) FindByBankAccount(ctx context.Context, sortCode, accountNumber, rollNumber string) (*security.RecipientProfile, error) {
	args := m.Called(ctx, sortCode, accountNumber, rollNumber)
	p, _ := args.Get(0).(*security.RecipientProfile)
	return p, args.Error(1)
}

func (m *RecipientProfileRepository) GetOrCreateChequeRecipient(ctx context.Context) (*security.RecipientProfile, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(*security.RecipientProfile)
	return p, args.Error(1)
}

func (m *RecipientProfileRepository) CreateWithBankTransferDetails(ctx context.Context, bankAccountID uuid.UUID) (*security.RecipientProfile, error) {
	args := m.Called(ctx, bankAccountID)
	p, _ := args.Get(0).(*security.RecipientProfile)
	return p, args.Error(1)
}

func (m *RecipientProfileRepository) AddPrison(ctx context.Context, profileID uuid.UUID, prisonID string) error {
	return m.Called(ctx, profileID, prisonID).Error(0)
}

func (m *RecipientProfileRepository) RecalculateDisbursementTotals(ctx context.Context, ids ...uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

// BankAccountRepository mocks repository.BankAccountRepository.
type BankAccountRepository struct {
	mock.Mock
}

func (m *BankAccountRepository) GetOrCreate(ctx context.Context, sortCode, accountNumber, rollNumber string) (*security.BankAccount, error) {
	args := m.Called(ctx, sortCode, accountNumber, rollNumber)
	a, _ := args.Get(0).(*security.BankAccount)
	return a, args.Error(1)
}

// CheckRepository mocks repository.CheckRepository.
type CheckRepository struct {
	mock.Mock
}

func (m *CheckRepository) Get(ctx context.Context, id uuid.UUID) (*security.Check, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*security.Check)
	return c, args.Error(1)
}

func (m *CheckRepository) Create(ctx context.Context, check *security.Check) error {
	return m.Called(ctx, check).Error(0)
}

func (m *CheckRepository) UpdateDecision(ctx context.Context, check *security.Check) error {
	return m.Called(ctx, check).Error(0)
}

func (m *CheckRepository) UpdateAssignment(ctx context.Context, checkID uuid.UUID, assignee *uuid.UUID) error {
	return m.Called(ctx, checkID, assignee).Error(0)
}

// AutoAcceptRuleRepository mocks repository.AutoAcceptRuleRepository.
type AutoAcceptRuleRepository struct {
	mock.Mock
}

func (m *AutoAcceptRuleRepository) Get(ctx context.Context, id uuid.UUID) (*security.CheckAutoAcceptRule, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*security.CheckAutoAcceptRule)
	return r, args.Error(1)
}

func (m *AutoAcceptRuleRepository) FindByPair(ctx context.Context, debitCardDetailsID, prisonerProfileID uuid.UUID) (*security.CheckAutoAcceptRule, error) {
	args := m.Called(ctx, debitCardDetailsID, prisonerProfileID)
	r, _ := args.Get(0).(*security.CheckAutoAcceptRule)
	return r, args.Error(1)
}

func (m *AutoAcceptRuleRepository) Create(ctx context.Context, debitCardDetailsID, prisonerProfileID uuid.UUID) (*security.CheckAutoAcceptRule, error) {
	args := m.Called(ctx, debitCardDetailsID, prisonerProfileID)
	r, _ := args.Get(0).(*security.CheckAutoAcceptRule)
	return r, args.Error(1)
}

func (m *AutoAcceptRuleRepository) AppendState(ctx context.Context, ruleID uuid.UUID, active bool, reason string, addedBy uuid.UUID) (*security.CheckAutoAcceptRuleState, error) {
	args := m.Called(ctx, ruleID, active, reason, addedBy)
	s, _ := args.Get(0).(*security.CheckAutoAcceptRuleState)
	return s, args.Error(1)
}

// PrisonerLocationRepository mocks repository.PrisonerLocationRepository.
type PrisonerLocationRepository struct {
	mock.Mock
}

func (m *PrisonerLocationRepository) GetActive(ctx context.Context, prisonerNumber string) (*prison.PrisonerLocation, error) {
	args := m.Called(ctx, prisonerNumber)
	l, _ := args.Get(0).(*prison.PrisonerLocation)
	return l, args.Error(1)
}

// UserRepository mocks repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
