// Package repository defines the persistence contracts used by the security
// services. Implementations live in infra; all methods are bound to the
// session of the UnitOfWork that produced them.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/credit"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/disbursement"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/prison"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/user"
)

// CreditRepository loads credits with their payment channel and links them to
// profiles. Link methods set the foreign key at most once: linking an
// already-linked credit returns domain.ErrIntegrity.
type CreditRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*credit.Credit, error)
	LinkSenderProfile(ctx context.Context, creditID, profileID uuid.UUID) error
	LinkPrisonerProfile(ctx context.Context, creditID, profileID uuid.UUID) error

	// Aggregate facts for rule evaluation.
	CountForSenderSince(ctx context.Context, senderProfileID uuid.UUID, since time.Time) (int64, error)
	CountForPrisonerSince(ctx context.Context, prisonerProfileID uuid.UUID, since time.Time) (int64, error)
	CountPrisonersForSender(ctx context.Context, senderProfileID uuid.UUID) (int64, error)
	CountSendersForPrisoner(ctx context.Context, prisonerProfileID uuid.UUID) (int64, error)
}

// DisbursementRepository loads disbursements and links them to profiles with
// the same set-at-most-once semantics as CreditRepository.
type DisbursementRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*disbursement.Disbursement, error)
	LinkRecipientProfile(ctx context.Context, disbursementID, profileID uuid.UUID) error
	LinkPrisonerProfile(ctx context.Context, disbursementID, profileID uuid.UUID) error
}

// SenderProfileRepository matches and maintains canonical payer identities.
// Find methods match by exact normalized value equality and return
// domain.ErrNotFound when no profile matches.
type SenderProfileRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*security.SenderProfile, error)
	FindByBankTransfer(ctx context.Context, senderName, sortCode, accountNumber, rollNumber string) (*security.SenderProfile, error)
	FindByDebitCard(ctx context.Context, cardLastDigits, cardExpiryDate string, normalisedPostcode *string) (*security.SenderProfile, error)
	GetOrCreateAnonymous(ctx context.Context) (*security.SenderProfile, error)
	CreateWithBankTransferDetails(ctx context.Context, senderName string, bankAccountID uuid.UUID) (*security.SenderProfile, error)
	CreateWithDebitCardDetails(ctx context.Context, cardLastDigits, cardExpiryDate string, normalisedPostcode *string) (*security.SenderProfile, error)

	// History appends are deduplicated by exact value and idempotent.
	AddCardholderName(ctx context.Context, debitCardDetailsID uuid.UUID, name string) error
	AddSenderEmail(ctx context.Context, debitCardDetailsID uuid.UUID, email string) error
	AttachBillingAddress(ctx context.Context, billingAddressID, debitCardDetailsID uuid.UUID) error
	AddPrison(ctx context.Context, profileID uuid.UUID, prisonID string) error

	// RecalculateCreditTotals recomputes credit_count/credit_total as a
	// snapshot over currently linked credits; empty ids means all profiles.
	RecalculateCreditTotals(ctx context.Context, ids ...uuid.UUID) error
	IsMonitored(ctx context.Context, profileID uuid.UUID) (bool, error)
}

// PrisonerProfileRepository matches and maintains canonical prisoner
// identities keyed by prisoner number.
type PrisonerProfileRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*security.PrisonerProfile, error)
	GetByNumber(ctx context.Context, prisonerNumber string) (*security.PrisonerProfile, error)
	// Upsert creates the profile for a prisoner number or refreshes its
	// identity fields, recovering from concurrent creation by re-fetching.
	Upsert(ctx context.Context, prisonerNumber string, seed security.PrisonerSeed) (*security.PrisonerProfile, error)
	AddPrison(ctx context.Context, profileID uuid.UUID, prisonID string) error
	AddProvidedName(ctx context.Context, profileID uuid.UUID, name string) error

	RecalculateCreditTotals(ctx context.Context, ids ...uuid.UUID) error
	RecalculateDisbursementTotals(ctx context.Context, ids ...uuid.UUID) error
	// UpdateCurrentPrisons resynchronises every profile's current prison
	// from the active prisoner location, nulling it when none is active.
	UpdateCurrentPrisons(ctx context.Context) error
	IsMonitored(ctx context.Context, profileID uuid.UUID) (bool, error)
}

// RecipientProfileRepository matches and maintains canonical disbursement
// recipient identities.
type RecipientProfileRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*security.RecipientProfile, error)
	FindByBankAccount(ctx context.Context, sortCode, accountNumber, rollNumber string) (*security.RecipientProfile, error)
	GetOrCreateChequeRecipient(ctx context.Context) (*security.RecipientProfile, error)
	CreateWithBankTransferDetails(ctx context.Context, bankAccountID uuid.UUID) (*security.RecipientProfile, error)
	AddPrison(ctx context.Context, profileID uuid.UUID, prisonID string) error

	RecalculateDisbursementTotals(ctx context.Context, ids ...uuid.UUID) error
}

// BankAccountRepository maintains the shared bank account value objects.
type BankAccountRepository interface {
	// GetOrCreate is race-safe: a unique-constraint violation from a
	// concurrent insert is recovered by re-fetching.
	GetOrCreate(ctx context.Context, sortCode, accountNumber, rollNumber string) (*security.BankAccount, error)
}

// CheckRepository persists fraud checks. Create enforces the one-check-per-
// credit constraint (duplicate → domain.ErrIntegrity). UpdateDecision is an
// atomic compare-and-set on pending status (lost race → domain.ErrConflict).
type CheckRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*security.Check, error)
	Create(ctx context.Context, check *security.Check) error
	UpdateDecision(ctx context.Context, check *security.Check) error
	UpdateAssignment(ctx context.Context, checkID uuid.UUID, assignee *uuid.UUID) error
}

// AutoAcceptRuleRepository persists auto-accept rules and their append-only
// state histories.
type AutoAcceptRuleRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*security.CheckAutoAcceptRule, error)
	FindByPair(ctx context.Context, debitCardDetailsID, prisonerProfileID uuid.UUID) (*security.CheckAutoAcceptRule, error)
	// Create returns security.ErrAutoAcceptRuleExists when a rule for the
	// pair already exists.
	Create(ctx context.Context, debitCardDetailsID, prisonerProfileID uuid.UUID) (*security.CheckAutoAcceptRule, error)
	AppendState(ctx context.Context, ruleID uuid.UUID, active bool, reason string, addedBy uuid.UUID) (*security.CheckAutoAcceptRuleState, error)
}

// PrisonerLocationRepository reads the active location for a prisoner.
type PrisonerLocationRepository interface {
	GetActive(ctx context.Context, prisonerNumber string) (*prison.PrisonerLocation, error)
}

// UserRepository reads decision actors.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
}
