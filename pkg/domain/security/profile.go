// Package security defines the canonical identity profiles built from
// transaction history, and the fraud check workflow that holds pending
// credits for review.
//
// Profiles deduplicate financial-instrument identities across payment
// channels. Matching is by exact normalized value equality, never fuzzy:
// under-merging (a spare profile) is safe, over-merging is a fraud risk.
package security

import (
	"time"

	"github.com/google/uuid"
)

// BankAccount is a shared value object, unique per
// (sort code, account number, roll number) triple. Both sender and recipient
// bank transfer details reference it, and it can be monitored by users.
type BankAccount struct {
	ID            uuid.UUID
	SortCode      string
	AccountNumber string
	RollNumber    string
}

// BankTransferSenderDetails ties a sender profile to a named bank account.
type BankTransferSenderDetails struct {
	ID              uuid.UUID
	SenderProfileID uuid.UUID
	SenderName      string
	BankAccount     BankAccount
}

// DebitCardSenderDetails is a sender profile's card identity: last four
// digits, expiry and normalised billing postcode. Cardholder names and
// sender emails accumulate as deduplicated histories, never overwrite.
type DebitCardSenderDetails struct {
	ID                   uuid.UUID
	SenderProfileID      uuid.UUID
	CardNumberLastDigits string
	CardExpiryDate       string
	Postcode             *string
	CardholderNames      []string
	SenderEmails         []string
}

// SenderProfile is the canonical identity of a payer. A single well-known
// anonymous profile (no bank transfer nor debit card details) stands in for
// credits matching neither channel.
type SenderProfile struct {
	ID          uuid.UUID
	CreditCount int64
	CreditTotal int64

	BankTransferDetails *BankTransferSenderDetails
	DebitCardDetails    *DebitCardSenderDetails

	// NOMIS ids of prisons this sender has paid into.
	Prisons []string

	CreatedAt  time.Time
	ModifiedAt time.Time
}

// IsAnonymous reports whether this is the anonymous sender singleton.
func (p *SenderProfile) IsAnonymous() bool {
	return p.BankTransferDetails == nil && p.DebitCardDetails == nil
}

// PrisonerProfile is the canonical identity of a prisoner, keyed by prisoner
// number.
type PrisonerProfile struct {
	ID               uuid.UUID
	PrisonerNumber   string
	PrisonerName     string
	PrisonerDOB      *time.Time
	SingleOffenderID *string

	CreditCount       int64
	CreditTotal       int64
	DisbursementCount int64
	DisbursementTotal int64

	// CurrentPrisonID tracks the active PrisonerLocation; nil when the
	// prisoner has no active location.
	CurrentPrisonID *string
	// NOMIS ids of prisons ever associated with this prisoner.
	Prisons []string
	// Alternate recipient names seen on payments, deduplicated by exact value.
	ProvidedNames []string

	CreatedAt  time.Time
	ModifiedAt time.Time
}

// BankTransferRecipientDetails ties a recipient profile to a bank account.
type BankTransferRecipientDetails struct {
	ID                 uuid.UUID
	RecipientProfileID uuid.UUID
	BankAccount        BankAccount
}

// RecipientProfile is the canonical identity of a disbursement recipient.
// A single well-known cheque profile (no bank transfer details) stands in
// for all cheque-paid disbursements.
type RecipientProfile struct {
	ID                uuid.UUID
	DisbursementCount int64
	DisbursementTotal int64

	BankTransferDetails *BankTransferRecipientDetails

	Prisons []string

	CreatedAt  time.Time
	ModifiedAt time.Time
}

// IsChequeRecipient reports whether this is the cheque recipient singleton.
func (p *RecipientProfile) IsChequeRecipient() bool {
	return p.BankTransferDetails == nil
}

// PrisonerSeed carries the identity fields used to create or refresh a
// prisoner profile when a credit or disbursement is linked.
type PrisonerSeed struct {
	PrisonerName     string
	PrisonerDOB      *time.Time
	SingleOffenderID *string
}
