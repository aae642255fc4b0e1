// Package credit defines the money-in side of the platform: a credit sent to
// a prisoner, together with the payment channel it arrived on (debit card
// payment or bank transfer).
package credit

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Resolution is the lifecycle status of a credit.
type Resolution string

const (
	ResolutionInitial  Resolution = "initial"
	ResolutionPending  Resolution = "pending"
	ResolutionCredited Resolution = "credited"
	ResolutionFailed   Resolution = "failed"
)

// PaymentStatus is the lifecycle status of a debit card payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentTaken    PaymentStatus = "taken"
	PaymentRejected PaymentStatus = "rejected"
	PaymentExpired  PaymentStatus = "expired"
	PaymentFailed   PaymentStatus = "failed"
)

// BillingAddress is the cardholder address captured with a debit card payment.
type BillingAddress struct {
	ID       uuid.UUID
	Line1    string
	Line2    string
	City     string
	Country  string
	Postcode string

	// Back-reference filled in once the payment is linked to canonical
	// debit card sender details.
	DebitCardSenderDetailsID *uuid.UUID
}

// NormalisedPostcode returns the postcode upper-cased with spaces removed,
// or nil when the address or postcode is missing. Profile matching compares
// postcodes in this form only.
func (b *BillingAddress) NormalisedPostcode() *string {
	if b == nil || b.Postcode == "" {
		return nil
	}
	normalised := strings.ToUpper(strings.ReplaceAll(b.Postcode, " ", ""))
	return &normalised
}

// Payment is the debit card origin of a credit.
type Payment struct {
	ID                    uuid.UUID
	CreditID              uuid.UUID
	Status                PaymentStatus
	Email                 string
	CardholderName        string
	CardNumberFirstDigits string
	CardNumberLastDigits  string
	CardExpiryDate        string
	RecipientName         string
	BillingAddress        *BillingAddress
	CreatedAt             time.Time
}

// BankTransfer is the bank transfer origin of a credit.
type BankTransfer struct {
	ID            uuid.UUID
	CreditID      uuid.UUID
	SenderName    string
	SortCode      string
	AccountNumber string
	RollNumber    string
	ReceivedAt    time.Time
}

// Credit is a money-in event addressed to a prisoner. A credit arrives on at
// most one channel: Payment (debit card) or BankTransfer. Profile links are
// set once by the identity resolver and never reassigned.
type Credit struct {
	ID               uuid.UUID
	Amount           int64 // minor currency units
	PrisonerNumber   string
	PrisonerName     string
	PrisonerDOB      *time.Time
	SingleOffenderID *string
	PrisonID         *string
	Resolution       Resolution
	ReceivedAt       time.Time

	Payment      *Payment
	BankTransfer *BankTransfer

	SenderProfileID   *uuid.UUID
	PrisonerProfileID *uuid.UUID
}
