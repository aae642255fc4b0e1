// Package disbursement defines the money-out side of the platform: a payment
// sent out of a prisoner's account to a recipient by bank transfer or cheque.
package disbursement

import (
	"time"

	"github.com/google/uuid"
)

// Method is how a disbursement is paid out.
type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodCheque       Method = "cheque"
)

// Resolution is the lifecycle status of a disbursement.
type Resolution string

const (
	ResolutionPending      Resolution = "pending"
	ResolutionPreconfirmed Resolution = "preconfirmed"
	ResolutionConfirmed    Resolution = "confirmed"
	ResolutionSent         Resolution = "sent"
	ResolutionRejected     Resolution = "rejected"
)

// Disbursement is a money-out event. Profile links are set once by the
// identity resolver and never reassigned.
type Disbursement struct {
	ID             uuid.UUID
	Amount         int64 // minor currency units
	Method         Method
	Resolution     Resolution
	PrisonerNumber string
	PrisonerName   string
	PrisonID       string
	CreatedAt      time.Time

	RecipientFirstName string
	RecipientLastName  string
	RecipientEmail     string
	AddressLine1       string
	AddressLine2       string
	City               string
	Postcode           string

	// Bank transfer destination; empty for cheques.
	SortCode      string
	AccountNumber string
	RollNumber    string

	RecipientProfileID *uuid.UUID
	PrisonerProfileID  *uuid.UUID
}
