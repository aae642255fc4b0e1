// Package model holds the GORM persistence models for the security core.
// Database-level unique constraints carry the race serialization the domain
// relies on: profile get-or-create recovers from duplicate-key violations by
// re-fetching instead of trusting a query-then-insert window.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
)

type Prison struct {
	NomisID string `gorm:"primaryKey;size:3"`
	Name    string `gorm:"not null"`
}

type PrisonerLocation struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PrisonerNumber   string    `gorm:"index;not null"`
	PrisonerName     string
	PrisonerDOB      *time.Time
	SingleOffenderID *string
	PrisonID         string `gorm:"not null"`
	Active           bool   `gorm:"index"`
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"uniqueIndex;not null;size:150"`
	FirstName string
	LastName  string
}

type Credit struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Amount           int64     `gorm:"not null"`
	PrisonerNumber   string    `gorm:"index"`
	PrisonerName     string
	PrisonerDOB      *time.Time
	SingleOffenderID *string
	PrisonID         *string
	Resolution       string    `gorm:"index;not null"`
	ReceivedAt       time.Time `gorm:"index"`

	Payment      *Payment
	BankTransfer *BankTransfer

	SenderProfileID   *uuid.UUID `gorm:"type:uuid;index"`
	PrisonerProfileID *uuid.UUID `gorm:"type:uuid;index"`
}

type Payment struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreditID              uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Status                string    `gorm:"index;not null"`
	Email                 string
	CardholderName        string
	CardNumberFirstDigits string `gorm:"size:6"`
	CardNumberLastDigits  string `gorm:"size:4"`
	CardExpiryDate        string `gorm:"size:5"`
	RecipientName         string
	BillingAddressID      *uuid.UUID `gorm:"type:uuid"`
	BillingAddress        *BillingAddress
	CreatedAt             time.Time
}

type BillingAddress struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Line1    string
	Line2    string
	City     string
	Country  string
	Postcode string

	DebitCardSenderDetailsID *uuid.UUID `gorm:"type:uuid;index"`
}

type BankTransfer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreditID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	SenderName    string
	SortCode      string `gorm:"size:6"`
	AccountNumber string `gorm:"size:8"`
	RollNumber    string `gorm:"default:''"`
	ReceivedAt    time.Time
}

type Disbursement struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Amount         int64     `gorm:"not null"`
	Method         string    `gorm:"not null"`
	Resolution     string    `gorm:"index;not null"`
	PrisonerNumber string    `gorm:"index"`
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

	SortCode      string
	AccountNumber string
	RollNumber    string `gorm:"default:''"`

	RecipientProfileID *uuid.UUID `gorm:"type:uuid;index"`
	PrisonerProfileID  *uuid.UUID `gorm:"type:uuid;index"`
}

type BankAccount struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SortCode      string    `gorm:"uniqueIndex:idx_bank_account_identity;size:6"`
	AccountNumber string    `gorm:"uniqueIndex:idx_bank_account_identity;size:8"`
	RollNumber    string    `gorm:"uniqueIndex:idx_bank_account_identity;default:''"`

	MonitoringUsers []User `gorm:"many2many:bank_account_monitoring_users"`
}

type SenderProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreditCount int64     `gorm:"not null;default:0"`
	CreditTotal int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time
	ModifiedAt  time.Time `gorm:"autoUpdateTime"`

	BankTransferDetails *BankTransferSenderDetails
	DebitCardDetails    *DebitCardSenderDetails
	Prisons             []Prison `gorm:"many2many:sender_profile_prisons"`
}

type BankTransferSenderDetails struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderProfileID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	SenderName      string    `gorm:"index"`
	BankAccountID   uuid.UUID `gorm:"type:uuid;index;not null"`
	BankAccount     BankAccount
}

type DebitCardSenderDetails struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderProfileID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CardNumberLastDigits string    `gorm:"index;size:4"`
	CardExpiryDate       string    `gorm:"size:5"`
	Postcode             *string   `gorm:"index"`

	CardholderNames []CardholderName
	SenderEmails    []SenderEmail
	MonitoringUsers []User `gorm:"many2many:debit_card_monitoring_users"`
}

type CardholderName struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	DebitCardSenderDetailsID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cardholder_name;not null"`
	Name                     string    `gorm:"uniqueIndex:idx_cardholder_name;not null"`
}

type SenderEmail struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	DebitCardSenderDetailsID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_sender_email;not null"`
	Email                    string    `gorm:"uniqueIndex:idx_sender_email;not null"`
}

type PrisonerProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PrisonerNumber   string    `gorm:"uniqueIndex;not null"`
	PrisonerName     string
	PrisonerDOB      *time.Time
	SingleOffenderID *string

	CreditCount       int64 `gorm:"not null;default:0"`
	CreditTotal       int64 `gorm:"not null;default:0"`
	DisbursementCount int64 `gorm:"not null;default:0"`
	DisbursementTotal int64 `gorm:"not null;default:0"`

	CurrentPrisonID *string
	CreatedAt       time.Time
	ModifiedAt      time.Time `gorm:"autoUpdateTime"`

	Prisons         []Prison `gorm:"many2many:prisoner_profile_prisons"`
	ProvidedNames   []ProvidedName
	MonitoringUsers []User `gorm:"many2many:prisoner_profile_monitoring_users"`
}

type ProvidedName struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	PrisonerProfileID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_provided_name;not null"`
	Name              string    `gorm:"uniqueIndex:idx_provided_name;not null"`
}

type RecipientProfile struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisbursementCount int64     `gorm:"not null;default:0"`
	DisbursementTotal int64     `gorm:"not null;default:0"`
	CreatedAt         time.Time
	ModifiedAt        time.Time `gorm:"autoUpdateTime"`

	BankTransferDetails *BankTransferRecipientDetails
	Prisons             []Prison `gorm:"many2many:recipient_profile_prisons"`
}

type BankTransferRecipientDetails struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientProfileID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	BankAccountID      uuid.UUID `gorm:"type:uuid;index;not null"`
	BankAccount        BankAccount
}

type Check struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreditID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Status      string    `gorm:"index;not null"`
	Description string
	Rules       []string `gorm:"serializer:json"`

	ActionedAt       *time.Time
	ActionedByID     *uuid.UUID `gorm:"type:uuid"`
	AssignedToID     *uuid.UUID `gorm:"type:uuid;index"`
	DecisionReason   string
	RejectionReasons []security.RejectionReason `gorm:"serializer:json"`

	AutoAcceptRuleStateID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt             time.Time
}

type CheckAutoAcceptRule struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	DebitCardSenderDetailsID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_auto_accept_pair;not null"`
	PrisonerProfileID        uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_auto_accept_pair;not null"`
	CreatedAt                time.Time

	States []CheckAutoAcceptRuleState `gorm:"foreignKey:AutoAcceptRuleID"`
}

type CheckAutoAcceptRuleState struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	AutoAcceptRuleID uuid.UUID `gorm:"type:uuid;index;not null"`
	Seq              int64     `gorm:"autoIncrement;uniqueIndex"`
	Active           bool
	Reason           string
	AddedByID        uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt        time.Time `gorm:"index"`
}

// All lists every model for migration, dependency order first.
func All() []any {
	return []any{
		&Prison{},
		&PrisonerLocation{},
		&User{},
		&BankAccount{},
		&SenderProfile{},
		&BankTransferSenderDetails{},
		&DebitCardSenderDetails{},
		&CardholderName{},
		&SenderEmail{},
		&PrisonerProfile{},
		&ProvidedName{},
		&RecipientProfile{},
		&BankTransferRecipientDetails{},
		&Credit{},
		&Payment{},
		&BillingAddress{},
		&BankTransfer{},
		&Disbursement{},
		&Check{},
		&CheckAutoAcceptRule{},
		&CheckAutoAcceptRuleState{},
	}
}
