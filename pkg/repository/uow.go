package repository

import "context"

// UnitOfWork defines the transactional boundary for the security core.
//
// Do runs fn inside one database transaction: every profile creation, link
// and check write performed through the provided UnitOfWork commits together
// or rolls back together. Repository accessors return repositories bound to
// the current transaction/session so concurrent callers can never mix
// sessions.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an
	// error the transaction is rolled back and the error is returned.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Credits() (CreditRepository, error)
	Disbursements() (DisbursementRepository, error)
	SenderProfiles() (SenderProfileRepository, error)
	PrisonerProfiles() (PrisonerProfileRepository, error)
	RecipientProfiles() (RecipientProfileRepository, error)
	BankAccounts() (BankAccountRepository, error)
	Checks() (CheckRepository, error)
	AutoAcceptRules() (AutoAcceptRuleRepository, error)
	PrisonerLocations() (PrisonerLocationRepository, error)
	Users() (UserRepository, error)
}
