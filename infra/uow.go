package infra

import (
	"context"
	"errors"

	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/autoaccept"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/bankaccount"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/check"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/credit"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/disbursement"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/prisoner"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/prisonerlocation"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/recipient"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/sender"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/user"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
	"gorm.io/gorm"
)

// ErrNoTransaction is returned when a repository accessor is used outside a
// Do block.
var ErrNoTransaction = errors.New("unit of work: no transaction in progress")

// UnitOfWork implements repository.UnitOfWork over a GORM connection. The
// zero accessors only work inside Do, where they hand out repositories bound
// to the transaction session.
type UnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit of work over the given connection.
func NewUoW(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn in one database transaction. fn receives a unit of work bound
// to that transaction; returning an error rolls everything back.
func (u *UnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UnitOfWork{db: u.db, tx: tx})
	})
}

func (u *UnitOfWork) session() (*gorm.DB, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return u.tx, nil
}

func (u *UnitOfWork) Credits() (repository.CreditRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return credit.New(tx), nil
}

func (u *UnitOfWork) Disbursements() (repository.DisbursementRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return disbursement.New(tx), nil
}

func (u *UnitOfWork) SenderProfiles() (repository.SenderProfileRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return sender.New(tx), nil
}

func (u *UnitOfWork) PrisonerProfiles() (repository.PrisonerProfileRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return prisoner.New(tx), nil
}

func (u *UnitOfWork) RecipientProfiles() (repository.RecipientProfileRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return recipient.New(tx), nil
}

func (u *UnitOfWork) BankAccounts() (repository.BankAccountRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return bankaccount.New(tx), nil
}

func (u *UnitOfWork) Checks() (repository.CheckRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return check.New(tx), nil
}

func (u *UnitOfWork) AutoAcceptRules() (repository.AutoAcceptRuleRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return autoaccept.New(tx), nil
}

func (u *UnitOfWork) PrisonerLocations() (repository.PrisonerLocationRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return prisonerlocation.New(tx), nil
}

func (u *UnitOfWork) Users() (repository.UserRepository, error) {
	tx, err := u.session()
	if err != nil {
		return nil, err
	}
	return user.New(tx), nil
}
