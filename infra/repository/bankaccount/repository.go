// Package bankaccount implements the bank account repository on GORM.
package bankaccount

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/model"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	repo "github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
	"gorm.io/gorm"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New creates a bank account repository bound to the given session.
func New(db *gorm.DB) repo.BankAccountRepository {
	return &repositoryImpl{db: db}
}

// GetOrCreate returns the account for the identity triple. A duplicate-key
// violation from a concurrent insert is recovered by re-fetching the winner.
func (r *repositoryImpl) GetOrCreate(ctx context.Context, sortCode, accountNumber, rollNumber string) (*security.BankAccount, error) {
	account, err := r.find(ctx, sortCode, accountNumber, rollNumber)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	row := model.BankAccount{
		ID:            uuid.New(),
		SortCode:      sortCode,
		AccountNumber: accountNumber,
		RollNumber:    rollNumber,
	}
	createErr := r.db.WithContext(ctx).Create(&row).Error
	if createErr == nil {
		return mapToDomain(&row), nil
	}
	if errors.Is(repository.MapGormErrorToDomain(createErr), domain.ErrAlreadyExists) {
		return r.find(ctx, sortCode, accountNumber, rollNumber)
	}
	return nil, repository.MapGormErrorToDomain(createErr)
}

func (r *repositoryImpl) find(ctx context.Context, sortCode, accountNumber, rollNumber string) (*security.BankAccount, error) {
	var row model.BankAccount
	err := r.db.WithContext(ctx).
		Where("sort_code = ? AND account_number = ? AND roll_number = ?",
			sortCode, accountNumber, rollNumber).
		First(&row).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapToDomain(&row), nil
}

func mapToDomain(a *model.BankAccount) *security.BankAccount {
	return &security.BankAccount{
		ID:            a.ID,
		SortCode:      a.SortCode,
		AccountNumber: a.AccountNumber,
		RollNumber:    a.RollNumber,
	}
}
