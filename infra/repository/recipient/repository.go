// Package recipient implements the recipient profile repository on GORM.
package recipient

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/model"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	repo "github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
	"gorm.io/gorm"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New creates a recipient profile repository bound to the given session.
func New(db *gorm.DB) repo.RecipientProfileRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*security.RecipientProfile, error) {
	var p model.RecipientProfile
	err := r.db.WithContext(ctx).
		Preload("BankTransferDetails.BankAccount").
		Preload("Prisons").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapToDomain(&p), nil
}

func (r *repositoryImpl) FindByBankAccount(ctx context.Context, sortCode, accountNumber, rollNumber string) (*security.RecipientProfile, error) {
	var p model.RecipientProfile
	err := r.db.WithContext(ctx).
		Joins("JOIN bank_transfer_recipient_details btd ON btd.recipient_profile_id = recipient_profiles.id").
		Joins("JOIN bank_accounts ba ON ba.id = btd.bank_account_id").
		Where("ba.sort_code = ? AND ba.account_number = ? AND ba.roll_number = ?",
			sortCode, accountNumber, rollNumber).
		First(&p).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.Get(ctx, p.ID)
}

// GetOrCreateChequeRecipient returns the well-known profile with no bank
// transfer details, creating it on first use.
func (r *repositoryImpl) GetOrCreateChequeRecipient(ctx context.Context) (*security.RecipientProfile, error) {
	var p model.RecipientProfile
	err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM bank_transfer_recipient_details WHERE recipient_profile_id = recipient_profiles.id)").
		First(&p).Error
	if err == nil {
		return r.Get(ctx, p.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.MapGormErrorToDomain(err)
	}

	p = model.RecipientProfile{ID: uuid.New()}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.Get(ctx, p.ID)
}

func (r *repositoryImpl) CreateWithBankTransferDetails(ctx context.Context, bankAccountID uuid.UUID) (*security.RecipientProfile, error) {
	p := model.RecipientProfile{ID: uuid.New()}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	details := model.BankTransferRecipientDetails{
		ID:                 uuid.New(),
		RecipientProfileID: p.ID,
		BankAccountID:      bankAccountID,
	}
	if err := r.db.WithContext(ctx).Create(&details).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.Get(ctx, p.ID)
}

func (r *repositoryImpl) AddPrison(ctx context.Context, profileID uuid.UUID, prisonID string) error {
	err := r.db.WithContext(ctx).
		Model(&model.RecipientProfile{ID: profileID}).
		Association("Prisons").
		Append(&model.Prison{NomisID: prisonID})
	return repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) RecalculateDisbursementTotals(ctx context.Context, ids ...uuid.UUID) error {
	sql := `
		UPDATE recipient_profiles SET
			disbursement_count = COALESCE((
				SELECT COUNT(*) FROM disbursements
				WHERE disbursements.recipient_profile_id = recipient_profiles.id), 0),
			disbursement_total = COALESCE((
				SELECT SUM(disbursements.amount) FROM disbursements
				WHERE disbursements.recipient_profile_id = recipient_profiles.id), 0)`
	if len(ids) == 0 {
		return repository.MapGormErrorToDomain(r.db.WithContext(ctx).Exec(sql).Error)
	}
	return repository.MapGormErrorToDomain(
		r.db.WithContext(ctx).Exec(sql+" WHERE recipient_profiles.id IN ?", ids).Error)
}

func mapToDomain(p *model.RecipientProfile) *security.RecipientProfile {
	out := &security.RecipientProfile{
		ID:                p.ID,
		DisbursementCount: p.DisbursementCount,
		DisbursementTotal: p.DisbursementTotal,
		CreatedAt:         p.CreatedAt,
		ModifiedAt:        p.ModifiedAt,
	}
	if p.BankTransferDetails != nil {
		out.BankTransferDetails = &security.BankTransferRecipientDetails{
			ID:                 p.BankTransferDetails.ID,
			RecipientProfileID: p.BankTransferDetails.RecipientProfileID,
			BankAccount: security.BankAccount{
				ID:            p.BankTransferDetails.BankAccount.ID,
				SortCode:      p.BankTransferDetails.BankAccount.SortCode,
				AccountNumber: p.BankTransferDetails.BankAccount.AccountNumber,
				RollNumber:    p.BankTransferDetails.BankAccount.RollNumber,
			},
		}
	}
	for _, prison := range p.Prisons {
		out.Prisons = append(out.Prisons, prison.NomisID)
	}
	return out
}
