// Package sender implements the sender profile repository on GORM.
// Matching queries compare exact normalized values only; the unique
// constraints on the underlying tables serialize concurrent creation.
package sender

import (
	"context"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/model"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	repo "github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New creates a sender profile repository bound to the given session.
func New(db *gorm.DB) repo.SenderProfileRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*security.SenderProfile, error) {
	var p model.SenderProfile
	err := r.db.WithContext(ctx).
		Preload("BankTransferDetails.BankAccount").
		Preload("DebitCardDetails.CardholderNames").
		Preload("DebitCardDetails.SenderEmails").
		Preload("Prisons").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapToDomain(&p), nil
}

func (r *repositoryImpl) FindByBankTransfer(ctx context.Context, senderName, sortCode, accountNumber, rollNumber string) (*security.SenderProfile, error) {
	var p model.SenderProfile
	err := r.db.WithContext(ctx).
		Joins("JOIN bank_transfer_sender_details btd ON btd.sender_profile_id = sender_profiles.id").
		Joins("JOIN bank_accounts ba ON ba.id = btd.bank_account_id").
		Where("btd.sender_name = ? AND ba.sort_code = ? AND ba.account_number = ? AND ba.roll_number = ?",
			senderName, sortCode, accountNumber, rollNumber).
		First(&p).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.Get(ctx, p.ID)
}

func (r *repositoryImpl) FindByDebitCard(ctx context.Context, cardLastDigits, cardExpiryDate string, normalisedPostcode *string) (*security.SenderProfile, error) {
	query := r.db.WithContext(ctx).
		Joins("JOIN debit_card_sender_details dcd ON dcd.sender_profile_id = sender_profiles.id").
		Where("dcd.card_number_last_digits = ? AND dcd.card_expiry_date = ?", cardLastDigits, cardExpiryDate)
	if normalisedPostcode == nil {
		query = query.Where("dcd.postcode IS NULL")
	} else {
		query = query.Where("dcd.postcode = ?", *normalisedPostcode)
	}

	var p model.SenderProfile
	if err := query.First(&p).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.Get(ctx, p.ID)
}

// GetOrCreateAnonymous returns the well-known profile with neither bank
// transfer nor debit card details, creating it on first use.
func (r *repositoryImpl) GetOrCreateAnonymous(ctx context.Context) (*security.SenderProfile, error) {
	var p model.SenderProfile
	err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM bank_transfer_sender_details WHERE sender_profile_id = sender_profiles.id)").
		Where("NOT EXISTS (SELECT 1 FROM debit_card_sender_details WHERE sender_profile_id = sender_profiles.id)").
		First(&p).Error
	if err == nil {
		return r.Get(ctx, p.ID)
	}
	if !isNotFound(err) {
		return nil, repository.MapGormErrorToDomain(err)
	}

	p = model.SenderProfile{ID: uuid.New()}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.Get(ctx, p.ID)
}

func (r *repositoryImpl) CreateWithBankTransferDetails(ctx context.Context, senderName string, bankAccountID uuid.UUID) (*security.SenderProfile, error) {
	p := model.SenderProfile{ID: uuid.New()}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	details := model.BankTransferSenderDetails{
		ID:              uuid.New(),
		SenderProfileID: p.ID,
		SenderName:      senderName,
		BankAccountID:   bankAccountID,
	}
	if err := r.db.WithContext(ctx).Create(&details).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.Get(ctx, p.ID)
}

func (r *repositoryImpl) CreateWithDebitCardDetails(ctx context.Context, cardLastDigits, cardExpiryDate string, normalisedPostcode *string) (*security.SenderProfile, error) {
	p := model.SenderProfile{ID: uuid.New()}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	details := model.DebitCardSenderDetails{
		ID:                   uuid.New(),
		SenderProfileID:      p.ID,
		CardNumberLastDigits: cardLastDigits,
		CardExpiryDate:       cardExpiryDate,
		Postcode:             normalisedPostcode,
	}
	if err := r.db.WithContext(ctx).Create(&details).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.Get(ctx, p.ID)
}

// AddCardholderName appends to the name history; the unique index makes the
// append idempotent per exact value.
func (r *repositoryImpl) AddCardholderName(ctx context.Context, debitCardDetailsID uuid.UUID, name string) error {
	row := model.CardholderName{
		ID:                       uuid.New(),
		DebitCardSenderDetailsID: debitCardDetailsID,
		Name:                     name,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	return repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) AddSenderEmail(ctx context.Context, debitCardDetailsID uuid.UUID, email string) error {
	row := model.SenderEmail{
		ID:                       uuid.New(),
		DebitCardSenderDetailsID: debitCardDetailsID,
		Email:                    email,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	return repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) AttachBillingAddress(ctx context.Context, billingAddressID, debitCardDetailsID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&model.BillingAddress{}).
		Where("id = ?", billingAddressID).
		Update("debit_card_sender_details_id", debitCardDetailsID).Error
	return repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) AddPrison(ctx context.Context, profileID uuid.UUID, prisonID string) error {
	err := r.db.WithContext(ctx).
		Model(&model.SenderProfile{ID: profileID}).
		Association("Prisons").
		Append(&model.Prison{NomisID: prisonID})
	return repository.MapGormErrorToDomain(err)
}

// RecalculateCreditTotals recomputes the denormalized counters as a snapshot
// over currently linked credits; no linked credits means zero, never null.
func (r *repositoryImpl) RecalculateCreditTotals(ctx context.Context, ids ...uuid.UUID) error {
	sql := `
		UPDATE sender_profiles SET
			credit_count = COALESCE((
				SELECT COUNT(*) FROM credits
				WHERE credits.sender_profile_id = sender_profiles.id), 0),
			credit_total = COALESCE((
				SELECT SUM(credits.amount) FROM credits
				WHERE credits.sender_profile_id = sender_profiles.id), 0)`
	if len(ids) == 0 {
		return repository.MapGormErrorToDomain(r.db.WithContext(ctx).Exec(sql).Error)
	}
	return repository.MapGormErrorToDomain(
		r.db.WithContext(ctx).Exec(sql+" WHERE sender_profiles.id IN ?", ids).Error)
}

func (r *repositoryImpl) IsMonitored(ctx context.Context, profileID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM sender_profiles sp
		WHERE sp.id = ? AND (
			EXISTS (
				SELECT 1 FROM bank_transfer_sender_details btd
				JOIN bank_account_monitoring_users bam ON bam.bank_account_id = btd.bank_account_id
				WHERE btd.sender_profile_id = sp.id)
			OR EXISTS (
				SELECT 1 FROM debit_card_sender_details dcd
				JOIN debit_card_monitoring_users dcm ON dcm.debit_card_sender_details_id = dcd.id
				WHERE dcd.sender_profile_id = sp.id))`,
		profileID).Scan(&count).Error
	if err != nil {
		return false, repository.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func isNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

func mapToDomain(p *model.SenderProfile) *security.SenderProfile {
	out := &security.SenderProfile{
		ID:          p.ID,
		CreditCount: p.CreditCount,
		CreditTotal: p.CreditTotal,
		CreatedAt:   p.CreatedAt,
		ModifiedAt:  p.ModifiedAt,
	}
	if p.BankTransferDetails != nil {
		out.BankTransferDetails = &security.BankTransferSenderDetails{
			ID:              p.BankTransferDetails.ID,
			SenderProfileID: p.BankTransferDetails.SenderProfileID,
			SenderName:      p.BankTransferDetails.SenderName,
			BankAccount: security.BankAccount{
				ID:            p.BankTransferDetails.BankAccount.ID,
				SortCode:      p.BankTransferDetails.BankAccount.SortCode,
				AccountNumber: p.BankTransferDetails.BankAccount.AccountNumber,
				RollNumber:    p.BankTransferDetails.BankAccount.RollNumber,
			},
		}
	}
	if p.DebitCardDetails != nil {
		details := &security.DebitCardSenderDetails{
			ID:                   p.DebitCardDetails.ID,
			SenderProfileID:      p.DebitCardDetails.SenderProfileID,
			CardNumberLastDigits: p.DebitCardDetails.CardNumberLastDigits,
			CardExpiryDate:       p.DebitCardDetails.CardExpiryDate,
			Postcode:             p.DebitCardDetails.Postcode,
		}
		for _, name := range p.DebitCardDetails.CardholderNames {
			details.CardholderNames = append(details.CardholderNames, name.Name)
		}
		for _, email := range p.DebitCardDetails.SenderEmails {
			details.SenderEmails = append(details.SenderEmails, email.Email)
		}
		out.DebitCardDetails = details
	}
	for _, p := range p.Prisons {
		out.Prisons = append(out.Prisons, p.NomisID)
	}
	return out
}
