// Package credit implements the credit repository on GORM.
package credit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/model"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	creditdomain "github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/credit"
	repo "github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
	"gorm.io/gorm"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New creates a credit repository bound to the given session.
func New(db *gorm.DB) repo.CreditRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*creditdomain.Credit, error) {
	var c model.Credit
	err := r.db.WithContext(ctx).
		Preload("Payment").
		Preload("Payment.BillingAddress").
		Preload("BankTransfer").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapCreditToDomain(&c), nil
}

// LinkSenderProfile sets the sender profile exactly once. The guard column
// condition makes the write a no-op when a link already exists, which is
// reported as an integrity violation.
func (r *repositoryImpl) LinkSenderProfile(ctx context.Context, creditID, profileID uuid.UUID) error {
	return r.linkProfile(ctx, creditID, "sender_profile_id", profileID)
}

func (r *repositoryImpl) LinkPrisonerProfile(ctx context.Context, creditID, profileID uuid.UUID) error {
	return r.linkProfile(ctx, creditID, "prisoner_profile_id", profileID)
}

func (r *repositoryImpl) linkProfile(ctx context.Context, creditID uuid.UUID, column string, profileID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Credit{}).
		Where("id = ? AND "+column+" IS NULL", creditID).
		Update(column, profileID)
	if result.Error != nil {
		return repository.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: credit %s already has %s set", domain.ErrIntegrity, creditID, column)
	}
	return nil
}

func (r *repositoryImpl) CountForSenderSince(ctx context.Context, senderProfileID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Credit{}).
		Where("sender_profile_id = ? AND received_at >= ?", senderProfileID, since).
		Count(&count).Error
	return count, repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) CountForPrisonerSince(ctx context.Context, prisonerProfileID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Credit{}).
		Where("prisoner_profile_id = ? AND received_at >= ?", prisonerProfileID, since).
		Count(&count).Error
	return count, repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) CountPrisonersForSender(ctx context.Context, senderProfileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Credit{}).
		Distinct("prisoner_profile_id").
		Where("sender_profile_id = ? AND prisoner_profile_id IS NOT NULL", senderProfileID).
		Count(&count).Error
	return count, repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) CountSendersForPrisoner(ctx context.Context, prisonerProfileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Credit{}).
		Distinct("sender_profile_id").
		Where("prisoner_profile_id = ? AND sender_profile_id IS NOT NULL", prisonerProfileID).
		Count(&count).Error
	return count, repository.MapGormErrorToDomain(err)
}

func mapCreditToDomain(c *model.Credit) *creditdomain.Credit {
	out := &creditdomain.Credit{
		ID:                c.ID,
		Amount:            c.Amount,
		PrisonerNumber:    c.PrisonerNumber,
		PrisonerName:      c.PrisonerName,
		PrisonerDOB:       c.PrisonerDOB,
		SingleOffenderID:  c.SingleOffenderID,
		PrisonID:          c.PrisonID,
		Resolution:        creditdomain.Resolution(c.Resolution),
		ReceivedAt:        c.ReceivedAt,
		SenderProfileID:   c.SenderProfileID,
		PrisonerProfileID: c.PrisonerProfileID,
	}
	if c.Payment != nil {
		out.Payment = mapPaymentToDomain(c.Payment)
	}
	if c.BankTransfer != nil {
		out.BankTransfer = &creditdomain.BankTransfer{
			ID:            c.BankTransfer.ID,
			CreditID:      c.BankTransfer.CreditID,
			SenderName:    c.BankTransfer.SenderName,
			SortCode:      c.BankTransfer.SortCode,
			AccountNumber: c.BankTransfer.AccountNumber,
			RollNumber:    c.BankTransfer.RollNumber,
			ReceivedAt:    c.BankTransfer.ReceivedAt,
		}
	}
	return out
}

func mapPaymentToDomain(p *model.Payment) *creditdomain.Payment {
	out := &creditdomain.Payment{
		ID:                    p.ID,
		CreditID:              p.CreditID,
		Status:                creditdomain.PaymentStatus(p.Status),
		Email:                 p.Email,
		CardholderName:        p.CardholderName,
		CardNumberFirstDigits: p.CardNumberFirstDigits,
		CardNumberLastDigits:  p.CardNumberLastDigits,
		CardExpiryDate:        p.CardExpiryDate,
		RecipientName:         p.RecipientName,
		CreatedAt:             p.CreatedAt,
	}
	if p.BillingAddress != nil {
		out.BillingAddress = &creditdomain.BillingAddress{
			ID:                       p.BillingAddress.ID,
			Line1:                    p.BillingAddress.Line1,
			Line2:                    p.BillingAddress.Line2,
			City:                     p.BillingAddress.City,
			Country:                  p.BillingAddress.Country,
			Postcode:                 p.BillingAddress.Postcode,
			DebitCardSenderDetailsID: p.BillingAddress.DebitCardSenderDetailsID,
		}
	}
	return out
}
