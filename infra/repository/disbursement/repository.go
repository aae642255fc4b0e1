// Package disbursement implements the disbursement repository on GORM.
package disbursement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/model"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	disbursementdomain "github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/disbursement"
	repo "github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
	"gorm.io/gorm"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New creates a disbursement repository bound to the given session.
func New(db *gorm.DB) repo.DisbursementRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*disbursementdomain.Disbursement, error) {
	var d model.Disbursement
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapToDomain(&d), nil
}

func (r *repositoryImpl) LinkRecipientProfile(ctx context.Context, disbursementID, profileID uuid.UUID) error {
	return r.linkProfile(ctx, disbursementID, "recipient_profile_id", profileID)
}

func (r *repositoryImpl) LinkPrisonerProfile(ctx context.Context, disbursementID, profileID uuid.UUID) error {
	return r.linkProfile(ctx, disbursementID, "prisoner_profile_id", profileID)
}

func (r *repositoryImpl) linkProfile(ctx context.Context, disbursementID uuid.UUID, column string, profileID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Disbursement{}).
		Where("id = ? AND "+column+" IS NULL", disbursementID).
		Update(column, profileID)
	if result.Error != nil {
		return repository.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: disbursement %s already has %s set", domain.ErrIntegrity, disbursementID, column)
	}
	return nil
}

func mapToDomain(d *model.Disbursement) *disbursementdomain.Disbursement {
	return &disbursementdomain.Disbursement{
		ID:                 d.ID,
		Amount:             d.Amount,
		Method:             disbursementdomain.Method(d.Method),
		Resolution:         disbursementdomain.Resolution(d.Resolution),
		PrisonerNumber:     d.PrisonerNumber,
		PrisonerName:       d.PrisonerName,
		PrisonID:           d.PrisonID,
		CreatedAt:          d.CreatedAt,
		RecipientFirstName: d.RecipientFirstName,
		RecipientLastName:  d.RecipientLastName,
		RecipientEmail:     d.RecipientEmail,
		AddressLine1:       d.AddressLine1,
		AddressLine2:       d.AddressLine2,
		City:               d.City,
		Postcode:           d.Postcode,
		SortCode:           d.SortCode,
		AccountNumber:      d.AccountNumber,
		RollNumber:         d.RollNumber,
		RecipientProfileID: d.RecipientProfileID,
		PrisonerProfileID:  d.PrisonerProfileID,
	}
}
