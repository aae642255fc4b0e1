// Package prisonerlocation implements the prisoner location repository on GORM.
package prisonerlocation

import (
	"context"

	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository"
	"github.com/ministryofjustice/money-to-prisoners-security/infra/repository/model"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/prison"
	repo "github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
	"gorm.io/gorm"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New creates a prisoner location repository bound to the given session.
func New(db *gorm.DB) repo.PrisonerLocationRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) GetActive(ctx context.Context, prisonerNumber string) (*prison.PrisonerLocation, error) {
	var loc model.PrisonerLocation
	err := r.db.WithContext(ctx).
		Where("prisoner_number = ? AND active", prisonerNumber).
		First(&loc).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return &prison.PrisonerLocation{
		ID:               loc.ID,
		PrisonerNumber:   loc.PrisonerNumber,
		PrisonerName:     loc.PrisonerName,
		PrisonerDOB:      loc.PrisonerDOB,
		SingleOffenderID: loc.SingleOffenderID,
		PrisonID:         loc.PrisonID,
		Active:           loc.Active,
	}, nil
}
