// Package prisoner implements the prisoner profile repository on GORM.
package prisoner

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
	"gorm.io/gorm/clause"
)

type repositoryImpl struct {
	db *gorm.DB
}

// New creates a prisoner profile repository bound to the given session.
func New(db *gorm.DB) repo.PrisonerProfileRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*security.PrisonerProfile, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *repositoryImpl) GetByNumber(ctx context.Context, prisonerNumber string) (*security.PrisonerProfile, error) {
	return r.get(ctx, "prisoner_number = ?", prisonerNumber)
}

func (r *repositoryImpl) get(ctx context.Context, query string, arg any) (*security.PrisonerProfile, error) {
	var p model.PrisonerProfile
	err := r.db.WithContext(ctx).
		Preload("Prisons").
		Preload("ProvidedNames").
		First(&p, query, arg).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapToDomain(&p), nil
}

// Upsert creates the profile for the prisoner number or refreshes its identity
// fields. The unique index on prisoner_number serializes concurrent creation;
// a lost race falls through to the update path.
func (r *repositoryImpl) Upsert(ctx context.Context, prisonerNumber string, seed security.PrisonerSeed) (*security.PrisonerProfile, error) {
	var existing model.PrisonerProfile
	err := r.db.WithContext(ctx).First(&existing, "prisoner_number = ?", prisonerNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.MapGormErrorToDomain(err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		created := model.PrisonerProfile{
			ID:               uuid.New(),
			PrisonerNumber:   prisonerNumber,
			PrisonerName:     seed.PrisonerName,
			PrisonerDOB:      seed.PrisonerDOB,
			SingleOffenderID: seed.SingleOffenderID,
		}
		createErr := r.db.WithContext(ctx).Create(&created).Error
		if createErr == nil {
			return r.GetByNumber(ctx, prisonerNumber)
		}
		if !errors.Is(repository.MapGormErrorToDomain(createErr), domain.ErrAlreadyExists) {
			return nil, repository.MapGormErrorToDomain(createErr)
		}
		// Lost the creation race; the winner's row exists now.
	}

	// A nil seed field means the caller does not know the value; it must
	// never erase identity data an earlier resolution recorded.
	updates := map[string]any{
		"prisoner_name": seed.PrisonerName,
	}
	if seed.PrisonerDOB != nil {
		updates["prisoner_dob"] = seed.PrisonerDOB
	}
	if seed.SingleOffenderID != nil {
		updates["single_offender_id"] = seed.SingleOffenderID
	}
	err = r.db.WithContext(ctx).
		Model(&model.PrisonerProfile{}).
		Where("prisoner_number = ?", prisonerNumber).
		Updates(updates).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.GetByNumber(ctx, prisonerNumber)
}

func (r *repositoryImpl) AddPrison(ctx context.Context, profileID uuid.UUID, prisonID string) error {
	err := r.db.WithContext(ctx).
		Model(&model.PrisonerProfile{ID: profileID}).
		Association("Prisons").
		Append(&model.Prison{NomisID: prisonID})
	return repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) AddProvidedName(ctx context.Context, profileID uuid.UUID, name string) error {
	row := model.ProvidedName{
		ID:                uuid.New(),
		PrisonerProfileID: profileID,
		Name:              name,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	return repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) RecalculateCreditTotals(ctx context.Context, ids ...uuid.UUID) error {
	sql := `
		UPDATE prisoner_profiles SET
			credit_count = COALESCE((
				SELECT COUNT(*) FROM credits
				WHERE credits.prisoner_profile_id = prisoner_profiles.id), 0),
			credit_total = COALESCE((
				SELECT SUM(credits.amount) FROM credits
				WHERE credits.prisoner_profile_id = prisoner_profiles.id), 0)`
	return r.exec(ctx, sql, ids)
}

func (r *repositoryImpl) RecalculateDisbursementTotals(ctx context.Context, ids ...uuid.UUID) error {
	sql := `
		UPDATE prisoner_profiles SET
			disbursement_count = COALESCE((
				SELECT COUNT(*) FROM disbursements
				WHERE disbursements.prisoner_profile_id = prisoner_profiles.id), 0),
			disbursement_total = COALESCE((
				SELECT SUM(disbursements.amount) FROM disbursements
				WHERE disbursements.prisoner_profile_id = prisoner_profiles.id), 0)`
	return r.exec(ctx, sql, ids)
}

func (r *repositoryImpl) exec(ctx context.Context, sql string, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return repository.MapGormErrorToDomain(r.db.WithContext(ctx).Exec(sql).Error)
	}
	return repository.MapGormErrorToDomain(
		r.db.WithContext(ctx).Exec(sql+" WHERE prisoner_profiles.id IN ?", ids).Error)
}

// UpdateCurrentPrisons resynchronises current_prison_id from the active
// prisoner location, nulling profiles with no active location.
func (r *repositoryImpl) UpdateCurrentPrisons(ctx context.Context) error {
	err := r.db.WithContext(ctx).Exec(`
		UPDATE prisoner_profiles SET current_prison_id = (
			SELECT pl.prison_id FROM prisoner_locations pl
			WHERE pl.prisoner_number = prisoner_profiles.prisoner_number
			AND pl.active
			LIMIT 1)`).Error
	return repository.MapGormErrorToDomain(err)
}

func (r *repositoryImpl) IsMonitored(ctx context.Context, profileID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("prisoner_profile_monitoring_users").
		Where("prisoner_profile_id = ?", profileID).
		Count(&count).Error
	if err != nil {
		return false, repository.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func mapToDomain(p *model.PrisonerProfile) *security.PrisonerProfile {
	out := &security.PrisonerProfile{
		ID:                p.ID,
		PrisonerNumber:    p.PrisonerNumber,
		PrisonerName:      p.PrisonerName,
		PrisonerDOB:       p.PrisonerDOB,
		SingleOffenderID:  p.SingleOffenderID,
		CreditCount:       p.CreditCount,
		CreditTotal:       p.CreditTotal,
		DisbursementCount: p.DisbursementCount,
		DisbursementTotal: p.DisbursementTotal,
		CurrentPrisonID:   p.CurrentPrisonID,
		CreatedAt:         p.CreatedAt,
		ModifiedAt:        p.ModifiedAt,
	}
	for _, prison := range p.Prisons {
		out.Prisons = append(out.Prisons, prison.NomisID)
	}
	for _, name := range p.ProvidedNames {
		out.ProvidedNames = append(out.ProvidedNames, name.Name)
	}
	return out
}
