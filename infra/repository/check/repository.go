// Package check implements the fraud check repository on GORM.
package check

import (
	"context"
	"errors"
	"fmt"

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

// New creates a check repository bound to the given session.
func New(db *gorm.DB) repo.CheckRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*security.Check, error) {
	var c model.Check
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapToDomain(&c), nil
}

// Create persists a new check. The unique index on credit_id enforces
// one check per credit; a duplicate surfaces as an integrity violation
// because a second check for the same credit is a processing bug, not a
// client conflict.
func (r *repositoryImpl) Create(ctx context.Context, check *security.Check) error {
	row := mapToModel(check)
	err := r.db.WithContext(ctx).Create(row).Error
	if err == nil {
		return nil
	}
	if errors.Is(repository.MapGormErrorToDomain(err), domain.ErrAlreadyExists) {
		return fmt.Errorf("%w: credit %s already has a check", domain.ErrIntegrity, check.CreditID)
	}
	return repository.MapGormErrorToDomain(err)
}

// UpdateDecision writes the accept/reject outcome with a compare-and-set on
// pending status. Zero rows affected means a concurrent decision won the
// race, reported as domain.ErrConflict.
func (r *repositoryImpl) UpdateDecision(ctx context.Context, check *security.Check) error {
	result := r.db.WithContext(ctx).
		Model(&model.Check{}).
		Where("id = ? AND status = ?", check.ID, string(security.CheckStatusPending)).
		Updates(map[string]any{
			"status":            string(check.Status),
			"actioned_at":       check.ActionedAt,
			"actioned_by_id":    check.ActionedByID,
			"decision_reason":   check.DecisionReason,
			"rejection_reasons": check.RejectionReasons,
		})
	if result.Error != nil {
		return repository.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: check %s is no longer pending", domain.ErrConflict, check.ID)
	}
	return nil
}

func (r *repositoryImpl) UpdateAssignment(ctx context.Context, checkID uuid.UUID, assignee *uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Check{}).
		Where("id = ? AND status = ?", checkID, string(security.CheckStatusPending)).
		Update("assigned_to_id", assignee)
	if result.Error != nil {
		return repository.MapGormErrorToDomain(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: check %s is no longer pending", domain.ErrConflict, checkID)
	}
	return nil
}

func mapToModel(c *security.Check) *model.Check {
	return &model.Check{
		ID:                    c.ID,
		CreditID:              c.CreditID,
		Status:                string(c.Status),
		Description:           c.Description,
		Rules:                 c.Rules,
		ActionedAt:            c.ActionedAt,
		ActionedByID:          c.ActionedByID,
		AssignedToID:          c.AssignedToID,
		DecisionReason:        c.DecisionReason,
		RejectionReasons:      c.RejectionReasons,
		AutoAcceptRuleStateID: c.AutoAcceptRuleStateID,
		CreatedAt:             c.CreatedAt,
	}
}

func mapToDomain(c *model.Check) *security.Check {
	return &security.Check{
		ID:                    c.ID,
		CreditID:              c.CreditID,
		Status:                security.CheckStatus(c.Status),
		Description:           c.Description,
		Rules:                 c.Rules,
		ActionedAt:            c.ActionedAt,
		ActionedByID:          c.ActionedByID,
		AssignedToID:          c.AssignedToID,
		DecisionReason:        c.DecisionReason,
		RejectionReasons:      c.RejectionReasons,
		AutoAcceptRuleStateID: c.AutoAcceptRuleStateID,
		CreatedAt:             c.CreatedAt,
	}
}
