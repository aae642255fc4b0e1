// Package autoaccept implements the auto-accept rule repository on GORM.
package autoaccept

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

// New creates an auto-accept rule repository bound to the given session.
func New(db *gorm.DB) repo.AutoAcceptRuleRepository {
	return &repositoryImpl{db: db}
}

func preloadStates(db *gorm.DB) *gorm.DB {
	return db.Order("seq")
}

func (r *repositoryImpl) Get(ctx context.Context, id uuid.UUID) (*security.CheckAutoAcceptRule, error) {
	var rule model.CheckAutoAcceptRule
	err := r.db.WithContext(ctx).
		Preload("States", preloadStates).
		First(&rule, "id = ?", id).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapToDomain(&rule), nil
}

func (r *repositoryImpl) FindByPair(ctx context.Context, debitCardDetailsID, prisonerProfileID uuid.UUID) (*security.CheckAutoAcceptRule, error) {
	var rule model.CheckAutoAcceptRule
	err := r.db.WithContext(ctx).
		Preload("States", preloadStates).
		Where("debit_card_sender_details_id = ? AND prisoner_profile_id = ?",
			debitCardDetailsID, prisonerProfileID).
		First(&rule).Error
	if err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	return mapToDomain(&rule), nil
}

// Create inserts the rule for the pair. The composite unique index enforces
// at most one rule per pair; a duplicate surfaces as the contractual
// already-exists error.
func (r *repositoryImpl) Create(ctx context.Context, debitCardDetailsID, prisonerProfileID uuid.UUID) (*security.CheckAutoAcceptRule, error) {
	rule := model.CheckAutoAcceptRule{
		ID:                       uuid.New(),
		DebitCardSenderDetailsID: debitCardDetailsID,
		PrisonerProfileID:        prisonerProfileID,
	}
	err := r.db.WithContext(ctx).Create(&rule).Error
	if err != nil {
		if errors.Is(repository.MapGormErrorToDomain(err), domain.ErrAlreadyExists) {
			return nil, security.ErrAutoAcceptRuleExists
		}
		return nil, repository.MapGormErrorToDomain(err)
	}
	return r.Get(ctx, rule.ID)
}

func (r *repositoryImpl) AppendState(ctx context.Context, ruleID uuid.UUID, active bool, reason string, addedBy uuid.UUID) (*security.CheckAutoAcceptRuleState, error) {
	state := model.CheckAutoAcceptRuleState{
		ID:               uuid.New(),
		AutoAcceptRuleID: ruleID,
		Active:           active,
		Reason:           reason,
		AddedByID:        addedBy,
	}
	if err := r.db.WithContext(ctx).Create(&state).Error; err != nil {
		return nil, repository.MapGormErrorToDomain(err)
	}
	out := mapStateToDomain(&state)
	return &out, nil
}

func mapToDomain(rule *model.CheckAutoAcceptRule) *security.CheckAutoAcceptRule {
	out := &security.CheckAutoAcceptRule{
		ID:                       rule.ID,
		DebitCardSenderDetailsID: rule.DebitCardSenderDetailsID,
		PrisonerProfileID:        rule.PrisonerProfileID,
		CreatedAt:                rule.CreatedAt,
	}
	for i := range rule.States {
		out.States = append(out.States, mapStateToDomain(&rule.States[i]))
	}
	return out
}

func mapStateToDomain(s *model.CheckAutoAcceptRuleState) security.CheckAutoAcceptRuleState {
	return security.CheckAutoAcceptRuleState{
		ID:               s.ID,
		AutoAcceptRuleID: s.AutoAcceptRuleID,
		Seq:              s.Seq,
		Active:           s.Active,
		Reason:           s.Reason,
		AddedByID:        s.AddedByID,
		CreatedAt:        s.CreatedAt,
	}
}
