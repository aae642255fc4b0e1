package security

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
)

// AutoAcceptState is the payload for creating or appending an auto-accept
// rule state.
type AutoAcceptState struct {
	Active  bool
	Reason  string
	AddedBy uuid.UUID
}

// CreateAutoAcceptRule creates the auto-accept rule for a (debit card sender
// details, prisoner profile) pair. The initial state is always recorded as
// active regardless of the payload; deactivation only happens by appending a
// later state. At most one rule may exist per pair; a duplicate fails with
// security.ErrAutoAcceptRuleExists.
func (s *Service) CreateAutoAcceptRule(
	ctx context.Context,
	debitCardDetailsID, prisonerProfileID uuid.UUID,
	initial AutoAcceptState,
) (rule *security.CheckAutoAcceptRule, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		autoAccepts, err := uow.AutoAcceptRules()
		if err != nil {
			return err
		}
		// The unique constraint still backstops a race; this early check
		// produces the contractual error before any insert.
		if _, err = autoAccepts.FindByPair(ctx, debitCardDetailsID, prisonerProfileID); err == nil {
			return security.ErrAutoAcceptRuleExists
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		rule, err = autoAccepts.Create(ctx, debitCardDetailsID, prisonerProfileID)
		if err != nil {
			return err
		}
		state, err := autoAccepts.AppendState(ctx, rule.ID, true, initial.Reason, initial.AddedBy)
		if err != nil {
			return err
		}
		rule.States = append(rule.States, *state)
		s.logger.Info("auto-accept rule created",
			"rule_id", rule.ID,
			"debit_card_details_id", debitCardDetailsID,
			"prisoner_profile_id", prisonerProfileID)
		return nil
	})
	if err != nil {
		rule = nil
	}
	return
}

// AppendAutoAcceptState appends a new state to an existing rule's audit
// trail. Prior states are never edited or removed.
func (s *Service) AppendAutoAcceptState(
	ctx context.Context,
	ruleID uuid.UUID,
	next AutoAcceptState,
) (rule *security.CheckAutoAcceptRule, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		autoAccepts, err := uow.AutoAcceptRules()
		if err != nil {
			return err
		}
		rule, err = autoAccepts.Get(ctx, ruleID)
		if err != nil {
			return err
		}
		state, err := autoAccepts.AppendState(ctx, rule.ID, next.Active, next.Reason, next.AddedBy)
		if err != nil {
			return err
		}
		rule.States = append(rule.States, *state)
		s.logger.Info("auto-accept rule state appended",
			"rule_id", rule.ID, "active", next.Active)
		return nil
	})
	if err != nil {
		rule = nil
	}
	return
}

// GetAutoAcceptRule fetches one rule with its full state history.
func (s *Service) GetAutoAcceptRule(ctx context.Context, ruleID uuid.UUID) (rule *security.CheckAutoAcceptRule, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		autoAccepts, err := uow.AutoAcceptRules()
		if err != nil {
			return err
		}
		rule, err = autoAccepts.Get(ctx, ruleID)
		return err
	})
	return
}
