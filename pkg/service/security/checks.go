package security

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/credit"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/rules"
)

// CreateCheckForCredit screens an eligible pending credit and persists its
// check. Profiles are resolved transiently for rule evaluation only: no
// profile link is stored on the credit here. If no rule matches, or an
// active auto-accept rule covers the (sender, prisoner) pair, the check is
// created already accepted.
//
// A credit can be checked once; a second call fails with an integrity error.
func (s *Service) CreateCheckForCredit(ctx context.Context, creditID uuid.UUID) (check *security.Check, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		credits, err := uow.Credits()
		if err != nil {
			return err
		}
		c, err := credits.Get(ctx, creditID)
		if err != nil {
			return err
		}
		if !rules.ShouldCheck(c) {
			return fmt.Errorf("%w: credit %s is not eligible for a check", domain.ErrIntegrity, c.ID)
		}

		ev, err := s.loadEvaluation(ctx, uow, c)
		if err != nil {
			return err
		}
		matched := rules.Match(ev)

		check = &security.Check{
			ID:       uuid.New(),
			CreditID: c.ID,
			Rules:    matched,
		}
		if len(matched) == 0 {
			check.Status = security.CheckStatusAccepted
			check.Description = security.NoRulesMatchedDescription
		} else {
			descriptions := make([]string, len(matched))
			for i, code := range matched {
				descriptions[i] = rules.Registry[code].Description()
			}
			check.Description = "Credit matched: " + strings.Join(descriptions, ". ")
			check.Status = security.CheckStatusPending

			state, err := s.activeAutoAcceptState(ctx, uow, ev)
			if err != nil {
				return err
			}
			if state != nil {
				check.Status = security.CheckStatusAccepted
				check.AutoAcceptRuleStateID = &state.ID
			}
		}

		checks, err := uow.Checks()
		if err != nil {
			return err
		}
		return checks.Create(ctx, check)
	})
	if err != nil {
		check = nil
	}
	return
}

// loadEvaluation gathers the facts rule evaluation is judged against.
// Profiles are looked up by the resolver's matching keys but never created
// or linked; a credit with no matching profile simply evaluates without one.
func (s *Service) loadEvaluation(ctx context.Context, uow repository.UnitOfWork, c *credit.Credit) (*rules.Evaluation, error) {
	senders, err := uow.SenderProfiles()
	if err != nil {
		return nil, err
	}
	prisoners, err := uow.PrisonerProfiles()
	if err != nil {
		return nil, err
	}

	ev := &rules.Evaluation{Credit: c}

	if c.SenderProfileID != nil {
		ev.SenderProfile, err = senders.Get(ctx, *c.SenderProfileID)
	} else {
		ev.SenderProfile, err = s.matchSenderProfile(ctx, senders, c)
	}
	if err != nil {
		return nil, err
	}

	if c.PrisonerProfileID != nil {
		ev.PrisonerProfile, err = prisoners.Get(ctx, *c.PrisonerProfileID)
	} else {
		ev.PrisonerProfile, err = notFoundAsNil(prisoners.GetByNumber(ctx, c.PrisonerNumber))
	}
	if err != nil {
		return nil, err
	}

	credits, err := uow.Credits()
	if err != nil {
		return nil, err
	}
	since := s.now().Add(-rules.Window)

	if sender := ev.SenderProfile; sender != nil {
		if ev.SenderMonitored, err = senders.IsMonitored(ctx, sender.ID); err != nil {
			return nil, err
		}
		if ev.SenderCreditsInWindow, err = credits.CountForSenderSince(ctx, sender.ID, since); err != nil {
			return nil, err
		}
		if ev.SenderPrisonerCount, err = credits.CountPrisonersForSender(ctx, sender.ID); err != nil {
			return nil, err
		}
	}
	if prisoner := ev.PrisonerProfile; prisoner != nil {
		if ev.PrisonerMonitored, err = prisoners.IsMonitored(ctx, prisoner.ID); err != nil {
			return nil, err
		}
		if ev.PrisonerCreditsInWindow, err = credits.CountForPrisonerSince(ctx, prisoner.ID, since); err != nil {
			return nil, err
		}
		if ev.PrisonerSenderCount, err = credits.CountSendersForPrisoner(ctx, prisoner.ID); err != nil {
			return nil, err
		}
	}
	return ev, nil
}

// matchSenderProfile finds the sender profile a credit would resolve to,
// without creating one.
func (s *Service) matchSenderProfile(ctx context.Context, senders repository.SenderProfileRepository, c *credit.Credit) (*security.SenderProfile, error) {
	switch {
	case c.BankTransfer != nil:
		t := c.BankTransfer
		return notFoundAsNil(senders.FindByBankTransfer(ctx, t.SenderName, t.SortCode, t.AccountNumber, t.RollNumber))
	case c.Payment != nil:
		p := c.Payment
		return notFoundAsNil(senders.FindByDebitCard(ctx, p.CardNumberLastDigits, p.CardExpiryDate, p.BillingAddress.NormalisedPostcode()))
	default:
		return nil, nil
	}
}

// activeAutoAcceptState returns the latest state of an active auto-accept
// rule covering the evaluation's (debit card sender, prisoner) pair, or nil.
func (s *Service) activeAutoAcceptState(ctx context.Context, uow repository.UnitOfWork, ev *rules.Evaluation) (*security.CheckAutoAcceptRuleState, error) {
	if ev.SenderProfile == nil || ev.SenderProfile.DebitCardDetails == nil || ev.PrisonerProfile == nil {
		return nil, nil
	}
	autoAccepts, err := uow.AutoAcceptRules()
	if err != nil {
		return nil, err
	}
	rule, err := autoAccepts.FindByPair(ctx, ev.SenderProfile.DebitCardDetails.ID, ev.PrisonerProfile.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	state := rule.CurrentState()
	if state == nil || !state.Active {
		return nil, nil
	}
	return state, nil
}

// AcceptCheck records a manual acceptance of a pending check. An acceptance
// must not carry rejection reasons. Exactly one decision can land on a
// check: a concurrent decision loses with a conflict error.
func (s *Service) AcceptCheck(ctx context.Context, checkID, by uuid.UUID, decisionReason string, rejectionReasons []security.RejectionReason) error {
	if len(rejectionReasons) > 0 {
		return fmt.Errorf("%w: an accepted check cannot have rejection reasons", domain.ErrValidation)
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		checks, err := uow.Checks()
		if err != nil {
			return err
		}
		check, err := checks.Get(ctx, checkID)
		if err != nil {
			return err
		}
		if err = check.Accept(by, decisionReason, s.now()); err != nil {
			return err
		}
		if err = checks.UpdateDecision(ctx, check); err != nil {
			return err
		}
		s.logger.Info("check accepted", "check_id", checkID, "actioned_by", by)
		return nil
	})
}

// RejectCheck records a rejection of a pending check with structured
// reasons.
func (s *Service) RejectCheck(ctx context.Context, checkID, by uuid.UUID, decisionReason string, reasons []security.RejectionReason) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		checks, err := uow.Checks()
		if err != nil {
			return err
		}
		check, err := checks.Get(ctx, checkID)
		if err != nil {
			return err
		}
		if err = check.Reject(by, decisionReason, reasons, s.now()); err != nil {
			return err
		}
		if err = checks.UpdateDecision(ctx, check); err != nil {
			return err
		}
		s.logger.Info("check rejected", "check_id", checkID, "actioned_by", by)
		return nil
	})
}

// AssignCheck claims a pending check for a user, or unclaims it when
// assignee is nil. Claiming a check already assigned to somebody else fails
// with a validation error naming the current assignee.
func (s *Service) AssignCheck(ctx context.Context, checkID uuid.UUID, assignee *uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		checks, err := uow.Checks()
		if err != nil {
			return err
		}
		check, err := checks.Get(ctx, checkID)
		if err != nil {
			return err
		}
		if assignee != nil && check.AssignedToID != nil && *assignee != *check.AssignedToID {
			users, err := uow.Users()
			if err != nil {
				return err
			}
			assignedTo := check.AssignedToID.String()
			if u, err := users.Get(ctx, *check.AssignedToID); err == nil {
				assignedTo = u.FullName()
			}
			return fmt.Errorf("%w: that check is already assigned to %s", domain.ErrValidation, assignedTo)
		}
		if err = check.Assign(assignee); err != nil {
			return err
		}
		return checks.UpdateAssignment(ctx, check.ID, assignee)
	})
}

// GetCheck fetches one check.
func (s *Service) GetCheck(ctx context.Context, checkID uuid.UUID) (check *security.Check, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		checks, err := uow.Checks()
		if err != nil {
			return err
		}
		check, err = checks.Get(ctx, checkID)
		return err
	})
	return
}

func notFoundAsNil[T any](v *T, err error) (*T, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return v, err
}
