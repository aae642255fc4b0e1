package security

import (
	"context"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
)

// AggregateScope selects the profiles whose denormalized counters should be
// recomputed. Empty id slices mean every profile of that kind.
type AggregateScope struct {
	SenderIDs    []uuid.UUID
	PrisonerIDs  []uuid.UUID
	RecipientIDs []uuid.UUID
}

// RecalculateAggregates recomputes credit and disbursement counters for the
// scoped profiles as a snapshot over currently linked records. The operation
// is idempotent and safe to run concurrently with new linking: a lost update
// is transient staleness the next run self-corrects.
func (s *Service) RecalculateAggregates(ctx context.Context, scope AggregateScope) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		senders, err := uow.SenderProfiles()
		if err != nil {
			return err
		}
		prisoners, err := uow.PrisonerProfiles()
		if err != nil {
			return err
		}
		recipients, err := uow.RecipientProfiles()
		if err != nil {
			return err
		}

		if err = senders.RecalculateCreditTotals(ctx, scope.SenderIDs...); err != nil {
			return err
		}
		if err = prisoners.RecalculateCreditTotals(ctx, scope.PrisonerIDs...); err != nil {
			return err
		}
		if err = prisoners.RecalculateDisbursementTotals(ctx, scope.PrisonerIDs...); err != nil {
			return err
		}
		return recipients.RecalculateDisbursementTotals(ctx, scope.RecipientIDs...)
	})
}

// UpdateCurrentPrisons resynchronises every prisoner profile's current
// prison from the latest active prisoner location, nulling it when none is
// active.
func (s *Service) UpdateCurrentPrisons(ctx context.Context) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		prisoners, err := uow.PrisonerProfiles()
		if err != nil {
			return err
		}
		return prisoners.UpdateCurrentPrisons(ctx)
	})
}
