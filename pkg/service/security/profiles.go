package security

import (
	"context"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
)

// GetSenderProfile fetches one sender profile with its details.
func (s *Service) GetSenderProfile(ctx context.Context, id uuid.UUID) (profile *security.SenderProfile, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		senders, err := uow.SenderProfiles()
		if err != nil {
			return err
		}
		profile, err = senders.Get(ctx, id)
		return err
	})
	return
}

// GetPrisonerProfile fetches one prisoner profile.
func (s *Service) GetPrisonerProfile(ctx context.Context, id uuid.UUID) (profile *security.PrisonerProfile, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		prisoners, err := uow.PrisonerProfiles()
		if err != nil {
			return err
		}
		profile, err = prisoners.Get(ctx, id)
		return err
	})
	return
}

// GetRecipientProfile fetches one recipient profile.
func (s *Service) GetRecipientProfile(ctx context.Context, id uuid.UUID) (profile *security.RecipientProfile, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		recipients, err := uow.RecipientProfiles()
		if err != nil {
			return err
		}
		profile, err = recipients.Get(ctx, id)
		return err
	})
	return
}
