package security

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/credit"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/disbursement"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/security"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/repository"
)

// ResolveSender attaches the canonical sender profile to a credit, creating
// profiles and financial-instrument records as needed. Calling it on an
// already-resolved credit is a no-op returning the linked profile.
func (s *Service) ResolveSender(ctx context.Context, creditID uuid.UUID) (profile *security.SenderProfile, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		credits, err := uow.Credits()
		if err != nil {
			return err
		}
		senders, err := uow.SenderProfiles()
		if err != nil {
			return err
		}
		c, err := credits.Get(ctx, creditID)
		if err != nil {
			return err
		}
		if c.SenderProfileID != nil {
			profile, err = senders.Get(ctx, *c.SenderProfileID)
			return err
		}

		profile, err = s.createSenderProfile(ctx, uow, senders, c)
		if err != nil {
			return err
		}
		if c.PrisonID != nil {
			if err = senders.AddPrison(ctx, profile.ID, *c.PrisonID); err != nil {
				return err
			}
		}
		return credits.LinkSenderProfile(ctx, c.ID, profile.ID)
	})
	if err != nil {
		profile = nil
	}
	return
}

func (s *Service) createSenderProfile(
	ctx context.Context,
	uow repository.UnitOfWork,
	senders repository.SenderProfileRepository,
	c *credit.Credit,
) (*security.SenderProfile, error) {
	switch {
	case c.BankTransfer != nil:
		return s.senderForBankTransfer(ctx, uow, senders, c)
	case c.Payment != nil:
		return s.senderForDebitCard(ctx, senders, c)
	default:
		s.logger.Error("credit has neither payment nor bank transfer",
			"credit_id", c.ID)
		return senders.GetOrCreateAnonymous(ctx)
	}
}

func (s *Service) senderForBankTransfer(
	ctx context.Context,
	uow repository.UnitOfWork,
	senders repository.SenderProfileRepository,
	c *credit.Credit,
) (*security.SenderProfile, error) {
	t := c.BankTransfer
	profile, err := senders.FindByBankTransfer(ctx, t.SenderName, t.SortCode, t.AccountNumber, t.RollNumber)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	bankAccounts, err := uow.BankAccounts()
	if err != nil {
		return nil, err
	}
	account, err := bankAccounts.GetOrCreate(ctx, t.SortCode, t.AccountNumber, t.RollNumber)
	if err != nil {
		return nil, err
	}
	return senders.CreateWithBankTransferDetails(ctx, t.SenderName, account.ID)
}

func (s *Service) senderForDebitCard(
	ctx context.Context,
	senders repository.SenderProfileRepository,
	c *credit.Credit,
) (*security.SenderProfile, error) {
	p := c.Payment
	postcode := p.BillingAddress.NormalisedPostcode()

	profile, err := senders.FindByDebitCard(ctx, p.CardNumberLastDigits, p.CardExpiryDate, postcode)
	if errors.Is(err, domain.ErrNotFound) {
		profile, err = senders.CreateWithDebitCardDetails(ctx, p.CardNumberLastDigits, p.CardExpiryDate, postcode)
	}
	if err != nil {
		return nil, err
	}

	details := profile.DebitCardDetails
	if p.CardholderName != "" {
		if err = senders.AddCardholderName(ctx, details.ID, p.CardholderName); err != nil {
			return nil, err
		}
	}
	if p.Email != "" {
		if err = senders.AddSenderEmail(ctx, details.ID, p.Email); err != nil {
			return nil, err
		}
	}
	if p.BillingAddress != nil {
		if err = senders.AttachBillingAddress(ctx, p.BillingAddress.ID, details.ID); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// ResolvePrisonerForCredit attaches the canonical prisoner profile to a
// credit. The credit must have a resolved prison; a credit without one
// indicates an upstream bug and aborts the unit of work.
func (s *Service) ResolvePrisonerForCredit(ctx context.Context, creditID uuid.UUID) (profile *security.PrisonerProfile, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		credits, err := uow.Credits()
		if err != nil {
			return err
		}
		prisoners, err := uow.PrisonerProfiles()
		if err != nil {
			return err
		}
		c, err := credits.Get(ctx, creditID)
		if err != nil {
			return err
		}
		if c.PrisonerProfileID != nil {
			profile, err = prisoners.Get(ctx, *c.PrisonerProfileID)
			return err
		}
		if c.PrisonID == nil {
			return fmt.Errorf("%w: credit %s does not have a known prison", domain.ErrIntegrity, c.ID)
		}

		profile, err = prisoners.Upsert(ctx, c.PrisonerNumber, security.PrisonerSeed{
			PrisonerName:     c.PrisonerName,
			PrisonerDOB:      c.PrisonerDOB,
			SingleOffenderID: c.SingleOffenderID,
		})
		if err != nil {
			return err
		}
		if c.Payment != nil && c.Payment.RecipientName != "" {
			if err = prisoners.AddProvidedName(ctx, profile.ID, c.Payment.RecipientName); err != nil {
				return err
			}
		}
		if err = prisoners.AddPrison(ctx, profile.ID, *c.PrisonID); err != nil {
			return err
		}
		return credits.LinkPrisonerProfile(ctx, c.ID, profile.ID)
	})
	if err != nil {
		profile = nil
	}
	return
}

// ResolvePrisonerForDisbursement attaches the canonical prisoner profile to
// a disbursement, back-filling dob and single offender id from the active
// prisoner location when one exists.
func (s *Service) ResolvePrisonerForDisbursement(ctx context.Context, disbursementID uuid.UUID) (profile *security.PrisonerProfile, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		disbursements, err := uow.Disbursements()
		if err != nil {
			return err
		}
		prisoners, err := uow.PrisonerProfiles()
		if err != nil {
			return err
		}
		locations, err := uow.PrisonerLocations()
		if err != nil {
			return err
		}
		d, err := disbursements.Get(ctx, disbursementID)
		if err != nil {
			return err
		}
		if d.PrisonerProfileID != nil {
			profile, err = prisoners.Get(ctx, *d.PrisonerProfileID)
			return err
		}

		seed := security.PrisonerSeed{PrisonerName: d.PrisonerName}
		location, err := locations.GetActive(ctx, d.PrisonerNumber)
		switch {
		case err == nil:
			seed.PrisonerDOB = location.PrisonerDOB
			seed.SingleOffenderID = location.SingleOffenderID
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		profile, err = prisoners.Upsert(ctx, d.PrisonerNumber, seed)
		if err != nil {
			return err
		}
		if err = prisoners.AddPrison(ctx, profile.ID, d.PrisonID); err != nil {
			return err
		}
		return disbursements.LinkPrisonerProfile(ctx, d.ID, profile.ID)
	})
	if err != nil {
		profile = nil
	}
	return
}

// ResolveRecipient attaches the canonical recipient profile to a
// disbursement. Cheque disbursements share the well-known cheque recipient.
func (s *Service) ResolveRecipient(ctx context.Context, disbursementID uuid.UUID) (profile *security.RecipientProfile, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		disbursements, err := uow.Disbursements()
		if err != nil {
			return err
		}
		recipients, err := uow.RecipientProfiles()
		if err != nil {
			return err
		}
		d, err := disbursements.Get(ctx, disbursementID)
		if err != nil {
			return err
		}
		if d.RecipientProfileID != nil {
			profile, err = recipients.Get(ctx, *d.RecipientProfileID)
			return err
		}

		if d.Method == disbursement.MethodCheque {
			profile, err = recipients.GetOrCreateChequeRecipient(ctx)
		} else {
			profile, err = s.recipientForBankTransfer(ctx, uow, recipients, d)
		}
		if err != nil {
			return err
		}
		if err = recipients.AddPrison(ctx, profile.ID, d.PrisonID); err != nil {
			return err
		}
		return disbursements.LinkRecipientProfile(ctx, d.ID, profile.ID)
	})
	if err != nil {
		profile = nil
	}
	return
}

func (s *Service) recipientForBankTransfer(
	ctx context.Context,
	uow repository.UnitOfWork,
	recipients repository.RecipientProfileRepository,
	d *disbursement.Disbursement,
) (*security.RecipientProfile, error) {
	profile, err := recipients.FindByBankAccount(ctx, d.SortCode, d.AccountNumber, d.RollNumber)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	bankAccounts, err := uow.BankAccounts()
	if err != nil {
		return nil, err
	}
	account, err := bankAccounts.GetOrCreate(ctx, d.SortCode, d.AccountNumber, d.RollNumber)
	if err != nil {
		return nil, err
	}
	return recipients.CreateWithBankTransferDetails(ctx, account.ID)
}
