package rules

import "github.com/ministryofjustice/money-to-prisoners-security/pkg/domain/credit"

// ShouldCheck reports whether a credit is eligible for fraud screening.
// Checks only apply to debit card payments that are still pending, while the
// credit itself has not moved past its initial resolution.
func ShouldCheck(c *credit.Credit) bool {
	if c.Resolution != credit.ResolutionInitial {
		// it's too late once credits reach any other resolution
		return false
	}
	if c.Payment == nil {
		return false
	}
	if c.Payment.Status != credit.PaymentPending {
		return false
	}
	return hasEnoughDetail(c)
}

// hasEnoughDetail guards against silently screening incomplete records:
// a credit must either carry both profile links already, or a fully
// populated payment. Incomplete records are deferred, not auto-accepted.
func hasEnoughDetail(c *credit.Credit) bool {
	if c.SenderProfileID != nil && c.PrisonerProfileID != nil {
		return true
	}
	p := c.Payment
	return p.Email != "" &&
		p.CardholderName != "" &&
		p.CardNumberFirstDigits != "" &&
		p.CardNumberLastDigits != "" &&
		p.CardExpiryDate != "" &&
		p.BillingAddress != nil
}
