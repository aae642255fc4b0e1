package security

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
)

// CheckStatus is the state of a fraud review task.
type CheckStatus string

const (
	CheckStatusPending  CheckStatus = "pending"
	CheckStatusAccepted CheckStatus = "accepted"
	CheckStatusRejected CheckStatus = "rejected"
)

// NoRulesMatchedDescription is the description given to checks that are
// accepted immediately because no rule matched.
const NoRulesMatchedDescription = "Credit matched no rules and was automatically accepted"

// RejectionReason is a structured reason attached to a rejected check.
type RejectionReason struct {
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}

// Check is a review task for exactly one credit. It transitions
// PENDING→ACCEPTED or PENDING→REJECTED once and is immutable afterwards,
// except for the assignment which can be claimed and unclaimed while the
// check is still pending.
type Check struct {
	ID          uuid.UUID
	CreditID    uuid.UUID
	Status      CheckStatus
	Description string
	// Rules holds the matched rule codes in evaluation order.
	Rules []string

	ActionedAt       *time.Time
	ActionedByID     *uuid.UUID
	AssignedToID     *uuid.UUID
	DecisionReason   string
	RejectionReasons []RejectionReason

	// Set when the check was accepted automatically by an active
	// auto-accept rule; points at the rule state that caused it.
	AutoAcceptRuleStateID *uuid.UUID

	CreatedAt time.Time
}

// Accept records a manual acceptance. The decision reason must be present
// but may be blank.
func (c *Check) Accept(by uuid.UUID, decisionReason string, at time.Time) error {
	if c.Status != CheckStatusPending {
		return fmt.Errorf("%w: cannot accept a check in status %q", domain.ErrValidation, c.Status)
	}
	c.Status = CheckStatusAccepted
	c.ActionedByID = &by
	c.ActionedAt = &at
	c.DecisionReason = decisionReason
	return nil
}

// Reject records a rejection. At least one structured rejection reason is
// required.
func (c *Check) Reject(by uuid.UUID, decisionReason string, reasons []RejectionReason, at time.Time) error {
	if c.Status != CheckStatusPending {
		return fmt.Errorf("%w: cannot reject a check in status %q", domain.ErrValidation, c.Status)
	}
	if len(reasons) == 0 {
		return fmt.Errorf("%w: rejection reasons cannot be blank", domain.ErrValidation)
	}
	c.Status = CheckStatusRejected
	c.ActionedByID = &by
	c.ActionedAt = &at
	c.DecisionReason = decisionReason
	c.RejectionReasons = reasons
	return nil
}

// Assign claims the check for a user, or unclaims it when assignee is nil.
// A check already claimed by somebody else cannot be reassigned directly.
func (c *Check) Assign(assignee *uuid.UUID) error {
	if c.Status != CheckStatusPending {
		return fmt.Errorf("%w: cannot assign a check in status %q", domain.ErrValidation, c.Status)
	}
	if assignee != nil && c.AssignedToID != nil && *assignee != *c.AssignedToID {
		return fmt.Errorf("%w: check is already assigned", domain.ErrValidation)
	}
	c.AssignedToID = assignee
	return nil
}
