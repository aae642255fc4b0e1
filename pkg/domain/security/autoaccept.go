package security

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrAutoAcceptRuleExists is returned when creating a second auto-accept
// rule for the same (debit card sender details, prisoner profile) pair.
// The message text is a cross-system contract consumed by noms-ops and must
// not be reworded.
var ErrAutoAcceptRuleExists = errors.New(
	"An existing AutoAcceptRule is present for this DebitCardSenderDetails/PrisonerProfile pair",
)

// CheckAutoAcceptRuleState is one entry in a rule's append-only audit trail.
// States are never edited or deleted; the newest state wins. Seq is assigned
// by the store in insertion order, so ordering does not depend on timestamp
// resolution.
type CheckAutoAcceptRuleState struct {
	ID               uuid.UUID
	AutoAcceptRuleID uuid.UUID
	Seq              int64
	Active           bool
	Reason           string
	AddedByID        uuid.UUID
	CreatedAt        time.Time
}

// CheckAutoAcceptRule is a standing exception for a known-good
// (debit card sender, prisoner) pair. At most one rule exists per pair;
// activation history is the ordered list of states.
type CheckAutoAcceptRule struct {
	ID                       uuid.UUID
	DebitCardSenderDetailsID uuid.UUID
	PrisonerProfileID        uuid.UUID
	States                   []CheckAutoAcceptRuleState
	CreatedAt                time.Time
}

// CurrentState returns the state with the highest sequence number, or nil
// for a rule with no states yet. Equal sequence numbers resolve to the
// later slice entry, so rules built in memory still behave append-only.
func (r *CheckAutoAcceptRule) CurrentState() *CheckAutoAcceptRuleState {
	if len(r.States) == 0 {
		return nil
	}
	latest := &r.States[0]
	for i := range r.States {
		if r.States[i].Seq >= latest.Seq {
			latest = &r.States[i]
		}
	}
	return latest
}

// IsActive reports whether the rule's latest state is active.
func (r *CheckAutoAcceptRule) IsActive() bool {
	state := r.CurrentState()
	return state != nil && state.Active
}
