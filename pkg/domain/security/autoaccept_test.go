package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAutoAcceptRuleCurrentState(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rule := &CheckAutoAcceptRule{ID: uuid.New()}

	assert.Nil(t, rule.CurrentState())
	assert.False(t, rule.IsActive())

	rule.States = append(rule.States, CheckAutoAcceptRuleState{
		ID: uuid.New(), Seq: 1, Active: true, CreatedAt: base,
	})
	assert.True(t, rule.IsActive())

	rule.States = append(rule.States, CheckAutoAcceptRuleState{
		ID: uuid.New(), Seq: 2, Active: false, Reason: "sender flagged", CreatedAt: base.Add(time.Hour),
	})
	assert.False(t, rule.IsActive())
	assert.Equal(t, "sender flagged", rule.CurrentState().Reason)

	// state order in the slice does not matter, only the sequence
	rule.States = append([]CheckAutoAcceptRuleState{{
		ID: uuid.New(), Seq: 3, Active: true, CreatedAt: base.Add(2 * time.Hour),
	}}, rule.States...)
	assert.True(t, rule.IsActive())
}

func TestAutoAcceptRuleCurrentState_TimestampTie(t *testing.T) {
	// two states landing in the same clock tick still order by sequence
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rule := &CheckAutoAcceptRule{ID: uuid.New(), States: []CheckAutoAcceptRuleState{
		{ID: uuid.New(), Seq: 2, Active: false, Reason: "withdrawn", CreatedAt: at},
		{ID: uuid.New(), Seq: 1, Active: true, CreatedAt: at},
	}}

	assert.False(t, rule.IsActive())
	assert.Equal(t, "withdrawn", rule.CurrentState().Reason)
}

func TestErrAutoAcceptRuleExistsMessage(t *testing.T) {
	assert.Equal(t,
		"An existing AutoAcceptRule is present for this DebitCardSenderDetails/PrisonerProfile pair",
		ErrAutoAcceptRuleExists.Error())
}
