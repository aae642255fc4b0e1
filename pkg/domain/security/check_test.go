package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ministryofjustice/money-to-prisoners-security/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingCheck() *Check {
	return &Check{
		ID:       uuid.New(),
		CreditID: uuid.New(),
		Status:   CheckStatusPending,
		Rules:    []string{"FIUMONP"},
	}
}

func TestCheckAccept(t *testing.T) {
	check := pendingCheck()
	by := uuid.New()
	at := time.Now()

	require.NoError(t, check.Accept(by, "looks fine", at))
	assert.Equal(t, CheckStatusAccepted, check.Status)
	assert.Equal(t, &by, check.ActionedByID)
	assert.Equal(t, &at, check.ActionedAt)
	assert.Equal(t, "looks fine", check.DecisionReason)
}

func TestCheckAccept_BlankReasonAllowed(t *testing.T) {
	check := pendingCheck()
	assert.NoError(t, check.Accept(uuid.New(), "", time.Now()))
}

func TestCheckAccept_NotPending(t *testing.T) {
	check := pendingCheck()
	require.NoError(t, check.Accept(uuid.New(), "", time.Now()))

	err := check.Accept(uuid.New(), "", time.Now())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckReject(t *testing.T) {
	check := pendingCheck()
	by := uuid.New()
	reasons := []RejectionReason{{Code: "fiu_investigation_id", Detail: "ABC123"}}

	require.NoError(t, check.Reject(by, "needs investigation", reasons, time.Now()))
	assert.Equal(t, CheckStatusRejected, check.Status)
	assert.Equal(t, reasons, check.RejectionReasons)
}

func TestCheckReject_RequiresReasons(t *testing.T) {
	check := pendingCheck()
	err := check.Reject(uuid.New(), "because", nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, CheckStatusPending, check.Status)
}

func TestCheckReject_NotPending(t *testing.T) {
	check := pendingCheck()
	reasons := []RejectionReason{{Code: "payment_source_linked_other_prisoners"}}
	require.NoError(t, check.Reject(uuid.New(), "", reasons, time.Now()))

	err := check.Reject(uuid.New(), "", reasons, time.Now())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckAssign(t *testing.T) {
	check := pendingCheck()
	assignee := uuid.New()

	require.NoError(t, check.Assign(&assignee))
	assert.Equal(t, &assignee, check.AssignedToID)

	// reclaiming by the same user is a no-op
	require.NoError(t, check.Assign(&assignee))

	other := uuid.New()
	assert.ErrorIs(t, check.Assign(&other), domain.ErrValidation)

	// unclaim, then the other user can claim
	require.NoError(t, check.Assign(nil))
	assert.Nil(t, check.AssignedToID)
	require.NoError(t, check.Assign(&other))
}

func TestCheckAssign_NotPending(t *testing.T) {
	check := pendingCheck()
	require.NoError(t, check.Accept(uuid.New(), "", time.Now()))

	assignee := uuid.New()
	assert.ErrorIs(t, check.Assign(&assignee), domain.ErrValidation)
}
