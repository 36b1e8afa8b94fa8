package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusDraft, StatusPendingReview, true},
		{StatusPendingReview, StatusApproved, true},
		{StatusPendingReview, StatusSent, true},
		{StatusPendingReview, StatusFailed, true},
		{StatusApproved, StatusSent, true},
		{StatusApproved, StatusFailed, true},
		{StatusDraft, StatusSent, false},
		{StatusSent, StatusFailed, false},
		{StatusFailed, StatusSent, false},
		{StatusApproved, StatusPendingReview, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCheckTransition_ReturnsTypedError(t *testing.T) {
	err := CheckTransition(StatusSent, StatusApproved)
	require.Error(t, err)

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, StatusSent, te.From)
	assert.Equal(t, StatusApproved, te.To)
	assert.Contains(t, err.Error(), "sent -> approved")

	assert.NoError(t, CheckTransition(StatusPendingReview, StatusApproved))
}

func TestStatus_ValidAndTerminal(t *testing.T) {
	assert.True(t, StatusApproved.Valid())
	assert.False(t, Status("archived").Valid())
	assert.True(t, StatusSent.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusPendingReview.IsTerminal())
}
