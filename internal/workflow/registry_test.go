package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindSpecUnknownKind(t *testing.T) {
	_, err := KindSpec(Kind("EXPENSE_REPORT"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestEveryKindHasSpec(t *testing.T) {
	for _, kind := range Kinds() {
		spec, err := KindSpec(kind)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, spec.Kind)
		assert.NotEmpty(t, spec.Initial)
		assert.Contains(t, spec.Statuses, spec.Initial)
		assert.False(t, spec.IsTerminal(spec.Initial), "initial status of %s must not be terminal", kind)
	}
}

func TestNextResolvesLegalTransitions(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		from   Status
		action Action
		want   Status
	}{
		{"ticket start", KindSupportTicket, StatusOpen, ActionStart, StatusInProgress},
		{"ticket resolve", KindSupportTicket, StatusInProgress, ActionResolve, StatusResolved},
		{"ticket close", KindSupportTicket, StatusResolved, ActionClose, StatusClosed},
		{"leave approve", KindLeaveRequest, StatusPending, ActionApprove, StatusApproved},
		{"leave reject", KindLeaveRequest, StatusPending, ActionReject, StatusRejected},
		{"advance approve", KindAdvanceRequest, StatusPending, ActionApprove, StatusApproved},
		{"suggestion review", KindSuggestion, StatusPending, ActionReview, StatusReviewed},
		{"suggestion implement", KindSuggestion, StatusReviewed, ActionImplement, StatusImplemented},
		{"suggestion late reject", KindSuggestion, StatusReviewed, ActionReject, StatusRejected},
		{"transfer accept", KindTaskTransfer, StatusPending, ActionAccept, StatusAccepted},
		{"expense approve", KindTaskExpense, StatusPending, ActionApprove, StatusApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := KindSpec(tt.kind)
			require.NoError(t, err)

			to, err := spec.Next(tt.from, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, to)
		})
	}
}

func TestNextRejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		from   Status
		action Action
	}{
		{"ticket cannot skip to resolved", KindSupportTicket, StatusOpen, ActionResolve},
		{"ticket cannot close from open", KindSupportTicket, StatusOpen, ActionClose},
		{"leave cannot approve twice", KindLeaveRequest, StatusApproved, ActionApprove},
		{"leave cannot reject after approve", KindLeaveRequest, StatusApproved, ActionReject},
		{"suggestion cannot implement from pending", KindSuggestion, StatusPending, ActionImplement},
		{"transfer cannot accept after reject", KindTaskTransfer, StatusRejected, ActionAccept},
		{"expense cannot reject after approve", KindTaskExpense, StatusApproved, ActionReject},
		{"foreign action", KindLeaveRequest, StatusPending, ActionStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := KindSpec(tt.kind)
			require.NoError(t, err)

			_, err = spec.Next(tt.from, tt.action)
			assert.ErrorIs(t, err, ErrIllegalTransition)
		})
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, kind := range Kinds() {
		spec, err := KindSpec(kind)
		require.NoError(t, err)

		for _, status := range spec.Statuses {
			if !spec.IsTerminal(status) {
				continue
			}
			assert.Empty(t, spec.Actions(status),
				"terminal status %s of %s must allow no actions", status, kind)
		}
	}
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind("LEAVE_REQUEST"))
	assert.True(t, IsKind("TASK_EXPENSE"))
	assert.False(t, IsKind("leave_request"))
	assert.False(t, IsKind(""))
}
