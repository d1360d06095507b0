package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

func TestTicket_StatusFlow(t *testing.T) {
	t.Parallel()

	tk := Ticket{Status: TicketStatusOpen}

	require.NoError(t, tk.MarkInProgress())
	assert.Equal(t, TicketStatusInProgress, tk.Status)

	require.NoError(t, tk.MarkPending())
	assert.Equal(t, TicketStatusPending, tk.Status)

	// pending may go back to in_progress
	require.NoError(t, tk.MarkInProgress())

	require.NoError(t, tk.Resolve(testNow))
	assert.Equal(t, TicketStatusResolved, tk.Status)
	require.NotNil(t, tk.ResolvedAt)

	// resolved may not be picked up again
	assert.ErrorIs(t, tk.MarkInProgress(), ErrInvalidStatusChange)
	assert.ErrorIs(t, tk.Resolve(testNow), ErrInvalidStatusChange)
}

func TestTicket_Close_IsUnconditional(t *testing.T) {
	t.Parallel()

	rating := 4
	feedback := "quick fix"

	for _, status := range []TicketStatus{
		TicketStatusOpen, TicketStatusInProgress, TicketStatusPending, TicketStatusResolved,
	} {
		tk := Ticket{Status: status}
		tk.Close(&rating, &feedback, testNow)

		assert.Equal(t, TicketStatusClosed, tk.Status)
		require.NotNil(t, tk.ClosedAt)
		assert.Equal(t, 4, *tk.SatisfactionRating)
		assert.Equal(t, "quick fix", *tk.SatisfactionFeedback)
	}
}

func TestTicket_Reopen(t *testing.T) {
	t.Parallel()

	t.Run("clears close stamps and appends system comment", func(t *testing.T) {
		rating := 2
		tk := Ticket{ID: "t-1", Status: TicketStatusOpen}
		tk.Close(&rating, nil, testNow)

		comment, err := tk.Reopen("issue came back", testNow.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, TicketStatusOpen, tk.Status)
		assert.Nil(t, tk.ClosedAt)
		assert.Nil(t, tk.SatisfactionRating)
		assert.True(t, comment.System)
		assert.Equal(t, "t-1", comment.TicketID)
		assert.Contains(t, comment.Body, "issue came back")
	})

	t.Run("only closed tickets reopen", func(t *testing.T) {
		tk := Ticket{Status: TicketStatusResolved}
		_, err := tk.Reopen("nope", testNow)
		assert.ErrorIs(t, err, ErrNotClosed)
	})
}

// A customer comment on a closed ticket flips it open before the comment is
// stored, but ClosedAt keeps the prior close stamp until an explicit reopen.
func TestTicket_AutoReopenForComment_KeepsClosedAt(t *testing.T) {
	t.Parallel()

	rating := 5
	tk := Ticket{Status: TicketStatusOpen}
	tk.Close(&rating, nil, testNow)

	reopened := tk.AutoReopenForComment(false)

	assert.True(t, reopened)
	assert.Equal(t, TicketStatusOpen, tk.Status)
	require.NotNil(t, tk.ClosedAt, "auto-reopen must not clear closed_at")
	assert.Equal(t, testNow, *tk.ClosedAt)
	assert.NotNil(t, tk.SatisfactionRating)
}

func TestTicket_AutoReopenForComment_InternalDoesNothing(t *testing.T) {
	t.Parallel()

	tk := Ticket{Status: TicketStatusClosed}
	assert.False(t, tk.AutoReopenForComment(true))
	assert.Equal(t, TicketStatusClosed, tk.Status)

	open := Ticket{Status: TicketStatusOpen}
	assert.False(t, open.AutoReopenForComment(false))
}

func TestSLAPolicy_Deadlines(t *testing.T) {
	t.Parallel()

	p := SLAPolicy{Priority: TicketPriorityHigh, ResponseMinutes: 60, ResolutionMinutes: 240}
	createdAt := testNow

	assert.Equal(t, createdAt.Add(time.Hour), p.ResponseDueAt(createdAt))
	assert.Equal(t, createdAt.Add(4*time.Hour), p.ResolutionDueAt(createdAt))
	assert.False(t, p.Overdue(createdAt, createdAt.Add(4*time.Hour)))
	assert.True(t, p.Overdue(createdAt, createdAt.Add(4*time.Hour+time.Minute)))
}
