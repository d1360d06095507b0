package ticket

import (
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is the support request aggregate. The requester is polymorphic: a
// registered user or an external client.
type Ticket struct {
	ID        string
	Number    string
	Requester party.Ref

	Category    string
	Priority    TicketPriority
	Subject     string
	Description string

	Status      TicketStatus
	AssigneeID  *string
	SLAPolicyID *string

	SatisfactionRating   *int
	SatisfactionFeedback *string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
	ClosedAt   *time.Time
}

// Comment is a ticket conversation entry. System comments are authored by
// lifecycle transitions; internal comments are staff-only.
type Comment struct {
	ID       string
	TicketID string
	Author   party.Ref
	Body     string
	Internal bool
	System   bool

	CreatedAt time.Time
}

// MarkInProgress picks the ticket up. Legal from open or pending.
func (t *Ticket) MarkInProgress() error {
	if t.Status != TicketStatusOpen && t.Status != TicketStatusPending {
		return ErrInvalidStatusChange
	}
	t.Status = TicketStatusInProgress
	return nil
}

// MarkPending parks an in_progress ticket waiting on the requester.
func (t *Ticket) MarkPending() error {
	if t.Status != TicketStatusInProgress {
		return ErrInvalidStatusChange
	}
	t.Status = TicketStatusPending
	return nil
}

// Resolve is legal from the worked states.
func (t *Ticket) Resolve(now time.Time) error {
	if t.Status != TicketStatusInProgress && t.Status != TicketStatusPending {
		return ErrInvalidStatusChange
	}
	t.Status = TicketStatusResolved
	t.ResolvedAt = &now
	return nil
}

// Close stamps ClosedAt and the satisfaction fields unconditionally: any
// status may close, matching the observed behavior.
func (t *Ticket) Close(rating *int, feedback *string, now time.Time) {
	t.Status = TicketStatusClosed
	t.ClosedAt = &now
	t.SatisfactionRating = rating
	t.SatisfactionFeedback = feedback
}

// Reopen reverses a close: clears ClosedAt and satisfaction, reopens, and
// returns the system comment recording the reason. The caller persists both.
func (t *Ticket) Reopen(reason string, now time.Time) (Comment, error) {
	if t.Status != TicketStatusClosed {
		return Comment{}, ErrNotClosed
	}

	t.Status = TicketStatusOpen
	t.ClosedAt = nil
	t.SatisfactionRating = nil
	t.SatisfactionFeedback = nil

	return Comment{
		TicketID:  t.ID,
		Body:      "Ticket reopened: " + reason,
		System:    true,
		CreatedAt: now,
	}, nil
}

// AutoReopenForComment flips a closed ticket back to open before a
// non-internal comment is persisted. Unlike Reopen it leaves ClosedAt and
// the satisfaction fields in place; only an explicit reopen clears them.
// Returns whether the status changed.
func (t *Ticket) AutoReopenForComment(internal bool) bool {
	if t.Status != TicketStatusClosed || internal {
		return false
	}
	t.Status = TicketStatusOpen
	return true
}
