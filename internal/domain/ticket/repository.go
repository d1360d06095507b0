package ticket

import (
	"context"
	"time"
)

type TicketRepository interface {
	GetByID(ctx context.Context, id string) (Ticket, error)
	List(ctx context.Context, status *TicketStatus) ([]Ticket, error)
	Create(ctx context.Context, t Ticket) (Ticket, error)
	Update(ctx context.Context, t Ticket) error

	// ListUnresolvedCreatedBefore backs the SLA overdue scan: unresolved
	// tickets (open, in_progress, pending) created before the cutoff.
	ListUnresolvedCreatedBefore(ctx context.Context, cutoff time.Time) ([]Ticket, error)
}

type CommentRepository interface {
	ListByTicket(ctx context.Context, ticketID string) ([]Comment, error)
	Create(ctx context.Context, c Comment) (Comment, error)
}

type SLAPolicyRepository interface {
	GetByID(ctx context.Context, id string) (SLAPolicy, error)
	GetByPriority(ctx context.Context, priority TicketPriority) (SLAPolicy, error)
	List(ctx context.Context) ([]SLAPolicy, error)
}
