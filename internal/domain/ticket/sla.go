package ticket

import "time"

// SLAPolicy defines the expected response and resolution windows for a
// ticket priority.
type SLAPolicy struct {
	ID                string
	Name              string
	Priority          TicketPriority
	ResponseMinutes   int
	ResolutionMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p SLAPolicy) ResponseDueAt(createdAt time.Time) time.Time {
	return createdAt.Add(time.Duration(p.ResponseMinutes) * time.Minute)
}

func (p SLAPolicy) ResolutionDueAt(createdAt time.Time) time.Time {
	return createdAt.Add(time.Duration(p.ResolutionMinutes) * time.Minute)
}

// Overdue reports whether an unresolved ticket created at createdAt has
// blown its resolution window.
func (p SLAPolicy) Overdue(createdAt, now time.Time) bool {
	return now.After(p.ResolutionDueAt(createdAt))
}
