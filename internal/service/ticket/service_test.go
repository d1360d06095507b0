package ticket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/ticket"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/events"
)

type fakeTicketRepo struct {
	tickets map[string]ticket.Ticket
	seq     int
	// writes records the ticket status at each Update, so tests can assert
	// persistence ordering relative to comment creation.
	writes []ticket.TicketStatus
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (ticket.Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return ticket.Ticket{}, ticket.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeTicketRepo) List(ctx context.Context, status *ticket.TicketStatus) ([]ticket.Ticket, error) {
	var out []ticket.Ticket
	for _, t := range f.tickets {
		if status == nil || t.Status == *status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	f.seq++
	t.ID = "tck-1"
	if f.tickets == nil {
		f.tickets = make(map[string]ticket.Ticket)
	}
	f.tickets[t.ID] = t
	return t, nil
}

func (f *fakeTicketRepo) Update(ctx context.Context, t ticket.Ticket) error {
	f.tickets[t.ID] = t
	f.writes = append(f.writes, t.Status)
	return nil
}

func (f *fakeTicketRepo) ListUnresolvedCreatedBefore(ctx context.Context, cutoff time.Time) ([]ticket.Ticket, error) {
	var out []ticket.Ticket
	for _, t := range f.tickets {
		switch t.Status {
		case ticket.TicketStatusOpen, ticket.TicketStatusInProgress, ticket.TicketStatusPending:
			if t.CreatedAt.Before(cutoff) {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

type fakeCommentRepo struct {
	comments []ticket.Comment
	// onCreate lets a test observe repo interleaving.
	onCreate func()
}

func (f *fakeCommentRepo) ListByTicket(ctx context.Context, ticketID string) ([]ticket.Comment, error) {
	return f.comments, nil
}

func (f *fakeCommentRepo) Create(ctx context.Context, c ticket.Comment) (ticket.Comment, error) {
	if f.onCreate != nil {
		f.onCreate()
	}
	c.ID = "cmt-1"
	f.comments = append(f.comments, c)
	return c, nil
}

type fakeSLARepo struct {
	policies map[ticket.TicketPriority]ticket.SLAPolicy
}

func (f *fakeSLARepo) GetByID(ctx context.Context, id string) (ticket.SLAPolicy, error) {
	for _, p := range f.policies {
		if p.ID == id {
			return p, nil
		}
	}
	return ticket.SLAPolicy{}, ticket.ErrSLAPolicyNotFound
}

func (f *fakeSLARepo) GetByPriority(ctx context.Context, priority ticket.TicketPriority) (ticket.SLAPolicy, error) {
	p, ok := f.policies[priority]
	if !ok {
		return ticket.SLAPolicy{}, ticket.ErrSLAPolicyNotFound
	}
	return p, nil
}

func (f *fakeSLARepo) List(ctx context.Context) ([]ticket.SLAPolicy, error) { return nil, nil }

type fakeResolver struct {
	known map[party.Ref]party.Contact
}

func (f *fakeResolver) Resolve(ctx context.Context, ref party.Ref) (party.Contact, error) {
	c, ok := f.known[ref]
	if !ok {
		return party.Contact{}, party.ErrUnknownParty
	}
	return c, nil
}

func newFixture(tickets map[string]ticket.Ticket) (*TicketService, *fakeTicketRepo, *fakeCommentRepo, *events.Dispatcher) {
	ticketRepo := &fakeTicketRepo{tickets: tickets}
	commentRepo := &fakeCommentRepo{}
	dispatcher := events.NewDispatcher()

	svc := NewTicketService(
		nil,
		ticketRepo,
		commentRepo,
		&fakeSLARepo{policies: map[ticket.TicketPriority]ticket.SLAPolicy{
			ticket.TicketPriorityHigh: {ID: "sla-high", Priority: ticket.TicketPriorityHigh, ResponseMinutes: 60, ResolutionMinutes: 240},
		}},
		&fakeResolver{known: map[party.Ref]party.Contact{
			party.ClientRef("cli-1"): {Name: "Acme Ltd", Email: "ops@acme.test"},
		}},
		dispatcher,
	)
	return svc, ticketRepo, commentRepo, dispatcher
}

func TestTicketService_Create(t *testing.T) {
	t.Parallel()
	svc, _, _, dispatcher := newFixture(nil)

	var created []events.TicketCreated
	dispatcher.Subscribe(events.TicketCreated{}.Name(), func(ctx context.Context, e events.Event) error {
		created = append(created, e.(events.TicketCreated))
		return nil
	})

	tk, err := svc.Create(context.Background(), ticket.CreateTicketRequest{
		RequesterKind: "client",
		RequesterID:   "cli-1",
		Category:      "billing",
		Priority:      "high",
		Subject:       "Invoice mismatch",
		Description:   "Totals differ from the quotation.",
	})
	require.NoError(t, err)

	assert.Equal(t, ticket.TicketStatusOpen, tk.Status)
	assert.Regexp(t, `^TKT-\d{8}-[0-9A-F]{6}$`, tk.Number)
	require.NotNil(t, tk.SLAPolicyID)
	assert.Equal(t, "sla-high", *tk.SLAPolicyID)
	require.Len(t, created, 1)
}

func TestTicketService_CreateUnknownRequester(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(nil)

	_, err := svc.Create(context.Background(), ticket.CreateTicketRequest{
		RequesterKind: "client",
		RequesterID:   "ghost",
		Priority:      "low",
		Subject:       "Hello",
	})
	assert.ErrorIs(t, err, ticket.ErrInvalidRequester)
}

func TestTicketService_CreateWithoutSLAPolicy(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(nil)

	tk, err := svc.Create(context.Background(), ticket.CreateTicketRequest{
		RequesterKind: "client",
		RequesterID:   "cli-1",
		Priority:      "low",
		Subject:       "Minor question",
	})
	require.NoError(t, err)
	assert.Nil(t, tk.SLAPolicyID)
}

func TestTicketService_StatusFlow(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(map[string]ticket.Ticket{
		"tck-1": {ID: "tck-1", Status: ticket.TicketStatusOpen},
	})
	ctx := context.Background()

	tk, err := svc.MarkInProgress(ctx, "tck-1")
	require.NoError(t, err)
	assert.Equal(t, ticket.TicketStatusInProgress, tk.Status)

	tk, err = svc.MarkPending(ctx, "tck-1")
	require.NoError(t, err)
	assert.Equal(t, ticket.TicketStatusPending, tk.Status)

	tk, err = svc.Resolve(ctx, "tck-1")
	require.NoError(t, err)
	assert.Equal(t, ticket.TicketStatusResolved, tk.Status)
	assert.NotNil(t, tk.ResolvedAt)

	_, err = svc.Resolve(ctx, "tck-1")
	assert.ErrorIs(t, err, ticket.ErrInvalidStatusChange)
}

func TestTicketService_CloseWithRating(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(map[string]ticket.Ticket{
		"tck-1": {ID: "tck-1", Status: ticket.TicketStatusResolved},
	})

	rating := 5
	tk, err := svc.Close(context.Background(), "tck-1", ticket.CloseTicketRequest{SatisfactionRating: &rating})
	require.NoError(t, err)

	assert.Equal(t, ticket.TicketStatusClosed, tk.Status)
	assert.NotNil(t, tk.ClosedAt)
	assert.Equal(t, 5, *tk.SatisfactionRating)
}

func TestTicketService_CloseRatingOutOfRange(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(map[string]ticket.Ticket{
		"tck-1": {ID: "tck-1", Status: ticket.TicketStatusResolved},
	})

	rating := 9
	_, err := svc.Close(context.Background(), "tck-1", ticket.CloseTicketRequest{SatisfactionRating: &rating})
	assert.Error(t, err)
}

func TestTicketService_ReopenClearsCloseState(t *testing.T) {
	t.Parallel()
	closedAt := time.Now().Add(-time.Hour)
	rating := 4
	svc, ticketRepo, commentRepo, _ := newFixture(map[string]ticket.Ticket{
		"tck-1": {ID: "tck-1", Status: ticket.TicketStatusClosed, ClosedAt: &closedAt, SatisfactionRating: &rating},
	})

	tk, err := svc.Reopen(context.Background(), "tck-1", ticket.ReopenTicketRequest{Reason: "issue recurred"})
	require.NoError(t, err)

	assert.Equal(t, ticket.TicketStatusOpen, tk.Status)
	assert.Nil(t, tk.ClosedAt)
	assert.Nil(t, tk.SatisfactionRating)

	require.Len(t, commentRepo.comments, 1)
	assert.True(t, commentRepo.comments[0].System)
	assert.Contains(t, commentRepo.comments[0].Body, "issue recurred")
	assert.Equal(t, ticket.TicketStatusOpen, ticketRepo.tickets["tck-1"].Status)
}

func TestTicketService_CustomerCommentAutoReopens(t *testing.T) {
	t.Parallel()
	closedAt := time.Now().Add(-time.Hour)
	svc, ticketRepo, commentRepo, _ := newFixture(map[string]ticket.Ticket{
		"tck-1": {ID: "tck-1", Status: ticket.TicketStatusClosed, ClosedAt: &closedAt},
	})

	// The status flip must be persisted before the comment is created.
	commentRepo.onCreate = func() {
		require.Equal(t, []ticket.TicketStatus{ticket.TicketStatusOpen}, ticketRepo.writes)
	}

	_, err := svc.AddComment(context.Background(), "tck-1", party.ClientRef("cli-1"), ticket.AddCommentRequest{
		Body: "still broken",
	})
	require.NoError(t, err)

	got := ticketRepo.tickets["tck-1"]
	assert.Equal(t, ticket.TicketStatusOpen, got.Status)
	// Auto-reopen keeps the close stamp; only an explicit reopen clears it.
	assert.NotNil(t, got.ClosedAt)
}

func TestTicketService_InternalCommentDoesNotReopen(t *testing.T) {
	t.Parallel()
	closedAt := time.Now().Add(-time.Hour)
	svc, ticketRepo, _, _ := newFixture(map[string]ticket.Ticket{
		"tck-1": {ID: "tck-1", Status: ticket.TicketStatusClosed, ClosedAt: &closedAt},
	})

	_, err := svc.AddComment(context.Background(), "tck-1", party.UserRef("usr-1"), ticket.AddCommentRequest{
		Body:     "note to self",
		Internal: true,
	})
	require.NoError(t, err)

	assert.Equal(t, ticket.TicketStatusClosed, ticketRepo.tickets["tck-1"].Status)
	assert.Empty(t, ticketRepo.writes)
}

func TestTicketService_ScanOverdue(t *testing.T) {
	t.Parallel()
	slaID := "sla-high"
	svc, _, _, _ := newFixture(map[string]ticket.Ticket{
		"overdue": {ID: "overdue", Status: ticket.TicketStatusOpen, SLAPolicyID: &slaID, CreatedAt: time.Now().Add(-8 * time.Hour)},
		"fresh":   {ID: "fresh", Status: ticket.TicketStatusOpen, SLAPolicyID: &slaID, CreatedAt: time.Now().Add(-time.Hour)},
		"no_sla":  {ID: "no_sla", Status: ticket.TicketStatusOpen, CreatedAt: time.Now().Add(-48 * time.Hour)},
	})

	overdue, err := svc.ScanOverdue(context.Background())
	require.NoError(t, err)

	require.Len(t, overdue, 1)
	assert.Equal(t, "overdue", overdue[0].ID)
}
