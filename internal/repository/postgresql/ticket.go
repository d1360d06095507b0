package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/ticket"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type ticketRepositoryImpl struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) ticket.TicketRepository {
	return &ticketRepositoryImpl{db: db}
}

const ticketColumns = `id, number, requester_kind, requester_id, category, priority, subject, description,
	status, assignee_id, sla_policy_id, satisfaction_rating, satisfaction_feedback,
	created_at, updated_at, resolved_at, closed_at`

func scanTicket(row pgx.Row) (ticket.Ticket, error) {
	var t ticket.Ticket
	var requesterKind, requesterID string
	err := row.Scan(&t.ID, &t.Number, &requesterKind, &requesterID, &t.Category, &t.Priority, &t.Subject,
		&t.Description, &t.Status, &t.AssigneeID, &t.SLAPolicyID, &t.SatisfactionRating, &t.SatisfactionFeedback,
		&t.CreatedAt, &t.UpdatedAt, &t.ResolvedAt, &t.ClosedAt)
	if err != nil {
		return ticket.Ticket{}, err
	}
	t.Requester = party.Ref{Kind: party.Kind(requesterKind), ID: requesterID}
	return t, nil
}

func (r *ticketRepositoryImpl) GetByID(ctx context.Context, id string) (ticket.Ticket, error) {
	q := database.GetQuerier(ctx, r.db)

	t, err := scanTicket(q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, err
	}
	return t, nil
}

func (r *ticketRepositoryImpl) List(ctx context.Context, status *ticket.TicketStatus) ([]ticket.Ticket, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + ticketColumns + ` FROM tickets`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *ticketRepositoryImpl) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	q := database.GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO tickets (id, number, requester_kind, requester_id, category, priority, subject,
			description, status, sla_policy_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query, t.ID, t.Number, t.Requester.Kind, t.Requester.ID, t.Category,
		t.Priority, t.Subject, t.Description, t.Status, t.SLAPolicyID, t.CreatedAt).
		Scan(&t.UpdatedAt)
	if err != nil {
		return ticket.Ticket{}, err
	}
	return t, nil
}

func (r *ticketRepositoryImpl) Update(ctx context.Context, t ticket.Ticket) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE tickets
		SET status = $2, assignee_id = $3, satisfaction_rating = $4, satisfaction_feedback = $5,
			resolved_at = $6, closed_at = $7, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, t.ID, t.Status, t.AssigneeID, t.SatisfactionRating,
		t.SatisfactionFeedback, t.ResolvedAt, t.ClosedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ticket.ErrTicketNotFound
	}
	return nil
}

func (r *ticketRepositoryImpl) ListUnresolvedCreatedBefore(ctx context.Context, cutoff time.Time) ([]ticket.Ticket, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE status IN ('open', 'in_progress', 'pending') AND created_at < $1
		ORDER BY created_at
	`
	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
