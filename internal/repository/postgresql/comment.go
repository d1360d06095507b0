package postgresql

import (
	"context"

	"github.com/google/uuid"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/ticket"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type commentRepositoryImpl struct {
	db *database.DB
}

func NewCommentRepository(db *database.DB) ticket.CommentRepository {
	return &commentRepositoryImpl{db: db}
}

func (r *commentRepositoryImpl) ListByTicket(ctx context.Context, ticketID string) ([]ticket.Comment, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT id, ticket_id, author_kind, author_id, body, internal, system, created_at
		FROM ticket_comments
		WHERE ticket_id = $1
		ORDER BY created_at
	`
	rows, err := q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []ticket.Comment
	for rows.Next() {
		var c ticket.Comment
		var authorKind, authorID *string
		if err := rows.Scan(&c.ID, &c.TicketID, &authorKind, &authorID, &c.Body, &c.Internal, &c.System, &c.CreatedAt); err != nil {
			return nil, err
		}
		if authorKind != nil && authorID != nil {
			c.Author = party.Ref{Kind: party.Kind(*authorKind), ID: *authorID}
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentRepositoryImpl) Create(ctx context.Context, c ticket.Comment) (ticket.Comment, error) {
	q := database.GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	// System comments carry no author.
	var authorKind, authorID *string
	if !c.Author.IsZero() {
		kind := string(c.Author.Kind)
		authorKind, authorID = &kind, &c.Author.ID
	}

	query := `
		INSERT INTO ticket_comments (id, ticket_id, author_kind, author_id, body, internal, system, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query, c.ID, c.TicketID, authorKind, authorID, c.Body, c.Internal, c.System, c.CreatedAt)
	if err != nil {
		return ticket.Comment{}, err
	}
	return c, nil
}
