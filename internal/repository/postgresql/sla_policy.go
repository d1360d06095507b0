package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/ticket"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type slaPolicyRepositoryImpl struct {
	db *database.DB
}

func NewSLAPolicyRepository(db *database.DB) ticket.SLAPolicyRepository {
	return &slaPolicyRepositoryImpl{db: db}
}

const slaPolicyColumns = `id, name, priority, response_minutes, resolution_minutes, created_at, updated_at`

func scanSLAPolicy(row pgx.Row) (ticket.SLAPolicy, error) {
	var p ticket.SLAPolicy
	err := row.Scan(&p.ID, &p.Name, &p.Priority, &p.ResponseMinutes, &p.ResolutionMinutes, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *slaPolicyRepositoryImpl) GetByID(ctx context.Context, id string) (ticket.SLAPolicy, error) {
	q := database.GetQuerier(ctx, r.db)

	p, err := scanSLAPolicy(q.QueryRow(ctx, `SELECT `+slaPolicyColumns+` FROM sla_policies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.SLAPolicy{}, ticket.ErrSLAPolicyNotFound
		}
		return ticket.SLAPolicy{}, err
	}
	return p, nil
}

func (r *slaPolicyRepositoryImpl) GetByPriority(ctx context.Context, priority ticket.TicketPriority) (ticket.SLAPolicy, error) {
	q := database.GetQuerier(ctx, r.db)

	p, err := scanSLAPolicy(q.QueryRow(ctx, `SELECT `+slaPolicyColumns+` FROM sla_policies WHERE priority = $1`, priority))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.SLAPolicy{}, ticket.ErrSLAPolicyNotFound
		}
		return ticket.SLAPolicy{}, err
	}
	return p, nil
}

func (r *slaPolicyRepositoryImpl) List(ctx context.Context) ([]ticket.SLAPolicy, error) {
	q := database.GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+slaPolicyColumns+` FROM sla_policies ORDER BY priority`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []ticket.SLAPolicy
	for rows.Next() {
		p, err := scanSLAPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}
