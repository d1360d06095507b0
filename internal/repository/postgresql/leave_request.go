package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/leave"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date, lr.half_day,
	lr.days_requested, lr.reason, lr.status, lr.approved_by, lr.approved_at, lr.approval_notes,
	lr.rejection_reason, lr.cancelled_at, lr.submitted_at, lr.created_at, lr.updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.StartDate, &lr.EndDate, &lr.HalfDay,
		&lr.DaysRequested, &lr.Reason, &lr.Status, &lr.ApprovedBy, &lr.ApprovedAt, &lr.ApprovalNotes,
		&lr.RejectionReason, &lr.CancelledAt, &lr.SubmittedAt, &lr.CreatedAt, &lr.UpdatedAt)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests lr WHERE lr.id = $1`
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1
		ORDER BY lr.submitted_at DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := database.GetQuerier(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, leave_type_id, start_date, end_date, half_day,
			days_requested, reason, status, submitted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, request.ID, request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.HalfDay, request.DaysRequested,
		request.Reason, request.Status, request.SubmittedAt).
		Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// Update writes only the columns the transition touched.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, params leave.UpdateLeaveRequestParams) error {
	q := database.GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{params.ID}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Status != nil {
		add("status", *params.Status)
	}
	if params.ApprovedBy != nil {
		add("approved_by", *params.ApprovedBy)
	}
	if params.ApprovedAt != nil {
		add("approved_at", *params.ApprovedAt)
	}
	if params.ApprovalNotes != nil {
		add("approval_notes", *params.ApprovalNotes)
	}
	if params.RejectionReason != nil {
		add("rejection_reason", *params.RejectionReason)
	}
	if params.CancelledAt != nil {
		add("cancelled_at", *params.CancelledAt)
	}

	query := fmt.Sprintf("UPDATE leave_requests SET %s WHERE id = $1", strings.Join(sets, ", "))
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) SumApprovedDaysByYear(ctx context.Context, employeeID, leaveTypeID string, fromYear, toYear int) (map[int]float64, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(YEAR FROM start_date)::int AS year, COALESCE(SUM(days_requested), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND leave_type_id = $2
		  AND status = 'approved'
		  AND EXTRACT(YEAR FROM start_date) BETWEEN $3 AND $4
		GROUP BY year
	`
	rows, err := q.Query(ctx, query, employeeID, leaveTypeID, fromYear, toYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	used := make(map[int]float64)
	for rows.Next() {
		var year int
		var days float64
		if err := rows.Scan(&year, &days); err != nil {
			return nil, err
		}
		used[year] = days
	}
	return used, rows.Err()
}
