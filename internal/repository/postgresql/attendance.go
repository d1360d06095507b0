package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/attendance"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, date, clock_in_at, clock_out_at, break_start_at, break_end_at,
	clock_in_location, clock_in_ip, total_minutes, break_minutes, worked_minutes, overtime_minutes,
	status, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.ClockInAt, &a.ClockOutAt, &a.BreakStartAt, &a.BreakEndAt,
		&a.ClockInLocation, &a.ClockInIP, &a.TotalMinutes, &a.BreakMinutes, &a.WorkedMinutes, &a.OvertimeMinutes,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := database.GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE employee_id = $1 AND date = $2`
	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := database.GetQuerier(ctx, r.db)

	if att.ID == "" {
		att.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, clock_in_at, clock_in_location, clock_in_ip,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, att.ID, att.EmployeeID, att.Date, att.ClockInAt,
		att.ClockInLocation, att.ClockInIP, att.Status).
		Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return att, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_out_at = $2, break_start_at = $3, break_end_at = $4,
			total_minutes = $5, break_minutes = $6, worked_minutes = $7, overtime_minutes = $8,
			status = $9, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, att.ID, att.ClockOutAt, att.BreakStartAt, att.BreakEndAt,
		att.TotalMinutes, att.BreakMinutes, att.WorkedMinutes, att.OvertimeMinutes, att.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}
