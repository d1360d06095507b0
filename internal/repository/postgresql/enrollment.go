package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/training"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type enrollmentRepositoryImpl struct {
	db *database.DB
}

func NewEnrollmentRepository(db *database.DB) training.EnrollmentRepository {
	return &enrollmentRepositoryImpl{db: db}
}

const enrollmentColumns = `id, training_id, employee_id, status, progress_percentage, score, passed,
	certificate_number, certificate_issued_at, certificate_expires_at,
	enrolled_at, started_at, completed_at, dropped_at, created_at, updated_at`

func scanEnrollment(row pgx.Row) (training.Enrollment, error) {
	var e training.Enrollment
	err := row.Scan(&e.ID, &e.TrainingID, &e.EmployeeID, &e.Status, &e.ProgressPercentage, &e.Score, &e.Passed,
		&e.CertificateNumber, &e.CertificateIssuedAt, &e.CertificateExpiresAt,
		&e.EnrolledAt, &e.StartedAt, &e.CompletedAt, &e.DroppedAt, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *enrollmentRepositoryImpl) GetByID(ctx context.Context, id string) (training.Enrollment, error) {
	q := database.GetQuerier(ctx, r.db)

	e, err := scanEnrollment(q.QueryRow(ctx, `SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return training.Enrollment{}, training.ErrEnrollmentNotFound
		}
		return training.Enrollment{}, err
	}
	return e, nil
}

func (r *enrollmentRepositoryImpl) GetByTrainingAndEmployee(ctx context.Context, trainingID, employeeID string) (training.Enrollment, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE training_id = $1 AND employee_id = $2`
	e, err := scanEnrollment(q.QueryRow(ctx, query, trainingID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return training.Enrollment{}, training.ErrEnrollmentNotFound
		}
		return training.Enrollment{}, err
	}
	return e, nil
}

func (r *enrollmentRepositoryImpl) ListByTraining(ctx context.Context, trainingID string) ([]training.Enrollment, error) {
	return r.list(ctx, `training_id`, trainingID)
}

func (r *enrollmentRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]training.Enrollment, error) {
	return r.list(ctx, `employee_id`, employeeID)
}

func (r *enrollmentRepositoryImpl) list(ctx context.Context, column, value string) ([]training.Enrollment, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE ` + column + ` = $1 ORDER BY enrolled_at DESC`
	rows, err := q.Query(ctx, query, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []training.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (r *enrollmentRepositoryImpl) Create(ctx context.Context, e training.Enrollment) (training.Enrollment, error) {
	q := database.GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	query := `
		INSERT INTO enrollments (id, training_id, employee_id, status, progress_percentage, enrolled_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, e.ID, e.TrainingID, e.EmployeeID, e.Status, e.ProgressPercentage, e.EnrolledAt).
		Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return training.Enrollment{}, err
	}
	return e, nil
}

func (r *enrollmentRepositoryImpl) Update(ctx context.Context, e training.Enrollment) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE enrollments
		SET status = $2, progress_percentage = $3, score = $4, passed = $5,
			certificate_number = $6, certificate_issued_at = $7, certificate_expires_at = $8,
			started_at = $9, completed_at = $10, dropped_at = $11, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, e.ID, e.Status, e.ProgressPercentage, e.Score, e.Passed,
		e.CertificateNumber, e.CertificateIssuedAt, e.CertificateExpiresAt,
		e.StartedAt, e.CompletedAt, e.DroppedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return training.ErrEnrollmentNotFound
	}
	return nil
}

func (r *enrollmentRepositoryImpl) CountByTrainingAndStatus(ctx context.Context, trainingID string) (map[training.EnrollmentStatus]int, error) {
	q := database.GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT status, COUNT(*)
		FROM enrollments
		WHERE training_id = $1
		GROUP BY status
	`, trainingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[training.EnrollmentStatus]int)
	for rows.Next() {
		var status training.EnrollmentStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
