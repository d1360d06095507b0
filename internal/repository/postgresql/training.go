package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/training"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type trainingRepositoryImpl struct {
	db *database.DB
}

func NewTrainingRepository(db *database.DB) training.TrainingRepository {
	return &trainingRepositoryImpl{db: db}
}

const trainingColumns = `id, seq, title, description, requires_certification, certification_validity_months,
	enrolled_count, created_at, updated_at`

func scanTraining(row pgx.Row) (training.Training, error) {
	var t training.Training
	err := row.Scan(&t.ID, &t.Seq, &t.Title, &t.Description, &t.RequiresCertification,
		&t.CertificationValidityMonths, &t.EnrolledCount, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *trainingRepositoryImpl) GetByID(ctx context.Context, id string) (training.Training, error) {
	q := database.GetQuerier(ctx, r.db)

	t, err := scanTraining(q.QueryRow(ctx, `SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return training.Training{}, training.ErrTrainingNotFound
		}
		return training.Training{}, err
	}
	return t, nil
}

func (r *trainingRepositoryImpl) List(ctx context.Context) ([]training.Training, error) {
	q := database.GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+trainingColumns+` FROM trainings ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []training.Training
	for rows.Next() {
		t, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

func (r *trainingRepositoryImpl) Create(ctx context.Context, t training.Training) (training.Training, error) {
	q := database.GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO trainings (id, title, description, requires_certification, certification_validity_months,
			enrolled_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, NOW(), NOW())
		RETURNING seq, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.RequiresCertification,
		t.CertificationValidityMonths).
		Scan(&t.Seq, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return training.Training{}, err
	}
	return t, nil
}

// AdjustEnrolledCount moves the denormalized counter atomically; the floor at
// zero absorbs replayed decrements.
func (r *trainingRepositoryImpl) AdjustEnrolledCount(ctx context.Context, id string, delta int) error {
	q := database.GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE trainings
		SET enrolled_count = GREATEST(enrolled_count + $2, 0), updated_at = NOW()
		WHERE id = $1
	`, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return training.ErrTrainingNotFound
	}
	return nil
}
