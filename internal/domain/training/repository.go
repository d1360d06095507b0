package training

import (
	"context"
)

type TrainingRepository interface {
	GetByID(ctx context.Context, id string) (Training, error)
	List(ctx context.Context) ([]Training, error)
	Create(ctx context.Context, t Training) (Training, error)
	AdjustEnrolledCount(ctx context.Context, id string, delta int) error
}

type EnrollmentRepository interface {
	GetByID(ctx context.Context, id string) (Enrollment, error)
	GetByTrainingAndEmployee(ctx context.Context, trainingID, employeeID string) (Enrollment, error)
	ListByTraining(ctx context.Context, trainingID string) ([]Enrollment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Enrollment, error)
	Create(ctx context.Context, e Enrollment) (Enrollment, error)
	Update(ctx context.Context, e Enrollment) error

	// CountByTrainingAndStatus backs the completion-rate report.
	CountByTrainingAndStatus(ctx context.Context, trainingID string) (map[EnrollmentStatus]int, error)
}
