package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/training"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/events"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type TrainingService struct {
	db *database.DB
	training.TrainingRepository
	training.EnrollmentRepository
	employee.EmployeeRepository
	dispatcher *events.Dispatcher
	now        func() time.Time
}

func NewTrainingService(
	db *database.DB,
	trainingRepository training.TrainingRepository,
	enrollmentRepository training.EnrollmentRepository,
	employeeRepository employee.EmployeeRepository,
	dispatcher *events.Dispatcher,
) *TrainingService {
	return &TrainingService{
		db:                   db,
		TrainingRepository:   trainingRepository,
		EnrollmentRepository: enrollmentRepository,
		EmployeeRepository:   employeeRepository,
		dispatcher:           dispatcher,
		now:                  time.Now,
	}
}

// RegisterEventHandlers keeps the parent training's enrolled count in sync
// with enrollment drops.
func (s *TrainingService) RegisterEventHandlers(dispatcher *events.Dispatcher) {
	dispatcher.Subscribe(events.EnrollmentDropped{}.Name(), func(ctx context.Context, e events.Event) error {
		dropped := e.(events.EnrollmentDropped)
		if err := s.TrainingRepository.AdjustEnrolledCount(ctx, dropped.TrainingID, -1); err != nil {
			return fmt.Errorf("failed to decrement enrolled count: %w", err)
		}
		return nil
	})
}

func (s *TrainingService) Enroll(ctx context.Context, trainingID, employeeID string) (training.Enrollment, error) {
	t, err := s.TrainingRepository.GetByID(ctx, trainingID)
	if err != nil {
		return training.Enrollment{}, fmt.Errorf("failed to get training: %w", err)
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return training.Enrollment{}, fmt.Errorf("failed to get employee: %w", err)
	}

	_, err = s.EnrollmentRepository.GetByTrainingAndEmployee(ctx, trainingID, employeeID)
	if err == nil {
		return training.Enrollment{}, training.ErrAlreadyEnrolled
	}
	if !errors.Is(err, training.ErrEnrollmentNotFound) {
		return training.Enrollment{}, fmt.Errorf("failed to check existing enrollment: %w", err)
	}

	enrollment := training.Enrollment{
		TrainingID: t.ID,
		EmployeeID: employeeID,
		Status:     training.EnrollmentStatusEnrolled,
		EnrolledAt: s.now(),
	}

	created, err := s.EnrollmentRepository.Create(ctx, enrollment)
	if err != nil {
		return training.Enrollment{}, fmt.Errorf("failed to create enrollment: %w", err)
	}

	if err := s.TrainingRepository.AdjustEnrolledCount(ctx, t.ID, 1); err != nil {
		return training.Enrollment{}, fmt.Errorf("failed to increment enrolled count: %w", err)
	}

	return created, nil
}

func (s *TrainingService) Start(ctx context.Context, enrollmentID string) (training.Enrollment, error) {
	return s.mutate(ctx, enrollmentID, func(e *training.Enrollment, t training.Training, emp employee.Employee, now time.Time) error {
		return e.Start(now)
	})
}

func (s *TrainingService) UpdateProgress(ctx context.Context, enrollmentID string, percentage float64) (training.Enrollment, error) {
	return s.mutate(ctx, enrollmentID, func(e *training.Enrollment, t training.Training, emp employee.Employee, now time.Time) error {
		return e.UpdateProgress(percentage, t, emp.Seq, now)
	})
}

func (s *TrainingService) Complete(ctx context.Context, enrollmentID string, score *float64, passed *bool) (training.Enrollment, error) {
	return s.mutate(ctx, enrollmentID, func(e *training.Enrollment, t training.Training, emp employee.Employee, now time.Time) error {
		return e.Complete(score, passed, t, emp.Seq, now)
	})
}

func (s *TrainingService) Fail(ctx context.Context, enrollmentID string, score *float64) (training.Enrollment, error) {
	return s.mutate(ctx, enrollmentID, func(e *training.Enrollment, t training.Training, emp employee.Employee, now time.Time) error {
		return e.Fail(score, now)
	})
}

func (s *TrainingService) Drop(ctx context.Context, enrollmentID string) (training.Enrollment, error) {
	enrollment, err := s.mutate(ctx, enrollmentID, func(e *training.Enrollment, t training.Training, emp employee.Employee, now time.Time) error {
		return e.Drop(now)
	})
	if err != nil {
		return training.Enrollment{}, err
	}

	s.dispatcher.Publish(ctx, events.EnrollmentDropped{
		EnrollmentID: enrollment.ID,
		TrainingID:   enrollment.TrainingID,
		EmployeeID:   enrollment.EmployeeID,
	})

	return enrollment, nil
}

func (s *TrainingService) mutate(ctx context.Context, enrollmentID string, mutate func(*training.Enrollment, training.Training, employee.Employee, time.Time) error) (training.Enrollment, error) {
	enrollment, err := s.EnrollmentRepository.GetByID(ctx, enrollmentID)
	if err != nil {
		return training.Enrollment{}, fmt.Errorf("failed to get enrollment: %w", err)
	}
	t, err := s.TrainingRepository.GetByID(ctx, enrollment.TrainingID)
	if err != nil {
		return training.Enrollment{}, fmt.Errorf("failed to get training: %w", err)
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, enrollment.EmployeeID)
	if err != nil {
		return training.Enrollment{}, fmt.Errorf("failed to get employee: %w", err)
	}

	wasCompleted := enrollment.Status == training.EnrollmentStatusCompleted

	if err := mutate(&enrollment, t, emp, s.now()); err != nil {
		return training.Enrollment{}, err
	}

	if err := s.EnrollmentRepository.Update(ctx, enrollment); err != nil {
		return training.Enrollment{}, fmt.Errorf("failed to update enrollment: %w", err)
	}

	if !wasCompleted && enrollment.Status == training.EnrollmentStatusCompleted {
		s.dispatcher.Publish(ctx, events.EnrollmentCompleted{
			EnrollmentID:      enrollment.ID,
			TrainingID:        enrollment.TrainingID,
			EmployeeID:        enrollment.EmployeeID,
			Passed:            enrollment.Passed != nil && *enrollment.Passed,
			CertificateNumber: enrollment.CertificateNumber,
		})
	}

	return enrollment, nil
}

// CompletionReport is the per-training completion-rate rollup.
type CompletionReport struct {
	TrainingID     string  `json:"training_id"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	Dropped        int     `json:"dropped"`
	CompletionRate float64 `json:"completion_rate"`
}

func (s *TrainingService) CompletionReport(ctx context.Context, trainingID string) (CompletionReport, error) {
	if _, err := s.TrainingRepository.GetByID(ctx, trainingID); err != nil {
		return CompletionReport{}, fmt.Errorf("failed to get training: %w", err)
	}

	counts, err := s.EnrollmentRepository.CountByTrainingAndStatus(ctx, trainingID)
	if err != nil {
		return CompletionReport{}, fmt.Errorf("failed to count enrollments: %w", err)
	}

	report := CompletionReport{
		TrainingID: trainingID,
		Completed:  counts[training.EnrollmentStatusCompleted],
		InProgress: counts[training.EnrollmentStatusInProgress],
		Dropped:    counts[training.EnrollmentStatusDropped],
	}
	for _, n := range counts {
		report.Total += n
	}
	if report.Total > 0 {
		report.CompletionRate = float64(report.Completed) / float64(report.Total) * 100
	}
	return report, nil
}

func (s *TrainingService) ListByEmployee(ctx context.Context, employeeID string) ([]training.Enrollment, error) {
	enrollments, err := s.EnrollmentRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}
