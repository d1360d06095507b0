package training

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/training"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/events"
)

type fakeTrainingRepo struct {
	trainings map[string]training.Training
	deltas    []int
}

func (f *fakeTrainingRepo) GetByID(ctx context.Context, id string) (training.Training, error) {
	t, ok := f.trainings[id]
	if !ok {
		return training.Training{}, training.ErrTrainingNotFound
	}
	return t, nil
}

func (f *fakeTrainingRepo) List(ctx context.Context) ([]training.Training, error) { return nil, nil }

func (f *fakeTrainingRepo) Create(ctx context.Context, t training.Training) (training.Training, error) {
	f.trainings[t.ID] = t
	return t, nil
}

func (f *fakeTrainingRepo) AdjustEnrolledCount(ctx context.Context, id string, delta int) error {
	t := f.trainings[id]
	t.EnrolledCount += delta
	f.trainings[id] = t
	f.deltas = append(f.deltas, delta)
	return nil
}

type fakeEnrollmentRepo struct {
	enrollments map[string]training.Enrollment
	counts      map[training.EnrollmentStatus]int
}

func (f *fakeEnrollmentRepo) GetByID(ctx context.Context, id string) (training.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return training.Enrollment{}, training.ErrEnrollmentNotFound
	}
	return e, nil
}

func (f *fakeEnrollmentRepo) GetByTrainingAndEmployee(ctx context.Context, trainingID, employeeID string) (training.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.TrainingID == trainingID && e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return training.Enrollment{}, training.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentRepo) ListByTraining(ctx context.Context, trainingID string) ([]training.Enrollment, error) {
	return nil, nil
}

func (f *fakeEnrollmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]training.Enrollment, error) {
	return nil, nil
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, e training.Enrollment) (training.Enrollment, error) {
	e.ID = "enr-1"
	if f.enrollments == nil {
		f.enrollments = make(map[string]training.Enrollment)
	}
	f.enrollments[e.ID] = e
	return e, nil
}

func (f *fakeEnrollmentRepo) Update(ctx context.Context, e training.Enrollment) error {
	f.enrollments[e.ID] = e
	return nil
}

func (f *fakeEnrollmentRepo) CountByTrainingAndStatus(ctx context.Context, trainingID string) (map[training.EnrollmentStatus]int, error) {
	return f.counts, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) { return nil, nil }

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) CountByDepartment(ctx context.Context) (map[string]int, error) {
	return nil, nil
}

func newFixture(enrollments map[string]training.Enrollment) (*TrainingService, *fakeTrainingRepo, *fakeEnrollmentRepo, *events.Dispatcher) {
	validity := 12
	trainingRepo := &fakeTrainingRepo{trainings: map[string]training.Training{
		"trn-1": {
			ID:                          "trn-1",
			Seq:                         7,
			Title:                       "Forklift Safety",
			RequiresCertification:       true,
			CertificationValidityMonths: &validity,
		},
	}}
	enrollmentRepo := &fakeEnrollmentRepo{enrollments: enrollments}
	dispatcher := events.NewDispatcher()

	svc := NewTrainingService(
		nil,
		trainingRepo,
		enrollmentRepo,
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": {ID: "emp-1", Seq: 12},
		}},
		dispatcher,
	)
	svc.RegisterEventHandlers(dispatcher)
	return svc, trainingRepo, enrollmentRepo, dispatcher
}

func TestTrainingService_Enroll(t *testing.T) {
	t.Parallel()
	svc, trainingRepo, _, _ := newFixture(nil)

	enrollment, err := svc.Enroll(context.Background(), "trn-1", "emp-1")
	require.NoError(t, err)

	assert.Equal(t, training.EnrollmentStatusEnrolled, enrollment.Status)
	assert.Equal(t, 1, trainingRepo.trainings["trn-1"].EnrolledCount)
}

func TestTrainingService_EnrollTwice(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(nil)

	_, err := svc.Enroll(context.Background(), "trn-1", "emp-1")
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), "trn-1", "emp-1")
	assert.ErrorIs(t, err, training.ErrAlreadyEnrolled)
}

func TestTrainingService_CompleteIssuesCertificate(t *testing.T) {
	t.Parallel()
	svc, _, _, dispatcher := newFixture(map[string]training.Enrollment{
		"enr-1": {ID: "enr-1", TrainingID: "trn-1", EmployeeID: "emp-1", Status: training.EnrollmentStatusInProgress},
	})

	var completed []events.EnrollmentCompleted
	dispatcher.Subscribe(events.EnrollmentCompleted{}.Name(), func(ctx context.Context, e events.Event) error {
		completed = append(completed, e.(events.EnrollmentCompleted))
		return nil
	})

	score := 85.0
	enrollment, err := svc.Complete(context.Background(), "enr-1", &score, nil)
	require.NoError(t, err)

	assert.Equal(t, training.EnrollmentStatusCompleted, enrollment.Status)
	require.NotNil(t, enrollment.Passed)
	assert.True(t, *enrollment.Passed)
	require.NotNil(t, enrollment.CertificateNumber)
	assert.Contains(t, *enrollment.CertificateNumber, "-0007-0012-")
	require.NotNil(t, enrollment.CertificateExpiresAt)

	require.Len(t, completed, 1)
	assert.True(t, completed[0].Passed)
}

func TestTrainingService_ProgressToHundredCompletes(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(map[string]training.Enrollment{
		"enr-1": {ID: "enr-1", TrainingID: "trn-1", EmployeeID: "emp-1", Status: training.EnrollmentStatusInProgress},
	})

	enrollment, err := svc.UpdateProgress(context.Background(), "enr-1", 100)
	require.NoError(t, err)

	assert.Equal(t, training.EnrollmentStatusCompleted, enrollment.Status)
	// No score, no explicit pass: completed but not passed, no certificate.
	require.NotNil(t, enrollment.Passed)
	assert.False(t, *enrollment.Passed)
	assert.Nil(t, enrollment.CertificateNumber)
}

func TestTrainingService_DropDecrementsEnrolledCount(t *testing.T) {
	t.Parallel()
	svc, trainingRepo, _, _ := newFixture(nil)

	enrollment, err := svc.Enroll(context.Background(), "trn-1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, trainingRepo.trainings["trn-1"].EnrolledCount)

	dropped, err := svc.Drop(context.Background(), enrollment.ID)
	require.NoError(t, err)

	assert.Equal(t, training.EnrollmentStatusDropped, dropped.Status)
	assert.Equal(t, 0, trainingRepo.trainings["trn-1"].EnrolledCount)
	assert.Equal(t, []int{1, -1}, trainingRepo.deltas)
}

func TestTrainingService_DropCompletedEnrollment(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(map[string]training.Enrollment{
		"enr-1": {ID: "enr-1", TrainingID: "trn-1", EmployeeID: "emp-1", Status: training.EnrollmentStatusCompleted},
	})

	_, err := svc.Drop(context.Background(), "enr-1")
	assert.ErrorIs(t, err, training.ErrAlreadyCompleted)
}

func TestTrainingService_CompletionReport(t *testing.T) {
	t.Parallel()
	svc, _, enrollmentRepo, _ := newFixture(nil)
	enrollmentRepo.counts = map[training.EnrollmentStatus]int{
		training.EnrollmentStatusCompleted:  3,
		training.EnrollmentStatusInProgress: 1,
		training.EnrollmentStatusDropped:    1,
	}

	report, err := svc.CompletionReport(context.Background(), "trn-1")
	require.NoError(t, err)

	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 3, report.Completed)
	assert.Equal(t, 60.0, report.CompletionRate)
}

// Certificate expiry must track validity months from the completion time.
func TestTrainingService_CompleteStampsClock(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(map[string]training.Enrollment{
		"enr-1": {ID: "enr-1", TrainingID: "trn-1", EmployeeID: "emp-1", Status: training.EnrollmentStatusInProgress},
	})
	at := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	passed := true
	enrollment, err := svc.Complete(context.Background(), "enr-1", nil, &passed)
	require.NoError(t, err)

	require.NotNil(t, enrollment.CompletedAt)
	assert.Equal(t, at, *enrollment.CompletedAt)
	require.NotNil(t, enrollment.CertificateIssuedAt)
	assert.Equal(t, at, *enrollment.CertificateIssuedAt)
	require.NotNil(t, enrollment.CertificateNumber)
	assert.Contains(t, *enrollment.CertificateNumber, "CERT-2024-")
}

func TestTrainingService_CertificateExpiry(t *testing.T) {
	t.Parallel()
	svc, _, _, _ := newFixture(map[string]training.Enrollment{
		"enr-1": {ID: "enr-1", TrainingID: "trn-1", EmployeeID: "emp-1", Status: training.EnrollmentStatusInProgress},
	})

	passed := true
	enrollment, err := svc.Complete(context.Background(), "enr-1", nil, &passed)
	require.NoError(t, err)

	require.NotNil(t, enrollment.CertificateIssuedAt)
	require.NotNil(t, enrollment.CertificateExpiresAt)
	assert.WithinDuration(t,
		enrollment.CertificateIssuedAt.AddDate(0, 12, 0),
		*enrollment.CertificateExpiresAt,
		time.Second)
}
