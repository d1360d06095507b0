package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/attendance"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // keyed by employeeID + date
	updated int
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	r, ok := f.records[dayKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = "att-1"
	if f.records == nil {
		f.records = make(map[string]attendance.Attendance)
	}
	f.records[dayKey(att.EmployeeID, att.Date)] = att
	return att, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	f.records[dayKey(att.EmployeeID, att.Date)] = att
	f.updated++
	return nil
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

func newFixture(t *testing.T, now time.Time) (*AttendanceService, *fakeAttendanceRepo) {
	t.Helper()
	repo := &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
	svc := NewAttendanceService(nil, repo, &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1"},
	}})
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestAttendanceService_ClockInCreatesRecord(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 3, 8, 30, 0, 0, time.UTC)
	svc, _ := newFixture(t, now)

	record, err := svc.ClockIn(context.Background(), "emp-1", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, attendance.AttendanceStatusPresent, record.Status)
	require.NotNil(t, record.ClockInAt)
	assert.Equal(t, now, *record.ClockInAt)
}

func TestAttendanceService_LateClockIn(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 3, 9, 15, 0, 0, time.UTC)
	svc, _ := newFixture(t, now)

	record, err := svc.ClockIn(context.Background(), "emp-1", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, attendance.AttendanceStatusLate, record.Status)
}

func TestAttendanceService_DoubleClockIn(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.June, 3, 8, 30, 0, 0, time.UTC)
	svc, _ := newFixture(t, now)

	_, err := svc.ClockIn(context.Background(), "emp-1", nil, nil)
	require.NoError(t, err)

	_, err = svc.ClockIn(context.Background(), "emp-1", nil, nil)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestAttendanceService_ClockOutWithoutClockIn(t *testing.T) {
	t.Parallel()
	svc, repo := newFixture(t, time.Date(2024, time.June, 3, 17, 0, 0, 0, time.UTC))

	_, err := svc.ClockOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
	assert.Zero(t, repo.updated)
}

func TestAttendanceService_FullDay(t *testing.T) {
	t.Parallel()
	clockIn := time.Date(2024, time.June, 3, 8, 0, 0, 0, time.UTC)
	svc, _ := newFixture(t, clockIn)

	ctx := context.Background()
	_, err := svc.ClockIn(ctx, "emp-1", nil, nil)
	require.NoError(t, err)

	svc.now = func() time.Time { return clockIn.Add(4 * time.Hour) }
	_, err = svc.StartBreak(ctx, "emp-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return clockIn.Add(4*time.Hour + 45*time.Minute) }
	_, err = svc.EndBreak(ctx, "emp-1")
	require.NoError(t, err)

	svc.now = func() time.Time { return clockIn.Add(10 * time.Hour) }
	record, err := svc.ClockOut(ctx, "emp-1")
	require.NoError(t, err)

	require.NotNil(t, record.WorkedMinutes)
	assert.Equal(t, 600, *record.TotalMinutes)
	assert.Equal(t, 45, *record.BreakMinutes)
	assert.Equal(t, 555, *record.WorkedMinutes)
	assert.Equal(t, 75, *record.OvertimeMinutes)
}

func TestAttendanceService_ClockOutWhileOnBreak(t *testing.T) {
	t.Parallel()
	clockIn := time.Date(2024, time.June, 3, 8, 0, 0, 0, time.UTC)
	svc, _ := newFixture(t, clockIn)

	ctx := context.Background()
	_, err := svc.ClockIn(ctx, "emp-1", nil, nil)
	require.NoError(t, err)
	_, err = svc.StartBreak(ctx, "emp-1")
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, "emp-1")
	assert.ErrorIs(t, err, attendance.ErrStillOnBreak)
}
