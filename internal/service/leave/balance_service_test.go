package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/leave"
)

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) List(ctx context.Context) ([]leave.LeaveType, error) {
	out := make([]leave.LeaveType, 0, len(f.types))
	for _, lt := range f.types {
		out = append(out, lt)
	}
	return out, nil
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	f.types[lt.ID] = lt
	return lt, nil
}

type fakeLeaveRequestRepo struct {
	requests map[string]leave.LeaveRequest
	// usedByYear short-circuits SumApprovedDaysByYear for balance tests.
	usedByYear map[int]float64
	updates    []leave.UpdateLeaveRequestParams
}

func (f *fakeLeaveRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRequestRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRequestRepo) Create(ctx context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	if r.ID == "" {
		r.ID = "req-1"
	}
	if f.requests == nil {
		f.requests = make(map[string]leave.LeaveRequest)
	}
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeLeaveRequestRepo) Update(ctx context.Context, params leave.UpdateLeaveRequestParams) error {
	f.updates = append(f.updates, params)
	return nil
}

func (f *fakeLeaveRequestRepo) SumApprovedDaysByYear(ctx context.Context, employeeID, leaveTypeID string, fromYear, toYear int) (map[int]float64, error) {
	return f.usedByYear, nil
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
	for _, e := range f.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) CountByDepartment(ctx context.Context) (map[string]int, error) {
	return nil, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func hiredEmployee(id string, hireDate time.Time) employee.Employee {
	return employee.Employee{ID: id, HireDate: hireDate}
}

func TestBalanceService_NoCarryForward(t *testing.T) {
	t.Parallel()

	svc := NewBalanceService(
		&fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
			"annual": {ID: "annual", DaysPerYear: 10, CarryForward: false},
		}},
		&fakeLeaveRequestRepo{usedByYear: map[int]float64{2024: 4}},
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": hiredEmployee("emp-1", date(2022, time.March, 1)),
		}},
	)

	balance, err := svc.GetBalance(context.Background(), "emp-1", "annual", 2024)
	require.NoError(t, err)

	assert.Equal(t, leave.Balance{
		Allocated:      10,
		CarryForward:   0,
		TotalAllocated: 10,
		Used:           4,
		Remaining:      6,
	}, balance)
}

func TestBalanceService_CarryForwardCapped(t *testing.T) {
	t.Parallel()

	capDays := 5.0
	svc := NewBalanceService(
		&fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
			"annual": {ID: "annual", DaysPerYear: 20, CarryForward: true, MaxCarryForwardDays: &capDays},
		}},
		// 2023: 12 used of 20 -> 8 remaining, capped to 5 carried into 2024.
		&fakeLeaveRequestRepo{usedByYear: map[int]float64{2023: 12, 2024: 3}},
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": hiredEmployee("emp-1", date(2023, time.January, 10)),
		}},
	)

	balance, err := svc.GetBalance(context.Background(), "emp-1", "annual", 2024)
	require.NoError(t, err)

	assert.Equal(t, leave.Balance{
		Allocated:      20,
		CarryForward:   5,
		TotalAllocated: 25,
		Used:           3,
		Remaining:      22,
	}, balance)
}

func TestBalanceService_CarryForwardUncapped(t *testing.T) {
	t.Parallel()

	svc := NewBalanceService(
		&fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
			"annual": {ID: "annual", DaysPerYear: 20, CarryForward: true},
		}},
		&fakeLeaveRequestRepo{usedByYear: map[int]float64{2023: 12}},
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": hiredEmployee("emp-1", date(2023, time.January, 10)),
		}},
	)

	balance, err := svc.GetBalance(context.Background(), "emp-1", "annual", 2024)
	require.NoError(t, err)

	assert.Equal(t, 8.0, balance.CarryForward)
	assert.Equal(t, 28.0, balance.TotalAllocated)
}

func TestBalanceService_HireYearHasNoCarry(t *testing.T) {
	t.Parallel()

	svc := NewBalanceService(
		&fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
			"annual": {ID: "annual", DaysPerYear: 20, CarryForward: true},
		}},
		&fakeLeaveRequestRepo{usedByYear: map[int]float64{}},
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": hiredEmployee("emp-1", date(2024, time.June, 1)),
		}},
	)

	balance, err := svc.GetBalance(context.Background(), "emp-1", "annual", 2024)
	require.NoError(t, err)

	assert.Equal(t, 0.0, balance.CarryForward)
	assert.Equal(t, 20.0, balance.TotalAllocated)
}

func TestBalanceService_MissingHireDate(t *testing.T) {
	t.Parallel()

	svc := NewBalanceService(
		&fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
			"annual": {ID: "annual", DaysPerYear: 20},
		}},
		&fakeLeaveRequestRepo{},
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": {ID: "emp-1"},
		}},
	)

	_, err := svc.GetBalance(context.Background(), "emp-1", "annual", 2024)
	assert.ErrorIs(t, err, employee.ErrHireDateMissing)
}

func TestBalanceService_OverdrawnYearClampsToZero(t *testing.T) {
	t.Parallel()

	svc := NewBalanceService(
		&fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
			"annual": {ID: "annual", DaysPerYear: 10, CarryForward: true},
		}},
		// Over-used in 2023; the negative remainder must not leak into 2024.
		&fakeLeaveRequestRepo{usedByYear: map[int]float64{2023: 14}},
		&fakeEmployeeRepo{employees: map[string]employee.Employee{
			"emp-1": hiredEmployee("emp-1", date(2023, time.February, 1)),
		}},
	)

	balance, err := svc.GetBalance(context.Background(), "emp-1", "annual", 2024)
	require.NoError(t, err)

	assert.Equal(t, 0.0, balance.CarryForward)
	assert.Equal(t, 10.0, balance.Remaining)
}
