package leave

import (
	"context"
)

type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
}

type LeaveRequestRepository interface {
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, params UpdateLeaveRequestParams) error

	// SumApprovedDaysByYear returns, per calendar year in [fromYear, toYear],
	// the sum of DaysRequested over approved requests of the given type.
	SumApprovedDaysByYear(ctx context.Context, employeeID, leaveTypeID string, fromYear, toYear int) (map[int]float64, error)
}
