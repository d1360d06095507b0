package leave

import (
	"context"
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/leave"
)

// BalanceService computes the per-employee, per-year balance for a leave
// type: allocation plus carried-forward remainder minus approved usage.
type BalanceService struct {
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
}

func NewBalanceService(
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
) *BalanceService {
	return &BalanceService{
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
	}
}

// GetBalance rolls the balance forward iteratively from the hire year, so
// the walk is bounded by year - hireYear and a missing hire date is an
// explicit error instead of unbounded recursion.
func (s *BalanceService) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to get employee: %w", err)
	}

	hireYear, ok := emp.HireYear()
	if !ok {
		return leave.Balance{}, employee.ErrHireDateMissing
	}
	if year < hireYear {
		return leave.Balance{}, nil
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, leaveTypeID)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	usedByYear, err := s.LeaveRequestRepository.SumApprovedDaysByYear(ctx, employeeID, leaveTypeID, hireYear, year)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to sum approved leave days: %w", err)
	}

	var balance leave.Balance
	var prevRemaining float64

	for y := hireYear; y <= year; y++ {
		carry := 0.0
		if y > hireYear && leaveType.CarryForward {
			carry = prevRemaining
			if leaveType.MaxCarryForwardDays != nil && carry > *leaveType.MaxCarryForwardDays {
				carry = *leaveType.MaxCarryForwardDays
			}
		}

		total := leaveType.DaysPerYear + carry
		used := usedByYear[y]
		remaining := total - used
		if remaining < 0 {
			remaining = 0
		}

		balance = leave.Balance{
			Allocated:      leaveType.DaysPerYear,
			CarryForward:   carry,
			TotalAllocated: total,
			Used:           used,
			Remaining:      remaining,
		}
		prevRemaining = remaining
	}

	return balance, nil
}
