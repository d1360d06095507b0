package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/attendance"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type AttendanceService struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
) *AttendanceService {
	return &AttendanceService{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		now:                  time.Now,
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClockIn opens today's attendance record. A second clock-in on the same day
// is rejected, not restarted.
func (s *AttendanceService) ClockIn(ctx context.Context, employeeID string, location, ipAddress *string) (attendance.Attendance, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := s.now()

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, dateOf(now))
	switch {
	case err == nil:
		// An existing record for today always has a clock-in, so this
		// surfaces ErrAlreadyClockedIn.
		if err := record.ClockIn(now, location, ipAddress); err != nil {
			return attendance.Attendance{}, err
		}
		return record, nil
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		record = attendance.Attendance{
			EmployeeID: employeeID,
			Date:       dateOf(now),
		}
		if err := record.ClockIn(now, location, ipAddress); err != nil {
			return attendance.Attendance{}, err
		}
		created, err := s.AttendanceRepository.Create(ctx, record)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
		return created, nil
	default:
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
}

func (s *AttendanceService) ClockOut(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return s.mutateToday(ctx, employeeID, func(record *attendance.Attendance, now time.Time) error {
		return record.ClockOut(now)
	})
}

func (s *AttendanceService) StartBreak(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return s.mutateToday(ctx, employeeID, func(record *attendance.Attendance, now time.Time) error {
		return record.StartBreak(now)
	})
}

func (s *AttendanceService) EndBreak(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return s.mutateToday(ctx, employeeID, func(record *attendance.Attendance, now time.Time) error {
		return record.EndBreak(now)
	})
}

func (s *AttendanceService) mutateToday(ctx context.Context, employeeID string, mutate func(*attendance.Attendance, time.Time) error) (attendance.Attendance, error) {
	now := s.now()

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, dateOf(now))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrNotClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if err := mutate(&record, now); err != nil {
		return attendance.Attendance{}, err
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return record, nil
}

func (s *AttendanceService) GetToday(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, dateOf(s.now()))
}

func (s *AttendanceService) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}
