package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/leave"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/events"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type RequestService struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	dispatcher *events.Dispatcher
	now        func() time.Time
}

func NewRequestService(
	db *database.DB,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	dispatcher *events.Dispatcher,
) *RequestService {
	return &RequestService{
		db:                     db,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		dispatcher:             dispatcher,
		now:                    time.Now,
	}
}

func (s *RequestService) Create(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	now := s.now()
	if violations := leaveType.ValidateRequest(startDate, endDate, now); len(violations) > 0 {
		return leave.LeaveRequest{}, violations
	}

	request := leave.LeaveRequest{
		EmployeeID:    emp.ID,
		LeaveTypeID:   leaveType.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		HalfDay:       req.HalfDay,
		DaysRequested: leave.WorkingDays(startDate, endDate, req.HalfDay),
		Reason:        req.Reason,
		Status:        leave.LeaveRequestStatusPending,
		SubmittedAt:   now,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

func (s *RequestService) Approve(ctx context.Context, requestID, approverID string, notes *string) (leave.LeaveRequest, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if err := request.Approve(approverID, notes, s.now()); err != nil {
		return leave.LeaveRequest{}, err
	}

	status := string(request.Status)
	update := leave.UpdateLeaveRequestParams{
		ID:            request.ID,
		Status:        &status,
		ApprovedBy:    request.ApprovedBy,
		ApprovedAt:    request.ApprovedAt,
		ApprovalNotes: request.ApprovalNotes,
	}
	if err := s.LeaveRequestRepository.Update(ctx, update); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	s.dispatcher.Publish(ctx, events.LeaveRequestApproved{
		RequestID:  request.ID,
		EmployeeID: request.EmployeeID,
		ApproverID: approverID,
		Days:       request.DaysRequested,
	})

	return request, nil
}

func (s *RequestService) Reject(ctx context.Context, requestID, approverID, reason string) (leave.LeaveRequest, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if err := request.Reject(approverID, reason, s.now()); err != nil {
		return leave.LeaveRequest{}, err
	}

	status := string(request.Status)
	update := leave.UpdateLeaveRequestParams{
		ID:              request.ID,
		Status:          &status,
		ApprovedBy:      request.ApprovedBy,
		RejectionReason: request.RejectionReason,
	}
	if err := s.LeaveRequestRepository.Update(ctx, update); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	s.dispatcher.Publish(ctx, events.LeaveRequestRejected{
		RequestID:  request.ID,
		EmployeeID: request.EmployeeID,
		ApproverID: approverID,
		Reason:     reason,
	})

	return request, nil
}

func (s *RequestService) Cancel(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	if err := request.Cancel(s.now()); err != nil {
		return leave.LeaveRequest{}, err
	}

	status := string(request.Status)
	update := leave.UpdateLeaveRequestParams{
		ID:          request.ID,
		Status:      &status,
		CancelledAt: request.CancelledAt,
	}
	if err := s.LeaveRequestRepository.Update(ctx, update); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return request, nil
}

func (s *RequestService) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	requests, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

func (s *RequestService) GetByID(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	return s.LeaveRequestRepository.GetByID(ctx, requestID)
}
