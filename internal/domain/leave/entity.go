package leave

import (
	"time"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string

	StartDate time.Time
	EndDate   time.Time
	HalfDay   bool

	DaysRequested float64
	Reason        string

	Status          LeaveRequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	ApprovalNotes   *string
	RejectionReason *string
	CancelledAt     *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	EmployeeName  *string
}

// Approve transitions a pending request to approved, stamping approver and
// timestamp. ApprovedAt and RejectionReason are mutually exclusive; each is
// only ever set by its own transition.
func (r *LeaveRequest) Approve(approverID string, notes *string, now time.Time) error {
	if r.Status != LeaveRequestStatusPending {
		return ErrAlreadyProcessed
	}

	r.Status = LeaveRequestStatusApproved
	r.ApprovedBy = &approverID
	r.ApprovedAt = &now
	r.ApprovalNotes = notes
	return nil
}

// Reject transitions a pending request to rejected. A reason is required.
func (r *LeaveRequest) Reject(approverID string, reason string, now time.Time) error {
	if reason == "" {
		return ErrRejectionReasonRequired
	}
	if r.Status != LeaveRequestStatusPending {
		return ErrAlreadyProcessed
	}

	r.Status = LeaveRequestStatusRejected
	r.ApprovedBy = &approverID
	r.RejectionReason = &reason
	return nil
}

// Cancel is legal while pending, or while approved when the leave has not
// started yet.
func (r *LeaveRequest) Cancel(now time.Time) error {
	cancellable := r.Status == LeaveRequestStatusPending ||
		(r.Status == LeaveRequestStatusApproved && r.StartDate.After(now))
	if !cancellable {
		return ErrNotCancellable
	}

	r.Status = LeaveRequestStatusCancelled
	r.CancelledAt = &now
	return nil
}

// WorkingDays counts days in the inclusive range whose weekday is not
// Saturday or Sunday. Half-day requests always count as 0.5 regardless of
// range. Public holidays are not excluded.
func WorkingDays(startDate, endDate time.Time, halfDay bool) float64 {
	if halfDay {
		return 0.5
	}

	var days float64
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days++
	}
	return days
}
