package leave

import (
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	HalfDay     bool   `json:"half_day"`
	Reason      string `json:"reason"`
}

func (r CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = errs.Add("leave_type_id", "Leave type is required")
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = errs.Add("start_date", "Invalid date format, expected YYYY-MM-DD")
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = errs.Add("end_date", "Invalid date format, expected YYYY-MM-DD")
	}
	if validator.IsEmpty(r.Reason) {
		errs = errs.Add("reason", "Reason is required")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveLeaveRequestRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type RejectLeaveRequestRequest struct {
	Reason string `json:"reason"`
}

func (r RejectLeaveRequestRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{}.Add("reason", "Rejection reason is required")
	}
	return nil
}

// UpdateLeaveRequestParams carries the partial column set a lifecycle
// transition writes back.
type UpdateLeaveRequestParams struct {
	ID              string
	Status          *string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	ApprovalNotes   *string
	RejectionReason *string
	CancelledAt     *time.Time
}

type LeaveRequestResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  *string  `json:"employee_name,omitempty"`
	LeaveTypeID   string   `json:"leave_type_id"`
	LeaveTypeName *string  `json:"leave_type_name,omitempty"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	HalfDay       bool     `json:"half_day"`
	DaysRequested float64  `json:"days_requested"`
	Reason        string   `json:"reason"`
	Status        string   `json:"status"`
	ApprovedBy    *string  `json:"approved_by,omitempty"`
	ApprovedAt    *string  `json:"approved_at,omitempty"`
	Rejection     *string  `json:"rejection_reason,omitempty"`
	SubmittedAt   string   `json:"submitted_at"`
}
