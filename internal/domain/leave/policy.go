package leave

import (
	"fmt"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/validator"
)

// LeaveType entity with its policy rules.
type LeaveType struct {
	ID          string
	Name        string
	Description *string

	DaysPerYear float64

	// Carry-forward rules
	CarryForward        bool
	MaxCarryForwardDays *float64 // nil = unbounded

	// Request rules
	MaxConsecutiveDays *int
	MinNoticeDays      *int

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateRequest checks a leave request against the type's policy rules and
// returns every violated rule. An empty result means the request passes.
func (t LeaveType) ValidateRequest(startDate, endDate time.Time, now time.Time) validator.ValidationErrors {
	var violations validator.ValidationErrors

	if !t.IsActive {
		violations = violations.Add("leave_type", "leave type is inactive")
	}

	if endDate.Before(startDate) {
		violations = violations.Add("end_date", "end date is before start date")
		return violations
	}

	if t.MinNoticeDays != nil {
		noticeDays := int(startDate.Sub(now).Hours() / 24)
		if noticeDays < *t.MinNoticeDays {
			violations = violations.Add("start_date",
				fmt.Sprintf("requires at least %d days notice", *t.MinNoticeDays))
		}
	}

	if t.MaxConsecutiveDays != nil {
		totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
		if totalDays > *t.MaxConsecutiveDays {
			violations = violations.Add("end_date",
				fmt.Sprintf("exceeds maximum of %d consecutive days", *t.MaxConsecutiveDays))
		}
	}

	return violations
}

// Balance is the per-employee, per-year rollup for a leave type.
type Balance struct {
	Allocated      float64 `json:"allocated"`
	CarryForward   float64 `json:"carry_forward"`
	TotalAllocated float64 `json:"total_allocated"`
	Used           float64 `json:"used"`
	Remaining      float64 `json:"remaining"`
}
