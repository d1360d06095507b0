package attendance

import (
	"time"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusOnLeave AttendanceStatus = "on_leave"
)

// Clock thresholds. The standard day is 8 hours; clock-ins after 09:00 local
// are escalated to late.
const (
	StandardDayMinutes = 480
	LateHourThreshold  = 9
)

// Attendance is one employee-day of clock activity. One optional break per
// day in this model.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time

	ClockInAt    *time.Time
	ClockOutAt   *time.Time
	BreakStartAt *time.Time
	BreakEndAt   *time.Time

	ClockInLocation *string
	ClockInIP       *string

	TotalMinutes    *int
	BreakMinutes    *int
	WorkedMinutes   *int
	OvertimeMinutes *int

	Status AttendanceStatus

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
}

// ClockIn opens the day's session. Fails if already clocked in.
func (a *Attendance) ClockIn(now time.Time, location, ip *string) error {
	if a.ClockInAt != nil {
		return ErrAlreadyClockedIn
	}

	a.ClockInAt = &now
	a.ClockInLocation = location
	a.ClockInIP = ip
	a.Status = ResolveStatus(now, AttendanceStatusPresent)
	return nil
}

// StartBreak requires an active clock-in, no clock-out, and no prior break.
func (a *Attendance) StartBreak(now time.Time) error {
	if a.ClockInAt == nil || a.ClockOutAt != nil {
		return ErrNotClockedIn
	}
	if a.BreakStartAt != nil {
		return ErrBreakAlreadyTaken
	}

	a.BreakStartAt = &now
	return nil
}

// EndBreak requires an open break.
func (a *Attendance) EndBreak(now time.Time) error {
	if a.BreakStartAt == nil || a.BreakEndAt != nil {
		return ErrNotOnBreak
	}

	a.BreakEndAt = &now
	return nil
}

// ClockOut closes the session and derives the day's duration figures:
// worked minutes net of break, overtime past the 8-hour standard day.
func (a *Attendance) ClockOut(now time.Time) error {
	if a.ClockInAt == nil {
		return ErrNotClockedIn
	}
	if a.ClockOutAt != nil {
		return ErrAlreadyClockedOut
	}
	if a.BreakStartAt != nil && a.BreakEndAt == nil {
		return ErrStillOnBreak
	}

	a.ClockOutAt = &now

	totalMinutes := int(now.Sub(*a.ClockInAt).Minutes())
	breakMinutes := 0
	if a.BreakStartAt != nil && a.BreakEndAt != nil {
		breakMinutes = int(a.BreakEndAt.Sub(*a.BreakStartAt).Minutes())
	}
	workedMinutes := totalMinutes - breakMinutes
	overtimeMinutes := workedMinutes - StandardDayMinutes
	if overtimeMinutes < 0 {
		overtimeMinutes = 0
	}

	a.TotalMinutes = &totalMinutes
	a.BreakMinutes = &breakMinutes
	a.WorkedMinutes = &workedMinutes
	a.OvertimeMinutes = &overtimeMinutes
	return nil
}

// ResolveStatus escalates present to late when the clock-in time-of-day is
// past 09:00 local. Called explicitly by the service before persisting,
// replacing the persistence-hook side effect the behavior came from.
func ResolveStatus(clockIn time.Time, current AttendanceStatus) AttendanceStatus {
	if current != AttendanceStatusPresent {
		return current
	}
	if clockIn.Hour() > LateHourThreshold ||
		(clockIn.Hour() == LateHourThreshold && (clockIn.Minute() > 0 || clockIn.Second() > 0)) {
		return AttendanceStatusLate
	}
	return current
}
