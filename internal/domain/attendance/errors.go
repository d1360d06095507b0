package attendance

import (
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
)

var (
	ErrAttendanceNotFound = fmt.Errorf("attendance record not found: %w", apperr.ErrNotFound)
	ErrAlreadyClockedIn   = fmt.Errorf("already clocked in today: %w", apperr.ErrInvalidTransition)
	ErrNotClockedIn       = fmt.Errorf("no active clock-in: %w", apperr.ErrInvalidTransition)
	ErrAlreadyClockedOut  = fmt.Errorf("already clocked out: %w", apperr.ErrInvalidTransition)
	ErrBreakAlreadyTaken  = fmt.Errorf("break already taken today: %w", apperr.ErrInvalidTransition)
	ErrNotOnBreak         = fmt.Errorf("no open break: %w", apperr.ErrInvalidTransition)
	ErrStillOnBreak       = fmt.Errorf("break has not been ended: %w", apperr.ErrInvalidTransition)
)
