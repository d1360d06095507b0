package training

import (
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
)

var (
	ErrTrainingNotFound   = fmt.Errorf("training not found: %w", apperr.ErrNotFound)
	ErrEnrollmentNotFound = fmt.Errorf("enrollment not found: %w", apperr.ErrNotFound)
	ErrNotEnrolled        = fmt.Errorf("enrollment has already started or ended: %w", apperr.ErrInvalidTransition)
	ErrNotInProgress      = fmt.Errorf("enrollment is not in progress: %w", apperr.ErrInvalidTransition)
	ErrAlreadyCompleted   = fmt.Errorf("enrollment already completed: %w", apperr.ErrInvalidTransition)
	ErrAlreadyDropped     = fmt.Errorf("enrollment already dropped: %w", apperr.ErrInvalidTransition)
	ErrProgressOutOfRange = fmt.Errorf("progress percentage must be between 0 and 100: %w", apperr.ErrValidationFailed)
	ErrAlreadyEnrolled    = fmt.Errorf("employee already enrolled in this training: %w", apperr.ErrInvalidTransition)
)
