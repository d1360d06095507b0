package leave

import (
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
)

var (
	ErrLeaveRequestNotFound    = fmt.Errorf("leave request not found: %w", apperr.ErrNotFound)
	ErrLeaveTypeNotFound       = fmt.Errorf("leave type not found: %w", apperr.ErrNotFound)
	ErrAlreadyProcessed        = fmt.Errorf("leave request already processed: %w", apperr.ErrInvalidTransition)
	ErrNotCancellable          = fmt.Errorf("leave request cannot be cancelled: %w", apperr.ErrInvalidTransition)
	ErrRejectionReasonRequired = fmt.Errorf("rejection reason is required: %w", apperr.ErrValidationFailed)
)
