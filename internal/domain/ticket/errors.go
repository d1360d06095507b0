package ticket

import (
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
)

var (
	ErrTicketNotFound      = fmt.Errorf("ticket not found: %w", apperr.ErrNotFound)
	ErrSLAPolicyNotFound   = fmt.Errorf("SLA policy not found: %w", apperr.ErrNotFound)
	ErrInvalidStatusChange = fmt.Errorf("ticket status change not allowed: %w", apperr.ErrInvalidTransition)
	ErrNotClosed           = fmt.Errorf("ticket is not closed: %w", apperr.ErrInvalidTransition)
	ErrInvalidRequester    = fmt.Errorf("requester reference is invalid: %w", apperr.ErrValidationFailed)
)
