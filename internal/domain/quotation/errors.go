package quotation

import (
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
)

var (
	ErrQuotationNotFound = fmt.Errorf("quotation not found: %w", apperr.ErrNotFound)
	ErrInvoiceNotFound   = fmt.Errorf("invoice not found: %w", apperr.ErrNotFound)
	ErrNotDraft          = fmt.Errorf("quotation is not a draft: %w", apperr.ErrInvalidTransition)
	ErrNotSent           = fmt.Errorf("quotation has not been sent: %w", apperr.ErrInvalidTransition)
	ErrNotAccepted       = fmt.Errorf("quotation has not been accepted: %w", apperr.ErrInvalidTransition)
	ErrAlreadyConverted  = fmt.Errorf("quotation already converted to an invoice: %w", apperr.ErrInvalidTransition)
	ErrInvoiceNotPayable = fmt.Errorf("invoice is not payable: %w", apperr.ErrInvalidTransition)
	ErrNoItems           = fmt.Errorf("quotation has no line items: %w", apperr.ErrValidationFailed)
)
