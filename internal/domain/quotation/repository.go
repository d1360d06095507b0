package quotation

import (
	"context"
	"time"
)

type QuotationRepository interface {
	GetByID(ctx context.Context, id string) (Quotation, error)
	List(ctx context.Context, status *QuotationStatus) ([]Quotation, error)
	Create(ctx context.Context, q Quotation) (Quotation, error)
	Update(ctx context.Context, q Quotation) error

	// ListSentExpiredBefore backs the expiry report: quotations still in sent
	// whose expiry date has passed. Their stored status is left untouched.
	ListSentExpiredBefore(ctx context.Context, cutoff time.Time) ([]Quotation, error)
}

type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	Update(ctx context.Context, inv Invoice) error
}
