package quotation

import (
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

// Invoice carries the totals frozen at conversion time; it is never
// recalculated from the quotation afterwards.
type Invoice struct {
	ID          string
	Number      string
	QuotationID *string
	Client      party.Ref

	Items          []LineItem
	TaxRate        decimal.Decimal
	DiscountAmount decimal.Decimal

	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal

	Status   InvoiceStatus
	IssuedAt time.Time
	DueDate  *time.Time
	PaidAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarkPaid settles an issued invoice.
func (i *Invoice) MarkPaid(now time.Time) error {
	if i.Status != InvoiceStatusIssued {
		return ErrInvoiceNotPayable
	}
	i.Status = InvoiceStatusPaid
	i.PaidAt = &now
	return nil
}
