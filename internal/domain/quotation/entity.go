package quotation

import (
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/shopspring/decimal"
)

type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
)

// LineItem is a priced line on a quotation or invoice.
type LineItem struct {
	ID          string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Quotation is the sales quote aggregate. The billable party is polymorphic:
// a registered user or an external client.
type Quotation struct {
	ID     string
	Number string
	Client party.Ref

	Items          []LineItem
	TaxRate        decimal.Decimal // percentage
	DiscountAmount decimal.Decimal

	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal

	Status     QuotationStatus
	ExpiryDate *time.Time

	SentAt     *time.Time
	AcceptedAt *time.Time
	RejectedAt *time.Time

	// InvoiceID is set once the quotation has been converted; conversion is
	// one-shot.
	InvoiceID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalculateTotals recomputes line totals and the roll-up. The discount is
// applied after tax, not before; callers depend on that exact order. A
// discount exceeding subtotal plus tax floors the total at zero.
func (q *Quotation) CalculateTotals() {
	subtotal := decimal.Zero
	for i := range q.Items {
		q.Items[i].LineTotal = q.Items[i].Quantity.Mul(q.Items[i].UnitPrice).Round(2)
		subtotal = subtotal.Add(q.Items[i].LineTotal)
	}

	q.Subtotal = subtotal
	q.TaxAmount = subtotal.Mul(q.TaxRate).Div(decimal.NewFromInt(100)).Round(2)

	total := subtotal.Add(q.TaxAmount).Sub(q.DiscountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	q.TotalAmount = total
}

// Send issues a draft quotation to the client.
func (q *Quotation) Send(now time.Time) error {
	if q.Status != QuotationStatusDraft {
		return ErrNotDraft
	}
	q.Status = QuotationStatusSent
	q.SentAt = &now
	return nil
}

// Accept is legal only from sent.
func (q *Quotation) Accept(now time.Time) error {
	if q.Status != QuotationStatusSent {
		return ErrNotSent
	}
	q.Status = QuotationStatusAccepted
	q.AcceptedAt = &now
	return nil
}

// Reject is legal only from sent.
func (q *Quotation) Reject(now time.Time) error {
	if q.Status != QuotationStatusSent {
		return ErrNotSent
	}
	q.Status = QuotationStatusRejected
	q.RejectedAt = &now
	return nil
}

// IsExpired is derived from ExpiryDate against now. Expiry never mutates the
// stored status: a quotation can be sent and expired at the same time, and
// display logic must compute this independently of the status field.
func (q Quotation) IsExpired(now time.Time) bool {
	return q.ExpiryDate != nil && q.ExpiryDate.Before(now)
}

// ConvertToInvoice freezes the accepted quotation into an invoice. Legal only
// when accepted and not already converted; re-invoking on a converted
// quotation fails rather than issuing a duplicate.
func (q *Quotation) ConvertToInvoice(invoiceID, invoiceNumber string, now time.Time) (Invoice, error) {
	if q.Status != QuotationStatusAccepted {
		return Invoice{}, ErrNotAccepted
	}
	if q.InvoiceID != nil {
		return Invoice{}, ErrAlreadyConverted
	}

	items := make([]LineItem, len(q.Items))
	copy(items, q.Items)

	inv := Invoice{
		ID:             invoiceID,
		Number:         invoiceNumber,
		QuotationID:    &q.ID,
		Client:         q.Client,
		Items:          items,
		TaxRate:        q.TaxRate,
		DiscountAmount: q.DiscountAmount,
		Subtotal:       q.Subtotal,
		TaxAmount:      q.TaxAmount,
		TotalAmount:    q.TotalAmount,
		Status:         InvoiceStatusIssued,
		IssuedAt:       now,
	}

	q.InvoiceID = &invoiceID
	return inv, nil
}
