package quotation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestQuotation_CalculateTotals(t *testing.T) {
	t.Parallel()

	q := Quotation{
		Items: []LineItem{
			{Description: "Widget", Quantity: dec("2"), UnitPrice: dec("10.00")},
			{Description: "Gadget", Quantity: dec("1"), UnitPrice: dec("5.00")},
		},
		TaxRate:        dec("10"),
		DiscountAmount: dec("2.00"),
	}

	q.CalculateTotals()

	assert.True(t, q.Subtotal.Equal(dec("25.00")), "subtotal = %s", q.Subtotal)
	assert.True(t, q.TaxAmount.Equal(dec("2.50")), "tax = %s", q.TaxAmount)
	assert.True(t, q.TotalAmount.Equal(dec("25.50")), "total = %s", q.TotalAmount)
	assert.True(t, q.Items[0].LineTotal.Equal(dec("20.00")))
}

// The discount comes off after tax is added, never off the taxable base.
func TestQuotation_DiscountAppliedPostTax(t *testing.T) {
	t.Parallel()

	q := Quotation{
		Items:          []LineItem{{Quantity: dec("1"), UnitPrice: dec("100.00")}},
		TaxRate:        dec("20"),
		DiscountAmount: dec("50.00"),
	}

	q.CalculateTotals()

	// pre-tax discount would give (100-50)*1.2 = 60; post-tax gives 70
	assert.True(t, q.TaxAmount.Equal(dec("20.00")))
	assert.True(t, q.TotalAmount.Equal(dec("70.00")))
}

func TestQuotation_DiscountFlooredAtZero(t *testing.T) {
	t.Parallel()

	q := Quotation{
		Items:          []LineItem{{Quantity: dec("1"), UnitPrice: dec("10.00")}},
		TaxRate:        dec("10"),
		DiscountAmount: dec("50.00"),
	}

	q.CalculateTotals()

	assert.True(t, q.Subtotal.Equal(dec("10.00")))
	assert.True(t, q.TaxAmount.Equal(dec("1.00")))
	assert.True(t, q.TotalAmount.Equal(dec("0")), "total = %s", q.TotalAmount)
}

func TestQuotation_StatusGuards(t *testing.T) {
	t.Parallel()

	t.Run("accept requires sent", func(t *testing.T) {
		q := Quotation{Status: QuotationStatusDraft}
		assert.ErrorIs(t, q.Accept(testNow), ErrNotSent)

		require.NoError(t, q.Send(testNow))
		require.NoError(t, q.Accept(testNow))
		assert.Equal(t, QuotationStatusAccepted, q.Status)
		require.NotNil(t, q.AcceptedAt)
	})

	t.Run("second reject is a no-op failure", func(t *testing.T) {
		q := Quotation{Status: QuotationStatusSent}
		require.NoError(t, q.Reject(testNow))
		firstRejectedAt := *q.RejectedAt

		err := q.Reject(testNow.Add(time.Hour))
		assert.ErrorIs(t, err, ErrNotSent)
		assert.Equal(t, QuotationStatusRejected, q.Status)
		assert.Equal(t, firstRejectedAt, *q.RejectedAt)
	})

	t.Run("send requires draft", func(t *testing.T) {
		q := Quotation{Status: QuotationStatusAccepted}
		assert.ErrorIs(t, q.Send(testNow), ErrNotDraft)
	})
}

// Expiry is derived, never a stored transition: a sent quotation past its
// expiry date stays sent in storage.
func TestQuotation_IsExpired(t *testing.T) {
	t.Parallel()

	expiry := testNow.Add(-24 * time.Hour)
	q := Quotation{Status: QuotationStatusSent, ExpiryDate: &expiry}

	assert.True(t, q.IsExpired(testNow))
	assert.Equal(t, QuotationStatusSent, q.Status)

	q.ExpiryDate = nil
	assert.False(t, q.IsExpired(testNow))
}

func TestQuotation_ConvertToInvoice(t *testing.T) {
	t.Parallel()

	newAccepted := func() Quotation {
		q := Quotation{
			ID:      "q-1",
			Status:  QuotationStatusSent,
			Items:   []LineItem{{Quantity: dec("2"), UnitPrice: dec("10.00")}},
			TaxRate: dec("10"),
		}
		q.CalculateTotals()
		if err := q.Accept(testNow); err != nil {
			panic(err)
		}
		return q
	}

	t.Run("freezes totals", func(t *testing.T) {
		q := newAccepted()
		inv, err := q.ConvertToInvoice("inv-1", "INV-0001", testNow)

		require.NoError(t, err)
		assert.Equal(t, "INV-0001", inv.Number)
		assert.True(t, inv.TotalAmount.Equal(q.TotalAmount))
		assert.Equal(t, InvoiceStatusIssued, inv.Status)
		require.NotNil(t, q.InvoiceID)
		assert.Equal(t, "inv-1", *q.InvoiceID)
	})

	t.Run("double conversion blocked", func(t *testing.T) {
		q := newAccepted()
		_, err := q.ConvertToInvoice("inv-1", "INV-0001", testNow)
		require.NoError(t, err)

		_, err = q.ConvertToInvoice("inv-2", "INV-0002", testNow)
		assert.ErrorIs(t, err, ErrAlreadyConverted)
		assert.Equal(t, "inv-1", *q.InvoiceID)
	})

	t.Run("requires accepted", func(t *testing.T) {
		q := Quotation{Status: QuotationStatusSent}
		_, err := q.ConvertToInvoice("inv-1", "INV-0001", testNow)
		assert.ErrorIs(t, err, ErrNotAccepted)
	})
}

func TestInvoice_MarkPaid(t *testing.T) {
	t.Parallel()

	inv := Invoice{Status: InvoiceStatusIssued}
	require.NoError(t, inv.MarkPaid(testNow))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)

	assert.ErrorIs(t, inv.MarkPaid(testNow), ErrInvoiceNotPayable)
}
