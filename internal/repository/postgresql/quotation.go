package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/quotation"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type quotationRepositoryImpl struct {
	db *database.DB
}

func NewQuotationRepository(db *database.DB) quotation.QuotationRepository {
	return &quotationRepositoryImpl{db: db}
}

// NUMERIC columns travel as text and convert through shopspring/decimal, so
// no driver-level codec is involved.
const quotationColumns = `id, number, client_kind, client_id, tax_rate::text, discount_amount::text,
	subtotal::text, tax_amount::text, total_amount::text, status, expiry_date,
	sent_at, accepted_at, rejected_at, invoice_id, created_at, updated_at`

func scanQuotation(row pgx.Row) (quotation.Quotation, error) {
	var q quotation.Quotation
	var clientKind, clientID string
	var taxRate, discount, subtotal, taxAmount, total string
	err := row.Scan(&q.ID, &q.Number, &clientKind, &clientID, &taxRate, &discount,
		&subtotal, &taxAmount, &total, &q.Status, &q.ExpiryDate,
		&q.SentAt, &q.AcceptedAt, &q.RejectedAt, &q.InvoiceID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return quotation.Quotation{}, err
	}

	q.Client = party.Ref{Kind: party.Kind(clientKind), ID: clientID}
	for _, col := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{taxRate, &q.TaxRate},
		{discount, &q.DiscountAmount},
		{subtotal, &q.Subtotal},
		{taxAmount, &q.TaxAmount},
		{total, &q.TotalAmount},
	} {
		d, err := decimal.NewFromString(col.raw)
		if err != nil {
			return quotation.Quotation{}, fmt.Errorf("failed to parse decimal column: %w", err)
		}
		*col.dst = d
	}
	return q, nil
}

func (r *quotationRepositoryImpl) loadItems(ctx context.Context, quotationID string) ([]quotation.LineItem, error) {
	q := database.GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, description, quantity::text, unit_price::text, line_total::text
		FROM quotation_items
		WHERE quotation_id = $1
		ORDER BY position
	`, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []quotation.LineItem
	for rows.Next() {
		var item quotation.LineItem
		var quantity, unitPrice, lineTotal string
		if err := rows.Scan(&item.ID, &item.Description, &quantity, &unitPrice, &lineTotal); err != nil {
			return nil, err
		}
		if item.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, err
		}
		if item.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *quotationRepositoryImpl) GetByID(ctx context.Context, id string) (quotation.Quotation, error) {
	q := database.GetQuerier(ctx, r.db)

	qt, err := scanQuotation(q.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return quotation.Quotation{}, quotation.ErrQuotationNotFound
		}
		return quotation.Quotation{}, err
	}

	if qt.Items, err = r.loadItems(ctx, qt.ID); err != nil {
		return quotation.Quotation{}, err
	}
	return qt, nil
}

func (r *quotationRepositoryImpl) List(ctx context.Context, status *quotation.QuotationStatus) ([]quotation.Quotation, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + quotationColumns + ` FROM quotations`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotations []quotation.Quotation
	for rows.Next() {
		qt, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, qt)
	}
	return quotations, rows.Err()
}

func (r *quotationRepositoryImpl) Create(ctx context.Context, qt quotation.Quotation) (quotation.Quotation, error) {
	q := database.GetQuerier(ctx, r.db)

	if qt.ID == "" {
		qt.ID = uuid.NewString()
	}

	query := `
		INSERT INTO quotations (id, number, client_kind, client_id, tax_rate, discount_amount,
			subtotal, tax_amount, total_amount, status, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query, qt.ID, qt.Number, qt.Client.Kind, qt.Client.ID,
		qt.TaxRate.String(), qt.DiscountAmount.String(), qt.Subtotal.String(),
		qt.TaxAmount.String(), qt.TotalAmount.String(), qt.Status, qt.ExpiryDate, qt.CreatedAt).
		Scan(&qt.UpdatedAt)
	if err != nil {
		return quotation.Quotation{}, err
	}

	for i := range qt.Items {
		if qt.Items[i].ID == "" {
			qt.Items[i].ID = uuid.NewString()
		}
		_, err := q.Exec(ctx, `
			INSERT INTO quotation_items (id, quotation_id, position, description, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, qt.Items[i].ID, qt.ID, i, qt.Items[i].Description,
			qt.Items[i].Quantity.String(), qt.Items[i].UnitPrice.String(), qt.Items[i].LineTotal.String())
		if err != nil {
			return quotation.Quotation{}, err
		}
	}
	return qt, nil
}

func (r *quotationRepositoryImpl) Update(ctx context.Context, qt quotation.Quotation) error {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE quotations
		SET status = $2, sent_at = $3, accepted_at = $4, rejected_at = $5, invoice_id = $6,
			subtotal = $7, tax_amount = $8, total_amount = $9, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, qt.ID, qt.Status, qt.SentAt, qt.AcceptedAt, qt.RejectedAt, qt.InvoiceID,
		qt.Subtotal.String(), qt.TaxAmount.String(), qt.TotalAmount.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return quotation.ErrQuotationNotFound
	}
	return nil
}

func (r *quotationRepositoryImpl) ListSentExpiredBefore(ctx context.Context, cutoff time.Time) ([]quotation.Quotation, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		SELECT ` + quotationColumns + `
		FROM quotations
		WHERE status = 'sent' AND expiry_date IS NOT NULL AND expiry_date < $1
		ORDER BY expiry_date
	`
	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotations []quotation.Quotation
	for rows.Next() {
		qt, err := scanQuotation(rows)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, qt)
	}
	return quotations, rows.Err()
}
