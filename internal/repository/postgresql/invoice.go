package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/quotation"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type invoiceRepositoryImpl struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) quotation.InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

const invoiceColumns = `id, number, quotation_id, client_kind, client_id, tax_rate::text, discount_amount::text,
	subtotal::text, tax_amount::text, total_amount::text, status, issued_at, due_date, paid_at,
	created_at, updated_at`

func scanInvoice(row pgx.Row) (quotation.Invoice, error) {
	var inv quotation.Invoice
	var clientKind, clientID string
	var taxRate, discount, subtotal, taxAmount, total string
	err := row.Scan(&inv.ID, &inv.Number, &inv.QuotationID, &clientKind, &clientID, &taxRate, &discount,
		&subtotal, &taxAmount, &total, &inv.Status, &inv.IssuedAt, &inv.DueDate, &inv.PaidAt,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return quotation.Invoice{}, err
	}

	inv.Client = party.Ref{Kind: party.Kind(clientKind), ID: clientID}
	for _, col := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{taxRate, &inv.TaxRate},
		{discount, &inv.DiscountAmount},
		{subtotal, &inv.Subtotal},
		{taxAmount, &inv.TaxAmount},
		{total, &inv.TotalAmount},
	} {
		d, err := decimal.NewFromString(col.raw)
		if err != nil {
			return quotation.Invoice{}, fmt.Errorf("failed to parse decimal column: %w", err)
		}
		*col.dst = d
	}
	return inv, nil
}

func (r *invoiceRepositoryImpl) loadItems(ctx context.Context, invoiceID string) ([]quotation.LineItem, error) {
	q := database.GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, description, quantity::text, unit_price::text, line_total::text
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position
	`, invoiceID)
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

func (r *invoiceRepositoryImpl) GetByID(ctx context.Context, id string) (quotation.Invoice, error) {
	q := database.GetQuerier(ctx, r.db)

	inv, err := scanInvoice(q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return quotation.Invoice{}, quotation.ErrInvoiceNotFound
		}
		return quotation.Invoice{}, err
	}

	if inv.Items, err = r.loadItems(ctx, inv.ID); err != nil {
		return quotation.Invoice{}, err
	}
	return inv, nil
}

func (r *invoiceRepositoryImpl) List(ctx context.Context) ([]quotation.Invoice, error) {
	q := database.GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY issued_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []quotation.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepositoryImpl) Create(ctx context.Context, inv quotation.Invoice) (quotation.Invoice, error) {
	q := database.GetQuerier(ctx, r.db)

	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}

	query := `
		INSERT INTO invoices (id, number, quotation_id, client_kind, client_id, tax_rate, discount_amount,
			subtotal, tax_amount, total_amount, status, issued_at, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, inv.ID, inv.Number, inv.QuotationID, inv.Client.Kind, inv.Client.ID,
		inv.TaxRate.String(), inv.DiscountAmount.String(), inv.Subtotal.String(),
		inv.TaxAmount.String(), inv.TotalAmount.String(), inv.Status, inv.IssuedAt, inv.DueDate).
		Scan(&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return quotation.Invoice{}, err
	}

	for i := range inv.Items {
		if inv.Items[i].ID == "" {
			inv.Items[i].ID = uuid.NewString()
		}
		_, err := q.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, position, description, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, inv.Items[i].ID, inv.ID, i, inv.Items[i].Description,
			inv.Items[i].Quantity.String(), inv.Items[i].UnitPrice.String(), inv.Items[i].LineTotal.String())
		if err != nil {
			return quotation.Invoice{}, err
		}
	}
	return inv, nil
}

func (r *invoiceRepositoryImpl) Update(ctx context.Context, inv quotation.Invoice) error {
	q := database.GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE invoices
		SET status = $2, paid_at = $3, due_date = $4, updated_at = NOW()
		WHERE id = $1
	`, inv.ID, inv.Status, inv.PaidAt, inv.DueDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return quotation.ErrInvoiceNotFound
	}
	return nil
}
