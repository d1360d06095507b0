package quotation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/quotation"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/events"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type QuotationService struct {
	db *database.DB
	quotation.QuotationRepository
	quotation.InvoiceRepository
	resolver   party.Resolver
	dispatcher *events.Dispatcher
	now        func() time.Time
}

func NewQuotationService(
	db *database.DB,
	quotationRepository quotation.QuotationRepository,
	invoiceRepository quotation.InvoiceRepository,
	resolver party.Resolver,
	dispatcher *events.Dispatcher,
) *QuotationService {
	return &QuotationService{
		db:                  db,
		QuotationRepository: quotationRepository,
		InvoiceRepository:   invoiceRepository,
		resolver:            resolver,
		dispatcher:          dispatcher,
		now:                 time.Now,
	}
}

func documentNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}

func mustDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, _ := decimal.NewFromString(s)
	return d
}

func (s *QuotationService) Create(ctx context.Context, req quotation.CreateQuotationRequest) (quotation.Quotation, error) {
	if err := req.Validate(); err != nil {
		return quotation.Quotation{}, err
	}

	if _, err := s.resolver.Resolve(ctx, req.Ref()); err != nil {
		return quotation.Quotation{}, fmt.Errorf("failed to resolve client: %w", err)
	}

	now := s.now()
	q := quotation.Quotation{
		Number:         documentNumber("QUO", now),
		Client:         req.Ref(),
		TaxRate:        mustDecimal(req.TaxRate),
		DiscountAmount: mustDecimal(req.DiscountAmount),
		Status:         quotation.QuotationStatusDraft,
		CreatedAt:      now,
	}
	for _, item := range req.Items {
		q.Items = append(q.Items, quotation.LineItem{
			Description: item.Description,
			Quantity:    mustDecimal(item.Quantity),
			UnitPrice:   mustDecimal(item.UnitPrice),
		})
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return quotation.Quotation{}, fmt.Errorf("failed to parse expiry date: %w", err)
		}
		q.ExpiryDate = &expiry
	}

	q.CalculateTotals()

	created, err := s.QuotationRepository.Create(ctx, q)
	if err != nil {
		return quotation.Quotation{}, fmt.Errorf("failed to create quotation: %w", err)
	}
	return created, nil
}

func (s *QuotationService) Send(ctx context.Context, quotationID string) (quotation.Quotation, error) {
	return s.mutate(ctx, quotationID, func(q *quotation.Quotation, now time.Time) error {
		return q.Send(now)
	})
}

func (s *QuotationService) Accept(ctx context.Context, quotationID string) (quotation.Quotation, error) {
	q, err := s.mutate(ctx, quotationID, func(q *quotation.Quotation, now time.Time) error {
		return q.Accept(now)
	})
	if err != nil {
		return quotation.Quotation{}, err
	}

	s.dispatcher.Publish(ctx, events.QuotationAccepted{
		QuotationID: q.ID,
		Number:      q.Number,
		Client:      q.Client,
		TotalAmount: q.TotalAmount.StringFixed(2),
	})

	return q, nil
}

func (s *QuotationService) Reject(ctx context.Context, quotationID string) (quotation.Quotation, error) {
	return s.mutate(ctx, quotationID, func(q *quotation.Quotation, now time.Time) error {
		return q.Reject(now)
	})
}

// ConvertToInvoice freezes an accepted quotation into an issued invoice. The
// invoice insert and the quotation's conversion stamp commit together.
func (s *QuotationService) ConvertToInvoice(ctx context.Context, quotationID string) (quotation.Invoice, error) {
	q, err := s.QuotationRepository.GetByID(ctx, quotationID)
	if err != nil {
		return quotation.Invoice{}, fmt.Errorf("failed to get quotation: %w", err)
	}

	now := s.now()
	inv, err := q.ConvertToInvoice(uuid.NewString(), documentNumber("INV", now), now)
	if err != nil {
		return quotation.Invoice{}, err
	}

	err = database.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if _, err := s.InvoiceRepository.Create(ctx, inv); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		if err := s.QuotationRepository.Update(ctx, q); err != nil {
			return fmt.Errorf("failed to update quotation: %w", err)
		}
		return nil
	})
	if err != nil {
		return quotation.Invoice{}, err
	}

	return inv, nil
}

func (s *QuotationService) MarkInvoicePaid(ctx context.Context, invoiceID string) (quotation.Invoice, error) {
	inv, err := s.InvoiceRepository.GetByID(ctx, invoiceID)
	if err != nil {
		return quotation.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}

	if err := inv.MarkPaid(s.now()); err != nil {
		return quotation.Invoice{}, err
	}

	if err := s.InvoiceRepository.Update(ctx, inv); err != nil {
		return quotation.Invoice{}, fmt.Errorf("failed to update invoice: %w", err)
	}
	return inv, nil
}

func (s *QuotationService) GetByID(ctx context.Context, quotationID string) (quotation.Quotation, error) {
	return s.QuotationRepository.GetByID(ctx, quotationID)
}

func (s *QuotationService) GetInvoice(ctx context.Context, invoiceID string) (quotation.Invoice, error) {
	return s.InvoiceRepository.GetByID(ctx, invoiceID)
}

func (s *QuotationService) List(ctx context.Context, status *quotation.QuotationStatus) ([]quotation.Quotation, error) {
	quotations, err := s.QuotationRepository.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}
	return quotations, nil
}

// ExpiredQuotations reports sent quotations whose expiry date has passed.
// Stored statuses stay untouched; expiry is a derived view.
func (s *QuotationService) ExpiredQuotations(ctx context.Context) ([]quotation.Quotation, error) {
	expired, err := s.QuotationRepository.ListSentExpiredBefore(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list expired quotations: %w", err)
	}
	return expired, nil
}

func (s *QuotationService) ResolveClient(ctx context.Context, q quotation.Quotation) (party.Contact, error) {
	contact, err := s.resolver.Resolve(ctx, q.Client)
	if err != nil {
		if errors.Is(err, party.ErrUnknownParty) {
			return party.Contact{}, err
		}
		return party.Contact{}, fmt.Errorf("failed to resolve client: %w", err)
	}
	return contact, nil
}

func (s *QuotationService) mutate(ctx context.Context, quotationID string, mutate func(*quotation.Quotation, time.Time) error) (quotation.Quotation, error) {
	q, err := s.QuotationRepository.GetByID(ctx, quotationID)
	if err != nil {
		return quotation.Quotation{}, fmt.Errorf("failed to get quotation: %w", err)
	}

	if err := mutate(&q, s.now()); err != nil {
		return quotation.Quotation{}, err
	}

	if err := s.QuotationRepository.Update(ctx, q); err != nil {
		return quotation.Quotation{}, fmt.Errorf("failed to update quotation: %w", err)
	}
	return q, nil
}
