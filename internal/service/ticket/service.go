package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/ticket"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/events"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
)

type TicketService struct {
	db *database.DB
	ticket.TicketRepository
	ticket.CommentRepository
	ticket.SLAPolicyRepository
	resolver   party.Resolver
	dispatcher *events.Dispatcher
	now        func() time.Time
}

func NewTicketService(
	db *database.DB,
	ticketRepository ticket.TicketRepository,
	commentRepository ticket.CommentRepository,
	slaPolicyRepository ticket.SLAPolicyRepository,
	resolver party.Resolver,
	dispatcher *events.Dispatcher,
) *TicketService {
	return &TicketService{
		db:                  db,
		TicketRepository:    ticketRepository,
		CommentRepository:   commentRepository,
		SLAPolicyRepository: slaPolicyRepository,
		resolver:            resolver,
		dispatcher:          dispatcher,
		now:                 time.Now,
	}
}

func ticketNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("TKT-%s-%s", now.Format("20060102"), suffix)
}

func (s *TicketService) Create(ctx context.Context, req ticket.CreateTicketRequest) (ticket.Ticket, error) {
	if err := req.Validate(); err != nil {
		return ticket.Ticket{}, err
	}

	// The requester must exist as a user or client before a ticket is filed.
	if _, err := s.resolver.Resolve(ctx, req.Ref()); err != nil {
		if errors.Is(err, party.ErrUnknownParty) {
			return ticket.Ticket{}, ticket.ErrInvalidRequester
		}
		return ticket.Ticket{}, fmt.Errorf("failed to resolve requester: %w", err)
	}

	now := s.now()
	t := ticket.Ticket{
		Number:      ticketNumber(now),
		Requester:   req.Ref(),
		Category:    req.Category,
		Priority:    ticket.TicketPriority(req.Priority),
		Subject:     req.Subject,
		Description: req.Description,
		Status:      ticket.TicketStatusOpen,
		CreatedAt:   now,
	}

	// SLA attachment is best effort; a priority without a policy still files.
	if policy, err := s.SLAPolicyRepository.GetByPriority(ctx, t.Priority); err == nil {
		t.SLAPolicyID = &policy.ID
	} else if !errors.Is(err, ticket.ErrSLAPolicyNotFound) {
		return ticket.Ticket{}, fmt.Errorf("failed to get SLA policy: %w", err)
	}

	created, err := s.TicketRepository.Create(ctx, t)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	s.dispatcher.Publish(ctx, events.TicketCreated{
		TicketID:  created.ID,
		Number:    created.Number,
		Requester: created.Requester,
		Priority:  string(created.Priority),
		Subject:   created.Subject,
	})

	return created, nil
}

func (s *TicketService) MarkInProgress(ctx context.Context, ticketID string) (ticket.Ticket, error) {
	return s.mutate(ctx, ticketID, func(t *ticket.Ticket, now time.Time) error {
		return t.MarkInProgress()
	})
}

func (s *TicketService) MarkPending(ctx context.Context, ticketID string) (ticket.Ticket, error) {
	return s.mutate(ctx, ticketID, func(t *ticket.Ticket, now time.Time) error {
		return t.MarkPending()
	})
}

func (s *TicketService) Resolve(ctx context.Context, ticketID string) (ticket.Ticket, error) {
	return s.mutate(ctx, ticketID, func(t *ticket.Ticket, now time.Time) error {
		return t.Resolve(now)
	})
}

func (s *TicketService) Close(ctx context.Context, ticketID string, req ticket.CloseTicketRequest) (ticket.Ticket, error) {
	if err := req.Validate(); err != nil {
		return ticket.Ticket{}, err
	}
	return s.mutate(ctx, ticketID, func(t *ticket.Ticket, now time.Time) error {
		t.Close(req.SatisfactionRating, req.SatisfactionFeedback, now)
		return nil
	})
}

// Reopen reverses a close and records the reason as a system comment. The
// ticket update and the comment are written in one transaction.
func (s *TicketService) Reopen(ctx context.Context, ticketID string, req ticket.ReopenTicketRequest) (ticket.Ticket, error) {
	if err := req.Validate(); err != nil {
		return ticket.Ticket{}, err
	}

	t, err := s.TicketRepository.GetByID(ctx, ticketID)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket: %w", err)
	}

	comment, err := t.Reopen(req.Reason, s.now())
	if err != nil {
		return ticket.Ticket{}, err
	}

	err = database.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.TicketRepository.Update(ctx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		if _, err := s.CommentRepository.Create(ctx, comment); err != nil {
			return fmt.Errorf("failed to create system comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return ticket.Ticket{}, err
	}

	s.dispatcher.Publish(ctx, events.TicketReopened{
		TicketID: t.ID,
		Reason:   req.Reason,
	})

	return t, nil
}

// AddComment appends a conversation entry. A customer-visible comment on a
// closed ticket flips it back to open first, so the reopened status is
// persisted before the comment lands.
func (s *TicketService) AddComment(ctx context.Context, ticketID string, author party.Ref, req ticket.AddCommentRequest) (ticket.Comment, error) {
	if err := req.Validate(); err != nil {
		return ticket.Comment{}, err
	}

	t, err := s.TicketRepository.GetByID(ctx, ticketID)
	if err != nil {
		return ticket.Comment{}, fmt.Errorf("failed to get ticket: %w", err)
	}

	autoReopened := t.AutoReopenForComment(req.Internal)
	if autoReopened {
		if err := s.TicketRepository.Update(ctx, t); err != nil {
			return ticket.Comment{}, fmt.Errorf("failed to update ticket: %w", err)
		}
	}

	comment, err := s.CommentRepository.Create(ctx, ticket.Comment{
		TicketID:  t.ID,
		Author:    author,
		Body:      req.Body,
		Internal:  req.Internal,
		CreatedAt: s.now(),
	})
	if err != nil {
		return ticket.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}

	s.dispatcher.Publish(ctx, events.TicketCommentAdded{
		TicketID:     t.ID,
		CommentID:    comment.ID,
		Author:       author,
		Internal:     req.Internal,
		AutoReopened: autoReopened,
	})

	return comment, nil
}

func (s *TicketService) ListComments(ctx context.Context, ticketID string) ([]ticket.Comment, error) {
	comments, err := s.CommentRepository.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *TicketService) List(ctx context.Context, status *ticket.TicketStatus) ([]ticket.Ticket, error) {
	tickets, err := s.TicketRepository.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// ScanOverdue finds unresolved tickets past their SLA resolution window.
// Run from the scheduler; returns the overdue set for notification fan-out.
func (s *TicketService) ScanOverdue(ctx context.Context) ([]ticket.Ticket, error) {
	now := s.now()

	candidates, err := s.TicketRepository.ListUnresolvedCreatedBefore(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list unresolved tickets: %w", err)
	}

	var overdue []ticket.Ticket
	for _, t := range candidates {
		if t.SLAPolicyID == nil {
			continue
		}
		policy, err := s.SLAPolicyRepository.GetByID(ctx, *t.SLAPolicyID)
		if err != nil {
			slog.Warn("Skipping ticket with unresolvable SLA policy", "ticket_id", t.ID, "error", err)
			continue
		}
		if policy.Overdue(t.CreatedAt, now) {
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}

func (s *TicketService) mutate(ctx context.Context, ticketID string, mutate func(*ticket.Ticket, time.Time) error) (ticket.Ticket, error) {
	t, err := s.TicketRepository.GetByID(ctx, ticketID)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket: %w", err)
	}

	if err := mutate(&t, s.now()); err != nil {
		return ticket.Ticket{}, err
	}

	if err := s.TicketRepository.Update(ctx, t); err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to update ticket: %w", err)
	}
	return t, nil
}
