package notification

import (
	"context"
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/notification"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/events"
)

// Hooks subscribes notification fan-out to lifecycle events. Delivery is
// best effort through the queued service; a failed lookup is the only error
// surfaced, and the dispatcher just logs it.
type Hooks struct {
	notifier  notification.Service
	resolver  notification.RecipientResolver
	employees employee.EmployeeRepository
}

func NewHooks(
	notifier notification.Service,
	resolver notification.RecipientResolver,
	employees employee.EmployeeRepository,
) *Hooks {
	return &Hooks{
		notifier:  notifier,
		resolver:  resolver,
		employees: employees,
	}
}

func (h *Hooks) Register(dispatcher *events.Dispatcher) {
	dispatcher.Subscribe(events.LeaveRequestApproved{}.Name(), h.onLeaveApproved)
	dispatcher.Subscribe(events.LeaveRequestRejected{}.Name(), h.onLeaveRejected)
	dispatcher.Subscribe(events.TicketCreated{}.Name(), h.onTicketCreated)
	dispatcher.Subscribe(events.TicketCommentAdded{}.Name(), h.onTicketCommentAdded)
	dispatcher.Subscribe(events.TicketReopened{}.Name(), h.onTicketReopened)
	dispatcher.Subscribe(events.QuotationAccepted{}.Name(), h.onQuotationAccepted)
	dispatcher.Subscribe(events.EnrollmentCompleted{}.Name(), h.onEnrollmentCompleted)
}

func (h *Hooks) notifyEmployee(ctx context.Context, employeeID, kind, title, message string, data map[string]interface{}) error {
	emp, err := h.employees.GetByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to get employee for notification: %w", err)
	}
	if emp.UserID == nil {
		return nil
	}

	h.notifier.Notify(notification.CreateNotificationRequest{
		RecipientID: *emp.UserID,
		Type:        kind,
		Title:       title,
		Message:     message,
		Data:        data,
	})
	return nil
}

func (h *Hooks) onLeaveApproved(ctx context.Context, e events.Event) error {
	approved := e.(events.LeaveRequestApproved)
	return h.notifyEmployee(ctx, approved.EmployeeID, "leave_request_approved",
		"Leave request approved",
		fmt.Sprintf("Your leave request for %.1f day(s) has been approved.", approved.Days),
		map[string]interface{}{"request_id": approved.RequestID})
}

func (h *Hooks) onLeaveRejected(ctx context.Context, e events.Event) error {
	rejected := e.(events.LeaveRequestRejected)
	return h.notifyEmployee(ctx, rejected.EmployeeID, "leave_request_rejected",
		"Leave request rejected",
		fmt.Sprintf("Your leave request was rejected: %s", rejected.Reason),
		map[string]interface{}{"request_id": rejected.RequestID})
}

func (h *Hooks) onTicketCreated(ctx context.Context, e events.Event) error {
	created := e.(events.TicketCreated)
	agents, err := h.resolver.SupportAgents(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve support agents: %w", err)
	}
	for _, userID := range agents {
		h.notifier.Notify(notification.CreateNotificationRequest{
			RecipientID: userID,
			Type:        "ticket_created",
			Title:       fmt.Sprintf("New ticket %s", created.Number),
			Message:     created.Subject,
			Data:        map[string]interface{}{"ticket_id": created.TicketID, "priority": created.Priority},
		})
	}
	return nil
}

// onTicketCommentAdded fans a customer-visible comment out to the support
// agents, minus the comment's author. Internal notes stay silent.
func (h *Hooks) onTicketCommentAdded(ctx context.Context, e events.Event) error {
	added := e.(events.TicketCommentAdded)
	if added.Internal {
		return nil
	}

	agents, err := h.resolver.SupportAgents(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve support agents: %w", err)
	}

	title := "New comment on ticket"
	if added.AutoReopened {
		title = "Ticket reopened by a new comment"
	}
	for _, userID := range agents {
		if added.Author.Kind == party.KindUser && added.Author.ID == userID {
			continue
		}
		h.notifier.Notify(notification.CreateNotificationRequest{
			RecipientID: userID,
			Type:        "ticket_comment_added",
			Title:       title,
			Message:     "A new comment was added to a ticket you are watching.",
			Data:        map[string]interface{}{"ticket_id": added.TicketID, "comment_id": added.CommentID},
		})
	}
	return nil
}

func (h *Hooks) onTicketReopened(ctx context.Context, e events.Event) error {
	reopened := e.(events.TicketReopened)
	agents, err := h.resolver.SupportAgents(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve support agents: %w", err)
	}
	for _, userID := range agents {
		h.notifier.Notify(notification.CreateNotificationRequest{
			RecipientID: userID,
			Type:        "ticket_reopened",
			Title:       "Ticket reopened",
			Message:     reopened.Reason,
			Data:        map[string]interface{}{"ticket_id": reopened.TicketID},
		})
	}
	return nil
}

func (h *Hooks) onQuotationAccepted(ctx context.Context, e events.Event) error {
	accepted := e.(events.QuotationAccepted)
	agents, err := h.resolver.SalesAgents(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve sales agents: %w", err)
	}
	for _, userID := range agents {
		h.notifier.Notify(notification.CreateNotificationRequest{
			RecipientID: userID,
			Type:        "quotation_accepted",
			Title:       fmt.Sprintf("Quotation %s accepted", accepted.Number),
			Message:     fmt.Sprintf("Total amount %s.", accepted.TotalAmount),
			Data:        map[string]interface{}{"quotation_id": accepted.QuotationID},
		})
	}
	return nil
}

func (h *Hooks) onEnrollmentCompleted(ctx context.Context, e events.Event) error {
	completed := e.(events.EnrollmentCompleted)
	message := "You completed the training."
	if completed.CertificateNumber != nil {
		message = fmt.Sprintf("You completed the training. Certificate %s issued.", *completed.CertificateNumber)
	}
	return h.notifyEmployee(ctx, completed.EmployeeID, "training_completed",
		"Training completed", message,
		map[string]interface{}{"enrollment_id": completed.EnrollmentID})
}
