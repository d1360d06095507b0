package notification

import (
	"context"
	"time"
)

type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        string
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool

	CreatedAt time.Time
}

type CreateNotificationRequest struct {
	RecipientID string
	SenderID    *string
	Type        string
	Title       string
	Message     string
	Data        map[string]interface{}
}

type Repository interface {
	CreateBatch(ctx context.Context, notifications []*Notification) error
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
}

// Service is the fire-and-forget notification collaborator. Notify never
// blocks and never fails the caller; delivery problems are logged.
type Service interface {
	Notify(req CreateNotificationRequest)
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	Stop()
}

// RecipientResolver names the users who should hear about a lifecycle event,
// decoupling the lifecycle layer from any role/permission model.
type RecipientResolver interface {
	SupportAgents(ctx context.Context) ([]string, error)
	SalesAgents(ctx context.Context) ([]string, error)
}
