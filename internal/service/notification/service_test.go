package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/notification"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/sse"
)

type fakeNotificationRepo struct {
	mu     sync.Mutex
	stored []*notification.Notification
}

func (f *fakeNotificationRepo) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, notifications...)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipientID string) error {
	return nil
}
func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	return nil
}

func (f *fakeNotificationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stored)
}

func TestNotificationService_StopDrainsQueue(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	// A long flush interval so nothing is persisted until Stop runs.
	svc := NewNotificationService(repo, sse.NewHub(), Config{
		BatchSize:     3,
		FlushInterval: time.Hour,
		WorkerCount:   2,
		QueueSize:     100,
	})

	for i := 0; i < 10; i++ {
		svc.Notify(notification.CreateNotificationRequest{
			RecipientID: fmt.Sprintf("usr-%d", i),
			Type:        "test",
			Title:       "Queued",
			Message:     "Queued before shutdown",
		})
	}

	svc.Stop()

	assert.Equal(t, 10, repo.count())
}

func TestNotificationService_DropsWhenQueueFull(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{
		BatchSize:     100,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     2,
	})

	// Stop the worker first so the queue cannot be consumed, then overfill it.
	// Notify must never block the caller, even with nothing draining.
	svc.Stop()

	for i := 0; i < 5; i++ {
		svc.Notify(notification.CreateNotificationRequest{
			RecipientID: "usr-1",
			Type:        "test",
		})
	}

	assert.Equal(t, 0, repo.count())
}
