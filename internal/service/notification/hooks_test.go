package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/notification"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/events"
)

type recordingNotifier struct {
	requests []notification.CreateNotificationRequest
}

func (n *recordingNotifier) Notify(req notification.CreateNotificationRequest) {
	n.requests = append(n.requests, req)
}

func (n *recordingNotifier) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error) {
	return nil, nil
}
func (n *recordingNotifier) MarkRead(ctx context.Context, id, recipientID string) error { return nil }
func (n *recordingNotifier) MarkAllRead(ctx context.Context, recipientID string) error  { return nil }
func (n *recordingNotifier) Stop()                                                      {}

type fakeResolver struct {
	support []string
	sales   []string
}

func (f fakeResolver) SupportAgents(ctx context.Context) ([]string, error) { return f.support, nil }
func (f fakeResolver) SalesAgents(ctx context.Context) ([]string, error)   { return f.sales, nil }

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) { return nil, nil }

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) CountByDepartment(ctx context.Context) (map[string]int, error) {
	return nil, nil
}

func newHooksFixture(support []string) (*recordingNotifier, *events.Dispatcher) {
	notifier := &recordingNotifier{}
	dispatcher := events.NewDispatcher()

	userID := "usr-9"
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: &userID},
	}}

	NewHooks(notifier, fakeResolver{support: support}, employees).Register(dispatcher)
	return notifier, dispatcher
}

func TestHooksCommentAddedNotifiesSupportAgents(t *testing.T) {
	t.Parallel()

	notifier, dispatcher := newHooksFixture([]string{"usr-1", "usr-2"})

	dispatcher.Publish(context.Background(), events.TicketCommentAdded{
		TicketID:  "tck-1",
		CommentID: "cmt-1",
		Author:    party.ClientRef("cli-1"),
	})

	assert.Len(t, notifier.requests, 2)
	for _, req := range notifier.requests {
		assert.Equal(t, "ticket_comment_added", req.Type)
		assert.Equal(t, "tck-1", req.Data["ticket_id"])
	}
}

func TestHooksCommentAddedSkipsAuthor(t *testing.T) {
	t.Parallel()

	notifier, dispatcher := newHooksFixture([]string{"usr-1", "usr-2"})

	dispatcher.Publish(context.Background(), events.TicketCommentAdded{
		TicketID:  "tck-1",
		CommentID: "cmt-2",
		Author:    party.UserRef("usr-1"),
	})

	assert.Len(t, notifier.requests, 1)
	assert.Equal(t, "usr-2", notifier.requests[0].RecipientID)
}

func TestHooksInternalCommentStaysSilent(t *testing.T) {
	t.Parallel()

	notifier, dispatcher := newHooksFixture([]string{"usr-1"})

	dispatcher.Publish(context.Background(), events.TicketCommentAdded{
		TicketID:  "tck-1",
		CommentID: "cmt-3",
		Author:    party.UserRef("usr-7"),
		Internal:  true,
	})

	assert.Empty(t, notifier.requests)
}

func TestHooksCommentAddedAutoReopenTitle(t *testing.T) {
	t.Parallel()

	notifier, dispatcher := newHooksFixture([]string{"usr-1"})

	dispatcher.Publish(context.Background(), events.TicketCommentAdded{
		TicketID:     "tck-1",
		CommentID:    "cmt-4",
		Author:       party.ClientRef("cli-1"),
		AutoReopened: true,
	})

	assert.Len(t, notifier.requests, 1)
	assert.Equal(t, "Ticket reopened by a new comment", notifier.requests[0].Title)
}

func TestHooksLeaveApprovedNotifiesLinkedUser(t *testing.T) {
	t.Parallel()

	notifier, dispatcher := newHooksFixture(nil)

	dispatcher.Publish(context.Background(), events.LeaveRequestApproved{
		RequestID:  "lvr-1",
		EmployeeID: "emp-1",
		Days:       2,
	})

	assert.Len(t, notifier.requests, 1)
	assert.Equal(t, "usr-9", notifier.requests[0].RecipientID)
	assert.Equal(t, "leave_request_approved", notifier.requests[0].Type)
}
