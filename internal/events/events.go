// Package events carries post-mutation domain events. Lifecycle services
// publish after the primary write succeeds; handlers (notification hooks,
// counter maintenance) run out of band so guard contracts stay pure.
package events

import "github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"

type Event interface {
	Name() string
}

type LeaveRequestApproved struct {
	RequestID  string
	EmployeeID string
	ApproverID string
	Days       float64
}

func (LeaveRequestApproved) Name() string { return "leave_request.approved" }

type LeaveRequestRejected struct {
	RequestID  string
	EmployeeID string
	ApproverID string
	Reason     string
}

func (LeaveRequestRejected) Name() string { return "leave_request.rejected" }

type TicketCreated struct {
	TicketID  string
	Number    string
	Requester party.Ref
	Priority  string
	Subject   string
}

func (TicketCreated) Name() string { return "ticket.created" }

type TicketCommentAdded struct {
	TicketID     string
	CommentID    string
	Author       party.Ref
	Internal     bool
	AutoReopened bool
}

func (TicketCommentAdded) Name() string { return "ticket.comment_added" }

type TicketReopened struct {
	TicketID string
	Reason   string
}

func (TicketReopened) Name() string { return "ticket.reopened" }

type QuotationAccepted struct {
	QuotationID string
	Number      string
	Client      party.Ref
	TotalAmount string
}

func (QuotationAccepted) Name() string { return "quotation.accepted" }

type EnrollmentDropped struct {
	EnrollmentID string
	TrainingID   string
	EmployeeID   string
}

func (EnrollmentDropped) Name() string { return "training.enrollment_dropped" }

type EnrollmentCompleted struct {
	EnrollmentID      string
	TrainingID        string
	EmployeeID        string
	Passed            bool
	CertificateNumber *string
}

func (EnrollmentCompleted) Name() string { return "training.enrollment_completed" }
