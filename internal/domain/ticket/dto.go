package ticket

import (
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/validator"
)

type CreateTicketRequest struct {
	RequesterKind string `json:"requester_kind"`
	RequesterID   string `json:"requester_id"`
	Category      string `json:"category"`
	Priority      string `json:"priority"`
	Subject       string `json:"subject"`
	Description   string `json:"description"`
}

func (r CreateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Ref().Valid() {
		errs = errs.Add("requester", "Requester must be a valid user or client reference")
	}
	if validator.IsEmpty(r.Subject) {
		errs = errs.Add("subject", "Subject is required")
	}
	switch TicketPriority(r.Priority) {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
	default:
		errs = errs.Add("priority", "Priority must be one of low, medium, high, urgent")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r CreateTicketRequest) Ref() party.Ref {
	return party.Ref{Kind: party.Kind(r.RequesterKind), ID: r.RequesterID}
}

type AddCommentRequest struct {
	Body     string `json:"body"`
	Internal bool   `json:"internal"`
}

func (r AddCommentRequest) Validate() error {
	if validator.IsEmpty(r.Body) {
		return validator.ValidationErrors{}.Add("body", "Comment body is required")
	}
	return nil
}

type CloseTicketRequest struct {
	SatisfactionRating   *int    `json:"satisfaction_rating,omitempty"`
	SatisfactionFeedback *string `json:"satisfaction_feedback,omitempty"`
}

func (r CloseTicketRequest) Validate() error {
	if r.SatisfactionRating != nil && (*r.SatisfactionRating < 1 || *r.SatisfactionRating > 5) {
		return validator.ValidationErrors{}.Add("satisfaction_rating", "Rating must be between 1 and 5")
	}
	return nil
}

type ReopenTicketRequest struct {
	Reason string `json:"reason"`
}

func (r ReopenTicketRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{}.Add("reason", "Reopen reason is required")
	}
	return nil
}
