package party

import (
	"context"
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
)

// Kind discriminates the polymorphic requester/billable reference. A ticket
// or quotation can belong to a registered user or to an external client.
type Kind string

const (
	KindUser   Kind = "user"
	KindClient Kind = "client"
)

// Ref is a tagged reference to a user or client.
type Ref struct {
	Kind Kind
	ID   string
}

func UserRef(id string) Ref {
	return Ref{Kind: KindUser, ID: id}
}

func ClientRef(id string) Ref {
	return Ref{Kind: KindClient, ID: id}
}

func (r Ref) IsZero() bool {
	return r.ID == ""
}

func (r Ref) Valid() bool {
	return r.ID != "" && (r.Kind == KindUser || r.Kind == KindClient)
}

// Contact is the resolved display identity of a Ref.
type Contact struct {
	Name  string
	Email string
}

var ErrUnknownParty = fmt.Errorf("party not found: %w", apperr.ErrNotFound)

// Resolver looks up the contact identity behind a Ref. Implemented over the
// user and client repositories; lifecycle services never touch those
// repositories directly for requester display data.
type Resolver interface {
	Resolve(ctx context.Context, ref Ref) (Contact, error)
}
