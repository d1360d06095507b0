package client

import (
	"context"
	"fmt"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
)

// Client is an external party: a CRM contact that can raise tickets and
// receive quotations without holding a user account.
type Client struct {
	ID      string
	Name    string
	Email   string
	Phone   *string
	Company *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

var ErrClientNotFound = fmt.Errorf("client not found: %w", apperr.ErrNotFound)

type ClientRepository interface {
	GetByID(ctx context.Context, id string) (Client, error)
	List(ctx context.Context) ([]Client, error)
	Create(ctx context.Context, c Client) (Client, error)
}
