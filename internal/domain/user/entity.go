package user

import (
	"context"
	"fmt"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	ErrUserNotFound = fmt.Errorf("user not found: %w", apperr.ErrNotFound)
	ErrEmailExists  = fmt.Errorf("email already registered: %w", apperr.ErrValidationFailed)
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Create(ctx context.Context, u User) (User, error)
}
