package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
)

// Employee entity. Seq is a per-tenant serial used in certificate numbers.
type Employee struct {
	ID           string
	Seq          int
	UserID       *string
	FullName     string
	Email        string
	DepartmentID *string
	Position     *string

	HireDate time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HireYear returns the hire year, or false when the hire date is missing.
// Balance calculations refuse to run without it.
func (e Employee) HireYear() (int, bool) {
	if e.HireDate.IsZero() {
		return 0, false
	}
	return e.HireDate.Year(), true
}

var (
	ErrEmployeeNotFound = fmt.Errorf("employee not found: %w", apperr.ErrNotFound)
	ErrHireDateMissing  = fmt.Errorf("employee hire date is missing: %w", apperr.ErrValidationFailed)
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)

	// CountByDepartment backs the department headcount report.
	CountByDepartment(ctx context.Context) (map[string]int, error)
}
