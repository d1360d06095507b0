// Package directory resolves polymorphic party references and lifecycle
// notification recipients over the user and client repositories.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/client"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/employee"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/user"
)

type DirectoryService struct {
	user.UserRepository
	client.ClientRepository
	employee.EmployeeRepository
}

func NewDirectoryService(
	userRepository user.UserRepository,
	clientRepository client.ClientRepository,
	employeeRepository employee.EmployeeRepository,
) *DirectoryService {
	return &DirectoryService{
		UserRepository:     userRepository,
		ClientRepository:   clientRepository,
		EmployeeRepository: employeeRepository,
	}
}

// Resolve implements party.Resolver.
func (s *DirectoryService) Resolve(ctx context.Context, ref party.Ref) (party.Contact, error) {
	switch ref.Kind {
	case party.KindUser:
		u, err := s.UserRepository.GetByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return party.Contact{}, party.ErrUnknownParty
			}
			return party.Contact{}, fmt.Errorf("failed to get user: %w", err)
		}
		return party.Contact{Name: u.FullName, Email: u.Email}, nil
	case party.KindClient:
		c, err := s.ClientRepository.GetByID(ctx, ref.ID)
		if err != nil {
			if errors.Is(err, client.ErrClientNotFound) {
				return party.Contact{}, party.ErrUnknownParty
			}
			return party.Contact{}, fmt.Errorf("failed to get client: %w", err)
		}
		return party.Contact{Name: c.Name, Email: c.Email}, nil
	default:
		return party.Contact{}, party.ErrUnknownParty
	}
}

// SupportAgents implements notification.RecipientResolver: staff users field
// support tickets.
func (s *DirectoryService) SupportAgents(ctx context.Context) ([]string, error) {
	return s.userIDsByRole(ctx, user.RoleStaff)
}

// SalesAgents: quotation outcomes go to admins in this model.
func (s *DirectoryService) SalesAgents(ctx context.Context) ([]string, error) {
	return s.userIDsByRole(ctx, user.RoleAdmin)
}

// DepartmentHeadcount is the per-department employee rollup.
func (s *DirectoryService) DepartmentHeadcount(ctx context.Context) (map[string]int, error) {
	counts, err := s.EmployeeRepository.CountByDepartment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees by department: %w", err)
	}
	return counts, nil
}

func (s *DirectoryService) userIDsByRole(ctx context.Context, role user.Role) ([]string, error) {
	users, err := s.UserRepository.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		if u.IsActive {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}
