package auth

import (
	"fmt"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/validator"
)

var (
	ErrInvalidCredentials  = fmt.Errorf("invalid email or password: %w", apperr.ErrValidationFailed)
	ErrInvalidToken        = fmt.Errorf("invalid token: %w", apperr.ErrValidationFailed)
	ErrTokenExpired        = fmt.Errorf("token expired: %w", apperr.ErrValidationFailed)
	ErrRefreshTokenRevoked = fmt.Errorf("refresh token revoked: %w", apperr.ErrValidationFailed)
	ErrUserInactive        = fmt.Errorf("user account is inactive: %w", apperr.ErrValidationFailed)
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmail(r.Email) {
		errs = errs.Add("email", "Invalid email address")
	}
	if validator.IsEmpty(r.Password) {
		errs = errs.Add("password", "Password is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	UserID      string `json:"user_id"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
}
