package response

import (
	"errors"
	"net/http"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/auth"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Domain sentinels wrap one
// of the apperr kinds, so the mapping stays a four-way switch: conflicts for
// illegal transitions, 422 for policy violations, 404 for missing records,
// and 500 for everything else.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors are validation-kind but answer 401.
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrUserInactive):
		Unauthorized(w, err.Error())

	case errors.Is(err, apperr.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, apperr.ErrValidationFailed):
		ValidationError(w, map[string]string{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		NotFound(w, err.Error())
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
