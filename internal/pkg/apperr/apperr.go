package apperr

import "errors"

// Sentinel error kinds shared by every domain package. Domain packages wrap
// these with their own sentinels so call sites can match either the specific
// error or the kind:
//
//	var ErrAlreadyProcessed = fmt.Errorf("leave request already processed: %w", apperr.ErrInvalidTransition)
//
// The HTTP layer maps kinds to status codes in one place.
var (
	// ErrInvalidTransition marks an illegal lifecycle transition. The entity
	// is left unchanged; the caller decides whether that is an error worth
	// surfacing or a benign no-op.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrValidationFailed marks a rejected input. The wrapping error carries
	// the human-readable violation list.
	ErrValidationFailed = errors.New("validation failed")

	// ErrDependencyUnavailable marks a failed call to a best-effort
	// collaborator (notifications, file storage). Never propagated past the
	// collaborator boundary.
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrNotFound = errors.New("not found")
)

// IsInvalidTransition reports whether err is an illegal-transition guard failure.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}
