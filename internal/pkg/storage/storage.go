package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage is the attachment collaborator: a byte stream in, a stored
// path out. Failures here are mapped to apperr.ErrDependencyUnavailable at
// the service boundary.
type FileStorage interface {
	// Upload stores a file and returns the file path/key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a stored file.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file.
	Delete(ctx context.Context, path string) error

	// GetURL generates a public URL for the stored file.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks whether a file exists.
	Exists(ctx context.Context, path string) (bool, error)
}
