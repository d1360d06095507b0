package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/apperr"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/storage"
)

// FileService wraps the storage backend with path construction for ticket
// attachments and training certificates. Storage failures surface as
// dependency errors so handlers map them to 500, never 4xx.
type FileService struct {
	storage storage.FileStorage
}

func NewFileService(fileStorage storage.FileStorage) *FileService {
	return &FileService{storage: fileStorage}
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

func (s *FileService) UploadTicketAttachment(ctx context.Context, ticketID, filename, contentType string, file io.Reader) (string, error) {
	path := fmt.Sprintf("tickets/%s/%s_%s", ticketID, uuid.NewString()[:8], sanitizeFilename(filename))

	stored, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload ticket attachment: %w: %w", err, apperr.ErrDependencyUnavailable)
	}
	return stored, nil
}

func (s *FileService) StoreCertificate(ctx context.Context, enrollmentID string, pdf io.Reader) (string, error) {
	path := fmt.Sprintf("certificates/%s.pdf", enrollmentID)

	stored, err := s.storage.Upload(ctx, pdf, path, "application/pdf")
	if err != nil {
		return "", fmt.Errorf("failed to store certificate: %w: %w", err, apperr.ErrDependencyUnavailable)
	}
	return stored, nil
}

func (s *FileService) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, err := s.storage.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w: %w", err, apperr.ErrDependencyUnavailable)
	}
	return rc, nil
}

func (s *FileService) GetURL(ctx context.Context, path string) (string, error) {
	url, err := s.storage.GetURL(ctx, path, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file URL: %w: %w", err, apperr.ErrDependencyUnavailable)
	}
	return url, nil
}
