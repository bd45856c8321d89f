// Package uploads accepts admin image uploads and hands them to the
// configured image host.
package uploads

import (
	"context"
	"errors"
	"fmt"

	"github.com/udvasito/storefront/internal/app/metrics"
	"github.com/udvasito/storefront/internal/imagehost"
	"github.com/udvasito/storefront/internal/logging"
)

// ErrEmptyFile is returned when the uploaded part carries no bytes.
var ErrEmptyFile = errors.New("uploaded file is empty")

// Service wraps an image host uploader with validation and metrics.
type Service struct {
	uploader imagehost.Uploader
	log      *logging.Logger
}

// New creates an uploads service.
func New(uploader imagehost.Uploader, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("uploads")
	}
	return &Service{uploader: uploader, log: log}
}

// Upload stores the image and returns its public URL.
func (s *Service) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	url, err := s.uploader.Upload(ctx, data, contentType)
	if err != nil {
		metrics.RecordUpload(false)
		s.log.WithContext(ctx).WithError(err).Error("image upload failed")
		return "", fmt.Errorf("upload image: %w", err)
	}

	metrics.RecordUpload(true)
	s.log.WithContext(ctx).WithFields(map[string]any{"url": url, "bytes": len(data)}).Info("image uploaded")
	return url, nil
}
