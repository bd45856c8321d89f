// Package imagehost forwards uploaded cover images to a hosted object store
// and returns their public URLs. Files are not retained locally.
package imagehost

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/udvasito/storefront/internal/config"
)

// Uploader stores one image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// GCSUploader writes objects into a public bucket.
//
// Public access relies on the bucket granting allUsers the object-viewer
// role (uniform bucket-level access); no per-object ACLs are set here.
type GCSUploader struct {
	client        *storage.Client
	bucket        string
	folder        string
	publicBaseURL string
}

var _ Uploader = (*GCSUploader)(nil)

// NewGCSUploader builds an uploader from the image-host configuration.
func NewGCSUploader(client *storage.Client, cfg config.ImageHostConfig) (*GCSUploader, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("image bucket is empty")
	}
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	return &GCSUploader{
		client:        client,
		bucket:        bucket,
		folder:        strings.Trim(cfg.Folder, "/"),
		publicBaseURL: base,
	}, nil
}

// Upload writes the bytes under a generated object name and returns the
// public URL.
func (u *GCSUploader) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if u.client == nil {
		return "", fmt.Errorf("storage client is nil")
	}

	object := uuid.NewString() + extensionFor(contentType)
	if u.folder != "" {
		object = u.folder + "/" + object
	}

	w := u.client.Bucket(u.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.publicBaseURL, u.bucket, object), nil
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
