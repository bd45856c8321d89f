package imagehost

import (
	"testing"

	"github.com/udvasito/storefront/internal/config"
)

func TestNewGCSUploaderRequiresBucket(t *testing.T) {
	_, err := NewGCSUploader(nil, config.ImageHostConfig{})
	if err == nil {
		t.Fatal("expected error for empty bucket")
	}
}

func TestNewGCSUploaderNormalisesConfig(t *testing.T) {
	u, err := NewGCSUploader(nil, config.ImageHostConfig{
		Bucket:        " udvasito-media ",
		Folder:        "/uploads/",
		PublicBaseURL: "https://cdn.example.com/",
	})
	if err != nil {
		t.Fatalf("NewGCSUploader: %v", err)
	}
	if u.bucket != "udvasito-media" {
		t.Fatalf("bucket = %q", u.bucket)
	}
	if u.folder != "uploads" {
		t.Fatalf("folder = %q", u.folder)
	}
	if u.publicBaseURL != "https://cdn.example.com" {
		t.Fatalf("base url = %q", u.publicBaseURL)
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":    ".jpg",
		"IMAGE/PNG":     ".png",
		"image/webp":    ".webp",
		"image/svg+xml": ".svg",
		"application/x": "",
	}
	for contentType, want := range cases {
		if got := extensionFor(contentType); got != want {
			t.Fatalf("extensionFor(%q) = %q, want %q", contentType, got, want)
		}
	}
}
