package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores objects in an S3-compatible bucket and builds their public URLs.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// LogoExtension returns the file extension for a supported logo content type.
func LogoExtension(contentType string) (string, bool) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := logoExtensions[mediaType]
	return ext, ok
}

// EventLogoKey is the object key of an event's logo. version keeps replaced logos from
// being served out of caches.
func EventLogoKey(eventID string, version int64, ext string) string {
	return fmt.Sprintf("events/%s/logo-%d%s", eventID, version, ext)
}
