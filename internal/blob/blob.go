// Package blob stores résumé files and generated artifacts by key.
package blob

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("blob not found")

// Store persists opaque byte objects under string keys.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Content types used for stored objects.
const (
	ContentTypeText   = "text/plain; charset=utf-8"
	ContentTypeBinary = "application/octet-stream"
)

// ValidateKey rejects keys that are empty, absolute, or escape their prefix.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("blob key is empty")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("invalid blob key %q", key)
	}
	clean := path.Clean(key)
	if clean != key || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}

// UploadKey is the key of an uploaded résumé file.
func UploadKey(id, ext string) string {
	return "uploads/" + id + strings.ToLower(ext)
}

// CustomizedKey is the key of a customized résumé text.
func CustomizedKey(id, fileName string) string {
	return "customized/" + id + "_" + fileName
}
