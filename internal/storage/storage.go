package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/lshigami/examguard/config"
	"github.com/rs/zerolog/log"
)

const (
	TestFilesDir   = "tests_files"
	ScreenshotsDir = "screenshots"
)

var ErrOutsideBase = errors.New("path escapes base directory")

// MediaStore keeps proctoring images. Keys are slash-separated and relative
// to the media root (for example "screenshots/screenshot_1_17000.png").
type MediaStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// NewMediaStore picks MinIO when it is configured and the local media
// directory otherwise.
func NewMediaStore(cfg *config.Config, local *LocalStore) (MediaStore, error) {
	if !cfg.Minio.Enabled() {
		log.Info().Str("mediaDir", cfg.Media.Dir).Msg("Screenshots stored on local filesystem")
		return local, nil
	}
	store, err := NewMinioStore(cfg.Minio)
	if err != nil {
		return nil, err
	}
	log.Info().Str("endpoint", cfg.Minio.Endpoint).Str("bucket", cfg.Minio.Bucket).Msg("Screenshots stored in MinIO")
	return store, nil
}

// SanitizeFilename drops every directory component a client may have put in
// an upload name, for both slash styles.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}

// ResolveInside joins raw onto base (or takes raw as-is when absolute) and
// returns the result relative to base. Anything resolving outside base is
// rejected with ErrOutsideBase.
func ResolveInside(base, raw string) (string, error) {
	base = filepath.Clean(base)
	candidate := filepath.FromSlash(raw)
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(base, candidate)
	}
	candidate = filepath.Clean(candidate)

	rel, err := filepath.Rel(base, candidate)
	if err != nil {
		return "", ErrOutsideBase
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideBase
	}
	return rel, nil
}
