package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/lshigami/examguard/config"
	"github.com/spf13/afero"
)

// LocalStore is the project directory seen through afero. fs is rooted at
// the project root; baseDir is that root's real location, used to interpret
// absolute paths recorded in the database.
type LocalStore struct {
	fs       afero.Fs
	baseDir  string
	mediaDir string
}

func NewLocalStore(cfg *config.Config) (*LocalStore, error) {
	base, err := filepath.Abs(cfg.Media.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base dir: %w", err)
	}
	return NewLocalStoreFs(afero.NewBasePathFs(afero.NewOsFs(), base), base, cfg.Media.Dir), nil
}

func NewLocalStoreFs(fs afero.Fs, baseDir, mediaDir string) *LocalStore {
	if mediaDir == "" {
		mediaDir = "media"
	}
	return &LocalStore{fs: fs, baseDir: filepath.Clean(baseDir), mediaDir: path.Clean(filepath.ToSlash(mediaDir))}
}

// SaveTestFile writes an uploaded test under <media>/tests_files using only
// the base name of filename. It returns the project-relative path.
func (s *LocalStore) SaveTestFile(filename string, content io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("empty file name")
	}
	dir := path.Join(s.mediaDir, TestFilesDir)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	rel := path.Join(dir, name)
	f, err := s.fs.OpenFile(rel, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", rel, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", rel, err)
	}
	return rel, nil
}

// OpenProjectFile opens a file recorded relative to (or absolutely inside)
// the project root.
func (s *LocalStore) OpenProjectFile(raw string) (afero.File, os.FileInfo, error) {
	rel, err := ResolveInside(s.baseDir, raw)
	if err != nil {
		return nil, nil, err
	}
	rel = filepath.ToSlash(rel)
	info, err := s.fs.Stat(rel)
	if err != nil {
		return nil, nil, err
	}
	if info.IsDir() {
		return nil, nil, os.ErrNotExist
	}
	f, err := s.fs.Open(rel)
	if err != nil {
		return nil, nil, err
	}
	return f, info, nil
}

func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) error {
	rel, err := s.mediaKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(rel), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", path.Dir(rel), err)
	}
	if err := afero.WriteFile(s.fs, rel, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	rel, err := s.mediaKey(key)
	if err != nil {
		return nil, err
	}
	return s.fs.Open(rel)
}

func (s *LocalStore) mediaKey(key string) (string, error) {
	// Rooting the key first turns any ".." into a no-op.
	clean := path.Clean("/" + key)[1:]
	if clean == "" {
		return "", fmt.Errorf("empty media key")
	}
	return path.Join(s.mediaDir, clean), nil
}
