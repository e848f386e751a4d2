package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore places and removes stored image files. Removal is best-effort
// by contract: callers log and continue when it fails, because metadata
// consistency takes priority over storage cleanliness.
type FileStore interface {
	// Save writes content to a newly generated unique filename and
	// returns (filename, full path)
	Save(originalName string, content io.Reader) (string, string, error)

	// Remove deletes a stored file by its full path
	Remove(path string) error
}

// LocalFileStore stores files in a single directory on local disk
type LocalFileStore struct {
	dir    string
	logger *slog.Logger
}

// NewLocalFileStore creates the upload directory if needed
func NewLocalFileStore(dir string, logger *slog.Logger) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalFileStore{dir: dir, logger: logger}, nil
}

// Save writes content under a uuid-based filename. The stored name is
// independent of the display name, so renames never touch the disk.
func (s *LocalFileStore) Save(originalName string, content io.Reader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	filename := uuid.New().String() + ext
	path := filepath.Join(s.dir, filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", "", fmt.Errorf("create stored file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("failed to remove partial file", "path", path, "error", rmErr)
		}
		return "", "", fmt.Errorf("write stored file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("close stored file: %w", err)
	}

	return filename, path, nil
}

// Remove deletes a stored file
func (s *LocalFileStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored file: %w", err)
	}
	return nil
}
