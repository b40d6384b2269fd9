package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	"github.com/denizsemerci/egeli-betty/internal/ports/outbound"
)

// LocalStorage implements FileStorage on the local filesystem. Files are
// written under the configured root and served at publicBaseURL/key.
type LocalStorage struct {
	root          string
	publicBaseURL string
	logger        *zap.Logger
}

// NewLocalStorage creates the local filesystem storage backend.
func NewLocalStorage(cfg *config.Config, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Storage.LocalPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStorage{
		root:          cfg.Storage.LocalPath,
		publicBaseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
		logger:        logger.Named("storage"),
	}, nil
}

// Upload writes the object under the storage root and returns its URL.
// The key may contain a path prefix; intermediate directories are created.
func (s *LocalStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	url := s.publicBaseURL + "/" + key
	s.logger.Debug("Stored local file", zap.String("path", path), zap.String("url", url))
	return url, nil
}

// Delete removes the object file. Missing files are not an error.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ outbound.FileStorage = (*LocalStorage)(nil)

// New selects the storage backend from configuration.
func New(cfg *config.Config, logger *zap.Logger) (outbound.FileStorage, error) {
	switch cfg.Storage.Provider {
	case "local":
		return NewLocalStorage(cfg, logger)
	default:
		return NewS3Storage(cfg, logger)
	}
}
