package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appdocument "github.com/amani/backend/internal/application/document"
	infraconfig "github.com/amani/backend/internal/infrastructure/config"
)

// Ensure LocalObjectStorage implements ObjectStorage
var _ appdocument.ObjectStorage = (*LocalObjectStorage)(nil)

// LocalObjectStorage stores objects as files under a base directory.
// It backs the "stub" storage provider for development and tests where no
// S3-compatible service is available. Download URLs point at the API's own
// document download endpoint since there is nothing to presign.
type LocalObjectStorage struct {
	baseDir string
	baseURL string
}

// NewLocalObjectStorage creates a LocalObjectStorage rooted at cfg.StubDir
func NewLocalObjectStorage(cfg *infraconfig.StorageConfig) (*LocalObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	baseDir := cfg.StubDir
	if baseDir == "" {
		baseDir = "./data/storage"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalObjectStorage{
		baseDir: baseDir,
		baseURL: "/api/v1/documents/raw",
	}, nil
}

// resolve maps a storage key to a path under baseDir and rejects keys that
// would escape it.
func (s *LocalObjectStorage) resolve(storageKey string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}
	cleaned := filepath.Clean(storageKey)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key: %s", storageKey)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// Upload writes an object under the given storage key
func (s *LocalObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create storage subdirectory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// Download reads the object stored under the given key
func (s *LocalObjectStorage) Download(ctx context.Context, storageKey string) ([]byte, error) {
	path, err := s.resolve(storageKey)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

// GenerateDownloadURL returns a URL served by the API itself. The expiry is
// advisory, local files are not access controlled by the URL.
func (s *LocalObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if _, err := s.resolve(storageKey); err != nil {
		return "", time.Time{}, err
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.baseURL + "/" + storageKey, expiresAt, nil
}

// DeleteObject removes the object. Deleting a missing object is not an error.
func (s *LocalObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// ObjectExists reports whether an object is stored under the given key
func (s *LocalObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	path, err := s.resolve(storageKey)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewObjectStorage creates the object storage backend selected by cfg.Provider
func NewObjectStorage(cfg *infraconfig.StorageConfig, opts ...S3ObjectStorageOption) (appdocument.ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	switch cfg.Provider {
	case "s3":
		return NewS3ObjectStorage(cfg, opts...)
	case "stub", "":
		return NewLocalObjectStorage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}
