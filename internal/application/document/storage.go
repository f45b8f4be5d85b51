package document

import (
	"context"
	"time"
)

// ObjectStorage abstracts the object store that holds uploaded files.
// Implementations live in infrastructure/storage.
type ObjectStorage interface {
	// Upload writes an object under the given storage key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	// Download reads the object stored under the given key
	Download(ctx context.Context, storageKey string) ([]byte, error)
	// GenerateDownloadURL returns a time-limited URL for fetching the object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	// DeleteObject removes the object. Deleting a missing object is not an error.
	DeleteObject(ctx context.Context, storageKey string) error
	// ObjectExists reports whether an object is stored under the given key
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
