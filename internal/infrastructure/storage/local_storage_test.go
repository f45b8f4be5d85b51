package storage

import (
	"context"
	"testing"
	"time"

	infraconfig "github.com/amani/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalObjectStorage {
	cfg := &infraconfig.StorageConfig{
		Provider: "stub",
		StubDir:  t.TempDir(),
	}
	store, err := NewLocalObjectStorage(cfg)
	require.NoError(t, err)
	return store
}

func TestLocalObjectStorage_UploadDownload(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	err := store.Upload(ctx, "receipts/2026/01/r1.pdf", []byte("pdf-bytes"), "application/pdf")
	require.NoError(t, err)

	data, err := store.Download(ctx, "receipts/2026/01/r1.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), data)

	exists, err := store.ObjectExists(ctx, "receipts/2026/01/r1.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalObjectStorage_Delete(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "docs/d1.txt", []byte("x"), "text/plain"))
	require.NoError(t, store.DeleteObject(ctx, "docs/d1.txt"))

	exists, err := store.ObjectExists(ctx, "docs/d1.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting again is not an error
	assert.NoError(t, store.DeleteObject(ctx, "docs/d1.txt"))
}

func TestLocalObjectStorage_RejectsEscapingKeys(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	err := store.Upload(ctx, "../outside.txt", []byte("x"), "text/plain")
	assert.Error(t, err)

	_, err = store.Download(ctx, "/etc/passwd")
	assert.Error(t, err)

	_, err = store.Download(ctx, "")
	assert.Error(t, err)
}

func TestLocalObjectStorage_GenerateDownloadURL(t *testing.T) {
	store := newTestLocalStorage(t)
	ctx := context.Background()

	url, expiresAt, err := store.GenerateDownloadURL(ctx, "docs/d2.txt", 10*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "docs/d2.txt")
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)
}

func TestNewObjectStorage(t *testing.T) {
	t.Run("stub provider", func(t *testing.T) {
		store, err := NewObjectStorage(&infraconfig.StorageConfig{Provider: "stub", StubDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &LocalObjectStorage{}, store)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewObjectStorage(&infraconfig.StorageConfig{Provider: "ftp"})
		assert.Error(t, err)
	})

	t.Run("s3 provider requires credentials", func(t *testing.T) {
		_, err := NewObjectStorage(&infraconfig.StorageConfig{Provider: "s3", Bucket: "b"})
		assert.Error(t, err)
	})
}
