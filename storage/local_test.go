package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalClientUploadDeleteExists(t *testing.T) {
	client, err := NewLocalClient(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)
	assert.Equal(t, "local", client.ProviderName())

	ctx := context.Background()

	url, err := client.Upload(ctx, "resources/abc.pdf", []byte("content"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/resources/abc.pdf", url)

	exists, err := client.Exists(ctx, "resources/abc.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, client.Delete(ctx, "resources/abc.pdf"))

	exists, err = client.Exists(ctx, "resources/abc.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalClientDeleteMissingFile(t *testing.T) {
	client, err := NewLocalClient(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	// Deleting an object that is already gone is not an error.
	assert.NoError(t, client.Delete(context.Background(), "resources/never-existed.txt"))
}

func TestLocalClientHonorsCancelledContext(t *testing.T) {
	dir := t.TempDir()
	client, err := NewLocalClient(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Upload(ctx, "resources/late.txt", []byte("data"))
	assert.Error(t, err)

	var storageErr *Error
	assert.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "local", storageErr.Provider)

	_, statErr := os.Stat(filepath.Join(dir, "resources/late.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalClientHealthCheck(t *testing.T) {
	client, err := NewLocalClient(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestNewClientFactory(t *testing.T) {
	cfg := &Config{
		Provider:     "local",
		LocalPath:    t.TempDir(),
		LocalBaseURL: "http://localhost:8080/uploads",
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, "local", client.ProviderName())

	_, err = NewClient(&Config{Provider: "ftp"})
	assert.Error(t, err)
}
