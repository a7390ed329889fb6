package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalClient implements Client on the local file system. Intended for
// development and tests.
type LocalClient struct {
	basePath string
	baseURL  string
}

// NewLocalClient creates a new local storage client
func NewLocalClient(basePath, baseURL string) (*LocalClient, error) {
	if basePath == "" {
		basePath = "./uploads"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %v", err)
	}

	return &LocalClient{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload saves data to the local file system and returns its serving URL.
func (lc *LocalClient) Upload(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", newError("local", "upload", key, err)
	}

	fullPath := filepath.Join(lc.basePath, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", newError("local", "upload", key, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", newError("local", "upload", key, err)
	}

	return lc.baseURL + "/" + key, nil
}

// Delete removes a file; a missing file counts as deleted.
func (lc *LocalClient) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return newError("local", "delete", key, err)
	}

	err := os.Remove(filepath.Join(lc.basePath, key))
	if err != nil && !os.IsNotExist(err) {
		return newError("local", "delete", key, err)
	}
	return nil
}

// Exists checks if a file exists
func (lc *LocalClient) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, newError("local", "exists", key, err)
	}

	_, err := os.Stat(filepath.Join(lc.basePath, key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, newError("local", "exists", key, err)
	}
	return true, nil
}

// HealthCheck verifies the base directory is writable.
func (lc *LocalClient) HealthCheck(ctx context.Context) error {
	info, err := os.Stat(lc.basePath)
	if err != nil {
		return newError("local", "health", lc.basePath, err)
	}
	if !info.IsDir() {
		return newError("local", "health", lc.basePath, fmt.Errorf("not a directory"))
	}
	return nil
}

func (lc *LocalClient) ProviderName() string {
	return "local"
}
