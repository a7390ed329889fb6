package storage

import (
	"context"
	"fmt"
)

// Client is the object-storage collaborator. Upload stores a binary object
// under a key and returns its public URL; the key doubles as the object's
// public identifier for later deletion.
type Client interface {
	Upload(ctx context.Context, key string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	HealthCheck(ctx context.Context) error
	ProviderName() string
}

// Error wraps a provider failure with its operation and key.
type Error struct {
	Provider string
	Op       string
	Key      string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s %q: %v", e.Provider, e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(provider, op, key string, err error) *Error {
	return &Error{Provider: provider, Op: op, Key: key, Err: err}
}
