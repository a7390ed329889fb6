package services

import (
	"context"
	"time"

	"resourcehub/storage"
)

// Package-level collaborators shared by all services, wired once at startup.
var (
	storageClient  storage.Client
	storageTimeout = 30 * time.Second
)

// Configure wires the object-storage collaborator and the bound applied to
// every external storage call.
func Configure(client storage.Client, timeout time.Duration) {
	storageClient = client
	if timeout > 0 {
		storageTimeout = timeout
	}
}

// storageContext returns a context bounded by the storage timeout. Every
// external storage call goes through this so a hung upload cannot block a
// request indefinitely.
func storageContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, storageTimeout)
}
