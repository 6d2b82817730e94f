// Package storage defines the blob-storage interface behind the dashboard
// event writer. The abstraction keeps the telemetry code independent of where
// run artifacts land (local filesystem, Google Cloud Storage, or memory for
// tests).
package storage

import "context"

// Provider persists a blob of run telemetry under an object name.
type Provider interface {
	// Save writes data to the given object path/key, overwriting any
	// existing object.
	Save(ctx context.Context, objectName string, data []byte) error
}

// NoOpProvider discards every write. It is useful for dry runs where
// telemetry should be computed but not persisted.
type NoOpProvider struct{}

// Save for NoOpProvider does nothing and always returns nil.
func (NoOpProvider) Save(_ context.Context, _ string, _ []byte) error { return nil }
