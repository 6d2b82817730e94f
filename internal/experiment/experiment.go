// Package experiment declares the recorder interface behind the experiment
// sink: a handle onto an experiment database that stores one row per emitted
// scalar, keyed by run ID. Backends: Postgres for real runs, memory for tests
// and local development.
package experiment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scalar is one recorded telemetry value.
type Scalar struct {
	// RunID identifies the training run the value belongs to.
	RunID uuid.UUID
	// Tag is the fully prefixed scalar name (e.g. "train.avg_loss").
	Tag string
	// Value is the recorded scalar.
	Value float64
	// Step is the update or epoch counter the value was stamped with.
	Step int
	// RecordedAt is the UTC time the recorder received the value.
	RecordedAt time.Time
}

// Recorder persists scalar telemetry for a training run.
type Recorder interface {
	// RecordScalar stores one scalar row.
	RecordScalar(ctx context.Context, s Scalar) error
	// Close releases the underlying resources.
	Close()
}

// MemoryRecorder keeps scalars in a slice. Safe for concurrent use.
type MemoryRecorder struct {
	mu      sync.Mutex
	scalars []Scalar
}

// NewMemoryRecorder returns an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// RecordScalar appends the scalar to the in-memory log.
func (r *MemoryRecorder) RecordScalar(_ context.Context, s Scalar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scalars = append(r.scalars, s)
	return nil
}

// Scalars returns a copy of everything recorded so far.
func (r *MemoryRecorder) Scalars() []Scalar {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Scalar(nil), r.scalars...)
}

// Close implements Recorder; it performs no action.
func (r *MemoryRecorder) Close() {}
