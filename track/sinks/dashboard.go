package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gradsignal/traintrack/internal/storage"
	"github.com/gradsignal/traintrack/internal/storage/local"
	"github.com/gradsignal/traintrack/track"
)

// DefaultDir is the dashboard event directory used when none is configured.
const DefaultDir = "runs"

const defaultFlushEvery = 128

// ScalarEvent is one line of a dashboard event file.
type ScalarEvent struct {
	Tag      string    `json:"tag"`
	Value    float64   `json:"value"`
	Step     int       `json:"step"`
	WallTime time.Time `json:"wall_time"`
}

// Dashboard buffers scalar events and flushes them as JSON-lines objects
// through a blob storage provider, one object per flush under the run name.
// The writer resource (the provider) is opened at construction; Flush or
// Close must be called to drain the tail of the buffer.
type Dashboard struct {
	provider   storage.Provider
	run        string
	flushEvery int
	now        func() time.Time

	buf []ScalarEvent
	seq int
}

var _ track.Logger = (*Dashboard)(nil)

// NewDashboard builds a dashboard writer over an existing provider. An empty
// run name is replaced with a fresh UUID; flushEvery <= 0 selects the
// default.
func NewDashboard(provider storage.Provider, run string, flushEvery int) (*Dashboard, error) {
	if provider == nil {
		return nil, fmt.Errorf("storage provider is required")
	}
	if run == "" {
		run = uuid.NewString()
	}
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	return &Dashboard{
		provider:   provider,
		run:        run,
		flushEvery: flushEvery,
		now:        time.Now,
	}, nil
}

// NewDashboardDir builds a dashboard writer over a local filesystem provider
// rooted at dir (DefaultDir when empty). The directory is created at
// construction.
func NewDashboardDir(dir, run string) (*Dashboard, error) {
	if dir == "" {
		dir = DefaultDir
	}
	store, err := local.New(local.Config{BaseDir: dir})
	if err != nil {
		return nil, fmt.Errorf("open dashboard directory: %w", err)
	}
	return NewDashboard(store, run, 0)
}

// Run returns the run name events are scoped under.
func (s *Dashboard) Run() string { return s.run }

// LogScalar buffers one event and flushes when the buffer reaches the
// configured size.
func (s *Dashboard) LogScalar(ctx context.Context, tag string, value float64, step int) error {
	s.buf = append(s.buf, ScalarEvent{
		Tag:      tag,
		Value:    value,
		Step:     step,
		WallTime: s.now().UTC(),
	})
	if len(s.buf) >= s.flushEvery {
		return s.Flush(ctx)
	}
	return nil
}

// Flush writes the buffered events as one JSON-lines object and clears the
// buffer. A flush with an empty buffer is a no-op.
func (s *Dashboard) Flush(ctx context.Context) error {
	if len(s.buf) == 0 {
		return nil
	}
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	for _, evt := range s.buf {
		if err := enc.Encode(evt); err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
	}
	name := fmt.Sprintf("%s/events-%06d.jsonl", s.run, s.seq)
	if err := s.provider.Save(ctx, name, out.Bytes()); err != nil {
		return fmt.Errorf("save event file: %w", err)
	}
	s.seq++
	s.buf = s.buf[:0]
	return nil
}

// Close drains any buffered events.
func (s *Dashboard) Close(ctx context.Context) error {
	return s.Flush(ctx)
}
