package sinks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gradsignal/traintrack/internal/publisher"
	"github.com/gradsignal/traintrack/track"
)

// StreamEvent is the JSON payload published per scalar.
type StreamEvent struct {
	RunID    string    `json:"run_id"`
	Tag      string    `json:"tag"`
	Value    float64   `json:"value"`
	Step     int       `json:"step"`
	WallTime time.Time `json:"wall_time"`
}

// Stream publishes every scalar to a message stream for downstream
// dashboards. Each LogScalar call blocks until the broker acknowledges the
// message.
type Stream struct {
	pub   publisher.Publisher
	runID uuid.UUID
	now   func() time.Time
}

var _ track.Logger = (*Stream)(nil)

// NewStream wires a publisher to the sink interface.
func NewStream(pub publisher.Publisher, runID uuid.UUID) (*Stream, error) {
	if pub == nil {
		return nil, fmt.Errorf("publisher is required")
	}
	return &Stream{pub: pub, runID: runID, now: time.Now}, nil
}

// LogScalar publishes one event.
func (s *Stream) LogScalar(ctx context.Context, tag string, value float64, step int) error {
	_, err := s.pub.Publish(ctx, StreamEvent{
		RunID:    s.runID.String(),
		Tag:      tag,
		Value:    value,
		Step:     step,
		WallTime: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("publish scalar: %w", err)
	}
	return nil
}
