package sinks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gradsignal/traintrack/internal/experiment"
	"github.com/gradsignal/traintrack/track"
)

// Experiment forwards scalars to an externally supplied experiment recorder,
// stamping each one with the run ID and wall time.
type Experiment struct {
	rec   experiment.Recorder
	runID uuid.UUID
	now   func() time.Time
}

var _ track.Logger = (*Experiment)(nil)

// NewExperiment wires a recorder handle to the sink interface.
func NewExperiment(rec experiment.Recorder, runID uuid.UUID) (*Experiment, error) {
	if rec == nil {
		return nil, fmt.Errorf("experiment recorder is required")
	}
	return &Experiment{rec: rec, runID: runID, now: time.Now}, nil
}

// LogScalar records one scalar row for the run.
func (s *Experiment) LogScalar(ctx context.Context, tag string, value float64, step int) error {
	return s.rec.RecordScalar(ctx, experiment.Scalar{
		RunID:      s.runID,
		Tag:        tag,
		Value:      value,
		Step:       step,
		RecordedAt: s.now().UTC(),
	})
}
