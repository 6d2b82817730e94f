package sinks

import (
	"context"

	"go.uber.org/zap"

	"github.com/gradsignal/traintrack/track"
)

// Log emits every scalar as a structured log line. It is useful during
// development or when a durable sink is unavailable.
type Log struct {
	logger *zap.Logger
}

var _ track.Logger = (*Log)(nil)

// NewLog wires a zap logger to the sink interface.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// LogScalar writes one info-level line with tag, value, and step fields.
func (s *Log) LogScalar(_ context.Context, tag string, value float64, step int) error {
	s.logger.Info("scalar",
		zap.String("tag", tag),
		zap.Float64("value", value),
		zap.Int("step", step),
	)
	return nil
}
