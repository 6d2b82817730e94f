package sinks

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// TestPrometheusSinkRecordsScalars ensures the collectors reflect the latest
// emission per tag.
func TestPrometheusSinkRecordsScalars(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	sink, err := NewPrometheus(reg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.LogScalar(ctx, "train.loss", 0.9, 2))
	require.NoError(t, sink.LogScalar(ctx, "train.loss", 0.7, 4))
	require.NoError(t, sink.LogScalar(ctx, "valid.avg_loss", 0.8, 1))

	require.InDelta(t, 0.7, testutil.ToFloat64(sink.values.WithLabelValues("train.loss")), 1e-9)
	require.InDelta(t, 4.0, testutil.ToFloat64(sink.steps.WithLabelValues("train.loss")), 1e-9)
	require.InDelta(t, 2.0, testutil.ToFloat64(sink.emissions.WithLabelValues("train.loss")), 1e-9)
	require.InDelta(t, 0.8, testutil.ToFloat64(sink.values.WithLabelValues("valid.avg_loss")), 1e-9)
}

// TestPrometheusSinkDuplicateRegistration verifies a second sink on the same
// registry fails rather than silently double-counting.
func TestPrometheusSinkDuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewPrometheus(reg)
	require.NoError(t, err)

	_, err = NewPrometheus(reg)
	require.Error(t, err)
}
