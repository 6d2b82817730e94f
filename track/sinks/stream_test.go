package sinks

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradsignal/traintrack/internal/experiment"
	"github.com/gradsignal/traintrack/internal/publisher/memory"
)

func TestStreamPublishesEvents(t *testing.T) {
	t.Parallel()

	pub := memory.New()
	runID := uuid.New()
	sink, err := NewStream(pub, runID)
	require.NoError(t, err)

	require.NoError(t, sink.LogScalar(context.Background(), "train.loss", 0.6, 3))

	msgs := pub.Messages()
	require.Len(t, msgs, 1)

	var evt StreamEvent
	require.NoError(t, json.Unmarshal(msgs[0], &evt))
	assert.Equal(t, runID.String(), evt.RunID)
	assert.Equal(t, "train.loss", evt.Tag)
	assert.InDelta(t, 0.6, evt.Value, 1e-12)
	assert.Equal(t, 3, evt.Step)
}

func TestExperimentRecordsScalars(t *testing.T) {
	t.Parallel()

	rec := experiment.NewMemoryRecorder()
	runID := uuid.New()
	sink, err := NewExperiment(rec, runID)
	require.NoError(t, err)

	require.NoError(t, sink.LogScalar(context.Background(), "valid.avg_loss", 0.4, 2))

	scalars := rec.Scalars()
	require.Len(t, scalars, 1)
	assert.Equal(t, runID, scalars[0].RunID)
	assert.Equal(t, "valid.avg_loss", scalars[0].Tag)
	assert.InDelta(t, 0.4, scalars[0].Value, 1e-12)
	assert.Equal(t, 2, scalars[0].Step)
	assert.False(t, scalars[0].RecordedAt.IsZero())
}

func TestStreamRequiresPublisher(t *testing.T) {
	t.Parallel()

	_, err := NewStream(nil, uuid.New())
	assert.Error(t, err)
}
