package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradsignal/traintrack/internal/publisher/memory"
)

func TestPublishRecordsMessages(t *testing.T) {
	t.Parallel()

	pub := memory.New()
	id, err := pub.Publish(context.Background(), map[string]any{"tag": "loss", "value": 0.5})
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	id, err = pub.Publish(context.Background(), map[string]any{"tag": "loss", "value": 0.4})
	require.NoError(t, err)
	assert.Equal(t, "2", id)

	msgs := pub.Messages()
	require.Len(t, msgs, 2)
	assert.JSONEq(t, `{"tag":"loss","value":0.5}`, string(msgs[0]))
}

func TestPublishRejectsUnmarshalablePayload(t *testing.T) {
	t.Parallel()

	pub := memory.New()
	_, err := pub.Publish(context.Background(), make(chan int))
	require.Error(t, err)
	assert.Empty(t, pub.Messages())
}
