package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradsignal/traintrack/internal/storage/memory"
)

func TestSaveAndObject(t *testing.T) {
	t.Parallel()

	store := memory.New()
	require.NoError(t, store.Save(context.Background(), "run/events.jsonl", []byte("a")))
	require.NoError(t, store.Save(context.Background(), "run/summary.jsonl", []byte("b")))

	data, ok := store.Object("run/events.jsonl")
	require.True(t, ok)
	assert.Equal(t, []byte("a"), data)

	_, ok = store.Object("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"run/events.jsonl", "run/summary.jsonl"}, store.Names())
}

func TestSaveRejectsEmptyName(t *testing.T) {
	t.Parallel()

	store := memory.New()
	assert.Error(t, store.Save(context.Background(), "", []byte("x")))
}
