package local_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradsignal/traintrack/internal/storage/local"
)

func TestNew(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		store, err := local.New(local.Config{BaseDir: t.TempDir()})
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("MissingBaseDir", func(t *testing.T) {
		_, err := local.New(local.Config{})
		assert.Error(t, err)
	})

	t.Run("CreatesMissingDirectory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "runs")
		_, err := local.New(local.Config{BaseDir: dir})
		require.NoError(t, err)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("BaseDirIsNotADirectory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
		_, err := local.New(local.Config{BaseDir: file})
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	store, err := local.New(local.Config{BaseDir: dir})
	require.NoError(t, err)

	t.Run("ValidSave", func(t *testing.T) {
		data := []byte(`{"tag":"loss","value":0.5,"step":1}` + "\n")
		require.NoError(t, store.Save(context.Background(), "run-1/events-000001.jsonl", data))

		// #nosec G304 -- test reads from the controlled temp directory.
		read, err := os.ReadFile(filepath.Join(dir, "run-1", "events-000001.jsonl"))
		require.NoError(t, err)
		assert.Equal(t, data, read)
	})

	t.Run("EmptyObjectName", func(t *testing.T) {
		assert.Error(t, store.Save(context.Background(), "", []byte("x")))
	})

	t.Run("PathTraversalRejected", func(t *testing.T) {
		assert.Error(t, store.Save(context.Background(), "../escape.jsonl", []byte("x")))
	})

	t.Run("OverwriteReplacesObject", func(t *testing.T) {
		name := "run-2/events-000001.jsonl"
		require.NoError(t, store.Save(context.Background(), name, []byte("first")))
		require.NoError(t, store.Save(context.Background(), name, []byte("second")))

		// #nosec G304 -- test reads from the controlled temp directory.
		read, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), read)
	})
}
