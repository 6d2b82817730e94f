package experiment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestPostgresRecorderInsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rec, err := NewPostgresRecorderWithPool(mock, "scalars")
	require.NoError(t, err)

	runID := uuid.New()
	at := time.Unix(1700000000, 0).UTC()

	mock.ExpectExec("INSERT INTO scalars").
		WithArgs(runID, "train.avg_loss", 0.42, 3, at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = rec.RecordScalar(context.Background(), Scalar{
		RunID:      runID,
		Tag:        "train.avg_loss",
		Value:      0.42,
		Step:       3,
		RecordedAt: at,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecorderRejectsBadTableName(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewPostgresRecorderWithPool(mock, "scalars; DROP TABLE runs")
	require.Error(t, err)
}

func TestMemoryRecorderKeepsScalars(t *testing.T) {
	t.Parallel()

	rec := NewMemoryRecorder()
	runID := uuid.New()
	require.NoError(t, rec.RecordScalar(context.Background(), Scalar{
		RunID: runID,
		Tag:   "loss",
		Value: 1.5,
		Step:  1,
	}))

	scalars := rec.Scalars()
	require.Len(t, scalars, 1)
	require.Equal(t, runID, scalars[0].RunID)
	require.Equal(t, "loss", scalars[0].Tag)
}
