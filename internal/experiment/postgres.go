package experiment

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresConfig controls the Postgres connection used for scalar rows.
type PostgresConfig struct {
	DSN   string
	Table string
}

type execCloser interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

// PostgresRecorder writes one row per scalar into Postgres. Expected schema:
//
//	CREATE TABLE scalars (
//	    run_id      UUID NOT NULL,
//	    tag         TEXT NOT NULL,
//	    value       DOUBLE PRECISION NOT NULL,
//	    step        INTEGER NOT NULL,
//	    recorded_at TIMESTAMPTZ NOT NULL
//	);
type PostgresRecorder struct {
	pool  execCloser
	table string
}

// NewPostgresRecorder opens a connection pool against cfg.DSN.
func NewPostgresRecorder(ctx context.Context, cfg PostgresConfig) (*PostgresRecorder, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	return NewPostgresRecorderWithPool(pool, cfg.Table)
}

// NewPostgresRecorderWithPool wraps an existing pool; tests inject a mock
// pool here.
func NewPostgresRecorderWithPool(pool execCloser, table string) (*PostgresRecorder, error) {
	if table == "" {
		table = "scalars"
	}
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PostgresRecorder{pool: pool, table: table}, nil
}

// RecordScalar inserts one scalar row.
func (r *PostgresRecorder) RecordScalar(ctx context.Context, s Scalar) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (run_id, tag, value, step, recorded_at) VALUES ($1, $2, $3, $4, $5)`,
		r.table,
	)
	if _, err := r.pool.Exec(ctx, query, s.RunID, s.Tag, s.Value, s.Step, s.RecordedAt); err != nil {
		return fmt.Errorf("insert scalar: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (r *PostgresRecorder) Close() {
	r.pool.Close()
}
