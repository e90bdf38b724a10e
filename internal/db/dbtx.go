package db

import (
	"context"
	"database/sql"
)

// DBTX is what the cache repositories run their statements against: the
// database handle for single reads and writes, or the *sql.Tx handed out by
// a UnitOfWork when a name list is replaced.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
