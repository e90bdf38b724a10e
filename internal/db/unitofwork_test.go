package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/graphdeck/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

// listExists reports whether a name list row exists for category.
func listExists(uow *db.SQLiteUnitOfWork, category string) bool {
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_name_lists WHERE category = ?`, category).Scan(&n); err != nil {
			return nil
		}
		found = n > 0
		return nil
	})
	return found
}

func insertList(ctx context.Context, tx db.DBTX, category string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO catalog_name_lists (category, fetched_at) VALUES (?, ?)`,
		category, "2026-01-01T00:00:00Z")
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertList(ctx, tx, "weapon")
	})
	require.NoError(t, err)
	assert.True(t, listExists(uow, "weapon"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertList(ctx, tx, "boss"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, listExists(uow, "boss"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertList(ctx, tx, "npc")
			panic("boom")
		})
	})
	assert.False(t, listExists(uow, "npc"), "row should not exist after panic rollback")
}
