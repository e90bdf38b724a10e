package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/graphdeck/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a private in-memory cache database with the catalog
// tables migrated. It is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening cache database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW returns the unit of work the cache uses, over database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
