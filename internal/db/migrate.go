package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// The cache only ever stores catalog lookups. Graphs are never persisted.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS catalog_name_lists (
		category   TEXT PRIMARY KEY,
		fetched_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS catalog_names (
		category TEXT NOT NULL REFERENCES catalog_name_lists(category) ON DELETE CASCADE,
		position INTEGER NOT NULL CHECK(position >= 0),
		name     TEXT NOT NULL,
		PRIMARY KEY (category, position)
	)`,

	`CREATE TABLE IF NOT EXISTS catalog_details (
		category    TEXT NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		fetched_at  TEXT NOT NULL,
		PRIMARY KEY (category, name)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_catalog_details_fetched ON catalog_details(fetched_at)`,

	// v2: cache item images alongside descriptions
	`ALTER TABLE catalog_details ADD COLUMN image TEXT NOT NULL DEFAULT ''`,
}
