package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/graphdeck/internal/db"
	"github.com/alexanderramin/graphdeck/internal/domain"
)

// SQLiteCatalogCacheRepo implements CatalogCacheRepo using a SQLite database.
type SQLiteCatalogCacheRepo struct {
	db db.DBTX
}

// NewSQLiteCatalogCacheRepo creates a new SQLiteCatalogCacheRepo.
func NewSQLiteCatalogCacheRepo(conn db.DBTX) *SQLiteCatalogCacheRepo {
	return &SQLiteCatalogCacheRepo{db: conn}
}

var _ CatalogCacheRepo = (*SQLiteCatalogCacheRepo)(nil)

func (r *SQLiteCatalogCacheRepo) GetNames(ctx context.Context, category string) (*domain.NameList, error) {
	var fetchedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM catalog_name_lists WHERE category = ?`, category).Scan(&fetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("name list %s: %w", category, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning name list: %w", err)
	}

	list := &domain.NameList{Category: category, Names: []string{}}
	if list.FetchedAt, err = parseTime(fetchedAt); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM catalog_names WHERE category = ? ORDER BY position`, category)
	if err != nil {
		return nil, fmt.Errorf("querying names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning name: %w", err)
		}
		list.Names = append(list.Names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating names: %w", err)
	}
	return list, nil
}

// ReplaceNames overwrites the cached list for list.Category. Run it inside a
// unit of work so readers never observe a half-written list.
func (r *SQLiteCatalogCacheRepo) ReplaceNames(ctx context.Context, list *domain.NameList) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM catalog_name_lists WHERE category = ?`, list.Category); err != nil {
		return fmt.Errorf("clearing name list: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_name_lists (category, fetched_at) VALUES (?, ?)`,
		list.Category, timeToString(list.FetchedAt)); err != nil {
		return fmt.Errorf("inserting name list: %w", err)
	}
	for i, name := range list.Names {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO catalog_names (category, position, name) VALUES (?, ?, ?)`,
			list.Category, i, name); err != nil {
			return fmt.Errorf("inserting name %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteCatalogCacheRepo) GetDetails(ctx context.Context, category, name string) (*domain.CatalogEntry, error) {
	query := `SELECT category, name, image, description, fetched_at
		FROM catalog_details WHERE category = ? AND name = ?`

	var e domain.CatalogEntry
	var fetchedAt string
	err := r.db.QueryRowContext(ctx, query, category, name).Scan(
		&e.Category,
		&e.Name,
		&e.Image,
		&e.Description,
		&fetchedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("catalog entry %s/%s: %w", category, name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning catalog entry: %w", err)
	}
	if e.FetchedAt, err = parseTime(fetchedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SQLiteCatalogCacheRepo) UpsertDetails(ctx context.Context, e *domain.CatalogEntry) error {
	query := `INSERT OR REPLACE INTO catalog_details (category, name, image, description, fetched_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.Category,
		e.Name,
		e.Image,
		e.Description,
		timeToString(e.FetchedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting catalog entry: %w", err)
	}
	return nil
}

// PurgeOlderThan removes cached lists and details fetched before cutoff and
// returns how many rows were deleted.
func (r *SQLiteCatalogCacheRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ts := timeToString(cutoff)

	res, err := r.db.ExecContext(ctx, `DELETE FROM catalog_name_lists WHERE fetched_at < ?`, ts)
	if err != nil {
		return 0, fmt.Errorf("purging name lists: %w", err)
	}
	lists, _ := res.RowsAffected()

	res, err = r.db.ExecContext(ctx, `DELETE FROM catalog_details WHERE fetched_at < ?`, ts)
	if err != nil {
		return 0, fmt.Errorf("purging details: %w", err)
	}
	details, _ := res.RowsAffected()

	return lists + details, nil
}
