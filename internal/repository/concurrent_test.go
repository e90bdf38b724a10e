package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/graphdeck/internal/db"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func fiveNames(tag string) []string {
	names := make([]string, 5)
	for i := range names {
		names[i] = fmt.Sprintf("%s-%d", tag, i)
	}
	return names
}

func retryTx(fn func() error) error {
	const maxRetries = 10
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(time.Millisecond * time.Duration(1<<attempt))
	}
	return err
}

// Readers must never observe a list that is only partly replaced.
func TestConcurrentAccess_ReplaceNamesIsAtomic(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteCatalogCacheRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	require.NoError(t, repo.ReplaceNames(ctx, &domain.NameList{
		Category: "weapon", Names: fiveNames("seed"), FetchedAt: time.Now(),
	}))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			list := &domain.NameList{Category: "weapon", Names: fiveNames(fmt.Sprintf("w%d", i)), FetchedAt: time.Now()}
			err := retryTx(func() error {
				return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					return NewSQLiteCatalogCacheRepo(tx).ReplaceNames(ctx, list)
				})
			})
			if err != nil {
				t.Errorf("writer: replace %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				got, err := repo.GetNames(ctx, "weapon")
				if err != nil {
					t.Errorf("reader %d: get names: %v", reader, err)
					return
				}
				if len(got.Names) != 5 {
					t.Errorf("reader %d: saw %d names, want 5", reader, len(got.Names))
				}
			}
		}(r)
	}

	wg.Wait()

	got, err := repo.GetNames(ctx, "weapon")
	require.NoError(t, err)
	assert.Equal(t, fiveNames("w19"), got.Names)
}

func TestReplaceNames_RollbackKeepsPreviousList(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteCatalogCacheRepo(database)

	require.NoError(t, repo.ReplaceNames(ctx, &domain.NameList{
		Category: "boss", Names: []string{"Margit", "Godrick"}, FetchedAt: time.Now(),
	}))

	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteCatalogCacheRepo(tx).ReplaceNames(ctx, &domain.NameList{
			Category: "boss", Names: []string{"Radahn", "Malenia", "Mohg"}, FetchedAt: time.Now(),
		})
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.GetNames(ctx, "boss")
	require.NoError(t, err)
	assert.Equal(t, []string{"Margit", "Godrick"}, got.Names)
}
