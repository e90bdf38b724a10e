package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/graphdeck/internal/db"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCacheRepo_GetNames_NotFound(t *testing.T) {
	repo := NewSQLiteCatalogCacheRepo(testutil.NewTestDB(t))

	_, err := repo.GetNames(context.Background(), "weapon")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogCacheRepo_ReplaceNames_KeepsOrderAndDuplicates(t *testing.T) {
	repo := NewSQLiteCatalogCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.ReplaceNames(ctx, &domain.NameList{
		Category:  "weapon",
		Names:     []string{"Moonveil", "Dagger", "Moonveil"},
		FetchedAt: fetched,
	}))

	got, err := repo.GetNames(ctx, "weapon")
	require.NoError(t, err)
	assert.Equal(t, []string{"Moonveil", "Dagger", "Moonveil"}, got.Names)
	assert.True(t, fetched.Equal(got.FetchedAt))

	// Replacing shrinks the list rather than merging.
	require.NoError(t, repo.ReplaceNames(ctx, &domain.NameList{
		Category:  "weapon",
		Names:     []string{"Uchigatana"},
		FetchedAt: fetched.Add(time.Hour),
	}))
	got, err = repo.GetNames(ctx, "weapon")
	require.NoError(t, err)
	assert.Equal(t, []string{"Uchigatana"}, got.Names)
}

func TestCatalogCacheRepo_EmptyListIsCached(t *testing.T) {
	repo := NewSQLiteCatalogCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceNames(ctx, &domain.NameList{Category: "spirit", FetchedAt: time.Now()}))

	got, err := repo.GetNames(ctx, "spirit")
	require.NoError(t, err)
	assert.Empty(t, got.Names)
}

func TestCatalogCacheRepo_UpsertDetails(t *testing.T) {
	repo := NewSQLiteCatalogCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	entry := &domain.CatalogEntry{
		Category:    "item",
		Name:        "Torch",
		Image:       "torch.png",
		Description: "Lights the way",
		FetchedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.UpsertDetails(ctx, entry))

	entry.Description = "Lights the way, brighter"
	require.NoError(t, repo.UpsertDetails(ctx, entry))

	got, err := repo.GetDetails(ctx, "item", "Torch")
	require.NoError(t, err)
	assert.Equal(t, "torch.png", got.Image)
	assert.Equal(t, "Lights the way, brighter", got.Description)

	_, err = repo.GetDetails(ctx, "item", "Lantern")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogCacheRepo_PurgeOlderThan(t *testing.T) {
	repo := NewSQLiteCatalogCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fresh := old.Add(48 * time.Hour)

	require.NoError(t, repo.ReplaceNames(ctx, testutil.NewTestNameList("boss", old, "Margit")))
	require.NoError(t, repo.ReplaceNames(ctx, testutil.NewTestNameList("npc", fresh, "Ranni")))
	require.NoError(t, repo.UpsertDetails(ctx, testutil.NewTestCatalogEntry("boss", "Margit", old)))
	require.NoError(t, repo.UpsertDetails(ctx, testutil.NewTestCatalogEntry("npc", "Ranni", fresh)))

	n, err := repo.PurgeOlderThan(ctx, old.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.GetNames(ctx, "boss")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetNames(ctx, "npc")
	assert.NoError(t, err)
	got, err := repo.GetDetails(ctx, "npc", "Ranni")
	require.NoError(t, err)
	assert.Equal(t, "Ranni.png", got.Image)
}

func TestCatalogCacheRepo_WritesCommitTogether(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteCatalogCacheRepo(tx)
		if err := repo.ReplaceNames(ctx, testutil.NewTestNameList("boss", fetched, "Margit")); err != nil {
			return err
		}
		return repo.UpsertDetails(ctx, testutil.NewTestCatalogEntry("boss", "Margit", fetched))
	})
	require.NoError(t, err)

	repo := NewSQLiteCatalogCacheRepo(database)
	list, err := repo.GetNames(ctx, "boss")
	require.NoError(t, err)
	assert.Equal(t, []string{"Margit"}, list.Names)

	entry, err := repo.GetDetails(ctx, "boss", "Margit")
	require.NoError(t, err)
	assert.Equal(t, "Margit", entry.Name)
}
