package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/graphdeck/internal/domain"
)

// CatalogCacheRepo stores catalog lookups so repeated category switches and
// suggestion picks do not hit the network.
type CatalogCacheRepo interface {
	GetNames(ctx context.Context, category string) (*domain.NameList, error)
	ReplaceNames(ctx context.Context, list *domain.NameList) error
	GetDetails(ctx context.Context, category, name string) (*domain.CatalogEntry, error)
	UpsertDetails(ctx context.Context, e *domain.CatalogEntry) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
