package catalog

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/graphdeck/internal/db"
	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/alexanderramin/graphdeck/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a cached lookup is served without asking upstream.
const DefaultCacheTTL = 24 * time.Hour

// Cached is a read-through cache in front of another Catalog. Fresh entries
// are served from SQLite; misses are fetched once per key no matter how many
// callers ask concurrently. When upstream fails, an expired entry is served
// instead of the error.
type Cached struct {
	upstream Catalog
	repo     repository.CatalogCacheRepo
	uow      db.UnitOfWork
	ttl      time.Duration
	now      func() time.Time
	group    singleflight.Group
	observer Observer
	logger   *slog.Logger
}

var _ Catalog = (*Cached)(nil)

// CachedOption configures a Cached catalog.
type CachedOption func(*Cached)

// WithTTL overrides DefaultCacheTTL.
func WithTTL(ttl time.Duration) CachedOption {
	return func(c *Cached) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CachedOption {
	return func(c *Cached) { c.now = now }
}

func WithObserver(o Observer) CachedOption {
	return func(c *Cached) { c.observer = observerOrNoop(o) }
}

func WithLogger(l *slog.Logger) CachedOption {
	return func(c *Cached) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCached wraps upstream with a cache stored in database.
func NewCached(upstream Catalog, database *sql.DB, opts ...CachedOption) *Cached {
	c := &Cached{
		upstream: upstream,
		repo:     repository.NewSQLiteCatalogCacheRepo(database),
		uow:      db.NewSQLiteUnitOfWork(database),
		ttl:      DefaultCacheTTL,
		now:      time.Now,
		observer: NoopObserver{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) fresh(fetchedAt time.Time) bool {
	return c.now().Sub(fetchedAt) < c.ttl
}

func (c *Cached) ListNames(ctx context.Context, category string) ([]string, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	start := c.now()

	cached, cacheErr := c.repo.GetNames(ctx, category)
	if cacheErr == nil && c.fresh(cached.FetchedAt) {
		c.observe(ctx, LookupEvent{Op: OpListNames, Category: category, Source: "cache"}, start, nil)
		return cached.Names, nil
	}
	if cacheErr != nil && !errors.Is(cacheErr, repository.ErrNotFound) {
		c.logger.WarnContext(ctx, "catalog cache read failed", "category", category, "error", cacheErr)
	}

	v, err := c.shared(ctx, "names/"+category, func(ctx context.Context) (any, error) {
		names, err := c.upstream.ListNames(ctx, category)
		if err != nil {
			return nil, err
		}
		c.storeNames(ctx, &domain.NameList{Category: category, Names: names, FetchedAt: c.now()})
		return names, nil
	})
	if err == nil {
		return v.([]string), nil
	}
	if cacheErr == nil && servesStale(err) {
		c.observe(ctx, LookupEvent{Op: OpListNames, Category: category, Source: "stale_cache"}, start, nil)
		return cached.Names, nil
	}
	return nil, err
}

func (c *Cached) GetDetails(ctx context.Context, category, name string) (Details, error) {
	if err := checkCategory(category); err != nil {
		return Details{}, err
	}
	start := c.now()

	cached, cacheErr := c.repo.GetDetails(ctx, category, name)
	if cacheErr == nil && c.fresh(cached.FetchedAt) {
		c.observe(ctx, LookupEvent{Op: OpGetDetails, Category: category, Name: name, Source: "cache"}, start, nil)
		return entryDetails(cached), nil
	}
	if cacheErr != nil && !errors.Is(cacheErr, repository.ErrNotFound) {
		c.logger.WarnContext(ctx, "catalog cache read failed", "category", category, "name", name, "error", cacheErr)
	}

	v, err := c.shared(ctx, "details/"+category+"/"+name, func(ctx context.Context) (any, error) {
		d, err := c.upstream.GetDetails(ctx, category, name)
		if err != nil {
			return nil, err
		}
		entry := &domain.CatalogEntry{
			Category:    category,
			Name:        name,
			Image:       d.Image,
			Description: d.Description,
			FetchedAt:   c.now(),
		}
		if err := c.repo.UpsertDetails(ctx, entry); err != nil {
			c.logger.WarnContext(ctx, "catalog cache write failed", "category", category, "name", name, "error", err)
		}
		return d, nil
	})
	if err == nil {
		return v.(Details), nil
	}
	if cacheErr == nil && servesStale(err) {
		c.observe(ctx, LookupEvent{Op: OpGetDetails, Category: category, Name: name, Source: "stale_cache"}, start, nil)
		return entryDetails(cached), nil
	}
	return Details{}, err
}

// Purge drops cache rows older than maxAge and returns how many were removed.
func (c *Cached) Purge(ctx context.Context, maxAge time.Duration) (int64, error) {
	return c.repo.PurgeOlderThan(ctx, c.now().Add(-maxAge))
}

// shared runs fn once per key across concurrent callers. The upstream call is
// detached from any single caller's cancellation so the result still reaches
// the cache; each caller stops waiting when its own ctx ends.
func (c *Cached) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cached) storeNames(ctx context.Context, list *domain.NameList) {
	err := c.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCatalogCacheRepo(tx).ReplaceNames(ctx, list)
	})
	if err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed", "category", list.Category, "error", err)
	}
}

func (c *Cached) observe(ctx context.Context, event LookupEvent, start time.Time, err error) {
	event.RequestID = uuid.NewString()
	event.LatencyMs = c.now().Sub(start).Milliseconds()
	event.Success = err == nil
	event.ErrorCode = errorCode(err)
	c.observer.OnLookup(ctx, event)
}

// servesStale reports whether an upstream failure may be answered from an
// expired cache entry. A missing entry or a cancelled caller is not.
func servesStale(err error) bool {
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func entryDetails(e *domain.CatalogEntry) Details {
	return Details{Name: e.Name, Image: e.Image, Description: e.Description}
}
