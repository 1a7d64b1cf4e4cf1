// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pdiddy/scrap2md/internal/cache"
	"github.com/pdiddy/scrap2md/pkg/types"
)

// CachedFetcher serves scraps from a local cache and falls back to
// Upstream on a miss, a stale entry, or when Refresh is set. Fetched scraps
// are written back to the cache unless NoStore is set. Entries are keyed by
// slug only, so a scrap fetched with credentials would later be served to
// callers without them.
type CachedFetcher struct {
	Store    *cache.Store
	Upstream Fetcher

	// TTL is how long an entry stays fresh. Zero never expires.
	TTL time.Duration

	// Refresh skips cache reads but still stores the fetched result.
	Refresh bool

	// NoStore keeps fetched scraps out of the cache. Set it when Upstream
	// sends credentials.
	NoStore bool

	// Now defaults to time.Now.
	Now func() time.Time
}

// Fetch implements Fetcher.
func (f *CachedFetcher) Fetch(ctx context.Context, slug string) (*types.Scrap, error) {
	if !f.Refresh {
		sc, fetchedAt, err := f.Store.Get(ctx, slug)
		switch {
		case err == nil && f.fresh(fetchedAt):
			slog.Debug("cache hit", "slug", slug, "fetched_at", fetchedAt)
			return sc, nil
		case err == nil:
			slog.Debug("cache stale", "slug", slug, "fetched_at", fetchedAt)
		case errors.Is(err, cache.ErrNotFound):
			slog.Debug("cache miss", "slug", slug)
		default:
			slog.Warn("cache read failed", "slug", slug, "err", err)
		}
	}

	sc, err := f.Upstream.Fetch(ctx, slug)
	if err != nil {
		return nil, err
	}
	if f.NoStore {
		slog.Debug("cache write skipped", "slug", slug)
		return sc, nil
	}
	if err := f.Store.Put(ctx, sc, f.now()); err != nil {
		slog.Warn("cache write failed", "slug", slug, "err", err)
	}
	return sc, nil
}

func (f *CachedFetcher) fresh(fetchedAt time.Time) bool {
	return f.TTL <= 0 || f.now().Sub(fetchedAt) < f.TTL
}

func (f *CachedFetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}
