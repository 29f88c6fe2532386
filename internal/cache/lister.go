package cache

import (
	"context"
	"log/slog"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/listing"
)

// Lister serves listings from the store and falls back to the wrapped lister on a miss.
type Lister struct {
	inner   channel.Lister
	store   *Store
	version string
	log     *slog.Logger
}

var _ channel.Lister = (*Lister)(nil)

// NewLister wraps inner with cache-aside reads at the given data version.
func NewLister(inner channel.Lister, store *Store, version string, log *slog.Logger) *Lister {
	if log == nil {
		log = slog.Default()
	}
	return &Lister{
		inner:   inner,
		store:   store,
		version: version,
		log:     log.With("component", "listing-cache"),
	}
}

// Listing returns a cached listing when one is valid. Store failures never fail the request.
func (l *Lister) Listing(ctx context.Context, id string) (listing.Result, error) {
	if res, ok := l.store.Get(ctx, id, l.version); ok {
		l.log.Debug("cache hit", "nav_id", id)
		return res, nil
	}

	res, err := l.inner.Listing(ctx, id)
	if err != nil {
		return listing.Result{}, err
	}

	if err := l.store.Set(ctx, id, res); err != nil {
		l.log.Warn("failed to cache listing", "nav_id", id, "error", err)
	}
	return res, nil
}
