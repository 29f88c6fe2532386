package channel

//go:generate mockgen -source=navigator.go -destination=mocks/navigator.go -package=mocks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vmunix/catchup/internal/fetch"
	"github.com/vmunix/catchup/internal/listing"
)

// Lister produces the full, unpaged listing for a folder id.
// An empty id is the top-level menu.
type Lister interface {
	Listing(ctx context.Context, id string) (listing.Result, error)
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithListingMetrics records extracted and skipped item counts.
func WithListingMetrics(m *listing.Metrics) NavigatorOption {
	return func(n *Navigator) {
		n.metrics = m
	}
}

// Navigator maps folder ids to pages and reads them with the matching rule set.
type Navigator struct {
	settings Settings
	fetcher  fetch.Fetcher
	metrics  *listing.Metrics
	log      *slog.Logger
}

// NewNavigator creates a navigator over the given fetcher.
func NewNavigator(settings Settings, fetcher fetch.Fetcher, log *slog.Logger, opts ...NavigatorOption) *Navigator {
	if log == nil {
		log = slog.Default()
	}
	n := &Navigator{
		settings: settings,
		fetcher:  fetcher,
		log:      log.With("component", "navigator"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Listing returns the stamped listing for id.
func (n *Navigator) Listing(ctx context.Context, id string) (listing.Result, error) {
	if id == "" {
		return n.menu(), nil
	}

	nav, err := ParseNavID(id)
	if err != nil {
		return listing.Result{}, err
	}
	rules, err := RulesFor(nav.Kind, n.settings.HomeURL)
	if err != nil {
		return listing.Result{}, err
	}

	body, err := n.fetcher.Get(ctx, nav.URL)
	if err != nil {
		return listing.Result{}, fmt.Errorf("fetch %s listing: %w", nav.Kind, err)
	}
	defer body.Close()

	ex, err := listing.Extract(body, rules)
	if err != nil {
		return listing.Result{}, err
	}

	items, skipped := ex.Items(n.log.With("url", nav.URL, "kind", nav.Kind))
	n.metrics.Observe(rules.Name, len(items), skipped)
	n.log.Debug("listing extracted", "url", nav.URL, "kind", nav.Kind, "items", len(items), "skipped", skipped)

	return n.settings.Cache.Stamp(items), nil
}

func (n *Navigator) menu() listing.Result {
	items := make([]listing.Item, 0, len(n.settings.Menu))
	for _, entry := range n.settings.Menu {
		items = append(items, listing.Item{
			Name: entry.Name,
			ID:   entry.ID.String(),
			Kind: listing.KindFolder,
		})
	}
	return n.settings.Cache.Stamp(items)
}
