package channel

import (
	"time"

	"github.com/vmunix/catchup/internal/listing"
)

const (
	// DefaultMaxPageSize is the largest page the host may request.
	DefaultMaxPageSize = 25

	// DefaultCacheTTL is how long a listing stays valid.
	DefaultCacheTTL = 72 * time.Hour

	// DefaultDataVersion must be bumped whenever the rule sets change.
	DefaultDataVersion = "4"

	DefaultHomeURL = "https://www.itv.com"
	DefaultName    = "ITV UK"

	// PopularCatchUpURL is the category behind the default menu entry.
	PopularCatchUpURL = "https://www.itv.com/itvplayer/categories/browse/popular/catch-up"
)

// MenuEntry is one folder in the static top-level menu.
type MenuEntry struct {
	Name string
	ID   NavID
}

// Settings is the channel's static configuration. Treat it as read-only once built.
type Settings struct {
	Name        string
	HomeURL     string
	Menu        []MenuEntry
	Cache       listing.CachePolicy
	MaxPageSize int
}

// DefaultSettings returns the built-in channel configuration.
func DefaultSettings() Settings {
	return Settings{
		Name:    DefaultName,
		HomeURL: DefaultHomeURL,
		Menu: []MenuEntry{
			{Name: "Most Popular Programmes", ID: NavID{Kind: KindPrograms, URL: PopularCatchUpURL}},
		},
		Cache:       listing.CachePolicy{TTL: DefaultCacheTTL, DataVersion: DefaultDataVersion},
		MaxPageSize: DefaultMaxPageSize,
	}
}
