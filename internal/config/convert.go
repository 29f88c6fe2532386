package config

import (
	"fmt"
	"time"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/listing"
	"github.com/vmunix/catchup/internal/tasks"
	"github.com/vmunix/catchup/pkg/titlematch"
)

// ChannelSettings builds the read-only settings the navigator is constructed with.
func (c *Config) ChannelSettings() (channel.Settings, error) {
	ch := c.Channel
	s := channel.Settings{
		Name:        ch.Name,
		HomeURL:     ch.HomeURL,
		Cache:       listing.CachePolicy{TTL: ch.CacheTTL, DataVersion: ch.DataVersion},
		MaxPageSize: ch.MaxPageSize,
	}
	for i, m := range ch.Menu {
		id, err := channel.NewNavID(channel.Kind(m.Kind), m.URL)
		if err != nil {
			return channel.Settings{}, fmt.Errorf("channel.menu[%d]: %w", i, err)
		}
		s.Menu = append(s.Menu, channel.MenuEntry{Name: m.Name, ID: id})
	}
	return s, nil
}

// RunAtOffset is trailers.run_at as an offset from midnight.
func (t TrailersConfig) RunAtOffset() (time.Duration, error) {
	return tasks.ParseTimeOfDay(t.RunAt)
}

// Confidence is trailers.min_confidence as a match grade.
func (t TrailersConfig) Confidence() (titlematch.Confidence, error) {
	return titlematch.ParseConfidence(t.MinConfidence)
}
