package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/tasks"
	"github.com/vmunix/catchup/pkg/titlematch"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	errs = append(errs, c.Channel.validate()...)
	errs = append(errs, c.Trailers.validate()...)

	if c.TMDB.APIKey != "" && !isAbsoluteURL(c.TMDB.BaseURL) {
		errs = append(errs, fmt.Sprintf("tmdb.base_url: must be an absolute URL, got %q", c.TMDB.BaseURL))
	}

	return errs
}

func (ch ChannelConfig) validate() []string {
	var errs []string

	if ch.HomeURL != "" && !isAbsoluteURL(ch.HomeURL) {
		errs = append(errs, fmt.Sprintf("channel.home_url: must be an absolute URL, got %q", ch.HomeURL))
	}
	if ch.CacheTTL < 0 {
		errs = append(errs, "channel.cache_ttl: must not be negative")
	}
	if ch.MaxPageSize < 0 {
		errs = append(errs, fmt.Sprintf("channel.max_page_size: must be positive, got %d", ch.MaxPageSize))
	}
	if ch.RequestTimeout < 0 {
		errs = append(errs, "channel.request_timeout: must not be negative")
	}
	if ch.RequestsPerSecond < 0 {
		errs = append(errs, "channel.requests_per_second: must not be negative")
	}
	if ch.MaxRetries < 0 {
		errs = append(errs, "channel.max_retries: must not be negative")
	}

	for i, m := range ch.Menu {
		if m.Name == "" {
			errs = append(errs, fmt.Sprintf("channel.menu[%d].name: required", i))
		}
		if !channel.Kind(m.Kind).Valid() {
			errs = append(errs, fmt.Sprintf("channel.menu[%d].kind: must be programs or episodes, got %q", i, m.Kind))
		}
		if !isAbsoluteURL(m.URL) {
			errs = append(errs, fmt.Sprintf("channel.menu[%d].url: must be an absolute URL, got %q", i, m.URL))
		}
	}
	return errs
}

func (t TrailersConfig) validate() []string {
	var errs []string

	if t.RunAt != "" {
		if _, err := tasks.ParseTimeOfDay(t.RunAt); err != nil {
			errs = append(errs, fmt.Sprintf("trailers.run_at: %v", err))
		}
	}
	if _, err := titlematch.ParseConfidence(t.MinConfidence); err != nil {
		errs = append(errs, fmt.Sprintf("trailers.min_confidence: %v", err))
	}
	for i, src := range t.Sources {
		if _, err := channel.ParseNavID(src); err != nil {
			errs = append(errs, fmt.Sprintf("trailers.sources[%d]: %v", i, err))
		}
	}

	if !t.Enabled {
		return errs
	}
	if len(t.MovieRoots) == 0 {
		errs = append(errs, "trailers.movie_roots: at least one root is required when trailers are enabled")
	}
	if len(t.Sources) == 0 {
		errs = append(errs, "trailers.sources: at least one source is required when trailers are enabled")
	}
	for _, root := range t.MovieRoots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("trailers.movie_roots: directory %q does not exist", root))
		}
	}
	return errs
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
