// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/catchup/internal/channel"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Channel  ChannelConfig  `toml:"channel"`
	Trailers TrailersConfig `toml:"trailers"`
	TMDB     TMDBConfig     `toml:"tmdb"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ChannelConfig configures the catch-up channel and how it talks to the broadcaster site.
type ChannelConfig struct {
	Name              string        `toml:"name"`
	HomeURL           string        `toml:"home_url"`
	CacheTTL          time.Duration `toml:"cache_ttl"`
	DataVersion       string        `toml:"data_version"`
	MaxPageSize       int           `toml:"max_page_size"`
	UserAgent         string        `toml:"user_agent"`
	RequestTimeout    time.Duration `toml:"request_timeout"`
	RequestsPerSecond float64       `toml:"requests_per_second"`
	MaxRetries        int           `toml:"max_retries"`
	Menu              []MenuConfig  `toml:"menu"`
}

// MenuConfig is one top-level folder of the channel.
type MenuConfig struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`
	URL  string `toml:"url"`
}

// TrailersConfig configures the local trailer task.
type TrailersConfig struct {
	Enabled       bool     `toml:"enabled"`
	RunAt         string   `toml:"run_at"`
	MovieRoots    []string `toml:"movie_roots"`
	Sources       []string `toml:"sources"`
	MinConfidence string   `toml:"min_confidence"`
}

type TMDBConfig struct {
	APIKey   string        `toml:"api_key"`
	BaseURL  string        `toml:"base_url"`
	CacheTTL time.Duration `toml:"cache_ttl"`
}

const (
	defaultPort              = 8585
	defaultDBPath            = "./data/catchup.db"
	defaultRequestTimeout    = 20 * time.Second
	defaultRequestsPerSecond = 2
	defaultMaxRetries        = 2
	defaultRunAt             = "02:00"
	defaultMinConfidence     = "medium"
	defaultTMDBCacheTTL      = 24 * time.Hour
)

// Load reads, substitutes, decodes and validates the configuration file.
// Unresolved variables and validation problems are reported together as a *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ConfigError{Path: path, Errors: []string{"unknown keys: " + strings.Join(keys, ", ")}}
	}

	cfg.applyDefaults(md)

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults(toml.MetaData{})
	return &cfg
}

func (c *Config) applyDefaults(md toml.MetaData) {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDBPath
	}

	ch := &c.Channel
	if ch.Name == "" {
		ch.Name = channel.DefaultName
	}
	if ch.HomeURL == "" {
		ch.HomeURL = channel.DefaultHomeURL
	}
	if !md.IsDefined("channel", "cache_ttl") {
		ch.CacheTTL = channel.DefaultCacheTTL
	}
	if ch.DataVersion == "" {
		ch.DataVersion = channel.DefaultDataVersion
	}
	if ch.MaxPageSize == 0 {
		ch.MaxPageSize = channel.DefaultMaxPageSize
	}
	if ch.RequestTimeout == 0 {
		ch.RequestTimeout = defaultRequestTimeout
	}
	if !md.IsDefined("channel", "requests_per_second") {
		ch.RequestsPerSecond = defaultRequestsPerSecond
	}
	if !md.IsDefined("channel", "max_retries") {
		ch.MaxRetries = defaultMaxRetries
	}
	if len(ch.Menu) == 0 {
		ch.Menu = []MenuConfig{{
			Name: "Most Popular Programmes",
			Kind: string(channel.KindPrograms),
			URL:  channel.PopularCatchUpURL,
		}}
	}

	if c.Trailers.RunAt == "" {
		c.Trailers.RunAt = defaultRunAt
	}
	if c.Trailers.MinConfidence == "" {
		c.Trailers.MinConfidence = defaultMinConfidence
	}

	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = "https://api.themoviedb.org"
	}
	if !md.IsDefined("tmdb", "cache_ttl") {
		c.TMDB.CacheTTL = defaultTMDBCacheTTL
	}
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// Unset variables without a default are left in place and reported in missing.
// Empty values count as unset for the :- and :? forms.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
