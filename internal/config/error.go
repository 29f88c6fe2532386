package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by a *ConfigError from Discover when no candidate file exists.
var ErrNotFound = errors.New("config file not found")

// ConfigError aggregates configuration errors.
type ConfigError struct {
	Path     string   // Config file path, empty when discovery found nothing
	Missing  []string // Unresolved environment variables
	Errors   []string // Validation errors
	Searched []string // Locations tried by Discover
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var parts []string
	if e.Path != "" {
		parts = append(parts, e.Path+":")
	}
	if len(e.Searched) > 0 {
		parts = append(parts, fmt.Sprintf("%v, searched: %s", ErrNotFound, strings.Join(e.Searched, ", ")))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Errors) > 0 {
		parts = append(parts, "validation failed:")
		for _, err := range e.Errors {
			parts = append(parts, "  - "+err)
		}
	}
	return strings.Join(parts, "\n")
}

// Unwrap exposes ErrNotFound for discovery failures.
func (e *ConfigError) Unwrap() error {
	if len(e.Searched) > 0 {
		return ErrNotFound
	}
	return nil
}

// HasErrors returns true if there are any errors.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0 || len(e.Searched) > 0
}
