package config

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError_Error_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/catchup/config.toml"}
	got := e.Error()
	if got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
}

func TestConfigError_Error_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/catchup/config.toml",
		Missing: []string{"API_KEY", "SECRET"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected 'missing environment variables', got %q", got)
	}
	if !strings.Contains(got, "API_KEY") || !strings.Contains(got, "SECRET") {
		t.Errorf("expected var names in error, got %q", got)
	}
}

func TestConfigError_Error_ValidationErrors(t *testing.T) {
	e := &ConfigError{
		Path:   "/etc/catchup/config.toml",
		Errors: []string{"server.port: must be 1-65535", "trailers.run_at: invalid"},
	}
	got := e.Error()
	if !strings.Contains(got, "validation failed") {
		t.Errorf("expected 'validation failed', got %q", got)
	}
	if !strings.Contains(got, "server.port") {
		t.Errorf("expected field name in error, got %q", got)
	}
}

func TestConfigError_Error_Both(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/catchup/config.toml",
		Missing: []string{"API_KEY"},
		Errors:  []string{"server.port: invalid"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected missing vars section, got %q", got)
	}
	if !strings.Contains(got, "validation failed") {
		t.Errorf("expected validation section, got %q", got)
	}
}

func TestConfigError_Error_IncludesPath(t *testing.T) {
	e := &ConfigError{Path: "/tmp/c.toml", Errors: []string{"x"}}
	if !strings.HasPrefix(e.Error(), "/tmp/c.toml:") {
		t.Errorf("expected path prefix, got %q", e.Error())
	}
}

func TestConfigError_NotFound(t *testing.T) {
	e := &ConfigError{Searched: []string{"./config.toml", "/etc/catchup/config.toml"}}
	if !errors.Is(e, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", e)
	}
	want := "config file not found, searched: ./config.toml, /etc/catchup/config.toml"
	if e.Error() != want {
		t.Errorf("expected %q, got %q", want, e.Error())
	}
}

func TestConfigError_ValidationIsNotNotFound(t *testing.T) {
	e := &ConfigError{Path: "/tmp/c.toml", Errors: []string{"x"}}
	if errors.Is(e, ErrNotFound) {
		t.Errorf("validation errors must not match ErrNotFound")
	}
}
