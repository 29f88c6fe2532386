// Package server runs the daemon's long-lived components under one lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultShutdownTimeout = 30 * time.Second
	defaultPruneInterval   = 6 * time.Hour
)

// Scheduler fires scheduled tasks until its context is done.
type Scheduler interface {
	Run(ctx context.Context) error
}

// TaskHost stops in-flight task runs.
type TaskHost interface {
	Close()
}

// CachePruner drops expired listing cache entries and those from other data versions.
type CachePruner interface {
	Prune(ctx context.Context, currentVersion string) (int64, error)
}

// Config for the runner.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	PruneInterval   time.Duration
	DataVersion     string
}

// Runner manages the HTTP server, the scheduler and cache maintenance.
type Runner struct {
	config    Config
	handler   http.Handler
	scheduler Scheduler
	tasks     TaskHost
	cache     CachePruner
	logger    *slog.Logger
}

// NewRunner creates a new runner. scheduler, tasks and cache may be nil.
func NewRunner(cfg Config, handler http.Handler, scheduler Scheduler, tasks TaskHost, cache CachePruner, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = defaultPruneInterval
	}
	return &Runner{
		config:    cfg,
		handler:   handler,
		scheduler: scheduler,
		tasks:     tasks,
		cache:     cache,
		logger:    logger.With("component", "runner"),
	}
}

// Run listens on the configured address and starts all components.
// It blocks until the context is canceled or a component fails.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.config.Addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve is Run on an existing listener. Serve closes ln.
// Running tasks are canceled and awaited before it returns.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	if r.tasks != nil {
		defer r.tasks.Close()
	}

	srv := &http.Server{Handler: r.handler, ReadHeaderTimeout: 10 * time.Second}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("http server stopped")
		return nil
	})

	if r.scheduler != nil {
		g.Go(func() error {
			return r.scheduler.Run(ctx)
		})
	}

	if r.cache != nil {
		g.Go(func() error {
			r.runPruner(ctx)
			return nil
		})
	}

	return g.Wait()
}

// runPruner prunes stale cache versions at startup and then on every interval.
func (r *Runner) runPruner(ctx context.Context) {
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	for {
		n, err := r.cache.Prune(ctx, r.config.DataVersion)
		switch {
		case err != nil && ctx.Err() == nil:
			r.logger.Error("cache prune failed", "error", err)
		case n > 0:
			r.logger.Info("pruned listing cache", "entries", n, "data_version", r.config.DataVersion)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
