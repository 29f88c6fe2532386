package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/catchup/internal/api/v1"
	"github.com/vmunix/catchup/internal/cache"
	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/config"
	"github.com/vmunix/catchup/internal/fetch"
	"github.com/vmunix/catchup/internal/library"
	"github.com/vmunix/catchup/internal/listing"
	"github.com/vmunix/catchup/internal/migrations"
	"github.com/vmunix/catchup/internal/server"
	"github.com/vmunix/catchup/internal/tasks"
	"github.com/vmunix/catchup/internal/tmdb"
	"github.com/vmunix/catchup/internal/trailers"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// app holds the wired daemon.
type app struct {
	db        *sql.DB
	handler   http.Handler
	manager   *tasks.Manager
	scheduler *tasks.Scheduler
	cache     *cache.Store
}

func (a *app) Close() error {
	return a.db.Close()
}

func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	settings, err := cfg.ChannelSettings()
	if err != nil {
		return nil, fmt.Errorf("channel settings: %w", err)
	}
	runAt, err := cfg.Trailers.RunAtOffset()
	if err != nil {
		return nil, fmt.Errorf("trailers run_at: %w", err)
	}
	confidence, err := cfg.Trailers.Confidence()
	if err != nil {
		return nil, fmt.Errorf("trailers min_confidence: %w", err)
	}

	db, err := openDatabase(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	// === Metrics ===
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// === Channel ===
	fetcher := fetch.New(
		fetch.WithTimeout(cfg.Channel.RequestTimeout),
		fetch.WithUserAgent(cfg.Channel.UserAgent),
		fetch.WithRateLimit(cfg.Channel.RequestsPerSecond),
		fetch.WithMaxRetries(cfg.Channel.MaxRetries),
		fetch.WithMetrics(fetch.NewMetrics(registry)),
	)
	navigator := channel.NewNavigator(settings, fetcher, logger, channel.WithListingMetrics(listing.NewMetrics(registry)))
	cacheStore := cache.NewStore(db)
	lister := cache.NewLister(navigator, cacheStore, settings.Cache.DataVersion, logger)
	ch := channel.NewChannel(settings, lister)

	// === Trailers ===
	var meta trailers.MetadataLookup
	if cfg.TMDB.APIKey != "" {
		meta = tmdb.NewClient(cfg.TMDB.APIKey,
			tmdb.WithBaseURL(cfg.TMDB.BaseURL),
			tmdb.WithCacheTTL(cfg.TMDB.CacheTTL),
			tmdb.WithFetcher(fetcher),
		)
	}
	source := trailers.NewChannelSource(lister, cfg.Trailers.Sources, meta, confidence, logger)
	historyStore := trailers.NewHistoryStore(db)
	trailerTask := trailers.NewTask(
		library.NewScanner(cfg.Trailers.MovieRoots, logger),
		trailers.NewChannelDownloader(source, ch, fetcher.WithoutTimeout(), logger),
		historyStore,
		trailers.TaskOptions{Enabled: cfg.Trailers.Enabled, RunAt: runAt},
		logger,
	)

	// === Tasks ===
	manager := tasks.NewManager(logger)
	if err := manager.Register(trailerTask); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("register task: %w", err)
	}
	scheduler, err := tasks.NewScheduler(manager, time.Local, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	// === HTTP ===
	mux := http.NewServeMux()
	api, err := v1.New(v1.ServerDeps{
		Channel:  ch,
		Tasks:    manager,
		History:  historyStore,
		Schedule: scheduler,
	}, v1.Config{Version: version}, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	api.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	return &app{
		db:        db,
		handler:   logRequests(mux, logger),
		manager:   manager,
		scheduler: scheduler,
		cache:     cacheStore,
	}, nil
}

func runServer(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	logger.Info("server starting",
		"addr", cfg.Addr(),
		"config", configPath,
		"database", cfg.Database.Path,
		"channel", cfg.Channel.Name,
		"data_version", cfg.Channel.DataVersion,
		"trailers", cfg.Trailers.Enabled,
		"tmdb", cfg.TMDB.APIKey != "",
		"log_level", cfg.Server.LogLevel,
	)

	runner := server.NewRunner(server.Config{
		Addr:        cfg.Addr(),
		DataVersion: cfg.Channel.DataVersion,
	}, a.handler, a.scheduler, a.manager, a.cache, logger)
	if err := runner.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
