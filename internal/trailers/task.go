// Package trailers downloads missing local trailers for library movies.
package trailers

//go:generate mockgen -source=task.go -destination=mocks/task.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/catchup/internal/library"
	"github.com/vmunix/catchup/internal/tasks"
)

const (
	TaskKey         = "local-trailers"
	taskName        = "Download local trailers"
	taskCategory    = "Trailers"
	taskDescription = "Downloads local trailers for movies in your library."
	defaultRunAt    = 2 * time.Hour
)

// Library lists the movies to consider.
type Library interface {
	Movies(ctx context.Context) ([]library.Movie, error)
}

// Downloader fetches one trailer for a movie and stores it next to the movie file.
type Downloader interface {
	Download(ctx context.Context, movie library.Movie) (Download, error)
}

// Download describes a stored trailer.
type Download struct {
	SourceURL string
	Path      string
}

// TaskOptions configures the trailer task.
type TaskOptions struct {
	Enabled bool
	// RunAt is the daily start as an offset from midnight.
	// Values outside [0, 24h) fall back to 02:00.
	RunAt time.Duration
}

// Task walks the library and downloads a trailer for every movie lacking one.
type Task struct {
	library    Library
	downloader Downloader
	history    *HistoryStore
	opts       TaskOptions
	log        *slog.Logger
}

var _ tasks.ScheduledTask = (*Task)(nil)

// NewTask creates the trailer task. history may be nil.
func NewTask(lib Library, dl Downloader, history *HistoryStore, opts TaskOptions, log *slog.Logger) *Task {
	if log == nil {
		log = slog.Default()
	}
	if opts.RunAt < 0 || opts.RunAt >= 24*time.Hour {
		opts.RunAt = defaultRunAt
	}
	return &Task{
		library:    lib,
		downloader: dl,
		history:    history,
		opts:       opts,
		log:        log.With("component", "trailers"),
	}
}

func (t *Task) Key() string         { return TaskKey }
func (t *Task) Name() string        { return taskName }
func (t *Task) Category() string    { return taskCategory }
func (t *Task) Description() string { return taskDescription }
func (t *Task) IsEnabled() bool     { return t.opts.Enabled }
func (t *Task) IsHidden() bool      { return !t.opts.Enabled }

// DefaultTriggers runs the task once a day.
func (t *Task) DefaultTriggers() []tasks.Trigger {
	return []tasks.Trigger{tasks.Daily(t.opts.RunAt)}
}

// Execute processes movies without a local trailer one at a time.
// A failed movie is logged and recorded, and the batch moves on. Cancellation
// is checked before each movie; once seen, Execute returns nil without
// further progress reports. A completed batch always ends at 100.
func (t *Task) Execute(ctx context.Context, progress func(float64)) error {
	runID := tasks.RunIDFrom(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	log := t.log.With("run_id", runID)

	movies, err := t.library.Movies(ctx)
	if err != nil {
		if ctx.Err() != nil {
			log.Info("trailer run canceled before start")
			return nil
		}
		return fmt.Errorf("list library: %w", err)
	}

	var candidates []library.Movie
	for _, m := range movies {
		if !m.HasLocalTrailer() {
			candidates = append(candidates, m)
		}
	}
	log.Info("trailer run started", "movies", len(movies), "missing", len(candidates))

	var downloaded, missing, failed int
	for i, movie := range candidates {
		if ctx.Err() != nil {
			log.Info("trailer run canceled", "processed", i, "total", len(candidates))
			return nil
		}

		d, err := t.downloader.Download(ctx, movie)
		switch {
		case err == nil:
			downloaded++
			log.Info("trailer downloaded", "movie", movie.String(), "path", d.Path)
			t.record(ctx, runID, movie, StatusDownloaded, d, nil)
		case ctx.Err() != nil || errors.Is(err, context.Canceled):
			log.Info("trailer run canceled", "processed", i, "total", len(candidates), "movie", movie.String())
			return nil
		case errors.Is(err, ErrNoTrailer):
			missing++
			log.Debug("no trailer found", "movie", movie.String())
			t.record(ctx, runID, movie, StatusNotFound, d, nil)
		default:
			failed++
			log.Error("trailer download failed", "movie", movie.String(), "error", err)
			t.record(ctx, runID, movie, StatusFailed, d, err)
		}

		progress(float64(i+1) / float64(len(candidates)) * 100)
	}

	progress(100)
	log.Info("trailer run finished", "downloaded", downloaded, "not_found", missing, "failed", failed)
	return nil
}

// History returns the most recent history entries, newest first.
func (t *Task) History(ctx context.Context, limit int) ([]Entry, error) {
	if t.history == nil {
		return nil, nil
	}
	return t.history.List(ctx, limit)
}

func (t *Task) record(ctx context.Context, runID string, movie library.Movie, status Status, d Download, dlErr error) {
	if t.history == nil {
		return
	}
	e := Entry{
		RunID:     runID,
		Movie:     movie.String(),
		MovieDir:  movie.Dir,
		Status:    status,
		SourceURL: d.SourceURL,
		Path:      d.Path,
	}
	if dlErr != nil {
		e.Error = dlErr.Error()
	}
	if err := t.history.Record(context.WithoutCancel(ctx), &e); err != nil {
		t.log.Warn("failed to record trailer history", "movie", e.Movie, "error", err)
	}
}
