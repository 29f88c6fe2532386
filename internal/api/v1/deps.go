package v1

//go:generate mockgen -source=deps.go -destination=mocks/deps.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/vmunix/catchup/internal/channel"
	"github.com/vmunix/catchup/internal/tasks"
	"github.com/vmunix/catchup/internal/trailers"
)

// TaskManager runs and reports on scheduled tasks.
type TaskManager interface {
	States() []tasks.State
	State(key string) (tasks.State, error)
	Run(ctx context.Context, key string) (string, error)
	Cancel(key string) error
}

// TrailerHistory lists recorded trailer outcomes.
type TrailerHistory interface {
	List(ctx context.Context, limit int) ([]trailers.Entry, error)
}

// Schedule reports upcoming task runs.
type Schedule interface {
	Next() map[string]time.Time
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Channel *channel.Channel
	Tasks   TaskManager

	// Optional dependencies (nil if not configured)
	History  TrailerHistory
	Schedule Schedule
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Channel == nil {
		return errors.New("channel is required")
	}
	if d.Tasks == nil {
		return errors.New("task manager is required")
	}
	return nil
}
