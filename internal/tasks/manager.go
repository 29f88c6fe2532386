package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RunStatus is the outcome of the most recent run.
type RunStatus string

const (
	StatusNever     RunStatus = ""
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
	StatusCanceled  RunStatus = "canceled"
)

// State is a snapshot of a registered task.
type State struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Enabled     bool      `json:"enabled"`
	Hidden      bool      `json:"hidden"`
	Triggers    []string  `json:"triggers"`
	Running     bool      `json:"running"`
	Progress    float64   `json:"progress"`
	RunID       string    `json:"run_id,omitempty"`
	LastStatus  RunStatus `json:"last_status,omitempty"`
	LastStart   time.Time `json:"last_start,omitzero"`
	LastEnd     time.Time `json:"last_end,omitzero"`
	LastError   string    `json:"last_error,omitempty"`
}

type entry struct {
	task     ScheduledTask
	running  bool
	cancel   context.CancelFunc
	progress float64
	runID    string
	status   RunStatus
	start    time.Time
	end      time.Time
	lastErr  error
}

// Manager runs registered tasks, at most one run per task at a time.
type Manager struct {
	mu    sync.Mutex
	tasks map[string]*entry
	order []string
	wg    sync.WaitGroup
	now   func() time.Time
	log   *slog.Logger
}

// NewManager creates an empty task manager.
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		tasks: make(map[string]*entry),
		now:   time.Now,
		log:   log.With("component", "tasks"),
	}
}

// Register adds a task. Keys must be unique.
func (m *Manager) Register(t ScheduledTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[t.Key()]; ok {
		return fmt.Errorf("register %s: duplicate key", t.Key())
	}
	m.tasks[t.Key()] = &entry{task: t}
	m.order = append(m.order, t.Key())
	return nil
}

// Tasks returns the registered tasks in registration order.
func (m *Manager) Tasks() []ScheduledTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ScheduledTask, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.tasks[key].task)
	}
	return out
}

// Run starts a task in the background and returns its run id.
// The run outlives ctx's cancellation; use Cancel or Close to stop it.
func (m *Manager) Run(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.tasks[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if !e.task.IsEnabled() {
		return "", fmt.Errorf("%w: %s", ErrDisabled, key)
	}
	if e.running {
		return "", fmt.Errorf("%w: %s", ErrAlreadyRunning, key)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	runID := uuid.NewString()
	e.running = true
	e.cancel = cancel
	e.progress = 0
	e.runID = runID
	e.status = StatusRunning
	e.start = m.now()
	e.end = time.Time{}
	e.lastErr = nil

	m.wg.Add(1)
	go m.execute(WithRunID(runCtx, runID), e)

	m.log.Info("task started", "task", key, "run_id", runID)
	return runID, nil
}

func (m *Manager) execute(ctx context.Context, e *entry) {
	defer m.wg.Done()

	key := e.task.Key()
	err := e.task.Execute(ctx, func(p float64) {
		m.mu.Lock()
		e.progress = min(max(p, 0), 100)
		m.mu.Unlock()
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	canceled := ctx.Err() != nil
	e.cancel()
	e.running = false
	e.cancel = nil
	e.end = m.now()

	switch {
	case err != nil && !errors.Is(err, context.Canceled):
		e.status = StatusFailed
		e.lastErr = err
		m.log.Error("task failed", "task", key, "run_id", e.runID, "error", err)
	case canceled || err != nil:
		e.status = StatusCanceled
		m.log.Info("task canceled", "task", key, "run_id", e.runID, "progress", e.progress)
	default:
		e.status = StatusCompleted
		m.log.Info("task completed", "task", key, "run_id", e.runID, "duration", e.end.Sub(e.start))
	}
}

// Cancel stops a running task. The run finishes at its next cancellation check.
func (m *Manager) Cancel(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.tasks[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if !e.running {
		return fmt.Errorf("%w: %s", ErrNotRunning, key)
	}
	e.cancel()
	return nil
}

// State returns a snapshot of one task.
func (m *Manager) State(key string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.tasks[key]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return snapshot(e), nil
}

// States returns snapshots of every task in registration order.
func (m *Manager) States() []State {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]State, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, snapshot(m.tasks[key]))
	}
	return out
}

// Wait blocks until every started run has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Close cancels all running tasks and waits for them.
func (m *Manager) Close() {
	m.mu.Lock()
	for _, e := range m.tasks {
		if e.running {
			e.cancel()
		}
	}
	m.mu.Unlock()
	m.wg.Wait()
}

func snapshot(e *entry) State {
	t := e.task
	s := State{
		Key:         t.Key(),
		Name:        t.Name(),
		Category:    t.Category(),
		Description: t.Description(),
		Enabled:     t.IsEnabled(),
		Hidden:      t.IsHidden(),
		Running:     e.running,
		Progress:    e.progress,
		RunID:       e.runID,
		LastStatus:  e.status,
		LastStart:   e.start,
		LastEnd:     e.end,
	}
	for _, tr := range t.DefaultTriggers() {
		s.Triggers = append(s.Triggers, tr.String())
	}
	if e.lastErr != nil {
		s.LastError = e.lastErr.Error()
	}
	return s
}

type runIDKey struct{}

// WithRunID attaches a run id to ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFrom returns the run id attached by the manager, or "".
func RunIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
