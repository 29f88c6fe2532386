package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTask runs fn when executed.
type stubTask struct {
	key     string
	enabled bool
	fn      func(ctx context.Context, progress func(float64)) error
}

func (s *stubTask) Key() string                { return s.key }
func (s *stubTask) Name() string               { return "Stub " + s.key }
func (s *stubTask) Category() string           { return "Test" }
func (s *stubTask) Description() string        { return "A test task." }
func (s *stubTask) IsEnabled() bool            { return s.enabled }
func (s *stubTask) IsHidden() bool             { return !s.enabled }
func (s *stubTask) DefaultTriggers() []Trigger { return []Trigger{Daily(2 * time.Hour)} }
func (s *stubTask) Execute(ctx context.Context, progress func(float64)) error {
	return s.fn(ctx, progress)
}

func TestManager_RunCompletes(t *testing.T) {
	m := NewManager(nil)
	var gotRunID string
	require.NoError(t, m.Register(&stubTask{key: "a", enabled: true, fn: func(ctx context.Context, progress func(float64)) error {
		gotRunID = RunIDFrom(ctx)
		progress(50)
		progress(150)
		return nil
	}}))

	runID, err := m.Run(context.Background(), "a")
	require.NoError(t, err)
	m.Wait()

	st, err := m.State("a")
	require.NoError(t, err)
	assert.False(t, st.Running)
	assert.Equal(t, StatusCompleted, st.LastStatus)
	assert.Equal(t, 100.0, st.Progress)
	assert.Equal(t, runID, st.RunID)
	assert.Equal(t, runID, gotRunID)
	assert.Equal(t, []string{"daily at 02:00"}, st.Triggers)
	assert.False(t, st.LastEnd.IsZero())
}

func TestManager_RunFailure(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Register(&stubTask{key: "a", enabled: true, fn: func(context.Context, func(float64)) error {
		return errors.New("library offline")
	}}))

	_, err := m.Run(context.Background(), "a")
	require.NoError(t, err)
	m.Wait()

	st, err := m.State("a")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, st.LastStatus)
	assert.Equal(t, "library offline", st.LastError)
}

func TestManager_AlreadyRunningAndCancel(t *testing.T) {
	m := NewManager(nil)
	started := make(chan struct{})
	require.NoError(t, m.Register(&stubTask{key: "a", enabled: true, fn: func(ctx context.Context, progress func(float64)) error {
		close(started)
		<-ctx.Done()
		return nil
	}}))

	_, err := m.Run(context.Background(), "a")
	require.NoError(t, err)
	<-started

	_, err = m.Run(context.Background(), "a")
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	st, err := m.State("a")
	require.NoError(t, err)
	assert.True(t, st.Running)

	require.NoError(t, m.Cancel("a"))
	m.Wait()

	st, err = m.State("a")
	require.NoError(t, err)
	assert.False(t, st.Running)
	assert.Equal(t, StatusCanceled, st.LastStatus)
	assert.Empty(t, st.LastError)

	assert.ErrorIs(t, m.Cancel("a"), ErrNotRunning)
}

func TestManager_RunOutlivesCallerContext(t *testing.T) {
	m := NewManager(nil)
	release := make(chan struct{})
	require.NoError(t, m.Register(&stubTask{key: "a", enabled: true, fn: func(ctx context.Context, _ func(float64)) error {
		<-release
		return ctx.Err()
	}}))

	ctx, cancel := context.WithCancel(context.Background())
	_, err := m.Run(ctx, "a")
	require.NoError(t, err)
	cancel()
	close(release)
	m.Wait()

	st, err := m.State("a")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st.LastStatus)
}

func TestManager_Errors(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Register(&stubTask{key: "off", enabled: false}))

	assert.Error(t, m.Register(&stubTask{key: "off"}))

	_, err := m.Run(context.Background(), "off")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = m.Run(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.State("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, m.Cancel("missing"), ErrNotFound)
}

func TestManager_CloseCancelsRuns(t *testing.T) {
	m := NewManager(nil)
	started := make(chan struct{})
	require.NoError(t, m.Register(&stubTask{key: "a", enabled: true, fn: func(ctx context.Context, _ func(float64)) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}}))

	_, err := m.Run(context.Background(), "a")
	require.NoError(t, err)
	<-started

	m.Close()

	st, err := m.State("a")
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, st.LastStatus)
}

func TestManager_StatesInOrder(t *testing.T) {
	m := NewManager(nil)
	require.NoError(t, m.Register(&stubTask{key: "b"}))
	require.NoError(t, m.Register(&stubTask{key: "a", enabled: true}))

	states := m.States()
	require.Len(t, states, 2)
	assert.Equal(t, "b", states[0].Key)
	assert.True(t, states[0].Hidden)
	assert.Equal(t, "a", states[1].Key)
	assert.Equal(t, StatusNever, states[1].LastStatus)
}
