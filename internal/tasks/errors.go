package tasks

import "errors"

var (
	// ErrNotFound indicates no task is registered under the key.
	ErrNotFound = errors.New("task not found")

	// ErrAlreadyRunning indicates the task has a run in progress.
	ErrAlreadyRunning = errors.New("task already running")

	// ErrDisabled indicates the task is switched off in configuration.
	ErrDisabled = errors.New("task disabled")

	// ErrNotRunning indicates Cancel was called on an idle task.
	ErrNotRunning = errors.New("task not running")
)
