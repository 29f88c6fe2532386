// Package tasks hosts scheduled background tasks: registration, runs, progress and cancellation.
package tasks

import (
	"context"
	"fmt"
	"time"
)

// ScheduledTask is a unit of background work the host can run on a schedule or on demand.
type ScheduledTask interface {
	Key() string
	Name() string
	Category() string
	Description() string
	IsEnabled() bool
	IsHidden() bool
	DefaultTriggers() []Trigger
	// Execute runs the task. progress receives percentages in [0, 100].
	// Cancellation through ctx is not an error.
	Execute(ctx context.Context, progress func(float64)) error
}

// Trigger fires a task once a day at TimeOfDay (offset from midnight, local time).
type Trigger struct {
	TimeOfDay time.Duration
}

// Daily returns a trigger that fires once a day at the given offset from midnight.
func Daily(timeOfDay time.Duration) Trigger {
	return Trigger{TimeOfDay: timeOfDay}
}

// CronSpec renders the trigger as a five-field cron expression.
func (t Trigger) CronSpec() string {
	d := t.TimeOfDay % (24 * time.Hour)
	if d < 0 {
		d += 24 * time.Hour
	}
	return fmt.Sprintf("%d %d * * *", int(d/time.Minute)%60, int(d/time.Hour))
}

func (t Trigger) String() string {
	d := t.TimeOfDay % (24 * time.Hour)
	return fmt.Sprintf("daily at %02d:%02d", int(d/time.Hour), int(d/time.Minute)%60)
}

// ParseTimeOfDay reads "HH:MM" into an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	tm, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	return time.Duration(tm.Hour())*time.Hour + time.Duration(tm.Minute())*time.Minute, nil
}
