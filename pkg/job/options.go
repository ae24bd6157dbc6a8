package job

import (
	"context"
	"log/slog"
	"time"
)

type config struct {
	logger    *slog.Logger
	schedules []scheduleConfig
	timeout   time.Duration
}

type scheduleConfig struct {
	handler  func(context.Context) error
	name     string
	schedule string
}

// Option configures the job manager.
type Option func(*config)

// WithScheduledTask registers a periodic task using structural typing.
// Schedule() returns a cron expression or descriptor.
//
//	job.WithScheduledTask(session.NewSweeper(store, "@every 10m"))
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, scheduleConfig{
			name:     task.Name(),
			schedule: task.Schedule(),
			handler:  task.Handle,
		})
	}
}

// WithScheduledFunc registers fn under name without a task type.
func WithScheduledFunc(name, schedule string, fn func(context.Context) error) Option {
	return func(c *config) {
		if fn != nil {
			c.schedules = append(c.schedules, scheduleConfig{name: name, schedule: schedule, handler: fn})
		}
	}
}

// WithLogger sets the logger for task runs. If not set, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTaskTimeout bounds every run. Zero means no limit.
func WithTaskTimeout(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.timeout = d
		}
	}
}
