package job

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Manager runs scheduled tasks on a cron clock.
type Manager struct {
	cron    *cron.Cron
	logger  *slog.Logger
	tasks   map[string]scheduleConfig
	names   []string
	timeout time.Duration

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	baseCtx context.Context
}

// NewManager validates every schedule and registers the tasks. Nothing runs
// until Start.
func NewManager(opts ...Option) (*Manager, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Manager{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  cfg.logger,
		tasks:   make(map[string]scheduleConfig, len(cfg.schedules)),
		timeout: cfg.timeout,
		baseCtx: context.Background(),
	}

	for _, sched := range cfg.schedules {
		if _, dup := m.tasks[sched.name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, sched.name)
		}
		schedule, err := parseSchedule(sched.schedule)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, sched.schedule, err)
		}

		name := sched.name
		m.cron.Schedule(schedule, cron.FuncJob(func() {
			_ = m.run(m.context(), name)
		}))
		m.tasks[name] = sched
		m.names = append(m.names, name)
	}

	return m, nil
}

// Tasks lists registered task names in registration order.
func (m *Manager) Tasks() []string {
	return append([]string(nil), m.names...)
}

// Start begins ticking. Runs get a context that is cancelled by Stop.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	m.baseCtx, m.cancel = context.WithCancel(context.WithoutCancel(ctx))
	m.cron.Start()
	m.started = true
	m.logger.Info("job manager started", slog.Int("tasks", len(m.names)))
	return nil
}

// Stop halts the clock and waits for running tasks, or for ctx.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return ErrNotStarted
	}
	done := m.cron.Stop()
	m.cancel()
	m.started = false
	m.mu.Unlock()

	select {
	case <-done.Done():
		m.logger.Info("job manager stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("job: stop: %w", ctx.Err())
	}
}

// Run executes a registered task immediately, outside the schedule.
func (m *Manager) Run(ctx context.Context, name string) error {
	if _, ok := m.tasks[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return m.run(ctx, name)
}

func (m *Manager) run(ctx context.Context, name string) error {
	task := m.tasks[name]
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	start := time.Now()
	m.logger.DebugContext(ctx, "executing task", slog.String("task", name))

	if err := task.handler(ctx); err != nil {
		m.logger.ErrorContext(ctx, "task failed",
			slog.String("task", name),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return err
	}

	m.logger.DebugContext(ctx, "task completed",
		slog.String("task", name),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (m *Manager) context() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.baseCtx
}

func (m *Manager) isStarted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

func parseSchedule(expr string) (cron.Schedule, error) {
	return cron.ParseStandard(expr)
}

// Shutdown returns Stop as an app shutdown hook.
func (m *Manager) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		return m.Stop(ctx)
	}
}

// StartFunc returns Start as an app startup hook.
func (m *Manager) StartFunc() func(context.Context) error {
	return func(ctx context.Context) error {
		return m.Start(ctx)
	}
}
