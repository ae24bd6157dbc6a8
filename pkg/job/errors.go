package job

import "errors"

// Job errors.
var (
	// ErrUnknownTask is returned by Run for a name that was never registered.
	ErrUnknownTask = errors.New("job: unknown task")

	// ErrInvalidSchedule is returned by NewManager for a schedule that does
	// not parse.
	ErrInvalidSchedule = errors.New("job: invalid schedule")

	// ErrDuplicateTask is returned by NewManager when two tasks share a name.
	ErrDuplicateTask = errors.New("job: duplicate task")

	// ErrAlreadyStarted is returned when starting a running manager.
	ErrAlreadyStarted = errors.New("job: already started")

	// ErrNotStarted is returned when stopping a manager that is not running.
	ErrNotStarted = errors.New("job: not started")
)
