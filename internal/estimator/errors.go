package estimator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval is matched by InvalidIntervalError.
	ErrInvalidInterval = errors.New("invalid heartbeat interval")

	// ErrInvalidSchedule is matched by InvalidScheduleError.
	ErrInvalidSchedule = errors.New("invalid heartbeat schedule")

	// ErrInvalidTaskCount is matched by InvalidTaskCountError.
	ErrInvalidTaskCount = errors.New("invalid task count")
)

// InvalidIntervalError reports a non-positive polling interval.
type InvalidIntervalError struct {
	Minutes float64
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("heartbeat interval must be greater than 0 minutes (got %g)", e.Minutes)
}

// Is lets errors.Is match ErrInvalidInterval.
func (e *InvalidIntervalError) Is(target error) bool {
	return target == ErrInvalidInterval
}

// InvalidScheduleError reports a cron expression that cannot be parsed.
type InvalidScheduleError struct {
	Schedule string
	Err      error
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid heartbeat schedule %q: %v", e.Schedule, e.Err)
}

func (e *InvalidScheduleError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrInvalidSchedule.
func (e *InvalidScheduleError) Is(target error) bool {
	return target == ErrInvalidSchedule
}

// InvalidTaskCountError reports a negative or non-finite task total.
type InvalidTaskCountError struct {
	Tasks float64
}

func (e *InvalidTaskCountError) Error() string {
	return fmt.Sprintf("total tasks must be a non-negative number (got %g)", e.Tasks)
}

// Is lets errors.Is match ErrInvalidTaskCount.
func (e *InvalidTaskCountError) Is(target error) bool {
	return target == ErrInvalidTaskCount
}
