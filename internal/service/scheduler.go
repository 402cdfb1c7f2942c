package service

import "time"

// TimerHandle is a cancellable reference to a scheduled callback.
type TimerHandle interface {
	Stop() bool
}

// Scheduler arms delayed callbacks. The only production implementation
// wraps time.AfterFunc; tests substitute a manual scheduler to drive ticks
// deterministically.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) TimerHandle
}

type timeScheduler struct{}

// NewTimeScheduler returns a Scheduler backed by time.AfterFunc.
func NewTimeScheduler() Scheduler {
	return timeScheduler{}
}

func (timeScheduler) Schedule(d time.Duration, fn func()) TimerHandle {
	return time.AfterFunc(d, fn)
}
