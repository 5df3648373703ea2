// Package scheduler runs repeating tasks for session checkpoints
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	atomicschedule "atomicgo.dev/schedule"
)

// Task is a handle to a scheduled repeating function.
type Task interface {
	// Stop cancels all future runs. It is safe to call more than once.
	Stop()
}

// Scheduler starts repeating tasks.
type Scheduler interface {
	// Every calls fn once per interval until the returned task is stopped.
	Every(interval time.Duration, fn func()) Task
}

// Interval is the production Scheduler.
type Interval struct{}

type intervalTask struct {
	task    *atomicschedule.Task
	stopped atomic.Bool
	once    sync.Once
}

// Every runs fn on its own goroutine at each tick so a slow callback never
// holds up the ticker or a concurrent Stop.
func (Interval) Every(interval time.Duration, fn func()) Task {
	t := &intervalTask{}

	// schedule.Every ignores the callback's result, so the stopped flag is
	// what keeps a tick that races with Stop from running fn.
	t.task = atomicschedule.Every(interval, func() bool {
		if !t.stopped.Load() {
			go fn()
		}

		return true
	})

	return t
}

func (t *intervalTask) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		t.task.Stop()
	})
}
