package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ayoisaiah/pagetime/internal/scheduler"
	"github.com/ayoisaiah/pagetime/internal/session"
)

// Epoch is the default starting point of a Clock.
var Epoch = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

// Clock is a manually advanced clock.
type Clock struct {
	now time.Time
	mu  sync.Mutex
}

func NewClock() *Clock {
	return &Clock{now: Epoch}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// Scheduler records repeating tasks and runs them only when Tick is called.
type Scheduler struct {
	tasks    []*ManualTask
	interval time.Duration
	mu       sync.Mutex
}

// ManualTask is a task created by Scheduler.
type ManualTask struct {
	fn      func()
	stopped bool
	mu      sync.Mutex
}

func (t *ManualTask) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
}

func (t *ManualTask) active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return !t.stopped
}

func (s *Scheduler) Every(interval time.Duration, fn func()) scheduler.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &ManualTask{fn: fn}

	s.tasks = append(s.tasks, task)
	s.interval = interval

	return task
}

// Tick runs every task that has not been stopped.
func (s *Scheduler) Tick() {
	s.mu.Lock()
	tasks := make([]*ManualTask, len(s.tasks))
	copy(tasks, s.tasks)
	s.mu.Unlock()

	for _, task := range tasks {
		if task.active() {
			task.fn()
		}
	}
}

// FireStale runs every task including stopped ones, as a late timer
// callback would.
func (s *Scheduler) FireStale() {
	s.mu.Lock()
	tasks := make([]*ManualTask, len(s.tasks))
	copy(tasks, s.tasks)
	s.mu.Unlock()

	for _, task := range tasks {
		task.fn()
	}
}

// Active returns the number of tasks that have not been stopped.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int

	for _, task := range s.tasks {
		if task.active() {
			n++
		}
	}

	return n
}

// Interval returns the interval of the most recently scheduled task.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.interval
}

// Dispatcher records every summary it is given.
type Dispatcher struct {
	SendErr      error
	sent         []session.Summary
	beacons      []session.Summary
	RejectBeacon bool
	mu           sync.Mutex
}

func (d *Dispatcher) Send(_ context.Context, s session.Summary) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sent = append(d.sent, s)

	return d.SendErr
}

func (d *Dispatcher) Beacon(s session.Summary) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.RejectBeacon {
		return false
	}

	d.beacons = append(d.beacons, s)

	return true
}

// Sent returns the summaries delivered through Send.
func (d *Dispatcher) Sent() []session.Summary {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]session.Summary(nil), d.sent...)
}

// Beacons returns the summaries accepted through Beacon.
func (d *Dispatcher) Beacons() []session.Summary {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]session.Summary(nil), d.beacons...)
}
