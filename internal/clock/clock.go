package clock

import (
	"sort"
	"sync"
	"time"
)

// Clock allows injecting time in domain/services.
type Clock interface {
	Now() time.Time
}

// Scheduler runs fn once after d has elapsed. Implementations call fn on
// their own goroutine; callers must synchronize any state fn touches.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type systemScheduler struct{}

// NewSystemScheduler returns a scheduler backed by time.AfterFunc.
func NewSystemScheduler() Scheduler {
	return systemScheduler{}
}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func())

func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) {
	f(d, fn)
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Manual is a Clock and Scheduler whose time only moves when Advance is
// called. Due callbacks run synchronously inside Advance, in due order.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	pending []manualTimer
}

type manualTimer struct {
	at  time.Time
	seq int
	fn  func()
}

// NewManual returns a manual clock starting at t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t.UTC()}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.pending = append(m.pending, manualTimer{at: m.now.Add(d), seq: m.seq, fn: fn})
}

// Pending reports how many callbacks have not fired yet.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Advance moves time forward by d and fires every callback that became due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now

	var due, rest []manualTimer
	for _, t := range m.pending {
		if t.at.After(now) {
			rest = append(rest, t)
			continue
		}
		due = append(due, t)
	}
	m.pending = rest
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, t := range due {
		t.fn()
	}
}
