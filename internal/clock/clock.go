// Package clock schedules deferred callbacks. Callbacks never run inside
// After; they fire later on whatever loop drives the scheduler.
package clock

import "time"

// Scheduler runs fn once after d has elapsed. There is no cancellation.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func())

func (f SchedulerFunc) After(d time.Duration, fn func()) {
	f(d, fn)
}

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

// Manual is a virtual-time scheduler. Time only moves when Advance is called.
type Manual struct {
	now     time.Duration
	seq     int
	pending []timer
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.seq++
	m.pending = append(m.pending, timer{at: m.now + d, seq: m.seq, fn: fn})
}

// Now reports the virtual time elapsed since the scheduler was created.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending reports how many callbacks have not fired yet.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves time forward by d, firing every callback that falls due in
// order of due time, then scheduling order. Callbacks scheduled while
// advancing fire too if they are due before the new time.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		i := m.next()
		if i < 0 || m.pending[i].at > target {
			break
		}
		t := m.pending[i]
		m.pending = append(m.pending[:i], m.pending[i+1:]...)
		m.now = t.at
		t.fn()
	}
	m.now = target
}

// RunUntilIdle keeps advancing to the next due callback until nothing is
// pending or limit advances have been made. It returns the number of advances.
func (m *Manual) RunUntilIdle(limit int) int {
	steps := 0
	for ; steps < limit; steps++ {
		i := m.next()
		if i < 0 {
			break
		}
		m.Advance(m.pending[i].at - m.now)
	}
	return steps
}

func (m *Manual) next() int {
	best := -1
	for i, t := range m.pending {
		if best < 0 || t.at < m.pending[best].at || (t.at == m.pending[best].at && t.seq < m.pending[best].seq) {
			best = i
		}
	}
	return best
}
