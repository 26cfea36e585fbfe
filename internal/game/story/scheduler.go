// Package story drives the scripted side of the game: deferred
// continuations, one-shot narrative events, and the fixed event table.
package story

import (
	"sort"
	"time"
)

type task struct {
	seq int
	due time.Time
	fn  func()
}

// Scheduler holds deferred continuations and releases them when their
// due time passes. It does no timing of its own: the owning run loop
// calls RunDue, so everything stays on one goroutine and tests can
// drive it with a fake clock.
type Scheduler struct {
	now     func() time.Time
	nextSeq int
	tasks   []task
}

// NewScheduler returns a scheduler reading time from now. A nil now
// uses the wall clock.
func NewScheduler(now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{now: now}
}

// After schedules fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) {
	s.nextSeq++
	s.tasks = append(s.tasks, task{seq: s.nextSeq, due: s.now().Add(d), fn: fn})
}

// Step is one beat of a timed narrative sequence.
type Step struct {
	Delay time.Duration
	Do    func()
}

// RunSteps schedules a sequence of steps, each delay relative to the
// previous step. Steps re-read live state when they run, never state
// captured at schedule time.
func (s *Scheduler) RunSteps(steps []Step) {
	total := time.Duration(0)
	for _, step := range steps {
		total += step.Delay
		s.After(total, step.Do)
	}
}

// RunDue runs every continuation whose due time has passed, in schedule
// order, and reports how many ran. Continuations scheduled by a running
// continuation wait for a later call.
func (s *Scheduler) RunDue() int {
	now := s.now()

	var due []task
	var rest []task
	for _, t := range s.tasks {
		if t.due.After(now) {
			rest = append(rest, t)
			continue
		}
		due = append(due, t)
	}
	if len(due) == 0 {
		return 0
	}
	s.tasks = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns how many continuations are still scheduled.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
