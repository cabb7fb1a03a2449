package script

import (
	"context"
	"sort"
	"time"
)

// Scheduler runs functions later, on the same logical thread as the
// document. It is the event loop the host provides.
type Scheduler interface {
	// AfterFunc arranges for fn to run once d has elapsed. The returned
	// function cancels the call if it has not run yet.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

type task struct {
	due      time.Duration
	seq      uint64
	fn       func()
	canceled bool
	// immediate is set for calls scheduled with no delay
	immediate bool
}

// Loop is a single-threaded Scheduler with its own clock. Tests drive it
// with Advance; a host calls Run, which follows the wall clock.
//
// A call scheduled with no delay while the loop is running ends the
// current turn: it runs on the next Advance, so a timer that re-arms
// itself with a zero interval fires once per turn.
type Loop struct {
	now   time.Duration
	seq   uint64
	tasks []*task
}

var _ Scheduler = (*Loop)(nil)

func NewLoop() *Loop {
	return &Loop{}
}

// Now is the time elapsed on the loop's clock.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Len is the number of calls waiting to run.
func (l *Loop) Len() int {
	return len(l.tasks)
}

func (l *Loop) AfterFunc(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	l.seq++
	t := &task{due: l.now + d, seq: l.seq, fn: fn, immediate: d == 0}

	// keep tasks ordered by due time, then by scheduling order
	i := sort.Search(len(l.tasks), func(i int) bool {
		return l.tasks[i].due > t.due
	})
	l.tasks = append(l.tasks, nil)
	copy(l.tasks[i+1:], l.tasks[i:])
	l.tasks[i] = t

	return func() {
		if t.canceled {
			return
		}
		t.canceled = true
		for i, other := range l.tasks {
			if other == t {
				l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
				return
			}
		}
	}
}

// next removes and returns the first task due no later than limit.
// Immediate tasks scheduled after turn began are left for the next turn.
func (l *Loop) next(limit time.Duration, turn uint64) *task {
	if len(l.tasks) == 0 || l.tasks[0].due > limit {
		return nil
	}
	if t := l.tasks[0]; t.immediate && t.seq > turn {
		return nil
	}
	t := l.tasks[0]
	l.tasks = l.tasks[1:]
	return t
}

// Advance moves the clock forward by d, running every call that becomes
// due, in order. Calls scheduled while advancing run too if they fall
// within d, unless a call with no delay ends the turn first.
func (l *Loop) Advance(d time.Duration) {
	limit := l.now + d
	turn := l.seq
	for {
		t := l.next(limit, turn)
		if t == nil {
			break
		}
		if t.due > l.now {
			l.now = t.due
		}
		t.canceled = true
		t.fn()
	}
	l.now = limit
}

// Run follows the wall clock until no calls are left or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	start := time.Now()
	base := l.now
	for len(l.tasks) > 0 {
		wait := l.tasks[0].due - (base + time.Since(start))
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		l.Advance(base + time.Since(start) - l.now)
	}
	return nil
}
