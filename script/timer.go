package script

import (
	"log/slog"
	"time"

	"github.com/lestrrat-go/dax/event"
)

// Timer fires SVGTimer events. After Start the first event comes Delay
// milliseconds later; with a RepeatInterval of zero or more it keeps
// firing at that interval until Stop, otherwise it fires once.
type Timer struct {
	delay          int64
	repeatInterval int64
	running        bool
	cancel         func()
	scheduler      Scheduler
	listeners      event.Listeners
	logger         *slog.Logger
}

var _ event.Target = (*Timer)(nil)

func NewTimer(s Scheduler, delay, repeatInterval int64, logger *slog.Logger) *Timer {
	return &Timer{
		delay:          delay,
		repeatInterval: repeatInterval,
		scheduler:      s,
		logger:         logger,
	}
}

func (t *Timer) Delay() int64 {
	return t.delay
}

func (t *Timer) SetDelay(v int64) {
	t.delay = v
}

func (t *Timer) RepeatInterval() int64 {
	return t.repeatInterval
}

func (t *Timer) SetRepeatInterval(v int64) {
	t.repeatInterval = v
}

func (t *Timer) Running() bool {
	return t.running
}

// Start arms the timer. Starting a running timer does nothing.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.schedule(t.delay)
}

func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.running = false
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Timer) schedule(ms int64) {
	t.cancel = t.scheduler.AfterFunc(time.Duration(ms)*time.Millisecond, t.fire)
}

func (t *Timer) fire() {
	t.cancel = nil
	if !t.running {
		return
	}
	// arm the next round first so a listener can Stop it
	if t.repeatInterval >= 0 {
		t.schedule(t.repeatInterval)
	} else {
		t.running = false
	}
	t.DispatchEvent(event.New(event.Timer, false))
}

func (t *Timer) AddEventListener(typ event.Type, l event.Listener, useCapture bool) {
	t.listeners.Add(typ, l, useCapture)
}

func (t *Timer) RemoveEventListener(typ event.Type, l event.Listener, useCapture bool) {
	t.listeners.Remove(typ, l, useCapture)
}

func (t *Timer) DispatchEvent(ev *event.Event) bool {
	return t.listeners.Dispatch(t, ev, t.logger)
}
