// Package eventloop is the single-threaded coordinator. Hotkey
// presses, tray clicks, overlay input and timers all funnel into one
// channel, so the session controller never sees concurrent access.
package eventloop

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/codingABI/abiSnip/src/monitor"
	"github.com/codingABI/abiSnip/src/session"
)

const eventBuffer = 64

// Loop drives one session controller.
type Loop struct {
	ctrl   *session.Controller
	events chan session.Event

	mu    sync.Mutex
	delay *time.Timer
}

func New(ctrl *session.Controller) *Loop {
	return &Loop{
		ctrl:   ctrl,
		events: make(chan session.Event, eventBuffer),
	}
}

// Post queues an event. Safe from any goroutine; a full queue drops
// the event rather than blocking an input hook.
func (l *Loop) Post(ev session.Event) {
	select {
	case l.events <- ev:
	default:
		log.Printf("Event queue full, dropping event kind=%d", ev.Kind)
	}
}

// Trigger requests a capture session now.
func (l *Loop) Trigger() {
	l.cancelDelayed()
	l.Post(session.Trigger())
}

// TriggerDelayed requests a capture session after d. A newer request,
// delayed or immediate, replaces a pending one.
func (l *Loop) TriggerDelayed(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.delay != nil {
		l.delay.Stop()
	}
	log.Printf("Capture scheduled in %v", d)
	l.delay = time.AfterFunc(d, func() {
		l.Post(session.Trigger())
	})
}

func (l *Loop) cancelDelayed() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.delay != nil {
		l.delay.Stop()
		l.delay = nil
	}
}

// Run processes events until ctx is cancelled. While a session is
// active a one-second tick drives the blink repaint, the fullscreen
// self-heal and display change detection.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	defer l.cancelDelayed()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Event loop stopping: %v", ctx.Err())
			return
		case ev := <-l.events:
			l.ctrl.Handle(ev)
		case <-ticker.C:
			if l.ctrl.State() == session.StateIdle {
				continue
			}
			if l.displayTopologyChanged() {
				log.Printf("Display layout changed, abandoning session")
				l.ctrl.Handle(session.Event{Kind: session.EvDisplayChange})
				continue
			}
			l.ctrl.Handle(session.Event{Kind: session.EvTick})
		}
	}
}

// displayTopologyChanged compares the live display layout against the
// snapshot the running session was built on.
func (l *Loop) displayTopologyChanged() bool {
	live, err := monitor.Snapshot()
	if err != nil {
		return true
	}
	return !live.Equal(l.ctrl.Layout())
}
