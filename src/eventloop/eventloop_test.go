package eventloop

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/codingABI/abiSnip/src/gate"
	"github.com/codingABI/abiSnip/src/monitor"
	"github.com/codingABI/abiSnip/src/overlay"
	"github.com/codingABI/abiSnip/src/persist"
	"github.com/codingABI/abiSnip/src/session"
	"github.com/codingABI/abiSnip/src/settings"
)

type nullStore struct{}

func (nullStore) ReadInt(settings.Scope, string) (int64, bool)     { return 0, false }
func (nullStore) ReadString(settings.Scope, string) (string, bool) { return "", false }
func (nullStore) WriteInt(string, int64) error                     { return nil }
func (nullStore) WriteString(string, string) error                 { return nil }
func (nullStore) Delete(string) error                              { return nil }

// signals collects notifications from controller callbacks, which run
// on the loop goroutine.
type signals struct {
	captured chan struct{}
	saved    chan struct{}
}

func testController(t *testing.T, sig *signals) *session.Controller {
	t.Helper()
	layout := monitor.Layout{
		Virtual:  image.Rect(0, 0, 640, 480),
		Displays: []image.Rectangle{image.Rect(0, 0, 640, 480)},
	}
	return session.New(session.Options{
		Host:     overlay.NewHeadless(),
		Settings: settings.NewResolver(nullStore{}),
		Gate:     gate.New(),
		Capture: func(image.Rectangle) (*image.RGBA, error) {
			select {
			case sig.captured <- struct{}{}:
			default:
			}
			return image.NewRGBA(image.Rect(0, 0, 640, 480)), nil
		},
		Layout: func() (monitor.Layout, error) { return layout, nil },
		Save: func(persist.Request) (persist.Result, error) {
			select {
			case sig.saved <- struct{}{}:
			default:
			}
			return persist.Result{}, nil
		},
		FallbackDir: t.TempDir(),
	})
}

func newSignals() *signals {
	return &signals{
		captured: make(chan struct{}, 8),
		saved:    make(chan struct{}, 8),
	}
}

func TestLoopProcessesPostedEvents(t *testing.T) {
	sig := newSignals()
	l := New(testController(t, sig))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	l.Trigger()
	l.Post(session.Click(10, 10))
	l.Post(session.Click(100, 100))

	select {
	case <-sig.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("selection never persisted")
	}
	select {
	case <-sig.saved:
		t.Error("persisted more than once")
	case <-time.After(50 * time.Millisecond):
	}
	cancel()
	<-done
}

func TestTriggerCancelsPendingDelay(t *testing.T) {
	sig := newSignals()
	l := New(testController(t, sig))

	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	defer cancel()

	l.TriggerDelayed(30 * time.Millisecond)
	l.Trigger()

	// The immediate trigger starts one session. If the delayed one
	// had survived it would fire a second capture after the session
	// is cancelled below.
	select {
	case <-sig.captured:
	case <-time.After(2 * time.Second):
		t.Fatal("immediate trigger never captured")
	}
	l.Post(session.Cancel())

	select {
	case <-sig.captured:
		t.Error("cancelled delayed trigger still fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDelayedTriggerFires(t *testing.T) {
	sig := newSignals()
	l := New(testController(t, sig))

	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	defer cancel()

	l.TriggerDelayed(20 * time.Millisecond)
	select {
	case <-sig.captured:
	case <-time.After(2 * time.Second):
		t.Fatal("delayed trigger never started a session")
	}
}
