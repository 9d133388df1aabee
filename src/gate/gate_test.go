package gate

import "testing"

func TestTryAcquireDropsWhenHeld(t *testing.T) {
	g := New()
	if !g.TryAcquire() {
		t.Fatal("first TryAcquire should succeed")
	}
	if g.TryAcquire() {
		t.Error("second TryAcquire should fail while permit is held")
	}
	g.Release()
	if !g.TryAcquire() {
		t.Error("TryAcquire should succeed after Release")
	}
}

func TestAcquireBlocksUntilRelease(t *testing.T) {
	g := New()
	g.Acquire()

	done := make(chan struct{})
	go func() {
		g.Acquire()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Acquire should block while permit is held")
	default:
	}

	g.Release()
	<-done
	g.Release()
}

func TestReleaseWithoutAcquirePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on double release")
		}
	}()
	New().Release()
}
