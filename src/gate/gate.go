// Package gate serializes exclusive UI work. At most one capture
// session or modal dialog may run at a time; everything else either
// waits or drops its request.
package gate

// Gate is a single-permit gate. The zero value is not usable, call New.
type Gate struct {
	slot chan struct{}
}

// New returns a Gate whose permit is available.
func New() *Gate {
	g := &Gate{slot: make(chan struct{}, 1)}
	g.slot <- struct{}{}
	return g
}

// TryAcquire takes the permit without blocking. It returns false when
// the permit is already held; callers are expected to drop their
// request in that case, not queue it.
func (g *Gate) TryAcquire() bool {
	select {
	case <-g.slot:
		return true
	default:
		return false
	}
}

// Acquire blocks until the permit is available.
func (g *Gate) Acquire() {
	<-g.slot
}

// Release returns the permit. Releasing a permit that was never
// acquired panics, which points at the buggy caller.
func (g *Gate) Release() {
	select {
	case g.slot <- struct{}{}:
	default:
		panic("gate: release without acquire")
	}
}
