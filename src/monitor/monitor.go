// Package monitor takes immutable snapshots of the display layout.
// All rectangles are in virtual desktop coordinates, which may have a
// negative origin when a display sits left of or above the primary.
package monitor

import (
	"errors"
	"image"

	"github.com/kbinani/screenshot"
)

// ErrNoDisplays is returned when no active display is attached.
var ErrNoDisplays = errors.New("monitor: no active displays")

// Layout is a point-in-time view of the attached displays. A session
// works against one Layout; when the live topology no longer matches
// it the session is stale and must be abandoned.
type Layout struct {
	// Virtual is the bounding rectangle of all displays.
	Virtual image.Rectangle
	// Displays holds one bounds rectangle per display, in enumeration
	// order. Index 0 is the primary.
	Displays []image.Rectangle
}

// Snapshot enumerates the current displays.
func Snapshot() (Layout, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return Layout{}, ErrNoDisplays
	}
	l := Layout{Displays: make([]image.Rectangle, 0, n)}
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		l.Displays = append(l.Displays, b)
		if i == 0 {
			l.Virtual = b
		} else {
			l.Virtual = l.Virtual.Union(b)
		}
	}
	return l, nil
}

// Equal reports whether two layouts describe the same topology.
func (l Layout) Equal(o Layout) bool {
	if l.Virtual != o.Virtual || len(l.Displays) != len(o.Displays) {
		return false
	}
	for i := range l.Displays {
		if l.Displays[i] != o.Displays[i] {
			return false
		}
	}
	return true
}

// Contains reports whether p lies on any display. Points in the
// virtual rectangle can still be off-screen with an L-shaped layout.
func (l Layout) Contains(p image.Point) bool {
	for _, d := range l.Displays {
		if p.In(d) {
			return true
		}
	}
	return false
}
