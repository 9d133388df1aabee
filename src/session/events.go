package session

import (
	"image"

	"github.com/codingABI/abiSnip/src/selection"
)

// State is the capture session phase.
type State int

const (
	// StateIdle means no session is running; the app sits in the tray.
	StateIdle State = iota
	// StateFirstPoint follows the cursor with point A before the
	// selection exists.
	StateFirstPoint
	// StatePointA edits point A of an existing selection.
	StatePointA
	// StatePointB edits point B of an existing selection.
	StatePointB
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFirstPoint:
		return "firstPoint"
	case StatePointA:
		return "pointA"
	default:
		return "pointB"
	}
}

// EventKind discriminates session events.
type EventKind int

const (
	EvTrigger EventKind = iota
	EvConfirm
	EvCancel
	EvMouseMove
	EvMove
	EvTogglePoint
	EvSelectAll
	EvNextDisplay
	EvResize
	EvZoomIn
	EvZoomOut
	EvStoreSelection
	EvRestoreSelection
	EvClearSelection
	EvPixelate
	EvMarkBox
	EvToggleClipboard
	EvToggleFile
	EvToggleAltColors
	EvToggleDiagnostics
	EvDisplayChange
	EvTick
)

// Event is one input delivered to the controller. Pos is in virtual
// desktop coordinates and only meaningful when HasPos is set.
type Event struct {
	Kind   EventKind
	Pos    image.Point
	HasPos bool

	// Move parameters.
	Dir  selection.Direction
	Fast bool // larger step
	Snap bool // slide to the next color change

	// Resize direction, +1 to grow, -1 to shrink.
	Step int
}

// Common event constructors, to keep call sites short.

func Trigger() Event { return Event{Kind: EvTrigger} }
func Confirm() Event { return Event{Kind: EvConfirm} }
func Cancel() Event  { return Event{Kind: EvCancel} }

func Click(x, y int) Event {
	return Event{Kind: EvConfirm, Pos: image.Pt(x, y), HasPos: true}
}

func MouseMove(x, y int) Event {
	return Event{Kind: EvMouseMove, Pos: image.Pt(x, y), HasPos: true}
}

func Move(d selection.Direction, fast, snap bool) Event {
	return Event{Kind: EvMove, Dir: d, Fast: fast, Snap: snap}
}

func Resize(step int) Event { return Event{Kind: EvResize, Step: step} }
