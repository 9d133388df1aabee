// Package overlay defines the window host a capture session runs in.
// The host shows rendered frames over the whole virtual desktop and
// owns the mouse cursor; the session logic never talks to a windowing
// system directly.
package overlay

import "image"

// Host is the platform window behind a capture session. All
// coordinates are virtual desktop pixels.
type Host interface {
	// Show places the window over bounds, borderless and on top.
	// Calling Show again re-asserts the placement, which the session
	// does when something else resized the window.
	Show(bounds image.Rectangle) error
	// Hide removes the window without destroying it.
	Hide()
	// Bounds returns the current window placement.
	Bounds() image.Rectangle
	// Invalidate requests a repaint of the next frame.
	Invalidate()
	// CursorPos returns the current mouse position.
	CursorPos() image.Point
	// WarpCursor moves the mouse pointer.
	WarpCursor(p image.Point)
}
