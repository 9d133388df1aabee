package overlay

import "image"

// Headless is a Host without a window. One-shot captures use it
// because they never show an overlay, and tests use it to observe
// what a session asked the host to do.
type Headless struct {
	bounds  image.Rectangle
	cursor  image.Point
	visible bool

	// Repaints counts Invalidate calls.
	Repaints int
}

func NewHeadless() *Headless { return &Headless{} }

func (h *Headless) Show(bounds image.Rectangle) error {
	h.bounds = bounds
	h.visible = true
	return nil
}

func (h *Headless) Hide()                   { h.visible = false }
func (h *Headless) Bounds() image.Rectangle { return h.bounds }
func (h *Headless) Invalidate()             { h.Repaints++ }
func (h *Headless) CursorPos() image.Point  { return h.cursor }
func (h *Headless) WarpCursor(p image.Point) {
	h.cursor = p
}

// Visible reports whether Show was called more recently than Hide.
func (h *Headless) Visible() bool { return h.visible }

// SetBounds simulates an outside actor resizing the window.
func (h *Headless) SetBounds(b image.Rectangle) { h.bounds = b }

// SetCursor simulates the user moving the mouse.
func (h *Headless) SetCursor(p image.Point) { h.cursor = p }
