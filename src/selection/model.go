package selection

import "image"

// Model edits one selection against a fixed screenshot. It is not
// safe for concurrent use; the event loop owns it.
type Model struct {
	img      *image.RGBA
	bounds   image.Rectangle   // (0,0)-(w,h)
	displays []image.Rectangle // bitmap-local display bounds
	display  int               // last display picked by NextDisplay
	sel      Rect
}

// NewModel builds a model over the captured screenshot. displays must
// already be translated to bitmap-local coordinates.
func NewModel(img *image.RGBA, displays []image.Rectangle) *Model {
	return &Model{
		img:      img,
		bounds:   img.Bounds(),
		displays: displays,
		display:  -1,
	}
}

// Selection returns the current rectangle.
func (m *Model) Selection() Rect { return m.sel }

// SetSelection replaces the rectangle wholesale, clamping set edges.
func (m *Model) SetSelection(r Rect) {
	if r.Left.Set {
		r.Left.Value = m.clampX(r.Left.Value)
	}
	if r.Top.Set {
		r.Top.Value = m.clampY(r.Top.Value)
	}
	if r.Right.Set {
		r.Right.Value = m.clampX(r.Right.Value)
	}
	if r.Bottom.Set {
		r.Bottom.Value = m.clampY(r.Bottom.Value)
	}
	m.sel = r
}

// Clear unsets all four edges.
func (m *Model) Clear() { m.sel = Rect{} }

// Seed places point A and unsets point B, the shape a session starts
// with before the first click.
func (m *Model) Seed(x, y int) {
	m.sel = Rect{Left: C(m.clampX(x)), Top: C(m.clampY(y))}
}

// Set moves one point to an absolute position.
func (m *Model) Set(p Point, x, y int) {
	x, y = m.clampX(x), m.clampY(y)
	if p == PointA {
		m.sel.Left, m.sel.Top = C(x), C(y)
	} else {
		m.sel.Right, m.sel.Bottom = C(x), C(y)
	}
}

// Pos returns the position of a point if both its edges are set.
func (m *Model) Pos(p Point) (image.Point, bool) {
	if p == PointA {
		if !m.sel.Left.Set || !m.sel.Top.Set {
			return image.Point{}, false
		}
		return image.Pt(m.sel.Left.Value, m.sel.Top.Value), true
	}
	if !m.sel.Right.Set || !m.sel.Bottom.Set {
		return image.Point{}, false
	}
	return image.Pt(m.sel.Right.Value, m.sel.Bottom.Value), true
}

// Move shifts a point by step pixels in one direction, clamped to the
// bitmap. Unset points do not move.
func (m *Model) Move(p Point, d Direction, step int) {
	pos, ok := m.Pos(p)
	if !ok {
		return
	}
	v := d.vec()
	m.Set(p, pos.X+v.X*step, pos.Y+v.Y*step)
}

// Snap slides a point in one direction to the far end of the run of
// identically colored pixels it starts on. The point lands on the last
// pixel before the color changes, or on the bitmap edge.
func (m *Model) Snap(p Point, d Direction) {
	pos, ok := m.Pos(p)
	if !ok {
		return
	}
	start := m.img.RGBAAt(pos.X, pos.Y)
	v := d.vec()
	for {
		next := pos.Add(v)
		if !next.In(m.bounds) || m.img.RGBAAt(next.X, next.Y) != start {
			break
		}
		pos = next
	}
	m.Set(p, pos.X, pos.Y)
}

// SelectAll covers the whole bitmap.
func (m *Model) SelectAll() {
	m.sel = RectOf(0, 0, m.bounds.Dx()-1, m.bounds.Dy()-1)
}

// NextDisplay selects the next display in enumeration order, wrapping
// around, and returns its index.
func (m *Model) NextDisplay() int {
	m.display = (m.display + 1) % len(m.displays)
	d := m.displays[m.display]
	m.sel = RectOf(d.Min.X, d.Min.Y, d.Max.X-1, d.Max.Y-1)
	return m.display
}

// Resize grows (step>0) or shrinks (step<0) the selection
// symmetrically around its center. An axis too small to shrink
// collapses to its midpoint instead of inverting. No-op unless the
// rectangle is complete.
func (m *Model) Resize(step int) {
	if !m.sel.Complete() {
		return
	}
	l, r := resizeAxis(m.sel.Left.Value, m.sel.Right.Value, step)
	t, b := resizeAxis(m.sel.Top.Value, m.sel.Bottom.Value, step)
	m.sel.Left.Value, m.sel.Right.Value = m.clampX(l), m.clampX(r)
	m.sel.Top.Value, m.sel.Bottom.Value = m.clampY(t), m.clampY(b)
}

// resizeAxis works on one axis, preserving which end is a and which is
// b even when they are swapped.
func resizeAxis(a, b, step int) (int, int) {
	lo, hi := a, b
	swapped := lo > hi
	if swapped {
		lo, hi = hi, lo
	}
	if step > 0 || hi-lo >= -2*step {
		lo -= step
		hi += step
	} else {
		mid := (lo + hi) / 2
		lo, hi = mid, mid
	}
	if swapped {
		return hi, lo
	}
	return lo, hi
}

func (m *Model) clampX(x int) int { return clamp(x, 0, m.bounds.Dx()-1) }
func (m *Model) clampY(y int) int { return clamp(y, 0, m.bounds.Dy()-1) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
