// Package selection implements the two-point rectangle model used
// while picking a screen region. Coordinates are bitmap-local pixels:
// (0,0) is the top-left of the captured virtual desktop and all edges
// are inclusive, so a one-pixel selection has Left==Right.
package selection

import (
	"fmt"
	"image"
)

// Coord is an optional pixel coordinate. The zero value is unset.
type Coord struct {
	Value int
	Set   bool
}

// C returns a set Coord.
func C(v int) Coord { return Coord{Value: v, Set: true} }

// Point names one of the two corners being edited. PointA owns
// Left/Top, PointB owns Right/Bottom, regardless of which corner is
// visually top-left.
type Point int

const (
	PointA Point = iota
	PointB
)

func (p Point) String() string {
	if p == PointA {
		return "A"
	}
	return "B"
}

// Direction is a unit movement along one axis.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) vec() image.Point {
	switch d {
	case Up:
		return image.Pt(0, -1)
	case Down:
		return image.Pt(0, 1)
	case Left:
		return image.Pt(-1, 0)
	default:
		return image.Pt(1, 0)
	}
}

// Rect is a selection rectangle with independently optional edges.
// Left/Top belong to point A and Right/Bottom to point B; the pair may
// be swapped or partially unset while a selection is in progress.
type Rect struct {
	Left, Top, Right, Bottom Coord
}

// RectOf returns a fully set rectangle.
func RectOf(left, top, right, bottom int) Rect {
	return Rect{C(left), C(top), C(right), C(bottom)}
}

// Complete reports whether all four edges are set.
func (r Rect) Complete() bool {
	return r.Left.Set && r.Top.Set && r.Right.Set && r.Bottom.Set
}

// NonDegenerate reports whether the rectangle is complete and spans at
// least two pixels on both axes. A selection where both points share a
// row or column is rejected only here, at confirm time, never while it
// is still being edited.
func (r Rect) NonDegenerate() bool {
	return r.Complete() &&
		r.Left.Value != r.Right.Value &&
		r.Top.Value != r.Bottom.Value
}

// Normalized returns r with Left<=Right and Top<=Bottom. Unset edges
// are passed through unchanged.
func (r Rect) Normalized() Rect {
	if r.Left.Set && r.Right.Set && r.Left.Value > r.Right.Value {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top.Set && r.Bottom.Set && r.Top.Value > r.Bottom.Value {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Bounds converts a complete rectangle to a half-open image.Rectangle.
// The inclusive edges make the returned size extent+1.
func (r Rect) Bounds() image.Rectangle {
	n := r.Normalized()
	return image.Rect(n.Left.Value, n.Top.Value, n.Right.Value+1, n.Bottom.Value+1)
}

// Width returns the inclusive pixel width of a complete rectangle.
func (r Rect) Width() int {
	if !r.Complete() {
		return 0
	}
	return abs(r.Right.Value-r.Left.Value) + 1
}

// Height returns the inclusive pixel height of a complete rectangle.
func (r Rect) Height() int {
	if !r.Complete() {
		return 0
	}
	return abs(r.Bottom.Value-r.Top.Value) + 1
}

func (r Rect) String() string {
	e := func(c Coord) string {
		if !c.Set {
			return "?"
		}
		return fmt.Sprintf("%d", c.Value)
	}
	return fmt.Sprintf("(%s,%s)-(%s,%s)", e(r.Left), e(r.Top), e(r.Right), e(r.Bottom))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
