package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// measure returns the pixel box a label occupies.
func measure(s string) (w, h int) {
	return len(s) * face.Advance, face.Height
}

// drawText draws s with its top-left corner at (x, y) over whatever
// is already in dst.
func drawText(dst *image.RGBA, s string, x, y int, fg color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(s)
}

// drawLabel draws s on a filled background box with its top-left
// corner at (x, y).
func drawLabel(dst *image.RGBA, s string, x, y int, fg, bg color.RGBA) {
	w, h := measure(s)
	fillRect(dst, image.Rect(x, y, x+w, y+h), bg)
	drawText(dst, s, x, y, fg)
}

// alignment of a label relative to its anchor point. The zero value
// anchors the top-left corner.
type align struct {
	right  bool // x is the right edge
	bottom bool // y is the bottom edge
	center bool // x is the horizontal center
}

// drawAligned resolves the anchor to a top-left corner and draws.
// Labels whose box would be degenerate draw nothing.
func drawAligned(dst *image.RGBA, s string, x, y int, a align, fg, bg color.RGBA, opaque bool) {
	w, h := measure(s)
	if w <= 0 || h <= 0 {
		return
	}
	switch {
	case a.center:
		x -= w / 2
	case a.right:
		x -= w
	}
	if a.bottom {
		y -= h
	}
	if opaque {
		drawLabel(dst, s, x, y, fg, bg)
	} else {
		drawText(dst, s, x, y, fg)
	}
}

// drawLabelRotated draws s rotated a quarter turn counter-clockwise,
// reading bottom to top, with (x, y) the bottom-left corner of the
// occupied box.
func drawLabelRotated(dst *image.RGBA, s string, x, y int, fg, bg color.RGBA) {
	w, h := measure(s)
	if w <= 0 || h <= 0 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(tmp, tmp.Bounds(), bg)
	drawText(tmp, s, 0, 0, fg)

	b := dst.Bounds()
	for oy := 0; oy < w; oy++ {
		for ox := 0; ox < h; ox++ {
			px, py := x+ox, y-w+1+oy
			if !(image.Pt(px, py).In(b)) {
				continue
			}
			dst.SetRGBA(px, py, tmp.RGBAAt(w-1-oy, ox))
		}
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
}
