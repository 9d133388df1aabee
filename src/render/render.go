// Package render composes the overlay frame shown during a capture
// session: the darkened screenshot, the selection cutout with its
// frame and dimension labels, the zoom boxes around the active points
// and an optional diagnostics block. Everything draws into a plain
// RGBA buffer; putting that buffer on screen is the host's job.
package render

import (
	"image"
	"image/color"
	"strconv"
	"time"

	"github.com/codingABI/abiSnip/src/selection"
	"golang.org/x/image/draw"
)

// Zoom box geometry. A zoom box magnifies a ZoomWidth x ZoomHeight
// area of the screenshot by the current zoom scale.
const (
	ZoomWidth  = 32
	ZoomHeight = 32
)

// Screenshot darkening strength outside the selection.
const darkenAlpha = 50

// Anchor names the corner a zoom box belongs to.
type Anchor int

const (
	// AnchorFirst is point A before point B exists; its zoom box is
	// centered on the point and carries a crosshair.
	AnchorFirst Anchor = iota
	// AnchorA and AnchorB sit flush against the selection corner,
	// outside the selected area.
	AnchorA
	AnchorB
)

// Params is everything one frame needs. The renderer holds no state
// between frames; blinking derives from Now.
type Params struct {
	Screenshot  *image.RGBA
	Selection   selection.Rect
	Active      Anchor // anchor currently following the cursor
	Zoom        int
	AltColors   bool
	Diagnostics []string
	Now         time.Time
}

type palette struct {
	accent color.RGBA
	text   color.RGBA // drawn on accent background
	darken bool
}

func (p Params) palette() palette {
	if p.AltColors {
		return palette{
			accent: color.RGBA{0, 116, 129, 255},
			text:   color.RGBA{255, 255, 255, 255},
			darken: false,
		}
	}
	return palette{
		accent: color.RGBA{245, 167, 66, 255},
		text:   color.RGBA{255, 255, 255, 255},
		darken: true,
	}
}

// Compose renders one overlay frame into dst, which must have the
// same bounds as the screenshot.
func Compose(dst *image.RGBA, p Params) {
	pal := p.palette()
	draw.Draw(dst, dst.Bounds(), p.Screenshot, p.Screenshot.Bounds().Min, draw.Src)
	if pal.darken {
		darken(dst)
	}

	if p.Active == AnchorFirst {
		drawZoomBox(dst, p, pal, AnchorFirst)
		drawDiagnostics(dst, p, pal)
		return
	}

	if p.Selection.Complete() {
		drawSelection(dst, p, pal)
	}
	drawZoomBox(dst, p, pal, AnchorA)
	drawZoomBox(dst, p, pal, AnchorB)
	drawHeightLabel(dst, p, pal)
	drawDiagnostics(dst, p, pal)
}

// darken dims every pixel, leaving the later selection cutout to
// restore the area of interest at full brightness.
func darken(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = uint8(uint32(pix[i]) * darkenAlpha / 255)
		pix[i+1] = uint8(uint32(pix[i+1]) * darkenAlpha / 255)
		pix[i+2] = uint8(uint32(pix[i+2]) * darkenAlpha / 255)
	}
}

// drawSelection restores the selected area at full brightness, frames
// it and labels its width above the frame.
func drawSelection(dst *image.RGBA, p Params, pal palette) {
	inner := p.Selection.Bounds().Intersect(dst.Bounds())
	if inner.Empty() {
		return
	}
	draw.Draw(dst, inner, p.Screenshot, inner.Min, draw.Src)

	outer := inner.Inset(-1)
	frameRect(dst, outer, pal.accent)

	// Width label, centered above the frame. Skipped while the
	// selection is narrower than a zoom box, the same rule the zoom
	// boxes use.
	if p.Selection.Width()-1 >= ZoomWidth*p.Zoom {
		label := strconv.Itoa(inner.Dx())
		w, h := measure(label)
		y := outer.Min.Y - h
		if inner.Min.Y < h {
			// No room above, drop below the top edge instead.
			y = outer.Min.Y
		}
		drawLabel(dst, label, (outer.Min.X+outer.Max.X-w)/2, y, pal.text, pal.accent)
	}
}

// drawHeightLabel draws the selection height rotated alongside the
// right frame edge, falling back inside when there is no room.
func drawHeightLabel(dst *image.RGBA, p Params, pal palette) {
	if !p.Selection.Complete() {
		return
	}
	if p.Selection.Height()-1 < ZoomHeight*p.Zoom {
		return
	}
	inner := p.Selection.Bounds().Intersect(dst.Bounds())
	if inner.Empty() {
		return
	}
	outer := inner.Inset(-1)
	label := strconv.Itoa(inner.Dy())
	w, h := measure(label)
	x := outer.Max.X
	if dst.Bounds().Max.X-inner.Max.X < h {
		x = outer.Max.X - h
	}
	drawLabelRotated(dst, label, x, (outer.Max.Y+outer.Min.Y+w)/2, pal.text, pal.accent)
}

func drawDiagnostics(dst *image.RGBA, p Params, pal palette) {
	_, lineH := measure("0")
	y := 0
	for _, line := range p.Diagnostics {
		drawText(dst, line, 2, y, pal.accent)
		y += lineH
	}
}

// frameRect draws a one-pixel border just inside r.
func frameRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetRGBA(x, r.Min.Y, c)
		dst.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetRGBA(r.Min.X, y, c)
		dst.SetRGBA(r.Max.X-1, y, c)
	}
}
