package render

import (
	"image"
	"strconv"

	"golang.org/x/image/draw"
)

// drawZoomBox magnifies the pixels around one selection point. The
// first-point box is centered on the point with a crosshair; the
// final boxes for A and B sit flush against the selection corner on
// its outside, so they never cover the area being selected.
func drawZoomBox(dst *image.RGBA, p Params, pal palette, a Anchor) {
	sel := p.Selection
	scale := p.Zoom
	if scale < 1 {
		return
	}

	switch a {
	case AnchorFirst:
		if !sel.Left.Set || !sel.Top.Set {
			return
		}
	default:
		if !sel.Complete() {
			return
		}
		// The box that is not following the cursor disappears while
		// the selection is smaller than the magnified area, otherwise
		// it would cover most of it.
		if a != p.Active {
			if sel.Width()-1 < ZoomWidth*scale || sel.Height()-1 < ZoomHeight*scale {
				return
			}
		}
	}

	left, top := sel.Left.Value, sel.Top.Value
	right, bottom := sel.Right.Value, sel.Bottom.Value

	var centerX, centerY, boxX, boxY int
	switch a {
	case AnchorFirst:
		centerX, centerY = left, top
		boxX = centerX - scale*ZoomWidth/2 - scale/2
		boxY = centerY - scale*ZoomHeight/2 - scale/2
	case AnchorA:
		if right >= left {
			boxX = left
			centerX = left + ZoomWidth/2
		} else {
			boxX = left - scale*ZoomWidth + 1
			centerX = left - ZoomWidth/2 + 1
		}
		if bottom >= top {
			boxY = top
			centerY = top + ZoomHeight/2
		} else {
			boxY = top - scale*ZoomHeight + 1
			centerY = top - ZoomHeight/2 + 1
		}
	case AnchorB:
		if right < left {
			boxX = right
			centerX = right + ZoomWidth/2
		} else {
			boxX = right - scale*ZoomWidth + 1
			centerX = right - ZoomWidth/2 + 1
		}
		if bottom < top {
			boxY = bottom
			centerY = bottom + ZoomHeight/2
		} else {
			boxY = bottom - scale*ZoomHeight + 1
			centerY = bottom - ZoomHeight/2 + 1
		}
	}

	magnify(dst, centerX, centerY, boxX, boxY, scale)

	outer := image.Rect(boxX-1, boxY-1, boxX+ZoomWidth*scale+1, boxY+ZoomHeight*scale+1)
	if scale > 1 {
		frameRect(dst, outer, pal.accent)
	}

	if a == AnchorFirst {
		// Crosshair over the magnified pixel.
		frameRect(dst, image.Rect(
			boxX-1, boxY+scale*ZoomHeight/2-1,
			boxX+ZoomWidth*scale+1, boxY+scale*ZoomHeight/2+scale+1), pal.accent)
		frameRect(dst, image.Rect(
			boxX+scale*ZoomWidth/2-1, boxY-1,
			boxX+scale*ZoomWidth/2+scale+1, boxY+ZoomHeight*scale+1), pal.accent)
	}

	drawXCoordLabel(dst, p, pal, a)
	drawScaleLabel(dst, p, pal, a, scale)
	drawPointLabel(dst, p, pal, a, scale)
	drawYCoordLabel(dst, p, pal, a, scale)
}

// magnify scales the ZoomWidth x ZoomHeight area around the center
// point up into the box. The source is the already composed frame so
// the magnified pixels include the darkening, like the rest of the
// screen outside the selection.
func magnify(dst *image.RGBA, centerX, centerY, boxX, boxY, scale int) {
	src := image.Rectangle{Min: image.Pt(centerX-ZoomWidth/2, centerY-ZoomHeight/2)}
	src.Max = src.Min.Add(image.Pt(ZoomWidth, ZoomHeight))
	tmp := image.NewRGBA(image.Rect(0, 0, ZoomWidth, ZoomHeight))
	visible := src.Intersect(dst.Bounds())
	if !visible.Empty() {
		draw.Draw(tmp, visible.Sub(src.Min), dst, visible.Min, draw.Src)
	}
	box := image.Rect(boxX, boxY, boxX+ZoomWidth*scale, boxY+ZoomHeight*scale)
	draw.NearestNeighbor.Scale(dst, box, tmp, tmp.Bounds(), draw.Src, nil)
}

// drawXCoordLabel prints the x coordinate of the point, inside the
// selection corner next to the box.
func drawXCoordLabel(dst *image.RGBA, p Params, pal palette, a Anchor) {
	sel := p.Selection
	scale := p.Zoom
	var x, y int
	var al align
	var value int
	switch a {
	case AnchorFirst:
		value = sel.Left.Value
		x = sel.Left.Value
		y = sel.Top.Value + scale*ZoomHeight/2 - scale/2
		al.center = true
	case AnchorA:
		value = sel.Left.Value
		if sel.Right.Value >= sel.Left.Value {
			x = sel.Left.Value
		} else {
			x = sel.Left.Value + 1
			al.right = true
		}
		if sel.Bottom.Value >= sel.Top.Value {
			y = sel.Top.Value
			al.bottom = true
		} else {
			y = sel.Top.Value + 2
		}
	case AnchorB:
		value = sel.Right.Value
		if sel.Right.Value < sel.Left.Value {
			x = sel.Right.Value
		} else {
			x = sel.Right.Value + 1
			al.right = true
		}
		if sel.Bottom.Value < sel.Top.Value {
			y = sel.Bottom.Value
			al.bottom = true
		} else {
			y = sel.Bottom.Value + 2
		}
	}
	drawAligned(dst, strconv.Itoa(value), x, y, al, pal.text, pal.accent, true)
}

// drawScaleLabel prints the magnification factor at the outer corner
// of the box, only when magnification is actually on.
func drawScaleLabel(dst *image.RGBA, p Params, pal palette, a Anchor, scale int) {
	if scale <= 1 {
		return
	}
	sel := p.Selection
	var x, y int
	var al align
	switch a {
	case AnchorFirst:
		x = sel.Left.Value - scale*ZoomWidth/2
		y = sel.Top.Value - scale*ZoomHeight/2 - 1
	case AnchorA:
		if sel.Right.Value >= sel.Left.Value {
			x = sel.Left.Value + scale*ZoomWidth - 1
			al.right = true
		} else {
			x = sel.Left.Value - scale*ZoomWidth + 2
		}
		if sel.Bottom.Value >= sel.Top.Value {
			y = sel.Top.Value + scale*ZoomHeight
			al.bottom = true
		} else {
			y = sel.Top.Value - scale*ZoomHeight + 1
		}
	case AnchorB:
		if sel.Right.Value < sel.Left.Value {
			x = sel.Right.Value + scale*ZoomWidth - 1
			al.right = true
		} else {
			x = sel.Right.Value - scale*ZoomWidth + 2
		}
		if sel.Bottom.Value < sel.Top.Value {
			y = sel.Bottom.Value + scale*ZoomHeight
			al.bottom = true
		} else {
			y = sel.Bottom.Value - scale*ZoomHeight + 1
		}
	}
	drawAligned(dst, strconv.Itoa(scale)+"x", x, y, al, pal.accent, pal.accent, false)
}

// drawPointLabel prints "A" or "B" beside the box. The label of the
// point following the cursor blinks at one second intervals; the other
// point's label is steady.
func drawPointLabel(dst *image.RGBA, p Params, pal palette, a Anchor, scale int) {
	if scale <= 1 {
		return
	}
	blinkOn := p.Now.Unix()&1 == 1
	if a == p.Active && !blinkOn {
		return
	}
	sel := p.Selection
	var x, y int
	var al align
	var label string
	switch a {
	case AnchorFirst:
		label = "A"
		x = sel.Left.Value - scale*ZoomWidth/2 - scale/2 - 2
		y = sel.Top.Value - scale*ZoomHeight/2 - scale/2 - 1
		al.right = true
	case AnchorA:
		label = "A"
		if sel.Right.Value >= sel.Left.Value {
			x = sel.Left.Value + scale*ZoomWidth + 2
		} else {
			x = sel.Left.Value - scale*ZoomWidth - 1
			al.right = true
		}
		if sel.Bottom.Value >= sel.Top.Value {
			y = sel.Top.Value + scale*ZoomHeight + 1
			al.bottom = true
		} else {
			y = sel.Top.Value - scale*ZoomHeight
		}
	case AnchorB:
		label = "B"
		if sel.Right.Value < sel.Left.Value {
			x = sel.Right.Value + scale*ZoomWidth + 1
		} else {
			x = sel.Right.Value - scale*ZoomWidth - 1
			al.right = true
		}
		if sel.Bottom.Value < sel.Top.Value {
			y = sel.Bottom.Value + scale*ZoomHeight + 1
			al.bottom = true
		} else {
			y = sel.Bottom.Value - scale*ZoomHeight
		}
	}
	drawAligned(dst, label, x, y, al, pal.text, pal.accent, true)
}

// drawYCoordLabel prints the y coordinate of the point rotated a
// quarter turn, alongside the vertical selection edge.
func drawYCoordLabel(dst *image.RGBA, p Params, pal palette, a Anchor, scale int) {
	sel := p.Selection
	var label string
	if a == AnchorB {
		label = strconv.Itoa(sel.Bottom.Value)
	} else {
		label = strconv.Itoa(sel.Top.Value)
	}
	w, h := measure(label)

	var x, y int
	switch a {
	case AnchorFirst:
		x = sel.Left.Value + scale*ZoomWidth/2 + 1 - scale/2
		y = sel.Top.Value + w/2 - 1
	case AnchorA:
		if sel.Right.Value >= sel.Left.Value {
			x = sel.Left.Value - h - 1
		} else {
			x = sel.Left.Value + 3
		}
		if sel.Bottom.Value >= sel.Top.Value {
			y = sel.Top.Value + w - 2
		} else {
			y = sel.Top.Value + 1
		}
	case AnchorB:
		if sel.Right.Value < sel.Left.Value {
			x = sel.Right.Value - h - 1
		} else {
			x = sel.Right.Value + 3
		}
		if sel.Bottom.Value < sel.Top.Value {
			y = sel.Bottom.Value + w - 2
		} else {
			y = sel.Bottom.Value + 1
		}
	}
	drawLabelRotated(dst, label, x, y, pal.text, pal.accent)
}
