// Package screenshot captures the virtual desktop and applies the
// in-place bitmap edits offered during a capture session.
package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	kbinani "github.com/kbinani/screenshot"
	"golang.org/x/image/draw"
)

const (
	// PixelateFactor is the block size used by Pixelate.
	PixelateFactor = 8
	// MarkWidth is the border thickness drawn by MarkRect.
	MarkWidth = 3
	// MarkAlpha is the blend strength of the mark border.
	MarkAlpha = 128
)

// MarkColor is the border color drawn by MarkRect.
var MarkColor = color.RGBA{R: 255, A: 255}

// Capture grabs the given virtual desktop rectangle as one bitmap.
// The returned image has its origin at (0,0).
func Capture(bounds image.Rectangle) (*image.RGBA, error) {
	img, err := kbinani.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", bounds, err)
	}
	return img, nil
}

// Crop copies the half-open rectangle r out of img into a fresh bitmap
// with origin (0,0). r is clipped to the image first.
func Crop(img *image.RGBA, r image.Rectangle) *image.RGBA {
	r = r.Intersect(img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}

// EncodePNG serializes img.
func EncodePNG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Pixelate coarsens the half-open rectangle r in place by averaging it
// down to blocks of PixelateFactor pixels and scaling back up.
func Pixelate(img *image.RGBA, r image.Rectangle) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	w := (r.Dx() + PixelateFactor - 1) / PixelateFactor
	h := (r.Dy() + PixelateFactor - 1) / PixelateFactor
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, r, draw.Src, nil)
	draw.NearestNeighbor.Scale(img, r, small, small.Bounds(), draw.Src, nil)
}

// MarkRect blends a MarkWidth-thick border along the inside edge of
// the half-open rectangle r.
func MarkRect(img *image.RGBA, r image.Rectangle) {
	r = r.Intersect(img.Bounds())
	inner := r.Inset(MarkWidth)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if image.Pt(x, y).In(inner) {
				continue
			}
			img.SetRGBA(x, y, blend(img.RGBAAt(x, y), MarkColor, MarkAlpha))
		}
	}
}

// blend mixes src over dst at the given constant alpha.
func blend(dst, src color.RGBA, alpha uint8) color.RGBA {
	a := uint32(alpha)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(d)*(255-a) + uint32(s)*a) / 255)
	}
	return color.RGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: 255,
	}
}
