package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

// The icon is drawn at startup instead of shipping a binary asset: a
// dashed selection frame in the accent color on a transparent square.
var (
	iconOnce sync.Once
	iconPNG  []byte
)

func renderIconPNG() []byte {
	const size = 16
	accent := color.RGBA{245, 167, 66, 255}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	dash := func(i int) bool { return i%4 < 3 }
	for x := 2; x < size-2; x++ {
		if dash(x) {
			img.SetRGBA(x, 2, accent)
			img.SetRGBA(x, size-3, accent)
		}
	}
	for y := 2; y < size-2; y++ {
		if dash(y) {
			img.SetRGBA(2, y, accent)
			img.SetRGBA(size-3, y, accent)
		}
	}
	// Corner handles.
	for _, p := range []image.Point{{2, 2}, {size - 3, 2}, {2, size - 3}, {size - 3, size - 3}} {
		img.SetRGBA(p.X, p.Y, accent)
		img.SetRGBA(p.X+1, p.Y, accent)
		img.SetRGBA(p.X, p.Y+1, accent)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func pngIcon() []byte {
	iconOnce.Do(func() { iconPNG = renderIconPNG() })
	return iconPNG
}
