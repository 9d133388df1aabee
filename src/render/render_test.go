package render

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/codingABI/abiSnip/src/selection"
)

var gray = color.RGBA{200, 200, 200, 255}

func grayScreen(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, gray)
		}
	}
	return img
}

func renderFrame(p Params) *image.RGBA {
	dst := image.NewRGBA(p.Screenshot.Bounds())
	Compose(dst, p)
	return dst
}

func TestComposeDarkensOutsideSelection(t *testing.T) {
	p := Params{
		Screenshot: grayScreen(400, 400),
		Selection:  selection.RectOf(100, 100, 200, 200),
		Active:     AnchorB,
		Zoom:       1,
		Now:        time.Unix(0, 0),
	}
	dst := renderFrame(p)
	if got := dst.RGBAAt(10, 390); got.R >= gray.R {
		t.Errorf("outside pixel not darkened: %v", got)
	}
	if got := dst.RGBAAt(150, 150); got != gray {
		t.Errorf("selection interior should be undarkened, got %v", got)
	}
}

func TestComposeAltColorsSkipsDarkening(t *testing.T) {
	p := Params{
		Screenshot: grayScreen(400, 400),
		Selection:  selection.RectOf(100, 100, 200, 200),
		Active:     AnchorB,
		Zoom:       1,
		AltColors:  true,
		Now:        time.Unix(0, 0),
	}
	dst := renderFrame(p)
	if got := dst.RGBAAt(10, 390); got != gray {
		t.Errorf("alternative scheme should not darken, got %v", got)
	}
}

func TestComposeDrawsSelectionFrame(t *testing.T) {
	p := Params{
		Screenshot: grayScreen(400, 400),
		Selection:  selection.RectOf(100, 100, 200, 200),
		Active:     AnchorB,
		Zoom:       1,
		Now:        time.Unix(0, 0),
	}
	accent := p.palette().accent
	dst := renderFrame(p)
	if got := dst.RGBAAt(99, 150); got != accent {
		t.Errorf("left frame edge missing: %v", got)
	}
	if got := dst.RGBAAt(150, 201); got != accent {
		t.Errorf("bottom frame edge missing: %v", got)
	}
}

func TestComposeFirstPointHasNoFrame(t *testing.T) {
	p := Params{
		Screenshot: grayScreen(400, 400),
		Selection:  selection.Rect{Left: selection.C(200), Top: selection.C(200)},
		Active:     AnchorFirst,
		Zoom:       1,
		Now:        time.Unix(0, 0),
	}
	accent := p.palette().accent
	dst := renderFrame(p)
	// No selection rectangle yet, so no frame column at x=199.
	count := 0
	for y := 0; y < 400; y++ {
		if dst.RGBAAt(99, y) == accent {
			count++
		}
	}
	if count > 0 {
		t.Errorf("unexpected frame pixels before point B exists")
	}
}

func TestZoomBoxSuppressedForInactivePointOnSmallSelection(t *testing.T) {
	// Selection 20x20 with zoom 4 is far below the 128x128 magnified
	// area, so only the active point B gets a box.
	screen := grayScreen(600, 600)
	p := Params{
		Screenshot: screen,
		Selection:  selection.RectOf(300, 300, 320, 320),
		Active:     AnchorB,
		Zoom:       4,
		Now:        time.Unix(0, 0),
	}
	dst := image.NewRGBA(screen.Bounds())
	pal := p.palette()
	Compose(dst, p)

	before := cloneRGBA(dst)
	drawZoomBox(before, p, pal, AnchorA)
	if !samePixels(before, dst) {
		t.Error("inactive point A box should be suppressed")
	}
	drawZoomBox(before, p, pal, AnchorB)
	if samePixels(before, dst) {
		t.Error("active point B box should draw even on a small selection")
	}
}

func TestZoomBoxFirstPointIgnoresSelectionSize(t *testing.T) {
	screen := grayScreen(600, 600)
	p := Params{
		Screenshot: screen,
		Selection:  selection.Rect{Left: selection.C(300), Top: selection.C(300)},
		Active:     AnchorFirst,
		Zoom:       4,
		Now:        time.Unix(0, 0),
	}
	dst := image.NewRGBA(screen.Bounds())
	Compose(dst, p)
	plain := image.NewRGBA(screen.Bounds())
	Compose(plain, Params{
		Screenshot: screen,
		Selection:  p.Selection,
		Active:     AnchorFirst,
		Zoom:       0, // zoom below minimum draws nothing
		Now:        time.Unix(0, 0),
	})
	if samePixels(dst, plain) {
		t.Error("first-point zoom box missing")
	}
}

func TestMagnifyShowsPixelsAroundCenter(t *testing.T) {
	img := grayScreen(600, 600)
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	img.SetRGBA(305, 305, red)
	img.SetRGBA(0, 0, blue)

	magnify(img, 305, 305, 100, 100, 4)

	// (305,305) sits at offset (16,16) of the 32x32 source window, so
	// its scaled block starts at (100+16*4, 100+16*4).
	if got := img.RGBAAt(164, 164); got != red {
		t.Errorf("center pixel not magnified into the box: %v", got)
	}
	for y := 100; y < 100+ZoomHeight*4; y++ {
		for x := 100; x < 100+ZoomWidth*4; x++ {
			if img.RGBAAt(x, y) == blue {
				t.Fatalf("box shows the bitmap corner at (%d,%d)", x, y)
			}
		}
	}
}

func TestComposeDiagnosticsBlock(t *testing.T) {
	p := Params{
		Screenshot:  grayScreen(400, 400),
		Selection:   selection.RectOf(100, 100, 200, 200),
		Active:      AnchorB,
		Zoom:        1,
		Diagnostics: []string{"Virtual desktop [0,0] 400x400"},
		Now:         time.Unix(0, 0),
	}
	dst := renderFrame(p)
	bare := renderFrame(Params{
		Screenshot: p.Screenshot,
		Selection:  p.Selection,
		Active:     AnchorB,
		Zoom:       1,
		Now:        time.Unix(0, 0),
	})
	if samePixels(dst, bare) {
		t.Error("diagnostics lines not drawn")
	}
}

func TestMeasureNonEmpty(t *testing.T) {
	w, h := measure("1234")
	if w <= 0 || h <= 0 {
		t.Errorf("got %dx%d", w, h)
	}
	if w2, _ := measure("12"); w2 >= w {
		t.Errorf("shorter text should measure narrower: %d vs %d", w2, w)
	}
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

func samePixels(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}
