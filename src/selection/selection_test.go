package selection

import (
	"image"
	"image/color"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestNormalizedSwapsBothAxes(t *testing.T) {
	r := RectOf(300, 250, 100, 100).Normalized()
	want := RectOf(100, 100, 300, 250)
	if r != want {
		t.Errorf("got %v, want %v", r, want)
	}
}

func TestNormalizedKeepsUnsetEdges(t *testing.T) {
	r := Rect{Left: C(5), Top: C(7)}
	if got := r.Normalized(); got != r {
		t.Errorf("got %v, want %v", got, r)
	}
}

func TestBoundsIsInclusive(t *testing.T) {
	r := RectOf(10, 20, 10, 20)
	b := r.Bounds()
	if b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("one-pixel selection should have 1x1 bounds, got %v", b)
	}
	if r.Width() != 1 || r.Height() != 1 {
		t.Errorf("got %dx%d, want 1x1", r.Width(), r.Height())
	}
}

func TestNonDegenerate(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"normal", RectOf(0, 0, 5, 5), true},
		{"swapped", RectOf(5, 5, 0, 0), true},
		{"zero width", RectOf(3, 0, 3, 5), false},
		{"zero height", RectOf(0, 3, 5, 3), false},
		{"incomplete", Rect{Left: C(1), Top: C(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.NonDegenerate(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeedLeavesPointBUnset(t *testing.T) {
	m := NewModel(testImage(100, 100), nil)
	m.Seed(10, 20)
	sel := m.Selection()
	if !sel.Left.Set || !sel.Top.Set {
		t.Fatal("point A should be set after Seed")
	}
	if sel.Right.Set || sel.Bottom.Set {
		t.Error("point B should be unset after Seed")
	}
	if _, ok := m.Pos(PointB); ok {
		t.Error("Pos(PointB) should report unset")
	}
}

func TestSetClampsToBitmap(t *testing.T) {
	m := NewModel(testImage(100, 50), nil)
	m.Set(PointA, -10, 200)
	pos, _ := m.Pos(PointA)
	if pos != image.Pt(0, 49) {
		t.Errorf("got %v, want (0,49)", pos)
	}
}

func TestMoveIgnoresUnsetPoint(t *testing.T) {
	m := NewModel(testImage(100, 100), nil)
	m.Seed(50, 50)
	m.Move(PointB, Down, 10)
	if m.Selection().Bottom.Set {
		t.Error("moving an unset point should be a no-op")
	}
	m.Move(PointA, Right, 10)
	pos, _ := m.Pos(PointA)
	if pos != image.Pt(60, 50) {
		t.Errorf("got %v, want (60,50)", pos)
	}
}

func TestSnapStopsBeforeColorChange(t *testing.T) {
	img := testImage(100, 10)
	red := color.RGBA{255, 0, 0, 255}
	for x := 40; x < 100; x++ {
		for y := 0; y < 10; y++ {
			img.SetRGBA(x, y, red)
		}
	}
	m := NewModel(img, nil)
	m.Seed(5, 5)
	m.Snap(PointA, Right)
	pos, _ := m.Pos(PointA)
	if pos != image.Pt(39, 5) {
		t.Errorf("got %v, want last pixel of run (39,5)", pos)
	}
}

func TestSnapStopsAtBitmapEdge(t *testing.T) {
	m := NewModel(testImage(100, 10), nil)
	m.Seed(5, 5)
	m.Snap(PointA, Left)
	pos, _ := m.Pos(PointA)
	if pos != image.Pt(0, 5) {
		t.Errorf("got %v, want (0,5)", pos)
	}
}

func TestResizeGrowAndShrink(t *testing.T) {
	m := NewModel(testImage(200, 200), nil)
	m.SetSelection(RectOf(50, 50, 100, 100))
	m.Resize(1)
	if got := m.Selection(); got != RectOf(49, 49, 101, 101) {
		t.Errorf("grow: got %v", got)
	}
	m.Resize(-1)
	if got := m.Selection(); got != RectOf(50, 50, 100, 100) {
		t.Errorf("shrink: got %v", got)
	}
}

func TestResizeCollapsesToMidpoint(t *testing.T) {
	m := NewModel(testImage(200, 200), nil)
	m.SetSelection(RectOf(50, 80, 51, 81))
	m.Resize(-1)
	got := m.Selection()
	if got.Left.Value != got.Right.Value || got.Top.Value != got.Bottom.Value {
		t.Errorf("axis should collapse, got %v", got)
	}
	if got.Left.Value != 50 || got.Top.Value != 80 {
		t.Errorf("collapse should land on midpoint, got %v", got)
	}
}

func TestResizePreservesSwappedOrientation(t *testing.T) {
	m := NewModel(testImage(200, 200), nil)
	m.SetSelection(RectOf(100, 100, 50, 50))
	m.Resize(1)
	got := m.Selection()
	if got != RectOf(101, 101, 49, 49) {
		t.Errorf("got %v, want orientation preserved", got)
	}
}

func TestResizeIncompleteIsNoop(t *testing.T) {
	m := NewModel(testImage(100, 100), nil)
	m.Seed(10, 10)
	before := m.Selection()
	m.Resize(5)
	if m.Selection() != before {
		t.Error("resize of incomplete selection should be a no-op")
	}
}

func TestSelectAll(t *testing.T) {
	m := NewModel(testImage(640, 480), nil)
	m.SelectAll()
	if got := m.Selection(); got != RectOf(0, 0, 639, 479) {
		t.Errorf("got %v", got)
	}
}

func TestNextDisplayWraps(t *testing.T) {
	displays := []image.Rectangle{
		image.Rect(0, 0, 100, 100),
		image.Rect(100, 0, 300, 100),
	}
	m := NewModel(testImage(300, 100), displays)
	if idx := m.NextDisplay(); idx != 0 {
		t.Errorf("first NextDisplay should pick display 0, got %d", idx)
	}
	if got := m.Selection(); got != RectOf(0, 0, 99, 99) {
		t.Errorf("got %v", got)
	}
	m.NextDisplay()
	if got := m.Selection(); got != RectOf(100, 0, 299, 99) {
		t.Errorf("got %v", got)
	}
	if idx := m.NextDisplay(); idx != 0 {
		t.Errorf("should wrap to 0, got %d", idx)
	}
}
