package persist

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func stubClipboard(t *testing.T, fn func([]byte) error) {
	t.Helper()
	orig := writeClipboard
	writeClipboard = fn
	t.Cleanup(func() { writeClipboard = orig })
}

func stubNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 8, 29, 14, 23, 59, 0, time.Local)
	if got := Filename(at); got != "Screenshot 2026-08-29 142359.png" {
		t.Errorf("got %q", got)
	}
}

func TestSaveFileOnly(t *testing.T) {
	stubClipboard(t, func([]byte) error {
		t.Error("clipboard should not be touched")
		return nil
	})
	stubNow(t, time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local))

	dir := filepath.Join(t.TempDir(), "screenshots")
	res, err := Save(Request{
		Image:  testImage(),
		Region: image.Rect(10, 10, 50, 50),
		Dir:    dir,
		ToFile: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.WroteFile || res.WroteClipboard {
		t.Errorf("got %+v", res)
	}
	if _, err := os.Stat(res.File); err != nil {
		t.Errorf("file missing: %v", err)
	}
}

func TestSaveClipboardOnly(t *testing.T) {
	var got []byte
	stubClipboard(t, func(png []byte) error {
		got = png
		return nil
	})
	res, err := Save(Request{
		Image:       testImage(),
		Region:      image.Rect(0, 0, 20, 20),
		ToClipboard: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.WroteClipboard || res.WroteFile {
		t.Errorf("got %+v", res)
	}
	if len(got) == 0 {
		t.Error("no PNG data reached the clipboard")
	}
}

func TestSaveClipboardFailureStillWritesFile(t *testing.T) {
	stubClipboard(t, func([]byte) error { return errors.New("boom") })
	stubNow(t, time.Date(2026, 8, 29, 10, 0, 1, 0, time.Local))

	res, err := Save(Request{
		Image:       testImage(),
		Region:      image.Rect(0, 0, 20, 20),
		Dir:         t.TempDir(),
		ToFile:      true,
		ToClipboard: true,
	})
	if err == nil {
		t.Error("expected clipboard error to surface")
	}
	if !res.WroteFile {
		t.Error("file should still be written")
	}
	if res.WroteClipboard {
		t.Error("clipboard should be reported as failed")
	}
}

func TestSaveNoTarget(t *testing.T) {
	_, err := Save(Request{Image: testImage(), Region: image.Rect(0, 0, 10, 10)})
	if !errors.Is(err, ErrNoTarget) {
		t.Errorf("got %v, want ErrNoTarget", err)
	}
}
