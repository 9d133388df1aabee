// Package persist writes a confirmed selection to its targets: a
// timestamped PNG in the screenshot directory, the clipboard, or both.
package persist

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/codingABI/abiSnip/src/clipboard"
	"github.com/codingABI/abiSnip/src/screenshot"
)

// ErrNoTarget is returned when both targets are disabled; the capture
// would silently vanish otherwise.
var ErrNoTarget = errors.New("persist: no save target enabled")

// Request describes one save. Region is half-open in bitmap
// coordinates and is clipped to the image.
type Request struct {
	Image       *image.RGBA
	Region      image.Rectangle
	Dir         string
	ToFile      bool
	ToClipboard bool
}

// Result reports what a save actually did.
type Result struct {
	File           string
	WroteFile      bool
	WroteClipboard bool
}

// writeClipboard is swapped in tests to avoid touching the real
// clipboard.
var writeClipboard = clipboard.WriteImage

// timeNow is swapped in tests for stable filenames.
var timeNow = time.Now

// Save crops the region and writes it to the enabled targets. A
// clipboard failure does not prevent the file write and vice versa;
// the first error is returned after both were attempted.
func Save(req Request) (Result, error) {
	var res Result
	if !req.ToFile && !req.ToClipboard {
		return res, ErrNoTarget
	}

	img := screenshot.Crop(req.Image, req.Region)
	png, err := screenshot.EncodePNG(img)
	if err != nil {
		return res, err
	}

	var firstErr error
	if req.ToClipboard {
		if err := writeClipboard(png); err != nil {
			firstErr = fmt.Errorf("clipboard: %w", err)
			log.Printf("Clipboard write failed: %v", err)
		} else {
			res.WroteClipboard = true
		}
	}

	if req.ToFile {
		if err := os.MkdirAll(req.Dir, 0o755); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("create %s: %w", req.Dir, err)
		} else {
			name := Filename(timeNow())
			path := filepath.Join(req.Dir, name)
			if err := os.WriteFile(path, png, 0o644); err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("write %s: %w", path, err)
				}
			} else {
				res.File = path
				res.WroteFile = true
			}
		}
	}

	return res, firstErr
}

// Filename builds the screenshot file name for one timestamp.
func Filename(t time.Time) string {
	return t.Format("Screenshot 2006-01-02 150405") + ".png"
}
