// Package clipboard wraps the system clipboard for PNG images.
package clipboard

import (
	"fmt"
	"sync"

	xclipboard "golang.design/x/clipboard"
)

var (
	mu       sync.Mutex
	initOnce sync.Once
	initErr  error
)

// Init prepares the clipboard. Safe to call more than once; later
// calls return the first result.
func Init() error {
	initOnce.Do(func() {
		initErr = xclipboard.Init()
	})
	return initErr
}

// WriteImage puts PNG data on the clipboard.
func WriteImage(png []byte) error {
	if err := Init(); err != nil {
		return fmt.Errorf("clipboard init: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	xclipboard.Write(xclipboard.FmtImage, png)
	return nil
}
