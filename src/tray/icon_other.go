//go:build !windows

package tray

// Icon returns the tray icon as PNG, which the freedesktop tray
// implementations accept directly.
func Icon() []byte {
	return pngIcon()
}
