//go:build !windows

package settings

import (
	"os"
	"path/filepath"
)

// NewStore returns the dotenv-backed store for non-Windows systems.
func NewStore() Store {
	userDir := "."
	if dir, err := os.UserConfigDir(); err == nil {
		userDir = filepath.Join(dir, "abisnip")
	}
	return NewFileStore(userDir, "/etc/abisnip")
}
