//go:build windows

package main

import (
	"log"

	"golang.org/x/sys/windows"
)

const processPerMonitorDPIAware = 2

// enableDPIAwareness keeps screen coordinates physical on scaled
// displays. Tries the per-monitor API first, falls back to the
// system-wide one on older Windows.
func enableDPIAwareness() {
	shcore := windows.NewLazySystemDLL("Shcore.dll")
	if proc := shcore.NewProc("SetProcessDpiAwareness"); proc.Find() == nil {
		ret, _, _ := proc.Call(uintptr(processPerMonitorDPIAware))
		if ret == 0 {
			return
		}
	}
	user32 := windows.NewLazySystemDLL("user32.dll")
	if proc := user32.NewProc("SetProcessDPIAware"); proc.Find() == nil {
		proc.Call()
		return
	}
	log.Printf("DPI awareness not available")
}
