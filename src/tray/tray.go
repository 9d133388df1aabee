// Package tray owns the notification area icon and its menu. Menu
// clicks are forwarded as callbacks; the menu itself carries no
// logic beyond check marks and graying out policy-locked entries.
package tray

import (
	"fmt"
	"log"

	"github.com/getlantern/systray"
)

// Actions are invoked from the tray goroutine and should only post
// into the event loop.
type Actions struct {
	Capture           func()
	CaptureDelayed    func()
	OpenFolder        func()
	OpenLast          func()
	ToggleClipboard   func()
	ToggleFile        func()
	ToggleDiagnostics func()
	About             func()
}

// MenuState is what the menu shows. The tray pulls a fresh state
// after every click so toggles made elsewhere stay in sync.
type MenuState struct {
	Delay int // seconds for the delayed capture entry

	SaveToClipboard bool
	SaveToFile      bool
	Diagnostics     bool

	ClipboardLocked   bool
	FileLocked        bool
	DiagnosticsLocked bool

	HaveLast bool
}

var items struct {
	capture     *systray.MenuItem
	delayed     *systray.MenuItem
	openFolder  *systray.MenuItem
	openLast    *systray.MenuItem
	clip        *systray.MenuItem
	file        *systray.MenuItem
	diagnostics *systray.MenuItem
	about       *systray.MenuItem
	quit        *systray.MenuItem
}

// Run blocks until Quit is chosen. state is polled for menu refreshes.
func Run(a Actions, state func() MenuState, onExit func()) {
	systray.Run(func() { onReady(a, state) }, onExit)
}

// Quit asks the tray loop to exit.
func Quit() {
	systray.Quit()
}

func onReady(a Actions, state func() MenuState) {
	systray.SetIcon(Icon())
	systray.SetTitle("abiSnip")
	systray.SetTooltip("abiSnip - press PrintScreen to capture")

	st := state()
	items.capture = systray.AddMenuItem("Capture now", "Select and capture a screen area")
	items.delayed = systray.AddMenuItem(delayedTitle(st.Delay), "Capture after a delay")
	systray.AddSeparator()
	items.openFolder = systray.AddMenuItem("Open screenshot folder", "Show saved screenshots")
	items.openLast = systray.AddMenuItem("Open last screenshot", "View the most recent capture")
	systray.AddSeparator()
	items.clip = systray.AddMenuItemCheckbox("Save to clipboard", "Copy captures to the clipboard", st.SaveToClipboard)
	items.file = systray.AddMenuItemCheckbox("Save to file", "Write captures as PNG files", st.SaveToFile)
	items.diagnostics = systray.AddMenuItemCheckbox("Show internal information", "Overlay diagnostics during capture", st.Diagnostics)
	systray.AddSeparator()
	items.about = systray.AddMenuItem("About", "About abiSnip")
	items.quit = systray.AddMenuItem("Quit", "Exit abiSnip")

	apply(st)

	go func() {
		for {
			select {
			case <-items.capture.ClickedCh:
				a.Capture()
			case <-items.delayed.ClickedCh:
				a.CaptureDelayed()
			case <-items.openFolder.ClickedCh:
				a.OpenFolder()
			case <-items.openLast.ClickedCh:
				a.OpenLast()
			case <-items.clip.ClickedCh:
				a.ToggleClipboard()
			case <-items.file.ClickedCh:
				a.ToggleFile()
			case <-items.diagnostics.ClickedCh:
				a.ToggleDiagnostics()
			case <-items.about.ClickedCh:
				a.About()
			case <-items.quit.ClickedCh:
				log.Printf("Quit selected from tray menu")
				systray.Quit()
				return
			}
			apply(state())
		}
	}()
}

func delayedTitle(seconds int) string {
	return fmt.Sprintf("Capture in %d seconds", seconds)
}

// apply pushes a MenuState onto the menu items.
func apply(st MenuState) {
	items.delayed.SetTitle(delayedTitle(st.Delay))

	setChecked(items.clip, st.SaveToClipboard)
	setChecked(items.file, st.SaveToFile)
	setChecked(items.diagnostics, st.Diagnostics)

	setEnabled(items.clip, !st.ClipboardLocked)
	setEnabled(items.file, !st.FileLocked)
	setEnabled(items.diagnostics, !st.DiagnosticsLocked)
	setEnabled(items.openLast, st.HaveLast)
}

func setChecked(item *systray.MenuItem, v bool) {
	if v {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func setEnabled(item *systray.MenuItem, v bool) {
	if v {
		item.Enable()
	} else {
		item.Disable()
	}
}
