// Package hotkey watches the global keyboard for the capture key.
package hotkey

import (
	"log"

	gohook "github.com/robotn/gohook"
)

// Rawcodes that mean "print screen". 44 is VK_SNAPSHOT on Windows,
// 107 the X11 Print keycode.
var printScreenRawcodes = []uint16{44, 107}

// Listen starts the global hook and invokes callback on every
// PrintScreen key press. The callback runs on the hook goroutine and
// should only post into a channel.
func Listen(callback func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel")
			return
		}
		log.Printf("Global hotkey hook started")

		for ev := range evChan {
			if ev.Kind != gohook.KeyDown {
				continue
			}
			for _, code := range printScreenRawcodes {
				if ev.Rawcode == code {
					log.Printf("PrintScreen pressed (rawcode=%d)", ev.Rawcode)
					callback()
					break
				}
			}
		}
		log.Printf("Hotkey event channel closed")
	}()
}

// Stop tears down the global hook.
func Stop() {
	gohook.End()
}
