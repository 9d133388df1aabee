//go:build windows

package main

import (
	"log"

	"golang.org/x/sys/windows/registry"

	"github.com/codingABI/abiSnip/src/settings"
)

const keyboardKeyPath = `Control Panel\Keyboard`

// releaseSnippingKey hands the PrintScreen key over from the Windows
// snipping tool when the disablePrintScreenKeyForSnipping setting asks
// for it. Otherwise the key stays shared and both tools react.
func releaseSnippingKey(cfg *settings.Resolver) {
	k, err := registry.OpenKey(registry.CURRENT_USER, keyboardKeyPath, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return
	}
	defer k.Close()
	v, _, err := k.GetIntegerValue("PrintScreenKeyForSnippingEnabled")
	if err != nil || v != 1 {
		return
	}
	if !cfg.Int(settings.DisableSnippingKey).Bool() {
		log.Printf("Windows snipping tool also reacts to PrintScreen")
		return
	}
	if err := k.SetDWordValue("PrintScreenKeyForSnippingEnabled", 0); err != nil {
		log.Printf("Releasing PrintScreen from the snipping tool failed: %v", err)
		return
	}
	log.Printf("Released PrintScreen from the Windows snipping tool")
}
