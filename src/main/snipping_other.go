//go:build !windows

package main

import "github.com/codingABI/abiSnip/src/settings"

// No desktop environment claims PrintScreen exclusively here.
func releaseSnippingKey(*settings.Resolver) {}
