// Package settings resolves configuration through a layered cascade:
// administrator policy first, then the user's own choices, then
// administrator recommendations, then built-in defaults. A value that
// came from a policy layer is reported as locked so the UI can gray
// out its control.
package settings

import (
	"os"

	"github.com/codingABI/abiSnip/src/selection"
)

// Scope identifies one layer of the cascade.
type Scope int

const (
	ScopePolicyUser Scope = iota
	ScopePolicyMachine
	ScopeUser
	ScopeDefaultUser
	ScopeDefaultMachine
)

// Store reads and writes raw values per scope. Only ScopeUser is
// writable; the other scopes are administered out of band.
type Store interface {
	ReadInt(scope Scope, key string) (int64, bool)
	ReadString(scope Scope, key string) (string, bool)
	WriteInt(key string, value int64) error
	WriteString(key, value string) error
	Delete(key string) error
}

// ID names one setting.
type ID int

const (
	ZoomScale ID = iota
	ScreenshotDelay
	SaveToClipboard
	SaveToFile
	ShowDiagnostics
	AltColors
	DisableSnippingKey
)

// Value range shared with the zoom and delay controls.
const (
	ZoomMin      = 1
	ZoomMax      = 32
	DelayMin     = 1
	DelayMax     = 60
	DefaultZoom  = 4
	DefaultDelay = 5
)

// intSetting describes one integer-valued entry of the cascade.
// Settings with policy=false only ever consult the user layer.
type intSetting struct {
	key      string
	policy   bool
	def      int64
	min, max int64
}

var intSettings = map[ID]intSetting{
	ZoomScale:          {"defaultZoomScale", true, DefaultZoom, ZoomMin, ZoomMax},
	ScreenshotDelay:    {"screenshotDelay", true, DefaultDelay, DelayMin, DelayMax},
	SaveToClipboard:    {"saveToClipboard", true, 1, 0, 1},
	SaveToFile:         {"saveToFile", true, 1, 0, 1},
	ShowDiagnostics:    {"displayInternalInformation", true, 0, 0, 1},
	AltColors:          {"useAlternativeColors", false, 0, 0, 1},
	DisableSnippingKey: {"disablePrintScreenKeyForSnipping", true, 0, 0, 1},
}

const pathKey = "screenshotPath"

// Stored selection coordinates, user layer only.
var storedSelectionKeys = [4]string{
	"selectionLeft", "selectionTop", "selectionRight", "selectionBottom",
}

// Resolved is the outcome of one cascade lookup.
type Resolved struct {
	Value  int64
	Locked bool
}

// Bool reads a 0/1 setting.
func (r Resolved) Bool() bool { return r.Value != 0 }

// Resolver runs cascade lookups against a Store. Values are read
// fresh on every call; a session resolves everything once at start.
type Resolver struct {
	store Store

	// dirExists is swapped in tests.
	dirExists func(string) bool
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store, dirExists: isDir}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Int resolves an integer setting. The first layer holding the value
// wins; out-of-range values are clamped, not rejected, so a mangled
// store entry degrades instead of breaking the feature.
func (r *Resolver) Int(id ID) Resolved {
	s := intSettings[id]
	clamp := func(v int64) int64 {
		if v < s.min {
			return s.min
		}
		if v > s.max {
			return s.max
		}
		return v
	}
	if s.policy {
		for _, scope := range []Scope{ScopePolicyUser, ScopePolicyMachine} {
			if v, ok := r.store.ReadInt(scope, s.key); ok {
				return Resolved{Value: clamp(v), Locked: true}
			}
		}
	}
	if v, ok := r.store.ReadInt(ScopeUser, s.key); ok {
		return Resolved{Value: clamp(v)}
	}
	if s.policy {
		for _, scope := range []Scope{ScopeDefaultUser, ScopeDefaultMachine} {
			if v, ok := r.store.ReadInt(scope, s.key); ok {
				return Resolved{Value: clamp(v)}
			}
		}
	}
	return Resolved{Value: s.def}
}

// SetInt stores a user-layer value. Locked settings should not be
// offered for editing, but a write here is harmless either way since
// policy layers still win on the next resolve.
func (r *Resolver) SetInt(id ID, v int64) error {
	s := intSettings[id]
	if v < s.min {
		v = s.min
	}
	if v > s.max {
		v = s.max
	}
	return r.store.WriteInt(s.key, v)
}

// Path resolves the screenshot target directory. A layer's value only
// wins when it names an existing directory; otherwise the cascade
// keeps falling through, ending at fallback.
func (r *Resolver) Path(fallback string) (string, bool) {
	for _, scope := range []Scope{ScopePolicyUser, ScopePolicyMachine} {
		if v, ok := r.store.ReadString(scope, pathKey); ok && r.dirExists(v) {
			return v, true
		}
	}
	if v, ok := r.store.ReadString(ScopeUser, pathKey); ok && r.dirExists(v) {
		return v, false
	}
	for _, scope := range []Scope{ScopeDefaultUser, ScopeDefaultMachine} {
		if v, ok := r.store.ReadString(scope, pathKey); ok && r.dirExists(v) {
			return v, false
		}
	}
	return fallback, false
}

// SetPath stores the user-layer screenshot directory.
func (r *Resolver) SetPath(dir string) error {
	return r.store.WriteString(pathKey, dir)
}

// PathLocked reports whether a policy layer pins the screenshot
// directory, independent of whether the directory currently exists.
func (r *Resolver) PathLocked() bool {
	for _, scope := range []Scope{ScopePolicyUser, ScopePolicyMachine} {
		if _, ok := r.store.ReadString(scope, pathKey); ok {
			return true
		}
	}
	return false
}

// StoredSelection loads the persisted selection. Each edge is
// independently optional; an absent key yields an unset coordinate.
func (r *Resolver) StoredSelection() selection.Rect {
	var c [4]selection.Coord
	for i, key := range storedSelectionKeys {
		if v, ok := r.store.ReadInt(ScopeUser, key); ok {
			c[i] = selection.C(int(v))
		}
	}
	return selection.Rect{Left: c[0], Top: c[1], Right: c[2], Bottom: c[3]}
}

// SetStoredSelection persists all four edges.
func (r *Resolver) SetStoredSelection(rect selection.Rect) error {
	vals := [4]selection.Coord{rect.Left, rect.Top, rect.Right, rect.Bottom}
	for i, key := range storedSelectionKeys {
		if !vals[i].Set {
			continue
		}
		if err := r.store.WriteInt(key, int64(vals[i].Value)); err != nil {
			return err
		}
	}
	return nil
}

// ClearStoredSelection removes the persisted selection. Absent keys
// mean "no stored selection", so deletion is the clear operation.
func (r *Resolver) ClearStoredSelection() error {
	for _, key := range storedSelectionKeys {
		if err := r.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
