// Package session runs the interactive capture flow as an explicit
// state machine. A trigger takes a fresh screenshot, shows the
// overlay and walks the selection through its editing states until
// the user confirms, cancels or the display layout changes under it.
package session

import (
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/codingABI/abiSnip/src/gate"
	"github.com/codingABI/abiSnip/src/monitor"
	"github.com/codingABI/abiSnip/src/overlay"
	"github.com/codingABI/abiSnip/src/persist"
	"github.com/codingABI/abiSnip/src/render"
	"github.com/codingABI/abiSnip/src/screenshot"
	"github.com/codingABI/abiSnip/src/selection"
	"github.com/codingABI/abiSnip/src/settings"
)

// Step sizes for arrow-key movement.
const (
	moveStep     = 1
	moveStepFast = 10
)

// Options wires the controller's collaborators. Zero fields fall back
// to the real implementations.
type Options struct {
	Host     overlay.Host
	Settings *settings.Resolver
	Gate     *gate.Gate

	// Capture grabs the virtual desktop.
	Capture func(image.Rectangle) (*image.RGBA, error)
	// Layout enumerates displays.
	Layout func() (monitor.Layout, error)
	// Save persists a confirmed selection.
	Save func(persist.Request) (persist.Result, error)
	// FallbackDir receives screenshots when no directory is configured.
	FallbackDir string
	// Now drives label blinking.
	Now func() time.Time
}

// Controller owns the session state. It is driven from a single
// goroutine; Handle and Render must not be called concurrently.
// LastResult is the exception and may be read from other goroutines.
type Controller struct {
	opts Options

	state  State
	model  *selection.Model
	img    *image.RGBA
	layout monitor.Layout

	zoom        int
	zoomDefault int
	altColors   bool
	diagnostics bool
	saveClip    settings.Resolved
	saveFile    settings.Resolved
	saveDir     string

	// resultMu covers lastResult, which the tray goroutine polls.
	resultMu   sync.Mutex
	lastResult persist.Result
}

func New(opts Options) *Controller {
	if opts.Capture == nil {
		opts.Capture = screenshot.Capture
	}
	if opts.Layout == nil {
		opts.Layout = monitor.Snapshot
	}
	if opts.Save == nil {
		opts.Save = persist.Save
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{opts: opts, state: StateIdle}
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Selection returns the rectangle being edited, in bitmap-local
// coordinates.
func (c *Controller) Selection() selection.Rect {
	if c.model == nil {
		return selection.Rect{}
	}
	return c.model.Selection()
}

// Zoom returns the current magnification.
func (c *Controller) Zoom() int { return c.zoom }

// Layout returns the display snapshot this session works against.
func (c *Controller) Layout() monitor.Layout { return c.layout }

// LastResult reports the outcome of the most recent save.
func (c *Controller) LastResult() persist.Result {
	c.resultMu.Lock()
	defer c.resultMu.Unlock()
	return c.lastResult
}

// action is one table entry. Actions run with the event already
// validated against the current state.
type action func(c *Controller, ev Event)

// transitions is the full state/event table. An event without an
// entry for the current state is dropped, which is how out-of-phase
// input (a stray confirm in the tray, Tab before a selection exists)
// gets ignored.
var transitions = map[State]map[EventKind]action{
	StateIdle: {
		EvTrigger: (*Controller).begin,
	},
	StateFirstPoint: merge(editingCommon, map[EventKind]action{
		EvConfirm:   (*Controller).confirmFirst,
		EvMouseMove: (*Controller).mouseMove,
		EvMove:      (*Controller).move,
	}),
	StatePointA: merge(editingCommon, map[EventKind]action{
		EvConfirm:     (*Controller).confirmFinal,
		EvMouseMove:   (*Controller).mouseMove,
		EvMove:        (*Controller).move,
		EvTogglePoint: (*Controller).togglePoint,
		EvResize:      (*Controller).resize,
		EvPixelate:    (*Controller).pixelate,
		EvMarkBox:     (*Controller).markBox,
	}),
	StatePointB: merge(editingCommon, map[EventKind]action{
		EvConfirm:     (*Controller).confirmFinal,
		EvMouseMove:   (*Controller).mouseMove,
		EvMove:        (*Controller).move,
		EvTogglePoint: (*Controller).togglePoint,
		EvResize:      (*Controller).resize,
		EvPixelate:    (*Controller).pixelate,
		EvMarkBox:     (*Controller).markBox,
	}),
}

// editingCommon applies to every state with a visible overlay.
var editingCommon = map[EventKind]action{
	EvCancel:            (*Controller).abandon,
	EvDisplayChange:     (*Controller).abandon,
	EvTick:              (*Controller).tick,
	EvZoomIn:            (*Controller).zoomIn,
	EvZoomOut:           (*Controller).zoomOut,
	EvSelectAll:         (*Controller).selectAll,
	EvNextDisplay:       (*Controller).nextDisplay,
	EvStoreSelection:    (*Controller).storeSelection,
	EvRestoreSelection:  (*Controller).restoreSelection,
	EvClearSelection:    (*Controller).clearSelection,
	EvToggleClipboard:   (*Controller).toggleClipboard,
	EvToggleFile:        (*Controller).toggleFile,
	EvToggleAltColors:   (*Controller).toggleAltColors,
	EvToggleDiagnostics: (*Controller).toggleDiagnostics,
}

func merge(base, extra map[EventKind]action) map[EventKind]action {
	out := make(map[EventKind]action, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Handle feeds one event through the transition table.
func (c *Controller) Handle(ev Event) {
	if act, ok := transitions[c.state][ev.Kind]; ok {
		act(c, ev)
	}
}

// begin starts a session: resolve settings, snapshot displays, grab
// the screen and show the overlay. A trigger while the gate is held
// is dropped, not queued.
func (c *Controller) begin(Event) {
	if !c.opts.Gate.TryAcquire() {
		log.Printf("Capture trigger dropped, another session or dialog is active")
		return
	}
	if err := c.prepare(); err != nil {
		log.Printf("Capture failed: %v", err)
		c.opts.Gate.Release()
		return
	}
}

func (c *Controller) prepare() error {
	cfg := c.opts.Settings
	c.zoomDefault = int(cfg.Int(settings.ZoomScale).Value)
	c.zoom = c.zoomDefault
	c.altColors = cfg.Int(settings.AltColors).Bool()
	c.diagnostics = cfg.Int(settings.ShowDiagnostics).Bool()
	c.saveClip = cfg.Int(settings.SaveToClipboard)
	c.saveFile = cfg.Int(settings.SaveToFile)
	c.saveDir, _ = cfg.Path(c.opts.FallbackDir)

	layout, err := c.opts.Layout()
	if err != nil {
		return fmt.Errorf("enumerate displays: %w", err)
	}
	img, err := c.opts.Capture(layout.Virtual)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	c.layout = layout
	c.img = img

	displays := make([]image.Rectangle, len(layout.Displays))
	for i, d := range layout.Displays {
		displays[i] = d.Sub(layout.Virtual.Min)
	}
	c.model = selection.NewModel(img, displays)

	if err := c.opts.Host.Show(layout.Virtual); err != nil {
		return fmt.Errorf("show overlay: %w", err)
	}

	stored := cfg.StoredSelection()
	if c.validStored(stored) {
		// Resume the persisted selection with point B active, cursor
		// on B.
		c.model.SetSelection(stored)
		c.state = StatePointB
		c.warpTo(selection.PointB)
	} else {
		cur := c.toLocal(c.opts.Host.CursorPos())
		c.model.Seed(cur.X, cur.Y)
		c.state = StateFirstPoint
	}
	c.opts.Host.Invalidate()
	return nil
}

// validStored accepts a stored selection only when it is complete and
// fully inside the current bitmap; a selection stored on a larger
// desktop must not resurrect out of bounds.
func (c *Controller) validStored(r selection.Rect) bool {
	return r.Complete() && r.Bounds().In(c.img.Bounds())
}

// abandon ends the session without saving.
func (c *Controller) abandon(Event) {
	c.end()
}

func (c *Controller) end() {
	c.opts.Host.Hide()
	c.state = StateIdle
	c.opts.Gate.Release()
}

// confirmFirst turns the first point into a real selection: point B
// starts on top of point A and becomes the active point.
func (c *Controller) confirmFirst(ev Event) {
	if ev.HasPos {
		p := c.toLocal(ev.Pos)
		c.model.Set(selection.PointA, p.X, p.Y)
	}
	a, _ := c.model.Pos(selection.PointA)
	c.model.Set(selection.PointB, a.X, a.Y)
	c.state = StatePointB
	c.zoom = c.zoomDefault
	c.opts.Host.Invalidate()
}

// confirmFinal saves the selection and ends the session. A selection
// without extent on either axis is refused and the session stays in
// its current state; the same degenerate shape is freely editable up
// to this point.
func (c *Controller) confirmFinal(ev Event) {
	if ev.HasPos {
		p := c.toLocal(ev.Pos)
		c.model.Set(c.activePoint(), p.X, p.Y)
	}
	sel := c.model.Selection()
	if !sel.NonDegenerate() {
		return
	}
	img := c.img
	region := sel.Bounds().Intersect(img.Bounds())
	c.end()

	res, err := c.opts.Save(persist.Request{
		Image:       img,
		Region:      region,
		Dir:         c.saveDir,
		ToFile:      c.saveFile.Bool(),
		ToClipboard: c.saveClip.Bool(),
	})
	if err != nil {
		log.Printf("Save failed: %v", err)
	}
	c.resultMu.Lock()
	c.lastResult = res
	c.resultMu.Unlock()
}

// mouseMove follows the cursor with the active point.
func (c *Controller) mouseMove(ev Event) {
	p := c.toLocal(ev.Pos)
	c.model.Set(c.activePoint(), p.X, p.Y)
	c.opts.Host.Invalidate()
}

func (c *Controller) move(ev Event) {
	pt := c.activePoint()
	if ev.Snap {
		c.model.Snap(pt, ev.Dir)
	} else {
		step := moveStep
		if ev.Fast {
			step = moveStepFast
		}
		c.model.Move(pt, ev.Dir, step)
	}
	c.warpTo(pt)
	c.opts.Host.Invalidate()
}

// togglePoint switches editing between A and B and moves the cursor
// onto the now-active point.
func (c *Controller) togglePoint(Event) {
	if c.state == StatePointA {
		c.state = StatePointB
	} else {
		c.state = StatePointA
	}
	c.warpTo(c.activePoint())
	c.opts.Host.Invalidate()
}

// selectAll covers the whole desktop. The cursor stays put so the
// user does not lose their place.
func (c *Controller) selectAll(Event) {
	c.model.SelectAll()
	c.state = StatePointB
	c.opts.Host.Invalidate()
}

func (c *Controller) nextDisplay(Event) {
	c.model.NextDisplay()
	c.state = StatePointB
	c.warpTo(selection.PointB)
	c.opts.Host.Invalidate()
}

func (c *Controller) resize(ev Event) {
	c.model.Resize(ev.Step)
	c.warpTo(c.activePoint())
	c.opts.Host.Invalidate()
}

func (c *Controller) zoomIn(Event) {
	if c.zoom < settings.ZoomMax {
		c.zoom++
		c.opts.Host.Invalidate()
	}
}

func (c *Controller) zoomOut(Event) {
	if c.zoom > settings.ZoomMin {
		c.zoom--
		c.opts.Host.Invalidate()
	}
}

// storeSelection persists the current rectangle for later sessions.
// Incomplete selections cannot be stored.
func (c *Controller) storeSelection(Event) {
	sel := c.model.Selection()
	if !sel.Complete() {
		return
	}
	if err := c.opts.Settings.SetStoredSelection(sel); err != nil {
		log.Printf("Storing selection failed: %v", err)
	}
}

// restoreSelection brings back the stored rectangle with point B
// active.
func (c *Controller) restoreSelection(Event) {
	stored := c.opts.Settings.StoredSelection()
	if !c.validStored(stored) {
		return
	}
	c.model.SetSelection(stored)
	c.state = StatePointB
	c.warpTo(selection.PointB)
	c.opts.Host.Invalidate()
}

// clearSelection forgets the stored rectangle and starts over from
// the cursor.
func (c *Controller) clearSelection(Event) {
	if err := c.opts.Settings.ClearStoredSelection(); err != nil {
		log.Printf("Clearing stored selection failed: %v", err)
	}
	cur := c.toLocal(c.opts.Host.CursorPos())
	c.model.Seed(cur.X, cur.Y)
	c.state = StateFirstPoint
	c.opts.Host.Invalidate()
}

// pixelate coarsens the selected pixels in the screenshot itself,
// then reopens the selection for another area.
func (c *Controller) pixelate(Event) {
	sel := c.model.Selection()
	screenshot.Pixelate(c.img, sel.Bounds())
	c.reopenAfterEdit(sel)
}

// markBox draws a red border around the selected pixels, then reopens
// the selection.
func (c *Controller) markBox(Event) {
	sel := c.model.Selection()
	screenshot.MarkRect(c.img, sel.Bounds())
	c.reopenAfterEdit(sel)
}

func (c *Controller) reopenAfterEdit(sel selection.Rect) {
	c.model.SetSelection(selection.Rect{Left: sel.Left, Top: sel.Top})
	c.state = StateFirstPoint
	c.warpTo(selection.PointA)
	c.opts.Host.Invalidate()
}

func (c *Controller) toggleClipboard(Event) {
	if c.saveClip.Locked {
		return
	}
	c.setToggle(settings.SaveToClipboard, &c.saveClip)
}

func (c *Controller) toggleFile(Event) {
	if c.saveFile.Locked {
		return
	}
	c.setToggle(settings.SaveToFile, &c.saveFile)
}

func (c *Controller) setToggle(id settings.ID, cur *settings.Resolved) {
	v := int64(1)
	if cur.Bool() {
		v = 0
	}
	if err := c.opts.Settings.SetInt(id, v); err != nil {
		log.Printf("Saving setting failed: %v", err)
		return
	}
	cur.Value = v
	c.opts.Host.Invalidate()
}

func (c *Controller) toggleAltColors(Event) {
	c.altColors = !c.altColors
	if err := c.opts.Settings.SetInt(settings.AltColors, b2i(c.altColors)); err != nil {
		log.Printf("Saving setting failed: %v", err)
	}
	c.opts.Host.Invalidate()
}

func (c *Controller) toggleDiagnostics(Event) {
	if c.opts.Settings.Int(settings.ShowDiagnostics).Locked {
		return
	}
	c.diagnostics = !c.diagnostics
	if err := c.opts.Settings.SetInt(settings.ShowDiagnostics, b2i(c.diagnostics)); err != nil {
		log.Printf("Saving setting failed: %v", err)
	}
	c.opts.Host.Invalidate()
}

// tick runs once a second while the overlay is up. It re-asserts the
// fullscreen placement in case another window manager decision moved
// the overlay, and repaints so the point labels blink.
func (c *Controller) tick(Event) {
	if c.opts.Host.Bounds() != c.layout.Virtual {
		if err := c.opts.Host.Show(c.layout.Virtual); err != nil {
			log.Printf("Re-asserting overlay placement failed: %v", err)
		}
	}
	c.opts.Host.Invalidate()
}

// activePoint maps the state to the point the cursor edits.
func (c *Controller) activePoint() selection.Point {
	if c.state == StatePointB {
		return selection.PointB
	}
	return selection.PointA
}

func (c *Controller) warpTo(p selection.Point) {
	if pos, ok := c.model.Pos(p); ok {
		c.opts.Host.WarpCursor(pos.Add(c.layout.Virtual.Min))
	}
}

func (c *Controller) toLocal(p image.Point) image.Point {
	return p.Sub(c.layout.Virtual.Min)
}

// Render draws the current frame. Idle sessions render nothing.
func (c *Controller) Render(dst *image.RGBA) {
	if c.state == StateIdle || c.img == nil {
		return
	}
	var active render.Anchor
	switch c.state {
	case StateFirstPoint:
		active = render.AnchorFirst
	case StatePointA:
		active = render.AnchorA
	default:
		active = render.AnchorB
	}
	render.Compose(dst, render.Params{
		Screenshot:  c.img,
		Selection:   c.model.Selection(),
		Active:      active,
		Zoom:        c.zoom,
		AltColors:   c.altColors,
		Diagnostics: c.diagnosticLines(),
		Now:         c.opts.Now(),
	})
}

func (c *Controller) diagnosticLines() []string {
	if !c.diagnostics {
		return nil
	}
	v := c.layout.Virtual
	return []string{
		fmt.Sprintf("Virtual desktop [%d,%d] %dx%d", v.Min.X, v.Min.Y, v.Dx(), v.Dy()),
		fmt.Sprintf("Selection %v", c.model.Selection()),
		fmt.Sprintf("Stored selection %v", c.opts.Settings.StoredSelection()),
		fmt.Sprintf("Bitmap %dx%d", c.img.Bounds().Dx(), c.img.Bounds().Dy()),
		fmt.Sprintf("Displays %d", len(c.layout.Displays)),
		fmt.Sprintf("Zoom %dx", c.zoom),
		fmt.Sprintf("State %v", c.state),
	}
}

func b2i(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
