package splitview

import (
	"math"
	"time"

	"github.com/tilekit/splitview/internal/geometry"
	"github.com/tilekit/splitview/internal/metrics"
	"github.com/tilekit/splitview/internal/shell"
	"github.com/tilekit/splitview/internal/tween"
)

// Timing of the transform animation a window runs while snapping, and the
// delay before the divider spawn animation joins it.
const (
	snapTransformDuration = 250 * time.Millisecond
	dividerSpawnDelay     = 100 * time.Millisecond
)

// Config assembles a controller's collaborators.
type Config struct {
	Shell    shell.Shell
	Overview shell.Overview
	Metrics  *metrics.Service
	// Clock supplies the time for animations, time.Now when nil.
	Clock func() time.Time
	// Display names the display this controller owns, for metrics.
	Display string
}

// Controller runs split view for one display. It is single threaded: every
// method, observer callback and Tick must come from the host's UI loop.
type Controller struct {
	sh       shell.Shell
	overview shell.Overview
	metrics  *metrics.Service
	clock    func() time.Time
	display  string

	state     State
	endReason EndReason

	divider  *DividerModel
	registry *SnapRegistry
	pending  *PendingSnapTracker
	autoSnap *AutoSnapPolicy
	resize   *ResizeEngine

	// dividerLayer is the visible divider bar, tablet mode only.
	dividerLayer shell.Layer
	dividerSpawn *tween.Animation
	spawnCorner  geometry.Point

	// snappingTransforms caches the transform a window carried when it
	// was asked to snap, consumed once the snap commits.
	snappingTransforms map[string]geometry.Transform
	// appliedTransforms tracks squeeze offsets the resize engine applied.
	appliedTransforms map[string]geometry.Transform

	observers []Observer

	// lastRightSideUp detects orientation flips on display changes.
	lastRightSideUp bool

	presetDividerPosition int
	endingSplit           bool
	swapping              bool

	// toActivateID names the window to activate once its snap commits.
	toActivateID string
	// resizeLoopID names the snapped window whose edge the user is
	// dragging in clamshell mode, where the window edge is the divider.
	resizeLoopID string
}

// New returns a controller for one display. The caller drives it with
// events and must call Tick from its frame loop while animations run.
func New(cfg Config) *Controller {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.NewService(clock)
	}
	c := &Controller{
		sh:                    cfg.Shell,
		overview:              cfg.Overview,
		metrics:               m,
		clock:                 clock,
		display:               cfg.Display,
		divider:               NewDividerModel(),
		snappingTransforms:    make(map[string]geometry.Transform),
		appliedTransforms:     make(map[string]geometry.Transform),
		lastRightSideUp:       cfg.Shell.Orientation().RightSideUp,
		presetDividerPosition: unsetDividerPosition,
	}
	c.registry = NewSnapRegistry(func(w shell.Window) shell.Subscription {
		return c.sh.Observe(w, &slotObserver{c: c})
	})
	c.pending = NewPendingSnapTracker(cfg.Shell, c.isSnappedAt, c.attachSnapped)
	c.resize = newResizeEngine(c)
	return c
}

// State returns the controller's current state.
func (c *Controller) State() State { return c.state }

// EndReason returns why the last split ended.
func (c *Controller) EndReason() EndReason { return c.endReason }

// DividerPosition returns the divider origin, -1 outside a split.
func (c *Controller) DividerPosition() int { return c.divider.Position() }

// ClosestRatio returns the last committed resting ratio, NaN before any.
func (c *Controller) ClosestRatio() float64 { return c.divider.ClosestRatio() }

// IsResizing reports whether a divider drag is in flight.
func (c *Controller) IsResizing() bool { return c.divider.IsResizing() }

// IsAnimating reports whether the divider snap animation is running.
func (c *Controller) IsAnimating() bool { return c.divider.IsAnimating() }

// SnappedWindow returns the occupant of a slot, nil when empty.
func (c *Controller) SnappedWindow(p Position) shell.Window { return c.registry.Window(p) }

// DefaultPosition returns the side of the first snapped window of the
// current split.
func (c *Controller) DefaultPosition() Position { return c.registry.DefaultPosition() }

// IsWindowInSplit reports whether the window occupies a slot.
func (c *Controller) IsWindowInSplit(w shell.Window) bool { return c.registry.Contains(w) }

// IsWindowInTransitionalState reports whether the window has been asked to
// snap but the state change has not arrived yet.
func (c *Controller) IsWindowInTransitionalState(w shell.Window) bool {
	return c.pending.IsPending(w)
}

// AddObserver registers for state and divider notifications.
func (c *Controller) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

// RemoveObserver deregisters a previously added observer.
func (c *Controller) RemoveObserver(o Observer) {
	for i, existing := range c.observers {
		if existing == o {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

// Tick advances the divider snap and spawn animations to now.
func (c *Controller) Tick(now time.Time) {
	c.divider.Tick(now)
	if a := c.dividerSpawn; a != nil {
		a.Tick(now)
	}
}

// CanSnapWindow reports whether the window could join the split right now.
func (c *Controller) CanSnapWindow(w shell.Window) bool {
	return c.canSnap(w) == nil
}

func (c *Controller) canSnap(w shell.Window) error {
	if !c.sh.AllowSplitView() {
		return ErrSplitViewDisabled
	}
	if w == nil || !w.CanActivate() || !w.CanSnap() || !c.sh.IsUserPositionable(w) {
		return ErrNotSnappable
	}
	end := c.dividerEndPosition()
	if c.minimumLength(w) > end/2-DividerThickness/2 {
		return ErrNotSnappable
	}
	return nil
}

// SnapWindow puts the window into the given slot. The window may commit its
// state asynchronously; until it does it is in a transitional state and
// occupies no slot.
func (c *Controller) SnapWindow(w shell.Window, p Position, activate bool) error {
	if p == PositionNone {
		return ErrBadState
	}
	if err := c.canSnap(w); err != nil {
		logger.Debug("snap rejected", "window", w.ID(), "position", p, "err", err)
		return err
	}

	if c.state == StateNoSnap {
		c.beginSplit()
	}

	// The window's overview item goes away before the snap so overview
	// never shows a snapped window.
	if c.overview.Contains(w) {
		c.overview.RemoveWindow(w)
	}

	if t := w.Transform(); !t.IsIdentity() {
		c.snappingTransforms[w.ID()] = t
	}

	// Activation waits until the window lands in its slot; activating a
	// window the registry does not hold yet would read as an unrelated
	// window wandering into the split.
	if activate {
		c.toActivateID = w.ID()
	}
	c.pending.AddPending(w, p)
	c.sh.RequestSnap(w, p.StateType())
	return nil
}

// beginSplit sets up everything a split needs before its first window
// arrives.
func (c *Controller) beginSplit() {
	c.metrics.SplitStarted(c.display)
	c.autoSnap = newAutoSnapPolicy(c)

	pos := c.presetDividerPosition
	c.presetDividerPosition = unsetDividerPosition
	end := c.dividerEndPosition()
	switch {
	case pos == unsetDividerPosition:
		pos = geometry.DefaultDividerPosition(end, c.sh.InTabletMode(), DividerThickness)
	case pos < 0:
		pos = 0
	case pos > end:
		// A preset from a differently sized display clamps rather than
		// parking the divider off screen.
		pos = end
	}
	c.divider.position = pos

	if c.sh.InTabletMode() && c.dividerLayer == nil {
		c.dividerLayer = c.sh.NewLayer()
		c.dividerLayer.Show()
	}
	c.divider.OnPositionChanged = c.onDividerPositionChanged
}

// attachSnapped is the pending tracker's delivery: the window now carries
// the slot's state and becomes the slot's occupant.
func (c *Controller) attachSnapped(w shell.Window, p Position) {
	firstSnap := c.state == StateNoSnap
	displaced := c.registry.SetSlot(p, w)
	if displaced != nil && c.overview.IsActive() {
		c.overview.InsertWindow(displaced)
	}

	c.updateStateAndNotify()

	c.sh.SetBounds(w, c.snappedBoundsForPosition(p, false))

	// The sibling stacks first so the new window ends up on top of it.
	if other := c.registry.Window(p.Opposite()); other != nil {
		c.sh.StackOnTop(other)
	}
	c.sh.StackOnTop(w)
	if c.toActivateID == w.ID() {
		c.toActivateID = ""
		c.sh.Activate(w)
	}

	if t, ok := c.snappingTransforms[w.ID()]; ok {
		delete(c.snappingTransforms, w.ID())
		if firstSnap && c.sh.InTabletMode() && w.State() != shell.StateMinimized {
			c.spawnDivider(w, p, t)
		}
		c.sh.AnimateTransform(w, geometry.Identity(), snapTransformDuration, tween.FastOutSlowIn)
	}
	c.layoutDividerLayer()
	c.notifyDividerPositionChanged()
}

func (c *Controller) isSnappedAt(w shell.Window, p Position) bool {
	return c.registry.PositionOf(w) == p
}

func (c *Controller) snapOpposite(w shell.Window) {
	p := c.registry.DefaultPosition().Opposite()
	if p == PositionNone {
		return
	}
	if err := c.SnapWindow(w, p, false); err != nil {
		logger.Debug("auto snap failed", "window", w.ID(), "err", err)
	}
}

// OnWindowSnapWMEvent is the shell's unified snap path. In clamshell mode
// split view only engages when overview is already active; otherwise the
// snap is an ordinary half screen placement that bypasses the controller.
func (c *Controller) OnWindowSnapWMEvent(w shell.Window, ev SnapEvent) {
	p := PositionLeft
	if ev == SnapEventRight {
		p = PositionRight
	}
	if !c.sh.AllowSplitView() {
		return
	}
	if !c.sh.InTabletMode() && !c.overview.IsActive() && c.state == StateNoSnap {
		c.sh.RequestSnap(w, p.StateType())
		return
	}
	if err := c.SnapWindow(w, p, true); err != nil {
		logger.Debug("snap event dropped", "window", w.ID(), "err", err)
	}
}

// SwapWindows exchanges the two slots. Rejected while the divider settles,
// so a double tap cannot race the animation.
func (c *Controller) SwapWindows() error {
	if c.state == StateNoSnap {
		return ErrBadState
	}
	if c.divider.IsAnimating() {
		logger.Debug("swap rejected during divider animation")
		return ErrBadState
	}

	c.swapping = true
	c.registry.Swap()
	for _, p := range []Position{PositionLeft, PositionRight} {
		if w := c.registry.Window(p); w != nil {
			c.sh.RequestSnap(w, p.StateType())
		}
	}
	c.swapping = false

	c.updateSnappedBounds()
	c.notifyStateChanged(c.state, c.state)
	c.metrics.SwapRecorded()
	return nil
}

// StartResize begins a divider drag.
func (c *Controller) StartResize(location geometry.Point) error {
	return c.resize.StartResize(location)
}

// Resize continues a divider drag.
func (c *Controller) Resize(location geometry.Point) {
	c.resize.Resize(location)
}

// EndResize releases a divider drag.
func (c *Controller) EndResize(location geometry.Point) {
	c.resize.EndResize(location)
}

// EndSplit tears the split down. Safe to call in any state; reentrant calls
// are dropped. The divider bar is destroyed after the state notification so
// teardown callbacks observe the controller already out of split view.
func (c *Controller) EndSplit(reason EndReason) {
	if c.state == StateNoSnap || c.endingSplit {
		return
	}
	c.endingSplit = true
	defer func() { c.endingSplit = false }()

	c.resize.stop()
	c.pending.Clear()
	if c.autoSnap != nil {
		c.autoSnap.teardown()
		c.autoSnap = nil
	}
	for _, w := range c.registry.Windows() {
		c.restoreTransform(w, 0)
	}
	c.registry.Clear()
	c.snappingTransforms = make(map[string]geometry.Transform)
	c.toActivateID = ""
	c.resizeLoopID = ""

	prev := c.state
	c.state = StateNoSnap
	c.endReason = reason
	c.divider.OnPositionChanged = nil
	c.divider.Reset()
	c.stopSpawnAnimation()
	c.notifyStateChanged(prev, StateNoSnap)

	if c.dividerLayer != nil {
		c.dividerLayer.Destroy()
		c.dividerLayer = nil
	}
	c.metrics.SplitEnded(c.display, reason.String())
}

// Destroy ends the controller with its display. A lone snapped window would
// otherwise be left bare, so overview is brought up first in tablet mode.
func (c *Controller) Destroy() {
	if c.sh.InTabletMode() &&
		(c.state == StateLeftSnapped || c.state == StateRightSnapped) &&
		!c.overview.IsActive() {
		c.overview.Start(shell.ReasonSplitView)
	}
	c.EndSplit(EndReasonNormal)
}

// InitDividerPositionForTransition pre-places the divider before the first
// snap of an upcoming split, used across tablet transitions and profile
// switches. A no-op once a split is underway.
func (c *Controller) InitDividerPositionForTransition(pos int) {
	if c.state != StateNoSnap || c.divider.HasPosition() {
		return
	}
	c.presetDividerPosition = pos
}

// OnTabletModeChanged reacts to the shell entering or leaving tablet mode,
// which the shell reports after flipping InTabletMode.
func (c *Controller) OnTabletModeChanged() {
	if c.state == StateNoSnap {
		return
	}
	if c.sh.InTabletMode() {
		// The divider becomes visible; park it on the nearest ratio.
		minLeft, minRight := c.minimumLengths()
		target, ratio := geometry.ClosestFixedDividerPosition(
			c.divider.Position(), c.dividerEndPosition(), c.dividerThickness(), minLeft, minRight)
		c.divider.SetClosestRatio(ratio)
		c.divider.SetPosition(target)
		if c.dividerLayer == nil {
			c.dividerLayer = c.sh.NewLayer()
			c.dividerLayer.Show()
		}
	} else {
		c.resize.stop()
		c.stopSpawnAnimation()
		if c.dividerLayer != nil {
			c.dividerLayer.Destroy()
			c.dividerLayer = nil
		}
	}
	c.updateSnappedBounds()
}

// OnDisplayMetricsChanged reacts to rotation and work area changes. A
// rotation that flips the physical mapping keeps each window on the same
// physical side, so the resting ratio mirrors.
func (c *Controller) OnDisplayMetricsChanged() {
	if c.state == StateNoSnap {
		c.lastRightSideUp = c.sh.Orientation().RightSideUp
		return
	}

	c.resize.stop()

	rightSideUp := c.sh.Orientation().RightSideUp
	if rightSideUp != c.lastRightSideUp {
		c.lastRightSideUp = rightSideUp
		if ratio := c.divider.ClosestRatio(); !math.IsNaN(ratio) {
			c.divider.SetClosestRatio(1 - ratio)
		}
	}

	if !c.divider.IsResizing() {
		ratio := c.divider.ClosestRatio()
		if math.IsNaN(ratio) {
			ratio = 0.5
		}
		c.divider.SetPosition(c.positionForRatio(ratio))
	}

	// A work area that can no longer host either occupant folds the
	// whole split, not just the offending slot.
	for _, w := range c.registry.Windows() {
		if c.canSnap(w) != nil {
			c.EndSplit(EndReasonNormal)
			return
		}
	}
	c.updateSnappedBounds()
	c.endSplitIfDividerAtEdge()
}

// OnSpokenFeedbackChanged ends the split when spoken feedback comes up;
// the two affordances do not coexist.
func (c *Controller) OnSpokenFeedbackChanged(enabled bool) {
	if enabled {
		c.EndSplit(EndReasonNormal)
	}
}

// OnOverviewModeStarting releases the non-default window into the opening
// overview grid, leaving one snapped window beside it.
func (c *Controller) OnOverviewModeStarting() {
	if c.state != StateBothSnapped {
		return
	}
	p := c.registry.DefaultPosition().Opposite()
	w := c.registry.Window(p)
	if w == nil {
		return
	}
	c.registry.SetSlot(p, nil)
	c.updateStateAndNotify()
	c.overview.InsertWindow(w)
}

// OnOverviewModeEnding fills the empty slot from the closing grid. Overview
// closing as part of a desk switch carries no such intent and is ignored.
func (c *Controller) OnOverviewModeEnding() {
	if c.sh.DesksBeingModified() {
		return
	}
	if c.state == StateNoSnap {
		return
	}
	if !c.sh.InTabletMode() {
		// Clamshell split view lives inside overview and folds with it.
		c.EndSplit(EndReasonNormal)
		return
	}
	if c.state == StateBothSnapped {
		c.overview.SuppressExitAnimation()
		return
	}
	if c.state != StateLeftSnapped && c.state != StateRightSnapped {
		return
	}
	empty := c.registry.DefaultPosition().Opposite()

	grid := c.overview.Windows()
	// An empty grid simply closes; the lone snapped window stays put.
	if len(grid) == 0 {
		return
	}
	for _, w := range grid {
		if c.canSnap(w) == nil {
			if err := c.SnapWindow(w, empty, false); err == nil {
				c.overview.SuppressExitAnimation()
				return
			}
		}
	}
	first := grid[0]
	c.EndSplit(EndReasonUnsnappableWindowActivated)
	c.sh.ShowCannotSnapNotice(first)
}

// OnOverviewButtonTrayLongPressed toggles between a maximized single window
// and a fresh split built from the most recent window.
func (c *Controller) OnOverviewButtonTrayLongPressed(location geometry.Point) {
	mru := c.sh.MRUWindows()
	if len(mru) == 0 {
		return
	}
	top := mru[0]

	if c.state != StateNoSnap {
		c.sh.Maximize(top)
		if c.overview.IsActive() {
			c.overview.End(shell.ReasonNormal)
		}
		return
	}
	if c.canSnap(top) != nil {
		c.sh.ShowCannotSnapNotice(top)
		return
	}
	if !c.overview.IsActive() {
		c.overview.Start(shell.ReasonSplitView)
	}
	if err := c.SnapWindow(top, PositionLeft, true); err != nil {
		logger.Debug("long press snap failed", "window", top.ID(), "err", err)
	}
}

// OnWindowDragStarted releases a snapped window that the user starts
// dragging; the drag owns it now.
func (c *Controller) OnWindowDragStarted(w shell.Window) {
	c.detachWindow(w, EndReasonWindowDragStarted)
}

// OnWindowDragEnded snaps a dropped window when it landed in a snap region.
func (c *Controller) OnWindowDragEnded(w shell.Window, location geometry.Point) {
	p := c.ComputeSnapPosition(location)
	if p == PositionNone {
		return
	}
	if err := c.SnapWindow(w, p, true); err != nil {
		logger.Debug("drop snap failed", "window", w.ID(), "err", err)
	}
}

// OnWindowDragCanceled is the shell telling us a drag fizzled. The window
// was already released when the drag started, so there is nothing to undo.
func (c *Controller) OnWindowDragCanceled(w shell.Window) {
	logger.Debug("window drag canceled", "window", w.ID())
}

// OnTabDragEnded places a window dropped out of a tab strip. When the drop
// lands on a side and split view was not already active, the drag's source
// window is snapped opposite so the two end up side by side.
func (c *Controller) OnTabDragEnded(dragged, source shell.Window, location geometry.Point) {
	wasActive := c.state != StateNoSnap
	p := c.ComputeSnapPosition(location)
	if p == PositionNone {
		return
	}
	if err := c.SnapWindow(dragged, p, true); err != nil {
		logger.Debug("tab drop snap failed", "window", dragged.ID(), "err", err)
		return
	}
	if wasActive || source == nil {
		return
	}
	if c.registry.Contains(source) || c.pending.IsPending(source) {
		return
	}
	if err := c.SnapWindow(source, p.Opposite(), false); err != nil {
		logger.Debug("tab drag source snap failed", "window", source.ID(), "err", err)
	}
}

// OnResizeLoopStarted marks a snapped window whose edge the user grabbed in
// clamshell mode. Until the loop ends, that edge is the divider.
func (c *Controller) OnResizeLoopStarted(w shell.Window) {
	if c.sh.InTabletMode() || !c.registry.Contains(w) {
		return
	}
	c.resizeLoopID = w.ID()
}

// OnResizeLoopEnded finishes a clamshell edge drag. A divider left outside
// the middle third folds the split and maximizes the dragged window.
func (c *Controller) OnResizeLoopEnded(w shell.Window) {
	if c.resizeLoopID != w.ID() {
		return
	}
	c.resizeLoopID = ""
	if c.sh.InTabletMode() || c.state == StateNoSnap {
		return
	}
	ratio := float64(c.divider.Position()) / float64(c.dividerEndPosition())
	if ratio > geometry.OneThirdPositionRatio && ratio < geometry.TwoThirdPositionRatio {
		return
	}
	c.EndSplit(EndReasonNormal)
	if c.overview.IsActive() {
		c.overview.End(shell.ReasonNormal)
	}
	c.sh.Maximize(w)
}

// onSnappedBoundsChanged tracks a clamshell edge drag: the dragged window's
// length along the split axis dictates the divider position.
func (c *Controller) onSnappedBoundsChanged(w shell.Window) {
	if c.sh.InTabletMode() || c.resizeLoopID != w.ID() {
		return
	}
	p := c.registry.PositionOf(w)
	if p == PositionNone {
		return
	}
	length := w.BoundsInScreen().Width
	if !c.sh.Orientation().Horizontal {
		length = w.BoundsInScreen().Height
	}
	end := c.dividerEndPosition()
	pos := length
	if !c.physicalLeftOrTop(p) {
		pos = end - length
	}
	if pos < 0 {
		pos = 0
	}
	if pos > end {
		pos = end
	}
	if pos == c.divider.Position() {
		return
	}
	c.divider.SetPosition(pos)
}

// ComputeSnapPosition maps a pointer location to the slot a dropped window
// would snap into, PositionNone in the middle of the screen.
func (c *Controller) ComputeSnapPosition(location geometry.Point) Position {
	workArea := c.sh.WorkArea()
	if !workArea.Contains(location) {
		return PositionNone
	}
	o := c.sh.Orientation()
	end := c.dividerEndPosition()
	distance := location.X - workArea.X
	if !o.Horizontal {
		distance = location.Y - workArea.Y
	}
	threshold := float64(end) * geometry.OneThirdPositionRatio
	switch {
	case float64(distance) < threshold:
		return c.positionForPhysicalSide(true)
	case float64(end-distance) < threshold:
		return c.positionForPhysicalSide(false)
	}
	return PositionNone
}

// endSplitIfDividerAtEdge ends the split once the divider has settled on a
// screen edge: the surviving window is activated and the dismissed one goes
// back to overview when overview is open.
func (c *Controller) endSplitIfDividerAtEdge() {
	if c.state == StateNoSnap {
		return
	}
	pos := c.divider.Position()
	end := c.dividerEndPosition()
	if pos > 0 && pos < end {
		return
	}

	// The divider at the left edge dismisses the physical left window and
	// leaves the right one, and vice versa. Either side may be empty.
	atStart := pos == 0
	dismissed := c.windowForPhysicalSide(atStart)
	survivor := c.windowForPhysicalSide(!atStart)

	wasOverview := c.overview.IsActive()
	c.EndSplit(EndReasonNormal)
	if survivor != nil {
		c.sh.Activate(survivor)
	}
	if dismissed != nil {
		if wasOverview {
			c.overview.InsertWindow(dismissed)
		} else {
			// Without overview to land in, the pushed-out window gives
			// up its snapped state.
			c.sh.RestoreToDefault(dismissed)
		}
	}
}

// detachWindow removes a window from its slot. With one window left the
// split survives and overview offers replacements; with none it ends.
func (c *Controller) detachWindow(w shell.Window, reason EndReason) {
	p := c.registry.PositionOf(w)
	if p == PositionNone {
		return
	}
	c.registry.SetSlot(p, nil)
	c.restoreTransform(w, 0)
	if t, ok := c.snappingTransforms[w.ID()]; ok {
		delete(c.snappingTransforms, w.ID())
		c.sh.AnimateTransform(w, t, restoreTransformDuration, tween.FastOutSlowIn)
	}

	if c.registry.BothEmpty() {
		c.EndSplit(reason)
		return
	}
	c.updateStateAndNotify()
	c.updateSnappedBounds()
	if c.sh.InTabletMode() && !c.overview.IsActive() {
		c.overview.Start(shell.ReasonSplitView)
	}
}

// handleMinimized reacts to a snapped window minimizing. In tablet mode the
// remaining window stays split beside overview; in clamshell the whole
// arrangement folds.
func (c *Controller) handleMinimized(w shell.Window) {
	if c.registry.PositionOf(w) == PositionNone {
		return
	}
	if c.sh.InTabletMode() {
		c.detachWindow(w, EndReasonNormal)
		return
	}
	c.EndSplit(EndReasonNormal)
	if c.overview.IsActive() {
		c.overview.End(shell.ReasonNormal)
	}
}

// slotObserver watches a snapped window for the lifetime of its slot.
type slotObserver struct {
	shell.BaseWindowObserver
	c *Controller
}

func (o *slotObserver) OnWindowDestroying(w shell.Window) {
	o.c.detachWindow(w, EndReasonNormal)
}

func (o *slotObserver) OnWindowBoundsChanged(w shell.Window, _, _ geometry.Rect) {
	o.c.onSnappedBoundsChanged(w)
}

func (o *slotObserver) OnPostStateChange(w shell.Window, state shell.StateType) {
	c := o.c
	if c.swapping {
		return
	}
	if p := positionOfState(state); p != PositionNone {
		if c.registry.PositionOf(w) == p {
			return
		}
	}
	switch state {
	case shell.StateMinimized:
		c.handleMinimized(w)
	case shell.StateMaximized, shell.StateFullscreen, shell.StatePinned, shell.StateDefault:
		// End the split before overview so the closing grid sees the
		// controller already out of split view.
		c.EndSplit(EndReasonNormal)
		if c.overview.IsActive() {
			c.overview.End(shell.ReasonNormal)
		}
	}
}

func (o *slotObserver) OnPropertyChanged(w shell.Window, prop shell.Property) {
	c := o.c
	switch prop {
	case shell.PropertyBeingDragged:
		if c.sh.IsDragged(w) {
			c.OnWindowDragStarted(w)
		}
	case shell.PropertyResizeBehavior:
		// A snapped window turning unresizable cannot stay snapped; the
		// whole arrangement folds, overview included.
		if !w.CanSnap() {
			c.EndSplit(EndReasonNormal)
			if c.overview.IsActive() {
				c.overview.End(shell.ReasonNormal)
			}
			c.sh.ShowCannotSnapNotice(w)
		}
	}
}

// updateStateAndNotify recomputes the state from slot occupancy and always
// notifies, so observers hear about same-state snaps too.
func (c *Controller) updateStateAndNotify() {
	prev := c.state
	switch {
	case c.registry.BothFull():
		c.state = StateBothSnapped
	case c.registry.Window(PositionLeft) != nil:
		c.state = StateLeftSnapped
	case c.registry.Window(PositionRight) != nil:
		c.state = StateRightSnapped
	default:
		c.state = StateNoSnap
	}
	c.notifyStateChanged(prev, c.state)
}

func (c *Controller) notifyStateChanged(prev, cur State) {
	for _, o := range c.observers {
		o.OnSplitViewStateChanged(prev, cur)
	}
}

func (c *Controller) notifyDividerPositionChanged() {
	for _, o := range c.observers {
		o.OnSplitViewDividerPositionChanged()
	}
}

// onDividerPositionChanged runs on every commit of the divider position:
// drag deltas, animation frames and shoves all land here.
func (c *Controller) onDividerPositionChanged() {
	if c.state != StateNoSnap {
		c.updateSnappedBounds()
		c.applyTransforms()
	}
	c.notifyDividerPositionChanged()
}

// updateSnappedBounds relayouts both snapped windows and the divider bar
// from the current divider position.
func (c *Controller) updateSnappedBounds() {
	for _, p := range []Position{PositionLeft, PositionRight} {
		if w := c.registry.Window(p); w != nil {
			c.sh.SetBounds(w, c.snappedBoundsForPosition(p, c.divider.IsResizing()))
		}
	}
	c.layoutDividerLayer()
}

// SnappedWindowBounds returns the bounds a window snapped at p would get
// right now, for hosts previewing a snap.
func (c *Controller) SnappedWindowBounds(p Position, w shell.Window) geometry.Rect {
	min := 0
	if w != nil {
		min = c.minimumLength(w)
	}
	pos := c.divider.Position()
	if !c.divider.HasPosition() {
		pos = geometry.DefaultDividerPosition(c.dividerEndPosition(), c.sh.InTabletMode(), DividerThickness)
	}
	return geometry.SnappedBounds(geometry.SnapParams{
		WorkArea:          c.sh.WorkArea(),
		Horizontal:        c.sh.Orientation().Horizontal,
		PhysicalLeftOrTop: c.physicalLeftOrTop(p),
		Tablet:            c.sh.InTabletMode(),
		DividerPosition:   pos,
		Thickness:         c.dividerThickness(),
		MinLength:         min,
		Resizing:          c.divider.IsResizing(),
	})
}

func (c *Controller) snappedBoundsForPosition(p Position, resizing bool) geometry.Rect {
	return c.snappedBoundsForPhysicalSide(c.physicalLeftOrTop(p), resizing)
}

func (c *Controller) snappedBoundsForPhysicalSide(physicalLeftOrTop, resizing bool) geometry.Rect {
	min := 0
	if w := c.windowForPhysicalSide(physicalLeftOrTop); w != nil {
		min = c.minimumLength(w)
	}
	return geometry.SnappedBounds(geometry.SnapParams{
		WorkArea:          c.sh.WorkArea(),
		Horizontal:        c.sh.Orientation().Horizontal,
		PhysicalLeftOrTop: physicalLeftOrTop,
		Tablet:            c.sh.InTabletMode(),
		DividerPosition:   c.divider.Position(),
		Thickness:         c.dividerThickness(),
		MinLength:         min,
		Resizing:          resizing,
	})
}

// layoutDividerLayer places the divider bar for the current position, or
// lets the spawn animation place it while one runs.
func (c *Controller) layoutDividerLayer() {
	if c.dividerLayer == nil || c.dividerSpawn.IsAnimating() {
		return
	}
	c.dividerLayer.SetBounds(c.dividerBounds())
}

func (c *Controller) dividerBounds() geometry.Rect {
	workArea := c.sh.WorkArea()
	pos := c.divider.Position()
	if c.sh.Orientation().Horizontal {
		return geometry.Rect{X: workArea.X + pos, Y: workArea.Y, Width: DividerThickness, Height: workArea.Height}
	}
	return geometry.Rect{X: workArea.X, Y: workArea.Y + pos, Width: workArea.Width, Height: DividerThickness}
}

// spawnDivider births the divider bar at the corner of the first snapped
// window while that window's own snap transform is still decaying, then
// grows it to its full length.
func (c *Controller) spawnDivider(w shell.Window, p Position, t geometry.Transform) {
	if c.dividerLayer == nil {
		return
	}
	bounds := c.snappedBoundsForPosition(p, false)
	progress := tween.FastOutSlowIn(float64(dividerSpawnDelay) / float64(snapTransformDuration))
	c.spawnCorner = geometry.SpawnCorner(bounds, c.physicalLeftOrTop(p), t, progress)

	c.dividerSpawn = tween.New(0, 1, snapTransformDuration-dividerSpawnDelay, tween.FastOutSlowIn)
	c.dividerSpawn.OnTick = func(v float64) {
		c.dividerLayer.SetBounds(c.spawnDividerBounds(v))
	}
	c.dividerSpawn.OnEnd = func() {
		c.dividerSpawn = nil
		c.layoutDividerLayer()
	}
	c.dividerSpawn.OnCancel = func() {
		c.dividerSpawn = nil
	}
}

// spawnDividerBounds grows the divider bar from the spawn corner toward its
// full bounds as progress runs 0 to 1.
func (c *Controller) spawnDividerBounds(progress float64) geometry.Rect {
	full := c.dividerBounds()
	if c.sh.Orientation().Horizontal {
		top := float64(c.spawnCorner.Y) + (float64(full.Y)-float64(c.spawnCorner.Y))*progress
		height := float64(full.Height) * progress
		return geometry.Rect{X: full.X, Y: int(math.Round(top)), Width: full.Width, Height: int(math.Round(height))}
	}
	left := float64(c.spawnCorner.X) + (float64(full.X)-float64(c.spawnCorner.X))*progress
	width := float64(full.Width) * progress
	return geometry.Rect{X: int(math.Round(left)), Y: full.Y, Width: int(math.Round(width)), Height: full.Height}
}

func (c *Controller) stopSpawnAnimation() {
	if c.dividerSpawn != nil {
		c.dividerSpawn.Stop()
	}
}

func (c *Controller) dividerEndPosition() int {
	return geometry.DividerEndPosition(c.sh.WorkArea(), c.sh.Orientation().Horizontal)
}

// dividerThickness is the space the divider takes out of the layout; zero
// in clamshell mode where no bar exists.
func (c *Controller) dividerThickness() int {
	if c.sh.InTabletMode() {
		return DividerThickness
	}
	return 0
}

func (c *Controller) positionForRatio(ratio float64) int {
	pos := int(math.Round(ratio * float64(c.dividerEndPosition())))
	if ratio > 0 && ratio < 1 {
		pos -= c.dividerThickness() / 2
	}
	return pos
}

// physicalLeftOrTop says whether the slot sits at the physical left or top
// of the screen under the current orientation.
func (c *Controller) physicalLeftOrTop(p Position) bool {
	return (p == PositionLeft) == c.sh.Orientation().RightSideUp
}

func (c *Controller) positionForPhysicalSide(leftOrTop bool) Position {
	if leftOrTop == c.sh.Orientation().RightSideUp {
		return PositionLeft
	}
	return PositionRight
}

func (c *Controller) windowForPhysicalSide(leftOrTop bool) shell.Window {
	return c.registry.Window(c.positionForPhysicalSide(leftOrTop))
}

// minimumLength is the window's minimum size along the split axis.
func (c *Controller) minimumLength(w shell.Window) int {
	if c.sh.Orientation().Horizontal {
		return w.MinimumSize().Width
	}
	return w.MinimumSize().Height
}

// minimumLengths returns the minimum lengths of the physical left/top and
// right/bottom windows, zero for empty slots.
func (c *Controller) minimumLengths() (left, right int) {
	if w := c.windowForPhysicalSide(true); w != nil {
		left = c.minimumLength(w)
	}
	if w := c.windowForPhysicalSide(false); w != nil {
		right = c.minimumLength(w)
	}
	return left, right
}
