// Package sim is an in-memory implementation of the shell contract. The
// demo binary runs the split view controller against it, and so do the
// package tests; it applies window states synchronously or, per window, on
// an explicit Flush to model asynchronous clients.
package sim

import (
	"time"

	"github.com/tilekit/splitview/internal/geometry"
	"github.com/tilekit/splitview/internal/shell"
	"github.com/tilekit/splitview/internal/tween"
)

// Shell is an in-memory window manager for one display.
type Shell struct {
	workArea    geometry.Rect
	orientation geometry.Orientation
	tablet      bool

	// windows is the MRU list, most recent first.
	windows []*Window
	active  *Window

	observers     map[string][]*observerEntry
	activationFns []*callbackEntry
	shownFns      []*callbackEntry

	layers []*Layer

	allowSplitView bool
	desksBusy      bool
	spokenFeedback bool

	dragged      map[string]bool
	draggingTabs map[string]bool
	hideOnDrag   map[string]bool
	dragDetails  map[string]bool

	// queued holds state changes for async windows until Flush.
	queued []queuedState

	// Notices collects every cannot snap notice shown, newest last.
	Notices []string
}

type queuedState struct {
	window *Window
	state  shell.StateType
}

type observerEntry struct {
	obs      shell.WindowObserver
	canceled bool
}

type callbackEntry struct {
	activation func(shell.Window, shell.ActivationReason)
	shown      func(shell.Window)
	canceled   bool
}

type subscription struct {
	cancel func()
}

func (s subscription) Cancel() { s.cancel() }

// NewShell returns a shell with the given work area, landscape and right
// side up, in tablet mode.
func NewShell(workArea geometry.Rect) *Shell {
	return &Shell{
		workArea:       workArea,
		orientation:    geometry.Orientation{Horizontal: true, RightSideUp: true},
		tablet:         true,
		observers:      make(map[string][]*observerEntry),
		allowSplitView: true,
		dragged:        make(map[string]bool),
		draggingTabs:   make(map[string]bool),
		hideOnDrag:     make(map[string]bool),
		dragDetails:    make(map[string]bool),
	}
}

func (s *Shell) Orientation() geometry.Orientation { return s.orientation }
func (s *Shell) WorkArea() geometry.Rect           { return s.workArea }
func (s *Shell) InTabletMode() bool                { return s.tablet }

// SetTabletMode flips the mode; callers then notify their controller.
func (s *Shell) SetTabletMode(tablet bool) { s.tablet = tablet }

// SetOrientation changes display orientation; callers then notify their
// controller of the display change.
func (s *Shell) SetOrientation(o geometry.Orientation) { s.orientation = o }

// SetWorkArea resizes the display's usable area.
func (s *Shell) SetWorkArea(r geometry.Rect) { s.workArea = r }

// SetAllowSplitView toggles the global split view policy.
func (s *Shell) SetAllowSplitView(allow bool) { s.allowSplitView = allow }

// SetDesksBeingModified marks a desk switch in flight.
func (s *Shell) SetDesksBeingModified(busy bool) { s.desksBusy = busy }

func (s *Shell) IsUserPositionable(w shell.Window) bool {
	if sw := s.find(w); sw != nil {
		return sw.positionable
	}
	return false
}

// Activate raises the window to the front of the MRU list and reports the
// activation.
func (s *Shell) Activate(w shell.Window) {
	s.activate(w, shell.ActivationUser)
}

func (s *Shell) activate(w shell.Window, reason shell.ActivationReason) {
	sw := s.find(w)
	if sw == nil || !sw.activable {
		return
	}
	s.moveToFront(sw)
	s.active = sw
	for _, e := range snapshot(s.activationFns) {
		if !e.canceled {
			e.activation(sw, reason)
		}
	}
}

func (s *Shell) ActiveWindow() shell.Window {
	if s.active == nil {
		return nil
	}
	return s.active
}

func (s *Shell) MRUWindows() []shell.Window {
	ws := make([]shell.Window, 0, len(s.windows))
	for _, w := range s.windows {
		if w.visible {
			ws = append(ws, w)
		}
	}
	return ws
}

func (s *Shell) SetBounds(w shell.Window, b geometry.Rect) {
	sw := s.find(w)
	if sw == nil {
		return
	}
	old := sw.bounds
	if old == b {
		return
	}
	sw.bounds = b
	s.fireBounds(sw, old, b)
}

func (s *Shell) SetTransform(w shell.Window, t geometry.Transform) {
	if sw := s.find(w); sw != nil {
		sw.transform = t
	}
}

// AnimateTransform applies the target immediately; the simulator does not
// animate window transforms.
func (s *Shell) AnimateTransform(w shell.Window, t geometry.Transform, _ time.Duration, _ tween.Easing) {
	s.SetTransform(w, t)
}

func (s *Shell) StackOnTop(w shell.Window) {
	if sw := s.find(w); sw != nil {
		s.moveToFront(sw)
	}
}

func (s *Shell) Minimize(w shell.Window) {
	sw := s.find(w)
	if sw == nil {
		return
	}
	sw.visible = false
	s.applyState(sw, shell.StateMinimized)
}

func (s *Shell) Maximize(w shell.Window) {
	if sw := s.find(w); sw != nil {
		s.applyState(sw, shell.StateMaximized)
		sw.bounds = s.workArea
	}
}

// Restore brings a minimized window back and activates it.
func (s *Shell) Restore(w shell.Window) {
	sw := s.find(w)
	if sw == nil {
		return
	}
	wasMinimized := sw.state == shell.StateMinimized
	if wasMinimized {
		sw.visible = true
		s.applyState(sw, shell.StateDefault)
		for _, e := range snapshot(s.shownFns) {
			if !e.canceled {
				e.shown(sw)
			}
		}
	}
	s.activate(sw, shell.ActivationUser)
}

// RequestSnap moves the window toward a snapped state, immediately or on
// the next Flush for async windows.
func (s *Shell) RequestSnap(w shell.Window, state shell.StateType) {
	sw := s.find(w)
	if sw == nil || sw.state == state {
		return
	}
	if sw.async {
		s.queued = append(s.queued, queuedState{window: sw, state: state})
		return
	}
	s.applyState(sw, state)
}

func (s *Shell) RestoreToDefault(w shell.Window) {
	if sw := s.find(w); sw != nil && sw.state != shell.StateDefault {
		s.applyState(sw, shell.StateDefault)
	}
}

// Flush commits every queued async state change in arrival order.
func (s *Shell) Flush() {
	queued := s.queued
	s.queued = nil
	for _, q := range queued {
		if q.window.state != q.state {
			s.applyState(q.window, q.state)
		}
	}
}

// Destroy removes the window, reporting destruction first.
func (s *Shell) Destroy(w shell.Window) {
	sw := s.find(w)
	if sw == nil {
		return
	}
	for _, e := range s.snapshotObservers(sw) {
		e.obs.OnWindowDestroying(sw)
	}
	delete(s.observers, sw.id)
	for i, win := range s.windows {
		if win == sw {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			break
		}
	}
	if s.active == sw {
		s.active = nil
		if len(s.windows) > 0 {
			s.activate(s.windows[0], shell.ActivationWindowDisposition)
		}
	}
}

func (s *Shell) AllowSplitView() bool     { return s.allowSplitView }
func (s *Shell) DesksBeingModified() bool { return s.desksBusy }

func (s *Shell) IsDragged(w shell.Window) bool      { return s.dragged[w.ID()] }
func (s *Shell) IsDraggingTabs(w shell.Window) bool { return s.draggingTabs[w.ID()] }
func (s *Shell) ShouldHideDuringDrag(w shell.Window) bool {
	return s.hideOnDrag[w.ID()]
}

// SetDragged marks the window as being dragged and reports the property
// change.
func (s *Shell) SetDragged(w shell.Window, dragged bool) {
	s.dragged[w.ID()] = dragged
	if sw := s.find(w); sw != nil {
		s.fireProperty(sw, shell.PropertyBeingDragged)
	}
}

// SetDraggingTabs marks a tab drag sourced from the window.
func (s *Shell) SetDraggingTabs(w shell.Window, dragging bool) {
	s.draggingTabs[w.ID()] = dragging
}

// SetHideDuringDrag marks the window as one that follows the drag pointer.
func (s *Shell) SetHideDuringDrag(w shell.Window, hide bool) {
	s.hideOnDrag[w.ID()] = hide
}

func (s *Shell) CreateDragDetails(w shell.Window, _ geometry.Point) { s.dragDetails[w.ID()] = true }
func (s *Shell) CompleteDrag(shell.Window, geometry.Point)          {}
func (s *Shell) DeleteDragDetails(w shell.Window)                   { delete(s.dragDetails, w.ID()) }

// OpenDragDetails counts windows whose drag bookkeeping was created but
// never deleted.
func (s *Shell) OpenDragDetails() int { return len(s.dragDetails) }

func (s *Shell) ShowCannotSnapNotice(w shell.Window) {
	s.Notices = append(s.Notices, w.ID())
}

func (s *Shell) Observe(w shell.Window, o shell.WindowObserver) shell.Subscription {
	e := &observerEntry{obs: o}
	s.observers[w.ID()] = append(s.observers[w.ID()], e)
	return subscription{cancel: func() { e.canceled = true }}
}

func (s *Shell) ObserveActivation(fn func(shell.Window, shell.ActivationReason)) shell.Subscription {
	e := &callbackEntry{activation: fn}
	s.activationFns = append(s.activationFns, e)
	return subscription{cancel: func() { e.canceled = true }}
}

func (s *Shell) ObserveShown(fn func(shell.Window)) shell.Subscription {
	e := &callbackEntry{shown: fn}
	s.shownFns = append(s.shownFns, e)
	return subscription{cancel: func() { e.canceled = true }}
}

func (s *Shell) NewLayer() shell.Layer {
	l := &Layer{}
	s.layers = append(s.layers, l)
	return l
}

// LiveLayers returns the layers created and not yet destroyed.
func (s *Shell) LiveLayers() []*Layer {
	var live []*Layer
	for _, l := range s.layers {
		if !l.Destroyed {
			live = append(live, l)
		}
	}
	return live
}

// applyState commits a state and walks the observer contract: the window
// reports the new state, then pre and post change callbacks fire.
func (s *Shell) applyState(w *Window, state shell.StateType) {
	old := w.state
	w.state = state
	for _, e := range s.snapshotObservers(w) {
		e.obs.OnPreStateChange(w, old)
	}
	for _, e := range s.snapshotObservers(w) {
		e.obs.OnPostStateChange(w, state)
	}
}

func (s *Shell) fireBounds(w *Window, old, new geometry.Rect) {
	for _, e := range s.snapshotObservers(w) {
		e.obs.OnWindowBoundsChanged(w, old, new)
	}
}

func (s *Shell) fireProperty(w *Window, prop shell.Property) {
	for _, e := range s.snapshotObservers(w) {
		e.obs.OnPropertyChanged(w, prop)
	}
}

// snapshotObservers copies the live observer list so callbacks may cancel
// or add registrations mid-walk.
func (s *Shell) snapshotObservers(w *Window) []*observerEntry {
	var live []*observerEntry
	for _, e := range s.observers[w.id] {
		if !e.canceled {
			live = append(live, e)
		}
	}
	return live
}

func snapshot(entries []*callbackEntry) []*callbackEntry {
	return append([]*callbackEntry(nil), entries...)
}

func (s *Shell) find(w shell.Window) *Window {
	if w == nil {
		return nil
	}
	for _, win := range s.windows {
		if win.id == w.ID() {
			return win
		}
	}
	return nil
}

func (s *Shell) moveToFront(w *Window) {
	for i, win := range s.windows {
		if win == w {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			s.windows = append([]*Window{w}, s.windows...)
			return
		}
	}
}

// Layer is an in-memory rectangle surface that records what the controller
// does to it.
type Layer struct {
	Bounds    geometry.Rect
	Opacity   float64
	Visible   bool
	Destroyed bool
}

func (l *Layer) SetBounds(b geometry.Rect)  { l.Bounds = b }
func (l *Layer) SetOpacity(opacity float64) { l.Opacity = opacity }
func (l *Layer) Show()                      { l.Visible = true }
func (l *Layer) Hide()                      { l.Visible = false }
func (l *Layer) Destroy()                   { l.Destroyed = true }
