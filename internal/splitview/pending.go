package splitview

import "github.com/tilekit/splitview/internal/shell"

// PendingSnapTracker covers the gap between asking a window to snap and the
// window manager committing the new state. Some clients apply state changes
// asynchronously; until the change lands, the window belongs to neither
// slot. The tracker observes each such window and hands it to the registry
// the moment the target state arrives.
type PendingSnapTracker struct {
	sh      shell.Shell
	entries map[Position]*pendingEntry

	// alreadySnapped short-circuits windows the registry holds on the
	// target side.
	alreadySnapped func(w shell.Window, p Position) bool
	// resolve attaches a window whose target state has arrived.
	resolve func(w shell.Window, p Position)
}

type pendingEntry struct {
	tracker  *PendingSnapTracker
	window   shell.Window
	position Position
	sub      shell.Subscription

	shell.BaseWindowObserver
}

func (e *pendingEntry) OnPreStateChange(w shell.Window, old shell.StateType) {
	if w.State() != e.position.StateType() {
		return
	}
	t := e.tracker
	t.remove(e.position)
	t.resolve(w, e.position)
}

func (e *pendingEntry) OnWindowDestroying(w shell.Window) {
	// The ask can no longer be honored; drop it quietly.
	e.tracker.remove(e.position)
}

// NewPendingSnapTracker returns an empty tracker.
func NewPendingSnapTracker(sh shell.Shell, alreadySnapped func(shell.Window, Position) bool, resolve func(shell.Window, Position)) *PendingSnapTracker {
	return &PendingSnapTracker{
		sh:             sh,
		entries:        make(map[Position]*pendingEntry),
		alreadySnapped: alreadySnapped,
		resolve:        resolve,
	}
}

// AddPending records that the window has been asked to take the given slot.
// A window already holding the slot is ignored; a window already carrying
// the target state attaches immediately. Otherwise the entry displaces any
// unresolved ask for the same side, and an ask for the same window on the
// other side, so only the most recent ask survives.
func (t *PendingSnapTracker) AddPending(w shell.Window, p Position) {
	if t.alreadySnapped(w, p) {
		return
	}
	if w.State() == p.StateType() {
		t.resolve(w, p)
		return
	}
	if e := t.entries[p.Opposite()]; e != nil && e.window.ID() == w.ID() {
		t.remove(p.Opposite())
	}
	if e := t.entries[p]; e != nil {
		if e.window.ID() == w.ID() {
			return
		}
		t.remove(p)
	}
	e := &pendingEntry{tracker: t, window: w, position: p}
	e.sub = t.sh.Observe(w, e)
	t.entries[p] = e
}

// Pending returns the window awaiting the given slot, nil when none.
func (t *PendingSnapTracker) Pending(p Position) shell.Window {
	if e := t.entries[p]; e != nil {
		return e.window
	}
	return nil
}

// IsPending reports whether the window awaits either slot.
func (t *PendingSnapTracker) IsPending(w shell.Window) bool {
	for _, e := range t.entries {
		if e.window.ID() == w.ID() {
			return true
		}
	}
	return false
}

// Empty reports whether no asks are outstanding.
func (t *PendingSnapTracker) Empty() bool { return len(t.entries) == 0 }

func (t *PendingSnapTracker) remove(p Position) {
	if e := t.entries[p]; e != nil {
		e.sub.Cancel()
		delete(t.entries, p)
	}
}

// Clear drops all outstanding asks. Every split teardown path runs this so
// no ask survives the split it was made for.
func (t *PendingSnapTracker) Clear() {
	for p := range t.entries {
		t.remove(p)
	}
}
