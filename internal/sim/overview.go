package sim

import "github.com/tilekit/splitview/internal/shell"

// Overview is an in-memory overview grid. The controller hears about its
// transitions through the Starting and Ending hooks, which the host wires
// to the controller's overview callbacks.
type Overview struct {
	sh     *Shell
	active bool
	grid   []shell.Window

	suppressExit bool

	// Starting runs after the grid opens, Ending while it is still
	// populated on the way down.
	Starting func()
	Ending   func()

	// ExitAnimationsSuppressed counts Ends that ran without animation.
	ExitAnimationsSuppressed int
}

// NewOverview returns an inactive overview over the shell's windows.
func NewOverview(sh *Shell) *Overview {
	return &Overview{sh: sh}
}

func (o *Overview) IsActive() bool { return o.active }

// Start opens the grid with every visible unsnapped window.
func (o *Overview) Start(shell.OverviewReason) {
	if o.active {
		return
	}
	o.active = true
	for _, w := range o.sh.MRUWindows() {
		if !w.State().IsSnapped() {
			o.grid = append(o.grid, w)
		}
	}
	if o.Starting != nil {
		o.Starting()
	}
}

// End closes the grid. The Ending hook sees the grid still populated, the
// way a closing overview still has its items.
func (o *Overview) End(shell.OverviewReason) {
	if !o.active {
		return
	}
	if o.Ending != nil {
		o.Ending()
	}
	// The Ending hook may itself ask for the exit animation to go.
	if o.suppressExit {
		o.suppressExit = false
		o.ExitAnimationsSuppressed++
	}
	o.active = false
	o.grid = nil
}

func (o *Overview) Contains(w shell.Window) bool {
	for _, g := range o.grid {
		if g.ID() == w.ID() {
			return true
		}
	}
	return false
}

func (o *Overview) InsertWindow(w shell.Window) {
	if !o.active || o.Contains(w) {
		return
	}
	o.grid = append([]shell.Window{w}, o.grid...)
}

func (o *Overview) RemoveWindow(w shell.Window) {
	for i, g := range o.grid {
		if g.ID() == w.ID() {
			o.grid = append(o.grid[:i], o.grid[i+1:]...)
			return
		}
	}
}

func (o *Overview) Windows() []shell.Window {
	return append([]shell.Window(nil), o.grid...)
}

func (o *Overview) SuppressExitAnimation() { o.suppressExit = true }
