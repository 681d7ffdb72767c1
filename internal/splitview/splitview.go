// Package splitview tiles up to two windows side by side on one display,
// separated by a draggable divider. The Controller is the entry point; it
// owns the divider model, the snap registry, the pending snap tracker, the
// auto snap policy and the resize engine, and is driven entirely by its host
// through the shell package's interfaces.
package splitview

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tilekit/splitview/internal/shell"
)

// Package-level logger
var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "splitview",
	})
}

// SetLogLevel sets the logging level for the splitview package.
func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

var (
	// ErrNotSnappable means the window fails CanSnap at the moment of
	// the request.
	ErrNotSnappable = errors.New("window cannot be snapped")
	// ErrBadState means the operation is invalid in the current state,
	// such as swapping while the divider animates.
	ErrBadState = errors.New("operation invalid in current state")
	// ErrSplitViewDisabled means global policy currently forbids split
	// view entirely.
	ErrSplitViewDisabled = errors.New("split view is disabled")
)

// Position names one of the two snap slots. Left means left in landscape
// and top in portrait.
type Position int

const (
	PositionNone Position = iota
	PositionLeft
	PositionRight
)

// Opposite returns the other slot, or PositionNone for PositionNone.
func (p Position) Opposite() Position {
	switch p {
	case PositionLeft:
		return PositionRight
	case PositionRight:
		return PositionLeft
	}
	return PositionNone
}

// StateType returns the window management state a window snapped at p
// carries.
func (p Position) StateType() shell.StateType {
	if p == PositionLeft {
		return shell.StatePrimarySnapped
	}
	return shell.StateSecondarySnapped
}

func (p Position) String() string {
	switch p {
	case PositionLeft:
		return "left"
	case PositionRight:
		return "right"
	}
	return "none"
}

// positionOfState maps a snapped window state back to its slot.
func positionOfState(s shell.StateType) Position {
	switch s {
	case shell.StatePrimarySnapped:
		return PositionLeft
	case shell.StateSecondarySnapped:
		return PositionRight
	}
	return PositionNone
}

// State is the controller's top level state.
type State int

const (
	StateNoSnap State = iota
	StateLeftSnapped
	StateRightSnapped
	StateBothSnapped
)

func (s State) String() string {
	switch s {
	case StateNoSnap:
		return "no-snap"
	case StateLeftSnapped:
		return "left-snapped"
	case StateRightSnapped:
		return "right-snapped"
	case StateBothSnapped:
		return "both-snapped"
	}
	return "unknown"
}

// EndReason says why a split ended, carried on the state change notification
// that moves the controller back to StateNoSnap.
type EndReason int

const (
	EndReasonNormal EndReason = iota
	EndReasonHomeLauncherPressed
	EndReasonWindowDragStarted
	EndReasonUnsnappableWindowActivated
)

func (r EndReason) String() string {
	switch r {
	case EndReasonNormal:
		return "normal"
	case EndReasonHomeLauncherPressed:
		return "home-launcher-pressed"
	case EndReasonWindowDragStarted:
		return "window-drag-started"
	case EndReasonUnsnappableWindowActivated:
		return "unsnappable-window-activated"
	}
	return "unknown"
}

// Observer receives controller notifications. State change fires before
// divider position change when one event produces both.
type Observer interface {
	// OnSplitViewStateChanged fires on every transition, including ones
	// where the state value is unchanged but a slot's occupant changed.
	OnSplitViewStateChanged(previous, current State)
	// OnSplitViewDividerPositionChanged fires on every commit of the
	// divider position.
	OnSplitViewDividerPositionChanged()
}

// SnapEvent is a window manager snap request routed through the shell.
type SnapEvent int

const (
	SnapEventLeft SnapEvent = iota
	SnapEventRight
)
