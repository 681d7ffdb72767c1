package splitview

import "github.com/tilekit/splitview/internal/shell"

// snapSlot pairs a snapped window with its observer registration.
type snapSlot struct {
	window shell.Window
	sub    shell.Subscription
}

func (s *snapSlot) clear() {
	if s.sub != nil {
		s.sub.Cancel()
		s.sub = nil
	}
	s.window = nil
}

// SnapRegistry holds the two snap slots and the default side. Acquiring a
// slot registers the observer supplied at construction; clearing a slot
// cancels it, so a window is observed exactly while it occupies a slot.
type SnapRegistry struct {
	left, right     snapSlot
	defaultPosition Position
	observe         func(shell.Window) shell.Subscription
}

// NewSnapRegistry returns an empty registry. observe is called for every
// window entering a slot and its subscription canceled when it leaves.
func NewSnapRegistry(observe func(shell.Window) shell.Subscription) *SnapRegistry {
	return &SnapRegistry{observe: observe}
}

func (r *SnapRegistry) slot(p Position) *snapSlot {
	if p == PositionLeft {
		return &r.left
	}
	return &r.right
}

// Window returns the occupant of the given slot, nil when empty.
func (r *SnapRegistry) Window(p Position) shell.Window {
	if p == PositionNone {
		return nil
	}
	return r.slot(p).window
}

// PositionOf returns the slot holding the window, or PositionNone.
func (r *SnapRegistry) PositionOf(w shell.Window) Position {
	if w == nil {
		return PositionNone
	}
	if r.left.window != nil && r.left.window.ID() == w.ID() {
		return PositionLeft
	}
	if r.right.window != nil && r.right.window.ID() == w.ID() {
		return PositionRight
	}
	return PositionNone
}

// Contains reports whether the window occupies either slot.
func (r *SnapRegistry) Contains(w shell.Window) bool {
	return r.PositionOf(w) != PositionNone
}

// SetSlot replaces the occupant of a slot and returns the displaced window,
// nil when the slot was empty or held the same window. The first populated
// slot fixes the default side; emptying both slots clears it.
func (r *SnapRegistry) SetSlot(p Position, w shell.Window) (displaced shell.Window) {
	s := r.slot(p)
	if s.window != nil && w != nil && s.window.ID() == w.ID() {
		return nil
	}
	displaced = s.window
	s.clear()
	if w != nil {
		// A window never occupies both slots.
		if other := r.slot(p.Opposite()); other.window != nil && other.window.ID() == w.ID() {
			other.clear()
		}
		s.window = w
		if r.observe != nil {
			s.sub = r.observe(w)
		}
		if r.defaultPosition == PositionNone {
			r.defaultPosition = p
		}
	}
	if r.BothEmpty() {
		r.defaultPosition = PositionNone
	}
	return displaced
}

// DefaultPosition returns the side of the sole occupant when only one slot
// is filled, otherwise the side populated first.
func (r *SnapRegistry) DefaultPosition() Position {
	switch {
	case r.left.window != nil && r.right.window == nil:
		return PositionLeft
	case r.right.window != nil && r.left.window == nil:
		return PositionRight
	}
	return r.defaultPosition
}

// Swap exchanges the two slots, keeping each window's observer registration.
func (r *SnapRegistry) Swap() {
	r.left, r.right = r.right, r.left
	if r.defaultPosition != PositionNone && !r.BothEmpty() {
		r.defaultPosition = r.defaultPosition.Opposite()
	}
}

// BothEmpty reports whether no window is snapped.
func (r *SnapRegistry) BothEmpty() bool {
	return r.left.window == nil && r.right.window == nil
}

// BothFull reports whether both slots are occupied.
func (r *SnapRegistry) BothFull() bool {
	return r.left.window != nil && r.right.window != nil
}

// Clear empties both slots and the default side, canceling observers.
func (r *SnapRegistry) Clear() {
	r.left.clear()
	r.right.clear()
	r.defaultPosition = PositionNone
}

// Windows returns the occupants in left, right order; empty slots are
// skipped.
func (r *SnapRegistry) Windows() []shell.Window {
	var ws []shell.Window
	if r.left.window != nil {
		ws = append(ws, r.left.window)
	}
	if r.right.window != nil {
		ws = append(ws, r.right.window)
	}
	return ws
}
