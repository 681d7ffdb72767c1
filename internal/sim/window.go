package sim

import (
	"github.com/google/uuid"

	"github.com/tilekit/splitview/internal/geometry"
	"github.com/tilekit/splitview/internal/shell"
)

// Window is an in-memory toplevel window.
type Window struct {
	id           string
	title        string
	state        shell.StateType
	bounds       geometry.Rect
	minSize      geometry.Size
	snappable    bool
	activable    bool
	positionable bool
	visible      bool
	transform    geometry.Transform

	// async makes state changes queue until Shell.Flush, imitating
	// clients that commit window states on a later event loop turn.
	async bool
}

// WindowConfig seeds a new window; zero values get sensible defaults.
type WindowConfig struct {
	Title        string
	Bounds       geometry.Rect
	MinSize      geometry.Size
	NotSnappable bool
	NotActivable bool
	// NotPositionable marks a system surface the user cannot place,
	// like a keyboard or a picture-in-picture bubble.
	NotPositionable bool
	AsyncState      bool
}

// NewWindow builds a window and registers it with the shell, most recently
// used.
func (s *Shell) NewWindow(cfg WindowConfig) *Window {
	w := &Window{
		id:           uuid.NewString(),
		title:        cfg.Title,
		bounds:       cfg.Bounds,
		minSize:      cfg.MinSize,
		snappable:    !cfg.NotSnappable,
		activable:    !cfg.NotActivable,
		positionable: !cfg.NotPositionable,
		visible:      true,
		transform:    geometry.Identity(),
		async:        cfg.AsyncState,
	}
	s.windows = append([]*Window{w}, s.windows...)
	return w
}

func (w *Window) ID() string                    { return w.id }
func (w *Window) Title() string                 { return w.title }
func (w *Window) State() shell.StateType        { return w.state }
func (w *Window) BoundsInScreen() geometry.Rect { return w.bounds }
func (w *Window) MinimumSize() geometry.Size    { return w.minSize }
func (w *Window) CanSnap() bool                 { return w.snappable }
func (w *Window) CanActivate() bool             { return w.activable }
func (w *Window) IsVisible() bool               { return w.visible }
func (w *Window) Transform() geometry.Transform { return w.transform }

// SetTransform seeds a non-identity transform, as a window mid-animation
// would carry.
func (w *Window) SetTransform(t geometry.Transform) { w.transform = t }

// SetSnappable flips resizability; the shell reports the property change.
func (s *Shell) SetSnappable(w *Window, snappable bool) {
	if w.snappable == snappable {
		return
	}
	w.snappable = snappable
	s.fireProperty(w, shell.PropertyResizeBehavior)
}
