// Package shell defines the contract between the split view controller and
// its host environment: windows, the window manager operations the
// controller invokes, and the observer hooks it relies on. The package
// carries no behavior of its own; hosts implement it against their
// windowing system and tests implement it in memory.
package shell

import (
	"time"

	"github.com/tilekit/splitview/internal/geometry"
	"github.com/tilekit/splitview/internal/tween"
)

// StateType identifies a window management state.
type StateType int

const (
	// StateDefault is a freely positioned window.
	StateDefault StateType = iota
	// StatePrimarySnapped fills the left or top half of the work area.
	StatePrimarySnapped
	// StateSecondarySnapped fills the right or bottom half.
	StateSecondarySnapped
	// StateMaximized fills the work area.
	StateMaximized
	// StateFullscreen covers the whole display.
	StateFullscreen
	// StateMinimized is hidden from the desk.
	StateMinimized
	// StatePinned is locked to the screen and excludes other windows.
	StatePinned
)

// IsSnapped reports whether the state is one of the two snapped states.
func (s StateType) IsSnapped() bool {
	return s == StatePrimarySnapped || s == StateSecondarySnapped
}

// String returns the state name for logging.
func (s StateType) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StatePrimarySnapped:
		return "primary-snapped"
	case StateSecondarySnapped:
		return "secondary-snapped"
	case StateMaximized:
		return "maximized"
	case StateFullscreen:
		return "fullscreen"
	case StateMinimized:
		return "minimized"
	case StatePinned:
		return "pinned"
	}
	return "unknown"
}

// Property identifies a window attribute whose changes observers may care
// about beyond bounds and state.
type Property int

const (
	// PropertyResizeBehavior changes when a window gains or loses the
	// ability to be resized, which decides whether it may stay snapped.
	PropertyResizeBehavior Property = iota
	// PropertyBeingDragged changes when the user starts or stops
	// dragging the window itself.
	PropertyBeingDragged
)

// Window is a single toplevel window as seen by the controller. Identity is
// by ID; two Window values with the same ID refer to the same window.
type Window interface {
	ID() string
	Title() string
	State() StateType
	BoundsInScreen() geometry.Rect
	// MinimumSize is the smallest size the window may take, zero when
	// unconstrained.
	MinimumSize() geometry.Size
	// CanSnap reports whether the window's type and resizability allow
	// snapping at all.
	CanSnap() bool
	CanActivate() bool
	IsVisible() bool
	// Transform is the visual transform currently applied to the window,
	// identity for a window at rest.
	Transform() geometry.Transform
}

// WindowObserver receives window lifecycle callbacks. Implementations only
// override what they need by embedding BaseWindowObserver.
type WindowObserver interface {
	OnWindowDestroying(w Window)
	OnWindowBoundsChanged(w Window, old, new geometry.Rect)
	// OnPreStateChange fires once the window reports its new state but
	// before the window manager applies the resulting bounds. old is the
	// state being left; w.State() already returns the new one.
	OnPreStateChange(w Window, old StateType)
	// OnPostStateChange fires after a state change is committed.
	OnPostStateChange(w Window, new StateType)
	OnPropertyChanged(w Window, prop Property)
}

// BaseWindowObserver is a WindowObserver with no-op methods.
type BaseWindowObserver struct{}

func (BaseWindowObserver) OnWindowDestroying(Window)                                  {}
func (BaseWindowObserver) OnWindowBoundsChanged(Window, geometry.Rect, geometry.Rect) {}
func (BaseWindowObserver) OnPreStateChange(Window, StateType)                         {}
func (BaseWindowObserver) OnPostStateChange(Window, StateType)                        {}
func (BaseWindowObserver) OnPropertyChanged(Window, Property)                         {}

// Subscription undoes an observer registration.
type Subscription interface {
	Cancel()
}

// Layer is a rectangular surface the controller can place above windows,
// used for the divider bar and the resize scrim.
type Layer interface {
	SetBounds(b geometry.Rect)
	SetOpacity(opacity float64)
	Show()
	Hide()
	Destroy()
}

// Shell is the window manager surface the controller drives. All methods
// are synchronous; asynchronous effects come back through WindowObserver.
type Shell interface {
	// Orientation describes the display along the split axis.
	Orientation() geometry.Orientation
	// WorkArea is the screen area available to windows.
	WorkArea() geometry.Rect
	InTabletMode() bool

	// IsUserPositionable reports whether the user may place the window
	// freely, a precondition for snapping.
	IsUserPositionable(w Window) bool
	Activate(w Window)
	ActiveWindow() Window
	// MRUWindows lists windows on the active desk, most recently used
	// first.
	MRUWindows() []Window

	SetBounds(w Window, b geometry.Rect)
	SetTransform(w Window, t geometry.Transform)
	// AnimateTransform eases the window toward the transform; the shell
	// owns the animation and applies the final value itself.
	AnimateTransform(w Window, t geometry.Transform, d time.Duration, easing tween.Easing)
	StackOnTop(w Window)
	Minimize(w Window)
	Maximize(w Window)

	// RequestSnap asks the window manager to move the window into the
	// given snapped state. The transition may complete synchronously or
	// later; either way it is reported through OnPostStateChange.
	RequestSnap(w Window, state StateType)
	// RestoreToDefault returns the window to its unsnapped state.
	RestoreToDefault(w Window)

	// AllowSplitView reports whether split view may be active right now,
	// independent of any particular window.
	AllowSplitView() bool
	// DesksBeingModified reports whether a desk switch or removal is in
	// flight, during which window activations are bookkeeping rather
	// than user intent.
	DesksBeingModified() bool

	IsDragged(w Window) bool
	IsDraggingTabs(w Window) bool
	// ShouldHideDuringDrag marks windows that follow the drag pointer and
	// must not be auto-snapped against.
	ShouldHideDuringDrag(w Window) bool

	// CreateDragDetails tells the window manager a divider resize now
	// counts as a drag of the window, so clients can defer expensive
	// relayouts until CompleteDrag.
	CreateDragDetails(w Window, location geometry.Point)
	CompleteDrag(w Window, location geometry.Point)
	DeleteDragDetails(w Window)

	// ShowCannotSnapNotice tells the user the window cannot be snapped.
	ShowCannotSnapNotice(w Window)

	Observe(w Window, o WindowObserver) Subscription
	// ObserveActivation reports window activation changes until the
	// subscription is canceled.
	ObserveActivation(fn func(gained Window, reason ActivationReason)) Subscription
	// ObserveShown reports windows becoming visible after having been
	// minimized.
	ObserveShown(fn func(w Window)) Subscription
	NewLayer() Layer
}

// ActivationReason says why a window became active.
type ActivationReason int

const (
	// ActivationUser is a deliberate activation: a click, a shortcut, a
	// task switch.
	ActivationUser ActivationReason = iota
	// ActivationWindowDisposition is bookkeeping fallout, such as focus
	// moving because another window closed.
	ActivationWindowDisposition
)

// OverviewReason tells the overview why it is being started or ended, which
// decides its enter and exit animations.
type OverviewReason int

const (
	// ReasonNormal is a user initiated toggle.
	ReasonNormal OverviewReason = iota
	// ReasonSplitView is a start or end driven by the split view
	// controller to fill the unsnapped side.
	ReasonSplitView
	// ReasonExitHome leaves overview because the home screen took over.
	ReasonExitHome
)

// Overview is the window picker occupying the side of the screen opposite a
// lone snapped window.
type Overview interface {
	IsActive() bool
	Start(reason OverviewReason)
	End(reason OverviewReason)
	// Contains reports whether the window currently has an overview item.
	Contains(w Window) bool
	// InsertWindow gives the window an overview item, restacking the grid
	// around it.
	InsertWindow(w Window)
	// RemoveWindow drops the window's overview item without closing the
	// window.
	RemoveWindow(w Window)
	// Windows lists the windows shown in the grid.
	Windows() []Window
	// SuppressExitAnimation makes the next End skip its animation.
	SuppressExitAnimation()
}
