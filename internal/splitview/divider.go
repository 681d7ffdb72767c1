package splitview

import (
	"math"
	"time"

	"github.com/tilekit/splitview/internal/geometry"
	"github.com/tilekit/splitview/internal/tween"
)

// DividerThickness is the short side of the divider bar in tablet mode, in
// screen units.
const DividerThickness = 8

// dividerSnapDuration is how long the divider takes to settle on a fixed
// ratio after a drag ends.
const dividerSnapDuration = 300 * time.Millisecond

// unsetDividerPosition marks a divider with no position, outside a split.
const unsetDividerPosition = -1

// DividerModel tracks the divider along the split axis. The stored position
// is the divider's origin; resting ratios describe its center. The model
// owns the snap animation that settles the divider after a drag, so
// IsResizing and IsAnimating are never true together.
type DividerModel struct {
	position      int
	closestRatio  float64
	resizing      bool
	previousEvent geometry.Point
	anim          *tween.Animation

	// OnPositionChanged fires on every commit of position, including
	// animation frames.
	OnPositionChanged func()
}

// NewDividerModel returns a divider with no position and no ratio.
func NewDividerModel() *DividerModel {
	return &DividerModel{position: unsetDividerPosition, closestRatio: math.NaN()}
}

// Position returns the divider origin, or -1 outside a split.
func (d *DividerModel) Position() int { return d.position }

// SetPosition commits a new origin and notifies.
func (d *DividerModel) SetPosition(pos int) {
	d.position = pos
	if d.OnPositionChanged != nil {
		d.OnPositionChanged()
	}
}

// ClosestRatio returns the last committed resting ratio, NaN before the
// first commit.
func (d *DividerModel) ClosestRatio() float64 { return d.closestRatio }

// SetClosestRatio records the resting ratio the divider last settled on.
func (d *DividerModel) SetClosestRatio(ratio float64) { d.closestRatio = ratio }

// IsResizing reports whether a drag is in flight.
func (d *DividerModel) IsResizing() bool { return d.resizing }

// IsAnimating reports whether the post-drag snap animation is running.
func (d *DividerModel) IsAnimating() bool { return d.anim.IsAnimating() }

// PreviousEvent returns the last drag location the model consumed.
func (d *DividerModel) PreviousEvent() geometry.Point { return d.previousEvent }

// HasPosition reports whether the divider has been placed.
func (d *DividerModel) HasPosition() bool { return d.position != unsetDividerPosition }

// StartDrag begins a drag at the given location, which must already be
// clamped to the work area. A second drag, or a drag during the snap
// animation, is rejected.
func (d *DividerModel) StartDrag(location geometry.Point) error {
	if d.resizing || d.IsAnimating() {
		return ErrBadState
	}
	d.previousEvent = location
	d.resizing = true
	return nil
}

// Drag moves the divider by the delta between the last consumed location and
// this one, clamped to [0, end].
func (d *DividerModel) Drag(location geometry.Point, horizontal bool, end int) {
	if !d.resizing {
		return
	}
	delta := location.X - d.previousEvent.X
	if !horizontal {
		delta = location.Y - d.previousEvent.Y
	}
	d.previousEvent = location
	pos := d.position + delta
	if pos < 0 {
		pos = 0
	}
	if pos > end {
		pos = end
	}
	d.SetPosition(pos)
}

// EndDrag consumes the final drag location and clears the resizing flag.
func (d *DividerModel) EndDrag(location geometry.Point, horizontal bool, end int) {
	d.Drag(location, horizontal, end)
	d.resizing = false
}

// AnimateTo eases the divider from its current position to target, eased in
// so the divider leaves the user's finger gently. onEnd runs once the
// divider arrives; a canceled animation never runs it.
func (d *DividerModel) AnimateTo(target int, ratio float64, onEnd func()) {
	d.closestRatio = ratio
	if target == d.position {
		if onEnd != nil {
			onEnd()
		}
		return
	}
	d.anim = tween.New(float64(d.position), float64(target), dividerSnapDuration, tween.EaseIn)
	d.anim.OnTick = func(v float64) {
		d.SetPosition(int(math.Round(v)))
	}
	d.anim.OnEnd = func() {
		d.anim = nil
		if onEnd != nil {
			onEnd()
		}
	}
	d.anim.OnCancel = func() {
		d.anim = nil
	}
}

// Tick advances the snap animation, if any, to the given time.
func (d *DividerModel) Tick(now time.Time) {
	if a := d.anim; a != nil {
		a.Tick(now)
	}
}

// StopAndShove halts a running snap animation and jumps the divider to the
// animation's target without firing its completion. Used when display
// metrics change mid-animation or when the split is ending.
func (d *DividerModel) StopAndShove() {
	if !d.IsAnimating() {
		return
	}
	target := int(d.anim.Target())
	d.anim.Stop()
	d.SetPosition(target)
}

// Reset returns the model to its out-of-split defaults.
func (d *DividerModel) Reset() {
	if d.anim.IsAnimating() {
		d.anim.Stop()
	}
	d.resizing = false
	d.position = unsetDividerPosition
	d.closestRatio = math.NaN()
}
