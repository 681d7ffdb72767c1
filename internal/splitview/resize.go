package splitview

import (
	"time"

	"github.com/tilekit/splitview/internal/geometry"
	"github.com/tilekit/splitview/internal/shell"
	"github.com/tilekit/splitview/internal/tween"
)

// restoreTransformDuration is how long a window squeezed under the divider
// takes to slide back once the drag ends.
const restoreTransformDuration = 100 * time.Millisecond

// ResizeEngine drives a live divider drag: it clamps the pointer, feeds the
// divider model, relayouts both windows, paints the scrim as the divider
// nears an edge, and offsets windows squeezed below their minimum so they
// appear to slide under the divider.
type ResizeEngine struct {
	c     *Controller
	scrim shell.Layer
}

func newResizeEngine(c *Controller) *ResizeEngine {
	return &ResizeEngine{c: c}
}

// StartResize begins a divider drag at the given screen location.
func (e *ResizeEngine) StartResize(location geometry.Point) error {
	c := e.c
	if c.state == StateNoSnap || !c.sh.InTabletMode() {
		return ErrBadState
	}
	bounded := geometry.BoundedPoint(location, c.sh.WorkArea())
	if err := c.divider.StartDrag(bounded); err != nil {
		return err
	}
	for _, w := range c.registry.Windows() {
		c.sh.CreateDragDetails(w, bounded)
	}
	c.metrics.ResizeStarted()
	return nil
}

// Resize continues a drag. Locations arriving without a drag in flight are
// dropped.
func (e *ResizeEngine) Resize(location geometry.Point) {
	c := e.c
	if !c.divider.IsResizing() {
		return
	}
	bounded := geometry.BoundedPoint(location, c.sh.WorkArea())
	c.divider.Drag(bounded, c.sh.Orientation().Horizontal, c.dividerEndPosition())
	e.updateScrim(bounded)
}

// EndResize finishes a drag: the scrim drops and the divider settles on the
// nearest resting ratio, animating there when it is not already on one.
// Settling on an endpoint ends the split once the animation lands.
func (e *ResizeEngine) EndResize(location geometry.Point) {
	c := e.c
	if !c.divider.IsResizing() {
		return
	}
	bounded := geometry.BoundedPoint(location, c.sh.WorkArea())
	end := c.dividerEndPosition()
	c.divider.EndDrag(bounded, c.sh.Orientation().Horizontal, end)
	e.dropScrim()
	c.metrics.ResizeEnded()

	minLeft, minRight := c.minimumLengths()
	target, ratio := geometry.ClosestFixedDividerPosition(
		c.divider.Position(), end, c.dividerThickness(), minLeft, minRight)
	c.divider.AnimateTo(target, ratio, func() {
		e.finishResize(bounded)
		c.endSplitIfDividerAtEdge()
	})
}

// finishResize restores squeezed windows and releases the drag bookkeeping.
func (e *ResizeEngine) finishResize(location geometry.Point) {
	c := e.c
	for _, w := range c.registry.Windows() {
		c.restoreTransform(w, restoreTransformDuration)
		c.sh.CompleteDrag(w, location)
		c.sh.DeleteDragDetails(w)
	}
}

// stop aborts any drag in flight without settling the divider, for teardown
// paths. A settle animation already running is shoved to its target and its
// drag bookkeeping released, since its completion callback will never fire.
func (e *ResizeEngine) stop() {
	c := e.c
	switch {
	case c.divider.IsResizing():
		loc := c.divider.PreviousEvent()
		c.divider.EndDrag(loc, c.sh.Orientation().Horizontal, c.dividerEndPosition())
		for _, w := range c.registry.Windows() {
			c.sh.DeleteDragDetails(w)
		}
		c.metrics.ResizeEnded()
	case c.divider.IsAnimating():
		loc := c.divider.PreviousEvent()
		c.divider.StopAndShove()
		e.finishResize(loc)
	}
	e.dropScrim()
}

// updateScrim shows, moves or hides the scrim for the given pointer
// location. The scrim shades the window about to be pushed out and tracks
// that window's squeeze transform so the two move as one.
func (e *ResizeEngine) updateScrim(location geometry.Point) {
	c := e.c
	o := c.sh.Orientation()
	workArea := c.sh.WorkArea()
	minLeft, minRight := c.minimumLengths()

	physicalLeftOrTop, show := geometry.ScrimSide(location, workArea, o.Horizontal, minLeft, minRight)
	if !show {
		e.dropScrim()
		return
	}
	if e.scrim == nil {
		e.scrim = c.sh.NewLayer()
		e.scrim.Show()
	}
	bounds := c.snappedBoundsForPhysicalSide(physicalLeftOrTop, true)
	if t := c.transformForPhysicalSide(physicalLeftOrTop); !t.IsIdentity() {
		bounds = t.ApplyToRect(bounds)
	}
	e.scrim.SetBounds(bounds)
	e.scrim.SetOpacity(geometry.ScrimOpacity(location, workArea, o.Horizontal))
}

func (e *ResizeEngine) dropScrim() {
	if e.scrim != nil {
		e.scrim.Destroy()
		e.scrim = nil
	}
}

// applyTransforms offsets each snapped window whose slot is narrower than
// its minimum so the window appears to slide under the divider rather than
// shrink past what it can draw.
func (c *Controller) applyTransforms() {
	for _, p := range []Position{PositionLeft, PositionRight} {
		w := c.registry.Window(p)
		if w == nil {
			continue
		}
		t := c.transformForPhysicalSide(c.physicalLeftOrTop(p))
		if t.IsIdentity() {
			c.restoreTransform(w, 0)
			continue
		}
		c.appliedTransforms[w.ID()] = t
		c.sh.SetTransform(w, t)
	}
}

// transformForPhysicalSide computes the squeeze translation for the window
// on the given physical side, identity when the window still fits.
func (c *Controller) transformForPhysicalSide(physicalLeftOrTop bool) geometry.Transform {
	w := c.windowForPhysicalSide(physicalLeftOrTop)
	if w == nil {
		return geometry.Identity()
	}
	end := c.dividerEndPosition()
	pos := c.divider.Position()

	available := pos
	if !physicalLeftOrTop {
		available = end - pos - c.dividerThickness()
	}
	min := c.minimumLength(w)
	if available >= min {
		return geometry.Identity()
	}

	// The squeezed window keeps its minimum length and slides toward its
	// screen edge by however much it no longer fits.
	distance := min - available
	if physicalLeftOrTop {
		distance = -distance
	}
	if c.sh.Orientation().Horizontal {
		return geometry.Translation(float64(distance), 0)
	}
	return geometry.Translation(0, float64(distance))
}

// restoreTransform clears a window's squeeze offset, animated over d when
// positive.
func (c *Controller) restoreTransform(w shell.Window, d time.Duration) {
	if _, ok := c.appliedTransforms[w.ID()]; !ok {
		return
	}
	delete(c.appliedTransforms, w.ID())
	if d > 0 {
		c.sh.AnimateTransform(w, geometry.Identity(), d, tween.FastOutSlowIn)
	} else {
		c.sh.SetTransform(w, geometry.Identity())
	}
}
