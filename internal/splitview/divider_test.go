package splitview

import (
	"math"
	"testing"
	"time"

	"github.com/tilekit/splitview/internal/geometry"
)

func TestDividerModelDefaults(t *testing.T) {
	d := NewDividerModel()
	if d.HasPosition() {
		t.Error("fresh model reports a position")
	}
	if d.Position() != -1 {
		t.Errorf("position = %d, want -1", d.Position())
	}
	if !math.IsNaN(d.ClosestRatio()) {
		t.Errorf("closest ratio = %v, want NaN", d.ClosestRatio())
	}
}

func TestDividerDragClampsToRange(t *testing.T) {
	d := NewDividerModel()
	d.SetPosition(496)
	if err := d.StartDrag(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}

	d.Drag(geometry.Point{X: 2000, Y: 300}, true, 1000)
	if got := d.Position(); got != 1000 {
		t.Errorf("position = %d, want clamped 1000", got)
	}
	d.Drag(geometry.Point{X: -500, Y: 300}, true, 1000)
	if got := d.Position(); got != 0 {
		t.Errorf("position = %d, want clamped 0", got)
	}
}

func TestDividerDragUsesDeltas(t *testing.T) {
	d := NewDividerModel()
	d.SetPosition(496)
	if err := d.StartDrag(geometry.Point{X: 400, Y: 300}); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}

	// The pointer need not sit on the divider; only its movement counts.
	d.Drag(geometry.Point{X: 450, Y: 300}, true, 1000)
	if got := d.Position(); got != 546 {
		t.Errorf("position = %d, want 546", got)
	}

	d.Drag(geometry.Point{X: 450, Y: 100}, false, 1000)
	if got := d.Position(); got != 346 {
		t.Errorf("vertical position = %d, want 346", got)
	}
}

func TestDividerSecondDragRejected(t *testing.T) {
	d := NewDividerModel()
	d.SetPosition(496)
	if err := d.StartDrag(geometry.Point{}); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if err := d.StartDrag(geometry.Point{}); err != ErrBadState {
		t.Errorf("second StartDrag = %v, want ErrBadState", err)
	}
}

func TestDividerAnimateToAlreadyThereRunsSynchronously(t *testing.T) {
	d := NewDividerModel()
	d.SetPosition(496)

	var done bool
	d.AnimateTo(496, 0.5, func() { done = true })

	if !done {
		t.Error("completion did not run synchronously")
	}
	if d.IsAnimating() {
		t.Error("model animating with nothing to do")
	}
	if got := d.ClosestRatio(); got != 0.5 {
		t.Errorf("closest ratio = %v, want 0.5", got)
	}
}

func TestDividerStopAndShoveJumpsToTarget(t *testing.T) {
	d := NewDividerModel()
	d.SetPosition(400)

	var done bool
	d.AnimateTo(496, 0.5, func() { done = true })
	now := time.Unix(0, 0)
	d.Tick(now)
	d.Tick(now.Add(100 * time.Millisecond))

	d.StopAndShove()

	if got := d.Position(); got != 496 {
		t.Errorf("position = %d, want shoved to 496", got)
	}
	if done {
		t.Error("completion ran for a stopped animation")
	}
	if d.IsAnimating() {
		t.Error("model still animating after StopAndShove")
	}
}

func TestDividerResetClearsEverything(t *testing.T) {
	d := NewDividerModel()
	d.SetPosition(400)
	d.AnimateTo(496, 0.5, nil)

	d.Reset()

	if d.HasPosition() {
		t.Error("position survived reset")
	}
	if !math.IsNaN(d.ClosestRatio()) {
		t.Errorf("closest ratio = %v, want NaN", d.ClosestRatio())
	}
	if d.IsAnimating() || d.IsResizing() {
		t.Error("activity flags survived reset")
	}
}
