package splitview

import (
	"math"
	"testing"
	"time"

	"github.com/tilekit/splitview/internal/geometry"
	"github.com/tilekit/splitview/internal/shell"
	"github.com/tilekit/splitview/internal/sim"
)

type fixture struct {
	sh  *sim.Shell
	ov  *sim.Overview
	c   *Controller
	now time.Time
}

func newFixture() *fixture {
	sh := sim.NewShell(geometry.Rect{Width: 1000, Height: 600})
	ov := sim.NewOverview(sh)
	c := New(Config{Shell: sh, Overview: ov, Display: "primary"})
	ov.Starting = c.OnOverviewModeStarting
	ov.Ending = c.OnOverviewModeEnding
	return &fixture{sh: sh, ov: ov, c: c, now: time.Unix(0, 0)}
}

func (f *fixture) window(title string, minWidth int) *sim.Window {
	return f.sh.NewWindow(sim.WindowConfig{
		Title:   title,
		Bounds:  geometry.Rect{X: 50, Y: 50, Width: 700, Height: 400},
		MinSize: geometry.Size{Width: minWidth, Height: 0},
	})
}

// settle runs the controller's animations to completion.
func (f *fixture) settle() {
	for i := 0; i < 40; i++ {
		f.now = f.now.Add(16 * time.Millisecond)
		f.c.Tick(f.now)
	}
}

func (f *fixture) mustSnap(t *testing.T, w *sim.Window, p Position) {
	t.Helper()
	if err := f.c.SnapWindow(w, p, true); err != nil {
		t.Fatalf("SnapWindow(%s, %s) = %v", w.Title(), p, err)
	}
}

type recordingObserver struct {
	transitions    [][2]State
	dividerChanges int
}

func (r *recordingObserver) OnSplitViewStateChanged(prev, cur State) {
	r.transitions = append(r.transitions, [2]State{prev, cur})
}

func (r *recordingObserver) OnSplitViewDividerPositionChanged() {
	r.dividerChanges++
}

func TestFirstSnapSetsDefault(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)

	f.mustSnap(t, a, PositionLeft)

	if got := f.c.State(); got != StateLeftSnapped {
		t.Fatalf("state = %v, want left-snapped", got)
	}
	if got := f.c.DefaultPosition(); got != PositionLeft {
		t.Errorf("default position = %v, want left", got)
	}
	if got := f.c.DividerPosition(); got != 496 {
		t.Errorf("divider position = %d, want 496", got)
	}
	if got, want := a.BoundsInScreen(), (geometry.Rect{Width: 496, Height: 600}); got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
	if layers := f.sh.LiveLayers(); len(layers) != 1 {
		t.Errorf("live layers = %d, want 1 divider bar", len(layers))
	}
}

func TestSecondSnapFills(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)

	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if got := f.c.State(); got != StateBothSnapped {
		t.Fatalf("state = %v, want both-snapped", got)
	}
	if got, want := a.BoundsInScreen(), (geometry.Rect{Width: 496, Height: 600}); got != want {
		t.Errorf("a bounds = %+v, want %+v", got, want)
	}
	if got, want := b.BoundsInScreen(), (geometry.Rect{X: 504, Width: 496, Height: 600}); got != want {
		t.Errorf("b bounds = %+v, want %+v", got, want)
	}
}

func TestDragToTwoThirdsSnapsRatio(t *testing.T) {
	f := newFixture()
	a := f.window("a", 100)
	b := f.window("b", 100)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.Resize(geometry.Point{X: 660, Y: 300})
	f.c.EndResize(geometry.Point{X: 660, Y: 300})

	if f.c.IsResizing() {
		t.Error("still resizing after EndResize")
	}
	if !f.c.IsAnimating() {
		t.Fatal("divider not animating toward the resting position")
	}
	f.settle()

	if got := f.c.DividerPosition(); got != 663 {
		t.Errorf("divider position = %d, want 663", got)
	}
	if got := f.c.ClosestRatio(); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("closest ratio = %v, want 2/3", got)
	}
	if got, want := a.BoundsInScreen(), (geometry.Rect{Width: 663, Height: 600}); got != want {
		t.Errorf("a bounds = %+v, want %+v", got, want)
	}
	if got, want := b.BoundsInScreen(), (geometry.Rect{X: 671, Width: 329, Height: 600}); got != want {
		t.Errorf("b bounds = %+v, want %+v", got, want)
	}
}

func TestDragIntoMinimumAppliesTransform(t *testing.T) {
	f := newFixture()
	a := f.window("a", 400)
	b := f.window("b", 200)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.Resize(geometry.Point{X: 300, Y: 300})

	if got, want := a.BoundsInScreen(), (geometry.Rect{Width: 400, Height: 600}); got != want {
		t.Errorf("a bounds = %+v, want clamped %+v", got, want)
	}
	if got, want := b.BoundsInScreen(), (geometry.Rect{X: 308, Width: 692, Height: 600}); got != want {
		t.Errorf("b bounds = %+v, want %+v", got, want)
	}
	if got, want := a.Transform(), geometry.Translation(-100, 0); got != want {
		t.Errorf("a transform = %+v, want %+v", got, want)
	}
	if got := b.Transform(); !got.IsIdentity() {
		t.Errorf("b transform = %+v, want identity", got)
	}

	layers := f.sh.LiveLayers()
	if len(layers) != 2 {
		t.Fatalf("live layers = %d, want divider and scrim", len(layers))
	}
	scrim := layers[1]
	if math.Abs(scrim.Opacity-0.1333) > 0.01 {
		t.Errorf("scrim opacity = %v, want about 0.133", scrim.Opacity)
	}
	if scrim.Bounds.X != -100 {
		t.Errorf("scrim x = %d, want -100 (tracking the squeezed window)", scrim.Bounds.X)
	}

	// Releasing at a fitting position restores the window.
	f.c.EndResize(geometry.Point{X: 496, Y: 300})
	f.settle()
	if got := a.Transform(); !got.IsIdentity() {
		t.Errorf("a transform after release = %+v, want identity", got)
	}
	if len(f.sh.LiveLayers()) != 1 {
		t.Error("scrim survived the release")
	}
}

func TestDragToEdgeEndsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.EndResize(geometry.Point{X: 0, Y: 300})
	f.settle()

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if active := f.sh.ActiveWindow(); active == nil || active.ID() != b.ID() {
		t.Error("surviving right window was not activated")
	}
	if len(f.sh.LiveLayers()) != 0 {
		t.Error("divider bar survived the split")
	}
}

func TestDragToEdgeReturnsDismissedToOverview(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)
	f.ov.Start(0)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.EndResize(geometry.Point{X: 0, Y: 300})
	f.settle()

	if f.c.State() != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", f.c.State())
	}
	if !f.ov.Contains(a) {
		t.Error("dismissed window not returned to overview")
	}
}

func TestAutoSnapFillsEmptySide(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.ov.Start(0)

	f.sh.Activate(b)

	if got := f.c.State(); got != StateBothSnapped {
		t.Fatalf("state = %v, want both-snapped after auto snap", got)
	}
	if w := f.c.SnappedWindow(PositionRight); w == nil || w.ID() != b.ID() {
		t.Error("activated window did not land in the right slot")
	}
}

func TestUnsnappableActivationEndsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.mustSnap(t, a, PositionLeft)
	u := f.sh.NewWindow(sim.WindowConfig{Title: "u", NotSnappable: true})

	f.sh.Activate(u)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if got := f.c.EndReason(); got != EndReasonUnsnappableWindowActivated {
		t.Errorf("end reason = %v, want unsnappable-window-activated", got)
	}
	if len(f.sh.Notices) != 1 || f.sh.Notices[0] != u.ID() {
		t.Errorf("notices = %v, want one for the activated window", f.sh.Notices)
	}
}

func TestRotationMirrorsRatio(t *testing.T) {
	f := newFixture()
	a := f.window("a", 100)
	b := f.window("b", 100)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.Resize(geometry.Point{X: 330, Y: 300})
	f.c.EndResize(geometry.Point{X: 330, Y: 300})
	f.settle()
	if got := f.c.ClosestRatio(); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Fatalf("closest ratio = %v, want 1/3", got)
	}

	f.sh.SetOrientation(geometry.Orientation{Horizontal: true, RightSideUp: false})
	f.c.OnDisplayMetricsChanged()

	if got := f.c.ClosestRatio(); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("closest ratio after flip = %v, want 2/3", got)
	}
	if got := f.c.DividerPosition(); got != 663 {
		t.Errorf("divider position after flip = %d, want 663", got)
	}
	if got := f.c.State(); got != StateBothSnapped {
		t.Errorf("state = %v, want both-snapped", got)
	}
	// The logical left window now sits on the physical right.
	if got, want := a.BoundsInScreen(), (geometry.Rect{X: 671, Width: 329, Height: 600}); got != want {
		t.Errorf("a bounds = %+v, want %+v", got, want)
	}
}

func TestSwapTwiceIsRoundTrip(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	rec := &recordingObserver{}
	f.c.AddObserver(rec)

	if err := f.c.SwapWindows(); err != nil {
		t.Fatalf("first swap: %v", err)
	}
	if w := f.c.SnappedWindow(PositionLeft); w.ID() != b.ID() {
		t.Error("left slot did not take the right window")
	}
	if err := f.c.SwapWindows(); err != nil {
		t.Fatalf("second swap: %v", err)
	}

	if w := f.c.SnappedWindow(PositionLeft); w.ID() != a.ID() {
		t.Error("double swap did not restore the left slot")
	}
	if w := f.c.SnappedWindow(PositionRight); w.ID() != b.ID() {
		t.Error("double swap did not restore the right slot")
	}
	if len(rec.transitions) != 2 {
		t.Errorf("state notifications = %d, want 2", len(rec.transitions))
	}
}

func TestSwapRejectedWhileDividerAnimates(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.Resize(geometry.Point{X: 660, Y: 300})
	f.c.EndResize(geometry.Point{X: 660, Y: 300})
	if !f.c.IsAnimating() {
		t.Fatal("expected a divider animation")
	}

	if err := f.c.SwapWindows(); err != ErrBadState {
		t.Errorf("SwapWindows during animation = %v, want ErrBadState", err)
	}
	f.settle()
	if err := f.c.SwapWindows(); err != nil {
		t.Errorf("SwapWindows after settling = %v", err)
	}
}

func TestResizeRoundTripAtFixedRatio(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.EndResize(geometry.Point{X: 496, Y: 300})

	if f.c.IsResizing() {
		t.Error("resizing flag survived EndResize")
	}
	if f.c.IsAnimating() {
		t.Error("divider animated despite already resting on a fixed ratio")
	}
	if got := f.c.DividerPosition(); got != 496 {
		t.Errorf("divider position = %d, want 496", got)
	}
	if got := f.c.ClosestRatio(); got != 0.5 {
		t.Errorf("closest ratio = %v, want 0.5", got)
	}
}

func TestStartResizeRejectedDuringAnimation(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != ErrBadState {
		t.Errorf("second StartResize = %v, want ErrBadState", err)
	}
	f.c.EndResize(geometry.Point{X: 660, Y: 300})
	if err := f.c.StartResize(geometry.Point{X: 660, Y: 300}); err != ErrBadState {
		t.Errorf("StartResize during animation = %v, want ErrBadState", err)
	}
}

func TestAsyncSnapResolvesOnFlush(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.mustSnap(t, a, PositionLeft)
	b := f.sh.NewWindow(sim.WindowConfig{Title: "b", AsyncState: true})

	f.mustSnap(t, b, PositionRight)

	if got := f.c.State(); got != StateLeftSnapped {
		t.Fatalf("state before flush = %v, want left-snapped", got)
	}
	if !f.c.IsWindowInTransitionalState(b) {
		t.Error("async window not reported as transitional")
	}

	f.sh.Flush()

	if got := f.c.State(); got != StateBothSnapped {
		t.Fatalf("state after flush = %v, want both-snapped", got)
	}
	if f.c.IsWindowInTransitionalState(b) {
		t.Error("window still transitional after its state arrived")
	}
}

func TestNewerPendingAskDisplacesOlder(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.mustSnap(t, a, PositionLeft)
	b := f.sh.NewWindow(sim.WindowConfig{Title: "b", AsyncState: true})
	c := f.sh.NewWindow(sim.WindowConfig{Title: "c", AsyncState: true})

	f.mustSnap(t, b, PositionRight)
	f.mustSnap(t, c, PositionRight)
	f.sh.Flush()

	if w := f.c.SnappedWindow(PositionRight); w == nil || w.ID() != c.ID() {
		t.Error("right slot did not go to the most recent ask")
	}
	if f.c.IsWindowInSplit(b) {
		t.Error("displaced window ended up in the split")
	}
}

func TestPendingWindowDestroyedDropsAsk(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.mustSnap(t, a, PositionLeft)
	b := f.sh.NewWindow(sim.WindowConfig{Title: "b", AsyncState: true})

	f.mustSnap(t, b, PositionRight)
	f.sh.Destroy(b)
	f.sh.Flush()

	if f.c.IsWindowInTransitionalState(b) {
		t.Error("destroyed window still transitional")
	}
	if got := f.c.State(); got != StateLeftSnapped {
		t.Errorf("state = %v, want left-snapped", got)
	}
}

func TestDestroyedWindowLeavesSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.window("spare", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	f.sh.Destroy(a)

	if got := f.c.State(); got != StateRightSnapped {
		t.Fatalf("state = %v, want right-snapped", got)
	}
	if !f.ov.IsActive() {
		t.Error("overview not offered for the emptied side")
	}

	f.sh.Destroy(b)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if got := f.c.DefaultPosition(); got != PositionNone {
		t.Errorf("default position = %v, want none", got)
	}
	if got := f.c.DividerPosition(); got != -1 {
		t.Errorf("divider position = %d, want -1", got)
	}
	if !math.IsNaN(f.c.ClosestRatio()) {
		t.Errorf("closest ratio = %v, want NaN", f.c.ClosestRatio())
	}
	if len(f.sh.LiveLayers()) != 0 {
		t.Error("divider bar survived the split")
	}
}

func TestMinimizeInTabletKeepsSplitWithOverview(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	f.sh.Minimize(a)

	if got := f.c.State(); got != StateRightSnapped {
		t.Fatalf("state = %v, want right-snapped", got)
	}
	if !f.ov.IsActive() {
		t.Error("overview not started for the emptied side")
	}
}

func TestMinimizeInClamshellEndsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)
	f.sh.SetTabletMode(false)
	f.c.OnTabletModeChanged()

	f.sh.Minimize(a)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
}

func TestMaximizeEndsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	f.sh.Maximize(a)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
}

func TestWindowLosingResizabilityEndsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.window("spare", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	f.sh.SetSnappable(a, false)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if len(f.sh.Notices) != 1 || f.sh.Notices[0] != a.ID() {
		t.Errorf("notices = %v, want one for the unresizable window", f.sh.Notices)
	}
}

func TestWindowLosingResizabilityClosesOverview(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.window("spare", 0)
	f.mustSnap(t, a, PositionLeft)
	f.ov.Start(0)

	f.sh.SetSnappable(a, false)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if f.ov.IsActive() {
		t.Error("overview should close with the split")
	}
}

func TestDragStartReleasesWindow(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.mustSnap(t, a, PositionLeft)

	f.sh.SetDragged(a, true)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if got := f.c.EndReason(); got != EndReasonWindowDragStarted {
		t.Errorf("end reason = %v, want window-drag-started", got)
	}
}

func TestDropIntoSnapRegionSnaps(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)

	f.c.OnWindowDragEnded(a, geometry.Point{X: 900, Y: 300})

	if got := f.c.State(); got != StateRightSnapped {
		t.Fatalf("state = %v, want right-snapped", got)
	}
	if got := f.c.ComputeSnapPosition(geometry.Point{X: 500, Y: 300}); got != PositionNone {
		t.Errorf("center drop position = %v, want none", got)
	}
}

func TestTabletToClamshellDropsDivider(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	f.sh.SetTabletMode(false)
	f.c.OnTabletModeChanged()

	if got := f.c.State(); got != StateBothSnapped {
		t.Fatalf("state = %v, want both-snapped", got)
	}
	if len(f.sh.LiveLayers()) != 0 {
		t.Error("divider bar survived clamshell transition")
	}
	// Without a divider bar the right window reclaims its thickness.
	if got, want := b.BoundsInScreen(), (geometry.Rect{X: 496, Width: 504, Height: 600}); got != want {
		t.Errorf("b bounds = %+v, want %+v", got, want)
	}

	f.sh.SetTabletMode(true)
	f.c.OnTabletModeChanged()
	if len(f.sh.LiveLayers()) != 1 {
		t.Error("divider bar not recreated in tablet mode")
	}
	if got := f.c.DividerPosition(); got != 496 {
		t.Errorf("divider position = %d, want parked on 496", got)
	}
}

func TestPresetDividerPositionConsumedByFirstSnap(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)

	f.c.InitDividerPositionForTransition(300)
	f.mustSnap(t, a, PositionLeft)

	if got := f.c.DividerPosition(); got != 300 {
		t.Errorf("divider position = %d, want preset 300", got)
	}
	if got, want := a.BoundsInScreen(), (geometry.Rect{Width: 300, Height: 600}); got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}

	// A second preset while split is underway must not stick.
	f.c.InitDividerPositionForTransition(700)
	if got := f.c.DividerPosition(); got != 300 {
		t.Errorf("divider position = %d, want unchanged 300", got)
	}
}

func TestOverviewEndingFillsEmptySlot(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.ov.Start(0)

	f.ov.End(0)

	if got := f.c.State(); got != StateBothSnapped {
		t.Fatalf("state = %v, want both-snapped", got)
	}
	if w := f.c.SnappedWindow(PositionRight); w == nil || w.ID() != b.ID() {
		t.Error("grid window did not fill the empty slot")
	}
}

func TestOverviewEndingWithOnlyUnsnappableWindows(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	u := f.sh.NewWindow(sim.WindowConfig{Title: "u", NotSnappable: true})
	f.mustSnap(t, a, PositionLeft)
	f.ov.Start(0)

	f.ov.End(0)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if len(f.sh.Notices) != 1 || f.sh.Notices[0] != u.ID() {
		t.Errorf("notices = %v, want one for the unsnappable window", f.sh.Notices)
	}
}

func TestOverviewEndingWithEmptyGridKeepsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.mustSnap(t, a, PositionLeft)
	f.ov.Start(0)

	f.ov.End(0)

	if got := f.c.State(); got != StateLeftSnapped {
		t.Fatalf("state = %v, want the lone snap to survive an empty grid", got)
	}
	if !f.c.IsWindowInSplit(a) {
		t.Error("window lost its slot")
	}
}

func TestOverviewStartingReleasesNonDefaultWindow(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	f.ov.Start(0)

	if got := f.c.State(); got != StateLeftSnapped {
		t.Fatalf("state = %v, want left-snapped", got)
	}
	if !f.ov.Contains(b) {
		t.Error("released window missing from overview")
	}
}

func TestLongPressBuildsSplitFromMRU(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.sh.Activate(a)

	f.c.OnOverviewButtonTrayLongPressed(geometry.Point{X: 10, Y: 10})

	if got := f.c.State(); got != StateLeftSnapped {
		t.Fatalf("state = %v, want left-snapped", got)
	}
	if !f.ov.IsActive() {
		t.Error("overview not started alongside the snap")
	}

	f.c.OnOverviewButtonTrayLongPressed(geometry.Point{X: 10, Y: 10})

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state after second long press = %v, want no-snap", got)
	}
	if got := a.State(); got.IsSnapped() {
		t.Errorf("window state = %v, want maximized", got)
	}
}

func TestSnapWindowWhenDisabled(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.sh.SetAllowSplitView(false)

	if err := f.c.SnapWindow(a, PositionLeft, true); err != ErrSplitViewDisabled {
		t.Errorf("SnapWindow = %v, want ErrSplitViewDisabled", err)
	}
	if got := f.c.State(); got != StateNoSnap {
		t.Errorf("state = %v, want no-snap", got)
	}
}

func TestSnapWindowTooLargeMinimum(t *testing.T) {
	f := newFixture()
	a := f.window("a", 600)

	if err := f.c.SnapWindow(a, PositionLeft, true); err != ErrNotSnappable {
		t.Errorf("SnapWindow = %v, want ErrNotSnappable", err)
	}
}

func TestSpokenFeedbackEndsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.mustSnap(t, a, PositionLeft)

	f.c.OnSpokenFeedbackChanged(true)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
}

func TestDestroyStartsOverviewForLoneWindow(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	f.mustSnap(t, a, PositionLeft)

	f.c.Destroy()

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if !f.ov.IsActive() {
		t.Error("overview not brought up before teardown")
	}
}

func TestStateNotifiedBeforeDividerPosition(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	rec := &orderObserver{}
	f.c.AddObserver(rec)

	f.mustSnap(t, a, PositionLeft)

	if len(rec.order) < 2 {
		t.Fatalf("order = %v, want state then divider", rec.order)
	}
	if rec.order[0] != "state" {
		t.Errorf("first notification = %s, want state", rec.order[0])
	}
}

type orderObserver struct {
	order []string
}

func (o *orderObserver) OnSplitViewStateChanged(State, State) {
	o.order = append(o.order, "state")
}

func (o *orderObserver) OnSplitViewDividerPositionChanged() {
	o.order = append(o.order, "divider")
}

func TestSnappedWindowActivatedOnLanding(t *testing.T) {
	f := newFixture()
	f.window("other", 0)
	b := f.sh.NewWindow(sim.WindowConfig{Title: "b", AsyncState: true})

	f.mustSnap(t, b, PositionLeft)
	if active := f.sh.ActiveWindow(); active != nil && active.ID() == b.ID() {
		t.Fatal("window activated before its snap committed")
	}

	f.sh.Flush()

	if active := f.sh.ActiveWindow(); active == nil || active.ID() != b.ID() {
		t.Error("window not activated once its snap landed")
	}
}

func TestTabDragBuildsSplitWithSource(t *testing.T) {
	f := newFixture()
	source := f.window("source", 0)
	dragged := f.window("dragged", 0)

	f.c.OnTabDragEnded(dragged, source, geometry.Point{X: 900, Y: 300})

	if got := f.c.State(); got != StateBothSnapped {
		t.Fatalf("state = %v, want both-snapped", got)
	}
	if w := f.c.SnappedWindow(PositionRight); w.ID() != dragged.ID() {
		t.Error("dragged window missing from the drop side")
	}
	if w := f.c.SnappedWindow(PositionLeft); w.ID() != source.ID() {
		t.Error("source window not snapped opposite")
	}
}

func TestTabDragIntoExistingSplitLeavesSourceAlone(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	source := f.window("source", 0)
	dragged := f.window("dragged", 0)
	f.mustSnap(t, a, PositionLeft)

	f.c.OnTabDragEnded(dragged, source, geometry.Point{X: 900, Y: 300})

	if w := f.c.SnappedWindow(PositionRight); w.ID() != dragged.ID() {
		t.Error("dragged window missing from the drop side")
	}
	if f.c.IsWindowInSplit(source) {
		t.Error("source joined a split that was already active")
	}
}

func TestClamshellEdgeDragMovesDivider(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)
	f.sh.SetTabletMode(false)
	f.c.OnTabletModeChanged()

	f.c.OnResizeLoopStarted(a)
	f.sh.SetBounds(a, geometry.Rect{Width: 600, Height: 600})

	if got := f.c.DividerPosition(); got != 600 {
		t.Errorf("divider position = %d, want 600", got)
	}
	if got, want := b.BoundsInScreen(), (geometry.Rect{X: 600, Width: 400, Height: 600}); got != want {
		t.Errorf("b bounds = %+v, want %+v", got, want)
	}

	f.c.OnResizeLoopEnded(a)
	if got := f.c.State(); got != StateBothSnapped {
		t.Errorf("state = %v, want split to survive a middle-third release", got)
	}
}

func TestClamshellEdgeDragPastThirdFoldsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)
	f.sh.SetTabletMode(false)
	f.c.OnTabletModeChanged()

	f.c.OnResizeLoopStarted(a)
	f.sh.SetBounds(a, geometry.Rect{Width: 200, Height: 600})
	f.c.OnResizeLoopEnded(a)

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if got := a.State(); got != shell.StateMaximized {
		t.Errorf("dragged window state = %v, want maximized", got)
	}
}

func TestDisplayShrinkEndsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 400)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	f.sh.SetWorkArea(geometry.Rect{Width: 700, Height: 600})
	f.c.OnDisplayMetricsChanged()

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap once a window no longer fits", got)
	}
	if layers := f.sh.LiveLayers(); len(layers) != 0 {
		t.Errorf("live layers = %d, want the divider bar gone", len(layers))
	}
}

func TestNonPositionableActivationKeepsSplit(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	u := f.sh.NewWindow(sim.WindowConfig{
		Title:           "u",
		NotSnappable:    true,
		NotPositionable: true,
	})
	f.mustSnap(t, a, PositionLeft)

	f.sh.Activate(u)

	if got := f.c.State(); got != StateLeftSnapped {
		t.Fatalf("state = %v, want the split to survive a system surface", got)
	}
	if len(f.sh.Notices) != 0 {
		t.Errorf("notices = %v, want none", f.sh.Notices)
	}
}

func TestEndSplitDuringSettleReleasesDragDetails(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.Resize(geometry.Point{X: 600, Y: 300})
	f.c.EndResize(geometry.Point{X: 600, Y: 300})
	if !f.c.IsAnimating() {
		t.Fatal("release off a fixed ratio should settle through an animation")
	}

	f.c.EndSplit(EndReasonNormal)

	if got := f.sh.OpenDragDetails(); got != 0 {
		t.Errorf("open drag details = %d, want 0", got)
	}
}

func TestDisplayChangeDuringSettleReleasesDragDetails(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.Resize(geometry.Point{X: 600, Y: 300})
	f.c.EndResize(geometry.Point{X: 600, Y: 300})

	f.c.OnDisplayMetricsChanged()

	if got := f.sh.OpenDragDetails(); got != 0 {
		t.Errorf("open drag details = %d, want 0", got)
	}
	if f.c.IsAnimating() {
		t.Error("settle animation should be shoved to its target")
	}
	if got := f.c.State(); got != StateBothSnapped {
		t.Errorf("state = %v, want both-snapped", got)
	}
}

func TestOverviewEndOnBothSnappedSkipsExitAnimation(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.ov.Start(0)
	f.mustSnap(t, b, PositionRight)

	f.ov.End(0)

	if got := f.ov.ExitAnimationsSuppressed; got != 1 {
		t.Errorf("suppressed exits = %d, want 1", got)
	}
	if got := f.c.State(); got != StateBothSnapped {
		t.Errorf("state = %v, want both-snapped", got)
	}
}

func TestOverviewEndingFillSuppressesExitAnimation(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.ov.Start(0)
	if !f.ov.Contains(b) {
		t.Fatal("spare window should populate the grid")
	}

	f.ov.End(0)

	if got := f.c.State(); got != StateBothSnapped {
		t.Fatalf("state = %v, want the grid window snapped opposite", got)
	}
	if got := f.ov.ExitAnimationsSuppressed; got != 1 {
		t.Errorf("suppressed exits = %d, want 1", got)
	}
}

func TestDragToEdgeWithoutOverviewRestoresDismissed(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)
	b := f.window("b", 0)
	f.mustSnap(t, a, PositionLeft)
	f.mustSnap(t, b, PositionRight)

	if err := f.c.StartResize(geometry.Point{X: 496, Y: 300}); err != nil {
		t.Fatalf("StartResize: %v", err)
	}
	f.c.Resize(geometry.Point{X: 0, Y: 300})
	f.c.EndResize(geometry.Point{X: 0, Y: 300})
	f.settle()

	if got := f.c.State(); got != StateNoSnap {
		t.Fatalf("state = %v, want no-snap", got)
	}
	if got := a.State(); got != shell.StateDefault {
		t.Errorf("dismissed window state = %v, want default", got)
	}
	if got := b.State(); got != shell.StateSecondarySnapped {
		t.Errorf("survivor state = %v, want untouched", got)
	}
}

func TestPresetDividerPositionClamped(t *testing.T) {
	f := newFixture()
	a := f.window("a", 0)

	f.c.InitDividerPositionForTransition(5000)
	f.mustSnap(t, a, PositionLeft)

	end := f.c.dividerEndPosition()
	if got := f.c.DividerPosition(); got < 0 || got > end {
		t.Errorf("divider position = %d, want within [0, %d]", got, end)
	}
}
