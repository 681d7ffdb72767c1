package app

import (
	"testing"
	"time"

	"github.com/tilekit/splitview/internal/config"
	"github.com/tilekit/splitview/internal/splitview"
)

func newTestModel() *Model {
	m := New(config.DefaultConfig())
	m.width = 80
	m.height = 25
	return m
}

func TestNewSpawnsWindows(t *testing.T) {
	m := newTestModel()
	if got := len(m.sh.MRUWindows()); got != 2 {
		t.Fatalf("expected 2 windows after New, got %d", got)
	}
	if m.sh.ActiveWindow() == nil {
		t.Error("expected an active window")
	}
}

func TestCellToWorkAreaMapsCorners(t *testing.T) {
	m := newTestModel()

	if got := m.cellToWorkArea(0, 0); got.X != 0 || got.Y != 0 {
		t.Errorf("top left cell mapped to %+v", got)
	}
	area := m.sh.WorkArea()
	got := m.cellToWorkArea(m.width-1, m.height-2)
	if got.X >= area.Width || got.Y >= area.Height {
		t.Errorf("bottom right cell %+v escaped the work area %+v", got, area)
	}
	if got.X < area.Width*9/10 || got.Y < area.Height*9/10 {
		t.Errorf("bottom right cell mapped too far in: %+v", got)
	}
}

func TestNearDividerTracksSnappedState(t *testing.T) {
	m := newTestModel()

	if m.nearDivider(39, 5) {
		t.Error("no divider exists before a snap")
	}

	w := m.sh.ActiveWindow()
	if err := m.ctrl.SnapWindow(w, splitview.PositionLeft, true); err != nil {
		t.Fatalf("SnapWindow: %v", err)
	}
	m.sh.Flush()

	dc := m.workAreaToCellX(m.sh.WorkArea().X + m.ctrl.DividerPosition())
	if !m.nearDivider(dc, 5) {
		t.Errorf("cell %d should grab the divider", dc)
	}
	if m.nearDivider(dc+10, 5) {
		t.Errorf("cell %d should not grab the divider", dc+10)
	}
}

func TestTickerDrivesAnimations(t *testing.T) {
	m := newTestModel()

	w := m.sh.ActiveWindow()
	if err := m.ctrl.SnapWindow(w, splitview.PositionLeft, true); err != nil {
		t.Fatalf("SnapWindow: %v", err)
	}
	m.sh.Flush()

	now := time.Now()
	for i := 0; i < 40; i++ {
		now = now.Add(16 * time.Millisecond)
		m.Update(TickerMsg(now))
	}
	if m.ctrl.IsAnimating() {
		t.Error("animations should have settled")
	}
	if m.ctrl.State() == splitview.StateNoSnap {
		t.Error("split should survive the tick loop")
	}
}

func TestApplyConfigResizesDisplay(t *testing.T) {
	m := newTestModel()

	cfg := config.DefaultConfig()
	cfg.Demo.WorkAreaWidth = 1200
	cfg.Demo.WorkAreaHeight = 800
	m.applyConfig(cfg)

	area := m.sh.WorkArea()
	if area.Width != 1200 || area.Height != 800 {
		t.Errorf("work area not updated: %+v", area)
	}
}
