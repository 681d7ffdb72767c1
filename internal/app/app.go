// Package app implements the interactive split view demo: a Bubble Tea
// program that drives a controller against an in-memory shell, so every
// snap, drag and mode switch can be exercised from the keyboard and mouse.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tilekit/splitview/internal/config"
	"github.com/tilekit/splitview/internal/geometry"
	"github.com/tilekit/splitview/internal/shell"
	"github.com/tilekit/splitview/internal/sim"
	"github.com/tilekit/splitview/internal/splitview"
)

// TickerMsg is the periodic frame tick driving controller animations.
type TickerMsg time.Time

// ConfigReloadedMsg carries a freshly parsed configuration picked up from
// the config file watcher.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// Model is the demo's Bubble Tea model. It owns the simulated shell, the
// overview strip and the split view controller.
type Model struct {
	cfg *config.Config

	sh   *sim.Shell
	ov   *sim.Overview
	ctrl *splitview.Controller

	// Terminal size, set from the first WindowSizeMsg.
	width, height int

	dragging   bool
	status     string
	windowSeq  int
	lastChange string
}

// New assembles the demo around the given configuration.
func New(cfg *config.Config) *Model {
	sh := sim.NewShell(geometry.Rect{
		Width:  cfg.Demo.WorkAreaWidth,
		Height: cfg.Demo.WorkAreaHeight,
	})
	sh.SetTabletMode(cfg.Demo.TabletMode)
	ov := sim.NewOverview(sh)
	ctrl := splitview.New(splitview.Config{
		Shell:    sh,
		Overview: ov,
		Display:  "demo",
	})
	ov.Starting = ctrl.OnOverviewModeStarting
	ov.Ending = ctrl.OnOverviewModeEnding

	m := &Model{cfg: cfg, sh: sh, ov: ov, ctrl: ctrl}
	m.spawnWindow()
	m.spawnWindow()
	m.status = "n new · h/l snap · s swap · t tablet · o overview · q quit"
	return m
}

// Controller exposes the demo's controller, for the host process.
func (m *Model) Controller() *splitview.Controller { return m.ctrl }

// Dragging reports whether a divider drag is in progress, so the host can
// decide which mouse motion events are worth delivering.
func (m *Model) Dragging() bool { return m.dragging }

func (m *Model) spawnWindow() shell.Window {
	m.windowSeq++
	w := m.sh.NewWindow(sim.WindowConfig{
		Title: fmt.Sprintf("window-%d", m.windowSeq),
		Bounds: geometry.Rect{
			X:      40 * (m.windowSeq % 8),
			Y:      30 * (m.windowSeq % 6),
			Width:  m.cfg.Demo.WorkAreaWidth / 2,
			Height: m.cfg.Demo.WorkAreaHeight / 2,
		},
		MinSize: geometry.Size{Width: m.cfg.Demo.WorkAreaWidth / 10},
	})
	m.sh.Activate(w)
	return w
}

// applyConfig adopts a reloaded configuration. Display dimensions feed the
// simulated shell; appearance changes take effect on the next frame.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	splitview.SetLogLevel(logLevel(cfg.Logging.Level))
	m.sh.SetWorkArea(geometry.Rect{
		Width:  cfg.Demo.WorkAreaWidth,
		Height: cfg.Demo.WorkAreaHeight,
	})
	m.ctrl.OnDisplayMetricsChanged()
	m.lastChange = "config reloaded"
}

// logLevel maps a config level string onto the logger's levels.
func logLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	}
	return log.InfoLevel
}

// cellToWorkArea maps a terminal cell to a point on the simulated display.
func (m *Model) cellToWorkArea(x, y int) geometry.Point {
	cw, ch := m.canvasSize()
	if cw <= 0 || ch <= 0 {
		return geometry.Point{}
	}
	area := m.sh.WorkArea()
	return geometry.BoundedPoint(geometry.Point{
		X: area.X + x*area.Width/cw,
		Y: area.Y + y*area.Height/ch,
	}, area)
}

// workAreaToCellX maps a display x coordinate to a terminal column.
func (m *Model) workAreaToCellX(x int) int {
	cw, _ := m.canvasSize()
	area := m.sh.WorkArea()
	if area.Width == 0 {
		return 0
	}
	return (x - area.X) * cw / area.Width
}

func (m *Model) workAreaToCellY(y int) int {
	_, ch := m.canvasSize()
	area := m.sh.WorkArea()
	if area.Height == 0 {
		return 0
	}
	return (y - area.Y) * ch / area.Height
}

// canvasSize is the cell region the display maps onto: everything above
// the status bar and the overview strip.
func (m *Model) canvasSize() (w, h int) {
	w = m.width
	h = m.height
	if m.cfg.Appearance.ShowStatusBar {
		h--
	}
	if m.ov.IsActive() {
		h -= overviewStripHeight
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// nearDivider reports whether the cell column sits on or next to the
// rendered divider bar, the grab region for a mouse drag.
func (m *Model) nearDivider(x, y int) bool {
	if m.ctrl.State() == splitview.StateNoSnap || !m.sh.InTabletMode() {
		return false
	}
	if m.sh.Orientation().Horizontal {
		dc := m.workAreaToCellX(m.sh.WorkArea().X + m.ctrl.DividerPosition())
		return x >= dc-1 && x <= dc+1
	}
	dr := m.workAreaToCellY(m.sh.WorkArea().Y + m.ctrl.DividerPosition())
	return y >= dr-1 && y <= dr+1
}
