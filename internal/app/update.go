package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/tilekit/splitview/internal/config"
	"github.com/tilekit/splitview/internal/geometry"
	"github.com/tilekit/splitview/internal/shell"
	"github.com/tilekit/splitview/internal/splitview"
)

// Init starts the frame ticker.
func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

// tickCmd schedules the next frame at the configured refresh rate.
func (m *Model) tickCmd() tea.Cmd {
	fps := m.cfg.Demo.FPS
	if fps <= 0 {
		fps = config.NormalFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update routes terminal events into the controller.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickerMsg:
		now := time.Time(msg)
		m.ctrl.Tick(now)
		if m.cfg.Demo.NoAnimations {
			// The first tick starts any pending animation, the second
			// one lands it, so nothing is ever seen mid flight.
			m.ctrl.Tick(now.Add(time.Second))
		}
		m.sh.Flush()
		return m, m.tickCmd()

	case ConfigReloadedMsg:
		m.applyConfig(msg.Cfg)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft && m.nearDivider(mouse.X, mouse.Y) {
			if err := m.ctrl.StartResize(m.cellToWorkArea(mouse.X, mouse.Y)); err == nil {
				m.dragging = true
				m.lastChange = "dragging divider"
			}
		}
		return m, nil

	case tea.MouseMotionMsg:
		if m.dragging {
			mouse := msg.Mouse()
			m.ctrl.Resize(m.cellToWorkArea(mouse.X, mouse.Y))
		}
		return m, nil

	case tea.MouseReleaseMsg:
		if m.dragging {
			mouse := msg.Mouse()
			m.ctrl.EndResize(m.cellToWorkArea(mouse.X, mouse.Y))
			m.dragging = false
			m.lastChange = "divider released"
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "n":
		w := m.spawnWindow()
		m.lastChange = "created " + w.Title()

	case "h":
		m.snapActive(splitview.PositionLeft)
	case "l":
		m.snapActive(splitview.PositionRight)

	case "u":
		m.ctrl.EndSplit(splitview.EndReasonNormal)
		m.lastChange = "split ended"

	case "s":
		if err := m.ctrl.SwapWindows(); err != nil {
			m.lastChange = "swap rejected: " + err.Error()
		} else {
			m.lastChange = "swapped sides"
		}

	case "x":
		if w := m.sh.ActiveWindow(); w != nil {
			m.lastChange = "destroyed " + w.Title()
			m.sh.Destroy(w)
		}

	case "m":
		if w := m.sh.ActiveWindow(); w != nil {
			m.sh.Minimize(w)
			m.lastChange = "minimized " + w.Title()
		}

	case "t":
		m.sh.SetTabletMode(!m.sh.InTabletMode())
		m.ctrl.OnTabletModeChanged()
		if m.sh.InTabletMode() {
			m.lastChange = "tablet mode"
		} else {
			m.lastChange = "clamshell mode"
		}

	case "r":
		o := m.sh.Orientation()
		o.RightSideUp = !o.RightSideUp
		m.sh.SetOrientation(o)
		m.ctrl.OnDisplayMetricsChanged()
		m.lastChange = "display rotated"

	case "o":
		if m.ov.IsActive() {
			m.ov.End(shell.ReasonNormal)
			m.lastChange = "overview closed"
		} else {
			m.ov.Start(shell.ReasonNormal)
			m.lastChange = "overview open"
		}

	case "g":
		m.ctrl.OnOverviewButtonTrayLongPressed(geometry.Point{})
		m.lastChange = "tray long press"

	case "tab":
		m.activateNext()

	case "left", "right":
		m.nudgeDivider(msg.String() == "left")
	}
	return m, nil
}

func (m *Model) snapActive(p splitview.Position) {
	w := m.sh.ActiveWindow()
	if w == nil {
		m.lastChange = "no active window"
		return
	}
	if err := m.ctrl.SnapWindow(w, p, true); err != nil {
		m.lastChange = "snap rejected: " + err.Error()
		return
	}
	m.sh.Flush()
	m.lastChange = w.Title() + " snapped " + p.String()
}

// activateNext cycles activation to the least recently used window, which
// feeds the auto snap policy exactly like a real window switch.
func (m *Model) activateNext() {
	mru := m.sh.MRUWindows()
	if len(mru) < 2 {
		return
	}
	w := mru[len(mru)-1]
	m.sh.Activate(w)
	m.lastChange = "activated " + w.Title()
}

// nudgeDivider moves the divider one step with a synthetic drag, so the
// keyboard can exercise the same resize path as the mouse.
func (m *Model) nudgeDivider(towardStart bool) {
	if m.ctrl.State() == splitview.StateNoSnap || !m.sh.InTabletMode() {
		return
	}
	area := m.sh.WorkArea()
	start := geometry.Point{X: area.X + m.ctrl.DividerPosition(), Y: area.Y + area.Height/2}
	step := area.Width / 25
	if towardStart {
		step = -step
	}
	end := geometry.Point{X: start.X + step, Y: start.Y}
	if err := m.ctrl.StartResize(start); err != nil {
		return
	}
	m.ctrl.Resize(end)
	m.ctrl.EndResize(end)
	m.lastChange = "divider nudged"
}
