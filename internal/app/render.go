package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/tilekit/splitview/internal/shell"
	"github.com/tilekit/splitview/internal/splitview"
)

// overviewStripHeight is the number of rows the overview grid occupies at
// the bottom of the canvas while it is active.
const overviewStripHeight = 5

// View renders the simulated display onto a lipgloss canvas: window panes,
// the controller's layers (divider bar and resize scrim), the overview
// strip and a status bar.
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(m.buildCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

func (m *Model) buildCanvas() *lipgloss.Canvas {
	if m.width <= 0 || m.height <= 0 {
		return lipgloss.NewCanvas(0, 0)
	}
	canvas := lipgloss.NewCanvas(m.width, m.height)

	var layers []*lipgloss.Layer
	layers = append(layers, m.windowLayers()...)
	layers = append(layers, m.controllerLayers()...)
	if m.ov.IsActive() {
		layers = append(layers, m.overviewLayer())
	}
	if m.cfg.Appearance.ShowStatusBar {
		layers = append(layers, m.statusLayer())
	}
	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas
}

// windowLayers draws every visible window as a bordered pane, bottom of the
// MRU order first so the most recent window stacks on top.
func (m *Model) windowLayers() []*lipgloss.Layer {
	mru := m.sh.MRUWindows()
	active := m.sh.ActiveWindow()

	var layers []*lipgloss.Layer
	for i := len(mru) - 1; i >= 0; i-- {
		w := mru[i]
		if !w.IsVisible() || w.State() == shell.StateMinimized {
			continue
		}
		// The transform moves the pane visually without touching its
		// stored bounds, same as a window layer transform would.
		r := w.Transform().ApplyToRect(w.BoundsInScreen())
		x := m.workAreaToCellX(r.X)
		y := m.workAreaToCellY(r.Y)
		cw := m.workAreaToCellX(r.X+r.Width) - x
		ch := m.workAreaToCellY(r.Y+r.Height) - y
		if cw < 2 || ch < 2 {
			continue
		}

		borderColor := lipgloss.Color("240")
		if active != nil && active.ID() == w.ID() {
			borderColor = lipgloss.Color(m.cfg.Appearance.AccentColor)
		}
		title := w.Title()
		if m.ctrl.IsWindowInSplit(w) {
			title += " ◆"
		}
		pane := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Width(cw - 2).
			Height(ch - 2).
			Render(title + "\n" + w.State().String())

		z := len(mru) - i
		layers = append(layers, lipgloss.NewLayer(pane).X(x).Y(y).Z(z).ID(w.ID()))
	}
	return layers
}

// controllerLayers draws the shell layers the controller owns. The divider
// bar is fully opaque; anything translucent is the resize scrim.
func (m *Model) controllerLayers() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	for i, l := range m.sh.LiveLayers() {
		if !l.Visible {
			continue
		}
		x := m.workAreaToCellX(l.Bounds.X)
		y := m.workAreaToCellY(l.Bounds.Y)
		cw := m.workAreaToCellX(l.Bounds.X+l.Bounds.Width) - x
		ch := m.workAreaToCellY(l.Bounds.Y+l.Bounds.Height) - y
		if cw < 1 {
			cw = 1
		}
		if ch < 1 {
			ch = 1
		}

		var content string
		if l.Opacity >= 0.99 {
			glyph := m.cfg.Appearance.DividerGlyph
			bar := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.Appearance.AccentColor))
			row := strings.Repeat(glyph, cw)
			content = bar.Render(strings.TrimSuffix(strings.Repeat(row+"\n", ch), "\n"))
		} else {
			shade := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
			row := strings.Repeat(scrimGlyph(l.Opacity), cw)
			content = shade.Render(strings.TrimSuffix(strings.Repeat(row+"\n", ch), "\n"))
		}
		layers = append(layers, lipgloss.NewLayer(content).X(x).Y(y).Z(100+i).ID(fmt.Sprintf("layer-%d", i)))
	}
	return layers
}

// scrimGlyph picks a shade block for the scrim's current opacity.
func scrimGlyph(opacity float64) string {
	switch {
	case opacity > 0.3:
		return "▓"
	case opacity > 0.15:
		return "▒"
	default:
		return "░"
	}
}

// overviewLayer draws the overview grid as a strip of window chips above
// the status bar.
func (m *Model) overviewLayer() *lipgloss.Layer {
	chip := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("244")).
		Padding(0, 1)

	var chips []string
	for _, w := range m.ov.Windows() {
		chips = append(chips, chip.Render(w.Title()))
	}
	row := "overview: (empty)"
	if len(chips) > 0 {
		row = lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	}
	strip := lipgloss.NewStyle().
		Width(m.width).
		Height(overviewStripHeight).
		Render(row)
	_, ch := m.canvasSize()
	return lipgloss.NewLayer(strip).X(0).Y(ch).Z(200).ID("overview")
}

// statusLayer draws the bottom status bar: controller state on the left,
// the last event and the key hints on the right.
func (m *Model) statusLayer() *lipgloss.Layer {
	mode := "clamshell"
	if m.sh.InTabletMode() {
		mode = "tablet"
	}
	left := fmt.Sprintf(" %s · %s", mode, m.ctrl.State())
	if m.ctrl.State() != splitview.StateNoSnap {
		left += fmt.Sprintf(" · divider %d (%.2f)", m.ctrl.DividerPosition(), m.ctrl.ClosestRatio())
	}
	if m.lastChange != "" {
		left += " · " + m.lastChange
	}

	right := m.status + " "
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = max(m.width-lipgloss.Width(left), 0)
	}

	bar := lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Foreground(lipgloss.Color("252")).
		Width(m.width).
		Render(left + strings.Repeat(" ", gap) + right)
	return lipgloss.NewLayer(bar).X(0).Y(m.height - 1).Z(300).ID("status")
}
