package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/windrose/internal/rose"
	"github.com/Iron-Ham/windrose/internal/tui/keymap"
)

// handleKeypress dispatches a key through the keymap of the current mode.
// Unbound keys are ignored.
func (m Model) handleKeypress(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	b, ok := m.keymap.GetBinding(k, m.mode)
	if !ok {
		return m, nil
	}

	switch b.Command {
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		if m.mode == keymap.ModeHelp {
			m.mode = keymap.ModeNormal
		} else {
			m.mode = keymap.ModeHelp
		}
		m.keymap.Active = m.mode
		return m, nil

	case keymap.CmdToggleLayer:
		return m, m.toggle(rose.Layer(b.Rune - '1'))

	case keymap.CmdShowAll:
		for _, l := range m.vis.Hidden() {
			m.vis.Toggle(l)
		}
		m.redraw()
		return m, m.setStatus("all layers shown")

	case keymap.CmdNextDirection:
		if dir, ok := m.canvas.Hovered(); ok {
			m.canvas.Hover(dir.Next())
		} else {
			m.canvas.Hover(rose.North)
		}

	case keymap.CmdPrevDirection:
		if dir, ok := m.canvas.Hovered(); ok {
			m.canvas.Hover(dir.Prev())
		} else {
			m.canvas.Hover(rose.North)
		}

	case keymap.CmdJumpDirection:
		if dir, err := rose.ParseDirection(string(b.Rune)); err == nil {
			m.canvas.Hover(dir)
		}

	case keymap.CmdClearHover:
		m.canvas.ClearHover()
	}

	return m, nil
}

// toggle flips one layer and redraws. The hover cursor stays put and its
// tooltip reflects the new visibility.
func (m *Model) toggle(l rose.Layer) tea.Cmd {
	if !l.Valid() {
		return nil
	}
	visible := m.vis.Toggle(l)
	m.redraw()
	m.logger.Debug("layer toggled", "layer", l.ID(), "visible", visible)

	state := "hidden"
	if visible {
		state = "shown"
	}
	return m.setStatus(m.palette.Layers.Name(l) + " " + state)
}

// handleMouse hovers the sector under the pointer and toggles layers when
// a legend button is clicked.
func (m Model) handleMouse(ev tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != keymap.ModeNormal {
		return m, nil
	}

	switch ev.Action {
	case tea.MouseActionMotion:
		col, row, inside := chartCell(m.canvas, ev.X, ev.Y)
		if !inside {
			m.canvas.ClearHover()
			return m, nil
		}
		if dir, ok := m.canvas.DirectionAt(col, row); ok {
			m.canvas.Hover(dir)
		} else {
			m.canvas.ClearHover()
		}

	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if l, ok := legendLayerAt(m.canvas.Width(), ev.X, ev.Y); ok {
			return m, m.toggle(l)
		}
	}

	return m, nil
}
