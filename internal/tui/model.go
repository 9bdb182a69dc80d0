package tui

import (
	"github.com/charmbracelet/bubbles/help"

	"github.com/Iron-Ham/windrose/internal/chart"
	"github.com/Iron-Ham/windrose/internal/logging"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
	"github.com/Iron-Ham/windrose/internal/tui/keymap"
)

// Options configures a Model.
type Options struct {
	Dataset *rose.Dataset
	// Palette defaults to the built-in default palette.
	Palette *palette.Palette
	Hidden  []rose.Layer
	// Radius is the preferred chart radius; the chart shrinks to fit the
	// terminal.
	Radius int
	Logger *logging.Logger
}

// Model holds the TUI application state
type Model struct {
	// Core components
	dataset *rose.Dataset
	vis     *rose.Visibility
	palette *palette.Palette
	canvas  *chart.Canvas
	keymap  *keymap.Keymap
	help    help.Model
	logger  *logging.Logger

	// UI state
	mode      keymap.Mode
	radius    int
	width     int
	height    int
	ready     bool
	quitting  bool
	status    string
	statusErr bool
	statusSeq int
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	p := opts.Palette
	if p == nil {
		p, _ = palette.NewRegistry().Get(palette.Default)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	m := Model{
		dataset: opts.Dataset,
		vis:     rose.NewVisibility(opts.Hidden...),
		palette: p,
		canvas:  chart.NewCanvas(opts.Radius),
		keymap:  keymap.DefaultKeymap(),
		help:    help.New(),
		logger:  logger.WithComponent("tui"),
		mode:    keymap.ModeNormal,
		radius:  opts.Radius,
	}
	m.redraw()
	return m
}

// redraw replays the region plan onto the canvas. The hovered direction
// survives; its tooltip is decoded again on the next render.
func (m *Model) redraw() {
	m.canvas.Reset()
	n := rose.Draw(m.canvas, m.dataset, m.vis, m.palette.Layers)
	m.logger.Debug("chart drawn", "regions", n, "visible", len(m.vis.Visible()))
}

// resize fits the chart to the terminal, keeping the hover cursor.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	r := FitRadius(width, height, m.radius)
	if r == m.canvas.Radius() {
		return
	}
	hovered, hovering := m.canvas.Hovered()
	m.canvas = chart.NewCanvas(r)
	if hovering {
		m.canvas.Hover(hovered)
	}
	m.redraw()
}

// Visibility returns the layer visibility store.
func (m Model) Visibility() *rose.Visibility {
	return m.vis
}

// Hovered returns the hovered direction, if any.
func (m Model) Hovered() (rose.Direction, bool) {
	return m.canvas.Hovered()
}

// Tooltip returns the decoded tooltip of the hovered direction, or nil.
func (m Model) Tooltip() *rose.Tooltip {
	return m.canvas.Tooltip()
}

// Palette returns the active palette.
func (m Model) Palette() *palette.Palette {
	return m.palette
}

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode {
	return m.mode
}
