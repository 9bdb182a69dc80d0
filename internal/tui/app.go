package tui

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/windrose/internal/logging"
	"github.com/Iron-Ham/windrose/internal/observability"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/tui/msg"
)

// statusTimeout is how long a status message stays on screen.
const statusTimeout = 3 * time.Second

// App wraps the Bubbletea program
type App struct {
	program  *tea.Program
	model    Model
	registry *palette.Registry
	metrics  *observability.Metrics
	logger   *logging.Logger

	paletteDir string
}

// AppOption configures optional App behavior.
type AppOption func(*App)

// WithPaletteWatch hot-reloads palette files in dir into reg while the
// program runs.
func WithPaletteWatch(dir string, reg *palette.Registry) AppOption {
	return func(a *App) {
		a.paletteDir = dir
		a.registry = reg
	}
}

// WithMetrics counts palette reloads.
func WithMetrics(m *observability.Metrics) AppOption {
	return func(a *App) {
		a.metrics = m
	}
}

// New creates a new TUI application
func New(model Model, opts ...AppOption) *App {
	a := &App{
		model:  model,
		logger: model.logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the TUI application
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	if a.paletteDir != "" && a.registry != nil {
		w, err := palette.Watch(a.paletteDir, a.registry, a.onPaletteChange, a.logger)
		if err != nil {
			// The chart still works with the palettes already loaded.
			a.logger.Warn("palette hot-reload disabled", "dir", a.paletteDir, "error", err)
		} else {
			defer w.Close()
		}
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	_, err := a.program.Run()

	// Clean up signal handler
	signal.Stop(sigChan)
	close(sigChan)

	return err
}

func (a *App) onPaletteChange(c palette.Change) {
	if a.metrics != nil {
		a.metrics.ObservePaletteReload(c.Removed, c.Err)
	}
	if a.program != nil {
		a.program.Send(msg.FromChange(c, a.registry))
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.resize(message.Width, message.Height)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(message)

	case tea.MouseMsg:
		return m.handleMouse(message)

	case msg.PaletteReloadedMsg:
		return m.handlePaletteReload(message)

	case msg.StatusClearMsg:
		if message.Seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case msg.ErrMsg:
		return m, m.setError(message.Err.Error())
	}

	return m, nil
}

// setStatus shows text on the status line until the next status or the
// timeout, whichever comes first.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = false
	return msg.ClearStatusAfter(statusTimeout, m.statusSeq)
}

func (m *Model) setError(text string) tea.Cmd {
	cmd := m.setStatus(text)
	m.statusErr = true
	return cmd
}

func (m Model) handlePaletteReload(message msg.PaletteReloadedMsg) (tea.Model, tea.Cmd) {
	if message.Name != m.palette.Name {
		return m, nil
	}

	switch {
	case message.Err != nil:
		m.logger.Warn("palette reload failed", "palette", message.Name, "error", message.Err)
		return m, m.setError("palette " + message.Name + ": " + message.Err.Error())

	case message.Removed:
		// Fall back to the default presentation; the data is untouched.
		p, err := palette.NewRegistry().Get(palette.Default)
		if err != nil {
			return m, m.setError(err.Error())
		}
		m.palette = p
		m.redraw()
		return m, m.setStatus("palette " + message.Name + " removed, using " + palette.Default)

	default:
		m.palette = message.Palette
		m.redraw()
		m.logger.Info("palette reloaded", "palette", message.Name)
		return m, m.setStatus("palette " + message.Name + " reloaded")
	}
}
