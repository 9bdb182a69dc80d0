package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/windrose/internal/palette"
)

// ErrMsg wraps an error to be displayed in the UI.
type ErrMsg struct {
	Err error
}

// PaletteReloadedMsg signals that a palette file changed on disk. Palette
// holds the reloaded palette unless the file was removed or failed to load.
type PaletteReloadedMsg struct {
	Name    string
	Palette *palette.Palette
	Removed bool
	Err     error
}

// StatusClearMsg clears the status line if it still shows message Seq.
type StatusClearMsg struct {
	Seq int
}

// FromChange converts a watcher change into a PaletteReloadedMsg, resolving
// the reloaded palette from reg.
func FromChange(c palette.Change, reg *palette.Registry) PaletteReloadedMsg {
	m := PaletteReloadedMsg{Name: c.Name, Removed: c.Removed, Err: c.Err}
	if c.Removed || c.Err != nil {
		return m
	}
	p, err := reg.Get(c.Name)
	if err != nil {
		m.Err = err
		return m
	}
	m.Palette = p
	return m
}

// ClearStatusAfter returns a command that sends StatusClearMsg{seq} after d.
func ClearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusClearMsg{Seq: seq}
	})
}
