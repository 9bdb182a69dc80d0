// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per mode and looked up by command, and the keymap
// doubles as a bubbles help.KeyMap for the help bar.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
type Mode string

const (
	ModeNormal Mode = "normal" // Chart with legend and tooltip
	ModeHelp   Mode = "help"   // Full help overlay
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	// Layers
	CmdToggleLayer Command = "toggle_layer" // 1-3 keys
	CmdShowAll     Command = "show_all"

	// Hover cursor
	CmdNextDirection Command = "next_direction"
	CmdPrevDirection Command = "prev_direction"
	CmdJumpDirection Command = "jump_direction" // n, e, s, w
	CmdClearHover    Command = "clear_hover"

	CmdToggleHelp Command = "toggle_help"
	CmdQuit       Command = "quit"
)

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key for this binding. For rune keys, use tea.KeyRunes
	// and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys.
	Rune rune

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns the key as bubbletea spells it, e.g. "left" or "q".
func (kb KeyBinding) String() string {
	if kb.KeyType != tea.KeyRunes {
		return kb.KeyType.String()
	}
	return string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up the binding for a key in this mode.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (KeyBinding, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding, true
		}
	}
	return KeyBinding{}, false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name        string
	Description string
	Modes       map[Mode]*ModeBindings

	// Active selects the mode whose bindings the help bar shows.
	Active Mode
}

// GetBinding looks up the binding for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (KeyBinding, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return KeyBinding{}, false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger a specific command.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// GetCategories returns all unique categories in a mode's bindings, in
// declaration order.
func (km *Keymap) GetCategories(mode Mode) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// helpBindings collapses the bindings of one category into one help entry
// per command, e.g. "1/2/3 toggle layer".
func (km *Keymap) helpBindings(mode Mode, category string) []key.Binding {
	var order []Command
	keys := make(map[Command][]string)
	desc := make(map[Command]string)
	for _, b := range km.GetModeBindings(mode) {
		if category != "" && b.Category != category {
			continue
		}
		if _, ok := keys[b.Command]; !ok {
			order = append(order, b.Command)
			desc[b.Command] = b.Description
		}
		keys[b.Command] = append(keys[b.Command], b.String())
	}

	out := make([]key.Binding, 0, len(order))
	for _, cmd := range order {
		out = append(out, key.NewBinding(
			key.WithKeys(keys[cmd]...),
			key.WithHelp(strings.Join(keys[cmd], "/"), desc[cmd]),
		))
	}
	return out
}

// ShortHelp implements help.KeyMap.
func (km *Keymap) ShortHelp() []key.Binding {
	return km.helpBindings(km.Active, "")
}

// FullHelp implements help.KeyMap with one column per category.
func (km *Keymap) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for _, cat := range km.GetCategories(km.Active) {
		cols = append(cols, km.helpBindings(km.Active, cat))
	}
	return cols
}
