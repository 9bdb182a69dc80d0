package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default windrose key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeNormal: defaultNormalBindings(),
			ModeHelp:   defaultHelpBindings(),
		},
		Active: ModeNormal,
	}
}

func defaultNormalBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeNormal,
		Bindings: []KeyBinding{
			// Layers
			{KeyType: tea.KeyRunes, Rune: '1', Command: CmdToggleLayer, Description: "toggle layer", Category: "Layers"},
			{KeyType: tea.KeyRunes, Rune: '2', Command: CmdToggleLayer, Description: "toggle layer", Category: "Layers"},
			{KeyType: tea.KeyRunes, Rune: '3', Command: CmdToggleLayer, Description: "toggle layer", Category: "Layers"},
			{KeyType: tea.KeyRunes, Rune: 'a', Command: CmdShowAll, Description: "show all", Category: "Layers"},

			// Hover
			{KeyType: tea.KeyRight, Command: CmdNextDirection, Description: "clockwise", Category: "Hover"},
			{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdNextDirection, Description: "clockwise", Category: "Hover"},
			{KeyType: tea.KeyLeft, Command: CmdPrevDirection, Description: "counter-clockwise", Category: "Hover"},
			{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdPrevDirection, Description: "counter-clockwise", Category: "Hover"},
			{KeyType: tea.KeyRunes, Rune: 'n', Command: CmdJumpDirection, Description: "jump", Category: "Hover"},
			{KeyType: tea.KeyRunes, Rune: 'e', Command: CmdJumpDirection, Description: "jump", Category: "Hover"},
			{KeyType: tea.KeyRunes, Rune: 's', Command: CmdJumpDirection, Description: "jump", Category: "Hover"},
			{KeyType: tea.KeyRunes, Rune: 'w', Command: CmdJumpDirection, Description: "jump", Category: "Hover"},
			{KeyType: tea.KeyEsc, Command: CmdClearHover, Description: "clear", Category: "Hover"},

			// Application
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "help", Category: "Application"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit", Category: "Application"},
		},
	}
}

func defaultHelpBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeHelp,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "close help", Category: "Application"},
			{KeyType: tea.KeyEsc, Command: CmdToggleHelp, Description: "close help", Category: "Application"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "quit", Category: "Application"},
		},
	}
}
