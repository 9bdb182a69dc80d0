// Package config is the interactive editor opened by "windrose config".
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/windrose/internal/config"
	"github.com/Iron-Ham/windrose/internal/tui/styles"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        string   // "string", "bool", "int", "duration", "select"
	Options     []string // For select type
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	categories     []Category
	categoryIndex  int
	itemIndex      int
	width          int
	height         int
	editing        bool
	textInput      textinput.Model
	selectIndex    int // For select-type options
	errorMsg       string
	infoMsg        string
	quitting       bool
	configModified bool

	// save persists viper's settings; replaced in tests.
	save func() error
}

// New creates a new config model. paletteNames are offered for
// chart.palette.
func New(paletteNames []string) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	categories := []Category{
		{
			Name: "Data",
			Items: []ConfigItem{
				{Key: "data.seed", Label: "Seed", Description: "Random seed for the synthetic dataset (0 = new seed each run)", Type: "int"},
				{Key: "data.min_magnitude", Label: "Min Magnitude", Description: "Inclusive lower bound of each raw draw", Type: "int"},
				{Key: "data.max_magnitude", Label: "Max Magnitude", Description: "Exclusive upper bound of each raw draw", Type: "int"},
			},
		},
		{
			Name: "Chart",
			Items: []ConfigItem{
				{Key: "chart.palette", Label: "Palette", Description: "Colors and blend modes of the three layers", Type: "select", Options: paletteNames},
				{Key: "chart.radius", Label: "Radius", Description: "Terminal chart radius in rows (shrinks to fit the window)", Type: "int"},
			},
		},
		{
			Name: "Render",
			Items: []ConfigItem{
				{Key: "render.format", Label: "Format", Description: "Default output format of 'windrose render'", Type: "select", Options: config.ValidFormats()},
				{Key: "render.width", Label: "Width", Description: "Image width in pixels", Type: "int"},
				{Key: "render.height", Label: "Height", Description: "Image height in pixels", Type: "int"},
			},
		},
		{
			Name: "Serve",
			Items: []ConfigItem{
				{Key: "serve.addr", Label: "Listen Address", Description: "HTTP listen address of 'windrose serve'", Type: "string"},
				{Key: "serve.shutdown_timeout", Label: "Shutdown Timeout", Description: "Time allowed for in-flight requests on shutdown (e.g. 10s)", Type: "duration"},
			},
		},
		{
			Name: "Logging",
			Items: []ConfigItem{
				{Key: "logging.enabled", Label: "Enabled", Description: "Write a JSON debug log", Type: "bool"},
				{Key: "logging.level", Label: "Level", Description: "Minimum log level", Type: "select", Options: config.ValidLogLevels()},
				{Key: "logging.dir", Label: "Directory", Description: "Log directory (empty = config directory)", Type: "string"},
			},
		},
		{
			Name: "Palettes",
			Items: []ConfigItem{
				{Key: "palettes.dir", Label: "Directory", Description: "Directory of custom palette files (empty = config directory)", Type: "string"},
				{Key: "palettes.watch", Label: "Hot Reload", Description: "Reload palette files while the chart is open", Type: "bool"},
			},
		},
	}

	return Model{
		categories: categories,
		textInput:  ti,
		save:       writeConfig,
	}
}

func writeConfig() error {
	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(config.ConfigFile()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Clear messages on any key
		m.errorMsg = ""
		m.infoMsg = ""

		if m.editing {
			return m.handleEditingKeypress(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			m.itemIndex--
			if m.itemIndex < 0 {
				m.categoryIndex--
				if m.categoryIndex < 0 {
					m.categoryIndex = len(m.categories) - 1
				}
				m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
			}

		case "down", "j":
			m.itemIndex++
			if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
				m.categoryIndex++
				if m.categoryIndex >= len(m.categories) {
					m.categoryIndex = 0
				}
				m.itemIndex = 0
			}

		case "tab":
			m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
			m.itemIndex = 0

		case "shift+tab":
			m.categoryIndex = (m.categoryIndex + len(m.categories) - 1) % len(m.categories)
			m.itemIndex = 0

		case "enter", " ":
			item := m.currentItem()
			switch item.Type {
			case "bool":
				if err := m.validateAndSet(item, strconv.FormatBool(!viper.GetBool(item.Key))); err != nil {
					m.errorMsg = err.Error()
					return m, nil
				}
				m.saveConfig()
			case "select":
				m.editing = true
				m.selectIndex = m.getCurrentSelectIndex()
			default:
				m.editing = true
				m.textInput.SetValue(m.getDisplayValue(item))
				m.textInput.Focus()
			}

		case "r":
			m.resetCurrentToDefault()
		}
	}

	return m, nil
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "enter":
		value := m.textInput.Value()
		if item.Type == "select" {
			if len(item.Options) == 0 {
				m.editing = false
				return m, nil
			}
			value = item.Options[m.selectIndex]
		}
		if err := m.validateAndSet(item, value); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.saveConfig()
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "up", "k":
		if item.Type == "select" && len(item.Options) > 0 {
			m.selectIndex = (m.selectIndex + len(item.Options) - 1) % len(item.Options)
			return m, nil
		}

	case "down", "j":
		if item.Type == "select" && len(item.Options) > 0 {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return m, nil
		}
	}

	// Handle text input
	if item.Type != "select" {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(styles.Header.Width(m.width - 4).Render("windrose configuration"))
	b.WriteString("\n\n")

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = config.ConfigFile() + " (not created)"
	}
	b.WriteString(styles.Muted.Render(fmt.Sprintf("Config file: %s", configPath)))
	b.WriteString("\n\n")

	for ci, cat := range m.categories {
		isActiveCategory := ci == m.categoryIndex

		catStyle := styles.Muted.Bold(true)
		if isActiveCategory {
			catStyle = styles.Primary.Bold(true)
		}
		b.WriteString(catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))
		b.WriteString("\n")

		for ii, item := range cat.Items {
			b.WriteString(m.renderItem(item, isActiveCategory && ii == m.itemIndex))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(styles.Muted.Render(m.currentItem().Description))
		b.WriteString("\n")
	}

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render("Error: " + m.errorMsg))
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessMsg.Render(m.infoMsg))
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderItem(item ConfigItem, selected bool) string {
	value := m.getDisplayValue(item)

	label := item.Label
	if len(label) > 25 {
		label = label[:22] + "..."
	}
	paddedLabel := fmt.Sprintf("%-25s", label)

	if selected {
		cursor := styles.Secondary.Render(">")
		return fmt.Sprintf("  %s %s  %s", cursor, styles.Text.Bold(true).Render(paddedLabel), styles.Primary.Render(value))
	}
	return fmt.Sprintf("    %s  %s", styles.Muted.Render(paddedLabel), styles.Text.Render(value))
}

func (m Model) renderEditOverlay() string {
	item := m.currentItem()

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.PrimaryColor).
		Padding(1, 2).
		Width(50)

	var content string
	if item.Type == "select" {
		content = fmt.Sprintf("Select %s:\n\n", item.Label)
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content += styles.DropdownItemSelected.Render(fmt.Sprintf(" > %s ", opt)) + "\n"
			} else {
				content += styles.DropdownItem.Render(fmt.Sprintf("   %s ", opt)) + "\n"
			}
		}
		content += "\n" + styles.Muted.Render("j/k or arrows to select, enter to confirm, esc to cancel")
	} else {
		content = fmt.Sprintf("Edit %s:\n\n", item.Label)
		content += m.textInput.View()
		content += "\n\n" + styles.Muted.Render("enter to save, esc to cancel")
	}

	return "\n" + borderStyle.Render(content)
}

func (m Model) renderHelp() string {
	helpStyle := styles.HelpBar
	keyStyle := styles.HelpKey

	if m.editing {
		return helpStyle.Render(
			keyStyle.Render("enter") + " save  " +
				keyStyle.Render("esc") + " cancel",
		)
	}

	return helpStyle.Render(
		keyStyle.Render("j/k") + " navigate  " +
			keyStyle.Render("tab") + " next category  " +
			keyStyle.Render("enter/space") + " edit  " +
			keyStyle.Render("r") + " reset  " +
			keyStyle.Render("q") + " quit",
	)
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) getDisplayValue(item ConfigItem) string {
	switch item.Type {
	case "bool":
		return strconv.FormatBool(viper.GetBool(item.Key))
	case "int":
		return strconv.Itoa(viper.GetInt(item.Key))
	case "duration":
		return viper.GetDuration(item.Key).String()
	default:
		return viper.GetString(item.Key)
	}
}

func (m Model) getCurrentSelectIndex() int {
	item := m.currentItem()
	if i := slices.Index(item.Options, viper.GetString(item.Key)); i >= 0 {
		return i
	}
	return 0
}

// validateAndSet parses value for item, applies it and checks the whole
// configuration. An invalid result is rolled back.
func (m *Model) validateAndSet(item ConfigItem, value string) error {
	var parsed any
	switch item.Type {
	case "int":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("expected integer value")
		}
		parsed = n
	case "duration":
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("expected a duration such as 10s")
		}
		parsed = d
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false")
		}
		parsed = b
	case "select":
		if !slices.Contains(item.Options, value) {
			return fmt.Errorf("invalid option: %s", value)
		}
		parsed = value
	default:
		parsed = value
	}

	previous := viper.Get(item.Key)
	viper.Set(item.Key, parsed)
	if _, err := config.Load(); err != nil {
		viper.Set(item.Key, previous)
		return err
	}
	return nil
}

func (m *Model) saveConfig() {
	if err := m.save(); err != nil {
		m.errorMsg = err.Error()
		return
	}
	m.infoMsg = "Saved!"
	m.configModified = true
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()
	defaults := config.Default()

	// Map of keys to default values
	defaultValues := map[string]any{
		// Data
		"data.seed":          defaults.Data.Seed,
		"data.min_magnitude": defaults.Data.MinMagnitude,
		"data.max_magnitude": defaults.Data.MaxMagnitude,
		// Chart
		"chart.palette": defaults.Chart.Palette,
		"chart.radius":  defaults.Chart.Radius,
		// Render
		"render.format": defaults.Render.Format,
		"render.width":  defaults.Render.Width,
		"render.height": defaults.Render.Height,
		// Serve
		"serve.addr":             defaults.Serve.Addr,
		"serve.shutdown_timeout": defaults.Serve.ShutdownTimeout,
		// Logging
		"logging.enabled": defaults.Logging.Enabled,
		"logging.level":   defaults.Logging.Level,
		"logging.dir":     defaults.Logging.Dir,
		// Palettes
		"palettes.dir":   defaults.Palettes.Dir,
		"palettes.watch": defaults.Palettes.Watch,
	}

	if defaultVal, ok := defaultValues[item.Key]; ok {
		viper.Set(item.Key, defaultVal)
		m.saveConfig()
		m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
	}
}

// Run starts the interactive config UI
func Run(paletteNames []string) error {
	p := tea.NewProgram(New(paletteNames), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
