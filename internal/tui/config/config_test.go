package config

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/windrose/internal/config"
)

func newTestModel(t *testing.T) (Model, *int) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	appconfig.SetDefaults()

	saves := 0
	m := New([]string{"default", "contrast", "mono"})
	m.save = func() error {
		saves++
		return nil
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	return next.(Model), &saves
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// selectKey moves the cursor to key.
func selectKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	for range 64 {
		if m.currentItem().Key == key {
			return m
		}
		m = press(m, "j")
	}
	t.Fatalf("item %q not found", key)
	return m
}

func TestNavigationWraps(t *testing.T) {
	m, _ := newTestModel(t)

	if got := m.currentItem().Key; got != "data.seed" {
		t.Fatalf("first item = %q, want data.seed", got)
	}

	m = press(m, "k")
	if got := m.currentItem().Key; got != "palettes.watch" {
		t.Errorf("k from first item = %q, want palettes.watch", got)
	}

	m = press(m, "j")
	if got := m.currentItem().Key; got != "data.seed" {
		t.Errorf("j from last item = %q, want data.seed", got)
	}

	m = press(m, "tab")
	if got := m.currentItem().Key; got != "chart.palette" {
		t.Errorf("tab = %q, want chart.palette", got)
	}
}

func TestEditInt(t *testing.T) {
	m, saves := newTestModel(t)
	m = selectKey(t, m, "chart.radius")

	m = press(m, "enter", "ctrl+u", "2", "0", "enter")
	if got := viper.GetInt("chart.radius"); got != 20 {
		t.Errorf("chart.radius = %d, want 20", got)
	}
	if *saves != 1 {
		t.Errorf("saves = %d, want 1", *saves)
	}
	if m.editing {
		t.Error("still editing after enter")
	}
}

func TestEditRejectsInvalid(t *testing.T) {
	m, saves := newTestModel(t)
	m = selectKey(t, m, "chart.radius")

	m = press(m, "enter", "ctrl+u", "9", "9", "enter")
	if got := viper.GetInt("chart.radius"); got != 11 {
		t.Errorf("chart.radius = %d, want 11 after rejected edit", got)
	}
	if m.errorMsg == "" || !m.editing {
		t.Errorf("errorMsg = %q, editing = %v; want error while still editing", m.errorMsg, m.editing)
	}
	if *saves != 0 {
		t.Errorf("saves = %d, want 0", *saves)
	}

	m = press(m, "ctrl+u", "x", "enter")
	if !strings.Contains(m.errorMsg, "integer") {
		t.Errorf("errorMsg = %q, want integer error", m.errorMsg)
	}
}

func TestEditRangeRollsBack(t *testing.T) {
	m, _ := newTestModel(t)
	m = selectKey(t, m, "data.max_magnitude")

	m = press(m, "enter", "ctrl+u", "0", "enter")
	if got := viper.GetInt("data.max_magnitude"); got != 10 {
		t.Errorf("data.max_magnitude = %d, want 10", got)
	}
	if m.errorMsg == "" {
		t.Error("no error for max <= min")
	}
}

func TestToggleBool(t *testing.T) {
	m, saves := newTestModel(t)
	m = selectKey(t, m, "logging.enabled")

	m = press(m, " ")
	if !viper.GetBool("logging.enabled") {
		t.Error("logging.enabled not toggled on")
	}
	_ = press(m, "enter")
	if viper.GetBool("logging.enabled") {
		t.Error("logging.enabled not toggled off")
	}
	if *saves != 2 {
		t.Errorf("saves = %d, want 2", *saves)
	}
}

func TestSelectOption(t *testing.T) {
	m, _ := newTestModel(t)
	m = selectKey(t, m, "chart.palette")

	m = press(m, "enter")
	if !m.editing || m.selectIndex != 0 {
		t.Fatalf("editing = %v, selectIndex = %d; want select open at default", m.editing, m.selectIndex)
	}
	m = press(m, "j", "j", "enter")
	if got := viper.GetString("chart.palette"); got != "mono" {
		t.Errorf("chart.palette = %q, want mono", got)
	}

	m = press(m, "enter", "esc")
	if m.editing {
		t.Error("esc did not close the select list")
	}
	if got := viper.GetString("chart.palette"); got != "mono" {
		t.Errorf("chart.palette = %q after cancel, want mono", got)
	}
}

func TestEditDuration(t *testing.T) {
	m, _ := newTestModel(t)
	m = selectKey(t, m, "serve.shutdown_timeout")

	m = press(m, "enter", "ctrl+u", "3", "s", "enter")
	if got := viper.GetDuration("serve.shutdown_timeout"); got != 3*time.Second {
		t.Errorf("serve.shutdown_timeout = %v, want 3s", got)
	}
	if !strings.Contains(m.View(), "3s") {
		t.Error("View() does not show the new timeout")
	}
}

func TestResetToDefault(t *testing.T) {
	m, _ := newTestModel(t)
	m = selectKey(t, m, "render.width")
	viper.Set("render.width", 800)

	m = press(m, "r")
	if got := viper.GetInt("render.width"); got != 640 {
		t.Errorf("render.width = %d, want 640", got)
	}
	if !strings.Contains(m.infoMsg, "Reset Width") {
		t.Errorf("infoMsg = %q", m.infoMsg)
	}
}

func TestViewListsCategories(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"[ Data ]", "[ Chart ]", "[ Render ]", "[ Serve ]", "[ Logging ]", "[ Palettes ]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if next.View() != "" {
		t.Error("View() not empty after quit")
	}
}
