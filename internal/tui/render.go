package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
	"github.com/Iron-Ham/windrose/internal/tui/keymap"
	"github.com/Iron-Ham/windrose/internal/tui/styles"
)

// hiddenFade is how far a hidden layer's legend swatches fade toward the
// chart background.
const hiddenFade = 0.7

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var body string
	if m.mode == keymap.ModeHelp {
		body = m.renderHelpOverlay()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.canvas.Render(),
			strings.Repeat(" ", PanelGap),
			m.renderSidebar(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		styles.HelpBar.Render(m.help.View(m.keymap)),
	)
}

func (m Model) renderHeader() string {
	title := "Wind rose"
	if m.dataset != nil {
		title += " · generated " + m.dataset.GeneratedAt().UTC().Format("2006-01-02 15:04 UTC")
		if seed := m.dataset.Seed(); seed != 0 {
			title += fmt.Sprintf(" · seed %d", seed)
		}
	}
	title += " · palette " + m.palette.Name

	width := max(m.width, 1)
	return styles.Header.Width(width).Render(ansi.Truncate(title, width, "…"))
}

func (m Model) renderSidebar() string {
	parts := []string{m.renderLegend(), m.renderTooltip()}
	if m.status != "" {
		style := styles.Muted
		if m.statusErr {
			style = styles.ErrorMsg
		}
		parts = append(parts, style.Render(ansi.Truncate(m.status, SidebarWidth, "…")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderLegend draws one button per layer: its key, the 9-color ramp and
// the display name. Hidden layers are faded and struck through.
func (m Model) renderLegend() string {
	inner := SidebarWidth - PanelFrame
	lines := []string{styles.PanelTitle.Render("Layers")}

	for i, l := range rose.Layers() {
		visible := m.vis.IsVisible(l)
		spec := m.palette.Layers.Spec(l)

		var ramp strings.Builder
		for _, c := range spec.Colors {
			fill := palette.Composite(m.canvas.Background, c, rose.BlendNormal)
			if !visible {
				fill = fill.BlendRgb(m.canvas.Background, hiddenFade)
			}
			ramp.WriteString(styles.Swatch(fill.Hex()))
		}

		label := styles.LegendButton
		if !visible {
			label = styles.LegendButtonHidden
		}
		name := ansi.Truncate(m.palette.Layers.Name(l), inner-rose.NumSpeedBins-3, "…")
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styles.LegendKey.Render(fmt.Sprint(i+1)),
			ramp.String(),
			label.Render(name),
		))
	}

	return styles.Panel.Width(SidebarWidth - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderTooltip() string {
	inner := SidebarWidth - PanelFrame
	dir, hovering := m.canvas.Hovered()

	var lines []string
	switch tip := m.canvas.Tooltip(); {
	case !hovering:
		lines = append(lines,
			styles.PanelTitle.Render("Tooltip"),
			styles.Muted.Render("hover the chart or press h/l"),
		)
	case tip == nil:
		lines = append(lines,
			styles.TooltipDirection.Render(dir.String()),
			styles.Muted.Render("nothing in visible layers"),
		)
	default:
		lines = append(lines, styles.TooltipDirection.Render(tip.Direction.String()))
		for _, b := range tip.Blocks {
			lines = append(lines, styles.TooltipLayer.Render(ansi.Truncate(b.Name, inner, "…")))
			for _, e := range b.Entries {
				lines = append(lines, ansi.Truncate("  "+e.String(), inner, "…"))
			}
		}
	}

	return styles.Panel.Width(SidebarWidth - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelpOverlay() string {
	km := *m.keymap
	km.Active = keymap.ModeNormal
	h := m.help
	h.ShowAll = true

	content := styles.PanelTitle.Render("Keys") + "\n\n" +
		h.View(&km) + "\n\n" +
		styles.Muted.Render("Click a legend button to toggle its layer; move the mouse over the chart to inspect a direction.")
	return styles.Panel.Width(max(m.width-2, 20)).Render(content)
}
