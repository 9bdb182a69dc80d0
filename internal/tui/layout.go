// Package tui provides the interactive terminal wind rose.
// This file contains layout-related constants and dimension calculation functions.
package tui

import (
	"github.com/Iron-Ham/windrose/internal/chart"
	"github.com/Iron-Ham/windrose/internal/rose"
)

// Fixed UI elements, in terminal cells.
const (
	// HeaderHeight is the title line plus its bottom border.
	HeaderHeight = 2

	// HelpBarHeight is the help bar plus its top margin.
	HelpBarHeight = 2

	// SidebarWidth is the outer width of the legend and tooltip panels.
	SidebarWidth = 34

	// PanelGap is the gap between the chart and the sidebar.
	PanelGap = 2

	// PanelFrame is the horizontal space taken by a panel's border and padding.
	PanelFrame = 4

	// legendFirstRow is the offset of the first layer button inside the
	// legend panel: top border plus title.
	legendFirstRow = 2
)

// chartMargin is the canvas size beyond the rose itself: 4r+1 columns and
// 2r+1 rows plus the compass label margins.
const (
	chartMarginCols = 7
	chartMarginRows = 3
)

// FitRadius returns the largest chart radius no larger than want that fits
// a terminal of the given size next to the sidebar. It never returns less
// than chart.MinRadius; a tiny terminal clips rather than hides the chart.
func FitRadius(termWidth, termHeight, want int) int {
	if want <= 0 {
		want = chart.DefaultRadius
	}
	byCols := (termWidth - SidebarWidth - PanelGap - chartMarginCols) / 4
	byRows := (termHeight - HeaderHeight - HelpBarHeight - chartMarginRows) / 2
	return max(chart.MinRadius, min(want, byCols, byRows, chart.MaxRadius))
}

// legendLayerAt maps a screen cell to the legend button under it.
func legendLayerAt(canvasWidth, x, y int) (rose.Layer, bool) {
	left := canvasWidth + PanelGap
	if x < left || x >= left+SidebarWidth {
		return 0, false
	}
	i := y - HeaderHeight - legendFirstRow
	if i < 0 || i >= rose.NumLayers {
		return 0, false
	}
	return rose.Layer(i), true
}

// chartCell maps a screen cell to canvas coordinates.
func chartCell(canvas *chart.Canvas, x, y int) (col, row int, ok bool) {
	col, row = x, y-HeaderHeight
	ok = col >= 0 && col < canvas.Width() && row >= 0 && row < canvas.Height()
	return col, row, ok
}
