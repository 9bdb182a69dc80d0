package tui

import (
	"testing"

	"github.com/Iron-Ham/windrose/internal/chart"
	"github.com/Iron-Ham/windrose/internal/rose"
)

func TestFitRadius(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          int
		expected      int
	}{
		{"roomy terminal keeps preference", 200, 80, 11, 11},
		{"zero preference uses default", 200, 80, 0, chart.DefaultRadius},
		{"limited by rows", 200, 20, 11, 6},
		{"limited by columns", 70, 80, 11, 6},
		{"tiny terminal clamps to minimum", 20, 10, 11, chart.MinRadius},
		{"huge preference clamps to maximum", 1000, 1000, 100, chart.MaxRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitRadius(tt.width, tt.height, tt.want); got != tt.expected {
				t.Errorf("FitRadius(%d, %d, %d) = %d, want %d", tt.width, tt.height, tt.want, got, tt.expected)
			}
		})
	}
}

func TestLegendLayerAt(t *testing.T) {
	const canvasWidth = 51
	left := canvasWidth + PanelGap

	tests := []struct {
		name string
		x, y int
		want rose.Layer
		ok   bool
	}{
		{"first button", left, HeaderHeight + legendFirstRow, rose.Layer850mb, true},
		{"last button", left + SidebarWidth - 1, HeaderHeight + legendFirstRow + 2, rose.Layer10m, true},
		{"title row", left + 3, HeaderHeight + 1, 0, false},
		{"below buttons", left + 3, HeaderHeight + legendFirstRow + 3, 0, false},
		{"left of sidebar", left - 1, HeaderHeight + legendFirstRow, 0, false},
		{"right of sidebar", left + SidebarWidth, HeaderHeight + legendFirstRow, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := legendLayerAt(canvasWidth, tt.x, tt.y)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("legendLayerAt(%d, %d) = (%v, %v), want (%v, %v)", tt.x, tt.y, got, ok, tt.want, tt.ok)
			}
		})
	}
}
