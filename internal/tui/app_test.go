package tui

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Iron-Ham/windrose/internal/observability"
	"github.com/Iron-Ham/windrose/internal/palette"
)

func TestNewAppOptions(t *testing.T) {
	reg := palette.NewRegistry()
	metrics := observability.NewMetricsForTesting()
	dir := t.TempDir()

	a := New(NewModel(Options{Dataset: testDataset(t)}), WithPaletteWatch(dir, reg), WithMetrics(metrics))

	if a.paletteDir != dir {
		t.Errorf("paletteDir = %q, want %q", a.paletteDir, dir)
	}
	if a.registry != reg {
		t.Error("registry not set")
	}
	if a.metrics != metrics {
		t.Error("metrics not set")
	}
	if a.logger == nil {
		t.Error("logger should default to the model's logger")
	}
}

func TestOnPaletteChangeCountsReloads(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	a := New(NewModel(Options{Dataset: testDataset(t)}), WithPaletteWatch(t.TempDir(), palette.NewRegistry()), WithMetrics(metrics))

	// No program is running, so only the metrics are touched.
	a.onPaletteChange(palette.Change{Name: "ocean"})
	a.onPaletteChange(palette.Change{Name: "ocean", Removed: true})
	a.onPaletteChange(palette.Change{Name: "broken", Err: errors.New("bad yaml")})

	for outcome, want := range map[string]float64{"loaded": 1, "removed": 1, "error": 1} {
		if got := testutil.ToFloat64(metrics.PaletteReloads.WithLabelValues(outcome)); got != want {
			t.Errorf("palette_reloads_total{outcome=%q} = %v, want %v", outcome, got, want)
		}
	}
}
