package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRender(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObserveRender("svg", 20*time.Millisecond, nil)
	m.ObserveRender("svg", 10*time.Millisecond, nil)
	m.ObserveRender("png", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RendersTotal.WithLabelValues("svg")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RendersTotal.WithLabelValues("png")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RenderErrors.WithLabelValues("png")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RenderDuration))
}

func TestObserveHidden(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObserveHidden("925mb", "10m")
	m.ObserveHidden("10m")
	m.ObserveHidden()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LayerHidden.WithLabelValues("925mb")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LayerHidden.WithLabelValues("10m")))
}

func TestSetDatasetGenerated(t *testing.T) {
	m := NewMetricsForTesting()
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	m.SetDatasetGenerated(at)
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(m.DatasetGenerated))
}

func TestObservePaletteReload(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObservePaletteReload(false, nil)
	m.ObservePaletteReload(false, nil)
	m.ObservePaletteReload(true, nil)
	m.ObservePaletteReload(false, errors.New("bad yaml"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PaletteReloads.WithLabelValues("loaded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaletteReloads.WithLabelValues("removed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaletteReloads.WithLabelValues("error")))
}
