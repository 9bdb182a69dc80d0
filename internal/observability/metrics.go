package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "windrose"

// Metrics holds the Prometheus counters, histograms, and gauges for chart serving.
type Metrics struct {
	RendersTotal   *prometheus.CounterVec   // labels: format={svg,png,json,text}
	RenderDuration *prometheus.HistogramVec // labels: format
	RenderErrors   *prometheus.CounterVec   // labels: format

	TooltipRequests *prometheus.CounterVec // labels: outcome={shown,empty,not_found}
	LayerHidden     *prometheus.CounterVec // labels: layer; renders served with the layer hidden

	PaletteReloads *prometheus.CounterVec // labels: outcome={loaded,removed,error}

	DatasetGenerated prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Charts rendered by output format.",
		}, []string{"format"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time to render and encode a chart.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"format"}),
		RenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Chart renders that failed, by output format.",
		}, []string{"format"}),
		TooltipRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tooltip_requests_total",
			Help:      "Tooltip lookups by outcome.",
		}, []string{"outcome"}),
		LayerHidden: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layer_hidden_total",
			Help:      "Renders served with a height layer hidden.",
		}, []string{"layer"}),
		PaletteReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "palette_reloads_total",
			Help:      "Palette file changes applied by the watcher, by outcome.",
		}, []string{"outcome"}),
		DatasetGenerated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_generated_timestamp_seconds",
			Help:      "Unix time the served dataset was generated.",
		}),
	}

	prometheus.MustRegister(
		m.RendersTotal,
		m.RenderDuration,
		m.RenderErrors,
		m.TooltipRequests,
		m.LayerHidden,
		m.PaletteReloads,
		m.DatasetGenerated,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RendersTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "renders_total"}, []string{"format"}),
		RenderDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "render_duration_seconds"}, []string{"format"}),
		RenderErrors:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "render_errors_total"}, []string{"format"}),
		TooltipRequests:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "tooltip_requests_total"}, []string{"outcome"}),
		LayerHidden:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "layer_hidden_total"}, []string{"layer"}),
		PaletteReloads:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "palette_reloads_total"}, []string{"outcome"}),
		DatasetGenerated: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "dataset_generated_timestamp_seconds"}),
	}
}

// ObserveRender records one render of format taking d, and whether it failed.
func (m *Metrics) ObserveRender(format string, d time.Duration, err error) {
	if err != nil {
		m.RenderErrors.WithLabelValues(format).Inc()
		return
	}
	m.RendersTotal.WithLabelValues(format).Inc()
	m.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// ObserveHidden counts a render served with each of the given layer ids hidden.
func (m *Metrics) ObserveHidden(layerIDs ...string) {
	for _, id := range layerIDs {
		m.LayerHidden.WithLabelValues(id).Inc()
	}
}

// SetDatasetGenerated records when the served dataset was generated.
func (m *Metrics) SetDatasetGenerated(t time.Time) {
	m.DatasetGenerated.Set(float64(t.Unix()))
}

// ObservePaletteReload counts one palette file change seen by the watcher.
func (m *Metrics) ObservePaletteReload(removed bool, err error) {
	outcome := "loaded"
	switch {
	case err != nil:
		outcome = "error"
	case removed:
		outcome = "removed"
	}
	m.PaletteReloads.WithLabelValues(outcome).Inc()
}
