package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iron-Ham/windrose/internal/logging"
	"github.com/Iron-Ham/windrose/internal/observability"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
	"github.com/Iron-Ham/windrose/internal/server"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

// testDataset has N: 10m bins [1,0,2], 850mb bin8 = 4, and nothing in E.
func testDataset(t *testing.T) *rose.Dataset {
	t.Helper()
	var raw rose.RawMagnitudes
	raw[rose.North][rose.Layer10m][0] = 1
	raw[rose.North][rose.Layer10m][2] = 2
	raw[rose.North][rose.Layer850mb][8] = 4
	raw[rose.South][rose.Layer925mb][4] = 3
	d, err := rose.FromRaw(raw, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return d
}

func newTestServer(t *testing.T, opts server.Options) (*server.Server, *observability.Metrics) {
	t.Helper()
	if opts.Dataset == nil {
		opts.Dataset = testDataset(t)
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetricsForTesting()
	}
	return server.NewServer(":0", opts), opts.Metrics
}

func get(srv http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, server.Options{})
	rec := get(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, server.Options{})
	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(t, server.Options{Ready: &mockReadiness{err: fmt.Errorf("not ready yet")}})
	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestReadyzUnknownDefaultPalette(t *testing.T) {
	srv, _ := newTestServer(t, server.Options{Palette: "missing"})
	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, server.Options{})
	rec := get(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRoseFormats(t *testing.T) {
	tests := []struct {
		path        string
		format      string
		contentType string
		prefix      string
	}{
		{"/rose.svg", "svg", "image/svg+xml", "<svg"},
		{"/rose.png", "png", "image/png", "\x89PNG"},
		{"/rose.json", "json", "application/json", "{"},
		{"/rose.txt", "text", "text/plain; charset=utf-8", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			srv, metrics := newTestServer(t, server.Options{Width: 200, Height: 200})
			rec := get(srv, tt.path)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.prefix))
			assert.NotEmpty(t, rec.Body.Bytes())

			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RendersTotal.WithLabelValues(tt.format)))
		})
	}
}

func TestRoseJSONHonorsHide(t *testing.T) {
	srv, metrics := newTestServer(t, server.Options{})
	rec := get(srv, "/rose.json?hide=850mb,925mb")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Visible []string `json:"visible"`
		Regions []struct {
			Layer string `json:"layer"`
		} `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, []string{"10m"}, doc.Visible)
	require.NotEmpty(t, doc.Regions)
	for _, r := range doc.Regions {
		assert.Equal(t, "10m", r.Layer)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LayerHidden.WithLabelValues("850mb")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LayerHidden.WithLabelValues("925mb")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.LayerHidden.WithLabelValues("10m")))
}

func TestRoseDefaultHiddenAndOverride(t *testing.T) {
	srv, _ := newTestServer(t, server.Options{Hidden: []rose.Layer{rose.Layer10m}})

	visible := func(target string) []string {
		rec := get(srv, target)
		require.Equal(t, http.StatusOK, rec.Code)
		var doc struct {
			Visible []string `json:"visible"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		return doc.Visible
	}

	assert.Equal(t, []string{"850mb", "925mb"}, visible("/rose.json"))
	assert.Equal(t, []string{"850mb", "925mb", "10m"}, visible("/rose.json?hide="))
	assert.Equal(t, []string{"925mb", "10m"}, visible("/rose.json?hide=850mb"))
}

func TestRoseBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown layer", "/rose.svg?hide=500mb", http.StatusBadRequest},
		{"width not a number", "/rose.svg?width=wide", http.StatusBadRequest},
		{"width too small", "/rose.png?width=10", http.StatusBadRequest},
		{"height too large", "/rose.png?height=100000", http.StatusBadRequest},
		{"unknown palette", "/rose.svg?palette=nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, server.Options{})
			rec := get(srv, tt.target)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRejectedRequestLogsWarning(t *testing.T) {
	var logs bytes.Buffer
	srv, _ := newTestServer(t, server.Options{Logger: logging.NewWriterLogger(&logs, "warn")})

	rec := get(srv, "/rose.svg?hide=500mb")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(logs.Bytes()), &entry), logs.String())
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "request rejected", entry["msg"])
	assert.EqualValues(t, http.StatusBadRequest, entry["status"])
}

func TestTooltip(t *testing.T) {
	srv, metrics := newTestServer(t, server.Options{})
	rec := get(srv, "/tooltip/n?hide=850mb")
	require.Equal(t, http.StatusOK, rec.Code)

	var tip struct {
		Direction string `json:"direction"`
		Blocks    []struct {
			Layer   string `json:"layer"`
			Entries []struct {
				Value int `json:"value"`
			} `json:"entries"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tip))
	assert.Equal(t, "N", tip.Direction)
	require.Len(t, tip.Blocks, 1)
	assert.Equal(t, "10m", tip.Blocks[0].Layer)
	require.Len(t, tip.Blocks[0].Entries, 2)
	assert.Equal(t, 1, tip.Blocks[0].Entries[0].Value)
	assert.Equal(t, 2, tip.Blocks[0].Entries[1].Value)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TooltipRequests.WithLabelValues("shown")))
}

func TestTooltipEmptyAndUnknown(t *testing.T) {
	srv, metrics := newTestServer(t, server.Options{})

	assert.Equal(t, http.StatusNoContent, get(srv, "/tooltip/E").Code)
	assert.Equal(t, http.StatusNoContent, get(srv, "/tooltip/S?hide=925mb").Code)
	assert.Equal(t, http.StatusNotFound, get(srv, "/tooltip/NNE").Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.TooltipRequests.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TooltipRequests.WithLabelValues("not_found")))
}

func TestPalettes(t *testing.T) {
	reg := palette.NewRegistry()
	custom, err := reg.Get(palette.Default)
	require.NoError(t, err)
	custom.Name = "warm"
	require.NoError(t, reg.Register(custom))

	srv, _ := newTestServer(t, server.Options{Registry: reg, Palette: palette.Mono})
	rec := get(srv, "/palettes")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []struct {
		Name    string `json:"name"`
		Builtin bool   `json:"builtin"`
		Default bool   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))

	var names []string
	for _, p := range list {
		names = append(names, p.Name)
		assert.Equal(t, p.Name != "warm", p.Builtin, p.Name)
		assert.Equal(t, p.Name == palette.Mono, p.Default, p.Name)
	}
	assert.Equal(t, append(palette.BuiltinNames(), "warm"), names)
}

func TestIndexPage(t *testing.T) {
	srv, _ := newTestServer(t, server.Options{})
	rec := get(srv, "/?hide=925mb")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "/rose.svg?hide=925mb")
	// The hidden layer's toggle link shows every layer again.
	assert.Contains(t, body, "/?hide=&amp;palette=default")
	assert.Contains(t, body, "0-2 km/h: 1")
	assert.Contains(t, body, "toggle hidden")
}

func TestIndexNotFoundForOtherPaths(t *testing.T) {
	srv, _ := newTestServer(t, server.Options{})
	assert.Equal(t, http.StatusNotFound, get(srv, "/nope").Code)
}
