// Package server exposes the wind rose over HTTP: rendered charts, decoded
// tooltips, an HTML page with layer toggles, and health and metrics
// endpoints.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Iron-Ham/windrose/internal/chart"
	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/logging"
	"github.com/Iron-Ham/windrose/internal/observability"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
)

// Image size bounds accepted from ?width= and ?height=.
const (
	MinImageSize = 64
	MaxImageSize = 4096
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Dataset  *rose.Dataset
	Registry *palette.Registry
	// Palette is the palette used when a request names none.
	Palette string
	// Hidden layers apply when a request has no ?hide= parameter.
	Hidden []rose.Layer
	Width  int
	Height int
	Radius int

	Metrics *observability.Metrics
	Logger  *logging.Logger
	// Ready overrides the default readiness check.
	Ready ReadinessChecker
}

// Server serves one immutable dataset.
type Server struct {
	httpServer *http.Server
	opts       Options
	logger     *logging.Logger
}

// NewServer creates an HTTP server with chart, tooltip, health, readiness and
// metrics routes.
func NewServer(addr string, opts Options) *Server {
	if opts.Registry == nil {
		opts.Registry = palette.NewRegistry()
	}
	if opts.Palette == "" {
		opts.Palette = palette.Default
	}
	if opts.Width == 0 {
		opts.Width = 640
	}
	if opts.Height == 0 {
		opts.Height = 640
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetricsForTesting()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}

	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		opts:   opts,
		logger: opts.Logger.WithComponent("server"),
	}
	if s.opts.Ready == nil {
		s.opts.Ready = s
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /rose.svg", s.handleRose(chart.FormatSVG))
	mux.HandleFunc("GET /rose.png", s.handleRose(chart.FormatPNG))
	mux.HandleFunc("GET /rose.json", s.handleRose(chart.FormatJSON))
	mux.HandleFunc("GET /rose.txt", s.handleRose(chart.FormatText))
	mux.HandleFunc("GET /tooltip/{direction}", s.handleTooltip)
	mux.HandleFunc("GET /palettes", s.handlePalettes)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(s.opts.Ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	if opts.Dataset != nil {
		opts.Metrics.SetDatasetGenerated(opts.Dataset.GeneratedAt())
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// CheckReadiness reports ready once a valid dataset is loaded and the
// default palette resolves.
func (s *Server) CheckReadiness(_ context.Context) error {
	if s.opts.Dataset == nil {
		return errors.New("no dataset loaded")
	}
	if err := s.opts.Dataset.Validate(); err != nil {
		return err
	}
	if _, err := s.opts.Registry.Get(s.opts.Palette); err != nil {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

// writeError maps err to a status code. Internal errors are not echoed.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var notFound *errors.NotFoundError
	var invalid *errors.ValidationError
	switch {
	case errors.As(err, &invalid), errors.Is(err, errors.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	}

	switch sev := errors.GetSeverity(err); sev {
	case errors.SeverityDebug, errors.SeverityInfo:
		s.logger.Debug("request rejected", "status", status, "error", err)
	case errors.SeverityWarning:
		s.logger.Warn("request rejected", "status", status, "error", err)
	default:
		s.logger.Error("request failed", "status", status, "severity", sev.String(), "error", err)
	}

	msg := err.Error()
	if !errors.IsUserFacing(err) {
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
