package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/logging"
	"github.com/Iron-Ham/windrose/internal/observability"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wind rose over HTTP",
	Long: `Serve one generated dataset over HTTP.

Routes:
  GET /                     HTML page with layer toggles and the breakdown table
  GET /rose.svg, /rose.png  chart images (?hide=<layer>, ?palette=, ?width=, ?height=)
  GET /rose.json, /rose.txt dataset and regions, or the plain text chart
  GET /tooltip/{direction}  decoded breakdown of one direction
  GET /palettes             available palettes
  GET /healthz, /readyz     liveness and readiness
  GET /metrics              Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM within
serve.shutdown_timeout.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from serve.addr)")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := newChartEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	// A server always logs; without a log file it logs to stderr.
	logger := env.logger
	if !env.cfg.Logging.Enabled {
		logger = logging.NewWriterLogger(cmd.ErrOrStderr(), env.cfg.Logging.Level)
	}
	env.logger = logger

	if err := env.generate(); err != nil {
		return err
	}

	metrics := observability.NewMetrics()

	if env.cfg.Palettes.Watch {
		dir := env.cfg.Palettes.ResolveDir()
		w, err := palette.Watch(dir, env.registry, func(c palette.Change) {
			metrics.ObservePaletteReload(c.Removed, c.Err)
		}, logger)
		if err != nil {
			logger.Warn("palette hot-reload disabled", "dir", dir, "error", err)
		} else {
			defer w.Close()
		}
	}

	srv := server.NewServer(env.cfg.Serve.Addr, server.Options{
		Dataset:  env.dataset,
		Registry: env.registry,
		Palette:  env.palette.Name,
		Hidden:   env.cfg.HiddenLayers(),
		Width:    env.cfg.Render.Width,
		Height:   env.cfg.Render.Height,
		Radius:   env.cfg.Chart.Radius,
		Metrics:  metrics,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Serving wind rose on %s (seed %d)\n", env.cfg.Serve.Addr, env.dataset.Seed())

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.cfg.Serve.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
		return err
	}

	logger.Info("shutdown complete")
	return nil
}
