package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/Iron-Ham/windrose/internal/config"
	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/logging"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
)

// clock stamps loaded datasets.
var clock = clockwork.NewRealClock()

// chartEnv is what every chart command needs: validated config, a logger,
// the palette registry and one dataset.
type chartEnv struct {
	cfg      *config.Config
	logger   *logging.Logger
	registry *palette.Registry
	palette  *palette.Palette
	dataset  *rose.Dataset
}

// newChartEnv loads config, opens the logger and discovers palettes.
// Palette load failures are reported to stderr and otherwise ignored.
func newChartEnv(stderr io.Writer) (*chartEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.Logging.ResolveDir(), cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
	}

	e := &chartEnv{
		cfg:      cfg,
		logger:   logger,
		registry: palette.NewRegistry(),
	}

	dir := cfg.Palettes.ResolveDir()
	loaded, errs := e.registry.Discover(dir)
	for _, err := range errs {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
		logger.Warn("palette skipped", "dir", dir, "error", err)
	}
	logger.Debug("palettes discovered", "dir", dir, "custom", len(loaded))

	if err := e.usePalette(cfg.Chart.Palette); err != nil {
		_ = logger.Close()
		return nil, err
	}
	return e, nil
}

// usePalette selects the named palette for the chart.
func (e *chartEnv) usePalette(name string) error {
	p, err := e.registry.Get(name)
	if err != nil {
		return fmt.Errorf("%w\nAvailable palettes: %s", err, strings.Join(e.registry.Names(), ", "))
	}
	e.palette = p
	return nil
}

// generate draws the synthetic dataset from the data.* settings.
func (e *chartEnv) generate() error {
	synth, err := rose.NewSynthesizer(rose.SynthOptions{
		Seed: e.cfg.Data.Seed,
		Min:  e.cfg.Data.MinMagnitude,
		Max:  e.cfg.Data.MaxMagnitude,
	})
	if err != nil {
		return err
	}
	e.dataset = synth.Generate()
	e.logger.Info("dataset generated",
		"seed", e.dataset.Seed(),
		"min", e.cfg.Data.MinMagnitude,
		"max", e.cfg.Data.MaxMagnitude)
	return nil
}

// load reads explicit raw magnitudes from path ("-" is stdin).
func (e *chartEnv) load(path string, stdin io.Reader) error {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "opening %s", path)
		}
		defer f.Close()
		r = f
	}

	d, err := rose.LoadDataset(r, clock.Now())
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	e.dataset = d
	e.logger.Info("dataset loaded", "path", path)
	return nil
}

// parseHidden resolves layer ids given on the command line. Each value
// may itself be comma separated.
func parseHidden(values []string) ([]rose.Layer, error) {
	var hidden []rose.Layer
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			l, err := rose.ParseLayer(id)
			if err != nil {
				return nil, fmt.Errorf("%w\nValid layers: %s", err, strings.Join(rose.LayerIDs(), ", "))
			}
			hidden = append(hidden, l)
		}
	}
	return hidden, nil
}

func (e *chartEnv) close() {
	_ = e.logger.Close()
}
