package cmd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/windrose/internal/observability"
	"github.com/Iron-Ham/windrose/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive wind rose",
	Long: `Open the interactive wind rose in the terminal.

Keys 1, 2 and 3 toggle the 850mb, 925mb and 10m layers. Move the hover
cursor with the arrow keys or the mouse to see the per-bin breakdown of
a direction. Press ? for all key bindings.`,
	RunE: runView,
}

func init() {
	registerViewFlags(viewCmd)
}

// registerViewFlags adds the view flags to c. The root command shares them
// because running windrose without a subcommand opens the view.
func registerViewFlags(c *cobra.Command) {
	c.Flags().StringSlice("hide", nil, "layer ids to hide at start (850mb, 925mb, 10m)")
	c.Flags().StringP("palette", "p", "", "palette name (default from chart.palette)")
	c.Flags().Int("radius", 0, "preferred chart radius in rows (default from chart.radius)")
	c.Flags().String("input", "", "read raw magnitudes from a JSON file instead of generating them")
	c.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address while the view runs")
}

func runView(cmd *cobra.Command, args []string) error {
	env, err := newChartEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	opts, err := viewOptions(cmd, env)
	if err != nil {
		return err
	}

	var appOpts []tui.AppOption
	if env.cfg.Palettes.Watch {
		appOpts = append(appOpts, tui.WithPaletteWatch(env.cfg.Palettes.ResolveDir(), env.registry))
	}
	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		metrics := observability.NewMetrics()
		metrics.SetDatasetGenerated(env.dataset.GeneratedAt())
		appOpts = append(appOpts, tui.WithMetrics(metrics))
		go func() {
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				env.logger.Warn("metrics listener stopped", "addr", addr, "error", err)
			}
		}()
	}

	return tui.New(tui.NewModel(opts), appOpts...).Run()
}

// viewOptions resolves the flags of the view into model options, loading
// or generating the dataset.
func viewOptions(cmd *cobra.Command, env *chartEnv) (tui.Options, error) {
	flags := cmd.Flags()

	if name, _ := flags.GetString("palette"); name != "" {
		if err := env.usePalette(name); err != nil {
			return tui.Options{}, err
		}
	}

	hidden := env.cfg.HiddenLayers()
	if flags.Changed("hide") {
		values, _ := flags.GetStringSlice("hide")
		var err error
		if hidden, err = parseHidden(values); err != nil {
			return tui.Options{}, err
		}
	}

	radius := env.cfg.Chart.Radius
	if r, _ := flags.GetInt("radius"); r > 0 {
		radius = r
	}

	if input, _ := flags.GetString("input"); input != "" {
		if err := env.load(input, cmd.InOrStdin()); err != nil {
			return tui.Options{}, err
		}
	} else if err := env.generate(); err != nil {
		return tui.Options{}, err
	}

	return tui.Options{
		Dataset: env.dataset,
		Palette: env.palette,
		Hidden:  hidden,
		Radius:  radius,
		Logger:  env.logger,
	}, nil
}
