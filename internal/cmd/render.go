package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/windrose/internal/chart"
	"github.com/Iron-Ham/windrose/internal/config"
	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/rose"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the wind rose to a file or stdout",
	Long: `Render the wind rose without the interactive view.

Formats:
  svg   vector image (default from render.format)
  png   raster image
  json  dataset, drawn regions and decoded tooltips
  text  plain terminal chart followed by every tooltip

When --format is not given and the output file has a known extension,
the extension picks the format.

Examples:
  windrose render -o rose.svg
  windrose render --format text --hide 925mb
  windrose render --seed 42 --format json --input raw.json`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "-", "output file (- for stdout)")
	renderCmd.Flags().StringP("format", "f", "", "output format: "+strings.Join(chart.Formats(), ", "))
	renderCmd.Flags().StringSlice("hide", nil, "layer ids to hide (850mb, 925mb, 10m)")
	renderCmd.Flags().StringP("palette", "p", "", "palette name (default from chart.palette)")
	renderCmd.Flags().Int("width", 0, "image width in pixels (default from render.width)")
	renderCmd.Flags().Int("height", 0, "image height in pixels (default from render.height)")
	renderCmd.Flags().Int("radius", 0, "text chart radius in rows (default from chart.radius)")
	renderCmd.Flags().String("input", "", "read raw magnitudes from a JSON file (- for stdin)")
}

func runRender(cmd *cobra.Command, args []string) error {
	env, err := newChartEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	flags := cmd.Flags()
	output, _ := flags.GetString("output")

	opts, err := exportOptions(cmd, env.cfg, output)
	if err != nil {
		return err
	}

	if name, _ := flags.GetString("palette"); name != "" {
		if err := env.usePalette(name); err != nil {
			return err
		}
	}

	hidden := env.cfg.HiddenLayers()
	if flags.Changed("hide") {
		values, _ := flags.GetStringSlice("hide")
		if hidden, err = parseHidden(values); err != nil {
			return err
		}
	}

	if input, _ := flags.GetString("input"); input != "" {
		err = env.load(input, cmd.InOrStdin())
	} else {
		err = env.generate()
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	vis := rose.NewVisibility(hidden...)
	if err := chart.Export(&buf, env.dataset, vis, env.palette.Layers, opts); err != nil {
		return err
	}
	env.logger.Info("chart rendered",
		"format", string(opts.Format),
		"bytes", buf.Len(),
		"hidden", len(hidden))

	if output == "-" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", output)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s, seed %d)\n", output, opts.Format, env.dataset.Seed())
	return nil
}

// exportOptions resolves format and size from flags, the output file
// extension and the render.* settings, in that order.
func exportOptions(cmd *cobra.Command, cfg *config.Config, output string) (chart.ExportOptions, error) {
	flags := cmd.Flags()

	name, _ := flags.GetString("format")
	if name == "" && output != "-" {
		if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
			if _, err := chart.ParseFormat(ext); err == nil {
				name = ext
			}
		}
	}
	if name == "" {
		name = cfg.Render.Format
	}
	format, err := chart.ParseFormat(name)
	if err != nil {
		return chart.ExportOptions{}, err
	}

	opts := chart.ExportOptions{
		Format: format,
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Radius: cfg.Chart.Radius,
	}
	if w, _ := flags.GetInt("width"); w != 0 {
		opts.Width = w
	}
	if h, _ := flags.GetInt("height"); h != 0 {
		opts.Height = h
	}
	if r, _ := flags.GetInt("radius"); r != 0 {
		opts.Radius = r
	}

	for _, size := range []struct {
		field string
		value int
	}{{"width", opts.Width}, {"height", opts.Height}} {
		if size.value < config.MinImageSize || size.value > config.MaxImageSize {
			return chart.ExportOptions{}, errors.NewValidationError(
				fmt.Sprintf("must be between %d and %d", config.MinImageSize, config.MaxImageSize)).
				WithField(size.field).
				WithValue(size.value)
		}
	}
	return opts, nil
}
