// Package palette provides CLI commands for managing chart palettes.
package palette

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	appconfig "github.com/Iron-Ham/windrose/internal/config"
	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
	"github.com/Iron-Ham/windrose/internal/tui/styles"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Manage chart palettes",
	Long: `Manage the palettes that color the three height layers.

windrose ships built-in palettes and loads custom palettes from YAML
files in the palettes directory (see 'palette path').

Use 'palette list' to see all available palettes.
Use 'palette export' to create a template for a custom palette.
Use 'palette info' to view the colors of a palette.`,
}

var paletteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available palettes",
	RunE:  runPaletteList,
}

var paletteExportCmd = &cobra.Command{
	Use:   "export <palette-name> [output-file]",
	Short: "Export a palette to YAML",
	Long: `Export a palette to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  windrose palette export default              # Print default palette to stdout
  windrose palette export contrast mine.yaml   # Save contrast palette to file`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPaletteExport,
}

var paletteInfoCmd = &cobra.Command{
	Use:   "info <palette-name>",
	Short: "Show the layers and colors of a palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaletteInfo,
}

var palettePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the custom palettes directory path",
	RunE:  runPalettePath,
}

var paletteCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new custom palette from an existing one",
	Long: `Create a new custom palette file in your palettes directory.

The new file copies the palette given by --from (default: default).
It is picked up by the next run, or immediately by a running chart
when palettes.watch is enabled.

Example:
  windrose palette create ocean --from mono
  # Creates ~/.config/windrose/palettes/ocean.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPaletteCreate,
}

func init() {
	paletteCreateCmd.Flags().String("from", palette.Default, "palette to copy")

	paletteCmd.AddCommand(paletteListCmd)
	paletteCmd.AddCommand(paletteExportCmd)
	paletteCmd.AddCommand(paletteInfoCmd)
	paletteCmd.AddCommand(palettePathCmd)
	paletteCmd.AddCommand(paletteCreateCmd)
}

// Register adds the palette commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(paletteCmd)
}

func palettesDir() string {
	return appconfig.Get().Palettes.ResolveDir()
}

// discover loads the custom palettes, returning load errors keyed by the
// palette name they belong to.
func discover() (*palette.Registry, map[string]error) {
	reg := palette.NewRegistry()
	_, errs := reg.Discover(palettesDir())

	failed := make(map[string]error, len(errs))
	for _, err := range errs {
		name := ""
		var pe *errors.PaletteError
		if errors.As(err, &pe) && pe.Path != "" {
			name = palette.NameFromPath(pe.Path)
		}
		failed[name] = err
	}
	return reg, failed
}

// lookup resolves name, explaining whether it failed to load or does not
// exist at all.
func lookup(reg *palette.Registry, failed map[string]error, name string) (*palette.Palette, error) {
	p, err := reg.Get(name)
	if err == nil {
		return p, nil
	}
	if loadErr, ok := failed[name]; ok {
		return nil, fmt.Errorf("palette '%s' exists but failed to load: %v\n\nFix the errors in your palette file and try again", name, loadErr)
	}
	return nil, fmt.Errorf("unknown palette: %s\n\nRun 'windrose palette list' to see available palettes.\nCustom palettes should be placed in: %s", name, palettesDir())
}

func runPaletteList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	reg, failed := discover()

	if len(failed) > 0 {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Warning: Some palettes failed to load:")
		for _, err := range failed {
			fmt.Fprintf(errOut, "  - %v\n", err)
		}
		fmt.Fprintln(errOut)
	}

	fmt.Fprintln(out, "Built-in palettes:")
	for _, name := range palette.BuiltinNames() {
		p, _ := reg.Get(name)
		fmt.Fprintf(out, "  - %-10s %s\n", name, p.Description)
	}

	var custom []string
	for _, name := range reg.Names() {
		if !palette.IsBuiltin(name) {
			custom = append(custom, name)
		}
	}
	if len(custom) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Custom palettes:")
		for _, name := range custom {
			p, _ := reg.Get(name)
			if p.Author != "" {
				fmt.Fprintf(out, "  - %s (by %s)\n", name, p.Author)
			} else {
				fmt.Fprintf(out, "  - %s\n", name)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Custom palettes directory: %s\n", palettesDir())
	return nil
}

func runPaletteExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	reg, failed := discover()
	if _, err := lookup(reg, failed, name); err != nil {
		return err
	}

	data, err := reg.Export(name)
	if err != nil {
		return fmt.Errorf("exporting palette: %w", err)
	}

	// If output file specified, write to file
	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Palette exported to: %s\n", outputPath)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runPaletteInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]
	reg, failed := discover()
	p, err := lookup(reg, failed, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Palette: %s\n", name)
	if palette.IsBuiltin(name) {
		fmt.Fprintln(out, "Type: Built-in")
	} else {
		fmt.Fprintln(out, "Type: Custom")
		fmt.Fprintf(out, "File: %s\n", p.Path)
		if p.Author != "" {
			fmt.Fprintf(out, "Author: %s\n", p.Author)
		}
	}
	if p.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", p.Description)
	}

	for _, l := range rose.Layers() {
		spec := p.Layers.Spec(l)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s (%s, blend %s):\n", spec.Name, l.ID(), spec.Blend)

		var ramp strings.Builder
		for _, c := range spec.Colors {
			ramp.WriteString(styles.Swatch(palette.ToColorful(c).Hex()))
		}
		fmt.Fprintf(out, "  %s\n", ramp.String())

		for b, c := range spec.Colors {
			fmt.Fprintf(out, "  %-12s %s\n", rose.SpeedBin(b), palette.FormatColor(c))
		}
	}
	return nil
}

func runPalettePath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	dir := palettesDir()
	fmt.Fprintln(out, dir)

	// Check if directory exists
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Note: This directory does not exist yet.")
		fmt.Fprintln(out, "It will be created when you add your first custom palette.")
	}
	return nil
}

func runPaletteCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	// Validate the name
	if name == "" {
		return fmt.Errorf("palette name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\:*?\"<>| ") {
		return fmt.Errorf("palette name contains invalid characters")
	}
	if palette.IsBuiltin(name) {
		return fmt.Errorf("cannot create custom palette with built-in name '%s'", name)
	}

	dir := palettesDir()
	reg, failed := discover()
	if existing, err := reg.Get(name); err == nil {
		return fmt.Errorf("palette '%s' already exists at %s", name, existing.Path)
	}
	if _, ok := failed[name]; ok {
		return fmt.Errorf("palette '%s' already exists but failed to load; fix or remove it first", name)
	}

	from, _ := cmd.Flags().GetString("from")
	base, err := lookup(reg, failed, from)
	if err != nil {
		return err
	}

	f := palette.FromPalette(base)
	f.Name = capitalizeFirst(name)
	f.Author = ""
	f.Description = fmt.Sprintf("Custom palette based on %s", from)

	path, err := palette.Save(dir, name, f)
	if err != nil {
		return fmt.Errorf("creating palette: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created new palette: %s\n", path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Edit this file to customize the layer colors and blend modes.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To use your new palette, run:")
	fmt.Fprintf(out, "  windrose config set chart.palette %s\n", name)
	return nil
}

// capitalizeFirst capitalizes the first character of a string.
// This is a simple replacement for strings.Title which is deprecated.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
