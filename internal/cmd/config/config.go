// Package config provides CLI commands for managing windrose configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/windrose/internal/config"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
	tuiconfig "github.com/Iron-Ham/windrose/internal/tui/config"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

// runEditor starts the interactive editor; replaced in tests.
var runEditor = tuiconfig.Run

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify windrose configuration",
	Long: `View or modify windrose configuration.

Without arguments, opens an interactive configuration UI.
Use 'config show' to display configuration non-interactively.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigInteractive,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  windrose config set chart.palette contrast
  windrose config set chart.hidden_layers 925mb,10m
  windrose config set serve.shutdown_timeout 30s

Valid keys:
  data.seed               - Random seed (0 = new seed each run)
  data.min_magnitude      - Inclusive lower bound of each raw draw
  data.max_magnitude      - Exclusive upper bound of each raw draw
  chart.palette           - Built-in or custom palette name
  chart.radius            - Terminal chart radius in rows (4-40)
  chart.hidden_layers     - Comma separated layer ids hidden at start
  render.format           - svg, png, json or text
  render.width            - Image width in pixels (64-4096)
  render.height           - Image height in pixels (64-4096)
  serve.addr              - HTTP listen address
  serve.shutdown_timeout  - Graceful shutdown budget (e.g. 10s)
  logging.enabled         - Write a JSON debug log (true/false)
  logging.level           - debug, info, warn or error
  logging.dir             - Log directory (empty = config directory)
  palettes.dir            - Custom palette directory
  palettes.watch          - Hot-reload palette files (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/windrose/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  windrose config reset                # Reset all to defaults
  windrose config reset chart.palette  # Reset only chart.palette to default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
// This is the main entry point for integrating the config subpackage with
// the root command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// paletteNames lists built-in palettes plus those found in the configured
// palette directory.
func paletteNames() []string {
	reg := palette.NewRegistry()
	_, _ = reg.Discover(appconfig.Get().Palettes.ResolveDir())
	return reg.Names()
}

func runConfigInteractive(cmd *cobra.Command, args []string) error {
	return runEditor(paletteNames())
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if _, err := appconfig.Load(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n\n", err)
	}

	settings := viper.AllSettings()
	// --config is a flag, not a setting
	delete(settings, "config")

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("formatting configuration: %w", err)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, string(data))

	return nil
}

// keyTypes maps every settable key to how its value is parsed.
var keyTypes = map[string]string{
	"data.seed":              "int",
	"data.min_magnitude":     "int",
	"data.max_magnitude":     "int",
	"chart.palette":          "palette",
	"chart.radius":           "int",
	"chart.hidden_layers":    "layers",
	"render.format":          "string",
	"render.width":           "int",
	"render.height":          "int",
	"serve.addr":             "string",
	"serve.shutdown_timeout": "duration",
	"logging.enabled":        "bool",
	"logging.level":          "string",
	"logging.dir":            "string",
	"palettes.dir":           "string",
	"palettes.watch":         "bool",
}

func parseValue(key, value string) (any, error) {
	keyType, ok := keyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'windrose config set --help' to see valid keys", key)
	}

	switch keyType {
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return n, nil
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return value == "true", nil
	case "duration":
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected a duration such as 10s", key)
		}
		return d, nil
	case "layers":
		ids := []string{}
		for _, id := range strings.Split(value, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		return ids, nil
	case "palette":
		if names := paletteNames(); !slices.Contains(names, value) {
			return nil, fmt.Errorf("invalid palette: %s\nValid options: %s", value, strings.Join(names, ", "))
		}
		return value, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]

	typedValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	// Validate the whole configuration with the new value before saving
	previous := viper.Get(key)
	viper.Set(key, typedValue)
	if _, err := appconfig.Load(); err != nil {
		viper.Set(key, previous)
		return err
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)

	return nil
}

func writeConfig() (string, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(appconfig.ConfigDir(), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

const configTemplate = `# windrose configuration

# Synthetic dataset
data:
  # Random seed; 0 draws a new dataset on every run
  seed: 0
  # Each raw magnitude is drawn uniformly from [min_magnitude, max_magnitude)
  min_magnitude: 0
  max_magnitude: 10

# Chart settings
chart:
  # Palette: %s, or a custom palette name
  palette: default
  # Terminal chart radius in rows (4-40); the chart shrinks to fit the window
  radius: 11
  # Layers hidden at start: %s
  hidden_layers: []

# Defaults for 'windrose render'
render:
  # Output format: %s
  format: svg
  width: 640
  height: 640

# Settings for 'windrose serve'
serve:
  addr: ":8080"
  shutdown_timeout: 10s

# Debug logging
logging:
  enabled: false
  # Level: debug, info, warn, error
  level: info
  # Empty means the config directory
  dir: ""

# Custom palettes
palettes:
  # Empty means <config dir>/palettes
  dir: ""
  # Reload palette files while the chart is open
  watch: true
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'windrose config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(configTemplate,
		strings.Join(palette.BuiltinNames(), ", "),
		strings.Join(rose.LayerIDs(), ", "),
		strings.Join(appconfig.ValidFormats(), ", "))

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize windrose's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := appconfig.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/windrose/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: WINDROSE_* (e.g., WINDROSE_CHART_PALETTE)")

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file exists, if not create it
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	// Find an editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	// Open the editor
	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

// defaultValues maps every settable key to its default.
func defaultValues() map[string]any {
	defaults := appconfig.Default()
	return map[string]any{
		"data.seed":              defaults.Data.Seed,
		"data.min_magnitude":     defaults.Data.MinMagnitude,
		"data.max_magnitude":     defaults.Data.MaxMagnitude,
		"chart.palette":          defaults.Chart.Palette,
		"chart.radius":           defaults.Chart.Radius,
		"chart.hidden_layers":    defaults.Chart.HiddenLayers,
		"render.format":          defaults.Render.Format,
		"render.width":           defaults.Render.Width,
		"render.height":          defaults.Render.Height,
		"serve.addr":             defaults.Serve.Addr,
		"serve.shutdown_timeout": defaults.Serve.ShutdownTimeout,
		"logging.enabled":        defaults.Logging.Enabled,
		"logging.level":          defaults.Logging.Level,
		"logging.dir":            defaults.Logging.Dir,
		"palettes.dir":           defaults.Palettes.Dir,
		"palettes.watch":         defaults.Palettes.Watch,
	}
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	values := defaultValues()

	if len(args) == 0 {
		// Reset all values
		for key, value := range values {
			viper.Set(key, value)
		}
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		// Reset specific key
		key := args[0]
		value, ok := values[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'windrose config set --help' to see valid keys", key)
		}
		viper.Set(key, value)
		fmt.Fprintf(out, "Reset %s to default: %v\n", key, value)
	}

	configFile, err := writeConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
