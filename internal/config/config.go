package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete windrose configuration
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Render   RenderConfig   `mapstructure:"render"`
	Serve    ServeConfig    `mapstructure:"serve"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Palettes PalettesConfig `mapstructure:"palettes"`
}

// DataConfig controls the synthetic dataset
type DataConfig struct {
	// Seed seeds the generator; 0 picks a random seed per run
	Seed int64 `mapstructure:"seed"`
	// MinMagnitude is the inclusive lower bound of each raw draw
	MinMagnitude int `mapstructure:"min_magnitude"`
	// MaxMagnitude is the exclusive upper bound of each raw draw
	MaxMagnitude int `mapstructure:"max_magnitude"`
}

// ChartConfig controls what the chart shows
type ChartConfig struct {
	// Palette is a built-in or custom palette name
	Palette string `mapstructure:"palette"`
	// Radius is the terminal chart radius in character rows (min: 4, max: 40)
	Radius int `mapstructure:"radius"`
	// HiddenLayers lists layer ids hidden at start, e.g. ["925mb"]
	HiddenLayers []string `mapstructure:"hidden_layers"`
}

// RenderConfig controls non-interactive export
type RenderConfig struct {
	// Format is one of "svg", "png", "json", "text"
	Format string `mapstructure:"format"`
	// Width and Height are the image size in pixels (min: 64, max: 4096)
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// ServeConfig controls the HTTP server
type ServeConfig struct {
	// Addr is the listen address
	Addr string `mapstructure:"addr"`
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is active (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the log directory; empty means the config directory
	Dir string `mapstructure:"dir"`
}

// PalettesConfig controls custom palette discovery
type PalettesConfig struct {
	// Dir holds <name>.yaml palette files; empty means <config dir>/palettes
	Dir string `mapstructure:"dir"`
	// Watch hot-reloads palette files while the TUI runs
	Watch bool `mapstructure:"watch"`
}

// ResolveDir returns the palette directory, defaulting to the config dir.
func (p *PalettesConfig) ResolveDir() string {
	if p.Dir != "" {
		return expandHome(p.Dir)
	}
	return filepath.Join(ConfigDir(), "palettes")
}

// ResolveDir returns the log directory, defaulting to the config dir.
func (l *LoggingConfig) ResolveDir() string {
	if l.Dir != "" {
		return expandHome(l.Dir)
	}
	return ConfigDir()
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Seed:         0,
			MinMagnitude: 0,
			MaxMagnitude: 10,
		},
		Chart: ChartConfig{
			Palette:      "default",
			Radius:       11,
			HiddenLayers: []string{},
		},
		Render: RenderConfig{
			Format: "svg",
			Width:  640,
			Height: 640,
		},
		Serve: ServeConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
		},
		Palettes: PalettesConfig{
			Watch: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Data defaults
	viper.SetDefault("data.seed", defaults.Data.Seed)
	viper.SetDefault("data.min_magnitude", defaults.Data.MinMagnitude)
	viper.SetDefault("data.max_magnitude", defaults.Data.MaxMagnitude)

	// Chart defaults
	viper.SetDefault("chart.palette", defaults.Chart.Palette)
	viper.SetDefault("chart.radius", defaults.Chart.Radius)
	viper.SetDefault("chart.hidden_layers", defaults.Chart.HiddenLayers)

	// Render defaults
	viper.SetDefault("render.format", defaults.Render.Format)
	viper.SetDefault("render.width", defaults.Render.Width)
	viper.SetDefault("render.height", defaults.Render.Height)

	// Serve defaults
	viper.SetDefault("serve.addr", defaults.Serve.Addr)
	viper.SetDefault("serve.shutdown_timeout", defaults.Serve.ShutdownTimeout)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Palette defaults
	viper.SetDefault("palettes.dir", defaults.Palettes.Dir)
	viper.SetDefault("palettes.watch", defaults.Palettes.Watch)
}

// Load reads the configuration from viper into a Config struct
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "windrose")
	}
	// Fall back to ~/.config/windrose
	home, err := os.UserHomeDir()
	if err != nil {
		return ".windrose"
	}
	return filepath.Join(home, ".config", "windrose")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
