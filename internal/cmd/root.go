package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/windrose/internal/cmd/config"
	"github.com/Iron-Ham/windrose/internal/cmd/palette"
	appconfig "github.com/Iron-Ham/windrose/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "windrose",
	Short: "Radial wind rose for synthetic multi-level wind data",
	Long: `Windrose draws a radial wind rose: eight compass directions, three
height layers (850mb, 925mb, 10m) and nine wind-speed bins per layer.

Without a subcommand it opens the interactive chart. Layers can be shown
and hidden, and hovering a direction shows the per-bin breakdown.`,
	SilenceUsage: true,
	RunE:         runView,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/windrose/config.yaml)")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed for the synthetic dataset (0 picks one)")
	rootCmd.PersistentFlags().Int("max", 0, "exclusive upper bound of each synthetic magnitude")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("data.seed", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("data.max_magnitude", rootCmd.PersistentFlags().Lookup("max"))

	registerViewFlags(rootCmd)

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	config.Register(rootCmd)
	palette.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	appconfig.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(appconfig.ConfigDir())
		viper.AddConfigPath("$HOME/.config/windrose")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("WINDROSE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., WINDROSE_CHART_PALETTE for chart.palette
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
