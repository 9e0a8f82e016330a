package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/reglet-dev/reglet-permissions/application/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "permgrant",
	Short: "Render and request runtime permissions",
	Long: `permgrant renders capability descriptors as --allow-<kind>[=<value>]
flags and requests them from an in-process permission host built from a
grants file and --allow flags.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.permgrant.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.String("grants-file", "", "YAML grants file (default is $HOME/.permgrant/grants.yaml)")
	flags.StringArray("allow", nil, "grant a permission up front, e.g. --allow=--allow-net=example.com")
	flags.String("prompt", "auto", "when to prompt for undecided permissions: auto, always, never")

	_ = viper.BindPFlag("grants_file", flags.Lookup("grants-file"))
	_ = viper.BindPFlag("allow", flags.Lookup("allow"))
	_ = viper.BindPFlag("prompt", flags.Lookup("prompt"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

// initConfig loads configuration from the config file and environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Error("failed to find home directory", "error", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".permgrant")
	}

	viper.SetEnvPrefix("PERMGRANT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env and file settings.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose || viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
