// Package cmd implements the inkline command-line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/inkline/internal/config"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "inkline",
	Short: "OCR pipeline for handwritten and printed ink on paper",
	Long: `inkline detects ink-colored regions on scanned pages, crops each
region with a perspective transform, recognizes the glyphs with a CTC
sequence model and groups them into words in reading order.

Examples:
  inkline image scan.png
  inkline image page.jpg --format json --grouping dilation
  inkline serve --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/inkline, /etc/inkline)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("model", "", "path to the ONNX recognition model")
	rootCmd.PersistentFlags().String("dict", "", "path to the character dictionary")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("pipeline.model_path", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("pipeline.dict_path", rootCmd.PersistentFlags().Lookup("dict"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}

		var logLevel slog.Level
		if globalConfig.Verbose {
			logLevel = slog.LevelDebug
		} else {
			switch globalConfig.LogLevel {
			case "debug":
				logLevel = slog.LevelDebug
			case "warn":
				logLevel = slog.LevelWarn
			case "error":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	}
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the resolved configuration including CLI flag overrides.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	cfg, err := resolveConfig(configLoader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// resolveConfig re-unmarshals the viper state so flags bound after the initial
// load are included, then validates the result; flag-injected values go
// through the same checks as file and environment values.
func resolveConfig(loader *config.Loader) (*config.Config, error) {
	var cfg config.Config
	if err := loader.Viper().Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}
