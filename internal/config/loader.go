package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "inkline"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "INKLINE"
)

// Loader handles loading configuration from files and the environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader bound to the global viper instance so cobra
// flag bindings are honored.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// NewIsolatedLoader creates a loader with its own viper instance.
func NewIsolatedLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Load resolves configuration from search paths, environment variables and
// defaults. A missing config file is not an error.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return l.unmarshal()
}

// LoadWithFile resolves configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Set overrides a value in the configuration.
func (l *Loader) Set(key string, value any) { l.v.Set(key, value) }

// ConfigFileUsed returns the path of the config file used, if any.
func (l *Loader) ConfigFileUsed() string { return l.v.ConfigFileUsed() }

// Viper returns the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper { return l.v }

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "inkline"))
	}
	if configDir, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		l.v.AddConfigPath(filepath.Join(configDir, "inkline"))
	}
	l.v.AddConfigPath("/etc/inkline")
}

func (l *Loader) setupEnvironment() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("pipeline.model_path", defaults.Pipeline.ModelPath)
	l.v.SetDefault("pipeline.dict_path", defaults.Pipeline.DictPath)
	l.v.SetDefault("pipeline.strategy", defaults.Pipeline.Strategy)
	l.v.SetDefault("pipeline.min_confidence", defaults.Pipeline.MinConfidence)
	l.v.SetDefault("pipeline.handwriting", defaults.Pipeline.Handwriting)
	l.v.SetDefault("pipeline.image_height", defaults.Pipeline.ImageHeight)
	l.v.SetDefault("pipeline.max_width", defaults.Pipeline.MaxWidth)

	l.v.SetDefault("output.format", defaults.Output.Format)

	l.v.SetDefault("server.host", defaults.Server.Host)
	l.v.SetDefault("server.port", defaults.Server.Port)
	l.v.SetDefault("server.max_upload_mb", defaults.Server.MaxUploadMB)
	l.v.SetDefault("server.timeout_sec", defaults.Server.TimeoutSec)
}
