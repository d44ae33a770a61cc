// Package config holds the application-level configuration for inkline,
// loadable from YAML files, environment variables and command-line flags.
package config

import (
	"fmt"

	"github.com/MeKo-Tech/inkline/internal/pipeline"
)

// Config represents the complete configuration for the inkline application.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output" json:"output"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server" json:"server"`
}

// PipelineConfig contains OCR pipeline settings.
type PipelineConfig struct {
	ModelPath     string  `mapstructure:"model_path" yaml:"model_path" json:"model_path"`
	DictPath      string  `mapstructure:"dict_path" yaml:"dict_path" json:"dict_path"`
	Strategy      string  `mapstructure:"strategy" yaml:"strategy" json:"strategy"`
	MinConfidence float64 `mapstructure:"min_confidence" yaml:"min_confidence" json:"min_confidence"`
	Handwriting   bool    `mapstructure:"handwriting" yaml:"handwriting" json:"handwriting"`
	ImageHeight   int     `mapstructure:"image_height" yaml:"image_height" json:"image_height"`
	MaxWidth      int     `mapstructure:"max_width" yaml:"max_width" json:"max_width"`
}

// OutputConfig contains CLI output settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host        string `mapstructure:"host" yaml:"host" json:"host"`
	Port        int    `mapstructure:"port" yaml:"port" json:"port"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec  int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
}

// DefaultConfig returns the application defaults.
func DefaultConfig() Config {
	pd := pipeline.DefaultConfig()
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Pipeline: PipelineConfig{
			Strategy:      string(pd.Strategy),
			MinConfidence: pd.MinConfidence,
			ImageHeight:   pd.Recognizer.ImageHeight,
			MaxWidth:      pd.Recognizer.MaxWidth,
		},
		Output: OutputConfig{Format: "text"},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			MaxUploadMB: 50,
			TimeoutSec:  60,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q", c.Output.Format)
	}
	if _, err := pipeline.ParseStrategy(c.Pipeline.Strategy); err != nil {
		return err
	}
	if c.Pipeline.MinConfidence < 0 || c.Pipeline.MinConfidence > 1 {
		return fmt.Errorf("min confidence %v outside [0,1]", c.Pipeline.MinConfidence)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size %d", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid server timeout %d", c.Server.TimeoutSec)
	}
	return nil
}

// PipelineBuilder translates the loaded configuration into a pipeline builder.
func (c *Config) PipelineBuilder() *pipeline.Builder {
	strategy, _ := pipeline.ParseStrategy(c.Pipeline.Strategy)
	return pipeline.NewBuilder().
		WithModelPath(c.Pipeline.ModelPath).
		WithDictionaryPath(c.Pipeline.DictPath).
		WithStrategy(strategy).
		WithMinConfidence(c.Pipeline.MinConfidence).
		WithImageHeight(c.Pipeline.ImageHeight).
		WithHandwriting(c.Pipeline.Handwriting)
}
