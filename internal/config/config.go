// Package config holds pdf417scan settings loaded from YAML files,
// PDF417SCAN_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	pdf417go "github.com/ericlevine/pdf417go"
)

// Config is the complete pdf417scan configuration.
type Config struct {
	LogLevel string       `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Decode   DecodeConfig `mapstructure:"decode" yaml:"decode" json:"decode"`
	Server   ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
	Batch    BatchConfig  `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// DecodeConfig maps onto pdf417go.DecodeOptions.
type DecodeConfig struct {
	TryHarder    bool   `mapstructure:"try_harder" yaml:"try_harder" json:"try_harder"`
	PureBarcode  bool   `mapstructure:"pure_barcode" yaml:"pure_barcode" json:"pure_barcode"`
	CharacterSet string `mapstructure:"character_set" yaml:"character_set" json:"character_set"`
	// MinUpscaleSide is the shorter image side below which TryHarder
	// decodes also try a 2x upscaled copy.
	MinUpscaleSide int `mapstructure:"min_upscale_side" yaml:"min_upscale_side" json:"min_upscale_side"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	PingIntervalSec int    `mapstructure:"ping_interval_sec" yaml:"ping_interval_sec" json:"ping_interval_sec"`
}

// BatchConfig configures directory scans.
type BatchConfig struct {
	Workers         int      `mapstructure:"workers" yaml:"workers" json:"workers"`
	Extensions      []string `mapstructure:"extensions" yaml:"extensions" json:"extensions"`
	ContinueOnError bool     `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Decode: DecodeConfig{
			MinUpscaleSide: 300,
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8417,
			MaxUploadMB:     20,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			PingIntervalSec: 30,
		},
		Batch: BatchConfig{
			Workers:         4,
			Extensions:      []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"},
			ContinueOnError: true,
		},
	}
}

// DecodeOptions converts the decode section for a reader. PossibleFormats is
// always limited to PDF417.
func (c *Config) DecodeOptions() *pdf417go.DecodeOptions {
	return &pdf417go.DecodeOptions{
		TryHarder:       c.Decode.TryHarder,
		PureBarcode:     c.Decode.PureBarcode,
		CharacterSet:    c.Decode.CharacterSet,
		PossibleFormats: []pdf417go.Format{pdf417go.FormatPDF417},
	}
}

// Addr is the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid server max_upload_mb: %d (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid server timeout_sec: %d (must be positive)", c.Server.TimeoutSec)
	}
	if c.Server.PingIntervalSec <= 0 {
		return fmt.Errorf("invalid server ping_interval_sec: %d (must be positive)", c.Server.PingIntervalSec)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}
	if c.Decode.MinUpscaleSide < 0 {
		return fmt.Errorf("invalid decode min_upscale_side: %d", c.Decode.MinUpscaleSide)
	}
	return nil
}

// Save writes c as YAML to path.
func Save(c *Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
