package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdf417go "github.com/ericlevine/pdf417go"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nserver:\n  port: 9000\ndecode:\n  try_harder: true\n"), 0o644))
	t.Setenv("PDF417SCAN_SERVER_PORT", "9100")
	t.Setenv("PDF417SCAN_BATCH_WORKERS", "2")

	l := NewLoader()
	cfg, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, l.ConfigFileUsed())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Decode.TryHarder)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, "localhost:9100", cfg.Addr())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))

	_, err := NewLoader().Load(path)
	assert.ErrorContains(t, err, "invalid log level")
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"port":     func(c *Config) { c.Server.Port = 70000 },
		"upload":   func(c *Config) { c.Server.MaxUploadMB = 0 },
		"timeout":  func(c *Config) { c.Server.TimeoutSec = -1 },
		"ping":     func(c *Config) { c.Server.PingIntervalSec = 0 },
		"workers":  func(c *Config) { c.Batch.Workers = 0 },
		"upscale":  func(c *Config) { c.Decode.MinUpscaleSide = -5 },
		"loglevel": func(c *Config) { c.LogLevel = "" },
	} {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Decode.CharacterSet = "Shift_JIS"
	cfg.Server.Port = 8500
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(&cfg, path))

	loaded, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestDecodeOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Decode.PureBarcode = true
	opts := cfg.DecodeOptions()
	assert.True(t, opts.PureBarcode)
	assert.True(t, opts.Allows(pdf417go.FormatPDF417))
	assert.False(t, opts.Allows(pdf417go.FormatQRCode))
}
