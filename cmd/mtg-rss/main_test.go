package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/styler3/mtg-rss/config"
)

// Test helper: isolate the test from the caller's environment
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"MTGRSS_CONFIG", "MTGRSS_OUTPUT", "MTGRSS_FORMAT", "MTGRSS_FETCH_TIMEOUT", "MTGRSS_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestParseFlags(t *testing.T) {
	clearEnv(t)

	opts, err := parseFlags([]string{"-output", "out.xml", "-format", "atom", "-timeout", "5s", "-log-level", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "out.xml", opts.output)
	assert.Equal(t, "atom", opts.format)
	assert.Equal(t, 5*time.Second, opts.timeout)
	assert.Equal(t, "debug", opts.logLevel)
	assert.Empty(t, opts.configPath)
}

// TestParseFlags_Environment verifies environment variables provide defaults
func TestParseFlags_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("MTGRSS_OUTPUT", "/srv/www/feed.xml")
	t.Setenv("MTGRSS_FETCH_TIMEOUT", "12s")

	opts, err := parseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, "/srv/www/feed.xml", opts.output)
	assert.Equal(t, 12*time.Second, opts.timeout)
}

func TestParseFlags_UnexpectedArgument(t *testing.T) {
	clearEnv(t)

	_, err := parseFlags([]string{"feed.xml"})
	assert.Error(t, err)
}

// TestLoadConfig_Defaults verifies a missing default config file is fine
func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig(&options{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

// TestLoadConfig_Overrides verifies flags win over the config file
func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feed:\n  output: from-file.xml\n  format: json\n"), 0o644))

	cfg, err := loadConfig(&options{configPath: path, output: "from-flag.xml", timeout: 3 * time.Second})
	require.NoError(t, err)

	assert.Equal(t, "from-flag.xml", cfg.Feed.Output)
	assert.Equal(t, "json", cfg.Feed.Format)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
}

// TestLoadConfig_InvalidOverride verifies overrides are validated
func TestLoadConfig_InvalidOverride(t *testing.T) {
	clearEnv(t)

	_, err := loadConfig(&options{format: "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid feed format")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := loadConfig(&options{configPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}
