package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "leadgen.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Registry.TimeoutSecs)
	assert.Equal(t, 5, cfg.Registry.RetryDelaySecs)
	assert.Equal(t, 60, cfg.Registry.CaptchaDelaySecs)
	assert.Equal(t, 5, cfg.Registry.Workers)
	assert.Equal(t, 10, cfg.Registry.MinJitterSecs)
	assert.Equal(t, 30, cfg.Registry.MaxJitterSecs)
	assert.Equal(t, 2826, cfg.Serp.LocationCode)
	assert.Equal(t, 5, cfg.Serp.Depth)
	assert.Equal(t, "be.linkedin.com/in/", cfg.Serp.ProfileSite)
	assert.Equal(t, "https://api.scrapin.io", cfg.Scrapin.BaseURL)
	assert.Equal(t, "https://app.scrapingbee.com/api/v1", cfg.ScrapingBee.BaseURL)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 2008, cfg.Filter.NaceVersion)
	assert.Equal(t, []string{"582", "62", "63"}, cfg.Filter.IncludePrefixes)
	assert.Equal(t, []string{"0", "1", "2", "681", "682"}, cfg.Filter.ExcludePrefixes)
	assert.Equal(t, 2019, cfg.Filter.FoundingYearCutoff)
	assert.Equal(t, 5, cfg.Pipeline.Workers)
	assert.Equal(t, 25, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 60, cfg.Pipeline.ChunkPauseSecs)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
registry:
  workers: 2
  min_jitter_secs: 0
  max_jitter_secs: 1
filter:
  founding_year_cutoff: 2020
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Registry.Workers)
	assert.Equal(t, 2020, cfg.Filter.FoundingYearCutoff)
	// Defaults still apply for unset values
	assert.Equal(t, 25, cfg.Pipeline.ChunkSize)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LEADGEN_LOG_LEVEL", "warn")
	t.Setenv("LEADGEN_SCRAPIN_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "sk-test", cfg.Scrapin.Key)
}

func TestLoadCredentialsFromEnvOnly(t *testing.T) {
	// No config file: secrets arrive through the environment alone.
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("LEADGEN_SERP_AUTH", "Basic dXNlcjpwYXNz")
	t.Setenv("LEADGEN_SCRAPIN_KEY", "sk-scrapin")
	t.Setenv("LEADGEN_SCRAPINGBEE_KEY", "sk-bee")
	t.Setenv("LEADGEN_ANTHROPIC_KEY", "sk-ant")
	t.Setenv("LEADGEN_REGISTRY_PROXY_HOST", "proxy.example.com:8080")
	t.Setenv("LEADGEN_REGISTRY_PROXY_USERNAME", "proxyuser")
	t.Setenv("LEADGEN_REGISTRY_PROXY_PASSWORD", "proxypass")
	t.Setenv("LEADGEN_LOG_FILE", "leadgen.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Basic dXNlcjpwYXNz", cfg.Serp.Auth)
	assert.Equal(t, "sk-scrapin", cfg.Scrapin.Key)
	assert.Equal(t, "sk-bee", cfg.ScrapingBee.Key)
	assert.Equal(t, "sk-ant", cfg.Anthropic.Key)
	assert.Equal(t, "proxy.example.com:8080", cfg.Registry.ProxyHost)
	assert.Equal(t, "proxyuser", cfg.Registry.ProxyUsername)
	assert.Equal(t, "proxypass", cfg.Registry.ProxyPassword)
	assert.Equal(t, "leadgen.log", cfg.Log.File)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("LEADGEN_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
