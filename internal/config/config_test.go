package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	require.Equal(t, "https://country-leaders.onrender.com", cfg.API.BaseURL)
	require.Equal(t, FormatJSON, cfg.Output.Format)
	require.Equal(t, 1, cfg.Scraper.Workers)
	require.False(t, cfg.Cache.Enabled)
}

func TestOutputPathDerivation(t *testing.T) {
	// Bare names land in the default output directory, extension per format.
	o := OutputConfig{Path: "leaders_data"}
	require.Equal(t, filepath.Join("outputs", "leaders_data.json"), o.JSONPath())
	require.Equal(t, filepath.Join("outputs", "leaders_data.csv"), o.CSVPath())

	// Explicit directories are kept, and existing extensions replaced.
	o = OutputConfig{Path: filepath.Join("data", "run.csv")}
	require.Equal(t, filepath.Join("data", "run.json"), o.JSONPath())
	require.Equal(t, filepath.Join("data", "run.csv"), o.CSVPath())

	o = OutputConfig{}
	require.Equal(t, filepath.Join("outputs", "leaders_data.json"), o.JSONPath())
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	yaml := `
api:
  timeoutSeconds: 5
scraper:
  workers: 4
  limitPerCountry: 2
output:
  format: both
`
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	t.Setenv(configPathEnv, file)
	t.Setenv(apiBaseURLEnv, "http://localhost:9999")
	t.Setenv(cachePathEnv, filepath.Join(dir, "bio.db"))

	cfg := Load()

	// File values override defaults, env overrides both.
	require.Equal(t, 5, cfg.API.TimeoutSeconds)
	require.Equal(t, 4, cfg.Scraper.Workers)
	require.Equal(t, 2, cfg.Scraper.LimitPerCountry)
	require.Equal(t, FormatBoth, cfg.Output.Format)
	require.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	require.True(t, cfg.Cache.Enabled)

	// Untouched keys keep their defaults.
	require.Equal(t, "/cookie", cfg.API.CookiePath)
}

func TestLoadBrokenFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("not: [valid"), 0o644))

	t.Setenv(configPathEnv, file)

	cfg := Load()
	require.Equal(t, defaultConfig().API.BaseURL, cfg.API.BaseURL)
}

func TestTimeoutFallback(t *testing.T) {
	require.Equal(t, "20s", APIConfig{}.Timeout().String())
	require.Equal(t, "5s", APIConfig{TimeoutSeconds: 5}.Timeout().String())
	require.Equal(t, "20s", ScraperConfig{TimeoutSeconds: -1}.Timeout().String())
}
