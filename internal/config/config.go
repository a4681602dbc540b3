package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "LEADERS_SCRAPER_CONFIG"
	apiBaseURLEnv = "LEADERS_API_BASE_URL"
	cachePathEnv  = "LEADERS_CACHE_PATH"
	logLevelEnv   = "LEADERS_LOG_LEVEL"

	defaultOutputDir = "outputs"
)

// Output format selectors.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatBoth = "both"
)

// Config holds high-level settings required across the application.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Scraper ScraperConfig `yaml:"scraper"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig describes the country-leaders API endpoints.
type APIConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	CookiePath     string `yaml:"cookiePath"`
	CountriesPath  string `yaml:"countriesPath"`
	LeadersPath    string `yaml:"leadersPath"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	UserAgent      string `yaml:"userAgent"`
}

// Timeout resolves the per-request API timeout.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// ScraperConfig tunes biography enrichment.
type ScraperConfig struct {
	Workers         int `yaml:"workers"`
	LimitPerCountry int `yaml:"limitPerCountry"`
	TimeoutSeconds  int `yaml:"timeoutSeconds"`
}

// Timeout resolves the per-article fetch timeout.
func (s ScraperConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// CacheConfig describes the optional sqlite biography cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// OutputConfig selects the export format and target path. Path is used as a
// base name; the extension is replaced per format so "both" mode writes
// sibling .json and .csv files.
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// JSONPath resolves the JSON output file path.
func (o OutputConfig) JSONPath() string { return o.pathFor(".json") }

// CSVPath resolves the CSV output file path.
func (o OutputConfig) CSVPath() string { return o.pathFor(".csv") }

func (o OutputConfig) pathFor(ext string) string {
	p := o.Path
	if p == "" {
		p = "leaders_data"
	}
	p = strings.TrimSuffix(p, filepath.Ext(p))
	// Bare file names land in the default output directory.
	if !strings.ContainsRune(p, os.PathSeparator) {
		p = filepath.Join(defaultOutputDir, p)
	}
	return p + ext
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiBaseURLEnv); v != "" {
		c.API.BaseURL = v
	}

	if v := os.Getenv(cachePathEnv); v != "" {
		c.Cache.Path = v
		c.Cache.Enabled = true
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.API.BaseURL != "" {
		base.API.BaseURL = override.API.BaseURL
	}
	if override.API.CookiePath != "" {
		base.API.CookiePath = override.API.CookiePath
	}
	if override.API.CountriesPath != "" {
		base.API.CountriesPath = override.API.CountriesPath
	}
	if override.API.LeadersPath != "" {
		base.API.LeadersPath = override.API.LeadersPath
	}
	if override.API.TimeoutSeconds > 0 {
		base.API.TimeoutSeconds = override.API.TimeoutSeconds
	}
	if override.API.UserAgent != "" {
		base.API.UserAgent = override.API.UserAgent
	}

	if override.Scraper.Workers > 0 {
		base.Scraper.Workers = override.Scraper.Workers
	}
	if override.Scraper.LimitPerCountry > 0 {
		base.Scraper.LimitPerCountry = override.Scraper.LimitPerCountry
	}
	if override.Scraper.TimeoutSeconds > 0 {
		base.Scraper.TimeoutSeconds = override.Scraper.TimeoutSeconds
	}

	if override.Cache.Enabled {
		base.Cache.Enabled = true
	}
	if override.Cache.Path != "" {
		base.Cache.Path = override.Cache.Path
	}

	if override.Output.Format != "" {
		base.Output.Format = override.Output.Format
	}
	if override.Output.Path != "" {
		base.Output.Path = override.Output.Path
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "https://country-leaders.onrender.com",
			CookiePath:     "/cookie",
			CountriesPath:  "/countries",
			LeadersPath:    "/leaders",
			TimeoutSeconds: 20,
			UserAgent:      "LeadersScraper/1.0",
		},
		Scraper: ScraperConfig{
			Workers:        1,
			TimeoutSeconds: 20,
		},
		Cache: CacheConfig{
			Enabled: false,
			Path:    filepath.Join(defaultOutputDir, "biographies.db"),
		},
		Output: OutputConfig{
			Format: FormatJSON,
			Path:   "leaders_data",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
