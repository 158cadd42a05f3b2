package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Stockly CLI.
type Config struct {
	ServerBaseURL   string
	RequestTimeout  time.Duration
	CacheDBPath     string
	CredentialsPath string
}

// LoadDefaults populates c with sensible defaults. State files live under
// ~/.stockly; when the home directory cannot be resolved they fall back to
// the current directory.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second

	dir := "."
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".stockly")
	}
	c.CacheDBPath = filepath.Join(dir, "cache.db")
	c.CredentialsPath = filepath.Join(dir, "credentials.json")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
