package config

import (
	"time"

	"github.com/dmitrijs2005/genzclient/internal/client/httpclient"
)

// Store backends for the durable session slot.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// Config holds runtime settings for the translator CLI.
//
// APIBaseURL wins over Origin when both are set; see BaseURL.
// HealthCheckInterval is how often the client probes /health.
type Config struct {
	APIBaseURL          string
	Origin              string
	Store               string
	SQLiteDSN           string
	RedisAddr           string
	RedisPrefix         string
	HealthCheckInterval time.Duration
	MetricsAddr         string
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.Origin = ""
	c.Store = StoreSQLite
	c.SQLiteDSN = "genz.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "genz"
	c.HealthCheckInterval = 30 * time.Second
	c.MetricsAddr = ""
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// BaseURL resolves the API base from APIBaseURL, then Origin, then the
// localhost default.
func (c *Config) BaseURL() string {
	return httpclient.ResolveBaseURL(c.APIBaseURL, c.Origin)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
