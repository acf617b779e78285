package config

import (
	"os"
	"strings"
)

const (
	EnvAPIURL    = "GENZ_API_URL"
	EnvOrigin    = "GENZ_ORIGIN"
	EnvStore     = "GENZ_STORE"
	EnvRedisAddr = "GENZ_REDIS_ADDR"
	EnvLogLevel  = "GENZ_LOG_LEVEL"
)

// parseEnv overlays Config with non-blank environment variables.
func parseEnv(cfg *Config) {
	cfg.APIBaseURL = envString(EnvAPIURL, cfg.APIBaseURL)
	cfg.Origin = envString(EnvOrigin, cfg.Origin)
	cfg.Store = envString(EnvStore, cfg.Store)
	cfg.RedisAddr = envString(EnvRedisAddr, cfg.RedisAddr)
	cfg.LogLevel = envString(EnvLogLevel, cfg.LogLevel)
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
