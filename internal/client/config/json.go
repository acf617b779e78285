package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/genzclient/internal/flagx"
	"github.com/dmitrijs2005/genzclient/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from "empty".
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	Origin              *string         `json:"origin"`
	Store               *string         `json:"store"`
	SQLiteDSN           *string         `json:"sqlite_dsn"`
	RedisAddr           *string         `json:"redis_addr"`
	RedisPrefix         *string         `json:"redis_prefix"`
	HealthCheckInterval *timex.Duration `json:"health_check_interval"`
	MetricsAddr         *string         `json:"metrics_addr"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Without either flag it does nothing. Read and unmarshal errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.Origin, jc.Origin)
	setString(&cfg.Store, jc.Store)
	setString(&cfg.SQLiteDSN, jc.SQLiteDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.HealthCheckInterval != nil {
		cfg.HealthCheckInterval = jc.HealthCheckInterval.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
