// Package config loads runtime configuration for the translator CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   API base URL, e.g. http://localhost:8080/api
//	-o string   same-origin root; "/api" is appended
//	-s string   session store: sqlite or redis
//	-d string   SQLite DSN
//	-r string   Redis address
//	-i int      health check interval (seconds)
//	-m string   address to serve /metrics on; empty disables it
//	-l string   log level: debug, info, warn, error
//
// Environment
//
//	GENZ_API_URL, GENZ_ORIGIN, GENZ_STORE, GENZ_REDIS_ADDR, GENZ_LOG_LEVEL
//
// # JSON schema
//
// Intervals go through timex.Duration, so they can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://genz.example/api",
//	  "store": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_prefix": "genz",
//	  "health_check_interval": "30s",
//	  "log_format": "json"
//	}
//
// Fields absent from the file keep their earlier value.
package config
