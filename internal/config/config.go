package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Sources SourcesConfig
	Cache   CacheConfig
	Output  OutputConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	RateLimit int // requests per second, global
}

type SourcesConfig struct {
	FireURL       string
	EarthquakeURL string
	HTTPTimeout   time.Duration
}

type CacheConfig struct {
	FirePath string // raw CSV is written here before parsing
}

type OutputConfig struct {
	Dir         string
	PlotlyJSURL string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "localhost"),
			Port:      getEnvInt("SERVER_PORT", 8080),
			RateLimit: getEnvInt("SERVER_RATE_LIMIT", 5),
		},
		Sources: SourcesConfig{
			FireURL:       getEnv("FIRE_URL", "https://raw.githubusercontent.com/ehmatthes/pcc_2e/master/chapter_16/mapping_global_data_sets/data/world_fires_1_day.csv"),
			EarthquakeURL: getEnv("EARTHQUAKE_URL", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"),
			HTTPTimeout:   getEnvDuration("HTTP_TIMEOUT", 15*time.Second),
		},
		Cache: CacheConfig{
			FirePath: getEnv("FIRE_CACHE_PATH", "world_fires_1_day.csv"),
		},
		Output: OutputConfig{
			Dir:         getEnv("OUTPUT_DIR", "."),
			PlotlyJSURL: getEnv("PLOTLY_JS_URL", "https://cdn.plot.ly/plotly-2.35.2.min.js"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimit < 1 {
		return fmt.Errorf("server rate limit must be at least 1 req/s")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	for name, raw := range map[string]string{"FIRE_URL": c.Sources.FireURL, "EARTHQUAKE_URL": c.Sources.EarthquakeURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %q", name, raw)
		}
	}

	if c.Sources.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive")
	}
	if c.Cache.FirePath == "" {
		return fmt.Errorf("FIRE_CACHE_PATH must not be empty")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
