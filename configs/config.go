// Package configs loads server configuration from environment variables
// (prefix WXBRIEF_) merged over an optional YAML file. Environment always
// wins over the file; the file wins over built-in defaults.
package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Built-in provider defaults.
const (
	DefaultWeatherBaseURL = "https://aviationweather.gov/api"
	DefaultDATISBaseURL   = "https://datis.clowd.io/api"
	DefaultUserAgent      = "wxbrief/1.0"
)

// FileConfig is the structure of the optional YAML configuration file.
type FileConfig struct {
	Providers struct {
		AviationWeather string `yaml:"aviation_weather"`
		DATIS           string `yaml:"datis"`
	} `yaml:"providers"`
	UserAgent string `yaml:"user_agent"`
}

// Config is the final application configuration.
type Config struct {
	// ConfigFilePath points at the YAML file. The default path is allowed to
	// be absent; an explicitly configured path is not.
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	ListenAddr        string        `envconfig:"LISTEN_ADDR" default:":8080"`
	ProbeAddr         string        `envconfig:"PROBE_ADDR" default:":8081"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`

	// Upstream providers. Defaulted in code so the YAML file can override
	// them without being stomped by the env pass.
	WeatherBaseURL string `envconfig:"WEATHER_BASE_URL"`
	DATISBaseURL   string `envconfig:"DATIS_BASE_URL"`
	UserAgent      string `envconfig:"USER_AGENT"`

	OtelExporterOtlpEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string `envconfig:"LOG_LEVEL" default:"info"`
}

const defaultConfigPath = "configs/wxbrief.yaml"

// ParsedLogLevel returns the slog.Level for the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load processes environment variables, merges the YAML file underneath
// them, and fills remaining gaps with built-in defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("wxbrief", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	path := cfg.ConfigFilePath
	strict := path != ""
	if path == "" {
		path = defaultConfigPath
	}

	var fileCfg FileConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
		slog.Info("Loaded configuration file.", "path", path)
	case os.IsNotExist(err) && !strict:
		// Default path, file absent: env and defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if cfg.WeatherBaseURL == "" {
		cfg.WeatherBaseURL = fileCfg.Providers.AviationWeather
	}
	if cfg.DATISBaseURL == "" {
		cfg.DATISBaseURL = fileCfg.Providers.DATIS
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fileCfg.UserAgent
	}

	if cfg.WeatherBaseURL == "" {
		cfg.WeatherBaseURL = DefaultWeatherBaseURL
	}
	if cfg.DATISBaseURL == "" {
		cfg.DATISBaseURL = DefaultDATISBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	cfg.WeatherBaseURL = strings.TrimRight(cfg.WeatherBaseURL, "/")
	cfg.DATISBaseURL = strings.TrimRight(cfg.DATISBaseURL, "/")

	return &cfg, nil
}
