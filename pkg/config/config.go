// Package config loads the immutable configuration of a tool server.
//
// Values are layered, each layer overriding the previous one:
//
//  1. built-in defaults ([Default]);
//  2. an optional YAML file, with ${VAR} references expanded from the environment;
//  3. environment variables (a .env file is loaded into the environment first);
//  4. command-line flags.
//
// The resulting [Config] is built once at startup and passed by pointer to
// the components that need it. Nothing mutates it afterwards.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Transports a server can listen on.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// DefaultWeatherBaseURL is the OpenWeatherMap API address.
const DefaultWeatherBaseURL = "http://api.openweathermap.org"

// ErrMissingAPIKey is returned by RequireWeather when no weather API key is configured.
var ErrMissingAPIKey = errors.New("config: OPENWEATHER_API_KEY is not set")

// Config is the top-level server configuration.
type Config struct {
	LogLevel    string        `yaml:"log_level"    env:"TOOLSERVER_LOG_LEVEL"`
	Transport   string        `yaml:"transport"    env:"TOOLSERVER_TRANSPORT"`
	HTTPAddr    string        `yaml:"http_addr"    env:"TOOLSERVER_HTTP_ADDR"`
	CallTimeout time.Duration `yaml:"call_timeout" env:"TOOLSERVER_CALL_TIMEOUT"` // Per tool call; 0 disables.
	Weather     Weather       `yaml:"weather"`
	Telemetry   Telemetry     `yaml:"telemetry"`
}

// Weather holds the OpenWeatherMap client settings.
type Weather struct {
	APIKey  string        `yaml:"api_key"  env:"OPENWEATHER_API_KEY"` //nolint:gosec // configuration field, not a hardcoded secret
	BaseURL string        `yaml:"base_url" env:"OPENWEATHER_BASE_URL"`
	Units   string        `yaml:"units"    env:"OPENWEATHER_UNITS"` // standard, metric or imperial; empty leaves the API default.
	Lang    string        `yaml:"lang"     env:"OPENWEATHER_LANG"`
	Timeout time.Duration `yaml:"timeout"  env:"OPENWEATHER_TIMEOUT"`
}

// Telemetry holds OpenTelemetry tracing settings. Tracing is off unless
// Endpoint is set.
type Telemetry struct {
	Endpoint string `yaml:"endpoint" env:"TOOLSERVER_OTEL_ENDPOINT"`
	Disabled bool   `yaml:"disabled" env:"TOOLSERVER_OTEL_DISABLED"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:    "info",
		Transport:   TransportStdio,
		HTTPAddr:    "localhost:8081",
		CallTimeout: 10 * time.Second,
		Weather: Weather{
			BaseURL: DefaultWeatherBaseURL,
			Timeout: 10 * time.Second,
		},
	}
}

// LoadDotEnv loads a .env file into the process environment. A missing file
// is not an error. Variables already set in the environment win.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: load env file: %w", err)
	}

	return nil
}

// Load builds a Config from the defaults, the YAML file at path (skipped when
// path is empty), and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
		if err != nil {
			return Config{}, fmt.Errorf("config: load: %w", err)
		}

		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("config: unknown transport %q (want %s or %s)", c.Transport, TransportStdio, TransportHTTP)
	}

	if c.Transport == TransportHTTP && c.HTTPAddr == "" {
		return fmt.Errorf("config: http_addr is required for the http transport")
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.CallTimeout < 0 {
		return fmt.Errorf("config: call_timeout must not be negative")
	}

	switch c.Weather.Units {
	case "", "standard", "metric", "imperial":
	default:
		return fmt.Errorf("config: unknown weather units %q", c.Weather.Units)
	}

	return nil
}

// RequireWeather reports whether the weather settings are usable.
func (c Config) RequireWeather() error {
	if strings.TrimSpace(c.Weather.APIKey) == "" {
		return ErrMissingAPIKey
	}

	if c.Weather.BaseURL == "" {
		return fmt.Errorf("config: weather base_url is required")
	}

	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("config: unknown log level %q", name)
	}

	return level, nil
}
