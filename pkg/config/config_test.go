package config

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"TOOLSERVER_LOG_LEVEL",
		"TOOLSERVER_TRANSPORT",
		"TOOLSERVER_HTTP_ADDR",
		"TOOLSERVER_CALL_TIMEOUT",
		"TOOLSERVER_OTEL_ENDPOINT",
		"TOOLSERVER_OTEL_DISABLED",
		"OPENWEATHER_API_KEY",
		"OPENWEATHER_BASE_URL",
		"OPENWEATHER_UNITS",
		"OPENWEATHER_LANG",
		"OPENWEATHER_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, 10*time.Second, cfg.CallTimeout)
	assert.Equal(t, DefaultWeatherBaseURL, cfg.Weather.BaseURL)
	assert.Empty(t, cfg.Weather.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("MY_KEY", "from-env-ref")

	path := writeFile(t, "config.yaml", `
log_level: debug
transport: http
http_addr: 127.0.0.1:9000
call_timeout: 3s
weather:
  api_key: ${MY_KEY}
  units: metric
  lang: de
  timeout: 2s
telemetry:
  endpoint: http://collector:4318
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.CallTimeout)
	assert.Equal(t, "from-env-ref", cfg.Weather.APIKey)
	assert.Equal(t, "metric", cfg.Weather.Units)
	assert.Equal(t, "de", cfg.Weather.Lang)
	assert.Equal(t, 2*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, DefaultWeatherBaseURL, cfg.Weather.BaseURL, "unset keys keep defaults")
	assert.Equal(t, "http://collector:4318", cfg.Telemetry.Endpoint)
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "env-key")
	t.Setenv("TOOLSERVER_CALL_TIMEOUT", "750ms")

	path := writeFile(t, "config.yaml", "call_timeout: 3s\nweather:\n  api_key: file-key\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Weather.APIKey)
	assert.Equal(t, 750*time.Millisecond, cfg.CallTimeout)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: load")
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "bad.yaml", "transport: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown transport", func(c *Config) { c.Transport = "carrier-pigeon" }, "unknown transport"},
		{"http without addr", func(c *Config) { c.Transport = TransportHTTP; c.HTTPAddr = "" }, "http_addr"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
		{"negative timeout", func(c *Config) { c.CallTimeout = -time.Second }, "call_timeout"},
		{"bad units", func(c *Config) { c.Weather.Units = "kelvin" }, "units"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestRequireWeather(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.RequireWeather(), ErrMissingAPIKey)

	cfg.Weather.APIKey = "   "
	assert.ErrorIs(t, cfg.RequireWeather(), ErrMissingAPIKey)

	cfg.Weather.APIKey = "secret"
	assert.NoError(t, cfg.RequireWeather())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("OPENWEATHER_API_KEY"))

	path := writeFile(t, ".env", "OPENWEATHER_API_KEY=dotenv-key\n")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "dotenv-key", os.Getenv("OPENWEATHER_API_KEY"))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestParseFlagsDefaults(t *testing.T) {
	clearEnv(t)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseFlags(fs, []string{"-env", filepath.Join(t.TempDir(), "none.env")})
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlagsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOOLSERVER_TRANSPORT", "stdio")
	t.Setenv("TOOLSERVER_LOG_LEVEL", "warn")

	path := writeFile(t, "config.yaml", "http_addr: file-addr:1\n")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseFlags(fs, []string{
		"-env", filepath.Join(t.TempDir(), "none.env"),
		"-config", path,
		"-transport", "http",
		"-http-addr", "flag-addr:2",
		"-call-timeout", "5s",
	})
	require.NoError(t, err)

	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, "flag-addr:2", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout)
	assert.Equal(t, "warn", cfg.LogLevel, "env value kept when flag is absent")
}

func TestParseFlagsRejectsInvalid(t *testing.T) {
	clearEnv(t)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	_, err := ParseFlags(fs, []string{
		"-env", filepath.Join(t.TempDir(), "none.env"),
		"-transport", "smoke-signal",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}
