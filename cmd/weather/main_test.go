package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/germanamz/toolservers/pkg/config"
	"github.com/germanamz/toolservers/pkg/toolserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingAPIKeyExitsBeforeServing(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	var stdout, stderr bytes.Buffer
	args := []string{"-env", filepath.Join(t.TempDir(), "missing.env")}
	code := toolserver.Main(context.Background(), app, args, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, toolserver.ExitError, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "OPENWEATHER_API_KEY")
}

func TestBuildWithKey(t *testing.T) {
	cfg := config.Default()
	cfg.Weather.APIKey = "k"

	tb, err := build(&cfg)
	require.NoError(t, err)

	_, ok := tb.Get("get_current_weather")
	assert.True(t, ok)
}

func TestBuildWithoutKey(t *testing.T) {
	cfg := config.Default()

	_, err := build(&cfg)
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}
