// Weather is an MCP tool server proxying the OpenWeatherMap API. It requires
// OPENWEATHER_API_KEY in the environment or a .env file and refuses to start
// without it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/germanamz/toolservers/pkg/config"
	"github.com/germanamz/toolservers/pkg/tools/toolbox"
	"github.com/germanamz/toolservers/pkg/toolserver"
	"github.com/germanamz/toolservers/pkg/weather"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var app = toolserver.App{
	Name:         weather.Name,
	Version:      version,
	Instructions: weather.Instructions,
	Build:        build,
}

func build(cfg *config.Config, opts ...toolbox.Option) (*toolbox.ToolBox, error) {
	if err := cfg.RequireWeather(); err != nil {
		return nil, err
	}

	return weather.Tools(weather.NewClient(&cfg.Weather, nil), opts...), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := toolserver.Main(ctx, app, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
