// Calculator is an MCP tool server exposing basic arithmetic over stdio.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/germanamz/toolservers/pkg/calculator"
	"github.com/germanamz/toolservers/pkg/config"
	"github.com/germanamz/toolservers/pkg/tools/toolbox"
	"github.com/germanamz/toolservers/pkg/toolserver"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var app = toolserver.App{
	Name:         calculator.Name,
	Version:      version,
	Instructions: calculator.Instructions,
	Build: func(_ *config.Config, opts ...toolbox.Option) (*toolbox.ToolBox, error) {
		return calculator.Tools(opts...), nil
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := toolserver.Main(ctx, app, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
