// Toolcall is a development client for MCP tool servers. It starts a server
// command (or connects to a streamable HTTP endpoint), then lists its tools
// or calls one tool and prints the result.
//
//	toolcall -list -- calculator
//	toolcall -tool divide -args '{"a":1,"b":0}' -- calculator
//	toolcall -url http://localhost:8081 -tool get_location -args '{"location":"Oslo"}'
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/germanamz/toolservers/pkg/tools/mcpclient"
	"github.com/germanamz/toolservers/pkg/tools/toolbox"
)

type options struct {
	url     string
	list    bool
	tool    string
	args    json.RawMessage
	command []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "toolcall: %v\n", err)
		return 2
	}

	client, err := connect(ctx, opts)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "toolcall: %v\n", err)
		return 1
	}
	defer func() { _ = client.Close() }()

	if opts.list {
		return list(ctx, client, stdout, stderr)
	}

	result, err := client.CallTool(ctx, opts.tool, opts.args)
	if err != nil {
		var te *toolbox.Error
		if errors.As(err, &te) {
			_, _ = fmt.Fprintf(stderr, "%s (%d): %s\n", te.Category, te.Category.Code(), te.Message)
		} else {
			_, _ = fmt.Fprintf(stderr, "toolcall: %v\n", err)
		}
		return 1
	}

	_, _ = fmt.Fprintln(stdout, result)

	return 0
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("toolcall", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: toolcall [flags] [-- command [args...]]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	url := fs.String("url", "", "streamable HTTP endpoint of a running server")
	list := fs.Bool("list", false, "list the server's tools")
	tool := fs.String("tool", "", "tool to call")
	rawArgs := fs.String("args", "{}", "tool arguments as a JSON object")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{
		url:     *url,
		list:    *list,
		tool:    *tool,
		args:    json.RawMessage(*rawArgs),
		command: fs.Args(),
	}

	switch {
	case opts.url == "" && len(opts.command) == 0:
		return options{}, errors.New("a server command or -url is required")
	case opts.url != "" && len(opts.command) > 0:
		return options{}, errors.New("-url and a server command are mutually exclusive")
	case !opts.list && opts.tool == "":
		return options{}, errors.New("-tool or -list is required")
	case !json.Valid(opts.args):
		return options{}, fmt.Errorf("-args is not valid JSON: %s", *rawArgs)
	}

	return opts, nil
}

func connect(ctx context.Context, opts options) (*mcpclient.MCPClient, error) {
	if opts.url != "" {
		return mcpclient.NewHTTP(ctx, opts.url)
	}

	return mcpclient.New(ctx, nil, opts.command[0], opts.command[1:]...)
}

func list(ctx context.Context, client *mcpclient.MCPClient, stdout, stderr io.Writer) int {
	tools, err := client.ListTools(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "toolcall: %v\n", err)
		return 1
	}

	for _, t := range tools {
		_, _ = fmt.Fprintf(stdout, "%s\t%s\n", t.Name, t.Description)
	}

	return 0
}
