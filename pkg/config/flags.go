package config

import "flag"

// ParseFlags parses command-line args and returns the layered Config.
// Flags only override the file and environment when they are given
// explicitly.
func ParseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	configPath := fs.String("config", "", "path to a YAML configuration file")
	envFile := fs.String("env", ".env", "path to .env file (ignored if missing)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	transport := fs.String("transport", "", "transport type: stdio or http")
	httpAddr := fs.String("http-addr", "", "listen address for the http transport")
	callTimeout := fs.Duration("call-timeout", 0, "per tool call timeout (0 disables)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := LoadDotEnv(*envFile); err != nil {
		return Config{}, err
	}

	cfg, err := Load(*configPath)
	if err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = *logLevel
		case "transport":
			cfg.Transport = *transport
		case "http-addr":
			cfg.HTTPAddr = *httpAddr
		case "call-timeout":
			cfg.CallTimeout = *callTimeout
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
