package config

import (
	"flag"
)

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("momo", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TaskFile, "file", cfg.TaskFile, "Path to task file")
	fs.BoolVar(&cfg.Lock, "lock", cfg.Lock, "Lock the task file during load and save")
	fs.StringVar(&cfg.Prompt, "prompt", cfg.Prompt, "Interactive prompt")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error, fatal)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in logs")

	return fs.Parse(args)
}
