package config

import (
	"flag"
	"os"

	"github.com/acadium/dashboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string     local store path (SQLite file or ":memory:")
//	-d string     Postgres DSN of the remote service
//	-t duration   cache validity window, e.g. 30m
//	-l string     log level: debug, info, warn, error
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-d", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "local store path")
	fs.StringVar(&cfg.PostgresDSN, "d", cfg.PostgresDSN, "postgres DSN")
	fs.DurationVar(&cfg.CacheTTL, "t", cfg.CacheTTL, "cache validity window")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
