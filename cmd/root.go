package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gitscrub",
		Usage:   "Scrub through the history of a Git repository",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ServeCmd(),
			CommitsCmd(),
			TreeCmd(),
			ShowCmd(),
			DiffCmd(),
			StatsCmd(),
		},
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to the repository or one of its subdirectories (default: config or DEFAULT_REPO)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include in trees (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude from trees (can be specified multiple times)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Number of concurrent stat readers",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (trace, debug, info, warn, error)",
		},
	}
}

// Flags of commands that print a report.
func reportFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	)
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
