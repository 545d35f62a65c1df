package cmd

import (
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitscrub/config"
	"github.com/masmgr/gitscrub/internal/git"
	"github.com/masmgr/gitscrub/internal/output"
)

// CommandContext holds common state for command execution.
type CommandContext struct {
	Config   *config.Config
	Log      logze.Logger
	Analyzer *git.Analyzer
}

// NewCommandContext loads the configuration, applies flag overrides,
// initializes logging and creates the analyzer of the selected repository.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logze.Init(logze.C().WithConsole().WithLevel(cfg.Log.Level))
	log := logze.With("command", c.Command.Name)

	return &CommandContext{
		Config:   cfg,
		Log:      log,
		Analyzer: newAnalyzer(cfg, cfg.Repository.DefaultPath, log),
	}, nil
}

// loadConfig loads configuration from file and environment, then applies CLI overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, errm.Wrap(err, "load config")
	}

	overrides := config.Config{
		Repository: config.RepositoryConfig{DefaultPath: c.String("repo")},
		History:    config.HistoryConfig{Workers: c.Int("workers")},
		Filters: config.FilterConfig{
			Include: c.StringSlice("include"),
			Exclude: c.StringSlice("exclude"),
		},
		Log: config.LogConfig{Level: c.String("log-level")},
	}
	if c.IsSet("port") {
		overrides.Server.Port = c.Int("port")
	}
	if c.IsSet("host") {
		overrides.Server.Host = c.String("host")
	}

	if err := cfg.Merge(overrides); err != nil {
		return nil, errm.Wrap(err, "apply flags")
	}
	return cfg, nil
}

func newAnalyzer(cfg *config.Config, repo string, log logze.Logger) *git.Analyzer {
	return git.NewAnalyzer(git.Options{
		RepoPath:  repo,
		StatWidth: cfg.History.StatWidth,
		Workers:   cfg.History.Workers,
		Include:   cfg.Filters.Include,
		Exclude:   cfg.Filters.Exclude,
	}, log)
}

// OutputOptions creates OutputOptions from CLI flags.
// Without --output reports go to the application's writer.
func OutputOptions(c *cli.Context) output.OutputOptions {
	opts := output.OutputOptions{
		Format:     output.ParseFormat(c.String("format")),
		Top:        c.Int("limit"),
		OutputPath: c.String("output"),
	}
	if opts.OutputPath == "" {
		opts.Writer = c.App.Writer
	}
	return opts
}
