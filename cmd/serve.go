package cmd

import (
	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitscrub/internal/git"
	"github.com/masmgr/gitscrub/internal/server"
)

// ServeCmd returns the serve command.
func ServeCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:  "host",
			Usage: "Interface to listen on (default: all)",
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"P"},
			Usage:   "Port to listen on (default: config or PORT, then 3000)",
		},
	)

	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve the history API over HTTP until interrupted",
		Flags:  flags,
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	cfg := ctx.Config

	app := contem.New(
		contem.WithLogger(logze.DefaultPtr()),
		contem.WithBaseContext(c.Context),
		contem.WithShutdownTimeout(cfg.Server.ShutdownTimeout()),
	)

	srv, err := server.New(*cfg, func(repo string) git.HistoryExtractor {
		return newAnalyzer(cfg, repo, ctx.Log)
	}, ctx.Log)
	if err != nil {
		return err
	}
	if err := srv.Start(app); err != nil {
		return err
	}
	app.Add(srv.Stop)

	ctx.Log.Info("serving repository history", "default_repo", cfg.Repository.DefaultPath)
	app.Wait()

	if err := app.Shutdown(); err != nil {
		return errm.Wrap(err, "shutdown")
	}
	return nil
}
