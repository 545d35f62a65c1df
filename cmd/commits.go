package cmd

import (
	"github.com/maxbolgarin/errm"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitscrub/internal/output"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	flags := append(reportFlags(),
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Number of commits to show, 0 for all",
		},
	)

	return &cli.Command{
		Name:    "commits",
		Aliases: []string{"log"},
		Usage:   "List every commit oldest first with per-file change statistics",
		Flags:   flags,
		Action:  commitsAction,
	}
}

func commitsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	a := ctx.Analyzer
	if err := a.Validate(c.Context); err != nil {
		return errm.Wrap(err, "open repository", "repo", a.RepoPath())
	}

	commits, err := a.ListCommits(c.Context)
	if err != nil {
		return errm.Wrap(err, "list commits")
	}

	return writeCommits(c, &output.CommitsResponse{
		Commits:    commits,
		PathPrefix: a.Prefix(),
		Repository: a.RepoPath(),
	})
}
