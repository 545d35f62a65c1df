package cmd

import (
	"github.com/maxbolgarin/errm"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitscrub/internal/git"
	"github.com/masmgr/gitscrub/internal/output"
)

// DiffCmd returns the diff command.
func DiffCmd() *cli.Command {
	flags := append(reportFlags(),
		&cli.StringFlag{
			Name:  "from",
			Usage: "Older revision",
		},
		&cli.StringFlag{
			Name:  "to",
			Usage: "Newer revision (default: HEAD)",
		},
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "Restrict the diff to one path",
		},
	)

	return &cli.Command{
		Name:      "diff",
		Usage:     "Show the structured diff between two commits",
		ArgsUsage: "[from..to]",
		Flags:     flags,
		Action:    diffAction,
	}
}

// diffRange resolves the compared revisions from a positional range or the --from/--to flags.
func diffRange(c *cli.Context) (from, to string, err error) {
	if spec := c.Args().First(); spec != "" {
		return git.ParseDiffSpec(spec)
	}

	from, to = c.String("from"), c.String("to")
	if from == "" {
		return "", "", errm.New("missing from revision: use --from or a from..to argument")
	}
	if to == "" {
		to = "HEAD"
	}
	return from, to, nil
}

func diffAction(c *cli.Context) error {
	from, to, err := diffRange(c)
	if err != nil {
		return err
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	path := c.String("path")
	diff, err := ctx.Analyzer.Diff(c.Context, from, to, path)
	if err != nil {
		return errm.Wrap(err, "diff", "from", from, "to", to)
	}
	return writeDiff(c, &output.DiffResponse{Diff: diff, From: from, To: to, Path: path})
}
