package cmd

import (
	"github.com/maxbolgarin/errm"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitscrub/internal/output"
)

func commitFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "commit",
		Usage: "Commit hash or revision",
		Value: "HEAD",
	}
}

// TreeCmd returns the tree command.
func TreeCmd() *cli.Command {
	return &cli.Command{
		Name:   "tree",
		Usage:  "Show the file tree of a commit",
		Flags:  append(reportFlags(), commitFlag()),
		Action: treeAction,
	}
}

// ShowCmd returns the show command.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"cat"},
		Usage:     "Print a file's content at a commit",
		ArgsUsage: "[path]",
		Flags: append(reportFlags(), commitFlag(),
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "File path relative to the analyzed directory",
			},
		),
		Action: showAction,
	}
}

// StatsCmd returns the stats command.
func StatsCmd() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Count the files of a commit's tree",
		Flags:  append(reportFlags(), commitFlag()),
		Action: statsAction,
	}
}

func treeAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	commit := c.String("commit")
	tree, err := ctx.Analyzer.BuildTree(c.Context, commit)
	if err != nil {
		return errm.Wrap(err, "build tree", "commit", commit)
	}
	return writeTree(c, &output.TreeResponse{Tree: tree, Commit: commit})
}

func showAction(c *cli.Context) error {
	path := c.String("path")
	if path == "" {
		path = c.Args().First()
	}
	if path == "" {
		return errm.New("missing file path: use --path or pass it as an argument")
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	commit := c.String("commit")
	content, err := ctx.Analyzer.Content(c.Context, commit, path)
	if err != nil {
		return errm.Wrap(err, "read file", "commit", commit, "path", path)
	}
	return writeContent(c, &output.ContentResponse{Content: content, Commit: commit, Path: path})
}

func statsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	commit := c.String("commit")
	summary, err := ctx.Analyzer.Stats(c.Context, commit)
	if err != nil {
		return errm.Wrap(err, "summarize commit", "commit", commit)
	}
	return writeSummary(c, summary)
}
