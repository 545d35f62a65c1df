package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitscrub/internal/git"
	"github.com/masmgr/gitscrub/internal/output"
)

func writeCommits(c *cli.Context, report *output.CommitsResponse) error {
	opts := OutputOptions(c)
	return output.NewReportWriter(opts.Format).WriteCommits(report, opts)
}

func writeTree(c *cli.Context, report *output.TreeResponse) error {
	opts := OutputOptions(c)
	return output.NewReportWriter(opts.Format).WriteTree(report, opts)
}

func writeContent(c *cli.Context, report *output.ContentResponse) error {
	opts := OutputOptions(c)
	return output.NewReportWriter(opts.Format).WriteContent(report, opts)
}

func writeDiff(c *cli.Context, report *output.DiffResponse) error {
	opts := OutputOptions(c)
	return output.NewReportWriter(opts.Format).WriteDiff(report, opts)
}

func writeSummary(c *cli.Context, report *git.Summary) error {
	opts := OutputOptions(c)
	return output.NewReportWriter(opts.Format).WriteSummary(report, opts)
}
