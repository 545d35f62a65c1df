package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/masmgr/gitscrub/internal/git"
)

const messageWidth = 60

var (
	headerColor   = color.New(color.FgGreen, color.Bold)
	hashColor     = color.New(color.FgYellow)
	dirColor      = color.New(color.FgBlue, color.Bold)
	hunkColor     = color.New(color.FgCyan)
	additionColor = color.New(color.FgGreen)
	deletionColor = color.New(color.FgRed)
)

// ConsoleWriter writes human-readable reports.
type ConsoleWriter struct{}

// WriteCommits prints the commit listing, oldest first.
func (w *ConsoleWriter) WriteCommits(report *CommitsResponse, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) {
		headerColor.Fprintln(out, "Commit History")
		fmt.Fprintf(out, "Repository: %s\n", report.Repository)
		if report.PathPrefix != "" {
			fmt.Fprintf(out, "Subdirectory: %s\n", report.PathPrefix)
		}
		fmt.Fprintf(out, "Total commits: %d\n\n", len(report.Commits))

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tCommit\tDate\tAuthor\tFiles\t+/-\tMessage")
		for i, c := range limitTop(report.Commits, options.Top) {
			adds, dels := 0, 0
			for _, f := range c.Stats.Files {
				adds += f.Additions
				dels += f.Deletions
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t+%d/-%d\t%s\n",
				i+1,
				hashColor.Sprint(c.ShortHash),
				formatMillis(c.Timestamp),
				c.Author,
				c.Stats.FilesChanged,
				adds,
				dels,
				truncateMessage(c.Message, messageWidth),
			)
		}
		tw.Flush()
	})
}

// WriteTree prints the tree with one entry per line.
func (w *ConsoleWriter) WriteTree(report *TreeResponse, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) {
		headerColor.Fprintf(out, "Tree at %s\n", report.Commit)
		printTree(out, report.Tree, "")
		fmt.Fprintf(out, "\n%d files\n", git.CountFiles(report.Tree))
	})
}

func printTree(out io.Writer, n *git.TreeNode, indent string) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		if c.IsDir() {
			dirColor.Fprintf(out, "%s%s/\n", indent, c.Name)
			printTree(out, c, indent+"  ")
			continue
		}
		fmt.Fprintf(out, "%s%s\n", indent, c.Name)
	}
}

// WriteContent prints the raw file content.
func (w *ConsoleWriter) WriteContent(report *ContentResponse, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) {
		fmt.Fprint(out, report.Content)
	})
}

// WriteDiff prints the diff hunk by hunk with colored markers.
func (w *ConsoleWriter) WriteDiff(report *DiffResponse, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) {
		headerColor.Fprintf(out, "Diff %s..%s\n", report.From, report.To)
		if report.Diff == nil || len(report.Diff.Files) == 0 {
			fmt.Fprintln(out, "No changes.")
			return
		}
		for _, f := range report.Diff.Files {
			fmt.Fprintf(out, "\n%s\n", color.New(color.Bold).Sprint(f.Path))
			for _, h := range f.Hunks {
				hunkColor.Fprintln(out, h.Header)
				for _, c := range h.Changes {
					switch c.Type {
					case git.ChangeAddition:
						additionColor.Fprintln(out, "+"+c.Content)
					case git.ChangeDeletion:
						deletionColor.Fprintln(out, "-"+c.Content)
					default:
						fmt.Fprintln(out, " "+c.Content)
					}
				}
			}
		}
	})
}

// WriteSummary prints the file count of a commit.
func (w *ConsoleWriter) WriteSummary(report *git.Summary, options OutputOptions) error {
	return withOutput(options, func(out io.Writer) {
		headerColor.Fprintln(out, "Commit Summary")
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Commit:\t%s\n", report.Commit)
		fmt.Fprintf(tw, "Total files:\t%d\n", report.TotalFiles)
		fmt.Fprintf(tw, "Computed at:\t%s\n", formatMillis(report.Timestamp))
		tw.Flush()
	})
}

func withOutput(options OutputOptions, write func(io.Writer)) error {
	out, closer, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	write(out)
	if closer != nil {
		return closer.Close()
	}
	return nil
}
