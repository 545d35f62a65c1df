package output

import (
	"io"

	"github.com/masmgr/gitscrub/internal/git"
)

// Compile-time interface conformance checks.
var (
	_ ReportWriter = (*ConsoleWriter)(nil)
	_ ReportWriter = (*JSONWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
)

// ParseFormat maps a flag value to an OutputFormat, defaulting to console.
func ParseFormat(s string) OutputFormat {
	switch s {
	case "json":
		return FormatJSON
	default:
		return FormatConsole
	}
}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int    // limit for commit listings, 0 means all
	OutputPath string // file to write to, stdout when empty
	Writer     io.Writer
}

// CommitsResponse is the commit listing, shared by the CLI and the HTTP API.
type CommitsResponse struct {
	Commits    []git.Commit `json:"commits"`
	PathPrefix string       `json:"pathPrefix"`
	Repository string       `json:"repository"`
}

// TreeResponse is the tree of one commit.
type TreeResponse struct {
	Tree   *git.TreeNode `json:"tree"`
	Commit string        `json:"commit"`
}

// ContentResponse is a file's content at one commit.
type ContentResponse struct {
	Content string `json:"content"`
	Commit  string `json:"commit"`
	Path    string `json:"path"`
}

// DiffResponse is the structured diff between two commits.
type DiffResponse struct {
	Diff *git.Diff `json:"diff"`
	From string    `json:"from"`
	To   string    `json:"to"`
	Path string    `json:"path"`
}

// ReportWriter renders extractor results.
type ReportWriter interface {
	WriteCommits(report *CommitsResponse, options OutputOptions) error
	WriteTree(report *TreeResponse, options OutputOptions) error
	WriteContent(report *ContentResponse, options OutputOptions) error
	WriteDiff(report *DiffResponse, options OutputOptions) error
	WriteSummary(report *git.Summary, options OutputOptions) error
}

// NewReportWriter creates a report writer for the specified format.
func NewReportWriter(format OutputFormat) ReportWriter {
	switch format {
	case FormatJSON:
		return &JSONWriter{}
	default:
		return &ConsoleWriter{}
	}
}
