package output

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/masmgr/gitscrub/internal/git"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONWriter writes reports as indented JSON documents.
type JSONWriter struct{}

// WriteCommits outputs the commit listing as JSON.
func (w *JSONWriter) WriteCommits(report *CommitsResponse, options OutputOptions) error {
	out := *report
	out.Commits = limitTop(report.Commits, options.Top)
	if out.Commits == nil {
		out.Commits = []git.Commit{}
	}
	return writeJSON(out, options)
}

// WriteTree outputs the tree as JSON.
func (w *JSONWriter) WriteTree(report *TreeResponse, options OutputOptions) error {
	return writeJSON(report, options)
}

// WriteContent outputs the file content as JSON.
func (w *JSONWriter) WriteContent(report *ContentResponse, options OutputOptions) error {
	return writeJSON(report, options)
}

// WriteDiff outputs the diff as JSON.
func (w *JSONWriter) WriteDiff(report *DiffResponse, options OutputOptions) error {
	return writeJSON(report, options)
}

// WriteSummary outputs the summary as JSON.
func (w *JSONWriter) WriteSummary(report *git.Summary, options OutputOptions) error {
	return writeJSON(report, options)
}

func writeJSON(data interface{}, options OutputOptions) error {
	dst, closer, err := openOutputWriter(options)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	encoder := json.NewEncoder(dst)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
