package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/maxbolgarin/lang"
)

const (
	fileDelimiter = "diff --git"
	hunkMarker    = "@@"
)

var diffHeaderRe = regexp.MustCompile(`a/(.+?) b/(.+)`)

// ParseDiffSpec splits a "from..to" range into its revisions. An empty
// right side means HEAD. Three-dot ranges are rejected: Diff compares the
// two commits directly and has no merge-base form.
func ParseDiffSpec(spec string) (from, to string, err error) {
	spec = strings.TrimSpace(spec)
	if strings.Contains(spec, "...") {
		return "", "", fmt.Errorf("unsupported diff spec %q: use 'from..to'", spec)
	}

	from, to, ok := strings.Cut(spec, "..")
	if !ok {
		return "", "", fmt.Errorf("invalid diff spec %q: expected 'from..to'", spec)
	}
	if from == "" {
		return "", "", fmt.Errorf("invalid diff spec %q: missing from revision", spec)
	}
	return from, lang.Check(to, "HEAD"), nil
}

// checkRevision rejects revisions the git command line would take as options.
func checkRevision(rev string) error {
	if rev == "" || strings.HasPrefix(rev, "-") {
		return fmt.Errorf("%w: %q", ErrInvalidRevision, rev)
	}
	return nil
}

// Diff returns the structured diff between two commits, optionally restricted
// to path (relative to the analyzed directory).
func (a *Analyzer) Diff(ctx context.Context, from, to, path string) (*Diff, error) {
	for _, rev := range []string{from, to} {
		if err := checkRevision(rev); err != nil {
			return nil, err
		}
	}

	args := []string{
		"diff",
		"--no-color",
		"--no-ext-diff",
	}
	if a.Prefix() != "" {
		args = append(args, "--relative")
	}
	args = append(args, from, to)
	if path != "" {
		// git -C resolves pathspecs against the analyzed directory.
		args = append(args, "--", path)
	}

	out, err := runGit(ctx, a.opts.RepoPath, args...)
	if err != nil {
		return nil, repoError("diff "+from+".."+to, err)
	}
	return ParseDiff(string(out)), nil
}

// ParseDiff parses unified diff text into files, hunks and line changes.
// File blocks without an "a/<path> b/<path>" header are skipped, as are
// lines outside hunks and lines without a change marker.
func ParseDiff(text string) *Diff {
	diff := &Diff{Files: []FileDiff{}}

	blocks := strings.Split(text, fileDelimiter)
	for _, block := range blocks[1:] {
		lines := strings.Split(block, "\n")
		m := diffHeaderRe.FindStringSubmatch(lines[0])
		if m == nil {
			continue
		}

		file := FileDiff{Path: m[2], Hunks: []Hunk{}}
		var current *Hunk

		for _, line := range lines[1:] {
			if strings.HasPrefix(line, hunkMarker) {
				if current != nil {
					file.Hunks = append(file.Hunks, *current)
				}
				current = &Hunk{Header: line, Changes: []LineChange{}}
				continue
			}
			if current == nil || line == "" {
				continue
			}

			var kind ChangeType
			switch line[0] {
			case '+':
				kind = ChangeAddition
			case '-':
				kind = ChangeDeletion
			case ' ':
				kind = ChangeContext
			default:
				continue
			}
			current.Changes = append(current.Changes, LineChange{Type: kind, Content: line[1:]})
		}

		if current != nil {
			file.Hunks = append(file.Hunks, *current)
		}
		diff.Files = append(diff.Files, file)
	}

	return diff
}
