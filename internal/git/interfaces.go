package git

import "context"

// HistoryExtractor is the read-only view of a repository's history.
// This abstraction allows the HTTP and CLI layers to be tested without a real repository.
type HistoryExtractor interface {
	// Validate reports ErrNotARepository when the analyzed directory is not in a repository.
	Validate(ctx context.Context) error
	// Prefix returns the analyzed directory relative to the repository root.
	Prefix() string
	ListCommits(ctx context.Context) ([]Commit, error)
	BuildTree(ctx context.Context, commit string) (*TreeNode, error)
	Content(ctx context.Context, commit, path string) (string, error)
	Diff(ctx context.Context, from, to, path string) (*Diff, error)
	Stats(ctx context.Context, commit string) (*Summary, error)
}

// Compile-time interface conformance check.
var _ HistoryExtractor = (*Analyzer)(nil)
