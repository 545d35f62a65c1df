package git

import "context"

// MockExtractor is a test double for Analyzer.
// It returns predefined data without needing a real Git repository.
type MockExtractor struct {
	PathPrefix string
	Commits    []Commit
	Tree       *TreeNode
	Contents   map[string]string // keyed by path
	DiffResult *Diff
	Summary    *Summary
	Error      error // returned by every data operation
	InvalidErr error // returned by Validate
}

// Validate returns InvalidErr.
func (m *MockExtractor) Validate(_ context.Context) error {
	return m.InvalidErr
}

// Prefix returns PathPrefix.
func (m *MockExtractor) Prefix() string {
	return m.PathPrefix
}

// ListCommits returns the predefined commits or error.
func (m *MockExtractor) ListCommits(_ context.Context) ([]Commit, error) {
	return m.Commits, m.Error
}

// BuildTree returns the predefined tree or error.
func (m *MockExtractor) BuildTree(_ context.Context, _ string) (*TreeNode, error) {
	return m.Tree, m.Error
}

// Content returns the predefined content of path, or ErrNotFound.
func (m *MockExtractor) Content(_ context.Context, _ string, path string) (string, error) {
	if m.Error != nil {
		return "", m.Error
	}
	content, ok := m.Contents[path]
	if !ok {
		return "", ErrNotFound
	}
	return content, nil
}

// Diff returns the predefined diff or error.
func (m *MockExtractor) Diff(_ context.Context, _, _, _ string) (*Diff, error) {
	return m.DiffResult, m.Error
}

// Stats returns the predefined summary or error.
func (m *MockExtractor) Stats(_ context.Context, _ string) (*Summary, error) {
	return m.Summary, m.Error
}

// Compile-time interface conformance check.
var _ HistoryExtractor = (*MockExtractor)(nil)
