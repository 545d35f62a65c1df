package git

import (
	"context"
	"fmt"
)

// Content returns the content of path, relative to the analyzed directory, as recorded at commit.
func (a *Analyzer) Content(_ context.Context, commit, path string) (string, error) {
	full := toRepoPath(a.Prefix(), path)

	tree, err := a.commitTree(commit)
	if err != nil {
		return "", repoError("read "+full+" at "+commit, err)
	}

	entry, err := tree.FindEntry(full)
	if err != nil || !entry.Mode.IsFile() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	file, err := tree.TreeEntryFile(entry)
	if err != nil {
		return "", repoError("read "+full+" at "+commit, err)
	}

	content, err := file.Contents()
	if err != nil {
		return "", repoError("read "+full+" at "+commit, err)
	}
	return content, nil
}
