package git

import (
	"context"
	"io"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// BuildTree builds a directory tree from repository-relative paths.
// Directories precede files among siblings and each group is ordered by name.
func BuildTree(paths []string) *TreeNode {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	root := &TreeNode{Name: RootName, Type: NodeDirectory, Children: []*TreeNode{}}
	dirs := map[string]*TreeNode{"": root}

	for _, p := range sorted {
		if p == "" {
			continue
		}
		segments := strings.Split(p, "/")
		parent := root
		for i, seg := range segments {
			current := strings.Join(segments[:i+1], "/")
			if i == len(segments)-1 {
				parent.Children = append(parent.Children, &TreeNode{
					Name: seg,
					Path: current,
					Type: NodeFile,
				})
				break
			}
			dir, ok := dirs[current]
			if !ok {
				dir = &TreeNode{Name: seg, Path: current, Type: NodeDirectory, Children: []*TreeNode{}}
				dirs[current] = dir
				parent.Children = append(parent.Children, dir)
			}
			parent = dir
		}
	}

	sortChildren(root)
	return root
}

func sortChildren(n *TreeNode) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return a.Name < b.Name
	})
	for _, c := range n.Children {
		if c.IsDir() {
			sortChildren(c)
		}
	}
}

// CountFiles returns the number of file nodes below n.
func CountFiles(n *TreeNode) int {
	if n == nil {
		return 0
	}
	if !n.IsDir() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += CountFiles(c)
	}
	return total
}

// BuildTree returns the tree of files tracked at commit, relative to the analyzed directory.
func (a *Analyzer) BuildTree(ctx context.Context, commit string) (*TreeNode, error) {
	paths, err := a.trackedPaths(ctx, commit)
	if err != nil {
		return nil, err
	}

	paths = stripPrefix(a.Prefix(), paths)

	if len(a.opts.Include) > 0 || len(a.opts.Exclude) > 0 {
		filtered := paths[:0:0]
		for _, p := range paths {
			ok, err := a.matchesFilters(p)
			if err != nil {
				return nil, repoError("filter tree", err)
			}
			if ok {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	return BuildTree(paths), nil
}

// Stats summarizes the tree at commit.
func (a *Analyzer) Stats(ctx context.Context, commit string) (*Summary, error) {
	tree, err := a.BuildTree(ctx, commit)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Commit:     commit,
		TotalFiles: CountFiles(tree),
		Timestamp:  nowMillis(),
	}, nil
}

// trackedPaths lists every non-directory entry recorded in commit's tree,
// submodule links included.
func (a *Analyzer) trackedPaths(_ context.Context, commit string) ([]string, error) {
	tree, err := a.commitTree(commit)
	if err != nil {
		return nil, repoError("list tree", err)
	}

	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()

	var paths []string
	for {
		name, entry, err := walker.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, repoError("list tree", err)
		}
		if entry.Mode == filemode.Dir {
			continue
		}
		paths = append(paths, name)
	}
	return paths, nil
}

// commitTree resolves a revision to the root tree of its commit.
func (a *Analyzer) commitTree(commit string) (*object.Tree, error) {
	repo, err := openRepository(a.opts.RepoPath)
	if err != nil {
		return nil, err
	}
	return resolveTree(repo, commit)
}

func resolveTree(repo *gogit.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, err
	}
	c, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}
	return c.Tree()
}
