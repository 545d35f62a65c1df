package git

import (
	"errors"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// openRepository opens the repository containing dir, walking up to find .git.
func openRepository(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return nil, ErrNotARepository
	}
	if err != nil {
		return nil, repoError("open repository", err)
	}
	return repo, nil
}

// repositoryRoot returns the top-level working directory of the repository containing dir.
func repositoryRoot(dir string) (string, error) {
	repo, err := openRepository(dir)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", repoError("resolve worktree", err)
	}
	return wt.Filesystem.Root(), nil
}

// ResolvePrefix returns the forward-slash path of dir relative to the top
// of its repository, or "" when dir is the root. Any failure yields "".
func ResolvePrefix(dir string) string {
	root, err := repositoryRoot(dir)
	if err != nil {
		return ""
	}

	abs, err := canonicalPath(dir)
	if err != nil {
		return ""
	}
	top, err := canonicalPath(root)
	if err != nil {
		return ""
	}

	rel, err := filepath.Rel(top, abs)
	if err != nil || rel == "." {
		return ""
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}

func canonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return filepath.Clean(abs), nil
}

// toRepoPath turns a path relative to the analyzed directory into a full repository path.
func toRepoPath(prefix, rel string) string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	if prefix == "" {
		return rel
	}
	return prefix + "/" + rel
}

// stripPrefix keeps only paths under prefix and returns them relative to it.
func stripPrefix(prefix string, paths []string) []string {
	if prefix == "" {
		return paths
	}
	base := prefix + "/"
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasPrefix(p, base) {
			out = append(out, p[len(base):])
		}
	}
	return out
}
