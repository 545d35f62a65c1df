package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestResolvePrefix_Root(t *testing.T) {
	repo := newTestRepo(t)
	if got := ResolvePrefix(repo.dir); got != "" {
		t.Errorf("ResolvePrefix(root) = %q, expected empty", got)
	}
}

func TestResolvePrefix_NotARepository(t *testing.T) {
	if got := ResolvePrefix(t.TempDir()); got != "" {
		t.Errorf("ResolvePrefix(non-repo) = %q, expected empty", got)
	}
	if got := ResolvePrefix(filepath.Join(t.TempDir(), "missing")); got != "" {
		t.Errorf("ResolvePrefix(missing) = %q, expected empty", got)
	}
}

func TestResolvePrefix_Idempotent(t *testing.T) {
	repo := newTestRepo(t)

	rapid.Check(t, func(t *rapid.T) {
		segs := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 4).Draw(t, "segments")
		dir := filepath.Join(append([]string{repo.dir}, segs...)...)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}

		first := ResolvePrefix(dir)
		second := ResolvePrefix(dir)
		if first != second {
			t.Fatalf("ResolvePrefix not idempotent: %q then %q", first, second)
		}
		if expected := strings.Join(segs, "/"); first != expected {
			t.Fatalf("ResolvePrefix = %q, expected %q", first, expected)
		}
	})
}

func TestAnalyzer_Prefix_Cached(t *testing.T) {
	repo := newTestRepo(t)
	repo.write("libs/core/a.txt", "a\n")
	repo.commit("initial")

	a := repo.analyzer("libs/core")
	if got := a.Prefix(); got != "libs/core" {
		t.Fatalf("Prefix = %q, expected libs/core", got)
	}

	// Moving the directory away must not change the cached value.
	if err := os.RemoveAll(filepath.Join(repo.dir, "libs")); err != nil {
		t.Fatal(err)
	}
	if got := a.Prefix(); got != "libs/core" {
		t.Errorf("Prefix after removal = %q, expected cached libs/core", got)
	}
}

func TestAnalyzer_Subdirectory(t *testing.T) {
	repo := newTestRepo(t)
	repo.write("libs/core/a.txt", lines(2))
	repo.write("libs/core/nested/n.txt", lines(1))
	repo.write("other/b.txt", lines(3))
	first := repo.commit("initial")

	repo.write("libs/core/a.txt", lines(3))
	repo.write("other/b.txt", lines(5))
	second := repo.commit("update both")

	a := repo.analyzer("libs/core")
	ctx := context.Background()

	if got := a.Prefix(); got != "libs/core" {
		t.Fatalf("Prefix = %q, expected libs/core", got)
	}

	tree, err := a.BuildTree(ctx, second)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if CountFiles(tree) != 2 {
		t.Fatalf("CountFiles = %d, expected 2", CountFiles(tree))
	}
	if tree.Children[0].Path != "nested" || tree.Children[1].Path != "a.txt" {
		t.Errorf("children = %q, %q; expected nested, a.txt", tree.Children[0].Path, tree.Children[1].Path)
	}

	content, err := a.Content(ctx, first, "a.txt")
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if content != lines(2) {
		t.Errorf("content = %q, expected %q", content, lines(2))
	}

	if _, err := a.Content(ctx, first, "other/b.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Content(other/b.txt) err = %v, expected ErrNotFound", err)
	}

	commits, err := a.ListCommits(ctx)
	if err != nil {
		t.Fatalf("ListCommits: %v", err)
	}
	for _, c := range commits {
		for _, f := range c.Stats.Files {
			if strings.HasPrefix(f.Path, "other/") || strings.HasPrefix(f.Path, "libs/") {
				t.Errorf("commit %s stat path %q not relative to the subdirectory", c.ShortHash, f.Path)
			}
		}
	}
	if got := commits[1].Stats; got.FilesChanged != 1 || got.Files[0].Path != "a.txt" {
		t.Errorf("second commit stats = %+v, expected only a.txt", got)
	}

	diff, err := a.Diff(ctx, first, second, "")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(diff.Files) != 1 || diff.Files[0].Path != "a.txt" {
		t.Errorf("diff files = %+v, expected only a.txt", diff.Files)
	}
}

func TestToRepoPath(t *testing.T) {
	tests := []struct {
		prefix, rel, expected string
	}{
		{"", "a.txt", "a.txt"},
		{"libs/core", "a.txt", "libs/core/a.txt"},
		{"libs/core", "/x/y.go", "libs/core/x/y.go"},
	}
	for _, tt := range tests {
		if got := toRepoPath(tt.prefix, tt.rel); got != tt.expected {
			t.Errorf("toRepoPath(%q, %q) = %q, expected %q", tt.prefix, tt.rel, got, tt.expected)
		}
	}
}

func TestStripPrefix(t *testing.T) {
	paths := []string{"libs/core/a.txt", "libs/core-extra/b.txt", "libs/core/x/c.txt", "other/d.txt"}
	got := stripPrefix("libs/core", paths)
	if strings.Join(got, ",") != "a.txt,x/c.txt" {
		t.Errorf("stripPrefix = %v, expected [a.txt x/c.txt]", got)
	}
	if len(stripPrefix("", paths)) != len(paths) {
		t.Error("empty prefix should keep every path")
	}
}
