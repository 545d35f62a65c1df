package git

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestParseStats_SingleLine(t *testing.T) {
	stats := ParseStats("src/app.js | 8 +++++---")
	if stats.FilesChanged != 1 {
		t.Fatalf("FilesChanged = %d, expected 1", stats.FilesChanged)
	}
	got := stats.Files[0]
	expected := FileChange{Path: "src/app.js", Changes: 8, Additions: 5, Deletions: 3}
	if got != expected {
		t.Errorf("file = %+v, expected %+v", got, expected)
	}
}

func TestParseStats_GitOutput(t *testing.T) {
	text := strings.Join([]string{
		" README.md           |    3 ++-",
		" assets/logo.png     |  Bin 0 -> 1520 bytes",
		" internal/big.go     | 1200 ++++++++++++++++++++---",
		" removed.txt         |    2 --",
		" 4 files changed, 1201 insertions(+), 4 deletions(-)",
		"",
	}, "\n")

	stats := ParseStats(text)
	if stats.FilesChanged != 3 {
		t.Fatalf("FilesChanged = %d, expected 3", stats.FilesChanged)
	}

	tests := []FileChange{
		{Path: "README.md", Changes: 3, Additions: 2, Deletions: 1},
		{Path: "internal/big.go", Changes: 1200, Additions: 20, Deletions: 3},
		{Path: "removed.txt", Changes: 2, Additions: 0, Deletions: 2},
	}
	for i, expected := range tests {
		if stats.Files[i] != expected {
			t.Errorf("Files[%d] = %+v, expected %+v", i, stats.Files[i], expected)
		}
	}
}

func TestParseStats_PathWithSpaces(t *testing.T) {
	stats := ParseStats(" docs/read me.txt | 4 ++++")
	if stats.FilesChanged != 1 {
		t.Fatalf("FilesChanged = %d, expected 1", stats.FilesChanged)
	}
	if stats.Files[0].Path != "docs/read me.txt" {
		t.Errorf("Path = %q, expected %q", stats.Files[0].Path, "docs/read me.txt")
	}
}

func TestParseStats_Empty(t *testing.T) {
	stats := ParseStats("")
	if stats.FilesChanged != 0 {
		t.Errorf("FilesChanged = %d, expected 0", stats.FilesChanged)
	}
	if stats.Files == nil {
		t.Error("Files should be empty, not nil")
	}
}

func TestParseStats_CountsMatchedLines(t *testing.T) {
	matched := rapid.Custom(func(t *rapid.T) string {
		path := rapid.StringMatching(`[a-z]{1,8}(/[a-z]{1,8}){0,2}\.go`).Draw(t, "path")
		n := rapid.IntRange(0, 9999).Draw(t, "n")
		graph := rapid.StringMatching(`[+-]{1,30}`).Draw(t, "graph")
		return fmt.Sprintf(" %s | %d %s", path, n, graph)
	})
	unmatched := rapid.SampledFrom([]string{
		" image.png | Bin 0 -> 1520 bytes",
		" 2 files changed, 3 insertions(+)",
		"",
		"   ",
	})

	rapid.Check(t, func(t *rapid.T) {
		good := rapid.SliceOfN(matched, 0, 20).Draw(t, "good")
		bad := rapid.SliceOfN(unmatched, 0, 10).Draw(t, "bad")

		all := append(append([]string{}, good...), bad...)
		order := rapid.Permutation(all).Draw(t, "order")

		stats := ParseStats(strings.Join(order, "\n"))
		if stats.FilesChanged != len(good) {
			t.Fatalf("FilesChanged = %d, expected %d", stats.FilesChanged, len(good))
		}
		if len(stats.Files) != stats.FilesChanged {
			t.Fatalf("len(Files) = %d, FilesChanged = %d", len(stats.Files), stats.FilesChanged)
		}
		for _, f := range stats.Files {
			if f.Additions+f.Deletions == 0 {
				t.Fatalf("file %q has an empty graph", f.Path)
			}
		}
	})
}
