package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/maxbolgarin/logze/v2"
)

// testRepo is a throwaway repository driven through the git CLI.
type testRepo struct {
	t       *testing.T
	dir     string
	commits int
	base    time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	r := &testRepo{
		t:    t,
		dir:  t.TempDir(),
		base: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	r.git("init", "-b", "main")
	return r
}

func (r *testRepo) git(args ...string) string {
	r.t.Helper()
	when := r.base.Add(time.Duration(r.commits) * time.Hour).Format(time.RFC3339)
	cmd := exec.Command("git", append([]string{"-C", r.dir, "-c", "commit.gpgsign=false"}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test",
		"GIT_COMMITTER_EMAIL=test@test.com",
		"GIT_AUTHOR_DATE="+when,
		"GIT_COMMITTER_DATE="+when,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v: %s", args, err, string(out))
	}
	return strings.TrimSpace(string(out))
}

func (r *testRepo) write(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatal(err)
	}
}

// commit stages everything and commits it, returning the new hash.
func (r *testRepo) commit(msg string) string {
	r.t.Helper()
	r.git("add", "-A")
	r.git("commit", "--allow-empty", "-m", msg)
	r.commits++
	return r.git("rev-parse", "HEAD")
}

func (r *testRepo) analyzer(sub string) *Analyzer {
	return NewAnalyzer(Options{
		RepoPath: filepath.Join(r.dir, filepath.FromSlash(sub)),
		Workers:  4,
	}, testLogger())
}

func testLogger() logze.Logger {
	return logze.Nop()
}

func lines(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return b.String()
}
