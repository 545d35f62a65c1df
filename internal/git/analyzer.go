package git

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maxbolgarin/logze/v2"
)

const (
	defaultStatWidth = 1000
	shortHashLength  = 7
)

// nowMillis is the clock used for summaries.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// Analyzer extracts history, trees, contents and diffs from one directory.
// The directory may be a subdirectory of a repository; every path the
// Analyzer returns or accepts is relative to it.
type Analyzer struct {
	opts Options
	log  logze.Logger

	prefixOnce sync.Once
	prefix     string
}

// NewAnalyzer creates an analyzer for opts.RepoPath.
func NewAnalyzer(opts Options, log logze.Logger) *Analyzer {
	if opts.RepoPath == "" {
		opts.RepoPath = "."
	}
	if opts.StatWidth <= 0 {
		opts.StatWidth = defaultStatWidth
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU() * 2
	}
	return &Analyzer{
		opts: opts,
		log:  log.With("repo", opts.RepoPath),
	}
}

// RepoPath returns the analyzed directory.
func (a *Analyzer) RepoPath() string {
	return a.opts.RepoPath
}

// Prefix returns the cached path prefix of the analyzed directory, resolving it on first use.
func (a *Analyzer) Prefix() string {
	a.prefixOnce.Do(func() {
		a.prefix = ResolvePrefix(a.opts.RepoPath)
		if a.prefix != "" {
			a.log.Debug("analyzing repository subdirectory", "prefix", a.prefix)
		}
	})
	return a.prefix
}

// Validate checks that the analyzed directory is inside a Git repository.
func (a *Analyzer) Validate(_ context.Context) error {
	_, err := openRepository(a.opts.RepoPath)
	return err
}

// matchesFilters checks if a path matches the include/exclude filters.
func (a *Analyzer) matchesFilters(path string) (bool, error) {
	for _, pattern := range a.opts.Exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if matched {
			return false, nil
		}
	}

	if len(a.opts.Include) == 0 {
		return true, nil
	}

	for _, pattern := range a.opts.Include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}
