package git

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/maxbolgarin/abstract"
	"github.com/panjf2000/ants/v2"
)

// Each commit header is prefixed by 0x1e (record separator) and its fields are
// NUL-separated, so subjects and bodies can hold any printable text.
const logFormat = "%x1e%H%x00%an%x00%ae%x00%cI%x00%s%x00%b"

// ListCommits returns every commit reachable from any reference, oldest first,
// each with its change statistics against its first parent.
func (a *Analyzer) ListCommits(ctx context.Context) ([]Commit, error) {
	timer := abstract.StartTimer()

	out, err := runGit(ctx, a.opts.RepoPath,
		"log",
		"--all",
		"--date-order",
		"--reverse",
		"--no-color",
		"--pretty=format:"+logFormat,
	)
	if err != nil {
		return nil, repoError("list commits", err)
	}

	commits, err := parseLog(out)
	if err != nil {
		return nil, repoError("list commits", err)
	}

	if err := a.attachStats(ctx, commits); err != nil {
		return nil, err
	}

	a.log.Debug("listed commits", "commits", len(commits), "elapsed", timer.ElapsedTime())
	return commits, nil
}

// parseLog parses the output of git log with logFormat.
// The result is stable-sorted by timestamp so that clock skew between a
// parent and its child never breaks chronological order.
func parseLog(out []byte) ([]Commit, error) {
	records := bytes.Split(out, []byte{0x1e})
	commits := make([]Commit, 0, len(records))

	for _, rec := range records {
		if len(bytes.TrimSpace(rec)) == 0 {
			continue
		}

		fields := bytes.SplitN(rec, []byte{0x00}, 6)
		if len(fields) < 6 {
			return nil, fmt.Errorf("unexpected git log record format")
		}

		hash := string(fields[0])
		when, err := time.Parse(time.RFC3339, string(fields[3]))
		if err != nil {
			return nil, fmt.Errorf("parse commit date: %w", err)
		}

		commits = append(commits, Commit{
			Hash:      hash,
			ShortHash: shortHash(hash),
			Author:    string(fields[1]),
			Email:     string(fields[2]),
			Date:      string(fields[3]),
			Timestamp: when.UnixMilli(),
			Message:   string(fields[4]),
			Body:      strings.TrimRight(string(fields[5]), "\n"),
			Stats:     ChangeStats{Files: []FileChange{}},
		})
	}

	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Timestamp < commits[j].Timestamp
	})
	return commits, nil
}

func shortHash(hash string) string {
	if len(hash) <= shortHashLength {
		return hash
	}
	return hash[:shortHashLength]
}

// attachStats fetches the stat summary of every commit on a worker pool.
// Results land in per-index slots, so completion order never leaks into the
// output. The first failure cancels the remaining work and fails the listing.
func (a *Analyzer) attachStats(ctx context.Context, commits []Commit) error {
	if len(commits) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool, err := ants.NewPool(a.opts.Workers)
	if err != nil {
		return repoError("start stats pool", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		firstErr error
	)
	fail := func(err error) {
		failOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	prefix := a.Prefix()
	for i := range commits {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			stats, err := a.commitStats(ctx, commits[i].Hash, prefix)
			if err != nil {
				fail(repoError("read stats of "+commits[i].ShortHash, err))
				return
			}
			commits[i].Stats = stats
		})
		if err != nil {
			wg.Done()
			fail(repoError("submit stats task", err))
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	// The parent context may have been cancelled before any task failed.
	if err := ctx.Err(); err != nil {
		return repoError("list commits", err)
	}
	return nil
}

// commitStats runs git show --stat for one commit. Root commits are diffed
// against the empty tree and merges against their first parent.
func (a *Analyzer) commitStats(ctx context.Context, hash, prefix string) (ChangeStats, error) {
	args := []string{
		"show",
		"--no-color",
		"--stat=" + strconv.Itoa(a.opts.StatWidth),
		"--format=",
		"--diff-merges=first-parent",
	}
	if prefix != "" {
		args = append(args, "--relative")
	}
	args = append(args, hash)

	out, err := runGit(ctx, a.opts.RepoPath, args...)
	if err != nil {
		return ChangeStats{}, err
	}
	return ParseStats(string(out)), nil
}
