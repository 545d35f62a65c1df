package git

import (
	"regexp"
	"strconv"
	"strings"
)

// statLineRe matches "<path> | <N> <+/- graph>" lines of git's --stat output.
var statLineRe = regexp.MustCompile(`^\s*(.+?)\s+\|\s+(\d+)\s+([+-]+)$`)

// ParseStats parses the per-file lines of a --stat summary.
// Lines that do not match, such as binary files and the totals line, are skipped.
func ParseStats(text string) ChangeStats {
	files := make([]FileChange, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		m := statLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		changes, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		files = append(files, FileChange{
			Path:      m[1],
			Changes:   changes,
			Additions: strings.Count(m[3], "+"),
			Deletions: strings.Count(m[3], "-"),
		})
	}
	return ChangeStats{FilesChanged: len(files), Files: files}
}
