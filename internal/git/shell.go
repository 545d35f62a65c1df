package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandContext builds the git processes. Tests may replace it.
var CommandContext = exec.CommandContext

// runGit runs git in dir and returns its stdout.
// Stderr is kept separate so warnings never leak into parsed output.
func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)

	eb := &bytes.Buffer{}
	ob := &bytes.Buffer{}
	cmd.Stderr = eb
	cmd.Stdout = ob

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(eb.String()))
	}
	return ob.Bytes(), nil
}
