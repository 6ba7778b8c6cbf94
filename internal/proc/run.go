package proc

import (
	"context"
	"os/exec"
)

// Run executes a short-lived tool synchronously and returns its combined
// output. The child is killed when ctx is cancelled. A non-zero exit is
// returned alongside the output, since several of the tools exit non-zero
// while still printing the result the caller needs.
func Run(ctx context.Context, tool string, args ...string) (string, error) {
	if _, err := exec.LookPath(tool); err != nil {
		return "", &SpawnError{Tool: tool, Err: err}
	}

	cmd := exec.CommandContext(ctx, tool, args...)
	out, err := cmd.CombinedOutput()
	if cerr := ctx.Err(); cerr != nil {
		return string(out), cerr
	}
	return string(out), err
}
