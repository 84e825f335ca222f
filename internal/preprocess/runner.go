package preprocess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// ErrToolNotFound is returned when the preprocessing executable cannot be
// launched at all
var ErrToolNotFound = errors.New("preprocess: tool not found")

// ToolError reports a tool run that exited with a non-zero status.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
}

// Error returns the error message.
func (e *ToolError) Error() string {
	msg := fmt.Sprintf("preprocess: %s exited with status %d", e.Tool, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Runner executes the external preprocessing tool. Run blocks until the tool
// exits.
type Runner interface {
	Run(ctx context.Context, tool string, args ...string) error
}

// ExecRunner runs the tool as a subprocess.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run launches tool with args and waits for it.
func (r *ExecRunner) Run(ctx context.Context, tool string, args ...string) error {
	cmd := exec.CommandContext(ctx, tool, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ToolError{
			Tool:     tool,
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
		}
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %v", ErrToolNotFound, tool, err)
	}

	return fmt.Errorf("failed to execute %s: %w", tool, err)
}
