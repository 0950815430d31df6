// Package runner executes the collaborator CLIs (inventory and notification
// tools) as blocking subprocesses. Every call is synchronous; there is never
// more than one outstanding external command.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

type ExecOptions struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes bin with args, streaming the tool's output directly to the
// configured writers (stdout/stderr of the process by default).
func Run(bin string, args []string, opts ExecOptions) error {
	return RunContext(context.Background(), bin, args, opts)
}

// RunContext is Run with an explicit context.
func RunContext(ctx context.Context, bin string, args []string, opts ExecOptions) error {
	if bin == "" {
		return fmt.Errorf("no command binary configured")
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// Capture executes bin with args and returns combined stdout+stderr.
func Capture(bin string, args []string) (string, error) {
	return CaptureContext(context.Background(), bin, args)
}

// CaptureContext is Capture with an explicit context.
func CaptureContext(ctx context.Context, bin string, args []string) (string, error) {
	if bin == "" {
		return "", fmt.Errorf("no command binary configured")
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}

// CaptureWithTimeout is Capture bounded by timeout. A non-positive timeout
// means no bound.
func CaptureWithTimeout(bin string, args []string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		return Capture(bin, args)
	}
	if bin == "" {
		return "", fmt.Errorf("no command binary configured")
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, bin, args...)
	b, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return string(b), fmt.Errorf("%s timed out after %s", bin, timeout)
	}
	return string(b), err
}
