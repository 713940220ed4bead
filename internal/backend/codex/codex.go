// Package codex invokes the Codex CLI as a child process in reasoning-only
// mode: read-only sandbox, no repo awareness, no color, neutral working
// directory. Codex is the transport for the "chatgpt" backend.
package codex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"multireasoner/internal/backend"
	"multireasoner/internal/logging"
)

type Backend struct {
	// ExecPath is the codex binary name or path.
	ExecPath string
	// WorkDir is the directory the child process runs in. It is always a
	// neutral scratch location, never the caller's project directory, so
	// codex cannot pick up ambient repo context.
	WorkDir string
	// Extractor isolates the answer from codex's raw stdout.
	Extractor *Extractor
}

func New() *Backend {
	return &Backend{
		ExecPath:  "codex",
		WorkDir:   os.TempDir(),
		Extractor: NewExtractor(),
	}
}

var _ backend.Backend = (*Backend)(nil)

func init() {
	if err := backend.Register("chatgpt", New()); err != nil {
		panic(err)
	}
}

func (b *Backend) Name() string {
	return "chatgpt"
}

func (b *Backend) CheckAvailable() error {
	if strings.TrimSpace(b.ExecPath) == "" {
		return errors.New("codex executable path is empty")
	}
	if _, err := exec.LookPath(b.ExecPath); err != nil {
		return fmt.Errorf("codex not installed: %w", err)
	}
	return nil
}

// Consult runs one codex invocation and returns the extracted answer text.
// A missing binary, a non-zero exit, and a context deadline each surface as
// distinct errors.
func (b *Backend) Consult(ctx context.Context, req backend.Request) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", errors.New("prompt is required")
	}
	if err := b.CheckAvailable(); err != nil {
		return "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	effort := reasoningEffort(req.Depth)
	args := []string{
		"exec",
		"--skip-git-repo-check",
		"-c", fmt.Sprintf("model_reasoning_effort=%q", effort),
		"-s", "read-only",
		"--color", "never",
		req.Prompt,
	}

	logging.New("codex").Info("calling codex", "depth", req.Depth, "effort", effort)

	cmd := exec.CommandContext(ctx, b.ExecPath, args...)
	cmd.Dir = b.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// CommandContext kills the child when the deadline fires; report
		// the cancellation, not the resulting "signal: killed" exit.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = fmt.Sprintf("codex exited with code %d", exitErr.ExitCode())
			}
			return "", errors.New(msg)
		}
		return "", fmt.Errorf("run codex: %w", err)
	}

	answer := b.Extractor.Extract(stdout.String())
	logging.New("codex").Info("codex returned", "chars", len(answer))
	return answer, nil
}

// reasoningEffort maps a caller depth to the codex effort flag. An
// unrecognized depth selects the deepest effort.
func reasoningEffort(depth string) string {
	switch depth {
	case backend.DepthLow, backend.DepthMedium, backend.DepthHigh:
		return depth
	default:
		return backend.DepthHigh
	}
}
