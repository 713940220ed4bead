package backend

import (
	"context"
	"fmt"
	"time"

	"multireasoner/internal/logging"
)

// Invoke runs one backend call under a hard wall-clock budget and converts
// the outcome into a Result. The three outcomes — answer, backend-reported
// failure, timeout — are mutually exclusive and exhaustive; no error escapes
// past this boundary.
//
// On timeout the derived context is cancelled before Invoke returns, which
// kills the child process started via exec.CommandContext or aborts the
// in-flight HTTP request. Timed-out work is torn down, never abandoned.
func Invoke(ctx context.Context, b Backend, req Request) Result {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		answer string
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("backend panic: %v", r)}
			}
		}()
		answer, err := b.Consult(cctx, req)
		done <- outcome{answer: answer, err: err}
	}()

	logger := logging.New("invoke")
	select {
	case out := <-done:
		if out.err != nil {
			if cctx.Err() == context.DeadlineExceeded {
				logger.Warn("backend timed out", "backend", b.Name(), "timeout", timeout)
				return Result{Backend: b.Name(), Reason: timeoutReason(timeout)}
			}
			logger.Warn("backend failed", "backend", b.Name(), "reason", out.err)
			return Result{Backend: b.Name(), Reason: out.err.Error()}
		}
		return Result{Backend: b.Name(), OK: true, Answer: out.answer}
	case <-cctx.Done():
		// The Consult goroutine unblocks once cancellation propagates; the
		// buffered channel lets it exit without a reader.
		if cctx.Err() == context.DeadlineExceeded {
			logger.Warn("backend timed out", "backend", b.Name(), "timeout", timeout)
			return Result{Backend: b.Name(), Reason: timeoutReason(timeout)}
		}
		return Result{Backend: b.Name(), Reason: cctx.Err().Error()}
	}
}

func timeoutReason(timeout time.Duration) string {
	return fmt.Sprintf("timed out after %ds", int(timeout.Seconds()))
}
