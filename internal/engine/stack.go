package engine

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"
)

// retryConfig governs executeWithRetry's exponential backoff (grounded on
// the teacher's emergent.Client retry machinery, generalised from "retry a
// flaky Emergent HTTP call" to "retry a flaky host command-stack call").
type retryConfig struct {
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

func defaultRetryConfig() retryConfig {
	return retryConfig{
		maxRetries:     3,
		initialBackoff: 100 * time.Millisecond,
		maxBackoff:     2 * time.Second,
	}
}

// shouldRetryStackError reports whether err looks transient enough to retry
// a chunk's Execute call: network errors, context deadline exceeded, and
// the handful of transport error strings the teacher's shouldRetry checks.
// A command-stack Execute failure from a sub-command's own apply/revert
// (spec.md §4.3: "fatal for the transaction") is never retried — only the
// host's own transport to the stack is.
func shouldRetryStackError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch err.Error() {
	case "EOF", "unexpected EOF", "connection reset by peer", "broken pipe":
		return true
	}
	return false
}

// executeWithRetry wraps one chunk's stack.Execute call with bounded
// exponential backoff, retrying only transient transport failures. A
// non-retryable error (including any rollback raised by the sub-commands
// themselves) is returned immediately.
func executeWithRetry(ctx context.Context, logger *slog.Logger, stack CommandStack, tx Transaction) error {
	cfg := defaultRetryConfig()
	var lastErr error
	backoff := cfg.initialBackoff

	for attempt := 0; attempt <= cfg.maxRetries; attempt++ {
		if attempt > 0 {
			if logger != nil {
				logger.Warn("retrying chunk execute", "attempt", attempt, "backoff", backoff, "error", lastErr)
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
			if backoff > cfg.maxBackoff {
				backoff = cfg.maxBackoff
			}
		}

		err := stack.Execute(ctx, tx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !shouldRetryStackError(err) {
			return err
		}
	}
	return lastErr
}
