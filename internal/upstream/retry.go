package upstream

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retryable reports whether an error is worth retrying: rate limiting and
// transport failures qualify; authentication problems and other upstream
// statuses do not.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := AsRateLimitError(err); ok {
		return true
	}
	if _, ok := AsNetworkError(err); ok {
		return true
	}
	return false
}

// WithRetry runs op under exponential backoff while it keeps failing with
// retryable errors, stopping at maxElapsed or context cancellation. The
// client itself never retries; policy lives with the orchestrating caller so
// interactive paths can skip it entirely.
func WithRetry(ctx context.Context, logger *slog.Logger, maxElapsed time.Duration, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	if maxElapsed > 0 {
		policy.MaxElapsedTime = maxElapsed
	}

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		if logger == nil {
			return
		}
		attrs := []any{"error", err, slog.Int64("wait_ms", wait.Milliseconds())}
		if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
			attrs = append(attrs, slog.Int64("retry_after_ms", rlErr.RetryAfter.Milliseconds()))
		}
		logger.Warn("upstream call retrying", attrs...)
	}

	return backoff.RetryNotify(wrapped, backoff.WithContext(policy, ctx), notify)
}
