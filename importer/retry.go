package importer

import (
	"context"
	"time"

	"github.com/lessonfetch/lessonfetch"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, req lessonfetch.FetchRequest) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry attempts a fetch with exponential backoff retry logic.
// It retries up to 3 times (4 total attempts) with delays of 1s, 2s, 4s.
func FetchWithRetry(ctx context.Context, req lessonfetch.FetchRequest, fetch FetchFunc) (string, error) {
	return FetchWithRetryDelays(ctx, req, fetch, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable delays.
// This is useful for testing without waiting for real delays.
func FetchWithRetryDelays(ctx context.Context, req lessonfetch.FetchRequest, fetch FetchFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, req)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Client-side conditions never heal on retry.
		switch lessonfetch.ErrorCode(err) {
		case lessonfetch.EINVALID, lessonfetch.EUNAUTHORIZED, lessonfetch.ENOTFOUND:
			return "", lastErr
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
