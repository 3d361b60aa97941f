package tradebridge

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/quantfold/trade-bridge/internal"
)

// executor runs the attempt loop for one request. Transport errors,
// 5xx and 429 responses are retryable up to maxRetries with
// exponential backoff capped at 30s, honoring Retry-After when the
// server sends one. Other client errors, 401 included, are never
// retried here. maxRetries of zero means a single attempt.
type executor struct {
	maxRetries  int
	baseBackoff time.Duration
	logger      *zap.Logger
}

func (e *executor) do(ctx context.Context, send func() (*http.Response, []byte, error)) (*http.Response, []byte, error) {
	attempts := 0
	for {
		resp, body, err := send()
		if err != nil {
			if attempts >= e.maxRetries || ctx.Err() != nil {
				return nil, nil, err
			}
			wait := e.backoff(attempts)
			e.logger.Debug("transport error, retrying",
				zap.Error(err), zap.Duration("wait", wait), zap.Int("attempt", attempts+1))
			if err := sleepCtx(ctx, wait); err != nil {
				return nil, nil, err
			}
			attempts++
			continue
		}

		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		if !retryable || attempts >= e.maxRetries {
			return resp, body, nil
		}

		wait := e.backoff(attempts)
		if ra := internal.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()); ra > wait {
			wait = ra
		}
		e.logger.Debug("retryable status, backing off",
			zap.Int("status", resp.StatusCode), zap.Duration("wait", wait), zap.Int("attempt", attempts+1))
		if err := sleepCtx(ctx, wait); err != nil {
			return nil, nil, err
		}
		attempts++
	}
}

func (e *executor) backoff(attempt int) time.Duration {
	wait := e.baseBackoff * (1 << attempt)
	if wait > 30*time.Second {
		wait = 30 * time.Second
	}
	return wait
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
