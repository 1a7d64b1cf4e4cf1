// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to the Zenn API.
package httputil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryAfter caps a server-supplied Retry-After value.
var MaxRetryAfter = 60 * time.Second

const defaultMaxRetries = 5

// Retryable reports whether a response status is worth retrying: rate
// limiting (429) and temporary unavailability (503).
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes req and retries retryable responses with
// exponential backoff starting at RetryBaseDelay. A Retry-After header
// given in seconds replaces the computed delay, capped at MaxRetryAfter.
//
// When maxRetries is 0 the default (5) is used. The body of each retried
// response is drained and closed before sleeping. If ctx is cancelled
// during a wait the function returns ctx.Err(). After exhausting retries
// the last response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := backoffFor(attempt, resp.Header.Get("Retry-After"))
		slog.Debug("retrying request",
			"url", req.URL.Redacted(),
			"status", resp.StatusCode,
			"backoff", backoff,
			"attempt", attempt+1,
			"max_retries", maxRetries,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// backoffFor returns the wait before retry attempt+1.
func backoffFor(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		d := time.Duration(secs) * time.Second
		if d > MaxRetryAfter {
			d = MaxRetryAfter
		}
		return d
	}
	return RetryBaseDelay << attempt
}
