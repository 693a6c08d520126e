// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides outbound HTTP helpers.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseDelay is the first backoff interval when a Policy leaves
// BaseDelay unset. Tests shrink it to avoid real sleeps.
var DefaultBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// Policy bounds retries of throttled requests.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt (default 3).
	MaxRetries int

	// BaseDelay is doubled after each attempt (default DefaultBaseDelay).
	BaseDelay time.Duration
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// Do sends req and retries on 429 and 503 with exponential backoff. A
// Retry-After header given in seconds replaces the computed delay when it
// is shorter. Once retries are exhausted the last throttled response is
// returned for the caller to inspect. Cancelling ctx during a wait returns
// ctx.Err().
func Do(ctx context.Context, client *http.Client, req *http.Request, p Policy, log zerolog.Logger) (*http.Response, error) {
	if p.MaxRetries <= 0 {
		p.MaxRetries = defaultMaxRetries
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}

	delay := p.BaseDelay
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= p.MaxRetries {
			return resp, nil
		}

		wait := delay
		if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && s >= 0 {
			if d := time.Duration(s) * time.Second; d < wait {
				wait = d
			}
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		log.Warn().Int("status", resp.StatusCode).Dur("wait", wait).
			Int("attempt", attempt+1).Int("max", p.MaxRetries).Msg("throttled, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}
}
