// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	DefaultBaseDelay = time.Millisecond
}

// statusSequence serves the given statuses in order, repeating the last.
func statusSequence(t *testing.T, calls *int32, statuses ...int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := int(atomic.AddInt32(calls, 1))
		if n > len(statuses) {
			n = len(statuses)
		}
		w.WriteHeader(statuses[n-1])
	}))
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	return req
}

func TestDo(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []int
		policy     Policy
		wantStatus int
		wantCalls  int32
	}{
		{"immediate success", []int{200}, Policy{}, 200, 1},
		{"throttled then ok", []int{429, 503, 200}, Policy{MaxRetries: 5}, 200, 3},
		{"exhausts retries", []int{429}, Policy{MaxRetries: 2}, 429, 3},
		{"default retries", []int{503}, Policy{}, 503, 4},
		{"server error is not retried", []int{500}, Policy{}, 500, 1},
		{"not found is not retried", []int{404}, Policy{}, 404, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := statusSequence(t, &calls, tt.statuses...)

			resp, err := Do(context.Background(), ts.Client(), get(t, ts.URL), tt.policy, zerolog.Nop())
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestDo_RetryAfterShortensWait(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	start := time.Now()
	resp, err := Do(context.Background(), ts.Client(), get(t, ts.URL), Policy{BaseDelay: time.Minute}, zerolog.Nop())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestDo_ContextCancelled(t *testing.T) {
	var calls int32
	ts := statusSequence(t, &calls, http.StatusTooManyRequests)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Do(ctx, ts.Client(), get(t, ts.URL), Policy{BaseDelay: time.Second}, zerolog.Nop())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
