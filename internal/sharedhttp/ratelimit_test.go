package sharedhttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitAdmitsBurst(t *testing.T) {
	hits := 0

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	defer server.Close()

	client := &http.Client{Transport: newRateLimitTransport(http.DefaultTransport)}

	for i := 0; i < rateLimitPermits; i++ {
		resp, err := client.Get(server.URL + "/manga")
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, rateLimitPermits, hits)
}

func TestRateLimitThrottledRequestHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	defer server.Close()

	transport := &rateLimitTransport{
		next:    http.DefaultTransport,
		limiter: rate.NewLimiter(rate.Limit(0.001), 1),
	}
	client := &http.Client{Transport: transport}

	// drain the only token
	resp, err := client.Get(server.URL + "/manga")
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/manga", nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRateLimitCoverBypass(t *testing.T) {
	hits := 0

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	defer server.Close()

	transport := &rateLimitTransport{
		next:    http.DefaultTransport,
		limiter: rate.NewLimiter(rate.Limit(0.001), 1),
	}
	client := &http.Client{Transport: transport}

	// drain the only token, covers must still pass untouched
	resp, err := client.Get(server.URL + "/manga")
	require.NoError(t, err)
	resp.Body.Close()

	for i := 0; i < 5; i++ {
		resp, err := client.Get(server.URL + "/images/cover.jpg")
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 6, hits)
}
