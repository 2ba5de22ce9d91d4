package sharedhttp

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"dexrr/internal/logger"

	"github.com/avast/retry-go"
)

var Transport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ReadBufferSize:        65536,
	WriteBufferSize:       65536,
	TLSClientConfig: &tls.Config{
		MinVersion: tls.VersionTLS12,
	},
}

// NewClient builds the shared API client. Every outbound call goes through
// the interceptor chain: usage reporter outermost so it observes the final
// response, then the cover fallback, then the rate limiter gate.
func NewClient(log logger.Logger) *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &reportTransport{
			next: &coverFallbackTransport{
				next: newRateLimitTransport(Transport),
			},
			client: &http.Client{
				Timeout:   30 * time.Second,
				Transport: Transport,
			},
			log: log,
		},
	}
}

// CheckStatusCode classifies a status code for retrying image downloads.
func CheckStatusCode(statusCode int) error {
	switch statusCode {
	case http.StatusOK:

	case http.StatusUnauthorized, http.StatusForbidden:
		return retry.Unrecoverable(fmt.Errorf("unrecoverable error downloading image: status code %d", statusCode))

	case http.StatusMethodNotAllowed:
		return retry.Unrecoverable(fmt.Errorf("method not allowed: status code %d", statusCode))

	case http.StatusNotFound:
		return fmt.Errorf("image not found - retrying: status code %d", statusCode)

	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusInternalServerError:
		return fmt.Errorf("server error encountered while downloading image: status code %d - retrying", statusCode)

	default:
		return retry.Unrecoverable(fmt.Errorf("unexpected error downloading image: status code %d", statusCode))
	}

	return nil
}
