package sharedhttp

import (
	"net/http"
	"regexp"

	"golang.org/x/time/rate"
)

const rateLimitPermits = 3

// coverPattern matches static cover images, which are served from an
// effectively unlimited origin and skip the rate limiter.
var coverPattern = regexp.MustCompile(`/images/.*\.jpg`)

type rateLimitTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func newRateLimitTransport(next http.RoundTripper) *rateLimitTransport {
	return &rateLimitTransport{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rateLimitPermits), rateLimitPermits),
	}
}

// RoundTrip blocks until the limiter admits the request. Throttled calls wait
// for a slot, they are never dropped.
func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if coverPattern.MatchString(req.URL.String()) {
		return t.next.RoundTrip(req)
	}

	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	return t.next.RoundTrip(req)
}
