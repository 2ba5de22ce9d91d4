package sharedhttp

import (
	"net/http"
	"net/url"
	"strings"
)

type coverFallbackTransport struct {
	next http.RoundTripper
}

// RoundTrip retries a 404 on a cover image once against the thumbnail
// variant, rewriting the last path suffix to .thumb.jpg. Any other 404 passes
// through unchanged.
func (t *coverFallbackTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusNotFound || !coverPattern.MatchString(req.URL.String()) {
		return resp, nil
	}

	resp.Body.Close()

	original := req.URL.String()
	if idx := strings.LastIndex(original, "."); idx != -1 {
		original = original[:idx]
	}

	altURL, err := url.Parse(original + ".thumb.jpg")
	if err != nil {
		return nil, err
	}

	alt := req.Clone(req.Context())
	alt.URL = altURL

	return t.next.RoundTrip(alt)
}
