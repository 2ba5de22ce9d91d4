package sharedhttp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"time"

	"dexrr/internal/logger"
)

const reportURL = "https://api.mangadex.network/report"

// deliveryHostPattern matches page images served through a resolved delivery
// host; only those fetches are reported.
var deliveryHostPattern = regexp.MustCompile(`^https://[\w\d]+\.[\w\d]+\.mangadex(-test)?\.network`)

type imageReport struct {
	URL      string `json:"url"`
	Success  bool   `json:"success"`
	Bytes    int    `json:"bytes"`
	Cache    bool   `json:"cache"`
	Duration int64  `json:"duration"`
}

type reportTransport struct {
	next      http.RoundTripper
	client    *http.Client
	log       logger.Logger
	reportURL string
}

// RoundTrip measures delivery-host fetches and posts a telemetry record for
// them. The post is fire-and-forget, its failure never reaches the caller.
func (t *reportTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	url := req.URL.String()
	if !deliveryHostPattern.MatchString(url) {
		return resp, err
	}

	duration := time.Since(start).Milliseconds()

	if err != nil {
		t.report(imageReport{URL: url, Success: false, Duration: duration})
		return nil, err
	}

	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	t.report(imageReport{
		URL:      url,
		Success:  resp.StatusCode >= 200 && resp.StatusCode < 300,
		Bytes:    len(body),
		Cache:    resp.Header.Get("X-Cache") == "HIT",
		Duration: duration,
	})

	return resp, nil
}

func (t *reportTransport) report(record imageReport) {
	go func() {
		payload, err := json.Marshal(record)
		if err != nil {
			t.log.Error().Err(err).Msg("error encoding delivery host report")
			return
		}

		endpoint := t.reportURL
		if endpoint == "" {
			endpoint = reportURL
		}

		req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			t.log.Error().Err(err).Msg("error creating delivery host report request")
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			t.log.Error().Err(err).Msg("error posting delivery host report")
			return
		}
		resp.Body.Close()
	}()
}
