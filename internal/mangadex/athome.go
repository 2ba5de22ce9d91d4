package mangadex

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dexrr/internal/domain"

	"github.com/google/uuid"
)

// deliveryContext carries everything a deferred image fetch needs: the
// resolved host, the assignment URL it came from and when it was resolved.
type deliveryContext struct {
	host       string
	requestURL string
	resolvedAt time.Time
}

func packDeliveryContext(host, requestURL string, resolvedAt time.Time) string {
	return fmt.Sprintf("%s,%s,%d", host, requestURL, resolvedAt.UnixMilli())
}

func parseDeliveryContext(packed string) (deliveryContext, error) {
	parts := strings.Split(packed, ",")
	if len(parts) != 3 {
		return deliveryContext{}, &domain.ValidationError{Msg: fmt.Sprintf("malformed delivery context: %q", packed)}
	}

	millis, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return deliveryContext{}, &domain.ValidationError{Msg: fmt.Sprintf("malformed delivery context timestamp: %q", parts[2])}
	}

	return deliveryContext{
		host:       parts[0],
		requestURL: parts[1],
		resolvedAt: time.UnixMilli(millis),
	}, nil
}

// FetchPageList resolves a delivery host for the chapter and pairs it with
// the chapter's page filenames in source order. The host is resolved once per
// call and never shared across chapters.
func (s *Source) FetchPageList(ctx context.Context, chapterRef string) ([]domain.PageDescriptor, error) {
	chapterRef = strings.TrimSpace(chapterRef)
	if _, err := uuid.Parse(chapterRef); err != nil {
		return nil, &domain.LegacyAddressingError{Ref: chapterRef}
	}

	req, err := s.builder.chapter(ctx, chapterRef)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chapter %s: %w", chapterRef, err)
	}

	empty, err := checkResponse(resp)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	if empty {
		resp.Body.Close()
		return nil, nil
	}

	var chapter chapterResponse
	if err := decodeBody(resp, &chapter); err != nil {
		return nil, err
	}

	prefs := s.prefs.Filters()

	host, resolvedFrom, err := s.resolveHost(ctx, chapterRef, prefs.Port443Only)
	if err != nil {
		return nil, err
	}

	packed := packDeliveryContext(host, resolvedFrom, time.Now())

	attrs := chapter.Data.Attributes
	dir, files := "data", attrs.Data
	if prefs.DataSaver {
		dir, files = "data-saver", attrs.DataSaver
	}

	pages := make([]domain.PageDescriptor, 0, len(files))
	for i, file := range files {
		pages = append(pages, domain.PageDescriptor{
			Index:           i,
			ImagePath:       "/" + dir + "/" + attrs.Hash + "/" + file,
			DeliveryContext: packed,
		})
	}

	return pages, nil
}

// FetchPageImage re-derives the image URL from the descriptor's delivery
// context. A context older than the token lifespan gets a fresh host from
// the original assignment URL first.
func (s *Source) FetchPageImage(ctx context.Context, page domain.PageDescriptor) (domain.PageImage, error) {
	dc, err := parseDeliveryContext(page.DeliveryContext)
	if err != nil {
		return domain.PageImage{}, err
	}

	host := dc.host
	if time.Since(dc.resolvedAt) > deliveryTokenLifespan {
		host, err = s.resolveHostFrom(ctx, dc.requestURL)
		if err != nil {
			return domain.PageImage{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+page.ImagePath, nil)
	if err != nil {
		return domain.PageImage{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Referer", s.builder.siteURL+"/")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.PageImage{}, fmt.Errorf("failed to fetch page image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.PageImage{}, &domain.HTTPError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(bufio.NewReader(resp.Body))
	if err != nil {
		return domain.PageImage{}, fmt.Errorf("failed to read page image: %w", err)
	}

	return domain.PageImage{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// resolveHost fetches a delivery host assignment for one chapter, returning
// both the host and the exact request URL used so later fetches can be
// attributed and re-validated.
func (s *Source) resolveHost(ctx context.Context, chapterID string, port443Only bool) (host, requestURL string, err error) {
	req, err := s.builder.atHome(ctx, chapterID, port443Only)
	if err != nil {
		return "", "", err
	}

	requestURL = req.URL.String()

	host, err = s.doResolve(req)
	if err != nil {
		return "", "", err
	}

	return host, requestURL, nil
}

func (s *Source) resolveHostFrom(ctx context.Context, requestURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Referer", s.builder.siteURL+"/")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cache-Control", "no-cache")

	return s.doResolve(req)
}

func (s *Source) doResolve(req *http.Request) (string, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to resolve delivery host: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return "", &domain.HTTPError{Status: resp.StatusCode}
	}

	var assignment atHomeResponse
	if err := decodeBody(resp, &assignment); err != nil {
		return "", &domain.UpstreamError{Msg: fmt.Sprintf("undecodable host assignment: %v", err)}
	}

	if assignment.BaseURL == "" {
		return "", &domain.UpstreamError{Msg: "host assignment missing baseUrl"}
	}

	return assignment.BaseURL, nil
}
