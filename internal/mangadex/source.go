package mangadex

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"dexrr/internal/domain"
	"dexrr/internal/logger"
	"dexrr/internal/sharedhttp"

	"github.com/google/uuid"
)

type prefsProvider interface {
	Filters() domain.FilterPrefs
}

// Source adapts the MangaDex API to the domain.Source contract.
type Source struct {
	prefs   prefsProvider
	log     logger.Logger
	client  *http.Client
	builder requestBuilder
}

func New(prefs prefsProvider, log logger.Logger, language string) *Source {
	if language == "" {
		language = "en"
	}

	return &Source{
		prefs:  prefs,
		log:    log,
		client: sharedhttp.NewClient(log),
		builder: requestBuilder{
			apiURL:   apiURL,
			siteURL:  siteURL,
			language: language,
		},
	}
}

func (s *Source) String() string {
	return "MangaDex"
}

func (s *Source) ListPopular(ctx context.Context, page int) (domain.EntryPage, error) {
	prefs := s.prefs.Filters()

	req, err := s.builder.popular(ctx, page, prefs)
	if err != nil {
		return domain.EntryPage{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.EntryPage{}, fmt.Errorf("failed to list popular entries: %w", err)
	}

	return parseEntryPage(resp, prefs.CoverQuality)
}

// ListLatest needs two calls: the latest-updates feed only yields chapter
// records, their owning entries are looked up in a second batch request. The
// paging flag comes from the feed envelope.
func (s *Source) ListLatest(ctx context.Context, page int) (domain.EntryPage, error) {
	prefs := s.prefs.Filters()

	req, err := s.builder.latest(ctx, page, prefs)
	if err != nil {
		return domain.EntryPage{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.EntryPage{}, fmt.Errorf("failed to list latest updates: %w", err)
	}

	empty, err := checkResponse(resp)
	if err != nil {
		resp.Body.Close()
		return domain.EntryPage{}, err
	}
	if empty {
		resp.Body.Close()
		return domain.EntryPage{}, nil
	}

	var feed chapterListResponse
	if err := decodeBody(resp, &feed); err != nil {
		return domain.EntryPage{}, err
	}

	hasMore := hasMoreResults(feed.Limit, feed.Offset, feed.Total)

	seen := make(map[string]bool)
	var entryIDs []string
	for _, chapter := range feed.Data {
		for _, rel := range chapter.Relationships {
			if rel.Type == typeManga && !seen[rel.ID] {
				seen[rel.ID] = true
				entryIDs = append(entryIDs, rel.ID)
			}
		}
	}

	if len(entryIDs) == 0 {
		return domain.EntryPage{HasMore: hasMore}, nil
	}

	detailsReq, err := s.builder.latestDetails(ctx, entryIDs, prefs)
	if err != nil {
		return domain.EntryPage{}, err
	}

	detailsResp, err := s.client.Do(detailsReq)
	if err != nil {
		return domain.EntryPage{}, fmt.Errorf("failed to look up latest entries: %w", err)
	}

	if empty, err := checkResponse(detailsResp); err != nil || empty {
		detailsResp.Body.Close()
		return domain.EntryPage{}, err
	}

	var list mangaListResponse
	if err := decodeBody(detailsResp, &list); err != nil {
		return domain.EntryPage{}, err
	}

	byID := make(map[string]mangaData, len(list.Data))
	for _, data := range list.Data {
		byID[data.ID] = data
	}

	// keep the feed's own ordering
	entries := make([]domain.CatalogEntry, 0, len(entryIDs))
	for _, id := range entryIDs {
		if data, ok := byID[id]; ok {
			entries = append(entries, newCatalogEntry(data, prefs.CoverQuality, nil))
		}
	}

	return domain.EntryPage{Entries: entries, HasMore: hasMore}, nil
}

func (s *Source) Search(ctx context.Context, page int, query string) (domain.EntryPage, error) {
	query = strings.TrimSpace(query)

	if chapterID, ok := strings.CutPrefix(query, prefixChapterSearch); ok {
		entryID, err := s.entryIDForChapter(ctx, chapterID)
		if err != nil {
			return domain.EntryPage{}, err
		}

		return s.Search(ctx, page, prefixIDSearch+entryID)
	}

	prefs := s.prefs.Filters()

	req, err := s.builder.search(ctx, page, query, prefs)
	if err != nil {
		return domain.EntryPage{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.EntryPage{}, fmt.Errorf("failed to search entries: %w", err)
	}

	return parseEntryPage(resp, prefs.CoverQuality)
}

// entryIDForChapter resolves a chapter id to its owning entry id.
func (s *Source) entryIDForChapter(ctx context.Context, chapterID string) (string, error) {
	req, err := s.builder.chapter(ctx, chapterID)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to look up chapter %s: %w", chapterID, err)
	}

	if empty, err := checkResponse(resp); err != nil || empty {
		resp.Body.Close()
		if err == nil {
			err = &domain.DecodeError{Err: fmt.Errorf("chapter %s has no record", chapterID)}
		}
		return "", err
	}

	var chapter chapterResponse
	if err := decodeBody(resp, &chapter); err != nil {
		return "", err
	}

	for _, rel := range chapter.Data.Relationships {
		if rel.Type == typeManga {
			return rel.ID, nil
		}
	}

	return "", &domain.DecodeError{Err: fmt.Errorf("chapter %s has no owning entry", chapterID)}
}

func (s *Source) FetchDetails(ctx context.Context, entryRef string) (domain.CatalogEntry, error) {
	entryRef = strings.TrimSpace(entryRef)
	if _, err := uuid.Parse(entryRef); err != nil {
		return domain.CatalogEntry{}, &domain.LegacyAddressingError{Ref: entryRef}
	}

	prefs := s.prefs.Filters()

	req, err := s.builder.details(ctx, entryRef)
	if err != nil {
		return domain.CatalogEntry{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.CatalogEntry{}, fmt.Errorf("failed to fetch details for %s: %w", entryRef, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return domain.CatalogEntry{}, &domain.HTTPError{Status: resp.StatusCode}
	}

	var record mangaResponse
	if err := decodeBody(resp, &record); err != nil {
		return domain.CatalogEntry{}, err
	}

	// best-effort status refinement, failures degrade to an empty list
	aggregated := s.fetchAggregate(ctx, entryRef)

	return newCatalogEntry(record.Data, prefs.CoverQuality, aggregated), nil
}
