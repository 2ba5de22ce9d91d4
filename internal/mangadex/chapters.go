package mangadex

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dexrr/internal/domain"

	"github.com/google/uuid"
)

// FetchChapterList walks every page of the entry's chapter feed and merges
// them in feed order. The walk advances by the server-reported limit and
// stops once limit+offset reaches the reported total; a server that never
// satisfies that is cut off at maxFeedPages.
func (s *Source) FetchChapterList(ctx context.Context, entryRef string) ([]domain.ChapterEntry, error) {
	entryRef = strings.TrimSpace(entryRef)
	if _, err := uuid.Parse(entryRef); err != nil {
		return nil, &domain.LegacyAddressingError{Ref: entryRef}
	}

	start := time.Now()

	var merged []domain.ChapterEntry
	offset := 0

	for page := 0; ; page++ {
		if page >= maxFeedPages {
			return nil, &domain.ProtocolError{
				Msg: fmt.Sprintf("chapter feed for %s did not terminate within %d pages", entryRef, maxFeedPages),
			}
		}

		req, err := s.builder.chapterFeed(ctx, entryRef, offset)
		if err != nil {
			return nil, err
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chapter feed for %s: %w", entryRef, err)
		}

		empty, err := checkResponse(resp)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		if empty {
			resp.Body.Close()
			break
		}

		var feed chapterListResponse
		if err := decodeBody(resp, &feed); err != nil {
			return nil, err
		}

		for _, data := range feed.Data {
			merged = append(merged, newChapterEntry(data, entryRef))
		}

		if !hasMoreResults(feed.Limit, feed.Offset, feed.Total) {
			break
		}

		offset = feed.Offset + feed.Limit
	}

	// some feeds leak pre-released chapters, hide anything published after
	// the walk started
	visible := make([]domain.ChapterEntry, 0, len(merged))
	for _, chapter := range merged {
		if chapter.PublishedAt.After(start) {
			continue
		}
		visible = append(visible, chapter)
	}

	return visible, nil
}

// fetchAggregate pulls the volume/chapter summary used to approximate the
// publication status. It is best-effort: any failure, decode failures
// included, degrades to an empty list instead of aborting the caller.
func (s *Source) fetchAggregate(ctx context.Context, entryRef string) []string {
	req, err := s.builder.aggregate(ctx, entryRef)
	if err != nil {
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug().Err(err).Msgf("aggregate lookup failed for %s", entryRef)
		return nil
	}

	if empty, err := checkResponse(resp); err != nil || empty {
		resp.Body.Close()
		return nil
	}

	var aggregate aggregateResponse
	if err := decodeBody(resp, &aggregate); err != nil {
		s.log.Debug().Err(err).Msgf("aggregate decode failed for %s", entryRef)
		return nil
	}

	var chapters []string
	for _, volume := range aggregate.Volumes {
		for _, chapter := range volume.Chapters {
			chapters = append(chapters, chapter.Chapter)
		}
	}

	return chapters
}
