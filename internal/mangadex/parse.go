package mangadex

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"dexrr/internal/domain"
)

// checkResponse maps the status code per the envelope contract: 204 is an
// empty page, anything else outside 2xx is an HTTPError.
func checkResponse(resp *http.Response) (empty bool, err error) {
	if resp.StatusCode == http.StatusNoContent {
		return true, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &domain.HTTPError{Status: resp.StatusCode}
	}

	return false, nil
}

func decodeBody(resp *http.Response, v any) error {
	defer resp.Body.Close()

	if err := json.NewDecoder(bufio.NewReader(resp.Body)).Decode(v); err != nil {
		return &domain.DecodeError{Err: err}
	}

	return nil
}

// hasMoreResults is the paging contract shared by every listing envelope.
func hasMoreResults(limit, offset, total int) bool {
	return limit+offset < total
}

func parseEntryPage(resp *http.Response, coverSuffix string) (domain.EntryPage, error) {
	empty, err := checkResponse(resp)
	if err != nil {
		resp.Body.Close()
		return domain.EntryPage{}, err
	}
	if empty {
		resp.Body.Close()
		return domain.EntryPage{}, nil
	}

	var list mangaListResponse
	if err := decodeBody(resp, &list); err != nil {
		return domain.EntryPage{}, err
	}

	entries := make([]domain.CatalogEntry, 0, len(list.Data))
	for _, data := range list.Data {
		entries = append(entries, newCatalogEntry(data, coverSuffix, nil))
	}

	return domain.EntryPage{
		Entries: entries,
		HasMore: hasMoreResults(list.Limit, list.Offset, list.Total),
	}, nil
}

// newCatalogEntry builds the immutable entry from a decoded record. A missing
// cover relationship yields an entry without a cover, not an error. The
// aggregated chapter list, when available, refines the completed status.
func newCatalogEntry(data mangaData, coverSuffix string, aggregated []string) domain.CatalogEntry {
	attrs := data.Attributes

	var coverURL string
	if fileName := relationshipAttr(data.Relationships, typeCoverArt, func(r relationship) string { return r.Attributes.FileName }); fileName != "" {
		coverURL = fmt.Sprintf("%s/covers/%s/%s%s", cdnURL, data.ID, fileName, coverSuffix)
	}

	tags := make([]string, 0, len(attrs.Tags))
	for _, tag := range attrs.Tags {
		if name := localized(tag.Attributes.Name); name != "" {
			tags = append(tags, name)
		}
	}

	return domain.CatalogEntry{
		ID:               data.ID,
		Title:            localized(attrs.Title),
		Description:      localized(attrs.Description),
		Author:           relationshipAttr(data.Relationships, typeAuthor, func(r relationship) string { return r.Attributes.Name }),
		Artist:           relationshipAttr(data.Relationships, typeArtist, func(r relationship) string { return r.Attributes.Name }),
		Status:           publicationStatus(attrs.Status, attrs.LastChapter, aggregated),
		Tags:             tags,
		CoverURL:         coverURL,
		OriginalLanguage: attrs.OriginalLanguage,
		Rating:           contentRating(attrs.ContentRating),
	}
}

func relationshipAttr(rels []relationship, relType string, attr func(relationship) string) string {
	for _, rel := range rels {
		if strings.EqualFold(rel.Type, relType) {
			if v := attr(rel); v != "" {
				return v
			}
		}
	}

	return ""
}

func localized(values map[string]string) string {
	if v, ok := values["en"]; ok && v != "" {
		return v
	}
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

// publicationStatus approximates the entry status. A completed title only
// counts as completed when the aggregated chapter list actually contains its
// last chapter, otherwise translations are still catching up.
func publicationStatus(status, lastChapter string, aggregated []string) domain.PublicationStatus {
	switch status {
	case "ongoing":
		return domain.StatusOngoing
	case "hiatus":
		return domain.StatusHiatus
	case "cancelled":
		return domain.StatusCancelled
	case "completed":
		if lastChapter != "" && slices.Contains(aggregated, lastChapter) {
			return domain.StatusCompleted
		}
		return domain.StatusOngoing
	default:
		return domain.StatusUnknown
	}
}

func contentRating(rating string) domain.ContentRating {
	switch rating {
	case "safe":
		return domain.RatingSafe
	case "suggestive":
		return domain.RatingSuggestive
	case "erotica":
		return domain.RatingErotica
	case "pornographic":
		return domain.RatingPornographic
	default:
		return domain.RatingUnknown
	}
}

// newChapterEntry maps a decoded feed record. The entry back-reference comes
// from the feed's owning entry, not from the record itself.
func newChapterEntry(data chapterData, entryID string) domain.ChapterEntry {
	attrs := data.Attributes

	var number *float64
	if attrs.Chapter != nil {
		if num, err := strconv.ParseFloat(*attrs.Chapter, 64); err == nil {
			number = &num
		}
	}

	return domain.ChapterEntry{
		ID:          data.ID,
		EntryID:     entryID,
		Name:        chapterName(attrs),
		Number:      number,
		Volume:      attrs.Volume,
		Language:    attrs.TranslatedLanguage,
		Group:       relationshipAttr(data.Relationships, typeScanlationGroup, func(r relationship) string { return r.Attributes.Name }),
		PublishedAt: attrs.PublishAt,
		PageCount:   attrs.Pages,
	}
}

func chapterName(attrs chapterAttributes) string {
	var parts []string

	if attrs.Volume != nil && *attrs.Volume != "" {
		parts = append(parts, "Vol."+*attrs.Volume)
	}
	if attrs.Chapter != nil && *attrs.Chapter != "" {
		parts = append(parts, "Ch."+*attrs.Chapter)
	}
	if attrs.Title != nil && *attrs.Title != "" {
		if len(parts) > 0 {
			parts = append(parts, "-")
		}
		parts = append(parts, *attrs.Title)
	}

	if len(parts) == 0 {
		return "Oneshot"
	}

	return strings.Join(parts, " ")
}
