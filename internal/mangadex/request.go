package mangadex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"dexrr/internal/domain"

	"github.com/google/uuid"
)

// requestBuilder constructs filter-applied query URLs. Construction is pure,
// preferences are passed in by the caller on every call.
type requestBuilder struct {
	apiURL   string
	siteURL  string
	language string
}

func (b *requestBuilder) newRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}

	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Referer", b.siteURL+"/")
	req.Header.Set("User-Agent", userAgent)
	// the API has no useful client-side cache semantics for these endpoints
	req.Header.Set("Cache-Control", "no-cache")

	return req, nil
}

func (b *requestBuilder) appendContentRatings(params url.Values, prefs domain.FilterPrefs) {
	if prefs.Safe {
		params.Add("contentRating[]", "safe")
	}
	if prefs.Suggestive {
		params.Add("contentRating[]", "suggestive")
	}
	if prefs.Erotica {
		params.Add("contentRating[]", "erotica")
	}
	if prefs.Pornographic {
		params.Add("contentRating[]", "pornographic")
	}
}

func (b *requestBuilder) appendOriginalLanguages(params url.Values, prefs domain.FilterPrefs) {
	if prefs.Japanese {
		params.Add("originalLanguage[]", "ja")
	}
	if prefs.Chinese {
		params.Add("originalLanguage[]", "zh")
		params.Add("originalLanguage[]", "zh-hk")
	}
	if prefs.Korean {
		params.Add("originalLanguage[]", "ko")
	}
}

func listOffset(page, limit int) int {
	return (page - 1) * limit
}

func (b *requestBuilder) popular(ctx context.Context, page int, prefs domain.FilterPrefs) (*http.Request, error) {
	params := url.Values{}
	params.Set("order[followedCount]", "desc")
	params.Add("availableTranslatedLanguage[]", b.language)
	params.Set("limit", fmt.Sprintf("%d", mangaLimit))
	params.Set("offset", fmt.Sprintf("%d", listOffset(page, mangaLimit)))
	params.Add("includes[]", typeCoverArt)
	b.appendContentRatings(params, prefs)
	b.appendOriginalLanguages(params, prefs)

	return b.newRequest(ctx, b.apiURL+"/manga", params)
}

func (b *requestBuilder) latest(ctx context.Context, page int, prefs domain.FilterPrefs) (*http.Request, error) {
	params := url.Values{}
	params.Set("offset", fmt.Sprintf("%d", listOffset(page, latestChapterLimit)))
	params.Set("limit", fmt.Sprintf("%d", latestChapterLimit))
	params.Add("translatedLanguage[]", b.language)
	params.Set("order[publishAt]", "desc")
	params.Set("includeFutureUpdates", "0")
	b.appendContentRatings(params, prefs)
	b.appendOriginalLanguages(params, prefs)

	return b.newRequest(ctx, b.apiURL+"/chapter", params)
}

// latestDetails looks up the entries owning a batch of latest-feed chapters.
func (b *requestBuilder) latestDetails(ctx context.Context, entryIDs []string, prefs domain.FilterPrefs) (*http.Request, error) {
	params := url.Values{}
	params.Add("includes[]", typeCoverArt)
	params.Set("limit", fmt.Sprintf("%d", len(entryIDs)))
	b.appendContentRatings(params, prefs)
	for _, id := range entryIDs {
		params.Add("ids[]", id)
	}

	return b.newRequest(ctx, b.apiURL+"/manga", params)
}

// search routes the query mini-grammar: an id lookup, a group lookup or a
// whitespace-normalized title search. The chapter-id prefix is resolved by
// the caller before it gets here.
func (b *requestBuilder) search(ctx context.Context, page int, query string, prefs domain.FilterPrefs) (*http.Request, error) {
	if id, ok := strings.CutPrefix(query, prefixIDSearch); ok {
		params := url.Values{}
		params.Add("ids[]", id)
		params.Add("includes[]", typeCoverArt)
		params.Add("contentRating[]", "safe")
		params.Add("contentRating[]", "suggestive")
		params.Add("contentRating[]", "erotica")
		params.Add("contentRating[]", "pornographic")

		return b.newRequest(ctx, b.apiURL+"/manga", params)
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", mangaLimit))
	params.Set("offset", fmt.Sprintf("%d", listOffset(page, mangaLimit)))
	params.Add("includes[]", typeCoverArt)

	if groupID, ok := strings.CutPrefix(query, prefixGroupSearch); ok {
		if _, err := uuid.Parse(groupID); err != nil {
			return nil, &domain.ValidationError{Msg: fmt.Sprintf("not a valid group id: %q", groupID)}
		}
		params.Set("group", groupID)
	} else {
		title := strings.TrimSpace(whitespacePattern.ReplaceAllString(query, " "))
		if title != "" {
			params.Set("title", title)
		}
	}

	b.appendContentRatings(params, prefs)
	b.appendOriginalLanguages(params, prefs)

	return b.newRequest(ctx, b.apiURL+"/manga", params)
}

func (b *requestBuilder) details(ctx context.Context, entryID string) (*http.Request, error) {
	params := url.Values{}
	params.Add("includes[]", typeCoverArt)
	params.Add("includes[]", typeAuthor)
	params.Add("includes[]", typeArtist)

	return b.newRequest(ctx, b.apiURL+"/manga/"+entryID, params)
}

// chapterFeed builds one page of the chapter feed for an entry. All rating
// tiers are requested; the caller already opted into the entry.
func (b *requestBuilder) chapterFeed(ctx context.Context, entryID string, offset int) (*http.Request, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", chapterFeedLimit))
	params.Set("offset", fmt.Sprintf("%d", offset))
	params.Add("includes[]", typeScanlationGroup)
	params.Set("order[volume]", "desc")
	params.Set("order[chapter]", "desc")
	params.Add("translatedLanguage[]", b.language)
	params.Add("contentRating[]", "safe")
	params.Add("contentRating[]", "suggestive")
	params.Add("contentRating[]", "erotica")
	params.Add("contentRating[]", "pornographic")

	return b.newRequest(ctx, b.apiURL+"/manga/"+entryID+"/feed", params)
}

func (b *requestBuilder) aggregate(ctx context.Context, entryID string) (*http.Request, error) {
	params := url.Values{}
	params.Add("translatedLanguage[]", b.language)

	return b.newRequest(ctx, b.apiURL+"/manga/"+entryID+"/aggregate", params)
}

func (b *requestBuilder) chapter(ctx context.Context, chapterID string) (*http.Request, error) {
	return b.newRequest(ctx, b.apiURL+"/chapter/"+chapterID, nil)
}

func (b *requestBuilder) atHome(ctx context.Context, chapterID string, port443Only bool) (*http.Request, error) {
	endpoint := b.apiURL + "/at-home/server/" + chapterID
	if port443Only {
		// request-time hint only, the client trusts the server's compliance
		endpoint += "?forcePort443=true"
	}

	return b.newRequest(ctx, endpoint, nil)
}
