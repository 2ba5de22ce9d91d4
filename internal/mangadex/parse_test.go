package mangadex

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"dexrr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestHasMoreResults(t *testing.T) {
	tests := []struct {
		name                  string
		limit, offset, total  int
		want                  bool
	}{
		{"first_of_many", 20, 0, 137, true},
		{"middle", 50, 50, 137, true},
		{"exact_boundary", 50, 87, 137, false},
		{"past_total", 20, 140, 137, false},
		{"empty", 20, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasMoreResults(tt.limit, tt.offset, tt.total))
		})
	}
}

func TestParseEntryPage(t *testing.T) {
	body := `{
		"data": [
			{
				"id": "d8f1d7da-8bb1-407b-8be3-10ac2894d3c6",
				"type": "manga",
				"attributes": {
					"title": {"en": "Isekai Ojisan"},
					"description": {"en": "Uncle wakes up."},
					"originalLanguage": "ja",
					"status": "ongoing",
					"contentRating": "safe",
					"tags": [{"attributes": {"name": {"en": "Comedy"}}}]
				},
				"relationships": [
					{"id": "g1", "type": "Cover_Art", "attributes": {"fileName": "cover.jpg"}}
				]
			},
			{
				"id": "0a735f2b-5f36-4be4-a80b-8f9a540d7f6f",
				"type": "manga",
				"attributes": {
					"title": {"ja": "表紙なし"},
					"status": "hiatus",
					"contentRating": "suggestive"
				},
				"relationships": []
			}
		],
		"limit": 20, "offset": 0, "total": 2
	}`

	page, err := parseEntryPage(jsonResponse(200, body), ".512.jpg")
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.False(t, page.HasMore)

	first := page.Entries[0]
	assert.Equal(t, "d8f1d7da-8bb1-407b-8be3-10ac2894d3c6", first.ID)
	assert.Equal(t, "Isekai Ojisan", first.Title)
	assert.Equal(t, domain.StatusOngoing, first.Status)
	assert.Equal(t, domain.RatingSafe, first.Rating)
	assert.Equal(t, []string{"Comedy"}, first.Tags)
	// relationship type matching is case-insensitive, suffix is appended
	assert.Equal(t, cdnURL+"/covers/d8f1d7da-8bb1-407b-8be3-10ac2894d3c6/cover.jpg.512.jpg", first.CoverURL)

	// a missing cover relationship is not an error
	second := page.Entries[1]
	assert.Empty(t, second.CoverURL)
	assert.Equal(t, "表紙なし", second.Title)
}

func TestParseEntryPageNoContent(t *testing.T) {
	page, err := parseEntryPage(jsonResponse(204, ""), "")
	require.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.False(t, page.HasMore)
}

func TestParseEntryPageHTTPError(t *testing.T) {
	_, err := parseEntryPage(jsonResponse(503, ""), "")

	var httpErr *domain.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 503, httpErr.Status)
}

func TestParseEntryPageDecodeError(t *testing.T) {
	_, err := parseEntryPage(jsonResponse(200, "{not json"), "")

	var decodeErr *domain.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestPublicationStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		lastChapter string
		aggregated  []string
		want        domain.PublicationStatus
	}{
		{"ongoing", "ongoing", "", nil, domain.StatusOngoing},
		{"hiatus", "hiatus", "", nil, domain.StatusHiatus},
		{"cancelled", "cancelled", "", nil, domain.StatusCancelled},
		{"completed_and_translated", "completed", "120", []string{"119", "120"}, domain.StatusCompleted},
		{"completed_but_translations_behind", "completed", "120", []string{"118", "119"}, domain.StatusOngoing},
		{"completed_without_aggregate", "completed", "120", nil, domain.StatusOngoing},
		{"unknown", "something-new", "", nil, domain.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicationStatus(tt.status, tt.lastChapter, tt.aggregated))
		})
	}
}

func strPtr(s string) *string { return &s }

func TestChapterName(t *testing.T) {
	tests := []struct {
		name  string
		attrs chapterAttributes
		want  string
	}{
		{"full", chapterAttributes{Volume: strPtr("3"), Chapter: strPtr("21"), Title: strPtr("The Duel")}, "Vol.3 Ch.21 - The Duel"},
		{"chapter_only", chapterAttributes{Chapter: strPtr("21")}, "Ch.21"},
		{"title_only", chapterAttributes{Title: strPtr("Extra")}, "Extra"},
		{"oneshot", chapterAttributes{}, "Oneshot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chapterName(tt.attrs))
		})
	}
}

func TestNewChapterEntry(t *testing.T) {
	data := chapterData{
		ID: "c3290f54-dd98-4f26-bd0a-d5e8c2e127b3",
		Attributes: chapterAttributes{
			Chapter:            strPtr("12.5"),
			TranslatedLanguage: "en",
			Pages:              18,
		},
		Relationships: []relationship{
			{ID: "g1", Type: "scanlation_group", Attributes: struct {
				FileName string `json:"fileName"`
				Name     string `json:"name"`
			}{Name: "Tonikaku Scans"}},
		},
	}

	chapter := newChapterEntry(data, "d8f1d7da-8bb1-407b-8be3-10ac2894d3c6")

	assert.Equal(t, "d8f1d7da-8bb1-407b-8be3-10ac2894d3c6", chapter.EntryID)
	require.NotNil(t, chapter.Number)
	assert.Equal(t, 12.5, *chapter.Number)
	assert.Nil(t, chapter.Volume)
	assert.Equal(t, "en", chapter.Language)
	assert.Equal(t, "Tonikaku Scans", chapter.Group)
	assert.Equal(t, 18, chapter.PageCount)
}
