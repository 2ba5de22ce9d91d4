package mangadex

import (
	"context"
	"testing"

	"dexrr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder() *requestBuilder {
	return &requestBuilder{
		apiURL:   apiURL,
		siteURL:  siteURL,
		language: "en",
	}
}

func TestPopularRequestDefaults(t *testing.T) {
	b := testBuilder()

	req, err := b.popular(context.Background(), 1, domain.DefaultFilterPrefs())
	require.NoError(t, err)

	query := req.URL.Query()

	assert.Equal(t, []string{"safe", "suggestive"}, query["contentRating[]"])
	assert.Equal(t, []string{"ja", "zh", "zh-hk", "ko"}, query["originalLanguage[]"])
	assert.Equal(t, "0", query.Get("offset"))
	assert.Equal(t, "20", query.Get("limit"))
	assert.Equal(t, "desc", query.Get("order[followedCount]"))
	assert.Equal(t, []string{"en"}, query["availableTranslatedLanguage[]"])
	assert.Equal(t, []string{"cover_art"}, query["includes[]"])

	assert.Equal(t, siteURL+"/", req.Header.Get("Referer"))
	assert.Equal(t, userAgent, req.Header.Get("User-Agent"))
	assert.Equal(t, "no-cache", req.Header.Get("Cache-Control"))
}

func TestPopularRequestPagination(t *testing.T) {
	b := testBuilder()

	req, err := b.popular(context.Background(), 3, domain.DefaultFilterPrefs())
	require.NoError(t, err)

	assert.Equal(t, "40", req.URL.Query().Get("offset"))
}

func TestFilterToggles(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*domain.FilterPrefs)
		wantRatings   []string
		wantLanguages []string
	}{
		{
			name:          "defaults",
			mutate:        func(_ *domain.FilterPrefs) {},
			wantRatings:   []string{"safe", "suggestive"},
			wantLanguages: []string{"ja", "zh", "zh-hk", "ko"},
		},
		{
			name: "all_ratings_enabled",
			mutate: func(p *domain.FilterPrefs) {
				p.Erotica = true
				p.Pornographic = true
			},
			wantRatings:   []string{"safe", "suggestive", "erotica", "pornographic"},
			wantLanguages: []string{"ja", "zh", "zh-hk", "ko"},
		},
		{
			name: "all_ratings_disabled",
			mutate: func(p *domain.FilterPrefs) {
				p.Safe = false
				p.Suggestive = false
			},
			wantRatings:   nil,
			wantLanguages: []string{"ja", "zh", "zh-hk", "ko"},
		},
		{
			name: "chinese_only",
			mutate: func(p *domain.FilterPrefs) {
				p.Japanese = false
				p.Korean = false
			},
			wantRatings:   []string{"safe", "suggestive"},
			wantLanguages: []string{"zh", "zh-hk"},
		},
		{
			name: "chinese_disabled_drops_both_variants",
			mutate: func(p *domain.FilterPrefs) {
				p.Chinese = false
			},
			wantRatings:   []string{"safe", "suggestive"},
			wantLanguages: []string{"ja", "ko"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := domain.DefaultFilterPrefs()
			tt.mutate(&prefs)

			b := testBuilder()

			for _, build := range []string{"popular", "latest"} {
				var req, err = b.popular(context.Background(), 1, prefs)
				if build == "latest" {
					req, err = b.latest(context.Background(), 1, prefs)
				}
				require.NoError(t, err)

				query := req.URL.Query()
				assert.Equal(t, tt.wantRatings, query["contentRating[]"], build)
				assert.Equal(t, tt.wantLanguages, query["originalLanguage[]"], build)
			}
		})
	}
}

func TestLatestRequest(t *testing.T) {
	b := testBuilder()

	req, err := b.latest(context.Background(), 2, domain.DefaultFilterPrefs())
	require.NoError(t, err)

	query := req.URL.Query()

	assert.Equal(t, "100", query.Get("limit"))
	assert.Equal(t, "100", query.Get("offset"))
	assert.Equal(t, "desc", query.Get("order[publishAt]"))
	assert.Equal(t, "0", query.Get("includeFutureUpdates"))
	assert.Contains(t, req.URL.Path, "/chapter")
}

func TestSearchTitleNormalization(t *testing.T) {
	b := testBuilder()

	req, err := b.search(context.Background(), 1, "one \t  piece\n ", domain.DefaultFilterPrefs())
	require.NoError(t, err)

	assert.Equal(t, "one piece", req.URL.Query().Get("title"))
}

func TestSearchBlankTitleOmitted(t *testing.T) {
	b := testBuilder()

	req, err := b.search(context.Background(), 1, "   ", domain.DefaultFilterPrefs())
	require.NoError(t, err)

	query := req.URL.Query()
	assert.False(t, query.Has("title"))
	assert.Equal(t, "20", query.Get("limit"))
}

func TestSearchByID(t *testing.T) {
	b := testBuilder()

	req, err := b.search(context.Background(), 1, "id:d8f1d7da-8bb1-407b-8be3-10ac2894d3c6", domain.DefaultFilterPrefs())
	require.NoError(t, err)

	query := req.URL.Query()
	assert.Equal(t, []string{"d8f1d7da-8bb1-407b-8be3-10ac2894d3c6"}, query["ids[]"])
	// id lookups ignore rating preferences, the caller asked for this entry
	assert.Equal(t, []string{"safe", "suggestive", "erotica", "pornographic"}, query["contentRating[]"])
}

func TestSearchByGroup(t *testing.T) {
	b := testBuilder()

	req, err := b.search(context.Background(), 1, "grp:310361d7-52dd-4848-9b36-2eb4fcc95e83", domain.DefaultFilterPrefs())
	require.NoError(t, err)

	assert.Equal(t, "310361d7-52dd-4848-9b36-2eb4fcc95e83", req.URL.Query().Get("group"))
}

func TestSearchByGroupInvalidID(t *testing.T) {
	b := testBuilder()

	_, err := b.search(context.Background(), 1, "grp:not-a-uuid", domain.DefaultFilterPrefs())

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestAtHomePortHint(t *testing.T) {
	b := testBuilder()

	req, err := b.atHome(context.Background(), "c3290f54-dd98-4f26-bd0a-d5e8c2e127b3", true)
	require.NoError(t, err)
	assert.Equal(t, "true", req.URL.Query().Get("forcePort443"))

	req, err = b.atHome(context.Background(), "c3290f54-dd98-4f26-bd0a-d5e8c2e127b3", false)
	require.NoError(t, err)
	assert.False(t, req.URL.Query().Has("forcePort443"))
}
