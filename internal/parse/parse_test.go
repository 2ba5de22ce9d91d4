package parse

import (
	"testing"

	"dexrr/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(id string, number float64) domain.ChapterEntry {
	return domain.ChapterEntry{ID: id, Number: &number}
}

func chapterIDs(chapters []domain.ChapterEntry) []string {
	ids := make([]string, 0, len(chapters))
	for _, chapter := range chapters {
		ids = append(ids, chapter.ID)
	}
	return ids
}

func TestChapterSelection(t *testing.T) {
	available := []domain.ChapterEntry{
		numbered("a", 1),
		numbered("b", 2),
		numbered("c", 2.5),
		numbered("d", 3),
		{ID: "oneshot"},
	}

	tests := []struct {
		name    string
		input   string
		wantIDs []string
		wantErr bool
	}{
		{"single", "2", []string{"b"}, false},
		{"decimal", "2.5", []string{"c"}, false},
		{"range", "2-3", []string{"b", "c", "d"}, false},
		{"mixed", "1, 2.5-3", []string{"a", "c", "d"}, false},
		{"no_match", "9", []string{}, false},
		{"reversed_range", "3-2", nil, true},
		{"garbage", "abc", nil, true},
		{"malformed_range", "1-2-3", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChapterSelection(tt.input, available)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.wantIDs, chapterIDs(got))
		})
	}
}

func TestChapterSelectionDeduplicates(t *testing.T) {
	available := []domain.ChapterEntry{numbered("a", 1), numbered("b", 2)}

	got, err := ChapterSelection("1, 1-2", available)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, chapterIDs(got))
}

func TestFirstAndLatest(t *testing.T) {
	chapters := []domain.ChapterEntry{
		numbered("mid", 5),
		{ID: "oneshot"},
		numbered("last", 12.5),
		numbered("first", 0.5),
	}

	first, latest, err := FirstAndLatest(chapters)
	require.NoError(t, err)

	assert.Equal(t, "first", first.ID)
	assert.Equal(t, "last", latest.ID)
}

func TestFirstAndLatestNoNumberedChapters(t *testing.T) {
	_, _, err := FirstAndLatest([]domain.ChapterEntry{{ID: "oneshot"}})
	require.Error(t, err)
}
