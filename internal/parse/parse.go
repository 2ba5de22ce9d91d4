package parse

import (
	"fmt"
	"strconv"
	"strings"

	"dexrr/internal/domain"
)

// ChapterSelection parses the user input for ranges and parts and returns the
// matching chapters. Unnumbered chapters never match a numeric selection.
func ChapterSelection(input string, available []domain.ChapterEntry) ([]domain.ChapterEntry, error) {
	parts := strings.Split(input, ",")
	selected := make(map[string]domain.ChapterEntry)

	for _, part := range parts {
		if strings.Contains(part, "-") {
			rangeParts := strings.Split(part, "-")
			if len(rangeParts) != 2 {
				return nil, fmt.Errorf("invalid range format: %s", part)
			}
			start, end, err := getRange(rangeParts)
			if err != nil {
				return nil, err
			}

			for _, chapter := range available {
				if chapter.Number != nil && *chapter.Number >= start && *chapter.Number <= end {
					selected[chapter.ID] = chapter
				}
			}
		} else {
			number, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, err
			}

			for _, chapter := range available {
				if chapter.Number != nil && *chapter.Number == number {
					selected[chapter.ID] = chapter
				}
			}
		}
	}

	selectedChapters := make([]domain.ChapterEntry, 0, len(selected))
	for _, chapter := range selected {
		selectedChapters = append(selectedChapters, chapter)
	}

	return selectedChapters, nil
}

// getRange parses the user input for chapter ranges
func getRange(rangeParts []string) (float64, float64, error) {
	start, err := strconv.ParseFloat(strings.TrimSpace(rangeParts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start of range: %s", rangeParts[0])
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(rangeParts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end of range: %s", rangeParts[1])
	}

	if start > end {
		return 0, 0, fmt.Errorf("start of range should not be greater than end: %s-%s", rangeParts[0], rangeParts[1])
	}

	return float64(start), float64(end), nil
}

// FirstAndLatest returns the lowest- and highest-numbered chapters from a
// list, ignoring unnumbered ones.
func FirstAndLatest(chapters []domain.ChapterEntry) (domain.ChapterEntry, domain.ChapterEntry, error) {
	var first, latest *domain.ChapterEntry

	for i := range chapters {
		chapter := &chapters[i]
		if chapter.Number == nil {
			continue
		}

		if first == nil || *chapter.Number < *first.Number {
			first = chapter
		}
		if latest == nil || *chapter.Number > *latest.Number {
			latest = chapter
		}
	}

	if first == nil || latest == nil {
		return domain.ChapterEntry{}, domain.ChapterEntry{}, fmt.Errorf("no numbered chapters found")
	}

	return *first, *latest, nil
}
