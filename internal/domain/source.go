package domain

import (
	"context"
	"time"
)

// Source is the capability set a catalog adapter has to provide. All calls
// are blocking; async wrapping is up to the caller.
type Source interface {
	String() string
	ListPopular(ctx context.Context, page int) (EntryPage, error)
	ListLatest(ctx context.Context, page int) (EntryPage, error)
	Search(ctx context.Context, page int, query string) (EntryPage, error)
	FetchDetails(ctx context.Context, entryRef string) (CatalogEntry, error)
	FetchChapterList(ctx context.Context, entryRef string) ([]ChapterEntry, error)
	FetchPageList(ctx context.Context, chapterRef string) ([]PageDescriptor, error)
	FetchPageImage(ctx context.Context, page PageDescriptor) (PageImage, error)
}

type PublicationStatus int

const (
	StatusUnknown PublicationStatus = iota
	StatusOngoing
	StatusCompleted
	StatusHiatus
	StatusCancelled
)

func (s PublicationStatus) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCompleted:
		return "completed"
	case StatusHiatus:
		return "hiatus"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type ContentRating int

const (
	RatingUnknown ContentRating = iota
	RatingSafe
	RatingSuggestive
	RatingErotica
	RatingPornographic
)

func (r ContentRating) String() string {
	switch r {
	case RatingSafe:
		return "safe"
	case RatingSuggestive:
		return "suggestive"
	case RatingErotica:
		return "erotica"
	case RatingPornographic:
		return "pornographic"
	default:
		return "unknown"
	}
}

// CatalogEntry is one browsable title. The ID is the canonical uuid the API
// addresses the title by and never changes after construction.
type CatalogEntry struct {
	ID               string
	Title            string
	Description      string
	Author           string
	Artist           string
	Status           PublicationStatus
	Tags             []string
	CoverURL         string
	OriginalLanguage string
	Rating           ContentRating
}

// EntryPage is one decoded page of a listing or search result.
type EntryPage struct {
	Entries []CatalogEntry
	HasMore bool
}

// ChapterEntry references its owning entry by ID, it does not own it. Number
// is nil for oneshots and unnumbered specials.
type ChapterEntry struct {
	ID          string
	EntryID     string
	Name        string
	Number      *float64
	Volume      *string
	Language    string
	Group       string
	PublishedAt time.Time
	PageCount   int
}

// PageDescriptor locates one page image of a chapter. DeliveryContext bundles
// the resolved host base URL, the host-resolution request URL and the
// resolution timestamp into one opaque string; a deferred image fetch needs
// all three to build, re-validate and report on the request, so they are
// never split up.
type PageDescriptor struct {
	Index           int
	ImagePath       string
	DeliveryContext string
}

type PageImage struct {
	Data        []byte
	ContentType string
}
