package mangadex

import (
	"regexp"
	"time"
)

const (
	siteURL = "https://mangadex.org"
	apiURL  = "https://api.mangadex.org"
	cdnURL  = "https://uploads.mangadex.org"

	userAgent = "dexrr"

	// listing endpoints cap page size server-side; the chapter feed allows a
	// much larger window
	mangaLimit         = 20
	latestChapterLimit = 100
	chapterFeedLimit   = 500

	// a feed walk that still reports more results after this many pages is
	// treated as a broken server contract
	maxFeedPages = 200

	prefixIDSearch      = "id:"
	prefixChapterSearch = "ch:"
	prefixGroupSearch   = "grp:"

	typeCoverArt        = "cover_art"
	typeAuthor          = "author"
	typeArtist          = "artist"
	typeManga           = "manga"
	typeScanlationGroup = "scanlation_group"

	// delivery host assignments time out; stale contexts get re-resolved
	// before a deferred image fetch
	deliveryTokenLifespan = 30 * time.Minute
)

var whitespacePattern = regexp.MustCompile(`\s+`)
