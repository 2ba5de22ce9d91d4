package mangadex

import "time"

type mangaListResponse struct {
	Data   []mangaData `json:"data"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Total  int         `json:"total"`
}

type mangaResponse struct {
	Data mangaData `json:"data"`
}

type mangaData struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Attributes    mangaAttributes `json:"attributes"`
	Relationships []relationship  `json:"relationships"`
}

type mangaAttributes struct {
	Title            map[string]string `json:"title"`
	Description      map[string]string `json:"description"`
	OriginalLanguage string            `json:"originalLanguage"`
	LastChapter      string            `json:"lastChapter"`
	Status           string            `json:"status"`
	ContentRating    string            `json:"contentRating"`
	Tags             []tagData         `json:"tags"`
}

type tagData struct {
	Attributes struct {
		Name map[string]string `json:"name"`
	} `json:"attributes"`
}

type relationship struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		FileName string `json:"fileName"`
		Name     string `json:"name"`
	} `json:"attributes"`
}

type chapterListResponse struct {
	Data   []chapterData `json:"data"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Total  int           `json:"total"`
}

type chapterResponse struct {
	Data chapterData `json:"data"`
}

type chapterData struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Attributes    chapterAttributes `json:"attributes"`
	Relationships []relationship    `json:"relationships"`
}

type chapterAttributes struct {
	Title              *string   `json:"title"`
	Volume             *string   `json:"volume"`
	Chapter            *string   `json:"chapter"`
	TranslatedLanguage string    `json:"translatedLanguage"`
	PublishAt          time.Time `json:"publishAt"`
	Pages              int       `json:"pages"`
	Hash               string    `json:"hash"`
	Data               []string  `json:"data"`
	DataSaver          []string  `json:"dataSaver"`
}

type atHomeResponse struct {
	BaseURL string `json:"baseUrl"`
}

type aggregateResponse struct {
	Volumes map[string]aggregateVolume `json:"volumes"`
}

type aggregateVolume struct {
	Chapters map[string]aggregateChapter `json:"chapters"`
}

type aggregateChapter struct {
	Chapter string `json:"chapter"`
}
