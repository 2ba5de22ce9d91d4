package templater

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dexrr/internal/domain"
	"dexrr/internal/utils"
)

var templatePattern = regexp.MustCompile(`{((\w+?)(:.*?)?)}`)

type Templater struct {
	Entry   domain.CatalogEntry
	Chapter domain.ChapterEntry
}

func New(entry domain.CatalogEntry, chapter domain.ChapterEntry) *Templater {
	return &Templater{
		Entry:   entry,
		Chapter: chapter,
	}
}

func (t *Templater) handleNum(options string) string {
	if t.Chapter.Number == nil {
		return ""
	}

	if options == "" {
		return fmt.Sprintf("%g", *t.Chapter.Number)
	}

	length, _ := strconv.ParseInt(strings.ReplaceAll(options, ":", ""), 10, 32)
	return utils.PadFloat(*t.Chapter.Number, int(length))
}

func (t *Templater) handleEntryTitle(options string) string {
	if t.Entry.Title == "" {
		return ""
	}

	cleanString := strings.ReplaceAll(options, ":", "")
	return strings.ReplaceAll(cleanString, "<.>", t.Entry.Title)
}

func (t *Templater) handleChapterName(options string) string {
	if t.Chapter.Name == "" {
		return ""
	}

	cleanString := strings.ReplaceAll(options, ":", "")
	return strings.ReplaceAll(cleanString, "<.>", t.Chapter.Name)
}

func (t *Templater) ExecTemplate(template string) string {
	newString := template
	for _, match := range templatePattern.FindAllStringSubmatch(template, -1) {
		replace := match[0]

		varName := match[2]
		switch varName {
		case "num":
			options := ""
			if len(match) > 3 {
				options = match[3]
			}
			replace = t.handleNum(options)
		case "entry":
			replace = t.handleEntryTitle(match[3])
		case "name":
			replace = t.handleChapterName(match[3])
		}

		newString = strings.Replace(newString, match[0], replace, 1)
	}

	return newString
}
