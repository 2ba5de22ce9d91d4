package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dexrr/internal/domain"
	"dexrr/internal/download"
	"dexrr/internal/files"
	"dexrr/internal/parse"
	"dexrr/internal/sanitize"
	"dexrr/internal/templater"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download specified chapters of an entry",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		if !cmd.Flags().Changed("first") && !cmd.Flags().Changed("chapters") {
			latest = true
		}

		if err := files.IsValidLocation(downloadDirectory); err != nil {
			fmt.Println("Invalid location:", err)
			return
		}

		_, log, src := newSource()

		entry, err := src.FetchDetails(ctx, entryID)
		if err != nil {
			log.Fatal().Err(err).Msgf("error fetching details from %q", src)
		}

		chapters, err := src.FetchChapterList(ctx, entry.ID)
		if err != nil {
			log.Fatal().Err(err).Msgf("error fetching chapters for %q", entry.Title)
		}

		var selectedChapters []domain.ChapterEntry

		firstChapter, latestChapter, err := parse.FirstAndLatest(chapters)
		if err != nil {
			log.Fatal().Err(err).Msgf("error picking chapter for %q", entry.Title)
		}

		switch {
		case first:
			selectedChapters = []domain.ChapterEntry{firstChapter}
		case latest:
			selectedChapters = []domain.ChapterEntry{latestChapter}
		default:
			selectedChapters, err = parse.ChapterSelection(chapterNumbers, chapters)
			if err != nil {
				log.Fatal().Err(err).Msgf("error parsing chapter selection for %q", entry.Title)
			}
		}

		if len(selectedChapters) == 0 {
			fmt.Printf("Failed to find matching chapters in range %s for %q\n", chapterNumbers, entry.Title)
			return
		}

		extension := ".cbz"
		if asPDF {
			extension = ".pdf"
		}

		// manhwa reads as one long strip
		longStrip := entry.OriginalLanguage == "ko"

		wg := sync.WaitGroup{}

		for _, chapter := range selectedChapters {
			chapter := chapter
			wg.Add(1)

			go func() {
				defer wg.Done()

				pages, err := src.FetchPageList(ctx, chapter.ID)
				if err != nil {
					fmt.Printf("Failed to get pages for chapter %q: %v\n", chapter.Name, err)
					return
				}

				if len(pages) == 0 {
					fmt.Printf("No pages found for chapter %q\n", chapter.Name)
					return
				}

				t := templater.New(entry, chapter)
				templatedName := t.ExecTemplate(naming)

				chapterFile := sanitize.Filename(templatedName)
				contentPath := filepath.Join(downloadDirectory, sanitize.Filename(entry.Title), chapterFile+extension)

				if _, err := os.Stat(contentPath); err == nil {
					fmt.Printf("Chapter has already been downloaded, skipping %q\n", templatedName)
					return
				}

				fmt.Printf("Downloading %q...\n", templatedName)
				if err := download.Chapter(ctx, contentPath, src, pages, asPDF, longStrip); err != nil {
					fmt.Printf("Failed to download chapter %q: %v\n", templatedName, err)
					return
				}

				fmt.Printf("Finished downloading %q\n", templatedName)
			}()
		}

		wg.Wait()
	},
}
