package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters <entry-id>",
	Short: "List all chapters of an entry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		_, log, src := newSource()

		entry, err := src.FetchDetails(ctx, args[0])
		if err != nil {
			log.Fatal().Err(err).Msgf("error fetching details for %s", args[0])
		}

		chapters, err := src.FetchChapterList(ctx, entry.ID)
		if err != nil {
			log.Fatal().Err(err).Msgf("error fetching chapters for %q", entry.Title)
		}

		fmt.Printf("%s (%s)\n\n", entry.Title, entry.Status)

		for _, chapter := range chapters {
			group := chapter.Group
			if group == "" {
				group = "unknown group"
			}
			fmt.Printf("%s  %-30s  [%s, %s]\n", chapter.ID, chapter.Name, chapter.Language, group)
		}
	},
}
