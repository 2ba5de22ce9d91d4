package cmd

import (
	"fmt"

	"dexrr/internal/domain"

	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog by popularity or latest updates",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		_, log, src := newSource()

		var (
			result domain.EntryPage
			err    error
		)

		if latestUpdates {
			result, err = src.ListLatest(ctx, pageNumber)
		} else {
			result, err = src.ListPopular(ctx, pageNumber)
		}
		if err != nil {
			log.Fatal().Err(err).Msgf("error browsing catalog page %d", pageNumber)
		}

		printEntries(result)
	},
}

func printEntries(result domain.EntryPage) {
	if len(result.Entries) == 0 {
		fmt.Println("No entries found")
		return
	}

	for _, entry := range result.Entries {
		fmt.Printf("%s  %-10s  %s\n", entry.ID, entry.Status, entry.Title)
	}

	if result.HasMore {
		fmt.Println("\nMore results available, use --page to continue")
	}
}
