package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog by title, id, chapter id or group id",
	Long: `Search the catalog by title, id, chapter id or group id.

Plain text searches by title. Three prefixes are recognized:
  id:<entry-id>     look an entry up directly by id
  ch:<chapter-id>   find the entry a chapter belongs to
  grp:<group-id>    list entries a scanlation group worked on`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		_, log, src := newSource()

		result, err := src.Search(ctx, pageNumber, strings.Join(args, " "))
		if err != nil {
			log.Fatal().Err(err).Msg("error searching catalog")
		}

		printEntries(result)
	},
}
