package cmd

import (
	"os"

	"dexrr/internal/buildinfo"
	"dexrr/internal/config"
	"dexrr/internal/logger"
	"dexrr/internal/mangadex"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dexrr",
	Short: "Browse, search and download manga chapters from MangaDex.",
	Long: `Browse, search and download manga chapters from MangaDex.

Provide a configuration file using one of the following methods:
1. Use the --config <path> or -c <path> flag.
2. Place a config.yaml file in the default user configuration directory (e.g., ~/.config/dexrr/).
3. Place a config.yaml file a folder inside your home directory (e.g., ~/.dexrr/).
4. Place a config.yaml file in the directory of the binary.`,
}

func init() {
	initRootFlags()
	initBrowseFlags()
	initSearchFlags()
	initDownloadFlags()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(downloadCmd)
}

// newSource wires config, logger and the adapter for one command run.
func newSource() (*config.AppConfig, logger.Logger, *mangadex.Source) {
	cfg := config.New(configPath, buildinfo.Version)
	log := logger.New(cfg.Config)
	cfg.DynamicReload(log)

	return cfg, log, mangadex.New(cfg, log, cfg.Config.Language)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
