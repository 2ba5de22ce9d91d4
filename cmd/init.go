package cmd

var (
	configPath        string
	naming            string
	downloadDirectory string

	entryID string

	pageNumber    int
	latestUpdates bool

	chapterNumbers string
	first          bool
	latest         bool
	asPDF          bool
)

func initRootFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"specifies the path to your config file",
	)
}

func initBrowseFlags() {
	browseCmd.Flags().IntVarP(
		&pageNumber,
		"page",
		"p",
		1,
		"specifies the catalog page to show",
	)
	browseCmd.Flags().BoolVarP(
		&latestUpdates,
		"latest",
		"L",
		false,
		"show the latest updates instead of the popular listing",
	)
}

func initSearchFlags() {
	searchCmd.Flags().IntVarP(
		&pageNumber,
		"page",
		"p",
		1,
		"specifies the result page to show",
	)
}

func initDownloadFlags() {
	downloadCmd.Flags().StringVarP(
		&downloadDirectory,
		"downloadDirectory",
		"d",
		"",
		"specifies the directory where you want to save your downloads to",
	)
	downloadCmd.Flags().StringVarP(
		&naming,
		"naming",
		"n",
		"{entry:<.>} Ch. {num:3}{name: - <.>}",
		"specifies the naming template you want to use for naming chapters",
	)

	downloadCmd.Flags().StringVarP(
		&entryID,
		"entry",
		"e",
		"",
		"specifies the id of the entry you want to download from",
	)

	downloadCmd.Flags().StringVarP(
		&chapterNumbers,
		"chapters",
		"C",
		"",
		"specifies the chapter numbers you want to download",
	)
	downloadCmd.Flags().BoolVarP(
		&first,
		"first",
		"1",
		false,
		"download the first chapter",
	)
	downloadCmd.Flags().BoolVarP(
		&latest,
		"latest",
		"L",
		false,
		"download the latest chapter",
	)
	downloadCmd.Flags().BoolVar(
		&asPDF,
		"pdf",
		false,
		"save chapters as PDF instead of CBZ",
	)

	downloadCmd.MarkFlagsMutuallyExclusive("first", "chapters")
	downloadCmd.MarkFlagsMutuallyExclusive("latest", "chapters")
	downloadCmd.MarkFlagsMutuallyExclusive("first", "latest")

	_ = downloadCmd.MarkFlagRequired("downloadDirectory")
	_ = downloadCmd.MarkFlagRequired("entry")
}
