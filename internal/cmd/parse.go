package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/menav-bookmarks/internal/output"
)

var (
	parseStats bool
	parseFlat  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a bookmark export and print the result",
	Long: `Parse a Netscape bookmark export and print the bookmarks page it produces.

Without a file argument the newest export in the bookmarks directory is used.
Pass - to read from stdin. Nothing is written to the site project.`,
	Example: `  menav-bookmarks parse bookmarks/export.html
  menav-bookmarks parse --stats -o json
  menav-bookmarks parse -o json --query '.categories[].name'
  menav-bookmarks parse --flat -o table`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseStats, "stats", false, "Print parse statistics instead of the page")
	parseCmd.Flags().BoolVar(&parseFlat, "flat", false, "Print one row per category")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := currentConfig()

	source, err := resolveSource(ctx, args, cfg)
	if err != nil {
		return err
	}
	doc, err := loadDocument(ctx, source, cfg)
	if err != nil {
		return err
	}

	switch {
	case parseStats:
		return printResult(ctx, newStatsView(doc))
	case parseFlat || output.FormatFromContext(ctx) == output.FormatTable:
		return printResult(ctx, flattenTree(doc.Result.Tree))
	default:
		return printResult(ctx, pageView(doc.Page))
	}
}
