package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/menav-bookmarks/internal/discover"
)

var latestAll bool

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show which bookmark export import would use",
	Long: `List the HTML exports in the bookmarks directory, newest first.

Files are ranked by the timestamp in their name (2026-01-24T07-31-00 or
20260124), falling back to the modification time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dir := projectPath(currentConfig().BookmarksDir)

		candidates, err := discover.Candidates(dir)
		if err != nil {
			return err
		}
		if latestAll {
			return printResult(ctx, candidates)
		}
		return printResult(ctx, candidates[0])
	},
}

func init() {
	latestCmd.Flags().BoolVar(&latestAll, "all", false, "List every candidate")
	rootCmd.AddCommand(latestCmd)
}
