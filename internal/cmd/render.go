package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/menav-bookmarks/internal/render"
)

var renderDocument bool

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render the bookmarks page as HTML",
	Long: `Render the bookmarks page as the site's category and site-card markup.

The output is an HTML fragment unless --document is set. Output format flags
do not apply.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		if renderDocument {
			return render.Document(stdoutFromContext(ctx), doc.Page)
		}
		return render.Fragment(stdoutFromContext(ctx), doc.Page)
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderDocument, "document", false, "Wrap the fragment in a standalone HTML document")
	rootCmd.AddCommand(renderCmd)
}
