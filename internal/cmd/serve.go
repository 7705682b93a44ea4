package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/menav-bookmarks/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Preview the bookmarks page over HTTP",
	Long: `Serve a live preview of the bookmarks page.

Routes:
  GET  /            rendered HTML page
  GET  /api/page    page document as JSON
  GET  /api/stats   parse statistics
  POST /api/reload  parse the export again
  GET  /health      liveness check

Without a file argument every reload picks the newest export in the
bookmarks directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := currentConfig()
		log := loggerFromContext(ctx)

		addr := cfg.ServeAddr
		if flagChanged(cmd, "addr") {
			addr = serveAddr
		}

		load := func(ctx context.Context) (server.Snapshot, error) {
			source, err := resolveSource(ctx, args, cfg)
			if err != nil {
				return server.Snapshot{}, err
			}
			doc, err := loadDocument(ctx, source, cfg)
			if err != nil {
				return server.Snapshot{}, err
			}
			return server.Snapshot{
				File:     doc.File,
				Source:   doc.Result.Source,
				Stats:    doc.Result.Stats,
				Page:     doc.Page,
				LoadedAt: nowFunc().UTC(),
			}, nil
		}

		srv, err := server.New(ctx, load, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, srv, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	rootCmd.AddCommand(serveCmd)
}
