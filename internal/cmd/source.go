package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/salmonumbrella/menav-bookmarks/internal/bookmarks"
	"github.com/salmonumbrella/menav-bookmarks/internal/config"
	"github.com/salmonumbrella/menav-bookmarks/internal/discover"
	"github.com/salmonumbrella/menav-bookmarks/internal/netscape"
)

// document is a parsed bookmark export.
type document struct {
	File   string
	Result *netscape.Result
	Page   bookmarks.Page
}

// resolveSource returns the export named in args, or the newest one in the
// bookmarks directory.
func resolveSource(ctx context.Context, args []string, cfg config.Config) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	latest, err := discover.Latest(projectPath(cfg.BookmarksDir))
	if err != nil {
		return "", err
	}
	loggerFromContext(ctx).Info("found bookmark file", "file", latest.Name, "timestamp", latest.Timestamp)
	return latest.Path, nil
}

// loadDocument reads and parses source ("-" for stdin).
func loadDocument(ctx context.Context, source string, cfg config.Config) (document, error) {
	data, err := readRawInput(source, stdinFromContext(ctx))
	if err != nil {
		return document{}, err
	}

	name := strings.TrimSpace(source)
	if name == "-" {
		name = "stdin"
	}

	res := netscape.Parse(string(data), cfg.ParseOptions())
	log := loggerFromContext(ctx)
	log.Debug("parsed bookmarks",
		"file", name,
		"source", res.Source,
		"categories", res.Stats.Categories,
		"sites", res.Stats.Sites,
	)
	if res.Source == netscape.SourceFallback {
		log.Debug("no toolbar folder found, using first container", "file", name)
	}
	warnDropped(log, name, res.Stats)

	return document{
		File:   name,
		Result: res,
		Page:   bookmarks.NewPage(cfg.PageTitle, cfg.PageSubtitle, res.Tree),
	}, nil
}

func warnDropped(log *slog.Logger, file string, stats netscape.Stats) {
	if stats.DroppedFolders == 0 && stats.DroppedSites == 0 {
		return
	}
	log.Warn("folders nested deeper than the depth limit were dropped",
		"file", file,
		"folders", stats.DroppedFolders,
		"sites", stats.DroppedSites,
	)
}
