package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/menav-bookmarks/internal/bookmarks"
	"github.com/salmonumbrella/menav-bookmarks/internal/discover"
	"github.com/salmonumbrella/menav-bookmarks/internal/netscape"
	"github.com/salmonumbrella/menav-bookmarks/internal/siteconfig"
)

var (
	importFile   string
	importDryRun bool
	importNoNav  bool
)

// importResult summarizes an import run.
type importResult struct {
	Status         string                  `json:"status" yaml:"status"`
	File           string                  `json:"file,omitempty" yaml:"file,omitempty"`
	Source         netscape.Source         `json:"source,omitempty" yaml:"source,omitempty"`
	Categories     int                     `json:"categories" yaml:"categories"`
	Sites          int                     `json:"sites" yaml:"sites"`
	DroppedFolders int                     `json:"dropped_folders" yaml:"dropped_folders"`
	DroppedSites   int                     `json:"dropped_sites" yaml:"dropped_sites"`
	Output         string                  `json:"output,omitempty" yaml:"output,omitempty"`
	UserConfig     siteconfig.InitSource   `json:"user_config,omitempty" yaml:"user_config,omitempty"`
	Navigation     *siteconfig.PatchResult `json:"navigation,omitempty" yaml:"navigation,omitempty"`
	Reason         string                  `json:"reason,omitempty" yaml:"reason,omitempty"`
}

const (
	statusImported = "imported"
	statusSkipped  = "skipped"
	statusDryRun   = "dry_run"
)

func (r importResult) WriteText(w io.Writer) error {
	if r.Status == statusSkipped {
		_, err := fmt.Fprintf(w, "Skipped: %s\n", r.Reason)
		return err
	}
	if _, err := fmt.Fprintf(w, "Imported %d sites in %d categories from %s\n", r.Sites, r.Categories, r.File); err != nil {
		return err
	}
	if r.Output != "" {
		if _, err := fmt.Fprintf(w, "Wrote %s\n", r.Output); err != nil {
			return err
		}
	}
	if r.Navigation != nil {
		if _, err := fmt.Fprintf(w, "Navigation: %s\n", r.Navigation.Reason); err != nil {
			return err
		}
	}
	return nil
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the newest bookmark export into the site",
	Long: `Import a browser bookmark export into the site project.

Steps:
  1. Pick the newest .html file in the bookmarks directory (or --file).
  2. Parse it into categories and sites.
  3. Initialize config/user from config/_default when it does not exist.
  4. Write config/user/pages/bookmarks.yml.
  5. Add a bookmarks entry to the navigation in config/user/site.yml.

An empty bookmarks directory is not an error: the import is skipped.`,
	Example: `  menav-bookmarks import
  menav-bookmarks import --file ~/Downloads/bookmarks.html
  menav-bookmarks import --dry-run > bookmarks.yml
  MENAV_BOOKMARKS_DETERMINISTIC=1 menav-bookmarks import -C site`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Import this file instead of the newest export")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Print the generated YAML instead of writing it")
	importCmd.Flags().BoolVar(&importNoNav, "no-nav", false, "Do not touch the site navigation")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := currentConfig()
	log := loggerFromContext(ctx)

	var sourceArgs []string
	if importFile != "" {
		sourceArgs = []string{importFile}
	}
	source, err := resolveSource(ctx, sourceArgs, cfg)
	if err != nil {
		var noFiles discover.NoFilesError
		if errors.As(err, &noFiles) {
			log.Warn("no bookmark export to import", "dir", noFiles.Dir, "created", noFiles.Created)
			return printResult(ctx, importResult{Status: statusSkipped, Reason: noFiles.Error()})
		}
		return err
	}

	doc, err := loadDocument(ctx, source, cfg)
	if err != nil {
		return err
	}
	if len(doc.Result.Tree) == 0 {
		return bookmarks.EmptyTreeError{File: doc.File}
	}
	log.Info("parsed bookmarks", "categories", doc.Result.Stats.Categories, "sites", doc.Result.Stats.Sites)

	data, err := bookmarks.MarshalYAML(doc.Page, bookmarks.MarshalOptions{
		Deterministic: cfg.Deterministic,
		Now:           nowFunc(),
		BookmarksDir:  cfg.BookmarksDir,
	})
	if err != nil {
		return err
	}

	res := importResult{
		Status:         statusImported,
		File:           doc.File,
		Source:         doc.Result.Source,
		Categories:     doc.Result.Stats.Categories,
		Sites:          doc.Result.Stats.Sites,
		DroppedFolders: doc.Result.Stats.DroppedFolders,
		DroppedSites:   doc.Result.Stats.DroppedSites,
	}

	if importDryRun {
		_, err := stdoutFromContext(ctx).Write(data)
		return err
	}

	userDir := projectPath(cfg.UserConfigDir)
	defaultDir := projectPath(cfg.DefaultConfigDir)

	res.UserConfig, err = siteconfig.EnsureUserConfig(userDir, defaultDir)
	if err != nil {
		return err
	}
	if res.UserConfig != siteconfig.SourceExisting {
		log.Info("initialized user config", "dir", userDir, "from", res.UserConfig)
	}

	res.Output = filepath.Join(userDir, "pages", "bookmarks.yml")
	if err := bookmarks.WriteFile(res.Output, data); err != nil {
		return err
	}
	log.Info("wrote bookmarks page", "path", res.Output)

	if !importNoNav {
		nav, err := updateNavigation(cmd, userDir, defaultDir)
		if err != nil {
			return err
		}
		res.Navigation = &nav
	}

	return printResult(ctx, res)
}

func updateNavigation(cmd *cobra.Command, userDir, defaultDir string) (siteconfig.PatchResult, error) {
	log := loggerFromContext(cmd.Context())

	path, ok, err := siteconfig.EnsureSiteFile(userDir, defaultDir)
	if err != nil {
		return siteconfig.PatchResult{}, err
	}
	if !ok {
		log.Warn("no site.yml found; add a navigation entry with id: bookmarks by hand", "path", path)
		return siteconfig.PatchResult{Path: path, Reason: siteconfig.ReasonNoSiteFile}, nil
	}

	nav, err := siteconfig.UpsertNav(path, siteconfig.DefaultNavEntry())
	var patchErr siteconfig.PatchError
	if errors.As(err, &patchErr) {
		log.Warn("could not update navigation; add an entry with id: bookmarks by hand", "path", path, "error", patchErr.Err)
		return siteconfig.PatchResult{Path: path, Reason: siteconfig.ReasonError}, nil
	}
	if err != nil {
		return nav, err
	}
	switch nav.Reason {
	case siteconfig.ReasonAddedBlock, siteconfig.ReasonUpdatedBlock:
		log.Info("added bookmarks to navigation", "path", path)
	case siteconfig.ReasonAlreadyPresent:
		log.Debug("bookmarks already in navigation", "path", path)
	case siteconfig.ReasonNavigationNotArray:
		log.Warn("navigation in site.yml is not a list; not updated", "path", path)
	case siteconfig.ReasonNotObject:
		log.Warn("site.yml is not a mapping; navigation not updated", "path", path)
	}
	return nav, nil
}
