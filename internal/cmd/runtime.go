package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/menav-bookmarks/internal/config"
)

// loadConfigFromFlag loads config from --config if provided, otherwise from default path.
func loadConfigFromFlag() (*config.Config, error) {
	if strings.TrimSpace(configFile) != "" {
		return config.Load(configFile)
	}
	return config.ReadConfig()
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	if cmd.Flags().Changed(name) {
		return true
	}
	return cmd.InheritedFlags().Changed(name)
}

// applyEnv overlays environment variables on cfg.
func applyEnv(cfg *config.Config) {
	if v := strings.TrimSpace(envGet("MENAV_BOOKMARKS_DIR")); v != "" {
		cfg.BookmarksDir = v
	}
	if strings.TrimSpace(envGet("MENAV_BOOKMARKS_DETERMINISTIC")) == "1" {
		cfg.Deterministic = true
	}
}

// currentConfig returns the active config with defaults filled in.
func currentConfig() config.Config {
	return activeConfig.Resolved()
}

// projectPath resolves p against --dir unless it is absolute.
func projectPath(p string) string {
	if filepath.IsAbs(p) || strings.TrimSpace(projectDir) == "" {
		return p
	}
	return filepath.Join(projectDir, p)
}

func formatConfigLoadError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load config: %w", err)
}
