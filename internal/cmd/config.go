package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/menav-bookmarks/internal/config"
	"github.com/salmonumbrella/menav-bookmarks/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration stored in ~/.config/menav-bookmarks/config.yaml.

You can view, set, or unset keys such as bookmarks_dir, user_config_dir,
page_title, max_depth, and output_format. Icon rules (icons) are edited in
the file directly.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfigFromFlag()
		if err != nil {
			return formatConfigLoadError(err)
		}
		return printResult(cmd.Context(), configOutput(cfg))
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Unset a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List supported configuration keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := supportedConfigKeys()
		sort.Strings(keys)
		return printResult(cmd.Context(), keys)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		return printResult(cmd.Context(), path)
	},
}

func configPath() (string, error) {
	if strings.TrimSpace(configFile) != "" {
		return configFile, nil
	}
	return config.DefaultConfigPath()
}

func supportedConfigKeys() []string {
	return []string{
		"bookmarks_dir",
		"user_config_dir",
		"default_config_dir",
		"page_title",
		"page_subtitle",
		"root_label",
		"toolbar_marker",
		"max_depth",
		"deterministic",
		"output_format",
		"serve_addr",
	}
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "bookmarks_dir":
		cfg.BookmarksDir = value
	case "user_config_dir":
		cfg.UserConfigDir = value
	case "default_config_dir":
		cfg.DefaultConfigDir = value
	case "page_title":
		cfg.PageTitle = value
	case "page_subtitle":
		cfg.PageSubtitle = value
	case "root_label":
		cfg.RootLabel = value
	case "toolbar_marker":
		cfg.ToolbarMarker = value
	case "max_depth":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 4 {
			return fmt.Errorf("max_depth must be a number between 1 and 4")
		}
		cfg.MaxDepth = n
	case "deterministic":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("deterministic must be true or false")
		}
		cfg.Deterministic = b
	case "output_format":
		if _, err := output.ParseFormat(value); err != nil {
			return err
		}
		cfg.OutputFormat = value
	case "serve_addr":
		cfg.ServeAddr = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func clearConfigValue(cfg *config.Config, key string) error {
	switch key {
	case "bookmarks_dir":
		cfg.BookmarksDir = ""
	case "user_config_dir":
		cfg.UserConfigDir = ""
	case "default_config_dir":
		cfg.DefaultConfigDir = ""
	case "page_title":
		cfg.PageTitle = ""
	case "page_subtitle":
		cfg.PageSubtitle = ""
	case "root_label":
		cfg.RootLabel = ""
	case "toolbar_marker":
		cfg.ToolbarMarker = ""
	case "max_depth":
		cfg.MaxDepth = 0
	case "deterministic":
		cfg.Deterministic = false
	case "output_format":
		cfg.OutputFormat = ""
	case "serve_addr":
		cfg.ServeAddr = ""
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))
	value := strings.TrimSpace(args[1])

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := applyConfigValue(cfg, key, value); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	ctx := cmd.Context()
	if structuredOutputRequested(ctx) {
		return printResult(ctx, map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	return printResult(ctx, fmt.Sprintf("Updated %s", key))
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(strings.TrimSpace(args[0]))

	cfg, err := loadConfigFromFlag()
	if err != nil {
		return formatConfigLoadError(err)
	}

	if err := clearConfigValue(cfg, key); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	ctx := cmd.Context()
	if structuredOutputRequested(ctx) {
		return printResult(ctx, map[string]string{
			"status": "unset",
			"key":    key,
		})
	}
	return printResult(ctx, fmt.Sprintf("Unset %s", key))
}

// configOutput shows the stored values next to the effective ones.
func configOutput(cfg *config.Config) map[string]any {
	resolved := cfg.Resolved()
	return map[string]any{
		"bookmarks_dir":      resolved.BookmarksDir,
		"user_config_dir":    resolved.UserConfigDir,
		"default_config_dir": resolved.DefaultConfigDir,
		"page_title":         cfg.PageTitle,
		"page_subtitle":      cfg.PageSubtitle,
		"root_label":         cfg.RootLabel,
		"toolbar_marker":     cfg.ToolbarMarker,
		"max_depth":          resolved.MaxDepth,
		"deterministic":      cfg.Deterministic,
		"output_format":      cfg.OutputFormat,
		"serve_addr":         resolved.ServeAddr,
		"icon_rules":         len(cfg.Icons),
	}
}
