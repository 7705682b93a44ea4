package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/menav-bookmarks/internal/icons"
	"github.com/salmonumbrella/menav-bookmarks/internal/netscape"
)

// AppName is the application name used for the config directory.
const AppName = "menav-bookmarks"

// Defaults for keys left unset. Directories are relative to the site project.
const (
	DefaultBookmarksDir     = "bookmarks"
	DefaultUserConfigDir    = "config/user"
	DefaultDefaultConfigDir = "config/_default"
	DefaultServeAddr        = "127.0.0.1:8080"
)

// Config holds CLI configuration
type Config struct {
	BookmarksDir     string `yaml:"bookmarks_dir,omitempty"`
	UserConfigDir    string `yaml:"user_config_dir,omitempty"`
	DefaultConfigDir string `yaml:"default_config_dir,omitempty"`
	PageTitle        string `yaml:"page_title,omitempty"`
	PageSubtitle     string `yaml:"page_subtitle,omitempty"`
	RootLabel        string `yaml:"root_label,omitempty"`
	ToolbarMarker    string `yaml:"toolbar_marker,omitempty"`
	MaxDepth         int    `yaml:"max_depth,omitempty"`
	Deterministic    bool   `yaml:"deterministic,omitempty"`
	OutputFormat     string `yaml:"output_format,omitempty"` // text, json, yaml, table
	ServeAddr        string `yaml:"serve_addr,omitempty"`
	// Icons are checked before the built-in rules.
	Icons []icons.Rule `yaml:"icons,omitempty"`
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultConfigPath returns the default config file path
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ReadConfig reads the config file from the default location
func ReadConfig() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load loads config from the given path. A missing file yields an empty
// config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.MaxDepth < 0 || cfg.MaxDepth > netscape.DefaultMaxDepth {
		return nil, fmt.Errorf("parsing config: max_depth must be between 1 and %d", netscape.DefaultMaxDepth)
	}

	return &cfg, nil
}

// Save saves config to the given path
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Resolved returns a copy with defaults filled in for unset keys.
func (c Config) Resolved() Config {
	if c.BookmarksDir == "" {
		c.BookmarksDir = DefaultBookmarksDir
	}
	if c.UserConfigDir == "" {
		c.UserConfigDir = DefaultUserConfigDir
	}
	if c.DefaultConfigDir == "" {
		c.DefaultConfigDir = DefaultDefaultConfigDir
	}
	if c.ServeAddr == "" {
		c.ServeAddr = DefaultServeAddr
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = netscape.DefaultMaxDepth
	}
	return c
}

// ParseOptions builds parser options from the config. Custom icon rules take
// precedence over the built-in table.
func (c Config) ParseOptions() netscape.Options {
	opts := netscape.DefaultOptions()
	if c.RootLabel != "" {
		opts.RootLabel = c.RootLabel
	}
	if c.ToolbarMarker != "" {
		opts.ToolbarMarker = c.ToolbarMarker
	}
	if c.MaxDepth > 0 {
		opts.MaxDepth = c.MaxDepth
	}
	if len(c.Icons) > 0 {
		rules := append(append([]icons.Rule(nil), c.Icons...), icons.DefaultRules...)
		opts.Icons = icons.New(rules, icons.DefaultIcon)
	}
	return opts
}
