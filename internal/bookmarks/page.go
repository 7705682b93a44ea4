// Package bookmarks turns a parsed category tree into the bookmarks page
// configuration consumed by the site generator.
package bookmarks

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/menav-bookmarks/internal/netscape"
)

// Children keys by depth. Templates bind to these names, so they are part of
// the page format.
const (
	KeySubcategories = "subcategories"
	KeyGroups        = "groups"
	KeySubgroups     = "subgroups"
)

// DefaultTitle is the page title used when none is configured.
const DefaultTitle = "我的书签"

// ChildrenKey returns the field that holds the children of a category at
// depth, or "" for depths that never have children.
func ChildrenKey(depth int) string {
	switch depth {
	case 1:
		return KeySubcategories
	case 2:
		return KeyGroups
	case 3:
		return KeySubgroups
	default:
		return ""
	}
}

// Category is one entry of the page's category list.
type Category struct {
	Name          string          `json:"name" yaml:"name"`
	Icon          string          `json:"icon" yaml:"icon"`
	Path          []string        `json:"path" yaml:"path"`
	Subcategories []Category      `json:"subcategories,omitempty" yaml:"subcategories,omitempty"`
	Groups        []Category      `json:"groups,omitempty" yaml:"groups,omitempty"`
	Subgroups     []Category      `json:"subgroups,omitempty" yaml:"subgroups,omitempty"`
	Sites         []netscape.Site `json:"sites,omitempty" yaml:"sites,omitempty"`
}

// Children returns whichever children field is set.
func (c Category) Children() []Category {
	switch {
	case len(c.Subcategories) > 0:
		return c.Subcategories
	case len(c.Groups) > 0:
		return c.Groups
	default:
		return c.Subgroups
	}
}

// Page is the bookmarks page document.
type Page struct {
	Title      string     `json:"title" yaml:"title"`
	Subtitle   string     `json:"subtitle" yaml:"subtitle"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// NewPage builds a page from a parsed tree.
func NewPage(title, subtitle string, tree netscape.CategoryTree) Page {
	if title == "" {
		title = DefaultTitle
	}
	page := Page{Title: title, Subtitle: subtitle, Categories: make([]Category, 0, len(tree))}
	for _, node := range tree {
		page.Categories = append(page.Categories, FromNode(node))
	}
	return page
}

// FromNode converts a node and its descendants, placing children under the
// key that matches the node's depth.
func FromNode(n *netscape.CategoryNode) Category {
	c := Category{
		Name:  n.Name,
		Icon:  n.Icon,
		Path:  n.Path,
		Sites: n.Sites,
	}
	if len(n.Children) == 0 {
		return c
	}
	children := make([]Category, 0, len(n.Children))
	for _, child := range n.Children {
		children = append(children, FromNode(child))
	}
	switch ChildrenKey(n.Depth) {
	case KeySubcategories:
		c.Subcategories = children
	case KeyGroups:
		c.Groups = children
	case KeySubgroups:
		c.Subgroups = children
	}
	return c
}

// SiteCount returns the number of sites on the page.
func (p Page) SiteCount() int {
	var count func([]Category) int
	count = func(cats []Category) int {
		n := 0
		for _, c := range cats {
			n += len(c.Sites) + count(c.Children())
		}
		return n
	}
	return count(p.Categories)
}

// MarshalOptions controls the comment header written above the YAML.
type MarshalOptions struct {
	// Deterministic omits the generation timestamp.
	Deterministic bool
	Now           time.Time
	Generator     string
	BookmarksDir  string
}

// MarshalYAML renders the page with its comment header.
func MarshalYAML(page Page, opts MarshalOptions) ([]byte, error) {
	var body bytes.Buffer
	enc := yaml.NewEncoder(&body)
	enc.SetIndent(2)
	if err := enc.Encode(page); err != nil {
		return nil, fmt.Errorf("encoding bookmarks page: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding bookmarks page: %w", err)
	}

	generator := opts.Generator
	if generator == "" {
		generator = "menav-bookmarks"
	}
	dir := opts.BookmarksDir
	if dir == "" {
		dir = "bookmarks"
	}

	var out bytes.Buffer
	out.WriteString("# 自动生成的书签配置文件\n")
	if !opts.Deterministic {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		fmt.Fprintf(&out, "# 由%s生成于 %s\n", generator, now.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&out, "# 若要更新，请将新的书签HTML文件放入%s/目录\n", filepath.ToSlash(dir))
	out.WriteString("# 此文件使用模块化配置格式，位于config/user/pages/目录下\n\n")
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

// ParseYAML reads a page written by MarshalYAML. Comments are ignored.
func ParseYAML(data []byte) (Page, error) {
	var page Page
	if err := yaml.Unmarshal(data, &page); err != nil {
		return Page{}, fmt.Errorf("parsing bookmarks page: %w", err)
	}
	return page, nil
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating pages directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing bookmarks page: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("verifying bookmarks page: %w", err)
	}
	return nil
}

// EmptyTreeError reports a document that produced no categories.
type EmptyTreeError struct {
	File string
}

func (e EmptyTreeError) Error() string {
	if e.File == "" {
		return "no bookmark categories found"
	}
	return fmt.Sprintf("no bookmark categories found in %s", e.File)
}
