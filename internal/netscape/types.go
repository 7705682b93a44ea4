// Package netscape parses browser bookmark exports in the Netscape Bookmark
// File Format into a category tree.
//
// The format has no closing tags for folder headers, so ownership is worked
// out from byte offsets: each folder header owns the <DL><p> container that
// follows it, containers are balanced with a stack, and a bookmark belongs to
// the innermost folder whose range covers its offset. Parsing never fails;
// malformed input yields a smaller (possibly empty) tree.
package netscape

import "github.com/salmonumbrella/menav-bookmarks/internal/icons"

// Site is a single bookmark.
type Site struct {
	Name        string `json:"name" yaml:"name"`
	URL         string `json:"url" yaml:"url"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
}

// CategoryNode is a folder that holds bookmarks, subfolders, or both.
type CategoryNode struct {
	Name     string          `json:"name"`
	Icon     string          `json:"icon"`
	Path     []string        `json:"path"`
	Sites    []Site          `json:"sites,omitempty"`
	Children []*CategoryNode `json:"children,omitempty"`
	Depth    int             `json:"depth"`
}

// CategoryTree is the ordered list of top-level categories.
type CategoryTree []*CategoryNode

// Walk calls fn for every node in depth-first document order.
func (t CategoryTree) Walk(fn func(*CategoryNode)) {
	for _, n := range t {
		fn(n)
		CategoryTree(n.Children).Walk(fn)
	}
}

// SiteCount returns the number of sites across all nodes.
func (t CategoryTree) SiteCount() int {
	total := 0
	t.Walk(func(n *CategoryNode) { total += len(n.Sites) })
	return total
}

// Source tells where the top-level container was found.
type Source string

const (
	SourceToolbar  Source = "toolbar"
	SourceFallback Source = "fallback"
	SourceNone     Source = "none"
)

// Stats summarizes a parse.
type Stats struct {
	Categories    int `json:"categories" yaml:"categories"`
	Sites         int `json:"sites" yaml:"sites"`
	RootSites     int `json:"root_sites" yaml:"root_sites"`
	PrunedFolders int `json:"pruned_folders" yaml:"pruned_folders"`
	// Folders and bookmarks nested deeper than Options.MaxDepth.
	DroppedFolders int `json:"dropped_folders" yaml:"dropped_folders"`
	DroppedSites   int `json:"dropped_sites" yaml:"dropped_sites"`
}

// Result is the outcome of Parse.
type Result struct {
	Tree      CategoryTree
	Stats     Stats
	Source    Source
	Container Interval
}

// IconResolver picks an icon for a bookmark URL.
type IconResolver interface {
	Resolve(url string) string
}

// DefaultMaxDepth is the deepest folder level that is turned into a category.
const DefaultMaxDepth = 4

// Options configures Parse. Zero fields take the values of DefaultOptions.
type Options struct {
	// ToolbarMarker is matched case-insensitively against folder header
	// attributes to find the toolbar folder.
	ToolbarMarker string
	// RootLabel names the category built from bookmarks that sit directly in
	// the toolbar folder.
	RootLabel  string
	RootIcon   string
	FolderIcon string
	// MaxDepth is clamped to 1..DefaultMaxDepth.
	MaxDepth int
	Icons    IconResolver
	// KeepEntities disables decoding of HTML character references in names
	// and URLs.
	KeepEntities bool
}

// DefaultOptions returns the options used by the site generator.
func DefaultOptions() Options {
	return Options{
		ToolbarMarker: "PERSONAL_TOOLBAR_FOLDER",
		RootLabel:     "根目录书签",
		RootIcon:      "fas fa-star",
		FolderIcon:    "fas fa-folder",
		MaxDepth:      DefaultMaxDepth,
		Icons:         icons.Default(),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ToolbarMarker == "" {
		o.ToolbarMarker = def.ToolbarMarker
	}
	if o.RootLabel == "" {
		o.RootLabel = def.RootLabel
	}
	if o.RootIcon == "" {
		o.RootIcon = def.RootIcon
	}
	if o.FolderIcon == "" {
		o.FolderIcon = def.FolderIcon
	}
	if o.MaxDepth <= 0 || o.MaxDepth > DefaultMaxDepth {
		o.MaxDepth = def.MaxDepth
	}
	if o.Icons == nil {
		o.Icons = def.Icons
	}
	return o
}
