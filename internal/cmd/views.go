package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/salmonumbrella/menav-bookmarks/internal/bookmarks"
	"github.com/salmonumbrella/menav-bookmarks/internal/netscape"
	"github.com/salmonumbrella/menav-bookmarks/internal/output"
)

// pageView prints a page as an indented outline in text mode and as the
// page document otherwise.
type pageView bookmarks.Page

func (p pageView) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", p.Title); err != nil {
		return err
	}
	var walk func(cats []bookmarks.Category, depth int) error
	walk = func(cats []bookmarks.Category, depth int) error {
		indent := strings.Repeat("  ", depth)
		for _, c := range cats {
			if _, err := fmt.Fprintf(w, "%s%s (%d)\n", indent, c.Name, len(c.Sites)); err != nil {
				return err
			}
			for _, s := range c.Sites {
				if _, err := fmt.Fprintf(w, "%s  - %s  %s\n", indent, s.Name, s.URL); err != nil {
					return err
				}
			}
			if err := walk(c.Children(), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(p.Categories, 1)
}

// statsView summarizes a parse.
type statsView struct {
	File           string          `json:"file" yaml:"file"`
	Source         netscape.Source `json:"source" yaml:"source"`
	netscape.Stats `yaml:",inline"`
}

func newStatsView(doc document) statsView {
	return statsView{File: doc.File, Source: doc.Result.Source, Stats: doc.Result.Stats}
}

func (s statsView) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"File:        %s\nSource:      %s\nCategories:  %d\nSites:       %d\nRoot sites:  %d\nPruned:      %d empty folders\nDropped:     %d folders, %d sites below the depth limit\n",
		s.File, s.Source, s.Categories, s.Sites, s.RootSites, s.PrunedFolders, s.DroppedFolders, s.DroppedSites)
	return err
}

// categoryRow is one category in the flattened listing.
type categoryRow struct {
	Path     string `json:"path" yaml:"path"`
	Depth    int    `json:"depth" yaml:"depth"`
	Sites    int    `json:"sites" yaml:"sites"`
	Children int    `json:"children" yaml:"children"`
}

type categoryRows []categoryRow

func flattenTree(tree netscape.CategoryTree) categoryRows {
	rows := categoryRows{}
	tree.Walk(func(n *netscape.CategoryNode) {
		rows = append(rows, categoryRow{
			Path:     strings.Join(n.Path, " / "),
			Depth:    n.Depth,
			Sites:    len(n.Sites),
			Children: len(n.Children),
		})
	})
	return rows
}

func (r categoryRows) WriteText(w io.Writer) error {
	for _, row := range r {
		if _, err := fmt.Fprintf(w, "%s (%d sites)\n", row.Path, row.Sites); err != nil {
			return err
		}
	}
	return nil
}

func (r categoryRows) Table() output.Table {
	t := output.Table{Headers: []string{"PATH", "DEPTH", "SITES", "CHILDREN"}}
	for _, row := range r {
		t.Rows = append(t.Rows, []string{row.Path, strconv.Itoa(row.Depth), strconv.Itoa(row.Sites), strconv.Itoa(row.Children)})
	}
	return t
}
