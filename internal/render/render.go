// Package render turns a bookmarks page into HTML using the site's
// category and site-card markup.
package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/salmonumbrella/menav-bookmarks/internal/bookmarks"
	"github.com/salmonumbrella/menav-bookmarks/internal/netscape"
)

//go:embed templates/page.html
var pageTemplate string

var tmpl = template.Must(template.New("render").Funcs(template.FuncMap{
	"openHeading":  func(level int) template.HTML { return template.HTML(fmt.Sprintf("<h%d>", level)) },
	"closeHeading": func(level int) template.HTML { return template.HTML(fmt.Sprintf("</h%d>", level)) },
}).Parse(pageTemplate))

type pageView struct {
	Title      string
	Subtitle   string
	Categories []categoryView
}

type categoryView struct {
	Name     string
	Icon     string
	ID       string
	Depth    int
	Sites    []netscape.Site
	Children []categoryView
}

// Level is the heading level for the category: h2 at the top, one deeper
// per nesting level, never past h6.
func (c categoryView) Level() int {
	return min(c.Depth+1, 6)
}

func newPageView(page bookmarks.Page) pageView {
	v := pageView{Title: page.Title, Subtitle: page.Subtitle}
	for _, c := range page.Categories {
		v.Categories = append(v.Categories, newCategoryView(c, 1))
	}
	return v
}

func newCategoryView(c bookmarks.Category, depth int) categoryView {
	v := categoryView{
		Name:  c.Name,
		Icon:  c.Icon,
		ID:    c.Name,
		Depth: depth,
		Sites: c.Sites,
	}
	if depth > 1 && len(c.Path) > 0 {
		v.ID = strings.Join(c.Path, "-")
	}
	for _, child := range c.Children() {
		v.Children = append(v.Children, newCategoryView(child, depth+1))
	}
	return v
}

// Fragment writes the page body: the welcome section followed by one
// section per category.
func Fragment(w io.Writer, page bookmarks.Page) error {
	if err := tmpl.ExecuteTemplate(w, "page", newPageView(page)); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// Document writes a standalone HTML document around Fragment.
func Document(w io.Writer, page bookmarks.Page) error {
	if err := tmpl.ExecuteTemplate(w, "document", newPageView(page)); err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}
	return nil
}
