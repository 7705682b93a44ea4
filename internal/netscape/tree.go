package netscape

import (
	"html"
	"slices"
	"strings"
)

// Parse builds the category tree of a bookmark export.
func Parse(text string, opts Options) *Result {
	return NewDocument(text).Parse(opts)
}

// Parse builds the category tree of d. The toolbar folder's container is the
// top level; without a toolbar folder the first container in the document is
// used, and without any container the tree is empty.
func (d *Document) Parse(opts Options) *Result {
	p := &parser{doc: d, opts: opts.withDefaults()}
	res := &Result{Tree: CategoryTree{}, Source: SourceNone}

	span, src, ok := d.TopContainer(p.opts.ToolbarMarker)
	if !ok {
		return res
	}
	res.Source = src
	res.Container = span

	direct := DirectlyNested(d.FolderRanges(span))
	tree := CategoryTree(p.level(direct, nil, 1))

	if root := p.sites(span, direct); len(root) > 0 {
		p.stats.RootSites = len(root)
		tree = append(CategoryTree{{
			Name:  p.opts.RootLabel,
			Icon:  p.opts.RootIcon,
			Path:  []string{p.opts.RootLabel},
			Sites: root,
			Depth: 1,
		}}, tree...)
	}

	tree.Walk(func(n *CategoryNode) {
		p.stats.Categories++
		p.stats.Sites += len(n.Sites)
	})
	res.Tree = tree
	res.Stats = p.stats
	return res
}

// TopContainer returns the content span of the container that follows the
// toolbar folder header, or of the first container in the document when no
// header carries marker. The span excludes the container markers themselves;
// an unbalanced container runs to the end of the document.
func (d *Document) TopContainer(marker string) (Interval, Source, bool) {
	src, from := SourceFallback, 0
	if h := d.toolbarHeader(marker); h >= 0 {
		src, from = SourceToolbar, h+1
	}
	for i := from; i < len(d.tokens); i++ {
		if d.tokens[i].Kind != KindOpen {
			continue
		}
		span := Interval{Start: d.tokens[i].End, End: len(d.text)}
		if c, ok := d.closing(i, len(d.text)); ok {
			span.End = c.Start
		}
		return span, src, true
	}
	return Interval{}, SourceNone, false
}

func (d *Document) toolbarHeader(marker string) int {
	if marker == "" {
		return -1
	}
	marker = strings.ToUpper(marker)
	for i, tok := range d.tokens {
		if tok.Kind == KindFolder && strings.Contains(strings.ToUpper(tok.Attrs), marker) {
			return i
		}
	}
	return -1
}

type parser struct {
	doc   *Document
	opts  Options
	stats Stats
}

// Build returns the categories for the folders directly inside span, each
// placed at depth with parent as the ancestor path.
func (d *Document) Build(span Interval, parent []string, depth int, opts Options) []*CategoryNode {
	p := &parser{doc: d, opts: opts.withDefaults()}
	return p.level(DirectlyNested(d.FolderRanges(span)), parent, depth)
}

func (p *parser) level(direct []FolderRange, parent []string, depth int) []*CategoryNode {
	var nodes []*CategoryNode
	for _, f := range direct {
		if node := p.folder(f, parent, depth); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func (p *parser) folder(f FolderRange, parent []string, depth int) *CategoryNode {
	body := f.Body()
	nested := DirectlyNested(p.doc.FolderRanges(body))

	name := p.text(f.Name)
	node := &CategoryNode{
		Name:  name,
		Icon:  p.opts.FolderIcon,
		Path:  append(slices.Clone(parent), name),
		Sites: p.sites(body, nested),
		Depth: depth,
	}

	if p.doc.Count(body, KindFolder) > 0 {
		if depth < p.opts.MaxDepth {
			node.Children = p.level(nested, node.Path, depth+1)
		} else {
			p.stats.DroppedFolders += p.doc.Count(body, KindFolder)
			p.stats.DroppedSites += p.doc.covered(body, contents(nested))
		}
	}

	if len(node.Sites) == 0 && len(node.Children) == 0 {
		p.stats.PrunedFolders++
		return nil
	}
	return node
}

func (p *parser) text(raw string) string {
	s := strings.TrimSpace(raw)
	if !p.opts.KeepEntities {
		s = html.UnescapeString(s)
	}
	return s
}
