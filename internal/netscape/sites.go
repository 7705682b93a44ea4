package netscape

import "strings"

// Entries returns the bookmark tokens in span whose start offset is not
// covered by any of the excluded intervals. exclude must be sorted by Start
// and non-overlapping.
func (d *Document) Entries(span Interval, exclude []Interval) []Token {
	lo, hi := d.tokensIn(span)
	var out []Token
	k := 0
	for i := lo; i < hi; i++ {
		tok := d.tokens[i]
		if tok.Kind != KindBookmark {
			continue
		}
		for k < len(exclude) && exclude[k].End <= tok.Start {
			k++
		}
		if k < len(exclude) && exclude[k].Covers(tok.Start) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// covered counts the bookmark tokens in span that fall inside one of the
// intervals.
func (d *Document) covered(span Interval, within []Interval) int {
	all := d.Count(span, KindBookmark)
	return all - len(d.Entries(span, within))
}

func (p *parser) sites(span Interval, nested []FolderRange) []Site {
	entries := p.doc.Entries(span, contents(nested))
	if len(entries) == 0 {
		return nil
	}
	sites := make([]Site, 0, len(entries))
	for _, e := range entries {
		url := strings.TrimSpace(e.URL)
		sites = append(sites, Site{
			Name: p.text(e.Name),
			URL:  url,
			Icon: p.opts.Icons.Resolve(url),
		})
	}
	return sites
}
