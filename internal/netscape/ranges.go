package netscape

import "strings"

// FolderRange is a folder header together with the container it owns.
// Content runs from the start of the header to the end of the container's
// closing marker, or to the end of the scanned span when the container is
// never closed.
type FolderRange struct {
	Name      string
	Attrs     string
	HeaderEnd int
	Content   Interval
	Closed    bool
}

// Body is the part of the folder after its header: the container markers and
// everything between them.
func (f FolderRange) Body() Interval {
	return Interval{Start: f.HeaderEnd, End: f.Content.End}
}

// FolderRanges lists every containered folder header in span, nested or not,
// in document order. A header whose next token is not an opening container
// marker owns no content and is left out.
func (d *Document) FolderRanges(span Interval) []FolderRange {
	lo, hi := d.tokensIn(span)
	var ranges []FolderRange
	for i := lo; i < hi; i++ {
		header := d.tokens[i]
		if header.Kind != KindFolder {
			continue
		}
		if i+1 >= hi || d.tokens[i+1].Kind != KindOpen {
			continue
		}

		end, closed := span.End, false
		if c, ok := d.ScanContainer(d.tokens[i+1].End, span.End); ok {
			end, closed = c.End, true
		}
		ranges = append(ranges, FolderRange{
			Name:      strings.TrimSpace(header.Name),
			Attrs:     header.Attrs,
			HeaderEnd: header.End,
			Content:   Interval{Start: header.Start, End: end},
			Closed:    closed,
		})
	}
	return ranges
}

// DirectlyNested keeps the ranges that no other range in the list contains.
// Ranges must be in document order, as FolderRanges returns them; container
// matching makes them either disjoint or nested, so comparing against the
// last kept range is enough.
func DirectlyNested(ranges []FolderRange) []FolderRange {
	direct := make([]FolderRange, 0, len(ranges))
	for _, r := range ranges {
		if n := len(direct); n > 0 && direct[n-1].Content.Contains(r.Content) {
			continue
		}
		direct = append(direct, r)
	}
	return direct
}

func contents(ranges []FolderRange) []Interval {
	out := make([]Interval, len(ranges))
	for i, r := range ranges {
		out[i] = r.Content
	}
	return out
}
