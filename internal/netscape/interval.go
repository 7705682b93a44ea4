package netscape

// Interval is a half-open [Start, End) range of byte offsets into a document.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether inner lies strictly inside iv. The start comparison
// is strict so a range never contains itself; the end boundary is inclusive.
func (iv Interval) Contains(inner Interval) bool {
	return inner.Start > iv.Start && inner.End <= iv.End
}

// Covers reports whether pos falls within [Start, End).
func (iv Interval) Covers(pos int) bool {
	return pos >= iv.Start && pos < iv.End
}

// Len returns the number of bytes in the interval.
func (iv Interval) Len() int {
	if iv.End < iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// Empty reports whether the interval spans no bytes.
func (iv Interval) Empty() bool {
	return iv.Len() == 0
}
