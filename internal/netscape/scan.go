package netscape

import (
	"regexp"
	"sort"
)

// Kind identifies the markup construct a token was cut from.
type Kind uint8

const (
	// KindFolder is a folder header: <DT><H3 attrs>name</H3>.
	KindFolder Kind = iota + 1
	// KindBookmark is a leaf entry: <DT><A HREF="url" ...>name</A>.
	KindBookmark
	// KindOpen opens a folder container: <DL><p>.
	KindOpen
	// KindClose closes a folder container: </DL><p>.
	KindClose
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindBookmark:
		return "bookmark"
	case KindOpen:
		return "open"
	case KindClose:
		return "close"
	default:
		return "unknown"
	}
}

// Token is one recognized construct with its byte offsets in the document.
// Name and URL are raw, untrimmed source text.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Attrs string
	Name  string
	URL   string
}

// Span returns the offsets the token occupies.
func (t Token) Span() Interval {
	return Interval{Start: t.Start, End: t.End}
}

var tokenPattern = regexp.MustCompile(`(?i)<DT><H3([^>]*)>(.*?)</H3>|<DT><A HREF="([^"]+)"[^>]*>(.*?)</A>|<DL><p>|</DL><p>`)

// Tokenize cuts text into an ordered token list in a single forward pass.
// Anything that is not a folder header, bookmark entry or container marker
// is skipped.
func Tokenize(text string) []Token {
	locs := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		tok := Token{Start: loc[0], End: loc[1]}
		switch {
		case loc[2] >= 0:
			tok.Kind = KindFolder
			tok.Attrs = text[loc[2]:loc[3]]
			tok.Name = text[loc[4]:loc[5]]
		case loc[6] >= 0:
			tok.Kind = KindBookmark
			tok.URL = text[loc[6]:loc[7]]
			tok.Name = text[loc[8]:loc[9]]
		case text[loc[0]+1] == '/':
			tok.Kind = KindClose
		default:
			tok.Kind = KindOpen
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// MatchContainers pairs container markers with a stack. The result holds, for
// every open token, the index of its balancing close token, and -1 for every
// other token and for opens that are never balanced. A close with nothing open
// is ignored.
func MatchContainers(tokens []Token) []int {
	match := make([]int, len(tokens))
	stack := make([]int, 0, 16)
	for i, tok := range tokens {
		match[i] = -1
		switch tok.Kind {
		case KindOpen:
			stack = append(stack, i)
		case KindClose:
			if n := len(stack); n > 0 {
				match[stack[n-1]] = i
				stack = stack[:n-1]
			}
		}
	}
	return match
}

// Document is a tokenized, immutable bookmark export. It is safe for
// concurrent use.
type Document struct {
	text   string
	tokens []Token
	match  []int
}

// NewDocument tokenizes text and resolves container nesting.
func NewDocument(text string) *Document {
	tokens := Tokenize(text)
	return &Document{
		text:   text,
		tokens: tokens,
		match:  MatchContainers(tokens),
	}
}

// Text returns the source text.
func (d *Document) Text() string {
	return d.text
}

// Count returns how many tokens of kind k lie entirely within span.
func (d *Document) Count(span Interval, k Kind) int {
	n := 0
	lo, hi := d.tokensIn(span)
	for i := lo; i < hi; i++ {
		if d.tokens[i].Kind == k {
			n++
		}
	}
	return n
}

// ScanContainer finds the closing marker that balances the container whose
// opening marker ends at from. It returns false when no opening marker ends at
// from, or when the balancing close does not end by limit; callers then treat
// the container as running to limit.
func (d *Document) ScanContainer(from, limit int) (Interval, bool) {
	open := d.firstAt(from) - 1
	if open < 0 || d.tokens[open].Kind != KindOpen || d.tokens[open].End != from {
		return Interval{}, false
	}
	return d.closing(open, limit)
}

func (d *Document) closing(open, limit int) (Interval, bool) {
	m := d.match[open]
	if m < 0 || d.tokens[m].End > limit {
		return Interval{}, false
	}
	return d.tokens[m].Span(), true
}

// firstAt returns the index of the first token starting at or after pos.
func (d *Document) firstAt(pos int) int {
	return sort.Search(len(d.tokens), func(i int) bool {
		return d.tokens[i].Start >= pos
	})
}

// tokensIn returns the index range [lo, hi) of tokens that start inside span.
// Spans always end on a token boundary, so every token in the range also ends
// inside it.
func (d *Document) tokensIn(span Interval) (int, int) {
	lo := d.firstAt(span.Start)
	hi := d.firstAt(span.End)
	for hi > lo && d.tokens[hi-1].End > span.End {
		hi--
	}
	return lo, hi
}
