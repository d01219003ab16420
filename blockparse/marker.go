package blockparse

// ListInfo reports a recognized list marker's shape: everything a List
// needs to decide whether a later marker is a sibling item or the start
// of a new list.
type ListInfo struct {
	Ordered bool

	// Bullet is the matched bullet byte; ordered markers report the fixed
	// sentinel '1', which distinguishes ordered from bulleted in shape
	// comparisons and carries no numeric meaning.
	Bullet byte

	// Delim is the matched ordered delimiter byte.
	Delim byte

	// Start is the ordered start literal: the digits with leading zeros
	// trimmed, except an all-zero run, which yields "0".
	Start string

	// DefaultStart is the start value implied when none is written: "1".
	DefaultStart string
}

// markerKind tags the two closed Marker cases.
type markerKind int

const (
	markerBullet markerKind = iota
	markerOrdinal
)

// Marker recognizes one family of list item markers at a cursor. It is a
// closed variant: Bullets and Ordinals construct the only two cases, each
// carrying its own byte alphabet. A ListParser dispatches to at most one
// Marker per leading byte.
type Marker struct {
	kind   markerKind
	chars  []byte // bytes claimed in the dispatch table
	delims []byte // ordinal delimiter alphabet
}

// Bullets returns a bulleted marker recognizer claiming the given bytes,
// defaulting to '-', '+', and '*'.
func Bullets(chars ...byte) Marker {
	if len(chars) == 0 {
		chars = []byte{'-', '+', '*'}
	}
	return Marker{kind: markerBullet, chars: chars}
}

// Ordinals returns an ordered marker recognizer claiming the decimal
// digits, accepting the given delimiter bytes after the digit run,
// defaulting to '.' and ')'.
func Ordinals(delims ...byte) Marker {
	if len(delims) == 0 {
		delims = []byte{'.', ')'}
	}
	return Marker{kind: markerOrdinal, chars: []byte("0123456789"), delims: delims}
}

// claims returns the leading bytes this recognizer owns.
func (m Marker) claims() []byte { return m.chars }

// parse attempts to recognize a marker at the cursor, leaving it on the
// final bullet or delimiter byte. On failure the cursor is wherever
// scanning stopped; the caller restores it.
func (m Marker) parse(p *Processor) (ListInfo, bool) {
	switch m.kind {
	case markerBullet:
		c := p.Current()
		for _, b := range m.chars {
			if b == c {
				return ListInfo{Bullet: c}, true
			}
		}
	case markerOrdinal:
		return m.parseOrdinal(p)
	}
	return ListInfo{}, false
}

// parseOrdinal consumes a run of one through nine decimal digits followed
// by a configured delimiter. The start literal keeps the digits from the
// first non-zero on; an all-zero run keeps only its final zero.
func (m Marker) parseOrdinal(p *Processor) (ListInfo, bool) {
	digits, start, last := 0, -1, -1
	for c := p.Current(); '0' <= c && c <= '9'; c = p.Current() {
		last = p.lineStart + p.pos
		if start < 0 && c != '0' {
			start = last
		}
		p.Advance(1)
		if digits++; digits > 9 {
			return ListInfo{}, false
		}
	}
	if digits == 0 {
		return ListInfo{}, false
	}
	if start < 0 {
		start = last
	}
	c := p.Current()
	for _, d := range m.delims {
		if d == c {
			return ListInfo{
				Ordered:      true,
				Bullet:       '1',
				Delim:        c,
				Start:        string(p.src[start : last+1]),
				DefaultStart: "1",
			}, true
		}
	}
	return ListInfo{}, false
}
