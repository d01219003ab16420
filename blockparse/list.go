package blockparse

import "github.com/pkg/errors"

// ListParser recognizes list blocks and their items. It dispatches the
// leading byte of a candidate marker through a table of Marker
// recognizers built up front, and consults a thematic break recognizer
// before committing: when both read a line, the break wins and the list
// reports no match.
type ListParser struct {
	markers []Marker
	ruler   *RulerParser
	table   [256]*Marker
	trig    []byte
}

// NewListParser returns a list parser dispatching to the given marker
// recognizers, defaulting to Bullets() and Ordinals(). Two recognizers
// claiming the same leading byte is a configuration error.
func NewListParser(ruler *RulerParser, markers ...Marker) (*ListParser, error) {
	if len(markers) == 0 {
		markers = []Marker{Bullets(), Ordinals()}
	}
	l := &ListParser{markers: markers, ruler: ruler}
	if err := l.init(); err != nil {
		return nil, err
	}
	return l, nil
}

// init builds the marker dispatch table, failing fast when a byte is
// already claimed by a different recognizer.
func (l *ListParser) init() error {
	l.table = [256]*Marker{}
	l.trig = l.trig[:0]
	for i := range l.markers {
		m := &l.markers[i]
		for _, c := range m.claims() {
			if prior := l.table[c]; prior != nil && prior != m {
				return errors.Errorf("list marker byte %q claimed twice", c)
			}
			if l.table[c] == nil {
				l.trig = append(l.trig, c)
			}
			l.table[c] = m
		}
	}
	return nil
}

// Triggers returns the bytes claimed by the registered marker
// recognizers.
func (l *ListParser) Triggers() []byte { return l.trig }

// TryOpen opens a new list and item at the cursor. A code-indented line
// never starts a list.
func (l *ListParser) TryOpen(p *Processor) Signal {
	if l.openItem(p, nil, nil) {
		return Continue
	}
	return NoMatch
}

// TryContinue decides whether the line stays inside an open list or item.
func (l *ListParser) TryContinue(p *Processor, open Node) Signal {
	switch b := open.(type) {
	case *List:
		if _, ok := p.NextContinue().(*Item); ok {
			// the open item decides
			return Skip
		}
		// the item closed early after a blank start; the list is still
		// open for a sibling marker
		p.RestartIndent()
		if l.openItem(p, b, nil) {
			return Continue
		}
		return NoMatch
	case *Item:
		return l.continueItem(p, b)
	}
	return NoMatch
}

// continueItem matches a line against an open item: blank-line
// bookkeeping, hanging-indent continuation, or a sibling/new-list marker
// at the item's own column.
func (l *ListParser) continueItem(p *Processor, item *Item) Signal {
	list := item.Parent().(*List)

	if p.IsBlank() {
		// a blank inside a code block is content there, not structure;
		// only a breakable innermost block lets the list see it, and a
		// nested list about to continue records it itself
		if p.Tip().Breakable() {
			if _, ok := p.NextContinue().(*List); !ok {
				recordBlank(item, list)
			}
			list.blankRun++
		}
		if list.blankRun > 1 {
			// a second consecutive blank ends the whole list; a later
			// marker starts a fresh one
			p.CloseBlock(list)
			return TerminateDiscard
		}
		if list.blankRun == 1 && item.BlankStart {
			// one leading blank is allowed; a second line of content
			// never came, so the item ends while the list stays open
			p.CloseBlock(item)
			return Continue
		}
		return Continue
	}

	list.blankRun = 0

	p.RestartIndent()
	p.ParseIndent()
	if p.Indent() >= item.Width {
		// surplus indent belongs to the content: leave the cursor at the
		// item's content column so inner blocks measure from it, whether
		// the surplus is inert or an indented code block's
		p.GoToColumn(p.indent + item.Width)
		item.BlankStart = false
		return Continue
	}

	// under-indented: only another marker keeps the line in the list
	if l.openItem(p, list, item) {
		return Continue
	}
	return NoMatch
}

// openItem runs the marker-open algorithm at the cursor. list holds the
// enclosing open list when continuing one, item the open item a sibling
// would displace. The indentation frame must have been restarted at the
// line's current structural origin; leading whitespace may be unconsumed.
func (l *ListParser) openItem(p *Processor, list *List, item *Item) bool {
	p.ParseIndent()
	if item == nil && p.IsCodeIndent() {
		// a code-indented line never bears a marker, except when an open
		// item lets it displace a sibling
		return false
	}
	origin := p.indent
	initCol := p.Column()

	// a line reading as a thematic break never reads as a list item
	if l.ruler != nil && l.ruler.opensAt(p.Current()) {
		if l.ruler.TryOpen(p) == Continue {
			p.PopPending()
			p.GoToColumn(initCol)
			return false
		}
		p.GoToColumn(initCol)
	}

	m := l.table[p.Current()]
	if m == nil {
		return false
	}
	info, ok := m.parse(p)
	if !ok {
		p.GoToColumn(initCol)
		return false
	}
	p.Advance(1) // the bullet or delimiter byte

	ni := &Item{Column: initCol}
	if p.Current() == 0 {
		// the item starts with a blank line; content must still clear
		// the marker plus the one column a space would have taken
		ni.Width = p.Column() - origin + 1
		ni.BlankStart = true
	} else {
		if c := p.Current(); c != ' ' && c != '\t' {
			p.GoToColumn(initCol)
			return false
		}
		p.AdvanceColumn()
		p.RestartIndent()
		mark := p.Column()
		p.ParseIndent()
		if p.IsCodeIndent() {
			// indentation reaching code width is not absorbed: it is the
			// content, an indented code block
			p.GoToColumn(mark)
		}
		ni.Width = p.Column() - origin
	}

	if list == nil && p.Tip().Kind() == KindParagraph {
		// a brand-new list interrupts a paragraph only when its first
		// item has content and, if ordered, starts at 1
		if ni.BlankStart || (info.Ordered && info.Start != "1") {
			p.GoToColumn(initCol)
			return false
		}
	}

	sameList := list != nil && list.sameShape(info)
	if item != nil {
		p.CloseBlock(item)
	}
	if !sameList {
		if list != nil {
			p.CloseBlock(list)
		}
		nl := &List{
			Ordered:      info.Ordered,
			Bullet:       info.Bullet,
			Delim:        info.Delim,
			Start:        info.Start,
			DefaultStart: info.DefaultStart,
			Column:       initCol,
		}
		p.PushPending(nl, l)
	}
	p.PushPending(ni, l)
	return true
}

// recordBlank appends a Blank marker to an item and counts it against the
// owning list for the close pass.
func recordBlank(item Node, list *List) {
	b := &Blank{}
	item.appendChild(b)
	b.setParent(item)
	list.blanks++
}

// Close resolves a closing list's looseness from the Blank markers its
// items collected, removing them as it goes. Items are visited in reverse
// document order, each item's children likewise; the decisions and the
// filtered child sequence are accumulated locally and committed per item
// in one step. The walk stops as soon as the list's blank count is spent.
func (l *ListParser) Close(p *Processor, n Node) bool {
	list, ok := n.(*List)
	if !ok || list.blanks <= 0 {
		return true
	}
	items := list.Children()
	for li := len(items) - 1; li >= 0 && list.blanks > 0; li-- {
		item := items[li]
		var (
			kids    = item.Children()
			last    = len(kids) - 1
			live    = len(kids)
			drop    []bool
			dropped int
		)
		for i := last; i >= 0 && list.blanks > dropped; i-- {
			if kids[i].Kind() != KindBlank {
				continue
			}
			trailing := i == last
			if (trailing && li < len(items)-1) || (live > 2 && i > 0 && i < last) {
				// a blank between items, or between an item's own blocks,
				// makes the list loose
				list.Loose = true
			}
			if trailing && li == len(items)-1 {
				// the very last blank of the whole list is also blank
				// space trailing an enclosing item, visible to the
				// enclosing list's own close pass
				if parent, ok := list.Parent().(*Item); ok {
					recordBlank(parent, parent.Parent().(*List))
				}
			}
			if drop == nil {
				drop = make([]bool, len(kids))
			}
			drop[i] = true
			dropped++
			live--
		}
		if dropped > 0 {
			keep := make([]Node, 0, len(kids)-dropped)
			for i, k := range kids {
				if !drop[i] {
					keep = append(keep, k)
				}
			}
			item.setChildren(keep)
			list.blanks -= dropped
		}
	}
	return true
}
