package blockparse

// Kind determines the semantic meaning of a Node.
type Kind int

// Kind constants for the core commonmark block structures.
const (
	noKind Kind = iota // 0 value should never be seen by user
	KindBlank
	KindDocument
	KindHeading
	KindRuler
	KindBlockquote
	KindList
	KindItem
	KindParagraph
	KindCodefence
	KindCodeblock
)

// Span addresses a range of bytes within the parsed source buffer.
type Span struct {
	Start, End int
}

// Bytes returns the addressed source bytes.
func (s Span) Bytes(src []byte) []byte { return src[s.Start:s.End] }

// Node is a piece of parsed block structure. Container nodes (Document,
// Blockquote, List, Item) hold children; leaf nodes (Paragraph, Heading,
// Codefence, Codeblock) hold content line spans instead. A node remains
// open while the parse may still extend it, and is closed exactly once.
type Node interface {
	Kind() Kind
	Parent() Node
	Children() []Node

	// Open reports whether the parse may still extend this node.
	Open() bool

	// Breakable reports whether a blank line breaks this node rather than
	// continuing it; code blocks absorb blank lines as content and report
	// false.
	Breakable() bool

	// Lines returns the content line spans collected by a leaf node.
	Lines() []Span

	setParent(Node)
	appendChild(Node)
	setChildren([]Node)
	setOpen(bool)
	appendLine(Span)
}

// BaseNode provides the common Node state; every concrete node embeds it,
// as may any externally defined block kind.
type BaseNode struct {
	parent   Node
	children []Node
	lines    []Span
	open     bool
}

// Parent returns the containing node, nil for the document.
func (b *BaseNode) Parent() Node { return b.parent }

// Children returns the contained nodes in document order.
func (b *BaseNode) Children() []Node { return b.children }

// Open reports whether the parse may still extend this node.
func (b *BaseNode) Open() bool { return b.open }

// Breakable reports true; kinds that absorb blank lines shadow it.
func (b *BaseNode) Breakable() bool { return true }

// Lines returns the content line spans collected so far.
func (b *BaseNode) Lines() []Span { return b.lines }

func (b *BaseNode) setParent(n Node)      { b.parent = n }
func (b *BaseNode) appendChild(n Node)    { b.children = append(b.children, n) }
func (b *BaseNode) setChildren(ns []Node) { b.children = ns }
func (b *BaseNode) setOpen(open bool)     { b.open = open }
func (b *BaseNode) appendLine(s Span)     { b.lines = append(b.lines, s) }

// Document is the root of a parsed source.
type Document struct{ BaseNode }

// Kind returns KindDocument.
func (*Document) Kind() Kind { return KindDocument }

// Paragraph is a run of text lines.
type Paragraph struct{ BaseNode }

// Kind returns KindParagraph.
func (*Paragraph) Kind() Kind { return KindParagraph }

// Heading is an ATX heading.
type Heading struct {
	BaseNode
	Level int  // 1 through 6
	Delim byte // '#'
}

// Kind returns KindHeading.
func (*Heading) Kind() Kind { return KindHeading }

// Ruler is a thematic break.
type Ruler struct {
	BaseNode
	Delim byte // '-', '_', or '*'
	Width int  // counts rule bytes, not any spaces between
}

// Kind returns KindRuler.
func (*Ruler) Kind() Kind { return KindRuler }

// Blockquote is a '>'-marked container.
type Blockquote struct{ BaseNode }

// Kind returns KindBlockquote.
func (*Blockquote) Kind() Kind { return KindBlockquote }

// Codefence is a fenced code block.
type Codefence struct {
	BaseNode
	Delim  byte // '`' or '~'
	Width  int  // counts fence Delim bytes
	Indent int  // opening fence indent, trimmed from content lines
	Info   Span // info string after the opening fence
}

// Kind returns KindCodefence.
func (*Codefence) Kind() Kind { return KindCodefence }

// Breakable reports false: blank lines are fence content.
func (*Codefence) Breakable() bool { return false }

// Codeblock is an indented code block. Blank lines inside it are buffered
// and commit only when further indented content arrives, so trailing
// blanks never become content.
type Codeblock struct {
	BaseNode

	buffered []Span
}

// Kind returns KindCodeblock.
func (*Codeblock) Kind() Kind { return KindCodeblock }

// Breakable reports false: blank lines continue an indented block.
func (*Codeblock) Breakable() bool { return false }

// List is a run of sibling list items sharing one marker shape. A list
// whose shape stops matching is closed; a compatible marker appearing
// later starts a new sibling list rather than reopening a closed one.
type List struct {
	BaseNode

	Ordered bool

	// Bullet holds the bullet byte of a bulleted list. For an ordered
	// list it holds the fixed sentinel '1', which carries no numeric
	// meaning and only distinguishes ordered from bulleted when comparing
	// marker shapes.
	Bullet byte

	// Delim holds the delimiter byte of an ordered list: '.' or ')'.
	Delim byte

	// Start is the literal start value of an ordered list: the first
	// item's digits with leading zeros trimmed, except an all-zero run
	// which yields "0".
	Start string

	// DefaultStart is the start value implied when none is written; a
	// renderer emits Start only when the two differ.
	DefaultStart string

	// Column is the source column of the first item's marker.
	Column int

	// Loose reports blank-line separation between or within items. It
	// only ever goes from false to true, during the close pass.
	Loose bool

	// blanks counts Blank markers recorded under this list's items and
	// still pending the close pass; blankRun counts consecutive blank
	// lines and resets on any non-blank continuation.
	blanks   int
	blankRun int
}

// Kind returns KindList.
func (*List) Kind() Kind { return KindList }

// sameShape reports whether a marker belongs to this list rather than
// starting a new sibling list.
func (l *List) sameShape(info ListInfo) bool {
	return l.Ordered == info.Ordered && l.Bullet == info.Bullet && l.Delim == info.Delim
}

// Item is a single list item.
type Item struct {
	BaseNode

	// Column is the source column of the item's marker.
	Column int

	// Width is the number of columns a continuation line must be
	// indented to stay inside the item: the columns from the line's
	// indentation boundary through the marker, its delimiter, and the
	// whitespace absorbed after it.
	Width int

	// BlankStart marks an item whose marker was immediately followed by
	// end of line. Width then holds the provisional requirement (marker
	// columns plus one); the first non-blank continuation line that
	// satisfies it resolves the width and clears the flag.
	BlankStart bool
}

// Kind returns KindItem.
func (*Item) Kind() Kind { return KindItem }

// Blank is a lightweight placeholder recording one blank line against a
// list item; the list's close pass consumes and removes these while
// deciding looseness.
type Blank struct{ BaseNode }

// Kind returns KindBlank.
func (*Blank) Kind() Kind { return KindBlank }
