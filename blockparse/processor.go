package blockparse

// TODO partial tab consumption leaves the whole tab byte in content spans;
// a content reader wanting exact commonmark output must expand it itself

import "bytes"

// Signal is a block parser's answer when asked to open or continue a block.
type Signal int

const (
	// NoMatch reports that the line is not claimed; the engine restores
	// the cursor and treats the block (and everything deeper) as the
	// unmatched suffix.
	NoMatch Signal = iota

	// Continue reports that the line is claimed and the block stays open.
	Continue

	// Skip reports that the block neither claims nor rejects the line:
	// the engine must not re-test it against sibling recognizers, because
	// a nested block will claim it instead.
	Skip

	// Terminate closes the block, keeping its content; the line stays in
	// play for shallower blocks and new openers.
	Terminate

	// TerminateDiscard closes the block and consumes the line outright.
	TerminateDiscard
)

// BlockParser recognizes one family of block structure. Implementations
// must be side-effect free on failed recognition, except for the cursor,
// which the engine restores around any NoMatch.
type BlockParser interface {
	// Triggers returns the leading bytes that should cause the engine to
	// consult this parser when opening new blocks; nil means consult on
	// any line (indented code has no leading byte).
	Triggers() []byte

	// TryOpen attempts to open one or more new blocks at the cursor,
	// pushing them pending. It reports NoMatch or Continue.
	TryOpen(p *Processor) Signal

	// TryContinue asks whether the current line continues the given open
	// block. Any Signal may be reported.
	TryContinue(p *Processor, open Node) Signal

	// Close runs this parser's close pass over a block it opened, and
	// reports success. It runs exactly once per block, innermost block
	// first, so that a nested close pass may amend a still-open ancestor.
	Close(p *Processor, n Node) bool
}

// initer is implemented by parsers that build lookup state up front; New
// runs it once and fails fast on configuration errors.
type initer interface {
	init() error
}

// codeIndent is the column threshold at and beyond which leading
// whitespace reads as indented code rather than block structure.
const codeIndent = 4

// openBlock pairs an open node with the parser that owns it.
type openBlock struct {
	node      Node
	parser    BlockParser
	matchLine int // last line number this block matched
}

// Processor carries the mutable state of one document parse: the source,
// the current line window and cursor, indentation tracking, the open block
// stack, and the pending stack of speculatively opened blocks. Block
// parsers consume and mutate it through the methods below.
//
// It is not safe to use a Processor from parallel goroutines.
type Processor struct {
	cfg *Parser
	src []byte

	doc     *Document
	open    []openBlock
	pending []openBlock

	srcPos    int // next unread source offset
	lineStart int // current line span within src,
	lineEnd   int // excluding any terminator
	lineNo    int

	pos    int // byte offset within the current line
	col    int // visual column of the cursor
	tabCol int // columns already consumed from a tab byte at pos
	indent int // column where indentation tracking was restarted

	conti    int // continue-phase stack index, -1 outside the phase
	contSnap []openBlock
}

func newProcessor(cfg *Parser, src []byte) *Processor {
	doc := &Document{}
	doc.setOpen(true)
	return &Processor{
		cfg:   cfg,
		src:   src,
		doc:   doc,
		open:  []openBlock{{node: doc}},
		conti: -1,
	}
}

// process drives the whole parse: one pass per line, then close out.
func (p *Processor) process() *Document {
	for p.nextLine() {
		p.processLine()
	}
	for len(p.open) > 1 {
		p.CloseBlock(p.open[len(p.open)-1].node)
	}
	p.doc.setOpen(false)
	return p.doc
}

// nextLine advances the line window, trimming the terminator. A final
// unterminated line is consumed; a trailing newline does not produce a
// phantom empty line.
func (p *Processor) nextLine() bool {
	if p.srcPos >= len(p.src) {
		return false
	}
	p.lineStart = p.srcPos
	if i := bytes.IndexByte(p.src[p.srcPos:], '\n'); i >= 0 {
		p.lineEnd = p.srcPos + i
		p.srcPos = p.lineEnd + 1
	} else {
		p.lineEnd = len(p.src)
		p.srcPos = p.lineEnd
	}
	if p.lineEnd > p.lineStart && p.src[p.lineEnd-1] == '\r' {
		p.lineEnd--
	}
	p.pos, p.col, p.tabCol, p.indent = 0, 0, 0, 0
	p.lineNo++
	return true
}

// processLine matches the line against open blocks outermost-in, then
// tries to open new blocks, then hands any remaining text to a paragraph.
func (p *Processor) processLine() {
	p.open[0].matchLine = p.lineNo

	if consumed := p.continueBlocks(); consumed {
		return
	}
	if len(p.pending) > 0 {
		// a restructuring continuation (sibling list item) opened blocks
		p.attachPending()
	}

	if p.IsBlank() {
		// containers persist across blank lines; anything left unmatched
		// on a blank is a list waiting on an item that never came
		p.closeUnmatched()
		return
	}

	// a matched code leaf consumed the remainder as content; an unmatched
	// one is just the top of the suffix that openers may displace
	if top := p.open[len(p.open)-1]; top.matchLine == p.lineNo {
		if k := top.node.Kind(); k == KindCodefence || k == KindCodeblock {
			return
		}
	}

	opened := false
	for p.tryOpeners(!opened) {
		opened = true
		// a code leaf takes the remainder as content
		if k := p.Tip().Kind(); k == KindCodefence || k == KindCodeblock {
			return
		}
	}

	if !opened {
		if tip := p.Tip(); tip.Kind() == KindParagraph {
			// ordinary continuation when matched, lazy continuation when
			// not: either way the text belongs to the open paragraph and
			// unmatched blocks above it stay open
			p.RestartIndent()
			p.ParseIndent()
			tip.appendLine(p.RestSpan())
			return
		}
		p.closeUnmatched()
	}

	// whatever text remains seeds a paragraph under the deepest open block
	if !p.IsBlank() {
		if p.cfg.fallback.TryOpen(p) == Continue {
			p.attachPending()
		}
	}

	// one-line blocks end with their line
	if k := p.Tip().Kind(); k == KindRuler || k == KindHeading {
		p.CloseBlock(p.Tip())
	}
}

// continueBlocks runs the continuation phase over a snapshot of the open
// stack and reports whether the line was consumed outright.
func (p *Processor) continueBlocks() bool {
	p.contSnap = append(p.contSnap[:0], p.open...)
	defer func() { p.conti = -1 }()
	for i := 1; i < len(p.contSnap); i++ {
		ob := p.contSnap[i]
		if !ob.node.Open() {
			// closed by a restructuring continuation above
			break
		}
		p.conti = i
		save := p.col
		switch ob.parser.TryContinue(p, ob.node) {
		case Continue:
			p.stamp(ob.node)
			if !ob.node.Open() {
				// the block closed or was replaced while claiming the
				// line; its parent inherits the match so it is not then
				// closed as unmatched
				p.stamp(ob.node.Parent())
				return false
			}
		case Skip:
			// the open item decides; a matched descendant shields this
			// block from the unmatched close
		case NoMatch:
			p.GoToColumn(save)
			return false
		case Terminate:
			p.CloseBlock(ob.node)
			return false
		case TerminateDiscard:
			p.CloseBlock(ob.node)
			return true
		}
	}
	return false
}

// tryOpeners consults trigger-matching parsers at the cursor, attaching
// the first match. first marks the first attempt of the line, which must
// close the unmatched suffix before attaching anything.
func (p *Processor) tryOpeners(first bool) bool {
	preIndent := p.col
	p.RestartIndent()
	p.ParseIndent()
	at := p.col

	try := func(bp BlockParser) bool {
		if bp.TryOpen(p) == Continue {
			if first {
				p.closeUnmatched()
			}
			p.attachPending()
			return true
		}
		p.GoToColumn(at)
		return false
	}

	if c := p.Current(); c != 0 {
		for _, bp := range p.cfg.triggers[c] {
			if try(bp) {
				return true
			}
		}
	}
	for _, bp := range p.cfg.anytime {
		if try(bp) {
			return true
		}
	}
	p.GoToColumn(preIndent)
	return false
}

// stamp records that a block matched the current line.
func (p *Processor) stamp(n Node) {
	for i := range p.open {
		if p.open[i].node == n {
			p.open[i].matchLine = p.lineNo
			return
		}
	}
}

// closeUnmatched closes open blocks, deepest first, that did not match
// the current line.
func (p *Processor) closeUnmatched() {
	for len(p.open) > 1 {
		top := p.open[len(p.open)-1]
		if top.matchLine == p.lineNo {
			return
		}
		p.CloseBlock(top.node)
	}
}

// attachPending attaches pending blocks under the innermost open block,
// in push order, marking them matched for this line.
func (p *Processor) attachPending() {
	for _, ob := range p.pending {
		parent := p.open[len(p.open)-1].node
		parent.appendChild(ob.node)
		ob.node.setParent(parent)
		ob.node.setOpen(true)
		ob.matchLine = p.lineNo
		p.open = append(p.open, ob)
	}
	p.pending = p.pending[:0]
}

// Tip returns the innermost currently-open block.
func (p *Processor) Tip() Node {
	return p.open[len(p.open)-1].node
}

// NextContinue returns the open block that will be asked to continue
// after the one currently being asked, or nil outside the continuation
// phase or at its end. List blocks use it to defer to their open item
// and to avoid double-recording blank lines a nested list will record.
func (p *Processor) NextContinue() Node {
	if p.conti < 0 || p.conti+1 >= len(p.contSnap) {
		return nil
	}
	return p.contSnap[p.conti+1].node
}

// PushPending pushes a newly opened block to be attached once the engine
// settles where it belongs. A speculative open is undone with PopPending.
func (p *Processor) PushPending(n Node, owner BlockParser) {
	p.pending = append(p.pending, openBlock{node: n, parser: owner})
}

// PopPending discards the most recently pushed pending block.
func (p *Processor) PopPending() Node {
	if len(p.pending) == 0 {
		return nil
	}
	n := p.pending[len(p.pending)-1].node
	p.pending = p.pending[:len(p.pending)-1]
	return n
}

// CloseBlock closes an open block and any open blocks nested inside it,
// innermost first, running each owner's close pass. Closing a block that
// is not on the open stack is a no-op.
func (p *Processor) CloseBlock(n Node) {
	at := -1
	for i := 1; i < len(p.open); i++ {
		if p.open[i].node == n {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	for i := len(p.open) - 1; i >= at; i-- {
		ob := p.open[i]
		ob.parser.Close(p, ob.node)
		ob.node.setOpen(false)
		p.open = p.open[:i]
	}
}

// Current returns the byte at the cursor, 0 at end of line. Inside a
// partially consumed tab it reads as a space.
func (p *Processor) Current() byte {
	if p.pos >= p.lineEnd-p.lineStart {
		return 0
	}
	if p.tabCol > 0 {
		return ' '
	}
	return p.src[p.lineStart+p.pos]
}

// Rest returns the unconsumed remainder of the current line.
func (p *Processor) Rest() []byte {
	return p.src[p.lineStart+p.pos : p.lineEnd]
}

// RestSpan returns the source span of the unconsumed remainder.
func (p *Processor) RestSpan() Span {
	return Span{Start: p.lineStart + p.pos, End: p.lineEnd}
}

// Column returns the cursor's visual column, 0-based, with tabs advancing
// to the next multiple of four.
func (p *Processor) Column() int { return p.col }

// Advance moves the cursor n bytes forward, updating the column; a tab
// advances to its stop, finishing one already partially consumed.
func (p *Processor) Advance(n int) {
	for ; n > 0; n-- {
		if p.pos >= p.lineEnd-p.lineStart {
			return
		}
		if p.src[p.lineStart+p.pos] == '\t' {
			start := p.col - p.tabCol
			p.col = start + 4 - start%4
		} else {
			p.col++
		}
		p.pos++
		p.tabCol = 0
	}
}

// AdvanceColumn moves the cursor forward exactly one column, consuming a
// tab partially when one spans the position.
func (p *Processor) AdvanceColumn() {
	if p.pos >= p.lineEnd-p.lineStart {
		return
	}
	if p.src[p.lineStart+p.pos] == '\t' {
		start := p.col - p.tabCol
		stop := start + 4 - start%4
		p.col++
		p.tabCol++
		if p.col >= stop {
			p.pos++
			p.tabCol = 0
		}
		return
	}
	p.col++
	p.pos++
}

// RestartIndent restarts indentation tracking at the cursor.
func (p *Processor) RestartIndent() { p.indent = p.col }

// Indent returns the columns consumed since indentation tracking was
// last restarted.
func (p *Processor) Indent() int { return p.col - p.indent }

// IsCodeIndent reports whether Indent has reached the indented-code
// threshold of four columns.
func (p *Processor) IsCodeIndent() bool { return p.Indent() >= codeIndent }

// ParseIndent consumes the run of spaces and tabs at the cursor.
func (p *Processor) ParseIndent() {
	for {
		switch {
		case p.tabCol > 0:
			// finish the partially consumed tab
			p.col += 4 - (p.col-p.tabCol)%4 - p.tabCol
			p.pos++
			p.tabCol = 0
		case p.Current() == ' ':
			p.pos++
			p.col++
		case p.Current() == '\t':
			p.col += 4 - p.col%4
			p.pos++
		default:
			return
		}
	}
}

// ParseIndentTo consumes whitespace column by column until Indent reaches
// limit or a non-whitespace byte intervenes. A tab straddling the limit is
// consumed only up to it.
func (p *Processor) ParseIndentTo(limit int) {
	for p.Indent() < limit {
		if c := p.Current(); c != ' ' && c != '\t' {
			return
		}
		p.AdvanceColumn()
	}
}

// IsBlank reports whether the rest of the line is empty or whitespace.
func (p *Processor) IsBlank() bool {
	for _, c := range p.Rest() {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

// GoToColumn repositions the cursor to a visual column by rescanning from
// the start of the line. A target inside a tab leaves the cursor on the
// tab byte with the leading columns marked consumed.
func (p *Processor) GoToColumn(col int) {
	p.pos, p.col, p.tabCol = 0, 0, 0
	n := p.lineEnd - p.lineStart
	for p.col < col && p.pos < n {
		if c := p.src[p.lineStart+p.pos]; c == '\t' {
			stop := p.col + 4 - p.col%4
			if stop > col {
				p.tabCol = col - p.col
				p.col = col
				return
			}
			p.col = stop
			p.pos++
		} else {
			p.col++
			p.pos++
		}
	}
	if p.col < col {
		p.col = col
	}
}
