package blockparse

import "bytes"

// FenceParser recognizes fenced code blocks: a run of three or more '`'
// or '~' bytes, closed by an at-least-as-long run of the same byte.
type FenceParser struct{}

// Triggers returns the fence delimiter bytes.
func (f *FenceParser) Triggers() []byte { return []byte{'`', '~'} }

// TryOpen matches an opening fence, recording its delimiter, width,
// indent, and info string, and consuming the line.
func (f *FenceParser) TryOpen(p *Processor) Signal {
	if p.IsCodeIndent() {
		return NoMatch
	}
	delim := p.Current()
	if delim != '`' && delim != '~' {
		return NoMatch
	}
	start := p.Column()
	indent := p.Indent()
	width := 0
	for p.Current() == delim {
		width++
		p.Advance(1)
	}
	if width < 3 {
		p.GoToColumn(start)
		return NoMatch
	}

	info := bytes.TrimRight(bytes.TrimLeft(p.Rest(), " \t"), " \t")
	if delim == '`' && bytes.IndexByte(info, '`') >= 0 {
		// an info string on a backtick fence cannot contain backticks
		p.GoToColumn(start)
		return NoMatch
	}
	p.ParseIndent()
	at := p.lineStart + p.pos
	cf := &Codefence{
		Delim:  delim,
		Width:  width,
		Indent: indent,
		Info:   Span{Start: at, End: at + len(info)},
	}
	p.PushPending(cf, f)
	p.Advance(len(p.Rest()))
	return Continue
}

// TryContinue closes the block on a matching closing fence, otherwise
// takes the line as content with up to the opening indent trimmed.
func (f *FenceParser) TryContinue(p *Processor, open Node) Signal {
	cf := open.(*Codefence)
	start := p.Column()
	p.RestartIndent()
	p.ParseIndent()
	if !p.IsCodeIndent() && p.Current() == cf.Delim {
		width := 0
		for p.Current() == cf.Delim {
			width++
			p.Advance(1)
		}
		if width >= cf.Width && p.IsBlank() {
			return TerminateDiscard
		}
	}
	p.GoToColumn(start)
	p.RestartIndent()
	p.ParseIndentTo(cf.Indent)
	open.appendLine(p.RestSpan())
	return Continue
}

// Close reports success; an unclosed fence simply ends with its parent.
func (f *FenceParser) Close(p *Processor, n Node) bool { return true }

// CodeblockParser recognizes indented code blocks: non-blank lines at
// four or more columns of indent, anywhere a paragraph is not open.
type CodeblockParser struct{}

// Triggers returns nil: indented code has no leading byte, so the parser
// is consulted on any line.
func (c *CodeblockParser) Triggers() []byte { return nil }

// TryOpen opens a code block when the cursor sits at code indent,
// taking the line beyond four columns as its first content line.
func (c *CodeblockParser) TryOpen(p *Processor) Signal {
	if !p.IsCodeIndent() || p.IsBlank() {
		return NoMatch
	}
	if p.Tip().Kind() == KindParagraph {
		// indented text under an open paragraph is its lazy continuation
		return NoMatch
	}
	p.GoToColumn(p.indent + codeIndent)
	cb := &Codeblock{}
	cb.appendLine(p.RestSpan())
	p.PushPending(cb, c)
	return Continue
}

// TryContinue buffers blank lines and commits them only once more
// indented content arrives, so trailing blanks never become content. An
// under-indented non-blank line ends the block.
func (c *CodeblockParser) TryContinue(p *Processor, open Node) Signal {
	cb := open.(*Codeblock)
	if p.IsBlank() {
		p.RestartIndent()
		p.ParseIndentTo(codeIndent)
		cb.buffered = append(cb.buffered, p.RestSpan())
		return Continue
	}
	p.RestartIndent()
	p.ParseIndent()
	if !p.IsCodeIndent() {
		return NoMatch
	}
	p.GoToColumn(p.indent + codeIndent)
	for _, sp := range cb.buffered {
		cb.appendLine(sp)
	}
	cb.buffered = cb.buffered[:0]
	cb.appendLine(p.RestSpan())
	return Continue
}

// Close drops any still-buffered trailing blank lines.
func (c *CodeblockParser) Close(p *Processor, n Node) bool {
	if cb, ok := n.(*Codeblock); ok {
		cb.buffered = nil
	}
	return true
}
