package blockparse

// HeadingParser recognizes ATX headings: one to six '#' bytes followed by
// whitespace or end of line.
type HeadingParser struct{}

// Triggers returns the heading marker byte.
func (h *HeadingParser) Triggers() []byte { return []byte{'#'} }

// TryOpen matches a heading line, consuming it. The recorded line span
// excludes the opening marker run and any closing run of '#' bytes that
// stands alone after the text.
func (h *HeadingParser) TryOpen(p *Processor) Signal {
	if p.IsCodeIndent() {
		return NoMatch
	}
	start := p.Column()
	level := 0
	for p.Current() == '#' {
		level++
		p.Advance(1)
	}
	if level < 1 || level > 6 {
		p.GoToColumn(start)
		return NoMatch
	}
	if c := p.Current(); c != ' ' && c != '\t' && c != 0 {
		p.GoToColumn(start)
		return NoMatch
	}
	p.ParseIndent()

	rest := p.Rest()
	end := len(rest)
	for end > 0 && (rest[end-1] == ' ' || rest[end-1] == '\t') {
		end--
	}
	if ce := end; ce > 0 {
		for ce > 0 && rest[ce-1] == '#' {
			ce--
		}
		if ce < end && (ce == 0 || rest[ce-1] == ' ' || rest[ce-1] == '\t') {
			end = ce
			for end > 0 && (rest[end-1] == ' ' || rest[end-1] == '\t') {
				end--
			}
		}
	}

	hd := &Heading{Level: level, Delim: '#'}
	at := p.lineStart + p.pos
	hd.appendLine(Span{Start: at, End: at + end})
	p.PushPending(hd, h)
	p.Advance(len(rest))
	return Continue
}

// TryContinue never matches: the engine closes a Heading at the end of
// the line that opened it.
func (h *HeadingParser) TryContinue(p *Processor, open Node) Signal { return NoMatch }

// Close reports success; a heading has nothing to resolve.
func (h *HeadingParser) Close(p *Processor, n Node) bool { return true }
