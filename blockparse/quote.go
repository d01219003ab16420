package blockparse

// QuoteParser recognizes '>' block quotes.
type QuoteParser struct{}

// Triggers returns the quote marker byte.
func (q *QuoteParser) Triggers() []byte { return []byte{'>'} }

// TryOpen opens a quote at the cursor, consuming the marker and at most
// one column of whitespace after it.
func (q *QuoteParser) TryOpen(p *Processor) Signal {
	if p.IsCodeIndent() || p.Current() != '>' {
		return NoMatch
	}
	p.Advance(1)
	if c := p.Current(); c == ' ' || c == '\t' {
		p.AdvanceColumn()
	}
	p.PushPending(&Blockquote{}, q)
	return Continue
}

// TryContinue matches a further marked line, consuming its marker the
// same way. A quote never spans a blank line, and an unmarked line is
// left to the engine as a possible lazy continuation.
func (q *QuoteParser) TryContinue(p *Processor, open Node) Signal {
	if p.IsBlank() {
		return Terminate
	}
	p.RestartIndent()
	p.ParseIndent()
	if p.IsCodeIndent() || p.Current() != '>' {
		return NoMatch
	}
	p.Advance(1)
	if c := p.Current(); c == ' ' || c == '\t' {
		p.AdvanceColumn()
	}
	return Continue
}

// Close reports success; a quote has nothing to resolve.
func (q *QuoteParser) Close(p *Processor, n Node) bool { return true }
