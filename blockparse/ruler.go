package blockparse

// RulerParser recognizes thematic breaks: three or more of one delimiter
// byte, alone on a line, with any amount of interleaved whitespace.
type RulerParser struct{}

// Triggers returns the thematic break delimiter bytes.
func (r *RulerParser) Triggers() []byte { return []byte{'-', '_', '*'} }

// opensAt reports whether c can begin a thematic break. The list parser
// consults it before claiming a marker byte the two share.
func (r *RulerParser) opensAt(c byte) bool {
	return c == '-' || c == '_' || c == '*'
}

// TryOpen matches the whole rest of the line as a thematic break,
// consuming it. Width counts delimiter bytes only.
func (r *RulerParser) TryOpen(p *Processor) Signal {
	if p.IsCodeIndent() {
		return NoMatch
	}
	delim := p.Current()
	if !r.opensAt(delim) {
		return NoMatch
	}
	start := p.Column()
	width := 0
	for {
		switch p.Current() {
		case delim:
			width++
			p.Advance(1)
		case ' ', '\t':
			p.Advance(1)
		case 0:
			if width < 3 {
				p.GoToColumn(start)
				return NoMatch
			}
			p.PushPending(&Ruler{Delim: delim, Width: width}, r)
			return Continue
		default:
			p.GoToColumn(start)
			return NoMatch
		}
	}
}

// TryContinue never matches: the engine closes a Ruler at the end of the
// line that opened it.
func (r *RulerParser) TryContinue(p *Processor, open Node) Signal { return NoMatch }

// Close reports success; a thematic break has nothing to resolve.
func (r *RulerParser) Close(p *Processor, n Node) bool { return true }
