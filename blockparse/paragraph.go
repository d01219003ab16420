package blockparse

// ParagraphParser owns the fallback text block. It never matches a
// continuation line itself: the engine first offers the line to every
// opener, then appends it to the open paragraph, so interruption and
// lazy continuation both fall out of the open phase.
type ParagraphParser struct{}

// Triggers returns nil; the parser runs only as the engine's fallback.
func (pp *ParagraphParser) Triggers() []byte { return nil }

// TryOpen starts a paragraph from the first non-blank byte, consuming
// the line.
func (pp *ParagraphParser) TryOpen(p *Processor) Signal {
	if p.IsBlank() {
		return NoMatch
	}
	p.RestartIndent()
	p.ParseIndent()
	para := &Paragraph{}
	para.appendLine(p.RestSpan())
	p.PushPending(para, pp)
	p.Advance(len(p.Rest()))
	return Continue
}

// TryContinue ends the paragraph at a blank line and otherwise defers to
// the engine.
func (pp *ParagraphParser) TryContinue(p *Processor, open Node) Signal {
	if p.IsBlank() {
		return TerminateDiscard
	}
	return NoMatch
}

// Close reports success; a paragraph has nothing to resolve.
func (pp *ParagraphParser) Close(p *Processor, n Node) bool { return true }
