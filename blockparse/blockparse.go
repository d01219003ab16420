package blockparse

import (
	"io"

	"github.com/pkg/errors"
)

// Parser holds a configured set of block parsers: a trigger table keyed
// by leading byte, the parsers consulted on any line, and the paragraph
// fallback. A Parser is immutable once built and may be shared across
// parses.
type Parser struct {
	parsers  []BlockParser
	triggers [256][]BlockParser
	anytime  []BlockParser
	fallback BlockParser
}

// New builds a Parser over the given block parsers, in priority order,
// running any upfront setup they carry. Given none, it uses the default
// set: thematic breaks, headings, quotes, fenced code, lists with the
// default markers, and indented code, with paragraphs as fallback.
func New(parsers ...BlockParser) (*Parser, error) {
	if len(parsers) == 0 {
		ruler := &RulerParser{}
		list, err := NewListParser(ruler)
		if err != nil {
			return nil, err
		}
		parsers = []BlockParser{
			ruler,
			&HeadingParser{},
			&QuoteParser{},
			&FenceParser{},
			list,
			&CodeblockParser{},
		}
	}
	cfg := &Parser{parsers: parsers, fallback: &ParagraphParser{}}
	for _, bp := range parsers {
		if in, ok := bp.(initer); ok {
			if err := in.init(); err != nil {
				return nil, errors.Wrap(err, "blockparse: parser setup")
			}
		}
		trig := bp.Triggers()
		if trig == nil {
			cfg.anytime = append(cfg.anytime, bp)
			continue
		}
		for _, c := range trig {
			cfg.triggers[c] = append(cfg.triggers[c], bp)
		}
	}
	return cfg, nil
}

// Parse parses a source document into its block tree. The returned
// nodes hold spans into src rather than copies.
func (cfg *Parser) Parse(src []byte) *Document {
	return newProcessor(cfg, src).process()
}

// ParseReader reads r to its end and parses the result.
func (cfg *Parser) ParseReader(r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "blockparse: read source")
	}
	return cfg.Parse(src), nil
}

// Parse parses src with the default block parsers.
func Parse(src []byte) *Document {
	cfg, err := New()
	if err != nil {
		// the default recognizers never collide
		panic(err)
	}
	return cfg.Parse(src)
}
