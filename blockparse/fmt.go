package blockparse

import (
	"fmt"
	"io"
	"strconv"
)

// Format writes a kind name, providing improved fmt.Printf display.
func (k Kind) Format(f fmt.State, _ rune) {
	switch k {
	case noKind:
		io.WriteString(f, "None")
	case KindBlank:
		io.WriteString(f, "Blank")
	case KindDocument:
		io.WriteString(f, "Document")
	case KindHeading:
		io.WriteString(f, "Heading")
	case KindRuler:
		io.WriteString(f, "Ruler")
	case KindBlockquote:
		io.WriteString(f, "Blockquote")
	case KindList:
		io.WriteString(f, "List")
	case KindItem:
		io.WriteString(f, "Item")
	case KindParagraph:
		io.WriteString(f, "Paragraph")
	case KindCodefence:
		io.WriteString(f, "Codefence")
	case KindCodeblock:
		io.WriteString(f, "Codeblock")
	default:
		fmt.Fprintf(f, "InvalidKind%v", int(k))
	}
}

// Format writes a signal name, providing improved fmt.Printf display.
func (s Signal) Format(f fmt.State, _ rune) {
	switch s {
	case NoMatch:
		io.WriteString(f, "NoMatch")
	case Continue:
		io.WriteString(f, "Continue")
	case Skip:
		io.WriteString(f, "Skip")
	case Terminate:
		io.WriteString(f, "Terminate")
	case TerminateDiscard:
		io.WriteString(f, "TerminateDiscard")
	default:
		fmt.Fprintf(f, "InvalidSignal%v", int(s))
	}
}

// Format writes "List" or "OrderedList", providing improved fmt.Printf
// display. Produces a verbose form with delimiter, any non-default start
// value, and looseness when formatted with `%+v`.
func (l *List) Format(f fmt.State, _ rune) {
	name, delim := "List", l.Bullet
	if l.Ordered {
		name, delim = "OrderedList", l.Delim
	}
	io.WriteString(f, name)
	if f.Flag('+') {
		fmt.Fprintf(f, " delim=%q", delim)
		if l.Ordered && l.Start != l.DefaultStart {
			fmt.Fprintf(f, " start=%s", l.Start)
		}
		if l.Loose {
			io.WriteString(f, " loose")
		} else {
			io.WriteString(f, " tight")
		}
	}
}

// Format writes "Item", providing improved fmt.Printf display. Produces a
// verbose form with the continuation width, and a blank-start flag while
// one is pending, when formatted with `%+v`.
func (it *Item) Format(f fmt.State, _ rune) {
	io.WriteString(f, "Item")
	if f.Flag('+') {
		fmt.Fprintf(f, " width=%d", it.Width)
		if it.BlankStart {
			io.WriteString(f, " blank-start")
		}
	}
}

// Format writes the heading kind and level, providing improved fmt.Printf
// display.
func (h *Heading) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "Heading%d", h.Level)
}

// Format writes "Ruler", adding delimiter and width under `%+v`.
func (r *Ruler) Format(f fmt.State, _ rune) {
	io.WriteString(f, "Ruler")
	if f.Flag('+') {
		fmt.Fprintf(f, " delim=%q width=%d", r.Delim, r.Width)
	}
}

// Format writes "Codefence", adding delimiter and width under `%+v`. The
// info string lives in the source buffer, which a Format method cannot
// see; Dump prints it.
func (cf *Codefence) Format(f fmt.State, _ rune) {
	io.WriteString(f, "Codefence")
	if f.Flag('+') {
		fmt.Fprintf(f, " delim=%q width=%d", cf.Delim, cf.Width)
	}
}

// Dump writes a line-per-block indented view of a parsed tree, quoting
// block content out of src.
func Dump(w io.Writer, n Node, src []byte) error {
	return dumpInto(w, n, src, 0)
}

func dumpInto(w io.Writer, n Node, src []byte, depth int) error {
	for i := 0; i < depth; i++ {
		if _, err := io.WriteString(w, "  "); err != nil {
			return err
		}
	}
	if err := describe(w, n, src); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	for _, kid := range n.Children() {
		if err := dumpInto(w, kid, src, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func describe(w io.Writer, n Node, src []byte) (err error) {
	switch b := n.(type) {
	case *List, *Item, *Ruler:
		_, err = fmt.Fprintf(w, "%+v", b)
	case *Heading:
		_, err = fmt.Fprintf(w, "%+v", b)
		if err == nil {
			err = quoteLines(w, n, src)
		}
	case *Codefence:
		_, err = fmt.Fprintf(w, "%+v", b)
		if err == nil {
			if info := b.Info.Bytes(src); len(info) > 0 {
				_, err = fmt.Fprintf(w, " info=%q", info)
			}
		}
		if err == nil {
			err = quoteLines(w, n, src)
		}
	default:
		_, err = fmt.Fprintf(w, "%v", n.Kind())
		if err == nil {
			err = quoteLines(w, n, src)
		}
	}
	return err
}

func quoteLines(w io.Writer, n Node, src []byte) error {
	for _, line := range n.Lines() {
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if _, err := io.WriteString(w, strconv.Quote(string(line.Bytes(src)))); err != nil {
			return err
		}
	}
	return nil
}
