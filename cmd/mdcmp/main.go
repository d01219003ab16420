// Command mdcmp prints the list structure a markdown document parses to
// under several engines, to eyeball where they agree and diverge.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/russross/blackfriday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jcorbin/listdown/blockparse"
	"github.com/jcorbin/listdown/internal/writebuf"
)

func main() {
	var engines string
	flag.StringVar(&engines, "engines", "blockparse,goldmark,blackfriday",
		"comma separated engines to run")
	flag.Parse()

	log.SetFlags(0)
	if err := run(os.Stdin, os.Stdout, strings.Split(engines, ",")); err != nil {
		log.Fatal(err)
	}
}

func run(in io.Reader, out io.Writer, engines []string) error {
	src, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "read input")
	}

	ew := &writebuf.ErrWriter{Writer: out}
	for _, eng := range engines {
		fmt.Fprintf(ew, "# %s\n", eng)
		body := writebuf.NewPrefixer("  ", ew)
		switch eng {
		case "blockparse":
			err = dumpBlockparse(body, src)
		case "goldmark":
			err = dumpGoldmark(body, src)
		case "blackfriday":
			err = dumpBlackfriday(body, src)
		default:
			err = errors.Errorf("unknown engine %q", eng)
		}
		body.Flush()
		if err != nil {
			return errors.Wrapf(err, "engine %s", eng)
		}
		if ew.Err != nil {
			return ew.Err
		}
	}
	return ew.Err
}

func dumpBlockparse(w io.Writer, src []byte) error {
	doc := blockparse.Parse(src)
	var walk func(n blockparse.Node, depth int) error
	walk = func(n blockparse.Node, depth int) error {
		indent := strings.Repeat("  ", depth)
		var err error
		switch b := n.(type) {
		case *blockparse.Document:
		case *blockparse.List:
			kind, delim := "list", b.Bullet
			if b.Ordered {
				kind, delim = "orderedlist", b.Delim
			}
			_, err = fmt.Fprintf(w, "%s%s delim=%q start=%s %s\n",
				indent, kind, delim, startOf(b), looseness(b.Loose))
		case *blockparse.Item:
			_, err = fmt.Fprintf(w, "%sitem\n", indent)
		default:
			_, err = fmt.Fprintf(w, "%s%v\n", indent, strings.ToLower(fmt.Sprintf("%v", n.Kind())))
		}
		if err != nil {
			return err
		}
		kidDepth := depth + 1
		if n.Kind() == blockparse.KindDocument {
			kidDepth = depth
		}
		for _, kid := range n.Children() {
			if err := walk(kid, kidDepth); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(doc, 0)
}

func startOf(l *blockparse.List) string {
	if !l.Ordered {
		return "-"
	}
	return l.Start
}

func looseness(loose bool) string {
	if loose {
		return "loose"
	}
	return "tight"
}

func dumpGoldmark(w io.Writer, src []byte) error {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	depth := 0
	return ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Kind() != ast.KindDocument {
				depth--
			}
			return ast.WalkContinue, nil
		}
		var err error
		indent := strings.Repeat("  ", depth)
		switch b := n.(type) {
		case *ast.Document:
			return ast.WalkContinue, nil
		case *ast.List:
			kind := "list"
			start := "-"
			if b.IsOrdered() {
				kind = "orderedlist"
				start = fmt.Sprint(b.Start)
			}
			_, err = fmt.Fprintf(w, "%s%s delim=%q start=%s %s\n",
				indent, kind, b.Marker, start, looseness(!b.IsTight))
		case *ast.ListItem:
			_, err = fmt.Fprintf(w, "%sitem\n", indent)
		default:
			_, err = fmt.Fprintf(w, "%s%s\n", indent, strings.ToLower(n.Kind().String()))
		}
		depth++
		if err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkContinue, nil
	})
}

func dumpBlackfriday(w io.Writer, src []byte) error {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.FencedCode | blackfriday.SpaceHeadings))
	doc := md.Parse(src)
	depth := 0
	var err error
	doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering {
			if n.Type != blackfriday.Document {
				depth--
			}
			return blackfriday.GoToNext
		}
		indent := strings.Repeat("  ", depth)
		switch n.Type {
		case blackfriday.Document:
			return blackfriday.GoToNext
		case blackfriday.List:
			kind, delim, start := "list", n.BulletChar, "-"
			if n.ListFlags&blackfriday.ListTypeOrdered != 0 {
				kind, delim = "orderedlist", n.Delimiter
				start = "?" // blackfriday does not retain the start number
			}
			_, err = fmt.Fprintf(w, "%s%s delim=%q start=%s %s\n",
				indent, kind, delim, start, looseness(!n.Tight))
		case blackfriday.Item:
			_, err = fmt.Fprintf(w, "%sitem\n", indent)
		default:
			_, err = fmt.Fprintf(w, "%s%s\n", indent, strings.ToLower(n.Type.String()))
		}
		depth++
		if err != nil {
			return blackfriday.Terminate
		}
		return blackfriday.GoToNext
	})
	return err
}
