// Command lsblock parses markdown block structure from stdin or a file
// and prints the resulting tree, one line per block.
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/renameio"
	"github.com/pkg/errors"

	"github.com/jcorbin/listdown/blockparse"
	"github.com/jcorbin/listdown/internal/writebuf"
)

func main() {
	var (
		verbose bool
		outFile string
	)
	flag.BoolVar(&verbose, "v", false, "also print line spans and content hexdumps")
	flag.StringVar(&outFile, "o", "", "write output into a file, atomically, instead of stdout")
	flag.Parse()

	log.SetFlags(0)
	if err := run(flag.Args(), outFile, verbose); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, outFile string, verbose bool) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}

	doc := blockparse.Parse(src)

	if outFile != "" {
		var buf bytes.Buffer
		if err := dump(&buf, doc, src, verbose); err != nil {
			return err
		}
		return errors.Wrapf(renameio.WriteFile(outFile, buf.Bytes(), 0644), "write %q", outFile)
	}
	return dump(os.Stdout, doc, src, verbose)
}

func readInput(args []string) ([]byte, error) {
	if len(args) > 1 {
		return nil, errors.Errorf("expected at most one input file, got %q", args)
	}
	if len(args) == 0 {
		src, err := io.ReadAll(os.Stdin)
		return src, errors.Wrap(err, "read stdin")
	}
	src, err := os.ReadFile(args[0])
	return src, errors.Wrapf(err, "read %q", args[0])
}

// dump writes the block tree listing into w through line-buffered
// writebuf plumbing.
func dump(w io.Writer, doc *blockparse.Document, src []byte, verbose bool) error {
	if !verbose {
		ew := &writebuf.ErrWriter{Writer: w}
		var buf writebuf.Buffer
		buf.To = ew
		if err := blockparse.Dump(&buf, doc, src); err != nil {
			return err
		}
		buf.Flush()
		return ew.Err
	}
	return dumpVerbose(w, doc, src)
}

// dumpVerbose walks the tree without recursing, writing one node per
// pass so that complete lines flush through as they are produced.
func dumpVerbose(to io.Writer, doc *blockparse.Document, src []byte) error {
	type frame struct {
		n     blockparse.Node
		depth int
	}
	stack := []frame{{doc, 0}}
	return writebuf.WriteLines(to, func(w io.Writer, _ func()) bool {
		if len(stack) == 0 {
			return false
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		kids := f.n.Children()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], f.depth + 1})
		}
		dumpNode(w, f.n, src, f.depth)
		return true
	})
}

// dumpNode prints one block with its line spans, hexdumping content so
// whitespace structure is visible. Write errors ride the downstream
// ErrWriter.
func dumpNode(w io.Writer, n blockparse.Node, src []byte, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.(type) {
	case *blockparse.List, *blockparse.Item, *blockparse.Ruler,
		*blockparse.Heading, *blockparse.Codefence:
		fmt.Fprintf(w, "%s%+v", indent, n)
	default:
		fmt.Fprintf(w, "%s%v", indent, n.Kind())
	}
	lines := n.Lines()
	for _, sp := range lines {
		fmt.Fprintf(w, " @%v:%v", sp.Start, sp.End)
	}
	io.WriteString(w, "\n")
	if len(lines) > 0 {
		body := writebuf.NewPrefixer(indent+"  ", w)
		io.WriteString(body, "```hexdump\n")
		dumper := hex.Dumper(body)
		for _, sp := range lines {
			dumper.Write(sp.Bytes(src))
			dumper.Write([]byte{'\n'})
		}
		dumper.Close()
		io.WriteString(body, "```\n")
		body.Flush()
	}
}
