package blockparse_test

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/listdown/blockparse"
)

func Example() {
	src := []byte(`# Shopping

- milk
- eggs
  with a lazy note

1. first
2. second
   - nested

> quoted:
>
> 3) three
`)
	doc := blockparse.Parse(src)
	blockparse.Dump(os.Stdout, doc, src)
	// Output:
	// Document
	//   Heading1 "Shopping"
	//   List delim='-' tight
	//     Item width=2
	//       Paragraph "milk"
	//     Item width=2
	//       Paragraph "eggs" "with a lazy note"
	//   OrderedList delim='.' tight
	//     Item width=3
	//       Paragraph "first"
	//     Item width=3
	//       Paragraph "second"
	//       List delim='-' tight
	//         Item width=2
	//           Paragraph "nested"
	//   Blockquote
	//     Paragraph "quoted:"
	//     OrderedList delim=')' start=3 tight
	//       Item width=3
	//         Paragraph "three"
}

func dumpOf(t *testing.T, src string) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, blockparse.Dump(&sb, blockparse.Parse([]byte(src)), []byte(src)),
		"must dump the parsed tree")
	return sb.String()
}

func kindsOf(n blockparse.Node) (ks []blockparse.Kind) {
	for _, kid := range n.Children() {
		ks = append(ks, kid.Kind())
	}
	return ks
}

func textsOf(n blockparse.Node, src string) (ss []string) {
	for _, sp := range n.Lines() {
		ss = append(ss, string(sp.Bytes([]byte(src))))
	}
	return ss
}

func Test_Parse_lazyContinuation(t *testing.T) {
	t.Run("into an item", func(t *testing.T) {
		assert.Equal(t, strings.Join([]string{
			"Document",
			"  List delim='-' tight",
			"    Item width=2",
			`      Paragraph "a" "lazy"`,
			"",
		}, "\n"), dumpOf(t, "- a\nlazy\n"))
	})

	t.Run("into a quote", func(t *testing.T) {
		assert.Equal(t, strings.Join([]string{
			"Document",
			"  Blockquote",
			`    Paragraph "a" "lazy"`,
			"",
		}, "\n"), dumpOf(t, "> a\nlazy\n"))
	})

	t.Run("a blank ends it", func(t *testing.T) {
		assert.Equal(t, strings.Join([]string{
			"Document",
			"  List delim='-' tight",
			"    Item width=2",
			`      Paragraph "a"`,
			`  Paragraph "x"`,
			"",
		}, "\n"), dumpOf(t, "- a\n\nx\n"))
	})
}

func Test_Parse_tabs(t *testing.T) {
	t.Run("tab after the marker", func(t *testing.T) {
		src := "-\tx\n"
		doc := blockparse.Parse([]byte(src))
		require.Equal(t, []blockparse.Kind{blockparse.KindList}, kindsOf(doc))
		item := doc.Children()[0].Children()[0].(*blockparse.Item)
		assert.Equal(t, 4, item.Width, "the tab advances to its stop")
		require.Equal(t, []blockparse.Kind{blockparse.KindParagraph}, kindsOf(item))
		assert.Equal(t, []string{"x"}, textsOf(item.Children()[0], src))
	})

	t.Run("tabbed continuation line", func(t *testing.T) {
		src := "- a\n\tb\n"
		doc := blockparse.Parse([]byte(src))
		item := doc.Children()[0].Children()[0]
		require.Equal(t, []blockparse.Kind{blockparse.KindParagraph}, kindsOf(item))
		assert.Equal(t, []string{"a", "b"}, textsOf(item.Children()[0], src),
			"four tab columns satisfy a width of two")
	})
}

func Test_Parse_quoteFrames(t *testing.T) {
	src := "> - a\n> - b\n"
	doc := blockparse.Parse([]byte(src))
	require.Equal(t, []blockparse.Kind{blockparse.KindBlockquote}, kindsOf(doc))
	quote := doc.Children()[0]
	require.Equal(t, []blockparse.Kind{blockparse.KindList}, kindsOf(quote))
	list := quote.Children()[0].(*blockparse.List)
	assert.Len(t, list.Children(), 2, "both marked lines joined the list")
	assert.False(t, list.Loose)
	item := list.Children()[0].(*blockparse.Item)
	assert.Equal(t, 2, item.Column, "columns measured past the quote marker")
	assert.Equal(t, 2, item.Width, "width measured from the item's origin")
}

func Test_Parse_fences(t *testing.T) {
	t.Run("fence inside an item", func(t *testing.T) {
		src := "- ```go\n  code\n  ```\n- b\n"
		doc := blockparse.Parse([]byte(src))
		list := doc.Children()[0].(*blockparse.List)
		require.Len(t, list.Children(), 2, "the closed fence does not eat the next item")
		assert.False(t, list.Loose)
		item := list.Children()[0]
		require.Equal(t, []blockparse.Kind{blockparse.KindCodefence}, kindsOf(item))
		cf := item.Children()[0].(*blockparse.Codefence)
		assert.Equal(t, byte('`'), cf.Delim)
		assert.Equal(t, 3, cf.Width)
		assert.Equal(t, "go", string(cf.Info.Bytes([]byte(src))))
		assert.Equal(t, []string{"code"}, textsOf(cf, src))
	})

	t.Run("fence absorbs blank lines", func(t *testing.T) {
		src := "- ~~~\n  a\n\n  b\n  ~~~\n- c\n"
		assert.Equal(t, strings.Join([]string{
			"Document",
			"  List delim='-' tight",
			"    Item width=2",
			`      Codefence delim='~' width=3 "a" "" "b"`,
			"    Item width=2",
			`      Paragraph "c"`,
			"",
		}, "\n"), dumpOf(t, src), "the blank is fence content, never list structure")
	})
}

func Test_Parse_afterCode(t *testing.T) {
	t.Run("paragraph after indented code", func(t *testing.T) {
		assert.Equal(t, strings.Join([]string{
			"Document",
			`  Codeblock "code"`,
			`  Paragraph "bar"`,
			"",
		}, "\n"), dumpOf(t, "    code\nbar\n"), "an under-indented line ends the block and stays in play")
	})

	t.Run("list after indented code", func(t *testing.T) {
		assert.Equal(t, strings.Join([]string{
			"Document",
			`  Codeblock "code"`,
			"  List delim='-' tight",
			"    Item width=2",
			`      Paragraph "x"`,
			"",
		}, "\n"), dumpOf(t, "    code\n- x\n"))
	})

	t.Run("paragraph after an item's unclosed fence", func(t *testing.T) {
		assert.Equal(t, strings.Join([]string{
			"Document",
			"  List delim='-' tight",
			"    Item width=2",
			"      Codefence delim='`' width=3",
			`  Paragraph "x"`,
			"",
		}, "\n"), dumpOf(t, "- ```\nx\n"), "fences have no lazy continuation")
	})

	t.Run("paragraph after a quoted fence", func(t *testing.T) {
		assert.Equal(t, strings.Join([]string{
			"Document",
			"  Blockquote",
			"    Codefence delim='`' width=3",
			`  Paragraph "x"`,
			"",
		}, "\n"), dumpOf(t, "> ```\nx\n"))
	})
}

func Test_Parse_headings(t *testing.T) {
	t.Run("heading closes an open list", func(t *testing.T) {
		assert.Equal(t, strings.Join([]string{
			"Document",
			"  List delim='-' tight",
			"    Item width=2",
			`      Paragraph "a"`,
			`  Heading1 "h"`,
			"",
		}, "\n"), dumpOf(t, "- a\n# h\n"))
	})

	t.Run("closing hash run trimmed", func(t *testing.T) {
		src := "### h ###\n"
		doc := blockparse.Parse([]byte(src))
		require.Equal(t, []blockparse.Kind{blockparse.KindHeading}, kindsOf(doc))
		hd := doc.Children()[0].(*blockparse.Heading)
		assert.Equal(t, 3, hd.Level)
		assert.Equal(t, []string{"h"}, textsOf(hd, src))
	})
}

func Test_Parse_empty(t *testing.T) {
	assert.Equal(t, "Document\n", dumpOf(t, ""))
	assert.Equal(t, "Document\n", dumpOf(t, "\n\n  \n"))
}

func Test_Parse_crlf(t *testing.T) {
	assert.Equal(t, strings.Join([]string{
		"Document",
		"  List delim='-' tight",
		"    Item width=2",
		`      Paragraph "a"`,
		"    Item width=2",
		`      Paragraph "b"`,
		"",
	}, "\n"), dumpOf(t, "- a\r\n- b\r\n"), "carriage returns stay out of spans")
}

func Test_ParseReader(t *testing.T) {
	cfg, err := blockparse.New()
	require.NoError(t, err, "must build the default parser")

	t.Run("reads to end", func(t *testing.T) {
		doc, err := cfg.ParseReader(strings.NewReader("- a\n"))
		require.NoError(t, err, "must parse")
		assert.Equal(t, []blockparse.Kind{blockparse.KindList}, kindsOf(doc))
	})

	t.Run("propagates read errors", func(t *testing.T) {
		_, err := cfg.ParseReader(iotest.ErrReader(errors.New("boom")))
		if assert.Error(t, err, "expected the reader's error") {
			assert.Contains(t, err.Error(), "read source")
		}
	})
}

func Test_Parser_shared(t *testing.T) {
	cfg, err := blockparse.New()
	require.NoError(t, err, "must build the default parser")
	for i, src := range []string{"- a\n", "1. b\n", "> c\n"} {
		doc := cfg.Parse([]byte(src))
		assert.Len(t, doc.Children(), 1, "parse %v: one top block", i)
		assert.False(t, doc.Open(), "parse %v: document closed", i)
	}
}

func Test_Node_format(t *testing.T) {
	src := "7) x\n"
	doc := blockparse.Parse([]byte(src))
	list := doc.Children()[0].(*blockparse.List)
	assert.Equal(t, "OrderedList", fmt.Sprintf("%v", list))
	assert.Equal(t, "OrderedList delim=')' start=7 tight", fmt.Sprintf("%+v", list))
	item := list.Children()[0].(*blockparse.Item)
	assert.Equal(t, "Item", fmt.Sprintf("%v", item))
	assert.Equal(t, "Item width=3", fmt.Sprintf("%+v", item))
}
