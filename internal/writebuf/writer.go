package writebuf

import (
	"bytes"
	"io"
)

// Buffer combines a byte buffer with a destination writer and a flush
// policy. Example use:
//
// 	var buf writebuf.Buffer
// 	buf.To = os.Stdout
// 	for _, block := range blocks {
// 		fmt.Fprintln(&buf, block)
// 		buf.MaybeFlush() // TODO errcheck
// 	}
// 	buf.Flush() // TODO errcheck
type Buffer struct {
	FlushPolicy
	To io.Writer
	bytes.Buffer
}

// FlushPolicy determines how much of a Buffer's content should flush
// during the main write phase.
type FlushPolicy interface {
	ShouldFlush(b []byte) int
}

// FlushPolicyFunc adapts a compatible function to FlushPolicy.
type FlushPolicyFunc func(b []byte) int

// ShouldFlush calls the receiver function pointer.
func (f FlushPolicyFunc) ShouldFlush(b []byte) int { return f(b) }

// Flush writes out all buffered content regardless of the FlushPolicy.
// Should be called after the main write phase.
func (buf *Buffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// MaybeFlush writes N bytes into To if the FlushPolicy returns N > 0,
// discarding the written bytes from the buffer. A nil FlushPolicy is
// first set to FlushLineChunks.
func (buf *Buffer) MaybeFlush() error {
	if buf.FlushPolicy == nil {
		buf.FlushPolicy = FlushPolicyFunc(FlushLineChunks)
	}
	b := buf.Bytes()
	if n := buf.ShouldFlush(b); n > 0 {
		m, err := buf.To.Write(b[:n])
		buf.Next(m)
		return err
	}
	return nil
}

// FlushLineChunks is a FlushPolicy(Func) that flushes as large a chunk
// as possible, through the last written newline byte.
func FlushLineChunks(b []byte) int {
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// ErrWriter wraps a writer, retaining its first error and dropping all
// writes after one.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer while Err is nil, retaining any
// returned error.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// Prefixer writes through to a destination writer, prepending Prefix to
// every line. The caller SHOULD call Flush to finish any partial final
// line.
type Prefixer struct {
	Prefix string
	buf    Buffer
}

// NewPrefixer returns a Prefixer writing prefixed lines into w.
func NewPrefixer(prefix string, w io.Writer) *Prefixer {
	p := &Prefixer{Prefix: prefix}
	p.buf.To = w
	return p
}

// Flush writes out any partial final line.
func (p *Prefixer) Flush() error { return p.buf.Flush() }

// Write buffers b, inserting Prefix after every line start, flushing
// complete lines through.
func (p *Prefixer) Write(b []byte) (n int, err error) {
	first := true
	for len(b) > 0 {
		if !first {
			p.buf.WriteString(p.Prefix)
		} else if i := p.buf.Len() - 1; i < 0 || p.buf.Bytes()[i] == '\n' {
			p.buf.WriteString(p.Prefix)
			first = false
		} else {
			first = false
		}

		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			i++
			line = b[:i]
			b = b[i:]
		}
		m, _ := p.buf.Write(line)
		n += m
	}
	return n, p.buf.MaybeFlush()
}

// WriteLines calls next around an internal Buffer, calling MaybeFlush
// after every true return, stopping on false or on a write error.
func WriteLines(to io.Writer, next func(w io.Writer, flush func()) bool) error {
	ew, _ := to.(*ErrWriter)
	if ew == nil {
		ew = &ErrWriter{Writer: to}
	}
	var buf Buffer
	buf.To = ew
	for ew.Err == nil && next(&buf, func() { buf.Flush() }) {
		buf.MaybeFlush()
	}
	buf.Flush()
	return ew.Err
}
