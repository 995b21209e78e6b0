package pybindgen

import (
	"fmt"
	"strings"

	"github.com/component-model/witpy/internal/stringio"
)

const indentWidth = 4

// buffer is an append-only indented text buffer with a cursor, grounded on
// the donor's per-file content accumulation in internal/go/gen, adapted
// from gofmt-on-save Go emission to indent/dedent Python emission (Python
// has no formatter pass to fix up whitespace after the fact).
type buffer struct {
	b      strings.Builder
	indent int
	atBOL  bool // true if the next write starts a new line
}

func newBuffer() *buffer {
	return &buffer{atBOL: true}
}

// Indent increases the indent level for subsequent lines.
func (b *buffer) Indent() { b.indent++ }

// Dedent decreases the indent level for subsequent lines.
func (b *buffer) Dedent() {
	if b.indent > 0 {
		b.indent--
	}
}

// WriteString appends s to the buffer, inserting the current indent at the
// start of every line s begins.
func (b *buffer) WriteString(s string) {
	for len(s) > 0 {
		if b.atBOL && s != "\n" {
			stringio.Write(&b.b, strings.Repeat(" ", b.indent*indentWidth))
			b.atBOL = false
		}
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			stringio.Write(&b.b, s)
			return
		}
		stringio.Write(&b.b, s[:i+1])
		b.atBOL = true
		s = s[i+1:]
	}
}

// Printf writes a formatted line-fragment to the buffer.
func (b *buffer) Printf(format string, args ...any) {
	b.WriteString(fmt.Sprintf(format, args...))
}

// NewLine terminates the current line.
func (b *buffer) NewLine() {
	if !b.atBOL {
		b.WriteString("\n")
	}
}

// String returns the buffer's accumulated content.
func (b *buffer) String() string {
	return b.b.String()
}

// builder is a scoped view onto a buffer for one emission (one function
// body, one type declaration), recording which dependencies that emission
// required. The generation context reads deps back out once the builder's
// scope closes.
type builder struct {
	*buffer
	deps *deps
}

func newBuilder(b *buffer, d *deps) *builder {
	return &builder{buffer: b, deps: d}
}
