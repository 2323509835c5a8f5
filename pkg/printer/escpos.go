package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes
const (
	escByte = 0x1B
	gsByte  = 0x1D
	lfByte  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Document builds an ESC/POS byte stream for a thermal printer.
// Width is the paper width in characters: 32 for 58mm, 48 for 80mm.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates an initialized ESC/POS document.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{escByte, '@'}) // initialize printer
	return d
}

// Align sets the text alignment for following lines.
func (d *Document) Align(align int) *Document {
	d.buf.Write([]byte{escByte, 'a', byte(align)})
	return d
}

// Bold toggles bold text.
func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{escByte, 'E', b})
	return d
}

// Line writes a line of text followed by a line feed.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lfByte)
	return d
}

// Linef writes a formatted line of text followed by a line feed.
func (d *Document) Linef(format string, args ...interface{}) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width separator line of the given character.
func (d *Document) Rule(char byte) *Document {
	return d.Line(strings.Repeat(string(char), d.width))
}

// Row prints a left-aligned label and a right-aligned value on one line,
// e.g. "Net Total                 117.00".
func (d *Document) Row(label, value string) *Document {
	pad := d.width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	return d.Line(label + strings.Repeat(" ", pad) + value)
}

// Feed advances the paper by n blank lines.
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lfByte)
	}
	return d
}

// Cut sends the paper cut command.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{gsByte, 'V', 0x00})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
