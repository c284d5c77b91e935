package gcode

import (
	"bytes"
	"io"
)

// Buffer renders lines from a Reader back into program text.
type Buffer struct {
	gr  Reader
	buf bytes.Buffer
	err error
}

var _ io.Reader = &Buffer{}

func NewBuffer(r Reader) *Buffer {
	return &Buffer{gr: r}
}
func (b *Buffer) Buffered() []byte { return b.buf.Bytes() }

func (b *Buffer) Read(p []byte) (n int, err error) {
	var line *Line
	for b.err == nil && b.buf.Len() < len(p) {
		line, b.err = b.gr.Read()
		if b.err != nil {
			break
		}
		b.buf.WriteString(line.String() + "\n")
	}

	if b.buf.Len() > 0 {
		return b.buf.Read(p)
	}
	return 0, b.err
}
