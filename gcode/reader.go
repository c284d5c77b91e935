package gcode

import "io"

type Reader interface {
	Read() (*Line, error)
}

type LinesReader struct {
	Lines []*Line
	n     int
}

func (r *LinesReader) Read() (*Line, error) {
	if r.n == len(r.Lines) {
		return nil, io.EOF
	}

	r.n++
	return r.Lines[r.n-1], nil
}
