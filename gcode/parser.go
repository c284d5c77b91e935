package gcode

import (
	"bufio"
	"io"
	"strings"
)

// Parser reads a program line by line.
type Parser struct {
	br  *bufio.Reader
	opt ParseOptions

	n       int
	inMacro bool
}

func NewParser(r io.Reader, opt ParseOptions) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br, opt: opt}
	}

	return &Parser{br: bufio.NewReader(r), opt: opt}
}

// Read returns the next line, including blank and comment-only lines.
// Parse failures are returned as *LineError.
func (p *Parser) Read() (*Line, error) {
	s, err := p.br.ReadString('\n')
	if err == io.EOF && s != "" {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	p.n++
	s = strings.TrimRight(s, "\r\n")

	l, err := ParseLineWith(s, p.opt)
	if err != nil {
		return nil, &LineError{Line: p.n, Text: s, Err: err}
	}
	p.markMacro(l)
	return l, nil
}

// InMacro reports whether the parser is inside an open % region.
func (p *Parser) InMacro() bool { return p.inMacro }

func (p *Parser) markMacro(l *Line) {
	before := p.inMacro
	if l.togglesMacro() {
		p.inMacro = !p.inMacro
	}
	l.InMacro = before || p.inMacro
}
