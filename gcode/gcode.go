package gcode

import (
	"strings"
)

// GCode is an instruction word together with the parameter words it owns,
// e.g. G01 X10 Y5 or M06 T2.
type GCode struct {
	Word   Word
	Params []Word

	kind *Kind
}

func (g *GCode) Kind() *Kind { return g.kind }

func (g *GCode) Group() ModalGroup {
	if g.kind == nil {
		return ModalGroupNone
	}
	return g.kind.Group
}

func (g *GCode) Priority() int {
	if g.kind == nil {
		return 0
	}
	return g.kind.Priority
}

// Accepts reports whether letter is a parameter of this instruction.
func (g *GCode) Accepts(letter byte) bool {
	return g.kind != nil && g.kind.accepts(letter)
}

// Param returns the value of the first parameter with the given letter.
func (g *GCode) Param(letter byte) (float64, bool) {
	for _, p := range g.Params {
		if p.W == letter {
			return p.Arg, true
		}
	}
	return 0, false
}

func (g *GCode) HasParam(letter byte) bool {
	_, ok := g.Param(letter)
	return ok
}

func (g *GCode) Clone() *GCode {
	c := *g
	c.Params = append([]Word(nil), g.Params...)
	return &c
}

// WithParam returns a copy of g with letter set to val, replacing an
// existing parameter or appending a new one.
func (g *GCode) WithParam(letter byte, val float64) *GCode {
	c := g.Clone()
	for i := range c.Params {
		if c.Params[i].W == letter {
			c.Params[i].Arg = val
			return c
		}
	}
	c.Params = append(c.Params, Word{W: letter, Arg: val})
	return c
}

// merge returns a copy of g with params layered on top of its own.
func (g *GCode) merge(params []Word) *GCode {
	c := g
	for _, p := range params {
		c = c.WithParam(p.W, p.Arg)
	}
	if c == g {
		c = g.Clone()
	}
	return c
}

// ModalCopy returns the form of g that a Mode keeps: the same word with
// only the parameters that persist between blocks.
func (g *GCode) ModalCopy() *GCode {
	c := &GCode{Word: g.Word, kind: g.kind}
	if g.kind == nil || g.kind.ModalParams == "" {
		return c
	}
	for _, p := range g.Params {
		if strings.IndexByte(g.kind.ModalParams, p.W) >= 0 {
			c.Params = append(c.Params, p)
		}
	}
	return c
}

func (g *GCode) words() []Word {
	return append([]Word{g.Word}, g.Params...)
}

func (g *GCode) String() string {
	parts := make([]string, 0, len(g.Params)+1)
	for _, w := range g.words() {
		parts = append(parts, w.String())
	}
	return strings.Join(parts, " ")
}
