package gcode

import (
	"fmt"
	"math"
	"time"

	"github.com/mastercactapus/gcsim/coord"
)

func (m *Machine) applyMotion(g *GCode) error {
	m.mode.Set(g)
	ctx := m.Context()

	if g.kind.Motion == MotionArc {
		if m.cfg.Arc != nil {
			c, err := g.CorrectArc(ctx, m.cfg.Arc.Tolerance, m.cfg.Arc.Correction)
			if err != nil {
				return err
			}
			g = c
		} else if _, err := g.Arc(ctx); err != nil {
			return err
		}
	}

	if g.kind.Motion == MotionCannedCycle {
		for _, p := range g.cannedPath(ctx).bottoms {
			m.touch(p)
		}
	}
	m.moveTo(g.Target(ctx), g.Travel(ctx), g.Time(ctx))
	return nil
}

func (m *Machine) applyCancelMotion(*GCode) error {
	m.mode.Clear(ModalGroupMotion)
	return nil
}

func (m *Machine) applyDwell(g *GCode) error {
	if _, ok := g.Param('P'); !ok {
		return fmt.Errorf("%s: P word required", g.Word)
	}
	m.elapsed += g.Time(m.Context())
	return nil
}

func (m *Machine) applyMachineCoords(*GCode) error {
	m.machineCoords = true
	return nil
}

// applySetOffsets handles G10 L2 (set a coordinate system offset) and
// G10 L20 (set it so the current position reads the given values).
func (m *Machine) applySetOffsets(g *GCode) error {
	l, _ := g.Param('L')
	if l != 2 && l != 20 {
		return &UnsupportedInstructionError{Words: []Word{g.Word, {W: 'L', Arg: l}}, Mode: m.mode.String()}
	}
	p, ok := g.Param('P')
	if !ok {
		return fmt.Errorf("%s: P word required", g.Word)
	}
	cs := int(p)
	if cs == 0 {
		cs = m.mode.CoordSystem()
	}
	if cs < 1 || cs > 9 || p != math.Floor(p) {
		return fmt.Errorf("%s: invalid coordinate system P%s", g.Word, formatFloat(p, 6))
	}

	scale := m.mode.Units().Scale()
	off := m.offsets[cs]
	for _, w := range g.Params {
		if !coord.IsAxis(w.W) {
			continue
		}
		v := w.Arg
		if !isRotary(w.W) {
			v *= scale
		}
		if l == 20 {
			v = m.abs.Get(w.W) - m.g92.Get(w.W) - v
		}
		off = off.Set(w.W, v)
	}
	m.offsets[cs] = off
	return nil
}

// applyTempOffset handles the G92 family.
func (m *Machine) applyTempOffset(g *GCode) error {
	switch g.Word.Key().Sub {
	case 1:
		m.g92, m.g92Saved = coord.Position{}, coord.Position{}
		return nil
	case 2:
		m.g92 = coord.Position{}
		return nil
	case 3:
		m.g92 = m.g92Saved
		return nil
	}

	ctx := m.Context()
	cs := m.offsets[m.mode.CoordSystem()]
	n := 0
	for _, w := range g.Params {
		if !coord.IsAxis(w.W) {
			continue
		}
		n++
		v := w.Arg
		if !isRotary(w.W) {
			v *= ctx.Units.Scale()
		}
		m.g92 = m.g92.Set(w.W, m.abs.Get(w.W)-cs.Get(w.W)-v)
	}
	if n == 0 {
		return fmt.Errorf("%s: at least one axis word required", g.Word)
	}
	m.g92Saved = m.g92
	return nil
}

func homeSlot(g *GCode) int {
	if g.Word.Key().Number == 30 {
		return 1
	}
	return 0
}

// applyGoHome handles G28 and G30. Given axis words, the move passes
// through that point and only those axes go home.
func (m *Machine) applyGoHome(g *GCode) error {
	home := m.home[homeSlot(g)]
	ctx := m.Context()
	rate := ctx.RapidRate

	final := home
	if len(g.Params) > 0 {
		way := ctx.target(g)
		m.moveTo(way, m.abs.Distance(way), rapidTime(m.abs.Distance(way), rate))
		final = m.abs
		for _, w := range g.Params {
			final = final.Set(w.W, home.Get(w.W))
		}
	}
	d := m.abs.Distance(final)
	m.moveTo(final, d, rapidTime(d, rate))
	return nil
}

func rapidTime(dist, rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	return minutes(dist / rate)
}

func (m *Machine) applySetHome(g *GCode) error {
	m.home[homeSlot(g)] = m.abs
	return nil
}

func (m *Machine) applyToolChange(g *GCode) error {
	m.mode.Set(g)
	if g.Word.Key().Number == 61 {
		q, ok := g.Param('Q')
		if !ok {
			return fmt.Errorf("%s: Q word required", g.Word)
		}
		m.tool = int(q)
		return nil
	}
	if t, ok := g.Param('T'); ok {
		m.tool = int(t)
		return nil
	}
	m.tool = m.mode.Tool()
	return nil
}

// reset applied by M2 and M30
var endProgramWords = []Word{
	{W: 'G', Arg: 54}, {W: 'G', Arg: 17}, {W: 'G', Arg: 90}, {W: 'G', Arg: 94},
	{W: 'G', Arg: 40}, {W: 'M', Arg: 5}, {W: 'M', Arg: 9}, {W: 'G', Arg: 1},
}

func (m *Machine) applyEndProgram(g *GCode) error {
	m.mode.Set(g)
	for _, w := range endProgramWords {
		if k := m.reg.Lookup(w); k != nil {
			m.mode.Set(&GCode{Word: w, kind: k})
		}
	}
	return nil
}
