package meshlevel

import (
	"math"

	"github.com/mastercactapus/gcsim/coord"
	"github.com/mastercactapus/gcsim/gcode"
)

// MeshLeveler rewrites a program so moves follow the surface described
// by a ZOffsetter. Linear moves longer than the granularity are split so
// the correction is applied along the way.
type MeshLeveler struct {
	granularity float64
	offsetter   ZOffsetter

	buf  []*gcode.Line
	bufN int

	// split tracks the original program, level the split one.
	split *gcode.Machine
	level *gcode.Machine

	gr gcode.Reader
}

type Config struct {
	ZOffsetter  ZOffsetter
	Granularity float64

	// Machine is the starting state. It is cloned, never modified. A
	// GRBL-default machine is used when nil.
	Machine *gcode.Machine

	// MPos and WCO, when set, override the starting absolute position
	// and the offset of the active coordinate system.
	MPos, WCO *coord.Position

	Reader gcode.Reader
}

func New(cfg Config) (*MeshLeveler, error) {
	m := cfg.Machine
	if m == nil {
		var err error
		m, err = gcode.NewMachine(gcode.GRBLConfig())
		if err != nil {
			return nil, err
		}
	}
	m = m.Clone()
	if cfg.MPos != nil {
		m.SetAbsPos(*cfg.MPos)
	}
	if cfg.WCO != nil {
		err := m.SetOffset(m.Mode().CoordSystem(), *cfg.WCO)
		if err != nil {
			return nil, err
		}
	}

	l := &MeshLeveler{
		split: m,
		level: m.Clone(),

		granularity: cfg.Granularity,
		gr:          cfg.Reader,

		offsetter: cfg.ZOffsetter,
	}
	if l.offsetter == nil {
		l.offsetter = dummyOffsetter{}
	}
	return l, nil
}

func (l *MeshLeveler) Read() (*gcode.Line, error) {
	line, err := l.next()
	if err != nil {
		return nil, err
	}
	if line.Block == nil {
		return line, nil
	}

	oldAbs := l.level.AbsPos()
	err = l.level.ProcessLine(line)
	if err != nil {
		return nil, err
	}
	newAbs := l.level.AbsPos()
	if oldAbs == newAbs {
		return line, nil
	}

	// get old and new offset
	// if we don't have one (before or after)
	// then we leave the command as-is
	ok, oldOffset := l.offsetter.OffsetZ(oldAbs.X, oldAbs.Y)
	if !ok {
		return line, nil
	}
	ok, newOffset := l.offsetter.OffsetZ(newAbs.X, newAbs.Y)
	if !ok {
		return line, nil
	}

	mode := l.level.Mode()
	scale := mode.Units().Scale()
	b := line.Block.Clone()
	if mode.Incremental() {
		if oldOffset == newOffset {
			return line, nil
		}
		z, _ := b.Param('Z')
		b.SetParam('Z', z+(newOffset-oldOffset)/scale)
	} else {
		if newOffset == 0 {
			return line, nil
		}
		b.SetParam('Z', (l.level.WorkPos().Z+newOffset)/scale)
	}

	return &gcode.Line{Number: line.Number, Block: b, Comment: line.Comment}, nil
}

func (l *MeshLeveler) next() (*gcode.Line, error) {
	if len(l.buf)-l.bufN > 0 {
		l.bufN++
		return l.buf[l.bufN-1], nil
	}
	l.buf, l.bufN = l.buf[:0], 0

	line, err := l.gr.Read()
	if err != nil {
		return nil, err
	}
	if line.Block == nil {
		return line, nil
	}

	oldAbs := l.split.AbsPos()
	err = l.split.ProcessLine(line)
	if err != nil {
		return nil, err
	}
	newAbs := l.split.AbsPos()
	if oldAbs == newAbs || !l.splittable(line.Block) {
		return line, nil
	}
	dist := oldAbs.Point().DistanceXY(newAbs.Point())
	if dist <= l.granularity {
		return line, nil
	}

	// TODO: account for rounding errors past (e.g. beyond .00001)?
	n := int(math.Ceil(dist / l.granularity))
	oldPos := l.split.Abs2Work(oldAbs)
	step := newAbs.Sub(oldAbs).Div(float64(n))

	mode := l.split.Mode()
	scale := mode.Units().Scale()
	set := func(b *gcode.Block, axis byte, val, delta float64) {
		if _, ok := b.Param(axis); ok || delta != 0 {
			b.SetParam(axis, val/scale)
		}
	}

	for i := 1; i <= n; i++ {
		b := line.Block.Clone()
		for _, axis := range []byte("XYZ") {
			d := step.Get(axis)
			if mode.Incremental() {
				set(b, axis, d, d)
			} else {
				set(b, axis, oldPos.Get(axis)+d*float64(i), d)
			}
		}
		l.buf = append(l.buf, &gcode.Line{Number: line.Number, Block: b, Comment: line.Comment})
	}

	l.bufN = 1
	return l.buf[0], nil
}

// splittable reports whether b moved in a straight line under the
// active motion mode. Blocks with non-modal instructions (G28, G53, G92
// and the like) are passed through whole.
func (l *MeshLeveler) splittable(b *gcode.Block) bool {
	for _, g := range b.GCodes() {
		if g.Group() == gcode.ModalGroupNonModal {
			return false
		}
	}
	g := l.split.Mode().Motion()
	if g == nil {
		return false
	}
	switch g.Kind().Motion {
	case gcode.MotionRapid, gcode.MotionLinear:
		return true
	}
	return false
}
