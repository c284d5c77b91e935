// Package probe generates Z-probing programs: single probes, and grids
// whose results can be fed to meshlevel.
package probe

import (
	"github.com/mastercactapus/gcsim/coord"
	"github.com/mastercactapus/gcsim/gcode"
)

// Options configure a straight z-probe operation.
type Options struct {
	ZeroZAxis bool

	// Offset is the offset to use when ZeroZAxis is set.
	Offset float64

	FeedRate float64

	// MaxTravel is the relative Z distance to probe, usually negative.
	MaxTravel float64
}

func block(words ...gcode.Word) *gcode.Block {
	return gcode.NewBlock(nil, words...)
}

func g(n float64) gcode.Word { return gcode.Word{W: 'G', Arg: n} }

// rapidTo moves in machine coordinates.
func rapidTo(axis ...gcode.Word) *gcode.Block {
	return block(append([]gcode.Word{g(53), g(0)}, axis...)...)
}

// command probes down, optionally zeroes Z, and lifts back to the machine
// height lift.
func (opt Options) command(zero bool, lift float64) []*gcode.Block {
	b := []*gcode.Block{
		block(g(91), g(38.2), gcode.Word{W: 'Z', Arg: opt.MaxTravel}, gcode.Word{W: 'F', Arg: opt.FeedRate}),
	}
	if zero {
		b = append(b, block(g(92), gcode.Word{W: 'Z', Arg: opt.Offset}))
	}
	b = append(b, block(g(90), g(53), g(0), gcode.Word{W: 'Z', Arg: lift}))
	return b
}

// Program returns the blocks of a single probe from the machine
// position mPos, returning to its height afterwards.
func (opt Options) Program(mPos coord.Position) []*gcode.Block {
	return opt.command(opt.ZeroZAxis, mPos.Z)
}

// Lines wraps blocks as program lines.
func Lines(blocks []*gcode.Block) []*gcode.Line {
	lines := make([]*gcode.Line, len(blocks))
	for i, b := range blocks {
		lines[i] = &gcode.Line{Block: b}
	}
	return lines
}
