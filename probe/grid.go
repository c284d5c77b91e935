package probe

import (
	"errors"
	"math"

	"github.com/mastercactapus/gcsim/coord"
	"github.com/mastercactapus/gcsim/gcode"
)

// GridOptions configure a grid-pattern z-probe operation.
type GridOptions struct {
	Options

	DistanceX, DistanceY float64
	Granularity          float64
}

func (opt GridOptions) Validate() error {
	if opt.DistanceX <= 0 || opt.DistanceY <= 0 {
		return errors.New("grid distances must be positive")
	}
	if opt.Granularity <= 0 {
		return errors.New("granularity must be positive")
	}
	return nil
}

func (opt GridOptions) probeAt(mPos coord.Position, x, y, lift float64) []*gcode.Block {
	b := []*gcode.Block{
		rapidTo(gcode.Word{W: 'X', Arg: mPos.X + x}, gcode.Word{W: 'Y', Arg: mPos.Y + y}),
	}
	return append(b, opt.command(false, lift)...)
}

// Quick creates a preliminary scan of the corners and center from the
// current height. The highest point found tells Sequence how high it
// must travel.
func (opt GridOptions) Quick(mPos coord.Position) []*gcode.Block {
	b := opt.command(opt.ZeroZAxis, mPos.Z)

	b = append(b, opt.probeAt(mPos, 0, opt.DistanceY, mPos.Z)...)
	b = append(b, opt.probeAt(mPos, opt.DistanceX/2, opt.DistanceY/2, mPos.Z)...)
	b = append(b, opt.probeAt(mPos, opt.DistanceX, 0, mPos.Z)...)
	b = append(b, opt.probeAt(mPos, opt.DistanceX, opt.DistanceY, mPos.Z)...)
	b = append(b, rapidTo(gcode.Word{W: 'X', Arg: mPos.X}, gcode.Word{W: 'Y', Arg: mPos.Y}))

	return b
}

// Sequence scans the grid so that no two points are farther than the
// granularity apart, traveling at zHeight between points and returning
// to mPos after.
func (opt GridOptions) Sequence(mPos coord.Position, zHeight float64) ([]*gcode.Block, error) {
	err := opt.Validate()
	if err != nil {
		return nil, err
	}
	// probe the extra distance from the travel height
	opt.MaxTravel += mPos.Z - zHeight

	xyDist := math.Sqrt(opt.Granularity * opt.Granularity / 2)
	xCount := int(math.Ceil(opt.DistanceX / xyDist))
	yCount := int(math.Ceil(opt.DistanceY / xyDist))

	b := []*gcode.Block{rapidTo(gcode.Word{W: 'Z', Arg: zHeight})}
	for y := 0; y <= yCount; y++ {
		for x := 0; x <= xCount; x++ {
			xVal := opt.DistanceX / float64(xCount) * float64(x)
			if y%2 != 0 {
				xVal = opt.DistanceX - xVal
			}
			b = append(b, opt.probeAt(mPos, xVal, opt.DistanceY/float64(yCount)*float64(y), zHeight)...)
		}
	}

	b = append(b,
		rapidTo(gcode.Word{W: 'Z', Arg: mPos.Z}),
		rapidTo(gcode.Word{W: 'X', Arg: mPos.X}, gcode.Word{W: 'Y', Arg: mPos.Y}),
	)
	return b, nil
}
