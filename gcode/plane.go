package gcode

import (
	"fmt"

	"github.com/mastercactapus/gcsim/coord"
)

type Units byte

const (
	Millimeters Units = iota
	Inches
)

const mmPerInch = 25.4

// Scale is the number of millimeters in one unit.
func (u Units) Scale() float64 {
	if u == Inches {
		return mmPerInch
	}
	return 1
}

func (u Units) String() string {
	if u == Inches {
		return "in"
	}
	return "mm"
}

func (u Units) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *Units) UnmarshalText(data []byte) error {
	switch string(data) {
	case "mm":
		*u = Millimeters
	case "in":
		*u = Inches
	default:
		return fmt.Errorf("unknown units '%s'", data)
	}
	return nil
}

type FeedRateMode byte

const (
	FeedUnitsPerMinute FeedRateMode = iota
	FeedInverseTime
	FeedUnitsPerRevolution
)

type Plane byte

const (
	PlaneXY Plane = iota // G17
	PlaneZX              // G18
	PlaneYZ              // G19
	PlaneUV              // G17.1
	PlaneWU              // G18.1
	PlaneVW              // G19.1
)

// Axes returns the two in-plane axes, in rotation order, and the normal.
func (p Plane) Axes() (first, second, normal byte) {
	switch p {
	case PlaneZX:
		return 'Z', 'X', 'Y'
	case PlaneYZ:
		return 'Y', 'Z', 'X'
	case PlaneUV:
		return 'U', 'V', 'W'
	case PlaneWU:
		return 'W', 'U', 'V'
	case PlaneVW:
		return 'V', 'W', 'U'
	}
	return 'X', 'Y', 'Z'
}

func (p Plane) String() string {
	a, b, _ := p.Axes()
	return string([]byte{a, b})
}

// toArc maps pos so the arc lies in X/Y with Z along the plane normal.
func (p Plane) toArc(pos coord.Position) coord.Point {
	a, b, n := p.Axes()
	return coord.Point{X: pos.Get(a), Y: pos.Get(b), Z: pos.Get(n)}
}

// fromArc is the inverse of toArc, filling the plane's axes of base.
func (p Plane) fromArc(base coord.Position, pt coord.Point) coord.Position {
	a, b, n := p.Axes()
	return base.Set(a, pt.X).Set(b, pt.Y).Set(n, pt.Z)
}

// centerLetter returns the arc center offset letter for a linear axis.
func centerLetter(axis byte) byte {
	switch axis {
	case 'X':
		return 'I'
	case 'Y':
		return 'J'
	case 'Z':
		return 'K'
	}
	return 0
}

func isRotary(axis byte) bool {
	return axis == 'A' || axis == 'B' || axis == 'C'
}
