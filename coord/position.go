package coord

import (
	"fmt"
	"math"
	"strings"
)

// Axes lists every axis letter a Position carries, in display order.
const Axes = "XYZABCUVW"

// Position is a named-axis machine position. Linear axes are in
// millimeters, rotary axes (A, B, C) in degrees.
type Position struct {
	X, Y, Z float64
	A, B, C float64
	U, V, W float64
}

// IsAxis reports whether letter names a Position axis.
func IsAxis(letter byte) bool {
	return strings.IndexByte(Axes, letter) >= 0
}

func (p *Position) ref(axis byte) *float64 {
	switch axis {
	case 'X':
		return &p.X
	case 'Y':
		return &p.Y
	case 'Z':
		return &p.Z
	case 'A':
		return &p.A
	case 'B':
		return &p.B
	case 'C':
		return &p.C
	case 'U':
		return &p.U
	case 'V':
		return &p.V
	case 'W':
		return &p.W
	}
	panic(fmt.Sprintf("coord: unknown axis %q", axis))
}

// Get returns the value of a single axis.
func (p Position) Get(axis byte) float64 { return *p.ref(axis) }

// Set returns a copy of p with axis set to val.
func (p Position) Set(axis byte, val float64) Position {
	*p.ref(axis) = val
	return p
}

func (p Position) each(fn func(v *float64, i int)) Position {
	for i := 0; i < len(Axes); i++ {
		fn(p.ref(Axes[i]), i)
	}
	return p
}

// Add will add the target values to p.
func (p Position) Add(target Position) Position {
	return p.each(func(v *float64, i int) { *v += target.Get(Axes[i]) })
}

// Sub will subtract the target values from p.
func (p Position) Sub(target Position) Position {
	return p.each(func(v *float64, i int) { *v -= target.Get(Axes[i]) })
}

func (p Position) Mul(val float64) Position {
	return p.each(func(v *float64, _ int) { *v *= val })
}

func (p Position) Div(val float64) Position {
	return p.each(func(v *float64, _ int) { *v /= val })
}

// Min returns the per-axis minimum of p and b.
func (p Position) Min(b Position) Position {
	return p.each(func(v *float64, i int) { *v = math.Min(*v, b.Get(Axes[i])) })
}

// Max returns the per-axis maximum of p and b.
func (p Position) Max(b Position) Position {
	return p.each(func(v *float64, i int) { *v = math.Max(*v, b.Get(Axes[i])) })
}

// Point returns the XYZ part of p.
func (p Position) Point() Point { return Point{X: p.X, Y: p.Y, Z: p.Z} }

// WithPoint returns a copy of p with X, Y and Z taken from pt.
func (p Position) WithPoint(pt Point) Position {
	p.X, p.Y, p.Z = pt.X, pt.Y, pt.Z
	return p
}

// Distance is the straight-line distance from p to b. XYZ is used when it
// moves, then UVW, and finally the rotary axes.
func (p Position) Distance(b Position) float64 {
	d := b.Sub(p)
	if l := math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z); l != 0 {
		return l
	}
	if l := math.Sqrt(d.U*d.U + d.V*d.V + d.W*d.W); l != 0 {
		return l
	}
	return math.Sqrt(d.A*d.A + d.B*d.B + d.C*d.C)
}

func (p Position) String() string {
	var sb strings.Builder
	for i := 0; i < len(Axes); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%c%.3f", Axes[i], p.Get(Axes[i]))
	}
	return sb.String()
}
