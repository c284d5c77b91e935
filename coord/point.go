package coord

import "math"

// Point is a location in 3D space. Arc geometry uses it with X/Y in the
// arc plane and Z along the plane normal.
type Point struct{ X, Y, Z float64 }

func (p Point) Add(b Point) Point { return Point{X: p.X + b.X, Y: p.Y + b.Y, Z: p.Z + b.Z} }
func (p Point) Sub(b Point) Point { return Point{X: p.X - b.X, Y: p.Y - b.Y, Z: p.Z - b.Z} }

// Scale multiplies each component by k.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k, Z: p.Z * k} }

func (p Point) Dot(b Point) float64 { return p.X*b.X + p.Y*b.Y + p.Z*b.Z }

// Len is the length of p as a vector.
func (p Point) Len() float64 { return math.Sqrt(p.Dot(p)) }

// Midpoint returns the point halfway between p and b.
func (p Point) Midpoint(b Point) Point { return p.Add(b).Scale(0.5) }

// DistanceXY is the distance between p and b projected onto the XY plane.
func (p Point) DistanceXY(b Point) float64 { return math.Hypot(b.X-p.X, b.Y-p.Y) }

// AngleXY is the direction from center to p in the XY plane, in [0, 2π).
func (p Point) AngleXY(center Point) float64 {
	a := math.Atan2(p.Y-center.Y, p.X-center.X)
	if a < 0 {
		a += math.Pi * 2
	}
	return a
}
