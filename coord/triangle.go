package coord

import "math"

// Epsilon is how far outside a triangle edge, in XY, a point may lie and
// still be contained.
const Epsilon = 0.001

// Triangle is a face of a height mesh.
type Triangle struct{ A, B, C Point }

// Barycentric returns the weights of A, B and C for (x, y) in the XY
// projection of t. ok is false if the projection has no area.
func (t Triangle) Barycentric(x, y float64) (u, v, w float64, ok bool) {
	ab, ac := t.B.Sub(t.A), t.C.Sub(t.A)
	det := ab.X*ac.Y - ac.X*ab.Y
	if det == 0 {
		return 0, 0, 0, false
	}
	px, py := x-t.A.X, y-t.A.Y
	v = (px*ac.Y - ac.X*py) / det
	w = (ab.X*py - px*ab.Y) / det
	return 1 - v - w, v, w, true
}

// ContainsXY reports whether (x, y) is inside the XY projection of t, or
// within Epsilon of one of its edges.
func (t Triangle) ContainsXY(x, y float64) bool {
	u, v, w, ok := t.Barycentric(x, y)
	if !ok {
		return false
	}
	if u >= 0 && v >= 0 && w >= 0 {
		return true
	}
	return segmentDistanceXY(t.A, t.B, x, y) <= Epsilon ||
		segmentDistanceXY(t.B, t.C, x, y) <= Epsilon ||
		segmentDistanceXY(t.C, t.A, x, y) <= Epsilon
}

// Z interpolates the height of t at (x, y). It is NaN for a triangle with
// no XY area.
func (t Triangle) Z(x, y float64) float64 {
	u, v, w, ok := t.Barycentric(x, y)
	if !ok {
		return math.NaN()
	}
	return u*t.A.Z + v*t.B.Z + w*t.C.Z
}

func segmentDistanceXY(a, b Point, x, y float64) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	var k float64
	if l := dx*dx + dy*dy; l > 0 {
		k = math.Max(0, math.Min(1, ((x-a.X)*dx+(y-a.Y)*dy)/l))
	}
	return math.Hypot(x-(a.X+k*dx), y-(a.Y+k*dy))
}
