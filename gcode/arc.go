package gcode

import (
	"errors"
	"math"

	"github.com/mastercactapus/gcsim/coord"
)

// ArcCorrection selects how CorrectArc repairs an arc whose end point is
// not on the circle through its start point.
type ArcCorrection byte

const (
	// ArcNoCorrection rejects the arc.
	ArcNoCorrection ArcCorrection = iota

	// ArcSnapEndpoint moves the end point onto the circle, keeping the
	// center and start radius.
	ArcSnapEndpoint

	// ArcRecomputeRadius moves the center to the nearest point that is
	// equidistant from both end points.
	ArcRecomputeRadius
)

func (c ArcCorrection) String() string {
	switch c {
	case ArcSnapEndpoint:
		return "snap_endpoint"
	case ArcRecomputeRadius:
		return "recompute_radius"
	}
	return "none"
}

// ArcCheck configures arc validation in a Machine.
type ArcCheck struct {
	Tolerance  float64
	Correction ArcCorrection
}

// Arc is the geometry of an arc move, mapped so the arc lies in X/Y with
// Z along the plane normal.
type Arc struct {
	Plane              Plane
	Start, End, Center coord.Point

	// R1 and R2 are the distances from the center to the start and end.
	R1, R2 float64

	Clockwise bool
	Turns     int

	gcode *GCode
}

func radiusCenter(start, end coord.Point, radius float64, clockwise bool) (coord.Point, error) {
	if start.X == end.X && start.Y == end.Y {
		return coord.Point{}, errors.New("radius format arc requires an end point different from the start")
	}

	dist := start.DistanceXY(end)
	delta := dist - math.Abs(radius)*2
	if delta > coord.Epsilon {
		return coord.Point{}, errors.New("radius too small to reach end point")
	} else if delta > 0.0 {
		dist = math.Abs(radius) * 2
	}

	theta := math.Atan2(end.Y-start.Y, end.X-start.X)
	if (clockwise && radius > 0.0) || (!clockwise && radius < 0.0) {
		theta -= math.Pi / 2.0
	} else {
		theta += math.Pi / 2.0
	}

	offset := math.Abs(radius) * math.Cos(math.Asin(dist/(math.Abs(radius)*2)))
	return coord.Point{
		X: ((start.X + end.X) / 2) + offset*math.Cos(theta),
		Y: ((start.Y + end.Y) / 2) + offset*math.Sin(theta),
		Z: start.Z,
	}, nil
}

// Arc computes the geometry of an arc move. Structural problems, such as
// giving both a center offset and a radius, are returned as
// *GeometricValidationError. Radius mismatch is only reported by Check.
func (g *GCode) Arc(ctx Context) (*Arc, error) {
	fail := func(reason string) (*Arc, error) {
		return nil, &GeometricValidationError{GCode: g, Reason: reason}
	}
	if g.kind == nil || g.kind.Motion != MotionArc {
		return fail("not an arc move")
	}
	first, second, _ := ctx.Plane.Axes()
	if centerLetter(first) == 0 {
		return fail("arcs are only supported in the XY, ZX and YZ planes")
	}
	if !g.HasParam('X') && !g.HasParam('Y') && !g.HasParam('Z') {
		return fail("arc requires at least one of X, Y or Z")
	}
	hasIJK := g.HasParam('I') || g.HasParam('J') || g.HasParam('K')
	r, hasR := g.Param('R')
	switch {
	case hasIJK && hasR:
		return fail("arc cannot have both a center offset (I, J, K) and a radius (R)")
	case !hasIJK && !hasR:
		return fail("arc requires a center offset (I, J, K) or a radius (R)")
	case hasR && r == 0:
		return fail("arc radius must not be zero")
	}

	a := &Arc{
		Plane:     ctx.Plane,
		Start:     ctx.Plane.toArc(ctx.Pos),
		End:       ctx.Plane.toArc(g.Target(ctx)),
		Clockwise: g.kind.Clockwise,
		Turns:     1,
		gcode:     g,
	}
	if p, ok := g.Param('P'); ok {
		if p < 1 || p != math.Floor(p) {
			return fail("arc turns (P) must be a positive integer")
		}
		a.Turns = int(p)
	}

	scale := ctx.Units.Scale()
	if hasR {
		c, err := radiusCenter(a.Start, a.End, r*scale, a.Clockwise)
		if err != nil {
			return fail(err.Error())
		}
		a.Center = c
	} else {
		center := ctx.Pos
		for _, axis := range []byte{first, second} {
			v, ok := g.Param(centerLetter(axis))
			switch {
			case !ok:
			case ctx.ArcAbsolute:
				center = center.Set(axis, v*scale+ctx.Offset.Get(axis))
			default:
				center = center.Set(axis, ctx.Pos.Get(axis)+v*scale)
			}
		}
		a.Center = ctx.Plane.toArc(center)
	}

	a.R1 = a.Start.DistanceXY(a.Center)
	a.R2 = a.End.DistanceXY(a.Center)
	return a, nil
}

// Check verifies the start and end radii agree within tol.
func (a *Arc) Check(tol float64) error {
	if a.R1 == 0 {
		return &GeometricValidationError{GCode: a.gcode, Reason: "arc center is the start point"}
	}
	if math.Abs(a.R1-a.R2) > tol {
		return &GeometricValidationError{
			GCode:     a.gcode,
			Reason:    "arc end point is not on the circle",
			R1:        a.R1,
			R2:        a.R2,
			Tolerance: tol,
		}
	}
	return nil
}

// Angle is the swept angle in radians, including extra turns.
func (a *Arc) Angle() float64 {
	start := a.Start.AngleXY(a.Center)
	end := a.End.AngleXY(a.Center)

	total := float64(a.Turns-1) * math.Pi * 2
	switch {
	case math.Abs(start-end) < 1e-9:
		total += math.Pi * 2
	case start < end:
		if a.Clockwise {
			total += math.Pi*2 - (end - start)
		} else {
			total += end - start
		}
	default:
		if a.Clockwise {
			total += start - end
		} else {
			total += math.Pi*2 - (start - end)
		}
	}
	return total
}

// Length is the path length, including any helical motion along the
// plane normal.
func (a *Arc) Length() float64 {
	return math.Hypot(a.Angle()*a.R1, math.Abs(a.End.Z-a.Start.Z))
}

// Chord is the straight-line distance between the end points.
func (a *Arc) Chord() float64 {
	return a.End.Sub(a.Start).Len()
}

// CorrectArc returns g unchanged when its radii agree within tol,
// otherwise a corrected copy produced by the given policy. With
// ArcNoCorrection, or when the policy cannot apply, the Check error is
// returned.
func (g *GCode) CorrectArc(ctx Context, tol float64, c ArcCorrection) (*GCode, error) {
	a, err := g.Arc(ctx)
	if err != nil {
		return nil, err
	}
	err = a.Check(tol)
	if err == nil {
		return g, nil
	}
	if a.R1 == 0 || a.R2 == 0 {
		return nil, err
	}

	first, second, _ := ctx.Plane.Axes()
	switch c {
	case ArcSnapEndpoint:
		k := a.R1 / a.R2
		e := coord.Point{
			X: a.Center.X + (a.End.X-a.Center.X)*k,
			Y: a.Center.Y + (a.End.Y-a.Center.Y)*k,
			Z: a.End.Z,
		}
		end := ctx.Plane.fromArc(g.Target(ctx), e)
		out := g
		for _, axis := range []byte{first, second} {
			out = out.WithParam(axis, ctx.fromAbs(axis, end.Get(axis), ctx.Pos.Get(axis)))
		}
		return out, nil

	case ArcRecomputeRadius:
		mid := a.Start.Midpoint(a.End)
		dx, dy := a.End.X-a.Start.X, a.End.Y-a.Start.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			return nil, err
		}
		nx, ny := -dy/l, dx/l
		t := (a.Center.X-mid.X)*nx + (a.Center.Y-mid.Y)*ny
		center := ctx.Plane.fromArc(ctx.Pos, coord.Point{X: mid.X + nx*t, Y: mid.Y + ny*t, Z: a.Start.Z})

		scale := ctx.Units.Scale()
		out := g
		for _, axis := range []byte{first, second} {
			v := center.Get(axis) - ctx.Pos.Get(axis)
			if ctx.ArcAbsolute {
				v = center.Get(axis) - ctx.Offset.Get(axis)
			}
			out = out.WithParam(centerLetter(axis), v/scale)
		}
		return out, nil
	}

	return nil, err
}
