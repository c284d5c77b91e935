package gcode

import (
	"math"
	"time"

	"github.com/mastercactapus/gcsim/coord"
)

// Context is the machine state an instruction is evaluated against.
// Positions are absolute and in millimeters.
type Context struct {
	Pos    coord.Position
	Offset coord.Position

	Units         Units
	Incremental   bool
	ArcAbsolute   bool
	MachineCoords bool
	Plane         Plane
	ReturnToR     bool

	FeedMode     FeedRateMode
	Feed         float64
	SpindleSpeed float64

	// RapidRate is the rapid traverse rate in mm/min, zero when unknown.
	RapidRate float64
}

// toAbs converts a program value for axis into an absolute position,
// given the current absolute value cur. G53 values are absolute even in
// incremental mode.
func (ctx Context) toAbs(axis byte, v, cur float64) float64 {
	if !isRotary(axis) {
		v *= ctx.Units.Scale()
	}
	switch {
	case ctx.MachineCoords:
		return v
	case ctx.Incremental:
		return cur + v
	}
	return v + ctx.Offset.Get(axis)
}

// fromAbs is the inverse of toAbs.
func (ctx Context) fromAbs(axis byte, abs, cur float64) float64 {
	var v float64
	switch {
	case ctx.MachineCoords:
		v = abs
	case ctx.Incremental:
		v = abs - cur
	default:
		v = abs - ctx.Offset.Get(axis)
	}
	if !isRotary(axis) {
		v /= ctx.Units.Scale()
	}
	return v
}

func (ctx Context) target(g *GCode) coord.Position {
	p := ctx.Pos
	for _, w := range g.Params {
		if coord.IsAxis(w.W) {
			p = p.Set(w.W, ctx.toAbs(w.W, w.Arg, p.Get(w.W)))
		}
	}
	return p
}

// Target returns the absolute position after g runs from ctx.Pos.
func (g *GCode) Target(ctx Context) coord.Position {
	if g.kind == nil {
		return ctx.Pos
	}
	switch g.kind.Motion {
	case MotionNone, MotionDwell:
		return ctx.Pos
	case MotionCannedCycle:
		return g.cannedPath(ctx).end
	}
	return ctx.target(g)
}

// cannedCycle is the path of a canned cycle: L repeats of an in-plane
// rapid, a rapid down to R, a feed to the bottom and a retract.
type cannedCycle struct {
	end         coord.Position
	bottoms     []coord.Position
	rapid, feed float64
	feeds       int
	dwell       time.Duration
}

// cannedPath follows LinuxCNC: a start below R first rises to R, and the
// retract goes to R with G99 or to the higher of R and the start level
// with G98.
func (g *GCode) cannedPath(ctx Context) cannedCycle {
	first, second, normal := ctx.Plane.Axes()
	startN := ctx.Pos.Get(normal)
	reps := 1
	if l, ok := g.Param('L'); ok && l >= 1 {
		reps = int(l)
	}

	r := startN
	if v, ok := g.Param('R'); ok {
		r = ctx.toAbs(normal, v, startN)
	}
	// incremental depth is relative to R
	bottom := r
	if v, ok := g.Param(normal); ok {
		bottom = ctx.toAbs(normal, v, r)
	}
	retract := r
	if !ctx.ReturnToR {
		retract = math.Max(startN, r)
	}

	var c cannedCycle
	p := ctx.Pos
	if startN < r {
		c.rapid += r - startN
		p = p.Set(normal, r)
	}
	for i := 0; i < reps; i++ {
		next := p
		for _, axis := range []byte{first, second} {
			if v, ok := g.Param(axis); ok {
				next = next.Set(axis, ctx.toAbs(axis, v, p.Get(axis)))
			}
		}
		c.rapid += p.Distance(next)
		c.rapid += math.Abs(p.Get(normal) - r)
		c.feed += math.Abs(r - bottom)
		c.feeds++
		c.bottoms = append(c.bottoms, next.Set(normal, bottom))
		if g.dwellsAtBottom() {
			sec, _ := g.Param('P')
			c.dwell += time.Duration(sec * float64(time.Second))
		}
		if g.feedsOut() {
			c.feed += math.Abs(bottom - r)
			c.feeds++
			c.rapid += math.Abs(retract - r)
		} else {
			c.rapid += math.Abs(retract - bottom)
		}
		p = next.Set(normal, retract)
	}
	c.end = p
	return c
}

// boring cycles feed back out to R
func (g *GCode) feedsOut() bool {
	n := g.Word.Key().Number
	return g.Word.W == 'G' && (n == 85 || n == 89)
}

func (g *GCode) dwellsAtBottom() bool {
	n := g.Word.Key().Number
	return g.Word.W == 'G' && (n == 82 || n == 89)
}

// TravelDistance is the straight-line distance from ctx.Pos to the target.
func (g *GCode) TravelDistance(ctx Context) float64 {
	return ctx.Pos.Distance(g.Target(ctx))
}

// Travel is the length of the path g follows: the arc length for arcs and
// every plunge and retract for canned cycles.
func (g *GCode) Travel(ctx Context) float64 {
	if g.kind != nil {
		switch g.kind.Motion {
		case MotionArc:
			a, err := g.Arc(ctx)
			if err == nil {
				return a.Length()
			}
		case MotionCannedCycle:
			c := g.cannedPath(ctx)
			return c.rapid + c.feed
		}
	}
	return g.TravelDistance(ctx)
}

// feedPerMin is the feed rate in mm/min, zero for inverse time or an
// unknown feed.
func (ctx Context) feedPerMin() float64 {
	switch ctx.FeedMode {
	case FeedInverseTime:
		return 0
	case FeedUnitsPerRevolution:
		return ctx.Feed * ctx.Units.Scale() * ctx.SpindleSpeed
	}
	return ctx.Feed * ctx.Units.Scale()
}

// Time estimates how long g takes. Rapid moves use ctx.RapidRate when it
// is set, otherwise the programmed feed. Unknown rates contribute zero.
func (g *GCode) Time(ctx Context) time.Duration {
	if g.kind == nil {
		return 0
	}
	switch g.kind.Motion {
	case MotionNone:
		return 0
	case MotionDwell:
		p, _ := g.Param('P')
		return time.Duration(p * float64(time.Second))
	case MotionCannedCycle:
		return g.cannedTime(ctx)
	}

	if g.kind.Motion == MotionRapid && ctx.RapidRate > 0 {
		return minutes(g.Travel(ctx) / ctx.RapidRate)
	}
	if ctx.FeedMode == FeedInverseTime {
		if ctx.Feed <= 0 {
			return 0
		}
		return minutes(1 / ctx.Feed)
	}
	perMin := ctx.feedPerMin()
	if perMin <= 0 {
		return 0
	}
	return minutes(g.Travel(ctx) / perMin)
}

func (g *GCode) cannedTime(ctx Context) time.Duration {
	c := g.cannedPath(ctx)
	d := c.dwell

	feed := ctx.feedPerMin()
	switch {
	case ctx.FeedMode == FeedInverseTime && ctx.Feed > 0:
		d += minutes(float64(c.feeds) / ctx.Feed)
	case feed > 0:
		d += minutes(c.feed / feed)
	}

	rapid := ctx.RapidRate
	if rapid <= 0 {
		rapid = feed
	}
	if rapid > 0 {
		d += minutes(c.rapid / rapid)
	}
	return d
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
