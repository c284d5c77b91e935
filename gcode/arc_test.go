package gcode

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gcsim/coord"
)

func arcGCode(t *testing.T, s string) *GCode {
	t.Helper()
	gcodes := mustBlock(t, s).GCodes()
	require.Len(t, gcodes, 1)
	return gcodes[0]
}

func TestGCode_Arc(t *testing.T) {
	ctx := Context{Pos: coord.Position{X: 5}}

	a, err := arcGCode(t, "G3 X0 Y5 I-5 J0").Arc(ctx)
	require.NoError(t, err)
	assert.Equal(t, coord.Point{}, a.Center)
	assert.InDelta(t, 5, a.R1, 1e-9)
	assert.InDelta(t, 5, a.R2, 1e-9)
	assert.InDelta(t, math.Pi/2, a.Angle(), 1e-9)
	assert.InDelta(t, 5*math.Pi/2, a.Length(), 1e-9)
	assert.InDelta(t, math.Sqrt(50), a.Chord(), 1e-9)
	assert.NoError(t, a.Check(1e-6))

	a, err = arcGCode(t, "G2 X0 Y5 I-5 J0").Arc(ctx)
	require.NoError(t, err)
	assert.True(t, a.Clockwise)
	assert.InDelta(t, 15*math.Pi/2, a.Length(), 1e-9)

	a, err = arcGCode(t, "G2 X0 Y5 R5").Arc(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5, a.Center.X, 1e-9)
	assert.InDelta(t, 5, a.Center.Y, 1e-9)
	assert.InDelta(t, 5*math.Pi/2, a.Length(), 1e-9)

	// full circle, then two turns
	a, err = arcGCode(t, "G2 X5 Y0 I-5 J0").Arc(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 10*math.Pi, a.Length(), 1e-9)
	a, err = arcGCode(t, "G2 X5 Y0 I-5 J0 P2").Arc(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 20*math.Pi, a.Length(), 1e-9)

	// helix
	a, err = arcGCode(t, "G3 X0 Y5 Z10 I-5 J0").Arc(ctx)
	require.NoError(t, err)
	assert.InDelta(t, math.Hypot(5*math.Pi/2, 10), a.Length(), 1e-9)
}

func TestGCode_ArcPlanes(t *testing.T) {
	ctx := Context{Pos: coord.Position{Z: 5}, Plane: PlaneZX}
	a, err := arcGCode(t, "G3 Z0 X5 K-5").Arc(ctx)
	require.NoError(t, err)
	assert.Equal(t, coord.Point{}, a.Center)
	assert.InDelta(t, 5*math.Pi/2, a.Length(), 1e-9)

	// G90.1 centers are in work coordinates
	ctx = Context{Pos: coord.Position{X: 2}, ArcAbsolute: true, Offset: coord.Position{X: 1}}
	a, err = arcGCode(t, "G3 X1 Y2 I0 J0").Arc(ctx)
	require.NoError(t, err)
	assert.Equal(t, coord.Point{X: 1}, a.Center)
	assert.InDelta(t, 1, a.R1, 1e-9)
	assert.InDelta(t, math.Sqrt(5), a.R2, 1e-9)

	ctx = Context{Pos: coord.Position{U: 5}, Plane: PlaneUV}
	_, err = arcGCode(t, "G3 X0 Y5 I-5").Arc(ctx)
	var gErr *GeometricValidationError
	assert.True(t, errors.As(err, &gErr))
}

func TestGCode_ArcInvalid(t *testing.T) {
	ctx := Context{Pos: coord.Position{X: 5}}
	for _, s := range []string{
		"G2 X1 I1 R1",
		"G2 X1",
		"G2 I1 J1",
		"G2 X5 Y0 R5",
		"G2 X1 I1 P0.5",
		"G2 X1 R0",
		"G2 X100 R1",
		"G1 X1",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := arcGCode(t, s).Arc(ctx)
			var gErr *GeometricValidationError
			assert.True(t, errors.As(err, &gErr), "got %v", err)
		})
	}
}

func TestArc_Check(t *testing.T) {
	ctx := Context{Pos: coord.Position{X: 5}}
	a, err := arcGCode(t, "G3 X0 Y5.1 I-5 J0").Arc(ctx)
	require.NoError(t, err)

	err = a.Check(0.05)
	var gErr *GeometricValidationError
	require.True(t, errors.As(err, &gErr))
	assert.InDelta(t, 5, gErr.R1, 1e-9)
	assert.InDelta(t, 5.1, gErr.R2, 1e-9)
	assert.Equal(t, 0.05, gErr.Tolerance)

	assert.NoError(t, a.Check(0.2))

	a, err = arcGCode(t, "G3 X0 Y5 I0 J0").Arc(ctx)
	require.NoError(t, err)
	assert.Error(t, a.Check(0.01))

	a, err = arcGCode(t, "G3 X0 Y5 I-5 J0").Arc(Context{Pos: coord.Position{X: -5}})
	require.NoError(t, err)
	assert.Error(t, a.Check(0.01))
}

func TestGCode_CorrectArc(t *testing.T) {
	ctx := Context{Pos: coord.Position{X: 5}}
	g := arcGCode(t, "G3 X0 Y5.1 I-5 J0")

	_, err := g.CorrectArc(ctx, 0.01, ArcNoCorrection)
	var gErr *GeometricValidationError
	assert.True(t, errors.As(err, &gErr))

	// within tolerance is returned as is
	c, err := g.CorrectArc(ctx, 0.2, ArcNoCorrection)
	require.NoError(t, err)
	assert.Same(t, g, c)

	c, err = g.CorrectArc(ctx, 0.01, ArcSnapEndpoint)
	require.NoError(t, err)
	y, _ := c.Param('Y')
	assert.InDelta(t, 5, y, 1e-9)
	y, _ = g.Param('Y')
	assert.Equal(t, 5.1, y)
	a, err := c.Arc(ctx)
	require.NoError(t, err)
	assert.NoError(t, a.Check(1e-9))

	c, err = g.CorrectArc(ctx, 0.01, ArcRecomputeRadius)
	require.NoError(t, err)
	a, err = c.Arc(ctx)
	require.NoError(t, err)
	assert.InDelta(t, a.R1, a.R2, 1e-9)
	assert.NoError(t, a.Check(1e-9))
	x, _ := c.Param('X')
	assert.Equal(t, 0.0, x)
	y, _ = c.Param('Y')
	assert.Equal(t, 5.1, y)

	g = arcGCode(t, "G3 X1 Y5.1 I-5 J0")
	c, err = g.CorrectArc(Context{Pos: coord.Position{X: 5}, Units: Inches}, 0.01, ArcRecomputeRadius)
	require.NoError(t, err)
	a, err = c.Arc(Context{Pos: coord.Position{X: 5}, Units: Inches})
	require.NoError(t, err)
	assert.InDelta(t, a.R1, a.R2, 1e-9)

	assert.Equal(t, "snap_endpoint", ArcSnapEndpoint.String())
	assert.Equal(t, "recompute_radius", ArcRecomputeRadius.String())
	assert.Equal(t, "none", ArcNoCorrection.String())
}
