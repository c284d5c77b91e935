package gcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const grblModeString = "G00 G17 G90 G91.1 G94 G21 G40 G49 G54 G61 G97 M05 M09 F0 S0 T0"

func TestNewMode_GRBL(t *testing.T) {
	m, err := NewMode(nil, GRBLDefaults)
	require.NoError(t, err)

	assert.Equal(t, grblModeString, m.String())
	assert.Equal(t, "G00", m.Motion().String())
	assert.Equal(t, Millimeters, m.Units())
	assert.Equal(t, PlaneXY, m.Plane())
	assert.Equal(t, FeedUnitsPerMinute, m.FeedRateMode())
	assert.Equal(t, 1, m.CoordSystem())
	assert.False(t, m.Incremental())
	assert.False(t, m.ArcAbsolute())
	assert.False(t, m.ReturnToR())
	assert.Equal(t, 0.0, m.Feed())
	assert.Equal(t, 0, m.Tool())
}

func TestNewMode_Null(t *testing.T) {
	m, err := NewMode(nil, NullDefaults)
	require.NoError(t, err)

	assert.Equal(t, "", m.String())
	assert.Nil(t, m.Motion())
	assert.Empty(t, m.GCodes())
	assert.Equal(t, 1, m.CoordSystem())
	assert.Equal(t, Millimeters, m.Units())
}

func TestNewMode_Invalid(t *testing.T) {
	_, err := NewMode(nil, "G0 G1")
	var cErr *ModalConflictError
	assert.True(t, errors.As(err, &cErr))

	_, err = NewMode(nil, "G4 P1")
	assert.Error(t, err)

	_, err = NewMode(nil, "G90 X1")
	var uErr *UnsupportedInstructionError
	assert.True(t, errors.As(err, &uErr))

	_, err = NewMode(nil, "M10")
	assert.True(t, errors.As(err, &uErr))

	_, err = NewMode(nil, "G0 (open")
	assert.Error(t, err)
}

func TestMode_Set(t *testing.T) {
	m, err := NewMode(nil, NullDefaults)
	require.NoError(t, err)

	m.Set(mustBlock(t, "G81 X1 R2").GCodes()[0])
	assert.Equal(t, "G81 R2", m.Motion().String())

	// non-modal instructions are not kept
	m.Set(mustBlock(t, "G4 P1").GCodes()[0])
	assert.Nil(t, m.Get(ModalGroupNonModal))

	for _, tc := range []struct {
		code string
		cs   int
	}{
		{"G54", 1}, {"G55", 2}, {"G59", 6}, {"G59.1", 7}, {"G59.3", 9},
	} {
		m.Set(mustBlock(t, tc.code).GCodes()[0])
		assert.Equal(t, tc.cs, m.CoordSystem(), tc.code)
	}

	m.Set(mustBlock(t, "G20").GCodes()[0])
	m.Set(mustBlock(t, "G91").GCodes()[0])
	m.Set(mustBlock(t, "G18").GCodes()[0])
	m.Set(mustBlock(t, "G93").GCodes()[0])
	m.Set(mustBlock(t, "G99").GCodes()[0])
	assert.Equal(t, Inches, m.Units())
	assert.True(t, m.Incremental())
	assert.Equal(t, PlaneZX, m.Plane())
	assert.Equal(t, FeedInverseTime, m.FeedRateMode())
	assert.True(t, m.ReturnToR())

	c := m.Clone()
	c.Clear(ModalGroupMotion)
	assert.Nil(t, c.Motion())
	assert.NotNil(t, m.Motion())
}
