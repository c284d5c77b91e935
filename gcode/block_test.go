package gcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBlock(t *testing.T, s string) *Block {
	t.Helper()
	l, err := ParseLineWith(s, ParseOptions{AllowUnresolved: true})
	require.NoError(t, err)
	require.NotNil(t, l.Block)
	return l.Block
}

func gcodeStrings(gcodes []*GCode) []string {
	res := make([]string, len(gcodes))
	for i, g := range gcodes {
		res[i] = g.String()
	}
	return res
}

func TestBlock_Grouping(t *testing.T) {
	b := mustBlock(t, "G1 X1 G0 X2")
	assert.Equal(t, []string{"G01 X1", "G00 X2"}, gcodeStrings(b.GCodes()))
	assert.Empty(t, b.ModalParams())

	b = mustBlock(t, "M6 T2 X1")
	assert.Equal(t, []string{"M06 T2"}, gcodeStrings(b.GCodes()))
	assert.Equal(t, []Word{{W: 'X', Arg: 1}}, b.ModalParams())

	b = mustBlock(t, "G10 L20 P1 X0 Y0")
	require.Len(t, b.GCodes(), 1)
	g := b.GCodes()[0]
	l, ok := g.Param('L')
	assert.True(t, ok)
	assert.Equal(t, 20.0, l)
	assert.True(t, g.HasParam('Y'))
	assert.False(t, g.HasParam('Z'))
}

func TestBlock_Len(t *testing.T) {
	assert.Equal(t, 1, mustBlock(t, "X1 Y2").Len())
	assert.Equal(t, 1, mustBlock(t, "G0 X1").Len())
	assert.Equal(t, 2, mustBlock(t, "G0 X1 M3 Z2").Len())
	assert.Equal(t, 3, mustBlock(t, "G90 M3 X1").Len())
}

func TestBlock_Ordered(t *testing.T) {
	b := mustBlock(t, "T2 G1 X1 G21 M3 S1000 M6 F100")

	var words []string
	for _, g := range b.Ordered() {
		words = append(words, g.Word.String())
	}
	assert.Equal(t, []string{"F100", "S1000", "T2", "M06", "M03", "G21", "G01"}, words)

	// textual order is untouched
	assert.Equal(t, "T2", b.GCodes()[0].Word.String())

	b = mustBlock(t, "G0 X1 G80")
	assert.Equal(t, "G80", b.Ordered()[0].Word.String())
}

func TestBlock_Validate(t *testing.T) {
	assert.NoError(t, mustBlock(t, "G4 P1 G0 X1").Validate())
	assert.NoError(t, mustBlock(t, "G90 G21 G1 X1 F100").Validate())

	err := mustBlock(t, "G0 G1 X1").Validate()
	var cErr *ModalConflictError
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, ModalGroupMotion, cErr.Group)
	assert.Equal(t, "multiple words from motion modal group: G00, G01", err.Error())

	err = mustBlock(t, "G1 X1 X2").Validate()
	var mErr *MalformedWordError
	assert.True(t, errors.As(err, &mErr))

	err = mustBlock(t, "G1 X1 M10").Validate()
	var uErr *UnsupportedInstructionError
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, "unsupported gcode(s) M10", err.Error())
}

func TestBlock_Motion(t *testing.T) {
	assert.Equal(t, "G01 X1", mustBlock(t, "G21 G1 X1").Motion().String())
	assert.Nil(t, mustBlock(t, "G21 X1").Motion())
}

func TestBlock_Params(t *testing.T) {
	b := mustBlock(t, "G1 X1")

	b.SetParam('Z', 3)
	assert.Equal(t, "G01 X1 Z3", b.String())
	z, ok := b.GCodes()[0].Param('Z')
	assert.True(t, ok)
	assert.Equal(t, 3.0, z)

	b.SetParam('X', 5)
	assert.Equal(t, "G01 X5 Z3", b.String())
	x, ok := b.Param('X')
	assert.True(t, ok)
	assert.Equal(t, 5.0, x)

	_, ok = b.Param('G')
	assert.False(t, ok)
	_, ok = b.Param('Y')
	assert.False(t, ok)

	c := b.Clone()
	c.SetParam('X', 9)
	assert.Equal(t, "G01 X5 Z3", b.String())
	assert.Equal(t, "G01 X9 Z3", c.String())
}

func TestGCode_ModalCopy(t *testing.T) {
	g := mustBlock(t, "G81 X1 Y2 Z-3 R1 L2").GCodes()[0]
	assert.Equal(t, "G81 Z-3 R1", g.ModalCopy().String())
	assert.Equal(t, "G81 X1 Y2 Z-3 R1 L2", g.String())

	g = mustBlock(t, "G1 X1").GCodes()[0]
	assert.Equal(t, "G01", g.ModalCopy().String())
	assert.Equal(t, "G01 X1 Y3", g.WithParam('Y', 3).String())
	assert.Equal(t, "G01 X1", g.String())
}
