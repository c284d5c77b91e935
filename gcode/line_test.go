package gcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_Comments(t *testing.T) {
	l, err := ParseLine("G02 X10.75 Y2 ; abc %something%")
	require.NoError(t, err)
	require.NotNil(t, l.Block)
	assert.Equal(t, []Word{{W: 'G', Arg: 2}, {W: 'X', Arg: 10.75}, {W: 'Y', Arg: 2}}, l.Block.Words())
	assert.Equal(t, &Comment{Text: "abc", Style: CommentSemicolon}, l.Comment)
	assert.Equal(t, "%something%", l.Macro)
	assert.False(t, l.IsMacro())
	assert.Equal(t, "G02 X10.75 Y2 ; abc %something%", l.String())

	l, err = ParseLine("G0 X1 (first) Y2 ( second )")
	require.NoError(t, err)
	assert.Equal(t, "first. second", l.Comment.Text)
	assert.Equal(t, CommentParens, l.Comment.Style)
	assert.Equal(t, "G00 X1 Y2 (first. second)", l.String())

	l, err = ParseLine("(only a comment)")
	require.NoError(t, err)
	assert.Nil(t, l.Block)
	assert.Equal(t, "(only a comment)", l.String())

	_, err = ParseLine("G0 (unterminated")
	var mErr *MalformedWordError
	assert.True(t, errors.As(err, &mErr))
}

func TestParseLine_Macro(t *testing.T) {
	for _, s := range []string{"%", "%%", "% blah %", "  %"} {
		l, err := ParseLine(s)
		require.NoError(t, err, s)
		assert.Nil(t, l.Block, s)
		assert.True(t, l.IsMacro(), s)
	}
}

func TestParseLine_Blank(t *testing.T) {
	l, err := ParseLine("   ")
	require.NoError(t, err)
	assert.Nil(t, l.Block)
	assert.Nil(t, l.Comment)
	assert.Equal(t, "", l.String())
}

func TestParseLine_LineNumber(t *testing.T) {
	l, err := ParseLine("N10 G1 X1")
	require.NoError(t, err)
	require.NotNil(t, l.Number)
	assert.Equal(t, 10, *l.Number)
	assert.Equal(t, "G01 X1", l.Block.String())
	assert.Equal(t, "N10 G01 X1", l.String())

	l, err = ParseLine("N20")
	require.NoError(t, err)
	assert.Nil(t, l.Block)
	assert.Equal(t, 20, *l.Number)

	_, err = ParseLine("G1 N10")
	var mErr *MalformedWordError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, 3, mErr.Offset)

	// offsets point into the original text, past comments
	_, err = ParseLine("N1 G1 (see N2) X1 n5")
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, 18, mErr.Offset)
	assert.Equal(t, "N1 G1 (see N2) X1 n5", mErr.Text)

	_, err = ParseLine("G1 (note) X")
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, 10, mErr.Offset)
	assert.Equal(t, "G1 (note) X", mErr.Text)
}

func TestParseLine_Unresolved(t *testing.T) {
	_, err := ParseLine("G1 X1 M10")
	var uErr *UnsupportedInstructionError
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, []Word{{W: 'M', Arg: 10}}, uErr.Words)
	assert.Empty(t, uErr.Mode)

	l, err := ParseLineWith("G1 X1 M10", ParseOptions{CleanBlock: true})
	require.NoError(t, err)
	assert.Equal(t, "G01 X1", l.Block.String())

	l, err = ParseLineWith("M10", ParseOptions{CleanBlock: true})
	require.NoError(t, err)
	assert.Nil(t, l.Block)

	l, err = ParseLineWith("G1 X1 M10", ParseOptions{AllowUnresolved: true})
	require.NoError(t, err)
	assert.Equal(t, []Word{{W: 'M', Arg: 10}}, l.Block.Unresolved())
}

func TestParseLine_RoundTrip(t *testing.T) {
	for _, s := range []string{
		"G01 X10 Y-2.5 F1500",
		"N5 G90 G54 G21 (setup)",
		"g2 x1 y1 i0.5 j0.5 ; arc",
		"M6 T2",
		"G10 L20 P1 X0 Y0",
		"G38.2 Z-10 F50",
		"X1.5 Y3",
		"S12000 M3",
	} {
		t.Run(s, func(t *testing.T) {
			l, err := ParseLine(s)
			require.NoError(t, err)

			again, err := ParseLine(l.String())
			require.NoError(t, err)
			assert.Equal(t, l.Block.Words(), again.Block.Words())
			assert.Equal(t, l.Comment, again.Comment)
			assert.Equal(t, l.Number, again.Number)
			assert.Equal(t, l.String(), again.String())
		})
	}
}
