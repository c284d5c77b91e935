package gcode

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const macroProgram = "G0 X1\n%\nG1 X2 ; inside\n%\nM2\n"

func TestParser_Read(t *testing.T) {
	p := NewParser(strings.NewReader(macroProgram), ParseOptions{})

	var inMacro []bool
	for {
		l, err := p.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		inMacro = append(inMacro, l.InMacro)
	}
	assert.Equal(t, []bool{false, true, true, true, false}, inMacro)
	assert.False(t, p.InMacro())
}

func TestParser_ReadError(t *testing.T) {
	p := NewParser(strings.NewReader("G0 X1\r\nG1 N5\r\n"), ParseOptions{})

	l, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, "G0 X1", l.Text)

	_, err = p.Read()
	var lErr *LineError
	require.True(t, errors.As(err, &lErr))
	assert.Equal(t, 2, lErr.Line)
	assert.Equal(t, "G1 N5", lErr.Text)

	var mErr *MalformedWordError
	assert.True(t, errors.As(err, &mErr))
}

func TestParse(t *testing.T) {
	lines, err := Parse("G0 X1\n\n(comment)\nM2")
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.NotNil(t, lines[0].Block)
	assert.Nil(t, lines[1].Block)
	assert.Nil(t, lines[2].Block)
	assert.Equal(t, "M02", lines[3].Block.String())

	_, err = Parse("G0 X1\nG0 O1")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParse("X") })
}

func TestParseConcurrent(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("G1 X1 Y2 F100 (move)\nG0 Z5\n%\nG2 X0 Y0 I1 J0\n%\nM2\n")
	}
	data := sb.String()

	exp, err := Parse(data)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 4} {
		lines, err := ParseConcurrent(context.Background(), data, workers, ParseOptions{})
		require.NoError(t, err)
		assert.Equal(t, exp, lines)
	}

	_, err = ParseConcurrent(context.Background(), "G0 X1\nG0 X\n", 2, ParseOptions{})
	var lErr *LineError
	require.True(t, errors.As(err, &lErr))
	assert.Equal(t, 2, lErr.Line)
}
