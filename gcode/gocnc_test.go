package gcode_test

import (
	"strings"
	"testing"

	gocnc "github.com/joushou/gocnc/gcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gcsim/gcode"
)

// Both parsers must agree on the word stream of a plain program.
func TestParse_MatchesGocnc(t *testing.T) {
	program := strings.TrimSpace(`
G21 G90 (setup)
G0 X10 Y-2.5 Z5
G1 Z-1.25 F300 ; plunge
g2 x20 y7.5 i5 j5
M3 S12000
G38.2 Z-10 F100
N110 G1 X0.5
G10 L20 P2 X0 (zero) Y0
M30
`)

	lines, err := gcode.Parse(program)
	require.NoError(t, err)
	doc, err := gocnc.Parse(program)
	require.NoError(t, err)

	var ours [][]gcode.Word
	for _, l := range lines {
		var words []gcode.Word
		if l.Number != nil {
			words = append(words, gcode.Word{W: 'N', Arg: float64(*l.Number)})
		}
		if l.Block != nil {
			words = append(words, l.Block.Words()...)
		}
		ours = append(ours, words)
	}

	var theirs [][]gcode.Word
	for _, b := range doc.Blocks {
		var words []gcode.Word
		for _, n := range b.Nodes {
			if w, ok := n.(*gocnc.Word); ok {
				words = append(words, gcode.Word{W: byte(w.Address), Arg: w.Command})
			}
		}
		theirs = append(theirs, words)
	}

	require.Len(t, ours, 9)
	assert.Equal(t, theirs, ours)
}
