package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gcsim/coord"
	"github.com/mastercactapus/gcsim/gcode"
)

const testProfile = `
machine {
  defaults             = "null"
  ignore_invalid_modal = true
  rapid_rate           = 5000
  arc_tolerance        = 0.01
  arc_correction       = "snap_endpoint"

  offset "G55" {
    x = 10
    z = -2.5
  }

  instruction "M10" {
    name   = "vacuum on"
    params = "P"
  }
}
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(testProfile), "test.hcl")
	require.NoError(t, err)

	cfg, err := p.Config()
	require.NoError(t, err)
	assert.Equal(t, gcode.NullDefaults, cfg.Defaults)
	assert.True(t, cfg.IgnoreInvalidModal)
	assert.Equal(t, 5000.0, cfg.RapidRate)
	assert.Equal(t, &gcode.ArcCheck{Tolerance: 0.01, Correction: gcode.ArcSnapEndpoint}, cfg.Arc)

	k := cfg.Registry.Lookup(gcode.Word{W: 'M', Arg: 10})
	require.NotNil(t, k)
	assert.Equal(t, "vacuum on", k.Name)

	m, err := p.NewMachine()
	require.NoError(t, err)
	assert.Equal(t, coord.Position{X: 10, Z: -2.5}, m.Offset(2))
	assert.Equal(t, "", m.Mode().String())

	require.NoError(t, m.ProcessString("M10 P1"))
	assert.Equal(t, "M10", m.Mode().Get(gcode.ModalGroupUserDefined).String())
}

func TestDefault(t *testing.T) {
	m, err := Default().NewMachine()
	require.NoError(t, err)
	assert.Equal(t, "G00 G17 G90 G91.1 G94 G21 G40 G49 G54 G61 G97 M05 M09 F0 S0 T0", m.Mode().String())

	p, err := Parse([]byte(`machine { defaults = "G1 G20" }`), "test.hcl")
	require.NoError(t, err)
	m, err = p.NewMachine()
	require.NoError(t, err)
	assert.Equal(t, gcode.Inches, m.Mode().Units())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`machine {`), "test.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`machine { bogus = 1 }`), "test.hcl")
	assert.Error(t, err)

	for _, src := range []string{
		`machine {
  arc_tolerance  = 0.1
  arc_correction = "bogus"
}`,
		`machine { arc_correction = "snap_endpoint" }`,
		`machine {
  offset "G1" {}
}`,
		`machine {
  instruction "G1" {}
}`,
		`machine {
  instruction "X1" {}
}`,
		`machine { defaults = "G0 G1" }`,
	} {
		p, err := Parse([]byte(src), "test.hcl")
		require.NoError(t, err, src)
		_, err = p.NewMachine()
		assert.Error(t, err, src)
	}
}
