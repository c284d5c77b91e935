// Package profile loads machine profiles written in HCL.
package profile

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/mastercactapus/gcsim/coord"
	"github.com/mastercactapus/gcsim/gcode"
)

// Profile describes the simulated machine.
//
//	machine {
//	  defaults             = "grbl"
//	  rapid_rate           = 5000
//	  arc_tolerance        = 0.002
//	  arc_correction       = "snap_endpoint"
//
//	  offset "G54" {
//	    x = -200
//	    y = -150
//	  }
//
//	  instruction "M10" {
//	    name   = "vacuum on"
//	    params = "P"
//	  }
//	}
type Profile struct {
	Machine machineBlock `hcl:"machine,block"`
}

type machineBlock struct {
	// Defaults is "grbl", "null" or a line of startup instructions.
	Defaults           string  `hcl:"defaults,optional"`
	IgnoreInvalidModal bool    `hcl:"ignore_invalid_modal,optional"`
	RapidRate          float64 `hcl:"rapid_rate,optional"`

	ArcTolerance  *float64 `hcl:"arc_tolerance,optional"`
	ArcCorrection string   `hcl:"arc_correction,optional"`

	Offsets      []*offsetBlock      `hcl:"offset,block"`
	Instructions []*instructionBlock `hcl:"instruction,block"`
}

type offsetBlock struct {
	CoordSystem string `hcl:"coord_system,label"`

	X float64 `hcl:"x,optional"`
	Y float64 `hcl:"y,optional"`
	Z float64 `hcl:"z,optional"`
	A float64 `hcl:"a,optional"`
	B float64 `hcl:"b,optional"`
	C float64 `hcl:"c,optional"`
}

type instructionBlock struct {
	Code   string `hcl:"code,label"`
	Name   string `hcl:"name,optional"`
	Params string `hcl:"params,optional"`
}

// Default simulates a GRBL controller.
func Default() *Profile {
	return &Profile{Machine: machineBlock{Defaults: "grbl"}}
}

func Load(path string) (*Profile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(src, path)
}

func Parse(src []byte, filename string) (*Profile, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var p Profile
	diags = gohcl.DecodeBody(f.Body, nil, &p)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return &p, nil
}

func parseArcCorrection(s string) (gcode.ArcCorrection, error) {
	if s == "" {
		return gcode.ArcNoCorrection, nil
	}
	for _, c := range []gcode.ArcCorrection{gcode.ArcNoCorrection, gcode.ArcSnapEndpoint, gcode.ArcRecomputeRadius} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown arc correction '%s'", s)
}

// Registry returns the builtin instruction set extended with the
// profile's instructions.
func (p *Profile) Registry() (*gcode.Registry, error) {
	reg := gcode.NewRegistry()
	for _, ib := range p.Machine.Instructions {
		w, err := gcode.ParseWord(ib.Code)
		if err != nil {
			return nil, fmt.Errorf("instruction %s: %w", ib.Code, err)
		}
		if w.W != 'G' && w.W != 'M' {
			return nil, fmt.Errorf("instruction %s: must be a G or M code", ib.Code)
		}
		name := ib.Name
		if name == "" {
			name = ib.Code
		}
		err = reg.Register(&gcode.Kind{
			Name:     name,
			Key:      w.Key(),
			Group:    gcode.ModalGroupUserDefined,
			Params:   ib.Params,
			Priority: gcode.PriorityUserDefined,
		})
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Config converts the profile into a machine configuration.
func (p *Profile) Config() (gcode.Config, error) {
	var cfg gcode.Config
	switch p.Machine.Defaults {
	case "", "grbl":
		cfg = gcode.GRBLConfig()
	case "null":
		cfg = gcode.NullConfig()
	default:
		cfg = gcode.Config{Defaults: p.Machine.Defaults}
	}
	cfg.IgnoreInvalidModal = p.Machine.IgnoreInvalidModal
	cfg.RapidRate = p.Machine.RapidRate

	reg, err := p.Registry()
	if err != nil {
		return cfg, err
	}
	cfg.Registry = reg

	if p.Machine.ArcTolerance != nil {
		c, err := parseArcCorrection(p.Machine.ArcCorrection)
		if err != nil {
			return cfg, err
		}
		cfg.Arc = &gcode.ArcCheck{Tolerance: *p.Machine.ArcTolerance, Correction: c}
	} else if p.Machine.ArcCorrection != "" {
		return cfg, fmt.Errorf("arc_correction requires arc_tolerance")
	}
	return cfg, nil
}

// NewMachine builds a fresh machine with the profile's offsets applied.
func (p *Profile) NewMachine() (*gcode.Machine, error) {
	cfg, err := p.Config()
	if err != nil {
		return nil, err
	}
	m, err := gcode.NewMachine(cfg)
	if err != nil {
		return nil, err
	}

	for _, ob := range p.Machine.Offsets {
		mode, err := gcode.NewMode(nil, ob.CoordSystem)
		if err != nil || mode.Get(gcode.ModalGroupCoordinateSystem) == nil {
			return nil, fmt.Errorf("offset %q: not a coordinate system", ob.CoordSystem)
		}
		err = m.SetOffset(mode.CoordSystem(), coord.Position{X: ob.X, Y: ob.Y, Z: ob.Z, A: ob.A, B: ob.B, C: ob.C})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
