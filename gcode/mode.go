package gcode

import (
	"fmt"
	"strings"
)

// Startup modes. GRBLDefaults matches the state of a freshly reset GRBL
// controller; NullDefaults sets nothing.
const (
	GRBLDefaults = "G0 G54 G17 G21 G90 G91.1 G94 G40 G49 G61 G97 M5 M9 F0 S0 T0"
	NullDefaults = ""
)

// Mode holds at most one instruction per modal group.
type Mode struct {
	gcodes [modalGroupCount]*GCode
}

// NewMode builds a mode from a line of startup instructions such as
// GRBLDefaults.
func NewMode(reg *Registry, defaults string) (*Mode, error) {
	m := &Mode{}
	l, err := ParseLineWith(defaults, ParseOptions{Registry: reg})
	if err != nil {
		return nil, fmt.Errorf("parse default mode: %w", err)
	}
	if l.Block == nil {
		return m, nil
	}
	err = l.Block.Validate()
	if err != nil {
		return nil, fmt.Errorf("default mode: %w", err)
	}
	if p := l.Block.ModalParams(); len(p) > 0 {
		return nil, &UnsupportedInstructionError{Words: p}
	}
	for _, g := range l.Block.Ordered() {
		if !g.Group().IsModal() {
			return nil, fmt.Errorf("default mode: %s is not modal", g.Word)
		}
		m.Set(g)
	}
	return m, nil
}

func (m *Mode) Get(group ModalGroup) *GCode {
	if int(group) >= len(m.gcodes) {
		return nil
	}
	return m.gcodes[group]
}

// Set stores the modal copy of g in its group. Non-modal instructions
// are ignored.
func (m *Mode) Set(g *GCode) {
	grp := g.Group()
	if !grp.IsModal() {
		return
	}
	m.gcodes[grp] = g.ModalCopy()
}

func (m *Mode) Clear(group ModalGroup) {
	if int(group) < len(m.gcodes) {
		m.gcodes[group] = nil
	}
}

func (m *Mode) Clone() *Mode {
	c := *m
	return &c
}

// GCodes returns the active instructions in modal group order.
func (m *Mode) GCodes() []*GCode {
	var res []*GCode
	for _, g := range m.gcodes {
		if g != nil {
			res = append(res, g)
		}
	}
	return res
}

func (m *Mode) String() string {
	gcodes := m.GCodes()
	parts := make([]string, len(gcodes))
	for i, g := range gcodes {
		parts[i] = g.String()
	}
	return strings.Join(parts, " ")
}

func (m *Mode) is(group ModalGroup, n float64) bool {
	g := m.gcodes[group]
	return g != nil && g.Word.Key() == Word{W: g.Word.W, Arg: n}.Key()
}

func (m *Mode) value(group ModalGroup) float64 {
	if g := m.gcodes[group]; g != nil {
		return g.Word.Arg
	}
	return 0
}

// Motion returns the active motion instruction, or nil.
func (m *Mode) Motion() *GCode { return m.gcodes[ModalGroupMotion] }

func (m *Mode) Units() Units {
	if m.is(ModalGroupUnits, 20) {
		return Inches
	}
	return Millimeters
}

func (m *Mode) Incremental() bool { return m.is(ModalGroupDistanceMode, 91) }

// ArcAbsolute reports G90.1; arc centers are incremental otherwise.
func (m *Mode) ArcAbsolute() bool { return m.is(ModalGroupArcDistanceMode, 90.1) }

func (m *Mode) Plane() Plane {
	switch {
	case m.is(ModalGroupPlaneSelection, 18):
		return PlaneZX
	case m.is(ModalGroupPlaneSelection, 19):
		return PlaneYZ
	case m.is(ModalGroupPlaneSelection, 17.1):
		return PlaneUV
	case m.is(ModalGroupPlaneSelection, 18.1):
		return PlaneWU
	case m.is(ModalGroupPlaneSelection, 19.1):
		return PlaneVW
	}
	return PlaneXY
}

func (m *Mode) FeedRateMode() FeedRateMode {
	switch {
	case m.is(ModalGroupFeedRateMode, 93):
		return FeedInverseTime
	case m.is(ModalGroupFeedRateMode, 95):
		return FeedUnitsPerRevolution
	}
	return FeedUnitsPerMinute
}

// CoordSystem returns the active work coordinate system, 1 (G54)
// through 9 (G59.3).
func (m *Mode) CoordSystem() int {
	g := m.gcodes[ModalGroupCoordinateSystem]
	if g == nil {
		return 1
	}
	if cs, ok := coordSystemIndex(g.Word.Key()); ok {
		return cs
	}
	return 1
}

// coordSystemIndex maps G54 through G59.3 to 1 through 9.
func coordSystemIndex(k Key) (int, bool) {
	if k.Letter != 'G' {
		return 0, false
	}
	switch {
	case k.Number >= 54 && k.Number <= 58 && k.Sub == 0:
		return k.Number - 53, true
	case k.Number == 59 && k.Sub <= 3:
		return 6 + k.Sub, true
	}
	return 0, false
}

// ReturnToR reports G99, returning canned cycles to the R level.
func (m *Mode) ReturnToR() bool { return m.is(ModalGroupCannedCyclesMode, 99) }

func (m *Mode) Feed() float64         { return m.value(ModalGroupFeedRate) }
func (m *Mode) SpindleSpeed() float64 { return m.value(ModalGroupSpindleSpeed) }
func (m *Mode) Tool() int             { return int(m.value(ModalGroupTool)) }
