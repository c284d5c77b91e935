package gcode

import (
	"fmt"
	"strings"
	"time"

	"github.com/mastercactapus/gcsim/coord"
)

type Config struct {
	// Defaults is the startup mode, GRBLDefaults or NullDefaults.
	Defaults string

	// Registry resolves instructions, nil for the builtin set.
	Registry *Registry

	// IgnoreInvalidModal discards unknown instructions and unassignable
	// modal params instead of failing the block.
	IgnoreInvalidModal bool

	// RapidRate is the rapid traverse rate in mm/min used for time
	// estimates. Zero uses the programmed feed rate.
	RapidRate float64

	// Arc enables arc radius validation; nil skips it.
	Arc *ArcCheck
}

// GRBLConfig starts in the state of a freshly reset GRBL controller.
func GRBLConfig() Config { return Config{Defaults: GRBLDefaults} }

// NullConfig starts with no modal state at all.
func NullConfig() Config { return Config{Defaults: NullDefaults} }

// Machine is a virtual controller. It tracks modal state, absolute
// position and offsets as blocks are processed.
//
// A Machine is not safe for concurrent use; use Clone to branch.
type Machine struct {
	cfg  Config
	reg  *Registry
	mode *Mode

	abs coord.Position

	// work offsets for G54 (1) through G59.3 (9)
	offsets  [10]coord.Position
	g92      coord.Position
	g92Saved coord.Position

	// G28, G30
	home [2]coord.Position

	tool          int
	machineCoords bool

	delta    coord.Position
	distance float64
	travel   float64
	elapsed  time.Duration

	moved    bool
	min, max coord.Position
}

// NewMachine constructs a machine at the origin.
func NewMachine(cfg Config) (*Machine, error) {
	reg := registryOrDefault(cfg.Registry)
	mode, err := NewMode(reg, cfg.Defaults)
	if err != nil {
		return nil, err
	}
	return &Machine{cfg: cfg, reg: reg, mode: mode, tool: mode.Tool()}, nil
}

func (m *Machine) Clone() *Machine {
	c := *m
	c.mode = m.mode.Clone()
	return &c
}

func (m *Machine) Registry() *Registry { return m.reg }

// Mode returns a copy of the current mode.
func (m *Machine) Mode() *Mode { return m.mode.Clone() }

// AbsPos is the absolute machine position in millimeters.
func (m *Machine) AbsPos() coord.Position { return m.abs }

// SetAbsPos places the machine without moving it, e.g. from a probe or
// a controller status report.
func (m *Machine) SetAbsPos(p coord.Position) { m.abs = p }

// SetOffset sets the offset of a work coordinate system, 1 (G54) through
// 9 (G59.3).
func (m *Machine) SetOffset(coordSystem int, p coord.Position) error {
	if coordSystem < 1 || coordSystem > 9 {
		return fmt.Errorf("invalid coordinate system %d", coordSystem)
	}
	m.offsets[coordSystem] = p
	return nil
}

func (m *Machine) Offset(coordSystem int) coord.Position {
	if coordSystem < 1 || coordSystem > 9 {
		return coord.Position{}
	}
	return m.offsets[coordSystem]
}

// WorkOffset is the total offset between absolute and work coordinates.
func (m *Machine) WorkOffset() coord.Position {
	return m.offsets[m.mode.CoordSystem()].Add(m.g92)
}

// WorkPos is the current position in work coordinates.
func (m *Machine) WorkPos() coord.Position { return m.Abs2Work(m.abs) }

// Abs2Work converts an absolute position to work coordinates using the
// active coordinate system and G92 offset.
func (m *Machine) Abs2Work(p coord.Position) coord.Position {
	return p.Sub(m.WorkOffset())
}

// Work2Abs is the inverse of Abs2Work. Both apply the same combined
// offset, so a round trip is exact whenever the subtraction is, and off
// by at most one rounding step otherwise.
func (m *Machine) Work2Abs(p coord.Position) coord.Position {
	return p.Add(m.WorkOffset())
}

func (m *Machine) Tool() int { return m.tool }

// Delta is the position change caused by the last processed block.
func (m *Machine) Delta() coord.Position { return m.delta }

// Distance is the accumulated straight-line distance of every move.
func (m *Machine) Distance() float64 { return m.distance }

// Travel is the accumulated path length of every move.
func (m *Machine) Travel() float64 { return m.travel }

// Elapsed is the accumulated estimated run time.
func (m *Machine) Elapsed() time.Duration { return m.elapsed }

// Bounds returns the range of absolute positions visited. ok is false if
// the machine has not moved.
func (m *Machine) Bounds() (min, max coord.Position, ok bool) {
	return m.min, m.max, m.moved
}

// Context returns the state instructions are evaluated against.
func (m *Machine) Context() Context {
	return Context{
		Pos:           m.abs,
		Offset:        m.WorkOffset(),
		Units:         m.mode.Units(),
		Incremental:   m.mode.Incremental(),
		ArcAbsolute:   m.mode.ArcAbsolute(),
		MachineCoords: m.machineCoords,
		Plane:         m.mode.Plane(),
		ReturnToR:     m.mode.ReturnToR(),
		FeedMode:      m.mode.FeedRateMode(),
		Feed:          m.mode.Feed(),
		SpindleSpeed:  m.mode.SpindleSpeed(),
		RapidRate:     m.cfg.RapidRate,
	}
}

// State is a read-only snapshot of a Machine.
type State struct {
	Mode         string         `json:"mode"`
	Units        Units          `json:"units"`
	CoordSystem  int            `json:"coordSystem"`
	Abs          coord.Position `json:"abs"`
	Work         coord.Position `json:"work"`
	Feed         float64        `json:"feed"`
	SpindleSpeed float64        `json:"spindleSpeed"`
	Tool         int            `json:"tool"`
	Distance     float64        `json:"distance"`
	Travel       float64        `json:"travel"`
	Elapsed      time.Duration  `json:"elapsed"`
}

func (m *Machine) State() State {
	return State{
		Mode:         m.mode.String(),
		Units:        m.mode.Units(),
		CoordSystem:  m.mode.CoordSystem(),
		Abs:          m.abs,
		Work:         m.WorkPos(),
		Feed:         m.mode.Feed(),
		SpindleSpeed: m.mode.SpindleSpeed(),
		Tool:         m.tool,
		Distance:     m.distance,
		Travel:       m.travel,
		Elapsed:      m.elapsed,
	}
}

// ProcessBlock applies a block. The block is applied completely or, on
// error, not at all.
func (m *Machine) ProcessBlock(b *Block) error {
	if b == nil {
		return nil
	}
	next := m.Clone()
	err := next.process(b)
	if err != nil {
		return err
	}
	*m = *next
	return nil
}

// ProcessLine applies the block of a line, if it has one.
func (m *Machine) ProcessLine(l *Line) error {
	if l == nil || l.Block == nil {
		return nil
	}
	return m.ProcessBlock(l.Block)
}

// ProcessString parses and applies every line of text. Unknown
// instructions are reported with the mode they were encountered in.
func (m *Machine) ProcessString(text string) error {
	opt := ParseOptions{Registry: m.reg, AllowUnresolved: true}
	for i, s := range strings.Split(text, "\n") {
		s = strings.TrimRight(s, "\r")
		l, err := ParseLineWith(s, opt)
		if err == nil {
			err = m.ProcessLine(l)
		}
		if err != nil {
			return &LineError{Line: i + 1, Text: s, Err: err}
		}
	}
	return nil
}

// CleanBlock returns a copy of b without the words this machine could not
// process in its current mode. b is not modified.
func (m *Machine) CleanBlock(b *Block) *Block {
	_, invalid := m.modalContinuation(b)
	if len(invalid) == 0 {
		return b.Clone()
	}
	drop := make(map[int]bool, len(invalid))
	for _, idx := range invalid {
		drop[idx] = true
	}
	return b.without(drop)
}

// modalContinuation applies the block's modal params to the active motion
// mode. It returns the resulting instruction, if any, and the indexes of
// words that cannot be assigned.
func (m *Machine) modalContinuation(b *Block) (*GCode, []int) {
	if len(b.modal) == 0 {
		return nil, nil
	}
	motion := m.mode.Motion()
	blockMotion := b.Motion() != nil

	var params []Word
	var invalid []int
	for _, idx := range b.modal {
		w := b.words[idx]
		if w.isInstruction() || blockMotion || motion == nil || !motion.Accepts(w.W) {
			invalid = append(invalid, idx)
			continue
		}
		params = append(params, w)
	}
	if len(params) == 0 {
		return nil, invalid
	}
	return motion.merge(params), invalid
}

func (m *Machine) process(b *Block) error {
	gcodes := b.GCodes()
	cont, invalid := m.modalContinuation(b)
	if len(invalid) > 0 && !m.cfg.IgnoreInvalidModal {
		words := make([]Word, len(invalid))
		for i, idx := range invalid {
			words[i] = b.words[idx]
		}
		return &UnsupportedInstructionError{Words: words, Mode: m.mode.String()}
	}
	if cont != nil {
		gcodes = append(gcodes, cont)
	}

	err := checkModalGroups(gcodes)
	if err != nil {
		return err
	}
	sortGCodes(gcodes)

	start := m.abs
	m.machineCoords = false
	for _, g := range gcodes {
		err = m.exec(g)
		if err != nil {
			return err
		}
	}
	m.machineCoords = false
	m.delta = m.abs.Sub(start)
	return nil
}

func (m *Machine) exec(g *GCode) error {
	if g.kind.Apply != nil {
		return g.kind.Apply(m, g)
	}
	m.mode.Set(g)
	return nil
}

// moveTo records a move to an absolute position.
func (m *Machine) moveTo(p coord.Position, travel float64, d time.Duration) {
	m.touch(p)
	m.distance += m.abs.Distance(p)
	m.travel += travel
	m.elapsed += d
	m.abs = p
}

// touch extends the bounds to p without moving.
func (m *Machine) touch(p coord.Position) {
	if !m.moved {
		m.min, m.max, m.moved = m.abs, m.abs, true
	}
	m.min = m.min.Min(p)
	m.max = m.max.Max(p)
}
