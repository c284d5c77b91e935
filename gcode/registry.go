package gcode

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MotionType classifies how an instruction moves the machine.
type MotionType byte

const (
	MotionNone MotionType = iota
	MotionRapid
	MotionLinear
	MotionArc
	MotionDwell
	MotionCannedCycle
)

// Kind describes a family of instructions: what word selects it, which
// parameters it takes, its modal group and when it runs within a block.
type Kind struct {
	Name string
	Key  Key

	// AnyValue kinds match every word with Key.Letter (F, S, T).
	AnyValue bool

	Group ModalGroup

	// Params lists accepted parameter letters. ModalParams is the subset
	// retained by a Mode between blocks.
	Params      string
	ModalParams string

	// Priority orders execution within a block, lowest first.
	Priority int

	Motion    MotionType
	Clockwise bool

	// Apply executes the instruction. When nil, modal instructions are
	// stored in the Mode and everything else is a no-op.
	Apply func(m *Machine, g *GCode) error
}

func (k *Kind) accepts(letter byte) bool {
	return strings.IndexByte(k.Params, letter) >= 0
}

func (k *Kind) String() string {
	if k.AnyValue {
		return string(k.Key.Letter)
	}
	return k.Key.String()
}

// Registry maps words to instruction kinds.
type Registry struct {
	keys    map[Key]*Kind
	letters map[byte]*Kind
}

// NewRegistry returns a registry holding the builtin instruction set.
func NewRegistry() *Registry {
	r := &Registry{
		keys:    make(map[Key]*Kind),
		letters: make(map[byte]*Kind),
	}
	for _, k := range builtinKinds() {
		err := r.Register(k)
		if err != nil {
			panic(err)
		}
	}
	return r
}

var (
	builtin     *Registry
	builtinOnce sync.Once
)

func defaultRegistry() *Registry {
	builtinOnce.Do(func() { builtin = NewRegistry() })
	return builtin
}

func registryOrDefault(r *Registry) *Registry {
	if r == nil {
		return defaultRegistry()
	}
	return r
}

// Register adds a kind. Registering a key twice is an error.
func (r *Registry) Register(k *Kind) error {
	if strings.IndexByte(Letters, k.Key.Letter) < 0 {
		return fmt.Errorf("register %s: invalid letter %q", k.Name, k.Key.Letter)
	}
	for i := 0; i < len(k.Params); i++ {
		if strings.IndexByte(Letters, k.Params[i]) < 0 {
			return fmt.Errorf("register %s: invalid parameter letter %q", k.Name, k.Params[i])
		}
	}
	if k.Group == ModalGroupCoordinateSystem {
		if _, ok := coordSystemIndex(k.Key); !ok || k.AnyValue {
			return fmt.Errorf("register %s: %s is not a work coordinate system (G54 through G59.3)", k.Name, k.Key)
		}
	}
	if k.AnyValue {
		if _, ok := r.letters[k.Key.Letter]; ok {
			return fmt.Errorf("register %s: %c already registered", k.Name, k.Key.Letter)
		}
		r.letters[k.Key.Letter] = k
		return nil
	}
	if _, ok := r.keys[k.Key]; ok {
		return fmt.Errorf("register %s: %s already registered", k.Name, k.Key)
	}
	r.keys[k.Key] = k
	return nil
}

// Lookup returns the kind selected by w, or nil.
func (r *Registry) Lookup(w Word) *Kind {
	if k, ok := r.keys[w.Key()]; ok {
		return k
	}
	return r.letters[w.W]
}

// Clone returns an independent copy that can be extended without
// affecting r.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		keys:    make(map[Key]*Kind, len(r.keys)),
		letters: make(map[byte]*Kind, len(r.letters)),
	}
	for key, k := range r.keys {
		c.keys[key] = k
	}
	for l, k := range r.letters {
		c.letters[l] = k
	}
	return c
}

// Kinds lists every registered kind ordered by letter, number and subcode.
func (r *Registry) Kinds() []*Kind {
	res := make([]*Kind, 0, len(r.keys)+len(r.letters))
	for _, k := range r.keys {
		res = append(res, k)
	}
	for _, k := range r.letters {
		res = append(res, k)
	}
	sort.Slice(res, func(i, j int) bool {
		a, b := res[i].Key, res[j].Key
		if a.Letter != b.Letter {
			return a.Letter < b.Letter
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.Sub < b.Sub
	})
	return res
}
