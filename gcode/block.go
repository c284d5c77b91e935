package gcode

import (
	"fmt"
	"sort"
	"strings"
)

// Block is the instruction content of one line: the instructions found
// in it and any leftover parameter words (modal params) that apply to the
// active motion mode.
type Block struct {
	reg *Registry

	words  []Word
	gcodes []*GCode
	modal  []int
}

// NewBlock groups words into instructions using reg (nil for the builtin
// set). Every word selecting a known instruction is a candidate; each
// candidate claims the words following it that it takes as parameters,
// and claimed words stop being candidates.
func NewBlock(reg *Registry, words ...Word) *Block {
	b := &Block{
		reg:   registryOrDefault(reg),
		words: append([]Word(nil), words...),
	}
	b.group()
	return b
}

func (b *Block) group() {
	kinds := make([]*Kind, len(b.words))
	owner := make([]int, len(b.words))
	for i, w := range b.words {
		kinds[i] = b.reg.Lookup(w)
		owner[i] = -1
	}
	for i := range b.words {
		if kinds[i] == nil || owner[i] != -1 {
			continue
		}
		for j := i + 1; j < len(b.words); j++ {
			if kinds[i].accepts(b.words[j].W) {
				owner[j] = i
			}
		}
	}

	b.gcodes = b.gcodes[:0]
	b.modal = b.modal[:0]
	byIndex := make(map[int]*GCode)
	for i, w := range b.words {
		switch {
		case owner[i] != -1:
			g := byIndex[owner[i]]
			g.Params = append(g.Params, w)
		case kinds[i] != nil:
			g := &GCode{Word: w, kind: kinds[i]}
			byIndex[i] = g
			b.gcodes = append(b.gcodes, g)
		default:
			b.modal = append(b.modal, i)
		}
	}
}

// Len is the number of instructions, counting leftover modal params as one.
func (b *Block) Len() int {
	n := len(b.gcodes)
	if len(b.modal) > 0 {
		n++
	}
	return n
}

// GCodes returns the instructions in textual order.
func (b *Block) GCodes() []*GCode {
	return append([]*GCode(nil), b.gcodes...)
}

// Ordered returns the instructions in execution order. Ties keep
// textual order.
func (b *Block) Ordered() []*GCode {
	res := b.GCodes()
	sortGCodes(res)
	return res
}

func sortGCodes(g []*GCode) {
	sort.SliceStable(g, func(i, j int) bool { return g[i].Priority() < g[j].Priority() })
}

// ModalParams returns words not owned by any instruction.
func (b *Block) ModalParams() []Word {
	res := make([]Word, len(b.modal))
	for i, idx := range b.modal {
		res[i] = b.words[idx]
	}
	return res
}

// Unresolved returns instruction words (G, M) that matched no known kind.
func (b *Block) Unresolved() []Word {
	var res []Word
	for _, idx := range b.modal {
		if b.words[idx].isInstruction() {
			res = append(res, b.words[idx])
		}
	}
	return res
}

// Words returns every word in textual order.
func (b *Block) Words() []Word {
	return append([]Word(nil), b.words...)
}

// Motion returns the block's motion instruction, if any.
func (b *Block) Motion() *GCode {
	for _, g := range b.gcodes {
		if g.Group() == ModalGroupMotion {
			return g
		}
	}
	return nil
}

func (b *Block) Clone() *Block {
	return NewBlock(b.reg, b.words...)
}

// Param returns the first non-instruction word with the given letter.
func (b *Block) Param(letter byte) (float64, bool) {
	for _, w := range b.words {
		if w.W == letter && b.reg.Lookup(w) == nil {
			return w.Arg, true
		}
	}
	return 0, false
}

// SetParam sets the first parameter word with the given letter, adding
// one at the end of the block if there is none.
func (b *Block) SetParam(letter byte, val float64) {
	for i, w := range b.words {
		if w.W == letter && b.reg.Lookup(w) == nil {
			b.words[i].Arg = val
			b.group()
			return
		}
	}
	b.words = append(b.words, Word{W: letter, Arg: val})
	b.group()
}

// without returns a new block with the words at the given indexes removed.
func (b *Block) without(drop map[int]bool) *Block {
	words := make([]Word, 0, len(b.words))
	for i, w := range b.words {
		if !drop[i] {
			words = append(words, w)
		}
	}
	return NewBlock(b.reg, words...)
}

func (b *Block) withoutUnresolved() *Block {
	drop := make(map[int]bool)
	for _, idx := range b.modal {
		if b.words[idx].isInstruction() {
			drop[idx] = true
		}
	}
	return b.without(drop)
}

// Validate checks that no parameter is repeated within an instruction,
// that no two instructions share a modal group and that every
// instruction word is known.
func (b *Block) Validate() error {
	for _, g := range b.gcodes {
		var seen [256]bool
		for _, p := range g.Params {
			if seen[p.W] {
				return &MalformedWordError{Text: b.String(), Reason: fmt.Sprintf("%c repeated in %s", p.W, g.Word)}
			}
			seen[p.W] = true
		}
	}
	err := checkModalGroups(b.gcodes)
	if err != nil {
		return err
	}
	if u := b.Unresolved(); len(u) > 0 {
		return &UnsupportedInstructionError{Words: u}
	}
	return nil
}

func checkModalGroups(gcodes []*GCode) error {
	seen := make(map[ModalGroup]*GCode)
	for _, g := range gcodes {
		grp := g.Group()
		if !grp.IsModal() {
			continue
		}
		if prev, ok := seen[grp]; ok {
			return &ModalConflictError{Group: grp, GCodes: []*GCode{prev, g}}
		}
		seen[grp] = g
	}
	return nil
}

func (b *Block) String() string {
	parts := make([]string, len(b.words))
	for i, w := range b.words {
		parts[i] = w.String()
	}
	return strings.Join(parts, " ")
}
