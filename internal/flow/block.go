package flow

import (
	"fmt"
	"slices"

	"github.com/roach88/opflow/internal/ir"
)

// BlockKind distinguishes the two terminal blocks from ordinary ones.
type BlockKind uint8

const (
	BlockEntry BlockKind = iota
	BlockExit
	BlockBlock
)

func (k BlockKind) String() string {
	switch k {
	case BlockEntry:
		return "Entry"
	case BlockExit:
		return "Exit"
	}
	return "Block"
}

// Conditional is a block's conditional outgoing edge. Control moves to
// Destination when Condition evaluates to false (JumpIfFalse) or to true
// (otherwise); it falls through to the block's Next edge in the other
// case.
type Conditional struct {
	Condition   ir.Operation
	JumpIfFalse bool
	Destination *BasicBlock
}

// BasicBlock is a straight-line run of statements with at most one
// conditional edge and one fallthrough edge.
type BasicBlock struct {
	Kind BlockKind
	// Ordinal is the block's index in its graph. It is assigned when the
	// graph is finished and again after Pack.
	Ordinal     int
	Statements  []ir.Operation
	Conditional *Conditional
	Next        *BasicBlock

	predecessors []*BasicBlock
	placed       bool
	name         string
}

func newBlock(kind BlockKind) *BasicBlock {
	return &BasicBlock{Kind: kind, Ordinal: -1}
}

// Predecessors returns the blocks with an edge into b, ordered by
// ordinal.
func (b *BasicBlock) Predecessors() []*BasicBlock {
	out := slices.Clone(b.predecessors)
	slices.SortFunc(out, func(x, y *BasicBlock) int { return x.Ordinal - y.Ordinal })
	return out
}

// HasPredecessor reports whether p has an edge into b.
func (b *BasicBlock) HasPredecessor(p *BasicBlock) bool {
	return slices.Contains(b.predecessors, p)
}

// Successors returns b's distinct outgoing destinations: the conditional
// destination first, then the fallthrough.
func (b *BasicBlock) Successors() []*BasicBlock {
	var out []*BasicBlock
	if b.Conditional != nil && b.Conditional.Destination != nil {
		out = append(out, b.Conditional.Destination)
	}
	if b.Next != nil && !slices.Contains(out, b.Next) {
		out = append(out, b.Next)
	}
	return out
}

// IsEmpty reports whether b carries neither statements nor a condition.
func (b *BasicBlock) IsEmpty() bool {
	return len(b.Statements) == 0 && b.Conditional == nil
}

func (b *BasicBlock) String() string {
	if b == nil {
		return "<nil>"
	}
	if b.Ordinal < 0 {
		return fmt.Sprintf("%s(unplaced %s)", b.Kind, b.name)
	}
	return fmt.Sprintf("B%d", b.Ordinal)
}

func (b *BasicBlock) addPredecessor(p *BasicBlock) {
	if !slices.Contains(b.predecessors, p) {
		b.predecessors = append(b.predecessors, p)
	}
}

func (b *BasicBlock) removePredecessor(p *BasicBlock) {
	b.predecessors = slices.DeleteFunc(b.predecessors, func(x *BasicBlock) bool { return x == p })
}

// pointsTo reports whether any edge of b targets dst.
func (b *BasicBlock) pointsTo(dst *BasicBlock) bool {
	return b.Next == dst || (b.Conditional != nil && b.Conditional.Destination == dst)
}

func renumber(blocks []*BasicBlock) {
	for i, b := range blocks {
		b.Ordinal = i
	}
}
