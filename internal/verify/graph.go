package verify

import (
	"github.com/roach88/opflow/internal/flow"
)

// Graph checks a control-flow graph:
//
//  1. Index 0 is the only Entry block and the last index the only Exit.
//  2. Ordinals match indices.
//  3. Exit has no outgoing edges; every other block falls through
//     somewhere, and every edge stays inside the graph.
//  4. Predecessor law: P is a predecessor of B exactly when P.Next or
//     P's conditional destination is B.
//  5. Block statements and conditions are parentless clones.
//
// With packed set it also checks the Pack invariant: no block other
// than Entry and Exit is empty, except one that falls through to itself.
func Graph(blocks []*flow.BasicBlock, packed bool) Result {
	v := &validator{findings: []string{}}
	if len(blocks) < 2 {
		v.addFinding("graph has %d blocks, need at least Entry and Exit", len(blocks))
		return v.result()
	}
	index := make(map[*flow.BasicBlock]int, len(blocks))
	for i, b := range blocks {
		index[b] = i
	}
	last := len(blocks) - 1
	for i, b := range blocks {
		v.checkPlacement(b, i, last)
		v.checkEdges(b, index, last)
		if packed && i != 0 && i != last && b.IsEmpty() && b.Next != b {
			v.addFinding("%s is empty after Pack", b)
		}
		for _, s := range b.Statements {
			if s == nil {
				v.addFinding("%s holds a nil statement", b)
			} else if s.Parent() != nil {
				v.addFinding("%s statement %s is attached to a tree", b, s.Kind())
			}
		}
		if c := b.Conditional; c != nil && c.Condition != nil && c.Condition.Parent() != nil {
			v.addFinding("%s condition is attached to a tree", b)
		}
	}
	for _, b := range blocks {
		for _, p := range blocks {
			edge := p.Next == b || (p.Conditional != nil && p.Conditional.Destination == b)
			if edge != b.HasPredecessor(p) {
				v.addFinding("predecessor law broken for %s -> %s: edge=%t predecessor=%t", p, b, edge, b.HasPredecessor(p))
			}
		}
	}
	return v.result()
}

func (v *validator) checkPlacement(b *flow.BasicBlock, i, last int) {
	if b.Ordinal != i {
		v.addFinding("block at index %d has ordinal %d", i, b.Ordinal)
	}
	switch {
	case i == 0 && b.Kind != flow.BlockEntry:
		v.addFinding("first block is %s, want Entry", b.Kind)
	case i == last && b.Kind != flow.BlockExit:
		v.addFinding("last block is %s, want Exit", b.Kind)
	case i != 0 && i != last && b.Kind != flow.BlockBlock:
		v.addFinding("%s at index %d is not an ordinary block", b.Kind, i)
	}
}

func (v *validator) checkEdges(b *flow.BasicBlock, index map[*flow.BasicBlock]int, last int) {
	if index[b] == last {
		if b.Next != nil || b.Conditional != nil {
			v.addFinding("Exit has outgoing edges")
		}
		return
	}
	if b.Next == nil {
		v.addFinding("%s has no successor", b)
	} else if _, ok := index[b.Next]; !ok {
		v.addFinding("%s falls through to a block outside the graph", b)
	}
	if c := b.Conditional; c != nil {
		if c.Condition == nil {
			v.addFinding("%s has a conditional edge without a condition", b)
		}
		if c.Destination == nil {
			v.addFinding("%s has a conditional edge without a destination", b)
		} else if _, ok := index[c.Destination]; !ok {
			v.addFinding("%s jumps to a block outside the graph", b)
		}
	}
}
