package flow

import (
	"io"
	"log/slog"

	"github.com/roach88/opflow/internal/ir"
)

// Pack removes every block other than Entry and Exit that carries no
// statements and no conditional edge. Predecessors of a removed block are
// redirected to its successor. The sweep runs once, left to right; an
// empty block that falls through to itself is kept, since redirecting its
// own edge to its successor would leave that edge pointing at a removed
// block.
//
// Pack modifies the blocks in place and returns the shortened slice with
// ordinals reassigned.
func Pack(blocks []*BasicBlock) []*BasicBlock {
	return packWith(blocks, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func packWith(blocks []*BasicBlock, logger *slog.Logger) []*BasicBlock {
	if len(blocks) < 2 {
		panic(ir.Contractf("flow", "graph has %d blocks, need at least Entry and Exit", len(blocks)))
	}
	out := make([]*BasicBlock, 0, len(blocks))
	out = append(out, blocks[0])
	last := len(blocks) - 1
	for i := 1; i < last; i++ {
		block := blocks[i]
		if !block.IsEmpty() {
			out = append(out, block)
			continue
		}
		next := block.Next
		if next == nil {
			panic(ir.Contractf("flow", "empty block %s has no successor", block))
		}
		if next == block {
			out = append(out, block)
			continue
		}
		for _, p := range block.predecessors {
			if p.Next == block {
				p.Next = next
			}
			if p.Conditional != nil && p.Conditional.Destination == block {
				p.Conditional.Destination = next
			}
			next.addPredecessor(p)
		}
		next.removePredecessor(block)
		logger.Debug("pack removed block", "block", block.String(), "predecessors", len(block.predecessors), "next", next.String())
		block.predecessors = nil
		block.Next = nil
	}
	out = append(out, blocks[last])
	renumber(out)
	return out
}
