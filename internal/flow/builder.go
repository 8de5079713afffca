package flow

import (
	"io"
	"log/slog"

	"github.com/roach88/opflow/internal/ir"
)

// Option configures a Build call.
type Option func(*Builder)

// WithLogger sets the logger used for debug tracing of block splits and
// Pack removals.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithoutPack skips the Pack pass, returning the graph as built.
func WithoutPack() Option {
	return func(b *Builder) {
		b.pack = false
	}
}

// WithPack sets whether Pack runs after construction.
func WithPack(pack bool) Option {
	return func(b *Builder) {
		b.pack = pack
	}
}

// Builder carries the state of one graph construction. It is confined to
// a single Build call and must not be shared.
type Builder struct {
	logger *slog.Logger
	pack   bool

	blocks  []*BasicBlock
	current *BasicBlock
	exit    *BasicBlock
	labels  map[ir.Symbol]*BasicBlock
}

// Build constructs the control-flow graph of body. The result starts
// with Entry and ends with Exit; Pack is applied unless WithoutPack is
// given.
//
// Build panics with *ir.ContractError on malformed input: a nil body, a
// jump to a label the body never defines, or a label defined twice.
func Build(body *ir.Block, opts ...Option) []*BasicBlock {
	if body == nil {
		panic(ir.Contractf("flow", "cannot build a graph without a body"))
	}
	b := &Builder{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		pack:   true,
		exit:   newBlock(BlockExit),
		labels: make(map[ir.Symbol]*BasicBlock),
	}
	for _, opt := range opts {
		opt(b)
	}

	entry := newBlock(BlockEntry)
	b.appendBlock(entry, false)
	b.visitBlock(body)
	b.appendBlock(b.exit, true)

	for label, block := range b.labels {
		if !block.placed {
			panic(ir.Contractf("flow", "jump to label %s that is never defined", label))
		}
	}
	renumber(b.blocks)
	b.logger.Debug("built graph", "blocks", len(b.blocks))

	if !b.pack {
		return b.blocks
	}
	return packWith(b.blocks, b.logger)
}

// appendBlock places block at the end of the graph and makes it current.
// With link set, the previous last block falls through to block unless it
// already has a successor.
func (b *Builder) appendBlock(block *BasicBlock, link bool) {
	if block.placed {
		panic(ir.Contractf("flow", "block %s placed twice", block))
	}
	if link && len(b.blocks) > 0 {
		if last := b.blocks[len(b.blocks)-1]; last.Next == nil {
			b.link(last, block)
		}
	}
	block.placed = true
	b.blocks = append(b.blocks, block)
	b.current = block
}

// link adds the fallthrough edge from -> to.
func (b *Builder) link(from, to *BasicBlock) {
	if from.Next != nil {
		panic(ir.Contractf("flow", "block %s already falls through to %s", from, from.Next))
	}
	from.Next = to
	to.addPredecessor(from)
}

// currentBlock returns the block statements are appended to, starting a
// new one when the previous statement transferred control away.
func (b *Builder) currentBlock() *BasicBlock {
	if b.current == nil {
		b.appendBlock(newBlock(BlockBlock), true)
	}
	return b.current
}

// labelBlock returns the block a label symbol names, creating it unplaced
// on first reference so forward jumps resolve.
func (b *Builder) labelBlock(label ir.Symbol) *BasicBlock {
	if label == nil {
		return newBlock(BlockBlock)
	}
	if block, ok := b.labels[label]; ok {
		return block
	}
	block := newBlock(BlockBlock)
	block.name = label.Name()
	b.labels[label] = block
	return block
}

// branchIf ends the current block with a conditional edge to dest and
// continues in a fresh fallthrough block.
func (b *Builder) branchIf(condition ir.Operation, jumpIfFalse bool, dest *BasicBlock) {
	from := b.currentBlock()
	from.Conditional = &Conditional{
		Condition:   ir.Clone(condition),
		JumpIfFalse: jumpIfFalse,
		Destination: dest,
	}
	dest.addPredecessor(from)
	b.appendBlock(newBlock(BlockBlock), true)
}

// jump ends the current block with an unconditional edge to dest. The
// following statement, if any, starts an unreachable block.
func (b *Builder) jump(dest *BasicBlock) {
	b.link(b.currentBlock(), dest)
	b.current = nil
}

func (b *Builder) add(statement ir.Operation) {
	block := b.currentBlock()
	block.Statements = append(block.Statements, ir.Clone(statement))
}

func (b *Builder) visitBlock(block *ir.Block) {
	for _, statement := range block.Operations() {
		b.visit(statement)
	}
}

// visit places one statement. Only the kinds handled here split blocks;
// every other statement is appended whole.
func (b *Builder) visit(statement ir.Operation) {
	switch s := statement.(type) {
	case nil:
		return
	case *ir.Block:
		b.visitBlock(s)
	case *ir.Conditional:
		b.visitIf(s)
	case *ir.Loop:
		if s.ConditionIsTop {
			b.visitTopTestedLoop(s)
		} else {
			b.visitBottomTestedLoop(s)
		}
	case *ir.Branch:
		if s.Target == nil {
			panic(ir.Contractf("flow", "%s branch without a target", s.BranchKind))
		}
		b.jump(b.labelBlock(s.Target))
	case *ir.Labeled:
		b.appendBlock(b.labelBlock(s.Label), true)
		b.visit(s.Operation)
	case *ir.Return:
		b.add(s)
		if s.ReturnKind != ir.ReturnYield {
			b.jump(b.exit)
		}
	case *ir.Throw:
		b.add(s)
		b.jump(b.exit)
	default:
		b.add(s)
	}
}

// visitIf splits on "if (c) A; else B;". The else branch, when present,
// starts a block that is not reached by fallthrough.
func (b *Builder) visitIf(c *ir.Conditional) {
	join := newBlock(BlockBlock)
	whenFalse := join
	if c.WhenFalse != nil {
		whenFalse = newBlock(BlockBlock)
	}
	b.logger.Debug("split on if", "syntax", c.Syntax(), "else", c.WhenFalse != nil)

	b.branchIf(c.Condition, true, whenFalse)
	b.visit(c.WhenTrue)

	if c.WhenFalse != nil {
		b.jump(join)
		b.appendBlock(whenFalse, false)
		b.visit(c.WhenFalse)
	}
	b.appendBlock(join, true)
}

// visitTopTestedLoop lowers while and for loops:
//
//	before; top: if !cond goto break; body; continue: bottom; goto top; break:
func (b *Builder) visitTopTestedLoop(l *ir.Loop) {
	for _, op := range l.Before {
		b.visit(op)
	}
	top := newBlock(BlockBlock)
	cont := b.labelBlock(l.ContinueLabel)
	exit := b.labelBlock(l.ExitLabel)
	b.logger.Debug("split on loop", "syntax", l.Syntax(), "kind", l.LoopKind, "top", true)

	b.appendBlock(top, true)
	if l.Condition != nil {
		b.branchIf(l.Condition, true, exit)
	}
	b.visit(l.Body)
	b.appendBlock(cont, true)
	for _, op := range l.AtLoopBottom {
		b.visit(op)
	}
	b.jump(top)
	b.appendBlock(exit, true)
}

// visitBottomTestedLoop lowers do loops:
//
//	top: body; continue: if cond goto top; break:
func (b *Builder) visitBottomTestedLoop(l *ir.Loop) {
	for _, op := range l.Before {
		b.visit(op)
	}
	top := newBlock(BlockBlock)
	cont := b.labelBlock(l.ContinueLabel)
	exit := b.labelBlock(l.ExitLabel)
	b.logger.Debug("split on loop", "syntax", l.Syntax(), "kind", l.LoopKind, "top", false)

	b.appendBlock(top, true)
	b.visit(l.Body)
	b.appendBlock(cont, true)
	if l.Condition != nil {
		b.branchIf(l.Condition, false, top)
	} else {
		b.jump(top)
	}
	b.appendBlock(exit, true)
}
