package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
	"github.com/roach88/opflow/internal/operations"
	"github.com/roach88/opflow/internal/testutil"
)

// body translates a bound block and returns the Operation Tree body.
func body(t *testing.T, b *testutil.Tree, block *bound.Node) *ir.Block {
	t.Helper()
	f := operations.New(b.Model, operations.WithLogger(testutil.NewTestLogger(t)))
	op, ok := f.Create(block).(*ir.Block)
	require.True(t, ok, "body must translate to a block")
	return op
}

func build(t *testing.T, b *testutil.Tree, block *bound.Node, opts ...Option) []*BasicBlock {
	t.Helper()
	opts = append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)
	return Build(body(t, b, block), opts...)
}

// call is the statement "name();".
func call(b *testutil.Tree, name string) *bound.Node {
	return b.Stmt(b.Call(b.Method(name, b.VoidType), nil))
}

func kinds(blocks []*BasicBlock) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func requireEntryAndExit(t *testing.T, blocks []*BasicBlock) {
	t.Helper()
	require.GreaterOrEqual(t, len(blocks), 2)
	assert.Equal(t, BlockEntry, blocks[0].Kind)
	assert.Equal(t, BlockExit, blocks[len(blocks)-1].Kind)
	for i, block := range blocks {
		assert.Equal(t, i, block.Ordinal)
	}
}

// requireEdgeLaw checks that predecessor sets agree with the edges.
func requireEdgeLaw(t *testing.T, blocks []*BasicBlock) {
	t.Helper()
	for _, b := range blocks {
		for _, p := range blocks {
			assert.Equal(t, p.pointsTo(b), b.HasPredecessor(p), "edge %s -> %s", p, b)
		}
	}
}

func TestBuild_EmptyBody(t *testing.T) {
	b := testutil.NewTree()

	blocks := build(t, b, b.Block())

	require.Len(t, blocks, 2)
	requireEntryAndExit(t, blocks)
	assert.Same(t, blocks[1], blocks[0].Next)
	requireEdgeLaw(t, blocks)
}

func TestBuild_StraightLineStaysInEntry(t *testing.T) {
	b := testutil.NewTree()

	blocks := build(t, b, b.Block(call(b, "A"), call(b, "B")))

	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0].Statements, 2)
}

func TestBuild_IfWithoutElse(t *testing.T) {
	b := testutil.NewTree()
	x := b.Local(b.LocalSymbol("x", b.BoolType))
	src := b.Block(b.If(x, call(b, "A"), nil))

	t.Run("before pack", func(t *testing.T) {
		blocks := build(t, b, src, WithoutPack())
		require.Len(t, blocks, 4)
		requireEntryAndExit(t, blocks)
		entry, a, join, exit := blocks[0], blocks[1], blocks[2], blocks[3]
		require.NotNil(t, entry.Conditional)
		assert.True(t, entry.Conditional.JumpIfFalse)
		assert.Same(t, join, entry.Conditional.Destination)
		assert.Same(t, a, entry.Next)
		assert.Same(t, join, a.Next)
		assert.True(t, join.IsEmpty())
		assert.Same(t, exit, join.Next)
		requireEdgeLaw(t, blocks)
	})

	t.Run("after pack", func(t *testing.T) {
		blocks := build(t, b, src)
		require.Len(t, blocks, 3)
		requireEntryAndExit(t, blocks)
		entry, a, exit := blocks[0], blocks[1], blocks[2]
		assert.Same(t, exit, entry.Conditional.Destination)
		assert.Same(t, a, entry.Next)
		require.Len(t, a.Statements, 1)
		assert.Same(t, exit, a.Next)
		assert.Equal(t, []*BasicBlock{entry, a}, exit.Predecessors())
		requireEdgeLaw(t, blocks)
	})
}

func TestBuild_IfElse(t *testing.T) {
	b := testutil.NewTree()
	x := b.Local(b.LocalSymbol("x", b.BoolType))
	src := b.Block(b.If(x, call(b, "A"), call(b, "B")))

	pre := build(t, b, src, WithoutPack())
	assert.Equal(t, []BlockKind{BlockEntry, BlockBlock, BlockBlock, BlockBlock, BlockExit}, kinds(pre))
	requireEdgeLaw(t, pre)

	blocks := build(t, b, src)
	require.Len(t, blocks, 4)
	requireEntryAndExit(t, blocks)
	entry, a, elseBlock, exit := blocks[0], blocks[1], blocks[2], blocks[3]

	require.NotNil(t, entry.Conditional)
	assert.True(t, entry.Conditional.JumpIfFalse)
	assert.Same(t, elseBlock, entry.Conditional.Destination)
	assert.Same(t, a, entry.Next)
	assert.Same(t, exit, a.Next)
	assert.Same(t, exit, elseBlock.Next)
	assert.Equal(t, []*BasicBlock{entry}, elseBlock.Predecessors())
	assert.Equal(t, []*BasicBlock{a, elseBlock}, exit.Predecessors())

	inv := elseBlock.Statements[0].(*ir.ExpressionStatement).Operation.(*ir.Invocation)
	assert.Equal(t, "B", inv.TargetMethod.Name())
	requireEdgeLaw(t, blocks)
}

func TestBuild_StatementsAreDetachedClones(t *testing.T) {
	b := testutil.NewTree()
	x := b.Local(b.LocalSymbol("x", b.BoolType))
	tree := body(t, b, b.Block(b.If(x, call(b, "A"), nil)))

	blocks := Build(tree)

	original := tree.Operations()[0].(*ir.Conditional)
	cond := blocks[0].Conditional.Condition
	assert.NotSame(t, original.Condition, cond)
	assert.Nil(t, cond.Parent())
	assert.Same(t, original.Condition.Syntax(), cond.Syntax())
	assert.Same(t, original, original.Condition.Parent(), "the tree is never re-parented")

	stmt := blocks[1].Statements[0]
	assert.NotSame(t, original.WhenTrue, stmt)
	assert.Nil(t, stmt.Parent())
}

func TestBuild_ConditionalExpressionDoesNotSplit(t *testing.T) {
	b := testutil.NewTree()
	x := b.LocalSymbol("x", b.IntType)
	ternary := b.Node(bound.KindConditionalOperator, b.IntType)
	ternary.Condition = b.Bool(true)
	ternary.Consequence = b.Int(1)
	ternary.Alternative = b.Int(2)

	blocks := build(t, b, b.Block(b.Stmt(b.Assign(b.Local(x), ternary))))

	require.Len(t, blocks, 2)
	require.Len(t, blocks[0].Statements, 1)
	assert.Nil(t, blocks[0].Conditional)
}

func TestBuild_WhileLoop(t *testing.T) {
	b := testutil.NewTree()
	c := b.Local(b.LocalSymbol("c", b.BoolType))
	x := b.LocalSymbol("x", b.IntType)
	src := b.Block(b.While(c, b.Block(b.Stmt(b.Assign(b.Local(x), b.Int(1))))))

	blocks := build(t, b, src)

	require.Len(t, blocks, 4)
	requireEntryAndExit(t, blocks)
	entry, top, loopBody, exit := blocks[0], blocks[1], blocks[2], blocks[3]
	assert.Same(t, top, entry.Next)
	require.NotNil(t, top.Conditional)
	assert.True(t, top.Conditional.JumpIfFalse)
	assert.Same(t, exit, top.Conditional.Destination)
	assert.Same(t, loopBody, top.Next)
	assert.Same(t, top, loopBody.Next)
	assert.Equal(t, []*BasicBlock{entry, loopBody}, top.Predecessors())
	assert.Equal(t, []*BasicBlock{top}, exit.Predecessors())
	requireEdgeLaw(t, blocks)
}

func TestBuild_DoLoopJumpsBackWhenTrue(t *testing.T) {
	b := testutil.NewTree()
	c := b.Local(b.LocalSymbol("c", b.BoolType))
	src := b.Block(b.Do(b.Block(call(b, "A")), c))

	blocks := build(t, b, src)

	require.Len(t, blocks, 4)
	requireEntryAndExit(t, blocks)
	entry, loopBody, cont, exit := blocks[0], blocks[1], blocks[2], blocks[3]
	assert.Same(t, loopBody, entry.Next)
	require.Len(t, loopBody.Statements, 1)
	assert.Same(t, cont, loopBody.Next)
	require.NotNil(t, cont.Conditional)
	assert.False(t, cont.Conditional.JumpIfFalse)
	assert.Same(t, loopBody, cont.Conditional.Destination)
	assert.Same(t, exit, cont.Next)
	assert.Equal(t, []*BasicBlock{entry, cont}, loopBody.Predecessors())
	requireEdgeLaw(t, blocks)
}

func TestBuild_ForLoopBreakAndContinue(t *testing.T) {
	b := testutil.NewTree()
	i := b.LocalSymbol("i", b.IntType)
	d := b.Local(b.LocalSymbol("d", b.BoolType))
	loop := b.For(
		[]*bound.Node{b.Declare(i, b.Int(0))},
		b.Binary("LessThan", b.BoolType, b.Local(i), b.Int(10)),
		[]*bound.Node{b.Stmt(b.Assign(b.Local(i), b.Int(1)))},
		nil,
	)
	loop.Body = b.Block(
		b.If(d, b.Break(loop.BreakLabel), nil),
		b.Continue(loop.ContinueLabel),
	)

	blocks := build(t, b, b.Block(loop))

	requireEntryAndExit(t, blocks)
	requireEdgeLaw(t, blocks)
	entry := blocks[0]
	require.Len(t, entry.Statements, 1, "the initializer runs in entry")
	top := entry.Next
	require.NotNil(t, top.Conditional)
	exit := blocks[len(blocks)-1]
	assert.Same(t, exit, top.Conditional.Destination)

	// The break edge leads to exit and the continue edge to the increment.
	var increment *BasicBlock
	for _, block := range blocks {
		if len(block.Statements) == 1 && block != entry && block.Next == top {
			increment = block
		}
	}
	require.NotNil(t, increment)
	assert.True(t, increment.HasPredecessor(top.Next))
	assert.GreaterOrEqual(t, len(exit.Predecessors()), 2)
}

func TestBuild_InfiniteLoopKeepsSelfLoop(t *testing.T) {
	b := testutil.NewTree()

	blocks := build(t, b, b.Block(b.For(nil, nil, nil, b.Block())))

	require.Len(t, blocks, 3)
	spin := blocks[1]
	assert.True(t, spin.IsEmpty())
	assert.Same(t, spin, spin.Next)
	assert.Same(t, spin, blocks[0].Next)
	assert.Empty(t, blocks[2].Predecessors())
	requireEdgeLaw(t, blocks)
}

func TestBuild_ForwardGoto(t *testing.T) {
	b := testutil.NewTree()
	label := b.LabelSymbol("L")

	blocks := build(t, b, b.Block(b.Goto(label), call(b, "A"), b.Labeled(label, call(b, "B"))))

	require.Len(t, blocks, 4)
	requireEntryAndExit(t, blocks)
	entry, unreachable, target := blocks[0], blocks[1], blocks[2]
	assert.Same(t, target, entry.Next)
	assert.Empty(t, unreachable.Predecessors())
	assert.Same(t, target, unreachable.Next)
	assert.Equal(t, []*BasicBlock{entry, unreachable}, target.Predecessors())
	requireEdgeLaw(t, blocks)
}

func TestBuild_ReturnEndsBlock(t *testing.T) {
	b := testutil.NewTree()

	blocks := build(t, b, b.Block(b.Return(nil), call(b, "A")))

	require.Len(t, blocks, 3)
	entry, rest, exit := blocks[0], blocks[1], blocks[2]
	require.Len(t, entry.Statements, 1)
	assert.IsType(t, &ir.Return{}, entry.Statements[0])
	assert.Same(t, exit, entry.Next)
	assert.Empty(t, rest.Predecessors())
	assert.Equal(t, []*BasicBlock{entry, rest}, exit.Predecessors())
}

func TestBuild_ThrowEndsBlock(t *testing.T) {
	b := testutil.NewTree()
	x := b.Local(b.LocalSymbol("x", b.BoolType))
	ex := b.Local(b.LocalSymbol("e", b.ObjectType))

	blocks := build(t, b, b.Block(b.If(x, b.Throw(ex), nil), call(b, "A")))

	requireEntryAndExit(t, blocks)
	requireEdgeLaw(t, blocks)
	thrower := blocks[0].Next
	require.Len(t, thrower.Statements, 1)
	assert.IsType(t, &ir.Throw{}, thrower.Statements[0])
	assert.Same(t, blocks[len(blocks)-1], thrower.Next)
}

func TestBuild_ContractViolations(t *testing.T) {
	t.Run("nil body", func(t *testing.T) {
		assert.PanicsWithError(t, "flow: contract violation: cannot build a graph without a body", func() {
			Build(nil)
		})
	})

	t.Run("undefined label", func(t *testing.T) {
		b := testutil.NewTree()
		tree := body(t, b, b.Block(b.Goto(b.LabelSymbol("L"))))
		assert.PanicsWithError(t, "flow: contract violation: jump to label L that is never defined", func() {
			Build(tree)
		})
	})

	t.Run("duplicate label", func(t *testing.T) {
		b := testutil.NewTree()
		label := b.LabelSymbol("L")
		tree := body(t, b, b.Block(b.Labeled(label, nil), b.Labeled(label, nil)))
		assert.Panics(t, func() { Build(tree) })
	})
}
