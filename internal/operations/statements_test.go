package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
	"github.com/roach88/opflow/internal/testutil"
)

func TestBlock_StatementsAreBuiltOnDemand(t *testing.T) {
	b := testutil.NewTree()
	x := b.LocalSymbol("x", b.IntType)
	body := b.Block(b.Stmt(b.Assign(b.Local(x), b.Int(1))))

	block, ok := newFactory(t, b).Create(body).(*ir.Block)
	require.True(t, ok)
	assert.False(t, block.Materialized())

	ops := block.Operations()
	assert.True(t, block.Materialized())
	require.Len(t, ops, 1)
	assert.Same(t, block, ops[0].Parent())
	assert.Equal(t, ops, block.Operations(), "forcing twice returns the same statements")
}

func TestDeclarationGroup_SingleDeclaration(t *testing.T) {
	b := testutil.NewTree()
	x := b.LocalSymbol("x", b.IntType)
	decl := b.Declare(x, b.Int(1))

	group, ok := newFactory(t, b).Create(decl).(*ir.VariableDeclarationGroup)
	require.True(t, ok)
	assert.False(t, group.IsImplicit())
	assert.Nil(t, group.Type())

	require.Len(t, group.Declarations, 1)
	declaration := group.Declarations[0]
	assert.False(t, declaration.IsImplicit())
	require.Len(t, declaration.Declarators, 1)

	d := declaration.Declarators[0]
	assert.Equal(t, b.Model.PublicSymbol(x), d.Symbol)
	assert.False(t, d.IsImplicit())
	require.NotNil(t, d.Initializer)
	assert.Equal(t, ir.Int(1), d.Initializer.Value.ConstantValue())
	assert.False(t, d.Initializer.IsImplicit())
}

func TestDeclarationGroup_Multiple(t *testing.T) {
	b := testutil.NewTree()
	multi := b.Node(bound.KindMultipleLocalDeclarations, nil)
	multi.Statements = []*bound.Node{
		b.Declare(b.LocalSymbol("a", b.IntType), b.Int(1)),
		b.Declare(b.LocalSymbol("b", b.IntType), nil),
	}

	group := newFactory(t, b).Create(multi).(*ir.VariableDeclarationGroup)

	require.Len(t, group.Declarations, 1)
	declarators := group.Declarations[0].Declarators
	require.Len(t, declarators, 2)
	assert.Equal(t, "a", declarators[0].Symbol.Name())
	assert.Equal(t, "b", declarators[1].Symbol.Name())
	assert.Nil(t, declarators[1].Initializer)
}

func TestDeclarationGroup_UsingDeclarationIsImplicit(t *testing.T) {
	b := testutil.NewTree()
	using := b.Node(bound.KindUsingLocalDeclarations, nil)
	using.Statements = []*bound.Node{b.Declare(b.LocalSymbol("r", b.DisposableType), b.Local(b.LocalSymbol("s", b.DisposableType)))}

	decl, ok := newFactory(t, b).Create(using).(*ir.UsingDeclaration)
	require.True(t, ok)
	assert.False(t, decl.IsImplicit())
	require.NotNil(t, decl.DeclarationGroup)
	assert.True(t, decl.DeclarationGroup.IsImplicit())
	assert.Same(t, decl.Syntax(), decl.DeclarationGroup.Syntax())
}

func TestDeclarator_RejectsForeignKinds(t *testing.T) {
	b := testutil.NewTree()
	multi := b.Node(bound.KindMultipleLocalDeclarations, nil)
	multi.Statements = []*bound.Node{b.Stmt(b.Int(1))}

	f := newFactory(t, b)
	requireContractPanic(t, func() { f.Create(multi) })
}

func TestForEach_EnumeratorDisposal(t *testing.T) {
	tests := []struct {
		name       string
		interfaces func(b *testutil.Tree) []*bound.Type
		async      bool
		want       bool
	}{
		{
			name:       "disposable enumerator",
			interfaces: func(b *testutil.Tree) []*bound.Type { return []*bound.Type{b.DisposableType} },
			want:       true,
		},
		{
			name:       "plain enumerator",
			interfaces: func(*testutil.Tree) []*bound.Type { return nil },
			want:       false,
		},
		{
			name:       "await foreach needs the async interface",
			interfaces: func(b *testutil.Tree) []*bound.Type { return []*bound.Type{b.DisposableType} },
			async:      true,
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.NewTree()
			enumerator := &bound.Type{Name: "Enumerator", Kind: bound.TypeStruct, Interfaces: tt.interfaces(b)}
			item := b.LocalSymbol("item", b.IntType)
			loop := b.Node(bound.KindForEachStatement, nil)
			loop.Local = item
			loop.Operand = b.Local(b.LocalSymbol("items", b.ObjectType))
			loop.Body = b.Block()
			loop.Method = b.Method("GetEnumerator", enumerator)
			loop.IsAsync = tt.async

			each, ok := newFactory(t, b).Create(loop).(*ir.ForEachLoop)
			require.True(t, ok)
			assert.Equal(t, tt.want, each.EnumeratorDisposable)

			variable, ok := each.LoopControlVariable.(*ir.LocalReference)
			require.True(t, ok)
			assert.True(t, variable.IsDeclaration)
			assert.False(t, variable.IsImplicit())
			assert.Equal(t, b.Model.PublicSymbol(item), variable.Local)
		})
	}
}

func TestTry_CatchDeclaresException(t *testing.T) {
	b := testutil.NewTree()
	exType := &bound.Type{Name: "System.Exception", Kind: bound.TypeClass}
	catch := b.Node(bound.KindCatchBlock, nil)
	catch.Local = b.LocalSymbol("e", exType)
	catch.TypeOperand = exType
	catch.Filter = b.Bool(true)
	catch.Body = b.Block()
	try := b.Node(bound.KindTryStatement, nil)
	try.Body = b.Block()
	try.Sections = []*bound.Node{catch}
	try.Finally = b.Block()

	op, ok := newFactory(t, b).Create(try).(*ir.Try)
	require.True(t, ok)
	require.NotNil(t, op.Body)
	require.NotNil(t, op.Finally)
	require.Len(t, op.Catches, 1)

	c := op.Catches[0]
	assert.Equal(t, b.Model.PublicType(exType), c.ExceptionType)
	exception, ok := c.ExceptionDeclarationOrExpression.(*ir.LocalReference)
	require.True(t, ok)
	assert.True(t, exception.IsDeclaration)
	assert.Equal(t, ir.Bool(true), c.Filter.ConstantValue())
	assert.NotNil(t, c.Handler)
}

func TestTry_SectionsMustBeCatchBlocks(t *testing.T) {
	b := testutil.NewTree()
	try := b.Node(bound.KindTryStatement, nil)
	try.Body = b.Block()
	try.Sections = []*bound.Node{b.Block()}

	f := newFactory(t, b)
	requireContractPanic(t, func() { f.Create(try) })
}

func TestSwitch_CaseClauses(t *testing.T) {
	b := testutil.NewTree()
	x := b.LocalSymbol("x", b.IntType)

	constant := b.Node(bound.KindConstantPattern, b.IntType)
	constant.Operand = b.Int(1)
	singleValue := b.Node(bound.KindSwitchLabel, nil)
	singleValue.Pattern = constant

	guarded := b.Node(bound.KindConstantPattern, b.IntType)
	guarded.Operand = b.Int(2)
	withGuard := b.Node(bound.KindSwitchLabel, nil)
	withGuard.Pattern = guarded
	withGuard.Guard = b.Bool(true)

	declaration := b.Node(bound.KindDeclarationPattern, nil)
	declaration.InputType = b.IntType
	declaration.NarrowedType = b.IntType
	declaration.Local = b.LocalSymbol("y", b.IntType)
	typed := b.Node(bound.KindSwitchLabel, nil)
	typed.Pattern = declaration

	def := b.Node(bound.KindSwitchLabel, nil)

	section := b.Node(bound.KindSwitchSection, nil)
	section.Labels = []*bound.Node{singleValue, withGuard, typed, def}
	section.Statements = []*bound.Node{b.Break(b.LabelSymbol("break"))}

	sw := b.Node(bound.KindSwitchStatement, nil)
	sw.Operand = b.Local(x)
	sw.Sections = []*bound.Node{section}
	sw.BreakLabel = b.LabelSymbol("break")

	op, ok := newFactory(t, b).Create(sw).(*ir.Switch)
	require.True(t, ok)
	require.Len(t, op.Cases, 1)
	clauses := op.Cases[0].Clauses
	require.Len(t, clauses, 4)

	assert.Equal(t, ir.CaseSingleValue, clauses[0].CaseKind)
	assert.Equal(t, ir.Int(1), clauses[0].Value.ConstantValue())
	assert.Nil(t, clauses[0].Pattern)

	assert.Equal(t, ir.CasePattern, clauses[1].CaseKind)
	assert.NotNil(t, clauses[1].Guard)

	assert.Equal(t, ir.CasePattern, clauses[2].CaseKind)
	assert.IsType(t, &ir.DeclarationPattern{}, clauses[2].Pattern)

	assert.Equal(t, ir.CaseDefault, clauses[3].CaseKind)
	assert.Nil(t, clauses[3].Value)
	assert.Nil(t, clauses[3].Pattern)

	require.Len(t, op.Cases[0].Body, 1)
	assert.IsType(t, &ir.Branch{}, op.Cases[0].Body[0])
}

func TestBranch_RequiresLabel(t *testing.T) {
	b := testutil.NewTree()
	f := newFactory(t, b)
	requireContractPanic(t, func() { f.Create(b.Goto(nil)) })
}

func TestLoops_Normalized(t *testing.T) {
	b := testutil.NewTree()
	i := b.LocalSymbol("i", b.IntType)
	cond := b.Binary("LessThan", b.BoolType, b.Local(i), b.Int(10))
	loop := b.For(
		[]*bound.Node{b.Declare(i, b.Int(0))},
		cond,
		[]*bound.Node{b.Stmt(b.Assign(b.Local(i), b.Int(1)))},
		b.Block(),
	)

	op, ok := newFactory(t, b).Create(loop).(*ir.Loop)
	require.True(t, ok)
	assert.Equal(t, ir.LoopFor, op.LoopKind)
	assert.True(t, op.ConditionIsTop)
	require.Len(t, op.Before, 1)
	require.Len(t, op.AtLoopBottom, 1)
	assert.Equal(t, b.Model.PublicSymbol(loop.ContinueLabel), op.ContinueLabel)
	assert.Equal(t, b.Model.PublicSymbol(loop.BreakLabel), op.ExitLabel)

	// Children follow evaluation order: before, condition, body, increments.
	children := op.Children()
	require.Len(t, children, 4)
	assert.Same(t, op.Before[0], children[0])
	assert.Same(t, op.Condition, children[1])
	assert.Same(t, op.Body, children[2])
	assert.Same(t, op.AtLoopBottom[0], children[3])

	do, ok := newFactory(t, b).Create(b.Do(b.Block(), b.Bool(true))).(*ir.Loop)
	require.True(t, ok)
	assert.Equal(t, ir.LoopDo, do.LoopKind)
	assert.False(t, do.ConditionIsTop)
}

func TestLocalFunction_BodyIsDeferred(t *testing.T) {
	b := testutil.NewTree()
	fn := b.Node(bound.KindLocalFunctionStatement, nil)
	fn.Method = b.Method("helper", b.VoidType)
	fn.Method.MethodKind = bound.MethodLocalFunction
	fn.Body = b.Block(b.Node(bound.KindSequencePoint, nil))

	op, ok := newFactory(t, b).Create(fn).(*ir.LocalFunction)
	require.True(t, ok)
	body := op.Body()
	require.NotNil(t, body)
	requireContractPanic(t, func() { body.Operations() })
}
