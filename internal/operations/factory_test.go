package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
	"github.com/roach88/opflow/internal/testutil"
)

func newFactory(t *testing.T, b *testutil.Tree) *Factory {
	t.Helper()
	return New(b.Model, WithLogger(testutil.NewTestLogger(t)))
}

// requireContractPanic runs fn and returns the contract error it panicked
// with.
func requireContractPanic(t *testing.T, fn func()) *ir.ContractError {
	t.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()
	require.NotNil(t, got, "expected a contract panic")
	err, ok := got.(*ir.ContractError)
	require.True(t, ok, "panic value %T is not *ir.ContractError", got)
	return err
}

func TestNew_RequiresModel(t *testing.T) {
	requireContractPanic(t, func() { New(nil) })
}

func TestCreate_NilPropagates(t *testing.T) {
	f := newFactory(t, testutil.NewTree())
	assert.Nil(t, f.Create(nil))
}

func TestPartition_CoversEveryKind(t *testing.T) {
	counts := map[string]int{}
	for k := bound.Kind(0); k < bound.KindCount; k++ {
		p := Partition(k)
		require.Contains(t, []string{"mapped", "none", "fatal"}, p, "kind %s", k)
		counts[p]++
	}
	assert.Equal(t, 15, counts["none"])
	assert.Equal(t, 9, counts["fatal"])
	assert.Equal(t, int(bound.KindCount)-24, counts["mapped"])
	assert.Equal(t, "fatal", Partition(bound.KindCount))
}

func TestPartition_NoneKindsPassThrough(t *testing.T) {
	b := testutil.NewTree()
	f := newFactory(t, b)
	for k := bound.Kind(0); k < bound.KindCount; k++ {
		if Partition(k) != "none" {
			continue
		}
		t.Run(k.String(), func(t *testing.T) {
			n := b.Node(k, nil)
			n.Arguments = []*bound.Node{b.Int(1)}
			op := f.Create(n)
			none, ok := op.(*ir.None)
			require.True(t, ok, "got %T", op)
			require.Len(t, none.Operands, 1)
			assert.Same(t, op, none.Operands[0].Parent())
			assert.False(t, op.IsImplicit())
		})
	}
}

func TestPartition_NoneIsImplicitWhenGenerated(t *testing.T) {
	b := testutil.NewTree()
	n := b.Node(bound.KindArgListOperator, nil)
	n.CompilerGenerated = true
	assert.True(t, newFactory(t, b).Create(n).IsImplicit())
}

func TestPartition_FatalKindsPanic(t *testing.T) {
	b := testutil.NewTree()
	f := newFactory(t, b)
	for k := bound.Kind(0); k < bound.KindCount; k++ {
		if Partition(k) != "fatal" {
			continue
		}
		t.Run(k.String(), func(t *testing.T) {
			n := b.Node(k, nil)
			err := requireContractPanic(t, func() { f.Create(n) })
			assert.Equal(t, "operations", err.Component)
		})
	}
}

func TestCreate_LoweringOnlyKindMessage(t *testing.T) {
	b := testutil.NewTree()
	f := newFactory(t, b)
	assert.PanicsWithError(t,
		"operations: contract violation: lowering-only bound kind ConditionalGoto reached the translator",
		func() { f.Create(b.Node(bound.KindConditionalGoto, nil)) })
}

func TestBinary_ThreeTermsKeepLeftNesting(t *testing.T) {
	b := testutil.NewTree()
	one, two, three := b.Int(1), b.Int(2), b.Int(3)
	inner := b.Binary("Addition", b.IntType, one, two)
	outer := b.Binary("Multiplication", b.IntType, inner, three)

	op := newFactory(t, b).Create(outer)

	root, ok := op.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.BinaryMultiply, root.OperatorKind)
	left, ok := root.Left.(*ir.Binary)
	require.True(t, ok)
	assert.Equal(t, ir.BinaryAdd, left.OperatorKind)
	assert.Equal(t, ir.Int(1), left.Left.ConstantValue())
	assert.Equal(t, ir.Int(2), left.Right.ConstantValue())
	assert.Equal(t, ir.Int(3), root.Right.ConstantValue())

	assert.Same(t, root, left.Parent())
	assert.Same(t, left, left.Left.Parent())
	assert.Same(t, root, root.Right.Parent())
	for _, d := range ir.Descendants(root) {
		assert.False(t, d.IsImplicit(), "%s", d.Kind())
	}
}

func TestBinary_LongChainDoesNotRecurse(t *testing.T) {
	const terms = 10000
	b := testutil.NewTree()
	chain := b.Int(0)
	for i := 1; i < terms; i++ {
		chain = b.Binary("Addition", b.IntType, chain, b.Int(i))
	}

	op := newFactory(t, b).Create(chain)

	assert.Len(t, ir.FindAll(op, ir.KindBinaryOperator), terms-1)
	depth := 0
	cur := op
	for {
		bin, ok := cur.(*ir.Binary)
		if !ok {
			break
		}
		assert.Equal(t, ir.Int(terms-1-depth), bin.Right.ConstantValue())
		cur = bin.Left
		depth++
	}
	assert.Equal(t, terms-1, depth)
	assert.Equal(t, ir.Int(0), cur.ConstantValue())
	assert.Same(t, op, ir.Root(cur))
}

func TestBinary_UnknownOperatorPanics(t *testing.T) {
	b := testutil.NewTree()
	n := b.Binary("Spaceship", b.IntType, b.Int(1), b.Int(2))
	requireContractPanic(t, func() { newFactory(t, b).Create(n) })
}

func TestConversion_ImplicitWhenSharingOperandSyntax(t *testing.T) {
	b := testutil.NewTree()
	x := b.Local(b.LocalSymbol("x", b.StringType))
	conv := &bound.Node{
		Kind:           bound.KindConversion,
		Syntax:         x.Syntax,
		Type:           b.ObjectType,
		Operand:        x,
		ConversionKind: bound.ConversionImplicitReference,
	}

	op := newFactory(t, b).Create(conv)

	c, ok := op.(*ir.Conversion)
	require.True(t, ok)
	assert.True(t, c.IsImplicit())
	assert.True(t, c.Operand.IsImplicit(), "the operand shares the conversion's syntax")
	assert.True(t, c.Conversion.IsReference)
	assert.True(t, c.Conversion.IsImplicit)
}

func TestConversion_ExplicitCast(t *testing.T) {
	b := testutil.NewTree()
	x := b.Local(b.LocalSymbol("x", b.StringType))
	conv := &bound.Node{
		Kind:           bound.KindConversion,
		Syntax:         b.Syntax("CastExpression", "(object)x"),
		Type:           b.ObjectType,
		Operand:        x,
		ConversionKind: bound.ConversionExplicitReference,
	}

	c := newFactory(t, b).Create(conv).(*ir.Conversion)

	assert.False(t, c.IsImplicit())
	assert.False(t, c.Operand.IsImplicit())
	assert.False(t, c.Conversion.IsImplicit)
}

func TestConversion_UserDefinedRequiresMethod(t *testing.T) {
	b := testutil.NewTree()
	conv := &bound.Node{
		Kind:           bound.KindConversion,
		Syntax:         b.Syntax("CastExpression", "(T)1"),
		Operand:        b.Int(1),
		ConversionKind: bound.ConversionExplicitUserDefined,
	}
	requireContractPanic(t, func() { newFactory(t, b).Create(conv) })

	op := b.Method("op_Explicit", b.ObjectType, b.Param("v", b.IntType))
	op.MethodKind = bound.MethodConversion
	conv.Method = op
	c := newFactory(t, b).Create(conv).(*ir.Conversion)
	assert.Equal(t, b.Model.PublicSymbol(op), c.OperatorMethod)
	assert.Equal(t, b.Model.PublicSymbol(op), c.Conversion.MethodSymbol)
	assert.True(t, c.Conversion.IsUserDefined)
}

func TestLocal_OutVariableIsDeclarationExpression(t *testing.T) {
	b := testutil.NewTree()
	sym := b.LocalSymbol("x", b.IntType)
	n := b.Local(sym)
	n.DeclarationKind = bound.DeclarationOutVariable
	n.Designation = b.Syntax("SingleVariableDesignation", "x")

	op := newFactory(t, b).Create(n)

	decl, ok := op.(*ir.DeclarationExpression)
	require.True(t, ok)
	assert.Same(t, n.Designation, decl.Syntax())
	ref, ok := decl.Expression.(*ir.LocalReference)
	require.True(t, ok)
	assert.True(t, ref.IsDeclaration)
	assert.Same(t, n.Syntax, ref.Syntax())
	assert.Equal(t, b.Model.PublicSymbol(sym), ref.Local)
}

func TestCall_InvalidKeepsOriginalOperands(t *testing.T) {
	b := testutil.NewTree()
	m := b.Method("M", b.IntType, b.Param("a", b.IntType))
	m.IsStatic = false
	recv := b.Local(b.LocalSymbol("c", b.ObjectType))
	call := b.Call(m, recv, b.Int(1), b.Int(2))
	call.ResultKind = bound.ResultOverloadResolutionFailure

	op := newFactory(t, b).Create(call)

	inv, ok := op.(*ir.Invalid)
	require.True(t, ok, "got %T", op)
	require.Len(t, inv.Operands, 3)
	assert.IsType(t, &ir.LocalReference{}, inv.Operands[0])
	assert.Equal(t, ir.Int(1), inv.Operands[1].ConstantValue())
	assert.Equal(t, ir.Int(2), inv.Operands[2].ConstantValue())
	assert.Equal(t, "int", ir.SymbolName(inv.Type()))
}

func TestCall_InvalidOverMissingSyntaxHasNoType(t *testing.T) {
	b := testutil.NewTree()
	m := b.Method("M", b.IntType)
	call := b.Call(m, nil)
	call.ResultKind = bound.ResultEmpty
	call.Syntax.Missing = true

	op := newFactory(t, b).Create(call)

	require.IsType(t, &ir.Invalid{}, op)
	assert.Nil(t, op.Type())
}

func TestCall_ErrorMethodIsInvalid(t *testing.T) {
	b := testutil.NewTree()
	m := b.Method("M", b.IntType)
	m.IsError = true
	assert.IsType(t, &ir.Invalid{}, newFactory(t, b).Create(b.Call(m, nil, b.Int(1))))
}

func TestCall_InstanceBeforeArguments(t *testing.T) {
	b := testutil.NewTree()
	m := b.Method("M", b.VoidType, b.Param("a", b.IntType))
	m.IsStatic = false
	m.IsVirtual = true
	recv := b.Local(b.LocalSymbol("c", b.ObjectType))

	inv := newFactory(t, b).Create(b.Call(m, recv, b.Int(7))).(*ir.Invocation)

	children := inv.Children()
	require.Len(t, children, 2)
	assert.IsType(t, &ir.LocalReference{}, children[0])
	assert.IsType(t, &ir.Argument{}, children[1])
	assert.True(t, inv.IsVirtual)
}

func TestCall_BaseReceiverIsNotVirtual(t *testing.T) {
	b := testutil.NewTree()
	m := b.Method("M", b.VoidType)
	m.IsStatic = false
	m.IsOverride = true
	base := b.Node(bound.KindBaseReference, b.ObjectType)

	inv := newFactory(t, b).Create(b.Call(m, base)).(*ir.Invocation)

	assert.False(t, inv.IsVirtual)
	require.NotNil(t, inv.Instance)
	assert.Equal(t, ir.InstanceContaining, inv.Instance.(*ir.InstanceReference).ReferenceKind)
}

func TestCall_StaticDropsTypeReceiver(t *testing.T) {
	b := testutil.NewTree()
	m := b.Method("M", b.VoidType)
	recv := b.Node(bound.KindTypeExpression, m.ContainingType)

	inv := newFactory(t, b).Create(b.Call(m, recv)).(*ir.Invocation)

	assert.Nil(t, inv.Instance)
}

func TestCall_ExtensionReceiverBecomesFirstArgument(t *testing.T) {
	b := testutil.NewTree()
	self := b.Param("self", b.ObjectType)
	count := b.Param("n", b.IntType)
	ext := b.Method("Ext", b.VoidType, self, count)
	ext.IsExtension = true
	recv := b.Local(b.LocalSymbol("o", b.ObjectType))

	inv := newFactory(t, b).Create(b.Call(ext, recv, b.Int(3))).(*ir.Invocation)

	assert.Nil(t, inv.Instance)
	require.Len(t, inv.Arguments, 2)
	assert.Equal(t, b.Model.PublicSymbol(self), inv.Arguments[0].Parameter)
	assert.IsType(t, &ir.LocalReference{}, inv.Arguments[0].Value)
	assert.Equal(t, ir.Int(3), inv.Arguments[1].Value.ConstantValue())
}

func TestDynamicCollectionElement_CallsAddByName(t *testing.T) {
	b := testutil.NewTree()
	dyn := &bound.Type{Name: "dynamic", Kind: bound.TypeDynamic}
	list := &bound.Type{Name: "List", Kind: bound.TypeClass}

	elem := b.Node(bound.KindDynamicCollectionElementInitializer, dyn)
	elem.Receiver = b.Node(bound.KindImplicitReceiver, list)
	elem.Arguments = []*bound.Node{b.Int(1)}
	init := b.Node(bound.KindCollectionInitializerExpression, list)
	init.Initializers = []*bound.Node{elem}
	ctor := b.Method(".ctor", list)
	ctor.MethodKind = bound.MethodConstructor
	create := b.Node(bound.KindObjectCreationExpression, list)
	create.Method = ctor
	create.Initializer = init

	op := newFactory(t, b).Create(create).(*ir.ObjectCreation)

	require.NotNil(t, op.Initializer)
	require.Len(t, op.Initializer.Initializers, 1)
	call, ok := op.Initializer.Initializers[0].(*ir.DynamicInvocation)
	require.True(t, ok)
	assert.True(t, call.IsImplicit())
	member, ok := call.Operation.(*ir.DynamicMemberReference)
	require.True(t, ok)
	assert.Equal(t, "Add", member.MemberName)
	recv, ok := member.Instance.(*ir.InstanceReference)
	require.True(t, ok)
	assert.Equal(t, ir.InstanceImplicitReceiver, recv.ReferenceKind)
	assert.True(t, recv.IsImplicit())
	assert.Equal(t, b.Model.PublicType(list), recv.Type())
	require.Len(t, call.Arguments, 1)
	assert.Nil(t, call.ArgumentNames)
}

func TestObjectInitializer_MemberAssignment(t *testing.T) {
	b := testutil.NewTree()
	point := &bound.Type{Name: "Point", Kind: bound.TypeClass}
	xProp := &bound.Symbol{Kind: ir.SymbolKindProperty, Name: "X", Type: b.IntType, ContainingType: point}

	member := b.Node(bound.KindObjectInitializerMember, b.IntType)
	member.Member = xProp
	assign := b.Assign(member, b.Int(1))
	init := b.Node(bound.KindObjectInitializerExpression, point)
	init.Initializers = []*bound.Node{assign}
	ctor := b.Method(".ctor", point)
	create := b.Node(bound.KindObjectCreationExpression, point)
	create.Method = ctor
	create.Initializer = init

	op := newFactory(t, b).Create(create).(*ir.ObjectCreation)

	a, ok := op.Initializer.Initializers[0].(*ir.SimpleAssignment)
	require.True(t, ok)
	ref, ok := a.Target.(*ir.PropertyReference)
	require.True(t, ok)
	assert.Equal(t, b.Model.PublicSymbol(xProp), ref.Property)
	recv := ref.Instance.(*ir.InstanceReference)
	assert.Equal(t, ir.InstanceImplicitReceiver, recv.ReferenceKind)
	assert.Equal(t, b.Model.PublicType(point), recv.Type())
}

func TestObjectInitializer_NestedIsMemberInitializer(t *testing.T) {
	b := testutil.NewTree()
	outer := &bound.Type{Name: "Outer", Kind: bound.TypeClass}
	inner := &bound.Type{Name: "Inner", Kind: bound.TypeClass}
	prop := &bound.Symbol{Kind: ir.SymbolKindProperty, Name: "In", Type: inner, ContainingType: outer}

	member := b.Node(bound.KindObjectInitializerMember, inner)
	member.Member = prop
	nested := b.Node(bound.KindObjectInitializerExpression, inner)
	assign := b.Assign(member, nested)

	op := newFactory(t, b).Create(assign)

	mi, ok := op.(*ir.MemberInitializer)
	require.True(t, ok, "got %T", op)
	assert.IsType(t, &ir.PropertyReference{}, mi.InitializedMember)
	require.NotNil(t, mi.Initializer)
}

func TestRecursivePattern_PropertySubpatternReadsPatternInput(t *testing.T) {
	b := testutil.NewTree()
	point := &bound.Type{Name: "Point", Kind: bound.TypeClass}
	xProp := &bound.Symbol{Kind: ir.SymbolKindProperty, Name: "X", Type: b.IntType, ContainingType: point}

	constant := b.Node(bound.KindConstantPattern, nil)
	constant.Operand = b.Int(1)
	constant.InputType = b.IntType
	constant.NarrowedType = b.IntType
	sub := b.Node(bound.KindPropertySubpattern, nil)
	sub.Member = xProp
	sub.Pattern = constant
	sub.Designation = b.Syntax("IdentifierName", "X")
	rec := b.Node(bound.KindRecursivePattern, nil)
	rec.InputType = b.ObjectType
	rec.NarrowedType = point
	rec.MatchedType = point
	rec.Properties = []*bound.Node{sub}
	is := b.Node(bound.KindIsPatternExpression, b.BoolType)
	is.Operand = b.Local(b.LocalSymbol("o", b.ObjectType))
	is.Pattern = rec

	op := newFactory(t, b).Create(is).(*ir.IsPattern)

	pattern, ok := op.Pattern.(*ir.RecursivePattern)
	require.True(t, ok)
	assert.Equal(t, b.Model.PublicType(b.ObjectType), pattern.InputType())
	assert.Equal(t, b.Model.PublicType(point), pattern.NarrowedType())
	require.Len(t, pattern.PropertySubpatterns, 1)
	ps := pattern.PropertySubpatterns[0]
	ref, ok := ps.Member.(*ir.PropertyReference)
	require.True(t, ok)
	assert.Same(t, sub.Designation, ref.Syntax())
	input, ok := ref.Instance.(*ir.InstanceReference)
	require.True(t, ok)
	assert.Equal(t, ir.InstancePatternInput, input.ReferenceKind)
	assert.True(t, input.IsImplicit())
	assert.Equal(t, b.Model.PublicType(point), input.Type())
	assert.IsType(t, &ir.ConstantPattern{}, ps.Pattern)
}

func TestPattern_PositionalSubpatternIsTransparent(t *testing.T) {
	b := testutil.NewTree()
	discard := b.Node(bound.KindDiscardPattern, nil)
	pos := b.Node(bound.KindPositionalSubpattern, nil)
	pos.Pattern = discard
	rec := b.Node(bound.KindRecursivePattern, nil)
	rec.Subpatterns = []*bound.Node{pos}

	p := newFactory(t, b).createPattern(rec).(*ir.RecursivePattern)

	require.Len(t, p.DeconstructionSubpatterns, 1)
	assert.IsType(t, &ir.DiscardPattern{}, p.DeconstructionSubpatterns[0])
	assert.Same(t, discard.Syntax, p.DeconstructionSubpatterns[0].Syntax())
}

func TestLambda_BodyIsBuiltOnDemand(t *testing.T) {
	b := testutil.NewTree()
	lambda := b.Node(bound.KindLambda, nil)
	lambda.Method = &bound.Symbol{Kind: ir.SymbolKindMethod, Name: "<lambda>", MethodKind: bound.MethodLambda}
	// A lowering-only node inside the body only fails once the body is
	// forced.
	lambda.Body = b.Block(b.Node(bound.KindSequencePoint, nil))

	f := newFactory(t, b)
	var fn *ir.AnonymousFunction
	require.NotPanics(t, func() { fn = f.Create(lambda).(*ir.AnonymousFunction) })
	requireContractPanic(t, func() { fn.Body().Operations() })
}

func TestLambda_ExpressionBodyGetsImplicitReturn(t *testing.T) {
	b := testutil.NewTree()
	lambda := b.Node(bound.KindLambda, nil)
	lambda.Method = &bound.Symbol{Kind: ir.SymbolKindMethod, Name: "<lambda>", MethodKind: bound.MethodLambda}
	lambda.Body = b.Int(42)

	fn := newFactory(t, b).Create(lambda).(*ir.AnonymousFunction)

	body := fn.Body()
	require.NotNil(t, body)
	assert.Same(t, fn, body.Parent())
	require.Len(t, body.Operations(), 1)
	ret, ok := body.Operations()[0].(*ir.Return)
	require.True(t, ok)
	assert.True(t, ret.IsImplicit())
	assert.Equal(t, ir.Int(42), ret.ReturnedValue.ConstantValue())
	assert.True(t, ret.ReturnedValue.IsImplicit(), "the value shares the return's syntax")
}

func TestInterpolatedString_Parts(t *testing.T) {
	b := testutil.NewTree()
	insert := b.Node(bound.KindStringInsert, nil)
	insert.Operand = b.Local(b.LocalSymbol("name", b.StringType))
	insert.Format = b.Str("N")
	s := b.Node(bound.KindInterpolatedString, b.StringType)
	s.Arguments = []*bound.Node{b.Str("Hello "), insert}

	op := newFactory(t, b).Create(s).(*ir.InterpolatedString)

	require.Len(t, op.Parts, 2)
	text, ok := op.Parts[0].(*ir.InterpolatedStringText)
	require.True(t, ok)
	assert.True(t, text.Text.IsImplicit(), "the text literal shares the part's syntax")
	hole, ok := op.Parts[1].(*ir.Interpolation)
	require.True(t, ok)
	assert.Nil(t, hole.Alignment)
	assert.Equal(t, ir.String("N"), hole.FormatString.ConstantValue())
}

func TestDynamicInvocation_MethodGroupBecomesMemberReference(t *testing.T) {
	b := testutil.NewTree()
	dyn := &bound.Type{Name: "dynamic", Kind: bound.TypeDynamic}
	group := b.Node(bound.KindMethodGroup, nil)
	group.MemberName = "Go"
	group.Receiver = b.Local(b.LocalSymbol("d", dyn))
	arg := b.Int(1)
	arg.ArgumentName = "speed"
	call := b.Node(bound.KindDynamicInvocation, dyn)
	call.Receiver = group
	call.Arguments = []*bound.Node{arg}

	op := newFactory(t, b).Create(call).(*ir.DynamicInvocation)

	member, ok := op.Operation.(*ir.DynamicMemberReference)
	require.True(t, ok)
	assert.Equal(t, "Go", member.MemberName)
	assert.IsType(t, &ir.LocalReference{}, member.Instance)
	assert.Equal(t, []string{"speed"}, op.ArgumentNames)
	assert.Nil(t, op.ArgumentRefKinds)
}
