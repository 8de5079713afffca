package operations

import (
	"io"
	"log/slog"

	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// SemanticModel is the read-only context the factory consults for the
// few lookups the bound tree does not answer by itself.
type SemanticModel interface {
	// WellKnownType resolves a platform type by metadata name, or nil.
	WellKnownType(name string) *bound.Type
	// PublicSymbol wraps an internal symbol into a stable public handle.
	PublicSymbol(*bound.Symbol) ir.Symbol
	// PublicType wraps an internal type into a stable public handle.
	PublicType(*bound.Type) ir.Symbol
}

// Factory translates bound nodes into Operations.
type Factory struct {
	model  SemanticModel
	logger *slog.Logger
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger used for debug tracing of translation.
func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a Factory over model.
func New(model SemanticModel, opts ...Option) *Factory {
	if model == nil {
		panic(ir.Contractf("operations", "factory requires a semantic model"))
	}
	f := &Factory{
		model:  model,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create translates n. Create(nil) returns nil so optional children
// propagate absence.
//
// CRITICAL: Create panics with *ir.ContractError for bound kinds that can
// never reach the translator. Those are translator bugs, never user
// errors, and must not be converted into Invalid operations.
func (f *Factory) Create(n *bound.Node) ir.Operation {
	if n == nil {
		return nil
	}
	switch n.Kind {
	// literals and simple references
	case bound.KindLiteral:
		return ir.New(f.info(n), &ir.Literal{})
	case bound.KindLocal:
		return f.createLocal(n)
	case bound.KindParameter:
		return f.createParameter(n)
	case bound.KindThisReference, bound.KindBaseReference:
		return ir.New(f.info(n), &ir.InstanceReference{ReferenceKind: ir.InstanceContaining})
	case bound.KindImplicitReceiver:
		return ir.New(f.info(n), &ir.InstanceReference{ReferenceKind: ir.InstanceImplicitReceiver})
	case bound.KindConditionalReceiver:
		return ir.New(f.info(n), &ir.ConditionalAccessInstance{})
	case bound.KindDiscardExpression:
		return ir.New(f.info(n), &ir.Discard{Symbol: f.symbol(n.Local)})

	// member access and invocation
	case bound.KindFieldAccess:
		return f.createFieldAccess(n)
	case bound.KindPropertyAccess:
		return f.createPropertyAccess(n)
	case bound.KindEventAccess:
		return f.createEventAccess(n)
	case bound.KindIndexerAccess:
		return f.createIndexerAccess(n)
	case bound.KindArrayAccess:
		return f.createArrayAccess(n)
	case bound.KindMethodGroup:
		return f.createMethodGroup(n)
	case bound.KindCall:
		return f.createCall(n)

	// creation
	case bound.KindObjectCreationExpression:
		return f.createObjectCreation(n)
	case bound.KindNewT:
		return ir.New(f.info(n), &ir.TypeParameterObjectCreation{Initializer: f.createInitializer(n.Initializer)})
	case bound.KindDynamicObjectCreationExpression:
		return f.createDynamicObjectCreation(n)
	case bound.KindDelegateCreationExpression:
		return f.createDelegateCreation(n)
	case bound.KindAnonymousObjectCreationExpression:
		return f.createAnonymousObjectCreation(n)
	case bound.KindArrayCreation:
		return f.createArrayCreation(n)
	case bound.KindArrayInitialization:
		return f.createArrayInitializer(n)
	case bound.KindObjectInitializerExpression, bound.KindCollectionInitializerExpression:
		return f.createInitializer(n)
	case bound.KindObjectInitializerMember:
		return f.createInitializerMember(n, f.implicitReceiver(n, receiverType(n)))
	case bound.KindCollectionElementInitializer:
		return f.createCollectionElement(n, f.implicitReceiver(n, receiverType(n)))
	case bound.KindDynamicCollectionElementInitializer:
		return f.createDynamicCollectionElement(n, f.implicitReceiver(n, receiverType(n)))

	// conversions and type tests
	case bound.KindConversion:
		return f.createConversion(n)
	case bound.KindAsOperator:
		return f.createAsOperator(n)
	case bound.KindIsOperator:
		return ir.New(f.info(n), &ir.IsType{
			ValueOperand: f.Create(n.Operand),
			TypeOperand:  f.typ(n.TypeOperand),
			IsNegated:    n.IsNegated,
		})
	case bound.KindTypeOfOperator:
		return ir.New(f.info(n), &ir.TypeOf{TypeOperand: f.typ(n.TypeOperand)})
	case bound.KindSizeOfOperator:
		return ir.New(f.info(n), &ir.SizeOf{TypeOperand: f.typ(n.TypeOperand)})
	case bound.KindDefaultExpression:
		return ir.New(f.info(n), &ir.DefaultValue{})
	case bound.KindIsPatternExpression:
		return ir.New(f.info(n), &ir.IsPattern{Value: f.Create(n.Operand), Pattern: f.createPattern(n.Pattern)})

	// operators
	case bound.KindUnaryOperator:
		return f.createUnary(n)
	case bound.KindFromEndIndexExpression:
		return ir.New(f.info(n), &ir.Unary{OperatorKind: ir.UnaryHat, Operand: f.Create(n.Operand), OperatorMethod: f.symbol(n.Method)})
	case bound.KindIncrementOperator:
		return f.createIncrement(n)
	case bound.KindBinaryOperator, bound.KindUserDefinedConditionalLogicalOperator:
		return f.createBinaryChain(n)
	case bound.KindTupleBinaryOperator:
		return ir.New(f.info(n), &ir.TupleBinary{
			OperatorKind: f.binaryKind(n),
			Left:         f.Create(n.Left),
			Right:        f.Create(n.Right),
		})
	case bound.KindCompoundAssignmentOperator:
		return f.createCompoundAssignment(n)
	case bound.KindAssignmentOperator:
		return f.createAssignment(n)
	case bound.KindDeconstructionAssignmentOperator:
		return ir.New(f.info(n), &ir.DeconstructionAssignment{Target: f.Create(n.Left), Value: f.Create(n.Right)})
	case bound.KindEventAssignmentOperator:
		return f.createEventAssignment(n)
	case bound.KindNullCoalescingOperator:
		return ir.New(f.info(n), &ir.Coalesce{
			Value:           f.Create(n.Left),
			WhenNull:        f.Create(n.Right),
			ValueConversion: commonConversion(n.ConversionKind),
		})
	case bound.KindNullCoalescingAssignmentOperator:
		return ir.New(f.info(n), &ir.CoalesceAssignment{Target: f.Create(n.Left), Value: f.Create(n.Right)})
	case bound.KindConditionalOperator:
		return ir.New(f.info(n), &ir.Conditional{
			Condition: f.Create(n.Condition),
			WhenTrue:  f.Create(n.Consequence),
			WhenFalse: f.Create(n.Alternative),
			IsRef:     n.IsRef,
		})
	case bound.KindConditionalAccess:
		return ir.New(f.info(n), &ir.ConditionalAccess{Operation: f.Create(n.Receiver), WhenNotNull: f.Create(n.Operand)})
	case bound.KindRangeExpression:
		return ir.New(f.info(n), &ir.Range{LeftOperand: f.Create(n.Left), RightOperand: f.Create(n.Right), Method: f.symbol(n.Method)})
	case bound.KindAwaitExpression:
		return ir.New(f.info(n), &ir.Await{Operation: f.Create(n.Operand)})
	case bound.KindThrowExpression:
		return ir.New(f.info(n), &ir.Throw{Exception: f.Create(n.Operand)})
	case bound.KindAddressOfOperator:
		return ir.New(f.info(n), &ir.AddressOf{Reference: f.Create(n.Operand)})
	case bound.KindNameOfOperator:
		return ir.New(f.info(n), &ir.NameOf{Argument: f.Create(n.Operand)})

	// functions, strings, tuples
	case bound.KindLambda:
		return f.createLambda(n)
	case bound.KindInterpolatedString:
		return f.createInterpolatedString(n)
	case bound.KindStringInsert:
		return f.createInterpolation(n)
	case bound.KindTupleLiteral, bound.KindConvertedTupleLiteral:
		return f.createTuple(n)
	case bound.KindSwitchExpression:
		return f.createSwitchExpression(n)
	case bound.KindSwitchExpressionArm:
		return f.createSwitchExpressionArm(n)

	// dynamic
	case bound.KindDynamicInvocation:
		return f.createDynamicInvocation(n)
	case bound.KindDynamicMemberAccess:
		return ir.New(f.info(n), &ir.DynamicMemberReference{
			Instance:      f.Create(n.Receiver),
			MemberName:    n.MemberName,
			TypeArguments: f.types(n.TypeArguments),
		})
	case bound.KindDynamicIndexerAccess:
		args, names, refs := f.dynamicArguments(n.Arguments)
		return ir.New(f.info(n), &ir.DynamicIndexerAccess{
			Operation:        f.Create(n.Receiver),
			Arguments:        args,
			ArgumentNames:    names,
			ArgumentRefKinds: refs,
		})

	// errors
	case bound.KindBadExpression, bound.KindBadStatement:
		return f.invalid(n, nil, n.Children())

	// patterns
	case bound.KindConstantPattern, bound.KindDeclarationPattern, bound.KindDiscardPattern,
		bound.KindRecursivePattern, bound.KindRelationalPattern, bound.KindBinaryPattern,
		bound.KindNegatedPattern, bound.KindTypePattern, bound.KindPositionalSubpattern:
		return f.createPattern(n)
	case bound.KindPropertySubpattern:
		return f.createPropertySubpattern(n)

	// statements
	case bound.KindBlock:
		return f.createBlock(n)
	case bound.KindStatementList:
		return f.createStatementList(n)
	case bound.KindExpressionStatement:
		return ir.New(f.info(n), &ir.ExpressionStatement{Operation: f.Create(n.Operand)})
	case bound.KindLocalDeclaration:
		return f.createLocalDeclarationStatement(n)
	case bound.KindMultipleLocalDeclarations:
		return f.createDeclarationGroup(n)
	case bound.KindUsingLocalDeclarations:
		return ir.New(f.info(n), &ir.UsingDeclaration{
			DeclarationGroup: f.createDeclarationGroupWith(n, true),
			IsAsynchronous:   n.IsAsync,
			DisposeMethod:    f.symbol(n.Method),
		})
	case bound.KindIfStatement:
		return ir.New(f.info(n), &ir.Conditional{
			Condition: f.Create(n.Condition),
			WhenTrue:  f.Create(n.Consequence),
			WhenFalse: f.Create(n.Alternative),
		})
	case bound.KindWhileStatement:
		return f.createLoop(n, ir.LoopWhile, true)
	case bound.KindDoStatement:
		return f.createLoop(n, ir.LoopDo, false)
	case bound.KindForStatement:
		return f.createLoop(n, ir.LoopFor, true)
	case bound.KindForEachStatement:
		return f.createForEach(n)
	case bound.KindBreakStatement:
		return f.createBranch(n, ir.BranchBreak)
	case bound.KindContinueStatement:
		return f.createBranch(n, ir.BranchContinue)
	case bound.KindGotoStatement:
		return f.createBranch(n, ir.BranchGoTo)
	case bound.KindReturnStatement:
		return ir.New(f.info(n), &ir.Return{ReturnKind: ir.ReturnPlain, ReturnedValue: f.Create(n.Operand)})
	case bound.KindYieldReturnStatement:
		return ir.New(f.info(n), &ir.Return{ReturnKind: ir.ReturnYield, ReturnedValue: f.Create(n.Operand)})
	case bound.KindYieldBreakStatement:
		return ir.New(f.info(n), &ir.Return{ReturnKind: ir.ReturnYieldBreak})
	case bound.KindThrowStatement:
		return ir.New(f.info(n), &ir.Throw{Exception: f.Create(n.Operand)})
	case bound.KindTryStatement:
		return f.createTry(n)
	case bound.KindCatchBlock:
		return f.createCatch(n)
	case bound.KindLabeledStatement:
		return ir.New(f.info(n), &ir.Labeled{Label: f.symbol(n.Label), Operation: f.Create(n.Body)})
	case bound.KindLabelStatement:
		return ir.New(f.info(n), &ir.Labeled{Label: f.symbol(n.Label)})
	case bound.KindNoOpStatement:
		return ir.New(f.info(n), &ir.Empty{})
	case bound.KindSwitchStatement:
		return f.createSwitch(n)
	case bound.KindSwitchSection:
		return f.createSwitchCase(n)
	case bound.KindSwitchLabel:
		return f.createCaseClause(n)
	case bound.KindLockStatement:
		return ir.New(f.info(n), &ir.Lock{LockedValue: f.Create(n.Operand), Body: f.Create(n.Body)})
	case bound.KindUsingStatement:
		return f.createUsing(n)
	case bound.KindLocalFunctionStatement:
		return f.createLocalFunction(n)
	case bound.KindFieldEqualsValue:
		return ir.New(f.info(n), &ir.FieldInitializer{Locals: f.symbols(n.Locals), Fields: f.symbols(n.Members), Value: f.Create(n.Operand)})
	case bound.KindPropertyEqualsValue:
		return ir.New(f.info(n), &ir.PropertyInitializer{Locals: f.symbols(n.Locals), Properties: f.symbols(n.Members), Value: f.Create(n.Operand)})
	case bound.KindParameterEqualsValue:
		return ir.New(f.info(n), &ir.ParameterInitializer{Locals: f.symbols(n.Locals), Parameter: f.symbol(n.Local), Value: f.Create(n.Operand)})
	case bound.KindGlobalStatementInitializer:
		return f.Create(n.Operand)
	case bound.KindNonConstructorMethodBody:
		return ir.New(f.info(n), &ir.MethodBody{BlockBody: f.createBlockOrNil(n.Body), ExpressionBody: f.createBlockOrNil(n.Operand)})

	// constructs without a dedicated variant
	case bound.KindArgList, bound.KindArgListOperator, bound.KindMakeRefOperator,
		bound.KindRefTypeOperator, bound.KindRefValueOperator, bound.KindAttribute,
		bound.KindQueryClause, bound.KindRangeVariable, bound.KindPreviousSubmissionReference,
		bound.KindHostObjectMemberReference, bound.KindITuplePattern, bound.KindStackAllocArrayCreation,
		bound.KindFixedStatement, bound.KindUnboundLambda, bound.KindPointerIndirectionOperator:
		return f.none(n)

	// never reach the translator
	case bound.KindSequencePoint, bound.KindSequencePointExpression, bound.KindSequence,
		bound.KindConditionalGoto, bound.KindStateMachineScope:
		panic(ir.Contractf("operations", "lowering-only bound kind %s reached the translator", n.Kind))
	case bound.KindTypeExpression, bound.KindNamespaceExpression, bound.KindLabel:
		panic(ir.Contractf("operations", "context-only bound kind %s cannot be translated on its own", n.Kind))
	}
	panic(ir.Contractf("operations", "unexpected bound kind %s", n.Kind))
}

// Partition reports how Create treats kind: "mapped", "none" or "fatal".
// It mirrors the dispatch in Create and exists for tooling and tests.
func Partition(kind bound.Kind) string {
	switch kind {
	case bound.KindArgList, bound.KindArgListOperator, bound.KindMakeRefOperator,
		bound.KindRefTypeOperator, bound.KindRefValueOperator, bound.KindAttribute,
		bound.KindQueryClause, bound.KindRangeVariable, bound.KindPreviousSubmissionReference,
		bound.KindHostObjectMemberReference, bound.KindITuplePattern, bound.KindStackAllocArrayCreation,
		bound.KindFixedStatement, bound.KindUnboundLambda, bound.KindPointerIndirectionOperator:
		return "none"
	case bound.KindSequencePoint, bound.KindSequencePointExpression, bound.KindSequence,
		bound.KindConditionalGoto, bound.KindStateMachineScope, bound.KindTypeExpression,
		bound.KindNamespaceExpression, bound.KindLabel, bound.KindInvalid:
		return "fatal"
	}
	if kind >= bound.KindCount {
		return "fatal"
	}
	return "mapped"
}

// info derives the shared attributes of the operation produced for n.
func (f *Factory) info(n *bound.Node) ir.Info {
	return ir.Info{
		Syntax:    n.Syntax,
		Type:      f.typ(n.Type),
		Constant:  n.Constant,
		Generated: n.CompilerGenerated,
	}
}

// generated derives attributes for a synthesized node over syntax.
func (f *Factory) generated(syntax *ir.Syntax, t *bound.Type, constant ir.Value) ir.Info {
	return ir.Info{Syntax: syntax, Type: f.typ(t), Constant: constant, Generated: true}
}

func (f *Factory) typ(t *bound.Type) ir.Symbol {
	return f.model.PublicType(t)
}

func (f *Factory) types(ts []*bound.Type) []ir.Symbol {
	if len(ts) == 0 {
		return nil
	}
	out := make([]ir.Symbol, len(ts))
	for i, t := range ts {
		out[i] = f.typ(t)
	}
	return out
}

func (f *Factory) symbol(s *bound.Symbol) ir.Symbol {
	return f.model.PublicSymbol(s)
}

func (f *Factory) symbols(ss []*bound.Symbol) []ir.Symbol {
	if len(ss) == 0 {
		return nil
	}
	out := make([]ir.Symbol, len(ss))
	for i, s := range ss {
		out[i] = f.symbol(s)
	}
	return out
}

// createAll translates each node, skipping nil inputs.
func (f *Factory) createAll(ns []*bound.Node) []ir.Operation {
	if len(ns) == 0 {
		return nil
	}
	out := make([]ir.Operation, 0, len(ns))
	for _, n := range ns {
		if op := f.Create(n); op != nil {
			out = append(out, op)
		}
	}
	return out
}

// none passes n through as an ir.None with its children translated.
func (f *Factory) none(n *bound.Node) ir.Operation {
	f.logger.Debug("passthrough", "kind", n.Kind.String())
	return ir.New(f.info(n), &ir.None{Operands: f.salvageAll(n.Children())})
}

// invalid builds the error-recovery node for n. Children are the original
// receiver (when it is an expression) followed by the original operands
// in source order. Missing syntax drops the meaningless error type.
func (f *Factory) invalid(n *bound.Node, receiver *bound.Node, operands []*bound.Node) ir.Operation {
	var children []ir.Operation
	if r := f.salvage(receiver); r != nil {
		children = append(children, r)
	}
	children = append(children, f.salvageAll(operands)...)
	info := f.info(n)
	if n.Syntax == nil || n.Syntax.Missing {
		info.Type = nil
	}
	f.logger.Debug("invalid", "kind", n.Kind.String(), "children", len(children))
	return ir.New(info, &ir.Invalid{Operands: children})
}

// salvage translates n unless it is a context-only node that has no
// operation of its own.
func (f *Factory) salvage(n *bound.Node) ir.Operation {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case bound.KindTypeExpression, bound.KindNamespaceExpression, bound.KindLabel:
		return nil
	}
	return f.Create(n)
}

func (f *Factory) salvageAll(ns []*bound.Node) []ir.Operation {
	var out []ir.Operation
	for _, n := range ns {
		if op := f.salvage(n); op != nil {
			out = append(out, op)
		}
	}
	return out
}
