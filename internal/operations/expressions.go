package operations

import (
	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// createLambda translates a lambda or anonymous method. The body is built
// on first access.
func (f *Factory) createLambda(n *bound.Node) ir.Operation {
	if n.Body == nil {
		panic(ir.Contractf("operations", "Lambda without a body"))
	}
	return ir.NewAnonymousFunction(f.info(n), f.symbol(n.Method), func() *ir.Block {
		return f.createBlockOrNil(n.Body)
	})
}

// createInterpolatedString translates $"..." into its parts. Literal
// parts become InterpolatedStringText over the same syntax as the text.
func (f *Factory) createInterpolatedString(n *bound.Node) ir.Operation {
	parts := make([]ir.Operation, 0, len(n.Arguments))
	for _, part := range n.Arguments {
		if part.Kind == bound.KindStringInsert {
			parts = append(parts, f.createInterpolation(part))
			continue
		}
		text := f.Create(part)
		parts = append(parts, ir.New(ir.Info{Syntax: part.Syntax}, &ir.InterpolatedStringText{Text: text}))
	}
	return ir.New(f.info(n), &ir.InterpolatedString{Parts: parts})
}

// createInterpolation translates one "{expr,alignment:format}" hole.
func (f *Factory) createInterpolation(n *bound.Node) ir.Operation {
	return ir.New(f.info(n), &ir.Interpolation{
		Expression:   f.Create(n.Operand),
		Alignment:    f.Create(n.Alignment),
		FormatString: f.Create(n.Format),
	})
}

// createTuple translates a tuple literal. A converted literal keeps the
// type it was converted to and reports its own type as NaturalType.
func (f *Factory) createTuple(n *bound.Node) ir.Operation {
	natural := n.NaturalType
	if natural == nil && n.Kind == bound.KindTupleLiteral {
		natural = n.Type
	}
	return ir.New(f.info(n), &ir.Tuple{
		Elements:    f.createAll(n.Arguments),
		NaturalType: f.typ(natural),
	})
}

func (f *Factory) createSwitchExpression(n *bound.Node) ir.Operation {
	value := f.Create(n.Operand)
	arms := make([]*ir.SwitchExpressionArm, 0, len(n.Sections))
	for _, s := range n.Sections {
		arms = append(arms, f.switchExpressionArm(s))
	}
	return ir.New(f.info(n), &ir.SwitchExpression{Value: value, Arms: arms})
}

func (f *Factory) createSwitchExpressionArm(n *bound.Node) ir.Operation {
	return f.switchExpressionArm(n)
}

func (f *Factory) switchExpressionArm(n *bound.Node) *ir.SwitchExpressionArm {
	if n.Kind != bound.KindSwitchExpressionArm {
		panic(ir.Contractf("operations", "switch expression arm has kind %s", n.Kind))
	}
	return ir.New(f.info(n), &ir.SwitchExpressionArm{
		Pattern: f.createPattern(n.Pattern),
		Guard:   f.Create(n.Guard),
		Value:   f.Create(n.Operand),
		Locals:  f.symbols(n.Locals),
	})
}

// createDynamicInvocation translates a late-bound call. When the callee is
// a method group the binder could not resolve, the group is re-expressed
// as a late-bound member reference by name.
func (f *Factory) createDynamicInvocation(n *bound.Node) ir.Operation {
	var callee ir.Operation
	if g := n.Receiver; g != nil && g.Kind == bound.KindMethodGroup {
		name := g.MemberName
		if name == "" && g.Method != nil {
			name = g.Method.Name
		}
		var container ir.Symbol
		if g.Receiver != nil && g.Receiver.Kind == bound.KindTypeExpression {
			container = f.typ(g.Receiver.Type)
		}
		callee = ir.New(f.info(g), &ir.DynamicMemberReference{
			Instance:       f.createReceiver(g.Receiver, nil),
			MemberName:     name,
			TypeArguments:  f.types(g.TypeArguments),
			ContainingType: container,
		})
	} else {
		callee = f.Create(n.Receiver)
	}
	args, names, refs := f.dynamicArguments(n.Arguments)
	return ir.New(f.info(n), &ir.DynamicInvocation{
		Operation:        callee,
		Arguments:        args,
		ArgumentNames:    names,
		ArgumentRefKinds: refs,
	})
}

// dynamicArguments translates late-bound arguments in source order. Names
// and ref kinds are nil unless at least one argument has one.
func (f *Factory) dynamicArguments(args []*bound.Node) ([]ir.Operation, []string, []ir.RefKind) {
	if len(args) == 0 {
		return nil, nil, nil
	}
	ops := make([]ir.Operation, len(args))
	names := make([]string, len(args))
	refs := make([]ir.RefKind, len(args))
	var named, byRef bool
	for i, a := range args {
		ops[i] = f.Create(a)
		names[i] = a.ArgumentName
		refs[i] = a.ArgumentRefKind
		named = named || a.ArgumentName != ""
		byRef = byRef || a.ArgumentRefKind != ir.RefNone
	}
	if !named {
		names = nil
	}
	if !byRef {
		refs = nil
	}
	return ops, names, refs
}
