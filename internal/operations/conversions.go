package operations

import (
	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// commonConversion describes a binder conversion kind in language-neutral
// terms. The user-defined operator symbol is attached by the caller.
func commonConversion(k bound.ConversionKind) ir.CommonConversion {
	if k == bound.ConversionNone {
		return ir.CommonConversion{}
	}
	return ir.CommonConversion{
		Exists:        true,
		IsIdentity:    k == bound.ConversionIdentity,
		IsNumeric:     k == bound.ConversionImplicitNumeric || k == bound.ConversionExplicitNumeric,
		IsReference:   k == bound.ConversionImplicitReference || k == bound.ConversionExplicitReference,
		IsNullable:    k == bound.ConversionImplicitNullable || k == bound.ConversionExplicitNullable,
		IsImplicit:    k.IsImplicit(),
		IsUserDefined: k.IsUserDefined(),
	}
}

// identityConversion is the in/out conversion of an argument passed as is.
var identityConversion = commonConversion(bound.ConversionIdentity)

// createConversion translates a conversion node.
//
// A conversion sharing its operand's syntax was inserted by the binder
// (nothing in the source spells it) and is marked generated. Method-group
// and lambda conversions become delegate creations; the resolved operator
// method is kept only for genuine user-defined conversions.
func (f *Factory) createConversion(n *bound.Node) ir.Operation {
	operand := n.Operand
	if operand == nil {
		panic(ir.Contractf("operations", "Conversion without an operand"))
	}
	info := f.info(n)
	if n.Syntax == operand.Syntax {
		info.Generated = true
	}

	switch n.ConversionKind {
	case bound.ConversionMethodGroup:
		return ir.New(info, &ir.DelegateCreation{Target: f.methodReference(operand, n.Method)})
	case bound.ConversionAnonymousFunction:
		return ir.New(info, &ir.DelegateCreation{Target: f.Create(operand)})
	}

	conv := commonConversion(n.ConversionKind)
	var method ir.Symbol
	if n.ConversionKind.IsUserDefined() {
		if n.Method == nil {
			panic(ir.Contractf("operations", "user-defined conversion without an operator method"))
		}
		method = f.symbol(n.Method)
		conv.MethodSymbol = method
	}
	return ir.New(info, &ir.Conversion{
		Operand:        f.Create(operand),
		Conversion:     conv,
		OperatorMethod: method,
		IsChecked:      n.Checked,
	})
}

// createAsOperator translates "value as T" into a try-cast conversion.
func (f *Factory) createAsOperator(n *bound.Node) ir.Operation {
	return ir.New(f.info(n), &ir.Conversion{
		Operand:    f.Create(n.Operand),
		Conversion: commonConversion(n.ConversionKind),
		IsTryCast:  true,
	})
}

// createDelegateCreation translates "new D(target)".
func (f *Factory) createDelegateCreation(n *bound.Node) ir.Operation {
	var target ir.Operation
	if n.Operand != nil && n.Operand.Kind == bound.KindMethodGroup {
		target = f.methodReference(n.Operand, n.Method)
	} else {
		target = f.Create(n.Operand)
	}
	return ir.New(f.info(n), &ir.DelegateCreation{Target: target})
}

// methodReference builds the MethodReference for a method group converted
// to a delegate. resolved is the method chosen by the conversion; it falls
// back to the group's first candidate.
func (f *Factory) methodReference(group *bound.Node, resolved *bound.Symbol) ir.Operation {
	method := resolved
	if method == nil {
		method = group.Method
	}
	if method == nil {
		return f.invalid(group, group.Receiver, nil)
	}
	info := f.info(group)
	info.Type = nil
	return ir.New(info, &ir.MethodReference{
		Instance:  f.createReceiver(group.Receiver, method),
		Method:    f.symbol(method),
		IsVirtual: isVirtual(method, group.Receiver),
	})
}
