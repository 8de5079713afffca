package operations

import (
	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// isBinary reports whether n participates in left-spine flattening.
func isBinary(n *bound.Node) bool {
	return n != nil && (n.Kind == bound.KindBinaryOperator || n.Kind == bound.KindUserDefinedConditionalLogicalOperator)
}

// createBinaryChain translates a left-nested chain of binary operators
// without recursing on the left operand.
//
// CRITICAL: generated code produces chains of thousands of terms
// ("a + b + c + ..."). The left spine is pushed onto an explicit stack,
// the innermost left operand is translated once, and the stack is popped
// translating each right operand and folding the accumulator in as the
// left operand. The result is the same tree naive recursion would build.
func (f *Factory) createBinaryChain(root *bound.Node) ir.Operation {
	var stack []*bound.Node
	cur := root
	for isBinary(cur) {
		stack = append(stack, cur)
		cur = cur.Left
	}

	left := f.Create(cur)
	for i := len(stack) - 1; i >= 0; i-- {
		n := stack[i]
		left = f.createBinary(n, left, f.Create(n.Right))
	}
	return left
}

func (f *Factory) createBinary(n *bound.Node, left, right ir.Operation) ir.Operation {
	kind := f.binaryKind(n)
	if n.Kind == bound.KindUserDefinedConditionalLogicalOperator {
		return ir.New(f.info(n), &ir.Binary{
			OperatorKind:   kind,
			Left:           left,
			Right:          right,
			OperatorMethod: f.symbol(n.Method),
		})
	}
	return ir.New(f.info(n), &ir.Binary{
		OperatorKind:   kind,
		Left:           left,
		Right:          right,
		IsLifted:       n.Lifted,
		IsChecked:      n.Checked,
		OperatorMethod: f.userDefinedMethod(n),
	})
}

// createUnary translates a unary operator.
func (f *Factory) createUnary(n *bound.Node) ir.Operation {
	return ir.New(f.info(n), &ir.Unary{
		OperatorKind:   f.unaryKind(n),
		Operand:        f.Create(n.Operand),
		IsLifted:       n.Lifted,
		IsChecked:      n.Checked,
		OperatorMethod: f.userDefinedMethod(n),
	})
}

// createIncrement translates ++ and -- in both positions.
func (f *Factory) createIncrement(n *bound.Node) ir.Operation {
	op := &ir.Increment{
		Target:         f.Create(n.Operand),
		IsLifted:       n.Lifted,
		IsChecked:      n.Checked,
		OperatorMethod: f.userDefinedMethod(n),
	}
	switch n.OperatorKind {
	case "PrefixIncrement":
	case "PostfixIncrement":
		op.IsPostfix = true
	case "PrefixDecrement":
		op.IsDecrement = true
	case "PostfixDecrement":
		op.IsDecrement = true
		op.IsPostfix = true
	default:
		panic(ir.Contractf("operations", "IncrementOperator has unknown operator %q", n.OperatorKind))
	}
	return ir.New(f.info(n), op)
}

// createCompoundAssignment translates "target op= value". ConversionKind
// on the bound node is the conversion of the operator result back to the
// target's type; the operand side is always an identity.
func (f *Factory) createCompoundAssignment(n *bound.Node) ir.Operation {
	target := f.Create(n.Left)
	value := f.Create(n.Right)
	return ir.New(f.info(n), &ir.CompoundAssignment{
		OperatorKind:   f.binaryKind(n),
		Target:         target,
		Value:          value,
		InConversion:   commonConversion(bound.ConversionIdentity),
		OutConversion:  commonConversion(n.ConversionKind),
		IsLifted:       n.Lifted,
		IsChecked:      n.Checked,
		OperatorMethod: f.userDefinedMethod(n),
	})
}

// createAssignment translates "=". Inside an object initializer,
// "Member = { ... }" is a MemberInitializer rather than an assignment.
func (f *Factory) createAssignment(n *bound.Node) ir.Operation {
	if n.Left != nil && n.Left.Kind == bound.KindObjectInitializerMember && n.Right != nil &&
		(n.Right.Kind == bound.KindObjectInitializerExpression || n.Right.Kind == bound.KindCollectionInitializerExpression) {
		return f.createMemberInitializer(n)
	}
	return ir.New(f.info(n), &ir.SimpleAssignment{
		Target: f.Create(n.Left),
		Value:  f.Create(n.Right),
		IsRef:  n.IsRef,
	})
}

// createEventAssignment translates "+=" / "-=" on an event.
func (f *Factory) createEventAssignment(n *bound.Node) ir.Operation {
	if n.Member == nil {
		panic(ir.Contractf("operations", "EventAssignmentOperator without an event symbol"))
	}
	ref := ir.New(f.generated(n.Syntax, n.Member.Type, nil), &ir.EventReference{
		Instance: f.createReceiver(n.Receiver, n.Member),
		Event:    f.symbol(n.Member),
	})
	return ir.New(f.info(n), &ir.EventAssignment{
		EventReference: ref,
		HandlerValue:   f.Create(n.Operand),
		Adds:           n.IsAddition,
	})
}
