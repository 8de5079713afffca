package operations

import (
	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// Binder operator names, as they appear in bound trees, mapped to the
// public operator kinds. Checked and lifted variants are carried as flags
// on the node, not in the name.
var binaryOperators = map[string]ir.BinaryOperatorKind{
	"Addition":           ir.BinaryAdd,
	"Subtraction":        ir.BinarySubtract,
	"Multiplication":     ir.BinaryMultiply,
	"Division":           ir.BinaryDivide,
	"Remainder":          ir.BinaryRemainder,
	"LeftShift":          ir.BinaryLeftShift,
	"RightShift":         ir.BinaryRightShift,
	"UnsignedRightShift": ir.BinaryUnsignedRightShift,
	"And":                ir.BinaryAnd,
	"Or":                 ir.BinaryOr,
	"Xor":                ir.BinaryExclusiveOr,
	"LogicalAnd":         ir.BinaryConditionalAnd,
	"LogicalOr":          ir.BinaryConditionalOr,
	"Equal":              ir.BinaryEquals,
	"NotEqual":           ir.BinaryNotEquals,
	"LessThan":           ir.BinaryLessThan,
	"LessThanOrEqual":    ir.BinaryLessThanOrEqual,
	"GreaterThanOrEqual": ir.BinaryGreaterThanOrEqual,
	"GreaterThan":        ir.BinaryGreaterThan,
}

var unaryOperators = map[string]ir.UnaryOperatorKind{
	"UnaryPlus":    ir.UnaryPlus,
	"UnaryMinus":   ir.UnaryMinus,
	"LogicalNot":   ir.UnaryNot,
	"BitwiseNot":   ir.UnaryBitwiseNegation,
	"True":         ir.UnaryTrue,
	"False":        ir.UnaryFalse,
	"IndexFromEnd": ir.UnaryHat,
}

// BinaryOperatorNames lists the operator names accepted in bound trees.
func BinaryOperatorNames() []string {
	out := make([]string, 0, len(binaryOperators))
	for k := range binaryOperators {
		out = append(out, k)
	}
	return out
}

func (f *Factory) binaryKind(n *bound.Node) ir.BinaryOperatorKind {
	k, ok := binaryOperators[n.OperatorKind]
	if !ok {
		panic(ir.Contractf("operations", "%s has unknown binary operator %q", n.Kind, n.OperatorKind))
	}
	return k
}

func (f *Factory) unaryKind(n *bound.Node) ir.UnaryOperatorKind {
	k, ok := unaryOperators[n.OperatorKind]
	if !ok {
		panic(ir.Contractf("operations", "%s has unknown unary operator %q", n.Kind, n.OperatorKind))
	}
	return k
}

// userDefinedMethod keeps the operator method only when the binder
// actually resolved a user-defined operator.
func (f *Factory) userDefinedMethod(n *bound.Node) ir.Symbol {
	if n.Method == nil || n.Method.MethodKind != bound.MethodUserDefinedOperator {
		return nil
	}
	return f.symbol(n.Method)
}
