package operations

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
	"github.com/roach88/opflow/internal/testutil"
)

// at builds syntax with an explicit span so golden output does not depend
// on allocation order.
func at(kind, text string, start int) *ir.Syntax {
	return ir.NewSyntax(kind, text, ir.Span{Start: start, End: start + len(text)})
}

func TestFormat_SimpleAssignmentGolden(t *testing.T) {
	b := testutil.NewTree()
	x := b.LocalSymbol("x", b.IntType)

	one := &bound.Node{Kind: bound.KindLiteral, Syntax: at("NumericLiteralExpression", "1", 4), Type: b.IntType, Constant: ir.Int(1)}
	two := &bound.Node{Kind: bound.KindLiteral, Syntax: at("NumericLiteralExpression", "2", 8), Type: b.IntType, Constant: ir.Int(2)}
	sum := &bound.Node{Kind: bound.KindBinaryOperator, Syntax: at("AddExpression", "1 + 2", 4), Type: b.IntType, OperatorKind: "Addition", Left: one, Right: two}
	target := &bound.Node{Kind: bound.KindLocal, Syntax: at("IdentifierName", "x", 0), Type: b.IntType, Local: x}
	assign := &bound.Node{Kind: bound.KindAssignmentOperator, Syntax: at("SimpleAssignmentExpression", "x = 1 + 2", 0), Type: b.IntType, Left: target, Right: sum}
	stmt := &bound.Node{Kind: bound.KindExpressionStatement, Syntax: at("ExpressionStatement", "x = 1 + 2;", 0), Operand: assign}

	op := newFactory(t, b).Create(stmt)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "simple_assignment", []byte(ir.Format(op)))
}
