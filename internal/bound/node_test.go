package bound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opflow/internal/ir"
)

func TestParseKindRoundTrip(t *testing.T) {
	for k := KindLiteral; k < KindCount; k++ {
		got, ok := ParseKind(k.String())
		require.True(t, ok, "kind %d (%s) does not parse", k, k)
		assert.Equal(t, k, got)
	}

	_, ok := ParseKind("NoSuchKind")
	assert.False(t, ok)
	assert.Equal(t, "Kind(?)", KindCount.String())
}

func TestChildrenFieldOrder(t *testing.T) {
	cond := &Node{Kind: KindLocal}
	then := &Node{Kind: KindBlock}
	els := &Node{Kind: KindBlock}
	n := &Node{Kind: KindIfStatement, Condition: cond, Consequence: then, Alternative: els}

	assert.Equal(t, []*Node{cond, then, els}, n.Children())
	assert.Empty(t, (&Node{Kind: KindLiteral}).Children())
}

func TestWalkPreOrderAndPrune(t *testing.T) {
	left := &Node{Kind: KindLiteral}
	right := &Node{Kind: KindLiteral}
	bin := &Node{Kind: KindBinaryOperator, Left: left, Right: right}
	stmt := &Node{Kind: KindExpressionStatement, Operand: bin}
	root := &Node{Kind: KindBlock, Statements: []*Node{stmt}}

	var seen []*Node
	Walk(root, func(n *Node) bool {
		seen = append(seen, n)
		return true
	})
	assert.Equal(t, []*Node{root, stmt, bin, left, right}, seen)

	seen = nil
	Walk(root, func(n *Node) bool {
		seen = append(seen, n)
		return n.Kind != KindBinaryOperator
	})
	assert.Equal(t, []*Node{root, stmt, bin}, seen)

	Walk(nil, func(*Node) bool {
		t.Fatal("visited nil root")
		return false
	})
}

func TestHasErrors(t *testing.T) {
	errType := &Type{Name: "?", Kind: TypeError}

	var nilNode *Node
	assert.False(t, nilNode.HasErrors())
	assert.True(t, (&Node{Kind: KindBadExpression}).HasErrors())
	assert.True(t, (&Node{Kind: KindLocal, Type: errType}).HasErrors())
	assert.False(t, (&Node{Kind: KindLocal, Type: &Type{Name: "int", Kind: TypeStruct}}).HasErrors())
}

func TestTypeImplements(t *testing.T) {
	disposable := &Type{Name: "System.IDisposable", Kind: TypeInterface}
	stream := &Type{Name: "Stream", Kind: TypeClass, Interfaces: []*Type{disposable}}

	assert.True(t, stream.Implements(disposable))
	assert.True(t, disposable.Implements(disposable))
	assert.False(t, disposable.Implements(stream))
	assert.False(t, (*Type)(nil).Implements(disposable))
}

func TestConversionKindClassification(t *testing.T) {
	assert.True(t, ConversionImplicitUserDefined.IsUserDefined())
	assert.False(t, ConversionBoxing.IsUserDefined())
	assert.True(t, ConversionBoxing.IsImplicit())
	assert.False(t, ConversionExplicitNumeric.IsImplicit())
	assert.False(t, ConversionNone.IsImplicit())
}

func TestSymbolString(t *testing.T) {
	intType := &Type{Name: "int", Kind: TypeStruct}
	owner := &Type{Name: "Program", Kind: TypeClass}

	m := &Symbol{
		Kind:           ir.SymbolKindMethod,
		Name:           "Add",
		ContainingType: owner,
		Parameters:     []*Symbol{{Kind: ir.SymbolKindParameter, Name: "a", Type: intType}, {Kind: ir.SymbolKindParameter, Name: "b", Type: intType}},
	}
	assert.Equal(t, "Program.Add(int, int)", m.String())
	assert.Equal(t, "Program.count", (&Symbol{Kind: ir.SymbolKindField, Name: "count", ContainingType: owner}).String())
	assert.Equal(t, "x", (&Symbol{Kind: ir.SymbolKindLocal, Name: "x"}).String())
	assert.Equal(t, "<none>", (*Symbol)(nil).String())
}

func TestModelHandlesAreStable(t *testing.T) {
	disposable := &Type{Name: "System.IDisposable", Kind: TypeInterface}
	m := NewModel(map[string]*Type{"System.IDisposable": disposable})

	assert.Same(t, disposable, m.WellKnownType("System.IDisposable"))
	assert.Nil(t, m.WellKnownType("System.Missing"))

	local := &Symbol{Kind: ir.SymbolKindLocal, Name: "x"}
	h1 := m.PublicSymbol(local)
	h2 := m.PublicSymbol(local)
	assert.Equal(t, h1, h2)
	assert.Equal(t, "x", h1.Name())
	assert.Equal(t, ir.SymbolKindLocal, h1.SymbolKind())
	assert.Same(t, local, Underlying(h1))
	assert.Nil(t, m.PublicSymbol(nil))

	th := m.PublicType(disposable)
	assert.Equal(t, ir.SymbolKindType, th.SymbolKind())
	assert.Same(t, disposable, UnderlyingType(th))
	assert.Nil(t, Underlying(th))
	assert.Nil(t, UnderlyingType(h1))
}
