package testutil

import (
	"fmt"

	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// Tree builds bound trees for tests. Every node it creates gets its own
// syntax node with a fresh span, so no two builder nodes share syntax
// unless a test shares it explicitly.
type Tree struct {
	Spans *SpanAllocator
	Model *bound.Model

	IntType        *bound.Type
	BoolType       *bound.Type
	StringType     *bound.Type
	VoidType       *bound.Type
	ObjectType     *bound.Type
	DisposableType *bound.Type
}

// NewTree creates a builder with a model that knows System.IDisposable.
func NewTree() *Tree {
	disposable := &bound.Type{Name: "System.IDisposable", Kind: bound.TypeInterface}
	return &Tree{
		Spans:          NewSpanAllocator(),
		Model:          bound.NewModel(map[string]*bound.Type{"System.IDisposable": disposable}),
		IntType:        &bound.Type{Name: "int", Kind: bound.TypeStruct},
		BoolType:       &bound.Type{Name: "bool", Kind: bound.TypeStruct},
		StringType:     &bound.Type{Name: "string", Kind: bound.TypeClass},
		VoidType:       &bound.Type{Name: "void", Kind: bound.TypeStruct},
		ObjectType:     &bound.Type{Name: "object", Kind: bound.TypeClass},
		DisposableType: disposable,
	}
}

// Syntax allocates a syntax node of the given kind over text.
func (b *Tree) Syntax(kind, text string) *ir.Syntax {
	return &ir.Syntax{Kind: kind, Text: text, Span: b.Spans.Next(len(text))}
}

// Node creates a bound node of kind with fresh syntax.
func (b *Tree) Node(kind bound.Kind, t *bound.Type) *bound.Node {
	return &bound.Node{Kind: kind, Syntax: b.Syntax(kind.String(), kind.String()), Type: t}
}

// Int is an int literal.
func (b *Tree) Int(v int) *bound.Node {
	n := b.Node(bound.KindLiteral, b.IntType)
	n.Syntax.Text = fmt.Sprint(v)
	n.Constant = ir.Int(v)
	return n
}

// Bool is a bool literal.
func (b *Tree) Bool(v bool) *bound.Node {
	n := b.Node(bound.KindLiteral, b.BoolType)
	n.Constant = ir.Bool(v)
	return n
}

// Str is a string literal.
func (b *Tree) Str(v string) *bound.Node {
	n := b.Node(bound.KindLiteral, b.StringType)
	n.Constant = ir.String(v)
	return n
}

// LocalSymbol declares a local variable.
func (b *Tree) LocalSymbol(name string, t *bound.Type) *bound.Symbol {
	return &bound.Symbol{Kind: ir.SymbolKindLocal, Name: name, Type: t}
}

// Param declares a parameter.
func (b *Tree) Param(name string, t *bound.Type) *bound.Symbol {
	return &bound.Symbol{Kind: ir.SymbolKindParameter, Name: name, Type: t}
}

// OptionalParam declares a parameter with a constant default.
func (b *Tree) OptionalParam(name string, t *bound.Type, def ir.Value) *bound.Symbol {
	p := b.Param(name, t)
	p.HasDefault = true
	p.Default = def
	return p
}

// Method declares a static method of type C.
func (b *Tree) Method(name string, ret *bound.Type, params ...*bound.Symbol) *bound.Symbol {
	return &bound.Symbol{
		Kind:           ir.SymbolKindMethod,
		Name:           name,
		Type:           ret,
		ContainingType: &bound.Type{Name: "C", Kind: bound.TypeClass},
		Parameters:     params,
		IsStatic:       true,
	}
}

// LabelSymbol declares a label.
func (b *Tree) LabelSymbol(name string) *bound.Symbol {
	return &bound.Symbol{Kind: ir.SymbolKindLabel, Name: name}
}

// Local references a local.
func (b *Tree) Local(s *bound.Symbol) *bound.Node {
	n := b.Node(bound.KindLocal, s.Type)
	n.Syntax.Text = s.Name
	n.Local = s
	return n
}

// Call invokes method on receiver (nil for static) with positional
// arguments.
func (b *Tree) Call(method *bound.Symbol, receiver *bound.Node, args ...*bound.Node) *bound.Node {
	n := b.Node(bound.KindCall, method.Type)
	n.Syntax.Text = method.Name + "(...)"
	n.Method = method
	n.Receiver = receiver
	n.Arguments = args
	return n
}

// Binary applies a binder operator name ("Addition", "LessThan", ...).
func (b *Tree) Binary(op string, t *bound.Type, left, right *bound.Node) *bound.Node {
	n := b.Node(bound.KindBinaryOperator, t)
	n.OperatorKind = op
	n.Left = left
	n.Right = right
	return n
}

// Assign is "left = right".
func (b *Tree) Assign(left, right *bound.Node) *bound.Node {
	n := b.Node(bound.KindAssignmentOperator, left.Type)
	n.Left = left
	n.Right = right
	return n
}

// Stmt wraps an expression in an expression statement.
func (b *Tree) Stmt(e *bound.Node) *bound.Node {
	n := b.Node(bound.KindExpressionStatement, nil)
	n.Operand = e
	return n
}

// Block is "{ statements }".
func (b *Tree) Block(statements ...*bound.Node) *bound.Node {
	n := b.Node(bound.KindBlock, nil)
	n.Statements = statements
	return n
}

// If is "if (cond) then else alt"; alt may be nil.
func (b *Tree) If(cond, then, alt *bound.Node) *bound.Node {
	n := b.Node(bound.KindIfStatement, nil)
	n.Condition = cond
	n.Consequence = then
	n.Alternative = alt
	return n
}

// While is "while (cond) body" with fresh continue and break labels.
func (b *Tree) While(cond, body *bound.Node) *bound.Node {
	n := b.Node(bound.KindWhileStatement, nil)
	n.Condition = cond
	n.Body = body
	n.ContinueLabel = b.LabelSymbol("continue")
	n.BreakLabel = b.LabelSymbol("break")
	return n
}

// Do is "do body while (cond)".
func (b *Tree) Do(body, cond *bound.Node) *bound.Node {
	n := b.While(cond, body)
	n.Kind = bound.KindDoStatement
	return n
}

// For is "for (init; cond; incr) body"; cond may be nil.
func (b *Tree) For(init []*bound.Node, cond *bound.Node, incr []*bound.Node, body *bound.Node) *bound.Node {
	n := b.While(cond, body)
	n.Kind = bound.KindForStatement
	n.Initializers = init
	n.Increments = incr
	return n
}

// Break jumps to label.
func (b *Tree) Break(label *bound.Symbol) *bound.Node {
	n := b.Node(bound.KindBreakStatement, nil)
	n.Label = label
	return n
}

// Continue jumps to label.
func (b *Tree) Continue(label *bound.Symbol) *bound.Node {
	n := b.Node(bound.KindContinueStatement, nil)
	n.Label = label
	return n
}

// Goto jumps to label.
func (b *Tree) Goto(label *bound.Symbol) *bound.Node {
	n := b.Node(bound.KindGotoStatement, nil)
	n.Label = label
	return n
}

// Labeled is "label: body"; body may be nil.
func (b *Tree) Labeled(label *bound.Symbol, body *bound.Node) *bound.Node {
	n := b.Node(bound.KindLabeledStatement, nil)
	n.Label = label
	n.Body = body
	return n
}

// Return is "return value"; value may be nil.
func (b *Tree) Return(value *bound.Node) *bound.Node {
	n := b.Node(bound.KindReturnStatement, nil)
	n.Operand = value
	return n
}

// Throw is "throw value".
func (b *Tree) Throw(value *bound.Node) *bound.Node {
	n := b.Node(bound.KindThrowStatement, nil)
	n.Operand = value
	return n
}

// Declare is "T name = init"; init may be nil.
func (b *Tree) Declare(s *bound.Symbol, init *bound.Node) *bound.Node {
	n := b.Node(bound.KindLocalDeclaration, nil)
	n.Syntax.Text = s.Name
	n.Local = s
	n.Initializer = init
	return n
}
