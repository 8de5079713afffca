package bound

import "github.com/roach88/opflow/internal/ir"

// Node is one node of the bound tree.
//
// Field usage by kind (fields not listed are ignored):
//
//	Call                     Receiver, Method, Arguments, ArgsToParams, DefaultArguments, Expanded, ResultKind
//	ObjectCreationExpression Method (constructor), Arguments, ArgsToParams, DefaultArguments, Expanded, Initializer, ResultKind
//	IndexerAccess            Receiver, Member, Arguments, ArgsToParams, DefaultArguments, Expanded, ResultKind
//	FieldAccess/PropertyAccess/EventAccess  Receiver, Member, ResultKind
//	MethodGroup              Receiver, Method (first candidate), MemberName, TypeArguments, ResultKind
//	Conversion               Operand, ConversionKind, Method (user-defined operator), Checked
//	UnaryOperator/BinaryOperator/CompoundAssignmentOperator  OperatorKind, Operand or Left/Right, Method, Lifted, Checked
//	IncrementOperator        Operand, OperatorKind (PrefixIncrement, PostfixIncrement, PrefixDecrement, PostfixDecrement)
//	Local/Parameter          Local, DeclarationKind, Designation
//	IfStatement/ConditionalOperator  Condition, Consequence, Alternative
//	WhileStatement/DoStatement  Condition, Body, Locals, ContinueLabel, BreakLabel
//	ForStatement             Initializers, Condition, Increments, Body, Locals, ContinueLabel, BreakLabel
//	ForEachStatement         Local (iteration variable), Operand (collection), Body, Method (GetEnumerator), IsAsync
//	SwitchStatement          Operand, Sections (SwitchSection{Labels, Statements}), BreakLabel
//	TryStatement             Body, Sections (CatchBlock), Finally
//	patterns                 InputType, NarrowedType, MatchedType, Local (declared), Subpatterns, Properties
//
// Argument expressions additionally carry ArgumentName, ArgumentRefKind and
// ArgumentSyntax describing how they were written at the call site.
type Node struct {
	Kind              Kind
	Syntax            *ir.Syntax
	Type              *Type
	Constant          ir.Value
	CompilerGenerated bool

	Receiver    *Node
	Operand     *Node
	Left        *Node
	Right       *Node
	Condition   *Node
	Consequence *Node
	Alternative *Node
	Body        *Node
	Initializer *Node
	Pattern     *Node
	Guard       *Node
	Finally     *Node
	Filter      *Node
	Alignment   *Node
	Format      *Node

	Arguments    []*Node
	Statements   []*Node
	Initializers []*Node
	Increments   []*Node
	Sections     []*Node
	Labels       []*Node
	Subpatterns  []*Node
	Properties   []*Node

	ArgsToParams     []int
	DefaultArguments []bool
	Expanded         bool
	ResultKind       ResultKind

	ArgumentName    string
	ArgumentRefKind ir.RefKind
	ArgumentSyntax  *ir.Syntax

	Method        *Symbol
	Member        *Symbol
	Local         *Symbol
	Label         *Symbol
	ContinueLabel *Symbol
	BreakLabel    *Symbol
	Locals        []*Symbol
	Members       []*Symbol

	TypeOperand   *Type
	MatchedType   *Type
	InputType     *Type
	NarrowedType  *Type
	NaturalType   *Type
	TypeArguments []*Type

	OperatorKind   string
	ConversionKind ConversionKind
	Checked        bool
	Lifted         bool
	IsRef          bool
	IsAsync        bool
	IsNegated      bool
	IsAddition     bool
	IsVar          bool

	DeclarationKind DeclarationKind
	Designation     *ir.Syntax

	MemberName string
}

// IsViable reports whether lookup/overload resolution succeeded.
func (n *Node) IsViable() bool {
	return n.ResultKind == ResultViable
}

// HasErrors reports whether n is an error placeholder: a bad node, or an
// expression whose type is the error type.
func (n *Node) HasErrors() bool {
	if n == nil {
		return false
	}
	return n.Kind == KindBadExpression || n.Kind == KindBadStatement || n.Type.IsError()
}

// Children returns every non-nil child node in field order. It is used by
// generic passes (None passthrough, fixture validation) that do not know a
// kind's shape.
func (n *Node) Children() []*Node {
	var out []*Node
	one := func(c *Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	many := func(cs []*Node) {
		for _, c := range cs {
			one(c)
		}
	}
	one(n.Receiver)
	one(n.Operand)
	one(n.Left)
	one(n.Right)
	many(n.Initializers)
	one(n.Condition)
	one(n.Consequence)
	one(n.Alternative)
	many(n.Arguments)
	one(n.Initializer)
	one(n.Pattern)
	many(n.Subpatterns)
	many(n.Properties)
	one(n.Guard)
	many(n.Labels)
	many(n.Statements)
	one(n.Body)
	many(n.Increments)
	many(n.Sections)
	one(n.Filter)
	one(n.Finally)
	one(n.Alignment)
	one(n.Format)
	return out
}

// Walk visits n and its descendants in pre-order, iteratively.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(top) {
			continue
		}
		children := top.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}
