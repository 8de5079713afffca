package ir

// Operation is a node of the Operation Tree.
//
// The interface is sealed: only the variant types in this package
// implement it. Switch on the concrete type (or on Kind) to inspect a node.
type Operation interface {
	// Kind identifies the variant.
	Kind() OperationKind

	// Syntax is the source node this operation was produced from.
	Syntax() *Syntax

	// Type is the result type, or nil for statements and typeless
	// expressions.
	Type() Symbol

	// ConstantValue is the compile-time constant, or nil when the
	// operation is not constant. A constant null is Null{}, not nil.
	ConstantValue() Value

	// IsGenerated reports whether the node was synthesized by the compiler
	// rather than written by the user.
	IsGenerated() bool

	// IsImplicit reports whether the node has no explicit source
	// representation of its own. It is true when the node is generated, or
	// when it shares its syntax with its parent, whether or not the parent
	// is itself implicit. A missing syntax is never shared. For any syntax
	// node at most one explicit Operation exists along a parent chain.
	IsImplicit() bool

	// Parent is the owning operation, or nil for a root.
	Parent() Operation

	// Children lists the direct child operations in evaluation order,
	// skipping absent optional children.
	Children() []Operation

	header() *node
}

// Info carries the attributes shared by every Operation.
type Info struct {
	Syntax    *Syntax
	Type      Symbol
	Constant  Value
	Generated bool
}

// node is the header embedded in every variant.
type node struct {
	syntax    *Syntax
	typ       Symbol
	constant  Value
	generated bool
	parent    Operation
	sealed    bool
}

func (n *node) header() *node { return n }
func (n *node) Syntax() *Syntax { return n.syntax }
func (n *node) Type() Symbol { return n.typ }
func (n *node) ConstantValue() Value { return n.constant }
func (n *node) IsGenerated() bool { return n.generated }
func (n *node) Parent() Operation { return n.parent }

func (n *node) IsImplicit() bool {
	if n.generated {
		return true
	}
	if n.parent == nil || n.syntax == nil {
		return false
	}
	return n.parent.Syntax() == n.syntax
}

// deferred marks variants whose children are materialized lazily. New
// does not adopt their children; the lazy cell does on first access.
type deferred interface {
	deferredChildren()
}

// New seals op with the shared attributes in info and adopts every
// eager child, making op their parent.
//
// CRITICAL: an operation may be sealed once and parented once. Passing an
// already-sealed operation, or a child that already has a parent, panics
// with a *ContractError.
func New[T Operation](info Info, op T) T {
	h := op.header()
	if h.sealed {
		panic(Contractf("ir", "%s constructed twice", op.Kind()))
	}
	h.syntax = info.Syntax
	h.typ = info.Type
	h.constant = info.Constant
	h.generated = info.Generated
	h.sealed = true
	if _, lazy := any(op).(deferred); lazy {
		return op
	}
	for _, c := range op.Children() {
		adopt(op, c)
	}
	return op
}

// adopt makes parent the parent of child. child must be unparented.
func adopt(parent, child Operation) {
	h := child.header()
	if h.parent != nil {
		panic(Contractf("ir", "%s already has a parent (%s), cannot attach to %s",
			child.Kind(), h.parent.Kind(), parent.Kind()))
	}
	if !h.sealed {
		panic(Contractf("ir", "%s attached before construction", child.Kind()))
	}
	h.parent = parent
}

// child is the constraint for optional child fields. comparable lets the
// helpers detect typed nil pointers.
type child interface {
	comparable
	Operation
}

func add[T child](dst []Operation, op T) []Operation {
	var zero T
	if op == zero {
		return dst
	}
	return append(dst, op)
}

func addAll[T child](dst []Operation, ops []T) []Operation {
	for _, op := range ops {
		dst = add(dst, op)
	}
	return dst
}

// Root walks parents up to the root of op's tree.
func Root(op Operation) Operation {
	for op != nil && op.Parent() != nil {
		op = op.Parent()
	}
	return op
}
