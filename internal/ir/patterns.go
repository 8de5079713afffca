package ir

// Pattern is an Operation that tests an input value. InputType is the
// static type of the value being matched; NarrowedType is the type the
// value is known to have once the pattern succeeds.
type Pattern interface {
	Operation
	InputType() Symbol
	NarrowedType() Symbol
}

// PatternTypes carries the types shared by every pattern variant.
type PatternTypes struct {
	Input    Symbol
	Narrowed Symbol
}

func (p PatternTypes) InputType() Symbol    { return p.Input }
func (p PatternTypes) NarrowedType() Symbol { return p.Narrowed }

// ConstantPattern matches a constant value.
type ConstantPattern struct {
	node
	PatternTypes
	Value Operation
}

func (*ConstantPattern) Kind() OperationKind     { return KindConstantPattern }
func (p *ConstantPattern) Children() []Operation { return add(nil, p.Value) }

// DeclarationPattern is "T x" or "var x". MatchesNull is set for "var".
type DeclarationPattern struct {
	node
	PatternTypes
	MatchedType    Symbol
	MatchesNull    bool
	DeclaredSymbol Symbol
}

func (*DeclarationPattern) Kind() OperationKind   { return KindDeclarationPattern }
func (*DeclarationPattern) Children() []Operation { return nil }

// TypePattern matches on type alone.
type TypePattern struct {
	node
	PatternTypes
	MatchedType Symbol
}

func (*TypePattern) Kind() OperationKind   { return KindTypePattern }
func (*TypePattern) Children() []Operation { return nil }

// DiscardPattern is "_"; it always matches.
type DiscardPattern struct {
	node
	PatternTypes
}

func (*DiscardPattern) Kind() OperationKind   { return KindDiscardPattern }
func (*DiscardPattern) Children() []Operation { return nil }

// RecursivePattern is "T (a, b) { P: p } x".
type RecursivePattern struct {
	node
	PatternTypes
	MatchedType               Symbol
	DeconstructSymbol         Symbol
	DeconstructionSubpatterns []Pattern
	PropertySubpatterns       []*PropertySubpattern
	DeclaredSymbol            Symbol
}

func (*RecursivePattern) Kind() OperationKind { return KindRecursivePattern }
func (p *RecursivePattern) Children() []Operation {
	return addAll(addAll(nil, p.DeconstructionSubpatterns), p.PropertySubpatterns)
}

// PropertySubpattern is "Member: pattern" inside a recursive pattern.
// Member is a member reference whose instance is the pattern input.
type PropertySubpattern struct {
	node
	Member  Operation
	Pattern Pattern
}

func (*PropertySubpattern) Kind() OperationKind { return KindPropertySubpattern }
func (p *PropertySubpattern) Children() []Operation {
	return add(add(nil, p.Member), p.Pattern)
}

// RelationalPattern is "< value" and friends.
type RelationalPattern struct {
	node
	PatternTypes
	OperatorKind BinaryOperatorKind
	Value        Operation
}

func (*RelationalPattern) Kind() OperationKind     { return KindRelationalPattern }
func (p *RelationalPattern) Children() []Operation { return add(nil, p.Value) }

// BinaryPattern is "left and right" or "left or right".
type BinaryPattern struct {
	node
	PatternTypes
	OperatorKind BinaryOperatorKind
	Left         Pattern
	Right        Pattern
}

func (*BinaryPattern) Kind() OperationKind { return KindBinaryPattern }
func (p *BinaryPattern) Children() []Operation {
	return add(add(nil, p.Left), p.Right)
}

// NegatedPattern is "not pattern".
type NegatedPattern struct {
	node
	PatternTypes
	Pattern Pattern
}

func (*NegatedPattern) Kind() OperationKind     { return KindNegatedPattern }
func (p *NegatedPattern) Children() []Operation { return add(nil, p.Pattern) }
