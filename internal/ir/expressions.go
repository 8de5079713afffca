package ir

// None is an operation with no specific variant: a construct the tree
// does not model, passed through with its children so analyses can still
// descend into it.
type None struct {
	node
	Operands []Operation
}

func (*None) Kind() OperationKind     { return KindNone }
func (n *None) Children() []Operation { return addAll(nil, n.Operands) }

// Invalid is produced for erroneous code. Operands holds whatever could
// be salvaged (receiver first, then arguments in source order).
type Invalid struct {
	node
	Operands []Operation
}

func (*Invalid) Kind() OperationKind     { return KindInvalid }
func (n *Invalid) Children() []Operation { return addAll(nil, n.Operands) }

// Literal is a literal constant; see ConstantValue.
type Literal struct {
	node
}

func (*Literal) Kind() OperationKind   { return KindLiteral }
func (*Literal) Children() []Operation { return nil }

// CommonConversion describes a conversion independently of the source
// language.
type CommonConversion struct {
	Exists        bool
	IsIdentity    bool
	IsNumeric     bool
	IsReference   bool
	IsNullable    bool
	IsImplicit    bool
	IsUserDefined bool
	// MethodSymbol is the user-defined conversion operator, if any.
	MethodSymbol Symbol
}

// Conversion converts Operand to the operation's type.
type Conversion struct {
	node
	Operand        Operation
	Conversion     CommonConversion
	OperatorMethod Symbol
	IsTryCast      bool
	IsChecked      bool
}

func (*Conversion) Kind() OperationKind     { return KindConversion }
func (c *Conversion) Children() []Operation { return add(nil, c.Operand) }

// UnaryOperatorKind enumerates unary operators.
type UnaryOperatorKind uint8

const (
	UnaryNone UnaryOperatorKind = iota
	UnaryBitwiseNegation
	UnaryNot
	UnaryPlus
	UnaryMinus
	UnaryTrue
	UnaryFalse
	UnaryHat
)

var unaryNames = [...]string{"None", "BitwiseNegation", "Not", "Plus", "Minus", "True", "False", "Hat"}

func (k UnaryOperatorKind) String() string {
	if int(k) < len(unaryNames) {
		return unaryNames[k]
	}
	return "None"
}

// Unary is a unary operator application.
type Unary struct {
	node
	OperatorKind   UnaryOperatorKind
	Operand        Operation
	IsLifted       bool
	IsChecked      bool
	OperatorMethod Symbol
}

func (*Unary) Kind() OperationKind     { return KindUnaryOperator }
func (u *Unary) Children() []Operation { return add(nil, u.Operand) }

// BinaryOperatorKind enumerates binary operators.
type BinaryOperatorKind uint8

const (
	BinaryNone BinaryOperatorKind = iota
	BinaryAdd
	BinarySubtract
	BinaryMultiply
	BinaryDivide
	BinaryRemainder
	BinaryLeftShift
	BinaryRightShift
	BinaryUnsignedRightShift
	BinaryAnd
	BinaryOr
	BinaryExclusiveOr
	BinaryConditionalAnd
	BinaryConditionalOr
	BinaryEquals
	BinaryNotEquals
	BinaryLessThan
	BinaryLessThanOrEqual
	BinaryGreaterThanOrEqual
	BinaryGreaterThan
)

var binaryNames = [...]string{
	"None", "Add", "Subtract", "Multiply", "Divide", "Remainder",
	"LeftShift", "RightShift", "UnsignedRightShift", "And", "Or",
	"ExclusiveOr", "ConditionalAnd", "ConditionalOr", "Equals", "NotEquals",
	"LessThan", "LessThanOrEqual", "GreaterThanOrEqual", "GreaterThan",
}

func (k BinaryOperatorKind) String() string {
	if int(k) < len(binaryNames) {
		return binaryNames[k]
	}
	return "None"
}

// Binary is a binary operator application.
type Binary struct {
	node
	OperatorKind   BinaryOperatorKind
	Left           Operation
	Right          Operation
	IsLifted       bool
	IsChecked      bool
	OperatorMethod Symbol
}

func (*Binary) Kind() OperationKind { return KindBinaryOperator }
func (b *Binary) Children() []Operation {
	return add(add(nil, b.Left), b.Right)
}

// TupleBinary compares two tuples element-wise.
type TupleBinary struct {
	node
	OperatorKind BinaryOperatorKind
	Left         Operation
	Right        Operation
}

func (*TupleBinary) Kind() OperationKind { return KindTupleBinaryOperator }
func (b *TupleBinary) Children() []Operation {
	return add(add(nil, b.Left), b.Right)
}

// Conditional is both the if statement and the ?: expression. WhenFalse
// is nil for an if without else.
type Conditional struct {
	node
	Condition Operation
	WhenTrue  Operation
	WhenFalse Operation
	IsRef     bool
}

func (*Conditional) Kind() OperationKind { return KindConditional }
func (c *Conditional) Children() []Operation {
	return add(add(add(nil, c.Condition), c.WhenTrue), c.WhenFalse)
}

// Coalesce is "value ?? whenNull".
type Coalesce struct {
	node
	Value           Operation
	WhenNull        Operation
	ValueConversion CommonConversion
}

func (*Coalesce) Kind() OperationKind { return KindCoalesce }
func (c *Coalesce) Children() []Operation {
	return add(add(nil, c.Value), c.WhenNull)
}

// CoalesceAssignment is "target ??= value".
type CoalesceAssignment struct {
	node
	Target Operation
	Value  Operation
}

func (*CoalesceAssignment) Kind() OperationKind { return KindCoalesceAssignment }
func (c *CoalesceAssignment) Children() []Operation {
	return add(add(nil, c.Target), c.Value)
}

// ConditionalAccess is "operation?.whenNotNull".
type ConditionalAccess struct {
	node
	Operation   Operation
	WhenNotNull Operation
}

func (*ConditionalAccess) Kind() OperationKind { return KindConditionalAccess }
func (c *ConditionalAccess) Children() []Operation {
	return add(add(nil, c.Operation), c.WhenNotNull)
}

// ConditionalAccessInstance stands for the receiver inside WhenNotNull.
type ConditionalAccessInstance struct {
	node
}

func (*ConditionalAccessInstance) Kind() OperationKind   { return KindConditionalAccessInstance }
func (*ConditionalAccessInstance) Children() []Operation { return nil }

// AnonymousFunction is a lambda or anonymous method. Its body is built
// lazily.
type AnonymousFunction struct {
	node
	Symbol Symbol
	body   *Lazy[*Block]
}

// NewAnonymousFunction builds a lambda whose body comes from thunk.
func NewAnonymousFunction(info Info, symbol Symbol, thunk func() *Block) *AnonymousFunction {
	f := &AnonymousFunction{Symbol: symbol}
	f.body = lazyChild(f, thunk)
	return New(info, f)
}

func (*AnonymousFunction) Kind() OperationKind     { return KindAnonymousFunction }
func (*AnonymousFunction) deferredChildren()       {}
func (f *AnonymousFunction) Body() *Block          { return f.body.Get() }
func (f *AnonymousFunction) Children() []Operation { return add(nil, f.Body()) }

// DelegateCreation creates a delegate from Target, a method reference or
// anonymous function.
type DelegateCreation struct {
	node
	Target Operation
}

func (*DelegateCreation) Kind() OperationKind     { return KindDelegateCreation }
func (d *DelegateCreation) Children() []Operation { return add(nil, d.Target) }

// ObjectCreation invokes a constructor, optionally followed by an object
// or collection initializer.
type ObjectCreation struct {
	node
	Constructor Symbol
	Arguments   []*Argument
	Initializer *ObjectOrCollectionInitializer
}

func (*ObjectCreation) Kind() OperationKind { return KindObjectCreation }
func (o *ObjectCreation) Children() []Operation {
	return add(addAll(nil, o.Arguments), o.Initializer)
}

// TypeParameterObjectCreation is "new T()" for a type parameter T.
type TypeParameterObjectCreation struct {
	node
	Initializer *ObjectOrCollectionInitializer
}

func (*TypeParameterObjectCreation) Kind() OperationKind { return KindTypeParameterObjectCreation }
func (o *TypeParameterObjectCreation) Children() []Operation {
	return add(nil, o.Initializer)
}

// AnonymousObjectCreation is "new { A = 1 }". Initializers are
// assignments to the anonymous type's properties.
type AnonymousObjectCreation struct {
	node
	Initializers []Operation
}

func (*AnonymousObjectCreation) Kind() OperationKind { return KindAnonymousObjectCreation }
func (o *AnonymousObjectCreation) Children() []Operation {
	return addAll(nil, o.Initializers)
}

// ObjectOrCollectionInitializer is the braced initializer after "new T".
type ObjectOrCollectionInitializer struct {
	node
	Initializers []Operation
}

func (*ObjectOrCollectionInitializer) Kind() OperationKind { return KindObjectOrCollectionInitializer }
func (o *ObjectOrCollectionInitializer) Children() []Operation {
	return addAll(nil, o.Initializers)
}

// MemberInitializer is a nested initializer "Member = { ... }".
type MemberInitializer struct {
	node
	InitializedMember Operation
	Initializer       *ObjectOrCollectionInitializer
}

func (*MemberInitializer) Kind() OperationKind { return KindMemberInitializer }
func (m *MemberInitializer) Children() []Operation {
	return add(add(nil, m.InitializedMember), m.Initializer)
}

// ArrayCreation allocates an array.
type ArrayCreation struct {
	node
	DimensionSizes []Operation
	Initializer    *ArrayInitializer
}

func (*ArrayCreation) Kind() OperationKind { return KindArrayCreation }
func (a *ArrayCreation) Children() []Operation {
	return add(addAll(nil, a.DimensionSizes), a.Initializer)
}

// ArrayInitializer lists array element values. Nested initializers
// appear for multi-dimensional arrays.
type ArrayInitializer struct {
	node
	ElementValues []Operation
}

func (*ArrayInitializer) Kind() OperationKind     { return KindArrayInitializer }
func (a *ArrayInitializer) Children() []Operation { return addAll(nil, a.ElementValues) }

// SimpleAssignment is "target = value" (or "target = ref value").
type SimpleAssignment struct {
	node
	Target Operation
	Value  Operation
	IsRef  bool
}

func (*SimpleAssignment) Kind() OperationKind { return KindSimpleAssignment }
func (a *SimpleAssignment) Children() []Operation {
	return add(add(nil, a.Target), a.Value)
}

// CompoundAssignment is "target op= value".
type CompoundAssignment struct {
	node
	OperatorKind   BinaryOperatorKind
	Target         Operation
	Value          Operation
	InConversion   CommonConversion
	OutConversion  CommonConversion
	IsLifted       bool
	IsChecked      bool
	OperatorMethod Symbol
}

func (*CompoundAssignment) Kind() OperationKind { return KindCompoundAssignment }
func (a *CompoundAssignment) Children() []Operation {
	return add(add(nil, a.Target), a.Value)
}

// DeconstructionAssignment is "(a, b) = value".
type DeconstructionAssignment struct {
	node
	Target Operation
	Value  Operation
}

func (*DeconstructionAssignment) Kind() OperationKind { return KindDeconstructionAssignment }
func (a *DeconstructionAssignment) Children() []Operation {
	return add(add(nil, a.Target), a.Value)
}

// EventAssignment is "e += handler" or "e -= handler".
type EventAssignment struct {
	node
	EventReference Operation
	HandlerValue   Operation
	Adds           bool
}

func (*EventAssignment) Kind() OperationKind { return KindEventAssignment }
func (a *EventAssignment) Children() []Operation {
	return add(add(nil, a.EventReference), a.HandlerValue)
}

// Increment covers ++ and -- in both prefix and postfix form.
type Increment struct {
	node
	IsDecrement    bool
	IsPostfix      bool
	Target         Operation
	IsLifted       bool
	IsChecked      bool
	OperatorMethod Symbol
}

func (i *Increment) Kind() OperationKind {
	if i.IsDecrement {
		return KindDecrement
	}
	return KindIncrement
}

func (i *Increment) Children() []Operation { return add(nil, i.Target) }

// IsType is "value is T".
type IsType struct {
	node
	ValueOperand Operation
	TypeOperand  Symbol
	IsNegated    bool
}

func (*IsType) Kind() OperationKind     { return KindIsType }
func (i *IsType) Children() []Operation { return add(nil, i.ValueOperand) }

// IsPattern is "value is pattern".
type IsPattern struct {
	node
	Value   Operation
	Pattern Pattern
}

func (*IsPattern) Kind() OperationKind { return KindIsPattern }
func (i *IsPattern) Children() []Operation {
	return add(add(nil, i.Value), i.Pattern)
}

// Await awaits Operation.
type Await struct {
	node
	Operation Operation
}

func (*Await) Kind() OperationKind     { return KindAwait }
func (a *Await) Children() []Operation { return add(nil, a.Operation) }

// Throw is a throw statement or throw expression. Exception is nil for a
// rethrow.
type Throw struct {
	node
	Exception Operation
}

func (*Throw) Kind() OperationKind     { return KindThrow }
func (t *Throw) Children() []Operation { return add(nil, t.Exception) }

// TypeOf is "typeof(T)".
type TypeOf struct {
	node
	TypeOperand Symbol
}

func (*TypeOf) Kind() OperationKind   { return KindTypeOf }
func (*TypeOf) Children() []Operation { return nil }

// SizeOf is "sizeof(T)".
type SizeOf struct {
	node
	TypeOperand Symbol
}

func (*SizeOf) Kind() OperationKind   { return KindSizeOf }
func (*SizeOf) Children() []Operation { return nil }

// DefaultValue is "default" or "default(T)".
type DefaultValue struct {
	node
}

func (*DefaultValue) Kind() OperationKind   { return KindDefaultValue }
func (*DefaultValue) Children() []Operation { return nil }

// NameOf is "nameof(x)"; its constant value is the name.
type NameOf struct {
	node
	Argument Operation
}

func (*NameOf) Kind() OperationKind     { return KindNameOf }
func (n *NameOf) Children() []Operation { return add(nil, n.Argument) }

// AddressOf is "&reference".
type AddressOf struct {
	node
	Reference Operation
}

func (*AddressOf) Kind() OperationKind     { return KindAddressOf }
func (a *AddressOf) Children() []Operation { return add(nil, a.Reference) }

// InterpolatedString is $"...". Parts are InterpolatedStringText and
// Interpolation operations.
type InterpolatedString struct {
	node
	Parts []Operation
}

func (*InterpolatedString) Kind() OperationKind     { return KindInterpolatedString }
func (s *InterpolatedString) Children() []Operation { return addAll(nil, s.Parts) }

// InterpolatedStringText is a literal run inside an interpolated string.
type InterpolatedStringText struct {
	node
	Text Operation
}

func (*InterpolatedStringText) Kind() OperationKind     { return KindInterpolatedStringText }
func (t *InterpolatedStringText) Children() []Operation { return add(nil, t.Text) }

// Interpolation is a "{expr,alignment:format}" hole.
type Interpolation struct {
	node
	Expression   Operation
	Alignment    Operation
	FormatString Operation
}

func (*Interpolation) Kind() OperationKind { return KindInterpolation }
func (i *Interpolation) Children() []Operation {
	return add(add(add(nil, i.Expression), i.Alignment), i.FormatString)
}

// Tuple is a tuple literal. NaturalType is the type the literal would have
// without a target conversion.
type Tuple struct {
	node
	Elements    []Operation
	NaturalType Symbol
}

func (*Tuple) Kind() OperationKind     { return KindTuple }
func (t *Tuple) Children() []Operation { return addAll(nil, t.Elements) }

// DeclarationExpression is an inline declaration such as "out var x" or
// "var (a, b)".
type DeclarationExpression struct {
	node
	Expression Operation
}

func (*DeclarationExpression) Kind() OperationKind     { return KindDeclarationExpression }
func (d *DeclarationExpression) Children() []Operation { return add(nil, d.Expression) }

// Discard is "_".
type Discard struct {
	node
	Symbol Symbol
}

func (*Discard) Kind() OperationKind   { return KindDiscard }
func (*Discard) Children() []Operation { return nil }

// OmittedArgument fills a parameter slot the caller left out.
type OmittedArgument struct {
	node
}

func (*OmittedArgument) Kind() OperationKind   { return KindOmittedArgument }
func (*OmittedArgument) Children() []Operation { return nil }

// Range is "left..right".
type Range struct {
	node
	LeftOperand  Operation
	RightOperand Operation
	Method       Symbol
}

func (*Range) Kind() OperationKind { return KindRange }
func (r *Range) Children() []Operation {
	return add(add(nil, r.LeftOperand), r.RightOperand)
}

// SwitchExpression is "value switch { arms }".
type SwitchExpression struct {
	node
	Value Operation
	Arms  []*SwitchExpressionArm
}

func (*SwitchExpression) Kind() OperationKind { return KindSwitchExpression }
func (s *SwitchExpression) Children() []Operation {
	return addAll(add(nil, s.Value), s.Arms)
}

// SwitchExpressionArm is "pattern when guard => value".
type SwitchExpressionArm struct {
	node
	Pattern Pattern
	Guard   Operation
	Value   Operation
	Locals  []Symbol
}

func (*SwitchExpressionArm) Kind() OperationKind { return KindSwitchExpressionArm }
func (a *SwitchExpressionArm) Children() []Operation {
	return add(add(add(nil, a.Pattern), a.Guard), a.Value)
}
