package ir

// LocalReference reads or writes a local variable. IsDeclaration is set
// when the reference also declares the local (out var, deconstruction).
type LocalReference struct {
	node
	Local         Symbol
	IsDeclaration bool
}

func (*LocalReference) Kind() OperationKind   { return KindLocalReference }
func (*LocalReference) Children() []Operation { return nil }

// ParameterReference reads or writes a parameter.
type ParameterReference struct {
	node
	Parameter Symbol
}

func (*ParameterReference) Kind() OperationKind   { return KindParameterReference }
func (*ParameterReference) Children() []Operation { return nil }

// InstanceReferenceKind says which instance an InstanceReference denotes.
type InstanceReferenceKind uint8

const (
	// InstanceContaining is "this" or "base".
	InstanceContaining InstanceReferenceKind = iota
	// InstanceImplicitReceiver is the object being initialized inside an
	// object or collection initializer.
	InstanceImplicitReceiver
	// InstancePatternInput is the value being matched by a pattern.
	InstancePatternInput
)

func (k InstanceReferenceKind) String() string {
	switch k {
	case InstanceImplicitReceiver:
		return "ImplicitReceiver"
	case InstancePatternInput:
		return "PatternInput"
	}
	return "ContainingTypeInstance"
}

// InstanceReference is a reference to an instance without a name of its
// own.
type InstanceReference struct {
	node
	ReferenceKind InstanceReferenceKind
}

func (*InstanceReference) Kind() OperationKind   { return KindInstanceReference }
func (*InstanceReference) Children() []Operation { return nil }

// FieldReference accesses a field. Instance is nil for static fields.
type FieldReference struct {
	node
	Instance      Operation
	Field         Symbol
	IsDeclaration bool
}

func (*FieldReference) Kind() OperationKind     { return KindFieldReference }
func (r *FieldReference) Children() []Operation { return add(nil, r.Instance) }

// PropertyReference accesses a property or indexer. Arguments are the
// indexer arguments in parameter order.
type PropertyReference struct {
	node
	Instance  Operation
	Property  Symbol
	Arguments []*Argument
}

func (*PropertyReference) Kind() OperationKind { return KindPropertyReference }
func (r *PropertyReference) Children() []Operation {
	return addAll(add(nil, r.Instance), r.Arguments)
}

// EventReference accesses an event.
type EventReference struct {
	node
	Instance Operation
	Event    Symbol
}

func (*EventReference) Kind() OperationKind     { return KindEventReference }
func (r *EventReference) Children() []Operation { return add(nil, r.Instance) }

// MethodReference names a method without calling it.
type MethodReference struct {
	node
	Instance  Operation
	Method    Symbol
	IsVirtual bool
}

func (*MethodReference) Kind() OperationKind     { return KindMethodReference }
func (r *MethodReference) Children() []Operation { return add(nil, r.Instance) }

// ArrayElementReference is "array[indices]".
type ArrayElementReference struct {
	node
	ArrayReference Operation
	Indices        []Operation
}

func (*ArrayElementReference) Kind() OperationKind { return KindArrayElementReference }
func (r *ArrayElementReference) Children() []Operation {
	return addAll(add(nil, r.ArrayReference), r.Indices)
}

// Invocation calls TargetMethod. Instance is nil for static calls;
// Arguments are in parameter order, which is also evaluation order.
type Invocation struct {
	node
	TargetMethod Symbol
	Instance     Operation
	IsVirtual    bool
	Arguments    []*Argument
}

func (*Invocation) Kind() OperationKind { return KindInvocation }
func (i *Invocation) Children() []Operation {
	return addAll(add(nil, i.Instance), i.Arguments)
}

// ArgumentKind says how an argument's value was supplied.
type ArgumentKind uint8

const (
	ArgumentInvalid ArgumentKind = iota
	// ArgumentPositional was written at its parameter's position.
	ArgumentPositional
	// ArgumentNamed was written with "name:".
	ArgumentNamed
	// ArgumentDefaultValue was omitted and filled from the parameter's
	// default.
	ArgumentDefaultValue
	// ArgumentParamArray packs trailing arguments into a params array.
	ArgumentParamArray
	// ArgumentOmitted was left out with no default available.
	ArgumentOmitted
)

var argumentKindNames = [...]string{"Invalid", "Positional", "Named", "DefaultValue", "ParamArray", "Omitted"}

func (k ArgumentKind) String() string {
	if int(k) < len(argumentKindNames) {
		return argumentKindNames[k]
	}
	return "Invalid"
}

// Argument binds a value to a parameter. Parameter is nil for arguments
// that matched no parameter (excess arguments in erroneous calls).
type Argument struct {
	node
	ArgumentKind  ArgumentKind
	Parameter     Symbol
	Value         Operation
	InConversion  CommonConversion
	OutConversion CommonConversion
}

func (*Argument) Kind() OperationKind     { return KindArgument }
func (a *Argument) Children() []Operation { return add(nil, a.Value) }

// RefKind is the by-reference passing mode of a dynamic argument.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
)

func (k RefKind) String() string {
	switch k {
	case RefRef:
		return "ref"
	case RefOut:
		return "out"
	case RefIn:
		return "in"
	}
	return "none"
}

// ParseRefKind maps "none", "ref", "out" or "in" to a RefKind.
func ParseRefKind(name string) (RefKind, bool) {
	switch name {
	case "", "none":
		return RefNone, true
	case "ref":
		return RefRef, true
	case "out":
		return RefOut, true
	case "in":
		return RefIn, true
	}
	return RefNone, false
}

// DynamicMemberReference is a late-bound member access.
type DynamicMemberReference struct {
	node
	Instance       Operation
	MemberName     string
	TypeArguments  []Symbol
	ContainingType Symbol
}

func (*DynamicMemberReference) Kind() OperationKind { return KindDynamicMemberReference }
func (r *DynamicMemberReference) Children() []Operation {
	return add(nil, r.Instance)
}

// DynamicInvocation is a late-bound call. Arguments stay in source order
// because no parameter list is known.
type DynamicInvocation struct {
	node
	Operation        Operation
	Arguments        []Operation
	ArgumentNames    []string
	ArgumentRefKinds []RefKind
}

func (*DynamicInvocation) Kind() OperationKind { return KindDynamicInvocation }
func (d *DynamicInvocation) Children() []Operation {
	return addAll(add(nil, d.Operation), d.Arguments)
}

// DynamicIndexerAccess is a late-bound indexer access.
type DynamicIndexerAccess struct {
	node
	Operation        Operation
	Arguments        []Operation
	ArgumentNames    []string
	ArgumentRefKinds []RefKind
}

func (*DynamicIndexerAccess) Kind() OperationKind { return KindDynamicIndexerAccess }
func (d *DynamicIndexerAccess) Children() []Operation {
	return addAll(add(nil, d.Operation), d.Arguments)
}

// DynamicObjectCreation is a late-bound constructor call.
type DynamicObjectCreation struct {
	node
	Arguments        []Operation
	ArgumentNames    []string
	ArgumentRefKinds []RefKind
	Initializer      *ObjectOrCollectionInitializer
}

func (*DynamicObjectCreation) Kind() OperationKind { return KindDynamicObjectCreation }
func (d *DynamicObjectCreation) Children() []Operation {
	return add(addAll(nil, d.Arguments), d.Initializer)
}
