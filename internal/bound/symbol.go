package bound

import (
	"fmt"
	"strings"

	"github.com/roach88/opflow/internal/ir"
)

// TypeKind classifies types.
type TypeKind uint8

const (
	TypeClass TypeKind = iota
	TypeStruct
	TypeInterface
	TypeEnum
	TypeDelegate
	TypeArray
	TypeDynamic
	TypeTypeParameter
	TypePointer
	TypeTuple
	TypeError
)

var typeKindNames = map[string]TypeKind{
	"Class":         TypeClass,
	"Struct":        TypeStruct,
	"Interface":     TypeInterface,
	"Enum":          TypeEnum,
	"Delegate":      TypeDelegate,
	"Array":         TypeArray,
	"Dynamic":       TypeDynamic,
	"TypeParameter": TypeTypeParameter,
	"Pointer":       TypePointer,
	"Tuple":         TypeTuple,
	"Error":         TypeError,
}

// ParseTypeKind maps a fixture name to a TypeKind.
func ParseTypeKind(name string) (TypeKind, bool) {
	k, ok := typeKindNames[name]
	return k, ok
}

// Type is a resolved type.
type Type struct {
	Name string
	Kind TypeKind
	// ElementType is set for arrays and pointers.
	ElementType *Type
	// Interfaces lists implemented interfaces (transitively closed by the
	// producer).
	Interfaces []*Type
}

// IsError reports whether t is the error type.
func (t *Type) IsError() bool { return t != nil && t.Kind == TypeError }

// IsDynamic reports whether t is the dynamic type.
func (t *Type) IsDynamic() bool { return t != nil && t.Kind == TypeDynamic }

// Implements reports whether t is, or implements, iface.
func (t *Type) Implements(iface *Type) bool {
	if t == nil || iface == nil {
		return false
	}
	if t == iface {
		return true
	}
	for _, i := range t.Interfaces {
		if i == iface {
			return true
		}
	}
	return false
}

func (t *Type) String() string {
	if t == nil {
		return "<none>"
	}
	return t.Name
}

// SymbolKind aliases the public classification.
type SymbolKind = ir.SymbolKind

// MethodKind refines method symbols.
type MethodKind uint8

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodUserDefinedOperator
	MethodConversion
	MethodLambda
	MethodLocalFunction
)

var methodKindNames = map[string]MethodKind{
	"Ordinary":            MethodOrdinary,
	"Constructor":         MethodConstructor,
	"UserDefinedOperator": MethodUserDefinedOperator,
	"Conversion":          MethodConversion,
	"Lambda":              MethodLambda,
	"LocalFunction":       MethodLocalFunction,
}

// ParseMethodKind maps a fixture name to a MethodKind.
func ParseMethodKind(name string) (MethodKind, bool) {
	k, ok := methodKindNames[name]
	return k, ok
}

// Symbol is a resolved program entity other than a type.
type Symbol struct {
	Kind SymbolKind
	Name string
	// Type is the declared type of a variable/field/property/event, or
	// the return type of a method.
	Type           *Type
	ContainingType *Type
	MethodKind     MethodKind
	Parameters     []*Symbol

	IsStatic   bool
	IsVirtual  bool
	IsAbstract bool
	IsOverride bool
	IsParams   bool
	// IsExtension marks extension methods; the receiver is passed as the
	// first argument.
	IsExtension bool
	// IsError marks placeholder symbols produced for unresolved names.
	IsError bool

	// HasDefault and Default describe an optional parameter.
	HasDefault bool
	Default    ir.Value
	RefKind    ir.RefKind
}

// IsVirtualDispatch reports whether calls to s dispatch through a vtable.
func (s *Symbol) IsVirtualDispatch() bool {
	return s != nil && (s.IsVirtual || s.IsAbstract || s.IsOverride)
}

func (s *Symbol) String() string {
	if s == nil {
		return "<none>"
	}
	if s.Kind == ir.SymbolKindMethod {
		params := make([]string, len(s.Parameters))
		for i, p := range s.Parameters {
			params[i] = p.Type.String()
		}
		name := s.Name
		if s.ContainingType != nil {
			name = s.ContainingType.Name + "." + name
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
	}
	if s.ContainingType != nil && (s.Kind == ir.SymbolKindField || s.Kind == ir.SymbolKindProperty || s.Kind == ir.SymbolKindEvent) {
		return s.ContainingType.Name + "." + s.Name
	}
	return s.Name
}
