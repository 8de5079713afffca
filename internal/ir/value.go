package ir

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface for the scalar and structured values that
// appear in the Operation Tree and in its canonical dumps.
//
// Scalars (Null, String, Int, Bool, Float, Char) double as compile-time
// constant values of Operations. Array and Object exist for dumps only.
type Value interface {
	irValue() // Sealed - only the types below implement it
}

// Null is the null constant. It is distinct from "no constant", which is
// represented by a nil Value.
type Null struct{}

func (Null) irValue() {}

// String is a string constant.
type String string

func (String) irValue() {}

// Int is an integral constant. All integral widths are widened to int64.
type Int int64

func (Int) irValue() {}

// Bool is a boolean constant.
type Bool bool

func (Bool) irValue() {}

// Float is a floating point constant.
// NaN and infinities are valid constants but cannot be canonically dumped.
type Float float64

func (Float) irValue() {}

// Char is a character constant.
type Char rune

func (Char) irValue() {}

// Array is an ordered list of values (dumps only).
type Array []Value

func (Array) irValue() {}

// Object is a map of string keys to values (dumps only).
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) irValue() {}

// Pair is a key-value pair for ordered-looking Object construction.
type Pair struct {
	Key   string
	Value Value
}

// O is shorthand for Pair.
// Example: NewObject(O("kind", String("Literal")), O("implicit", Bool(true)))
func O(key string, value Value) Pair {
	return Pair{Key: key, Value: value}
}

// NewObject builds an Object from pairs. Pairs with a nil Value are
// skipped so optional attributes can be passed unconditionally.
func NewObject(pairs ...Pair) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		if p.Value == nil {
			continue
		}
		obj[p.Key] = p.Value
	}
	return obj
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// CRITICAL: Go's sort.Strings uses UTF-8 which produces DIFFERENT order.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}

// ValueString renders a constant for diagnostics and text dumps.
func ValueString(v Value) string {
	switch val := v.(type) {
	case nil:
		return "<none>"
	case Null:
		return "null"
	case String:
		return fmt.Sprintf("%q", string(val))
	case Int:
		return fmt.Sprintf("%d", int64(val))
	case Bool:
		return fmt.Sprintf("%t", bool(val))
	case Float:
		return formatFloat(float64(val))
	case Char:
		return fmt.Sprintf("%q", rune(val))
	case Array:
		return fmt.Sprintf("array(%d)", len(val))
	case Object:
		return fmt.Sprintf("object(%d)", len(val))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ConstantOf converts a Go scalar into a constant Value.
// nil maps to Null{} because the caller asked for a constant explicitly.
func ConstantOf(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case float32:
		return Float(val), nil
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			// Decoders (CUE, YAML) may hand back whole numbers as float64.
			return Int(int64(val)), nil
		}
		return Float(val), nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", v)
	}
}
