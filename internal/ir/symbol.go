package ir

// SymbolKind classifies the symbols referenced by Operations.
type SymbolKind uint8

const (
	SymbolKindUnknown SymbolKind = iota
	SymbolKindType
	SymbolKindMethod
	SymbolKindParameter
	SymbolKindLocal
	SymbolKindField
	SymbolKindProperty
	SymbolKindEvent
	SymbolKindLabel
	SymbolKindRangeVariable
	SymbolKindDiscard
)

var symbolKindNames = [...]string{
	SymbolKindUnknown:       "Unknown",
	SymbolKindType:          "Type",
	SymbolKindMethod:        "Method",
	SymbolKindParameter:     "Parameter",
	SymbolKindLocal:         "Local",
	SymbolKindField:         "Field",
	SymbolKindProperty:      "Property",
	SymbolKindEvent:         "Event",
	SymbolKindLabel:         "Label",
	SymbolKindRangeVariable: "RangeVariable",
	SymbolKindDiscard:       "Discard",
}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "Unknown"
}

// ParseSymbolKind maps a kind name to its SymbolKind.
func ParseSymbolKind(name string) (SymbolKind, bool) {
	for k, n := range symbolKindNames {
		if n == name {
			return SymbolKind(k), true
		}
	}
	return SymbolKindUnknown, false
}

// Symbol is the public handle for a program entity (type, method, local,
// label, ...) referenced from the Operation Tree.
//
// Handles are produced by the semantic model. The model guarantees that
// one internal entity always maps to the same handle, so Symbols may be
// compared with ==.
type Symbol interface {
	Name() string
	SymbolKind() SymbolKind
	String() string
}

// SymbolName returns s.Name(), or "" when s is nil.
func SymbolName(s Symbol) string {
	if s == nil {
		return ""
	}
	return s.Name()
}
