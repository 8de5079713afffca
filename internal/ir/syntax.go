package ir

import "fmt"

// Span is a half-open byte range [Start, End) in the source text.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// String renders the span as "[start..end)".
func (s Span) String() string {
	return fmt.Sprintf("[%d..%d)", s.Start, s.End)
}

// Syntax is an opaque reference to a source syntax node.
//
// Syntax identity is pointer identity: two Operations "share syntax" only
// when they hold the same *Syntax. Two distinct Syntax values with equal
// spans are different nodes (for example a call and its sole argument
// expression can cover identical text).
type Syntax struct {
	// Kind is the syntactic category, e.g. "InvocationExpression".
	Kind string

	// Text is the source text covered by the node (informational).
	Text string

	Span Span

	// Missing marks syntax the parser synthesized during error recovery.
	// Operations over missing syntax carry no result type.
	Missing bool
}

// NewSyntax allocates a fresh syntax reference.
func NewSyntax(kind, text string, span Span) *Syntax {
	return &Syntax{Kind: kind, Text: text, Span: span}
}

// String returns a short human-readable description.
func (s *Syntax) String() string {
	if s == nil {
		return "<no syntax>"
	}
	if s.Missing {
		return fmt.Sprintf("%s%s <missing>", s.Kind, s.Span)
	}
	return fmt.Sprintf("%s%s %q", s.Kind, s.Span, s.Text)
}
