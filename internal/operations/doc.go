// Package operations translates bound trees into the public Operation
// Tree.
//
// The Factory is the single translation entry point. It dispatches over
// every bound.Kind exactly once: each kind is either mapped to a specific
// ir variant, passed through as an ir.None carrying its children, or
// rejected with a *ir.ContractError panic because it can never legally
// reach the translator (lowering-only and context-only kinds).
//
// Translation is a pure function of the bound tree and the read-only
// SemanticModel. A Factory holds no mutable state and may be shared by
// concurrent callers translating disjoint trees.
package operations
