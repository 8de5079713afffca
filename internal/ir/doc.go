// Package ir defines the public Operation Tree: the immutable, language
// neutral view of resolved source code produced by package operations.
//
// This package contains type definitions, constructors, and value-level
// utilities only. All other internal packages import ir; ir imports
// nothing internal. This keeps the tree the foundational layer with no
// circular dependencies.
//
// Key design constraints:
//   - Every Operation has at most one parent, assigned exactly once by the
//     constructor of the node that owns it.
//   - Children are reported in source evaluation order.
//   - A node is implicit when it was compiler generated, or when it shares
//     its syntax with its parent (see Operation.IsImplicit).
//   - Trees are never mutated after construction. Consumers that need a
//     detached copy use Clone.
//   - Dumps use canonical JSON (RFC 8785 key order, NFC strings) so that
//     tree hashes are stable across runs and platforms.
package ir
