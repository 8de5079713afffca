// Package bound models the binder's output: a resolved, semantically
// annotated tree (the "bound tree") together with the symbols and types
// it references, and the semantic model that turns them into public
// ir.Symbol handles.
//
// Bound nodes are plain data. A single Node struct carries every field
// any kind needs; which fields are meaningful depends on Kind and is
// documented on the Kind constants. Bound trees are read-only once built
// and may be shared freely between goroutines.
package bound
