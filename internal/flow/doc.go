// Package flow builds control-flow graphs over Operation Tree bodies.
//
// A graph is an ordered slice of basic blocks. Index 0 is always the
// Entry block and the last index is always the Exit block. Blocks hold
// detached clones of the statements they execute, so building a graph
// never re-parents nodes of the Operation Tree it was built from.
//
// Only operations visited directly as statements split blocks: if
// statements, normalized loops, branches, labels, returns and throws.
// Conditional expressions nested inside a statement stay inside that
// statement. Pack removes content-free blocks after construction.
package flow
