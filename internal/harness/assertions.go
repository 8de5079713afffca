package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/opflow/internal/flow"
	"github.com/roach88/opflow/internal/ir"
)

// AssertionError is returned when an assertion fails. It carries the
// tree dump so a failure can be read without re-running.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Tree     string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Tree != "" {
		fmt.Fprintf(&buf, "\nOperation tree:\n")
		for _, line := range strings.SplitAfter(e.Tree, "\n") {
			if line != "" {
				buf.WriteString("  " + line)
			}
		}
	}
	return buf.String()
}

// matches reports whether op satisfies the kind/text/implicit filter of a.
func matches(op ir.Operation, a Assertion) bool {
	kind, _ := ir.ParseOperationKind(a.Kind)
	if op.Kind() != kind {
		return false
	}
	if a.Text != "" && (op.Syntax() == nil || op.Syntax().Text != a.Text) {
		return false
	}
	if a.Implicit != nil && op.IsImplicit() != *a.Implicit {
		return false
	}
	return true
}

func describe(a Assertion) string {
	s := a.Kind
	if a.Text != "" {
		s += fmt.Sprintf(" over %q", a.Text)
	}
	if a.Implicit != nil {
		s += fmt.Sprintf(" (implicit=%t)", *a.Implicit)
	}
	return s
}

func countMatches(root ir.Operation, a Assertion) int {
	n := 0
	ir.Walk(root, func(op ir.Operation) bool {
		if matches(op, a) {
			n++
		}
		return true
	})
	return n
}

// assertTreeContains checks that some operation matches.
func assertTreeContains(r *Result, a Assertion) error {
	if countMatches(r.root, a) > 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertTreeContains,
		Expected: describe(a),
		Actual:   "not found in tree",
		Tree:     r.Tree,
	}
}

// assertTreeCount checks the exact number of matching operations.
func assertTreeCount(r *Result, a Assertion) error {
	if got := countMatches(r.root, a); got != a.Count {
		return &AssertionError{
			Type:     AssertTreeCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, describe(a)),
			Actual:   fmt.Sprintf("%d occurrences", got),
			Tree:     r.Tree,
		}
	}
	return nil
}

// assertTreeOrder checks that the kinds occur in this order in a
// pre-order walk. Other operations may sit in between.
func assertTreeOrder(r *Result, a Assertion) error {
	next := 0
	ir.Walk(r.root, func(op ir.Operation) bool {
		if next < len(a.Kinds) && op.Kind().String() == a.Kinds[next] {
			next++
		}
		return true
	})
	if next == len(a.Kinds) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTreeOrder,
		Expected: fmt.Sprintf("kinds in order: %v", a.Kinds),
		Actual:   fmt.Sprintf("matched %v, then no %s", a.Kinds[:next], a.Kinds[next]),
		Tree:     r.Tree,
	}
}

// assertTreeHash pins the canonical dump.
func assertTreeHash(r *Result, a Assertion) error {
	if r.TreeHash == a.Hash {
		return nil
	}
	return &AssertionError{
		Type:     AssertTreeHash,
		Expected: a.Hash,
		Actual:   r.TreeHash,
		Tree:     r.Tree,
	}
}

func noGraph(r *Result, typ string) error {
	return &AssertionError{
		Type:     typ,
		Expected: "a control-flow graph",
		Actual:   fmt.Sprintf("body is %s, not a block", r.root.Kind()),
	}
}

// assertBlockCount checks the number of blocks.
func assertBlockCount(r *Result, a Assertion) error {
	if r.blocks == nil {
		return noGraph(r, AssertBlockCount)
	}
	if len(r.blocks) != a.Count {
		return &AssertionError{
			Type:     AssertBlockCount,
			Expected: fmt.Sprintf("%d blocks", a.Count),
			Actual:   fmt.Sprintf("%d blocks\n%s", len(r.blocks), r.Graph),
		}
	}
	return nil
}

// assertBlockKinds checks the block kinds in ordinal order.
func assertBlockKinds(r *Result, a Assertion) error {
	if r.blocks == nil {
		return noGraph(r, AssertBlockKinds)
	}
	got := make([]string, len(r.blocks))
	for i, b := range r.blocks {
		got[i] = b.Kind.String()
	}
	if !slices.Equal(got, a.Kinds) {
		return &AssertionError{
			Type:     AssertBlockKinds,
			Expected: fmt.Sprintf("%v", a.Kinds),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

// assertEdge checks that block From has an edge to block To.
func assertEdge(r *Result, a Assertion) error {
	if r.blocks == nil {
		return noGraph(r, AssertEdge)
	}
	fail := func(actual string) error {
		return &AssertionError{
			Type:     AssertEdge,
			Expected: edgeString(a),
			Actual:   actual,
		}
	}
	if a.From >= len(r.blocks) || a.To >= len(r.blocks) {
		return fail(fmt.Sprintf("graph has %d blocks", len(r.blocks)))
	}
	from, to := r.blocks[a.From], r.blocks[a.To]
	if c := from.Conditional; c != nil && c.Destination == to {
		return nil
	}
	if !a.Conditional && from.Next == to {
		return nil
	}
	return fail(fmt.Sprintf("%s has successors %v", from, blockNames(from.Successors())))
}

func edgeString(a Assertion) string {
	if a.Conditional {
		return fmt.Sprintf("conditional edge B%d -> B%d", a.From, a.To)
	}
	return fmt.Sprintf("edge B%d -> B%d", a.From, a.To)
}

func blockNames(blocks []*flow.BasicBlock) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.String()
	}
	return out
}

// EvaluateAssertions runs every assertion and returns the failure
// messages in assertion order. Empty means all passed.
func EvaluateAssertions(r *Result, assertions []Assertion) []string {
	var errors []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertTreeContains:
			err = assertTreeContains(r, a)
		case AssertTreeCount:
			err = assertTreeCount(r, a)
		case AssertTreeOrder:
			err = assertTreeOrder(r, a)
		case AssertTreeHash:
			err = assertTreeHash(r, a)
		case AssertBlockCount:
			err = assertBlockCount(r, a)
		case AssertBlockKinds:
			err = assertBlockKinds(r, a)
		case AssertEdge:
			err = assertEdge(r, a)
		default:
			err = fmt.Errorf("unknown assertion type: %s", a.Type)
		}
		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}
