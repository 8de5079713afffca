package verify

import (
	"github.com/roach88/opflow/internal/ir"
)

// Tree checks every node under root:
//
//  1. Each child reports its owner as parent, and no node appears twice.
//  2. The implicit law: a node is implicit exactly when it is generated,
//     or when it shares its syntax with its parent.
//  3. Along any parent chain at most one explicit node holds a given
//     syntax.
//  4. Arguments of a call are in parameter order, so no parameter is
//     bound twice.
//
// Tree forces every lazy child under root.
func Tree(root ir.Operation) Result {
	v := &validator{findings: []string{}}
	if root == nil {
		v.addFinding("nil root")
		return v.result()
	}
	seen := make(map[ir.Operation]bool)
	ir.Walk(root, func(op ir.Operation) bool {
		if seen[op] {
			v.addFinding("%s %s reached twice", op.Kind(), op.Syntax())
			return false
		}
		seen[op] = true
		v.checkImplicit(op)
		v.checkExplicitOwner(op)
		for _, c := range op.Children() {
			if c == nil {
				v.addFinding("%s %s has a nil child", op.Kind(), op.Syntax())
				continue
			}
			if c.Parent() != op {
				v.addFinding("%s %s is a child of %s but reports parent %v", c.Kind(), c.Syntax(), op.Kind(), kindOf(c.Parent()))
			}
		}
		switch o := op.(type) {
		case *ir.Invocation:
			v.checkArguments(op, o.Arguments)
		case *ir.ObjectCreation:
			v.checkArguments(op, o.Arguments)
		case *ir.PropertyReference:
			v.checkArguments(op, o.Arguments)
		}
		return true
	})
	return v.result()
}

func (v *validator) checkImplicit(op ir.Operation) {
	parent := op.Parent()
	want := op.IsGenerated()
	if !want && parent != nil && op.Syntax() != nil {
		want = parent.Syntax() == op.Syntax()
	}
	if op.IsImplicit() != want {
		v.addFinding("%s %s: implicit=%t, want %t", op.Kind(), op.Syntax(), op.IsImplicit(), want)
	}
}

// checkExplicitOwner reports an explicit node whose syntax is already
// owned by an explicit ancestor.
func (v *validator) checkExplicitOwner(op ir.Operation) {
	if op.IsImplicit() || op.Syntax() == nil {
		return
	}
	for p := op.Parent(); p != nil; p = p.Parent() {
		if p.Syntax() == op.Syntax() && !p.IsImplicit() {
			v.addFinding("%s and ancestor %s are both explicit for %s", op.Kind(), p.Kind(), op.Syntax())
			return
		}
	}
}

func (v *validator) checkArguments(owner ir.Operation, args []*ir.Argument) {
	bound := make(map[ir.Symbol]bool, len(args))
	for _, a := range args {
		if a.Parameter == nil {
			continue
		}
		if bound[a.Parameter] {
			v.addFinding("%s %s binds parameter %s twice", owner.Kind(), owner.Syntax(), a.Parameter)
		}
		bound[a.Parameter] = true
	}
}

func kindOf(op ir.Operation) any {
	if op == nil {
		return "<nil>"
	}
	return op.Kind()
}
