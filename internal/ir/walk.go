package ir

// Walk visits op and its descendants in pre-order. If visit returns
// false the node's children are skipped. Walk is iterative, so very deep
// trees (long operator chains) are safe.
func Walk(op Operation, visit func(Operation) bool) {
	if op == nil {
		return
	}
	stack := []Operation{op}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(top) {
			continue
		}
		children := top.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Descendants returns op and every node below it in pre-order.
func Descendants(op Operation) []Operation {
	var out []Operation
	Walk(op, func(o Operation) bool {
		out = append(out, o)
		return true
	})
	return out
}

// FindAll returns every node of the given kind under op (inclusive).
func FindAll(op Operation, kind OperationKind) []Operation {
	var out []Operation
	Walk(op, func(o Operation) bool {
		if o.Kind() == kind {
			out = append(out, o)
		}
		return true
	})
	return out
}
