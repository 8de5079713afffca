package operations

import (
	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// createReceiver translates the receiver of a member access. Static
// members and type-qualified accesses have no instance.
func (f *Factory) createReceiver(recv *bound.Node, member *bound.Symbol) ir.Operation {
	if recv == nil || recv.Kind == bound.KindTypeExpression || recv.Kind == bound.KindNamespaceExpression {
		return nil
	}
	if member != nil && member.IsStatic && !member.IsExtension {
		return nil
	}
	return f.Create(recv)
}

// isVirtual reports whether a call dispatches virtually. "base.M()" is
// always a direct call.
func isVirtual(method *bound.Symbol, recv *bound.Node) bool {
	if !method.IsVirtualDispatch() {
		return false
	}
	return recv == nil || recv.Kind != bound.KindBaseReference
}

// unusable reports whether a member access failed to bind.
func unusable(n *bound.Node, member *bound.Symbol) bool {
	return !n.IsViable() || member == nil || member.IsError
}

// createLocal translates a local reference. A local declared inline
// ("out var x", deconstruction) is wrapped in a DeclarationExpression
// whose syntax is narrowed to the designation.
func (f *Factory) createLocal(n *bound.Node) ir.Operation {
	if n.Local == nil {
		panic(ir.Contractf("operations", "Local without a symbol"))
	}
	declares := n.DeclarationKind != bound.DeclarationNone
	ref := ir.New(f.info(n), &ir.LocalReference{Local: f.symbol(n.Local), IsDeclaration: declares})
	if !declares {
		return ref
	}
	syntax := n.Designation
	if syntax == nil {
		syntax = n.Syntax
	}
	return ir.New(ir.Info{Syntax: syntax, Type: f.typ(n.Type)}, &ir.DeclarationExpression{Expression: ref})
}

func (f *Factory) createParameter(n *bound.Node) ir.Operation {
	if n.Local == nil {
		panic(ir.Contractf("operations", "Parameter without a symbol"))
	}
	return ir.New(f.info(n), &ir.ParameterReference{Parameter: f.symbol(n.Local)})
}

func (f *Factory) createFieldAccess(n *bound.Node) ir.Operation {
	if unusable(n, n.Member) {
		return f.invalid(n, n.Receiver, nil)
	}
	ref := ir.New(f.info(n), &ir.FieldReference{
		Instance:      f.createReceiver(n.Receiver, n.Member),
		Field:         f.symbol(n.Member),
		IsDeclaration: n.DeclarationKind != bound.DeclarationNone,
	})
	if n.DeclarationKind == bound.DeclarationNone {
		return ref
	}
	syntax := n.Designation
	if syntax == nil {
		syntax = n.Syntax
	}
	return ir.New(ir.Info{Syntax: syntax, Type: f.typ(n.Type)}, &ir.DeclarationExpression{Expression: ref})
}

func (f *Factory) createPropertyAccess(n *bound.Node) ir.Operation {
	if unusable(n, n.Member) {
		return f.invalid(n, n.Receiver, nil)
	}
	return ir.New(f.info(n), &ir.PropertyReference{
		Instance: f.createReceiver(n.Receiver, n.Member),
		Property: f.symbol(n.Member),
	})
}

func (f *Factory) createEventAccess(n *bound.Node) ir.Operation {
	if unusable(n, n.Member) {
		return f.invalid(n, n.Receiver, nil)
	}
	return ir.New(f.info(n), &ir.EventReference{
		Instance: f.createReceiver(n.Receiver, n.Member),
		Event:    f.symbol(n.Member),
	})
}

// createIndexerAccess translates "receiver[args]" on an indexer. The
// receiver is translated before the arguments.
func (f *Factory) createIndexerAccess(n *bound.Node) ir.Operation {
	if unusable(n, n.Member) {
		return f.invalid(n, n.Receiver, n.Arguments)
	}
	instance := f.createReceiver(n.Receiver, n.Member)
	args := f.DeriveArguments(n.Member.Parameters, n.Arguments, n.ArgsToParams, n.DefaultArguments, n.Expanded, n.Syntax)
	return ir.New(f.info(n), &ir.PropertyReference{
		Instance:  instance,
		Property:  f.symbol(n.Member),
		Arguments: args,
	})
}

func (f *Factory) createArrayAccess(n *bound.Node) ir.Operation {
	array := f.Create(n.Receiver)
	return ir.New(f.info(n), &ir.ArrayElementReference{
		ArrayReference: array,
		Indices:        f.createAll(n.Arguments),
	})
}

// createMethodGroup translates a method group outside a conversion. Only
// erroneous code leaves a bare method group behind; a viable one names its
// single candidate.
func (f *Factory) createMethodGroup(n *bound.Node) ir.Operation {
	if unusable(n, n.Method) {
		return f.invalid(n, n.Receiver, nil)
	}
	return ir.New(f.info(n), &ir.MethodReference{
		Instance:  f.createReceiver(n.Receiver, n.Method),
		Method:    f.symbol(n.Method),
		IsVirtual: isVirtual(n.Method, n.Receiver),
	})
}

// createCall translates a method invocation.
//
// A failed overload resolution, or a call whose target is an error
// placeholder, becomes Invalid over the original receiver and arguments.
// Extension methods take their receiver as the first argument.
func (f *Factory) createCall(n *bound.Node) ir.Operation {
	if unusable(n, n.Method) {
		return f.invalid(n, n.Receiver, n.Arguments)
	}
	method := n.Method
	args, argsToParams := n.Arguments, n.ArgsToParams
	var instance ir.Operation
	if method.IsExtension && n.Receiver != nil && n.Receiver.Kind != bound.KindTypeExpression {
		args, argsToParams = injectReceiver(n.Receiver, args, argsToParams)
	} else {
		instance = f.createReceiver(n.Receiver, method)
	}
	arguments := f.DeriveArguments(method.Parameters, args, argsToParams, n.DefaultArguments, n.Expanded, n.Syntax)
	f.logger.Debug("call", "method", method.String(), "arguments", len(arguments))
	return ir.New(f.info(n), &ir.Invocation{
		TargetMethod: f.symbol(method),
		Instance:     instance,
		IsVirtual:    isVirtual(method, n.Receiver),
		Arguments:    arguments,
	})
}

// injectReceiver prepends an extension method's receiver to its argument
// list and shifts the argument-to-parameter map accordingly.
func injectReceiver(recv *bound.Node, args []*bound.Node, argsToParams []int) ([]*bound.Node, []int) {
	outArgs := make([]*bound.Node, 0, len(args)+1)
	outArgs = append(outArgs, recv)
	outArgs = append(outArgs, args...)
	if argsToParams == nil {
		return outArgs, nil
	}
	outMap := make([]int, 0, len(argsToParams)+1)
	outMap = append(outMap, 0)
	for _, p := range argsToParams {
		outMap = append(outMap, p+1)
	}
	return outArgs, outMap
}

// createObjectCreation translates "new T(args) { init }".
func (f *Factory) createObjectCreation(n *bound.Node) ir.Operation {
	if unusable(n, n.Method) {
		operands := append([]*bound.Node{}, n.Arguments...)
		if n.Initializer != nil {
			operands = append(operands, n.Initializer)
		}
		return f.invalid(n, nil, operands)
	}
	args := f.DeriveArguments(n.Method.Parameters, n.Arguments, n.ArgsToParams, n.DefaultArguments, n.Expanded, n.Syntax)
	return ir.New(f.info(n), &ir.ObjectCreation{
		Constructor: f.symbol(n.Method),
		Arguments:   args,
		Initializer: f.createInitializer(n.Initializer),
	})
}
