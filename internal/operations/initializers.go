package operations

import (
	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// createInitializer translates an object or collection initializer. A nil
// node yields a nil initializer so creation nodes can pass it through.
func (f *Factory) createInitializer(n *bound.Node) *ir.ObjectOrCollectionInitializer {
	if n == nil {
		return nil
	}
	return ir.New(f.info(n), &ir.ObjectOrCollectionInitializer{Initializers: f.createAll(n.Initializers)})
}

// receiverType is the type of the object an initializer element applies
// to: the bound implicit receiver's type when present, else the type that
// declares the member.
func receiverType(n *bound.Node) *bound.Type {
	if n.Receiver != nil && n.Receiver.Type != nil {
		return n.Receiver.Type
	}
	switch {
	case n.Member != nil:
		return n.Member.ContainingType
	case n.Method != nil:
		return n.Method.ContainingType
	}
	return nil
}

// implicitReceiver synthesizes the instance an initializer element reads
// or calls through. Each element gets a fresh node.
func (f *Factory) implicitReceiver(n *bound.Node, t *bound.Type) ir.Operation {
	return ir.New(f.generated(n.Syntax, t, nil), &ir.InstanceReference{ReferenceKind: ir.InstanceImplicitReceiver})
}

// createInitializerMember translates the target of "Member = value" (or
// "[index] = value") inside an object initializer.
func (f *Factory) createInitializerMember(n *bound.Node, receiver ir.Operation) ir.Operation {
	if unusable(n, n.Member) {
		return f.invalid(n, nil, n.Arguments)
	}
	if n.Member.IsStatic {
		receiver = nil
	}
	switch n.Member.Kind {
	case ir.SymbolKindField:
		return ir.New(f.info(n), &ir.FieldReference{Instance: receiver, Field: f.symbol(n.Member)})
	case ir.SymbolKindProperty:
		args := f.DeriveArguments(n.Member.Parameters, n.Arguments, n.ArgsToParams, n.DefaultArguments, n.Expanded, n.Syntax)
		return ir.New(f.info(n), &ir.PropertyReference{Instance: receiver, Property: f.symbol(n.Member), Arguments: args})
	case ir.SymbolKindEvent:
		return ir.New(f.info(n), &ir.EventReference{Instance: receiver, Event: f.symbol(n.Member)})
	}
	return f.invalid(n, nil, n.Arguments)
}

// createMemberInitializer translates "Member = { ... }", a nested
// initializer applied to the member's current value.
func (f *Factory) createMemberInitializer(n *bound.Node) ir.Operation {
	return ir.New(f.info(n), &ir.MemberInitializer{
		InitializedMember: f.Create(n.Left),
		Initializer:       f.createInitializer(n.Right),
	})
}

// createCollectionElement translates one element of a collection
// initializer into the Add call it stands for. The call is never spelled
// in source and is always implicit.
func (f *Factory) createCollectionElement(n *bound.Node, receiver ir.Operation) ir.Operation {
	if unusable(n, n.Method) {
		return f.invalid(n, nil, n.Arguments)
	}
	method := n.Method
	info := f.info(n)
	info.Generated = true
	if !method.IsExtension || len(method.Parameters) == 0 {
		if method.IsStatic {
			receiver = nil
		}
		return ir.New(info, &ir.Invocation{
			TargetMethod: f.symbol(method),
			Instance:     receiver,
			IsVirtual:    method.IsVirtualDispatch(),
			Arguments:    f.DeriveArguments(method.Parameters, n.Arguments, n.ArgsToParams, n.DefaultArguments, n.Expanded, n.Syntax),
		})
	}

	// An extension Add receives the collection as its first argument.
	this := ir.New(f.generated(n.Syntax, nil, nil), &ir.Argument{
		ArgumentKind:  ir.ArgumentPositional,
		Parameter:     f.symbol(method.Parameters[0]),
		Value:         receiver,
		InConversion:  identityConversion,
		OutConversion: ir.CommonConversion{},
	})
	var shifted []int
	if n.ArgsToParams != nil {
		shifted = make([]int, len(n.ArgsToParams))
		for i, p := range n.ArgsToParams {
			shifted[i] = p - 1
		}
	}
	var defaults []bool
	if len(n.DefaultArguments) > 0 {
		defaults = n.DefaultArguments[1:]
	}
	rest := f.DeriveArguments(method.Parameters[1:], n.Arguments, shifted, defaults, n.Expanded, n.Syntax)
	return ir.New(info, &ir.Invocation{
		TargetMethod: f.symbol(method),
		Arguments:    append([]*ir.Argument{this}, rest...),
	})
}

// createDynamicCollectionElement translates an element added through a
// dynamic receiver: a late-bound call to a member literally named "Add".
func (f *Factory) createDynamicCollectionElement(n *bound.Node, receiver ir.Operation) ir.Operation {
	info := f.info(n)
	info.Generated = true
	add := ir.New(f.generated(n.Syntax, nil, nil), &ir.DynamicMemberReference{
		Instance:   receiver,
		MemberName: "Add",
	})
	args, names, refs := f.dynamicArguments(n.Arguments)
	return ir.New(info, &ir.DynamicInvocation{
		Operation:        add,
		Arguments:        args,
		ArgumentNames:    names,
		ArgumentRefKinds: refs,
	})
}

// createAnonymousObjectCreation translates "new { A = a, B }". Each member
// becomes an implicit assignment to a property of the new object.
func (f *Factory) createAnonymousObjectCreation(n *bound.Node) ir.Operation {
	if len(n.Members) != len(n.Arguments) {
		panic(ir.Contractf("operations", "anonymous object has %d members for %d values", len(n.Members), len(n.Arguments)))
	}
	inits := make([]ir.Operation, len(n.Arguments))
	for i, arg := range n.Arguments {
		member := n.Members[i]
		value := f.Create(arg)
		target := ir.New(f.generated(arg.Syntax, member.Type, nil), &ir.PropertyReference{
			Instance: f.implicitReceiver(arg, n.Type),
			Property: f.symbol(member),
		})
		inits[i] = ir.New(f.generated(arg.Syntax, member.Type, nil), &ir.SimpleAssignment{Target: target, Value: value})
	}
	return ir.New(f.info(n), &ir.AnonymousObjectCreation{Initializers: inits})
}

// createArrayCreation translates "new T[n] { ... }". An array created from
// an initializer alone gets an implicit size literal.
func (f *Factory) createArrayCreation(n *bound.Node) ir.Operation {
	sizes := f.createAll(n.Arguments)
	init := f.arrayInitializer(n.Initializer)
	if len(sizes) == 0 && n.Initializer != nil {
		sizes = []ir.Operation{
			ir.New(f.generated(n.Initializer.Syntax, nil, ir.Int(len(n.Initializer.Initializers))), &ir.Literal{}),
		}
	}
	return ir.New(f.info(n), &ir.ArrayCreation{DimensionSizes: sizes, Initializer: init})
}

func (f *Factory) createArrayInitializer(n *bound.Node) ir.Operation {
	return f.arrayInitializer(n)
}

func (f *Factory) arrayInitializer(n *bound.Node) *ir.ArrayInitializer {
	if n == nil {
		return nil
	}
	return ir.New(f.info(n), &ir.ArrayInitializer{ElementValues: f.createAll(n.Initializers)})
}

// createDynamicObjectCreation translates "new T(args)" with dynamic
// arguments.
func (f *Factory) createDynamicObjectCreation(n *bound.Node) ir.Operation {
	args, names, refs := f.dynamicArguments(n.Arguments)
	return ir.New(f.info(n), &ir.DynamicObjectCreation{
		Arguments:        args,
		ArgumentNames:    names,
		ArgumentRefKinds: refs,
		Initializer:      f.createInitializer(n.Initializer),
	})
}
