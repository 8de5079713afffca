package operations

import (
	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// DeriveArguments builds the Argument list of a call, indexer access or
// constructor call, in parameter-declaration order (which is also the
// order the arguments are evaluated in).
//
//   - argsToParams maps each bound argument to its parameter ordinal; nil
//     means arguments are positional.
//   - defaults is indexed by parameter ordinal and marks parameters the
//     caller left out so that their default value applies.
//   - expanded packs every argument mapped to the trailing params
//     parameter into one synthesized array-valued Argument. When false, an
//     array passed directly stays an ordinary Argument.
//   - syntax is the call-site syntax, used for synthesized Arguments.
//
// The result is empty only when both params and args are empty; an
// erroneous call with parameters but no arguments still receives default
// value (or omitted) Arguments. Arguments matching no parameter are
// appended last with a nil Parameter.
func (f *Factory) DeriveArguments(params []*bound.Symbol, args []*bound.Node, argsToParams []int, defaults []bool, expanded bool, syntax *ir.Syntax) []*ir.Argument {
	if len(params) == 0 && len(args) == 0 {
		return nil
	}
	if argsToParams != nil && len(argsToParams) != len(args) {
		panic(ir.Contractf("operations", "argument map has %d entries for %d arguments", len(argsToParams), len(args)))
	}

	last := len(params) - 1
	// Without parameters there is no params array to pack into.
	packing := expanded && last >= 0
	slots := make([]*bound.Node, len(params))
	var packed, extra []*bound.Node
	for i, a := range args {
		p := i
		switch {
		case argsToParams != nil:
			p = argsToParams[i]
		case packing && p > last:
			p = last
		}
		switch {
		case packing && p == last:
			packed = append(packed, a)
		case p >= 0 && p < len(params) && slots[p] == nil:
			slots[p] = a
		default:
			extra = append(extra, a)
		}
	}

	out := make([]*ir.Argument, 0, len(params)+len(extra))
	for p, param := range params {
		switch {
		case packing && p == last:
			out = append(out, f.paramArrayArgument(param, packed, syntax))
		case slots[p] != nil:
			out = append(out, f.explicitArgument(param, slots[p]))
		case (p < len(defaults) && defaults[p]) || param.HasDefault:
			out = append(out, f.defaultArgument(param, syntax))
		default:
			out = append(out, f.omittedArgument(param, syntax))
		}
	}
	for _, a := range extra {
		out = append(out, f.explicitArgument(nil, a))
	}
	return out
}

// explicitArgument wraps an argument the caller wrote. Its syntax is the
// argument's call-site syntax (including any "name:" prefix) so consumers
// can recover the original source order.
func (f *Factory) explicitArgument(param *bound.Symbol, a *bound.Node) *ir.Argument {
	kind := ir.ArgumentPositional
	if a.ArgumentName != "" {
		kind = ir.ArgumentNamed
	}
	syntax := a.ArgumentSyntax
	if syntax == nil {
		syntax = derivedSyntax(a.Syntax, "Argument")
	}
	out := identityConversion
	if a.ArgumentRefKind == ir.RefNone {
		out = ir.CommonConversion{}
	}
	return ir.New(ir.Info{Syntax: syntax}, &ir.Argument{
		ArgumentKind:  kind,
		Parameter:     f.symbol(param),
		Value:         f.Create(a),
		InConversion:  identityConversion,
		OutConversion: out,
	})
}

// paramArrayArgument packs elements into "new T[] { elements }".
func (f *Factory) paramArrayArgument(param *bound.Symbol, elements []*bound.Node, syntax *ir.Syntax) *ir.Argument {
	values := f.createAll(elements)
	size := ir.New(f.generated(syntax, nil, ir.Int(len(values))), &ir.Literal{})
	init := ir.New(f.generated(syntax, nil, nil), &ir.ArrayInitializer{ElementValues: values})
	array := ir.New(f.generated(syntax, param.Type, nil), &ir.ArrayCreation{
		DimensionSizes: []ir.Operation{size},
		Initializer:    init,
	})
	return ir.New(f.generated(syntax, nil, nil), &ir.Argument{
		ArgumentKind:  ir.ArgumentParamArray,
		Parameter:     f.symbol(param),
		Value:         array,
		InConversion:  identityConversion,
		OutConversion: ir.CommonConversion{},
	})
}

// defaultArgument fills an omitted optional parameter with its default.
func (f *Factory) defaultArgument(param *bound.Symbol, syntax *ir.Syntax) *ir.Argument {
	var value ir.Operation
	if param.Default != nil {
		value = ir.New(f.generated(syntax, param.Type, param.Default), &ir.Literal{})
	} else {
		value = ir.New(f.generated(syntax, param.Type, nil), &ir.DefaultValue{})
	}
	return ir.New(f.generated(syntax, nil, nil), &ir.Argument{
		ArgumentKind:  ir.ArgumentDefaultValue,
		Parameter:     f.symbol(param),
		Value:         value,
		InConversion:  identityConversion,
		OutConversion: ir.CommonConversion{},
	})
}

// omittedArgument marks a required parameter the (erroneous) call did not
// supply.
func (f *Factory) omittedArgument(param *bound.Symbol, syntax *ir.Syntax) *ir.Argument {
	return ir.New(f.generated(syntax, nil, nil), &ir.Argument{
		ArgumentKind: ir.ArgumentOmitted,
		Parameter:    f.symbol(param),
		Value:        ir.New(f.generated(syntax, param.Type, nil), &ir.OmittedArgument{}),
	})
}
