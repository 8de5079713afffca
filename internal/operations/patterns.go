package operations

import (
	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// createPattern translates a pattern node. A positional subpattern is
// transparent: its pattern stands in a recursive pattern's deconstruction
// list directly.
func (f *Factory) createPattern(n *bound.Node) ir.Pattern {
	if n == nil {
		return nil
	}
	types := ir.PatternTypes{Input: f.typ(n.InputType), Narrowed: f.typ(n.NarrowedType)}
	switch n.Kind {
	case bound.KindPositionalSubpattern:
		return f.createPattern(n.Pattern)
	case bound.KindConstantPattern:
		return ir.New(f.info(n), &ir.ConstantPattern{PatternTypes: types, Value: f.Create(n.Operand)})
	case bound.KindDeclarationPattern:
		return ir.New(f.info(n), &ir.DeclarationPattern{
			PatternTypes:   types,
			MatchedType:    f.typ(n.MatchedType),
			MatchesNull:    n.IsVar,
			DeclaredSymbol: f.symbol(n.Local),
		})
	case bound.KindTypePattern:
		return ir.New(f.info(n), &ir.TypePattern{PatternTypes: types, MatchedType: f.typ(n.MatchedType)})
	case bound.KindDiscardPattern:
		return ir.New(f.info(n), &ir.DiscardPattern{PatternTypes: types})
	case bound.KindRecursivePattern:
		var deconstruction []ir.Pattern
		for _, s := range n.Subpatterns {
			deconstruction = append(deconstruction, f.createPattern(s))
		}
		var properties []*ir.PropertySubpattern
		for _, p := range n.Properties {
			properties = append(properties, f.propertySubpattern(p, n.MatchedType))
		}
		return ir.New(f.info(n), &ir.RecursivePattern{
			PatternTypes:              types,
			MatchedType:               f.typ(n.MatchedType),
			DeconstructSymbol:         f.symbol(n.Method),
			DeconstructionSubpatterns: deconstruction,
			PropertySubpatterns:       properties,
			DeclaredSymbol:            f.symbol(n.Local),
		})
	case bound.KindRelationalPattern:
		return ir.New(f.info(n), &ir.RelationalPattern{
			PatternTypes: types,
			OperatorKind: f.binaryKind(n),
			Value:        f.Create(n.Operand),
		})
	case bound.KindBinaryPattern:
		return ir.New(f.info(n), &ir.BinaryPattern{
			PatternTypes: types,
			OperatorKind: f.binaryKind(n),
			Left:         f.createPattern(n.Left),
			Right:        f.createPattern(n.Right),
		})
	case bound.KindNegatedPattern:
		return ir.New(f.info(n), &ir.NegatedPattern{PatternTypes: types, Pattern: f.createPattern(n.Pattern)})
	}
	panic(ir.Contractf("operations", "bound kind %s is not a pattern", n.Kind))
}

func (f *Factory) createPropertySubpattern(n *bound.Node) ir.Operation {
	return f.propertySubpattern(n, nil)
}

// propertySubpattern translates "Member: pattern". The member is read from
// the value being matched, so an instance member gets an implicit
// pattern-input receiver. input is the matched type of the enclosing
// pattern, if known.
func (f *Factory) propertySubpattern(n *bound.Node, input *bound.Type) *ir.PropertySubpattern {
	if n.Kind != bound.KindPropertySubpattern {
		panic(ir.Contractf("operations", "property subpattern has kind %s", n.Kind))
	}
	syntax := n.Designation
	if syntax == nil {
		syntax = n.Syntax
	}
	var member ir.Operation
	m := n.Member
	if m == nil || m.IsError {
		member = ir.New(ir.Info{Syntax: syntax}, &ir.Invalid{})
	} else {
		var instance ir.Operation
		if !m.IsStatic {
			t := input
			if t == nil {
				t = m.ContainingType
			}
			instance = ir.New(f.generated(syntax, t, nil), &ir.InstanceReference{ReferenceKind: ir.InstancePatternInput})
		}
		switch m.Kind {
		case ir.SymbolKindField:
			member = ir.New(ir.Info{Syntax: syntax, Type: f.typ(m.Type)}, &ir.FieldReference{Instance: instance, Field: f.symbol(m)})
		case ir.SymbolKindProperty:
			member = ir.New(ir.Info{Syntax: syntax, Type: f.typ(m.Type)}, &ir.PropertyReference{Instance: instance, Property: f.symbol(m)})
		default:
			member = ir.New(ir.Info{Syntax: syntax}, &ir.Invalid{Operands: []ir.Operation{instance}})
		}
	}
	return ir.New(f.info(n), &ir.PropertySubpattern{Member: member, Pattern: f.createPattern(n.Pattern)})
}
