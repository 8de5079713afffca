package fixture

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// builtinTypes are available to every fixture without a declaration.
var builtinTypes = []struct {
	name string
	kind bound.TypeKind
}{
	{"int", bound.TypeStruct},
	{"long", bound.TypeStruct},
	{"double", bound.TypeStruct},
	{"char", bound.TypeStruct},
	{"bool", bound.TypeStruct},
	{"void", bound.TypeStruct},
	{"string", bound.TypeClass},
	{"object", bound.TypeClass},
	{"dynamic", bound.TypeDynamic},
}

// resolver turns a Document into bound structures. It keeps going after
// the first problem so one load reports every broken reference.
type resolver struct {
	loc      locator
	filename string

	types   map[string]*bound.Type
	symbols map[string]*bound.Symbol
	syntax  map[string]*ir.Syntax

	errs []error
}

func newResolver(filename string, loc locator) *resolver {
	return &resolver{
		loc:      loc,
		filename: filename,
		types:    make(map[string]*bound.Type),
		symbols:  make(map[string]*bound.Symbol),
		syntax:   make(map[string]*ir.Syntax),
	}
}

func (r *resolver) fail(code string, p fieldPath, format string, args ...any) {
	e := &LoadError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Path:     p.String(),
		Filename: r.filename,
	}
	if r.loc != nil {
		r.loc.locate(e, p)
	}
	r.errs = append(r.errs, e)
}

func (r *resolver) err() error {
	return errors.Join(r.errs...)
}

// sortedKeys gives deterministic error order over the declaration maps.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *resolver) declareTypes(specs map[string]TypeSpec) {
	for _, b := range builtinTypes {
		r.types[b.name] = &bound.Type{Name: b.name, Kind: b.kind}
	}
	root := fieldPath{"types"}
	names := sortedKeys(specs)
	for _, name := range names {
		spec := specs[name]
		kind, ok := bound.ParseTypeKind(spec.Kind)
		if !ok {
			r.fail(ErrCodeBadEnum, root.field(name).field("kind"), "unknown type kind %q", spec.Kind)
		}
		r.types[name] = &bound.Type{Name: name, Kind: kind}
	}
	for _, name := range names {
		spec, t := specs[name], r.types[name]
		p := root.field(name)
		t.ElementType = r.typ(spec.Element, p.field("element"))
		for i, iface := range spec.Interfaces {
			if it := r.typ(iface, p.field("interfaces").index(i)); it != nil {
				t.Interfaces = append(t.Interfaces, it)
			}
		}
	}
}

func (r *resolver) declareSymbols(specs map[string]SymbolSpec) {
	root := fieldPath{"symbols"}
	names := sortedKeys(specs)
	for _, key := range names {
		spec := specs[key]
		p := root.field(key)
		kind, ok := ir.ParseSymbolKind(spec.Kind)
		if !ok || kind == ir.SymbolKindType {
			r.fail(ErrCodeBadEnum, p.field("kind"), "unknown symbol kind %q", spec.Kind)
		}
		name := spec.Name
		if name == "" {
			name = key
		}
		s := &bound.Symbol{
			Kind:        kind,
			Name:        name,
			IsStatic:    spec.Static,
			IsVirtual:   spec.Virtual,
			IsAbstract:  spec.Abstract,
			IsOverride:  spec.Override,
			IsParams:    spec.Params,
			IsExtension: spec.Extension,
			IsError:     spec.Error,
			HasDefault:  spec.HasDefault || spec.Default != nil,
		}
		if spec.MethodKind != "" {
			mk, ok := bound.ParseMethodKind(spec.MethodKind)
			if !ok {
				r.fail(ErrCodeBadEnum, p.field("method_kind"), "unknown method kind %q", spec.MethodKind)
			}
			s.MethodKind = mk
		}
		rk, ok := ir.ParseRefKind(spec.RefKind)
		if !ok {
			r.fail(ErrCodeBadEnum, p.field("ref_kind"), "unknown ref kind %q", spec.RefKind)
		}
		s.RefKind = rk
		s.Default = r.constant(spec.Default, p.field("default"))
		r.symbols[key] = s
	}
	for _, key := range names {
		spec, s := specs[key], r.symbols[key]
		p := root.field(key)
		s.Type = r.typ(spec.Type, p.field("type"))
		s.ContainingType = r.typ(spec.Containing, p.field("containing"))
		for i, param := range spec.Parameters {
			if ps := r.symbol(param, p.field("parameters").index(i)); ps != nil {
				s.Parameters = append(s.Parameters, ps)
			}
		}
	}
}

func (r *resolver) typ(name string, p fieldPath) *bound.Type {
	if name == "" {
		return nil
	}
	t, ok := r.types[name]
	if !ok {
		r.fail(ErrCodeUnknownType, p, "unknown type %q", name)
	}
	return t
}

func (r *resolver) typeList(names []string, p fieldPath) []*bound.Type {
	var out []*bound.Type
	for i, name := range names {
		if t := r.typ(name, p.index(i)); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (r *resolver) symbol(name string, p fieldPath) *bound.Symbol {
	if name == "" {
		return nil
	}
	s, ok := r.symbols[name]
	if !ok {
		r.fail(ErrCodeUnknownSymbol, p, "unknown symbol %q", name)
	}
	return s
}

func (r *resolver) symbolList(names []string, p fieldPath) []*bound.Symbol {
	var out []*bound.Symbol
	for i, name := range names {
		if s := r.symbol(name, p.index(i)); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (r *resolver) constant(c *ConstantSpec, p fieldPath) ir.Value {
	if c == nil {
		return nil
	}
	var out []ir.Value
	if c.Int != nil {
		out = append(out, ir.Int(*c.Int))
	}
	if c.Float != nil {
		out = append(out, ir.Float(*c.Float))
	}
	if c.String != nil {
		out = append(out, ir.String(*c.String))
	}
	if c.Bool != nil {
		out = append(out, ir.Bool(*c.Bool))
	}
	if c.Char != nil {
		ch, size := utf8.DecodeRuneInString(*c.Char)
		if size == 0 || size != len(*c.Char) {
			r.fail(ErrCodeBadConstant, p.field("char"), "char constant must be exactly one character, got %q", *c.Char)
			return nil
		}
		out = append(out, ir.Char(ch))
	}
	if c.Null {
		out = append(out, ir.Null{})
	}
	if len(out) != 1 {
		r.fail(ErrCodeBadConstant, p, "constant must set exactly one of int, float, string, bool, char, null (got %d)", len(out))
		return nil
	}
	return out[0]
}

// collectSyntax registers every syntax id in the body before any ref is
// resolved, so a ref may precede its declaration.
func (r *resolver) collectSyntax(s *NodeSpec, p fieldPath) {
	if s == nil {
		return
	}
	for _, ss := range []struct {
		name string
		spec *SyntaxSpec
	}{{"syntax", s.Syntax}, {"argument_syntax", s.ArgumentSyntax}, {"designation", s.Designation}} {
		if ss.spec == nil || ss.spec.ID == "" {
			continue
		}
		if ss.spec.Ref != "" {
			r.fail(ErrCodeBadSyntax, p.field(ss.name), "syntax %q sets both id and ref", ss.spec.ID)
			continue
		}
		if _, dup := r.syntax[ss.spec.ID]; dup {
			r.fail(ErrCodeBadSyntax, p.field(ss.name).field("id"), "duplicate syntax id %q", ss.spec.ID)
			continue
		}
		r.syntax[ss.spec.ID] = newSyntax(ss.spec)
	}
	s.eachChild(p, r.collectSyntax)
}

func newSyntax(s *SyntaxSpec) *ir.Syntax {
	return &ir.Syntax{
		Kind:    s.Kind,
		Text:    s.Text,
		Span:    ir.Span{Start: s.Start, End: s.End},
		Missing: s.Missing,
	}
}

func (r *resolver) syntaxOf(s *SyntaxSpec, p fieldPath) *ir.Syntax {
	switch {
	case s == nil:
		return nil
	case s.Ref != "":
		syn, ok := r.syntax[s.Ref]
		if !ok {
			r.fail(ErrCodeBadSyntax, p.field("ref"), "unknown syntax ref %q", s.Ref)
		}
		return syn
	case s.ID != "":
		return r.syntax[s.ID]
	}
	if s.End < s.Start {
		r.fail(ErrCodeBadSyntax, p, "span end %d precedes start %d", s.End, s.Start)
	}
	return newSyntax(s)
}

func (r *resolver) node(s *NodeSpec, p fieldPath) *bound.Node {
	if s == nil {
		return nil
	}
	kind, ok := bound.ParseKind(s.Kind)
	if !ok || kind == bound.KindInvalid {
		r.fail(ErrCodeUnknownKind, p.field("kind"), "unknown node kind %q", s.Kind)
		kind = bound.KindBadExpression
	}
	n := &bound.Node{
		Kind:              kind,
		Syntax:            r.syntaxOf(s.Syntax, p.field("syntax")),
		Type:              r.typ(s.Type, p.field("type")),
		Constant:          r.constant(s.Constant, p.field("constant")),
		CompilerGenerated: s.Generated,

		Receiver:    r.node(s.Receiver, p.field("receiver")),
		Operand:     r.node(s.Operand, p.field("operand")),
		Left:        r.node(s.Left, p.field("left")),
		Right:       r.node(s.Right, p.field("right")),
		Condition:   r.node(s.Condition, p.field("condition")),
		Consequence: r.node(s.Consequence, p.field("consequence")),
		Alternative: r.node(s.Alternative, p.field("alternative")),
		Body:        r.node(s.Body, p.field("body")),
		Initializer: r.node(s.Initializer, p.field("initializer")),
		Pattern:     r.node(s.Pattern, p.field("pattern")),
		Guard:       r.node(s.Guard, p.field("guard")),
		Finally:     r.node(s.Finally, p.field("finally")),
		Filter:      r.node(s.Filter, p.field("filter")),
		Alignment:   r.node(s.Alignment, p.field("alignment")),
		Format:      r.node(s.Format, p.field("format")),

		Arguments:    r.nodes(s.Arguments, p.field("arguments")),
		Statements:   r.nodes(s.Statements, p.field("statements")),
		Initializers: r.nodes(s.Initializers, p.field("initializers")),
		Increments:   r.nodes(s.Increments, p.field("increments")),
		Sections:     r.nodes(s.Sections, p.field("sections")),
		Labels:       r.nodes(s.Labels, p.field("labels")),
		Subpatterns:  r.nodes(s.Subpatterns, p.field("subpatterns")),
		Properties:   r.nodes(s.Properties, p.field("properties")),

		ArgsToParams:     s.ArgsToParams,
		DefaultArguments: s.DefaultArguments,
		Expanded:         s.Expanded,

		ArgumentName:   s.ArgumentName,
		ArgumentSyntax: r.syntaxOf(s.ArgumentSyntax, p.field("argument_syntax")),

		Method:        r.symbol(s.Method, p.field("method")),
		Member:        r.symbol(s.Member, p.field("member")),
		Local:         r.symbol(s.Local, p.field("local")),
		Label:         r.symbol(s.Label, p.field("label")),
		ContinueLabel: r.symbol(s.ContinueLabel, p.field("continue_label")),
		BreakLabel:    r.symbol(s.BreakLabel, p.field("break_label")),
		Locals:        r.symbolList(s.Locals, p.field("locals")),
		Members:       r.symbolList(s.Members, p.field("members")),

		TypeOperand:   r.typ(s.TypeOperand, p.field("type_operand")),
		MatchedType:   r.typ(s.MatchedType, p.field("matched_type")),
		InputType:     r.typ(s.InputType, p.field("input_type")),
		NarrowedType:  r.typ(s.NarrowedType, p.field("narrowed_type")),
		NaturalType:   r.typ(s.NaturalType, p.field("natural_type")),
		TypeArguments: r.typeList(s.TypeArguments, p.field("type_arguments")),

		OperatorKind: s.Operator,
		Checked:      s.Checked,
		Lifted:       s.Lifted,
		IsRef:        s.Ref,
		IsAsync:      s.Async,
		IsNegated:    s.Negated,
		IsAddition:   s.Addition,
		IsVar:        s.Var,

		Designation: r.syntaxOf(s.Designation, p.field("designation")),
		MemberName:  s.MemberName,
	}
	if n.Syntax == nil {
		n.Syntax = &ir.Syntax{Kind: kind.String()}
	}
	if s.Result != "" {
		if n.ResultKind, ok = bound.ParseResultKind(s.Result); !ok {
			r.fail(ErrCodeBadEnum, p.field("result"), "unknown result kind %q", s.Result)
		}
	}
	if s.Conversion != "" {
		if n.ConversionKind, ok = bound.ParseConversionKind(s.Conversion); !ok {
			r.fail(ErrCodeBadEnum, p.field("conversion"), "unknown conversion kind %q", s.Conversion)
		}
	}
	if s.Declaration != "" {
		if n.DeclarationKind, ok = bound.ParseDeclarationKind(s.Declaration); !ok {
			r.fail(ErrCodeBadEnum, p.field("declaration"), "unknown declaration kind %q", s.Declaration)
		}
	}
	if n.ArgumentRefKind, ok = ir.ParseRefKind(s.ArgumentRef); !ok {
		r.fail(ErrCodeBadEnum, p.field("argument_ref"), "unknown ref kind %q", s.ArgumentRef)
	}
	if len(s.ArgsToParams) > 0 && len(s.ArgsToParams) != len(s.Arguments) {
		r.fail(ErrCodeBadArguments, p.field("args_to_params"), "%d entries for %d arguments", len(s.ArgsToParams), len(s.Arguments))
	}
	if len(s.DefaultArguments) > 0 && len(s.DefaultArguments) != len(s.Arguments) {
		r.fail(ErrCodeBadArguments, p.field("default_arguments"), "%d entries for %d arguments", len(s.DefaultArguments), len(s.Arguments))
	}
	return n
}

func (r *resolver) nodes(specs []*NodeSpec, p fieldPath) []*bound.Node {
	if len(specs) == 0 {
		return nil
	}
	out := make([]*bound.Node, 0, len(specs))
	for i, s := range specs {
		if n := r.node(s, p.index(i)); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// eachChild calls fn for every child spec of s with its path.
func (s *NodeSpec) eachChild(p fieldPath, fn func(*NodeSpec, fieldPath)) {
	one := func(name string, c *NodeSpec) {
		if c != nil {
			fn(c, p.field(name))
		}
	}
	many := func(name string, cs []*NodeSpec) {
		for i, c := range cs {
			if c != nil {
				fn(c, p.field(name).index(i))
			}
		}
	}
	one("receiver", s.Receiver)
	one("operand", s.Operand)
	one("left", s.Left)
	one("right", s.Right)
	one("condition", s.Condition)
	one("consequence", s.Consequence)
	one("alternative", s.Alternative)
	one("body", s.Body)
	one("initializer", s.Initializer)
	one("pattern", s.Pattern)
	one("guard", s.Guard)
	one("finally", s.Finally)
	one("filter", s.Filter)
	one("alignment", s.Alignment)
	one("format", s.Format)
	many("arguments", s.Arguments)
	many("statements", s.Statements)
	many("initializers", s.Initializers)
	many("increments", s.Increments)
	many("sections", s.Sections)
	many("labels", s.Labels)
	many("subpatterns", s.Subpatterns)
	many("properties", s.Properties)
}
