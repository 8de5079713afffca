package ir

import (
	"fmt"
	"strings"
)

// Dump renders op as a dump Value suitable for MarshalCanonical. The
// dump records kind, syntax span, type, constant, implicitness, the
// variant's own attributes, and the children in order.
//
// Dump forces every lazy child under op.
func Dump(op Operation) Value {
	if op == nil {
		return Null{}
	}
	obj := NewObject(
		O("kind", String(op.Kind().String())),
		O("type", symbolValue(op.Type())),
		O("constant", op.ConstantValue()),
		O("implicit", Bool(op.IsImplicit())),
	)
	if s := op.Syntax(); s != nil {
		obj["syntax"] = NewObject(
			O("kind", String(s.Kind)),
			O("start", Int(s.Span.Start)),
			O("end", Int(s.Span.End)),
		)
	}
	for _, p := range attributes(op) {
		if p.Value != nil {
			obj[p.Key] = p.Value
		}
	}
	children := op.Children()
	if len(children) > 0 {
		arr := make(Array, len(children))
		for i, c := range children {
			arr[i] = Dump(c)
		}
		obj["children"] = arr
	}
	return obj
}

func symbolValue(s Symbol) Value {
	if s == nil {
		return nil
	}
	return String(s.String())
}

func symbolList(syms []Symbol) Value {
	if len(syms) == 0 {
		return nil
	}
	arr := make(Array, len(syms))
	for i, s := range syms {
		arr[i] = symbolValue(s)
	}
	return arr
}

func flag(b bool) Value {
	if !b {
		return nil
	}
	return Bool(true)
}

func conversionValue(c CommonConversion) Value {
	if !c.Exists {
		return nil
	}
	return NewObject(
		O("identity", flag(c.IsIdentity)),
		O("numeric", flag(c.IsNumeric)),
		O("reference", flag(c.IsReference)),
		O("nullable", flag(c.IsNullable)),
		O("implicit", flag(c.IsImplicit)),
		O("user_defined", flag(c.IsUserDefined)),
		O("method", symbolValue(c.MethodSymbol)),
	)
}

func patternTypes(p PatternTypes) []Pair {
	return []Pair{O("input_type", symbolValue(p.Input)), O("narrowed_type", symbolValue(p.Narrowed))}
}

// attributes lists the variant-specific fields that are not children.
func attributes(op Operation) []Pair {
	switch o := op.(type) {
	case *Block:
		return []Pair{O("locals", symbolList(o.Locals))}
	case *VariableDeclarator:
		return []Pair{O("symbol", symbolValue(o.Symbol))}
	case *FieldInitializer:
		return []Pair{O("fields", symbolList(o.Fields))}
	case *PropertyInitializer:
		return []Pair{O("properties", symbolList(o.Properties))}
	case *ParameterInitializer:
		return []Pair{O("parameter", symbolValue(o.Parameter))}
	case *Loop:
		return []Pair{
			O("loop_kind", String(o.LoopKind.String())),
			O("condition_is_top", Bool(o.ConditionIsTop)),
			O("locals", symbolList(o.Locals)),
			O("continue_label", symbolValue(o.ContinueLabel)),
			O("exit_label", symbolValue(o.ExitLabel)),
		}
	case *ForEachLoop:
		return []Pair{
			O("loop_kind", String(LoopForEach.String())),
			O("async", flag(o.IsAsynchronous)),
			O("enumerator_disposable", flag(o.EnumeratorDisposable)),
			O("get_enumerator", symbolValue(o.GetEnumeratorMethod)),
			O("continue_label", symbolValue(o.ContinueLabel)),
			O("exit_label", symbolValue(o.ExitLabel)),
		}
	case *Labeled:
		return []Pair{O("label", symbolValue(o.Label))}
	case *Branch:
		return []Pair{O("branch_kind", String(o.BranchKind.String())), O("target", symbolValue(o.Target))}
	case *CatchClause:
		return []Pair{O("exception_type", symbolValue(o.ExceptionType))}
	case *Using:
		return []Pair{O("async", flag(o.IsAsynchronous)), O("dispose_method", symbolValue(o.DisposeMethod))}
	case *UsingDeclaration:
		return []Pair{O("async", flag(o.IsAsynchronous)), O("dispose_method", symbolValue(o.DisposeMethod))}
	case *LocalFunction:
		return []Pair{O("symbol", symbolValue(o.Symbol))}
	case *CaseClause:
		return []Pair{O("case_kind", String(o.CaseKind.String())), O("label", symbolValue(o.Label))}
	case *Conversion:
		return []Pair{
			O("conversion", conversionValue(o.Conversion)),
			O("operator_method", symbolValue(o.OperatorMethod)),
			O("try_cast", flag(o.IsTryCast)),
			O("checked", flag(o.IsChecked)),
		}
	case *Unary:
		return []Pair{
			O("operator", String(o.OperatorKind.String())),
			O("lifted", flag(o.IsLifted)),
			O("checked", flag(o.IsChecked)),
			O("operator_method", symbolValue(o.OperatorMethod)),
		}
	case *Binary:
		return []Pair{
			O("operator", String(o.OperatorKind.String())),
			O("lifted", flag(o.IsLifted)),
			O("checked", flag(o.IsChecked)),
			O("operator_method", symbolValue(o.OperatorMethod)),
		}
	case *TupleBinary:
		return []Pair{O("operator", String(o.OperatorKind.String()))}
	case *Conditional:
		return []Pair{O("ref", flag(o.IsRef))}
	case *AnonymousFunction:
		return []Pair{O("symbol", symbolValue(o.Symbol))}
	case *ObjectCreation:
		return []Pair{O("constructor", symbolValue(o.Constructor))}
	case *SimpleAssignment:
		return []Pair{O("ref", flag(o.IsRef))}
	case *CompoundAssignment:
		return []Pair{
			O("operator", String(o.OperatorKind.String())),
			O("in_conversion", conversionValue(o.InConversion)),
			O("out_conversion", conversionValue(o.OutConversion)),
			O("operator_method", symbolValue(o.OperatorMethod)),
		}
	case *EventAssignment:
		return []Pair{O("adds", Bool(o.Adds))}
	case *Increment:
		return []Pair{O("postfix", flag(o.IsPostfix)), O("operator_method", symbolValue(o.OperatorMethod))}
	case *IsType:
		return []Pair{O("type_operand", symbolValue(o.TypeOperand)), O("negated", flag(o.IsNegated))}
	case *TypeOf:
		return []Pair{O("type_operand", symbolValue(o.TypeOperand))}
	case *SizeOf:
		return []Pair{O("type_operand", symbolValue(o.TypeOperand))}
	case *Tuple:
		return []Pair{O("natural_type", symbolValue(o.NaturalType))}
	case *Discard:
		return []Pair{O("symbol", symbolValue(o.Symbol))}
	case *Range:
		return []Pair{O("method", symbolValue(o.Method))}
	case *LocalReference:
		return []Pair{O("local", symbolValue(o.Local)), O("declaration", flag(o.IsDeclaration))}
	case *ParameterReference:
		return []Pair{O("parameter", symbolValue(o.Parameter))}
	case *InstanceReference:
		return []Pair{O("reference_kind", String(o.ReferenceKind.String()))}
	case *FieldReference:
		return []Pair{O("field", symbolValue(o.Field)), O("declaration", flag(o.IsDeclaration))}
	case *PropertyReference:
		return []Pair{O("property", symbolValue(o.Property))}
	case *EventReference:
		return []Pair{O("event", symbolValue(o.Event))}
	case *MethodReference:
		return []Pair{O("method", symbolValue(o.Method)), O("virtual", flag(o.IsVirtual))}
	case *Invocation:
		return []Pair{O("method", symbolValue(o.TargetMethod)), O("virtual", flag(o.IsVirtual))}
	case *Argument:
		return []Pair{
			O("argument_kind", String(o.ArgumentKind.String())),
			O("parameter", symbolValue(o.Parameter)),
			O("in_conversion", conversionValue(o.InConversion)),
			O("out_conversion", conversionValue(o.OutConversion)),
		}
	case *DynamicMemberReference:
		return []Pair{O("member_name", String(o.MemberName)), O("type_arguments", symbolList(o.TypeArguments))}
	case *DynamicInvocation:
		return dynamicArgs(o.ArgumentNames, o.ArgumentRefKinds)
	case *DynamicIndexerAccess:
		return dynamicArgs(o.ArgumentNames, o.ArgumentRefKinds)
	case *DynamicObjectCreation:
		return dynamicArgs(o.ArgumentNames, o.ArgumentRefKinds)
	case *ConstantPattern:
		return patternTypes(o.PatternTypes)
	case *DeclarationPattern:
		return append(patternTypes(o.PatternTypes),
			O("matched_type", symbolValue(o.MatchedType)),
			O("matches_null", flag(o.MatchesNull)),
			O("declared", symbolValue(o.DeclaredSymbol)))
	case *TypePattern:
		return append(patternTypes(o.PatternTypes), O("matched_type", symbolValue(o.MatchedType)))
	case *DiscardPattern:
		return patternTypes(o.PatternTypes)
	case *RecursivePattern:
		return append(patternTypes(o.PatternTypes),
			O("matched_type", symbolValue(o.MatchedType)),
			O("deconstruct", symbolValue(o.DeconstructSymbol)),
			O("declared", symbolValue(o.DeclaredSymbol)))
	case *RelationalPattern:
		return append(patternTypes(o.PatternTypes), O("operator", String(o.OperatorKind.String())))
	case *BinaryPattern:
		return append(patternTypes(o.PatternTypes), O("operator", String(o.OperatorKind.String())))
	case *NegatedPattern:
		return patternTypes(o.PatternTypes)
	}
	return nil
}

func dynamicArgs(names []string, refs []RefKind) []Pair {
	var out []Pair
	if len(names) > 0 {
		arr := make(Array, len(names))
		for i, n := range names {
			arr[i] = String(n)
		}
		out = append(out, O("argument_names", arr))
	}
	if len(refs) > 0 {
		arr := make(Array, len(refs))
		for i, r := range refs {
			arr[i] = String(r.String())
		}
		out = append(out, O("argument_ref_kinds", arr))
	}
	return out
}

// Format renders op as an indented, human-readable tree, one node per
// line. Used by the CLI text output and golden files.
func Format(op Operation) string {
	var sb strings.Builder
	formatNode(&sb, op, 0)
	return sb.String()
}

func formatNode(sb *strings.Builder, op Operation, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if op == nil {
		sb.WriteString("<nil>\n")
		return
	}
	sb.WriteString(op.Kind().String())
	if t := op.Type(); t != nil {
		fmt.Fprintf(sb, " (Type: %s)", t)
	}
	if c := op.ConstantValue(); c != nil {
		fmt.Fprintf(sb, " (Constant: %s)", ValueString(c))
	}
	if op.IsImplicit() {
		sb.WriteString(" (Implicit)")
	}
	for _, p := range attributes(op) {
		if p.Value == nil {
			continue
		}
		fmt.Fprintf(sb, " %s=%s", p.Key, attrString(p.Value))
	}
	if s := op.Syntax(); s != nil {
		fmt.Fprintf(sb, " (Syntax: %s)", s)
	}
	sb.WriteByte('\n')
	for _, c := range op.Children() {
		formatNode(sb, c, depth+1)
	}
}

func attrString(v Value) string {
	switch val := v.(type) {
	case String:
		return string(val)
	case Array:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = attrString(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case Object:
		var parts []string
		for _, k := range val.SortedKeys() {
			parts = append(parts, k+":"+attrString(val[k]))
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return ValueString(v)
}
