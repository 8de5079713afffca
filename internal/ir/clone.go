package ir

import "slices"

// Cloner produces detached deep copies of Operation subtrees. The flow
// builder places such copies in basic blocks so the Operation Tree keeps
// its parent links. Clones share syntax, symbols and constants with the
// original; the clone of any node is a root.
type Cloner struct {
	// Rewrite, when set, substitutes its non-nil result for the copy of a
	// node. The result must be unparented and is not descended into.
	Rewrite func(Operation) Operation
}

// Clone deep-copies op with a zero Cloner.
func Clone(op Operation) Operation {
	var c Cloner
	return c.Clone(op)
}

func infoOf(op Operation) Info {
	return Info{
		Syntax:    op.Syntax(),
		Type:      op.Type(),
		Constant:  op.ConstantValue(),
		Generated: op.IsGenerated(),
	}
}

// cloneAs clones op and asserts that the copy keeps op's static type.
func cloneAs[T child](c *Cloner, op T) T {
	var zero T
	if op == zero {
		return zero
	}
	out, ok := c.Clone(op).(T)
	if !ok {
		panic(Contractf("ir", "rewrite of %s changed its variant", op.Kind()))
	}
	return out
}

func cloneList[T child](c *Cloner, ops []T) []T {
	if ops == nil {
		return nil
	}
	out := make([]T, len(ops))
	for i, op := range ops {
		out[i] = cloneAs(c, op)
	}
	return out
}

// Clone deep-copies op. Lazy children of blocks and functions stay lazy
// in the copy: they are cloned when first accessed.
func (c *Cloner) Clone(op Operation) Operation {
	if op == nil {
		return nil
	}
	if c.Rewrite != nil {
		if r := c.Rewrite(op); r != nil {
			return r
		}
	}
	info := infoOf(op)
	switch o := op.(type) {
	// statements
	case *Block:
		return NewBlock(info, o.Locals, func() []Operation { return cloneList(c, o.Operations()) })
	case *VariableDeclarationGroup:
		return New(info, &VariableDeclarationGroup{Declarations: cloneList(c, o.Declarations)})
	case *VariableDeclaration:
		return New(info, &VariableDeclaration{
			Declarators:       cloneList(c, o.Declarators),
			Initializer:       cloneAs(c, o.Initializer),
			IgnoredDimensions: cloneList(c, o.IgnoredDimensions),
		})
	case *VariableDeclarator:
		return New(info, &VariableDeclarator{
			Symbol:           o.Symbol,
			Initializer:      cloneAs(c, o.Initializer),
			IgnoredArguments: cloneList(c, o.IgnoredArguments),
		})
	case *VariableInitializer:
		return New(info, &VariableInitializer{Locals: o.Locals, Value: c.Clone(o.Value)})
	case *FieldInitializer:
		return New(info, &FieldInitializer{Locals: o.Locals, Fields: o.Fields, Value: c.Clone(o.Value)})
	case *PropertyInitializer:
		return New(info, &PropertyInitializer{Locals: o.Locals, Properties: o.Properties, Value: c.Clone(o.Value)})
	case *ParameterInitializer:
		return New(info, &ParameterInitializer{Locals: o.Locals, Parameter: o.Parameter, Value: c.Clone(o.Value)})
	case *Loop:
		return New(info, &Loop{
			LoopKind:       o.LoopKind,
			ConditionIsTop: o.ConditionIsTop,
			Condition:      c.Clone(o.Condition),
			Body:           c.Clone(o.Body),
			Before:         cloneList(c, o.Before),
			AtLoopBottom:   cloneList(c, o.AtLoopBottom),
			Locals:         o.Locals,
			ContinueLabel:  o.ContinueLabel,
			ExitLabel:      o.ExitLabel,
		})
	case *ForEachLoop:
		cp := *o
		cp.node = node{}
		cp.LoopControlVariable = c.Clone(o.LoopControlVariable)
		cp.Collection = c.Clone(o.Collection)
		cp.Body = c.Clone(o.Body)
		cp.NextVariables = cloneList(c, o.NextVariables)
		return New(info, &cp)
	case *Labeled:
		return New(info, &Labeled{Label: o.Label, Operation: c.Clone(o.Operation)})
	case *Branch:
		return New(info, &Branch{BranchKind: o.BranchKind, Target: o.Target})
	case *Empty:
		return New(info, &Empty{})
	case *Return:
		return New(info, &Return{ReturnKind: o.ReturnKind, ReturnedValue: c.Clone(o.ReturnedValue)})
	case *Lock:
		return New(info, &Lock{LockedValue: c.Clone(o.LockedValue), Body: c.Clone(o.Body)})
	case *Try:
		return New(info, &Try{Body: cloneAs(c, o.Body), Catches: cloneList(c, o.Catches), Finally: cloneAs(c, o.Finally)})
	case *CatchClause:
		return New(info, &CatchClause{
			ExceptionDeclarationOrExpression: c.Clone(o.ExceptionDeclarationOrExpression),
			ExceptionType:                    o.ExceptionType,
			Locals:                           o.Locals,
			Filter:                           c.Clone(o.Filter),
			Handler:                          cloneAs(c, o.Handler),
		})
	case *Using:
		return New(info, &Using{
			Resources:      c.Clone(o.Resources),
			Body:           c.Clone(o.Body),
			Locals:         o.Locals,
			IsAsynchronous: o.IsAsynchronous,
			DisposeMethod:  o.DisposeMethod,
		})
	case *UsingDeclaration:
		return New(info, &UsingDeclaration{
			DeclarationGroup: cloneAs(c, o.DeclarationGroup),
			IsAsynchronous:   o.IsAsynchronous,
			DisposeMethod:    o.DisposeMethod,
		})
	case *ExpressionStatement:
		return New(info, &ExpressionStatement{Operation: c.Clone(o.Operation)})
	case *LocalFunction:
		return NewLocalFunction(info, o.Symbol, func() *Block { return cloneAs(c, o.Body()) })
	case *Switch:
		return New(info, &Switch{Value: c.Clone(o.Value), Cases: cloneList(c, o.Cases), Locals: o.Locals, ExitLabel: o.ExitLabel})
	case *SwitchCase:
		return New(info, &SwitchCase{Clauses: cloneList(c, o.Clauses), Body: cloneList(c, o.Body), Locals: o.Locals})
	case *CaseClause:
		return New(info, &CaseClause{
			CaseKind: o.CaseKind,
			Label:    o.Label,
			Value:    c.Clone(o.Value),
			Pattern:  cloneAs(c, o.Pattern),
			Guard:    c.Clone(o.Guard),
		})
	case *MethodBody:
		return New(info, &MethodBody{BlockBody: cloneAs(c, o.BlockBody), ExpressionBody: cloneAs(c, o.ExpressionBody)})

	// expressions
	case *None:
		return New(info, &None{Operands: cloneList(c, o.Operands)})
	case *Invalid:
		return New(info, &Invalid{Operands: cloneList(c, o.Operands)})
	case *Literal:
		return New(info, &Literal{})
	case *Conversion:
		return New(info, &Conversion{
			Operand:        c.Clone(o.Operand),
			Conversion:     o.Conversion,
			OperatorMethod: o.OperatorMethod,
			IsTryCast:      o.IsTryCast,
			IsChecked:      o.IsChecked,
		})
	case *Unary:
		return New(info, &Unary{
			OperatorKind:   o.OperatorKind,
			Operand:        c.Clone(o.Operand),
			IsLifted:       o.IsLifted,
			IsChecked:      o.IsChecked,
			OperatorMethod: o.OperatorMethod,
		})
	case *Binary:
		return c.cloneBinary(o)
	case *TupleBinary:
		return New(info, &TupleBinary{OperatorKind: o.OperatorKind, Left: c.Clone(o.Left), Right: c.Clone(o.Right)})
	case *Conditional:
		return New(info, &Conditional{
			Condition: c.Clone(o.Condition),
			WhenTrue:  c.Clone(o.WhenTrue),
			WhenFalse: c.Clone(o.WhenFalse),
			IsRef:     o.IsRef,
		})
	case *Coalesce:
		return New(info, &Coalesce{Value: c.Clone(o.Value), WhenNull: c.Clone(o.WhenNull), ValueConversion: o.ValueConversion})
	case *CoalesceAssignment:
		return New(info, &CoalesceAssignment{Target: c.Clone(o.Target), Value: c.Clone(o.Value)})
	case *ConditionalAccess:
		return New(info, &ConditionalAccess{Operation: c.Clone(o.Operation), WhenNotNull: c.Clone(o.WhenNotNull)})
	case *ConditionalAccessInstance:
		return New(info, &ConditionalAccessInstance{})
	case *AnonymousFunction:
		return NewAnonymousFunction(info, o.Symbol, func() *Block { return cloneAs(c, o.Body()) })
	case *DelegateCreation:
		return New(info, &DelegateCreation{Target: c.Clone(o.Target)})
	case *ObjectCreation:
		return New(info, &ObjectCreation{
			Constructor: o.Constructor,
			Arguments:   cloneList(c, o.Arguments),
			Initializer: cloneAs(c, o.Initializer),
		})
	case *TypeParameterObjectCreation:
		return New(info, &TypeParameterObjectCreation{Initializer: cloneAs(c, o.Initializer)})
	case *AnonymousObjectCreation:
		return New(info, &AnonymousObjectCreation{Initializers: cloneList(c, o.Initializers)})
	case *ObjectOrCollectionInitializer:
		return New(info, &ObjectOrCollectionInitializer{Initializers: cloneList(c, o.Initializers)})
	case *MemberInitializer:
		return New(info, &MemberInitializer{InitializedMember: c.Clone(o.InitializedMember), Initializer: cloneAs(c, o.Initializer)})
	case *ArrayCreation:
		return New(info, &ArrayCreation{DimensionSizes: cloneList(c, o.DimensionSizes), Initializer: cloneAs(c, o.Initializer)})
	case *ArrayInitializer:
		return New(info, &ArrayInitializer{ElementValues: cloneList(c, o.ElementValues)})
	case *SimpleAssignment:
		return New(info, &SimpleAssignment{Target: c.Clone(o.Target), Value: c.Clone(o.Value), IsRef: o.IsRef})
	case *CompoundAssignment:
		cp := *o
		cp.node = node{}
		cp.Target = c.Clone(o.Target)
		cp.Value = c.Clone(o.Value)
		return New(info, &cp)
	case *DeconstructionAssignment:
		return New(info, &DeconstructionAssignment{Target: c.Clone(o.Target), Value: c.Clone(o.Value)})
	case *EventAssignment:
		return New(info, &EventAssignment{EventReference: c.Clone(o.EventReference), HandlerValue: c.Clone(o.HandlerValue), Adds: o.Adds})
	case *Increment:
		cp := *o
		cp.node = node{}
		cp.Target = c.Clone(o.Target)
		return New(info, &cp)
	case *IsType:
		return New(info, &IsType{ValueOperand: c.Clone(o.ValueOperand), TypeOperand: o.TypeOperand, IsNegated: o.IsNegated})
	case *IsPattern:
		return New(info, &IsPattern{Value: c.Clone(o.Value), Pattern: cloneAs(c, o.Pattern)})
	case *Await:
		return New(info, &Await{Operation: c.Clone(o.Operation)})
	case *Throw:
		return New(info, &Throw{Exception: c.Clone(o.Exception)})
	case *TypeOf:
		return New(info, &TypeOf{TypeOperand: o.TypeOperand})
	case *SizeOf:
		return New(info, &SizeOf{TypeOperand: o.TypeOperand})
	case *DefaultValue:
		return New(info, &DefaultValue{})
	case *NameOf:
		return New(info, &NameOf{Argument: c.Clone(o.Argument)})
	case *AddressOf:
		return New(info, &AddressOf{Reference: c.Clone(o.Reference)})
	case *InterpolatedString:
		return New(info, &InterpolatedString{Parts: cloneList(c, o.Parts)})
	case *InterpolatedStringText:
		return New(info, &InterpolatedStringText{Text: c.Clone(o.Text)})
	case *Interpolation:
		return New(info, &Interpolation{
			Expression:   c.Clone(o.Expression),
			Alignment:    c.Clone(o.Alignment),
			FormatString: c.Clone(o.FormatString),
		})
	case *Tuple:
		return New(info, &Tuple{Elements: cloneList(c, o.Elements), NaturalType: o.NaturalType})
	case *DeclarationExpression:
		return New(info, &DeclarationExpression{Expression: c.Clone(o.Expression)})
	case *Discard:
		return New(info, &Discard{Symbol: o.Symbol})
	case *OmittedArgument:
		return New(info, &OmittedArgument{})
	case *Range:
		return New(info, &Range{LeftOperand: c.Clone(o.LeftOperand), RightOperand: c.Clone(o.RightOperand), Method: o.Method})
	case *SwitchExpression:
		return New(info, &SwitchExpression{Value: c.Clone(o.Value), Arms: cloneList(c, o.Arms)})
	case *SwitchExpressionArm:
		return New(info, &SwitchExpressionArm{
			Pattern: cloneAs(c, o.Pattern),
			Guard:   c.Clone(o.Guard),
			Value:   c.Clone(o.Value),
			Locals:  o.Locals,
		})

	// references
	case *LocalReference:
		return New(info, &LocalReference{Local: o.Local, IsDeclaration: o.IsDeclaration})
	case *ParameterReference:
		return New(info, &ParameterReference{Parameter: o.Parameter})
	case *InstanceReference:
		return New(info, &InstanceReference{ReferenceKind: o.ReferenceKind})
	case *FieldReference:
		return New(info, &FieldReference{Instance: c.Clone(o.Instance), Field: o.Field, IsDeclaration: o.IsDeclaration})
	case *PropertyReference:
		return New(info, &PropertyReference{Instance: c.Clone(o.Instance), Property: o.Property, Arguments: cloneList(c, o.Arguments)})
	case *EventReference:
		return New(info, &EventReference{Instance: c.Clone(o.Instance), Event: o.Event})
	case *MethodReference:
		return New(info, &MethodReference{Instance: c.Clone(o.Instance), Method: o.Method, IsVirtual: o.IsVirtual})
	case *ArrayElementReference:
		return New(info, &ArrayElementReference{ArrayReference: c.Clone(o.ArrayReference), Indices: cloneList(c, o.Indices)})
	case *Invocation:
		return New(info, &Invocation{
			TargetMethod: o.TargetMethod,
			Instance:     c.Clone(o.Instance),
			IsVirtual:    o.IsVirtual,
			Arguments:    cloneList(c, o.Arguments),
		})
	case *Argument:
		return New(info, &Argument{
			ArgumentKind:  o.ArgumentKind,
			Parameter:     o.Parameter,
			Value:         c.Clone(o.Value),
			InConversion:  o.InConversion,
			OutConversion: o.OutConversion,
		})
	case *DynamicMemberReference:
		return New(info, &DynamicMemberReference{
			Instance:       c.Clone(o.Instance),
			MemberName:     o.MemberName,
			TypeArguments:  o.TypeArguments,
			ContainingType: o.ContainingType,
		})
	case *DynamicInvocation:
		return New(info, &DynamicInvocation{
			Operation:        c.Clone(o.Operation),
			Arguments:        cloneList(c, o.Arguments),
			ArgumentNames:    slices.Clone(o.ArgumentNames),
			ArgumentRefKinds: slices.Clone(o.ArgumentRefKinds),
		})
	case *DynamicIndexerAccess:
		return New(info, &DynamicIndexerAccess{
			Operation:        c.Clone(o.Operation),
			Arguments:        cloneList(c, o.Arguments),
			ArgumentNames:    slices.Clone(o.ArgumentNames),
			ArgumentRefKinds: slices.Clone(o.ArgumentRefKinds),
		})
	case *DynamicObjectCreation:
		return New(info, &DynamicObjectCreation{
			Arguments:        cloneList(c, o.Arguments),
			ArgumentNames:    slices.Clone(o.ArgumentNames),
			ArgumentRefKinds: slices.Clone(o.ArgumentRefKinds),
			Initializer:      cloneAs(c, o.Initializer),
		})

	// patterns
	case *ConstantPattern:
		return New(info, &ConstantPattern{PatternTypes: o.PatternTypes, Value: c.Clone(o.Value)})
	case *DeclarationPattern:
		return New(info, &DeclarationPattern{
			PatternTypes:   o.PatternTypes,
			MatchedType:    o.MatchedType,
			MatchesNull:    o.MatchesNull,
			DeclaredSymbol: o.DeclaredSymbol,
		})
	case *TypePattern:
		return New(info, &TypePattern{PatternTypes: o.PatternTypes, MatchedType: o.MatchedType})
	case *DiscardPattern:
		return New(info, &DiscardPattern{PatternTypes: o.PatternTypes})
	case *RecursivePattern:
		return New(info, &RecursivePattern{
			PatternTypes:              o.PatternTypes,
			MatchedType:               o.MatchedType,
			DeconstructSymbol:         o.DeconstructSymbol,
			DeconstructionSubpatterns: cloneList(c, o.DeconstructionSubpatterns),
			PropertySubpatterns:       cloneList(c, o.PropertySubpatterns),
			DeclaredSymbol:            o.DeclaredSymbol,
		})
	case *PropertySubpattern:
		return New(info, &PropertySubpattern{Member: c.Clone(o.Member), Pattern: cloneAs(c, o.Pattern)})
	case *RelationalPattern:
		return New(info, &RelationalPattern{PatternTypes: o.PatternTypes, OperatorKind: o.OperatorKind, Value: c.Clone(o.Value)})
	case *BinaryPattern:
		return New(info, &BinaryPattern{
			PatternTypes: o.PatternTypes,
			OperatorKind: o.OperatorKind,
			Left:         cloneAs(c, o.Left),
			Right:        cloneAs(c, o.Right),
		})
	case *NegatedPattern:
		return New(info, &NegatedPattern{PatternTypes: o.PatternTypes, Pattern: cloneAs(c, o.Pattern)})
	}
	panic(Contractf("ir", "clone: unhandled operation %T", op))
}

// cloneBinary copies a left-leaning chain of binary operators without
// recursing on the left spine, so very long chains do not grow the stack.
func (c *Cloner) cloneBinary(root *Binary) Operation {
	var spine []*Binary
	var left Operation
	cur := Operation(root)
	for {
		b, ok := cur.(*Binary)
		if !ok {
			left = c.Clone(cur)
			break
		}
		if len(spine) > 0 && c.Rewrite != nil {
			if r := c.Rewrite(b); r != nil {
				left = r
				break
			}
		}
		spine = append(spine, b)
		cur = b.Left
	}
	for i := len(spine) - 1; i >= 0; i-- {
		b := spine[i]
		left = New(infoOf(b), &Binary{
			OperatorKind:   b.OperatorKind,
			Left:           left,
			Right:          c.Clone(b.Right),
			IsLifted:       b.IsLifted,
			IsChecked:      b.IsChecked,
			OperatorMethod: b.OperatorMethod,
		})
	}
	return left
}
