package operations

import (
	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

// isStatement reports whether k is a statement kind.
func isStatement(k bound.Kind) bool {
	return k >= bound.KindBlock && k <= bound.KindNonConstructorMethodBody
}

// derivedSyntax returns a node of the given kind spanning the same text as
// s. Declarations and arguments that have no syntax of their own in the
// bound tree use it so they stay explicit.
func derivedSyntax(s *ir.Syntax, kind string) *ir.Syntax {
	if s == nil {
		return nil
	}
	return &ir.Syntax{Kind: kind, Text: s.Text, Span: s.Span, Missing: s.Missing}
}

// createBlock translates a block. Its statements are built on first
// access.
func (f *Factory) createBlock(n *bound.Node) *ir.Block {
	return ir.NewBlock(f.info(n), f.symbols(n.Locals), func() []ir.Operation {
		return f.createAll(n.Statements)
	})
}

// createBlockOrNil translates a body. Anything other than a block (an
// expression body, an embedded statement) is wrapped in an implicit block;
// expression bodies also get an implicit return.
func (f *Factory) createBlockOrNil(n *bound.Node) *ir.Block {
	if n == nil {
		return nil
	}
	if n.Kind == bound.KindBlock {
		return f.createBlock(n)
	}
	return ir.NewBlock(f.generated(n.Syntax, nil, nil), nil, func() []ir.Operation {
		op := f.Create(n)
		if !isStatement(n.Kind) {
			op = ir.New(f.generated(n.Syntax, nil, nil), &ir.Return{ReturnKind: ir.ReturnPlain, ReturnedValue: op})
		}
		return []ir.Operation{op}
	})
}

// createStatementList translates a compiler-produced statement sequence
// into a block.
func (f *Factory) createStatementList(n *bound.Node) ir.Operation {
	return ir.NewBlock(f.info(n), f.symbols(n.Locals), func() []ir.Operation {
		return f.createAll(n.Statements)
	})
}

func (f *Factory) createLocalDeclarationStatement(n *bound.Node) ir.Operation {
	return f.createDeclarationGroupWith(n, false)
}

func (f *Factory) createDeclarationGroup(n *bound.Node) ir.Operation {
	return f.createDeclarationGroupWith(n, false)
}

// createDeclarationGroupWith translates one or more local declarations
// sharing a type into a group holding a single declaration. The group of
// a using declaration shares the using's syntax and is implicit.
func (f *Factory) createDeclarationGroupWith(n *bound.Node, using bool) *ir.VariableDeclarationGroup {
	locals := []*bound.Node{n}
	if n.Kind == bound.KindMultipleLocalDeclarations || n.Kind == bound.KindUsingLocalDeclarations {
		locals = n.Statements
	}
	declarators := make([]*ir.VariableDeclarator, 0, len(locals))
	for _, l := range locals {
		declarators = append(declarators, f.declarator(l))
	}
	declaration := ir.New(ir.Info{Syntax: derivedSyntax(n.Syntax, "VariableDeclaration")}, &ir.VariableDeclaration{
		Declarators: declarators,
	})
	info := f.info(n)
	info.Type = nil
	if using {
		info.Generated = true
	}
	return ir.New(info, &ir.VariableDeclarationGroup{Declarations: []*ir.VariableDeclaration{declaration}})
}

// declarator translates a single "x = value" declaration. Array size
// expressions written on the declarator are kept as ignored arguments.
func (f *Factory) declarator(n *bound.Node) *ir.VariableDeclarator {
	if n.Kind != bound.KindLocalDeclaration {
		panic(ir.Contractf("operations", "declaration list contains %s", n.Kind))
	}
	if n.Local == nil {
		panic(ir.Contractf("operations", "LocalDeclaration without a symbol"))
	}
	syntax := n.Designation
	if syntax == nil {
		syntax = derivedSyntax(n.Syntax, "VariableDeclarator")
	}
	var init *ir.VariableInitializer
	if n.Initializer != nil {
		init = ir.New(ir.Info{Syntax: derivedSyntax(n.Initializer.Syntax, "EqualsValueClause")}, &ir.VariableInitializer{
			Value: f.Create(n.Initializer),
		})
	}
	return ir.New(ir.Info{Syntax: syntax}, &ir.VariableDeclarator{
		Symbol:           f.symbol(n.Local),
		Initializer:      init,
		IgnoredArguments: f.createAll(n.Arguments),
	})
}

// createLoop translates while, do and for loops into the normalized Loop.
func (f *Factory) createLoop(n *bound.Node, kind ir.LoopKind, top bool) ir.Operation {
	before := f.createAll(n.Initializers)
	condition := f.Create(n.Condition)
	body := f.Create(n.Body)
	return ir.New(f.info(n), &ir.Loop{
		LoopKind:       kind,
		ConditionIsTop: top,
		Condition:      condition,
		Body:           body,
		Before:         before,
		AtLoopBottom:   f.createAll(n.Increments),
		Locals:         f.symbols(n.Locals),
		ContinueLabel:  f.symbol(n.ContinueLabel),
		ExitLabel:      f.symbol(n.BreakLabel),
	})
}

// createForEach translates a foreach loop. The enumerator is disposed on
// exit when its type implements the platform's disposable interface (the
// async variant for "await foreach").
func (f *Factory) createForEach(n *bound.Node) ir.Operation {
	var variable ir.Operation
	switch {
	case n.Left != nil:
		variable = f.Create(n.Left)
	case n.Local != nil:
		syntax := n.Designation
		if syntax == nil {
			syntax = derivedSyntax(n.Syntax, "ForEachVariable")
		}
		variable = ir.New(ir.Info{Syntax: syntax, Type: f.typ(n.Local.Type)}, &ir.LocalReference{
			Local:         f.symbol(n.Local),
			IsDeclaration: true,
		})
	default:
		panic(ir.Contractf("operations", "ForEachStatement without an iteration variable"))
	}
	collection := f.Create(n.Operand)
	body := f.Create(n.Body)
	return ir.New(f.info(n), &ir.ForEachLoop{
		LoopControlVariable:  variable,
		Collection:           collection,
		Body:                 body,
		Locals:               f.symbols(n.Locals),
		ContinueLabel:        f.symbol(n.ContinueLabel),
		ExitLabel:            f.symbol(n.BreakLabel),
		IsAsynchronous:       n.IsAsync,
		EnumeratorDisposable: f.disposableEnumerator(n),
		GetEnumeratorMethod:  f.symbol(n.Method),
	})
}

func (f *Factory) disposableEnumerator(n *bound.Node) bool {
	if n.Method == nil || n.Method.Type == nil {
		return false
	}
	name := "System.IDisposable"
	if n.IsAsync {
		name = "System.IAsyncDisposable"
	}
	disposable := f.model.WellKnownType(name)
	return n.Method.Type.Implements(disposable)
}

func (f *Factory) createBranch(n *bound.Node, kind ir.BranchKind) ir.Operation {
	if n.Label == nil {
		panic(ir.Contractf("operations", "%s without a target label", n.Kind))
	}
	return ir.New(f.info(n), &ir.Branch{BranchKind: kind, Target: f.symbol(n.Label)})
}

func (f *Factory) createTry(n *bound.Node) ir.Operation {
	body := f.createBlockOrNil(n.Body)
	catches := make([]*ir.CatchClause, 0, len(n.Sections))
	for _, c := range n.Sections {
		catches = append(catches, f.catchClause(c))
	}
	return ir.New(f.info(n), &ir.Try{Body: body, Catches: catches, Finally: f.createBlockOrNil(n.Finally)})
}

func (f *Factory) createCatch(n *bound.Node) ir.Operation {
	return f.catchClause(n)
}

// catchClause translates "catch (T e) when (filter) { ... }". The caught
// exception is either a declared local or, in compiler-produced code, an
// arbitrary expression.
func (f *Factory) catchClause(n *bound.Node) *ir.CatchClause {
	if n.Kind != bound.KindCatchBlock {
		panic(ir.Contractf("operations", "try statement section has kind %s", n.Kind))
	}
	var exception ir.Operation
	switch {
	case n.Local != nil:
		syntax := n.Designation
		if syntax == nil {
			syntax = derivedSyntax(n.Syntax, "CatchDeclaration")
		}
		exception = ir.New(ir.Info{Syntax: syntax, Type: f.typ(n.Local.Type)}, &ir.LocalReference{
			Local:         f.symbol(n.Local),
			IsDeclaration: true,
		})
	case n.Operand != nil:
		exception = f.Create(n.Operand)
	}
	return ir.New(f.info(n), &ir.CatchClause{
		ExceptionDeclarationOrExpression: exception,
		ExceptionType:                    f.typ(n.TypeOperand),
		Locals:                           f.symbols(n.Locals),
		Filter:                           f.Create(n.Filter),
		Handler:                          f.createBlockOrNil(n.Body),
	})
}

func (f *Factory) createSwitch(n *bound.Node) ir.Operation {
	value := f.Create(n.Operand)
	cases := make([]*ir.SwitchCase, 0, len(n.Sections))
	for _, s := range n.Sections {
		cases = append(cases, f.switchCase(s))
	}
	return ir.New(f.info(n), &ir.Switch{
		Value:     value,
		Cases:     cases,
		Locals:    f.symbols(n.Locals),
		ExitLabel: f.symbol(n.BreakLabel),
	})
}

func (f *Factory) createSwitchCase(n *bound.Node) ir.Operation {
	return f.switchCase(n)
}

func (f *Factory) switchCase(n *bound.Node) *ir.SwitchCase {
	if n.Kind != bound.KindSwitchSection {
		panic(ir.Contractf("operations", "switch statement section has kind %s", n.Kind))
	}
	clauses := make([]*ir.CaseClause, 0, len(n.Labels))
	for _, l := range n.Labels {
		clauses = append(clauses, f.caseClause(l))
	}
	return ir.New(f.info(n), &ir.SwitchCase{
		Clauses: clauses,
		Body:    f.createAll(n.Statements),
		Locals:  f.symbols(n.Locals),
	})
}

func (f *Factory) createCaseClause(n *bound.Node) ir.Operation {
	return f.caseClause(n)
}

// caseClause translates a switch label. "case 1:" (a constant pattern
// without a guard) is a single-value clause; "default:" has neither value
// nor pattern.
func (f *Factory) caseClause(n *bound.Node) *ir.CaseClause {
	if n.Kind != bound.KindSwitchLabel {
		panic(ir.Contractf("operations", "switch label has kind %s", n.Kind))
	}
	clause := &ir.CaseClause{Label: f.symbol(n.Label)}
	switch {
	case n.Operand != nil:
		clause.CaseKind = ir.CaseSingleValue
		clause.Value = f.Create(n.Operand)
	case n.Pattern != nil && n.Pattern.Kind == bound.KindConstantPattern && n.Guard == nil:
		clause.CaseKind = ir.CaseSingleValue
		clause.Value = f.Create(n.Pattern.Operand)
	case n.Pattern != nil:
		clause.CaseKind = ir.CasePattern
		clause.Pattern = f.createPattern(n.Pattern)
		clause.Guard = f.Create(n.Guard)
	default:
		clause.CaseKind = ir.CaseDefault
	}
	return ir.New(f.info(n), clause)
}

// createUsing translates "using (resources) body". Resources are either a
// declaration or an expression.
func (f *Factory) createUsing(n *bound.Node) ir.Operation {
	var resources ir.Operation
	if n.Initializer != nil {
		resources = f.createDeclarationGroupWith(n.Initializer, false)
	} else {
		resources = f.Create(n.Operand)
	}
	return ir.New(f.info(n), &ir.Using{
		Resources:      resources,
		Body:           f.Create(n.Body),
		Locals:         f.symbols(n.Locals),
		IsAsynchronous: n.IsAsync,
		DisposeMethod:  f.symbol(n.Method),
	})
}

func (f *Factory) createLocalFunction(n *bound.Node) ir.Operation {
	if n.Method == nil {
		panic(ir.Contractf("operations", "LocalFunctionStatement without a symbol"))
	}
	return ir.NewLocalFunction(f.info(n), f.symbol(n.Method), func() *ir.Block {
		return f.createBlockOrNil(n.Body)
	})
}
