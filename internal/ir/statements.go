package ir

// Block is a braced statement list. Its operations are built on first
// access.
type Block struct {
	node
	Locals     []Symbol
	operations *Lazy[[]Operation]
}

// NewBlock builds a block whose statements come from thunk, forced on the
// first call to Operations or Children.
func NewBlock(info Info, locals []Symbol, thunk func() []Operation) *Block {
	b := &Block{Locals: locals}
	b.operations = lazyChildren(b, thunk)
	return New(info, b)
}

// NewBlockOf builds a block over already-constructed statements.
func NewBlockOf(info Info, locals []Symbol, ops ...Operation) *Block {
	return NewBlock(info, locals, func() []Operation { return ops })
}

func (*Block) Kind() OperationKind { return KindBlock }
func (*Block) deferredChildren()   {}

// Operations forces and returns the block's statements.
func (b *Block) Operations() []Operation { return b.operations.Get() }

// Materialized reports whether the statements have been built yet.
func (b *Block) Materialized() bool { return b.operations.Forced() }

func (b *Block) Children() []Operation { return addAll(nil, b.Operations()) }

// VariableDeclarationGroup is a local declaration statement.
type VariableDeclarationGroup struct {
	node
	Declarations []*VariableDeclaration
}

func (*VariableDeclarationGroup) Kind() OperationKind { return KindVariableDeclarationGroup }
func (g *VariableDeclarationGroup) Children() []Operation {
	return addAll(nil, g.Declarations)
}

// VariableDeclaration declares one or more variables sharing a type.
type VariableDeclaration struct {
	node
	Declarators []*VariableDeclarator
	Initializer *VariableInitializer
	// IgnoredDimensions holds array bounds written on the declared type.
	IgnoredDimensions []Operation
}

func (*VariableDeclaration) Kind() OperationKind { return KindVariableDeclaration }
func (d *VariableDeclaration) Children() []Operation {
	out := addAll(nil, d.IgnoredDimensions)
	out = addAll(out, d.Declarators)
	return add(out, d.Initializer)
}

// VariableDeclarator declares a single variable.
type VariableDeclarator struct {
	node
	Symbol           Symbol
	Initializer      *VariableInitializer
	IgnoredArguments []Operation
}

func (*VariableDeclarator) Kind() OperationKind { return KindVariableDeclarator }
func (d *VariableDeclarator) Children() []Operation {
	out := addAll(nil, d.IgnoredArguments)
	return add(out, d.Initializer)
}

// VariableInitializer is the "= value" of a declarator.
type VariableInitializer struct {
	node
	Locals []Symbol
	Value  Operation
}

func (*VariableInitializer) Kind() OperationKind   { return KindVariableInitializer }
func (i *VariableInitializer) Children() []Operation { return add(nil, i.Value) }

// FieldInitializer initializes one or more fields.
type FieldInitializer struct {
	node
	Locals []Symbol
	Fields []Symbol
	Value  Operation
}

func (*FieldInitializer) Kind() OperationKind   { return KindFieldInitializer }
func (i *FieldInitializer) Children() []Operation { return add(nil, i.Value) }

// PropertyInitializer initializes one or more auto-properties.
type PropertyInitializer struct {
	node
	Locals     []Symbol
	Properties []Symbol
	Value      Operation
}

func (*PropertyInitializer) Kind() OperationKind   { return KindPropertyInitializer }
func (i *PropertyInitializer) Children() []Operation { return add(nil, i.Value) }

// ParameterInitializer is a parameter's default value clause.
type ParameterInitializer struct {
	node
	Locals    []Symbol
	Parameter Symbol
	Value     Operation
}

func (*ParameterInitializer) Kind() OperationKind   { return KindParameterInitializer }
func (i *ParameterInitializer) Children() []Operation { return add(nil, i.Value) }

// LoopKind distinguishes the loop shapes normalized into Loop.
type LoopKind uint8

const (
	LoopNone LoopKind = iota
	LoopWhile
	LoopDo
	LoopFor
	LoopForEach
)

func (k LoopKind) String() string {
	switch k {
	case LoopWhile:
		return "While"
	case LoopDo:
		return "Do"
	case LoopFor:
		return "For"
	case LoopForEach:
		return "ForEach"
	}
	return "None"
}

// Loop is the normalized form of while, do and for loops. The condition
// is evaluated before the body when ConditionIsTop, after it otherwise.
// Before runs once ahead of the loop; AtLoopBottom runs after each
// iteration (for-loop incrementors).
type Loop struct {
	node
	LoopKind       LoopKind
	ConditionIsTop bool
	Condition      Operation
	Body           Operation
	Before         []Operation
	AtLoopBottom   []Operation
	Locals         []Symbol
	ContinueLabel  Symbol
	ExitLabel      Symbol
}

func (*Loop) Kind() OperationKind { return KindLoop }

func (l *Loop) Children() []Operation {
	out := addAll(nil, l.Before)
	if l.ConditionIsTop {
		out = add(out, l.Condition)
		out = add(out, l.Body)
	} else {
		out = add(out, l.Body)
		out = add(out, l.Condition)
	}
	return addAll(out, l.AtLoopBottom)
}

// ForEachLoop iterates a collection.
type ForEachLoop struct {
	node
	LoopControlVariable Operation
	Collection          Operation
	Body                Operation
	NextVariables       []Operation
	Locals              []Symbol
	ContinueLabel       Symbol
	ExitLabel           Symbol
	IsAsynchronous      bool
	// EnumeratorDisposable is set when the enumerator implements the
	// platform's disposable interface and must be disposed on exit.
	EnumeratorDisposable bool
	GetEnumeratorMethod  Symbol
}

func (*ForEachLoop) Kind() OperationKind { return KindLoop }

// LoopKind is always LoopForEach; it mirrors Loop.LoopKind.
func (*ForEachLoop) LoopKind() LoopKind { return LoopForEach }

func (l *ForEachLoop) Children() []Operation {
	out := add(nil, l.Collection)
	out = add(out, l.LoopControlVariable)
	out = add(out, l.Body)
	return addAll(out, l.NextVariables)
}

// Labeled is a label definition, optionally attached to a statement.
type Labeled struct {
	node
	Label     Symbol
	Operation Operation
}

func (*Labeled) Kind() OperationKind   { return KindLabeled }
func (l *Labeled) Children() []Operation { return add(nil, l.Operation) }

// BranchKind distinguishes jump statements.
type BranchKind uint8

const (
	BranchNone BranchKind = iota
	BranchContinue
	BranchBreak
	BranchGoTo
)

func (k BranchKind) String() string {
	switch k {
	case BranchContinue:
		return "Continue"
	case BranchBreak:
		return "Break"
	case BranchGoTo:
		return "GoTo"
	}
	return "None"
}

// Branch is an unconditional jump to Target.
type Branch struct {
	node
	BranchKind BranchKind
	Target     Symbol
}

func (*Branch) Kind() OperationKind   { return KindBranch }
func (*Branch) Children() []Operation { return nil }

// Empty is the empty statement.
type Empty struct {
	node
}

func (*Empty) Kind() OperationKind   { return KindEmpty }
func (*Empty) Children() []Operation { return nil }

// ReturnKind distinguishes return-like statements.
type ReturnKind uint8

const (
	ReturnPlain ReturnKind = iota
	ReturnYield
	ReturnYieldBreak
)

// Return is a return, yield return, or yield break statement.
type Return struct {
	node
	ReturnKind    ReturnKind
	ReturnedValue Operation
}

func (r *Return) Kind() OperationKind {
	switch r.ReturnKind {
	case ReturnYield:
		return KindYieldReturn
	case ReturnYieldBreak:
		return KindYieldBreak
	}
	return KindReturn
}

func (r *Return) Children() []Operation { return add(nil, r.ReturnedValue) }

// Lock is a lock statement.
type Lock struct {
	node
	LockedValue Operation
	Body        Operation
}

func (*Lock) Kind() OperationKind { return KindLock }
func (l *Lock) Children() []Operation {
	return add(add(nil, l.LockedValue), l.Body)
}

// Try is a try statement with optional catch clauses and finally block.
type Try struct {
	node
	Body    *Block
	Catches []*CatchClause
	Finally *Block
}

func (*Try) Kind() OperationKind { return KindTry }
func (t *Try) Children() []Operation {
	out := add(nil, t.Body)
	out = addAll(out, t.Catches)
	return add(out, t.Finally)
}

// CatchClause is one catch of a try statement.
type CatchClause struct {
	node
	ExceptionDeclarationOrExpression Operation
	ExceptionType                    Symbol
	Locals                           []Symbol
	Filter                           Operation
	Handler                          *Block
}

func (*CatchClause) Kind() OperationKind { return KindCatchClause }
func (c *CatchClause) Children() []Operation {
	out := add(nil, c.ExceptionDeclarationOrExpression)
	out = add(out, c.Filter)
	return add(out, c.Handler)
}

// Using is a using statement. DisposeMethod is the method invoked on
// exit, when the binder resolved one.
type Using struct {
	node
	Resources      Operation
	Body           Operation
	Locals         []Symbol
	IsAsynchronous bool
	DisposeMethod  Symbol
}

func (*Using) Kind() OperationKind { return KindUsing }
func (u *Using) Children() []Operation {
	return add(add(nil, u.Resources), u.Body)
}

// UsingDeclaration is a "using var x = ..." declaration.
type UsingDeclaration struct {
	node
	DeclarationGroup *VariableDeclarationGroup
	IsAsynchronous   bool
	DisposeMethod    Symbol
}

func (*UsingDeclaration) Kind() OperationKind   { return KindUsingDeclaration }
func (u *UsingDeclaration) Children() []Operation { return add(nil, u.DeclarationGroup) }

// ExpressionStatement wraps an expression evaluated for its effects.
type ExpressionStatement struct {
	node
	Operation Operation
}

func (*ExpressionStatement) Kind() OperationKind   { return KindExpressionStatement }
func (s *ExpressionStatement) Children() []Operation { return add(nil, s.Operation) }

// LocalFunction declares a nested function. Its body is built lazily.
type LocalFunction struct {
	node
	Symbol Symbol
	body   *Lazy[*Block]
}

// NewLocalFunction builds a local function whose body comes from thunk.
func NewLocalFunction(info Info, symbol Symbol, thunk func() *Block) *LocalFunction {
	f := &LocalFunction{Symbol: symbol}
	f.body = lazyChild(f, thunk)
	return New(info, f)
}

func (*LocalFunction) Kind() OperationKind     { return KindLocalFunction }
func (*LocalFunction) deferredChildren()       {}
func (f *LocalFunction) Body() *Block          { return f.body.Get() }
func (f *LocalFunction) Children() []Operation { return add(nil, f.Body()) }

// Switch is a switch statement.
type Switch struct {
	node
	Value     Operation
	Cases     []*SwitchCase
	Locals    []Symbol
	ExitLabel Symbol
}

func (*Switch) Kind() OperationKind { return KindSwitch }
func (s *Switch) Children() []Operation {
	return addAll(add(nil, s.Value), s.Cases)
}

// SwitchCase is one section of a switch statement.
type SwitchCase struct {
	node
	Clauses []*CaseClause
	Body    []Operation
	Locals  []Symbol
}

func (*SwitchCase) Kind() OperationKind { return KindSwitchCase }
func (c *SwitchCase) Children() []Operation {
	return addAll(addAll(nil, c.Clauses), c.Body)
}

// CaseKind distinguishes case clauses.
type CaseKind uint8

const (
	CaseDefault CaseKind = iota
	CaseSingleValue
	CasePattern
)

func (k CaseKind) String() string {
	switch k {
	case CaseSingleValue:
		return "SingleValue"
	case CasePattern:
		return "Pattern"
	}
	return "Default"
}

// CaseClause is one label of a switch section. Value is set for
// single-value clauses; Pattern and Guard for pattern clauses.
type CaseClause struct {
	node
	CaseKind CaseKind
	Label    Symbol
	Value    Operation
	Pattern  Pattern
	Guard    Operation
}

func (*CaseClause) Kind() OperationKind { return KindCaseClause }
func (c *CaseClause) Children() []Operation {
	out := add(nil, c.Value)
	out = add(out, c.Pattern)
	return add(out, c.Guard)
}

// MethodBody holds a member's block and/or expression body.
type MethodBody struct {
	node
	BlockBody      *Block
	ExpressionBody *Block
}

func (*MethodBody) Kind() OperationKind { return KindMethodBody }
func (b *MethodBody) Children() []Operation {
	return add(add(nil, b.BlockBody), b.ExpressionBody)
}
