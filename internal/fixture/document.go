package fixture

// Document is the decoded form of a fixture file, before name
// resolution.
type Document struct {
	// Name identifies the fixture in reports. Defaults to the file name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Types declares the types the body references, keyed by name. The
	// builtin types int, long, double, char, bool, string, object, void and
	// dynamic are always available.
	Types map[string]TypeSpec `json:"types,omitempty" yaml:"types,omitempty"`

	// Symbols declares methods, parameters, locals, labels and members,
	// keyed by name.
	Symbols map[string]SymbolSpec `json:"symbols,omitempty" yaml:"symbols,omitempty"`

	// Body is the bound tree to translate.
	Body *NodeSpec `json:"body,omitempty" yaml:"body,omitempty"`
}

// TypeSpec declares a type.
type TypeSpec struct {
	Kind       string   `json:"kind" yaml:"kind"`
	Element    string   `json:"element,omitempty" yaml:"element,omitempty"`
	Interfaces []string `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
}

// SymbolSpec declares a symbol. Name defaults to the map key, so two
// symbols that print the same (two locals named i) can coexist.
type SymbolSpec struct {
	Kind       string   `json:"kind" yaml:"kind"`
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type       string   `json:"type,omitempty" yaml:"type,omitempty"`
	Containing string   `json:"containing,omitempty" yaml:"containing,omitempty"`
	MethodKind string   `json:"method_kind,omitempty" yaml:"method_kind,omitempty"`
	Parameters []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	Static    bool `json:"static,omitempty" yaml:"static,omitempty"`
	Virtual   bool `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	Abstract  bool `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Override  bool `json:"override,omitempty" yaml:"override,omitempty"`
	Params    bool `json:"params,omitempty" yaml:"params,omitempty"`
	Extension bool `json:"extension,omitempty" yaml:"extension,omitempty"`
	Error     bool `json:"error,omitempty" yaml:"error,omitempty"`

	HasDefault bool          `json:"has_default,omitempty" yaml:"has_default,omitempty"`
	Default    *ConstantSpec `json:"default,omitempty" yaml:"default,omitempty"`
	RefKind    string        `json:"ref_kind,omitempty" yaml:"ref_kind,omitempty"`
}

// SyntaxSpec describes a syntax node. A spec with Ref reuses the syntax
// declared elsewhere with the same ID; all other fields are then ignored.
type SyntaxSpec struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Ref     string `json:"ref,omitempty" yaml:"ref,omitempty"`
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	Start   int    `json:"start,omitempty" yaml:"start,omitempty"`
	End     int    `json:"end,omitempty" yaml:"end,omitempty"`
	Missing bool   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// ConstantSpec is a compile-time constant. Exactly one field is set.
type ConstantSpec struct {
	Int    *int64   `json:"int,omitempty" yaml:"int,omitempty"`
	Float  *float64 `json:"float,omitempty" yaml:"float,omitempty"`
	String *string  `json:"string,omitempty" yaml:"string,omitempty"`
	Bool   *bool    `json:"bool,omitempty" yaml:"bool,omitempty"`
	Char   *string  `json:"char,omitempty" yaml:"char,omitempty"`
	Null   bool     `json:"null,omitempty" yaml:"null,omitempty"`
}

// NodeSpec is one bound node. Field names follow bound.Node; see its
// documentation for which fields each kind uses.
type NodeSpec struct {
	Kind      string        `json:"kind" yaml:"kind"`
	Syntax    *SyntaxSpec   `json:"syntax,omitempty" yaml:"syntax,omitempty"`
	Type      string        `json:"type,omitempty" yaml:"type,omitempty"`
	Constant  *ConstantSpec `json:"constant,omitempty" yaml:"constant,omitempty"`
	Generated bool          `json:"generated,omitempty" yaml:"generated,omitempty"`

	Receiver    *NodeSpec `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	Operand     *NodeSpec `json:"operand,omitempty" yaml:"operand,omitempty"`
	Left        *NodeSpec `json:"left,omitempty" yaml:"left,omitempty"`
	Right       *NodeSpec `json:"right,omitempty" yaml:"right,omitempty"`
	Condition   *NodeSpec `json:"condition,omitempty" yaml:"condition,omitempty"`
	Consequence *NodeSpec `json:"consequence,omitempty" yaml:"consequence,omitempty"`
	Alternative *NodeSpec `json:"alternative,omitempty" yaml:"alternative,omitempty"`
	Body        *NodeSpec `json:"body,omitempty" yaml:"body,omitempty"`
	Initializer *NodeSpec `json:"initializer,omitempty" yaml:"initializer,omitempty"`
	Pattern     *NodeSpec `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Guard       *NodeSpec `json:"guard,omitempty" yaml:"guard,omitempty"`
	Finally     *NodeSpec `json:"finally,omitempty" yaml:"finally,omitempty"`
	Filter      *NodeSpec `json:"filter,omitempty" yaml:"filter,omitempty"`
	Alignment   *NodeSpec `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Format      *NodeSpec `json:"format,omitempty" yaml:"format,omitempty"`

	Arguments    []*NodeSpec `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Statements   []*NodeSpec `json:"statements,omitempty" yaml:"statements,omitempty"`
	Initializers []*NodeSpec `json:"initializers,omitempty" yaml:"initializers,omitempty"`
	Increments   []*NodeSpec `json:"increments,omitempty" yaml:"increments,omitempty"`
	Sections     []*NodeSpec `json:"sections,omitempty" yaml:"sections,omitempty"`
	Labels       []*NodeSpec `json:"labels,omitempty" yaml:"labels,omitempty"`
	Subpatterns  []*NodeSpec `json:"subpatterns,omitempty" yaml:"subpatterns,omitempty"`
	Properties   []*NodeSpec `json:"properties,omitempty" yaml:"properties,omitempty"`

	ArgsToParams     []int  `json:"args_to_params,omitempty" yaml:"args_to_params,omitempty"`
	DefaultArguments []bool `json:"default_arguments,omitempty" yaml:"default_arguments,omitempty"`
	Expanded         bool   `json:"expanded,omitempty" yaml:"expanded,omitempty"`
	Result           string `json:"result,omitempty" yaml:"result,omitempty"`

	ArgumentName   string      `json:"argument_name,omitempty" yaml:"argument_name,omitempty"`
	ArgumentRef    string      `json:"argument_ref,omitempty" yaml:"argument_ref,omitempty"`
	ArgumentSyntax *SyntaxSpec `json:"argument_syntax,omitempty" yaml:"argument_syntax,omitempty"`

	Method        string   `json:"method,omitempty" yaml:"method,omitempty"`
	Member        string   `json:"member,omitempty" yaml:"member,omitempty"`
	Local         string   `json:"local,omitempty" yaml:"local,omitempty"`
	Label         string   `json:"label,omitempty" yaml:"label,omitempty"`
	ContinueLabel string   `json:"continue_label,omitempty" yaml:"continue_label,omitempty"`
	BreakLabel    string   `json:"break_label,omitempty" yaml:"break_label,omitempty"`
	Locals        []string `json:"locals,omitempty" yaml:"locals,omitempty"`
	Members       []string `json:"members,omitempty" yaml:"members,omitempty"`

	TypeOperand   string   `json:"type_operand,omitempty" yaml:"type_operand,omitempty"`
	MatchedType   string   `json:"matched_type,omitempty" yaml:"matched_type,omitempty"`
	InputType     string   `json:"input_type,omitempty" yaml:"input_type,omitempty"`
	NarrowedType  string   `json:"narrowed_type,omitempty" yaml:"narrowed_type,omitempty"`
	NaturalType   string   `json:"natural_type,omitempty" yaml:"natural_type,omitempty"`
	TypeArguments []string `json:"type_arguments,omitempty" yaml:"type_arguments,omitempty"`

	Operator   string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Conversion string `json:"conversion,omitempty" yaml:"conversion,omitempty"`
	Checked    bool   `json:"checked,omitempty" yaml:"checked,omitempty"`
	Lifted     bool   `json:"lifted,omitempty" yaml:"lifted,omitempty"`
	Ref        bool   `json:"ref,omitempty" yaml:"ref,omitempty"`
	Async      bool   `json:"async,omitempty" yaml:"async,omitempty"`
	Negated    bool   `json:"negated,omitempty" yaml:"negated,omitempty"`
	Addition   bool   `json:"addition,omitempty" yaml:"addition,omitempty"`
	Var        bool   `json:"var,omitempty" yaml:"var,omitempty"`

	Declaration string      `json:"declaration,omitempty" yaml:"declaration,omitempty"`
	Designation *SyntaxSpec `json:"designation,omitempty" yaml:"designation,omitempty"`
	MemberName  string      `json:"member_name,omitempty" yaml:"member_name,omitempty"`
}
