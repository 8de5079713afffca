package bound

// Kind identifies the shape of a bound Node.
type Kind uint8

const (
	KindInvalid Kind = iota

	// expressions
	KindLiteral
	KindLocal
	KindParameter
	KindThisReference
	KindBaseReference
	KindImplicitReceiver
	KindConditionalReceiver
	KindFieldAccess
	KindPropertyAccess
	KindEventAccess
	KindIndexerAccess
	KindArrayAccess
	KindMethodGroup
	KindCall
	KindObjectCreationExpression
	KindNewT
	KindDynamicObjectCreationExpression
	KindDelegateCreationExpression
	KindAnonymousObjectCreationExpression
	KindArrayCreation
	KindArrayInitialization
	KindConversion
	KindAsOperator
	KindIsOperator
	KindTypeOfOperator
	KindSizeOfOperator
	KindDefaultExpression
	KindUnaryOperator
	KindIncrementOperator
	KindBinaryOperator
	KindUserDefinedConditionalLogicalOperator
	KindTupleBinaryOperator
	KindCompoundAssignmentOperator
	KindAssignmentOperator
	KindDeconstructionAssignmentOperator
	KindEventAssignmentOperator
	KindNullCoalescingOperator
	KindNullCoalescingAssignmentOperator
	KindConditionalOperator
	KindConditionalAccess
	KindAwaitExpression
	KindLambda
	KindNameOfOperator
	KindInterpolatedString
	KindStringInsert
	KindTupleLiteral
	KindConvertedTupleLiteral
	KindObjectInitializerExpression
	KindCollectionInitializerExpression
	KindObjectInitializerMember
	KindCollectionElementInitializer
	KindDynamicCollectionElementInitializer
	KindDynamicInvocation
	KindDynamicMemberAccess
	KindDynamicIndexerAccess
	KindBadExpression
	KindThrowExpression
	KindDiscardExpression
	KindAddressOfOperator
	KindRangeExpression
	KindFromEndIndexExpression
	KindIsPatternExpression
	KindSwitchExpression
	KindSwitchExpressionArm

	// patterns
	KindConstantPattern
	KindDeclarationPattern
	KindDiscardPattern
	KindRecursivePattern
	KindPositionalSubpattern
	KindPropertySubpattern
	KindRelationalPattern
	KindBinaryPattern
	KindNegatedPattern
	KindTypePattern

	// statements
	KindBlock
	KindStatementList
	KindExpressionStatement
	KindLocalDeclaration
	KindMultipleLocalDeclarations
	KindUsingLocalDeclarations
	KindIfStatement
	KindWhileStatement
	KindDoStatement
	KindForStatement
	KindForEachStatement
	KindBreakStatement
	KindContinueStatement
	KindGotoStatement
	KindReturnStatement
	KindYieldReturnStatement
	KindYieldBreakStatement
	KindThrowStatement
	KindTryStatement
	KindCatchBlock
	KindLabeledStatement
	KindLabelStatement
	KindNoOpStatement
	KindSwitchStatement
	KindSwitchSection
	KindSwitchLabel
	KindLockStatement
	KindUsingStatement
	KindLocalFunctionStatement
	KindBadStatement
	KindFieldEqualsValue
	KindPropertyEqualsValue
	KindParameterEqualsValue
	KindGlobalStatementInitializer
	KindNonConstructorMethodBody

	// constructs the public tree does not model
	KindArgList
	KindArgListOperator
	KindMakeRefOperator
	KindRefTypeOperator
	KindRefValueOperator
	KindAttribute
	KindQueryClause
	KindRangeVariable
	KindPreviousSubmissionReference
	KindHostObjectMemberReference
	KindITuplePattern
	KindStackAllocArrayCreation
	KindFixedStatement
	KindUnboundLambda
	KindPointerIndirectionOperator

	// lowering-only and context-only kinds
	KindSequencePoint
	KindSequencePointExpression
	KindSequence
	KindConditionalGoto
	KindStateMachineScope
	KindTypeExpression
	KindNamespaceExpression
	KindLabel

	KindCount
)

var kindNames = [...]string{
	KindInvalid:                               "Invalid",
	KindLiteral:                               "Literal",
	KindLocal:                                 "Local",
	KindParameter:                             "Parameter",
	KindThisReference:                         "ThisReference",
	KindBaseReference:                         "BaseReference",
	KindImplicitReceiver:                      "ImplicitReceiver",
	KindConditionalReceiver:                   "ConditionalReceiver",
	KindFieldAccess:                           "FieldAccess",
	KindPropertyAccess:                        "PropertyAccess",
	KindEventAccess:                           "EventAccess",
	KindIndexerAccess:                         "IndexerAccess",
	KindArrayAccess:                           "ArrayAccess",
	KindMethodGroup:                           "MethodGroup",
	KindCall:                                  "Call",
	KindObjectCreationExpression:              "ObjectCreationExpression",
	KindNewT:                                  "NewT",
	KindDynamicObjectCreationExpression:       "DynamicObjectCreationExpression",
	KindDelegateCreationExpression:            "DelegateCreationExpression",
	KindAnonymousObjectCreationExpression:     "AnonymousObjectCreationExpression",
	KindArrayCreation:                         "ArrayCreation",
	KindArrayInitialization:                   "ArrayInitialization",
	KindConversion:                            "Conversion",
	KindAsOperator:                            "AsOperator",
	KindIsOperator:                            "IsOperator",
	KindTypeOfOperator:                        "TypeOfOperator",
	KindSizeOfOperator:                        "SizeOfOperator",
	KindDefaultExpression:                     "DefaultExpression",
	KindUnaryOperator:                         "UnaryOperator",
	KindIncrementOperator:                     "IncrementOperator",
	KindBinaryOperator:                        "BinaryOperator",
	KindUserDefinedConditionalLogicalOperator: "UserDefinedConditionalLogicalOperator",
	KindTupleBinaryOperator:                   "TupleBinaryOperator",
	KindCompoundAssignmentOperator:            "CompoundAssignmentOperator",
	KindAssignmentOperator:                    "AssignmentOperator",
	KindDeconstructionAssignmentOperator:      "DeconstructionAssignmentOperator",
	KindEventAssignmentOperator:               "EventAssignmentOperator",
	KindNullCoalescingOperator:                "NullCoalescingOperator",
	KindNullCoalescingAssignmentOperator:      "NullCoalescingAssignmentOperator",
	KindConditionalOperator:                   "ConditionalOperator",
	KindConditionalAccess:                     "ConditionalAccess",
	KindAwaitExpression:                       "AwaitExpression",
	KindLambda:                                "Lambda",
	KindNameOfOperator:                        "NameOfOperator",
	KindInterpolatedString:                    "InterpolatedString",
	KindStringInsert:                          "StringInsert",
	KindTupleLiteral:                          "TupleLiteral",
	KindConvertedTupleLiteral:                 "ConvertedTupleLiteral",
	KindObjectInitializerExpression:           "ObjectInitializerExpression",
	KindCollectionInitializerExpression:       "CollectionInitializerExpression",
	KindObjectInitializerMember:               "ObjectInitializerMember",
	KindCollectionElementInitializer:          "CollectionElementInitializer",
	KindDynamicCollectionElementInitializer:   "DynamicCollectionElementInitializer",
	KindDynamicInvocation:                     "DynamicInvocation",
	KindDynamicMemberAccess:                   "DynamicMemberAccess",
	KindDynamicIndexerAccess:                  "DynamicIndexerAccess",
	KindBadExpression:                         "BadExpression",
	KindThrowExpression:                       "ThrowExpression",
	KindDiscardExpression:                     "DiscardExpression",
	KindAddressOfOperator:                     "AddressOfOperator",
	KindRangeExpression:                       "RangeExpression",
	KindFromEndIndexExpression:                "FromEndIndexExpression",
	KindIsPatternExpression:                   "IsPatternExpression",
	KindSwitchExpression:                      "SwitchExpression",
	KindSwitchExpressionArm:                   "SwitchExpressionArm",
	KindConstantPattern:                       "ConstantPattern",
	KindDeclarationPattern:                    "DeclarationPattern",
	KindDiscardPattern:                        "DiscardPattern",
	KindRecursivePattern:                      "RecursivePattern",
	KindPositionalSubpattern:                  "PositionalSubpattern",
	KindPropertySubpattern:                    "PropertySubpattern",
	KindRelationalPattern:                     "RelationalPattern",
	KindBinaryPattern:                         "BinaryPattern",
	KindNegatedPattern:                        "NegatedPattern",
	KindTypePattern:                           "TypePattern",
	KindBlock:                                 "Block",
	KindStatementList:                         "StatementList",
	KindExpressionStatement:                   "ExpressionStatement",
	KindLocalDeclaration:                      "LocalDeclaration",
	KindMultipleLocalDeclarations:             "MultipleLocalDeclarations",
	KindUsingLocalDeclarations:                "UsingLocalDeclarations",
	KindIfStatement:                           "IfStatement",
	KindWhileStatement:                        "WhileStatement",
	KindDoStatement:                           "DoStatement",
	KindForStatement:                          "ForStatement",
	KindForEachStatement:                      "ForEachStatement",
	KindBreakStatement:                        "BreakStatement",
	KindContinueStatement:                     "ContinueStatement",
	KindGotoStatement:                         "GotoStatement",
	KindReturnStatement:                       "ReturnStatement",
	KindYieldReturnStatement:                  "YieldReturnStatement",
	KindYieldBreakStatement:                   "YieldBreakStatement",
	KindThrowStatement:                        "ThrowStatement",
	KindTryStatement:                          "TryStatement",
	KindCatchBlock:                            "CatchBlock",
	KindLabeledStatement:                      "LabeledStatement",
	KindLabelStatement:                        "LabelStatement",
	KindNoOpStatement:                         "NoOpStatement",
	KindSwitchStatement:                       "SwitchStatement",
	KindSwitchSection:                         "SwitchSection",
	KindSwitchLabel:                           "SwitchLabel",
	KindLockStatement:                         "LockStatement",
	KindUsingStatement:                        "UsingStatement",
	KindLocalFunctionStatement:                "LocalFunctionStatement",
	KindBadStatement:                          "BadStatement",
	KindFieldEqualsValue:                      "FieldEqualsValue",
	KindPropertyEqualsValue:                   "PropertyEqualsValue",
	KindParameterEqualsValue:                  "ParameterEqualsValue",
	KindGlobalStatementInitializer:            "GlobalStatementInitializer",
	KindNonConstructorMethodBody:              "NonConstructorMethodBody",
	KindArgList:                               "ArgList",
	KindArgListOperator:                       "ArgListOperator",
	KindMakeRefOperator:                       "MakeRefOperator",
	KindRefTypeOperator:                       "RefTypeOperator",
	KindRefValueOperator:                      "RefValueOperator",
	KindAttribute:                             "Attribute",
	KindQueryClause:                           "QueryClause",
	KindRangeVariable:                         "RangeVariable",
	KindPreviousSubmissionReference:           "PreviousSubmissionReference",
	KindHostObjectMemberReference:             "HostObjectMemberReference",
	KindITuplePattern:                         "ITuplePattern",
	KindStackAllocArrayCreation:               "StackAllocArrayCreation",
	KindFixedStatement:                        "FixedStatement",
	KindUnboundLambda:                         "UnboundLambda",
	KindPointerIndirectionOperator:            "PointerIndirectionOperator",
	KindSequencePoint:                         "SequencePoint",
	KindSequencePointExpression:               "SequencePointExpression",
	KindSequence:                              "Sequence",
	KindConditionalGoto:                       "ConditionalGoto",
	KindStateMachineScope:                     "StateMachineScope",
	KindTypeExpression:                        "TypeExpression",
	KindNamespaceExpression:                   "NamespaceExpression",
	KindLabel:                                 "Label",
}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// ParseKind maps a kind name (as written in fixtures) to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k := Kind(0); k < KindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// ResultKind is the outcome of member lookup and overload resolution.
type ResultKind uint8

const (
	ResultViable ResultKind = iota
	ResultEmpty
	ResultInaccessible
	ResultAmbiguous
	ResultOverloadResolutionFailure
	ResultNotInvocable
	ResultWrongArity
)

var resultKindNames = map[string]ResultKind{
	"Viable":                    ResultViable,
	"Empty":                     ResultEmpty,
	"Inaccessible":              ResultInaccessible,
	"Ambiguous":                 ResultAmbiguous,
	"OverloadResolutionFailure": ResultOverloadResolutionFailure,
	"NotInvocable":              ResultNotInvocable,
	"WrongArity":                ResultWrongArity,
}

// ParseResultKind maps a fixture name to a ResultKind.
func ParseResultKind(name string) (ResultKind, bool) {
	k, ok := resultKindNames[name]
	return k, ok
}

// ConversionKind is the binder's classification of a conversion.
type ConversionKind uint8

const (
	ConversionIdentity ConversionKind = iota
	ConversionImplicitNumeric
	ConversionExplicitNumeric
	ConversionImplicitReference
	ConversionExplicitReference
	ConversionBoxing
	ConversionUnboxing
	ConversionImplicitNullable
	ConversionExplicitNullable
	ConversionNullLiteral
	ConversionDefaultLiteral
	ConversionImplicitConstant
	ConversionImplicitEnumeration
	ConversionExplicitEnumeration
	ConversionImplicitUserDefined
	ConversionExplicitUserDefined
	ConversionMethodGroup
	ConversionAnonymousFunction
	ConversionImplicitDynamic
	ConversionExplicitDynamic
	ConversionImplicitTuple
	ConversionExplicitTuple
	ConversionImplicitTupleLiteral
	ConversionInterpolatedString
	ConversionNone
)

var conversionKindNames = map[string]ConversionKind{
	"Identity":             ConversionIdentity,
	"ImplicitNumeric":      ConversionImplicitNumeric,
	"ExplicitNumeric":      ConversionExplicitNumeric,
	"ImplicitReference":    ConversionImplicitReference,
	"ExplicitReference":    ConversionExplicitReference,
	"Boxing":               ConversionBoxing,
	"Unboxing":             ConversionUnboxing,
	"ImplicitNullable":     ConversionImplicitNullable,
	"ExplicitNullable":     ConversionExplicitNullable,
	"NullLiteral":          ConversionNullLiteral,
	"DefaultLiteral":       ConversionDefaultLiteral,
	"ImplicitConstant":     ConversionImplicitConstant,
	"ImplicitEnumeration":  ConversionImplicitEnumeration,
	"ExplicitEnumeration":  ConversionExplicitEnumeration,
	"ImplicitUserDefined":  ConversionImplicitUserDefined,
	"ExplicitUserDefined":  ConversionExplicitUserDefined,
	"MethodGroup":          ConversionMethodGroup,
	"AnonymousFunction":    ConversionAnonymousFunction,
	"ImplicitDynamic":      ConversionImplicitDynamic,
	"ExplicitDynamic":      ConversionExplicitDynamic,
	"ImplicitTuple":        ConversionImplicitTuple,
	"ExplicitTuple":        ConversionExplicitTuple,
	"ImplicitTupleLiteral": ConversionImplicitTupleLiteral,
	"InterpolatedString":   ConversionInterpolatedString,
	"None":                 ConversionNone,
}

// ParseConversionKind maps a fixture name to a ConversionKind.
func ParseConversionKind(name string) (ConversionKind, bool) {
	k, ok := conversionKindNames[name]
	return k, ok
}

// IsUserDefined reports whether the conversion calls an operator method.
func (k ConversionKind) IsUserDefined() bool {
	return k == ConversionImplicitUserDefined || k == ConversionExplicitUserDefined
}

// IsImplicit reports whether the conversion is an implicit one.
func (k ConversionKind) IsImplicit() bool {
	switch k {
	case ConversionExplicitNumeric, ConversionExplicitReference, ConversionUnboxing,
		ConversionExplicitNullable, ConversionExplicitEnumeration, ConversionExplicitUserDefined,
		ConversionExplicitDynamic, ConversionExplicitTuple, ConversionNone:
		return false
	}
	return true
}

// DeclarationKind marks expressions that also declare variables.
type DeclarationKind uint8

const (
	DeclarationNone DeclarationKind = iota
	// DeclarationOutVariable is "out var x" / "out T x".
	DeclarationOutVariable
	// DeclarationDeconstruction is "var (a, b) = ..." or "(var a, var b) = ...".
	DeclarationDeconstruction
)

var declarationKindNames = map[string]DeclarationKind{
	"None":           DeclarationNone,
	"OutVariable":    DeclarationOutVariable,
	"Deconstruction": DeclarationDeconstruction,
}

// ParseDeclarationKind maps a fixture name to a DeclarationKind.
func ParseDeclarationKind(name string) (DeclarationKind, bool) {
	k, ok := declarationKindNames[name]
	return k, ok
}
