package ir

// OperationKind identifies the variant of an Operation.
type OperationKind uint8

const (
	KindNone OperationKind = iota
	KindInvalid
	KindBlock
	KindVariableDeclarationGroup
	KindSwitch
	KindLoop
	KindLabeled
	KindBranch
	KindEmpty
	KindReturn
	KindYieldBreak
	KindLock
	KindTry
	KindUsing
	KindYieldReturn
	KindExpressionStatement
	KindLocalFunction
	KindLiteral
	KindConversion
	KindInvocation
	KindArrayElementReference
	KindLocalReference
	KindParameterReference
	KindFieldReference
	KindMethodReference
	KindPropertyReference
	KindEventReference
	KindUnaryOperator
	KindBinaryOperator
	KindConditional
	KindCoalesce
	KindAnonymousFunction
	KindObjectCreation
	KindTypeParameterObjectCreation
	KindArrayCreation
	KindInstanceReference
	KindIsType
	KindAwait
	KindSimpleAssignment
	KindCompoundAssignment
	KindEventAssignment
	KindConditionalAccess
	KindConditionalAccessInstance
	KindInterpolatedString
	KindAnonymousObjectCreation
	KindObjectOrCollectionInitializer
	KindMemberInitializer
	KindNameOf
	KindTuple
	KindDynamicObjectCreation
	KindDynamicMemberReference
	KindDynamicInvocation
	KindDynamicIndexerAccess
	KindDelegateCreation
	KindDefaultValue
	KindTypeOf
	KindSizeOf
	KindAddressOf
	KindIsPattern
	KindIncrement
	KindThrow
	KindDecrement
	KindDeconstructionAssignment
	KindDeclarationExpression
	KindOmittedArgument
	KindFieldInitializer
	KindVariableInitializer
	KindPropertyInitializer
	KindParameterInitializer
	KindArrayInitializer
	KindVariableDeclarator
	KindVariableDeclaration
	KindArgument
	KindCatchClause
	KindSwitchCase
	KindCaseClause
	KindInterpolatedStringText
	KindInterpolation
	KindConstantPattern
	KindDeclarationPattern
	KindTupleBinaryOperator
	KindMethodBody
	KindDiscard
	KindCoalesceAssignment
	KindRange
	KindRecursivePattern
	KindDiscardPattern
	KindSwitchExpression
	KindSwitchExpressionArm
	KindPropertySubpattern
	KindUsingDeclaration
	KindNegatedPattern
	KindBinaryPattern
	KindTypePattern
	KindRelationalPattern

	kindCount
)

var kindNames = [...]string{
	KindNone:                          "None",
	KindInvalid:                       "Invalid",
	KindBlock:                         "Block",
	KindVariableDeclarationGroup:      "VariableDeclarationGroup",
	KindSwitch:                        "Switch",
	KindLoop:                          "Loop",
	KindLabeled:                       "Labeled",
	KindBranch:                        "Branch",
	KindEmpty:                         "Empty",
	KindReturn:                        "Return",
	KindYieldBreak:                    "YieldBreak",
	KindLock:                          "Lock",
	KindTry:                           "Try",
	KindUsing:                         "Using",
	KindYieldReturn:                   "YieldReturn",
	KindExpressionStatement:           "ExpressionStatement",
	KindLocalFunction:                 "LocalFunction",
	KindLiteral:                       "Literal",
	KindConversion:                    "Conversion",
	KindInvocation:                    "Invocation",
	KindArrayElementReference:         "ArrayElementReference",
	KindLocalReference:                "LocalReference",
	KindParameterReference:            "ParameterReference",
	KindFieldReference:                "FieldReference",
	KindMethodReference:               "MethodReference",
	KindPropertyReference:             "PropertyReference",
	KindEventReference:                "EventReference",
	KindUnaryOperator:                 "UnaryOperator",
	KindBinaryOperator:                "BinaryOperator",
	KindConditional:                   "Conditional",
	KindCoalesce:                      "Coalesce",
	KindAnonymousFunction:             "AnonymousFunction",
	KindObjectCreation:                "ObjectCreation",
	KindTypeParameterObjectCreation:   "TypeParameterObjectCreation",
	KindArrayCreation:                 "ArrayCreation",
	KindInstanceReference:             "InstanceReference",
	KindIsType:                        "IsType",
	KindAwait:                         "Await",
	KindSimpleAssignment:              "SimpleAssignment",
	KindCompoundAssignment:            "CompoundAssignment",
	KindEventAssignment:               "EventAssignment",
	KindConditionalAccess:             "ConditionalAccess",
	KindConditionalAccessInstance:     "ConditionalAccessInstance",
	KindInterpolatedString:            "InterpolatedString",
	KindAnonymousObjectCreation:       "AnonymousObjectCreation",
	KindObjectOrCollectionInitializer: "ObjectOrCollectionInitializer",
	KindMemberInitializer:             "MemberInitializer",
	KindNameOf:                        "NameOf",
	KindTuple:                         "Tuple",
	KindDynamicObjectCreation:         "DynamicObjectCreation",
	KindDynamicMemberReference:        "DynamicMemberReference",
	KindDynamicInvocation:             "DynamicInvocation",
	KindDynamicIndexerAccess:          "DynamicIndexerAccess",
	KindDelegateCreation:              "DelegateCreation",
	KindDefaultValue:                  "DefaultValue",
	KindTypeOf:                        "TypeOf",
	KindSizeOf:                        "SizeOf",
	KindAddressOf:                     "AddressOf",
	KindIsPattern:                     "IsPattern",
	KindIncrement:                     "Increment",
	KindThrow:                         "Throw",
	KindDecrement:                     "Decrement",
	KindDeconstructionAssignment:      "DeconstructionAssignment",
	KindDeclarationExpression:         "DeclarationExpression",
	KindOmittedArgument:               "OmittedArgument",
	KindFieldInitializer:              "FieldInitializer",
	KindVariableInitializer:           "VariableInitializer",
	KindPropertyInitializer:           "PropertyInitializer",
	KindParameterInitializer:          "ParameterInitializer",
	KindArrayInitializer:              "ArrayInitializer",
	KindVariableDeclarator:            "VariableDeclarator",
	KindVariableDeclaration:           "VariableDeclaration",
	KindArgument:                      "Argument",
	KindCatchClause:                   "CatchClause",
	KindSwitchCase:                    "SwitchCase",
	KindCaseClause:                    "CaseClause",
	KindInterpolatedStringText:        "InterpolatedStringText",
	KindInterpolation:                 "Interpolation",
	KindConstantPattern:               "ConstantPattern",
	KindDeclarationPattern:            "DeclarationPattern",
	KindTupleBinaryOperator:           "TupleBinaryOperator",
	KindMethodBody:                    "MethodBody",
	KindDiscard:                       "Discard",
	KindCoalesceAssignment:            "CoalesceAssignment",
	KindRange:                         "Range",
	KindRecursivePattern:              "RecursivePattern",
	KindDiscardPattern:                "DiscardPattern",
	KindSwitchExpression:              "SwitchExpression",
	KindSwitchExpressionArm:           "SwitchExpressionArm",
	KindPropertySubpattern:            "PropertySubpattern",
	KindUsingDeclaration:              "UsingDeclaration",
	KindNegatedPattern:                "NegatedPattern",
	KindBinaryPattern:                 "BinaryPattern",
	KindTypePattern:                   "TypePattern",
	KindRelationalPattern:             "RelationalPattern",
}

func (k OperationKind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "OperationKind(?)"
}

// ParseOperationKind maps a kind name back to its OperationKind.
func ParseOperationKind(name string) (OperationKind, bool) {
	for k := OperationKind(0); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindNone, false
}
