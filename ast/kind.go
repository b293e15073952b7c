package ast

// Kind tags every concrete node type in the tree. Unlike PHP's own
// zend_ast.h, which bit-packs child count and node category into the tag,
// each Go node type is its own struct with named fields, so Kind exists only
// to let callers switch on node identity without a type assertion.
type Kind uint16

const (
	KindUnknown Kind = iota

	// Program.
	KindProgram

	// Statements.
	KindNamespaceStatement
	KindUseStatement
	KindUseGroupStatement
	KindFunctionDeclaration
	KindClassDeclaration
	KindInterfaceDeclaration
	KindTraitDeclaration
	KindEnumDeclaration
	KindEnumCase
	KindPropertyDeclaration
	KindClassConstDeclaration
	KindMethodDeclaration
	KindTraitUseStatement
	KindExpressionStatement
	KindIfStatement
	KindForStatement
	KindForeachStatement
	KindWhileStatement
	KindDoWhileStatement
	KindSwitchStatement
	KindSwitchCase
	KindMatchArm
	KindTryStatement
	KindCatchClause
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindThrowStatement
	KindGotoStatement
	KindLabelStatement
	KindEchoStatement
	KindGlobalStatement
	KindStaticVarStatement
	KindInlineHTMLStatement
	KindBlockStatement
	KindDeclareStatement
	KindHaltCompilerStatement
	KindNoopStatement
	KindConstStatement

	// Expressions.
	KindIntLiteral
	KindFloatLiteral
	KindStringLiteral
	KindInterpolatedString
	KindVariable
	KindVariableVariable
	KindArrayLiteral
	KindArrayItem
	KindListExpression
	KindBinaryExpr
	KindUnaryExpr
	KindAssignExpr
	KindAssignRefExpr
	KindIncDecExpr
	KindCallExpr
	KindMethodCallExpr
	KindNullsafeMethodCallExpr
	KindStaticCallExpr
	KindPropertyFetchExpr
	KindNullsafePropertyFetchExpr
	KindStaticPropertyFetchExpr
	KindClassConstFetchExpr
	KindNewExpr
	KindAnonClassExpr
	KindFirstClassCallableExpr
	KindClosureExpr
	KindArrowFunctionExpr
	KindMatchExpr
	KindCastExpr
	KindTernaryExpr
	KindCoalesceExpr
	KindYieldExpr
	KindYieldFromExpr
	KindThrowExpr
	KindPrintExpr
	KindErrorSuppressExpr
	KindIncludeExpr
	KindCloneExpr
	KindMagicConstExpr
	KindInstanceofExpr
	KindNameExpr
	KindIndexExpr
	KindSpreadExpr
	KindNamedArgument
	KindEmptyExpr
	KindIssetExpr
	KindShellExecExpr

	// Parameters, args, attributes, modifiers.
	KindParameter
	KindArgument
	KindAttributeGroup
	KindAttribute
	KindModifierGroup
	KindClosureUseVariable

	// Types.
	KindSimpleType
	KindNullableType
	KindUnionType
	KindIntersectionType
)

var kindNames = map[Kind]string{
	KindUnknown:                   "Unknown",
	KindProgram:                   "Program",
	KindNamespaceStatement:        "NamespaceStatement",
	KindUseStatement:              "UseStatement",
	KindUseGroupStatement:         "UseGroupStatement",
	KindFunctionDeclaration:       "FunctionDeclaration",
	KindClassDeclaration:          "ClassDeclaration",
	KindInterfaceDeclaration:      "InterfaceDeclaration",
	KindTraitDeclaration:          "TraitDeclaration",
	KindEnumDeclaration:           "EnumDeclaration",
	KindEnumCase:                  "EnumCase",
	KindPropertyDeclaration:       "PropertyDeclaration",
	KindClassConstDeclaration:     "ClassConstDeclaration",
	KindMethodDeclaration:         "MethodDeclaration",
	KindTraitUseStatement:         "TraitUseStatement",
	KindExpressionStatement:       "ExpressionStatement",
	KindIfStatement:               "IfStatement",
	KindForStatement:              "ForStatement",
	KindForeachStatement:          "ForeachStatement",
	KindWhileStatement:            "WhileStatement",
	KindDoWhileStatement:          "DoWhileStatement",
	KindSwitchStatement:           "SwitchStatement",
	KindSwitchCase:                "SwitchCase",
	KindMatchArm:                  "MatchArm",
	KindTryStatement:              "TryStatement",
	KindCatchClause:               "CatchClause",
	KindReturnStatement:           "ReturnStatement",
	KindBreakStatement:            "BreakStatement",
	KindContinueStatement:         "ContinueStatement",
	KindThrowStatement:            "ThrowStatement",
	KindGotoStatement:             "GotoStatement",
	KindLabelStatement:            "LabelStatement",
	KindEchoStatement:             "EchoStatement",
	KindGlobalStatement:           "GlobalStatement",
	KindStaticVarStatement:        "StaticVarStatement",
	KindInlineHTMLStatement:       "InlineHTMLStatement",
	KindBlockStatement:            "BlockStatement",
	KindDeclareStatement:          "DeclareStatement",
	KindHaltCompilerStatement:     "HaltCompilerStatement",
	KindNoopStatement:             "NoopStatement",
	KindConstStatement:            "ConstStatement",
	KindIntLiteral:                "IntLiteral",
	KindFloatLiteral:              "FloatLiteral",
	KindStringLiteral:             "StringLiteral",
	KindInterpolatedString:        "InterpolatedString",
	KindVariable:                  "Variable",
	KindVariableVariable:         "VariableVariable",
	KindArrayLiteral:              "ArrayLiteral",
	KindArrayItem:                 "ArrayItem",
	KindListExpression:            "ListExpression",
	KindBinaryExpr:                "BinaryExpr",
	KindUnaryExpr:                 "UnaryExpr",
	KindAssignExpr:                "AssignExpr",
	KindAssignRefExpr:             "AssignRefExpr",
	KindIncDecExpr:                "IncDecExpr",
	KindCallExpr:                  "CallExpr",
	KindMethodCallExpr:            "MethodCallExpr",
	KindNullsafeMethodCallExpr:    "NullsafeMethodCallExpr",
	KindStaticCallExpr:            "StaticCallExpr",
	KindPropertyFetchExpr:         "PropertyFetchExpr",
	KindNullsafePropertyFetchExpr: "NullsafePropertyFetchExpr",
	KindStaticPropertyFetchExpr:   "StaticPropertyFetchExpr",
	KindClassConstFetchExpr:       "ClassConstFetchExpr",
	KindNewExpr:                   "NewExpr",
	KindAnonClassExpr:             "AnonClassExpr",
	KindFirstClassCallableExpr:    "FirstClassCallableExpr",
	KindClosureExpr:               "ClosureExpr",
	KindArrowFunctionExpr:         "ArrowFunctionExpr",
	KindMatchExpr:                 "MatchExpr",
	KindCastExpr:                  "CastExpr",
	KindTernaryExpr:               "TernaryExpr",
	KindCoalesceExpr:              "CoalesceExpr",
	KindYieldExpr:                 "YieldExpr",
	KindYieldFromExpr:             "YieldFromExpr",
	KindThrowExpr:                 "ThrowExpr",
	KindPrintExpr:                 "PrintExpr",
	KindErrorSuppressExpr:         "ErrorSuppressExpr",
	KindIncludeExpr:               "IncludeExpr",
	KindCloneExpr:                 "CloneExpr",
	KindMagicConstExpr:            "MagicConstExpr",
	KindInstanceofExpr:            "InstanceofExpr",
	KindNameExpr:                  "NameExpr",
	KindIndexExpr:                 "IndexExpr",
	KindSpreadExpr:                "SpreadExpr",
	KindNamedArgument:             "NamedArgument",
	KindEmptyExpr:                 "EmptyExpr",
	KindIssetExpr:                 "IssetExpr",
	KindShellExecExpr:             "ShellExecExpr",
	KindParameter:                 "Parameter",
	KindArgument:                  "Argument",
	KindAttributeGroup:            "AttributeGroup",
	KindAttribute:                 "Attribute",
	KindModifierGroup:             "ModifierGroup",
	KindClosureUseVariable:        "ClosureUseVariable",
	KindSimpleType:                "SimpleType",
	KindNullableType:              "NullableType",
	KindUnionType:                 "UnionType",
	KindIntersectionType:          "IntersectionType",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Kind(?)"
}
