package lexer

import "fmt"

// Kind identifies the grammatical category of a Token. Values mirror the
// ordering PHP's own tokenizer uses (language constructs, then operators,
// then punctuation) so the numeric ranges stay meaningful for debugging.
type Kind int

// Position locates a token in the source: byte offset plus derived line and
// column, matching source.Span's convention.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Token is a single lexical unit: its kind, the raw bytes it covers, and its
// position. Punctuation and operator tokens carry their own source bytes
// (";" for a semicolon) rather than an empty value; only EOF and the token
// for a closing `"` or backtick have an empty Value.
type Token struct {
	Kind  Kind
	Value []byte
	Pos   Position
}

// String renders a token for debugging/logging; never used for AST output.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Value, t.Pos.Line, t.Pos.Column)
}

const (
	Unknown Kind = iota
	EOF

	// Open/close tags.
	OpenTag      // <?php
	OpenTagEcho  // <?=
	CloseTag     // ?>

	// Literals.
	Int               // 123, 0x1F, 0o17, 0b101
	Float             // 1.5, 1e10
	StringLiteral     // '...'
	EncapsedString    // not emitted by this lexer; see EncapsedAndWhitespace
	EncapsedAndWhitespace // literal fragment inside "..." / `...` / heredoc / nowdoc
	VarName           // name captured by ${name}

	// Identifiers.
	Ident               // bare identifier / keyword text before table lookup
	QualifiedIdent       // Foo\Bar
	FullyQualifiedIdent  // \Foo\Bar
	RelativeIdent        // namespace\Foo\Bar
	Variable             // $name
	InlineHTML

	// Comments.
	Comment
	DocComment

	// Heredoc/nowdoc markers.
	StartHeredoc
	EndHeredoc
	DollarOpenCurly // ${
	CurlyOpen       // {$

	// Keywords.
	KwInclude
	KwIncludeOnce
	KwEval
	KwRequire
	KwRequireOnce
	KwLogicalOr
	KwLogicalXor
	KwLogicalAnd
	KwPrint
	KwYield
	KwYieldFrom
	KwInstanceof
	KwNew
	KwClone
	KwExit
	KwIf
	KwElseif
	KwElse
	KwEndif
	KwEcho
	KwDo
	KwWhile
	KwEndwhile
	KwFor
	KwEndfor
	KwForeach
	KwEndforeach
	KwDeclare
	KwEnddeclare
	KwAs
	KwSwitch
	KwEndswitch
	KwCase
	KwDefault
	KwMatch
	KwBreak
	KwContinue
	KwGoto
	KwFunction
	KwFn
	KwConst
	KwReturn
	KwTry
	KwCatch
	KwFinally
	KwThrow
	KwUse
	KwInsteadof
	KwGlobal
	KwStatic
	KwAbstract
	KwFinal
	KwPrivate
	KwProtected
	KwPublic
	KwReadonly
	KwVar
	KwUnset
	KwIsset
	KwEmpty
	KwHaltCompiler
	KwClass
	KwTrait
	KwInterface
	KwEnum
	KwExtends
	KwImplements
	KwList
	KwArray
	KwCallable
	KwNamespace
	KwSelf
	KwParent
	KwTraitC
	KwMethodC
	KwFuncC
	KwClassC
	KwLineC
	KwFileC
	KwDirC
	KwNsC

	// Scalar type keywords used in type position (also usable as identifiers
	// in expression position via the keyword table below).
	KwNull
	KwTrue
	KwFalse
	KwVoid
	KwNever
	KwMixed
	KwIterable
	KwObjectType

	// Casts.
	IntCast
	DoubleCast
	StringCast
	ArrayCast
	ObjectCast
	BoolCast
	UnsetCast

	// Multi-char operators / punctuation.
	NsSeparator // \
	Arrow               // ->
	NullsafeArrow       // ?->
	DoubleArrow         // =>
	DoubleColon         // ::
	Ellipsis            // ...
	IsEqual             // ==
	IsNotEqual          // != or <>
	IsIdentical         // ===
	IsNotIdentical      // !==
	LessEqual           // <=
	GreaterEqual        // >=
	Spaceship           // <=>
	PlusEqual
	MinusEqual
	MulEqual
	DivEqual
	ConcatEqual
	ModEqual
	AndEqual
	OrEqual
	XorEqual
	ShlEqual
	ShrEqual
	PowEqual
	CoalesceEqual
	Inc // ++
	Dec // --
	BooleanOr
	BooleanAnd
	Coalesce // ??
	Shl      // <<
	Shr      // >>
	Pow      // **
	Attribute // #[
	Pipe      // |> (PHP 8.4)

	// Single-character punctuation.
	Semicolon
	Comma
	Dot
	LBrace
	RBrace
	LParen
	RParen
	LBracket
	RBracket
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	VBar
	Caret
	Tilde
	Lt
	Gt
	Eq
	Bang
	Question
	Colon
	At
	Dollar
)

var names = map[Kind]string{
	Unknown: "Unknown", EOF: "EOF",
	OpenTag: "OpenTag", OpenTagEcho: "OpenTagEcho", CloseTag: "CloseTag",
	Int: "Int", Float: "Float", StringLiteral: "StringLiteral",
	EncapsedString: "EncapsedString", EncapsedAndWhitespace: "EncapsedAndWhitespace",
	VarName: "VarName", Ident: "Ident", QualifiedIdent: "QualifiedIdent",
	FullyQualifiedIdent: "FullyQualifiedIdent", RelativeIdent: "RelativeIdent",
	Variable: "Variable", InlineHTML: "InlineHTML",
	Comment: "Comment", DocComment: "DocComment",
	StartHeredoc: "StartHeredoc", EndHeredoc: "EndHeredoc",
	DollarOpenCurly: "DollarOpenCurly", CurlyOpen: "CurlyOpen",
	NsSeparator: "NsSeparator", Arrow: "Arrow", NullsafeArrow: "NullsafeArrow",
	DoubleArrow: "DoubleArrow", DoubleColon: "DoubleColon", Ellipsis: "Ellipsis",
	IsEqual: "IsEqual", IsNotEqual: "IsNotEqual", IsIdentical: "IsIdentical",
	IsNotIdentical: "IsNotIdentical", LessEqual: "LessEqual", GreaterEqual: "GreaterEqual",
	Spaceship: "Spaceship", Inc: "Inc", Dec: "Dec", BooleanOr: "BooleanOr",
	BooleanAnd: "BooleanAnd", Coalesce: "Coalesce", Shl: "Shl", Shr: "Shr", Pow: "Pow",
	Attribute: "Attribute", Pipe: "Pipe",
	Semicolon: ";", Comma: ",", Dot: ".", LBrace: "{", RBrace: "}",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Amp: "&", VBar: "|", Caret: "^", Tilde: "~", Lt: "<", Gt: ">",
	Eq: "=", Bang: "!", Question: "?", Colon: ":", At: "@", Dollar: "$",
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps ASCII-lowercased identifier text to its keyword Kind. Lookup
// is always performed after lowercasing, since PHP keyword matching is
// ASCII-case-insensitive.
var Keywords = map[string]Kind{
	"include": KwInclude, "include_once": KwIncludeOnce, "eval": KwEval,
	"require": KwRequire, "require_once": KwRequireOnce,
	"or": KwLogicalOr, "xor": KwLogicalXor, "and": KwLogicalAnd,
	"print": KwPrint, "yield": KwYield, "instanceof": KwInstanceof,
	"new": KwNew, "clone": KwClone, "exit": KwExit, "die": KwExit,
	"if": KwIf, "elseif": KwElseif, "else": KwElse, "endif": KwEndif,
	"echo": KwEcho, "do": KwDo, "while": KwWhile, "endwhile": KwEndwhile,
	"for": KwFor, "endfor": KwEndfor, "foreach": KwForeach, "endforeach": KwEndforeach,
	"declare": KwDeclare, "enddeclare": KwEnddeclare, "as": KwAs,
	"switch": KwSwitch, "endswitch": KwEndswitch, "case": KwCase, "default": KwDefault,
	"match": KwMatch, "break": KwBreak, "continue": KwContinue, "goto": KwGoto,
	"function": KwFunction, "fn": KwFn, "const": KwConst, "return": KwReturn,
	"try": KwTry, "catch": KwCatch, "finally": KwFinally, "throw": KwThrow,
	"use": KwUse, "insteadof": KwInsteadof, "global": KwGlobal, "static": KwStatic,
	"abstract": KwAbstract, "final": KwFinal, "private": KwPrivate,
	"protected": KwProtected, "public": KwPublic, "readonly": KwReadonly, "var": KwVar,
	"unset": KwUnset, "isset": KwIsset, "empty": KwEmpty,
	"__halt_compiler": KwHaltCompiler, "class": KwClass, "trait": KwTrait,
	"interface": KwInterface, "enum": KwEnum, "extends": KwExtends,
	"implements": KwImplements, "list": KwList, "array": KwArray,
	"callable": KwCallable, "namespace": KwNamespace,
	"self": KwSelf, "parent": KwParent,
	"__trait__": KwTraitC, "__method__": KwMethodC, "__function__": KwFuncC,
	"__class__": KwClassC, "__line__": KwLineC, "__file__": KwFileC,
	"__dir__": KwDirC, "__namespace__": KwNsC,
	"null": KwNull, "true": KwTrue, "false": KwFalse,
	"void": KwVoid, "never": KwNever, "mixed": KwMixed, "iterable": KwIterable,
	"object": KwObjectType,
}

// SoftKeywords functions as a keyword only in specific grammatical positions
// but remains usable as an ordinary name elsewhere (e.g. as a function or
// constant name). readonly/enum/from are the canonical PHP 8.x examples.
var SoftKeywords = map[string]bool{
	"readonly": true, "enum": true, "from": true, "match": true,
	"self": true, "parent": true, "static": true, "list": true, "array": true,
}

// IsKeyword reports the Kind for a lowercased identifier, if it is a keyword.
func IsKeyword(lower string) (Kind, bool) {
	k, ok := Keywords[lower]
	return k, ok
}
