package parser

import "github.com/gophlex/phpparser/lexer"

// Precedence levels, listed from loosest (LOWEST) to tightest (PrecPrimary),
// the reverse of the high-to-low order spec.md §4.5 lists them in. `or`
// binds loosest; above clone/new sit only postfix, member access and
// primary forms. `!` has no level of its own: it parses its operand at
// PrecInstanceof.
type Precedence int

const (
	LOWEST Precedence = iota
	PrecOr
	PrecXor
	PrecAnd
	PrecPrint
	PrecYield
	PrecYieldFrom
	PrecAssignment // right-assoc
	PrecTernary    // right-assoc
	PrecCoalesce   // right-assoc
	PrecBooleanOr
	PrecBooleanAnd
	PrecBitwiseOr
	PrecBitwiseXor
	PrecBitwiseAnd
	PrecEquality
	PrecRelational
	PrecConcat
	PrecShift
	PrecAdditive
	PrecMultiplicative
	PrecInstanceof
	PrecUnary
	PrecPow // right-assoc
	PrecNewClone
	PrecPostfix
	PrecMemberAccess
	PrecPrimary
)

// infixPrecedence maps an infix/postfix operator token to its left binding
// power; tokens absent from the map have no infix meaning and terminate the
// Pratt loop.
var infixPrecedence = map[lexer.Kind]Precedence{
	lexer.KwLogicalOr:  PrecOr,
	lexer.KwLogicalXor: PrecXor,
	lexer.KwLogicalAnd: PrecAnd,

	lexer.Eq: PrecAssignment, lexer.PlusEqual: PrecAssignment,
	lexer.MinusEqual: PrecAssignment, lexer.MulEqual: PrecAssignment,
	lexer.DivEqual: PrecAssignment, lexer.ConcatEqual: PrecAssignment,
	lexer.ModEqual: PrecAssignment, lexer.AndEqual: PrecAssignment,
	lexer.OrEqual: PrecAssignment, lexer.XorEqual: PrecAssignment,
	lexer.ShlEqual: PrecAssignment, lexer.ShrEqual: PrecAssignment,
	lexer.PowEqual: PrecAssignment, lexer.CoalesceEqual: PrecAssignment,

	lexer.Question: PrecTernary,
	lexer.Coalesce:  PrecCoalesce,

	lexer.BooleanOr:  PrecBooleanOr,
	lexer.BooleanAnd: PrecBooleanAnd,

	lexer.VBar:  PrecBitwiseOr,
	lexer.Caret: PrecBitwiseXor,
	lexer.Amp:   PrecBitwiseAnd,

	lexer.IsEqual: PrecEquality, lexer.IsNotEqual: PrecEquality,
	lexer.IsIdentical: PrecEquality, lexer.IsNotIdentical: PrecEquality,

	lexer.Lt: PrecRelational, lexer.Gt: PrecRelational,
	lexer.LessEqual: PrecRelational, lexer.GreaterEqual: PrecRelational,
	lexer.Spaceship: PrecRelational, lexer.KwInstanceof: PrecInstanceof,

	lexer.Shl: PrecShift, lexer.Shr: PrecShift,

	lexer.Dot: PrecConcat,

	lexer.Plus: PrecAdditive, lexer.Minus: PrecAdditive,
	lexer.Star: PrecMultiplicative, lexer.Slash: PrecMultiplicative, lexer.Percent: PrecMultiplicative,

	lexer.Pow: PrecPow,

	lexer.Inc: PrecPostfix, lexer.Dec: PrecPostfix,

	lexer.Arrow: PrecMemberAccess, lexer.NullsafeArrow: PrecMemberAccess,
	lexer.DoubleColon: PrecMemberAccess, lexer.LBracket: PrecMemberAccess,
	lexer.LParen: PrecMemberAccess,
}

// rightAssoc marks operators whose right-hand side is parsed at the SAME
// (not greater) precedence, so chains like `$a = $b = $c` and `$a ?? $b ??
// $c` associate right.
var rightAssoc = map[lexer.Kind]bool{
	lexer.Eq: true, lexer.PlusEqual: true, lexer.MinusEqual: true,
	lexer.MulEqual: true, lexer.DivEqual: true, lexer.ConcatEqual: true,
	lexer.ModEqual: true, lexer.AndEqual: true, lexer.OrEqual: true,
	lexer.XorEqual: true, lexer.ShlEqual: true, lexer.ShrEqual: true,
	lexer.PowEqual: true, lexer.CoalesceEqual: true,
	lexer.Coalesce: true, lexer.Question: true, lexer.Pow: true,
}

// nonAssoc marks the equality/comparison clusters PHP refuses to chain
// without parentheses: `$a == $b == $c` is a parse error, not left-fold.
var nonAssoc = map[lexer.Kind]bool{
	lexer.IsEqual: true, lexer.IsNotEqual: true, lexer.IsIdentical: true,
	lexer.IsNotIdentical: true, lexer.Lt: true, lexer.Gt: true,
	lexer.LessEqual: true, lexer.GreaterEqual: true, lexer.Spaceship: true,
}

func precedenceOf(k lexer.Kind) Precedence {
	if p, ok := infixPrecedence[k]; ok {
		return p
	}
	return LOWEST
}
