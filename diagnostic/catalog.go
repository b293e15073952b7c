package diagnostic

import (
	"fmt"

	"github.com/gophlex/phpparser/source"
)

// The catalog below is a closed taxonomy: every diagnostic the parser
// raises goes through exactly one of these constructors, so the set of ids
// a caller can observe is fixed at compile time.

// E001: a lexical error could not be classified further; the lexer could
// not produce a reliable token at all from this point on.
func UnterminatedInput(what string, span source.Span) *Diagnostic {
	return New("E001", fmt.Sprintf("unterminated %s", what), span)
}

// E002: the parser wanted one specific token and got something else.
func UnexpectedToken(found, wanted string, span source.Span) *Diagnostic {
	return New("E002", fmt.Sprintf("unexpected %s, expected %s", found, wanted), span)
}

// E003: the parser ran out of tokens mid-construct.
func UnexpectedEOF(wanted string, span source.Span) *Diagnostic {
	return New("E003", fmt.Sprintf("unexpected end of input, expected %s", wanted), span).
		Error("input ends here", span)
}

// E004: an identifier appeared where a specific keyword was required.
func UnexpectedIdentifier(name, wanted string, span source.Span) *Diagnostic {
	return New("E004", fmt.Sprintf("unexpected identifier %q, expected %s", name, wanted), span)
}

// E005: a reserved word was used as a class/constant/goto-label name.
func ReservedWordUsedAsName(word, position string, span source.Span) *Diagnostic {
	return New("E005", fmt.Sprintf("%q is reserved and cannot be used as a %s name", word, position), span)
}

// E010: more than one of public/protected/private in one modifier group.
func MultipleVisibilityModifiers(first, second string, firstSpan, secondSpan source.Span) *Diagnostic {
	return New("E010", "multiple visibility modifiers are not allowed", secondSpan).
		Hint(fmt.Sprintf("%q declared here", first), firstSpan).
		Error(fmt.Sprintf("%q repeats it here", second), secondSpan)
}

// E011: the same modifier appeared twice.
func DuplicateModifier(modifier string, firstSpan, secondSpan source.Span) *Diagnostic {
	return New("E011", fmt.Sprintf("duplicate %q modifier", modifier), secondSpan).
		Hint("first occurrence here", firstSpan).
		Error("try removing this", secondSpan)
}

// E012: final and abstract on the same class or method.
func FinalAndAbstract(finalSpan, abstractSpan source.Span) *Diagnostic {
	return New("E012", "a declaration cannot be both final and abstract", abstractSpan).
		Hint("final declared here", finalSpan).
		Error("abstract declared here", abstractSpan)
}

// E013: final on a private class constant, which is unreachable from any
// subclass and therefore cannot be overridden in the first place.
func FinalPrivateConstant(privateSpan, finalSpan source.Span) *Diagnostic {
	return New("E013", "private constants cannot be final", finalSpan).
		Hint("private declared here", privateSpan).
		Error("try removing this", finalSpan).
		Note("private constants are not visible to subclasses, so final has no effect")
}

// E014: static used on a class constant.
func StaticOnConstant(span source.Span) *Diagnostic {
	return New("E014", "constants cannot be static", span).Error("try removing this", span)
}

// E015: readonly used on a class constant.
func ReadonlyOnConstant(span source.Span) *Diagnostic {
	return New("E015", "constants cannot be readonly", span).Error("try removing this", span)
}

// E016: only a closed set of modifiers is allowed on a given member kind.
func ModifierNotAllowed(modifier, memberKind, allowed string, span source.Span) *Diagnostic {
	return New("E016", fmt.Sprintf("%q cannot be used on %s", modifier, memberKind), span).
		Error("try removing this", span).
		Note(fmt.Sprintf("only %s modifiers can be used on %s", allowed, memberKind))
}

// E020: a readonly property declared with no type.
func ReadonlyPropertyWithoutType(readonlySpan, propertySpan source.Span) *Diagnostic {
	return New("E020", "readonly properties must have a type", propertySpan).
		Error("try adding a type", readonlySpan)
}

// E021: a readonly property declared with a default value.
func ReadonlyPropertyWithDefault(readonlySpan, defaultSpan source.Span) *Diagnostic {
	return New("E021", "readonly properties cannot have a default value", defaultSpan).
		Hint("readonly declared here", readonlySpan).
		Error("try removing this default", defaultSpan)
}

// E022: static combined with readonly on a property.
func StaticReadonlyProperty(staticSpan, readonlySpan source.Span) *Diagnostic {
	return New("E022", "a property cannot be both static and readonly", staticSpan).
		Hint("readonly declared here", readonlySpan).
		Error("try removing this", staticSpan)
}

// E023: a property typed void/never/callable, none of which are legal
// property types.
func PropertyTypeNotAllowed(typeName string, span source.Span) *Diagnostic {
	return New("E023", fmt.Sprintf("property cannot be declared with type %q", typeName), span)
}

// E024: an abstract method declared on a non-abstract class.
func AbstractMethodOnNonAbstractClass(className string, methodSpan, classSpan source.Span) *Diagnostic {
	return New("E024", fmt.Sprintf("class %q contains an abstract method and must itself be abstract", className), methodSpan).
		Hint("class declared here", classSpan)
}

// E025: a constructor declared inside an enum.
func ConstructorOnEnum(enumName string, methodSpan, enumSpan source.Span) *Diagnostic {
	return New("E025", fmt.Sprintf("enum %q cannot declare a constructor", enumName), methodSpan).
		Hint("enum declared here", enumSpan)
}

// E026: a magic method (__get, __set, ...) declared inside an enum.
func MagicMethodOnEnum(enumName, methodName string, methodSpan, enumSpan source.Span) *Diagnostic {
	return New("E026", fmt.Sprintf("enum %q cannot declare magic method %q", enumName, methodName), methodSpan).
		Hint("enum declared here", enumSpan)
}

// E027: a backed enum's case has no value expression.
func BackedEnumCaseWithoutValue(enumName string, caseSpan, enumSpan source.Span) *Diagnostic {
	return New("E027", "case of a backed enum must have a value", caseSpan).
		Hint(fmt.Sprintf("enum %q is backed here", enumName), enumSpan).
		Error("try adding a value", caseSpan)
}

// E028: a unit enum's case has a value expression.
func UnitEnumCaseWithValue(enumName string, caseSpan, enumSpan source.Span) *Diagnostic {
	return New("E028", "case of a non-backed enum cannot have a value", caseSpan).
		Hint(fmt.Sprintf("enum %q is not backed here", enumName), enumSpan).
		Error("try removing this value", caseSpan)
}

// E030: a promoted constructor parameter declared variadic.
func VariadicPromotedParameter(modifierSpan, paramSpan source.Span) *Diagnostic {
	return New("E030", "promoted properties cannot be variadic", paramSpan).
		Error("try removing this", modifierSpan)
}

// E031: a promoted constructor parameter typed callable.
func CallablePromotedParameter(typeSpan, paramSpan source.Span) *Diagnostic {
	return New("E031", "promoted properties cannot be typed callable", typeSpan).
		Error("try using a different type", typeSpan)
}

// E040: a standalone type (never/void/mixed, or any nullable) combined in a
// union, intersection, or re-nullabled.
func StandaloneTypeInCombination(typeString, combinator string, span source.Span) *Diagnostic {
	return New("E040", fmt.Sprintf("%q cannot be used in a %s", typeString, combinator), span).
		Error("try removing this", span).
		Note("never, void, mixed, and nullable types cannot be combined with other types")
}

// E041: DNF parentheses nested inside DNF parentheses.
func NestedDNFParens(span source.Span) *Diagnostic {
	return New("E041", "nested parentheses are not allowed in a DNF type", span).
		Error("try removing these parentheses", span)
}

// E042: self/static/parent used outside of a class scope.
func TypeRequiresClassScope(name string, span source.Span) *Diagnostic {
	return New("E042", fmt.Sprintf("%q can only be used inside a class", name), span)
}

// E043: braced and unbraced namespace declarations mixed in one file.
func MixedNamespaceStyle(firstSpan, secondSpan source.Span) *Diagnostic {
	return New("E043", "cannot mix braced and unbraced namespace declarations", secondSpan).
		Hint("first namespace declared here", firstSpan).
		Error("this one uses the other style", secondSpan)
}

// E044: a braced namespace declared inside another namespace.
func NestedNamespace(outerSpan, innerSpan source.Span) *Diagnostic {
	return New("E044", "namespace declarations cannot be nested", innerSpan).
		Hint("enclosing namespace declared here", outerSpan)
}

// E045: the spread operator used somewhere other than a call argument or
// array literal entry.
func SpreadNotAllowed(position string, span source.Span) *Diagnostic {
	return New("E045", fmt.Sprintf("the spread operator cannot be used in %s", position), span)
}

// E046: reference assignment to an expression that cannot be referenced
// (e.g. a literal or a function-call result used as the right-hand side).
func NotReferencable(span source.Span) *Diagnostic {
	return New("E046", "this expression cannot be assigned by reference", span)
}

// E047: an array-destructuring list mixes keyed and un-keyed entries.
func MixedKeyedUnkeyedList(span source.Span) *Diagnostic {
	return New("E047", "cannot mix keyed and unkeyed list entries", span)
}

// E048: a positional call argument follows a named one.
func PositionalAfterNamed(namedSpan, positionalSpan source.Span) *Diagnostic {
	return New("E048", "positional arguments cannot follow named arguments", positionalSpan).
		Hint("named argument here", namedSpan).
		Error("try moving this earlier", positionalSpan)
}

// E050: a match expression with more than one default arm.
func DuplicateMatchDefault(firstSpan, secondSpan source.Span) *Diagnostic {
	return New("E050", "match expression can only have one default arm", secondSpan).
		Hint("first default arm here", firstSpan).
		Error("second default arm here", secondSpan)
}

// E006: a try statement with no catch and no finally.
func TryWithoutCatchOrFinally(span source.Span) *Diagnostic {
	return New("E006", "try must have at least one catch clause or a finally clause", span)
}

// E007: attribute groups with no following declaration.
func MissingDeclarationAfterAttributes(span source.Span) *Diagnostic {
	return New("E007", "expected a declaration after this attribute", span)
}
