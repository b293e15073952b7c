package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/diagnostic"
	"github.com/gophlex/phpparser/parser"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, bag := parser.Parse("test.php", []byte(src))
	require.NotNil(t, prog)
	if bag.HasErrors() {
		for _, d := range bag.All() {
			t.Logf("unexpected diagnostic: %s", d.Error0())
		}
	}
	require.False(t, bag.HasErrors())
	return prog
}

func firstExpr(t *testing.T, prog *ast.Program) ast.Expression {
	t.Helper()
	require.NotEmpty(t, prog.Statements)
	es, ok := prog.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok, "expected an expression statement, got %T", prog.Statements[0])
	return es.Expr
}

func TestParser_Literals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ast.Kind
	}{
		{"integer", "<?php 42;", ast.KindIntLiteral},
		{"float", "<?php 3.14;", ast.KindFloatLiteral},
		{"string", "<?php 'hello';", ast.KindStringLiteral},
		{"variable", "<?php $foo;", ast.KindVariable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parseOK(t, tt.src)
			require.Len(t, prog.Statements, 1)
			assert.Equal(t, tt.kind, firstExpr(t, prog).GetKind())
		})
	}
}

func TestParser_OversizedIntLiteralPromotesToFloat(t *testing.T) {
	prog := parseOK(t, "<?php 99999999999999999999;")
	require.Len(t, prog.Statements, 1)
	lit, ok := firstExpr(t, prog).(*ast.FloatLiteral)
	require.True(t, ok, "expected an overflowing integer literal to parse as a float")
	assert.InEpsilon(t, 1e20, lit.Value, 1e-6)
}

func TestParser_BinaryExpressionPrecedence(t *testing.T) {
	prog := parseOK(t, "<?php 1 + 2 * 3;")
	expr := firstExpr(t, prog)
	bin, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)

	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok, "multiplication must bind tighter than addition")
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestParser_AssignmentIsRightAssociative(t *testing.T) {
	prog := parseOK(t, "<?php $a = $b = 1;")
	expr := firstExpr(t, prog)
	outer, ok := expr.(*ast.AssignExpr)
	require.True(t, ok)
	_, ok = outer.Value.(*ast.AssignExpr)
	assert.True(t, ok, "chained assignment must nest on the right")
}

func TestParser_TernaryAndElvis(t *testing.T) {
	prog := parseOK(t, "<?php $a ? $b : $c;")
	_, ok := firstExpr(t, prog).(*ast.TernaryExpr)
	assert.True(t, ok)

	prog = parseOK(t, "<?php $a ?: $b;")
	ternary, ok := firstExpr(t, prog).(*ast.TernaryExpr)
	require.True(t, ok)
	assert.Nil(t, ternary.Then, "elvis form has no `then` branch")
}

func TestParser_IfElseIfElse(t *testing.T) {
	prog := parseOK(t, `<?php
if ($a) { echo 1; } elseif ($b) { echo 2; } else { echo 3; }
`)
	require.Len(t, prog.Statements, 1)
	ifs, ok := prog.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	require.Len(t, ifs.Branches, 3)
	assert.NotNil(t, ifs.Branches[0].Cond)
	assert.NotNil(t, ifs.Branches[1].Cond)
	assert.Nil(t, ifs.Branches[2].Cond, "the trailing else branch has no condition")
}

func TestParser_AlternativeIfSyntax(t *testing.T) {
	prog := parseOK(t, `<?php
if ($a):
	echo 1;
endif;
`)
	ifs, ok := prog.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.True(t, ifs.Alt)
}

func TestParser_ForeachWithKeyAndByRef(t *testing.T) {
	prog := parseOK(t, "<?php foreach ($items as $k => &$v) { echo $v; }")
	require.Len(t, prog.Statements, 1)
	_, ok := prog.Statements[0].(*ast.ForeachStatement)
	assert.True(t, ok)
}

func TestParser_MatchExpression(t *testing.T) {
	prog := parseOK(t, `<?php
$r = match ($x) {
	1, 2 => "low",
	default => "high",
};
`)
	assign, ok := firstExpr(t, prog).(*ast.AssignExpr)
	require.True(t, ok)
	m, ok := assign.Value.(*ast.MatchExpr)
	require.True(t, ok)
	require.Len(t, m.Arms, 2)
}

func TestParser_DuplicateMatchDefaultIsDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php
match ($x) {
	default => 1,
	default => 2,
};
`))
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E050", bag.All()[0].ID)
}

func TestParser_FunctionDeclarationWithTypedParamsAndReturn(t *testing.T) {
	prog := parseOK(t, "<?php function add(int $a, int $b = 0): int { return $a + $b; }")
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.NotNil(t, fn.Params[1].Default)
	assert.NotNil(t, fn.ReturnType)
}

func TestParser_ClassWithPromotedConstructorProperties(t *testing.T) {
	prog := parseOK(t, `<?php
class Point {
	public function __construct(
		public readonly int $x,
		public readonly int $y = 0,
	) {}
}
`)
	class, ok := prog.Statements[0].(*ast.ClassDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Point", class.Name)
	require.Len(t, class.Members, 1)
	ctor, ok := class.Members[0].(*ast.MethodDeclaration)
	require.True(t, ok)
	require.Len(t, ctor.Params, 2)
	assert.True(t, ctor.Params[0].Promotion.Has(ast.ModReadonly))
	assert.True(t, ctor.Params[0].Promotion.Has(ast.ModPublic))
}

func TestParser_VariadicPromotedParameterIsDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php
class C { public function __construct(public int ...$xs) {} }
`))
	require.True(t, bag.HasErrors())
	var found bool
	for _, d := range bag.All() {
		if d.ID == "E030" {
			found = true
		}
	}
	assert.True(t, found, "expected E030 for a variadic promoted parameter")
}

func TestParser_EnumBackedCaseMissingValueIsDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php
enum Suit: string {
	case Hearts = 'H';
	case Spades;
}
`))
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E027", bag.All()[0].ID)
}

func TestParser_ConstructorOnEnumIsDiagnosedDistinctlyFromMagicMethods(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php
enum Suit { public function __construct() {} }
`))
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E025", bag.All()[0].ID)

	_, bag = parser.Parse("test.php", []byte(`<?php
enum Suit { public function __clone() {} }
`))
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E026", bag.All()[0].ID)
}

func TestParser_TraitUseWithInsteadOfAndAs(t *testing.T) {
	prog := parseOK(t, `<?php
class C {
	use A, B {
		A::foo insteadof B;
		B::bar as protected baz;
	}
}
`)
	class, ok := prog.Statements[0].(*ast.ClassDeclaration)
	require.True(t, ok)
	require.Len(t, class.Members, 1)
	_, ok = class.Members[0].(*ast.TraitUseStatement)
	assert.True(t, ok)
}

func TestParser_UnionAndIntersectionTypes(t *testing.T) {
	prog := parseOK(t, "<?php function f(int|string $x, Countable&Iterator $y) {}")
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	_, ok = fn.Params[0].Type.(*ast.UnionType)
	assert.True(t, ok)
	_, ok = fn.Params[1].Type.(*ast.IntersectionType)
	assert.True(t, ok)
}

func TestParser_NestedDNFParensAreDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte("<?php function f((A&(B&C))|D $x) {}"))
	require.True(t, bag.HasErrors())
	var found bool
	for _, d := range bag.All() {
		if d.ID == "E041" {
			found = true
		}
	}
	assert.True(t, found, "expected E041 for doubly-nested DNF parentheses")
}

func TestParser_NamedAndPositionalArguments(t *testing.T) {
	prog := parseOK(t, `<?php f(1, b: 2, ...$rest);`)
	call, ok := firstExpr(t, prog).(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 3)
	assert.Equal(t, "", call.Args[0].Name)
	assert.Equal(t, "b", call.Args[1].Name)
	assert.True(t, call.Args[2].Spread)
}

func TestParser_PositionalArgumentAfterNamedIsDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php f(a: 1, 2);`))
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E048", bag.All()[0].ID)
}

func TestParser_ArrowFunctionAndClosureWithUse(t *testing.T) {
	prog := parseOK(t, "<?php $f = fn($x) => $x + 1;")
	assign, ok := firstExpr(t, prog).(*ast.AssignExpr)
	require.True(t, ok)
	_, ok = assign.Value.(*ast.ArrowFunctionExpr)
	assert.True(t, ok)

	prog = parseOK(t, "<?php $f = function ($x) use (&$total) { $total += $x; };")
	assign, ok = firstExpr(t, prog).(*ast.AssignExpr)
	require.True(t, ok)
	_, ok = assign.Value.(*ast.ClosureExpr)
	assert.True(t, ok)
}

func TestParser_ListDestructuringRejectsMixedKeyedUnkeyed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php list($a, 'k' => $b) = $arr;`))
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E047", bag.All()[0].ID)
}

func TestParser_TryWithoutCatchOrFinallyIsDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php try { doStuff(); }`))
	require.True(t, bag.HasErrors())
	assert.Equal(t, "E006", bag.All()[0].ID)
}

func TestParser_MultiCatchWithBoundVariable(t *testing.T) {
	prog := parseOK(t, `<?php
try {
	doStuff();
} catch (TypeError|ValueError $e) {
	echo $e;
} finally {
	cleanup();
}
`)
	tryStmt, ok := prog.Statements[0].(*ast.TryStatement)
	require.True(t, ok)
	require.Len(t, tryStmt.Catches, 1)
	assert.Len(t, tryStmt.Catches[0].Types, 2)
	assert.NotEmpty(t, tryStmt.Finally)
}

func TestParser_SwitchWithAlternativeSyntax(t *testing.T) {
	prog := parseOK(t, `<?php
switch ($x):
	case 1:
		echo "one";
		break;
	default:
		echo "other";
endswitch;
`)
	_, ok := prog.Statements[0].(*ast.SwitchStatement)
	assert.True(t, ok)
}

func TestParser_UnexpectedTokenRecoversAndKeepsParsing(t *testing.T) {
	prog, bag := parser.Parse("test.php", []byte("<?php $a = ; echo 1;"))
	require.NotNil(t, prog)
	assert.True(t, bag.HasErrors())
	var sawEcho bool
	for _, stmt := range prog.Statements {
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			if _, ok := es.Expr.(*ast.IntLiteral); ok {
				sawEcho = true
			}
		}
		if _, ok := stmt.(*ast.EchoStatement); ok {
			sawEcho = true
		}
	}
	assert.True(t, sawEcho, "parser should recover at the next statement boundary and keep parsing")
}

func TestParser_MixingNamespaceStylesIsDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php
namespace Foo;
namespace Bar { echo 1; }
`))
	require.True(t, bag.HasErrors())
	var found bool
	for _, d := range bag.All() {
		if d.ID == "E043" {
			found = true
		}
	}
	assert.True(t, found, "expected E043 for mixed namespace styles")
}

func TestParser_SelfStaticParentOutsideClassIsDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte("<?php function f(): self {}"))
	require.True(t, bag.HasErrors())
	var found bool
	for _, d := range bag.All() {
		if d.ID == "E042" {
			found = true
		}
	}
	assert.True(t, found, "expected E042 for self outside a class scope")
}

func hasDiagnostic(bag *diagnostic.Bag, id string) bool {
	for _, d := range bag.All() {
		if d.ID == id {
			return true
		}
	}
	return false
}

func TestParser_GotoLabelCannotBeReservedWord(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte("<?php goto echo;"))
	require.True(t, bag.HasErrors())
	assert.True(t, hasDiagnostic(bag, "E005"), "expected E005 for a reserved word used as a goto label")
}

func TestParser_ClassNameCannotBeReservedWord(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte("<?php class function {}"))
	require.True(t, bag.HasErrors())
	assert.True(t, hasDiagnostic(bag, "E005"), "expected E005 for a reserved word used as a class name")
}

func TestParser_PropertyCannotBeTypedCallable(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte("<?php class C { public callable $x; }"))
	require.True(t, bag.HasErrors())
	assert.True(t, hasDiagnostic(bag, "E023"), "expected E023 for a property typed callable")
}

func TestParser_PromotedParameterCannotBeTypedCallable(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php
class C { public function __construct(public callable $x) {} }
`))
	require.True(t, bag.HasErrors())
	assert.True(t, hasDiagnostic(bag, "E031"), "expected E031 for a promoted parameter typed callable")
}

func TestParser_NestedBracedNamespaceIsDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte(`<?php
namespace Foo {
	namespace Bar {
		echo 1;
	}
}
`))
	require.True(t, bag.HasErrors())
	assert.True(t, hasDiagnostic(bag, "E044"), "expected E044 for a namespace nested inside another namespace")
}

func TestParser_ListDestructuringRejectsSpread(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte("<?php list(...$a) = $b;"))
	require.True(t, bag.HasErrors())
	assert.True(t, hasDiagnostic(bag, "E045"), "expected E045 for a spread item inside list()")
}

func TestParser_ReferenceAssignmentToNonReferencableValueIsDiagnosed(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte("<?php $a =& 5;"))
	require.True(t, bag.HasErrors())
	assert.True(t, hasDiagnostic(bag, "E046"), "expected E046 for a reference assignment to a non-referencable value")
}

func TestParser_UnterminatedParameterListReportsUnexpectedEOF(t *testing.T) {
	_, bag := parser.Parse("test.php", []byte("<?php function foo("))
	require.True(t, bag.HasErrors())
	assert.True(t, hasDiagnostic(bag, "E003"), "expected E003 when the token stream ends mid-construct")
}
