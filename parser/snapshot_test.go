package parser_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/parser"
)

// TestSnapshots_ASTShapeIsStable parses a handful of representative PHP
// snippets and pins the resulting AST's JSON rendering, catching
// accidental shape drift in any node's field names or tree structure.
func TestSnapshots_ASTShapeIsStable(t *testing.T) {
	fixtures := map[string]string{
		"function_with_union_type": "<?php function f(int|string $x): void {}",
		"class_with_promotion":     "<?php class Point { public function __construct(public readonly int $x) {} }",
		"match_expression":         "<?php $r = match ($x) { 1, 2 => 'low', default => 'high' };",
		"foreach_alt_syntax":       "<?php foreach ($xs as $k => $v): echo $v; endforeach;",
		"enum_backed":              "<?php enum Suit: string { case Hearts = 'H'; case Spades = 'S'; }",
		"attributes_on_class":      "<?php #[Attribute] class C {}",
		"arrow_function":           "<?php $f = fn($x) => $x + 1;",
		"nullsafe_chain":           "<?php $a?->b?->c();",
	}

	for name, src := range fixtures {
		t.Run(name, func(t *testing.T) {
			prog, bag := parser.Parse("snapshot.php", []byte(src))
			require.NotNil(t, prog)
			require.False(t, bag.HasErrors(), "unexpected diagnostics for %s", name)

			out, err := ast.ToJSON(prog)
			require.NoError(t, err)
			snaps.MatchSnapshot(t, string(out))
		})
	}
}
