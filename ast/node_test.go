package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/source"
)

func intLit(n int64) *ast.IntLiteral {
	return &ast.IntLiteral{BaseNode: ast.BaseNode{Kind: ast.KindIntLiteral}, Value: n}
}

func TestProgram_GetChildrenReturnsStatementsInOrder(t *testing.T) {
	a := &ast.ExpressionStatement{BaseNode: ast.BaseNode{Kind: ast.KindExpressionStatement}, Expr: intLit(1)}
	b := &ast.ExpressionStatement{BaseNode: ast.BaseNode{Kind: ast.KindExpressionStatement}, Expr: intLit(2)}
	prog := ast.NewProgram(source.Span{}, []ast.Statement{a, b})

	children := prog.GetChildren()
	require.Len(t, children, 2)
	assert.Same(t, ast.Node(a), children[0])
	assert.Same(t, ast.Node(b), children[1])
}

func TestWalk_VisitsPreOrder(t *testing.T) {
	stmt := &ast.ExpressionStatement{BaseNode: ast.BaseNode{Kind: ast.KindExpressionStatement}, Expr: intLit(7)}
	prog := ast.NewProgram(source.Span{}, []ast.Statement{stmt})

	var visited []ast.Kind
	ast.Inspect(prog, func(n ast.Node) bool {
		visited = append(visited, n.GetKind())
		return true
	})

	assert.Equal(t, []ast.Kind{ast.KindProgram, ast.KindExpressionStatement, ast.KindIntLiteral}, visited)
}

func TestInspect_FalseReturnSkipsSubtree(t *testing.T) {
	stmt := &ast.ExpressionStatement{BaseNode: ast.BaseNode{Kind: ast.KindExpressionStatement}, Expr: intLit(7)}
	prog := ast.NewProgram(source.Span{}, []ast.Statement{stmt})

	var visited int
	ast.Inspect(prog, func(n ast.Node) bool {
		visited++
		return false
	})

	assert.Equal(t, 1, visited, "Visit returning false must stop descent into Program's statements")
}

func TestToJSON_RoundTripsThroughExportedFields(t *testing.T) {
	stmt := &ast.ExpressionStatement{BaseNode: ast.BaseNode{Kind: ast.KindExpressionStatement}, Expr: intLit(42)}
	prog := ast.NewProgram(source.Span{Line: 1, Column: 0}, []ast.Statement{stmt})

	data, err := ast.ToJSON(prog)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "Statements")
}
