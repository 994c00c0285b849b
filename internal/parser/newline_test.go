package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
)

// In an expression context newlines are insignificant: `a +\n b` parses
// identically to `a + b`.
func TestNewlineInsideExpressionIsIgnored(t *testing.T) {
	prog, errs := parseSrc(t, "func f() { let x = 1 +\n 2 }")
	require.Empty(t, errs)
	fn := prog.Statements[0].(*ast.FunctionDef)
	require.Len(t, fn.Body.Statements, 1)

	expr := fn.Body.Statements[0].(*ast.Expression)
	assign := expr.Kind.(ast.BinaryExpr)
	require.Equal(t, ast.OpAssign, assign.Op)

	rhs, ok := assign.RHS.(*ast.Expression)
	require.True(t, ok)
	add, ok := rhs.Kind.(ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
}

// In a statement-terminating context a newline ends the statement: `break`
// followed by a newline must not swallow the next line as its expression.
func TestNewlineTerminatesBreakWithoutExpression(t *testing.T) {
	prog, errs := parseSrc(t, "func f() { loop {\n break\n x = 1\n } }")
	require.Empty(t, errs)
	fn := prog.Statements[0].(*ast.FunctionDef)

	branch, ok := fn.Body.Statements[0].(*ast.Branch)
	require.True(t, ok)
	loop, ok := branch.Kind.(ast.LoopBranch)
	require.True(t, ok)
	require.Len(t, loop.Body.Statements, 2, "break must terminate at the newline, leaving x = 1 its own statement")

	cf, ok := loop.Body.Statements[0].(*ast.ControlFlow)
	require.True(t, ok)
	brk, ok := cf.Kind.(ast.BreakFlow)
	require.True(t, ok)
	assert.Nil(t, brk.Ret)
}

// A break with a value on the same line does carry its expression.
func TestBreakWithValueOnSameLine(t *testing.T) {
	prog, errs := parseSrc(t, "func f() { loop { break 5 } }")
	require.Empty(t, errs)
	fn := prog.Statements[0].(*ast.FunctionDef)
	branch := fn.Body.Statements[0].(*ast.Branch)
	loop := branch.Kind.(ast.LoopBranch)

	cf := loop.Body.Statements[0].(*ast.ControlFlow)
	brk := cf.Kind.(ast.BreakFlow)
	require.NotNil(t, brk.Ret)
	v, ok := brk.Ret.(*ast.Value)
	require.True(t, ok)
	assert.Equal(t, int64(5), v.Kind.(ast.IntegerValue).Value)
}

// Semicolons terminate statements the same way newlines do.
func TestSemicolonTerminatesStatement(t *testing.T) {
	prog, errs := parseSrc(t, "func f() { let a = 1; let b = 2 }")
	require.Empty(t, errs)
	fn := prog.Statements[0].(*ast.FunctionDef)
	assert.Len(t, fn.Body.Statements, 2)
}
