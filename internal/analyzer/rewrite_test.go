package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheIcefield/tanit-lang-sub000/internal/analyzer"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/session"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// analyzeKeeping parses and analyzes src, returning the analyzer and the
// (now rewritten) AST so tests can inspect both the rewrites and the
// resulting symbol table.
func analyzeKeeping(t *testing.T, src string) (*analyzer.Analyzer, *ast.Block, message.Messages) {
	t.Helper()
	session.Begin()
	prog := parseForAnalyzer(t, src)
	a := analyzer.New()
	msgs := a.Analyze(prog)
	return a, prog, msgs
}

// letInitializer digs the RHS out of a `let name = expr` statement, which
// the parser represents as Assign with a *ast.VariableDef LHS.
func letInitializer(t *testing.T, stmt ast.Node) ast.Node {
	t.Helper()
	expr, ok := stmt.(*ast.Expression)
	require.True(t, ok, "expected an initialization Expression, got %T", stmt)
	bin, ok := expr.Kind.(ast.BinaryExpr)
	require.True(t, ok)
	require.IsType(t, &ast.VariableDef{}, bin.LHS)
	return bin.RHS
}

func TestEnumAccessRewritesToTypedIntegerTerm(t *testing.T) {
	_, prog, msgs := analyzeKeeping(t, `
enum E { A, B: 3 }
func f() {
	let v = E::B
}
`)
	require.Empty(t, msgs)

	fn := prog.Statements[1].(*ast.FunctionDef)
	rhs := letInitializer(t, fn.Body.Statements[0])

	expr, ok := rhs.(*ast.Expression)
	require.True(t, ok)
	term, ok := expr.Kind.(ast.TermExpr)
	require.True(t, ok, "E::B must be rewritten to a Term, got %T", expr.Kind)

	assert.Equal(t, ttype.MkCustom("E"), term.Type)
	v, ok := term.Node.(*ast.Value)
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Kind.(ast.IntegerValue).Value)
}

func TestEnumAccessAfterExplicitValueCountsForward(t *testing.T) {
	// enum E { A, B: 10, C } gives C = 11; `let v = E::C` must carry it.
	_, prog, msgs := analyzeKeeping(t, `
enum E { A, B: 10, C }
let v = E::C
`)
	require.Empty(t, msgs)

	rhs := letInitializer(t, prog.Statements[1])
	expr := rhs.(*ast.Expression)
	term := expr.Kind.(ast.TermExpr)
	assert.Equal(t, ttype.MkCustom("E"), term.Type)
	assert.Equal(t, int64(11), term.Node.(*ast.Value).Kind.(ast.IntegerValue).Value)

	// The binding's inferred type follows the Term's annotation.
	def := prog.Statements[1].(*ast.Expression).Kind.(ast.BinaryExpr).LHS.(*ast.VariableDef)
	assert.Equal(t, ttype.MkCustom("E"), def.DeclaredType)
}

func TestNotifiedArgsRewrittenToSwappedPositionalIndices(t *testing.T) {
	_, prog, msgs := analyzeKeeping(t, `
func f(a: i32, b: i32) -> i32 { return a + b }
func g() {
	let r = f(b: 2, a: 1)
}
`)
	require.Empty(t, msgs)

	g := prog.Statements[1].(*ast.FunctionDef)
	rhs := letInitializer(t, g.Body.Statements[0])

	call, ok := rhs.(*ast.Value)
	require.True(t, ok)
	args := call.Kind.(ast.CallValue).Args
	require.Len(t, args, 2)

	first, ok := args[0].Kind.(ast.PositionalArg)
	require.True(t, ok, "no argument may remain Notified after analysis")
	second, ok := args[1].Kind.(ast.PositionalArg)
	require.True(t, ok)

	// Source order is preserved; only the indices are resolved.
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, int64(2), first.Expr.(*ast.Value).Kind.(ast.IntegerValue).Value)
	assert.Equal(t, 0, second.Index)
	assert.Equal(t, int64(1), second.Expr.(*ast.Value).Kind.(ast.IntegerValue).Value)
}

func TestStructAccessLiteralRewritesToTypedTerm(t *testing.T) {
	_, prog, msgs := analyzeKeeping(t, `
module M {
	struct S { x: i32 }
}
func f() {
	let s = M::S{x: 1}
}
`)
	require.Empty(t, msgs)

	fn := prog.Statements[1].(*ast.FunctionDef)
	rhs := letInitializer(t, fn.Body.Statements[0])

	expr := rhs.(*ast.Expression)
	term, ok := expr.Kind.(ast.TermExpr)
	require.True(t, ok, "M::S{...} must be rewritten to a typed Term")
	assert.Equal(t, ttype.MkCustom("S"), term.Type)
}

func TestCompoundAssignAnalyzesLikeItsDesugaredForm(t *testing.T) {
	// a += b and a = a + b must analyze identically; in particular the
	// shared-LHS desugar must not trip the duplicate-definition check.
	msgs := analyze(t, `
func f() {
	let mut a = 1
	a += 2
}
`)
	assert.Empty(t, msgs)
}

func TestCompoundAssignToImmutableIsRejected(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let a = 1
	a += 2
}
`)
	require.True(t, msgs.HasErrors())
}
