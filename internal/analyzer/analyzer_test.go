package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheIcefield/tanit-lang-sub000/internal/analyzer"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/config"
	"github.com/TheIcefield/tanit-lang-sub000/internal/lexer"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/parser"
	"github.com/TheIcefield/tanit-lang-sub000/internal/session"
)

// analyze lexes, parses, and analyzes src, returning every diagnostic from
// both stages (a parse error short-circuits analysis, matching cmd/tanitc).
func analyze(t *testing.T, src string) message.Messages {
	t.Helper()
	session.Begin()
	stream := lexer.NewStream(lexer.New(src))
	prog, parseErrs := parser.New(stream).ParseProgram()
	require.Empty(t, parseErrs, "unexpected parse errors for: %s", src)
	return analyzer.New().Analyze(prog)
}

// parseForAnalyzer lexes and parses src, returning the raw AST so a test
// can inspect an analyzer rewrite (e.g. EnumDef.Fields[i].Value) directly
// instead of only the resulting diagnostics.
func parseForAnalyzer(t *testing.T, src string) *ast.Block {
	t.Helper()
	stream := lexer.NewStream(lexer.New(src))
	prog, parseErrs := parser.New(stream).ParseProgram()
	require.Empty(t, parseErrs, "unexpected parse errors for: %s", src)
	return prog
}

func TestAnalyzeCleanProgramHasNoErrors(t *testing.T) {
	msgs := analyze(t, `
func add(a: i32, b: i32) -> i32 {
	return a + b
}
func main() {
	let x = add(1, 2)
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzeRecursiveFunctionCallsItself(t *testing.T) {
	msgs := analyze(t, `
func fact(n: i32) -> i32 {
	if n == 0 {
		return 1
	}
	return n * fact(n - 1)
}
`)
	assert.Empty(t, msgs, "a function must be able to call itself")
}

func TestAnalyzeMultipleIDsInSameScope(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let x = 1
	let x = 2
}
`)
	require.True(t, msgs.HasErrors())
}

func TestAnalyzeShadowingInNestedScopeIsAllowed(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let x = 1
	if true {
		let x = 2
	}
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzeUndefinedIdentifier(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let x = y
}
`)
	require.True(t, msgs.HasErrors())
}

func TestAnalyzeTooFewArguments(t *testing.T) {
	msgs := analyze(t, `
func add(a: i32, b: i32) -> i32 { return a + b }
func f() {
	add(1)
}
`)
	require.True(t, msgs.HasErrors())
}

func TestAnalyzeNotifiedArgRewrittenToPositional(t *testing.T) {
	// Exercised indirectly: a well-typed notified-arg call must analyze
	// clean, proving the rewrite from Notified to Positional succeeded
	// (the analyzer would otherwise see a stale index and misreport a
	// type mismatch against the wrong parameter).
	msgs := analyze(t, `
func greet(name: i32, times: i32) {}
func f() {
	greet(times: 2, name: 1)
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzePositionalAfterNotifiedIsError(t *testing.T) {
	msgs := analyze(t, `
func f(a: i32, b: i32) {}
func g() {
	f(a: 1, 2)
}
`)
	require.True(t, msgs.HasErrors())
}

func TestAnalyzeImmutableAssignmentRejected(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let x = 1
	x = 2
}
`)
	require.True(t, msgs.HasErrors())
}

func TestAnalyzeMutableAssignmentAllowed(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let mut x = 1
	x = 2
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzeStructLiteralFieldCountMismatch(t *testing.T) {
	msgs := analyze(t, `
struct Point { x: i32, y: i32 }
func f() {
	Point{x: 1}
}
`)
	require.True(t, msgs.HasErrors())
}

func TestAnalyzeStructLiteralWellTyped(t *testing.T) {
	msgs := analyze(t, `
struct Point { x: i32, y: i32 }
func f() {
	Point{x: 1, y: 2}
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzeUnionLiteralMustInitializeExactlyOne(t *testing.T) {
	msgs := analyze(t, `
union U { a: i32, b: i32 }
func f() {
	U{}
}
`)
	require.True(t, msgs.HasErrors(), "a union literal initializing zero fields must be rejected")
}

func TestAnalyzeUnionLiteralWithOneFieldIsValid(t *testing.T) {
	msgs := analyze(t, `
union U { a: i32, b: i32 }
func f() {
	U{a: 1}
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzeUnionLiteralWithTwoFieldsIsError(t *testing.T) {
	msgs := analyze(t, `
union U { a: i32, b: i32 }
func f() {
	U{a: 1, b: 2}
}
`)
	require.True(t, msgs.HasErrors())
}

func TestAnalyzeBreakOutsideLoopIsError(t *testing.T) {
	msgs := analyze(t, `
func f() {
	break
}
`)
	require.True(t, msgs.HasErrors())
}

func TestAnalyzeBreakInsideLoopIsAllowed(t *testing.T) {
	msgs := analyze(t, `
func f() {
	loop {
		break
	}
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzeReturnOutsideFunctionIsError(t *testing.T) {
	msgs := analyze(t, `
return 1
`)
	require.True(t, msgs.HasErrors())
	assert.Contains(t, msgs[0].Text, "not allowed in global scope")
}

func TestAnalyzeEnumMembersAutoIncrement(t *testing.T) {
	msgs := analyze(t, `
enum Color { Red, Green, Blue }
func f() {
	let x = Color::Green
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzeEnumMembersAssignExactValues(t *testing.T) {
	prog := parseForAnalyzer(t, `
enum E { A, B: 5, C, D }
`)
	session.Begin()
	msgs := analyzer.New().Analyze(prog)
	require.Empty(t, msgs)

	enumDef := prog.Statements[0].(*ast.EnumDef)
	got := make([]int, len(enumDef.Fields))
	for i, field := range enumDef.Fields {
		require.NotNil(t, field.Value, "field %q never assigned a value", field.Name)
		got[i] = *field.Value
	}
	assert.Equal(t, []int{0, 5, 6, 7}, got)
}

func TestAnalyzeQualifiedModuleFunctionCall(t *testing.T) {
	msgs := analyze(t, `
module M {
	func helper(x: i32) -> i32 { return x }
}
func f() {
	M::helper(1)
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzeAliasTransparentAssignment(t *testing.T) {
	msgs := analyze(t, `
alias MyInt = i32
func f() {
	let x: MyInt = 1
	let y: i32 = x
}
`)
	assert.Empty(t, msgs, "assigning through a transparent alias must be allowed")
}

func TestAnalyzeAliasCycleDetected(t *testing.T) {
	msgs := analyze(t, `
alias A = B
alias B = A
func f() {
	let x: A = 1
}
`)
	require.True(t, msgs.HasErrors(), "a cyclic alias chain must be diagnosed, not overflow")
}

func TestAnalyzeVariantAllowedByDefault(t *testing.T) {
	msgs := analyze(t, "variant V { Common }")
	assert.Empty(t, msgs, "default options allow variants, so this should analyze clean")
}

func TestAnalyzeVariantFeatureGatedOff(t *testing.T) {
	session.Begin()
	stream := lexer.NewStream(lexer.New("variant V { Common }"))
	prog, parseErrs := parser.New(stream).ParseProgram()
	require.Empty(t, parseErrs)

	opts := config.Default()
	opts.AllowVariants = false
	msgs := analyzer.WithOptions(opts).Analyze(prog)
	require.True(t, msgs.HasErrors(), "a VariantDef must be rejected when the feature is gated off")
}

func TestAnalyzeIndexingNonArrayIsError(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let x = 1
	let y = x[0]
}
`)
	require.True(t, msgs.HasErrors())
}

func TestAnalyzeArrayIndexingAllowed(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let arr = [1, 2, 3]
	let y = arr[0]
}
`)
	assert.Empty(t, msgs)
}

func TestAnalyzeHeterogeneousArrayIsError(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let arr = [1, "two", 3]
}
`)
	require.True(t, msgs.HasErrors())
}
