package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/symboltable"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

func TestBuiltinCallBypassesFunctionLookup(t *testing.T) {
	msgs := analyze(t, `
func f() {
	__tanit_compiler__add_i32_i32(1, 2)
}
`)
	assert.Empty(t, msgs, "a built-in name must type-check without a definition in scope")
}

func TestGlobalVariableDefinitionAllowed(t *testing.T) {
	msgs := analyze(t, `
let answer: i32 = 42
`)
	assert.Empty(t, msgs)
}

func TestBareExpressionInGlobalScopeRejected(t *testing.T) {
	msgs := analyze(t, `
1 + 2
`)
	require.True(t, msgs.HasErrors())
	assert.Contains(t, msgs[0].Text, "not allowed in global scope")
}

func TestPointerAliasConversionScenario(t *testing.T) {
	msgs := analyze(t, `
alias Ptr = *i32
let p: Ptr = 0 as *i32
`)
	assert.Empty(t, msgs)
}

func TestAliasMismatchDiagnosticCarriesAka(t *testing.T) {
	msgs := analyze(t, `
alias A = i32
func f() {
	let z: A = "foo"
}
`)
	require.True(t, msgs.HasErrors())
	assert.Contains(t, msgs[0].Text, "(aka: i32)")
}

func TestStructFieldMismatchDiagnosticText(t *testing.T) {
	msgs := analyze(t, `
struct S { x: i32 }
func f() {
	let s = S{x: 1.0}
}
`)
	require.True(t, msgs.HasErrors())
	assert.Contains(t, msgs[0].Text, `Struct field named "x" is i32, but initialized like f32`)
}

func TestMutableRefOfImmutableBindingRejected(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let x = 1
	let r = &mut x
}
`)
	require.True(t, msgs.HasErrors())
}

func TestMutableRefOfMutableBindingAllowed(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let mut x = 1
	let r = &mut x
}
`)
	assert.Empty(t, msgs)
}

func TestSharedRefDoesNotRequireMutability(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let x = 1
	let r = &x
}
`)
	assert.Empty(t, msgs)
}

func TestMutationThroughMutableRefUsesRefBit(t *testing.T) {
	// r itself is not `mut`, but its type is &mut: the reference's own
	// mutable bit governs the check.
	msgs := analyze(t, `
func f(mut x: i32) {
	let r = &mut x
	r = r
}
`)
	assert.Empty(t, msgs)
}

func TestMutationThroughSharedRefRejected(t *testing.T) {
	msgs := analyze(t, `
func f(x: i32) {
	let r = &x
	r = r
}
`)
	require.True(t, msgs.HasErrors())
}

func TestEnumDuplicateValueWarnsWithoutBlocking(t *testing.T) {
	_, _, msgs := analyzeKeeping(t, `
enum E { A, B: 0 }
func f() {
	let v = E::B
}
`)
	require.NotEmpty(t, msgs, "duplicated enum values must be diagnosed")
	assert.False(t, msgs.HasErrors(), "the duplicate diagnostic is a warning, not an error")
	for _, m := range msgs {
		assert.Equal(t, message.SeverityWarning, m.Severity)
	}
}

func TestDiagnosticsAreDeterministicAcrossRuns(t *testing.T) {
	src := `
struct S { x: i32, y: i32 }
func f() {
	let s = S{x: 1.0, y: "two"}
	undefined_one()
	undefined_two()
}
`
	var runs []message.Messages
	for i := 0; i < 2; i++ {
		_, _, msgs := analyzeKeeping(t, src)
		require.NotEmpty(t, msgs)
		runs = append(runs, msgs)
	}
	assert.Equal(t, runs[0], runs[1], "the diagnostic sequence must be byte-identical across runs")
}

func TestSymbolTableShapeAfterAnalysis(t *testing.T) {
	a, _, msgs := analyzeKeeping(t, `
func main() {
	let x = 5
}
`)
	require.Empty(t, msgs)

	entry, ok := a.Table().Lookup(ident.Intern("main"))
	require.True(t, ok)
	fd, ok := entry.Kind.(symboltable.FuncDefData)
	require.True(t, ok)
	assert.True(t, fd.ReturnType.IsUnit())

	// The body scope is retained as a child of the scope main was declared
	// in; it holds x as an initialized I32 VarDef.
	children := a.Table().CurrentScope().Children()
	require.NotEmpty(t, children)
	body := children[len(children)-1]

	var found bool
	for _, e := range body.Entries() {
		if e.Name.Equal(ident.Intern("x")) {
			vd, ok := e.Kind.(symboltable.VarDefData)
			require.True(t, ok)
			assert.Equal(t, ttype.MkI32(), vd.Type)
			assert.True(t, vd.Initialized)
			found = true
		}
	}
	assert.True(t, found, "x must be registered in main's body scope")
}

func TestNestedModuleQualifiedAccess(t *testing.T) {
	msgs := analyze(t, `
module Outer {
	module Inner {
		func leaf(x: i32) -> i32 { return x }
	}
}
func f() {
	Outer::Inner::leaf(7)
}
`)
	assert.Empty(t, msgs)
}

func TestModuleNameCollisionIsError(t *testing.T) {
	msgs := analyze(t, `
module M { }
module M { }
`)
	require.True(t, msgs.HasErrors())
	assert.Contains(t, msgs[0].Text, "defined multiple times")
}

func TestExternFunctionsAreCallable(t *testing.T) {
	msgs := analyze(t, `
extern "C" {
	func puts(s: &str) -> i32
}
func f() {
	puts("hello")
}
`)
	assert.Empty(t, msgs)
}

func TestContinueOutsideLoopIsError(t *testing.T) {
	msgs := analyze(t, `
func f() {
	continue
}
`)
	require.True(t, msgs.HasErrors())
	assert.Contains(t, msgs[0].Text, "Unexpected continue statement")
}

func TestContinueInsideWhileIsAllowed(t *testing.T) {
	msgs := analyze(t, `
func f() {
	let mut i = 0
	while i < 10 {
		i = i + 1
		continue
	}
}
`)
	assert.Empty(t, msgs)
}

func TestBreakInsideIfInsideLoopIsAllowed(t *testing.T) {
	// If/Else bodies inherit the enclosing scope's info, so IsInLoop
	// survives into them.
	msgs := analyze(t, `
func f() {
	loop {
		if true {
			break
		}
	}
}
`)
	assert.Empty(t, msgs)
}

func TestReturnInsideLoopInsideFunctionIsAllowed(t *testing.T) {
	msgs := analyze(t, `
func f() -> i32 {
	loop {
		return 1
	}
}
`)
	assert.Empty(t, msgs)
}

func TestLocalTypeDefinitionRejected(t *testing.T) {
	msgs := analyze(t, `
func f() {
	struct Local { x: i32 }
}
`)
	require.True(t, msgs.HasErrors())
	assert.Contains(t, msgs[0].Text, "not allowed in local scope")
}

func TestVariantTupleConstructorChecked(t *testing.T) {
	msgs := analyze(t, `
variant Shape {
	Dot,
	Circle: (i32),
	Rect { w: i32, h: i32 },
}
func f() {
	let a = Shape::Dot
	let b = Shape::Circle(3)
	let c = Shape::Rect{w: 1, h: 2}
}
`)
	assert.Empty(t, msgs)
}

func TestVariantTupleConstructorArityMismatch(t *testing.T) {
	msgs := analyze(t, `
variant Shape {
	Circle: (i32),
}
func f() {
	let b = Shape::Circle(3, 4)
}
`)
	require.True(t, msgs.HasErrors())
}
