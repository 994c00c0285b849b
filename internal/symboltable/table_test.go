package symboltable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

func TestInsertAndLookupSameScope(t *testing.T) {
	tbl := New()
	x := ident.Intern("x")
	require.NoError(t, tbl.Insert(Entry{Name: x, Kind: VarDefData{Type: ttype.MkI32()}}))

	entry, ok := tbl.Lookup(x)
	require.True(t, ok)
	assert.Equal(t, x, entry.Name)
}

func TestInsertDuplicateInSameScopeFails(t *testing.T) {
	tbl := New()
	x := ident.Intern("dup_x")
	require.NoError(t, tbl.Insert(Entry{Name: x, Kind: VarDefData{Type: ttype.MkI32()}}))

	err := tbl.Insert(Entry{Name: x, Kind: VarDefData{Type: ttype.MkI32()}})
	require.Error(t, err)
	var dupErr *DuplicateError
	assert.ErrorAs(t, err, &dupErr)
}

func TestLookupSearchesEnclosingScopes(t *testing.T) {
	tbl := New()
	outer := ident.Intern("outer_y")
	require.NoError(t, tbl.Insert(Entry{Name: outer, Kind: VarDefData{Type: ttype.MkI32()}}))

	tbl.EnterScope(tbl.GetScopeInfo())
	defer tbl.ExitScope()

	entry, ok := tbl.Lookup(outer)
	require.True(t, ok)
	assert.Equal(t, outer, entry.Name)
}

func TestShadowingAllowedInNestedScope(t *testing.T) {
	tbl := New()
	name := ident.Intern("shadow_z")
	require.NoError(t, tbl.Insert(Entry{Name: name, Kind: VarDefData{Type: ttype.MkI32()}}))

	tbl.EnterScope(tbl.GetScopeInfo())
	defer tbl.ExitScope()

	// Re-declaring the same name in a nested scope is legal.
	require.NoError(t, tbl.Insert(Entry{Name: name, Kind: VarDefData{Type: ttype.MkStr()}}))

	entry, ok := tbl.Lookup(name)
	require.True(t, ok)
	vd, ok := entry.Kind.(VarDefData)
	require.True(t, ok)
	assert.Equal(t, ttype.MkStr(), vd.Type)
}

func TestScopeInfoInheritedAndOverridable(t *testing.T) {
	tbl := New()
	tbl.EnterScope(ScopeInfo{IsInFunc: true, IsInLoop: false})
	assert.True(t, tbl.GetScopeInfo().IsInFunc)

	tbl.EnterScope(ScopeInfo{IsInFunc: true, IsInLoop: true})
	assert.True(t, tbl.GetScopeInfo().IsInLoop)
}

func TestExitScopeOnRootPanics(t *testing.T) {
	tbl := New()
	assert.Panics(t, func() { tbl.ExitScope() })
}

func TestLookupQualifiedThroughModule(t *testing.T) {
	tbl := New()
	modName := ident.Intern("M")
	fnName := ident.Intern("f")

	sub := New()
	require.NoError(t, sub.Insert(Entry{Name: fnName, IsStatic: true, Kind: FuncDefData{ReturnType: ttype.MkI32()}}))

	require.NoError(t, tbl.Insert(Entry{Name: modName, IsStatic: true, Kind: ModuleDefData{Table: sub}}))

	entry, ok := tbl.LookupQualified([]ident.Ident{modName, fnName})
	require.True(t, ok)
	_, isFunc := entry.Kind.(FuncDefData)
	assert.True(t, isFunc)
}

func TestLookupQualifiedThroughEnumProducesSyntheticEntry(t *testing.T) {
	tbl := New()
	enumName := ident.Intern("Color")
	memberName := ident.Intern("Red")

	require.NoError(t, tbl.Insert(Entry{
		Name:     enumName,
		IsStatic: true,
		Kind: EnumDefData{
			Members: map[ident.Ident]int{memberName: 2},
			Order:   []ident.Ident{memberName},
		},
	}))

	entry, ok := tbl.LookupQualified([]ident.Ident{enumName, memberName})
	require.True(t, ok)
	data, ok := entry.Kind.(EnumData)
	require.True(t, ok)
	assert.Equal(t, 2, data.Value)
	assert.Equal(t, enumName, data.EnumName)
}

func TestLookupQualifiedThroughModuleWithPushedScope(t *testing.T) {
	// A module analyzed by a sub-analyzer keeps its members in a scope
	// pushed below the sub-table's root; qualified descent must still
	// find them.
	tbl := New()
	modName := ident.Intern("Pushed")
	fnName := ident.Intern("g")

	sub := New()
	sub.EnterScope(sub.GetScopeInfo())
	require.NoError(t, sub.Insert(Entry{Name: fnName, IsStatic: true, Kind: FuncDefData{ReturnType: ttype.MkI32()}}))

	require.NoError(t, tbl.Insert(Entry{Name: modName, IsStatic: true, Kind: ModuleDefData{Table: sub}}))

	entry, ok := tbl.LookupQualified([]ident.Ident{modName, fnName})
	require.True(t, ok)
	_, isFunc := entry.Kind.(FuncDefData)
	assert.True(t, isFunc)
}

func TestExitedScopesRemainReachableAsChildren(t *testing.T) {
	tbl := New()
	inner := ident.Intern("inner_v")

	tbl.EnterScope(tbl.GetScopeInfo())
	require.NoError(t, tbl.Insert(Entry{Name: inner, Kind: VarDefData{Type: ttype.MkI32()}}))
	tbl.ExitScope()

	children := tbl.CurrentScope().Children()
	require.Len(t, children, 1)
	entry, ok := children[0].get(inner)
	require.True(t, ok)
	assert.Equal(t, inner, entry.Name)
}

func TestLookupQualifiedUnknownPathFails(t *testing.T) {
	tbl := New()
	_, ok := tbl.LookupQualified([]ident.Ident{ident.Intern("nonexistent_root")})
	assert.False(t, ok)
}

func TestLookupTypeRespectsKind(t *testing.T) {
	tbl := New()
	name := ident.Intern("Widget")
	require.NoError(t, tbl.Insert(Entry{Name: name, IsStatic: true, Kind: StructDefData{}}))

	entry, ok := tbl.LookupType(ttype.MkCustom("Widget"))
	require.True(t, ok)
	assert.Equal(t, name, entry.Name)

	_, ok = tbl.LookupType(ttype.MkI32())
	assert.False(t, ok)
}
