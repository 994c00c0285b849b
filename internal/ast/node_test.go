package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

func TestOrderedFieldsInsertPreservesOrder(t *testing.T) {
	var f OrderedFields
	x, y, z := ident.Intern("x"), ident.Intern("y"), ident.Intern("z")
	require.True(t, f.Insert(x, ttype.MkI32()))
	require.True(t, f.Insert(y, ttype.MkStr()))
	require.True(t, f.Insert(z, ttype.MkBool()))

	assert.Equal(t, 3, f.Len())
	names := make([]ident.Ident, len(f.List()))
	for i, field := range f.List() {
		names[i] = field.Name
	}
	assert.Equal(t, []ident.Ident{x, y, z}, names)
}

func TestOrderedFieldsInsertDuplicateFails(t *testing.T) {
	var f OrderedFields
	x := ident.Intern("dup")
	require.True(t, f.Insert(x, ttype.MkI32()))
	assert.False(t, f.Insert(x, ttype.MkStr()), "inserting an existing name must fail")

	ty, ok := f.Get(x)
	require.True(t, ok)
	assert.Equal(t, ttype.MkI32(), ty, "the original field must survive a failed duplicate insert")
	assert.Equal(t, 1, f.Len())
}

func TestOrderedFieldsGetMissingReturnsFalse(t *testing.T) {
	var f OrderedFields
	_, ok := f.Get(ident.Intern("missing"))
	assert.False(t, ok)
}

func TestOrderedFieldsZeroValueIsUsable(t *testing.T) {
	var f OrderedFields
	assert.Equal(t, 0, f.Len())
	assert.Empty(t, f.List())
}

// countingVisitor records which VisitorMut methods were invoked, to confirm
// each node's AcceptMut dispatches to the matching method rather than a
// neighboring one.
type countingVisitor struct {
	VisitorMut
	blocks int
}

func (c *countingVisitor) VisitBlock(*Block) error {
	c.blocks++
	return nil
}

func TestBlockAcceptMutDispatchesToVisitBlock(t *testing.T) {
	b := &Block{}
	v := &countingVisitor{}
	require.NoError(t, b.AcceptMut(v))
	assert.Equal(t, 1, v.blocks)
}
