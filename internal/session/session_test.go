package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
)

func TestBeginReturnsDistinctIDs(t *testing.T) {
	a := Begin()
	b := Begin()
	assert.NotEqual(t, a.ID, b.ID)
}

func TestBeginResetsIdentInterner(t *testing.T) {
	Begin()
	first := ident.Intern("reused_across_sessions")

	Begin()
	second := ident.Intern("reused_across_sessions")

	assert.Equal(t, first, second, "the same text interned in a later session should get the same handle back")
}

func TestStringReturnsCanonicalUUID(t *testing.T) {
	s := Begin()
	require.NotEmpty(t, s.String())
	assert.Equal(t, s.ID.String(), s.String())
}
