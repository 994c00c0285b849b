package ttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualPrimitives(t *testing.T) {
	assert.True(t, MkI32().Equal(MkI32()))
	assert.False(t, MkI32().Equal(MkI64()))
}

func TestEqualCustomByName(t *testing.T) {
	assert.True(t, MkCustom("Point").Equal(MkCustom("Point")))
	assert.False(t, MkCustom("Point").Equal(MkCustom("Line")))
}

func TestEqualRefRespectsMutability(t *testing.T) {
	mut := MkRef(MkI32(), true)
	immut := MkRef(MkI32(), false)
	assert.False(t, mut.Equal(immut))
	assert.True(t, mut.Equal(MkRef(MkI32(), true)))
}

func TestEqualArrayRespectsSize(t *testing.T) {
	three := 3
	four := 4
	a := MkArray(&three, MkI32())
	b := MkArray(&four, MkI32())
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(MkArray(&three, MkI32())))

	unsized := MkArray(nil, MkI32())
	assert.False(t, unsized.Equal(a))
}

func TestIsUnit(t *testing.T) {
	assert.True(t, Unit().IsUnit())
	assert.True(t, MkTuple(nil).IsUnit())
	assert.False(t, MkTuple([]Type{MkI32()}).IsUnit())
}

func TestIsCommon(t *testing.T) {
	assert.True(t, MkI32().IsCommon())
	assert.True(t, MkBool().IsCommon())
	assert.False(t, MkStr().IsCommon())
	assert.False(t, MkCustom("Foo").IsCommon())
}

func TestStringRendersComposites(t *testing.T) {
	assert.Equal(t, "&mut i32", MkRef(MkI32(), true).String())
	assert.Equal(t, "&str", MkRef(MkStr(), false).String())
	assert.Equal(t, "(i32, str)", MkTuple([]Type{MkI32(), MkStr()}).String())

	three := 3
	assert.Equal(t, "[i32; 3]", MkArray(&three, MkI32()).String())
	assert.Equal(t, "[i32]", MkArray(nil, MkI32()).String())
}

func TestFromKeyword(t *testing.T) {
	assert.Equal(t, MkI32(), FromKeyword("i32"))
	assert.Equal(t, MkBool(), FromKeyword("bool"))
	assert.Equal(t, MkCustom("Widget"), FromKeyword("Widget"))
}
