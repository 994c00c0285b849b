// Package ast implements the AST node set and visitor plumbing: a closed
// set of tagged-union node types, traversed by an immutable Visitor
// (serializer/codegen hooks) and a mutating VisitorMut (the analyzer),
// which rewrites sub-nodes in place rather than returning a replacement
// tree.
package ast

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// Node is the base interface every AST node satisfies: a Location for
// diagnostics, and entry points for both visitor flavors.
type Node interface {
	Loc() token.Location
	Accept(v Visitor)
	AcceptMut(v VisitorMut) error
}

// Safety is a block/function attribute, inherited by nested scopes unless
// explicitly overridden.
type Safety int

const (
	SafetyInherited Safety = iota
	SafetySafe
	SafetyUnsafe
)

// Publicity is a function/field visibility attribute.
type Publicity int

const (
	PublicityPrivate Publicity = iota
	PublicityPublic
)

// Attributes carries the safety/publicity annotations common to blocks and
// definitions.
type Attributes struct {
	Safety    Safety
	Publicity Publicity
}

// Field pairs a field name with its declared type, preserving declaration
// order so iteration is deterministic across runs.
type Field struct {
	Name ident.Ident
	Type ttype.Type
}

// OrderedFields is an insertion-ordered field map with O(1) name lookup.
type OrderedFields struct {
	list  []Field
	index map[ident.Ident]int
}

// Insert appends a field, returning false without modifying the map if the
// name already exists (callers are expected to treat that as a
// multiple-definition error).
func (f *OrderedFields) Insert(name ident.Ident, ty ttype.Type) bool {
	if f.index == nil {
		f.index = make(map[ident.Ident]int)
	}
	if _, exists := f.index[name]; exists {
		return false
	}
	f.index[name] = len(f.list)
	f.list = append(f.list, Field{Name: name, Type: ty})
	return true
}

// Get returns the field named name, if any, in insertion order.
func (f *OrderedFields) Get(name ident.Ident) (ttype.Type, bool) {
	idx, ok := f.index[name]
	if !ok {
		return ttype.Type{}, false
	}
	return f.list[idx].Type, true
}

// Len reports the number of fields.
func (f *OrderedFields) Len() int { return len(f.list) }

// List returns the fields in insertion order. Callers must not mutate the
// returned slice.
func (f *OrderedFields) List() []Field { return f.list }
