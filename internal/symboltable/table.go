// Package symboltable implements the compile-time scope tree: a root
// scope plus a stack of nested scopes, each owning its own Ident-to-Entry
// bindings, searched outward on lookup and never merged.
package symboltable

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// DuplicateError reports that Name was already bound in the scope Insert
// was called against.
type DuplicateError struct{ Name ident.Ident }

func (e *DuplicateError) Error() string { return "\"" + e.Name.String() + "\" is already defined" }

// Table is the compile-time symbol table: a root scope plus whichever
// scope is currently open.
type Table struct {
	root    *Scope
	current *Scope
}

// New creates a symbol table with a single, top-level scope.
func New() *Table {
	root := newScope(nil, ScopeInfo{IsInFunc: false, IsInLoop: false})
	return &Table{root: root, current: root}
}

// EnterScope pushes a new child of the current scope; info carries the
// inherited Safety/IsInFunc/IsInLoop bits with whatever overrides the
// caller applied.
func (t *Table) EnterScope(info ScopeInfo) {
	t.current = newScope(t.current, info)
}

// ExitScope pops back to the parent of the current scope. Calling it more
// times than EnterScope was called is a programmer error in the analyzer,
// not a user-facing one, so it panics rather than returning an error.
func (t *Table) ExitScope() {
	if t.current.parent == nil {
		panic("symboltable: ExitScope called on the root scope")
	}
	t.current = t.current.parent
}

// GetScopeInfo returns the currently open scope's inherited info.
func (t *Table) GetScopeInfo() ScopeInfo { return t.current.info }

// CurrentScope exposes the open scope, e.g. so a caller can inspect its
// entries and retained child scopes after analysis.
func (t *Table) CurrentScope() *Scope { return t.current }

// Insert binds e in the currently open scope. It reports a *DuplicateError
// if the name is already bound there.
func (t *Table) Insert(e Entry) error {
	if !t.current.insert(e) {
		return &DuplicateError{Name: e.Name}
	}
	return nil
}

// Lookup searches the current scope, then each enclosing scope in turn,
// for name.
func (t *Table) Lookup(name ident.Ident) (*Entry, bool) {
	for s := t.current; s != nil; s = s.parent {
		if e, ok := s.get(name); ok {
			return e, true
		}
	}
	return nil, false
}

// LookupQualified resolves a `::`-joined path such as [Module, Sub, f] or
// [Enum, Variant]. The first component is
// resolved with the normal scope-chain Lookup; every following component
// is resolved against whatever "child table" the previous component's
// entry exposes:
//
//   - ModuleDefData descends into its own Table's open scope (a module is
//     a fresh scope tree, not searched via the enclosing chain);
//   - EnumDefData indexes its member map, producing a synthetic EnumData
//     entry rather than one that was ever Inserted;
//   - VariantDefData indexes its field map, producing a synthetic
//     VariantFieldData entry the same way.
//
// Any other entry kind cannot have a qualified member, and is reported as
// undefined at that path component.
func (t *Table) LookupQualified(path []ident.Ident) (*Entry, bool) {
	if len(path) == 0 {
		return nil, false
	}
	entry, ok := t.Lookup(path[0])
	if !ok {
		return nil, false
	}
	for _, name := range path[1:] {
		switch data := entry.Kind.(type) {
		case ModuleDefData:
			next, ok := data.Table.Lookup(name)
			if !ok {
				return nil, false
			}
			entry = next
		case EnumDefData:
			value, ok := data.Members[name]
			if !ok {
				return nil, false
			}
			entry = &Entry{Name: name, IsStatic: true, Kind: EnumData{EnumName: entry.Name, Value: value}}
		case VariantDefData:
			field, ok := data.Fields[name]
			if !ok {
				return nil, false
			}
			entry = &Entry{Name: name, IsStatic: true, Kind: VariantFieldData{VariantName: entry.Name, Field: field}}
		default:
			return nil, false
		}
	}
	return entry, true
}

// LookupType resolves the entry describing the composite named by ty, if
// ty is a Custom (nominal) type; any other Type kind has no symbol-table
// entry of its own.
func (t *Table) LookupType(ty ttype.Type) (*Entry, bool) {
	if ty.Kind != ttype.Custom {
		return nil, false
	}
	return t.Lookup(ident.Intern(ty.Name))
}
