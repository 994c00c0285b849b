package symboltable

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// EntryKind is the tagged union of everything a name in scope can denote:
// Module | StructDef | UnionDef | VariantDef | EnumDef | Enum (a single
// member) | FuncDef | AliasDef | VarDef.
type EntryKind interface{ entryKind() }

// ModuleDefData's Table is the nested scope a qualified lookup descends
// into for `Module::name`.
type ModuleDefData struct{ Table *Table }

func (ModuleDefData) entryKind() {}

// StructDefData and UnionDefData carry the field shape used by
// struct/union literal checking.
type StructDefData struct{ Fields ast.OrderedFields }

func (StructDefData) entryKind() {}

type UnionDefData struct{ Fields ast.OrderedFields }

func (UnionDefData) entryKind() {}

// VariantDefData mirrors the parsed variant shape; kept opaque to the
// symbol table beyond what qualified-constructor lookup needs.
type VariantDefData struct {
	Fields map[ident.Ident]ast.VariantField
	Order  []ident.Ident
}

func (VariantDefData) entryKind() {}

// VariantFieldData is the synthetic entry kind produced by a qualified
// lookup of one variant constructor (`Variant::Ctor`); like EnumData, it
// is never inserted directly.
type VariantFieldData struct {
	VariantName ident.Ident
	Field       ast.VariantField
}

func (VariantFieldData) entryKind() {}

// EnumDefData carries member values assigned by the analyzer. Members are
// kept in declaration order for deterministic iteration; nesting them
// inside the enum's own entry (rather than flattening them into the
// parent scope) lets `Enum::Member` resolve through qualified lookup
// without polluting the enclosing scope.
type EnumDefData struct {
	Members map[ident.Ident]int
	Order   []ident.Ident
}

func (EnumDefData) entryKind() {}

// EnumData is the synthetic entry kind produced by a qualified lookup of
// one enum member (`Enum::Member`); it is never inserted directly.
type EnumData struct {
	EnumName ident.Ident
	Value    int
}

func (EnumData) entryKind() {}

// Parameter is one function parameter's name/type, in declaration order.
type Parameter struct {
	Name ident.Ident
	Type ttype.Type
}

// FuncDefData carries a function's signature for call-site checking.
type FuncDefData struct {
	Parameters []Parameter
	ReturnType ttype.Type
	NoReturn   bool // the function's return type is unit
}

func (FuncDefData) entryKind() {}

// AliasDefData carries the target type of an `alias Name = Target`
// declaration. Resolving it to the type it stands for is never done via
// Type equality (aliases are never structurally transparent) — only by
// the analyzer's explicit alias walk.
type AliasDefData struct{ Type ttype.Type }

func (AliasDefData) entryKind() {}

// Storage distinguishes where a variable binding lives.
type Storage int

const (
	StorageLocal Storage = iota
	StorageGlobal
	StorageParameter
)

// VarDefData carries a variable binding's type and mutability.
type VarDefData struct {
	Type        ttype.Type
	Mutable     bool
	Initialized bool
	Storage     Storage
}

func (VarDefData) entryKind() {}

// Entry is one name bound in a Scope.
type Entry struct {
	Name     ident.Ident
	IsStatic bool
	Kind     EntryKind
}
