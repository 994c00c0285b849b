package ast

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// Block is a sequence of statements. IsGlobal marks the top-level unit
// block, which disallows bare statements/expressions; non-global blocks
// disallow nested type definitions.
type Block struct {
	Location   token.Location
	Statements []Node
	IsGlobal   bool
	Attributes Attributes
}

func (b *Block) Loc() token.Location            { return b.Location }
func (b *Block) Accept(v Visitor)                { v.VisitBlock(b) }
func (b *Block) AcceptMut(v VisitorMut) error     { return v.VisitBlock(b) }

// ModuleDef declares a (possibly external) module. External modules have
// no body; a present body introduces a new nested symbol scope.
type ModuleDef struct {
	Location   token.Location
	Name       ident.Ident
	IsExternal bool
	Attributes Attributes
	Body       *Block // nil when IsExternal
}

func (n *ModuleDef) Loc() token.Location        { return n.Location }
func (n *ModuleDef) Accept(v Visitor)            { v.VisitModuleDef(n) }
func (n *ModuleDef) AcceptMut(v VisitorMut) error { return v.VisitModuleDef(n) }

// StructDef declares a product type; Internals holds nested type
// definitions analyzed before the struct's own fields are registered.
type StructDef struct {
	Location   token.Location
	Name       ident.Ident
	Fields     OrderedFields
	Internals  []Node
	Attributes Attributes
}

func (n *StructDef) Loc() token.Location        { return n.Location }
func (n *StructDef) Accept(v Visitor)            { v.VisitStructDef(n) }
func (n *StructDef) AcceptMut(v VisitorMut) error { return v.VisitStructDef(n) }

// UnionDef is structurally identical to StructDef; the analyzer enforces
// "exactly one field initialized" only at the literal-checking site.
type UnionDef struct {
	Location   token.Location
	Name       ident.Ident
	Fields     OrderedFields
	Internals  []Node
	Attributes Attributes
}

func (n *UnionDef) Loc() token.Location        { return n.Location }
func (n *UnionDef) Accept(v Visitor)            { v.VisitUnionDef(n) }
func (n *UnionDef) AcceptMut(v VisitorMut) error { return v.VisitUnionDef(n) }

// VariantFieldKind tags one field of a VariantDef.
type VariantFieldKind int

const (
	VariantFieldCommon VariantFieldKind = iota
	VariantFieldStructLike
	VariantFieldTupleLike
)

// VariantField describes one tagged-variant constructor.
type VariantField struct {
	Kind       VariantFieldKind
	StructLike OrderedFields // when Kind == VariantFieldStructLike
	TupleLike  []ttype.Type  // when Kind == VariantFieldTupleLike
}

// VariantDef declares a tagged union. Analysis rejects it with a
// feature-gating message when compile options disallow variants.
type VariantDef struct {
	Location  token.Location
	Name      ident.Ident
	Fields    []VariantFieldEntry
	Internals []Node
}

// VariantFieldEntry pairs a constructor name with its field shape,
// preserving declaration order like OrderedFields does for structs.
type VariantFieldEntry struct {
	Name  ident.Ident
	Field VariantField
}

func (n *VariantDef) Loc() token.Location        { return n.Location }
func (n *VariantDef) Accept(v Visitor)            { v.VisitVariantDef(n) }
func (n *VariantDef) AcceptMut(v VisitorMut) error { return v.VisitVariantDef(n) }

// EnumField pairs an enum member name with its optional explicit value;
// nil means "assign sequentially".
type EnumField struct {
	Name  ident.Ident
	Value *int
}

// EnumDef declares an enumeration. Values are filled in by the analyzer:
// explicit values seed the running counter, absent ones take the counter,
// and the counter always advances afterward.
type EnumDef struct {
	Location token.Location
	Name     ident.Ident
	Fields   []EnumField
}

func (n *EnumDef) Loc() token.Location        { return n.Location }
func (n *EnumDef) Accept(v Visitor)            { v.VisitEnumDef(n) }
func (n *EnumDef) AcceptMut(v VisitorMut) error { return v.VisitEnumDef(n) }

// AliasDef declares `alias Name = Target`. Aliases never change Type
// equality; the analyzer resolves transparency explicitly when it needs
// it.
type AliasDef struct {
	Location token.Location
	Name     ident.Ident
	Target   ttype.Type
}

func (n *AliasDef) Loc() token.Location        { return n.Location }
func (n *AliasDef) Accept(v Visitor)            { v.VisitAliasDef(n) }
func (n *AliasDef) AcceptMut(v VisitorMut) error { return v.VisitAliasDef(n) }

// FunctionDef declares a function. A nil Body marks a declaration only
// (used inside ExternDef).
type FunctionDef struct {
	Location   token.Location
	Name       ident.Ident
	ReturnType ttype.Type
	Parameters []*VariableDef
	Body       *Block // nil for a declaration
	Attributes Attributes
}

func (n *FunctionDef) Loc() token.Location        { return n.Location }
func (n *FunctionDef) Accept(v Visitor)            { v.VisitFunctionDef(n) }
func (n *FunctionDef) AcceptMut(v VisitorMut) error { return v.VisitFunctionDef(n) }

// ExternDef groups declarations imported under a foreign ABI name.
type ExternDef struct {
	Location  token.Location
	ABIName   string
	Functions []*FunctionDef
}

func (n *ExternDef) Loc() token.Location        { return n.Location }
func (n *ExternDef) Accept(v Visitor)            { v.VisitExternDef(n) }
func (n *ExternDef) AcceptMut(v VisitorMut) error { return v.VisitExternDef(n) }

// VariableDef declares a (possibly mutable) binding. DeclaredType may be
// ttype.MkAuto() pending inference from an initializer.
type VariableDef struct {
	Location      token.Location
	Name          ident.Ident
	DeclaredType  ttype.Type
	Mutable       bool
	Global        bool
}

func (n *VariableDef) Loc() token.Location        { return n.Location }
func (n *VariableDef) Accept(v Visitor)            { v.VisitVariableDef(n) }
func (n *VariableDef) AcceptMut(v VisitorMut) error { return v.VisitVariableDef(n) }

// UseKind enumerates the builtin import forms plus an explicit path.
type UseKind int

const (
	UseSelf UseKind = iota
	UseSuper
	UseCrate
	UseWildcard
	UseExplicit
)

// Use is an import path node: only registration, never resolved from
// disk.
type Use struct {
	Location token.Location
	Kind     UseKind
	Path     []ident.Ident // populated when Kind == UseExplicit
}

func (n *Use) Loc() token.Location        { return n.Location }
func (n *Use) Accept(v Visitor)            { v.VisitUse(n) }
func (n *Use) AcceptMut(v VisitorMut) error { return v.VisitUse(n) }
