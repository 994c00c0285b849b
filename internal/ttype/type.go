// Package ttype implements the Type sum type: a read-only value with
// structural equality, a display form used in diagnostics, and a derived
// C type name consumed only by a code generator.
package ttype

import (
	"fmt"
	"strings"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
)

// Kind tags the variant of a Type.
type Kind int

const (
	Auto Kind = iota // placeholder for inference
	Never
	Bool
	I8
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	F32
	F64
	Str
	Custom   // user-defined nominal type, referenced by name
	Ref      // reference; Mutable is independent of the referent's own mutability
	Ptr      // raw pointer
	Tuple    // positional product; empty = unit
	Array    // fixed or unknown-length homogeneous sequence
	Template // unresolved parametric type, e.g. Vec<T>
)

// Type is a tagged union. Only the fields relevant to Kind are populated;
// the rest are zero.
type Type struct {
	Kind Kind

	// Custom
	Name string

	// Ref / Ptr / Array element type
	Elem *Type

	// Ref mutability (independent of the referent's own mutability)
	Mutable bool

	// Tuple components
	Components []Type

	// Array: nil means unknown/unsized
	Size *int

	// Template
	TemplateName ident.Ident
	Generics     []Type
}

// Unit is the empty tuple, the canonical "no value" type.
func Unit() Type { return Type{Kind: Tuple} }

func simple(k Kind) Type { return Type{Kind: k} }

func MkAuto() Type  { return simple(Auto) }
func MkNever() Type { return simple(Never) }
func MkBool() Type  { return simple(Bool) }
func MkI8() Type    { return simple(I8) }
func MkI16() Type   { return simple(I16) }
func MkI32() Type   { return simple(I32) }
func MkI64() Type   { return simple(I64) }
func MkI128() Type  { return simple(I128) }
func MkU8() Type    { return simple(U8) }
func MkU16() Type   { return simple(U16) }
func MkU32() Type   { return simple(U32) }
func MkU64() Type   { return simple(U64) }
func MkU128() Type  { return simple(U128) }
func MkF32() Type   { return simple(F32) }
func MkF64() Type   { return simple(F64) }
func MkStr() Type   { return simple(Str) }

// MkCustom builds a nominal reference to a user-defined type by name.
func MkCustom(name string) Type { return Type{Kind: Custom, Name: name} }

// MkRef builds a reference type. mutable describes the reference itself,
// independent of whatever mutability `to` carries.
func MkRef(to Type, mutable bool) Type {
	t := to
	return Type{Kind: Ref, Elem: &t, Mutable: mutable}
}

// MkPtr builds a raw pointer type.
func MkPtr(to Type) Type {
	t := to
	return Type{Kind: Ptr, Elem: &t}
}

// MkTuple builds a positional product type; an empty slice is the unit
// type.
func MkTuple(components []Type) Type {
	return Type{Kind: Tuple, Components: components}
}

// MkArray builds a fixed- or unknown-size homogeneous array type.
func MkArray(size *int, elem Type) Type {
	e := elem
	return Type{Kind: Array, Elem: &e, Size: size}
}

// MkTemplate builds an unresolved parametric type reference, e.g.
// Vec<Vec<i32>>.
func MkTemplate(name ident.Ident, generics []Type) Type {
	return Type{Kind: Template, TemplateName: name, Generics: generics}
}

// FromKeyword maps a primitive type keyword spelling to its Type.
// Non-primitive spellings become a Custom type by the same name, never an
// error — the analyzer resolves whether a Custom name is actually
// defined.
func FromKeyword(name string) Type {
	switch name {
	case "bool":
		return MkBool()
	case "i8":
		return MkI8()
	case "i16":
		return MkI16()
	case "i32":
		return MkI32()
	case "i64":
		return MkI64()
	case "i128":
		return MkI128()
	case "u8":
		return MkU8()
	case "u16":
		return MkU16()
	case "u32":
		return MkU32()
	case "u64":
		return MkU64()
	case "u128":
		return MkU128()
	case "f32":
		return MkF32()
	case "f64":
		return MkF64()
	case "str":
		return MkStr()
	default:
		return MkCustom(name)
	}
}

// IsCommon reports whether t is a primitive numeric/boolean type.
// Composites (and Str/Custom/Auto/Never) answer false.
func (t Type) IsCommon() bool {
	switch t.Kind {
	case Bool, I8, I16, I32, I64, I128, U8, U16, U32, U64, U128, F32, F64:
		return true
	}
	return false
}

// IsUnit reports whether t is the empty tuple.
func (t Type) IsUnit() bool {
	return t.Kind == Tuple && len(t.Components) == 0
}

// Equal is structural equality. Two Custom types are equal iff their
// names match — alias equivalence is established explicitly by the
// analyzer, never by Type equality.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case Custom:
		return t.Name == o.Name
	case Ref:
		return t.Mutable == o.Mutable && t.Elem.Equal(*o.Elem)
	case Ptr:
		return t.Elem.Equal(*o.Elem)
	case Tuple:
		if len(t.Components) != len(o.Components) {
			return false
		}
		for i := range t.Components {
			if !t.Components[i].Equal(o.Components[i]) {
				return false
			}
		}
		return true
	case Array:
		if (t.Size == nil) != (o.Size == nil) {
			return false
		}
		if t.Size != nil && *t.Size != *o.Size {
			return false
		}
		return t.Elem.Equal(*o.Elem)
	case Template:
		if !t.TemplateName.Equal(o.TemplateName) || len(t.Generics) != len(o.Generics) {
			return false
		}
		for i := range t.Generics {
			if !t.Generics[i].Equal(o.Generics[i]) {
				return false
			}
		}
		return true
	default:
		return true // primitive kinds: Kind equality is sufficient
	}
}

// String renders t for diagnostics.
func (t Type) String() string {
	switch t.Kind {
	case Auto:
		return "auto"
	case Never:
		return "never"
	case Bool:
		return "bool"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case I128:
		return "i128"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case U128:
		return "u128"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Str:
		return "str"
	case Custom:
		return t.Name
	case Ref:
		if t.Mutable {
			return "&mut " + t.Elem.String()
		}
		return "&" + t.Elem.String()
	case Ptr:
		return "*" + t.Elem.String()
	case Tuple:
		parts := make([]string, len(t.Components))
		for i, c := range t.Components {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Array:
		if t.Size != nil {
			return fmt.Sprintf("[%s; %d]", t.Elem.String(), *t.Size)
		}
		return fmt.Sprintf("[%s]", t.Elem.String())
	case Template:
		parts := make([]string, len(t.Generics))
		for i, g := range t.Generics {
			parts[i] = g.String()
		}
		return fmt.Sprintf("%s<%s>", t.TemplateName.String(), strings.Join(parts, ", "))
	default:
		return "<unknown type>"
	}
}

// CType derives a C type name, a hook consumed only by a code generator.
func (t Type) CType() string {
	switch t.Kind {
	case Bool:
		return "bool"
	case I8:
		return "int8_t"
	case I16:
		return "int16_t"
	case I32:
		return "int32_t"
	case I64:
		return "int64_t"
	case I128:
		return "__int128"
	case U8:
		return "uint8_t"
	case U16:
		return "uint16_t"
	case U32:
		return "uint32_t"
	case U64:
		return "uint64_t"
	case U128:
		return "unsigned __int128"
	case F32:
		return "float"
	case F64:
		return "double"
	case Str:
		return "const char*"
	case Custom:
		return t.Name
	case Ref, Ptr:
		return t.Elem.CType() + "*"
	case Tuple:
		if t.IsUnit() {
			return "void"
		}
		return "struct " + t.String()
	default:
		return t.String()
	}
}
