package ast

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// UnaryOp enumerates the prefix operators the factor grammar level
// parses: `+ - * ! &`, plus `& mut` as a distinct RefMut operator.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryDeref  // prefix '*'
	UnaryNot    // '!'
	UnaryRef    // '&'
	UnaryRefMut // '& mut'
)

// BinaryOp enumerates every binary/assignment operator the parser's
// precedence ladder recognizes.
type BinaryOp int

const (
	OpAssign BinaryOp = iota
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpBitOrAssign
	OpBitAndAssign
	OpBitXorAssign
	OpShlAssign
	OpShrAssign

	OpLogicalOr
	OpLogicalAnd
	OpBitOr
	OpBitXor
	OpBitAnd
	OpEq
	OpNotEq
	OpLt
	OpLe
	OpGt
	OpGe
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAccess // '::'
)

// IsComparison reports whether op is one of the six relational/equality
// operators, the only case where an Expression's inferred type is Bool
// regardless of operand types.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEq, OpNotEq, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsMutating reports whether op is assignment or a compound assignment —
// the set of operators that require their LHS to be a mutable binding.
func (op BinaryOp) IsMutating() bool {
	switch op {
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign, OpDivAssign, OpModAssign,
		OpBitOrAssign, OpBitAndAssign, OpBitXorAssign, OpShlAssign, OpShrAssign:
		return true
	}
	return false
}

// ExprKind is the sum type for Expression.Kind:
// Unary | Binary | Conversion | Access | Get | Indexing | Term.
type ExprKind interface{ exprKind() }

type UnaryExpr struct {
	Op      UnaryOp
	Operand Node
}

func (UnaryExpr) exprKind() {}

type BinaryExpr struct {
	Op       BinaryOp
	LHS, RHS Node
}

func (BinaryExpr) exprKind() {}

// ConversionExpr is `expr as T`.
type ConversionExpr struct {
	Operand Node
	Target  ttype.Type
}

func (ConversionExpr) exprKind() {}

// AccessExpr is a `::`-joined chain, e.g. `M::N::f`. The analyzer
// flattens it and, on success, replaces the owning Expression's Kind with
// a TermExpr or delegates to call analysis.
type AccessExpr struct {
	LHS Node
	RHS Node
}

func (AccessExpr) exprKind() {}

// GetExpr is a `.`-member access, e.g. `s.x`.
type GetExpr struct {
	LHS Node
	RHS Node
}

func (GetExpr) exprKind() {}

// IndexingExpr is `lhs[idx]`; LHS must be array-typed.
type IndexingExpr struct {
	LHS, Index Node
}

func (IndexingExpr) exprKind() {}

// TermExpr is an analyzer-produced node carrying both a sub-value and its
// resolved type.
type TermExpr struct {
	Node Node
	Type ttype.Type
}

func (TermExpr) exprKind() {}

// Expression wraps one of the ExprKind variants above.
type Expression struct {
	Location token.Location
	Kind     ExprKind
}

func (e *Expression) Loc() token.Location        { return e.Location }
func (e *Expression) Accept(v Visitor)            { v.VisitExpression(e) }
func (e *Expression) AcceptMut(v VisitorMut) error { return v.VisitExpression(e) }

// ValueKind is the sum type for Value.Kind: Integer | Decimal | Text |
// Identifier | Call | Struct | Tuple | Array.
type ValueKind interface{ valueKind() }

type IntegerValue struct{ Value int64 }

func (IntegerValue) valueKind() {}

type DecimalValue struct{ Value float64 }

func (DecimalValue) valueKind() {}

type TextValue struct{ Value string }

func (TextValue) valueKind() {}

type IdentifierValue struct{ Name ident.Ident }

func (IdentifierValue) valueKind() {}

type CallValue struct {
	Name ident.Ident
	Args []*CallArg
}

func (CallValue) valueKind() {}

type StructValue struct {
	Name       ident.Ident
	Components []StructComponent
}

func (StructValue) valueKind() {}

// StructComponent is one `name: expr` pair inside a struct/union literal.
type StructComponent struct {
	Name ident.Ident
	Expr Node
}

// UnionValue is the analyzer's retagging of a StructValue once access
// resolution (or Value analysis) has determined the named symbol is
// actually a union, not a struct.
type UnionValue struct {
	Name       ident.Ident
	Components []StructComponent
}

func (UnionValue) valueKind() {}

type TupleValue struct{ Components []Node }

func (TupleValue) valueKind() {}

type ArrayValue struct{ Components []Node }

func (ArrayValue) valueKind() {}

// Value wraps one of the ValueKind variants above.
type Value struct {
	Location token.Location
	Kind     ValueKind
}

func (n *Value) Loc() token.Location        { return n.Location }
func (n *Value) Accept(v Visitor)            { v.VisitValue(n) }
func (n *Value) AcceptMut(v VisitorMut) error { return v.VisitValue(n) }

// CallArgKind is Notified(name, expr) | Positional(index, expr). After a
// successful call analysis every argument is Positional.
type CallArgKind interface{ callArgKind() }

type NotifiedArg struct {
	Name ident.Ident
	Expr Node
}

func (NotifiedArg) callArgKind() {}

type PositionalArg struct {
	Index int
	Expr  Node
}

func (PositionalArg) callArgKind() {}

// CallArg is one argument of a Call value.
type CallArg struct {
	Location token.Location
	Kind     CallArgKind
}
