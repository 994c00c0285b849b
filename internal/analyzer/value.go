package analyzer

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/symboltable"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// VisitValue dispatches on the wrapped ValueKind.
func (a *Analyzer) VisitValue(n *ast.Value) error {
	switch k := n.Kind.(type) {
	case ast.IntegerValue, ast.DecimalValue, ast.TextValue:
		return nil

	case ast.IdentifierValue:
		if _, ok := a.table.Lookup(k.Name); !ok {
			return messageErr(message.UndefinedIdent(n.Location, k.Name.String()))
		}
		return nil

	case ast.CallValue:
		return a.analyzeCallValue(n, k)

	case ast.StructValue:
		return a.analyzeStructLiteralValue(n, k)

	case ast.UnionValue:
		// Already retagged by a prior pass (access resolution); nothing
		// further to check.
		return nil

	case ast.TupleValue:
		for _, c := range k.Components {
			if err := c.AcceptMut(a); err != nil {
				a.error(errToMessage(c, err))
			}
		}
		return nil

	case ast.ArrayValue:
		return a.analyzeArrayValue(n, k)
	}

	return messageErr(message.Unreachable(n.Location, "unknown ValueKind"))
}

func (a *Analyzer) analyzeArrayValue(n *ast.Value, k ast.ArrayValue) error {
	if len(k.Components) == 0 {
		return nil
	}
	if err := k.Components[0].AcceptMut(a); err != nil {
		return err
	}
	first := a.typeOf(k.Components[0])

	for i := 1; i < len(k.Components); i++ {
		if err := k.Components[i].AcceptMut(a); err != nil {
			a.error(errToMessage(k.Components[i], err))
			continue
		}
		got := a.typeOf(k.Components[i])
		if !first.Equal(got) {
			a.error(message.ArrayElementMismatch(n.Location, first.String(), i+1, got.String()))
		}
	}
	return nil
}

// analyzeCallValue looks up the called function (skipping the lookup
// entirely for a built-in identifier) and delegates argument
// reconciliation to checkCallArgs.
func (a *Analyzer) analyzeCallValue(n *ast.Value, k ast.CallValue) error {
	if k.Name.IsBuiltIn() {
		for _, arg := range k.Args {
			expr := argExpr(arg)
			if expr == nil {
				continue
			}
			if err := expr.AcceptMut(a); err != nil {
				a.error(errToMessage(expr, err))
			}
		}
		return nil
	}

	entry, ok := a.table.Lookup(k.Name)
	if !ok {
		return messageErr(message.UndefinedFunc(n.Location, k.Name.String()))
	}
	fd, ok := entry.Kind.(symboltable.FuncDefData)
	if !ok {
		return messageErr(message.NotCallable(n.Location, k.Name.String()))
	}
	return a.checkCallArgs(n.Location, k.Name.String(), fd, k.Args)
}

func argExpr(arg *ast.CallArg) ast.Node {
	switch k := arg.Kind.(type) {
	case ast.NotifiedArg:
		return k.Expr
	case ast.PositionalArg:
		return k.Expr
	}
	return nil
}

// checkCallArgs reconciles a call against its signature: argument count
// must match exactly, positional arguments may never follow a notified
// one, and every Notified argument is rewritten in place to Positional
// once its parameter index is resolved.
func (a *Analyzer) checkCallArgs(loc token.Location, funcName string, fd symboltable.FuncDefData, args []*ast.CallArg) error {
	if len(args) != len(fd.Parameters) {
		return messageErr(message.TooManyOrFewArgs(loc, funcName, len(fd.Parameters), len(args)))
	}

	positionalSkipped := false
	for _, arg := range args {
		switch k := arg.Kind.(type) {
		case ast.PositionalArg:
			if positionalSkipped {
				a.error(message.PositionalAfterNotified(loc, funcName, k.Index))
				continue
			}
			if err := k.Expr.AcceptMut(a); err != nil {
				a.error(errToMessage(k.Expr, err))
				continue
			}
			if k.Index < 0 || k.Index >= len(fd.Parameters) {
				continue
			}
			got := a.typeOf(k.Expr)
			want := fd.Parameters[k.Index].Type
			if !got.Equal(want) {
				a.error(message.PositionalTypeMismatch(loc, funcName, k.Index, got.String(), want.String()))
			}

		case ast.NotifiedArg:
			positionalSkipped = true
			idx := findParam(fd.Parameters, k.Name)
			if idx < 0 {
				a.error(message.NoSuchParameter(loc, funcName, k.Name.String()))
				continue
			}
			if err := k.Expr.AcceptMut(a); err != nil {
				a.error(errToMessage(k.Expr, err))
				continue
			}
			got := a.typeOf(k.Expr)
			want := fd.Parameters[idx].Type
			if !got.Equal(want) {
				a.error(message.NotifiedTypeMismatch(loc, funcName, k.Name.String(), got.String(), want.String()))
			}
			arg.Kind = ast.PositionalArg{Index: idx, Expr: k.Expr}
		}
	}
	return nil
}

func findParam(params []symboltable.Parameter, name ident.Ident) int {
	for i, p := range params {
		if p.Name.Equal(name) {
			return i
		}
	}
	return -1
}

// analyzeStructLiteralValue handles a bare `S{...}` Value (as opposed to
// one reached via `Module::S{...}` access). It supports one step of alias
// unwrapping on the type name; an alias whose target is itself an alias
// is not followed further and is reported as not naming a struct or
// union type.
func (a *Analyzer) analyzeStructLiteralValue(n *ast.Value, k ast.StructValue) error {
	a.analyzeComponentsBestEffort(k.Components)

	entry, ok := a.table.Lookup(k.Name)
	if !ok {
		return messageErr(message.UndefinedIdent(n.Location, k.Name.String()))
	}

	target := entry
	if ad, ok := entry.Kind.(symboltable.AliasDefData); ok && ad.Type.Kind == ttype.Custom {
		if next, ok := a.table.Lookup(ident.Intern(ad.Type.Name)); ok {
			target = next
		}
	}

	switch data := target.Kind.(type) {
	case symboltable.StructDefData:
		if err := a.checkStructComponents(n.Location, target.Name.String(), k.Components, data.Fields, "Struct"); err != nil {
			return err
		}
		n.Kind = ast.StructValue{Name: target.Name, Components: k.Components}
		return nil

	case symboltable.UnionDefData:
		if err := a.checkUnionComponents(n.Location, target.Name.String(), k.Components, data.Fields); err != nil {
			return err
		}
		n.Kind = ast.UnionValue{Name: target.Name, Components: k.Components}
		return nil

	default:
		return messageErr(message.Newf(n.Location, "%q does not name a struct or union type", k.Name.String()))
	}
}

// checkStructComponents validates a struct-shaped literal: the supplied
// component count must match the declared field count exactly, and each
// component's expression type must equal (modulo alias transparency) its
// declared field type.
func (a *Analyzer) checkStructComponents(loc token.Location, name string, comps []ast.StructComponent, fields ast.OrderedFields, kind string) error {
	if len(comps) != fields.Len() {
		return messageErr(message.FieldCountMismatch(loc, kind, name, fields.Len(), len(comps)))
	}
	for _, c := range comps {
		want, ok := fields.Get(c.Name)
		if !ok {
			return messageErr(message.NoSuchField(loc, kind, name, c.Name.String()))
		}
		got := a.typeOf(c.Expr)
		if got.Equal(want) {
			continue
		}
		eq, akaOf, err := a.typesEqualModuloAlias(want, got)
		if err != nil {
			return err
		}
		if !eq {
			return messageErr(message.FieldTypeMismatch(loc, kind, c.Name.String(), want.String(), akaOf, got.String()))
		}
	}
	return nil
}

// checkUnionComponents enforces that a union type with declared fields
// initializes exactly one of them; a union type with none must receive
// none either.
func (a *Analyzer) checkUnionComponents(loc token.Location, name string, comps []ast.StructComponent, fields ast.OrderedFields) error {
	declared := fields.Len()
	supplied := len(comps)

	if declared == 0 && supplied > 0 {
		return messageErr(message.UnionNoFields(loc, name, supplied))
	}
	if declared > 0 && supplied != 1 {
		return messageErr(message.UnionExactlyOne(loc, supplied))
	}

	for _, c := range comps {
		want, ok := fields.Get(c.Name)
		if !ok {
			return messageErr(message.NoSuchField(loc, "Union", name, c.Name.String()))
		}
		got := a.typeOf(c.Expr)
		if got.Equal(want) {
			continue
		}
		eq, akaOf, err := a.typesEqualModuloAlias(want, got)
		if err != nil {
			return err
		}
		if !eq {
			return messageErr(message.FieldTypeMismatch(loc, "Union", c.Name.String(), want.String(), akaOf, got.String()))
		}
	}
	return nil
}

// analyzeVariantAccess lowers a resolved `Variant::Ctor(...)` /
// `Variant::Ctor{...}` / `Variant::Ctor` access into a typed Term,
// validating the tail's shape against the constructor's declared kind —
// the same structural-validation-plus-Term-wrapping treatment every other
// Access target gets.
func (a *Analyzer) analyzeVariantAccess(n *ast.Expression, data symboltable.VariantFieldData, tail ast.Node) error {
	variantType := ttype.MkCustom(data.VariantName.String())

	switch data.Field.Kind {
	case ast.VariantFieldCommon:
		v, ok := tail.(*ast.Value)
		if !ok {
			return messageErr(message.Unreachable(tail.Loc(), "variant access tail is not a value"))
		}
		if _, ok := v.Kind.(ast.IdentifierValue); !ok {
			return messageErr(message.Newf(tail.Loc(), "Variant constructor %q takes no fields", tailName(tail)))
		}

	case ast.VariantFieldStructLike:
		sv, svk, err := asStructLiteral(tail, tailName(tail))
		if err != nil {
			return err
		}
		a.analyzeComponentsBestEffort(svk.Components)
		if err := a.checkStructComponents(n.Location, tailName(tail), svk.Components, data.Field.StructLike, "Variant"); err != nil {
			return err
		}
		tail = sv

	case ast.VariantFieldTupleLike:
		cv, ok := tail.(*ast.Value)
		if !ok {
			return messageErr(message.Unreachable(tail.Loc(), "variant access tail is not a value"))
		}
		ck, ok := cv.Kind.(ast.CallValue)
		if !ok {
			return messageErr(message.Newf(tail.Loc(), "Variant constructor %q requires tuple-call arguments", tailName(tail)))
		}
		want := data.Field.TupleLike
		if len(ck.Args) != len(want) {
			return messageErr(message.FieldCountMismatch(n.Location, "Variant", tailName(tail), len(want), len(ck.Args)))
		}
		for i, arg := range ck.Args {
			pa, ok := arg.Kind.(ast.PositionalArg)
			if !ok {
				return messageErr(message.Newf(n.Location, "Variant tuple constructor %q requires positional arguments", tailName(tail)))
			}
			if err := pa.Expr.AcceptMut(a); err != nil {
				a.error(errToMessage(pa.Expr, err))
				continue
			}
			got := a.typeOf(pa.Expr)
			if !got.Equal(want[i]) {
				a.error(message.PositionalTypeMismatch(n.Location, tailName(tail), i, got.String(), want[i].String()))
			}
		}
	}

	*n = ast.Expression{Location: n.Location, Kind: ast.TermExpr{Node: tail, Type: variantType}}
	return nil
}

func tailName(n ast.Node) string {
	v, ok := n.(*ast.Value)
	if !ok {
		return ""
	}
	switch k := v.Kind.(type) {
	case ast.IdentifierValue:
		return k.Name.String()
	case ast.CallValue:
		return k.Name.String()
	case ast.StructValue:
		return k.Name.String()
	}
	return ""
}
