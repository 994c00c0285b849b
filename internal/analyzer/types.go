package analyzer

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/symboltable"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// typeOf is a best-effort, non-mutating read of a node's type, used after
// the node (or its children) have already been walked by
// VisitExpression/VisitValue.
func (a *Analyzer) typeOf(n ast.Node) ttype.Type {
	switch v := n.(type) {
	case *ast.Expression:
		return a.typeOfExpr(v)
	case *ast.Value:
		return a.typeOfValue(v)
	case *ast.VariableDef:
		return v.DeclaredType
	case *ast.AliasDef:
		return v.Target
	}
	return ttype.MkAuto()
}

func (a *Analyzer) typeOfExpr(e *ast.Expression) ttype.Type {
	switch k := e.Kind.(type) {
	case ast.BinaryExpr:
		if k.Op.IsComparison() {
			return ttype.MkBool()
		}
		lhs := a.typeOf(k.LHS)
		if lhs.Kind == ttype.Auto {
			return a.typeOf(k.RHS)
		}
		return lhs
	case ast.UnaryExpr:
		switch k.Op {
		case ast.UnaryRef:
			return ttype.MkRef(a.typeOf(k.Operand), false)
		case ast.UnaryRefMut:
			return ttype.MkRef(a.typeOf(k.Operand), true)
		}
		return a.typeOf(k.Operand)
	case ast.ConversionExpr:
		return k.Target
	case ast.AccessExpr:
		return a.typeOf(k.RHS)
	case ast.GetExpr:
		return a.typeOf(k.RHS)
	case ast.IndexingExpr:
		lhs := a.typeOf(k.LHS)
		if lhs.Kind == ttype.Array {
			return *lhs.Elem
		}
		return ttype.MkAuto()
	case ast.TermExpr:
		return k.Type
	}
	return ttype.MkAuto()
}

func (a *Analyzer) typeOfValue(v *ast.Value) ttype.Type {
	switch k := v.Kind.(type) {
	case ast.IntegerValue:
		return ttype.MkI32()
	case ast.DecimalValue:
		return ttype.MkF32()
	case ast.TextValue:
		return ttype.MkRef(ttype.MkStr(), false)
	case ast.IdentifierValue:
		entry, ok := a.table.Lookup(k.Name)
		if !ok {
			return ttype.MkAuto()
		}
		if vd, ok := entry.Kind.(symboltable.VarDefData); ok {
			return vd.Type
		}
		return ttype.MkAuto()
	case ast.CallValue:
		entry, ok := a.table.Lookup(k.Name)
		if !ok {
			return ttype.MkAuto()
		}
		if fd, ok := entry.Kind.(symboltable.FuncDefData); ok {
			return fd.ReturnType
		}
		return ttype.MkAuto()
	case ast.StructValue:
		return ttype.MkCustom(k.Name.String())
	case ast.UnionValue:
		return ttype.MkCustom(k.Name.String())
	case ast.TupleValue:
		comps := make([]ttype.Type, len(k.Components))
		for i, c := range k.Components {
			comps[i] = a.typeOf(c)
		}
		return ttype.MkTuple(comps)
	case ast.ArrayValue:
		if len(k.Components) == 0 {
			return ttype.MkArray(nil, ttype.MkAuto())
		}
		return ttype.MkArray(nil, a.typeOf(k.Components[0]))
	}
	return ttype.MkAuto()
}

// findAliasValue follows ty through AliasDef entries to a non-alias type,
// reporting wasAlias so callers can produce the "(aka: ...)" diagnostic
// clarification. A visited-name set turns a cyclic alias chain into a
// diagnostic instead of a stack overflow.
func (a *Analyzer) findAliasValue(ty ttype.Type) (ttype.Type, bool, error) {
	if ty.Kind != ttype.Custom {
		return ty, false, nil
	}

	visited := map[string]bool{ty.Name: true}
	cur := ty
	wasAlias := false
	for {
		entry, ok := a.table.Lookup(ident.Intern(cur.Name))
		if !ok {
			break
		}
		ad, ok := entry.Kind.(symboltable.AliasDefData)
		if !ok {
			break
		}
		wasAlias = true
		next := ad.Type
		if next.Kind != ttype.Custom {
			return next, wasAlias, nil
		}
		if visited[next.Name] {
			return ty, wasAlias, messageErr(message.AliasCycle(token.Location{}, cur.Name))
		}
		visited[next.Name] = true
		cur = next
	}
	return cur, wasAlias, nil
}

// typesEqualModuloAlias is alias-transparent equality: two types are
// assignment-compatible if they're structurally equal, or
// if resolving either through findAliasValue makes them so. akaOf is
// populated with the resolved type's display form whenever an alias was
// unwound along the way — on a mismatch it feeds the "(aka: ...)"
// clarification in the resulting diagnostic.
func (a *Analyzer) typesEqualModuloAlias(want, got ttype.Type) (bool, string, error) {
	if want.Equal(got) {
		return true, "", nil
	}

	rw, aliasW, err := a.findAliasValue(want)
	if err != nil {
		return false, "", err
	}
	rg, aliasG, err := a.findAliasValue(got)
	if err != nil {
		return false, "", err
	}

	akaOf := ""
	switch {
	case aliasW:
		akaOf = rw.String()
	case aliasG:
		akaOf = rg.String()
	}
	return rw.Equal(rg), akaOf, nil
}

// identOf reports the bound identifier a node refers to, if it is exactly
// an IdentifierValue (used by the &mut mutability check and by
// access-path flattening).
func identOf(n ast.Node) (ident.Ident, bool) {
	v, ok := n.(*ast.Value)
	if !ok {
		return ident.Ident{}, false
	}
	idv, ok := v.Kind.(ast.IdentifierValue)
	if !ok {
		return ident.Ident{}, false
	}
	return idv.Name, true
}
