package analyzer

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/symboltable"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// VisitExpression dispatches on the wrapped ExprKind.
func (a *Analyzer) VisitExpression(n *ast.Expression) error {
	switch k := n.Kind.(type) {
	case ast.UnaryExpr:
		return a.analyzeUnaryExpr(n, k)
	case ast.BinaryExpr:
		return a.analyzeBinaryExpr(n, k)
	case ast.ConversionExpr:
		return a.analyzeConversionExpr(k)
	case ast.AccessExpr:
		return a.analyzeAccessExpr(n, k)
	case ast.GetExpr:
		return a.analyzeGetExpr(k)
	case ast.IndexingExpr:
		return a.analyzeIndexingExpr(n, k)
	case ast.TermExpr:
		return k.Node.AcceptMut(a)
	}
	return messageErr(message.Unreachable(n.Location, "unknown ExprKind"))
}

// analyzeUnaryExpr analyzes the operand and, for `&mut`, requires it name
// a mutable variable binding.
func (a *Analyzer) analyzeUnaryExpr(n *ast.Expression, k ast.UnaryExpr) error {
	if k.Op == ast.UnaryRefMut {
		name, ok := identOf(k.Operand)
		if !ok {
			return messageErr(message.InvalidMutableRef(token.Location{}, "operand is not a variable"))
		}
		entry, ok := a.table.Lookup(name)
		if !ok {
			return messageErr(message.UndefinedIdent(n.Location, name.String()))
		}
		vd, ok := entry.Kind.(symboltable.VarDefData)
		if !ok || !vd.Mutable {
			return messageErr(message.InvalidMutableRef(token.Location{}, "\""+name.String()+"\" is not a mutable binding"))
		}
	}
	return k.Operand.AcceptMut(a)
}

// analyzeBinaryExpr analyzes a binary expression, RHS always first. A
// *ast.VariableDef LHS is a `let` declaration/initialization; an
// identifier-Value LHS under a mutating operator requires the bound
// variable (through references, the reference's own `mutable` bit) to be
// mutable; a literal LHS under a mutating operator is rejected outright.
func (a *Analyzer) analyzeBinaryExpr(n *ast.Expression, k ast.BinaryExpr) error {
	if err := k.RHS.AcceptMut(a); err != nil {
		return err
	}
	rhsType := a.typeOf(k.RHS)

	switch lhs := k.LHS.(type) {
	case *ast.VariableDef:
		return a.analyzeVariableDefAssign(lhs, rhsType)

	case *ast.Value:
		return a.analyzeValueAssignTarget(n, k, lhs, rhsType)

	default:
		if err := k.LHS.AcceptMut(a); err != nil {
			return err
		}
		return a.requireTypeEqual(n.Location, a.typeOf(k.LHS), rhsType)
	}
}

func (a *Analyzer) analyzeVariableDefAssign(lhs *ast.VariableDef, rhsType ttype.Type) error {
	if a.hasSymbol(lhs.Name) {
		return messageErr(message.MultipleIDs(lhs.Location, lhs.Name.String()))
	}

	declared := lhs.DeclaredType
	if declared.Kind == ttype.Auto {
		declared = rhsType
		lhs.DeclaredType = rhsType
	} else {
		eq, akaOf, err := a.typesEqualModuloAlias(declared, rhsType)
		if err != nil {
			return err
		}
		if !eq {
			return messageErr(message.TypeMismatch(lhs.Location, declared.String(), akaOf, rhsType.String()))
		}
	}

	storage := symboltable.StorageLocal
	if lhs.Global {
		storage = symboltable.StorageGlobal
	}
	a.addSymbol(symboltable.Entry{
		Name: lhs.Name,
		Kind: symboltable.VarDefData{
			Type:        declared,
			Mutable:     lhs.Mutable,
			Initialized: true,
			Storage:     storage,
		},
	})
	return nil
}

func (a *Analyzer) analyzeValueAssignTarget(n *ast.Expression, k ast.BinaryExpr, lhs *ast.Value, rhsType ttype.Type) error {
	switch vk := lhs.Kind.(type) {
	case ast.IdentifierValue:
		if k.Op.IsMutating() {
			entry, ok := a.table.Lookup(vk.Name)
			if !ok {
				return messageErr(message.UndefinedIdent(lhs.Location, vk.Name.String()))
			}
			vd, ok := entry.Kind.(symboltable.VarDefData)
			if !ok {
				return messageErr(message.ImmutableAssignment(token.Location{}, vk.Name.String()))
			}
			// For a reference-typed binding the reference's own mutable
			// bit governs, not the binding's.
			mutable := vd.Mutable
			if vd.Type.Kind == ttype.Ref {
				mutable = vd.Type.Mutable
			}
			if !mutable {
				return messageErr(message.ImmutableAssignment(token.Location{}, vk.Name.String()))
			}
		}
		if err := lhs.AcceptMut(a); err != nil {
			return err
		}
		return a.requireTypeEqual(n.Location, a.typeOf(lhs), rhsType)

	case ast.IntegerValue:
		return a.rejectLiteralAssignTarget(n, k, lhs, "an integer literal")
	case ast.DecimalValue:
		return a.rejectLiteralAssignTarget(n, k, lhs, "a decimal literal")
	case ast.TextValue:
		return a.rejectLiteralAssignTarget(n, k, lhs, "text")
	case ast.ArrayValue:
		return a.rejectLiteralAssignTarget(n, k, lhs, "an array")
	case ast.TupleValue:
		return a.rejectLiteralAssignTarget(n, k, lhs, "a tuple")

	default:
		if err := lhs.AcceptMut(a); err != nil {
			return err
		}
		return a.requireTypeEqual(n.Location, a.typeOf(lhs), rhsType)
	}
}

func (a *Analyzer) rejectLiteralAssignTarget(n *ast.Expression, k ast.BinaryExpr, lhs *ast.Value, kind string) error {
	if k.Op.IsMutating() {
		return messageErr(message.InvalidAssignTarget(n.Location, kind))
	}
	return lhs.AcceptMut(a)
}

func (a *Analyzer) requireTypeEqual(loc token.Location, lhsType, rhsType ttype.Type) error {
	if lhsType.Equal(rhsType) {
		return nil
	}
	eq, akaOf, err := a.typesEqualModuloAlias(lhsType, rhsType)
	if err != nil {
		return err
	}
	if !eq {
		return messageErr(message.TypeMismatch(loc, lhsType.String(), akaOf, rhsType.String()))
	}
	return nil
}

// analyzeConversionExpr accepts the target type verbatim.
func (a *Analyzer) analyzeConversionExpr(k ast.ConversionExpr) error {
	return k.Operand.AcceptMut(a)
}

// analyzeGetExpr analyzes the struct-side of a `.`-member access. The
// member name on the right is a field tag, not a bound symbol, so it is
// not run through identifier lookup (unlike an Access chain's components).
func (a *Analyzer) analyzeGetExpr(k ast.GetExpr) error {
	return k.LHS.AcceptMut(a)
}

// analyzeIndexingExpr requires the LHS be array-typed.
func (a *Analyzer) analyzeIndexingExpr(n *ast.Expression, k ast.IndexingExpr) error {
	if err := k.LHS.AcceptMut(a); err != nil {
		return err
	}
	if err := k.Index.AcceptMut(a); err != nil {
		return err
	}
	lhsType := a.typeOf(k.LHS)
	if lhsType.Kind != ttype.Array {
		return messageErr(message.IndexingNonArray(n.Location, lhsType.String()))
	}
	return nil
}

// analyzeAccessExpr flattens the `::` chain, resolves it with a qualified
// lookup, and rewrites the owning Expression according to what kind of
// entry the path resolved to.
func (a *Analyzer) analyzeAccessExpr(n *ast.Expression, k ast.AccessExpr) error {
	path, tail, err := flattenAccessPath(k.LHS, k.RHS)
	if err != nil {
		return err
	}

	entry, ok := a.table.LookupQualified(path)
	if !ok {
		return messageErr(message.UndefinedIdent(n.Location, path[len(path)-1].String()))
	}

	switch data := entry.Kind.(type) {
	case symboltable.EnumData:
		*n = ast.Expression{
			Location: n.Location,
			Kind: ast.TermExpr{
				Node: &ast.Value{Location: n.Location, Kind: ast.IntegerValue{Value: int64(data.Value)}},
				Type: ttype.MkCustom(data.EnumName.String()),
			},
		}
		return nil

	case symboltable.VariantFieldData:
		return a.analyzeVariantAccess(n, data, tail)

	case symboltable.StructDefData:
		sv, svk, err := asStructLiteral(tail, entry.Name.String())
		if err != nil {
			return err
		}
		a.analyzeComponentsBestEffort(svk.Components)
		if err := a.checkStructComponents(n.Location, entry.Name.String(), svk.Components, data.Fields, "Struct"); err != nil {
			return err
		}
		*n = ast.Expression{Location: n.Location, Kind: ast.TermExpr{Node: sv, Type: ttype.MkCustom(entry.Name.String())}}
		return nil

	case symboltable.UnionDefData:
		sv, svk, err := asStructLiteral(tail, entry.Name.String())
		if err != nil {
			return err
		}
		a.analyzeComponentsBestEffort(svk.Components)
		if err := a.checkUnionComponents(n.Location, entry.Name.String(), svk.Components, data.Fields); err != nil {
			return err
		}
		sv.Kind = ast.UnionValue{Name: entry.Name, Components: svk.Components}
		*n = ast.Expression{Location: n.Location, Kind: ast.TermExpr{Node: sv, Type: ttype.MkCustom(entry.Name.String())}}
		return nil

	case symboltable.FuncDefData:
		cv, ok := tail.(*ast.Value)
		if !ok {
			return messageErr(message.Unreachable(n.Location, "access to a function must end in a call"))
		}
		ck, ok := cv.Kind.(ast.CallValue)
		if !ok {
			return messageErr(message.NotCallable(n.Location, path[len(path)-1].String()))
		}
		return a.checkCallArgs(n.Location, entry.Name.String(), data, ck.Args)

	case symboltable.ModuleDefData:
		return messageErr(message.NotAValue(n.Location, entry.Name.String()))

	default:
		return messageErr(message.Unreachable(n.Location, "unexpected access target kind"))
	}
}

// asStructLiteral requires tail be a Value wrapping a StructValue,
// producing a consistent diagnostic otherwise.
func asStructLiteral(tail ast.Node, typeName string) (*ast.Value, ast.StructValue, error) {
	sv, ok := tail.(*ast.Value)
	if !ok {
		return nil, ast.StructValue{}, messageErr(message.Unreachable(tail.Loc(), "access to a struct/union type must end in a struct literal"))
	}
	svk, ok := sv.Kind.(ast.StructValue)
	if !ok {
		return nil, ast.StructValue{}, messageErr(message.Newf(tail.Loc(), "%q requires a struct literal", typeName))
	}
	return sv, svk, nil
}

// analyzeComponentsBestEffort walks each literal component's expression,
// recording rather than propagating a failing one: a single bad field
// does not abort a whole struct.
func (a *Analyzer) analyzeComponentsBestEffort(comps []ast.StructComponent) {
	for _, c := range comps {
		if err := c.Expr.AcceptMut(a); err != nil {
			a.error(errToMessage(c.Expr, err))
		}
	}
}
