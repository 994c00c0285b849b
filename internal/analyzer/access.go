package analyzer

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
)

// flattenAccessPath collects, given the lhs/rhs of an AccessExpr where
// rhs may itself be a nested (right-associated) Access, every identifier
// along the `::` chain plus the terminal node (an Identifier, a Call, or
// a Struct literal).
func flattenAccessPath(lhs, rhs ast.Node) ([]ident.Ident, ast.Node, error) {
	lhsName, ok := identOf(lhs)
	if !ok {
		return nil, nil, messageErr(message.Unreachable(lhs.Loc(), "access chain component is not an identifier"))
	}
	path := []ident.Ident{lhsName}

	switch r := rhs.(type) {
	case *ast.Expression:
		acc, ok := r.Kind.(ast.AccessExpr)
		if !ok {
			return nil, nil, messageErr(message.Unreachable(r.Loc(), "access chain rhs is neither a nested access nor a terminal value"))
		}
		rest, tail, err := flattenAccessPath(acc.LHS, acc.RHS)
		if err != nil {
			return nil, nil, err
		}
		return append(path, rest...), tail, nil

	case *ast.Value:
		switch vk := r.Kind.(type) {
		case ast.IdentifierValue:
			return append(path, vk.Name), r, nil
		case ast.CallValue:
			return append(path, vk.Name), r, nil
		case ast.StructValue:
			return append(path, vk.Name), r, nil
		}
	}
	return nil, nil, messageErr(message.Unreachable(rhs.Loc(), "access chain terminal is not an identifier, call, or struct literal"))
}
