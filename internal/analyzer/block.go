package analyzer

import (
	"fmt"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
)

// VisitBlock dispatches to the global or local statement-restriction
// rules and swallows per-statement errors into the diagnostic buffer
// rather than aborting the whole block. Branch bodies (see VisitBranch)
// do not go through here and stop at their first statement error.
func (a *Analyzer) VisitBlock(b *ast.Block) error {
	if b.IsGlobal {
		return a.analyzeGlobalBlock(b)
	}
	return a.analyzeLocalBlock(b)
}

// globalDenied lists the node kinds a top-level/module-body block
// rejects: bare statements and control flow only make sense inside a
// function. The one Expression shape a global block accepts is a `let`
// initialization, which the parser emits as Assign with a *VariableDef
// LHS — that is a global variable definition, not a statement.
func globalDenied(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.ControlFlow, *ast.Block, *ast.Value, *ast.Branch:
		return true
	case *ast.Expression:
		return !isVariableDefInit(v)
	}
	return false
}

func isVariableDefInit(e *ast.Expression) bool {
	bin, ok := e.Kind.(ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAssign {
		return false
	}
	_, ok = bin.LHS.(*ast.VariableDef)
	return ok
}

// localDenied lists the node kinds a non-global block rejects: type and
// function definitions only make sense at module scope.
func localDenied(n ast.Node) bool {
	switch n.(type) {
	case *ast.StructDef, *ast.UnionDef, *ast.VariantDef, *ast.FunctionDef, *ast.AliasDef, *ast.EnumDef:
		return true
	}
	return false
}

func nodeName(n ast.Node) string {
	switch n.(type) {
	case *ast.ModuleDef:
		return "ModuleDef"
	case *ast.StructDef:
		return "StructDef"
	case *ast.UnionDef:
		return "UnionDef"
	case *ast.VariantDef:
		return "VariantDef"
	case *ast.EnumDef:
		return "EnumDef"
	case *ast.AliasDef:
		return "AliasDef"
	case *ast.FunctionDef:
		return "FunctionDef"
	case *ast.ExternDef:
		return "ExternDef"
	case *ast.VariableDef:
		return "VariableDef"
	case *ast.Use:
		return "Use"
	case *ast.ControlFlow:
		return "ControlFlow"
	case *ast.Block:
		return "Block"
	case *ast.Value:
		return "Value"
	case *ast.Branch:
		return "Branch"
	case *ast.Expression:
		return "Expression"
	default:
		return fmt.Sprintf("%T", n)
	}
}

func (a *Analyzer) analyzeGlobalBlock(b *ast.Block) error {
	for _, n := range b.Statements {
		if globalDenied(n) {
			a.error(message.Newf(n.Loc(), "Node %q is not allowed in global scope", nodeName(n)))
			continue
		}
		if err := n.AcceptMut(a); err != nil {
			a.error(errToMessage(n, err))
		}
	}
	return nil
}

func (a *Analyzer) analyzeLocalBlock(b *ast.Block) error {
	info := a.table.GetScopeInfo()
	if b.Attributes.Safety != ast.SafetyInherited {
		info.Safety = b.Attributes.Safety
	}
	a.table.EnterScope(info)

	for _, n := range b.Statements {
		if localDenied(n) {
			a.error(message.Newf(n.Loc(), "Node %q is not allowed in local scope", nodeName(n)))
			continue
		}
		if err := n.AcceptMut(a); err != nil {
			a.error(errToMessage(n, err))
		}
	}

	a.table.ExitScope()
	return nil
}
