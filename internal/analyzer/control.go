package analyzer

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
)

// VisitBranch analyzes a Loop/While/If/Else. Loop and While open a nested
// loop scope; If and Else open no loop scope of their own, so only loops
// gate `break`/`continue`. Every body is walked in its own block scope,
// which inherits the enclosing scope's info. The body's statements are
// walked directly rather than through VisitBlock: a statement error here
// aborts the rest of the branch's body instead of being recorded and
// skipped.
func (a *Analyzer) VisitBranch(n *ast.Branch) error {
	info := a.table.GetScopeInfo()

	switch k := n.Kind.(type) {
	case ast.WhileBranch:
		info.IsInLoop = true
		a.table.EnterScope(info)
		defer a.table.ExitScope()

		if err := k.Condition.AcceptMut(a); err != nil {
			return err
		}
		return analyzeBranchBody(a, k.Body)

	case ast.LoopBranch:
		info.IsInLoop = true
		a.table.EnterScope(info)
		defer a.table.ExitScope()

		return analyzeBranchBody(a, k.Body)

	case ast.IfBranch:
		if err := k.Condition.AcceptMut(a); err != nil {
			return err
		}
		return analyzeBranchBody(a, k.Body)

	case ast.ElseBranch:
		return analyzeBranchBody(a, k.Body)
	}

	return messageErr(message.Unreachable(n.Location, "unknown BranchKind"))
}

func analyzeBranchBody(a *Analyzer, body *ast.Block) error {
	if body == nil {
		return nil
	}
	info := a.table.GetScopeInfo()
	if body.Attributes.Safety != ast.SafetyInherited {
		info.Safety = body.Attributes.Safety
	}
	a.table.EnterScope(info)
	defer a.table.ExitScope()

	for _, stmt := range body.Statements {
		if err := stmt.AcceptMut(a); err != nil {
			return err
		}
	}
	return nil
}

// VisitControlFlow validates that Return appears only inside a function
// and Break/Continue only inside a loop, after analyzing any carried
// expression.
func (a *Analyzer) VisitControlFlow(n *ast.ControlFlow) error {
	var ret ast.Node
	switch k := n.Kind.(type) {
	case ast.ReturnFlow:
		ret = k.Ret
	case ast.BreakFlow:
		ret = k.Ret
	}
	if ret != nil {
		if err := ret.AcceptMut(a); err != nil {
			return err
		}
	}

	info := a.table.GetScopeInfo()
	_, isReturn := n.Kind.(ast.ReturnFlow)

	if (!isReturn && !info.IsInLoop) || (isReturn && !info.IsInFunc) {
		return messageErr(message.UnexpectedControlFlow(n.Location, n.Kind.Name()))
	}
	return nil
}
