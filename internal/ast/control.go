package ast

import "github.com/TheIcefield/tanit-lang-sub000/internal/token"

// BranchKind is Loop | While | If | Else; While/If carry a condition, all
// four carry a body.
type BranchKind interface{ branchKind() }

type LoopBranch struct{ Body *Block }

func (LoopBranch) branchKind() {}

type WhileBranch struct {
	Condition Node
	Body      *Block
}

func (WhileBranch) branchKind() {}

type IfBranch struct {
	Condition Node
	Body      *Block
}

func (IfBranch) branchKind() {}

type ElseBranch struct{ Body *Block }

func (ElseBranch) branchKind() {}

// Branch wraps one of the BranchKind variants above.
type Branch struct {
	Location token.Location
	Kind     BranchKind
}

func (n *Branch) Loc() token.Location        { return n.Location }
func (n *Branch) Accept(v Visitor)            { v.VisitBranch(n) }
func (n *Branch) AcceptMut(v VisitorMut) error { return v.VisitBranch(n) }

// ControlFlowKind is Return(expr?) | Break(expr?) | Continue.
type ControlFlowKind interface {
	controlFlowKind()
	Name() string
}

type ReturnFlow struct{ Ret Node } // Ret may be nil

func (ReturnFlow) controlFlowKind() {}
func (ReturnFlow) Name() string      { return "return" }

type BreakFlow struct{ Ret Node } // Ret may be nil

func (BreakFlow) controlFlowKind() {}
func (BreakFlow) Name() string      { return "break" }

type ContinueFlow struct{}

func (ContinueFlow) controlFlowKind() {}
func (ContinueFlow) Name() string      { return "continue" }

// ControlFlow wraps one of the ControlFlowKind variants above.
type ControlFlow struct {
	Location token.Location
	Kind     ControlFlowKind
}

func (n *ControlFlow) Loc() token.Location        { return n.Location }
func (n *ControlFlow) Accept(v Visitor)            { v.VisitControlFlow(n) }
func (n *ControlFlow) AcceptMut(v VisitorMut) error { return v.VisitControlFlow(n) }
