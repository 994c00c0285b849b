package parser

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
)

// parseControlFlow parses `return [expr]`, `break [expr]`, `continue`. An
// absent expression before a statement terminator is not an error: the
// parser checks atStatementEnd before ever attempting to parse one.
func (p *Parser) parseControlFlow() (*ast.ControlFlow, error) {
	tok := p.stream.Get()

	if tok.Kind == token.KwContinue {
		return &ast.ControlFlow{Location: tok.Location, Kind: ast.ContinueFlow{}}, nil
	}

	var ret ast.Node
	if !p.atStatementEnd() {
		n, err := p.expr(p.parseExpression)
		if err != nil {
			return nil, err
		}
		ret = n
	}

	if tok.Kind == token.KwReturn {
		return &ast.ControlFlow{Location: tok.Location, Kind: ast.ReturnFlow{Ret: ret}}, nil
	}
	return &ast.ControlFlow{Location: tok.Location, Kind: ast.BreakFlow{Ret: ret}}, nil
}

// parseLoopOrWhile parses `loop { body }` and `while cond { body }`.
func (p *Parser) parseLoopOrWhile() (*ast.Branch, error) {
	tok := p.stream.Get()

	if tok.Kind == token.KwLoop {
		body, err := p.parseLocalBlock()
		if err != nil {
			return nil, err
		}
		return &ast.Branch{Location: tok.Location, Kind: ast.LoopBranch{Body: body}}, nil
	}

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseLocalBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Branch{Location: tok.Location, Kind: ast.WhileBranch{Condition: cond, Body: body}}, nil
}

// parseCondition parses an expression with struct-literal parsing
// suppressed, the usual fix for the ambiguity between a trailing `{` that
// starts a struct literal and one that starts the branch's body (e.g.
// `if x { ... }` must not parse `x { ... }` as a struct literal).
func (p *Parser) parseCondition() (ast.Node, error) {
	prev := p.noStructLiteral
	p.noStructLiteral = true
	defer func() { p.noStructLiteral = prev }()
	return p.expr(p.parseExpression)
}

// parseIfStatement parses `if cond { body }` and, when present, its
// trailing `else` (possibly chained as `else if ...`). Both halves are
// peer Branch nodes — Branch.Kind ranges over Loop/While/If/Else as
// siblings, not a single combined node — so this returns up to two
// statements.
func (p *Parser) parseIfStatement() ([]ast.Node, error) {
	tok := p.stream.Get() // 'if'
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseLocalBlock()
	if err != nil {
		return nil, err
	}
	ifNode := &ast.Branch{Location: tok.Location, Kind: ast.IfBranch{Condition: cond, Body: body}}

	save := p.stream.IgnoresNewline()
	p.stream.SetIgnoreNewline(true)
	hasElse := p.stream.Peek().Kind == token.KwElse
	p.stream.SetIgnoreNewline(save)
	if !hasElse {
		return []ast.Node{ifNode}, nil
	}

	for p.stream.Peek().Kind == token.EOL {
		p.stream.Get()
	}
	elseNode, err := p.parseElseTail()
	if err != nil {
		return []ast.Node{ifNode}, err
	}
	return []ast.Node{ifNode, elseNode}, nil
}

func (p *Parser) parseElseTail() (*ast.Branch, error) {
	tok := p.stream.Get() // 'else'

	if p.stream.Peek().Kind == token.KwIf {
		nested, err := p.parseIfStatement()
		if err != nil {
			return nil, err
		}
		body := &ast.Block{Location: tok.Location, Statements: nested, IsGlobal: false}
		return &ast.Branch{Location: tok.Location, Kind: ast.ElseBranch{Body: body}}, nil
	}

	body, err := p.parseLocalBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Branch{Location: tok.Location, Kind: ast.ElseBranch{Body: body}}, nil
}
