// Package parser implements a recursive-descent, precedence-climbing
// parser: token stream in, AST out, diagnosing and recovering at
// end-of-line on a syntax error rather than aborting the whole parse.
package parser

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/lexer"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
)

// Parser turns a token stream into an AST, accumulating diagnostics rather
// than failing the whole parse on the first bad statement.
type Parser struct {
	stream *lexer.Stream
	errors message.Messages

	// noStructLiteral suppresses treating `ident {` as the start of a
	// struct literal while parsing an if/while condition, the usual fix
	// for the classic "brace starts a block, not a literal" ambiguity in
	// C-family grammars with both conditions and struct literals.
	noStructLiteral bool

	// curGlobal tracks whether the block currently being parsed is
	// global-shaped (top-level or a module body) or local, so a bare
	// `let` knows whether to mark its VariableDef Global.
	curGlobal bool
}

// New wraps a token stream in a Parser.
func New(stream *lexer.Stream) *Parser {
	stream.SetIgnoreNewline(false)
	return &Parser{stream: stream}
}

// recoverableError is returned internally by the parse* helpers to signal
// "record this diagnostic and skip to the next line", as opposed to one
// that should propagate and unwind a whole nested parse.
type recoverableError struct{ msg message.Message }

func (e *recoverableError) Error() string { return e.msg.Text }

func (p *Parser) fail(msg message.Message) error {
	return &recoverableError{msg: msg}
}

// ParseProgram parses an entire source file as the top-level (global)
// block, recovering at statement granularity.
func (p *Parser) ParseProgram() (*ast.Block, message.Messages) {
	loc := p.stream.Location()
	p.curGlobal = true
	stmts := p.parseBlockBody(func(k token.Kind) bool { return k == token.EOF })
	return &ast.Block{Location: loc, Statements: stmts, IsGlobal: true}, p.errors
}

// parseBlockBody parses statements until the next token satisfies isEnd
// (a closing brace or EOF), recovering at EOL whenever a statement fails
// to parse.
func (p *Parser) parseBlockBody(isEnd func(token.Kind) bool) []ast.Node {
	var stmts []ast.Node
	for {
		for p.stream.Peek().Kind == token.EOL {
			p.stream.Get()
		}
		if isEnd(p.stream.Peek().Kind) {
			return stmts
		}
		if p.stream.Peek().Kind == token.EOF {
			return stmts
		}

		nodes, err := p.parseStatement()
		if err != nil {
			p.recordErr(err)
			p.stream.SkipToEOL()
			continue
		}
		stmts = append(stmts, nodes...)
		p.consumeStatementEnd()
	}
}

func (p *Parser) recordErr(err error) {
	if re, ok := err.(*recoverableError); ok {
		p.errors = append(p.errors, re.msg)
		return
	}
	p.errors = append(p.errors, message.New(p.stream.Location(), err.Error()))
}

// consumeStatementEnd swallows one trailing EOL/semicolon, if present; a
// closing brace or EOF also legally ends a statement without one.
func (p *Parser) consumeStatementEnd() {
	switch p.stream.Peek().Kind {
	case token.EOL, token.Semicolon:
		p.stream.Get()
	}
}

// atStatementEnd reports whether the parser is positioned at a token that
// legally ends a statement without an expression following (`return` or
// `break` right before a newline carries no value).
func (p *Parser) atStatementEnd() bool {
	switch p.stream.Peek().Kind {
	case token.EOL, token.Semicolon, token.RBrace, token.EOF:
		return true
	}
	return false
}

// expr runs fn with newline-insignificant mode on, the mode every
// expression-grammar level is parsed in.
func (p *Parser) expr(fn func() (ast.Node, error)) (ast.Node, error) {
	prev := p.stream.IgnoresNewline()
	p.stream.SetIgnoreNewline(true)
	defer p.stream.SetIgnoreNewline(prev)
	return fn()
}

func (p *Parser) internLexeme(tok token.Token) ident.Ident {
	return ident.Intern(tok.Lexeme)
}

// expect consumes the next token if it has kind k, else records a
// recoverable "unexpected token" diagnostic.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	tok := p.stream.Peek()
	if tok.Kind != k {
		return tok, p.fail(message.UnexpectedToken(tok, k.String()))
	}
	return p.stream.Get(), nil
}

func (p *Parser) expectIdent() (token.Token, error) {
	return p.expect(token.Ident)
}

// parseAttributes consumes any leading `pub`/`safe`/`unsafe` modifiers
// before an item, in whatever order they appear.
func (p *Parser) parseAttributes() ast.Attributes {
	var attrs ast.Attributes
	for {
		switch p.stream.Peek().Kind {
		case token.KwPub:
			p.stream.Get()
			attrs.Publicity = ast.PublicityPublic
		case token.KwSafe:
			p.stream.Get()
			attrs.Safety = ast.SafetySafe
		case token.KwUnsafe:
			p.stream.Get()
			attrs.Safety = ast.SafetyUnsafe
		default:
			return attrs
		}
	}
}

// parseStatement dispatches on the next token to one item/statement kind.
// It may return more than one node (an `if`/`else` pair), which is why
// every caller appends a slice rather than a single node.
func (p *Parser) parseStatement() ([]ast.Node, error) {
	attrs := p.parseAttributes()

	switch p.stream.Peek().Kind {
	case token.KwModule:
		n, err := p.parseModuleDef(attrs)
		return one(n, err)
	case token.KwExtern:
		n, err := p.parseExternDef()
		return one(n, err)
	case token.KwStruct:
		n, err := p.parseStructDef(attrs)
		return one(n, err)
	case token.KwUnion:
		n, err := p.parseUnionDef(attrs)
		return one(n, err)
	case token.KwVariant:
		n, err := p.parseVariantDef()
		return one(n, err)
	case token.KwEnum:
		n, err := p.parseEnumDef()
		return one(n, err)
	case token.KwAlias:
		n, err := p.parseAliasDef()
		return one(n, err)
	case token.KwFunc:
		n, err := p.parseFunctionDef(attrs)
		return one(n, err)
	case token.KwLet:
		n, err := p.parseVariableDef(p.curGlobal)
		return one(n, err)
	case token.KwUse:
		n, err := p.parseUse()
		return one(n, err)
	case token.KwReturn, token.KwBreak, token.KwContinue:
		n, err := p.parseControlFlow()
		return one(n, err)
	case token.KwLoop, token.KwWhile:
		n, err := p.parseLoopOrWhile()
		return one(n, err)
	case token.KwIf:
		return p.parseIfStatement()
	case token.LBrace:
		n, err := p.parseLocalBlock()
		return one(n, err)
	default:
		n, err := p.expr(p.parseExpression)
		return one(n, err)
	}
}

func one(n ast.Node, err error) ([]ast.Node, error) {
	if err != nil {
		return nil, err
	}
	return []ast.Node{n}, nil
}

func (p *Parser) parseLocalBlock() (*ast.Block, error) {
	loc, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	prevGlobal := p.curGlobal
	p.curGlobal = false
	stmts := p.parseBlockBody(func(k token.Kind) bool { return k == token.RBrace })
	p.curGlobal = prevGlobal
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.Block{Location: loc.Location, Statements: stmts, IsGlobal: false}, nil
}
