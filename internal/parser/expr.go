package parser

import (
	"strconv"
	"strings"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
)

// parseExpression is the assignment level, precedence 1: the only
// right-associative, right-recursive level. A compound-assignment token
// is desugared here, at parse time, into `a = a OP b` — the inner
// Binary's LHS is the same node pointer as the outer Assign's LHS, shared
// by identity instead of cloned.
func (p *Parser) parseExpression() (ast.Node, error) {
	lhs, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}

	tok := p.stream.Peek()
	if !tok.Kind.IsAssignOp() {
		return lhs, nil
	}
	p.stream.Get()

	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if underlying, ok := tok.Kind.UnderlyingOp(); ok {
		op, ok := binOpForToken(underlying)
		if !ok {
			return nil, p.fail(message.Unreachable(tok.Location, "compound-assign operator with no binary equivalent"))
		}
		rhs = &ast.Expression{Location: tok.Location, Kind: ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs}}
	}

	return &ast.Expression{Location: tok.Location, Kind: ast.BinaryExpr{Op: ast.OpAssign, LHS: lhs, RHS: rhs}}, nil
}

// binaryLevel is one entry of the precedence ladder below assignment: a
// set of token kinds recognized at this level, each mapped to its
// ast.BinaryOp, and the next-higher-precedence parser to call for operands.
type binaryLevel struct {
	ops  map[token.Kind]ast.BinaryOp
	next func(*Parser) (ast.Node, error)
}

func (p *Parser) parseBinaryLevel(lvl binaryLevel) (ast.Node, error) {
	lhs, err := lvl.next(p)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.stream.Peek()
		op, ok := lvl.ops[tok.Kind]
		if !ok {
			return lhs, nil
		}
		p.stream.Get()
		rhs, err := lvl.next(p)
		if err != nil {
			return nil, err
		}
		lhs = &ast.Expression{Location: tok.Location, Kind: ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs}}
	}
}

func (p *Parser) parseLogicalOr() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Kind]ast.BinaryOp{token.PipePipe: ast.OpLogicalOr},
		next: (*Parser).parseLogicalAnd,
	})
}

func (p *Parser) parseLogicalAnd() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Kind]ast.BinaryOp{token.AmpAmp: ast.OpLogicalAnd},
		next: (*Parser).parseBitwiseOr,
	})
}

func (p *Parser) parseBitwiseOr() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Kind]ast.BinaryOp{token.Pipe: ast.OpBitOr},
		next: (*Parser).parseBitwiseXor,
	})
}

func (p *Parser) parseBitwiseXor() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Kind]ast.BinaryOp{token.Caret: ast.OpBitXor},
		next: (*Parser).parseBitwiseAnd,
	})
}

func (p *Parser) parseBitwiseAnd() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Kind]ast.BinaryOp{token.Amp: ast.OpBitAnd},
		next: (*Parser).parseEquality,
	})
}

func (p *Parser) parseEquality() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Kind]ast.BinaryOp{token.Eq: ast.OpEq, token.NotEq: ast.OpNotEq},
		next: (*Parser).parseRelational,
	})
}

func (p *Parser) parseRelational() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops: map[token.Kind]ast.BinaryOp{
			token.Lt: ast.OpLt, token.Lte: ast.OpLe, token.Gt: ast.OpGt, token.Gte: ast.OpGe,
		},
		next: (*Parser).parseShift,
	})
}

func (p *Parser) parseShift() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Kind]ast.BinaryOp{token.LShift: ast.OpShl, token.RShift: ast.OpShr},
		next: (*Parser).parseAdditive,
	})
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Kind]ast.BinaryOp{token.Plus: ast.OpAdd, token.Minus: ast.OpSub},
		next: (*Parser).parseMultiplicative,
	})
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	return p.parseBinaryLevel(binaryLevel{
		ops: map[token.Kind]ast.BinaryOp{
			token.Star: ast.OpMul, token.Slash: ast.OpDiv, token.Percent: ast.OpMod,
		},
		next: (*Parser).parseDotOrAs,
	})
}

// parseDotOrAs is precedence level 12: `.member` (Get) and `as Type`
// (Conversion) share a level and may chain, e.g. `a.b as T`.
func (p *Parser) parseDotOrAs() (ast.Node, error) {
	lhs, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.stream.Peek().Kind {
		case token.Dot:
			tok := p.stream.Get()
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			rhs := &ast.Value{Location: name.Location, Kind: ast.IdentifierValue{Name: p.internLexeme(name)}}
			lhs = &ast.Expression{Location: tok.Location, Kind: ast.GetExpr{LHS: lhs, RHS: rhs}}
		case token.KwAs:
			tok := p.stream.Get()
			target, err := p.parseType()
			if err != nil {
				return nil, err
			}
			lhs = &ast.Expression{Location: tok.Location, Kind: ast.ConversionExpr{Operand: lhs, Target: target}}
		default:
			return lhs, nil
		}
	}
}

// parseFactor is precedence level 13, the base case of the expression
// grammar: unary prefixes, literals, identifier-led forms
// (call/access/struct), parenthesized/tuple expressions, array literals,
// each followed by zero or more `[idx]` indexing suffixes.
func (p *Parser) parseFactor() (ast.Node, error) {
	base, err := p.parseFactorCore()
	if err != nil {
		return nil, err
	}
	for p.stream.Peek().Kind == token.LBracket {
		tok := p.stream.Get()
		idx, err := p.expr(p.parseExpression)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		base = &ast.Expression{Location: tok.Location, Kind: ast.IndexingExpr{LHS: base, Index: idx}}
	}
	return base, nil
}

func (p *Parser) parseFactorCore() (ast.Node, error) {
	tok := p.stream.Peek()

	switch tok.Kind {
	case token.Plus, token.Minus, token.Bang, token.Star:
		p.stream.Get()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.Expression{Location: tok.Location, Kind: ast.UnaryExpr{Op: unaryOpFor(tok.Kind), Operand: operand}}, nil

	case token.Amp:
		p.stream.Get()
		op := ast.UnaryRef
		if p.stream.Peek().Kind == token.KwMut {
			p.stream.Get()
			op = ast.UnaryRefMut
		}
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.Expression{Location: tok.Location, Kind: ast.UnaryExpr{Op: op, Operand: operand}}, nil

	case token.Integer:
		p.stream.Get()
		v, err := parseIntLiteral(tok.Lexeme)
		if err != nil {
			return nil, p.fail(message.ParseIntError(tok.Location, tok.Lexeme, err))
		}
		return &ast.Value{Location: tok.Location, Kind: ast.IntegerValue{Value: v}}, nil

	case token.Decimal:
		p.stream.Get()
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.fail(message.ParseFloatError(tok.Location, tok.Lexeme, err))
		}
		return &ast.Value{Location: tok.Location, Kind: ast.DecimalValue{Value: v}}, nil

	case token.Text:
		p.stream.Get()
		return &ast.Value{Location: tok.Location, Kind: ast.TextValue{Value: tok.Lexeme}}, nil

	case token.KwTrue:
		p.stream.Get()
		return &ast.Value{Location: tok.Location, Kind: ast.IntegerValue{Value: 1}}, nil

	case token.KwFalse:
		p.stream.Get()
		return &ast.Value{Location: tok.Location, Kind: ast.IntegerValue{Value: 0}}, nil

	case token.Ident:
		return p.parseIdentLedFactor()

	case token.LParen:
		return p.parseParenOrTuple()

	case token.LBracket:
		return p.parseArrayValue()

	default:
		return nil, p.fail(message.UnexpectedToken(tok, "an expression"))
	}
}

// parseIdentLedFactor handles every factor form that starts with a bare
// identifier: a plain value, a call, an access chain, or a struct literal.
func (p *Parser) parseIdentLedFactor() (ast.Node, error) {
	tok := p.stream.Get()
	name := p.internLexeme(tok)

	switch p.stream.Peek().Kind {
	case token.LParen:
		return p.parseCallTail(tok.Location, name)
	case token.DColon:
		p.stream.Get()
		lhs := &ast.Value{Location: tok.Location, Kind: ast.IdentifierValue{Name: name}}
		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.Expression{Location: tok.Location, Kind: ast.AccessExpr{LHS: lhs, RHS: rhs}}, nil
	case token.LBrace:
		if p.noStructLiteral {
			return &ast.Value{Location: tok.Location, Kind: ast.IdentifierValue{Name: name}}, nil
		}
		return p.parseStructTail(tok.Location, name)
	default:
		return &ast.Value{Location: tok.Location, Kind: ast.IdentifierValue{Name: name}}, nil
	}
}

func (p *Parser) parseCallTail(loc token.Location, name ident.Ident) (ast.Node, error) {
	p.stream.Get() // '('
	var args []*ast.CallArg
	positionalIdx := 0

	if p.stream.Peek().Kind != token.RParen {
		for {
			arg, err := p.parseCallArg(&positionalIdx)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.stream.Peek().Kind != token.Comma {
				break
			}
			p.stream.Get()
			if p.stream.Peek().Kind == token.RParen {
				break
			}
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.Value{Location: loc, Kind: ast.CallValue{Name: name, Args: args}}, nil
}

// parseCallArg disambiguates `name: expr` (Notified) from a bare
// expression (Positional) with one token of extra lookahead: an
// identifier immediately followed by ':' is notified, everything else is
// positional. The index assigned here is the running count of positional
// arguments seen so far, re-validated by the analyzer's call analysis.
func (p *Parser) parseCallArg(positionalIdx *int) (*ast.CallArg, error) {
	loc := p.stream.Location()
	if p.stream.Peek().Kind == token.Ident && p.stream.PeekAt(1).Kind == token.Colon {
		nameTok := p.stream.Get()
		p.stream.Get() // ':'
		expr, err := p.expr(p.parseExpression)
		if err != nil {
			return nil, err
		}
		return &ast.CallArg{Location: loc, Kind: ast.NotifiedArg{Name: p.internLexeme(nameTok), Expr: expr}}, nil
	}

	expr, err := p.expr(p.parseExpression)
	if err != nil {
		return nil, err
	}
	idx := *positionalIdx
	*positionalIdx++
	return &ast.CallArg{Location: loc, Kind: ast.PositionalArg{Index: idx, Expr: expr}}, nil
}

func (p *Parser) parseStructTail(loc token.Location, name ident.Ident) (ast.Node, error) {
	p.stream.Get() // '{'
	var comps []ast.StructComponent

	for p.stream.Peek().Kind != token.RBrace {
		fieldTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		expr, err := p.expr(p.parseExpression)
		if err != nil {
			return nil, err
		}
		comps = append(comps, ast.StructComponent{Name: p.internLexeme(fieldTok), Expr: expr})

		if p.stream.Peek().Kind != token.Comma {
			break
		}
		p.stream.Get()
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.Value{Location: loc, Kind: ast.StructValue{Name: name, Components: comps}}, nil
}

// parseParenOrTuple parses `()` (unit), `(expr)` (just expr), or
// `(e1, e2, ...)` (Tuple), mirroring parseTupleType.
func (p *Parser) parseParenOrTuple() (ast.Node, error) {
	loc := p.stream.Get().Location // '('
	if p.stream.Peek().Kind == token.RParen {
		p.stream.Get()
		return &ast.Value{Location: loc, Kind: ast.TupleValue{}}, nil
	}

	first, err := p.expr(p.parseExpression)
	if err != nil {
		return nil, err
	}
	if p.stream.Peek().Kind != token.Comma {
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return first, nil
	}

	components := []ast.Node{first}
	for p.stream.Peek().Kind == token.Comma {
		p.stream.Get()
		if p.stream.Peek().Kind == token.RParen {
			break
		}
		n, err := p.expr(p.parseExpression)
		if err != nil {
			return nil, err
		}
		components = append(components, n)
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.Value{Location: loc, Kind: ast.TupleValue{Components: components}}, nil
}

func (p *Parser) parseArrayValue() (ast.Node, error) {
	loc := p.stream.Get().Location // '['
	var comps []ast.Node
	for p.stream.Peek().Kind != token.RBracket {
		n, err := p.expr(p.parseExpression)
		if err != nil {
			return nil, err
		}
		comps = append(comps, n)
		if p.stream.Peek().Kind != token.Comma {
			break
		}
		p.stream.Get()
	}
	if _, err := p.expect(token.RBracket); err != nil {
		return nil, err
	}
	return &ast.Value{Location: loc, Kind: ast.ArrayValue{Components: comps}}, nil
}

func unaryOpFor(k token.Kind) ast.UnaryOp {
	switch k {
	case token.Plus:
		return ast.UnaryPlus
	case token.Minus:
		return ast.UnaryMinus
	case token.Star:
		return ast.UnaryDeref
	case token.Bang:
		return ast.UnaryNot
	}
	return ast.UnaryPlus
}

func binOpForToken(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.Plus:
		return ast.OpAdd, true
	case token.Minus:
		return ast.OpSub, true
	case token.Star:
		return ast.OpMul, true
	case token.Slash:
		return ast.OpDiv, true
	case token.Percent:
		return ast.OpMod, true
	case token.Amp:
		return ast.OpBitAnd, true
	case token.Pipe:
		return ast.OpBitOr, true
	case token.Caret:
		return ast.OpBitXor, true
	case token.LShift:
		return ast.OpShl, true
	case token.RShift:
		return ast.OpShr, true
	}
	return 0, false
}

// parseIntLiteral parses an integer lexeme, tolerating the `_` digit
// separators the lexer passes through verbatim.
func parseIntLiteral(lexeme string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(lexeme, "_", ""), 10, 64)
}
