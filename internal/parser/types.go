package parser

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

// parseType parses a type expression. Generic argument lists use
// PeekSingular/GetSingular exclusively when closing, so a nested
// `Vec<Vec<i32>>` never consumes its `>>` as a shift operator.
func (p *Parser) parseType() (ttype.Type, error) {
	tok := p.stream.Peek()

	switch tok.Kind {
	case token.Amp:
		p.stream.Get()
		mutable := false
		if p.stream.Peek().Kind == token.KwMut {
			p.stream.Get()
			mutable = true
		}
		inner, err := p.parseType()
		if err != nil {
			return ttype.Type{}, err
		}
		return ttype.MkRef(inner, mutable), nil

	case token.Star:
		p.stream.Get()
		inner, err := p.parseType()
		if err != nil {
			return ttype.Type{}, err
		}
		return ttype.MkPtr(inner), nil

	case token.LParen:
		return p.parseTupleType()

	case token.LBracket:
		return p.parseArrayType()

	case token.Ident:
		p.stream.Get()
		name := tok.Lexeme
		if p.stream.Peek().Kind != token.Lt {
			return ttype.FromKeyword(name), nil
		}
		p.stream.Get() // '<'
		generics, err := p.parseGenericArgs()
		if err != nil {
			return ttype.Type{}, err
		}
		return ttype.MkTemplate(p.internLexeme(tok), generics), nil

	default:
		return ttype.Type{}, p.fail(message.UnexpectedToken(tok, "a type"))
	}
}

func (p *Parser) parseGenericArgs() ([]ttype.Type, error) {
	var generics []ttype.Type
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		generics = append(generics, t)

		if p.stream.Peek().Kind == token.Comma {
			p.stream.Get()
			continue
		}
		break
	}

	closing := p.stream.PeekSingular()
	if closing.Kind != token.Gt {
		return nil, p.fail(message.UnexpectedToken(closing, ">"))
	}
	p.stream.GetSingular()
	return generics, nil
}

// parseTupleType parses `()` (unit), `(T)` (just T), or `(T, U, ...)`
// (Tuple), mirroring the value-level grammar.
func (p *Parser) parseTupleType() (ttype.Type, error) {
	p.stream.Get() // '('
	if p.stream.Peek().Kind == token.RParen {
		p.stream.Get()
		return ttype.Unit(), nil
	}

	first, err := p.parseType()
	if err != nil {
		return ttype.Type{}, err
	}
	if p.stream.Peek().Kind != token.Comma {
		if _, err := p.expect(token.RParen); err != nil {
			return ttype.Type{}, err
		}
		return first, nil
	}

	components := []ttype.Type{first}
	for p.stream.Peek().Kind == token.Comma {
		p.stream.Get()
		if p.stream.Peek().Kind == token.RParen {
			break
		}
		t, err := p.parseType()
		if err != nil {
			return ttype.Type{}, err
		}
		components = append(components, t)
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ttype.Type{}, err
	}
	return ttype.MkTuple(components), nil
}

// parseArrayType parses `[T]` (unknown length) or `[T; N]` (fixed length).
func (p *Parser) parseArrayType() (ttype.Type, error) {
	p.stream.Get() // '['
	elem, err := p.parseType()
	if err != nil {
		return ttype.Type{}, err
	}

	var size *int
	if p.stream.Peek().Kind == token.Semicolon {
		p.stream.Get()
		n, err := p.expect(token.Integer)
		if err != nil {
			return ttype.Type{}, err
		}
		v, perr := parseIntLiteral(n.Lexeme)
		if perr != nil {
			return ttype.Type{}, p.fail(message.ParseIntError(n.Location, n.Lexeme, perr))
		}
		iv := int(v)
		size = &iv
	}

	if _, err := p.expect(token.RBracket); err != nil {
		return ttype.Type{}, err
	}
	return ttype.MkArray(size, elem), nil
}
