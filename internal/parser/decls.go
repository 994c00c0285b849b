package parser

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ttype"
)

func (p *Parser) skipSeparators() {
	for {
		switch p.stream.Peek().Kind {
		case token.Comma, token.EOL:
			p.stream.Get()
		default:
			return
		}
	}
}

// parseModuleDef parses `module name` (external, no body) or
// `module name { ... }`. A module body introduces a fresh analyzer-visible
// scope, modeled here as a global-shaped block.
func (p *Parser) parseModuleDef(attrs ast.Attributes) (*ast.ModuleDef, error) {
	loc := p.stream.Get().Location // 'module'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	name := p.internLexeme(nameTok)

	if p.stream.Peek().Kind != token.LBrace {
		return &ast.ModuleDef{Location: loc, Name: name, IsExternal: true, Attributes: attrs}, nil
	}

	p.stream.Get() // '{'
	prevGlobal := p.curGlobal
	p.curGlobal = true
	stmts := p.parseBlockBody(func(k token.Kind) bool { return k == token.RBrace })
	p.curGlobal = prevGlobal
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	body := &ast.Block{Location: loc, Statements: stmts, IsGlobal: true}
	return &ast.ModuleDef{Location: loc, Name: name, Attributes: attrs, Body: body}, nil
}

// parseFieldList parses the `name: Type` pairs common to struct/union
// bodies, routing nested type-definition keywords into internals.
func (p *Parser) parseFieldList() (ast.OrderedFields, []ast.Node, error) {
	var fields ast.OrderedFields
	var internals []ast.Node

	if _, err := p.expect(token.LBrace); err != nil {
		return fields, nil, err
	}
	p.skipSeparators()

	for p.stream.Peek().Kind != token.RBrace {
		switch p.stream.Peek().Kind {
		case token.KwStruct:
			n, err := p.parseStructDef(ast.Attributes{})
			if err != nil {
				return fields, nil, err
			}
			internals = append(internals, n)
		case token.KwUnion:
			n, err := p.parseUnionDef(ast.Attributes{})
			if err != nil {
				return fields, nil, err
			}
			internals = append(internals, n)
		case token.KwEnum:
			n, err := p.parseEnumDef()
			if err != nil {
				return fields, nil, err
			}
			internals = append(internals, n)
		case token.KwAlias:
			n, err := p.parseAliasDef()
			if err != nil {
				return fields, nil, err
			}
			internals = append(internals, n)
		case token.KwVariant:
			n, err := p.parseVariantDef()
			if err != nil {
				return fields, nil, err
			}
			internals = append(internals, n)
		default:
			nameTok, err := p.expectIdent()
			if err != nil {
				return fields, nil, err
			}
			if _, err := p.expect(token.Colon); err != nil {
				return fields, nil, err
			}
			ty, err := p.parseType()
			if err != nil {
				return fields, nil, err
			}
			fields.Insert(p.internLexeme(nameTok), ty)
		}
		p.skipSeparators()
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return fields, nil, err
	}
	return fields, internals, nil
}

func (p *Parser) parseStructDef(attrs ast.Attributes) (*ast.StructDef, error) {
	loc := p.stream.Get().Location // 'struct'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	fields, internals, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	return &ast.StructDef{
		Location: loc, Name: p.internLexeme(nameTok),
		Fields: fields, Internals: internals, Attributes: attrs,
	}, nil
}

func (p *Parser) parseUnionDef(attrs ast.Attributes) (*ast.UnionDef, error) {
	loc := p.stream.Get().Location // 'union'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	fields, internals, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	return &ast.UnionDef{
		Location: loc, Name: p.internLexeme(nameTok),
		Fields: fields, Internals: internals, Attributes: attrs,
	}, nil
}

// parseVariantDef parses `variant Name { Member, Member: (i32, i32),
// Member { x: i32 }, ... }`.
func (p *Parser) parseVariantDef() (*ast.VariantDef, error) {
	loc := p.stream.Get().Location // 'variant'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	p.skipSeparators()

	var entries []ast.VariantFieldEntry
	var internals []ast.Node
	for p.stream.Peek().Kind != token.RBrace {
		switch p.stream.Peek().Kind {
		case token.KwStruct, token.KwUnion, token.KwEnum, token.KwAlias:
			n, err := p.parseInternalDef()
			if err != nil {
				return nil, err
			}
			internals = append(internals, n)
			p.skipSeparators()
			continue
		}

		memberTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		memberName := p.internLexeme(memberTok)

		// A tuple-like member is written `Name: (T, U)`; the colon is part
		// of that form only.
		if p.stream.Peek().Kind == token.Colon {
			p.stream.Get()
			if p.stream.Peek().Kind != token.LParen {
				return nil, p.fail(message.UnexpectedToken(p.stream.Peek(), "("))
			}
		}

		var field ast.VariantField
		switch p.stream.Peek().Kind {
		case token.LBrace:
			fields, _, err := p.parseFieldList()
			if err != nil {
				return nil, err
			}
			field = ast.VariantField{Kind: ast.VariantFieldStructLike, StructLike: fields}
		case token.LParen:
			p.stream.Get()
			var tuple []ttype.Type
			for p.stream.Peek().Kind != token.RParen {
				ty, err := p.parseType()
				if err != nil {
					return nil, err
				}
				tuple = append(tuple, ty)
				if p.stream.Peek().Kind != token.Comma {
					break
				}
				p.stream.Get()
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			field = ast.VariantField{Kind: ast.VariantFieldTupleLike, TupleLike: tuple}
		default:
			field = ast.VariantField{Kind: ast.VariantFieldCommon}
		}

		entries = append(entries, ast.VariantFieldEntry{Name: memberName, Field: field})
		p.skipSeparators()
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.VariantDef{Location: loc, Name: p.internLexeme(nameTok), Fields: entries, Internals: internals}, nil
}

func (p *Parser) parseInternalDef() (ast.Node, error) {
	switch p.stream.Peek().Kind {
	case token.KwStruct:
		return p.parseStructDef(ast.Attributes{})
	case token.KwUnion:
		return p.parseUnionDef(ast.Attributes{})
	case token.KwEnum:
		return p.parseEnumDef()
	case token.KwAlias:
		return p.parseAliasDef()
	}
	return nil, p.fail(message.UnexpectedToken(p.stream.Peek(), "a nested type definition"))
}

// parseEnumDef parses `enum Name { A, B: 5, C }`: explicit values are
// kept as-is, absent ones are left nil for the analyzer's
// sequential-counter pass.
func (p *Parser) parseEnumDef() (*ast.EnumDef, error) {
	loc := p.stream.Get().Location // 'enum'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	p.skipSeparators()

	var fields []ast.EnumField
	for p.stream.Peek().Kind != token.RBrace {
		memberTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		var value *int
		if p.stream.Peek().Kind == token.Colon {
			p.stream.Get()
			numTok, err := p.expect(token.Integer)
			if err != nil {
				return nil, err
			}
			n, perr := parseIntLiteral(numTok.Lexeme)
			if perr != nil {
				return nil, p.fail(message.ParseIntError(numTok.Location, numTok.Lexeme, perr))
			}
			iv := int(n)
			value = &iv
		}
		fields = append(fields, ast.EnumField{Name: p.internLexeme(memberTok), Value: value})
		p.skipSeparators()
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.EnumDef{Location: loc, Name: p.internLexeme(nameTok), Fields: fields}, nil
}

func (p *Parser) parseAliasDef() (*ast.AliasDef, error) {
	loc := p.stream.Get().Location // 'alias'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	target, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.AliasDef{Location: loc, Name: p.internLexeme(nameTok), Target: target}, nil
}

// parseParamList parses a function's `(name: Type, mut name2: Type, ...)`.
func (p *Parser) parseParamList() ([]*ast.VariableDef, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []*ast.VariableDef
	for p.stream.Peek().Kind != token.RParen {
		mutable := false
		if p.stream.Peek().Kind == token.KwMut {
			p.stream.Get()
			mutable = true
		}
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.VariableDef{
			Location: nameTok.Location, Name: p.internLexeme(nameTok),
			DeclaredType: ty, Mutable: mutable,
		})
		if p.stream.Peek().Kind != token.Comma {
			break
		}
		p.stream.Get()
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return params, nil
}

// parseFunctionDef parses `func name(params) [-> RetType] { body }` or,
// with no body, a declaration (used inside an ExternDef).
func (p *Parser) parseFunctionDef(attrs ast.Attributes) (*ast.FunctionDef, error) {
	loc := p.stream.Get().Location // 'func'
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	ret := ttype.Unit()
	if p.stream.Peek().Kind == token.Arrow {
		p.stream.Get()
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	fn := &ast.FunctionDef{
		Location: loc, Name: p.internLexeme(nameTok),
		ReturnType: ret, Parameters: params, Attributes: attrs,
	}

	if p.atStatementEnd() {
		return fn, nil
	}
	body, err := p.parseLocalBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parseExternDef parses `extern "ABI" { func decl1(...) ... }`, with the
// declarations separated by newlines or commas: every contained function
// must be a declaration (no body).
func (p *Parser) parseExternDef() (*ast.ExternDef, error) {
	loc := p.stream.Get().Location // 'extern'
	abiTok, err := p.expect(token.Text)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	p.skipSeparators()

	var fns []*ast.FunctionDef
	for p.stream.Peek().Kind != token.RBrace {
		if _, err := p.expect(token.KwFunc); err != nil {
			return nil, err
		}
		fn, err := p.parseFunctionDeclAfterKeyword(loc)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
		p.skipSeparators()
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return &ast.ExternDef{Location: loc, ABIName: abiTok.Lexeme, Functions: fns}, nil
}

// parseFunctionDeclAfterKeyword parses the remainder of a function
// signature once the leading `func` keyword has already been consumed by
// the caller (parseExternDef, which needs to require the keyword itself
// before delegating).
func (p *Parser) parseFunctionDeclAfterKeyword(_ token.Location) (*ast.FunctionDef, error) {
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	ret := ttype.Unit()
	if p.stream.Peek().Kind == token.Arrow {
		p.stream.Get()
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	return &ast.FunctionDef{Location: nameTok.Location, Name: p.internLexeme(nameTok), ReturnType: ret, Parameters: params}, nil
}

// parseVariableDef parses `let [mut] name [: Type] [= expr]`. With an
// initializer it returns a Binary(Assign) expression whose LHS is the
// VariableDef node itself, which the analyzer treats as an
// initialization; without one it returns the bare declaration.
func (p *Parser) parseVariableDef(global bool) (ast.Node, error) {
	loc := p.stream.Get().Location // 'let'
	mutable := false
	if p.stream.Peek().Kind == token.KwMut {
		p.stream.Get()
		mutable = true
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	declType := ttype.MkAuto()
	if p.stream.Peek().Kind == token.Colon {
		p.stream.Get()
		declType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	def := &ast.VariableDef{
		Location: loc, Name: p.internLexeme(nameTok),
		DeclaredType: declType, Mutable: mutable, Global: global,
	}

	if p.stream.Peek().Kind != token.Assign {
		return def, nil
	}
	assignTok := p.stream.Get()
	rhs, err := p.expr(p.parseExpression)
	if err != nil {
		return nil, err
	}
	return &ast.Expression{
		Location: assignTok.Location,
		Kind:     ast.BinaryExpr{Op: ast.OpAssign, LHS: def, RHS: rhs},
	}, nil
}

// parseUse parses `use self|super|crate|*|Path::To::Thing`.
func (p *Parser) parseUse() (*ast.Use, error) {
	loc := p.stream.Get().Location // 'use'

	switch p.stream.Peek().Kind {
	case token.KwSelf:
		p.stream.Get()
		return &ast.Use{Location: loc, Kind: ast.UseSelf}, nil
	case token.KwSuper:
		p.stream.Get()
		return &ast.Use{Location: loc, Kind: ast.UseSuper}, nil
	case token.KwCrate:
		p.stream.Get()
		return &ast.Use{Location: loc, Kind: ast.UseCrate}, nil
	case token.Star:
		p.stream.Get()
		return &ast.Use{Location: loc, Kind: ast.UseWildcard}, nil
	}

	var path []ident.Ident
	for {
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		path = append(path, p.internLexeme(nameTok))
		if p.stream.Peek().Kind != token.DColon {
			break
		}
		p.stream.Get()
	}
	return &ast.Use{Location: loc, Kind: ast.UseExplicit, Path: path}, nil
}
