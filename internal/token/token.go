// Package token defines the wire contract between the lexer and everything
// downstream of it (the parser and, through it, the analyzer). Nothing in
// this package depends on how the source text was produced.
package token

import "fmt"

// Location is a source position, monotonically assigned by the lexer and
// attached to every parsed node and every diagnostic.
type Location struct {
	Row int
	Col int
}

// String renders a Location as "row:col", 1-based.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Row, l.Col)
}

// IsZero reports whether this is the default Location, used by a handful of
// diagnostics that are raised without a specific token in hand.
func (l Location) IsZero() bool {
	return l.Row == 0 && l.Col == 0
}

// Kind enumerates token categories. Multi-character operators are merged by
// the lexer's normal scan; Stream.PeekSingular/GetSingular can split the
// ones that are ambiguous with nested template generics (">>",  ">>=", ...)
// back into their single-character components on demand.
type Kind int

const (
	EOF Kind = iota
	Illegal

	Ident
	Integer
	Decimal
	Text

	// Keywords
	KwModule
	KwExtern
	KwStruct
	KwUnion
	KwVariant
	KwEnum
	KwAlias
	KwFunc
	KwLet
	KwMut
	KwReturn
	KwBreak
	KwContinue
	KwLoop
	KwWhile
	KwIf
	KwElse
	KwUse
	KwAs
	KwTrue
	KwFalse
	KwSelf
	KwSuper
	KwCrate
	KwPub
	KwSafe
	KwUnsafe

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	DColon // ::
	Semicolon
	Dot
	Arrow  // ->
	FatArrow
	Star // *

	// Operators (kept split into single-char kinds so Stream can
	// reassemble or split them as needed).
	Plus
	Minus
	Slash
	Percent
	Amp
	AmpAmp
	Pipe
	PipePipe
	Caret
	Bang
	Assign
	Eq
	NotEq
	Lt
	Lte
	Gt
	Gte
	LShift
	RShift

	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	LShiftAssign
	RShiftAssign

	EOL // statement-terminating newline, significant only when not ignored
)

var kindNames = map[Kind]string{
	EOF: "EOF", Illegal: "ILLEGAL", Ident: "IDENT", Integer: "INTEGER",
	Decimal: "DECIMAL", Text: "TEXT",
	KwModule: "module", KwExtern: "extern", KwStruct: "struct", KwUnion: "union",
	KwVariant: "variant", KwEnum: "enum", KwAlias: "alias", KwFunc: "func",
	KwLet: "let", KwMut: "mut", KwReturn: "return", KwBreak: "break",
	KwContinue: "continue", KwLoop: "loop", KwWhile: "while", KwIf: "if",
	KwElse: "else", KwUse: "use", KwAs: "as", KwTrue: "true", KwFalse: "false",
	KwSelf: "self", KwSuper: "super", KwCrate: "crate", KwPub: "pub",
	KwSafe: "safe", KwUnsafe: "unsafe",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Comma: ",", Colon: ":", DColon: "::", Semicolon: ";", Dot: ".",
	Arrow: "->", FatArrow: "=>", Star: "*",
	Plus: "+", Minus: "-", Slash: "/", Percent: "%", Amp: "&", AmpAmp: "&&",
	Pipe: "|", PipePipe: "||", Caret: "^", Bang: "!", Assign: "=", Eq: "==",
	NotEq: "!=", Lt: "<", Lte: "<=", Gt: ">", Gte: ">=", LShift: "<<", RShift: ">>",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	LShiftAssign: "<<=", RShiftAssign: ">>=", EOL: "<newline>",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Keywords maps reserved words to their Kind. The lexer consults this when
// it reads an identifier to decide whether to emit a keyword token instead.
var Keywords = map[string]Kind{
	"module": KwModule, "extern": KwExtern, "struct": KwStruct, "union": KwUnion,
	"variant": KwVariant, "enum": KwEnum, "alias": KwAlias, "func": KwFunc,
	"let": KwLet, "mut": KwMut, "return": KwReturn, "break": KwBreak,
	"continue": KwContinue, "loop": KwLoop, "while": KwWhile, "if": KwIf,
	"else": KwElse, "use": KwUse, "as": KwAs, "true": KwTrue, "false": KwFalse,
	"self": KwSelf, "super": KwSuper, "crate": KwCrate, "pub": KwPub,
	"safe": KwSafe, "unsafe": KwUnsafe,
}

// Token is a single lexical unit: its kind, its exact source text, and the
// location it started at.
type Token struct {
	Kind     Kind
	Lexeme   string
	Location Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Location)
}

// IsAssignOp reports whether the token is a compound- or plain-assignment
// operator, used by the parser's assignment precedence level.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign,
		AmpAssign, PipeAssign, CaretAssign, LShiftAssign, RShiftAssign:
		return true
	}
	return false
}

// UnderlyingOp returns the non-assignment operator a compound-assignment
// token desugars to (e.g. PlusAssign -> Plus), used to rewrite `a += b`
// into `a = a + b` at parse time. The second return value is false for
// plain Assign, which has no underlying binary operator.
func (k Kind) UnderlyingOp() (Kind, bool) {
	switch k {
	case PlusAssign:
		return Plus, true
	case MinusAssign:
		return Minus, true
	case StarAssign:
		return Star, true
	case SlashAssign:
		return Slash, true
	case PercentAssign:
		return Percent, true
	case AmpAssign:
		return Amp, true
	case PipeAssign:
		return Pipe, true
	case CaretAssign:
		return Caret, true
	case LShiftAssign:
		return LShift, true
	case RShiftAssign:
		return RShift, true
	}
	return k, false
}
