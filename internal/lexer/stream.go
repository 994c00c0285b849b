package lexer

import "github.com/TheIcefield/tanit-lang-sub000/internal/token"

// Stream is the token-stream contract the parser and analyzer consume:
// peek/get for ordinary lookahead, the "Singular" variants
// that never merge multi-character operators (needed so `Vec<Vec<i32>>`
// closes its nested generic on a lone '>' instead of swallowing "`>>`" as
// a shift operator), skip_until for error recovery, and a newline-mode
// toggle since EOL is a statement terminator only in some grammar
// positions.
type Stream struct {
	lex           *Lexer
	buf           []token.Token
	ignoreNewline bool
}

// NewStream wraps a Lexer in the buffering contract above.
func NewStream(lex *Lexer) *Stream {
	return &Stream{lex: lex, ignoreNewline: true}
}

// SetIgnoreNewline toggles whether EOL tokens are swallowed (expression
// context) or surfaced (statement-terminating context).
func (s *Stream) SetIgnoreNewline(ignore bool) {
	s.ignoreNewline = ignore
}

// IgnoresNewline reports the current newline mode.
func (s *Stream) IgnoresNewline() bool {
	return s.ignoreNewline
}

func (s *Stream) fill(n int) {
	for len(s.buf) <= n {
		tok := s.lex.NextToken()
		if s.ignoreNewline {
			for tok.Kind == token.EOL {
				tok = s.lex.NextToken()
			}
		}
		s.buf = append(s.buf, tok)
	}
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() token.Token {
	s.fill(0)
	return s.buf[0]
}

// Get consumes and returns the next token.
func (s *Stream) Get() token.Token {
	s.fill(0)
	tok := s.buf[0]
	s.buf = s.buf[1:]
	return tok
}

// Location returns the location of the next unconsumed token.
func (s *Stream) Location() token.Location {
	return s.Peek().Location
}

// PeekAt returns the nth not-yet-consumed token (0 == Peek()) without
// consuming anything, used by the parser to disambiguate a notified call
// argument (`name: expr`) from a positional one starting with an
// identifier.
func (s *Stream) PeekAt(n int) token.Token {
	s.fill(n)
	return s.buf[n]
}

type splitRule struct {
	firstKind       token.Kind
	firstLexeme     string
	remainderKind   token.Kind
	remainderLexeme string
}

var splitRules = map[token.Kind]splitRule{
	token.RShift:       {token.Gt, ">", token.Gt, ">"},
	token.RShiftAssign: {token.Gt, ">", token.Gte, ">="},
	token.LShift:       {token.Lt, "<", token.Lt, "<"},
	token.LShiftAssign: {token.Lt, "<", token.Lte, "<="},
}

// PeekSingular returns what the next token would be if multi-character
// operators were never merged: a buffered ">>" is reported as a lone '>'.
func (s *Stream) PeekSingular() token.Token {
	tok := s.Peek()
	if rule, ok := splitRules[tok.Kind]; ok {
		return token.Token{Kind: rule.firstKind, Lexeme: rule.firstLexeme, Location: tok.Location}
	}
	return tok
}

// GetSingular consumes a single character's worth of operator, splitting a
// merged multi-character token in the buffer and pushing the remainder
// back onto the front of the stream.
func (s *Stream) GetSingular() token.Token {
	tok := s.Peek()
	rule, ok := splitRules[tok.Kind]
	if !ok {
		return s.Get()
	}

	s.buf = s.buf[1:]
	remainderLoc := tok.Location
	remainderLoc.Col++
	remainder := token.Token{Kind: rule.remainderKind, Lexeme: rule.remainderLexeme, Location: remainderLoc}
	s.buf = append([]token.Token{remainder}, s.buf...)

	return token.Token{Kind: rule.firstKind, Lexeme: rule.firstLexeme, Location: tok.Location}
}

// SkipUntil consumes tokens until the next one matches a kind in set (or
// EOF), used by the parser to recover after a syntax error.
func (s *Stream) SkipUntil(set map[token.Kind]bool) {
	for {
		tok := s.Peek()
		if tok.Kind == token.EOF || set[tok.Kind] {
			return
		}
		s.Get()
	}
}

// SkipToEOL consumes tokens up to and including the next end-of-line (or
// EOF), regardless of the current newline mode. This is the parser's
// per-statement error recovery: a syntax error is recorded and parsing
// resumes at the following line.
func (s *Stream) SkipToEOL() {
	prev := s.ignoreNewline
	s.ignoreNewline = false
	for {
		tok := s.Get()
		if tok.Kind == token.EOL || tok.Kind == token.EOF {
			break
		}
	}
	s.ignoreNewline = prev
}
