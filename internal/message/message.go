// Package message implements structured diagnostics: value-typed records,
// never exceptions, accumulated by the parser and analyzer and handed to
// the driver to print.
package message

import (
	"fmt"

	"github.com/TheIcefield/tanit-lang-sub000/internal/token"
)

// Severity distinguishes errors (non-zero exit) from warnings (same
// channel, flagged). The analyzer never writes to stdout/stderr directly —
// it only appends to its message buffer.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Message is a single diagnostic: a location and text.
type Message struct {
	Location token.Location
	Text     string
	Severity Severity
}

// Messages is an accumulated diagnostic buffer.
type Messages []Message

// HasErrors reports whether any message in the set is an error (as
// opposed to a warning). The driver uses this to decide exit status.
func (ms Messages) HasErrors() bool {
	for _, m := range ms {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}

// New builds a plain error message at loc with the given text.
func New(loc token.Location, text string) Message {
	return Message{Location: loc, Text: text, Severity: SeverityError}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(loc token.Location, format string, args ...interface{}) Message {
	return New(loc, fmt.Sprintf(format, args...))
}

// Warningf builds a warning at loc.
func Warningf(loc token.Location, format string, args ...interface{}) Message {
	return Message{Location: loc, Text: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

// UnexpectedToken builds the "unexpected token" diagnostic, optionally
// listing what was expected instead.
func UnexpectedToken(tok token.Token, expected ...string) Message {
	text := fmt.Sprintf("Unexpected token: %s. ", tok.Lexeme)
	if len(expected) > 0 {
		text += "Expected: " + expected[0]
		for _, e := range expected[1:] {
			text += ", " + e
		}
		text += "."
	}
	return New(tok.Location, text)
}

// MultipleIDs builds the "defined multiple times" diagnostic.
func MultipleIDs(loc token.Location, name string) Message {
	return Newf(loc, "Identifier %q defined multiple times", name)
}

// UndefinedIdent builds the "not found in this scope" diagnostic.
func UndefinedIdent(loc token.Location, name string) Message {
	return Newf(loc, "Identifier %s not found in this scope", name)
}

// UndefinedFunc is the function-specific flavor of UndefinedIdent, used
// when a called name is not bound in any enclosing scope.
func UndefinedFunc(loc token.Location, name string) Message {
	return Newf(loc, "Function %s not found in this scope", name)
}

// TooManyOrFewArgs builds the argument-count diagnostic.
func TooManyOrFewArgs(loc token.Location, funcName string, expected, actual int) Message {
	word := "few"
	if actual > expected {
		word = "many"
	}
	return Newf(loc,
		"Too %s arguments passed in function %q, expected: %d, actually: %d",
		word, funcName, expected, actual)
}

// PositionalTypeMismatch builds the positional-argument type mismatch
// diagnostic.
func PositionalTypeMismatch(loc token.Location, funcName string, index int, got, want string) Message {
	return Newf(loc,
		"Mismatched types. In function %q call: positional parameter %q has type %q but expected %q",
		funcName, fmt.Sprint(index), got, want)
}

// NotifiedTypeMismatch is the named-argument flavor of the above.
func NotifiedTypeMismatch(loc token.Location, funcName, argName, got, want string) Message {
	return Newf(loc,
		"Mismatched types. In function %q call: notified parameter %q has type %q but expected %q",
		funcName, argName, got, want)
}

// NoSuchParameter builds the "no parameter named" diagnostic for a
// Notified call argument that doesn't match any parameter.
func NoSuchParameter(loc token.Location, funcName, argName string) Message {
	return Newf(loc, "No parameter named %q in function %q", argName, funcName)
}

// PositionalAfterNotified is raised when a Positional argument follows a
// Notified one in the same call.
func PositionalAfterNotified(loc token.Location, funcName string, index int) Message {
	return Newf(loc,
		"In function %q call: positional parameter %q must be passed before notified",
		funcName, fmt.Sprint(index))
}

// FieldTypeMismatch builds the struct/union field-mismatch diagnostic,
// with an optional "(aka: ...)" clarification when the declared field
// type is a transparent alias.
func FieldTypeMismatch(loc token.Location, kind, fieldName, declared, akaOf, got string) Message {
	if akaOf != "" {
		return Newf(loc, "%s field named %q is %s (aka: %s), but initialized like %s",
			kind, fieldName, declared, akaOf, got)
	}
	return Newf(loc, "%s field named %q is %s, but initialized like %s", kind, fieldName, declared, got)
}

// UnexpectedControlFlow builds the control-flow-misuse diagnostic:
// "Unexpected continue|break|return statement".
func UnexpectedControlFlow(loc token.Location, kind string) Message {
	return Newf(loc, "Unexpected %s statement", kind)
}

// ArrayElementMismatch builds the heterogeneous-array diagnostic. index
// is the element's 1-based position for display; the suffix is keyed off
// the 0-based position underneath it (see OrdinalSuffix), so the two are
// off by one on purpose.
func ArrayElementMismatch(loc token.Location, declared string, index int, got string) Message {
	return Newf(loc, "Array type is declared like %s, but %d%s element has type %s",
		declared, index, OrdinalSuffix(index-1), got)
}

// OrdinalSuffix keys st/nd/rd off 0/1/2 rather than the 1/2/3 standard
// English ordinal rules use. The quirk is load-bearing: downstream tools
// match the emitted text, so it must not be "fixed" independently of
// them.
func OrdinalSuffix(n int) string {
	switch n % 10 {
	case 0:
		return "st"
	case 1:
		return "nd"
	case 2:
		return "rd"
	default:
		return "th"
	}
}

// EnumValueDuplicated warns that two members of one enum resolved to the
// same integer value. Non-blocking: the enum still registers with both
// members carrying the duplicated value.
func EnumValueDuplicated(loc token.Location, member, prev string, value int) Message {
	return Warningf(loc, "Enum member %q duplicates the value %d already taken by %q", member, value, prev)
}

// Unreachable builds a diagnostic for an internal invariant violation,
// tagged so the offending check can be found.
func Unreachable(loc token.Location, detail string) Message {
	return Newf(loc, "unreachable: %s", detail)
}

// FeatureGated builds the diagnostic for a syntactically valid construct
// that the current compile options reject.
func FeatureGated(loc token.Location, feature string) Message {
	return Newf(loc, "%s not supported by current compile options", feature)
}

// AliasCycle flags a cyclic alias chain, reported instead of recursing
// until the stack overflows.
func AliasCycle(loc token.Location, name string) Message {
	return Newf(loc, "Alias cycle detected starting at %q", name)
}

// FieldCountMismatch builds the struct/union literal component-count
// diagnostic.
func FieldCountMismatch(loc token.Location, kind, name string, declared, supplied int) Message {
	return Newf(loc, "%s %q consists of %d fields, but %d were supplied", kind, name, declared, supplied)
}

// NoSuchField builds the diagnostic for a literal component naming a field
// that isn't declared on the struct/union/variant it targets.
func NoSuchField(loc token.Location, kind, name, field string) Message {
	return Newf(loc, "%s %q has no field named %q", kind, name, field)
}

// UnionNoFields flags a union literal supplying fields against a union
// type that declares none.
func UnionNoFields(loc token.Location, name string, supplied int) Message {
	return Newf(loc, "Union %q has no fields, but were supplied %d fields", name, supplied)
}

// UnionExactlyOne flags a union literal that does not initialize exactly
// one field.
func UnionExactlyOne(loc token.Location, supplied int) Message {
	return Newf(loc, "Only one union field must be initialized, but %d were initialized", supplied)
}

// TypeMismatch is the generic "objects with different types" diagnostic
// used by binary expressions and `let` initializers, with the same "(aka: ...)"
// clarification FieldTypeMismatch carries when an alias is involved.
func TypeMismatch(loc token.Location, lhs, akaOf, rhs string) Message {
	if akaOf != "" {
		return Newf(loc, "Cannot perform operation on objects with different types: %s (aka: %s) and %s", lhs, akaOf, rhs)
	}
	return Newf(loc, "Cannot perform operation on objects with different types: %s and %s", lhs, rhs)
}

// ImmutableAssignment flags a mutating operator applied to a binding that
// was never declared `mut`.
func ImmutableAssignment(loc token.Location, name string) Message {
	return Newf(loc, "Cannot perform mutating operation: %q is not mutable", name)
}

// InvalidMutableRef flags `&mut` taken of something other than a mutable
// variable binding.
func InvalidMutableRef(loc token.Location, detail string) Message {
	return Newf(loc, "Cannot take a mutable reference: %s", detail)
}

// InvalidAssignTarget flags a mutating operator whose LHS is a literal
// rather than a place expression.
func InvalidAssignTarget(loc token.Location, kind string) Message {
	return Newf(loc, "Cannot perform operation with %s in this context", kind)
}

// IndexingNonArray flags `expr[i]` where expr isn't array-typed.
func IndexingNonArray(loc token.Location, got string) Message {
	return Newf(loc, "Cannot index into a value of type %s", got)
}

// NotCallable flags a qualified or plain name resolving to something that
// isn't a function where a call was written.
func NotCallable(loc token.Location, name string) Message {
	return Newf(loc, "%q is not callable", name)
}

// NotAValue flags an access path resolving to a module or type where a
// value or call was expected.
func NotAValue(loc token.Location, name string) Message {
	return Newf(loc, "%q does not name a value in this context", name)
}

// ParseIntError / ParseFloatError wrap malformed-literal failures,
// carrying the offending lexeme alongside the underlying parse error.
func ParseIntError(loc token.Location, lexeme string, err error) Message {
	return Newf(loc, "invalid integer literal %q: %s", lexeme, err)
}

func ParseFloatError(loc token.Location, lexeme string, err error) Message {
	return Newf(loc, "invalid decimal literal %q: %s", lexeme, err)
}
