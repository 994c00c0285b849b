// Package ident implements a small-copy handle for identifier text:
// equality and hashing by handle, display by the interned string, and a
// predicate for the reserved compiler prefix.
//
// Interning is process-wide for the lifetime of one compilation session:
// a single package-level Interner backs every Ident, reset explicitly by
// internal/session at the start of a run rather than relying on implicit
// package-init ordering.
package ident

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// BuiltinPrefix is the reserved prefix that exempts a name from
// user-level lookup rules.
const BuiltinPrefix = "__tanit_compiler__"

// Interner maps identifier text to stable handles. It is safe for
// concurrent use, ordering its own state internally rather than relying
// on caller-side ordering.
type Interner struct {
	mu     sync.Mutex
	byText map[string]int
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{byText: make(map[string]int)}
}

// normalize applies Unicode NFC normalization so identifiers that are
// visually identical but differently composed (combining marks written in
// a different order) intern to the same handle, the way a real
// multi-byte-aware interner would.
func normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Intern returns the stable handle for s, allocating a new one if s has
// not been seen before on this interner.
func (in *Interner) Intern(s string) Ident {
	s = normalize(s)

	in.mu.Lock()
	defer in.mu.Unlock()

	id, ok := in.byText[s]
	if !ok {
		id = len(in.byText) + 1
		in.byText[s] = id
	}
	return Ident{id: id, text: s}
}

var (
	defaultMu       sync.RWMutex
	defaultInterner = NewInterner()
)

// Reset replaces the process-wide default interner, used by
// internal/session at the start of each compilation run so handles never
// leak between unrelated runs.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultInterner = NewInterner()
}

// Intern interns s on the process-wide default interner.
func Intern(s string) Ident {
	defaultMu.RLock()
	in := defaultInterner
	defaultMu.RUnlock()
	return in.Intern(s)
}

// Ident is a small-copy handle into an Interner's string table: equality
// and hashing are by handle (the numeric id), and the original text is
// carried alongside so Display never needs a separate interner lookup.
type Ident struct {
	id   int
	text string
}

// String returns the original text this Ident was interned from.
func (i Ident) String() string {
	return i.text
}

// Valid reports whether i was ever produced by Intern (as opposed to the
// zero value).
func (i Ident) Valid() bool {
	return i.id != 0
}

// Equal compares two handles by identity. Comparing Idents minted from
// different Interners is meaningless; callers are expected to intern on
// one Interner per compilation session.
func (i Ident) Equal(other Ident) bool {
	return i.id == other.id
}

// IsBuiltIn reports whether i's text begins with the reserved compiler
// prefix. Built-in names bypass function lookup in call analysis.
func (i Ident) IsBuiltIn() bool {
	return strings.HasPrefix(i.text, BuiltinPrefix)
}
