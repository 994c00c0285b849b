// Package session ties the lifetime of the process-wide identifier
// interner to a single compilation run, instead of leaving it to implicit
// package initialization order.
package session

import (
	"github.com/google/uuid"

	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
)

// Session identifies one parse-and-analyze run. Two Sessions never share
// interned Idents: Begin resets the global interner, so handles minted
// under one Session are meaningless once another has begun.
type Session struct {
	ID uuid.UUID
}

// Begin starts a new session, resetting the interner so this run starts
// from a clean Ident table regardless of what ran before it in the same
// process (tests included).
func Begin() *Session {
	ident.Reset()
	return &Session{ID: uuid.New()}
}

// String returns the session's UUID in its canonical hyphenated form,
// suitable for tagging a diagnostic batch or a log line.
func (s *Session) String() string {
	return s.ID.String()
}
