// Package analyzer implements the mutating semantic pass: name
// resolution, type checking, and the in-place rewrites (call-argument
// normalization, access-chain flattening) that turn a parsed AST into one
// ready for a code generator.
package analyzer

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/config"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/symboltable"
)

// Analyzer walks a *ast.Block with VisitorMut, accumulating diagnostics
// rather than aborting on the first one — the same recovery policy the
// parser uses.
type Analyzer struct {
	table   *symboltable.Table
	options config.Options
	errors  message.Messages
}

// New creates an Analyzer with default compile options.
func New() *Analyzer {
	return WithOptions(config.Default())
}

// WithOptions creates an Analyzer gated by opts.
func WithOptions(opts config.Options) *Analyzer {
	t := symboltable.New()
	t.EnterScope(symboltable.ScopeInfo{Safety: opts.Safety()})
	return &Analyzer{table: t, options: opts}
}

// Analyze runs the analyzer over prog (the parser's top-level block) and
// returns every diagnostic collected along the way.
func (a *Analyzer) Analyze(prog *ast.Block) message.Messages {
	if err := prog.AcceptMut(a); err != nil {
		a.error(errToMessage(prog, err))
	}
	return a.errors
}

func errToMessage(n ast.Node, err error) message.Message {
	if m, ok := err.(*messageError); ok {
		return m.msg
	}
	return message.New(n.Loc(), err.Error())
}

// messageError adapts a message.Message to the error interface so every
// VisitorMut method can just `return messageErr(...)`.
type messageError struct{ msg message.Message }

func (e *messageError) Error() string { return e.msg.Text }

func messageErr(msg message.Message) error { return &messageError{msg: msg} }

func (a *Analyzer) error(msg message.Message) { a.errors = append(a.errors, msg) }

// Table exposes the symbol table built during Analyze; together with the
// annotated AST it is what downstream consumers take over.
func (a *Analyzer) Table() *symboltable.Table { return a.table }

// hasSymbol reports whether name is already bound in the current scope.
// Redefinition in the same scope is always an error; shadowing an outer
// scope is always allowed.
func (a *Analyzer) hasSymbol(name ident.Ident) bool {
	for _, e := range a.table.CurrentScope().Entries() {
		if e.Name.Equal(name) {
			return true
		}
	}
	return false
}

// addSymbol inserts e in the current scope, swallowing a duplicate-name
// error because callers already checked hasSymbol before computing e.
func (a *Analyzer) addSymbol(e symboltable.Entry) {
	_ = a.table.Insert(e)
}

func (a *Analyzer) currentSafety() ast.Safety {
	return a.table.GetScopeInfo().Safety
}
