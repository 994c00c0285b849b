package analyzer

import (
	"github.com/TheIcefield/tanit-lang-sub000/internal/ast"
	"github.com/TheIcefield/tanit-lang-sub000/internal/ident"
	"github.com/TheIcefield/tanit-lang-sub000/internal/message"
	"github.com/TheIcefield/tanit-lang-sub000/internal/symboltable"
)

func (a *Analyzer) VisitModuleDef(n *ast.ModuleDef) error {
	if a.hasSymbol(n.Name) {
		return messageErr(message.MultipleIDs(n.Location, n.Name.String()))
	}

	a.addSymbol(symboltable.Entry{
		Name:     n.Name,
		IsStatic: true,
		Kind:     symboltable.ModuleDefData{Table: symboltable.New()},
	})

	if n.Body == nil {
		return nil
	}

	sub := WithOptions(a.options)
	if err := n.Body.AcceptMut(sub); err != nil {
		return err
	}

	entry, _ := a.table.Lookup(n.Name)
	entry.Kind = symboltable.ModuleDefData{Table: sub.table}
	return nil
}

func (a *Analyzer) VisitStructDef(n *ast.StructDef) error {
	if a.hasSymbol(n.Name) {
		return messageErr(message.MultipleIDs(n.Location, n.Name.String()))
	}

	for _, internal := range n.Internals {
		if err := internal.AcceptMut(a); err != nil {
			a.error(errToMessage(internal, err))
		}
	}

	a.addSymbol(symboltable.Entry{
		Name:     n.Name,
		IsStatic: true,
		Kind:     symboltable.StructDefData{Fields: n.Fields},
	})
	return nil
}

func (a *Analyzer) VisitUnionDef(n *ast.UnionDef) error {
	if a.hasSymbol(n.Name) {
		return messageErr(message.MultipleIDs(n.Location, n.Name.String()))
	}

	for _, internal := range n.Internals {
		if err := internal.AcceptMut(a); err != nil {
			a.error(errToMessage(internal, err))
		}
	}

	a.addSymbol(symboltable.Entry{
		Name:     n.Name,
		IsStatic: true,
		Kind:     symboltable.UnionDefData{Fields: n.Fields},
	})
	return nil
}

// VisitVariantDef registers a tagged union if the compile options allow
// it.
func (a *Analyzer) VisitVariantDef(n *ast.VariantDef) error {
	if !a.options.AllowVariants {
		return messageErr(message.FeatureGated(n.Location, "variant types"))
	}

	if a.hasSymbol(n.Name) {
		return messageErr(message.MultipleIDs(n.Location, n.Name.String()))
	}

	for _, internal := range n.Internals {
		if err := internal.AcceptMut(a); err != nil {
			a.error(errToMessage(internal, err))
		}
	}

	data := symboltable.VariantDefData{
		Fields: make(map[ident.Ident]ast.VariantField, len(n.Fields)),
	}
	for _, entry := range n.Fields {
		data.Fields[entry.Name] = entry.Field
		data.Order = append(data.Order, entry.Name)
	}

	a.addSymbol(symboltable.Entry{Name: n.Name, IsStatic: true, Kind: data})
	return nil
}

// VisitEnumDef assigns each member a value, seeding the running counter
// from any explicit value and always advancing it afterward. Members are
// nested inside the enum's own entry rather
// than flattened into the current scope, so `Enum::Member` is only
// reachable through a qualified lookup.
func (a *Analyzer) VisitEnumDef(n *ast.EnumDef) error {
	if a.hasSymbol(n.Name) {
		return messageErr(message.MultipleIDs(n.Location, n.Name.String()))
	}

	data := symboltable.EnumDefData{Members: make(map[ident.Ident]int, len(n.Fields))}

	counter := 0
	seen := make(map[int]ident.Ident, len(n.Fields))
	for i, field := range n.Fields {
		if field.Value != nil {
			counter = *field.Value
		}
		n.Fields[i].Value = intPtr(counter)

		if prev, dup := seen[counter]; dup {
			a.error(message.EnumValueDuplicated(n.Location, field.Name.String(), prev.String(), counter))
		} else {
			seen[counter] = field.Name
		}

		data.Members[field.Name] = counter
		data.Order = append(data.Order, field.Name)
		counter++
	}

	a.addSymbol(symboltable.Entry{Name: n.Name, IsStatic: true, Kind: data})
	return nil
}

func intPtr(v int) *int { return &v }

func (a *Analyzer) VisitAliasDef(n *ast.AliasDef) error {
	if a.hasSymbol(n.Name) {
		return messageErr(message.MultipleIDs(n.Location, n.Name.String()))
	}

	a.addSymbol(symboltable.Entry{
		Name:     n.Name,
		IsStatic: true,
		Kind:     symboltable.AliasDefData{Type: n.Target},
	})
	return nil
}

// VisitFunctionDef registers the function in the enclosing scope and, for
// a definition with a body, analyzes parameters and the body in a nested
// function scope.
//
// The function's own FuncDef symbol is added to the *outer* scope before
// its body is walked, not after: a parameter scope is pushed and popped
// just to collect the parameter list, then the FuncDef entry goes in,
// then a fresh body scope is pushed. Registering after the body (as a
// single enter/body/exit would do) makes every function unable to call
// itself.
func (a *Analyzer) VisitFunctionDef(n *ast.FunctionDef) error {
	if a.hasSymbol(n.Name) {
		return messageErr(message.MultipleIDs(n.Location, n.Name.String()))
	}

	info := a.table.GetScopeInfo()
	if n.Attributes.Safety != ast.SafetyInherited {
		info.Safety = n.Attributes.Safety
	}
	info.IsInFunc = true

	a.table.EnterScope(info)
	var params []symboltable.Parameter
	for _, p := range n.Parameters {
		if a.hasSymbol(p.Name) {
			a.error(message.MultipleIDs(p.Location, p.Name.String()))
			continue
		}
		params = append(params, symboltable.Parameter{Name: p.Name, Type: p.DeclaredType})
	}
	a.table.ExitScope()

	a.addSymbol(symboltable.Entry{
		Name: n.Name,
		Kind: symboltable.FuncDefData{
			Parameters: params,
			ReturnType: n.ReturnType,
			NoReturn:   n.ReturnType.IsUnit(),
		},
	})

	if n.Body == nil {
		return nil
	}

	a.table.EnterScope(info)
	for _, p := range n.Parameters {
		if a.hasSymbol(p.Name) {
			continue
		}
		a.addSymbol(symboltable.Entry{
			Name: p.Name,
			Kind: symboltable.VarDefData{
				Type:        p.DeclaredType,
				Mutable:     p.Mutable,
				Initialized: true,
				Storage:     symboltable.StorageParameter,
			},
		})
	}
	// The body's statements share the parameters' scope, so they are
	// walked here rather than through VisitBlock, which would open a
	// second scope below this one.
	for _, stmt := range n.Body.Statements {
		if localDenied(stmt) {
			a.error(message.Newf(stmt.Loc(), "Node %q is not allowed in local scope", nodeName(stmt)))
			continue
		}
		if err := stmt.AcceptMut(a); err != nil {
			a.error(errToMessage(stmt, err))
		}
	}
	a.table.ExitScope()
	return nil
}

func (a *Analyzer) VisitExternDef(n *ast.ExternDef) error {
	for _, fn := range n.Functions {
		if err := fn.AcceptMut(a); err != nil {
			a.error(errToMessage(fn, err))
		}
	}
	return nil
}

// VisitVariableDef registers a bare `let` (no initializer) directly;
// `let x = expr` instead goes through VisitExpression's Binary/Assign
// case, which sees the literal *VariableDef as its LHS.
func (a *Analyzer) VisitVariableDef(n *ast.VariableDef) error {
	if a.hasSymbol(n.Name) {
		return messageErr(message.MultipleIDs(n.Location, n.Name.String()))
	}

	storage := symboltable.StorageLocal
	if n.Global {
		storage = symboltable.StorageGlobal
	}

	a.addSymbol(symboltable.Entry{
		Name: n.Name,
		Kind: symboltable.VarDefData{
			Type:    n.DeclaredType,
			Mutable: n.Mutable,
			Storage: storage,
		},
	})
	return nil
}

func (a *Analyzer) VisitUse(n *ast.Use) error {
	return nil
}
