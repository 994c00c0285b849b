package ast

// Visitor is the read-only traversal contract: serializers and code
// generators implement it. Each method simply visits; nothing is
// rewritten.
type Visitor interface {
	VisitBlock(*Block)
	VisitModuleDef(*ModuleDef)
	VisitStructDef(*StructDef)
	VisitUnionDef(*UnionDef)
	VisitVariantDef(*VariantDef)
	VisitEnumDef(*EnumDef)
	VisitAliasDef(*AliasDef)
	VisitFunctionDef(*FunctionDef)
	VisitExternDef(*ExternDef)
	VisitVariableDef(*VariableDef)
	VisitExpression(*Expression)
	VisitValue(*Value)
	VisitBranch(*Branch)
	VisitControlFlow(*ControlFlow)
	VisitUse(*Use)
}

// VisitorMut is the mutating traversal contract the analyzer implements:
// each method returns nil or a structured message.Message error, and may
// rewrite the node it was handed in place (e.g. an Access expression
// becomes a Term; a Notified CallArg becomes Positional).
type VisitorMut interface {
	VisitBlock(*Block) error
	VisitModuleDef(*ModuleDef) error
	VisitStructDef(*StructDef) error
	VisitUnionDef(*UnionDef) error
	VisitVariantDef(*VariantDef) error
	VisitEnumDef(*EnumDef) error
	VisitAliasDef(*AliasDef) error
	VisitFunctionDef(*FunctionDef) error
	VisitExternDef(*ExternDef) error
	VisitVariableDef(*VariableDef) error
	VisitExpression(*Expression) error
	VisitValue(*Value) error
	VisitBranch(*Branch) error
	VisitControlFlow(*ControlFlow) error
	VisitUse(*Use) error
}
