package ast

import (
	"strings"

	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

// ClassDef declares a class. Classes are single-level: there is no parent
// clause, matching the type domain's class(ClassDef*) with no inheritance
// operation in the data model.
type ClassDef struct {
	TokPos token.Position
	Name   string
	Body   *Block
	Symbol *types.Symbol
}

func (c *ClassDef) Pos() token.Position { return c.TokPos }
func (c *ClassDef) stmtNode()           {}
func (c *ClassDef) String() string      { return "class " + c.Name + " " + c.Body.String() }

// ClassName implements types.ClassDefNode, letting *ClassDef be stored
// directly as a types.Type's Class field without an import cycle.
func (c *ClassDef) ClassName() string { return c.Name }

// ClassScope implements types.ClassDefNode. It returns the class body's
// member scope, populated by the symbol-definition pass.
func (c *ClassDef) ClassScope() *types.Scope { return c.Body.Scope }

// DefPos implements types.DefNode.
func (c *ClassDef) DefPos() (string, int, int) {
	return c.TokPos.File, c.TokPos.Line, c.TokPos.Column
}

// Param is one formal parameter of a FuncDef.
type Param struct {
	TokPos   token.Position
	Name     string
	TypeExpr Expr
	Symbol   *types.Symbol
}

func (p *Param) Pos() token.Position { return p.TokPos }
func (p *Param) DefPos() (string, int, int) {
	return p.TokPos.File, p.TokPos.Line, p.TokPos.Column
}

// FuncDef declares a function or method. Body is nil for a function
// declared inside an external block. ReturnType is never nil: a void
// return type is a PrimTypeExpr for token.VOID.
type FuncDef struct {
	TokPos     token.Position
	Name       string
	ReturnType Expr
	Params     []*Param
	Body       *Block
	IsStatic   bool
	Symbol     *types.Symbol
}

func (f *FuncDef) Pos() token.Position { return f.TokPos }
func (f *FuncDef) stmtNode()           {}
func (f *FuncDef) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.TypeExpr.String() + " " + p.Name
	}
	head := f.ReturnType.String() + " " + f.Name + "(" + strings.Join(names, ", ") + ")"
	if f.Body == nil {
		return head
	}
	return head + " " + f.Body.String()
}

func (f *FuncDef) DefPos() (string, int, int) {
	return f.TokPos.File, f.TokPos.Line, f.TokPos.Column
}

// VarDef declares a variable. TypeExpr is nil for the `var x = e` inferred
// form; Value is nil for an uninitialised definition, which may appear in
// any block (function parameters use Param, not VarDef). Pass 6 fills in a
// default Value for every one outside external blocks.
type VarDef struct {
	TokPos     token.Position
	Name       string
	TypeExpr   Expr
	Value      Expr
	IsInferred bool
	IsStatic   bool
	Symbol     *types.Symbol
}

func (v *VarDef) Pos() token.Position { return v.TokPos }
func (v *VarDef) stmtNode()           {}
func (v *VarDef) String() string {
	if v.IsInferred {
		return "var " + v.Name + " = " + v.Value.String()
	}
	s := v.TypeExpr.String() + " " + v.Name
	if v.Value != nil {
		s += " = " + v.Value.String()
	}
	return s
}

func (v *VarDef) DefPos() (string, int, int) {
	return v.TokPos.File, v.TokPos.Line, v.TokPos.Column
}

// ExternalStmt wraps a block of class/variable/function declarations that
// exist in the runtime but have no body in source. External blocks share
// their parent's scope: they do not introduce a new one.
type ExternalStmt struct {
	TokPos token.Position
	Body   *Block
}

func (e *ExternalStmt) Pos() token.Position { return e.TokPos }
func (e *ExternalStmt) stmtNode()           {}
func (e *ExternalStmt) String() string      { return "external " + e.Body.String() }
