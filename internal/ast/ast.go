// Package ast defines the abstract syntax tree the parser builds and the
// semantic passes decorate in place.
package ast

import (
	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node, including the
// type-expressions that appear in variable/function signatures (per the
// input contract, those are ordinary expressions whose semantics yield a
// meta type).
type Expr interface {
	Node
	exprNode()
	GetType() *types.Type
	SetType(*types.Type)
}

// Typed is embedded by every expression node to carry the computedType
// decoration the core writes during pass 4, without repeating the
// GetType/SetType boilerplate on each node.
type Typed struct {
	ComputedType *types.Type
}

func (t *Typed) GetType() *types.Type     { return t.ComputedType }
func (t *Typed) SetType(ty *types.Type)   { t.ComputedType = ty }

// Module is the root of one translation unit's AST.
type Module struct {
	Body *Block
}

func (m *Module) Pos() token.Position { return m.Body.Pos() }
func (m *Module) String() string      { return m.Body.String() }

// Block is a brace-delimited statement sequence. The scope decoration is
// written by the define-symbols pass (pass 2); it is nil before that.
type Block struct {
	TokPos     token.Position
	Statements []Stmt
	Scope      *types.Scope
}

func (b *Block) Pos() token.Position { return b.TokPos }
func (b *Block) String() string {
	s := "{\n"
	for _, stmt := range b.Statements {
		s += "  " + stmt.String() + "\n"
	}
	return s + "}"
}
