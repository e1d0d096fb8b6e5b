package ast

import (
	"fmt"

	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

// Identifier references a symbol by name.
type Identifier struct {
	Typed
	TokPos token.Position
	Name   string
	Symbol *types.Symbol
}

func (i *Identifier) Pos() token.Position { return i.TokPos }
func (i *Identifier) exprNode()           {}
func (i *Identifier) String() string      { return i.Name }

// IntLiteral is an integer literal (including a desugared CharExpr, which
// per the input contract is treated as int).
type IntLiteral struct {
	Typed
	TokPos token.Position
	Value  int64
}

func (n *IntLiteral) Pos() token.Position { return n.TokPos }
func (n *IntLiteral) exprNode()           {}
func (n *IntLiteral) String() string      { return fmt.Sprintf("%d", n.Value) }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Typed
	TokPos token.Position
	Value  float64
}

func (n *FloatLiteral) Pos() token.Position { return n.TokPos }
func (n *FloatLiteral) exprNode()           {}
func (n *FloatLiteral) String() string      { return fmt.Sprintf("%g", n.Value) }

// StringLiteral is a string literal.
type StringLiteral struct {
	Typed
	TokPos token.Position
	Value  string
}

func (n *StringLiteral) Pos() token.Position { return n.TokPos }
func (n *StringLiteral) exprNode()           {}
func (n *StringLiteral) String() string      { return fmt.Sprintf("%q", n.Value) }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Typed
	TokPos token.Position
	Value  bool
}

func (n *BoolLiteral) Pos() token.Position { return n.TokPos }
func (n *BoolLiteral) exprNode()           {}
func (n *BoolLiteral) String() string      { return fmt.Sprintf("%t", n.Value) }

// NullLiteral is the `null` literal.
type NullLiteral struct {
	Typed
	TokPos token.Position
}

func (n *NullLiteral) Pos() token.Position { return n.TokPos }
func (n *NullLiteral) exprNode()           {}
func (n *NullLiteral) String() string      { return "null" }

// ThisExpr is the `this` keyword, legal only inside a non-static member
// function.
type ThisExpr struct {
	Typed
	TokPos token.Position
}

func (n *ThisExpr) Pos() token.Position { return n.TokPos }
func (n *ThisExpr) exprNode()           {}
func (n *ThisExpr) String() string      { return "this" }
