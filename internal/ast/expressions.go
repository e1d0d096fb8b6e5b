package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

// UnaryExpr is a prefix unary operator (`-`, `!`, `+`).
type UnaryExpr struct {
	Typed
	TokPos  token.Position
	Op      token.Type
	Operand Expr
}

func (u *UnaryExpr) Pos() token.Position { return u.TokPos }
func (u *UnaryExpr) exprNode()           {}
func (u *UnaryExpr) String() string      { return u.Op.String() + u.Operand.String() }

// BinaryExpr is an infix binary operator, including `=` (assignment) and
// `??` (nullable-default) per the data model's treatment of both as
// ordinary binary operators.
type BinaryExpr struct {
	Typed
	TokPos token.Position
	Op     token.Type
	Left   Expr
	Right  Expr
}

func (b *BinaryExpr) Pos() token.Position { return b.TokPos }
func (b *BinaryExpr) exprNode()           {}
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// CallExpr calls a function, or — when IsCtor is set by pass 4 — invokes a
// class's zero-argument constructor.
type CallExpr struct {
	Typed
	TokPos token.Position
	Callee Expr
	Args   []Expr
	IsCtor bool
}

func (c *CallExpr) Pos() token.Position { return c.TokPos }
func (c *CallExpr) exprNode()           {}
func (c *CallExpr) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// IndexExpr is `Object[Index]`; Object must evaluate to a list type.
type IndexExpr struct {
	Typed
	TokPos token.Position
	Object Expr
	Index  Expr
}

func (n *IndexExpr) Pos() token.Position { return n.TokPos }
func (n *IndexExpr) exprNode()           {}
func (n *IndexExpr) String() string      { return n.Object.String() + "[" + n.Index.String() + "]" }

// MemberExpr is `Object.Name` or, when Safe is set, `Object?.Name`.
type MemberExpr struct {
	Typed
	TokPos token.Position
	Object Expr
	Name   string
	Safe   bool
	Symbol *types.Symbol
}

func (m *MemberExpr) Pos() token.Position { return m.TokPos }
func (m *MemberExpr) exprNode()           {}
func (m *MemberExpr) String() string {
	op := "."
	if m.Safe {
		op = "?."
	}
	return m.Object.String() + op + m.Name
}

// CastExpr is `Value as TargetType`. When pass 4 synthesises an implicit
// conversion, it replaces the converted child's slot in its parent with a
// CastExpr whose Value is the original expression — the original survives
// as this node's own child, never held by anything else during the swap.
type CastExpr struct {
	Typed
	TokPos     token.Position
	Value      Expr
	TargetType Expr
	Implicit   bool
}

func (c *CastExpr) Pos() token.Position { return c.TokPos }
func (c *CastExpr) exprNode()           {}
func (c *CastExpr) String() string {
	if c.Implicit {
		return c.Value.String()
	}
	return c.Value.String() + " as " + c.TargetType.String()
}

// ListExpr is a list literal `[e1, e2, ...]`. It requires a targetType
// during type-checking; there is no bottom-up inference form.
type ListExpr struct {
	Typed
	TokPos token.Position
	Items  []Expr
}

func (n *ListExpr) Pos() token.Position { return n.TokPos }
func (n *ListExpr) exprNode()           {}
func (n *ListExpr) String() string {
	items := make([]string, len(n.Items))
	for i, it := range n.Items {
		items[i] = it.String()
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// ParamExpr is a parameterised type expression: `list<T>` or
// `function<R, A...>`. Base names which built-in parameterised type is
// being constructed ("list" or "function"); it is a reserved word, not a
// symbol lookup.
type ParamExpr struct {
	Typed
	TokPos     token.Position
	Base       string
	TypeParams []Expr
}

func (n *ParamExpr) Pos() token.Position { return n.TokPos }
func (n *ParamExpr) exprNode()           {}
func (n *ParamExpr) String() string {
	params := make([]string, len(n.TypeParams))
	for i, p := range n.TypeParams {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s<%s>", n.Base, strings.Join(params, ", "))
}

// NullableTypeExpr is the postfix `T?` type operator.
type NullableTypeExpr struct {
	Typed
	TokPos token.Position
	Inner  Expr
}

func (n *NullableTypeExpr) Pos() token.Position { return n.TokPos }
func (n *NullableTypeExpr) exprNode()           {}
func (n *NullableTypeExpr) String() string      { return n.Inner.String() + "?" }

// PrimTypeExpr is one of the five primitive type keywords used in type
// position (bool, int, float, string, void). These are reserved words, not
// scope symbols — see DESIGN.md for the rationale.
type PrimTypeExpr struct {
	Typed
	TokPos token.Position
	Prim   token.Type // one of token.BOOL, INTK, FLOATK, STRINGK, VOID
}

func (n *PrimTypeExpr) Pos() token.Position { return n.TokPos }
func (n *PrimTypeExpr) exprNode()           {}
func (n *PrimTypeExpr) String() string      { return n.Prim.String() }
