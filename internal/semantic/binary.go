package semantic

import (
	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

func (a *Analyzer) evalBinary(scope *types.Scope, n *ast.BinaryExpr) *types.Type {
	var result *types.Type
	switch n.Op {
	case token.ASSIGN:
		result = a.evalAssign(scope, n)
	case token.QUESTION_QUESTION:
		result = a.evalNullCoalesce(scope, n)
	case token.AND, token.OR:
		result = a.evalLogical(scope, n)
	case token.EQ, token.NEQ:
		result = a.evalEquality(scope, n)
	case token.LT, token.LTE, token.GT, token.GTE:
		result = a.evalRelational(scope, n)
	case token.PLUS:
		result = a.evalAdditive(scope, n)
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		result = a.evalArithmetic(scope, n)
	case token.PIPE, token.CARET, token.AMP, token.SHL, token.SHR:
		result = a.evalBitwise(scope, n)
	default:
		a.log.Errorf(n.Pos(), "internal: unhandled binary operator %s", n.Op)
		result = types.ErrorT
	}
	n.SetType(result)
	return result
}

func (a *Analyzer) evalAssign(scope *types.Scope, n *ast.BinaryExpr) *types.Type {
	left := a.evalExpr(scope, exprCtx{}, n.Left)
	if types.IsMeta(left) {
		a.log.Errorf(n.Left.Pos(), "cannot assign to a type expression")
		return types.ErrorT
	}
	right := a.evalExpr(scope, exprCtx{targetType: left}, n.Right)
	ok, needsCast := types.CanAssign(right, left)
	if !ok {
		if !types.IsError(right) && !types.IsError(left) {
			a.log.Errorf(n.Right.Pos(), "cannot assign %s to %s", right, left)
		}
		return left
	}
	if needsCast {
		n.Right = a.insertCast(n.Right, left)
	}
	return left
}

func (a *Analyzer) evalNullCoalesce(scope *types.Scope, n *ast.BinaryExpr) *types.Type {
	left := a.evalExpr(scope, exprCtx{}, n.Left)
	if left == nil || left.Kind != types.KindNullable {
		if !types.IsError(left) {
			a.log.Errorf(n.Left.Pos(), "left side of ?? must be nullable, got %s", left)
		}
		return types.ErrorT
	}
	elem := left.Elem
	right := a.evalExpr(scope, exprCtx{targetType: elem}, n.Right)
	ok, needsCast := types.CanAssign(right, elem)
	if !ok {
		if !types.IsError(right) {
			a.log.Errorf(n.Right.Pos(), "cannot convert %s to %s", right, elem)
		}
		return elem
	}
	if needsCast {
		n.Right = a.insertCast(n.Right, elem)
	}
	return elem
}

func (a *Analyzer) evalLogical(scope *types.Scope, n *ast.BinaryExpr) *types.Type {
	left := a.evalExpr(scope, exprCtx{}, n.Left)
	right := a.evalExpr(scope, exprCtx{}, n.Right)
	if !types.IsBool(left) && !types.IsError(left) {
		a.log.Errorf(n.Left.Pos(), "operator %s requires a bool operand, got %s", n.Op, left)
	}
	if !types.IsBool(right) && !types.IsError(right) {
		a.log.Errorf(n.Right.Pos(), "operator %s requires a bool operand, got %s", n.Op, right)
	}
	return types.BoolT
}

func (a *Analyzer) evalEquality(scope *types.Scope, n *ast.BinaryExpr) *types.Type {
	left := a.evalExpr(scope, exprCtx{}, n.Left)
	right := a.evalExpr(scope, exprCtx{}, n.Right)
	if types.IsError(left) || types.IsError(right) {
		return types.BoolT
	}
	if types.Equal(left, right) {
		return types.BoolT
	}
	if ok, needsCast := types.CanAssign(right, left); ok {
		if needsCast {
			n.Right = a.insertCast(n.Right, left)
		}
		return types.BoolT
	}
	if ok, needsCast := types.CanAssign(left, right); ok {
		if needsCast {
			n.Left = a.insertCast(n.Left, right)
		}
		return types.BoolT
	}
	a.log.Errorf(n.Pos(), "cannot compare %s and %s", left, right)
	return types.BoolT
}

func (a *Analyzer) evalRelational(scope *types.Scope, n *ast.BinaryExpr) *types.Type {
	left := a.evalExpr(scope, exprCtx{}, n.Left)
	right := a.evalExpr(scope, exprCtx{}, n.Right)
	if types.IsError(left) || types.IsError(right) {
		return types.BoolT
	}
	if types.IsString(left) && types.IsString(right) {
		return types.BoolT
	}
	if types.IsNumeric(left) && types.IsNumeric(right) {
		a.widenNumeric(n, left, right)
		return types.BoolT
	}
	a.log.Errorf(n.Pos(), "operator %s requires two numbers or two strings, got %s and %s", n.Op, left, right)
	return types.BoolT
}

func (a *Analyzer) evalAdditive(scope *types.Scope, n *ast.BinaryExpr) *types.Type {
	left := a.evalExpr(scope, exprCtx{}, n.Left)
	right := a.evalExpr(scope, exprCtx{}, n.Right)
	if types.IsError(left) || types.IsError(right) {
		return types.ErrorT
	}
	if types.IsString(left) && types.IsString(right) {
		return types.StringT
	}
	if types.IsNumeric(left) && types.IsNumeric(right) {
		return a.widenNumeric(n, left, right)
	}
	a.log.Errorf(n.Pos(), "operator + requires two numbers or two strings, got %s and %s", left, right)
	return types.ErrorT
}

func (a *Analyzer) evalArithmetic(scope *types.Scope, n *ast.BinaryExpr) *types.Type {
	left := a.evalExpr(scope, exprCtx{}, n.Left)
	right := a.evalExpr(scope, exprCtx{}, n.Right)
	if types.IsError(left) || types.IsError(right) {
		return types.ErrorT
	}
	if !types.IsNumeric(left) || !types.IsNumeric(right) {
		a.log.Errorf(n.Pos(), "operator %s requires numeric operands, got %s and %s", n.Op, left, right)
		return types.ErrorT
	}
	return a.widenNumeric(n, left, right)
}

func (a *Analyzer) evalBitwise(scope *types.Scope, n *ast.BinaryExpr) *types.Type {
	left := a.evalExpr(scope, exprCtx{}, n.Left)
	right := a.evalExpr(scope, exprCtx{}, n.Right)
	if types.IsError(left) || types.IsError(right) {
		return types.ErrorT
	}
	isInt := func(t *types.Type) bool { return t != nil && t.Kind == types.KindPrim && t.Prim == types.Int }
	if !isInt(left) || !isInt(right) {
		a.log.Errorf(n.Pos(), "operator %s requires int operands, got %s and %s", n.Op, left, right)
		return types.ErrorT
	}
	return types.IntT
}

// widenNumeric inserts an implicit int->float cast on whichever of n's two
// operands is the int when the other is float, and returns the common
// (widened) result type. Equal operand types need no cast.
func (a *Analyzer) widenNumeric(n *ast.BinaryExpr, left, right *types.Type) *types.Type {
	if types.Equal(left, right) {
		return left
	}
	if left.Prim == types.Int && right.Prim == types.Float {
		n.Left = a.insertCast(n.Left, types.FloatT)
		return types.FloatT
	}
	if left.Prim == types.Float && right.Prim == types.Int {
		n.Right = a.insertCast(n.Right, types.FloatT)
		return types.FloatT
	}
	return left
}
