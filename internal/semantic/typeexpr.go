package semantic

import (
	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

// evalTypeExpr evaluates e, which must be sitting in type position (a
// VarDef's TypeExpr, a Param's TypeExpr, a FuncDef's ReturnType, a
// CastExpr's TargetType, or a ParamExpr's TypeParams entry), and returns the
// instance type it denotes. It also decorates e's own computedType with
// meta(result), matching the data model's rule that a type expression's
// value is the meta of the type it names. isReturnType permits the void
// keyword, which is otherwise rejected as a variable or argument type.
func evalTypeExpr(log *Log, scope *types.Scope, e ast.Expr, isReturnType bool) *types.Type {
	switch n := e.(type) {
	case *ast.Identifier:
		sym, ok := scope.Lookup(n.Name, types.Normal)
		if !ok {
			log.Errorf(n.Pos(), "undefined type '%s'", n.Name)
			n.SetType(types.ErrorT)
			return types.ErrorT
		}
		n.Symbol = sym
		if !types.IsMeta(sym.Type) {
			log.Errorf(n.Pos(), "'%s' is not a type", n.Name)
			n.SetType(types.ErrorT)
			return types.ErrorT
		}
		n.SetType(sym.Type)
		return sym.Type.Inst

	case *ast.PrimTypeExpr:
		var inst *types.Type
		switch n.Prim {
		case token.BOOL:
			inst = types.BoolT
		case token.INTK:
			inst = types.IntT
		case token.FLOATK:
			inst = types.FloatT
		case token.STRINGK:
			inst = types.StringT
		case token.VOID:
			if !isReturnType {
				log.Errorf(n.Pos(), "void is only allowed as a function's return type")
			}
			inst = types.Void
		default:
			log.Errorf(n.Pos(), "internal: unrecognised primitive type token")
			inst = types.ErrorT
		}
		n.SetType(types.NewMeta(inst))
		return inst

	case *ast.NullableTypeExpr:
		inner := evalTypeExpr(log, scope, n.Inner, false)
		result := types.NewNullable(inner)
		n.SetType(types.NewMeta(result))
		return result

	case *ast.ParamExpr:
		return evalParamExpr(log, scope, n)

	default:
		log.Errorf(e.Pos(), "expected a type expression")
		return types.ErrorT
	}
}

func evalParamExpr(log *Log, scope *types.Scope, n *ast.ParamExpr) *types.Type {
	switch n.Base {
	case "list":
		if len(n.TypeParams) != 1 {
			log.Errorf(n.Pos(), "list<T> expects exactly one type parameter, got %d", len(n.TypeParams))
			n.SetType(types.NewMeta(types.ErrorT))
			return types.ErrorT
		}
		item := evalTypeExpr(log, scope, n.TypeParams[0], false)
		result := types.NewList(item)
		n.SetType(types.NewMeta(result))
		return result

	case "function":
		if len(n.TypeParams) < 1 {
			log.Errorf(n.Pos(), "function<R, A...> expects at least a return type")
			n.SetType(types.NewMeta(types.ErrorT))
			return types.ErrorT
		}
		ret := evalTypeExpr(log, scope, n.TypeParams[0], true)
		args := make([]*types.Type, 0, len(n.TypeParams)-1)
		for _, tp := range n.TypeParams[1:] {
			args = append(args, evalTypeExpr(log, scope, tp, false))
		}
		result := types.NewFunc(ret, args)
		n.SetType(types.NewMeta(result))
		return result

	default:
		log.Errorf(n.Pos(), "unknown parameterised type '%s'", n.Base)
		n.SetType(types.NewMeta(types.ErrorT))
		return types.ErrorT
	}
}
