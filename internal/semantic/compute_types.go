package semantic

import (
	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

// exprCtx carries the single piece of top-down context an expression needs
// from its parent: either the type it is expected to produce (targetType,
// consumed by list literals, assignment right-hand sides, return values,
// and ??'s right operand) or the argument types already computed for a call
// whose callee is being re-evaluated to resolve an overload. A node never
// needs both at once, so one struct with both fields optional is simpler
// than two call signatures.
type exprCtx struct {
	targetType *types.Type
	argTypes   []*types.Type
}

// classScoper is the subset of types.ClassDefNode compute-types needs to
// resolve a member reference to the class body's scope.
type classScoper interface {
	ClassScope() *types.Scope
}

// Analyzer holds pass 4's running state: the shared diagnostic log, the
// current function/class (for `this` and `return` type-checking), and the
// narrowing shadow table an `if x != null` / `if x == null` check installs
// for the branch it guards.
type Analyzer struct {
	log          *Log
	narrowed     map[*types.Symbol]*types.Type
	currentFunc  *ast.FuncDef
	currentClass *ast.ClassDef
}

// computeTypes is pass 4, the core of the pipeline: bidirectional
// expression type-checking, overload resolution, implicit-cast insertion,
// and nullable narrowing.
func computeTypes(log *Log, mod *ast.Module) bool {
	before := log.ErrorCount()
	a := &Analyzer{log: log, narrowed: make(map[*types.Symbol]*types.Type)}
	a.walkBlock(mod.Body)
	return log.ErrorCount() == before
}

func (a *Analyzer) walkBlock(block *ast.Block) {
	scope := block.Scope
	for _, stmt := range block.Statements {
		a.walkStmt(scope, stmt)
	}
}

func (a *Analyzer) walkStmt(scope *types.Scope, stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.ClassDef:
		prevClass := a.currentClass
		a.currentClass = n
		a.walkBlock(n.Body)
		a.currentClass = prevClass

	case *ast.ExternalStmt:
		a.walkBlock(n.Body)

	case *ast.FuncDef:
		prevFunc := a.currentFunc
		a.currentFunc = n
		if n.Body != nil {
			a.walkBlock(n.Body)
		}
		a.currentFunc = prevFunc

	case *ast.VarDef:
		a.walkVarDef(scope, n)

	case *ast.IfStmt:
		a.walkIf(scope, n)

	case *ast.WhileStmt:
		cond := a.evalExpr(scope, exprCtx{}, n.Cond)
		if !types.IsBool(cond) && !types.IsError(cond) {
			a.log.Errorf(n.Cond.Pos(), "while condition must be bool, got %s", cond)
		}
		a.walkBlock(n.Body)

	case *ast.ReturnStmt:
		a.walkReturn(scope, n)

	case *ast.ExpressionStmt:
		t := a.evalExpr(scope, exprCtx{}, n.X)
		if types.IsMeta(t) {
			a.log.Errorf(n.Pos(), "a type expression is not a valid statement")
		}
	}
}

func (a *Analyzer) walkVarDef(scope *types.Scope, n *ast.VarDef) {
	if a.currentFunc == nil {
		// Module-, class-, and external-scoped VarDefs were already typed by
		// pass 3. Pass 1 rejects an initialiser at module scope and in
		// external blocks; a class field's initialiser is checked here
		// against the field's declared type.
		if n.Value != nil && n.Symbol != nil {
			declared := n.Symbol.Type
			valType := a.evalExpr(scope, exprCtx{targetType: declared}, n.Value)
			if ok, needsCast := types.CanAssign(valType, declared); !ok {
				if !types.IsError(valType) && !types.IsError(declared) {
					a.log.Errorf(n.Value.Pos(), "cannot assign %s to variable '%s' of type %s", valType, n.Name, declared)
				}
			} else if needsCast {
				n.Value = a.insertCast(n.Value, declared)
			}
		}
		return
	}

	if n.IsInferred {
		valType := a.evalExpr(scope, exprCtx{}, n.Value)
		if valType == nil || valType.Kind == types.KindNull || valType.Kind == types.KindVoid {
			if !types.IsError(valType) {
				a.log.Errorf(n.Pos(), "cannot infer the type of '%s' from %s", n.Name, valType)
			}
			valType = types.ErrorT
		}
		if n.Symbol != nil {
			n.Symbol.Type = valType
		}
		return
	}

	declared := evalTypeExpr(a.log, scope, n.TypeExpr, false)
	if n.Symbol != nil {
		n.Symbol.Type = declared
	}
	if n.Value == nil {
		return
	}
	valType := a.evalExpr(scope, exprCtx{targetType: declared}, n.Value)
	ok, needsCast := types.CanAssign(valType, declared)
	if !ok {
		if !types.IsError(valType) && !types.IsError(declared) {
			a.log.Errorf(n.Value.Pos(), "cannot assign %s to variable '%s' of type %s", valType, n.Name, declared)
		}
		return
	}
	if needsCast {
		n.Value = a.insertCast(n.Value, declared)
	}
}

func (a *Analyzer) walkIf(scope *types.Scope, n *ast.IfStmt) {
	cond := a.evalExpr(scope, exprCtx{}, n.Cond)
	if !types.IsBool(cond) && !types.IsError(cond) {
		a.log.Errorf(n.Cond.Pos(), "if condition must be bool, got %s", cond)
	}

	thenSym, elseSym, narrowType := narrowingTarget(n.Cond)

	if thenSym != nil {
		prev, had := a.narrowed[thenSym]
		a.narrowed[thenSym] = narrowType
		a.walkBlock(n.Then)
		if had {
			a.narrowed[thenSym] = prev
		} else {
			delete(a.narrowed, thenSym)
		}
	} else {
		a.walkBlock(n.Then)
	}

	if n.Else == nil {
		return
	}
	if elseSym != nil {
		prev, had := a.narrowed[elseSym]
		a.narrowed[elseSym] = narrowType
		a.walkBlock(n.Else)
		if had {
			a.narrowed[elseSym] = prev
		} else {
			delete(a.narrowed, elseSym)
		}
	} else {
		a.walkBlock(n.Else)
	}
}

// narrowingTarget recognises `ident != null` / `ident == null` (in either
// operand order) where ident names a nullable-typed symbol, and reports
// which branch should see the symbol narrowed to its nullable element type:
// the then-branch for !=, the else-branch for ==.
func narrowingTarget(cond ast.Expr) (thenSym, elseSym *types.Symbol, narrowed *types.Type) {
	bin, ok := cond.(*ast.BinaryExpr)
	if !ok || (bin.Op != token.NEQ && bin.Op != token.EQ) {
		return nil, nil, nil
	}
	ident := identAgainstNull(bin.Left, bin.Right)
	if ident == nil || ident.Symbol == nil {
		return nil, nil, nil
	}
	sym := ident.Symbol
	if sym.Type == nil || sym.Type.Kind != types.KindNullable {
		return nil, nil, nil
	}
	elem := sym.Type.Elem
	if bin.Op == token.NEQ {
		return sym, nil, elem
	}
	return nil, sym, elem
}

func identAgainstNull(left, right ast.Expr) *ast.Identifier {
	// evalEquality may already have wrapped the null operand in an implicit
	// cast to the identifier's nullable type; look through it.
	if c, ok := left.(*ast.CastExpr); ok && c.Implicit {
		left = c.Value
	}
	if c, ok := right.(*ast.CastExpr); ok && c.Implicit {
		right = c.Value
	}
	if id, ok := left.(*ast.Identifier); ok {
		if _, ok := right.(*ast.NullLiteral); ok {
			return id
		}
	}
	if id, ok := right.(*ast.Identifier); ok {
		if _, ok := left.(*ast.NullLiteral); ok {
			return id
		}
	}
	return nil
}

func (a *Analyzer) walkReturn(scope *types.Scope, n *ast.ReturnStmt) {
	retType := types.Void
	if a.currentFunc != nil && a.currentFunc.Symbol != nil && a.currentFunc.Symbol.Type != nil {
		retType = a.currentFunc.Symbol.Type.Ret
	}

	if n.Value == nil {
		if !types.Equal(retType, types.Void) && !types.IsError(retType) {
			a.log.Errorf(n.Pos(), "missing return value in function returning %s", retType)
		}
		return
	}

	if types.Equal(retType, types.Void) {
		a.evalExpr(scope, exprCtx{}, n.Value)
		a.log.Errorf(n.Pos(), "unexpected return value in a void function")
		return
	}

	valType := a.evalExpr(scope, exprCtx{targetType: retType}, n.Value)
	ok, needsCast := types.CanAssign(valType, retType)
	if !ok {
		if !types.IsError(valType) && !types.IsError(retType) {
			a.log.Errorf(n.Value.Pos(), "cannot return %s from a function returning %s", valType, retType)
		}
		return
	}
	if needsCast {
		n.Value = a.insertCast(n.Value, retType)
	}
}

// insertCast synthesises the implicit CastExpr the data model's node-
// replacement rule calls for: a new node wrapping value, its computedType
// set directly to target, with no TargetType expression (String() falls
// back to rendering just the wrapped value for an implicit cast).
func (a *Analyzer) insertCast(value ast.Expr, target *types.Type) ast.Expr {
	cast := &ast.CastExpr{TokPos: value.Pos(), Value: value, Implicit: true}
	cast.SetType(target)
	return cast
}

func (a *Analyzer) evalExpr(scope *types.Scope, ctx exprCtx, e ast.Expr) *types.Type {
	if e == nil {
		return types.ErrorT
	}
	switch n := e.(type) {
	case *ast.IntLiteral:
		n.SetType(types.IntT)
		return types.IntT
	case *ast.FloatLiteral:
		n.SetType(types.FloatT)
		return types.FloatT
	case *ast.StringLiteral:
		n.SetType(types.StringT)
		return types.StringT
	case *ast.BoolLiteral:
		n.SetType(types.BoolT)
		return types.BoolT
	case *ast.NullLiteral:
		n.SetType(types.NullT)
		return types.NullT
	case *ast.ThisExpr:
		return a.evalThis(n)
	case *ast.Identifier:
		return a.evalIdentifier(scope, ctx, n)
	case *ast.UnaryExpr:
		return a.evalUnary(scope, n)
	case *ast.BinaryExpr:
		return a.evalBinary(scope, n)
	case *ast.CallExpr:
		return a.evalCall(scope, n)
	case *ast.MemberExpr:
		return a.evalMember(scope, ctx, n)
	case *ast.IndexExpr:
		return a.evalIndex(scope, n)
	case *ast.CastExpr:
		return a.evalCast(scope, n)
	case *ast.ListExpr:
		return a.evalList(scope, ctx, n)
	case *ast.PrimTypeExpr, *ast.ParamExpr, *ast.NullableTypeExpr:
		evalTypeExpr(a.log, scope, e, false)
		return e.GetType()
	default:
		a.log.Errorf(e.Pos(), "internal: unhandled expression node %T", e)
		return types.ErrorT
	}
}

func (a *Analyzer) evalThis(n *ast.ThisExpr) *types.Type {
	if a.currentClass == nil || (a.currentFunc != nil && a.currentFunc.IsStatic) {
		a.log.Errorf(n.Pos(), "'this' is only valid inside a non-static member function")
		n.SetType(types.ErrorT)
		return types.ErrorT
	}
	t := types.NewClass(a.currentClass)
	n.SetType(t)
	return t
}

func (a *Analyzer) evalIdentifier(scope *types.Scope, ctx exprCtx, n *ast.Identifier) *types.Type {
	sym, ok := scope.Lookup(n.Name, types.Normal)
	if !ok {
		a.log.Errorf(n.Pos(), "undefined symbol '%s'", n.Name)
		n.SetType(types.ErrorT)
		return types.ErrorT
	}
	n.Symbol = sym

	t := sym.Type
	if narrowedT, has := a.narrowed[sym]; has {
		t = narrowedT
	}

	if types.IsOverloaded(t) {
		if ctx.argTypes == nil {
			a.log.Errorf(n.Pos(), "cannot resolve overloaded function '%s' without an argument list", n.Name)
			n.SetType(types.ErrorT)
			return types.ErrorT
		}
		chosen, resolved := a.resolveOverload(t.Overloads, ctx.argTypes, n.Pos())
		if chosen != nil {
			n.Symbol = chosen
		}
		n.SetType(resolved)
		return resolved
	}

	n.SetType(t)
	return t
}

func (a *Analyzer) evalUnary(scope *types.Scope, n *ast.UnaryExpr) *types.Type {
	operand := a.evalExpr(scope, exprCtx{}, n.Operand)
	var result *types.Type
	switch n.Op {
	case token.MINUS, token.PLUS:
		switch {
		case types.IsNumeric(operand):
			result = operand
		case types.IsError(operand):
			result = types.ErrorT
		default:
			a.log.Errorf(n.Pos(), "unary %s requires a numeric operand, got %s", n.Op, operand)
			result = types.ErrorT
		}
	case token.BANG:
		switch {
		case types.IsBool(operand):
			result = types.BoolT
		case types.IsError(operand):
			result = types.ErrorT
		default:
			a.log.Errorf(n.Pos(), "unary ! requires a bool operand, got %s", operand)
			result = types.ErrorT
		}
	default:
		a.log.Errorf(n.Pos(), "internal: unhandled unary operator %s", n.Op)
		result = types.ErrorT
	}
	n.SetType(result)
	return result
}

func (a *Analyzer) evalIndex(scope *types.Scope, n *ast.IndexExpr) *types.Type {
	obj := a.evalExpr(scope, exprCtx{}, n.Object)
	idx := a.evalExpr(scope, exprCtx{}, n.Index)
	if types.IsError(obj) || types.IsError(idx) {
		n.SetType(types.ErrorT)
		return types.ErrorT
	}
	if obj == nil || obj.Kind != types.KindList {
		a.log.Errorf(n.Object.Pos(), "cannot index a value of type %s", obj)
		n.SetType(types.ErrorT)
		return types.ErrorT
	}
	if idx.Kind != types.KindPrim || idx.Prim != types.Int {
		a.log.Errorf(n.Index.Pos(), "list index must be int, got %s", idx)
	}
	result := obj.Item
	n.SetType(result)
	return result
}

func (a *Analyzer) evalCast(scope *types.Scope, n *ast.CastExpr) *types.Type {
	target := evalTypeExpr(a.log, scope, n.TargetType, false)
	value := a.evalExpr(scope, exprCtx{targetType: target}, n.Value)
	n.SetType(target)
	if types.IsError(value) || types.IsError(target) {
		return target
	}
	if !types.CanCast(value, target) {
		a.log.Errorf(n.Pos(), "cannot cast %s to %s", value, target)
	}
	return target
}

func (a *Analyzer) evalList(scope *types.Scope, ctx exprCtx, n *ast.ListExpr) *types.Type {
	if ctx.targetType == nil || ctx.targetType.Kind != types.KindList {
		a.log.Errorf(n.Pos(), "a list literal needs a known list type from context")
		n.SetType(types.ErrorT)
		return types.ErrorT
	}
	item := ctx.targetType.Item
	for i, elemExpr := range n.Items {
		elemType := a.evalExpr(scope, exprCtx{targetType: item}, elemExpr)
		ok, needsCast := types.CanAssign(elemType, item)
		if !ok {
			if !types.IsError(elemType) {
				a.log.Errorf(elemExpr.Pos(), "cannot use %s as a list item of type %s", elemType, item)
			}
			continue
		}
		if needsCast {
			n.Items[i] = a.insertCast(elemExpr, item)
		}
	}
	result := ctx.targetType
	n.SetType(result)
	return result
}
