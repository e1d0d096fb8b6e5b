package semantic

import (
	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

func (a *Analyzer) evalMember(scope *types.Scope, ctx exprCtx, n *ast.MemberExpr) *types.Type {
	objType := a.evalExpr(scope, exprCtx{}, n.Object)
	if types.IsError(objType) {
		n.SetType(types.ErrorT)
		return types.ErrorT
	}

	if n.Safe {
		if objType == nil || objType.Kind != types.KindNullable {
			a.log.Errorf(n.Object.Pos(), "'?.' requires a nullable object, got %s", objType)
			n.SetType(types.ErrorT)
			return types.ErrorT
		}
		inner := a.evalMemberOn(scope, ctx, n, objType.Elem)
		result := types.NewNullable(inner)
		n.SetType(result)
		return result
	}

	if objType != nil && objType.Kind == types.KindNullable {
		a.log.Errorf(n.Object.Pos(), "cannot access member '%s' on possibly-null value of type %s; use '?.' or narrow first", n.Name, objType)
		n.SetType(types.ErrorT)
		return types.ErrorT
	}

	result := a.evalMemberOn(scope, ctx, n, objType)
	n.SetType(result)
	return result
}

// classScopeFor resolves base (an instance or meta type) to the class
// scope its members live in, and the LookupKind (instance vs. static) that
// scope should be searched with.
func classScopeFor(base *types.Type) (*types.Scope, types.LookupKind) {
	switch {
	case base != nil && base.Kind == types.KindMeta && base.Inst != nil && base.Inst.Kind == types.KindClass:
		if cd, ok := base.Inst.Class.(classScoper); ok {
			return cd.ClassScope(), types.StaticMember
		}
	case base != nil && base.Kind == types.KindClass:
		if cd, ok := base.Class.(classScoper); ok {
			return cd.ClassScope(), types.InstanceMember
		}
	}
	return nil, types.Normal
}

func (a *Analyzer) evalMemberOn(scope *types.Scope, ctx exprCtx, n *ast.MemberExpr, base *types.Type) *types.Type {
	classScope, kind := classScopeFor(base)
	if classScope == nil {
		if !types.IsError(base) {
			a.log.Errorf(n.Object.Pos(), "cannot access member '%s' on value of type %s", n.Name, base)
		}
		return types.ErrorT
	}
	sym, ok := classScope.Lookup(n.Name, kind)
	if !ok {
		a.log.Errorf(n.Pos(), "undefined member '%s'", n.Name)
		return types.ErrorT
	}
	n.Symbol = sym
	t := sym.Type
	if types.IsOverloaded(t) {
		if ctx.argTypes == nil {
			a.log.Errorf(n.Pos(), "cannot resolve overloaded function '%s' without an argument list", n.Name)
			return types.ErrorT
		}
		chosen, resolved := a.resolveOverload(t.Overloads, ctx.argTypes, n.Pos())
		if chosen != nil {
			n.Symbol = chosen
		}
		return resolved
	}
	return t
}

// resolveOverload picks among candidates the one member whose parameter
// list accepts argTypes, preferring an exact structural match over one that
// needs an implicit conversion. More than one candidate in whichever
// bucket wins is ambiguous.
func (a *Analyzer) resolveOverload(candidates []*types.Symbol, argTypes []*types.Type, pos token.Position) (*types.Symbol, *types.Type) {
	var exact, implicit []*types.Symbol
	for _, cand := range candidates {
		ft := cand.Type
		if ft == nil || ft.Kind != types.KindFunc || len(ft.Args) != len(argTypes) {
			continue
		}
		allExact, allConvert := true, true
		for i, at := range argTypes {
			if !types.Equal(at, ft.Args[i]) {
				allExact = false
			}
			if ok, _ := types.CanAssign(at, ft.Args[i]); !ok {
				allConvert = false
			}
		}
		switch {
		case allExact:
			exact = append(exact, cand)
		case allConvert:
			implicit = append(implicit, cand)
		}
	}
	switch {
	case len(exact) == 1:
		return exact[0], exact[0].Type
	case len(exact) > 1:
		a.log.Errorf(pos, "ambiguous call: multiple overloads match exactly")
		return nil, types.ErrorT
	case len(implicit) == 1:
		return implicit[0], implicit[0].Type
	case len(implicit) > 1:
		a.log.Errorf(pos, "ambiguous call: multiple overloads match via implicit conversion")
		return nil, types.ErrorT
	default:
		a.log.Errorf(pos, "no overload of '%s' accepts the given argument types", candidates[0].Name)
		return nil, types.ErrorT
	}
}

// calleeSymbol peeks at a call's callee to learn its declared shape —
// in particular, whether it names an overload set — without the
// symbol-resolution side effects (diagnostics, narrowing-independent
// Symbol assignment) a full evalExpr would have if it ran with no argument
// context yet available. Design note §9 flags the two-evaluation approach
// (disabled-log trial, then a real pass) as call-site-bug-prone; reading
// the symbol directly here instead avoids ever evaluating the callee with
// an incomplete exprCtx.
func (a *Analyzer) calleeSymbol(scope *types.Scope, callee ast.Expr) *types.Type {
	switch n := callee.(type) {
	case *ast.Identifier:
		sym, ok := scope.Lookup(n.Name, types.Normal)
		if !ok {
			return nil
		}
		return sym.Type

	case *ast.MemberExpr:
		prevDisabled := a.log.Disabled
		a.log.Disabled = true
		objType := a.evalExpr(scope, exprCtx{}, n.Object)
		a.log.Disabled = prevDisabled

		base := objType
		if n.Safe && base != nil && base.Kind == types.KindNullable {
			base = base.Elem
		}
		classScope, kind := classScopeFor(base)
		if classScope == nil {
			return nil
		}
		sym, ok := classScope.Lookup(n.Name, kind)
		if !ok {
			return nil
		}
		return sym.Type

	default:
		return nil
	}
}

func (a *Analyzer) evalCall(scope *types.Scope, n *ast.CallExpr) *types.Type {
	peeked := a.calleeSymbol(scope, n.Callee)

	var argTypes []*types.Type
	var calleeType *types.Type

	if types.IsOverloaded(peeked) {
		argTypes = make([]*types.Type, len(n.Args))
		for i, arg := range n.Args {
			argTypes[i] = a.evalExpr(scope, exprCtx{}, arg)
		}
		calleeType = a.evalExpr(scope, exprCtx{argTypes: argTypes}, n.Callee)
	} else {
		calleeType = a.evalExpr(scope, exprCtx{}, n.Callee)
		var declaredArgs []*types.Type
		if calleeType != nil && calleeType.Kind == types.KindFunc {
			declaredArgs = calleeType.Args
		}
		argTypes = make([]*types.Type, len(n.Args))
		for i, arg := range n.Args {
			var target *types.Type
			if i < len(declaredArgs) {
				target = declaredArgs[i]
			}
			argTypes[i] = a.evalExpr(scope, exprCtx{targetType: target}, arg)
		}
	}

	if types.IsMeta(calleeType) && len(n.Args) == 0 {
		n.IsCtor = true
		result := calleeType.Inst
		n.SetType(result)
		return result
	}

	if calleeType == nil || calleeType.Kind != types.KindFunc {
		if !types.IsError(calleeType) {
			a.log.Errorf(n.Pos(), "cannot call a value of type %s", calleeType)
		}
		n.SetType(types.ErrorT)
		return types.ErrorT
	}

	if len(argTypes) != len(calleeType.Args) {
		a.log.Errorf(n.Pos(), "expected %d argument(s), got %d", len(calleeType.Args), len(argTypes))
		n.SetType(types.ErrorT)
		return types.ErrorT
	}

	for i, at := range argTypes {
		want := calleeType.Args[i]
		ok, needsCast := types.CanAssign(at, want)
		if !ok {
			if !types.IsError(at) {
				a.log.Errorf(n.Args[i].Pos(), "cannot pass %s as argument %d of type %s", at, i+1, want)
			}
			continue
		}
		if needsCast {
			n.Args[i] = a.insertCast(n.Args[i], want)
		}
	}

	result := calleeType.Ret
	n.SetType(result)
	return result
}
