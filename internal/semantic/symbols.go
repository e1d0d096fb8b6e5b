package semantic

import (
	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/types"
)

// defineSymbols is pass 2. It builds the scope tree — one Scope per Block,
// attached to Block.Scope — and inserts a Symbol for every class, function,
// variable, and parameter into the scope that lexically contains it,
// applying the four-case insertion rule (types.Scope.Define) that folds
// same-name function definitions into an overloaded-function symbol.
func defineSymbols(log *Log, mod *ast.Module) bool {
	before := log.ErrorCount()
	root := types.NewScope(types.ModuleScope, nil)
	mod.Body.Scope = root
	defineBlock(log, mod.Body, root)
	return log.ErrorCount() == before
}

func defineBlock(log *Log, block *ast.Block, scope *types.Scope) {
	for _, stmt := range block.Statements {
		defineStmt(log, stmt, scope)
	}
}

func defineStmt(log *Log, stmt ast.Stmt, scope *types.Scope) {
	switch n := stmt.(type) {
	case *ast.ClassDef:
		sym := types.NewSymbol(n.Name, types.ClassSymbol, n)
		sym.Type = types.NewMeta(types.NewClass(n))
		res, final := scope.Define(sym)
		if res == types.Redefinition {
			log.Errorf(n.Pos(), "redefinition of %s in the same scope", n.Name)
		}
		n.Symbol = final
		classScope := types.NewScope(types.ClassScope, scope)
		n.Body.Scope = classScope
		defineBlock(log, n.Body, classScope)

	case *ast.FuncDef:
		sym := types.NewSymbol(n.Name, types.FunctionSymbol, n)
		sym.IsStatic = n.IsStatic
		res, final := scope.Define(sym)
		if res == types.Redefinition {
			log.Errorf(n.Pos(), "redefinition of %s in the same scope", n.Name)
		}
		n.Symbol = final
		if res == types.FoldedIntoOverload || res == types.AppendedToOverload {
			// The scope slot now holds the overload set; the definition
			// keeps its own member symbol, which pass 3 types.
			n.Symbol = sym
		}

		funcScope := types.NewScope(types.FuncScope, scope)
		for _, p := range n.Params {
			psym := types.NewSymbol(p.Name, types.VariableSymbol, p)
			pres, pfinal := funcScope.Define(psym)
			if pres == types.Redefinition {
				log.Errorf(p.Pos(), "redefinition of %s in the same scope", p.Name)
			}
			p.Symbol = pfinal
		}
		if n.Body != nil {
			n.Body.Scope = funcScope
			defineBlock(log, n.Body, funcScope)
		}

	case *ast.VarDef:
		// Variable symbols always have IsStatic = false (spec §4.2) — only
		// function and class symbols carry a static/instance distinction.
		sym := types.NewSymbol(n.Name, types.VariableSymbol, n)
		res, final := scope.Define(sym)
		if res == types.Redefinition {
			log.Errorf(n.Pos(), "redefinition of %s in the same scope", n.Name)
		}
		n.Symbol = final

	case *ast.ExternalStmt:
		// External blocks share their parent's scope: they introduce no
		// scope of their own.
		n.Body.Scope = scope
		defineBlock(log, n.Body, scope)

	case *ast.IfStmt:
		thenScope := types.NewScope(types.LocalScope, scope)
		n.Then.Scope = thenScope
		defineBlock(log, n.Then, thenScope)
		if n.Else != nil {
			elseScope := types.NewScope(types.LocalScope, scope)
			n.Else.Scope = elseScope
			defineBlock(log, n.Else, elseScope)
		}

	case *ast.WhileStmt:
		bodyScope := types.NewScope(types.LocalScope, scope)
		n.Body.Scope = bodyScope
		defineBlock(log, n.Body, bodyScope)
	}
}
