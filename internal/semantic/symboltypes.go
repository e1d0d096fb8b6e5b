package semantic

import (
	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/types"
)

// computeSymbolTypes is pass 3. For every VarDef not nested inside a
// FuncDef, and for every FuncDef's return type and parameter types, it
// evaluates the declared type-expression and fills in the Symbol.Type that
// pass 2 left at its ErrorT default. Function-local variables are left
// untouched here; pass 4 fills their types in as it meets their
// declarations (inferred ones need the initialiser's type, which isn't
// known until then).
func computeSymbolTypes(log *Log, mod *ast.Module) bool {
	before := log.ErrorCount()
	walkSymbolTypesBlock(log, mod.Body, false)
	return log.ErrorCount() == before
}

func walkSymbolTypesBlock(log *Log, block *ast.Block, insideFunc bool) {
	scope := block.Scope
	for _, stmt := range block.Statements {
		switch n := stmt.(type) {
		case *ast.ClassDef:
			walkSymbolTypesBlock(log, n.Body, false)

		case *ast.ExternalStmt:
			walkSymbolTypesBlock(log, n.Body, insideFunc)

		case *ast.FuncDef:
			ret := evalTypeExpr(log, scope, n.ReturnType, true)
			args := make([]*types.Type, len(n.Params))
			for i, p := range n.Params {
				args[i] = evalTypeExpr(log, scope, p.TypeExpr, false)
				if p.Symbol != nil {
					p.Symbol.Type = args[i]
				}
			}
			if n.Symbol != nil {
				n.Symbol.Type = types.NewFunc(ret, args)
			}
			if n.Body != nil {
				walkSymbolTypesBlock(log, n.Body, true)
			}

		case *ast.VarDef:
			if insideFunc {
				continue
			}
			if n.TypeExpr != nil {
				t := evalTypeExpr(log, scope, n.TypeExpr, false)
				if n.Symbol != nil {
					n.Symbol.Type = t
				}
			}

		case *ast.IfStmt:
			walkSymbolTypesBlock(log, n.Then, insideFunc)
			if n.Else != nil {
				walkSymbolTypesBlock(log, n.Else, insideFunc)
			}

		case *ast.WhileStmt:
			walkSymbolTypesBlock(log, n.Body, insideFunc)
		}
	}
}
