package semantic

import "github.com/cwbudde/luma/internal/ast"

// structCtx tracks which of the three nesting contexts a statement is
// reached through, matching the per-context allowed-statement table: class
// bodies allow class/variable/function; function bodies allow
// variable/expression/if/return/while; external blocks allow
// class/variable/function with the uninitialised/no-body constraints below.
type structCtx struct {
	inClass    bool
	inExternal bool
	inFunction bool
}

func contextName(ctx structCtx) string {
	switch {
	case ctx.inFunction:
		return "a function body"
	case ctx.inExternal:
		return "an external block"
	case ctx.inClass:
		return "a class body"
	default:
		return "module scope"
	}
}

// structuralCheck is pass 1. It collects every violation of the
// per-context statement table non-fatally, so a single malformed module
// body reports all of its structural problems together rather than one at
// a time across repeated compiles.
func structuralCheck(log *Log, mod *ast.Module) bool {
	before := log.ErrorCount()
	checkBlock(log, mod.Body, structCtx{}, true)
	return log.ErrorCount() == before
}

func checkBlock(log *Log, block *ast.Block, ctx structCtx, isModuleTop bool) {
	for _, stmt := range block.Statements {
		checkStmt(log, stmt, ctx, isModuleTop)
	}
}

func checkStmt(log *Log, stmt ast.Stmt, ctx structCtx, isModuleTop bool) {
	switch n := stmt.(type) {
	case *ast.ExternalStmt:
		if !isModuleTop {
			log.Errorf(n.Pos(), "an external block is only allowed at module scope")
		}
		child := structCtx{inExternal: true}
		checkBlock(log, n.Body, child, false)

	case *ast.ClassDef:
		if !(isModuleTop || ctx.inClass || ctx.inExternal) {
			log.Errorf(n.Pos(), "a class definition is not allowed inside %s", contextName(ctx))
		}
		child := ctx
		child.inClass = true
		child.inFunction = false
		checkBlock(log, n.Body, child, false)

	case *ast.FuncDef:
		if !(isModuleTop || ctx.inClass || ctx.inExternal) {
			log.Errorf(n.Pos(), "a function definition is not allowed inside %s", contextName(ctx))
		}
		if ctx.inExternal {
			if n.Body != nil {
				log.Errorf(n.Pos(), "function '%s' is declared in an external block and must not have a body", n.Name)
			}
		} else if n.Body == nil {
			log.Errorf(n.Pos(), "function '%s' must have a body", n.Name)
		}
		if n.Body != nil {
			child := ctx
			child.inFunction = true
			child.inClass = false
			checkBlock(log, n.Body, child, false)
		}

	case *ast.VarDef:
		if !(isModuleTop || ctx.inClass || ctx.inExternal || ctx.inFunction) {
			log.Errorf(n.Pos(), "a variable definition is not allowed inside %s", contextName(ctx))
		}
		if (isModuleTop || ctx.inExternal) && n.Value != nil {
			log.Errorf(n.Pos(), "variable '%s' may not be initialised here", n.Name)
		}

	case *ast.IfStmt:
		if !ctx.inFunction {
			log.Errorf(n.Pos(), "an if statement is only allowed inside a function body")
		}
		checkBlock(log, n.Then, ctx, false)
		if n.Else != nil {
			checkBlock(log, n.Else, ctx, false)
		}

	case *ast.WhileStmt:
		if !ctx.inFunction {
			log.Errorf(n.Pos(), "a while statement is only allowed inside a function body")
		}
		checkBlock(log, n.Body, ctx, false)

	case *ast.ReturnStmt:
		if !ctx.inFunction {
			log.Errorf(n.Pos(), "a return statement is only allowed inside a function body")
		}

	case *ast.ExpressionStmt:
		if !ctx.inFunction {
			log.Errorf(n.Pos(), "an expression statement is only allowed inside a function body")
		}
	}
}
