package semantic

import (
	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

// flowState is the per-block slice of flow-analysis state that an if's two
// branches need their own copy of before merging back into their parent.
type flowState struct {
	didReturn      bool
	warnedDeadCode bool
}

// flowAnalyzer is the per-function use-before-definition tracker: which
// local symbols have been defined so far in textual order, and which
// identifier references ran ahead of their VarDef and are waiting to be
// flagged once it's reached (or never, if the function ends first, which
// can't happen for a reference to a symbol declared in the same function).
type flowAnalyzer struct {
	log           *Log
	defined       map[*types.Symbol]bool
	usesBeforeDef map[*types.Symbol][]token.Position
}

// flowValidate is pass 5. It checks two things per function body: that
// every path through a non-void function ends in a return statement, and
// that no local variable is read before its VarDef runs. It also flags the
// first unreachable statement following a return as dead code.
func flowValidate(log *Log, mod *ast.Module) bool {
	before := log.ErrorCount()
	walkFlowBlock(log, mod.Body)
	return log.ErrorCount() == before
}

func walkFlowBlock(log *Log, block *ast.Block) {
	for _, stmt := range block.Statements {
		switch n := stmt.(type) {
		case *ast.ClassDef:
			walkFlowBlock(log, n.Body)
		case *ast.ExternalStmt:
			walkFlowBlock(log, n.Body)
		case *ast.FuncDef:
			walkFlowFunc(log, n)
		}
	}
}

func walkFlowFunc(log *Log, n *ast.FuncDef) {
	if n.Body == nil {
		return
	}
	fa := &flowAnalyzer{log: log, defined: map[*types.Symbol]bool{}, usesBeforeDef: map[*types.Symbol][]token.Position{}}
	for _, p := range n.Params {
		if p.Symbol != nil {
			fa.defined[p.Symbol] = true
		}
	}
	state := &flowState{}
	fa.walkBody(n.Body, state)

	retType := types.Void
	if n.Symbol != nil && n.Symbol.Type != nil {
		retType = n.Symbol.Type.Ret
	}
	if !types.Equal(retType, types.Void) && !types.IsError(retType) && !state.didReturn {
		log.Errorf(n.Pos(), "not all control paths return a value")
	}
}

func (fa *flowAnalyzer) walkBody(block *ast.Block, state *flowState) {
	for _, stmt := range block.Statements {
		if state.didReturn && !state.warnedDeadCode {
			fa.log.Warnf(stmt.Pos(), "dead code")
			state.warnedDeadCode = true
		}
		fa.walkFlowStmt(stmt, state)
	}
}

func (fa *flowAnalyzer) walkFlowStmt(stmt ast.Stmt, state *flowState) {
	switch n := stmt.(type) {
	case *ast.VarDef:
		fa.visitExprForUses(n.Value)
		if sym := n.Symbol; sym != nil {
			if uses, ok := fa.usesBeforeDef[sym]; ok {
				for _, pos := range uses {
					fa.log.Errorf(pos, "use of '%s' before its definition", n.Name)
				}
				delete(fa.usesBeforeDef, sym)
			}
			fa.defined[sym] = true
		}

	case *ast.ExpressionStmt:
		fa.visitExprForUses(n.X)

	case *ast.ReturnStmt:
		if n.Value != nil {
			fa.visitExprForUses(n.Value)
		}
		state.didReturn = true

	case *ast.IfStmt:
		fa.visitExprForUses(n.Cond)
		thenState := &flowState{}
		fa.walkBody(n.Then, thenState)
		bothReturn := thenState.didReturn
		if n.Else != nil {
			elseState := &flowState{}
			fa.walkBody(n.Else, elseState)
			bothReturn = bothReturn && elseState.didReturn
		} else {
			bothReturn = false
		}
		if bothReturn {
			state.didReturn = true
		}

	case *ast.WhileStmt:
		fa.visitExprForUses(n.Cond)
		innerState := &flowState{}
		fa.walkBody(n.Body, innerState)
	}
}

func (fa *flowAnalyzer) visitExprForUses(e ast.Expr) {
	switch n := e.(type) {
	case nil:
		return
	case *ast.Identifier:
		if sym := n.Symbol; sym != nil && sym.Kind == types.VariableSymbol && !fa.defined[sym] {
			fa.usesBeforeDef[sym] = append(fa.usesBeforeDef[sym], n.Pos())
		}
	case *ast.UnaryExpr:
		fa.visitExprForUses(n.Operand)
	case *ast.BinaryExpr:
		fa.visitExprForUses(n.Left)
		fa.visitExprForUses(n.Right)
	case *ast.CallExpr:
		fa.visitExprForUses(n.Callee)
		for _, arg := range n.Args {
			fa.visitExprForUses(arg)
		}
	case *ast.MemberExpr:
		fa.visitExprForUses(n.Object)
	case *ast.IndexExpr:
		fa.visitExprForUses(n.Object)
		fa.visitExprForUses(n.Index)
	case *ast.CastExpr:
		fa.visitExprForUses(n.Value)
	case *ast.ListExpr:
		for _, it := range n.Items {
			fa.visitExprForUses(it)
		}
	}
}
