package semantic

import (
	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/types"
)

// defaultInitialize is pass 6, the last mandatory pass. It synthesises a
// default-value literal for every VarDef that reached this point with no
// initialiser — module-, class-, and function-scoped alike — outside
// external blocks and function argument lists (parameters use Param, not
// VarDef, so they are never touched here). It never reports a diagnostic:
// by pass 6 every remaining uninitialised VarDef already has a resolved
// Symbol.Type from pass 3 or pass 4.
func defaultInitialize(log *Log, mod *ast.Module) bool {
	walkDefaultInit(mod.Body, false)
	return true
}

func walkDefaultInit(block *ast.Block, insideExternal bool) {
	for _, stmt := range block.Statements {
		switch n := stmt.(type) {
		case *ast.ClassDef:
			walkDefaultInit(n.Body, insideExternal)
		case *ast.ExternalStmt:
			walkDefaultInit(n.Body, true)
		case *ast.FuncDef:
			if n.Body != nil {
				walkDefaultInit(n.Body, false)
			}
		case *ast.VarDef:
			if insideExternal {
				continue
			}
			if n.Value == nil {
				n.Value = defaultLiteralFor(n)
			}
		case *ast.IfStmt:
			walkDefaultInit(n.Then, insideExternal)
			if n.Else != nil {
				walkDefaultInit(n.Else, insideExternal)
			}
		case *ast.WhileStmt:
			walkDefaultInit(n.Body, insideExternal)
		}
	}
}

func defaultLiteralFor(n *ast.VarDef) ast.Expr {
	pos := n.TokPos
	var declared *types.Type
	if n.Symbol != nil {
		declared = n.Symbol.Type
	}
	switch {
	case types.IsBool(declared):
		lit := &ast.BoolLiteral{TokPos: pos, Value: false}
		lit.SetType(declared)
		return lit
	case declared != nil && declared.Kind == types.KindPrim && declared.Prim == types.Int:
		lit := &ast.IntLiteral{TokPos: pos, Value: 0}
		lit.SetType(declared)
		return lit
	case declared != nil && declared.Kind == types.KindPrim && declared.Prim == types.Float:
		lit := &ast.FloatLiteral{TokPos: pos, Value: 0}
		lit.SetType(declared)
		return lit
	case types.IsString(declared):
		lit := &ast.StringLiteral{TokPos: pos, Value: ""}
		lit.SetType(declared)
		return lit
	default:
		lit := &ast.NullLiteral{TokPos: pos}
		lit.SetType(declared)
		return lit
	}
}
