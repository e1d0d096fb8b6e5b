package semantic

import (
	"strings"
	"unicode"

	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/types"
)

// RenameOptions configures the optional rename pass (pass 7).
type RenameOptions struct {
	// Reserved is the set of identifiers the target backend can't bind —
	// for the JavaScript emitter, its reserved words and globals.
	Reserved map[string]bool
	// RenameOverloads additionally synthesises a distinct FinalName per
	// overload member, since the backend has no overloading of its own.
	RenameOverloads bool
}

// RenameSymbols walks every scope reachable from mod and assigns each
// symbol a FinalName: its own Name, prefixed with underscores until it no
// longer collides with a reserved word. It is idempotent — FinalName is
// always recomputed from Name, never from a prior FinalName — so visiting
// a scope more than once (external blocks share their parent's scope with
// statements that may be reached through more than one path) never
// compounds the prefix.
func RenameSymbols(mod *ast.Module, opts RenameOptions) {
	renameBlock(mod.Body, opts)
}

func renameBlock(block *ast.Block, opts RenameOptions) {
	renameScope(block.Scope, opts)
	for _, stmt := range block.Statements {
		switch n := stmt.(type) {
		case *ast.ClassDef:
			renameBlock(n.Body, opts)
		case *ast.FuncDef:
			if n.Body != nil {
				renameBlock(n.Body, opts)
			}
		case *ast.ExternalStmt:
			renameBlock(n.Body, opts)
		case *ast.IfStmt:
			renameBlock(n.Then, opts)
			if n.Else != nil {
				renameBlock(n.Else, opts)
			}
		case *ast.WhileStmt:
			renameBlock(n.Body, opts)
		}
	}
}

func renameScope(scope *types.Scope, opts RenameOptions) {
	if scope == nil {
		return
	}
	for _, sym := range scope.Symbols() {
		base := renameSymbol(sym, opts)
		if sym.Kind == types.OverloadedFunctionSymbol && opts.RenameOverloads {
			for _, member := range sym.Overloads {
				member.FinalName = base + mangleArgs(member)
			}
		}
	}
}

func renameSymbol(sym *types.Symbol, opts RenameOptions) string {
	name := sym.Name
	for opts.Reserved[name] {
		name = "_" + name
	}
	sym.FinalName = name
	return name
}

// mangleArgs renders a disambiguating suffix from an overload member's
// parameter types: each type's surface name, title-cased and concatenated.
func mangleArgs(member *types.Symbol) string {
	if member.Type == nil || member.Type.Kind != types.KindFunc {
		return ""
	}
	var sb strings.Builder
	for _, arg := range member.Type.Args {
		sb.WriteString(titleCase(arg.String()))
	}
	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
