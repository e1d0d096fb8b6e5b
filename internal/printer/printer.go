// Package printer renders a Luma AST back to indented source text. It is
// the external "back-end" collaborator spec.md's §2 data model assumes
// exists to consume the decorated tree after the six passes run; the CLI's
// --print-ast flag and the HTTP demo's <Tree> field both call Print.
//
// Every node already carries a single-line String() method (see
// internal/ast) good enough for diagnostics and test assertions. Print adds
// the one thing String() doesn't: real multi-line indentation for nested
// blocks, the way a source-code pretty printer needs to.
package printer

import (
	"strings"

	"github.com/cwbudde/luma/internal/ast"
)

const indentUnit = "    "

type printer struct {
	sb     strings.Builder
	indent int
}

// Print renders mod as indented Luma source text.
func Print(mod *ast.Module) string {
	p := &printer{}
	p.statements(mod.Body)
	return p.sb.String()
}

func (p *printer) writeIndent() {
	p.sb.WriteString(strings.Repeat(indentUnit, p.indent))
}

func (p *printer) statements(b *ast.Block) {
	for _, stmt := range b.Statements {
		p.stmt(stmt)
	}
}

func (p *printer) block(b *ast.Block) {
	p.sb.WriteString("{\n")
	p.indent++
	p.statements(b)
	p.indent--
	p.writeIndent()
	p.sb.WriteString("}")
}

func (p *printer) stmt(stmt ast.Stmt) {
	p.writeIndent()
	switch n := stmt.(type) {
	case *ast.ClassDef:
		p.sb.WriteString("class " + n.Name + " ")
		p.block(n.Body)
		p.sb.WriteString("\n")

	case *ast.FuncDef:
		p.funcDef(n)

	case *ast.ExternalStmt:
		p.sb.WriteString("external ")
		p.block(n.Body)
		p.sb.WriteString("\n")

	case *ast.IfStmt:
		p.sb.WriteString("if " + n.Cond.String() + " ")
		p.block(n.Then)
		if n.Else != nil {
			p.sb.WriteString(" else ")
			p.block(n.Else)
		}
		p.sb.WriteString("\n")

	case *ast.WhileStmt:
		p.sb.WriteString("while " + n.Cond.String() + " ")
		p.block(n.Body)
		p.sb.WriteString("\n")

	default:
		// VarDef, ReturnStmt, ExpressionStmt: already single-line.
		p.sb.WriteString(stmt.String() + "\n")
	}
}

func (p *printer) funcDef(n *ast.FuncDef) {
	names := make([]string, len(n.Params))
	for i, param := range n.Params {
		names[i] = param.TypeExpr.String() + " " + param.Name
	}
	head := n.ReturnType.String() + " " + n.Name + "(" + strings.Join(names, ", ") + ")"
	p.sb.WriteString(head)
	if n.Body == nil {
		p.sb.WriteString("\n")
		return
	}
	p.sb.WriteString(" ")
	p.block(n.Body)
	p.sb.WriteString("\n")
}
