// Package jsemit renders a fully type-checked Luma AST to JavaScript source.
// It is the minimal direct-to-string tree-walking back-end spec.md §2 calls
// for: no optimisation passes, one JS statement per Luma statement. Luma's
// own `as` casts are erased here — JavaScript has no runtime representation
// for them, and pass 4 has already proven every cast sound — and external
// blocks emit nothing, since their declarations describe values the host
// JavaScript environment already provides.
package jsemit

import (
	"fmt"
	"strings"

	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

const indentUnit = "  "

type emitter struct {
	sb     strings.Builder
	indent int
}

// finalName prefers sym's FinalName, set by the optional rename pass
// (semantic.RenameSymbols) to dodge a collision with a reserved JS word or
// global, falling back to name when sym is nil or was never renamed (the
// rename pass wasn't run, or this symbol didn't need mangling).
func finalName(sym *types.Symbol, name string) string {
	if sym != nil && sym.FinalName != "" {
		return sym.FinalName
	}
	return name
}

// Emit renders mod's top-level statements as a JavaScript program. mod must
// already have passed semantic.Compile — Emit does not re-check types and
// will panic on a tree with unresolved nodes (nil ComputedType fields are
// never read, but a nil Callee/Value/Object from a malformed AST is not
// guarded against).
func Emit(mod *ast.Module) string {
	e := &emitter{}
	e.statements(mod.Body)
	return e.sb.String()
}

func (e *emitter) writeIndent() { e.sb.WriteString(strings.Repeat(indentUnit, e.indent)) }

func (e *emitter) statements(b *ast.Block) {
	for _, stmt := range b.Statements {
		e.stmt(stmt)
	}
}

func (e *emitter) block(b *ast.Block) {
	e.sb.WriteString("{\n")
	e.indent++
	e.statements(b)
	e.indent--
	e.writeIndent()
	e.sb.WriteString("}")
}

func (e *emitter) stmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.ExternalStmt:
		return

	case *ast.ClassDef:
		e.writeIndent()
		e.sb.WriteString("class " + finalName(n.Symbol, n.Name) + " {\n")
		e.indent++
		for _, member := range n.Body.Statements {
			e.classMember(member)
		}
		e.indent--
		e.writeIndent()
		e.sb.WriteString("}\n")

	case *ast.FuncDef:
		e.writeIndent()
		e.funcDef(n, "function "+finalName(n.Symbol, n.Name))

	case *ast.VarDef:
		e.writeIndent()
		e.sb.WriteString("let " + finalName(n.Symbol, n.Name))
		if n.Value != nil {
			e.sb.WriteString(" = " + e.expr(n.Value))
		}
		e.sb.WriteString(";\n")

	case *ast.IfStmt:
		e.writeIndent()
		e.sb.WriteString("if (" + e.expr(n.Cond) + ") ")
		e.block(n.Then)
		if n.Else != nil {
			e.sb.WriteString(" else ")
			e.block(n.Else)
		}
		e.sb.WriteString("\n")

	case *ast.WhileStmt:
		e.writeIndent()
		e.sb.WriteString("while (" + e.expr(n.Cond) + ") ")
		e.block(n.Body)
		e.sb.WriteString("\n")

	case *ast.ReturnStmt:
		e.writeIndent()
		if n.Value == nil {
			e.sb.WriteString("return;\n")
			return
		}
		e.sb.WriteString("return " + e.expr(n.Value) + ";\n")

	case *ast.ExpressionStmt:
		e.writeIndent()
		e.sb.WriteString(e.expr(n.X) + ";\n")
	}
}

// classMember emits one ClassDef body statement as a JS class member: a
// field (class field syntax) or a method (shorthand, no `function` keyword).
func (e *emitter) classMember(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.VarDef:
		e.writeIndent()
		if n.IsStatic {
			e.sb.WriteString("static ")
		}
		e.sb.WriteString(finalName(n.Symbol, n.Name))
		if n.Value != nil {
			e.sb.WriteString(" = " + e.expr(n.Value))
		}
		e.sb.WriteString(";\n")

	case *ast.FuncDef:
		e.writeIndent()
		prefix := ""
		if n.IsStatic {
			prefix = "static "
		}
		e.funcDef(n, prefix+finalName(n.Symbol, n.Name))
	}
}

func (e *emitter) funcDef(n *ast.FuncDef, head string) {
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		names[i] = finalName(p.Symbol, p.Name)
	}
	e.sb.WriteString(head + "(" + strings.Join(names, ", ") + ") ")
	if n.Body == nil {
		e.sb.WriteString("{}\n")
		return
	}
	e.block(n.Body)
	e.sb.WriteString("\n")
}

func (e *emitter) expr(x ast.Expr) string {
	switch n := x.(type) {
	case *ast.Identifier:
		return finalName(n.Symbol, n.Name)
	case *ast.IntLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *ast.FloatLiteral:
		return fmt.Sprintf("%g", n.Value)
	case *ast.StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *ast.BoolLiteral:
		return fmt.Sprintf("%t", n.Value)
	case *ast.NullLiteral:
		return "null"
	case *ast.ThisExpr:
		return "this"
	case *ast.UnaryExpr:
		return n.Op.String() + e.expr(n.Operand)
	case *ast.BinaryExpr:
		return e.binary(n)
	case *ast.CallExpr:
		return e.call(n)
	case *ast.MemberExpr:
		op := "."
		if n.Safe {
			op = "?."
		}
		return e.expr(n.Object) + op + finalName(n.Symbol, n.Name)
	case *ast.IndexExpr:
		return e.expr(n.Object) + "[" + e.expr(n.Index) + "]"
	case *ast.CastExpr:
		// Casts are erased: JavaScript has no static type to convert to, and
		// pass 4 already proved the runtime value is compatible.
		return e.expr(n.Value)
	case *ast.ListExpr:
		items := make([]string, len(n.Items))
		for i, it := range n.Items {
			items[i] = e.expr(it)
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return ""
	}
}

func (e *emitter) binary(n *ast.BinaryExpr) string {
	if n.Op == token.ASSIGN {
		return e.expr(n.Left) + " = " + e.expr(n.Right)
	}
	return "(" + e.expr(n.Left) + " " + n.Op.String() + " " + e.expr(n.Right) + ")"
}

func (e *emitter) call(n *ast.CallExpr) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.expr(a)
	}
	joined := strings.Join(args, ", ")
	if n.IsCtor {
		return "new " + e.expr(n.Callee) + "(" + joined + ")"
	}
	return e.expr(n.Callee) + "(" + joined + ")"
}
