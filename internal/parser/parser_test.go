package parser

import (
	"testing"

	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/lexer"
	"github.com/cwbudde/luma/internal/token"
)

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	l := lexer.New("test.luma", src)
	p := New(l)
	mod := p.ParseModule()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return mod
}

// S1: two consecutive call-expression statements must not be misread as a
// type-led declaration.
func TestBackToBackCallStatements(t *testing.T) {
	mod := parseModule(t, `external { void print(int x) void print(float x) } void main() { print(1) print(1.0) }`)
	if len(mod.Body.Statements) != 2 {
		t.Fatalf("expected 2 top-level statements, got %d", len(mod.Body.Statements))
	}
	main, ok := mod.Body.Statements[1].(*ast.FuncDef)
	if !ok {
		t.Fatalf("expected second statement to be a FuncDef, got %T", mod.Body.Statements[1])
	}
	if len(main.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements in main body, got %d", len(main.Body.Statements))
	}
	for i, stmt := range main.Body.Statements {
		es, ok := stmt.(*ast.ExpressionStmt)
		if !ok {
			t.Fatalf("statement %d: expected ExpressionStmt, got %T", i, stmt)
		}
		if _, ok := es.X.(*ast.CallExpr); !ok {
			t.Fatalf("statement %d: expected CallExpr, got %T", i, es.X)
		}
	}
}

// S3: nullable-suffix type declarations and member-access expression
// statements after a narrowing check.
func TestNullableVarDeclAndMemberAccess(t *testing.T) {
	mod := parseModule(t, `class A { int x } void main() { A? a = null if a != null { int y = a.x } }`)
	main := mod.Body.Statements[1].(*ast.FuncDef)
	vd, ok := main.Body.Statements[0].(*ast.VarDef)
	if !ok {
		t.Fatalf("expected VarDef, got %T", main.Body.Statements[0])
	}
	nt, ok := vd.TypeExpr.(*ast.NullableTypeExpr)
	if !ok {
		t.Fatalf("expected NullableTypeExpr, got %T", vd.TypeExpr)
	}
	if id, ok := nt.Inner.(*ast.Identifier); !ok || id.Name != "A" {
		t.Fatalf("expected nullable inner type A, got %#v", nt.Inner)
	}
	ifStmt, ok := main.Body.Statements[1].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %T", main.Body.Statements[1])
	}
	innerVd, ok := ifStmt.Then.Statements[0].(*ast.VarDef)
	if !ok {
		t.Fatalf("expected inner VarDef, got %T", ifStmt.Then.Statements[0])
	}
	member, ok := innerVd.Value.(*ast.MemberExpr)
	if !ok {
		t.Fatalf("expected MemberExpr initializer, got %T", innerVd.Value)
	}
	if member.Name != "x" || member.Safe {
		t.Fatalf("expected plain member access to x, got %#v", member)
	}
}

// S6: class-typed variable declaration initialised by a constructor call.
func TestClassTypedVarDeclWithConstructorCall(t *testing.T) {
	mod := parseModule(t, `class V { int n } void main() { V v = V() }`)
	main := mod.Body.Statements[1].(*ast.FuncDef)
	vd, ok := main.Body.Statements[0].(*ast.VarDef)
	if !ok {
		t.Fatalf("expected VarDef, got %T", main.Body.Statements[0])
	}
	if id, ok := vd.TypeExpr.(*ast.Identifier); !ok || id.Name != "V" {
		t.Fatalf("expected type V, got %#v", vd.TypeExpr)
	}
	call, ok := vd.Value.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr initializer, got %T", vd.Value)
	}
	if callee, ok := call.Callee.(*ast.Identifier); !ok || callee.Name != "V" {
		t.Fatalf("expected callee V, got %#v", call.Callee)
	}
}

// Bare assignment to a member must parse as an expression statement, not a
// declaration.
func TestMemberAssignmentExpressionStatement(t *testing.T) {
	mod := parseModule(t, `class A { int x } void main() { A a = A() a.x = 5 }`)
	main := mod.Body.Statements[1].(*ast.FuncDef)
	if len(main.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(main.Body.Statements))
	}
	es, ok := main.Body.Statements[1].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected ExpressionStmt, got %T", main.Body.Statements[1])
	}
	assign, ok := es.X.(*ast.BinaryExpr)
	if !ok || assign.Op != token.ASSIGN {
		t.Fatalf("expected assignment BinaryExpr, got %#v", es.X)
	}
	if _, ok := assign.Left.(*ast.MemberExpr); !ok {
		t.Fatalf("expected member-access left-hand side, got %T", assign.Left)
	}
}

func TestInferredVarDecl(t *testing.T) {
	mod := parseModule(t, `var x = 1 + 2`)
	vd, ok := mod.Body.Statements[0].(*ast.VarDef)
	if !ok || !vd.IsInferred {
		t.Fatalf("expected inferred VarDef, got %#v", mod.Body.Statements[0])
	}
}

func TestListAndFunctionTypeParams(t *testing.T) {
	mod := parseModule(t, `list<int> xs function<int, string> f`)
	vd, ok := mod.Body.Statements[0].(*ast.VarDef)
	if !ok {
		t.Fatalf("expected VarDef, got %T", mod.Body.Statements[0])
	}
	pe, ok := vd.TypeExpr.(*ast.ParamExpr)
	if !ok || pe.Base != "list" || len(pe.TypeParams) != 1 {
		t.Fatalf("expected list<int> ParamExpr, got %#v", vd.TypeExpr)
	}
	vd2, ok := mod.Body.Statements[1].(*ast.VarDef)
	if !ok {
		t.Fatalf("expected second VarDef, got %T", mod.Body.Statements[1])
	}
	pe2, ok := vd2.TypeExpr.(*ast.ParamExpr)
	if !ok || pe2.Base != "function" || len(pe2.TypeParams) != 2 {
		t.Fatalf("expected function<int,string> ParamExpr, got %#v", vd2.TypeExpr)
	}
}

func TestCastToNullableType(t *testing.T) {
	mod := parseModule(t, `var x = 1 as int?`)
	vd := mod.Body.Statements[0].(*ast.VarDef)
	cast, ok := vd.Value.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected CastExpr, got %T", vd.Value)
	}
	if _, ok := cast.TargetType.(*ast.NullableTypeExpr); !ok {
		t.Fatalf("expected nullable target type, got %#v", cast.TargetType)
	}
}

func TestIfElseIfChain(t *testing.T) {
	mod := parseModule(t, `void main() { if true { } else if false { } else { } }`)
	main := mod.Body.Statements[0].(*ast.FuncDef)
	ifStmt := main.Body.Statements[0].(*ast.IfStmt)
	if ifStmt.Else == nil || len(ifStmt.Else.Statements) != 1 {
		t.Fatalf("expected else-if wrapped in a single-statement block")
	}
	if _, ok := ifStmt.Else.Statements[0].(*ast.IfStmt); !ok {
		t.Fatalf("expected else branch to hold a nested IfStmt, got %T", ifStmt.Else.Statements[0])
	}
}

func TestWhileLoopAndReturn(t *testing.T) {
	mod := parseModule(t, `int main() { while true { return 1 } return 0 }`)
	main := mod.Body.Statements[0].(*ast.FuncDef)
	ws, ok := main.Body.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", main.Body.Statements[0])
	}
	if _, ok := ws.Body.Statements[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("expected ReturnStmt inside while body, got %T", ws.Body.Statements[0])
	}
	ret, ok := main.Body.Statements[1].(*ast.ReturnStmt)
	if !ok || ret.Value == nil {
		t.Fatalf("expected trailing ReturnStmt with value, got %#v", main.Body.Statements[1])
	}
}

func TestListLiteral(t *testing.T) {
	mod := parseModule(t, `list<int> xs = [1, 2, 3]`)
	vd := mod.Body.Statements[0].(*ast.VarDef)
	lit, ok := vd.Value.(*ast.ListExpr)
	if !ok || len(lit.Items) != 3 {
		t.Fatalf("expected 3-item ListExpr, got %#v", vd.Value)
	}
}

func TestExternalBlockWithOverloadedDeclarations(t *testing.T) {
	mod := parseModule(t, `external { void print(int x) void print(string s) }`)
	ext, ok := mod.Body.Statements[0].(*ast.ExternalStmt)
	if !ok {
		t.Fatalf("expected ExternalStmt, got %T", mod.Body.Statements[0])
	}
	if len(ext.Body.Statements) != 2 {
		t.Fatalf("expected 2 declarations inside external block, got %d", len(ext.Body.Statements))
	}
}

func TestStaticMember(t *testing.T) {
	mod := parseModule(t, `class A { static int count static int next() { return count } }`)
	cd := mod.Body.Statements[0].(*ast.ClassDef)
	vd, ok := cd.Body.Statements[0].(*ast.VarDef)
	if !ok || !vd.IsStatic {
		t.Fatalf("expected static VarDef, got %#v", cd.Body.Statements[0])
	}
	fd, ok := cd.Body.Statements[1].(*ast.FuncDef)
	if !ok || !fd.IsStatic {
		t.Fatalf("expected static FuncDef, got %#v", cd.Body.Statements[1])
	}
}
