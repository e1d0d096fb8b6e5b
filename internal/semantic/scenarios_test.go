package semantic

import (
	"strings"
	"testing"

	"github.com/cwbudde/luma/internal/ast"
	"github.com/cwbudde/luma/internal/lexer"
	"github.com/cwbudde/luma/internal/parser"
	"github.com/cwbudde/luma/internal/types"
)

// compile parses src and runs the full six-pass pipeline over it, failing
// the test if parsing itself produced errors (the scenarios below are all
// syntactically valid Luma; a parse failure would mean the test source
// itself is wrong, not the thing under test).
func compile(t *testing.T, src string) (*ast.Module, *Log) {
	t.Helper()
	l := lexer.New("test.luma", src)
	p := parser.New(l)
	mod := p.ParseModule()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	log := NewLog()
	Compile(log, mod)
	return mod, log
}

// S1: two overloaded externals, called with an int then a float literal.
func TestScenarioS1OverloadSelection(t *testing.T) {
	mod, log := compile(t, "external { void print(int x) void print(float x) }\nvoid main() { print(1) print(1.0) }\n")
	if len(log.Errors()) != 0 {
		t.Fatalf("expected 0 errors, got %v", log.Errors())
	}
	main := mod.Body.Statements[1].(*ast.FuncDef)
	call1 := main.Body.Statements[0].(*ast.ExpressionStmt).X.(*ast.CallExpr)
	call2 := main.Body.Statements[1].(*ast.ExpressionStmt).X.(*ast.CallExpr)

	sym1 := call1.Callee.(*ast.Identifier).Symbol
	sym2 := call2.Callee.(*ast.Identifier).Symbol
	if sym1 == nil || sym2 == nil || sym1 == sym2 {
		t.Fatalf("expected the two calls to resolve to distinct overload members, got %#v and %#v", sym1, sym2)
	}
	if _, ok := call1.Args[0].(*ast.CastExpr); ok {
		t.Fatalf("expected no cast at the int call site, got %#v", call1.Args[0])
	}
	if _, ok := call2.Args[0].(*ast.CastExpr); ok {
		t.Fatalf("expected no cast at the float call site, got %#v", call2.Args[0])
	}
}

// S2: an int literal argument to a float parameter gets an implicit cast.
func TestScenarioS2ImplicitIntToFloatArgument(t *testing.T) {
	mod, log := compile(t, "external { void f(float x) }\nvoid main() { f(3) }\n")
	if len(log.Errors()) != 0 {
		t.Fatalf("expected 0 errors, got %v", log.Errors())
	}
	main := mod.Body.Statements[1].(*ast.FuncDef)
	call := main.Body.Statements[0].(*ast.ExpressionStmt).X.(*ast.CallExpr)
	cast, ok := call.Args[0].(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected argument wrapped in CastExpr, got %T", call.Args[0])
	}
	if cast.GetType() != types.FloatT {
		t.Fatalf("expected cast to float, got %s", cast.GetType())
	}
	if !cast.Implicit {
		t.Fatalf("expected the synthesised cast to be marked implicit")
	}
}

// S3: the narrowing design decision (SPEC_FULL.md §3) means a nullable
// dereference guarded by `if a != null` type-checks cleanly.
func TestScenarioS3NullableNarrowing(t *testing.T) {
	mod, log := compile(t, "class A { int x }\nvoid main() { A? a = null if a != null { int y = a.x } }\n")
	if len(log.Errors()) != 0 {
		t.Fatalf("expected 0 errors with narrowing implemented, got %v", log.Errors())
	}
	main := mod.Body.Statements[1].(*ast.FuncDef)
	ifStmt := main.Body.Statements[1].(*ast.IfStmt)
	innerVd := ifStmt.Then.Statements[0].(*ast.VarDef)
	if innerVd.Symbol.Type != types.IntT {
		t.Fatalf("expected y to be int, got %s", innerVd.Symbol.Type)
	}
}

// S4: a function redefined as a variable halts the pipeline after pass 2.
func TestScenarioS4Redefinition(t *testing.T) {
	mod, log := compile(t, "void f() {} int f\n")
	errs := log.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0], "redefinition of f in the same scope") {
		t.Fatalf("expected a redefinition message, got %q", errs[0])
	}
	vd := mod.Body.Statements[1].(*ast.VarDef)
	if vd.TypeExpr.GetType() != nil {
		t.Fatalf("expected the pipeline to halt before pass 3 typed the declaration")
	}
}

// S5: dead code after a return, and a missing return in a non-void function.
func TestScenarioS5DeadCodeAndMissingReturn(t *testing.T) {
	_, log := compile(t, "int main() { return 1 int x = 2 }\nint f() {}\n")
	warnings := log.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "dead code") {
		t.Fatalf("expected exactly 1 dead-code warning, got %v", warnings)
	}
	errs := log.Errors()
	if len(errs) != 1 || !strings.Contains(errs[0], "not all control paths return a value") {
		t.Fatalf("expected exactly 1 missing-return error, got %v", errs)
	}
}

// S6: a zero-argument call on a class name is a constructor call.
func TestScenarioS6ConstructorCall(t *testing.T) {
	mod, log := compile(t, "class V { int x }\nvoid main() { V v = V() }\n")
	if len(log.Errors()) != 0 {
		t.Fatalf("expected 0 errors, got %v", log.Errors())
	}
	main := mod.Body.Statements[1].(*ast.FuncDef)
	vd := main.Body.Statements[0].(*ast.VarDef)
	call := vd.Value.(*ast.CallExpr)
	if !call.IsCtor {
		t.Fatalf("expected IsCtor to be true")
	}
	if call.GetType() == nil || call.GetType().Kind != types.KindClass {
		t.Fatalf("expected computedType class(V), got %s", call.GetType())
	}
}

// I1: pass 2 leaves every Block scoped, every Def symbol-resolved, and
// folds a same-name function redefinition into one overloaded symbol.
func TestInvariantI1ScopesSymbolsAndOverloadFolding(t *testing.T) {
	mod, log := compile(t, "external { void print(int x) void print(string s) }\nvoid main() { print(1) }\n")
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors())
	}
	if mod.Body.Scope == nil {
		t.Fatalf("expected the module block to carry a scope")
	}
	sym, ok := mod.Body.Scope.DefinedHere("print")
	if !ok {
		t.Fatalf("expected 'print' to be defined at module scope")
	}
	if sym.Kind != types.OverloadedFunctionSymbol || len(sym.Overloads) != 2 {
		t.Fatalf("expected an overloaded-function symbol with 2 members, got %#v", sym)
	}
}

// I2: after symbol typing, every function/non-local-variable symbol has a
// concrete, non-meta, non-error type.
func TestInvariantI2SymbolTypesAreConcrete(t *testing.T) {
	mod, log := compile(t, "int count\nint add(int a, int b) { return a + b }\n")
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors())
	}
	countVd := mod.Body.Statements[0].(*ast.VarDef)
	if countVd.Symbol.Type != types.IntT {
		t.Fatalf("expected count to be int, got %s", countVd.Symbol.Type)
	}
	addFd := mod.Body.Statements[1].(*ast.FuncDef)
	ft := addFd.Symbol.Type
	if ft.Kind != types.KindFunc || !types.Equal(ft.Ret, types.IntT) || len(ft.Args) != 2 {
		t.Fatalf("expected add to be func(int,[int,int]), got %s", ft)
	}
}

// I3: after compute-types, no resolved call site's callee keeps the
// overloaded marker type.
func TestInvariantI3NoOverloadedTypeSurvives(t *testing.T) {
	mod, log := compile(t, "external { void log(int x) void log(string s) }\nvoid main() { log(1) }\n")
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors())
	}
	main := mod.Body.Statements[1].(*ast.FuncDef)
	call := main.Body.Statements[0].(*ast.ExpressionStmt).X.(*ast.CallExpr)
	callee := call.Callee.(*ast.Identifier)
	if types.IsOverloaded(callee.GetType()) {
		t.Fatalf("expected the callee's resolved type not to be overloaded")
	}
	if callee.Symbol.Kind != types.FunctionSymbol {
		t.Fatalf("expected the callee's symbol to resolve to one specific overload member, got kind %v", callee.Symbol.Kind)
	}
}

// I5: every VarDef outside external blocks and parameter lists has a
// non-nil initialiser after pass 6, one per primitive, class, and nullable
// kind.
func TestInvariantI5DefaultInitialisation(t *testing.T) {
	mod, log := compile(t, "bool b\nint n\nfloat f\nstring s\nclass A { int x }\nA? a\n")
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors())
	}
	b := mod.Body.Statements[0].(*ast.VarDef)
	if lit, ok := b.Value.(*ast.BoolLiteral); !ok || lit.Value != false {
		t.Fatalf("expected bool default false, got %#v", b.Value)
	}
	n := mod.Body.Statements[1].(*ast.VarDef)
	if lit, ok := n.Value.(*ast.IntLiteral); !ok || lit.Value != 0 {
		t.Fatalf("expected int default 0, got %#v", n.Value)
	}
	fl := mod.Body.Statements[2].(*ast.VarDef)
	if lit, ok := fl.Value.(*ast.FloatLiteral); !ok || lit.Value != 0 {
		t.Fatalf("expected float default 0.0, got %#v", fl.Value)
	}
	s := mod.Body.Statements[3].(*ast.VarDef)
	if lit, ok := s.Value.(*ast.StringLiteral); !ok || lit.Value != "" {
		t.Fatalf("expected string default \"\", got %#v", s.Value)
	}
	a := mod.Body.Statements[5].(*ast.VarDef)
	if _, ok := a.Value.(*ast.NullLiteral); !ok {
		t.Fatalf("expected nullable default null, got %#v", a.Value)
	}
}

// I6: compiling the same source twice produces identical diagnostics.
func TestInvariantI6RoundTripDiagnostics(t *testing.T) {
	src := "class A { int x }\nvoid main() { A? a = null if a != null { int y = a.x } }\n"
	_, log1 := compile(t, src)
	_, log2 := compile(t, src)
	if strings.Join(log1.Errors(), "|") != strings.Join(log2.Errors(), "|") {
		t.Fatalf("round-trip mismatch in errors: %v vs %v", log1.Errors(), log2.Errors())
	}
	if strings.Join(log1.Warnings(), "|") != strings.Join(log2.Warnings(), "|") {
		t.Fatalf("round-trip mismatch in warnings: %v vs %v", log1.Warnings(), log2.Warnings())
	}
}

// I7: two independent type errors in two unrelated functions are both
// reported — one does not suppress or hide the other.
func TestInvariantI7IndependentErrorsAllReported(t *testing.T) {
	_, log := compile(t, "void f() { bool b = 1 }\nvoid g() { bool c = 2 }\n")
	if len(log.Errors()) != 2 {
		t.Fatalf("expected 2 independent errors, got %v", log.Errors())
	}
}
