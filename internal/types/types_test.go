package types

import "testing"

type fakeClassDef struct{ name string }

func (f *fakeClassDef) ClassName() string  { return f.name }
func (f *fakeClassDef) ClassScope() *Scope { return nil }

func TestNullableCollapsesDoubleNullable(t *testing.T) {
	n := NewNullable(NewNullable(IntT))
	if n.Kind != KindNullable || n.Elem != IntT {
		t.Fatalf("expected nullable(int), got %s", n)
	}
}

func TestEqualStructural(t *testing.T) {
	a := NewClass(&fakeClassDef{"A"})
	b := NewClass(&fakeClassDef{"A"})
	if !Equal(a, b) {
		t.Errorf("expected class(A) == class(A)")
	}
	if Equal(a, NewClass(&fakeClassDef{"B"})) {
		t.Errorf("expected class(A) != class(B)")
	}
}

func TestOverloadedAndErrorNeverEqual(t *testing.T) {
	o1 := NewOverloaded(nil)
	o2 := NewOverloaded(nil)
	if Equal(o1, o1) || Equal(o1, o2) {
		t.Errorf("overloaded must never equal anything, including itself")
	}
	if Equal(ErrorT, ErrorT) {
		t.Errorf("error must never equal anything, including itself")
	}
}

func TestCanAssignIntToFloat(t *testing.T) {
	ok, needsCast := CanAssign(IntT, FloatT)
	if !ok || !needsCast {
		t.Errorf("expected int->float to be an implicit, cast-needing conversion")
	}
}

func TestCanAssignFloatToIntRejected(t *testing.T) {
	ok, _ := CanAssign(FloatT, IntT)
	if ok {
		t.Errorf("float->int must not be implicit")
	}
}

func TestCanAssignToNullable(t *testing.T) {
	nt := NewNullable(IntT)
	if ok, _ := CanAssign(NullT, nt); !ok {
		t.Errorf("null should assign to nullable(int)")
	}
	if ok, _ := CanAssign(IntT, nt); !ok {
		t.Errorf("int should assign to nullable(int)")
	}
	if ok, _ := CanAssign(IntT, NewNullable(FloatT)); !ok {
		t.Errorf("int should transitively assign to nullable(float) via int->float")
	}
}

func TestCanCastNumericPair(t *testing.T) {
	if !CanCast(FloatT, IntT) {
		t.Errorf("expected float<->int to be castable")
	}
}

func TestErrorAbsorbsAssignability(t *testing.T) {
	if ok, needsCast := CanAssign(ErrorT, BoolT); !ok || needsCast {
		t.Errorf("error must silently assign without cast to suppress cascades")
	}
}

func TestIsCompletePartialList(t *testing.T) {
	partial := NewList(nil)
	if IsComplete(partial) {
		t.Errorf("list(None) must not be complete")
	}
	if !IsComplete(NewList(IntT)) {
		t.Errorf("list(int) must be complete")
	}
}

func TestScopeDefineFoldsOverloads(t *testing.T) {
	scope := NewScope(ModuleScope, nil)
	f1 := NewSymbol("print", FunctionSymbol, nil)
	f1.Type = NewFunc(Void, []*Type{IntT})
	res, sym := scope.Define(f1)
	if res != Inserted {
		t.Fatalf("expected first insert to be Inserted, got %v", res)
	}

	f2 := NewSymbol("print", FunctionSymbol, nil)
	f2.Type = NewFunc(Void, []*Type{FloatT})
	res2, sym2 := scope.Define(f2)
	if res2 != FoldedIntoOverload {
		t.Fatalf("expected fold into overload, got %v", res2)
	}
	if sym2.Kind != OverloadedFunctionSymbol || len(sym2.Overloads) != 2 {
		t.Fatalf("expected overloaded symbol with 2 members, got %+v", sym2)
	}
	_ = sym

	f3 := NewSymbol("print", FunctionSymbol, nil)
	f3.Type = NewFunc(Void, []*Type{StringT})
	res3, sym3 := scope.Define(f3)
	if res3 != AppendedToOverload || len(sym3.Overloads) != 3 {
		t.Fatalf("expected append to overload set of 3, got %v %+v", res3, sym3)
	}
}

func TestScopeDefineRedefinition(t *testing.T) {
	scope := NewScope(ModuleScope, nil)
	scope.Define(NewSymbol("x", VariableSymbol, nil))
	res, _ := scope.Define(NewSymbol("x", VariableSymbol, nil))
	if res != Redefinition {
		t.Fatalf("expected redefinition, got %v", res)
	}
}

func TestScopeLookupNormalSkipsClassScope(t *testing.T) {
	module := NewScope(ModuleScope, nil)
	class := NewScope(ClassScope, module)
	class.Define(NewSymbol("field", VariableSymbol, nil))
	fn := NewScope(FuncScope, class)

	if _, ok := fn.Lookup("field", Normal); ok {
		t.Errorf("normal lookup must not see class members lexically")
	}
}

func TestScopeLookupInstanceMemberFiltersStatic(t *testing.T) {
	class := NewScope(ClassScope, nil)
	inst := NewSymbol("x", VariableSymbol, nil)
	inst.IsStatic = false
	class.Define(inst)
	stat := NewSymbol("y", VariableSymbol, nil)
	stat.IsStatic = true
	class.Define(stat)

	if _, ok := class.Lookup("x", StaticMember); ok {
		t.Errorf("static lookup must not find an instance member")
	}
	if _, ok := class.Lookup("y", InstanceMember); ok {
		t.Errorf("instance lookup must not find a static member")
	}
	if _, ok := class.Lookup("x", InstanceMember); !ok {
		t.Errorf("instance lookup should find instance member")
	}
}
