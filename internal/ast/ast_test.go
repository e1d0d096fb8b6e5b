package ast

import (
	"testing"

	"github.com/cwbudde/luma/internal/token"
	"github.com/cwbudde/luma/internal/types"
)

func TestClassDefImplementsClassDefNode(t *testing.T) {
	c := &ClassDef{Name: "A", Body: &Block{}}
	var _ types.ClassDefNode = c
	if c.ClassName() != "A" {
		t.Errorf("expected ClassName A, got %s", c.ClassName())
	}
}

func TestBinaryExprString(t *testing.T) {
	left := &Identifier{Name: "a"}
	right := &IntLiteral{Value: 1}
	b := &BinaryExpr{Op: token.PLUS, Left: left, Right: right}
	if got, want := b.String(), "(a + 1)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTypedGetSetType(t *testing.T) {
	id := &Identifier{}
	id.SetType(types.IntT)
	if id.GetType() != types.IntT {
		t.Errorf("expected GetType to return what SetType stored")
	}
}

func TestFuncDefStringNoBody(t *testing.T) {
	f := &FuncDef{
		Name:       "print",
		ReturnType: &PrimTypeExpr{Prim: token.VOID},
		Params: []*Param{
			{Name: "x", TypeExpr: &PrimTypeExpr{Prim: token.INTK}},
		},
	}
	if got, want := f.String(), "void print(int x)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
