// Package types implements Luma's type domain, symbol table, and scope
// tree — the three data structures every semantic pass reads and writes.
//
// The type domain is a tagged variant rather than a class hierarchy
// (following the "tagged variants plus exhaustive match" guidance for a
// deep, dynamically-dispatched visitor hierarchy): one Type struct carries a
// Kind tag and only the fields that Kind uses. This keeps every pass'
// switch over Kind exhaustive and keeps the zero value (Kind == Void)
// meaningful.
package types

import (
	"fmt"
	"strings"
)

// Kind tags the variant a Type value holds.
type Kind int

const (
	KindVoid Kind = iota
	KindPrim
	KindClass
	KindFunc
	KindMeta
	KindOverloaded
	KindList
	KindNullable
	KindNull
	KindError
)

// PrimKind distinguishes the four primitive value types.
type PrimKind int

const (
	Bool PrimKind = iota
	Int
	Float
	String
)

func (p PrimKind) String() string {
	switch p {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "?"
	}
}

// ClassDefNode is the narrow view of an AST class definition that the type
// domain needs. It is satisfied by *ast.ClassDef without this package
// importing the ast package, which would otherwise cycle (ast's
// expression nodes hold a *Type field). ClassScope exposes the class
// body's member scope so member lookup (instance and static) can resolve
// through a Type alone, without the caller needing the *ast.ClassDef.
type ClassDefNode interface {
	ClassName() string
	ClassScope() *Scope
}

// Type is one value of the tagged-variant type domain described in the
// data model: void | prim | class | func | meta | overloaded | list |
// nullable | null | error. Only the fields relevant to Kind are populated;
// the rest are zero.
type Type struct {
	Kind Kind

	Prim PrimKind // KindPrim

	Class ClassDefNode // KindClass

	Ret  *Type   // KindFunc
	Args []*Type // KindFunc

	Inst *Type // KindMeta: inst(meta(T)) = T

	Overloads []*Symbol // KindOverloaded

	Item *Type // KindList; nil means partially applied list(None)

	Elem *Type // KindNullable
}

// Void is the singleton void type.
var Void = &Type{Kind: KindVoid}

// NullT is the singleton type of the null literal.
var NullT = &Type{Kind: KindNull}

// ErrorT is the singleton absorbing error type.
var ErrorT = &Type{Kind: KindError}

// NewPrim returns the primitive type for the given PrimKind.
func NewPrim(p PrimKind) *Type { return &Type{Kind: KindPrim, Prim: p} }

var (
	BoolT   = NewPrim(Bool)
	IntT    = NewPrim(Int)
	FloatT  = NewPrim(Float)
	StringT = NewPrim(String)
)

// NewClass returns the type denoting an instance of the given class.
func NewClass(def ClassDefNode) *Type { return &Type{Kind: KindClass, Class: def} }

// NewFunc returns a function type with the given return and argument types.
func NewFunc(ret *Type, args []*Type) *Type { return &Type{Kind: KindFunc, Ret: ret, Args: args} }

// NewMeta returns the type of an expression denoting the type inst itself —
// e.g. the type of the identifier `int` in source is NewMeta(IntT).
func NewMeta(inst *Type) *Type { return &Type{Kind: KindMeta, Inst: inst} }

// NewOverloaded returns the marker type for an unresolved overload set. It
// is never the type of a value; overload resolution must replace it.
func NewOverloaded(syms []*Symbol) *Type { return &Type{Kind: KindOverloaded, Overloads: syms} }

// NewList returns list(item). Passing a nil item produces the partially
// applied list(None), legal only as the operand of a type-parameter
// expression.
func NewList(item *Type) *Type { return &Type{Kind: KindList, Item: item} }

// NewNullable returns nullable(t), collapsing nullable(nullable(T)) to
// nullable(T) per the data model's double-nullable invariant.
func NewNullable(t *Type) *Type {
	if t != nil && t.Kind == KindNullable {
		return t
	}
	return &Type{Kind: KindNullable, Elem: t}
}

// IsNumeric reports whether t is int or float.
func IsNumeric(t *Type) bool {
	return t != nil && t.Kind == KindPrim && (t.Prim == Int || t.Prim == Float)
}

// IsBool reports whether t is the bool primitive.
func IsBool(t *Type) bool { return t != nil && t.Kind == KindPrim && t.Prim == Bool }

// IsString reports whether t is the string primitive.
func IsString(t *Type) bool { return t != nil && t.Kind == KindPrim && t.Prim == String }

// IsError reports whether t is the absorbing error type, or nil (treated
// the same as error by every pass so a missing computedType never panics).
func IsError(t *Type) bool { return t == nil || t.Kind == KindError }

// IsMeta reports whether t is a meta(T) type.
func IsMeta(t *Type) bool { return t != nil && t.Kind == KindMeta }

// IsOverloaded reports whether t is the pending-resolution overloaded marker.
func IsOverloaded(t *Type) bool { return t != nil && t.Kind == KindOverloaded }

// IsComplete reports whether t, assumed to be a meta type's instance, has
// no free type parameters (no partially applied list(None)).
func IsComplete(t *Type) bool {
	switch {
	case t == nil:
		return false
	case t.Kind == KindList:
		return t.Item != nil && IsComplete(t.Item)
	case t.Kind == KindFunc:
		if t.Ret == nil || !IsComplete(t.Ret) {
			return false
		}
		for _, a := range t.Args {
			if !IsComplete(a) {
				return false
			}
		}
		return true
	case t.Kind == KindNullable:
		return IsComplete(t.Elem)
	default:
		return true
	}
}

// Equal reports structural type equality. It never considers conversions.
// Per the data model, overloaded and error are never equal to anything,
// including themselves.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind == KindOverloaded || b.Kind == KindOverloaded {
		return false
	}
	if a.Kind == KindError || b.Kind == KindError {
		return false
	}
	return structEqual(a, b)
}

func structEqual(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindVoid, KindNull:
		return true
	case KindPrim:
		return a.Prim == b.Prim
	case KindClass:
		return a.Class != nil && b.Class != nil && a.Class.ClassName() == b.Class.ClassName()
	case KindFunc:
		if !structEqual(a.Ret, b.Ret) || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !structEqual(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case KindMeta:
		return structEqual(a.Inst, b.Inst)
	case KindList:
		if a.Item == nil || b.Item == nil {
			return a.Item == b.Item
		}
		return structEqual(a.Item, b.Item)
	case KindNullable:
		return structEqual(a.Elem, b.Elem)
	default:
		return false
	}
}

// CanAssign reports whether a value of type from may be used where to is
// expected, either because the types already match or via one of the two
// permitted implicit conversions (int->float, T->nullable(U)). needsCast
// reports whether materialising the conversion requires inserting a
// CastExpr; an exact (or error-suppressed) match never does.
func CanAssign(from, to *Type) (ok bool, needsCast bool) {
	if IsError(from) || IsError(to) {
		return true, false
	}
	if structEqual(from, to) {
		return true, false
	}
	if from != nil && from.Kind == KindPrim && from.Prim == Int &&
		to != nil && to.Kind == KindPrim && to.Prim == Float {
		return true, true
	}
	if to != nil && to.Kind == KindNullable {
		if from != nil && from.Kind == KindNull {
			return true, true
		}
		if structEqual(from, to.Elem) {
			return true, true
		}
		if innerOK, _ := CanAssign(from, to.Elem); innerOK {
			return true, true
		}
	}
	return false, false
}

// CanCast reports whether an explicit `as` cast from from to to is legal:
// equal, implicitly convertible, or both sides numeric.
func CanCast(from, to *Type) bool {
	if ok, _ := CanAssign(from, to); ok {
		return true
	}
	return IsNumeric(from) && IsNumeric(to)
}

// String renders a Type in the surface syntax a diagnostic message uses.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindPrim:
		return t.Prim.String()
	case KindClass:
		if t.Class == nil {
			return "<class>"
		}
		return t.Class.ClassName()
	case KindFunc:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		return fmt.Sprintf("function<%s, %s>", t.Ret.String(), strings.Join(args, ", "))
	case KindMeta:
		return "type " + t.Inst.String()
	case KindOverloaded:
		return "<overloaded>"
	case KindList:
		if t.Item == nil {
			return "list<?>"
		}
		return fmt.Sprintf("list<%s>", t.Item.String())
	case KindNullable:
		return t.Elem.String() + "?"
	case KindNull:
		return "null"
	case KindError:
		return "<error>"
	default:
		return "<?>"
	}
}
