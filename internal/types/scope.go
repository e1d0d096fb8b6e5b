package types

// ScopeKind distinguishes the lookup rules that apply inside a scope.
type ScopeKind int

const (
	ModuleScope ScopeKind = iota
	ClassScope
	FuncScope
	LocalScope
)

// LookupKind selects which resolution rule Scope.Lookup applies.
// Normal is ordinary lexical lookup; InstanceMember/StaticMember look only
// inside one class scope, filtered by whether the found symbol is static.
type LookupKind int

const (
	Normal LookupKind = iota
	InstanceMember
	StaticMember
)

// Scope is a named-symbol table: a kind, a parent link (nil at the module
// root), and an insertion-ordered name-to-symbol mapping.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope

	order   []string
	symbols map[string]*Symbol
}

// NewScope creates an empty scope of the given kind with the given parent.
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Parent: parent, symbols: make(map[string]*Symbol)}
}

// InsertResult reports which of the four symbol-insertion rules applied.
type InsertResult int

const (
	Inserted InsertResult = iota
	FoldedIntoOverload
	AppendedToOverload
	Redefinition
)

// Define inserts sym into the scope's own symbol map, applying the
// overload-folding rules: a first insertion is a plain add; a function
// colliding with an existing function symbol folds both into a new
// OverloadedFunctionSymbol; a function colliding with an existing overload
// set is appended to it; any other collision is a redefinition. The
// returned symbol is the one now occupying the slot (which, for folds, is
// a freshly created overloaded-function symbol, not sym itself).
func (s *Scope) Define(sym *Symbol) (InsertResult, *Symbol) {
	existing, ok := s.symbols[sym.Name]
	if !ok {
		s.order = append(s.order, sym.Name)
		s.symbols[sym.Name] = sym
		return Inserted, sym
	}

	bothFunctions := existing.Kind == FunctionSymbol && sym.Kind == FunctionSymbol
	if bothFunctions {
		folded := &Symbol{
			Name:      sym.Name,
			Kind:      OverloadedFunctionSymbol,
			Type:      NewOverloaded(nil),
			Overloads: []*Symbol{existing, sym},
		}
		folded.Type.Overloads = folded.Overloads
		s.symbols[sym.Name] = folded
		return FoldedIntoOverload, folded
	}

	if existing.Kind == OverloadedFunctionSymbol && sym.Kind == FunctionSymbol {
		existing.AddOverload(sym)
		existing.Type.Overloads = existing.Overloads
		return AppendedToOverload, existing
	}

	return Redefinition, existing
}

// Lookup resolves name starting at s, walking parent scopes according to
// kind. Normal lookup skips the symbol maps of any ClassScope ancestor
// (class members are not in lexical scope inside methods) but still walks
// through it to reach its parent. InstanceMember/StaticMember only examine
// s itself, which must be a class scope, filtering by staticness.
func (s *Scope) Lookup(name string, kind LookupKind) (*Symbol, bool) {
	switch kind {
	case InstanceMember, StaticMember:
		sym, ok := s.symbols[name]
		if !ok {
			return nil, false
		}
		wantStatic := kind == StaticMember
		if sym.IsStatic != wantStatic {
			return nil, false
		}
		return sym, true
	default:
		for scope := s; scope != nil; scope = scope.Parent {
			if scope.Kind == ClassScope {
				continue
			}
			if sym, ok := scope.symbols[name]; ok {
				return sym, true
			}
		}
		return nil, false
	}
}

// DefinedHere reports whether name is bound directly in s, without
// consulting parents.
func (s *Scope) DefinedHere(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Symbols returns the scope's own symbols in insertion order.
func (s *Scope) Symbols() []*Symbol {
	result := make([]*Symbol, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, s.symbols[name])
	}
	return result
}

// Replace overwrites the symbol bound to name in s's own map, appending
// name to the insertion order if it was not bound yet. The rename pass does
// not call it: it sets FinalName on the existing Symbol in place, so the
// map entries stay valid.
func (s *Scope) Replace(name string, sym *Symbol) {
	if _, ok := s.symbols[name]; !ok {
		s.order = append(s.order, name)
	}
	s.symbols[name] = sym
}
