// Licensed under the Apache License, Version 2.0; see LICENSE.

package vars

import "github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"

// Symbol is one declared variable: a name, its fixed kind and shape, and
// either a scalar value or a sparse array of values. ReadOnly symbols
// (system variables such as &SYSNDX, &SYSLIST) reject Set/SetAt.
type Symbol struct {
	Name     idn.ID
	Kind     Kind
	Shape    Shape
	ReadOnly bool

	scalar Value
	array  map[int]Value
	maxIdx int // highest index ever written via SetAt, -1 if none

	// Tree, when non-nil, backs a structured system variable such as
	// &SYSLIST: multi-dimensional Get(indices...) descends it instead of
	// consulting array/scalar storage. Tree-backed symbols are always
	// ReadOnly and of Kind C.
	Tree *Tree
}

// NewTreeSymbol builds a read-only, Tree-backed Kind-C symbol: the shape
// used for macro parameters and system variables such as &SYSLIST, whose
// value is a composite-argument tree rather than a plain scalar/array
// (spec.md §3.5).
func NewTreeSymbol(name idn.ID, tree *Tree) *Symbol {
	return &Symbol{Name: name, Kind: KindC, Shape: Scalar, ReadOnly: true, Tree: tree, maxIdx: -1}
}

func newSymbol(name idn.ID, kind Kind, shape Shape) *Symbol {
	s := &Symbol{Name: name, Kind: kind, Shape: shape, maxIdx: -1}
	if shape == Array {
		s.array = make(map[int]Value)
	} else {
		s.scalar = Zero(kind)
	}
	return s
}

// Get returns the scalar value, or the array value at index (1-based),
// or the Tree's leaf at indices if Tree is set. Out-of-range array reads
// return the kind's zero value without error.
func (s *Symbol) Get(indices ...int) Value {
	if s.Tree != nil {
		return CVal(s.Tree.Index(indices...).String())
	}
	if s.Shape == Scalar {
		return s.scalar
	}
	if len(indices) == 0 {
		return Zero(s.Kind)
	}
	if v, ok := s.array[indices[0]]; ok {
		return v
	}
	return Zero(s.Kind)
}

// setResult reports how a Set/SetAt/Declare call resolved, so callers
// (the ordinary processor) can turn shape-mismatch cases into a
// diagnostic without the store depending on package diag.
type setResult int

const (
	setOK setResult = iota
	setShapeMismatch
	setReadOnly
)

// setAt assigns v at the given 1-based index of an array symbol,
// extending the array if index exceeds its current length.
func (s *Symbol) setAt(index int, v Value) setResult {
	if s.ReadOnly {
		return setReadOnly
	}
	if s.Shape != Array {
		return setShapeMismatch
	}
	s.array[index] = v
	if index > s.maxIdx {
		s.maxIdx = index
	}
	return setOK
}

func (s *Symbol) setScalar(v Value) setResult {
	if s.ReadOnly {
		return setReadOnly
	}
	if s.Shape != Scalar {
		return setShapeMismatch
	}
	s.scalar = v
	return setOK
}

// Len returns the highest assigned array index (0 if none assigned, or
// for a scalar), matching the N'/K' "how many elements" query surface.
func (s *Symbol) Len() int {
	if s.Tree != nil {
		return s.Tree.Len()
	}
	if s.Shape != Array {
		return 0
	}
	if s.maxIdx < 0 {
		return 0
	}
	return s.maxIdx
}

// Store is the set of variables visible in one scope: its own locals plus
// a shared Globals table consulted on miss.
type Store struct {
	locals  map[idn.ID]*Symbol
	globals *Globals
}

// Globals is the process-wide-per-unit table of GBLA/GBLB/GBLC
// variables, shared by every scope that declares them.
type Globals struct {
	vars map[idn.ID]*Symbol
}

// NewGlobals returns an empty Globals table.
func NewGlobals() *Globals { return &Globals{vars: make(map[idn.ID]*Symbol)} }

// NewStore returns a Store for a new scope backed by globals.
func NewStore(globals *Globals) *Store {
	return &Store{locals: make(map[idn.ID]*Symbol), globals: globals}
}

// DeclareOutcome reports what Declare did, for the caller to turn into a
// diagnostic (shape mismatch) or silently ignore (matching redeclaration).
type DeclareOutcome int

const (
	Declared DeclareOutcome = iota
	AlreadyDeclaredSameShape
	ShapeMismatch
)

// Declare creates name as a local variable of kind/shape in this scope.
// Redeclaring with the same kind and shape is a silent no-op
// (AlreadyDeclaredSameShape); redeclaring with a different shape is
// reported as ShapeMismatch so the caller can emit a diagnostic. The
// kind is not re-checked on redeclaration past the first declaration:
// HLASM ties a name to one kind for the life of the scope once the
// prefix (A/B/C) is chosen, and LCLA/LCLB/LCLC already encode the kind
// in the opcode, so a same-opcode redeclaration cannot disagree on kind.
func (s *Store) Declare(name idn.ID, kind Kind, shape Shape) DeclareOutcome {
	if existing, ok := s.locals[name]; ok {
		if existing.Shape == shape {
			return AlreadyDeclaredSameShape
		}
		return ShapeMismatch
	}
	s.locals[name] = newSymbol(name, kind, shape)
	return Declared
}

// DeclareGlobal creates name as a global variable of kind/shape, visible
// from every scope that also declares it global. Redeclaration semantics
// mirror Declare.
func (s *Store) DeclareGlobal(name idn.ID, kind Kind, shape Shape) DeclareOutcome {
	if existing, ok := s.globals.vars[name]; ok {
		if existing.Shape == shape {
			// Re-declaring GBLx in this scope makes the existing global
			// symbol locally visible too.
			s.locals[name] = existing
			return AlreadyDeclaredSameShape
		}
		return ShapeMismatch
	}
	sym := newSymbol(name, kind, shape)
	s.globals.vars[name] = sym
	s.locals[name] = sym
	return Declared
}

// Get searches the local scope, then Globals, per spec.md §4.2. The
// second return value is false if name is undeclared anywhere.
func (s *Store) Get(name idn.ID) (*Symbol, bool) {
	if sym, ok := s.locals[name]; ok {
		return sym, true
	}
	if sym, ok := s.globals.vars[name]; ok {
		return sym, true
	}
	return nil, false
}

// SetOutcome reports what Set did.
type SetOutcome int

const (
	SetOK SetOutcome = iota
	SetShapeMismatch
	SetReadOnly
)

// Set assigns v to name's scalar value (or array[index] if index != nil),
// implicitly declaring name at v's kind/shape in the local scope if it is
// undeclared anywhere reachable. A scalar/array shape mismatch or an
// attempt to write a read-only (system) variable is reported without
// mutating anything.
func (s *Store) Set(name idn.ID, index *int, v Value) SetOutcome {
	sym, ok := s.Get(name)
	if !ok {
		shape := Scalar
		if index != nil {
			shape = Array
		}
		s.Declare(name, v.Kind, shape)
		sym, _ = s.Get(name)
	}
	var res setResult
	if index != nil {
		res = sym.setAt(*index, v)
	} else {
		res = sym.setScalar(v)
	}
	switch res {
	case setShapeMismatch:
		return SetShapeMismatch
	case setReadOnly:
		return SetReadOnly
	default:
		return SetOK
	}
}

// Bind installs a pre-built, typically read-only, Symbol directly into
// the local scope, overwriting anything previously bound under that
// name. This is how macro invocation auto-populates system variables
// (&SYSNDX, &SYSLIST, &SYSMAC) when a scope is entered (spec.md §3.2).
func (s *Store) Bind(sym *Symbol) { s.locals[sym.Name] = sym }
