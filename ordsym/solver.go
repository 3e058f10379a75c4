// Licensed under the Apache License, Version 2.0; see LICENSE.

package ordsym

import (
	"sort"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/caeval"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
)

// Table is the ordinary symbol table: every label, EQU and DC target
// declared across an assembly, plus the dependency solver that promotes
// forward-referenced symbols to Resolved as their dependencies clear.
//
// Table implements caeval.OrdinarySymbols so package caeval can read
// ordinary-symbol values and attributes without importing ordsym.
type Table struct {
	spaces  *Spaces
	sink    *diag.Sink
	symbols map[idn.ID]*Symbol
	order   []idn.ID            // declaration order; scan order for Finish
	waiters map[idn.ID][]idn.ID // name -> pending symbols blocked on it

	refs map[idn.ID][]diag.Location // every read of a symbol, for analyzer queries
}

// NewTable returns an empty Table over the given section/location-counter
// model, reporting diagnostics to sink.
func NewTable(spaces *Spaces, sink *diag.Sink) *Table {
	return &Table{
		spaces:  spaces,
		sink:    sink,
		symbols: make(map[idn.ID]*Symbol),
		waiters: make(map[idn.ID][]idn.ID),
		refs:    make(map[idn.ID][]diag.Location),
	}
}

// Lookup returns the symbol named name, if one has been declared.
func (t *Table) Lookup(name idn.ID) (*Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// RecordReference notes that name was read at loc, for ReferencesAt/
// DefinitionAt queries (spec.md §4.13).
func (t *Table) RecordReference(name idn.ID, loc diag.Location) {
	t.refs[name] = append(t.refs[name], loc)
}

// References returns every recorded read of name.
func (t *Table) References(name idn.ID) []diag.Location { return t.refs[name] }

// Declare registers an ordinary symbol defined by valueExpr (and,
// optionally, a separately expressed length operand as on a two- or
// three-operand EQU). fixedAttrs supplies the attributes that do not
// depend on the expression (Type/Scale/Integer/Program for an EQU;
// a DC's inherent type/scale/integer from its type letter). Declare
// reports a duplicate-definition diagnostic and keeps the first
// definition if name is already declared.
func (t *Table) Declare(name idn.ID, valueExpr, lengthExpr Expr, fixedAttrs Attrs, loc diag.Location) *Symbol {
	if existing, ok := t.symbols[name]; ok {
		t.sink.Add(diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     diag.CodeUndefinedSymbol,
			Message:  "symbol already defined",
			Primary:  loc,
			Related:  []diag.Related{{Location: existing.DefSite, Message: "previous definition"}},
		})
		return existing
	}

	sym := &Symbol{
		Name:       name,
		DefSite:    loc,
		valueExpr:  valueExpr,
		lengthExpr: lengthExpr,
		fixedAttrs: fixedAttrs,
	}
	t.symbols[name] = sym
	t.order = append(t.order, name)

	if t.resolveNow(sym) {
		t.promote(name)
		return sym
	}

	deps := make(map[idn.ID]struct{})
	reads := Dependencies(valueExpr)
	if lengthExpr != nil {
		reads = append(reads, Dependencies(lengthExpr)...)
	}
	for _, d := range reads {
		if dep, ok := t.symbols[d]; ok && dep.resolved {
			continue
		}
		deps[d] = struct{}{}
	}
	sym.pendingDeps = deps
	for d := range deps {
		t.waiters[d] = append(t.waiters[d], name)
	}
	return sym
}

// resolveNow attempts to fully evaluate sym's expressions against the
// table's current state, returning true and finalizing sym on success.
func (t *Table) resolveNow(sym *Symbol) bool {
	v, ok := t.evalExpr(sym.valueExpr)
	if !ok {
		return false
	}
	attrs := sym.fixedAttrs
	if sym.lengthExpr != nil {
		lv, ok := t.evalExpr(sym.lengthExpr)
		if !ok {
			return false
		}
		attrs.Length = int32(lv.Const)
	}
	sym.Value = v
	sym.Attrs = attrs
	sym.resolved = true
	return true
}

// EvalNow evaluates expr against the table's current state without
// declaring a symbol, for direct reads such as an ORG operand (spec.md
// §4.4). It fails (ok=false) exactly as a pending symbol's expression
// would if it read an unresolved ordinary symbol.
func (t *Table) EvalNow(expr Expr) (Value, bool) { return t.evalExpr(expr) }

// evalExpr evaluates a dependency expression, failing (ok=false) if it
// reads any ordinary symbol not yet resolved.
func (t *Table) evalExpr(e Expr) (Value, bool) {
	switch n := e.(type) {
	case Lit:
		return Abs(n.Value), true
	case Cur:
		return t.spaces.Current(), true
	case Sym:
		sym, ok := t.symbols[n.Name]
		if !ok || !sym.resolved {
			return Value{}, false
		}
		return sym.Value, true
	case Neg:
		v, ok := t.evalExpr(n.X)
		if !ok {
			return Value{}, false
		}
		return MulConst(v, -1)
	case Bin:
		l, ok := t.evalExpr(n.L)
		if !ok {
			return Value{}, false
		}
		r, ok := t.evalExpr(n.R)
		if !ok {
			return Value{}, false
		}
		switch n.Op {
		case OpAdd:
			return Add(l, r)
		case OpSub:
			return Sub(l, r)
		case OpMul:
			if !r.IsAbsolute() {
				l, r = r, l
			}
			return MulConst(l, r.Const)
		case OpDiv:
			if !r.IsAbsolute() {
				return Value{}, false
			}
			return DivConst(l, r.Const)
		}
	}
	return Value{}, false
}

// promote re-evaluates every pending symbol that depended on name, now
// that name has resolved, cascading further promotions transitively.
func (t *Table) promote(name idn.ID) {
	waiting := t.waiters[name]
	delete(t.waiters, name)
	for _, w := range waiting {
		sym := t.symbols[w]
		if sym == nil || sym.resolved {
			continue
		}
		delete(sym.pendingDeps, name)
		if len(sym.pendingDeps) > 0 {
			continue
		}
		if t.resolveNow(sym) {
			t.promote(w)
		}
	}
}

// Attribute implements caeval.OrdinarySymbols.
func (t *Table) Attribute(name idn.ID, attr caeval.AttrKind) caeval.AttrResult {
	sym, ok := t.symbols[name]
	if !ok || !sym.resolved {
		return caeval.AttrResult{Status: caeval.AttrDeferred}
	}
	switch attr {
	case caeval.AttrLength:
		return caeval.AttrResult{Status: caeval.AttrKnown, Value: sym.Attrs.Length}
	case caeval.AttrType:
		return caeval.AttrResult{Status: caeval.AttrKnown, Char: sym.Attrs.Type}
	case caeval.AttrScale:
		return caeval.AttrResult{Status: caeval.AttrKnown, Value: sym.Attrs.Scale}
	case caeval.AttrInteger:
		return caeval.AttrResult{Status: caeval.AttrKnown, Value: sym.Attrs.Integer}
	case caeval.AttrDefined:
		return caeval.AttrResult{Status: caeval.AttrKnown, Value: 1}
	default:
		return caeval.AttrResult{Status: caeval.AttrDeferred}
	}
}

// Value implements caeval.OrdinarySymbols, returning the symbol's
// absolute part. A relocatable symbol's offset is returned as a
// best-effort approximation; CA arithmetic on an unresolved relocatable
// is the caller's responsibility to reject where it matters.
func (t *Table) Value(name idn.ID) (int32, bool) {
	sym, ok := t.symbols[name]
	if !ok || !sym.resolved {
		return 0, false
	}
	return int32(sym.Value.Const), true
}

// Finish defaults every symbol still pending after the assembly has been
// fully scanned: symbols that are part of a dependency cycle are
// defaulted and reported with exactly one diagnostic per cycle, attached
// to the first cycle member reached while scanning in declaration order;
// symbols that are blocked only on names that were never declared are
// reported as undefined, one diagnostic each. Symbols waiting on a
// defaulted symbol are then re-evaluated against its default value.
func (t *Table) Finish() {
	reported := make(map[idn.ID]bool)
	for _, name := range t.order {
		sym := t.symbols[name]
		if sym.resolved || reported[name] {
			continue
		}
		for cycle := t.findCycle(name); cycle != nil; cycle = t.findCycle(name) {
			t.defaultCycle(cycle, reported)
			for _, member := range cycle {
				t.promote(member)
			}
		}
		if sym.resolved || reported[name] {
			continue
		}
		t.defaultUndefined(sym)
		reported[name] = true
		t.promote(name)
	}
}

// findCycle runs a DFS from start over "pending depends on pending"
// edges, returning the cycle's member names in stack order if start
// transitively depends on itself, or nil if it is only ever blocked on
// names that were never declared.
func (t *Table) findCycle(start idn.ID) []idn.ID {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[idn.ID]int)
	var stack []idn.ID
	var cycle []idn.ID

	var dfs func(idn.ID) bool
	dfs = func(n idn.ID) bool {
		state[n] = inStack
		stack = append(stack, n)
		sym := t.symbols[n]
		if sym != nil && !sym.resolved {
			deps := make([]idn.ID, 0, len(sym.pendingDeps))
			for d := range sym.pendingDeps {
				deps = append(deps, d)
			}
			sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
			for _, dep := range deps {
				depSym, ok := t.symbols[dep]
				if !ok || depSym.resolved {
					continue
				}
				switch state[dep] {
				case unvisited:
					if dfs(dep) {
						return true
					}
				case inStack:
					idx := 0
					for i, s := range stack {
						if s == dep {
							idx = i
							break
						}
					}
					cycle = append([]idn.ID{}, stack[idx:]...)
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		return false
	}

	if dfs(start) {
		return cycle
	}
	return nil
}

func (t *Table) defaultCycle(cycle []idn.ID, reported map[idn.ID]bool) {
	first := t.symbols[cycle[0]]
	related := make([]diag.Related, 0, len(cycle)-1)
	for _, name := range cycle {
		sym := t.symbols[name]
		sym.resolved = true
		sym.Value = Abs(0)
		sym.Attrs = defaultCycleAttrs()
		reported[name] = true
		if name != cycle[0] {
			related = append(related, diag.Related{Location: sym.DefSite, Message: "part of the same cycle"})
		}
	}
	t.sink.Add(diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeCyclicDefinition,
		Message:  "circular symbol definition",
		Primary:  first.DefSite,
		Related:  related,
	})
}

func (t *Table) defaultUndefined(sym *Symbol) {
	sym.resolved = true
	sym.Value = Abs(0)
	sym.Attrs = defaultCycleAttrs()
	t.sink.Add(diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeUndefinedSymbol,
		Message:  "symbol is never defined",
		Primary:  sym.DefSite,
	})
}
