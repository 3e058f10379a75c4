// Licensed under the Apache License, Version 2.0; see LICENSE.

package ordsym_test

import (
	"testing"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
)

func loc(line int) diag.Location {
	return diag.Location{File: "t.hlasm", Range: diag.Range{Start: diag.Position{Line: line}, End: diag.Position{Line: line}}}
}

func TestTable_forwardEQUResolution(t *testing.T) {
	ids := idn.NewStore()
	a := ids.Add("A")
	b := ids.Add("B")

	tbl := ordsym.NewTable(ordsym.NewSpaces(), diag.NewSink())

	// A EQU B+1   (B not yet declared)
	tbl.Declare(a, ordsym.Bin{Op: ordsym.OpAdd, L: ordsym.Sym{Name: b}, R: ordsym.Lit{Value: 1}}, nil, ordsym.Attrs{}, loc(1))
	if sym, _ := tbl.Lookup(a); sym.Resolved() {
		t.Fatalf("A resolved before B declared")
	}

	// B EQU 41
	tbl.Declare(b, ordsym.Lit{Value: 41}, nil, ordsym.Attrs{}, loc(2))

	symA, ok := tbl.Lookup(a)
	if !ok || !symA.Resolved() {
		t.Fatalf("A did not promote once B resolved")
	}
	if symA.Value.Const != 42 || !symA.Value.IsAbsolute() {
		t.Fatalf("A = %+v, want absolute 42", symA.Value)
	}

	tbl.Finish()
	if !diag.NewSink().Empty() {
		t.Fatalf("sanity: fresh sink must be empty")
	}
}

func TestTable_cycleDetectionSingleDiagnostic(t *testing.T) {
	ids := idn.NewStore()
	a := ids.Add("A")
	b := ids.Add("B")
	c := ids.Add("C")

	sink := diag.NewSink()
	tbl := ordsym.NewTable(ordsym.NewSpaces(), sink)

	// A EQU B, B EQU C, C EQU A — a three-symbol cycle.
	tbl.Declare(a, ordsym.Sym{Name: b}, nil, ordsym.Attrs{}, loc(1))
	tbl.Declare(b, ordsym.Sym{Name: c}, nil, ordsym.Attrs{}, loc(2))
	tbl.Declare(c, ordsym.Sym{Name: a}, nil, ordsym.Attrs{}, loc(3))

	tbl.Finish()

	diags := sink.All()
	var cyclic int
	for _, d := range diags {
		if d.Code == diag.CodeCyclicDefinition {
			cyclic++
		}
	}
	if cyclic != 1 {
		t.Fatalf("got %d cyclic-definition diagnostics, want exactly 1 (all: %+v)", cyclic, diags)
	}

	for _, name := range []idn.ID{a, b, c} {
		sym, _ := tbl.Lookup(name)
		if !sym.Resolved() {
			t.Fatalf("symbol %d left unresolved after Finish", name)
		}
		if sym.Value.Const != 0 || !sym.Value.IsAbsolute() {
			t.Fatalf("cyclic symbol defaulted to %+v, want absolute 0", sym.Value)
		}
		if sym.Attrs.Length != 1 {
			t.Fatalf("cyclic symbol length attribute = %d, want 1", sym.Attrs.Length)
		}
	}
}

func TestTable_undefinedSymbolNotReportedAsCycle(t *testing.T) {
	ids := idn.NewStore()
	a := ids.Add("A")
	missing := ids.Add("NOPE")

	sink := diag.NewSink()
	tbl := ordsym.NewTable(ordsym.NewSpaces(), sink)

	tbl.Declare(a, ordsym.Sym{Name: missing}, nil, ordsym.Attrs{}, loc(1))
	tbl.Finish()

	diags := sink.All()
	if len(diags) != 1 || diags[0].Code != diag.CodeUndefinedSymbol {
		t.Fatalf("diagnostics = %+v, want exactly one CodeUndefinedSymbol", diags)
	}
}

func TestTable_duplicateDefinitionKeepsFirst(t *testing.T) {
	ids := idn.NewStore()
	a := ids.Add("A")

	sink := diag.NewSink()
	tbl := ordsym.NewTable(ordsym.NewSpaces(), sink)

	tbl.Declare(a, ordsym.Lit{Value: 1}, nil, ordsym.Attrs{}, loc(1))
	tbl.Declare(a, ordsym.Lit{Value: 2}, nil, ordsym.Attrs{}, loc(2))

	sym, _ := tbl.Lookup(a)
	if sym.Value.Const != 1 {
		t.Fatalf("A = %d, want first definition's value 1", sym.Value.Const)
	}
	if sink.Empty() {
		t.Fatalf("expected a duplicate-definition diagnostic")
	}
}

func TestTable_relocatableArithmeticLegality(t *testing.T) {
	ids := idn.NewStore()
	csect := ids.Add("CODE")
	lbl := ids.Add("LBL")

	spaces := ordsym.NewSpaces()
	spaces.StartSection(csect, ordsym.SectionExecutable)
	spaces.Advance(16)

	tbl := ordsym.NewTable(spaces, diag.NewSink())
	tbl.Declare(lbl, ordsym.Cur{}, nil, ordsym.Attrs{}, loc(1))

	sym, _ := tbl.Lookup(lbl)
	if sym.Value.IsAbsolute() {
		t.Fatalf("label at current loctr came out absolute")
	}
	if !sym.Value.IsSimpleRelocatable() {
		t.Fatalf("label value %+v is not simple relocatable", sym.Value)
	}
	if sym.Value.Const != 16 {
		t.Fatalf("label offset = %d, want 16", sym.Value.Const)
	}
}

func TestTable_lengthOperandCanForwardReference(t *testing.T) {
	ids := idn.NewStore()
	a := ids.Add("A")
	lenSym := ids.Add("LEN")

	tbl := ordsym.NewTable(ordsym.NewSpaces(), diag.NewSink())

	// A EQU 5,LEN   (LEN not yet declared)
	tbl.Declare(a, ordsym.Lit{Value: 5}, ordsym.Sym{Name: lenSym}, ordsym.Attrs{Type: 'U'}, loc(1))
	if sym, _ := tbl.Lookup(a); sym.Resolved() {
		t.Fatalf("A resolved before LEN declared")
	}

	tbl.Declare(lenSym, ordsym.Lit{Value: 8}, nil, ordsym.Attrs{}, loc(2))

	sym, _ := tbl.Lookup(a)
	if !sym.Resolved() {
		t.Fatalf("A did not promote once LEN resolved")
	}
	if sym.Attrs.Length != 8 {
		t.Fatalf("A length attribute = %d, want 8", sym.Attrs.Length)
	}
}
