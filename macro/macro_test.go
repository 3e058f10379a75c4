// Licensed under the Apache License, Version 2.0; see LICENSE.

package macro_test

import (
	"testing"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/macro"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/vars"
)

func loc() diag.Location { return diag.Location{File: "m.hlasm"} }

func TestParsePrototype_positionalAndKeyword(t *testing.T) {
	ids := idn.NewStore()
	def := macro.ParsePrototype(ids, stmt.Label{Kind: stmt.LabelVariable, Text: "&LBL"}, "MYMAC", "&P1,&P2=,&P3=DEFAULT", loc())

	if ids.Text(def.Name) != "MYMAC" {
		t.Fatalf("name = %q", ids.Text(def.Name))
	}
	if def.LabelParam == idn.EmptyID || ids.Text(def.LabelParam) != "LBL" {
		t.Fatalf("label param not bound")
	}
	if len(def.Positional) != 1 || ids.Text(def.Positional[0]) != "P1" {
		t.Fatalf("positional params = %+v", def.Positional)
	}
	p2, ok := ids.Find("P2")
	if !ok {
		t.Fatalf("P2 not interned")
	}
	if d, ok := def.Keywords[p2]; !ok || d.LeafString() != "" {
		t.Fatalf("P2 default = %+v", d)
	}
	p3, _ := ids.Find("P3")
	if d := def.Keywords[p3]; d.LeafString() != "DEFAULT" {
		t.Fatalf("P3 default = %q, want DEFAULT", d.LeafString())
	}
}

func TestBind_positionalKeywordAndSysvars(t *testing.T) {
	ids := idn.NewStore()
	def := macro.ParsePrototype(ids, stmt.Label{}, "MYMAC", "&P1,&P2=FOO", loc())
	globals := vars.NewGlobals()
	sink := diag.NewSink()

	frame := macro.Bind(ids, globals, def, "", "1,(A,B),P2=BAR", 7, nil, macro.SectionInfo{}, loc(), sink)

	p1, _ := ids.Find("P1")
	sym, ok := frame.Locals.Get(p1)
	if !ok || sym.Get().String() != "1" {
		t.Fatalf("P1 = %+v", sym)
	}

	sysndx, _ := ids.Find("SYSNDX")
	sym, _ = frame.Locals.Get(sysndx)
	if sym.Get().String() != "0007" {
		t.Fatalf("SYSNDX = %q, want 0007", sym.Get().String())
	}

	sysList, _ := ids.Find("SYSLIST")
	sym, _ = frame.Locals.Get(sysList)
	if got := sym.Get(2).String(); got != "(A,B)" {
		t.Fatalf("SYSLIST(2) = %q", got)
	}

	if !sink.Empty() {
		t.Fatalf("unexpected diagnostics: %+v", sink.All())
	}
}

func TestBind_duplicateAndUnknownKeyword(t *testing.T) {
	ids := idn.NewStore()
	def := macro.ParsePrototype(ids, stmt.Label{}, "MYMAC", "&P1=", loc())
	globals := vars.NewGlobals()
	sink := diag.NewSink()

	macro.Bind(ids, globals, def, "", "P1=A,P1=B,NOPE=C", 1, nil, macro.SectionInfo{}, loc(), sink)

	diags := sink.All()
	var dup, unknown int
	for _, d := range diags {
		switch d.Code {
		case diag.CodeMacroArity:
			dup++
		case diag.CodeUnknownKeyword:
			unknown++
		}
	}
	if dup != 1 || unknown != 1 {
		t.Fatalf("dup=%d unknown=%d, want 1 and 1 (diags: %+v)", dup, unknown, diags)
	}
}

func TestBind_systemVariablesReflectSectionAndNesting(t *testing.T) {
	ids := idn.NewStore()
	def := macro.ParsePrototype(ids, stmt.Label{}, "MYMAC", "", loc())
	globals := vars.NewGlobals()
	sink := diag.NewSink()

	sect := macro.SectionInfo{Section: ids.Add("MYCSECT"), Kind: "CSECT", Loctr: ids.Add("MYLOCTR")}
	outer := ids.Add("OUTER")
	frame := macro.Bind(ids, globals, def, "", "", 1, []idn.ID{outer}, sect, loc(), sink)

	cases := map[string]string{
		"SYSECT":  "MYCSECT",
		"SYSSTYP": "CSECT",
		"SYSLOC":  "MYLOCTR",
		"SYSNEST": "2",
	}
	for name, want := range cases {
		id, ok := ids.Find(name)
		if !ok {
			t.Fatalf("%s not interned", name)
		}
		sym, ok := frame.Locals.Get(id)
		if !ok || sym.Get().String() != want {
			t.Fatalf("%s = %+v, want %q", name, sym, want)
		}
	}
}

func TestBind_systemVariablesEmptyOutsideSection(t *testing.T) {
	ids := idn.NewStore()
	def := macro.ParsePrototype(ids, stmt.Label{}, "MYMAC", "", loc())
	globals := vars.NewGlobals()
	sink := diag.NewSink()

	frame := macro.Bind(ids, globals, def, "", "", 1, nil, macro.SectionInfo{}, loc(), sink)

	for _, name := range []string{"SYSECT", "SYSSTYP", "SYSLOC"} {
		id, _ := ids.Find(name)
		sym, ok := frame.Locals.Get(id)
		if !ok || sym.Get().String() != "" {
			t.Fatalf("%s = %+v, want empty", name, sym)
		}
	}
	nest, _ := ids.Find("SYSNEST")
	sym, _ := frame.Locals.Get(nest)
	if sym.Get().String() != "1" {
		t.Fatalf("SYSNEST = %q, want 1", sym.Get().String())
	}
}

func TestBind_missingPositionalDefaultsEmpty(t *testing.T) {
	ids := idn.NewStore()
	def := macro.ParsePrototype(ids, stmt.Label{}, "MYMAC", "&P1,&P2", loc())
	globals := vars.NewGlobals()
	sink := diag.NewSink()

	frame := macro.Bind(ids, globals, def, "", "ONLYONE", 1, nil, macro.SectionInfo{}, loc(), sink)

	p2, _ := ids.Find("P2")
	sym, _ := frame.Locals.Get(p2)
	if sym.Get().String() != "" {
		t.Fatalf("P2 = %q, want empty", sym.Get().String())
	}
}

func TestFrame_sequenceJump(t *testing.T) {
	ids := idn.NewStore()
	def := macro.NewDefinition(ids.Add("M"), loc())
	def.Append(stmt.Statement{})
	def.Append(stmt.Statement{Label: stmt.Label{Kind: stmt.LabelSequence, Text: ".L1"}})
	def.IndexSequenceSymbol(ids.Add("L1"), 1)

	frame := &macro.Frame{Def: def}
	idx, ok := frame.Sequence(ids.Add("L1"))
	if !ok || idx != 1 {
		t.Fatalf("Sequence(L1) = %d,%v", idx, ok)
	}
	frame.JumpTo(idx)
	if frame.StmtIndex != 1 {
		t.Fatalf("StmtIndex = %d", frame.StmtIndex)
	}
}
