// Licensed under the Apache License, Version 2.0; see LICENSE.

package vars_test

import (
	"testing"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/vars"
)

func TestStore_declareAndGet(t *testing.T) {
	ids := idn.NewStore()
	name := ids.Add("&COUNT")
	s := vars.NewStore(vars.NewGlobals())

	if out := s.Declare(name, vars.KindA, vars.Scalar); out != vars.Declared {
		t.Fatalf("Declare = %v, want Declared", out)
	}
	if out := s.Declare(name, vars.KindA, vars.Scalar); out != vars.AlreadyDeclaredSameShape {
		t.Fatalf("redeclare same shape = %v, want AlreadyDeclaredSameShape", out)
	}
	if out := s.Declare(name, vars.KindA, vars.Array); out != vars.ShapeMismatch {
		t.Fatalf("redeclare different shape = %v, want ShapeMismatch", out)
	}

	sym, ok := s.Get(name)
	if !ok {
		t.Fatal("Get after Declare: not found")
	}
	if got := sym.Get().Int(); got != 0 {
		t.Fatalf("default value = %d, want 0", got)
	}
}

func TestStore_setImplicitDeclare(t *testing.T) {
	ids := idn.NewStore()
	name := ids.Add("&X")
	s := vars.NewStore(vars.NewGlobals())

	if out := s.Set(name, nil, vars.CVal("hi")); out != vars.SetOK {
		t.Fatalf("Set = %v, want SetOK", out)
	}
	sym, _ := s.Get(name)
	if got := sym.Get().C; got != "hi" {
		t.Fatalf("value = %q, want hi", got)
	}
}

func TestStore_setArrayExtends(t *testing.T) {
	ids := idn.NewStore()
	name := ids.Add("&ARR")
	s := vars.NewStore(vars.NewGlobals())
	i5 := 5
	if out := s.Set(name, &i5, vars.AVal(42)); out != vars.SetOK {
		t.Fatalf("Set = %v, want SetOK", out)
	}
	sym, _ := s.Get(name)
	// index below the highest set index defaults to zero
	if got := sym.Get(1).Int(); got != 0 {
		t.Fatalf("Get(1) = %d, want 0 (sparse default)", got)
	}
	if got := sym.Get(5).Int(); got != 42 {
		t.Fatalf("Get(5) = %d, want 42", got)
	}
}

func TestStore_scalarArrayMismatch(t *testing.T) {
	ids := idn.NewStore()
	name := ids.Add("&S")
	s := vars.NewStore(vars.NewGlobals())
	s.Set(name, nil, vars.AVal(1))
	i := 1
	if out := s.Set(name, &i, vars.AVal(2)); out != vars.SetShapeMismatch {
		t.Fatalf("Set array on scalar = %v, want SetShapeMismatch", out)
	}
}

func TestStore_globalSharedAcrossScopes(t *testing.T) {
	ids := idn.NewStore()
	name := ids.Add("&G")
	globals := vars.NewGlobals()
	s1 := vars.NewStore(globals)
	s2 := vars.NewStore(globals)

	s1.DeclareGlobal(name, vars.KindA, vars.Scalar)
	s2.DeclareGlobal(name, vars.KindA, vars.Scalar)

	s1.Set(name, nil, vars.AVal(7))
	sym, ok := s2.Get(name)
	if !ok {
		t.Fatal("global not visible from second scope")
	}
	if got := sym.Get().Int(); got != 7 {
		t.Fatalf("global value via scope 2 = %d, want 7", got)
	}
}

func TestStore_readOnlyRejectsSet(t *testing.T) {
	ids := idn.NewStore()
	name := ids.Add("&SYSNDX")
	s := vars.NewStore(vars.NewGlobals())
	s.Bind(&vars.Symbol{Name: name, Kind: vars.KindC, Shape: vars.Scalar, ReadOnly: true})
	if out := s.Set(name, nil, vars.CVal("x")); out != vars.SetReadOnly {
		t.Fatalf("Set on read-only = %v, want SetReadOnly", out)
	}
}

func TestTree_indexAndRender(t *testing.T) {
	tr := vars.ParseTree("(a,b,(c,d))")
	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tr.Len())
	}
	if got := tr.Index(1).LeafString(); got != "a" {
		t.Fatalf("Index(1) = %q, want a", got)
	}
	if got := tr.Index(3, 2).LeafString(); got != "d" {
		t.Fatalf("Index(3,2) = %q, want d", got)
	}
	if got := tr.Index(99).LeafString(); got != "" {
		t.Fatalf("out of range Index = %q, want empty", got)
	}
	if got := tr.String(); got != "(a,b,(c,d))" {
		t.Fatalf("String() = %q, want (a,b,(c,d))", got)
	}
}

func TestTree_malformedFallsBackToLeaf(t *testing.T) {
	tr := vars.ParseTree("(a,b")
	if !tr.IsLeaf() || tr.LeafString() != "(a,b" {
		t.Fatalf("malformed composite should fall back to a single leaf, got %+v", tr)
	}
}

func TestTree_quotedCommaProtected(t *testing.T) {
	tr := vars.ParseTree("(a,'x,y',b)")
	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (comma inside quotes must not split)", tr.Len())
	}
	if got := tr.Index(2).LeafString(); got != "'x,y'" {
		t.Fatalf("Index(2) = %q, want 'x,y'", got)
	}
}
