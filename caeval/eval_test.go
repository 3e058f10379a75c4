// Licensed under the Apache License, Version 2.0; see LICENSE.

package caeval_test

import (
	"testing"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/caeval"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/vars"
)

type attrKey struct {
	attr caeval.AttrKind
	name idn.ID
}

type fakeOrd struct {
	values map[idn.ID]int32
	attrs  map[attrKey]caeval.AttrResult
}

func (f *fakeOrd) Value(name idn.ID) (int32, bool) {
	v, ok := f.values[name]
	return v, ok
}
func (f *fakeOrd) Attribute(name idn.ID, attr caeval.AttrKind) caeval.AttrResult {
	if r, ok := f.attrs[attrKey{attr, name}]; ok {
		return r
	}
	return caeval.AttrResult{Status: caeval.AttrDeferred}
}

func newEval(t *testing.T, ids *idn.Store) (*caeval.Evaluator, *fakeOrd) {
	t.Helper()
	g := vars.NewGlobals()
	s := vars.NewStore(g)
	ord := &fakeOrd{values: map[idn.ID]int32{}, attrs: map[attrKey]caeval.AttrResult{}}
	return &caeval.Evaluator{Vars: s, Ord: ord, Sink: diag.NewSink()}, ord
}

func loc() diag.Location { return diag.Location{File: "t.hlasm"} }

func TestEval_arithmetic(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	expr := caeval.BinExpr{Op: caeval.OpAdd, L: caeval.IntLit{Value: 2}, R: caeval.BinExpr{Op: caeval.OpMul, L: caeval.IntLit{Value: 3}, R: caeval.IntLit{Value: 4}}}
	r := e.Eval(expr, loc())
	if r.Value.Int() != 14 {
		t.Fatalf("2+3*4 = %d, want 14", r.Value.Int())
	}
}

func TestEval_divisionByZero(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	expr := caeval.BinExpr{Op: caeval.OpDiv, L: caeval.IntLit{Value: 5}, R: caeval.IntLit{Value: 0}}
	r := e.Eval(expr, loc())
	if r.Value.Int() != 0 {
		t.Fatalf("5/0 = %d, want 0", r.Value.Int())
	}
	if e.Sink.Len() != 1 {
		t.Fatalf("expected one diagnostic for division by zero, got %d", e.Sink.Len())
	}
}

func TestEval_truncatingDivision(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	expr := caeval.BinExpr{Op: caeval.OpDiv, L: caeval.IntLit{Value: -7}, R: caeval.IntLit{Value: 2}}
	r := e.Eval(expr, loc())
	if r.Value.Int() != -3 {
		t.Fatalf("-7/2 = %d, want -3 (truncate toward zero)", r.Value.Int())
	}
}

func TestEval_stringConcatAndSubstr(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	concat := caeval.BinExpr{Op: caeval.OpConcat, L: caeval.StrLit{Value: "AB"}, R: caeval.StrLit{Value: "CD"}}
	r := e.Eval(concat, loc())
	if r.Value.C != "ABCD" {
		t.Fatalf("concat = %q, want ABCD", r.Value.C)
	}
	sub := caeval.Substr{Str: caeval.StrLit{Value: "HELLO"}, Start: caeval.IntLit{Value: 2}, Length: caeval.IntLit{Value: 3}}
	r = e.Eval(sub, loc())
	if r.Value.C != "ELL" {
		t.Fatalf("substr = %q, want ELL", r.Value.C)
	}
}

func TestEval_duplication(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	dup := caeval.Dup{N: caeval.IntLit{Value: 3}, Str: caeval.StrLit{Value: "ab"}}
	r := e.Eval(dup, loc())
	if r.Value.C != "ababab" {
		t.Fatalf("3'ab' = %q, want ababab", r.Value.C)
	}
}

func TestEval_typeMismatchArithmeticOnString(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	expr := caeval.BinExpr{Op: caeval.OpAdd, L: caeval.StrLit{Value: "x"}, R: caeval.IntLit{Value: 1}}
	r := e.Eval(expr, loc())
	if r.Value.Int() != 0 {
		t.Fatalf("mismatch result = %d, want default 0", r.Value.Int())
	}
	if e.Sink.Len() != 1 {
		t.Fatalf("expected a type-mismatch diagnostic, got %d", e.Sink.Len())
	}
}

func TestEval_variableReference(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	name := ids.Add("&X")
	e.Vars.Set(name, nil, vars.AVal(5))
	r := e.Eval(caeval.VarRef{Name: name}, loc())
	if r.Value.Int() != 5 {
		t.Fatalf("&X = %d, want 5", r.Value.Int())
	}
}

func TestEval_attrRefDeferred(t *testing.T) {
	ids := idn.NewStore()
	e, ord := newEval(t, ids)
	name := ids.Add("X")
	ord.values = map[idn.ID]int32{}
	r := e.Eval(caeval.AttrRef{Attr: caeval.AttrLength, Name: name}, loc())
	if r.Deferred == nil {
		t.Fatal("expected a Deferred result for an unresolved L' attribute")
	}
	if r.Deferred.Attr != caeval.AttrLength || r.Deferred.Name != name {
		t.Fatalf("Deferred = %+v, want Attr=L Name=%v", r.Deferred, name)
	}
}

func TestEval_attrRefResolved(t *testing.T) {
	ids := idn.NewStore()
	e, ord := newEval(t, ids)
	name := ids.Add("X")
	ord.attrs[attrKey{caeval.AttrLength, name}] = caeval.AttrResult{Status: caeval.AttrKnown, Value: 4}
	r := e.Eval(caeval.AttrRef{Attr: caeval.AttrLength, Name: name}, loc())
	if r.Deferred != nil {
		t.Fatalf("expected resolved attribute, got Deferred %+v", r.Deferred)
	}
	if r.Value.Int() != 4 {
		t.Fatalf("L'X = %d, want 4", r.Value.Int())
	}
}

func TestEval_booleanOps(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	expr := caeval.BinExpr{Op: caeval.OpAnd, L: caeval.IntLit{Value: 1}, R: caeval.IntLit{Value: 0}}
	r := e.Eval(expr, loc())
	if r.Value.Bool() {
		t.Fatal("1 AND 0 should be false")
	}
}

func TestEval_comparisons(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	r := e.Eval(caeval.BinExpr{Op: caeval.OpLt, L: caeval.IntLit{Value: 1}, R: caeval.IntLit{Value: 2}}, loc())
	if !r.Value.Bool() {
		t.Fatal("1 < 2 should be true")
	}
	r = e.Eval(caeval.BinExpr{Op: caeval.OpEq, L: caeval.StrLit{Value: "AB"}, R: caeval.StrLit{Value: "AB"}}, loc())
	if !r.Value.Bool() {
		t.Fatal("'AB' = 'AB' should be true")
	}
}

func TestEval_selfDefiningTerms(t *testing.T) {
	ids := idn.NewStore()
	e, _ := newEval(t, ids)
	r := e.Eval(caeval.SelfDefiningTerm{Kind: caeval.SelfDefiningX, Text: "48"}, loc())
	if r.Value.Int() != 0x48 {
		t.Fatalf("X'48' = %d, want 72", r.Value.Int())
	}
	r = e.Eval(caeval.SelfDefiningTerm{Kind: caeval.SelfDefiningB, Text: "101"}, loc())
	if r.Value.Int() != 5 {
		t.Fatalf("B'101' = %d, want 5", r.Value.Int())
	}
}
