// Licensed under the Apache License, Version 2.0; see LICENSE.

package caeval

import (
	"strconv"
	"strings"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/vars"
)

// AttrStatus reports how an OrdinarySymbols.Attribute query resolved.
type AttrStatus int

const (
	// AttrKnown means Value/Char in the AttrResult are final.
	AttrKnown AttrStatus = iota
	// AttrDeferred means the symbol is not yet in the table (or its
	// attribute cannot be inferred from partial information) and a
	// lookahead is required; spec.md §4.3.
	AttrDeferred
)

// AttrResult is the outcome of an ordinary-symbol attribute query.
type AttrResult struct {
	Status AttrStatus
	Value  int32 // for L, S, I
	Char   byte  // for T, O (single byte, e.g. 'F', 'U')
}

// OrdinarySymbols is the subset of the ordinary symbol table the CA
// evaluator needs: attribute queries (possibly deferred, triggering a
// lookahead in the caller) and plain value reads for OrdRef leaves. It is
// defined here, not in package ordsym, so that caeval has no import on
// ordsym; package ordsym's Table satisfies this interface.
type OrdinarySymbols interface {
	Attribute(name idn.ID, attr AttrKind) AttrResult
	Value(name idn.ID) (int32, bool)
}

// Deferred signals that evaluation could not complete because an
// ordinary-symbol attribute reference needs a lookahead.
type Deferred struct {
	Attr AttrKind
	Name idn.ID
}

// Result is the outcome of Eval: either a final Value, or a Deferred
// request for the caller to satisfy via lookahead and retry.
type Result struct {
	Value    vars.Value
	Deferred *Deferred
}

// Evaluator evaluates CA expressions against one scope's variable store
// and the ordinary symbol table, recording diagnostics as it goes.
type Evaluator struct {
	Vars *vars.Store
	Ord  OrdinarySymbols
	Sink *diag.Sink
}

// Eval evaluates expr, attaching loc to any diagnostic it emits.
func (e *Evaluator) Eval(expr Expr, loc diag.Location) Result {
	switch n := expr.(type) {
	case IntLit:
		return Result{Value: vars.AVal(n.Value)}
	case StrLit:
		return Result{Value: vars.CVal(n.Value)}
	case SelfDefiningTerm:
		return Result{Value: e.evalSelfDefining(n, loc)}
	case VarRef:
		return e.evalVarRef(n, loc)
	case OrdRef:
		if v, ok := e.Ord.Value(n.Name); ok {
			return Result{Value: vars.AVal(v)}
		}
		e.diag(loc, diag.CodeUndefinedSymbol, "undefined ordinary symbol")
		return Result{Value: vars.AVal(0)}
	case AttrRef:
		return e.evalAttrRef(n, loc)
	case BinExpr:
		return e.evalBin(n, loc)
	case UnExpr:
		return e.evalUn(n, loc)
	case Substr:
		return e.evalSubstr(n, loc)
	case Dup:
		return e.evalDup(n, loc)
	default:
		e.diag(loc, diag.CodeSyntax, "unrecognized expression node")
		return Result{Value: vars.AVal(0)}
	}
}

func (e *Evaluator) diag(loc diag.Location, code diag.Code, msg string) {
	e.Sink.Add(diag.Diagnostic{Severity: diag.SeverityError, Code: code, Message: msg, Primary: loc})
}

func (e *Evaluator) evalSelfDefining(n SelfDefiningTerm, loc diag.Location) vars.Value {
	switch n.Kind {
	case SelfDefiningB:
		v, err := strconv.ParseInt(n.Text, 2, 64)
		if err != nil {
			e.diag(loc, diag.CodeTypeMismatch, "invalid binary self-defining term")
			return vars.AVal(0)
		}
		return vars.AVal(int32(v))
	case SelfDefiningX:
		v, err := strconv.ParseInt(n.Text, 16, 64)
		if err != nil {
			e.diag(loc, diag.CodeTypeMismatch, "invalid hex self-defining term")
			return vars.AVal(0)
		}
		return vars.AVal(int32(v))
	case SelfDefiningC:
		if len(n.Text) == 0 {
			return vars.AVal(0)
		}
		// Multi-character C'...' self-defining terms pack bytes
		// big-endian into the integer, truncating to 32 bits.
		var v int32
		for i := 0; i < len(n.Text); i++ {
			v = v<<8 | int32(n.Text[i])
		}
		return vars.AVal(v)
	default:
		e.diag(loc, diag.CodeTypeMismatch, "unknown self-defining term kind")
		return vars.AVal(0)
	}
}

func (e *Evaluator) evalVarRef(n VarRef, loc diag.Location) Result {
	indices := make([]int, len(n.Indices))
	for i, ix := range n.Indices {
		r := e.Eval(ix, loc)
		if r.Deferred != nil {
			return r
		}
		indices[i] = int(r.Value.Int())
	}
	sym, ok := e.Vars.Get(n.Name)
	if !ok {
		return Result{Value: vars.AVal(0)}
	}
	return Result{Value: sym.Get(indices...)}
}

func (e *Evaluator) evalAttrRef(n AttrRef, loc diag.Location) Result {
	if n.IsVar {
		sym, ok := e.Vars.Get(n.Name)
		switch n.Attr {
		case AttrCount:
			if !ok {
				return Result{Value: vars.AVal(0)}
			}
			return Result{Value: vars.AVal(int32(sym.Len()))}
		case AttrNDim:
			if !ok || sym.Shape != vars.Array {
				return Result{Value: vars.AVal(0)}
			}
			return Result{Value: vars.AVal(1)}
		case AttrType:
			if !ok {
				return Result{Value: vars.CVal("U")}
			}
			switch sym.Kind {
			case vars.KindA:
				return Result{Value: vars.CVal("N")}
			case vars.KindB:
				return Result{Value: vars.CVal("N")}
			default:
				return Result{Value: vars.CVal("U")}
			}
		default:
			e.diag(loc, diag.CodeTypeMismatch, "attribute not valid on a variable symbol")
			return Result{Value: vars.AVal(0)}
		}
	}
	res := e.Ord.Attribute(n.Name, n.Attr)
	if res.Status == AttrDeferred {
		return Result{Deferred: &Deferred{Attr: n.Attr, Name: n.Name}}
	}
	switch n.Attr {
	case AttrType, AttrOpcode:
		return Result{Value: vars.CVal(string(res.Char))}
	default:
		return Result{Value: vars.AVal(res.Value)}
	}
}

func (e *Evaluator) evalBin(n BinExpr, loc diag.Location) Result {
	l := e.Eval(n.L, loc)
	if l.Deferred != nil {
		return l
	}
	r := e.Eval(n.R, loc)
	if r.Deferred != nil {
		return r
	}
	switch n.Op {
	case OpConcat:
		return Result{Value: vars.CVal(l.Value.String() + r.Value.String())}
	case OpAdd, OpSub, OpMul, OpDiv:
		if l.Value.Kind == vars.KindC || r.Value.Kind == vars.KindC {
			e.diag(loc, diag.CodeTypeMismatch, "arithmetic operator applied to a string operand")
			return Result{Value: vars.AVal(0)}
		}
		return Result{Value: e.arith(n.Op, l.Value.Int(), r.Value.Int(), loc)}
	case OpAnd, OpOr, OpXor:
		if l.Value.Kind == vars.KindC || r.Value.Kind == vars.KindC {
			e.diag(loc, diag.CodeTypeMismatch, "boolean operator applied to a string operand")
			return Result{Value: vars.BVal(false)}
		}
		return Result{Value: e.logic(n.Op, l.Value.Bool(), r.Value.Bool())}
	default: // comparisons
		return Result{Value: e.compare(n.Op, l.Value, r.Value, loc)}
	}
}

func (e *Evaluator) arith(op BinOp, l, r int32, loc diag.Location) vars.Value {
	switch op {
	case OpAdd:
		return vars.AVal(l + r)
	case OpSub:
		return vars.AVal(l - r)
	case OpMul:
		return vars.AVal(l * r)
	case OpDiv:
		if r == 0 {
			e.diag(loc, diag.CodeTypeMismatch, "division by zero")
			return vars.AVal(0)
		}
		return vars.AVal(l / r) // Go truncates toward zero, matching spec.md
	default:
		return vars.AVal(0)
	}
}

func (e *Evaluator) logic(op BinOp, l, r bool) vars.Value {
	switch op {
	case OpAnd:
		return vars.BVal(l && r)
	case OpOr:
		return vars.BVal(l || r)
	case OpXor:
		return vars.BVal(l != r)
	default:
		return vars.BVal(false)
	}
}

func (e *Evaluator) compare(op BinOp, l, r vars.Value, loc diag.Location) vars.Value {
	if l.Kind == vars.KindC && r.Kind == vars.KindC {
		c := strings.Compare(l.C, r.C)
		return vars.BVal(compareResult(op, c))
	}
	if l.Kind == vars.KindC || r.Kind == vars.KindC {
		e.diag(loc, diag.CodeTypeMismatch, "cannot compare a string to a numeric/boolean value")
		return vars.BVal(false)
	}
	li, ri := l.Int(), r.Int()
	var c int
	switch {
	case li < ri:
		c = -1
	case li > ri:
		c = 1
	}
	return vars.BVal(compareResult(op, c))
}

func compareResult(op BinOp, c int) bool {
	switch op {
	case OpEq:
		return c == 0
	case OpNe:
		return c != 0
	case OpLt:
		return c < 0
	case OpLe:
		return c <= 0
	case OpGt:
		return c > 0
	case OpGe:
		return c >= 0
	default:
		return false
	}
}

func (e *Evaluator) evalUn(n UnExpr, loc diag.Location) Result {
	x := e.Eval(n.X, loc)
	if x.Deferred != nil {
		return x
	}
	switch n.Op {
	case OpNeg:
		if x.Value.Kind == vars.KindC {
			e.diag(loc, diag.CodeTypeMismatch, "unary minus applied to a string operand")
			return Result{Value: vars.AVal(0)}
		}
		return Result{Value: vars.AVal(-x.Value.Int())}
	case OpNot:
		if x.Value.Kind == vars.KindC {
			e.diag(loc, diag.CodeTypeMismatch, "NOT applied to a string operand")
			return Result{Value: vars.BVal(false)}
		}
		return Result{Value: vars.BVal(!x.Value.Bool())}
	default:
		return Result{Value: vars.AVal(0)}
	}
}

func (e *Evaluator) evalSubstr(n Substr, loc diag.Location) Result {
	s := e.Eval(n.Str, loc)
	if s.Deferred != nil {
		return s
	}
	start := e.Eval(n.Start, loc)
	if start.Deferred != nil {
		return start
	}
	length := e.Eval(n.Length, loc)
	if length.Deferred != nil {
		return length
	}
	str := s.Value.String()
	st := int(start.Value.Int())
	ln := int(length.Value.Int())
	if st < 1 || ln < 0 || st-1 > len(str) {
		e.diag(loc, diag.CodeBoundViolation, "substring start/length out of range")
		return Result{Value: vars.CVal("")}
	}
	end := st - 1 + ln
	if end > len(str) {
		e.diag(loc, diag.CodeBoundViolation, "substring start/length out of range")
		end = len(str)
	}
	return Result{Value: vars.CVal(str[st-1 : end])}
}

func (e *Evaluator) evalDup(n Dup, loc diag.Location) Result {
	cnt := e.Eval(n.N, loc)
	if cnt.Deferred != nil {
		return cnt
	}
	s := e.Eval(n.Str, loc)
	if s.Deferred != nil {
		return s
	}
	n32 := cnt.Value.Int()
	if n32 < 0 {
		e.diag(loc, diag.CodeBoundViolation, "negative duplication count")
		return Result{Value: vars.CVal("")}
	}
	return Result{Value: vars.CVal(strings.Repeat(s.Value.String(), int(n32)))}
}
