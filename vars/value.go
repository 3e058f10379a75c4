// Licensed under the Apache License, Version 2.0; see LICENSE.

package vars

import "strconv"

// Kind is the type tag of a variable symbol: A (signed 32-bit integer),
// B (single-bit boolean) or C (string).
type Kind int

const (
	KindA Kind = iota
	KindB
	KindC
)

func (k Kind) String() string {
	switch k {
	case KindA:
		return "A"
	case KindB:
		return "B"
	case KindC:
		return "C"
	default:
		return "?"
	}
}

// Shape distinguishes a scalar variable from an array variable. Shape is
// fixed at first declaration and cannot change afterwards.
type Shape int

const (
	Scalar Shape = iota
	Array
)

// Value is a tagged A/B/C value, as produced by the CA expression
// evaluator and stored by a variable symbol.
type Value struct {
	Kind Kind
	A    int32
	B    bool
	C    string
}

// AVal builds an A-typed Value.
func AVal(n int32) Value { return Value{Kind: KindA, A: n} }

// BVal builds a B-typed Value.
func BVal(b bool) Value { return Value{Kind: KindB, B: b} }

// CVal builds a C-typed Value.
func CVal(s string) Value { return Value{Kind: KindC, C: s} }

// Zero returns the default value for k (0 / false / "").
func Zero(k Kind) Value {
	switch k {
	case KindA:
		return AVal(0)
	case KindB:
		return BVal(false)
	default:
		return CVal("")
	}
}

// String renders v the way it would appear substituted into source text.
func (v Value) String() string {
	switch v.Kind {
	case KindA:
		return strconv.Itoa(int(v.A))
	case KindB:
		if v.B {
			return "1"
		}
		return "0"
	default:
		return v.C
	}
}

// Bool coerces v to a boolean the way A<->B coercion works in the CA
// evaluator: nonzero/true is true.
func (v Value) Bool() bool {
	switch v.Kind {
	case KindA:
		return v.A != 0
	case KindB:
		return v.B
	default:
		return v.C != ""
	}
}

// Int coerces v to an integer the way B<->A coercion works.
func (v Value) Int() int32 {
	switch v.Kind {
	case KindA:
		return v.A
	case KindB:
		if v.B {
			return 1
		}
		return 0
	default:
		n, err := strconv.ParseInt(v.C, 10, 32)
		if err != nil {
			return 0
		}
		return int32(n)
	}
}
