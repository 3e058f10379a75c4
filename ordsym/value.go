// Licensed under the Apache License, Version 2.0; see LICENSE.

package ordsym

// Value is an ordinary symbol's resolved value: an absolute integer
// (empty Terms), a simple relocatable (one term, coefficient ±1), or a
// complex relocatable (several terms), per spec.md §3.3. Const is the
// absolute part (e.g. the offset added to a space, or the whole value
// when Terms is empty); Terms maps a space to its signed integer
// coefficient and never holds a zero-coefficient entry.
type Value struct {
	Const int64
	Terms map[SpaceID]int32
}

// Abs builds an absolute Value.
func Abs(n int64) Value { return Value{Const: n} }

// Reloc builds a simple relocatable Value: space + offset.
func Reloc(space SpaceID, offset int64) Value {
	return Value{Const: offset, Terms: map[SpaceID]int32{space: 1}}
}

// IsAbsolute reports whether v has no outstanding relocatable terms.
func (v Value) IsAbsolute() bool { return len(v.Terms) == 0 }

// IsSimpleRelocatable reports whether v is a single term with a unit
// coefficient — the only relocatable shape legal to carry forward,
// per spec.md §4.4.
func (v Value) IsSimpleRelocatable() bool {
	if len(v.Terms) != 1 {
		return false
	}
	for _, c := range v.Terms {
		return c == 1 || c == -1
	}
	return false
}

// combine merges term maps, dropping zero-coefficient entries, with sign
// applied to the right operand's terms (sign=1 for add, -1 for sub).
func combine(l, r map[SpaceID]int32, sign int32) map[SpaceID]int32 {
	out := make(map[SpaceID]int32, len(l)+len(r))
	for s, c := range l {
		out[s] = c
	}
	for s, c := range r {
		out[s] += sign * c
	}
	for s, c := range out {
		if c == 0 {
			delete(out, s)
		}
	}
	return out
}

// Add computes l+r and reports whether the result is legal (pure
// absolute, or a single term with coefficient ±1), per spec.md §4.4.
func Add(l, r Value) (Value, bool) {
	out := Value{Const: l.Const + r.Const, Terms: combine(l.Terms, r.Terms, 1)}
	return out, legal(out)
}

// Sub computes l-r and reports whether the result is legal. Subtracting
// two relocatables whose terms do not fully cancel to a simple ±1
// relocatable or a pure absolute is illegal, covering both "mixing
// spaces additively" and "cross-space subtraction between two
// non-overlapping sections" from spec.md §4.4.
func Sub(l, r Value) (Value, bool) {
	out := Value{Const: l.Const - r.Const, Terms: combine(l.Terms, r.Terms, -1)}
	return out, legal(out)
}

// MulConst computes v*n, legal only when v is absolute (multiplying a
// relocatable by anything other than folding it into another relocatable
// via Add/Sub is illegal per spec.md §4.4).
func MulConst(v Value, n int64) (Value, bool) {
	if !v.IsAbsolute() {
		return Value{}, false
	}
	return Abs(v.Const * n), true
}

// DivConst computes v/n (truncating toward zero), legal only when v is
// absolute. n == 0 is reported as illegal; Table treats an illegal result
// like an unresolved operand and emits no division-by-zero diagnostic.
func DivConst(v Value, n int64) (Value, bool) {
	if !v.IsAbsolute() || n == 0 {
		return Value{}, false
	}
	return Abs(v.Const / n), true
}

func legal(v Value) bool {
	return v.IsAbsolute() || v.IsSimpleRelocatable()
}
