// Licensed under the Apache License, Version 2.0; see LICENSE.

package ordsym

import (
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
)

// Attrs is an ordinary symbol's attribute set: length, type, scale,
// integer and program-type, per spec.md §3.3.
type Attrs struct {
	Length  int32
	Type    byte
	Scale   int32
	Integer int32
	Program byte
}

// defaultCycleAttrs is applied to a symbol defaulted by cycle detection:
// absolute value 1 for length-kind attributes, per spec.md §4.4.
func defaultCycleAttrs() Attrs { return Attrs{Length: 1, Type: 'U'} }

// Symbol is one ordinary symbol: either fully Resolved or Pending with an
// attached dependency expression, per spec.md §3.3.
type Symbol struct {
	Name    idn.ID
	DefSite diag.Location

	resolved bool
	Value    Value
	Attrs    Attrs

	valueExpr   Expr
	lengthExpr  Expr // optional; nil means Attrs.Length is fixed at declare time
	fixedAttrs  Attrs
	pendingDeps map[idn.ID]struct{}
}

// Resolved reports whether s has a final value and attributes.
func (s *Symbol) Resolved() bool { return s.resolved }
