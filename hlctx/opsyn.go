// Licensed under the Apache License, Version 2.0; see LICENSE.

package hlctx

import (
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/macro"
)

// OpKind classifies what an operation code currently means.
type OpKind int

const (
	OpUnknown OpKind = iota
	OpMacro
	OpCA
	OpAssembler
	OpMachine
	OpDeleted
)

// Resolution is a frozen snapshot of what an operation code means at the
// moment it was captured: either directly (a name looked up now) or via
// OPSYN (a name captured when the alias was declared). Capturing by
// value, not by live alias, is what makes later redefinitions of the
// aliased name not affect the alias, per spec.md §4.5.
type Resolution struct {
	Kind     OpKind
	RealName idn.ID
	Macro    *macro.Definition
}

// Resolve answers get_operation_code(name) (spec.md §4.5): OPSYN first,
// then the macro registry, then OpUnknown for the caller's instruction
// tables to attempt.
func (c *Context) Resolve(name idn.ID) Resolution {
	if r, ok := c.opsyn[name]; ok {
		return r
	}
	if def, ok := c.Macros.Lookup(name); ok {
		return Resolution{Kind: OpMacro, RealName: name, Macro: def}
	}
	return Resolution{Kind: OpUnknown, RealName: name}
}

// Opsyn implements "A OPSYN B" / "A OPSYN" (spec.md §4.5): binds a to a
// frozen snapshot of whatever b currently means, or — when hasTarget is
// false — deletes a outright.
func (c *Context) Opsyn(a, b idn.ID, hasTarget bool) {
	if !hasTarget {
		c.opsyn[a] = Resolution{Kind: OpDeleted, RealName: a}
		return
	}
	c.opsyn[a] = c.Resolve(b)
}
