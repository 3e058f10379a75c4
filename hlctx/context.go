// Licensed under the Apache License, Version 2.0; see LICENSE.

package hlctx

import (
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/macro"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/vars"
)

// Context is the single object owning every piece of state an analysis
// unit accumulates (spec.md §4.5).
type Context struct {
	Ids      *idn.Store
	Globals  *vars.Globals
	OpenCode *vars.Store
	Ordsym   *ordsym.Table
	Spaces   *ordsym.Spaces
	Macros   *macro.Registry
	Copies   *CopyRegistry
	Sink     *diag.Sink

	opsyn   map[idn.ID]Resolution
	Sources []*SourceFrame
	Scopes  []*macro.Frame

	// OpenSeq records, for open code only, each sequence symbol's Parser
	// mark once first visited (spec.md §4.8); macro bodies use
	// Definition.SeqIndex instead, pre-built at definition time.
	OpenSeq map[idn.ID]int
	// OpenActr is open code's ACTR branch counter (spec.md §4.9); each
	// macro invocation carries its own in macro.Frame.Actr instead.
	OpenActr int32

	sysndx int32
}

// New returns a fresh Context with empty tables and one source frame for
// file (the open-code input), interning identifiers in ids. Callers that
// also construct their own Parser/LibraryProvider/OperandChecker over
// statements must build those against the same Store, since idn.ID
// values are only comparable within the Store that produced them.
func New(file string, ids *idn.Store) *Context {
	spaces := ordsym.NewSpaces()
	sink := diag.NewSink()
	globals := vars.NewGlobals()
	return &Context{
		Ids:      ids,
		Globals:  globals,
		OpenCode: vars.NewStore(globals),
		Ordsym:   ordsym.NewTable(spaces, sink),
		Spaces:   spaces,
		Macros:   macro.NewRegistry(),
		Copies:   NewCopyRegistry(),
		Sink:     sink,
		opsyn:    make(map[idn.ID]Resolution),
		Sources:  []*SourceFrame{{File: file}},
		OpenSeq:  make(map[idn.ID]int),
	}
}

// NextSysndx returns the next &SYSNDX value, incrementing the
// per-analysis-unit counter. It is bumped once per macro invocation
// attempt, whether or not the invocation's argument binding later
// reports diagnostics: &SYSNDX does not roll back on a failed bind.
func (c *Context) NextSysndx() int32 {
	c.sysndx++
	return c.sysndx
}

// CurrentSource returns the innermost source frame.
func (c *Context) CurrentSource() *SourceFrame { return c.Sources[len(c.Sources)-1] }

// PushScope enters a macro invocation's scope.
func (c *Context) PushScope(f *macro.Frame) { c.Scopes = append(c.Scopes, f) }

// PopScope leaves the innermost macro invocation's scope.
func (c *Context) PopScope() {
	if n := len(c.Scopes); n > 0 {
		c.Scopes = c.Scopes[:n-1]
	}
}

// CurrentScope returns the innermost active macro frame, or false at
// open-code scope.
func (c *Context) CurrentScope() (*macro.Frame, bool) {
	if n := len(c.Scopes); n > 0 {
		return c.Scopes[n-1], true
	}
	return nil, false
}

// Vars returns the variable store for the currently active scope: the
// innermost macro invocation's locals, or the open-code store.
func (c *Context) Vars() *vars.Store {
	if f, ok := c.CurrentScope(); ok {
		return f.Locals
	}
	return c.OpenCode
}

// EnclosingMacroNames returns the names of every active macro
// invocation, innermost first — the chain &SYSMAC materializes from when
// a new invocation is bound (spec.md §4.6).
func (c *Context) EnclosingMacroNames() []idn.ID {
	out := make([]idn.ID, len(c.Scopes))
	for i, f := range c.Scopes {
		out[len(c.Scopes)-1-i] = f.Def.Name
	}
	return out
}
