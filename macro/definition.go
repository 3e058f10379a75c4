// Licensed under the Apache License, Version 2.0; see LICENSE.

package macro

import (
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/vars"
)

// Param is one prototype parameter: positional (order matters, no
// default) or keyword (order irrelevant, carries a default tree).
type Param struct {
	Name    idn.ID
	Keyword bool
	Default *vars.Tree // nil for positional params
}

// Definition is a cached macro definition (spec.md §3.5).
type Definition struct {
	Name       idn.ID
	LabelParam idn.ID // idn.EmptyID if the prototype declared none
	Positional []idn.ID
	Keywords   map[idn.ID]*vars.Tree

	Body     []stmt.Statement
	SeqIndex map[idn.ID]int // sequence symbol -> statement index, pre-indexed

	DefSite diag.Location
}

// NewDefinition returns an empty Definition ready for its body to be
// appended to by the macro-definition processor.
func NewDefinition(name idn.ID, loc diag.Location) *Definition {
	return &Definition{
		Name:     name,
		DefSite:  loc,
		Keywords: make(map[idn.ID]*vars.Tree),
		SeqIndex: make(map[idn.ID]int),
	}
}

// Append adds one statement to the body. Callers index sequence-symbol
// labels separately via IndexSequenceSymbol, once they have interned the
// label text against the identifier store.
func (d *Definition) Append(s stmt.Statement) {
	d.Body = append(d.Body, s)
}

// IndexSequenceSymbol records that name labels the statement at index i
// in the body. Called by the macro-definition processor as it appends
// each statement, since it alone has access to the identifier store
// needed to intern the label text.
func (d *Definition) IndexSequenceSymbol(name idn.ID, i int) {
	if _, exists := d.SeqIndex[name]; !exists {
		d.SeqIndex[name] = i
	}
}

// Registry holds every macro defined during the analysis.
type Registry struct {
	defs map[idn.ID]*Definition
}

// NewRegistry returns an empty macro Registry.
func NewRegistry() *Registry { return &Registry{defs: make(map[idn.ID]*Definition)} }

// Define registers d, keeping the first definition and reporting false
// if name was already defined (the caller diagnoses the redefinition).
func (r *Registry) Define(d *Definition) bool {
	if _, exists := r.defs[d.Name]; exists {
		return false
	}
	r.defs[d.Name] = d
	return true
}

// Lookup returns the macro named name, if any.
func (r *Registry) Lookup(name idn.ID) (*Definition, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns every defined macro's name, for opcode-completion
// queries (spec.md §4.13 expansion).
func (r *Registry) Names() []idn.ID {
	out := make([]idn.ID, 0, len(r.defs))
	for n := range r.defs {
		out = append(out, n)
	}
	return out
}
