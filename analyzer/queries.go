// Licensed under the Apache License, Version 2.0; see LICENSE.

package analyzer

import (
	"fmt"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/hlctx"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
)

// CompletionKind selects the namespace CompletionsAt searches. The
// caller picks it from lexical context (whether the cursor follows "&",
// "." or neither) since this module owns no lexer (spec.md §1
// Non-goals).
type CompletionKind int

const (
	CompletionVariable CompletionKind = iota
	CompletionSequence
	CompletionOpcode
)

// Queries answers editor-style questions against one completed (or
// in-progress) analysis context: definitions, references, hover text
// and completions (spec.md §4.13 expansion).
//
// Resolving a cursor position to the identifier under it is a lexer
// concern this module does not own; DefinitionAt/ReferencesAt/Hover take
// the identifier's spelling directly (with its sigil, "&VAR" or ".SEQ",
// where the symbol kind needs disambiguating), which the caller derives
// from its own token stream at the queried position.
type Queries struct {
	ctx       *hlctx.Context
	catalogue []string
}

func newQueries(ctx *hlctx.Context, catalogue []string) *Queries {
	return &Queries{ctx: ctx, catalogue: catalogue}
}

// DefinitionAt returns the declaration site of an ordinary symbol or
// macro name. Variable symbols and sequence symbols carry no separately
// tracked declaration site distinct from their first assignment/label,
// so only ordinary symbols and macros are resolvable here.
func (q *Queries) DefinitionAt(name string) (diag.Location, bool) {
	id, ok := q.ctx.Ids.Find(trimSigil(name))
	if !ok {
		return diag.Location{}, false
	}
	if sym, ok := q.ctx.Ordsym.Lookup(id); ok {
		return sym.DefSite, true
	}
	if def, ok := q.ctx.Macros.Lookup(id); ok {
		return def.DefSite, true
	}
	return diag.Location{}, false
}

// ReferencesAt returns every recorded read of an ordinary symbol.
func (q *Queries) ReferencesAt(name string) []diag.Location {
	id, ok := q.ctx.Ids.Find(trimSigil(name))
	if !ok {
		return nil
	}
	return q.ctx.Ordsym.References(id)
}

// Hover renders the current value and attributes of an ordinary symbol
// or variable symbol, for display at a cursor position.
func (q *Queries) Hover(name string) (string, bool) {
	bare := trimSigil(name)
	id, ok := q.ctx.Ids.Find(bare)
	if !ok {
		return "", false
	}
	if len(name) > 0 && name[0] == '&' {
		sym, ok := q.ctx.Vars().Get(id)
		if !ok {
			return "", false
		}
		return sym.Kind.String() + " " + sym.Get().String(), true
	}
	if sym, ok := q.ctx.Ordsym.Lookup(id); ok {
		return hoverOrdinary(sym), true
	}
	if _, ok := q.ctx.Macros.Lookup(id); ok {
		return "macro " + bare, true
	}
	return "", false
}

// CompletionsAt lists candidate identifiers of kind whose spelling has
// prefix as a case-insensitive prefix (bare, without sigil).
func (q *Queries) CompletionsAt(kind CompletionKind, prefix string) []string {
	switch kind {
	case CompletionOpcode:
		out := append([]string{}, q.catalogue...)
		for _, id := range q.ctx.Macros.Names() {
			out = append(out, q.ctx.Ids.Text(id))
		}
		return filterPrefix(out, prefix)
	default:
		// Variable and sequence symbol completion need the set of names
		// visible in the current scope, which this façade does not track
		// independently of hlctx.Context's live scope stack; callers query
		// those against the active Context directly via its Vars()/OpenSeq
		// during processing, and this case exists to keep CompletionKind
		// exhaustive for the Opcode-only catalogue this module does own.
		return nil
	}
}

func hoverOrdinary(sym *ordsym.Symbol) string {
	if !sym.Resolved() {
		return "(unresolved)"
	}
	kind := "absolute"
	if !sym.Value.IsAbsolute() {
		kind = "relocatable"
	}
	return fmt.Sprintf("%s value=%d type=%c length=%d", kind, sym.Value.Const, sym.Attrs.Type, sym.Attrs.Length)
}

func trimSigil(name string) string {
	if len(name) == 0 {
		return name
	}
	switch name[0] {
	case '&', '.':
		return name[1:]
	default:
		return name
	}
}

func filterPrefix(names []string, prefix string) []string {
	if prefix == "" {
		return names
	}
	out := make([]string, 0, len(names))
	up := upper(prefix)
	for _, n := range names {
		if len(n) >= len(up) && upper(n[:len(up)]) == up {
			out = append(out, n)
		}
	}
	return out
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
