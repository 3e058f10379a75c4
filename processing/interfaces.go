// Licensed under the Apache License, Version 2.0; see LICENSE.

package processing

import (
	"context"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
)

// Parser supplies open-code statements (spec.md §6). The lexer/grammar
// itself is out of this module's scope; Parser is the seam a caller
// implements over its own front end.
//
// Mark/Seek let the lookahead processor scan forward through open code
// without executing it and then rewind to the return point (spec.md
// §4.8); they assume the underlying source is fully buffered, which is
// also what makes "scan forward without executing" well-defined at all.
type Parser interface {
	Next(ctx context.Context) (stmt.Statement, bool, error)
	Mark() int
	Seek(mark int)
}

// LibraryProvider resolves a COPY member to its statement sequence
// (spec.md §3.6/§6). Results are cached by the caller in
// hlctx.Context.Copies once fetched.
type LibraryProvider interface {
	Lookup(name idn.ID) ([]stmt.Statement, error)
}

// AttributeProvider extracts partial ordinary-symbol attributes from a
// statement during lookahead, without fully processing it (spec.md
// §4.8's "partial attribute extraction").
type AttributeProvider interface {
	Attributes(s stmt.Statement) (ordsym.Attrs, bool)
}

// OperandChecker validates machine/mnemonic operands against an
// instruction's syntax (spec.md §6); this module performs no per-
// instruction binary checks of its own (§1 Non-goals). known reports
// whether opcode was recognized at all — this module carries no
// instruction table, so "unknown opcode" is ultimately the checker's
// call, not ours.
type OperandChecker interface {
	Check(opcode idn.ID, operands stmt.Operands) (diags []diag.Diagnostic, known bool)
}
