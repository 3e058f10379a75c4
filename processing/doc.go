// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package processing implements the processing manager and the
// ordinary, macro-definition and lookahead processors (spec.md
// §4.7–§4.10), plus the external interfaces (spec.md §6) a caller
// supplies to drive an analysis: Parser, LibraryProvider,
// AttributeProvider and OperandChecker.
//
// The manager runs a single-threaded, statement-at-a-time loop over a
// processing stack. A macro invocation is not itself a processing-stack
// frame: entering one pushes a scope onto the hlctx.Context scope stack,
// and the manager's statement source switches to that scope's cached
// body until it is exhausted, at which point the scope — not the
// processing-stack frame — is popped. This mirrors spec.md §4.7's "drain
// invocation until its scope is popped" inner loop without a second,
// redundant stack.
package processing
