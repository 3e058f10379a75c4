// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package diag implements the diagnostic aggregator: every recoverable
// problem the analyzer encounters is recorded here, never raised as a Go
// error. A Diagnostic carries a severity, a stable code, a message, a
// primary location and a list of related locations supplied by the
// component that emits it (for example a previous definition, or the
// other members of a symbol cycle). The active macro-invocation and COPY
// stack is not attached to diagnostics.
//
// Duplicate suppression (identical code+file+range re-emitted by a
// re-entered lookahead) is handled by Sink.Add; callers never need to
// de-duplicate themselves.
package diag
