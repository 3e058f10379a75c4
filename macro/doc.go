// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package macro implements the macro model (spec.md §3.5/§4.6): prototype
// parsing, cached macro bodies, and invocation binding (positional and
// keyword parameters, composite arguments, &SYSLIST/&SYSNDX/&SYSMAC).
//
// A Definition is built once, by the macro-definition processor in
// package processing, and stored in a Registry owned by package hlctx.
// Invoking a macro produces a Frame: the per-invocation state (parameter
// bindings, local variables, SYSNDX, current statement index) that the
// ordinary processor drives statement by statement.
package macro
