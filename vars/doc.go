// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package vars implements the variable-symbol store: SETA/SETB/SETC
// scalars and indexed arrays, scoped global or local to a macro
// invocation, plus the composite-tree representation shared by macro
// parameter binding and system variables such as &SYSLIST.
//
// A Store holds the variables visible in exactly one scope (either the
// open-code scope or one macro invocation's local scope) plus a pointer
// to the Globals table shared by every scope. Declaration, lookup and
// assignment follow spec.md §4.2:
//
//   - Declare creates a variable in the current scope. Redeclaring with
//     the same shape is a silent no-op; redeclaring with a different
//     shape returns ShapeMismatch for the caller to report.
//   - Get searches the local scope, then Globals.
//   - Set implicitly declares an undeclared name at the kind of the
//     assigned value, extends an array when the index exceeds its current
//     length, and returns SetShapeMismatch on scalar/array shape mismatch.
//
// Arrays are logically sparse: assigning index i leaves indices below i at
// their kind's zero value (0 / false / "") if never explicitly set.
package vars
