// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package ordsym implements the ordinary symbol table and its dependency
// solver (spec.md §4.4), plus the section/location-counter model that
// backs relocatable arithmetic (spec.md §3.4).
//
// A Table holds every ordinary symbol (labels, EQU targets, DC targets)
// either fully Resolved (value and attributes known) or Pending (an
// expression plus the set of other ordinary symbols it still needs).
// Declare attempts immediate evaluation; when that is not yet possible it
// registers the symbol as pending and records dependency edges. Every
// time a symbol resolves — immediately or via Promote — the solver
// rechecks pending symbols that depended on it and promotes any whose
// dependencies are now all satisfied. Promotion re-runs the stored
// expression against the now-more-complete table, because a symbol's
// final attributes (notably DC length) can depend on values that were
// still unknown when it was first declared.
//
// Cycle handling: Finish walks the remaining pending symbols; any that
// transitively depend on themselves are defaulted (absolute 0, or
// absolute 1 for length-kind attribute reads) and reported with exactly
// one diagnostic per cycle, attached to the first cycle member reached
// while scanning in declaration order, per spec.md §4.4.
package ordsym
