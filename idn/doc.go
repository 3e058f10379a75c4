// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package idn provides an interned, case-insensitive identifier store.
//
// HLASM is case-insensitive for every source-level name: ordinary
// symbols, variable symbols, sequence symbols and macro names all compare
// equal when their upper-cased spellings are equal. Rather than carry
// strings (and repeated upper-casing) through every other package, this
// package assigns each distinct case-folded spelling a small stable
// handle (an ID) the first time it is seen, and hands that handle back on
// every subsequent lookup of an equal spelling.
//
// An ID is valid for as long as the Store that produced it is reachable;
// the store never evicts entries, so handles may be cached freely (e.g.
// as map keys) by any component that outlives a single statement.
//
// Usage:
//
//	s := idn.NewStore()
//	a := s.Add("SYSNDX")
//	b := s.Add("sysndx")
//	a == b // true: case-folded spellings are equal
//
//	if id, ok := s.Find("UNKNOWN"); ok {
//		...
//	}
package idn
