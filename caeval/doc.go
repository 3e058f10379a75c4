// Licensed under the Apache License, Version 2.0; see LICENSE.

// Package caeval evaluates conditional-assembly expressions: arithmetic
// (+ - * /, integer division truncating toward zero), comparisons,
// string operations (concatenation, substring, duplication), boolean
// logic, and the leaf kinds of spec.md §4.3 — integer/string
// literals, variable references (including subscripted array/composite
// references), ordinary-symbol references, and attribute references
// (L'/T'/S'/I'/K'/N'/O'/D').
//
// Evaluation never aborts: a type-mismatched operation or division by
// zero records a diagnostic on the Evaluator's sink and substitutes a
// default zero/empty value, per spec.md §4.3 and §7. An attribute
// reference to an ordinary symbol not yet in the symbol table returns a
// Deferred result instead of a value; the caller (the ordinary processor,
// package processing) is responsible for running a lookahead and
// re-evaluating.
//
// The expression tree (Expr) is produced by the external parser (out of
// scope per spec.md §1/§6); this package only walks and evaluates it.
package caeval
