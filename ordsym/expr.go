// Licensed under the Apache License, Version 2.0; see LICENSE.

package ordsym

import "github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"

// Expr is a node of a dependency expression: the arithmetic an EQU,
// DC-length, or location-counter definition is built from (spec.md
// §3.3/§4.4). Unlike package caeval's Expr, this language has no strings,
// booleans or attribute references — only the integer/relocatable
// arithmetic ordinary symbols participate in.
type Expr interface{ ordExprNode() }

// Lit is an absolute integer literal.
type Lit struct{ Value int64 }

// Sym is a reference to another ordinary symbol's value.
type Sym struct{ Name idn.ID }

// Cur is "*", the active location counter's current value.
type Cur struct{}

// Op identifies an arithmetic operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// Bin is a binary arithmetic operation.
type Bin struct {
	Op   Op
	L, R Expr
}

// Neg is unary negation.
type Neg struct{ X Expr }

func (Lit) ordExprNode() {}
func (Sym) ordExprNode() {}
func (Cur) ordExprNode() {}
func (Bin) ordExprNode() {}
func (Neg) ordExprNode() {}

// Dependencies returns the set of ordinary-symbol names expr reads,
// collected so the solver can register dependency edges before any
// attempt to evaluate the expression.
func Dependencies(expr Expr) []idn.ID {
	var out []idn.ID
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case Sym:
			out = append(out, n.Name)
		case Bin:
			walk(n.L)
			walk(n.R)
		case Neg:
			walk(n.X)
		}
	}
	walk(expr)
	return out
}
