// Licensed under the Apache License, Version 2.0; see LICENSE.

package caeval

import "github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"

// BinOp identifies a binary operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpXor
	OpConcat // string '.' concatenation
)

// UnOp identifies a unary operator.
type UnOp int

const (
	OpNeg UnOp = iota
	OpNot
)

// AttrKind identifies which symbol attribute an AttrRef queries: Length,
// Type, Scale, Integer, count of sublist elements (K), number of array
// dimensions (N), opcode-validity (O), or Defined (D).
type AttrKind byte

const (
	AttrLength  AttrKind = 'L'
	AttrType    AttrKind = 'T'
	AttrScale   AttrKind = 'S'
	AttrInteger AttrKind = 'I'
	AttrCount   AttrKind = 'K'
	AttrNDim    AttrKind = 'N'
	AttrOpcode  AttrKind = 'O'
	AttrDefined AttrKind = 'D'
)

// Expr is a node of a parsed CA expression tree. The concrete node types
// below are the only implementations; the set is closed (a classic
// sum-type dispatched by a type switch in Eval, not by virtual methods).
type Expr interface{ exprNode() }

// IntLit is an integer literal leaf.
type IntLit struct{ Value int32 }

// StrLit is a string literal leaf.
type StrLit struct{ Value string }

// SelfDefiningKind is the kind of a self-defining term: B'01001000',
// X'48', or C'H'.
type SelfDefiningKind byte

const (
	SelfDefiningB SelfDefiningKind = 'B'
	SelfDefiningX SelfDefiningKind = 'X'
	SelfDefiningC SelfDefiningKind = 'C'
)

// SelfDefiningTerm converts literal text in the given base/charset to an
// integer, per the B/X/C'...' self-defining syntax.
type SelfDefiningTerm struct {
	Kind SelfDefiningKind
	Text string
}

// VarRef is a (possibly subscripted) variable-symbol reference, e.g.
// &NAME or &NAME(i,j).
type VarRef struct {
	Name    idn.ID
	Indices []Expr
}

// OrdRef is a direct ordinary-symbol value reference (used where a CA
// expression reads an EQU'd or labeled symbol's numeric value, as
// opposed to one of its attributes).
type OrdRef struct{ Name idn.ID }

// AttrRef is an attribute reference X'sym. IsVar distinguishes a
// variable-symbol target (only K'/N'/T' are meaningful) from an
// ordinary-symbol target (L'/T'/S'/I'/O'/D').
type AttrRef struct {
	Attr  AttrKind
	Name  idn.ID
	IsVar bool
}

// BinExpr is a binary operation.
type BinExpr struct {
	Op   BinOp
	L, R Expr
}

// UnExpr is a unary operation.
type UnExpr struct {
	Op UnOp
	X  Expr
}

// Substr is the substring operator 'str'(start,length).
type Substr struct {
	Str           Expr
	Start, Length Expr
}

// Dup is the string duplication operator n'str'.
type Dup struct {
	N   Expr
	Str Expr
}

func (IntLit) exprNode()           {}
func (StrLit) exprNode()           {}
func (SelfDefiningTerm) exprNode() {}
func (VarRef) exprNode()           {}
func (OrdRef) exprNode()           {}
func (AttrRef) exprNode()          {}
func (BinExpr) exprNode()          {}
func (UnExpr) exprNode()           {}
func (Substr) exprNode()           {}
func (Dup) exprNode()              {}
