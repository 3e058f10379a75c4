// Licensed under the Apache License, Version 2.0; see LICENSE.

package stmt

import (
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/caeval"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
)

// LabelKind classifies a statement's label field (spec.md §3.8).
type LabelKind int

const (
	LabelNone LabelKind = iota
	LabelOrdinary
	LabelSequence // ".X"
	LabelVariable
	LabelConcat // requires textual substitution before use
)

// Label is a statement's label field, verbatim as read by the parser.
type Label struct {
	Kind LabelKind
	Text string
}

// InstructionKind classifies a statement's instruction field.
type InstructionKind int

const (
	InstructionName InstructionKind = iota
	InstructionConcat
)

// Instruction is a statement's instruction (opcode mnemonic) field.
type Instruction struct {
	Kind InstructionKind
	Text string
}

// Field is one operand or sub-operand. Exactly one of Expr/OrdExpr/Target
// is populated when the parser determined the operand's shape; Text is
// always the verbatim source text.
type Field struct {
	Text    string
	Expr    caeval.Expr // populated for CA-instruction operands
	OrdExpr ordsym.Expr // populated for EQU/DC-style address expressions
	Target  idn.ID      // populated for AGO/AIF sequence-symbol targets
}

// Operands is a statement's operand field. When Deferred is true the
// instruction was unknown to the parser and Raw carries the
// unstructured text verbatim (spec.md §3.8); processing re-parses it
// once the opcode is resolved.
type Operands struct {
	Raw      string
	Deferred bool
	Fields   []Field
}

// Statement is one parsed HLASM statement as supplied by the external
// parser (spec.md §3.8, §6). It is the boundary type between the parser
// and this module's processing engine.
type Statement struct {
	Label       Label
	Instruction Instruction
	Operands    Operands
	Remarks     string
	Range       diag.Location
}
