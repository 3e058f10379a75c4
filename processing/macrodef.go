// Licensed under the Apache License, Version 2.0; see LICENSE.

package processing

import (
	"strings"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/macro"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
)

// macroDefKind is the macro-definition processor's sub-state (spec.md
// §4.10): the statement right after MACRO is always the prototype;
// everything up to the matching MEND is the body.
type macroDefKind int

const (
	macroAwaitingPrototype macroDefKind = iota
	macroCapturingBody
)

// macroDefState tracks one in-progress macro definition. depth counts
// nested MACRO/MEND pairs seen while capturing the body, so the
// processor can tell an inner MEND from the one that closes this
// definition.
type macroDefState struct {
	kind  macroDefKind
	def   *macro.Definition
	depth int
}

func newMacroDefState() *macroDefState {
	return &macroDefState{kind: macroAwaitingPrototype}
}

// processMacroDefinitionStatement drives the macro-definition frame at
// the top of the stack: the first statement becomes the prototype, then
// every further statement is appended to the body verbatim (including
// any COPY it contains — COPY members inside a macro body are expanded
// at invocation time, not at definition time) until the matching MEND,
// at which point the definition is registered and the frame pops.
func (m *Manager) processMacroDefinitionStatement(s stmt.Statement, state *macroDefState) error {
	if state.kind == macroAwaitingPrototype {
		state.def = macro.ParsePrototype(m.Ctx.Ids, s.Label, s.Instruction.Text, s.Operands.Raw, s.Range)
		state.kind = macroCapturingBody
		return nil
	}

	op := strings.ToUpper(s.Instruction.Text)
	switch op {
	case "MACRO":
		state.depth++
	case "MEND":
		if state.depth > 0 {
			state.depth--
			break
		}
		m.finishMacroDefinition(state.def)
		m.pop()
		return nil
	}

	if state.depth == 0 && s.Label.Kind == stmt.LabelSequence {
		name := m.Ctx.Ids.Add(strings.TrimPrefix(s.Label.Text, "."))
		state.def.IndexSequenceSymbol(name, len(state.def.Body))
	}
	state.def.Append(s)
	return nil
}

func (m *Manager) finishMacroDefinition(def *macro.Definition) {
	if !m.Ctx.Macros.Define(def) {
		m.Ctx.Sink.Add(diag.Diagnostic{
			Severity: diag.SeverityError,
			Code:     diag.CodeUndefinedSymbol,
			Message:  "macro already defined: " + m.Ctx.Ids.Text(def.Name),
			Primary:  def.DefSite,
		})
	}
}
