// Licensed under the Apache License, Version 2.0; see LICENSE.

package processing

import (
	"context"
	"strings"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
)

// lookaheadSequence resolves a forward sequence-symbol reference used as
// an open-code AGO/AIF target (spec.md §4.8). Macro bodies never reach
// this path: their sequence symbols are fully pre-indexed at definition
// time (spec.md §4.10), so only open code needs a runtime scan.
//
// The scan consumes statements from the Parser, skipping the contents of
// MACRO/MEND pairs and recording every depth-zero sequence label it
// passes — not only the target — so later jumps to those labels are
// answered without a further scan. Entry into COPY members during this
// scan is not modeled: lookahead only walks the open-code Parser stream
// directly, a simplification noted in DESIGN.md.
func (m *Manager) lookaheadSequence(ctx context.Context, target idn.ID, triggerLoc diag.Location) bool {
	if mark, ok := m.Ctx.OpenSeq[target]; ok {
		m.Parser.Seek(mark)
		return true
	}

	m.trace("lookahead: sequence scan start for .%s", m.Ctx.Ids.Text(target))
	defer m.trace("lookahead: sequence scan stop for .%s", m.Ctx.Ids.Text(target))

	start := m.Parser.Mark()
	depth := 0
	for {
		s, ok, err := m.Parser.Next(ctx)
		if err != nil || !ok {
			m.Parser.Seek(start)
			m.reportLookaheadFailure(target, triggerLoc)
			return false
		}
		switch strings.ToUpper(s.Instruction.Text) {
		case "MACRO":
			depth++
			continue
		case "MEND":
			depth--
			continue
		}
		if depth > 0 {
			continue
		}
		if s.Label.Kind == stmt.LabelSequence {
			name := m.Ctx.Ids.Add(strings.TrimPrefix(s.Label.Text, "."))
			mark := m.Parser.Mark()
			m.Ctx.OpenSeq[name] = mark
			if name == target {
				return true
			}
		}
	}
}

func (m *Manager) reportLookaheadFailure(target idn.ID, triggerLoc diag.Location) {
	key := "seq:" + m.Ctx.Ids.Text(target)
	if m.reportedLookaheads[key] {
		return
	}
	m.reportedLookaheads[key] = true
	m.Ctx.Sink.Add(diag.Diagnostic{
		Severity: diag.SeverityError,
		Code:     diag.CodeControlFlow,
		Message:  "sequence symbol ." + m.Ctx.Ids.Text(target) + " not found",
		Primary:  triggerLoc,
	})
}

// lookaheadAttribute resolves a deferred ordinary-symbol attribute
// reference (spec.md §4.3/§4.8): L'/T'/S'/I'/O' on a symbol not yet in
// the ordinary symbol table. It scans forward the same way as
// lookaheadSequence, asking the AttributeProvider to extract partial
// attributes from any statement whose label matches, then rewinds
// unconditionally (an attribute query never repositions execution).
func (m *Manager) lookaheadAttribute(ctx context.Context, target idn.ID, triggerLoc diag.Location) (ordsym.Attrs, bool) {
	start := m.Parser.Mark()
	defer m.Parser.Seek(start)

	depth := 0
	for {
		s, ok, err := m.Parser.Next(ctx)
		if err != nil || !ok {
			m.reportLookaheadFailure(target, triggerLoc)
			return ordsym.Attrs{}, false
		}
		switch strings.ToUpper(s.Instruction.Text) {
		case "MACRO":
			depth++
			continue
		case "MEND":
			depth--
			continue
		}
		if depth > 0 {
			continue
		}
		if s.Label.Kind != stmt.LabelOrdinary {
			continue
		}
		if m.Ctx.Ids.Add(s.Label.Text) != target {
			continue
		}
		if attrs, ok := m.Attrs.Attributes(s); ok {
			return attrs, true
		}
		return ordsym.Attrs{}, false
	}
}
