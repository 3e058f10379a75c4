// Licensed under the Apache License, Version 2.0; see LICENSE.

package processing

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/hlctx"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/macro"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/vars"
)

// processOrdinaryStatement implements the ordinary processor's per-
// statement steps (spec.md §4.9): label substitution, opcode
// resolution, then dispatch.
func (m *Manager) processOrdinaryStatement(ctx context.Context, s stmt.Statement) error {
	op := strings.ToUpper(s.Instruction.Text)

	if op == "OPSYN" {
		m.doOpsyn(s)
		return nil
	}

	labelID, labelKind := m.substituteLabel(s)

	opName := m.Ctx.Ids.Add(s.Instruction.Text)
	res := m.Ctx.Resolve(opName)

	switch res.Kind {
	case hlctx.OpMacro:
		return m.invokeMacro(res, s, labelID)
	case hlctx.OpDeleted:
		m.Ctx.Sink.Add(diag.Diagnostic{
			Severity: m.Config.UnknownOpcodeSeverity,
			Code:     diag.CodeOpsyn,
			Message:  "opcode deleted by OPSYN: " + op,
			Primary:  s.Range,
		})
		return nil
	}

	effective := op
	realID := opName
	if res.RealName != opName {
		effective = m.Ctx.Ids.Text(res.RealName)
		realID = res.RealName
	}

	switch effective {
	case "SETA", "SETB", "SETC":
		// The label names the variable being assigned; it is not
		// substituted like other labels.
		return m.doSet(s, m.Ctx.Ids.Add(strings.TrimPrefix(s.Label.Text, "&")))
	case "LCLA":
		m.doDeclare(s, vars.KindA, false)
		return nil
	case "LCLB":
		m.doDeclare(s, vars.KindB, false)
		return nil
	case "LCLC":
		m.doDeclare(s, vars.KindC, false)
		return nil
	case "GBLA":
		m.doDeclare(s, vars.KindA, true)
		return nil
	case "GBLB":
		m.doDeclare(s, vars.KindB, true)
		return nil
	case "GBLC":
		m.doDeclare(s, vars.KindC, true)
		return nil
	case "ANOP":
		m.recordSequenceLabel(labelID, labelKind)
		return nil
	case "AGO":
		return m.doAgo(ctx, s)
	case "AIF":
		return m.doAif(ctx, s)
	case "ACTR":
		return m.doActr(s)
	case "MACRO":
		m.push(frame{kind: kindMacroDefinition, macrodef: newMacroDefState()})
		return nil
	case "MEND":
		m.Ctx.Sink.Add(diag.Diagnostic{Severity: diag.SeverityError, Code: diag.CodeControlFlow, Message: "MEND without matching MACRO", Primary: s.Range})
		return nil
	case "MEXIT":
		m.Ctx.PopScope()
		return nil
	case "COPY":
		return m.doCopy(s)
	case "EQU":
		return m.doEqu(s, labelID)
	case "START", "CSECT", "RSECT", "DSECT", "COM":
		m.doStartSection(s, labelID, effective)
		return nil
	case "LOCTR":
		return m.doLoctr(s)
	case "ORG":
		return m.doOrg(s)
	default:
		return m.doMachine(s, labelID, labelKind, realID)
	}
}

// substituteLabel resolves a statement's label field to an interned
// identifier, substituting a variable reference textually (spec.md
// §4.9 step 1).
func (m *Manager) substituteLabel(s stmt.Statement) (idn.ID, stmt.LabelKind) {
	switch s.Label.Kind {
	case stmt.LabelNone:
		return idn.EmptyID, stmt.LabelNone
	case stmt.LabelSequence:
		name := m.Ctx.Ids.Add(strings.TrimPrefix(s.Label.Text, "."))
		m.recordSequenceLabel(name, stmt.LabelSequence)
		return name, stmt.LabelSequence
	case stmt.LabelVariable:
		name := m.Ctx.Ids.Add(strings.TrimPrefix(s.Label.Text, "&"))
		sym, ok := m.Ctx.Vars().Get(name)
		if !ok {
			return idn.EmptyID, stmt.LabelOrdinary
		}
		return m.Ctx.Ids.Add(sym.Get().String()), stmt.LabelOrdinary
	default: // LabelOrdinary, LabelConcat
		return m.Ctx.Ids.Add(s.Label.Text), stmt.LabelOrdinary
	}
}

func (m *Manager) recordSequenceLabel(name idn.ID, kind stmt.LabelKind) {
	if kind != stmt.LabelSequence || name == idn.EmptyID {
		return
	}
	if _, inScope := m.Ctx.CurrentScope(); inScope {
		return // macro bodies are pre-indexed at definition time
	}
	if _, ok := m.Ctx.OpenSeq[name]; !ok {
		m.Ctx.OpenSeq[name] = m.Parser.Mark()
	}
}

func (m *Manager) doSet(s stmt.Statement, target idn.ID) error {
	if target == idn.EmptyID || len(s.Operands.Fields) == 0 {
		return nil
	}
	result := m.evaluator().Eval(s.Operands.Fields[0].Expr, s.Range)
	m.Ctx.Vars().Set(target, nil, result.Value)
	return nil
}

func (m *Manager) doDeclare(s stmt.Statement, kind vars.Kind, global bool) {
	store := m.Ctx.Vars()
	for _, f := range s.Operands.Fields {
		name := m.Ctx.Ids.Add(strings.TrimPrefix(f.Text, "&"))
		if global {
			store.DeclareGlobal(name, kind, vars.Scalar)
		} else {
			store.Declare(name, kind, vars.Scalar)
		}
	}
}

// doAgo implements simple ("AGO .TGT") and extended ("AGO (expr).T1,.T2,…")
// AGO (spec.md §4.9): for the extended form Fields[0].Expr is the index
// expression and Fields[1:] each carry a .Target; the simple form is a
// single Field with only .Target set.
func (m *Manager) doAgo(ctx context.Context, s stmt.Statement) error {
	fields := s.Operands.Fields
	if len(fields) == 0 {
		return nil
	}
	var target idn.ID
	if fields[0].Expr != nil {
		result := m.evaluator().Eval(fields[0].Expr, s.Range)
		idx := int(result.Value.Int())
		if idx < 1 || idx > len(fields)-1 {
			return nil // out-of-range index: fall through, no branch taken
		}
		target = fields[idx].Target
	} else {
		target = fields[0].Target
	}
	return m.jumpTo(ctx, target, s.Range)
}

// doAif implements "AIF (b1).T1,(b2).T2,…": each Field carries both the
// boolean Expr and its Target.
func (m *Manager) doAif(ctx context.Context, s stmt.Statement) error {
	for _, f := range s.Operands.Fields {
		result := m.evaluator().Eval(f.Expr, s.Range)
		if result.Value.Bool() {
			return m.jumpTo(ctx, f.Target, s.Range)
		}
	}
	return nil
}

func (m *Manager) jumpTo(ctx context.Context, target idn.ID, loc diag.Location) error {
	if target == idn.EmptyID {
		return nil
	}
	if !m.actrDecrement(loc) {
		return nil
	}
	if f, ok := m.Ctx.CurrentScope(); ok {
		if idx, ok := f.Sequence(target); ok {
			f.JumpTo(idx)
		}
		return nil
	}
	m.lookaheadSequence(ctx, target, loc)
	return nil
}

func (m *Manager) actrDecrement(loc diag.Location) bool {
	if f, ok := m.Ctx.CurrentScope(); ok {
		f.Actr--
		if f.Actr < 0 {
			m.Ctx.Sink.Add(diag.Diagnostic{Severity: diag.SeverityError, Code: diag.CodeControlFlow, Message: "ACTR counter exhausted", Primary: loc})
			m.Ctx.PopScope()
			return false
		}
		return true
	}
	m.Ctx.OpenActr--
	if m.Ctx.OpenActr < 0 {
		m.Ctx.Sink.Add(diag.Diagnostic{Severity: diag.SeverityError, Code: diag.CodeControlFlow, Message: "ACTR counter exhausted", Primary: loc})
		return false
	}
	return true
}

func (m *Manager) doActr(s stmt.Statement) error {
	if len(s.Operands.Fields) == 0 {
		return nil
	}
	result := m.evaluator().Eval(s.Operands.Fields[0].Expr, s.Range)
	n := result.Value.Int()
	if f, ok := m.Ctx.CurrentScope(); ok {
		f.Actr = n
	} else {
		m.Ctx.OpenActr = n
	}
	return nil
}

func (m *Manager) doOpsyn(s stmt.Statement) {
	a := m.Ctx.Ids.Add(s.Label.Text)
	if len(s.Operands.Fields) > 0 && s.Operands.Fields[0].Text != "" {
		b := m.Ctx.Ids.Add(s.Operands.Fields[0].Text)
		m.Ctx.Opsyn(a, b, true)
		return
	}
	m.Ctx.Opsyn(a, idn.EmptyID, false)
}

// invokeMacro binds res's macro definition against the invocation
// statement and enters the new scope (spec.md §4.6/§4.9); the
// processing stack itself is untouched, since a macro invocation is
// modeled purely as an hlctx.Context scope push.
func (m *Manager) invokeMacro(res hlctx.Resolution, s stmt.Statement, labelID idn.ID) error {
	labelText := ""
	if labelID != idn.EmptyID {
		labelText = m.Ctx.Ids.Text(labelID)
	}
	sysndx := m.Ctx.NextSysndx()
	f := macro.Bind(m.Ctx.Ids, m.Ctx.Globals, res.Macro, labelText, s.Operands.Raw, sysndx, m.Ctx.EnclosingMacroNames(), m.sectionInfo(), s.Range, m.Ctx.Sink)
	f.Actr = m.Config.ActrDefault
	m.Ctx.PushScope(f)
	m.trace("macro: enter %s sysndx=%d", m.Ctx.Ids.Text(res.Macro.Name), sysndx)
	return nil
}

// sectionInfo snapshots the active section/location-counter state for
// &SYSECT/&SYSSTYP/&SYSLOC (spec.md §3.2), matching
// hlasm_context.cpp's add_system_vars_to_scope: everything is empty
// before the first section is started.
func (m *Manager) sectionInfo() macro.SectionInfo {
	kind, ok := m.Ctx.Spaces.ActiveSectionKind()
	if !ok {
		return macro.SectionInfo{}
	}
	styp := ""
	switch kind {
	case ordsym.SectionExecutable:
		styp = "CSECT"
	case ordsym.SectionReadOnlyExecutable:
		styp = "RSECT"
	case ordsym.SectionDummy:
		styp = "DSECT"
	case ordsym.SectionCommon:
		styp = "COM"
	}
	return macro.SectionInfo{
		Section: m.Ctx.Spaces.ActiveSection(),
		Kind:    styp,
		Loctr:   m.Ctx.Spaces.ActiveLoctrName(),
	}
}

func (m *Manager) doEqu(s stmt.Statement, target idn.ID) error {
	if target == idn.EmptyID || len(s.Operands.Fields) == 0 {
		return nil
	}
	var lengthExpr ordsym.Expr
	attrs := ordsym.Attrs{Length: 1, Type: 'U'}
	if len(s.Operands.Fields) > 1 {
		lengthExpr = s.Operands.Fields[1].OrdExpr
	}
	if len(s.Operands.Fields) > 2 && len(s.Operands.Fields[2].Text) > 0 {
		attrs.Type = s.Operands.Fields[2].Text[0]
	}
	m.Ctx.Ordsym.Declare(target, s.Operands.Fields[0].OrdExpr, lengthExpr, attrs, s.Range)
	return nil
}

func (m *Manager) doStartSection(s stmt.Statement, target idn.ID, directive string) {
	kind := ordsym.SectionExecutable
	switch directive {
	case "DSECT":
		kind = ordsym.SectionDummy
	case "COM":
		kind = ordsym.SectionCommon
	case "RSECT":
		kind = ordsym.SectionReadOnlyExecutable
	}
	m.Ctx.Spaces.StartSection(target, kind)
	if target != idn.EmptyID {
		m.Ctx.Ordsym.Declare(target, ordsym.Cur{}, nil, ordsym.Attrs{Length: 1, Type: 'J'}, s.Range)
	}
}

func (m *Manager) doLoctr(s stmt.Statement) error {
	if len(s.Operands.Fields) == 0 {
		return nil
	}
	m.Ctx.Spaces.Loctr(m.Ctx.Ids.Add(s.Operands.Fields[0].Text))
	return nil
}

func (m *Manager) doOrg(s stmt.Statement) error {
	if len(s.Operands.Fields) == 0 || s.Operands.Fields[0].OrdExpr == nil {
		m.Ctx.Spaces.OrgHighWater()
		return nil
	}
	v, ok := m.Ctx.Ordsym.EvalNow(s.Operands.Fields[0].OrdExpr)
	if !ok {
		return nil
	}
	m.Ctx.Spaces.Org(v.Const)
	return nil
}

func (m *Manager) doCopy(s stmt.Statement) error {
	if len(s.Operands.Fields) == 0 {
		return nil
	}
	name := m.Ctx.Ids.Add(s.Operands.Fields[0].Text)
	if _, ok := m.Ctx.Copies.Get(name); !ok {
		body, err := m.Library.Lookup(name)
		if err != nil {
			return errors.Wrapf(err, "COPY %s", m.Ctx.Ids.Text(name))
		}
		m.Ctx.Copies.Put(name, body)
	}
	cf := macro.CopyFrame{Member: name}
	if f, ok := m.Ctx.CurrentScope(); ok {
		f.PushCopy(cf)
	} else {
		m.Ctx.CurrentSource().PushCopy(cf)
	}
	return nil
}

// doMachine handles everything not recognized as a CA/assembler
// instruction above: a machine instruction or an unrecognized mnemonic,
// per spec.md §1 Non-goals, this module owns no instruction table of
// its own and defers entirely to Attrs/Checker for what it cannot
// infer from the statement shape alone.
func (m *Manager) doMachine(s stmt.Statement, target idn.ID, targetKind stmt.LabelKind, opName idn.ID) error {
	if _, ok := m.Ctx.Spaces.ActiveSectionKind(); !ok {
		// Statements before the first section go to an unnamed
		// executable section.
		m.Ctx.Spaces.StartSection(idn.EmptyID, ordsym.SectionExecutable)
	}
	attrs, attrsKnown := m.Attrs.Attributes(s)
	if !attrsKnown {
		attrs = ordsym.Attrs{Length: 1, Type: 'U'}
	}
	if target != idn.EmptyID && targetKind == stmt.LabelOrdinary {
		m.Ctx.Ordsym.Declare(target, ordsym.Cur{}, nil, attrs, s.Range)
	}

	diags, known := m.Checker.Check(opName, s.Operands)
	for _, d := range diags {
		m.Ctx.Sink.Add(d)
	}
	if !known {
		m.Ctx.Sink.Add(diag.Diagnostic{
			Severity: m.Config.UnknownOpcodeSeverity,
			Code:     diag.CodeUnknownKeyword,
			Message:  "unknown opcode: " + m.Ctx.Ids.Text(opName),
			Primary:  s.Range,
		})
	}
	if attrs.Length > 0 {
		m.Ctx.Spaces.Advance(int64(attrs.Length))
	}
	return nil
}
