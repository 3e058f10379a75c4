// Licensed under the Apache License, Version 2.0; see LICENSE.

package processing

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/caeval"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/hlctx"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/macro"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
)

// Config carries the manager's tunables, set by package analyzer from
// its Options (spec.md §9 expansion, §3.9).
type Config struct {
	ActrDefault           int32
	UnknownOpcodeSeverity diag.Severity
	Trace                 bool
	Logger                *log.Logger
}

// trace logs a low-volume internal trace line when Config.Trace is set,
// distinct from the diagnostic stream (spec.md §3.11).
func (m *Manager) trace(format string, args ...interface{}) {
	if m.Config.Trace && m.Config.Logger != nil {
		m.Config.Logger.Printf(format, args...)
	}
}

// frameKind is the processing-stack frame's kind (spec.md §3.7).
type frameKind int

const (
	kindOrdinary frameKind = iota
	kindMacroDefinition
)

type frame struct {
	kind       frameKind
	ownsSource bool
	macrodef   *macroDefState
}

// Manager runs the outer processing loop (spec.md §4.7).
type Manager struct {
	Ctx     *hlctx.Context
	Parser  Parser
	Library LibraryProvider
	Attrs   AttributeProvider
	Checker OperandChecker
	Config  Config

	stack []frame

	// reportedLookaheads suppresses duplicate diagnostics from repeated
	// queries for the same unresolvable symbol (spec.md §4.8).
	reportedLookaheads map[string]bool
}

// NewManager wires a Manager over ctx using the given collaborators.
func NewManager(ctx *hlctx.Context, p Parser, lib LibraryProvider, attrs AttributeProvider, checker OperandChecker, cfg Config) *Manager {
	return &Manager{
		Ctx:                ctx,
		Parser:             p,
		Library:            lib,
		Attrs:              attrs,
		Checker:            checker,
		Config:             cfg,
		reportedLookaheads: make(map[string]bool),
	}
}

// evaluator returns a CA expression evaluator bound to the variable
// scope currently active (open code or the innermost macro invocation).
func (m *Manager) evaluator() *caeval.Evaluator {
	return &caeval.Evaluator{Vars: m.Ctx.Vars(), Ord: m.Ctx.Ordsym, Sink: m.Ctx.Sink}
}

// Run drives the outer loop until open code is exhausted or ctx is
// cancelled (spec.md §4.7/§5).
func (m *Manager) Run(ctx context.Context) error {
	m.push(frame{kind: kindOrdinary, ownsSource: true})

	for len(m.stack) > 0 {
		select {
		case <-ctx.Done():
			for _, inScope := m.Ctx.CurrentScope(); inScope; _, inScope = m.Ctx.CurrentScope() {
				m.Ctx.PopScope()
				m.trace("macro: leave")
			}
			m.Ctx.CurrentSource().CopyStack = nil
			for len(m.stack) > 0 {
				m.pop()
			}
			return errors.Wrap(ctx.Err(), "analysis cancelled")
		default:
		}

		s, ok, err := m.nextStatement(ctx)
		if err != nil {
			return errors.Wrap(err, "reading next statement")
		}
		if !ok {
			if _, inScope := m.Ctx.CurrentScope(); inScope {
				m.Ctx.PopScope()
				m.trace("macro: leave")
				continue
			}
			m.pop()
			continue
		}

		if err := m.dispatch(ctx, s); err != nil {
			return errors.Wrap(err, "processing statement")
		}
	}
	return nil
}

func (m *Manager) push(f frame) {
	m.stack = append(m.stack, f)
	m.trace("processor: push frame kind=%d depth=%d", f.kind, len(m.stack))
}

func (m *Manager) pop() {
	if n := len(m.stack); n > 0 {
		m.stack = m.stack[:n-1]
		m.trace("processor: pop frame depth=%d", len(m.stack))
	}
}

func (m *Manager) top() *frame { return &m.stack[len(m.stack)-1] }

func (m *Manager) dispatch(ctx context.Context, s stmt.Statement) error {
	switch m.top().kind {
	case kindMacroDefinition:
		return m.processMacroDefinitionStatement(s, m.top().macrodef)
	default:
		return m.processOrdinaryStatement(ctx, s)
	}
}

// nextStatement implements spec.md §4.7's "request next statement from
// parser or from the current cached body": a copy frame takes priority
// over the body/source that pushed it, a macro scope's body takes
// priority over external input, and open code falls back to the Parser.
func (m *Manager) nextStatement(ctx context.Context) (stmt.Statement, bool, error) {
	if f, ok := m.Ctx.CurrentScope(); ok {
		if cf, ok := f.CurrentCopy(); ok {
			if s, ok := m.nextFromCopy(cf); ok {
				return s, true, nil
			}
			f.PopCopy()
			return m.nextStatement(ctx)
		}
		s, ok := f.CurrentStatement()
		if !ok {
			return stmt.Statement{}, false, nil
		}
		f.Advance()
		return s, true, nil
	}

	src := m.Ctx.CurrentSource()
	if cf, ok := src.CurrentCopy(); ok {
		if s, ok := m.nextFromCopy(cf); ok {
			return s, true, nil
		}
		src.PopCopy()
		return m.nextStatement(ctx)
	}
	return m.Parser.Next(ctx)
}

// nextFromCopy pulls the next statement from cf's cached member body,
// advancing cf's index; it reports ok=false once the member's
// statements are exhausted, so the caller can pop the copy frame.
func (m *Manager) nextFromCopy(cf *macro.CopyFrame) (stmt.Statement, bool) {
	body, _ := m.Ctx.Copies.Get(cf.Member)
	if cf.Index >= len(body) {
		return stmt.Statement{}, false
	}
	s := body[cf.Index]
	cf.Index++
	return s, true
}
