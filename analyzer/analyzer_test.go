// Licensed under the Apache License, Version 2.0; see LICENSE.

package analyzer_test

import (
	"context"
	"testing"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/analyzer"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
)

type sliceParser struct {
	stmts []stmt.Statement
	pos   int
}

func (p *sliceParser) Next(ctx context.Context) (stmt.Statement, bool, error) {
	if p.pos >= len(p.stmts) {
		return stmt.Statement{}, false, nil
	}
	s := p.stmts[p.pos]
	p.pos++
	return s, true, nil
}
func (p *sliceParser) Mark() int     { return p.pos }
func (p *sliceParser) Seek(mark int) { p.pos = mark }

type noLibrary struct{}

func (noLibrary) Lookup(name idn.ID) ([]stmt.Statement, error) { return nil, nil }

type noAttrs struct{}

func (noAttrs) Attributes(s stmt.Statement) (ordsym.Attrs, bool) { return ordsym.Attrs{}, false }

type unknownChecker struct{}

func (unknownChecker) Check(opcode idn.ID, operands stmt.Operands) ([]diag.Diagnostic, bool) {
	return nil, false
}

func loc() diag.Location { return diag.Location{File: "t.hlasm"} }

func TestRun_equAndMacroQueryable(t *testing.T) {
	ids := idn.NewStore()
	stmts := []stmt.Statement{
		{
			Label:       stmt.Label{Kind: stmt.LabelOrdinary, Text: "FIVE"},
			Instruction: stmt.Instruction{Text: "EQU"},
			Operands:    stmt.Operands{Fields: []stmt.Field{{OrdExpr: ordsym.Lit{Value: 5}}}},
			Range:       loc(),
		},
		{Instruction: stmt.Instruction{Text: "MACRO"}, Range: loc()},
		{Instruction: stmt.Instruction{Text: "GREET"}, Range: loc()},
		{Instruction: stmt.Instruction{Text: "MEND"}, Range: loc()},
	}
	p := &sliceParser{stmts: stmts}

	result, err := analyzer.Run(context.Background(), "t.hlasm", ids, p, noLibrary{}, noAttrs{}, unknownChecker{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	defSite, ok := result.Queries.DefinitionAt("GREET")
	if !ok {
		t.Fatalf("GREET not found as a macro definition")
	}
	if defSite.File != "t.hlasm" {
		t.Fatalf("GREET def site file = %q", defSite.File)
	}

	hover, ok := result.Queries.Hover("FIVE")
	if !ok {
		t.Fatalf("FIVE not found")
	}
	if hover == "" {
		t.Fatalf("FIVE hover text is empty")
	}
}

func TestRun_unknownOpcodeSeverityOption(t *testing.T) {
	ids := idn.NewStore()
	stmts := []stmt.Statement{
		{Instruction: stmt.Instruction{Text: "BOGUS"}, Range: loc()},
	}
	p := &sliceParser{stmts: stmts}

	result, err := analyzer.Run(context.Background(), "t.hlasm", ids, p, noLibrary{}, noAttrs{}, unknownChecker{},
		analyzer.WithUnknownOpcodeSeverity(diag.SeverityError))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var found bool
	for _, d := range result.Diagnostics {
		if d.Code == diag.CodeUnknownKeyword {
			found = true
			if d.Severity != diag.SeverityError {
				t.Fatalf("severity = %v, want Error", d.Severity)
			}
		}
	}
	if !found {
		t.Fatalf("expected unknown-opcode diagnostic, got %+v", result.Diagnostics)
	}
}

func TestRun_opcodeCatalogueCompletion(t *testing.T) {
	ids := idn.NewStore()
	p := &sliceParser{}

	result, err := analyzer.Run(context.Background(), "t.hlasm", ids, p, noLibrary{}, noAttrs{}, unknownChecker{},
		analyzer.WithOpcodeCatalogue([]string{"MVC", "MVI", "LR"}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := result.Queries.CompletionsAt(analyzer.CompletionOpcode, "MV")
	if len(got) != 2 {
		t.Fatalf("completions = %v, want 2 MV* entries", got)
	}
}
