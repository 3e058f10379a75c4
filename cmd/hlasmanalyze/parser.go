// Licensed under the Apache License, Version 2.0; see LICENSE.

package main

import (
	"context"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/caeval"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/ordsym"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
)

// lineParser is a reference implementation of processing.Parser: a
// whitespace/comma-delimited line splitter, not a full HLASM lexer
// (lexing and grammar are out of this module's scope). It recognizes
// label/sequence-symbol prefixes, splits operands on top-level commas,
// and resolves only bare identifiers, integer literals and quoted
// strings in operand expressions — enough to drive simple CA/EQU
// statements, not the full continuation/literal syntax of HLASM source.
type lineParser struct {
	ids   *idn.Store
	file  string
	lines []string
	pos   int
}

func newLineParser(ids *idn.Store, file string) (*lineParser, error) {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return &lineParser{ids: ids, file: file, lines: strings.Split(string(data), "\n")}, nil
}

func (p *lineParser) Mark() int     { return p.pos }
func (p *lineParser) Seek(mark int) { p.pos = mark }

func (p *lineParser) Next(ctx context.Context) (stmt.Statement, bool, error) {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "*") {
			continue
		}
		return p.parseLine(line, p.pos-1), true, nil
	}
	return stmt.Statement{}, false, nil
}

func (p *lineParser) parseLine(line string, lineno int) stmt.Statement {
	loc := diag.Location{File: p.file, Range: diag.Range{Start: diag.Position{Line: lineno}, End: diag.Position{Line: lineno, Column: len(line)}}}

	fields := strings.Fields(line)
	s := stmt.Statement{Range: loc}
	if len(fields) == 0 {
		return s
	}

	i := 0
	if strings.HasPrefix(line, " ") {
		s.Label = stmt.Label{Kind: stmt.LabelNone}
	} else {
		s.Label = parseLabel(fields[0])
		i = 1
	}
	if i >= len(fields) {
		return s
	}
	s.Instruction = stmt.Instruction{Kind: stmt.InstructionName, Text: fields[i]}
	i++
	if i >= len(fields) {
		return s
	}
	raw := strings.Join(fields[i:], " ")
	s.Operands = parseOperands(p.ids, raw)
	return s
}

func parseLabel(tok string) stmt.Label {
	switch {
	case strings.HasPrefix(tok, "."):
		return stmt.Label{Kind: stmt.LabelSequence, Text: tok}
	case strings.HasPrefix(tok, "&"):
		return stmt.Label{Kind: stmt.LabelVariable, Text: tok}
	default:
		return stmt.Label{Kind: stmt.LabelOrdinary, Text: tok}
	}
}

func parseOperands(ids *idn.Store, raw string) stmt.Operands {
	parts := splitTopLevelCommas(raw)
	fields := make([]stmt.Field, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		fields = append(fields, parseField(ids, part))
	}
	return stmt.Operands{Raw: raw, Fields: fields}
}

func parseField(ids *idn.Store, text string) stmt.Field {
	f := stmt.Field{Text: text}
	switch {
	case strings.HasPrefix(text, "."):
		f.Target = ids.Add(strings.TrimPrefix(text, "."))
	case strings.HasPrefix(text, "&"):
		f.Expr = caeval.VarRef{Name: ids.Add(strings.TrimPrefix(text, "&"))}
	case strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'") && len(text) >= 2:
		f.Expr = caeval.StrLit{Value: text[1 : len(text)-1]}
	case text == "*":
		f.OrdExpr = ordsym.Cur{}
	default:
		if n, err := strconv.ParseInt(text, 10, 32); err == nil {
			f.Expr = caeval.IntLit{Value: int32(n)}
			f.OrdExpr = ordsym.Lit{Value: n}
		} else if text != "" {
			f.Expr = caeval.OrdRef{Name: ids.Add(text)}
			f.OrdExpr = ordsym.Sym{Name: ids.Add(text)}
		}
	}
	return f
}

// splitTopLevelCommas splits on commas outside of parentheses and quotes,
// the same nesting rule package vars applies to macro argument lists.
func splitTopLevelCommas(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote && depth > 0 {
				depth--
			}
		case ',':
			if !inQuote && depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	if start <= len(s) {
		out = append(out, s[start:])
	}
	return out
}
