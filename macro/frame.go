// Licensed under the Apache License, Version 2.0; see LICENSE.

package macro

import (
	"fmt"
	"strings"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/vars"
)

// CopyFrame is one entry of a copy stack (spec.md §3.6): the copy member
// being expanded plus the index of its next statement.
type CopyFrame struct {
	Member idn.ID
	Index  int
}

// Frame is one macro invocation's runtime state (spec.md §3.5).
type Frame struct {
	Def       *Definition
	Locals    *vars.Store
	Sysndx    int32
	StmtIndex int
	Actr      int32
	CopyStack []CopyFrame
}

// CurrentStatement returns the statement at the frame's current index, or
// false once the body is exhausted.
func (f *Frame) CurrentStatement() (stmt.Statement, bool) {
	if f.StmtIndex < 0 || f.StmtIndex >= len(f.Def.Body) {
		return stmt.Statement{}, false
	}
	return f.Def.Body[f.StmtIndex], true
}

// Advance moves to the next statement in the body.
func (f *Frame) Advance() { f.StmtIndex++ }

// JumpTo sets the current statement index directly (sequential AGO/AIF
// target resolution has already located it via Def.SeqIndex).
func (f *Frame) JumpTo(index int) { f.StmtIndex = index }

// Sequence looks up a sequence symbol's pre-indexed statement position.
func (f *Frame) Sequence(name idn.ID) (int, bool) {
	idx, ok := f.Def.SeqIndex[name]
	return idx, ok
}

// PushCopy pushes a copy frame onto this invocation's copy stack.
func (f *Frame) PushCopy(cf CopyFrame) { f.CopyStack = append(f.CopyStack, cf) }

// PopCopy pops this invocation's innermost copy frame.
func (f *Frame) PopCopy() {
	if n := len(f.CopyStack); n > 0 {
		f.CopyStack = f.CopyStack[:n-1]
	}
}

// CurrentCopy returns this invocation's innermost active copy frame.
func (f *Frame) CurrentCopy() (*CopyFrame, bool) {
	if n := len(f.CopyStack); n > 0 {
		return &f.CopyStack[n-1], true
	}
	return nil, false
}

// SectionInfo is the ordinary-symbol section/location-counter state
// needed to populate &SYSECT/&SYSSTYP/&SYSLOC on macro entry. macro sits
// below hlctx in the package layering, so a caller (hlctx/processing)
// derives SectionInfo from its own *ordsym.Spaces rather than Bind
// importing ordsym directly.
type SectionInfo struct {
	// Section is the active section's name, or idn.EmptyID if none is
	// active yet.
	Section idn.ID
	// Kind is the active section's kind as HLASM spells it in &SYSSTYP
	// ("CSECT"/"DSECT"/"RSECT"/"COM"), or "" if none is active yet.
	Kind string
	// Loctr is the active location counter's name, or idn.EmptyID for a
	// section's default, unnamed counter or when no section is active.
	Loctr idn.ID
}

// Bind builds a new invocation Frame: it parses argsRaw into positional
// and keyword argument trees, binds prototype parameters (missing
// positionals default to an empty leaf, missing keywords take their
// prototype default), and installs the system variables &SYSLIST,
// &SYSNDX, &SYSECT, &SYSSTYP, &SYSLOC, &SYSNEST and &SYSMAC, per
// spec.md §4.6.
//
// enclosing is the chain of already-active macro names, innermost first,
// used to materialize &SYSMAC and &SYSNEST; def.Name is prepended
// automatically.
func Bind(
	ids *idn.Store,
	globals *vars.Globals,
	def *Definition,
	labelText string,
	argsRaw string,
	sysndx int32,
	enclosing []idn.ID,
	sect SectionInfo,
	loc diag.Location,
	sink *diag.Sink,
) *Frame {
	locals := vars.NewStore(globals)

	if def.LabelParam != idn.EmptyID {
		locals.Bind(vars.NewTreeSymbol(def.LabelParam, vars.Leaf(labelText)))
	}

	var positional []*vars.Tree
	keyword := make(map[idn.ID]*vars.Tree)
	seen := make(map[idn.ID]bool)

	if strings.TrimSpace(argsRaw) != "" {
		parts, ok := vars.SplitTopLevel(argsRaw)
		if !ok {
			parts = []string{argsRaw}
		}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if name, val, isKeyword := splitKeywordArg(p); isKeyword {
				id := ids.Add(name)
				if seen[id] {
					sink.Add(diag.Diagnostic{
						Severity: diag.SeverityWarning,
						Code:     diag.CodeMacroArity,
						Message:  "duplicate keyword parameter " + name + ", first occurrence used",
						Primary:  loc,
					})
					continue
				}
				seen[id] = true
				keyword[id] = vars.ParseTree(val)
				continue
			}
			positional = append(positional, vars.ParseTree(p))
		}
	}

	for i, name := range def.Positional {
		t := vars.Leaf("")
		if i < len(positional) {
			t = positional[i]
		}
		locals.Bind(vars.NewTreeSymbol(name, t))
	}
	for name, defaultTree := range def.Keywords {
		t := defaultTree
		if v, ok := keyword[name]; ok {
			t = v
			delete(keyword, name)
		}
		locals.Bind(vars.NewTreeSymbol(name, t))
	}
	for name := range keyword {
		sink.Add(diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Code:     diag.CodeUnknownKeyword,
			Message:  "unknown keyword parameter: " + ids.Text(name),
			Primary:  loc,
		})
	}

	locals.Bind(vars.NewTreeSymbol(ids.Add("SYSLIST"), vars.Composite(positional...)))
	locals.Bind(vars.NewTreeSymbol(ids.Add("SYSNDX"), vars.Leaf(fmt.Sprintf("%04d", sysndx))))

	locals.Bind(vars.NewTreeSymbol(ids.Add("SYSECT"), vars.Leaf(ids.Text(sect.Section))))
	locals.Bind(vars.NewTreeSymbol(ids.Add("SYSSTYP"), vars.Leaf(sect.Kind)))
	locals.Bind(vars.NewTreeSymbol(ids.Add("SYSLOC"), vars.Leaf(ids.Text(sect.Loctr))))

	// Nesting depth after entering this invocation: enclosing excludes
	// it, so the outermost macro (enclosing empty) nests at depth 1,
	// matching hlasm_context.cpp's add_system_vars_to_scope.
	locals.Bind(vars.NewTreeSymbol(ids.Add("SYSNEST"), vars.Leaf(fmt.Sprintf("%d", len(enclosing)+1))))

	locals.Bind(vars.NewTreeSymbol(ids.Add("SYSMAC"), buildSysMac(ids, def, enclosing)))

	return &Frame{Def: def, Locals: locals, Sysndx: sysndx}
}

func buildSysMac(ids *idn.Store, def *Definition, enclosing []idn.ID) *vars.Tree {
	children := make([]*vars.Tree, 0, len(enclosing)+2)
	children = append(children, vars.Leaf(ids.Text(def.Name)))
	for _, name := range enclosing {
		children = append(children, vars.Leaf(ids.Text(name)))
	}
	children = append(children, vars.Leaf("OPEN CODE"))
	return vars.Composite(children...)
}

// splitKeywordArg recognizes "NAME=value" at the top level of an
// invocation argument: name must be a bare identifier with no
// parentheses or quotes, distinguishing a keyword argument from a
// positional composite such as "(A,B)".
func splitKeywordArg(p string) (name, value string, isKeyword bool) {
	eq := strings.IndexByte(p, '=')
	if eq < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(p[:eq])
	if name == "" || !isSimpleIdent(name) {
		return "", "", false
	}
	return name, p[eq+1:], true
}

func isSimpleIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '@' || r == '#' || r == '$':
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
