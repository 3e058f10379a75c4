// Licensed under the Apache License, Version 2.0; see LICENSE.

package macro

import (
	"strings"

	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/diag"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/idn"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/stmt"
	"github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/vars"
)

// AnonymousName is used for a macro whose prototype statement has no
// macro name; the body is still captured under this name so processing
// can continue, per spec.md §4.10.
const AnonymousName = "*ANONYMOUS*"

// ParsePrototype builds a Definition from a macro's prototype statement:
// "&LBL name &P1,&P2=,&P3=default" (spec.md §3.5/§4.6). Parameters
// without "=" are positional, in source order; parameters with "=" are
// keyword, in any order. A malformed operand list is parsed best-effort:
// any part that cannot be split cleanly is treated as a bare positional
// parameter.
func ParsePrototype(ids *idn.Store, label stmt.Label, macroName string, operandsRaw string, loc diag.Location) *Definition {
	if strings.TrimSpace(macroName) == "" {
		macroName = AnonymousName
	}
	def := NewDefinition(ids.Add(macroName), loc)

	if label.Kind == stmt.LabelVariable {
		def.LabelParam = ids.Add(strings.TrimPrefix(label.Text, "&"))
	}

	if strings.TrimSpace(operandsRaw) == "" {
		return def
	}
	parts, ok := vars.SplitTopLevel(operandsRaw)
	if !ok {
		parts = []string{operandsRaw}
	}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "&")
		if p == "" {
			continue
		}
		if eq := strings.IndexByte(p, '='); eq >= 0 {
			name := ids.Add(p[:eq])
			def.Keywords[name] = vars.ParseTree(p[eq+1:])
			continue
		}
		def.Positional = append(def.Positional, ids.Add(p))
	}
	return def
}
