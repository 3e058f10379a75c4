// Licensed under the Apache License, Version 2.0; see LICENSE.

package hlctx

import "github.com/eclipse-che4z/che-che4z-lsp-for-hlasm-sub005/macro"

// SourceFrame is one entry of the source stack (spec.md §3.6): at the
// core level there is at most one, for the open-code input file, but the
// model is uniform so a future front end could feed nested sources the
// same way.
type SourceFrame struct {
	File      string
	Line      int
	CopyStack []macro.CopyFrame
}

// PushCopy pushes a copy frame onto f's copy stack (spec.md §3.6).
func (f *SourceFrame) PushCopy(cf macro.CopyFrame) { f.CopyStack = append(f.CopyStack, cf) }

// PopCopy pops f's innermost copy frame.
func (f *SourceFrame) PopCopy() {
	if n := len(f.CopyStack); n > 0 {
		f.CopyStack = f.CopyStack[:n-1]
	}
}

// CurrentCopy returns f's innermost active copy frame, if any.
func (f *SourceFrame) CurrentCopy() (*macro.CopyFrame, bool) {
	if n := len(f.CopyStack); n > 0 {
		return &f.CopyStack[n-1], true
	}
	return nil, false
}
